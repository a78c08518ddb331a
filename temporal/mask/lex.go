package mask

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/smasher164/xid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// punctuation lists the characters that stand for themselves in a mask.
const punctuation = "-/,.;: "

// quote delimits literal text in a mask.
const quote = '"'

//nolint:gochecknoglobals
var (
	// keywords maps the upper-case spelling of every mask keyword to its
	// token. FF1 through FF9 are lexed as FF plus a digit count.
	keywords = map[string]Token{
		"YYYY":  TokenYear,
		"YY":    TokenYear2,
		"MM":    TokenMonth,
		"DD":    TokenDay,
		"DDD":   TokenDayOfYear,
		"D":     TokenDayOfWeek,
		"HH24":  TokenHour24,
		"HH12":  TokenHour12,
		"HH":    TokenHour12,
		"AM":    TokenMeridiem,
		"PM":    TokenMeridiem,
		"MI":    TokenMinute,
		"SS":    TokenSecond,
		"SSSSS": TokenSecOfDay,
		"FF":    TokenFraction,
	}

	// keywordOrder lists the keywords longest first so that lexing is
	// greedy: DDD wins over DD, HH24 over HH.
	keywordOrder = sortedKeywords(func(a, b string) int {
		if len(a) != len(b) {
			return len(b) - len(a)
		}
		return strings.Compare(a, b)
	})

	// keywordList is the alphabetical list used in error messages.
	keywordList = strings.Join(sortedKeywords(strings.Compare), ", ")
)

func sortedKeywords(cmp func(a, b string) int) []string {
	names := maps.Keys(keywords)
	slices.SortFunc(names, cmp)
	return names
}

// lexer lexes a mask.
type lexer struct {
	text  string
	pos   int
	elems []element
}

// lex lexes text into mask elements.
func lex(text string) ([]element, error) {
	l := &lexer{text: text}
	for l.pos < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[l.pos:])
		var err error
		switch {
		case r == quote:
			err = l.lexQuoted()
		case strings.ContainsRune(punctuation, r):
			l.literal(string(r), l.pos)
			l.pos += size
		case xid.Continue(r):
			err = l.lexKeywords()
		default:
			err = l.errorf("unexpected character %q", r)
		}
		if err != nil {
			return nil, err
		}
	}

	return l.elems, nil
}

// errorf returns an ErrInvalidFormat error positioned at the current
// offset.
func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf(
		"%w: %v at position %d of %q",
		ErrInvalidFormat, fmt.Sprintf(format, args...), l.pos, l.text,
	)
}

// literal appends literal text, merging it with a preceding literal.
func (l *lexer) literal(text string, pos int) {
	if n := len(l.elems); n > 0 && l.elems[n-1].tok == TokenLiteral {
		l.elems[n-1].text += text
		return
	}
	l.elems = append(l.elems, element{tok: TokenLiteral, text: text, pos: pos})
}

// lexQuoted lexes double-quoted literal text. The opening quote is at the
// current position.
func (l *lexer) lexQuoted() error {
	end := strings.IndexRune(l.text[l.pos+1:], quote)
	if end < 0 {
		return l.errorf("unterminated quoted text")
	}
	if end > 0 {
		l.literal(l.text[l.pos+1:l.pos+1+end], l.pos)
	}
	l.pos += end + 2
	return nil
}

// lexKeywords lexes a run of identifier characters into one or more
// keyword elements. Keywords may abut, as in YYYYMMDD.
func (l *lexer) lexKeywords() error {
	end := l.pos
	for end < len(l.text) {
		r, size := utf8.DecodeRuneInString(l.text[end:])
		if !xid.Continue(r) {
			break
		}
		end += size
	}

	run := l.text[l.pos:end]
	for i := 0; i < len(run); {
		name, ok := matchKeyword(run[i:])
		if !ok {
			l.pos += i
			return l.errorf("unknown element %q, expected one of %v", l.text[l.pos:end], keywordList)
		}

		e := element{tok: keywords[name], pos: l.pos + i}
		i += len(name)
		if e.tok == TokenFraction && i < len(run) && run[i] >= '1' && run[i] <= '9' {
			e.digits = int(run[i] - '0')
			i++
		}
		l.elems = append(l.elems, e)
	}

	l.pos = end
	return nil
}

// matchKeyword returns the longest keyword prefixing run, ignoring case.
func matchKeyword(run string) (string, bool) {
	for _, name := range keywordOrder {
		if len(run) >= len(name) && strings.EqualFold(run[:len(name)], name) {
			return name, true
		}
	}
	return "", false
}
