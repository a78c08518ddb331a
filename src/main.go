//go:build js && wasm

// package main provides the Wasm app.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"syscall/js"

	"github.com/theory/sqltemporal/temporal"
	"github.com/theory/sqltemporal/temporal/mode"
	"github.com/theory/sqltemporal/temporal/types"
)

const (
	optOracle int = 1 << iota
	optInterval
	optFormat
	optExtract
	optIndent
)

func evaluate(_ js.Value, args []js.Value) any {
	text := args[0].String()
	qualifier := args[1].String()
	arg := args[2].String()
	opts := args[3].Int()

	return execute(text, qualifier, arg, opts)
}

func main() {
	stream := make(chan struct{})

	js.Global().Set("evaluate", js.FuncOf(evaluate))
	js.Global().Set("optOracle", js.ValueOf(optOracle))
	js.Global().Set("optInterval", js.ValueOf(optInterval))
	js.Global().Set("optFormat", js.ValueOf(optFormat))
	js.Global().Set("optExtract", js.ValueOf(optExtract))
	js.Global().Set("optIndent", js.ValueOf(optIndent))

	<-stream
}

// result is the JSON returned to the playground.
type result struct {
	Type   string           `json:"type"`
	Value  string           `json:"value"`
	Output string           `json:"output,omitempty"`
	Fields map[string]int64 `json:"fields,omitempty"`
}

func execute(text, qualifier, arg string, opts int) string {
	md := mode.Standard
	if opts&optOracle == optOracle {
		md = mode.Oracle
	}

	// Parse the literal.
	var (
		lit *temporal.Literal
		err error
	)
	if opts&optInterval == optInterval {
		lit, err = temporal.ParseInterval(text, qualifier, md)
	} else {
		lit, err = temporal.Parse(text, md)
	}
	if err != nil {
		return fmt.Sprintf("Error parsing %v", err)
	}

	res := result{Type: lit.Kind().String(), Value: lit.String()}
	switch {
	case opts&optFormat == optFormat:
		if res.Output, err = lit.Format(arg); err != nil {
			return fmt.Sprintf("Error formatting %v", err)
		}
	case opts&optExtract == optExtract:
		f, err := types.ParseField(arg)
		if err != nil {
			return fmt.Sprintf("Error %v", err)
		}
		n, err := lit.Extract(f)
		if err != nil {
			return fmt.Sprintf("Error %v", err)
		}
		res.Fields = map[string]int64{f.String(): n}
	}

	// Serialize the result
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts&optIndent == optIndent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		return fmt.Sprintf("Error serializing results: %v", err)
	}

	return html.EscapeString(buf.String())
}
