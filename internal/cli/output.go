package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/theory/sqltemporal/temporal/types"
	"gopkg.in/yaml.v3"
)

// report is the result of a command. Text output prints Value, followed by
// one "name: value" line for each encoding field that is set. When Fields
// is set, text output prints only the fields.
type report struct {
	Type      string       `json:"type"                yaml:"type"`
	Mode      string       `json:"mode"                yaml:"mode"`
	Value     string       `json:"value"               yaml:"value"`
	Qualifier string       `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`
	Precision *int         `json:"precision,omitempty" yaml:"precision,omitempty"`
	Days      *int64       `json:"days,omitempty"      yaml:"days,omitempty"`
	Months    *int64       `json:"months,omitempty"    yaml:"months,omitempty"`
	Ticks     *int64       `json:"ticks,omitempty"     yaml:"ticks,omitempty"`
	Fields    []fieldValue `json:"fields,omitempty"    yaml:"fields,omitempty"`
}

// fieldValue is an extracted field.
type fieldValue struct {
	Name  string `json:"name"  yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// newReport creates a report describing val. Set encoding to include the
// integer encoding of val.
func newReport(val types.Value, encoding bool) *report {
	r := &report{Value: val.String(), Mode: val.Mode().String()}
	switch val := val.(type) {
	case *types.Date:
		r.Type = "date"
		if encoding {
			r.Days = ptr(int64(val.Days()))
		}
	case *types.Time:
		r.Type = "time"
		if encoding {
			r.Precision = ptr(val.Precision())
			r.Ticks = ptr(int64(val.Ticks()))
		}
	case *types.Timestamp:
		r.Type = "timestamp"
		if encoding {
			r.Precision = ptr(val.Precision())
			r.Ticks = ptr(val.Ticks())
		}
	case *types.Interval:
		r.Type = "interval"
		r.Qualifier = val.Qualifier().String()
		if encoding {
			r.Precision = ptr(val.Precision())
			r.Months = ptr(int64(val.Months()))
			r.Ticks = ptr(val.Ticks())
		}
	}
	return r
}

func ptr[T any](v T) *T { return &v }

// write writes r to w in format, one of the ValidOutputs.
func (r *report) write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		//nolint:wrapcheck // Okay to return unwrapped error
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		//nolint:wrapcheck // Okay to return unwrapped error
		return enc.Close()
	default:
		return r.text(w)
	}
}

func (r *report) text(w io.Writer) error {
	if len(r.Fields) > 0 {
		for _, f := range r.Fields {
			if _, err := fmt.Fprintf(w, "%s: %d\n", f.Name, f.Value); err != nil {
				return err
			}
		}
		return nil
	}

	if _, err := fmt.Fprintln(w, r.Value); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		val  *int64
	}{
		{"days", r.Days},
		{"months", r.Months},
		{"ticks", r.Ticks},
	} {
		if f.val != nil {
			if _, err := fmt.Fprintf(w, "%s: %d\n", f.name, *f.val); err != nil {
				return err
			}
		}
	}
	if r.Precision != nil {
		if _, err := fmt.Fprintf(w, "precision: %d\n", *r.Precision); err != nil {
			return err
		}
	}
	return nil
}
