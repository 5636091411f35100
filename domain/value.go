package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags what a report cell holds.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindFormula
)

// Value is a single report cell. Formula values are deferred expressions that the
// spreadsheet evaluates on open; they are never computed here.
type Value struct {
	Kind   Kind
	Text   string
	Number decimal.Decimal
}

// Empty is the zero Value.
var Empty = Value{}

// Text wraps s; a blank string yields Empty.
func Text(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty
	}
	return Value{Kind: KindText, Text: s}
}

// Number wraps d.
func Number(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Number: d}
}

// Formula wraps a spreadsheet expression. A leading "=" is dropped.
func Formula(expr string) Value {
	return Value{Kind: KindFormula, Text: strings.TrimPrefix(expr, "=")}
}

// ParseNumber reads raw export text as a number. Thousands separators and
// surrounding spaces are ignored; anything else that does not parse is Empty.
func ParseNumber(raw string) Value {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return Empty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Empty
	}
	return Number(d)
}

// IsEmpty reports whether v holds nothing.
func (v Value) IsEmpty() bool { return v.Kind == KindEmpty }

// IsFormula reports whether v is a deferred expression.
func (v Value) IsFormula() bool { return v.Kind == KindFormula }

// Positive reports whether v is a number greater than zero.
func (v Value) Positive() bool {
	return v.Kind == KindNumber && v.Number.IsPositive()
}

// String renders v the way it is measured for column widths.
func (v Value) String() string {
	switch v.Kind {
	case KindText, KindFormula:
		return v.Text
	case KindNumber:
		return v.Number.String()
	default:
		return ""
	}
}
