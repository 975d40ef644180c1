package model

import (
	"strconv"
)

// Kind identifies what a cell holds
type Kind int

const (
	KindMissing Kind = iota
	KindString
	KindNumber
)

// Value is a single cell of a record table.
// The zero Value is missing.
type Value struct {
	Kind Kind
	Str  string
	Num  float64
}

// Missing returns the explicit missing marker
func Missing() Value {
	return Value{}
}

// String wraps a text cell
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Number wraps a numeric cell
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// IsMissing reports whether the cell carries no value
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Text renders the cell the way it is shown to a reader.
// Numbers drop trailing zeros, missing cells render empty.
func (v Value) Text() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	default:
		return ""
	}
}

// Float returns the numeric content, or 0 for anything that is not a number
func (v Value) Float() float64 {
	if v.Kind == KindNumber {
		return v.Num
	}
	return 0
}

// Interface returns the cell as a plain Go value: nil, string or float64.
// Exporters use it to hand cells to encoders.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return v.Num
	default:
		return nil
	}
}

// FormatNumber formats a float without exponent or trailing zeros
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
