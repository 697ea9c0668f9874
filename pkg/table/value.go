package table

import (
	"cmp"
	"strconv"
)

// Kind is the type tag carried by every column. It is decided once when a
// table is loaded and never re-inferred afterwards.
type Kind int

const (
	// Text columns hold strings.
	Text Kind = iota
	// Number columns hold float64 values (integers included).
	Number
	// Bool columns hold true/false.
	Bool
)

// String returns the kind name used in logs and reports.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	default:
		return "text"
	}
}

// MarshalText lets kinds appear by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Value is a single cell. Only the field matching the column's Kind is
// meaningful; a Value with Valid == false is the missing marker.
type Value struct {
	Str   string
	Num   float64
	Bool  bool
	Valid bool
}

// Null returns the missing value.
func Null() Value {
	return Value{}
}

// NumberValue returns a non-null numeric value.
func NumberValue(f float64) Value {
	return Value{Num: f, Valid: true}
}

// TextValue returns a non-null text value.
func TextValue(s string) Value {
	return Value{Str: s, Valid: true}
}

// BoolValue returns a non-null boolean value.
func BoolValue(b bool) Value {
	return Value{Bool: b, Valid: true}
}

// IsNull reports whether v is the missing marker.
func (v Value) IsNull() bool {
	return !v.Valid
}

// Format renders v for a column of kind k. Nulls render as "".
func (v Value) Format(k Kind) string {
	if !v.Valid {
		return ""
	}
	switch k {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// Equal reports whether a and b hold the same value for kind k.
// Two nulls are equal.
func Equal(a, b Value, k Kind) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	return Compare(a, b, k) == 0
}

// Compare orders two non-null values of kind k: numbers numerically,
// booleans false before true, text byte-wise. Nulls sort first.
func Compare(a, b Value, k Kind) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	switch k {
	case Number:
		return cmp.Compare(a.Num, b.Num)
	case Bool:
		switch {
		case a.Bool == b.Bool:
			return 0
		case !a.Bool:
			return -1
		default:
			return 1
		}
	default:
		return cmp.Compare(a.Str, b.Str)
	}
}
