// Package options normalizes per-blog option responses from blogging
// platform backends.
//
// Two response shapes exist in the wild: the legacy RPC options listing,
// where every option is wrapped in a descriptor mapping with a "value"
// entry, and the newer settings endpoint, which returns a flat mapping of
// option name to value. This package flattens both into a single Options
// shape and extracts a couple of well-known defaults from it. Everything
// here is pure and best-effort: malformed input degrades to a partial or
// empty result, never to an error.
package options

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a single normalized option value: either a string or a number.
// The zero Value is an empty string.
type Value struct {
	str    string
	num    float64
	number bool
}

// String wraps a string as a Value.
func String(s string) Value {
	return Value{str: s}
}

// Number wraps a number as a Value.
func Number(n float64) Value {
	return Value{num: n, number: true}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.number
}

// Text returns the value as a string. Numbers are formatted with the
// shortest representation that round-trips ("5", not "5.000000").
func (v Value) Text() string {
	if v.number {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Float returns the numeric value. For string values it attempts a parse;
// ok is false when the string does not encode a number.
func (v Value) Float() (float64, bool) {
	if v.number {
		return v.num, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 converts the value to an integer identifier. Native numbers must be
// integral; strings must encode an integer (legacy RPC responses store
// numeric IDs as strings). Returns (0, false) when no such conversion
// exists. It never errors.
func (v Value) Int64() (int64, bool) {
	if v.number {
		if math.Trunc(v.num) != v.num || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return 0, false
		}
		return int64(v.num), true
	}

	s := strings.TrimSpace(v.str)
	if s == "" {
		return 0, false
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, true
	}
	// Tolerate "5.0" style encodings as long as they are integral.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.Trunc(f) != f {
		return 0, false
	}
	return int64(f), true
}

// MarshalJSON encodes numbers as JSON numbers and strings as JSON strings,
// so a stored Options mapping decodes back to the same values.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.number {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts a JSON string or number. Anything else is an error;
// Options documents written by this package only ever contain those two.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("option value must be a string or number, got null")
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("parsing option number %q: %w", n.String(), err)
		}
		*v = Number(f)
		return nil
	}

	return fmt.Errorf("option value must be a string or number, got %s", data)
}

// scalar converts a dynamically-typed entry from a decoded response into a
// Value. Only strings and numbers qualify; everything else (nested
// structures, arrays, booleans, nil) is rejected.
func scalar(raw any) (Value, bool) {
	switch x := raw.(type) {
	case string:
		return String(x), true
	case float64:
		return Number(x), true
	case int:
		return Number(float64(x)), true
	case int64:
		return Number(float64(x)), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, false
		}
		return Number(f), true
	default:
		return Value{}, false
	}
}
