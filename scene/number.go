package scene

import (
	"math"
	"strconv"
	"strings"
)

// Number is a float64 that marshals rounded to 3 decimals and always with
// a fractional part: 12 is written as 12.0, -0.0001 as 0.0.
// Non-finite values are written as null.
type Number float64

// Round returns n rounded to 3 decimals, halves to even on the exact
// binary value.
func (n Number) Round() float64 {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	if r == 0 {
		return 0 // drop the sign of negative zero
	}
	return r
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	v := n.Round()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}
