package v4front

import (
	"math"
	"strconv"
)

// parseLiteral recognizes a signed 32-bit integer token with
// auto-detected base: "0x"/"0X" prefix selects hex, a bare leading "0"
// followed by more digits selects octal, anything else is decimal. An
// optional leading sign is allowed before the prefix. The whole token
// must be consumed and the value must fit in int32, or this reports
// false and the token falls through to the next classification tier.
func parseLiteral(tok string) (int32, bool) {
	s := tok
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}

	base := 10
	digits := s
	switch {
	case len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
		base = 16
		digits = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
		digits = s[1:]
	}
	if digits == "" {
		return 0, false
	}

	val, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}

	signed := int64(val)
	if neg {
		signed = -signed
	}
	if signed < math.MinInt32 || signed > math.MaxInt32 {
		return 0, false
	}
	return int32(signed), true
}
