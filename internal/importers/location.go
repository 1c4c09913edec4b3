package importers

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

var (
	// Plain decimal numbers, optionally with a fractional part. Anything else
	// (hex, underscores, exponents) only gets the leading-digit fallback.
	decimalPattern        = regexp.MustCompile(`^[+-]?\d+(\.\d*)?$`)
	leadingZerosPattern   = regexp.MustCompile(`^([+-]?)0+(\d)`)
	leadingIntegerPattern = regexp.MustCompile(`^\s*[+-]?\d+`)
)

// ParseLocation coerces a loosely typed location value into a non-negative
// integer. Anything that cannot be read as one yields nil instead of an error.
//
// Numbers are truncated toward zero. Strings are read as decimal ("08" is 8,
// "3.0" is 3) and otherwise up to the first non-digit ("12abc" is 12, "3.9"
// is 3). Ranges such as "638-640" get no special treatment here. Zero is a
// valid location.
func ParseLocation(v any) *int {
	switch value := v.(type) {
	case nil, bool:
		return nil
	case float64:
		if math.IsNaN(value) || math.IsInf(value, 0) || math.Abs(value) > math.MaxInt32 {
			return nil
		}
	case string:
		value = strings.TrimSpace(value)
		if !decimalPattern.MatchString(value) {
			return leadingInteger(value)
		}
		// cast parses with base 0, so leading zeros would read as octal.
		v = leadingZerosPattern.ReplaceAllString(value, "${1}${2}")
	}

	n, err := cast.ToIntE(v)
	if err != nil {
		if s, ok := v.(string); ok {
			return leadingInteger(s)
		}
		return nil
	}
	return nonNegative(n)
}

func leadingInteger(s string) *int {
	match := leadingIntegerPattern.FindString(s)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(match))
	if err != nil {
		return nil
	}
	return nonNegative(n)
}

func nonNegative(n int) *int {
	if n < 0 {
		return nil
	}
	return &n
}
