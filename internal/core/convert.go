package core

import (
	"math"
	"regexp"
	"strconv"
)

// numericRegex accepts plain decimal floating point: optional sign, digits
// with an optional fraction, optional exponent. No whitespace, no NaN or
// Inf, no thousands separators.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses s as a decimal floating-point number.
// Returns false for anything numericRegex rejects or that overflows float64.
func ParseNumber(s string) (float64, bool) {
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// sortKey resolves the comparison kind of a cell. Numbers stay numbers;
// text that parses as a number compares numerically.
func sortKey(v Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	return ParseNumber(v.text)
}
