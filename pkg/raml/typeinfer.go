package raml

import (
	"strings"
	"unicode"
)

// ParamType is the scalar type inferred for a query parameter.
type ParamType string

// Scalar types, in the order Classify tries them.
const (
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeString  ParamType = "string"
)

// Classify returns the scalar type of a textual value.
// A value is a number if it starts with a decimal number after leading
// whitespace ("10px", "2024-01-01" and "0x1A" all count), a boolean if it is
// exactly "true" or "false", otherwise a string.
func Classify(value string) ParamType {
	if hasNumericPrefix(value) {
		return TypeNumber
	}
	if value == "true" || value == "false" {
		return TypeBoolean
	}
	return TypeString
}

// hasNumericPrefix reports whether value begins with an optionally signed
// "Infinity" or a decimal literal with at least one digit.
func hasNumericPrefix(value string) bool {
	s := strings.TrimLeftFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if strings.HasPrefix(s, "Infinity") {
		return true
	}
	if s != "" && s[0] == '.' {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
