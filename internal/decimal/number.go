package decimal

import (
	"fmt"
	"strings"
)

// Number is a non-negative integer in decimal notation, most significant
// digit first. Numbers are values: no operation in this package mutates one.
// The zero value is the number 0.
type Number struct {
	digits string
}

// Zero returns the number 0.
func Zero() Number { return Number{digits: "0"} }

// One returns the number 1.
func One() Number { return Number{digits: "1"} }

// Parse converts a decimal numeral into a Number. The numeral must be
// non-empty, contain only the digits 0-9, and carry no leading zero unless it
// is exactly "0". Parse applies no capacity limit.
func Parse(s string) (Number, error) {
	if s == "" {
		return Number{}, &ArgumentError{Op: "parse", Reason: "empty numeral"}
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Number{}, &ArgumentError{Op: "parse", Reason: fmt.Sprintf("invalid digit %q at position %d", s[i], i)}
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return Number{}, &ArgumentError{Op: "parse", Reason: "leading zero"}
	}
	return Number{digits: strings.Clone(s)}, nil
}

// MustParse is like Parse but panics on a malformed numeral. It is meant for
// literals in tests and examples.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return n
}

// String returns the decimal representation, most significant digit first.
func (n Number) String() string {
	if n.digits == "" {
		return "0"
	}
	return n.digits
}

// Len returns the number of decimal digits. Zero has one digit.
func (n Number) Len() int {
	if n.digits == "" {
		return 1
	}
	return len(n.digits)
}

// IsZero reports whether n is 0.
func (n Number) IsZero() bool {
	return n.digits == "" || n.digits == "0"
}

// Cmp compares n and m and returns -1, 0 or +1.
func (n Number) Cmp(m Number) int {
	a, b := n.String(), m.String()
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return strings.Compare(a, b)
}

// Equal reports whether n and m hold the same value.
func (n Number) Equal(m Number) bool {
	return n.String() == m.String()
}

// digitAt returns the value of the i-th digit counted from the least
// significant end, or 0 past the most significant digit.
func digitAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[len(s)-1-i] - '0'
}
