package format

import "strings"

// FormatNumberString inserts thousand separators into a string of decimal
// digits: "1234567" becomes "1,234,567".
func FormatNumberString(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(n + (n-1)/3)

	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
