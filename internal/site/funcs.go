package site

import (
	"html/template"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var funcs = template.FuncMap{
	"inr":   formatINR,
	"inc":   func(i int) int { return i + 1 },
	"title": capitalize,
}

// formatINR renders whole rupees with Indian digit grouping: 9000 is
// "₹9,000" and 1250000 is "₹12,50,000".
func formatINR(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.Itoa(amount)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return sign + "₹" + strings.Join(groups, ",") + "," + tail
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
