// Package cnpj validates and formats Brazilian company registration numbers.
package cnpj

import "strings"

var (
	weights1 = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	weights2 = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Digits strips everything but 0-9.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid checks length and both check digits. Punctuation is ignored.
func IsValid(s string) bool {
	d := Digits(s)
	if len(d) != 14 || allEqual(d) {
		return false
	}
	return checkDigit(d[:12], weights1) == d[12] && checkDigit(d[:13], weights2) == d[13]
}

// Format renders 14 digits as 00.000.000/0000-00. Anything else is returned untouched.
func Format(s string) string {
	d := Digits(s)
	if len(d) != 14 {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

func checkDigit(base string, weights []int) byte {
	sum := 0
	for i, w := range weights {
		sum += int(base[i]-'0') * w
	}
	r := sum % 11
	if r < 2 {
		return '0'
	}
	return byte('0' + 11 - r)
}

func allEqual(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
