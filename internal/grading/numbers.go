package grading

import (
	"strconv"
	"strings"
	"unicode"
)

// hebrewNumerals maps single Hebrew letters used as question labels to
// their ordinal values (א..י = 1..10).
var hebrewNumerals = map[string]int{
	"א": 1, "ב": 2, "ג": 3, "ד": 4, "ה": 5,
	"ו": 6, "ז": 7, "ח": 8, "ט": 9, "י": 10,
}

// NormalizeLabel reduces a question label to a canonical string form
// for rubric lookup and reporting: embedded digits are extracted
// ("שאלה 3." -> "3"), single Hebrew numeral letters are mapped to
// their ordinal value, and anything else is returned trimmed as-is.
func NormalizeLabel(l Label) string {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return s
	}

	if digits := extractDigits(s); digits != "" {
		return strings.TrimLeft(digits, "0")
	}

	if n, ok := hebrewNumerals[s]; ok {
		return strconv.Itoa(n)
	}

	return s
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	digits := b.String()
	if strings.Trim(digits, "0") == "" {
		return "0"
	}
	return digits
}

// naturalLess compares two question labels in natural order: runs of
// digits compare by numeric value, everything else compares
// case-insensitively byte-wise, so "10" sorts after "2".
func naturalLess(a, b string) bool {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	for a != "" && b != "" {
		aDigit := isDigit(a[0])
		bDigit := isDigit(b[0])

		switch {
		case aDigit && bDigit:
			aNum, aRest := splitLeadingNumber(a)
			bNum, bRest := splitLeadingNumber(b)
			if aNum != bNum {
				return aNum < bNum
			}
			a, b = aRest, bRest
		case aDigit != bDigit:
			// Digits sort before letters so "1a" precedes "a1".
			return aDigit
		default:
			if a[0] != b[0] {
				return a[0] < b[0]
			}
			a, b = a[1:], b[1:]
		}
	}

	return a == "" && b != ""
}

func splitLeadingNumber(s string) (int64, string) {
	end := 0
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return n, s[end:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
