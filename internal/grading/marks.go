package grading

import (
	"strconv"
	"strings"
)

// deductionScale converts a handwritten point deduction into quality
// score: each deducted point costs 5 quality points. This is a fixed
// scaling constant, not a rubric-configurable one.
const deductionScale = 5

// DecodeManualMark converts a teacher's handwritten mark token into a
// quality score in [0,100]. It is total: every input decodes to a
// valid score. Rules are applied in order against the trimmed,
// case-normalized token:
//
//  1. checkmark glyph or "V"  -> 100
//  2. cross glyph or "X"      -> 0
//  3. "-<n>" deduction        -> max(0, 100 - n*5)
//  4. plain integer           -> the integer, clamped to [0,100]
//  5. anything else           -> 0
func DecodeManualMark(token string) int {
	raw := strings.ToUpper(strings.TrimSpace(token))

	switch {
	case raw == "V" || strings.ContainsAny(raw, "✓✔√"):
		return 100
	case raw == "X" || strings.ContainsAny(raw, "✗✘×"):
		return 0
	case strings.HasPrefix(raw, "-"):
		lost := leadingInt(raw[1:])
		return max(0, 100-lost*deductionScale)
	default:
		return clampScore(leadingInt(raw))
	}
}

// leadingInt parses the leading digit run of s, returning 0 when no
// digits are present.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func clampScore(n int) int {
	return min(max(n, 0), 100)
}
