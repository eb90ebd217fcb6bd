package odt

import (
	"strconv"
	"strings"
)

// levelBullets are the fallback bullet characters per nesting level,
// matching the LibreOffice defaults.
var levelBullets = []string{"•", "○", "■", "□", "▪", "▫"}

// bulletForLevel returns the fallback bullet character for a nesting
// level.
func bulletForLevel(level int) string {
	if level >= 0 && level < len(levelBullets) {
		return levelBullets[level]
	}
	return "•"
}

// usableBullet reports whether a bullet character renders outside
// symbol fonts. Documents authored with Wingdings and friends store
// private-use codepoints that have no glyph in a text face.
func usableBullet(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
	}
	return true
}

// formatListNumber formats an ordinal according to an ODF num-format.
func formatListNumber(num int, format string) string {
	switch format {
	case "a":
		return toLetter(num)
	case "A":
		return strings.ToUpper(toLetter(num))
	case "i":
		return strings.ToLower(toRoman(num))
	case "I":
		return toRoman(num)
	default:
		return strconv.Itoa(num)
	}
}

// toLetter converts an ordinal to letters: 1=a, 26=z, 27=aa.
func toLetter(n int) string {
	if n < 1 {
		return "a"
	}
	result := ""
	for n > 0 {
		n--
		result = string(rune('a'+n%26)) + result
		n /= 26
	}
	return result
}

// toRoman converts an ordinal to uppercase Roman numerals.
func toRoman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}

	numerals := []struct {
		value  int
		symbol string
	}{
		{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
		{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}

	result := ""
	for _, rn := range numerals {
		for n >= rn.value {
			result += rn.symbol
			n -= rn.value
		}
	}
	return result
}
