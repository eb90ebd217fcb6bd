package docx

import (
	"strconv"
	"strings"
)

// ListType represents the type of list.
type ListType int

const (
	ListTypeUnordered ListType = iota // Bullet list
	ListTypeOrdered                   // Numbered list
)

// NumberingResolver resolves numbering definitions from numbering.xml
// into rendered marker text.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
	counters     map[string]int             // numId/level -> next ordinal
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
		counters:     make(map[string]int),
	}

	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}
	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}

	return nr
}

// IsListParagraph returns true if the numbering reference denotes a
// real list.
func (nr *NumberingResolver) IsListParagraph(numID string) bool {
	return numID != "" && numID != "0"
}

// NextMarker returns the rendered marker text for the next item of the
// given numbering instance and level, advancing the ordinal counter for
// ordered formats.
func (nr *NumberingResolver) NextMarker(numID string, level int) string {
	listType, bullet, startAt := nr.resolveLevel(numID, level)
	if listType == ListTypeUnordered {
		return bullet
	}

	key := numID + "/" + strconv.Itoa(level)
	ordinal, ok := nr.counters[key]
	if !ok {
		ordinal = startAt
	}
	nr.counters[key] = ordinal + 1
	return formatOrdinal(ordinal, nr.levelFormat(numID, level)) + "."
}

// resolveLevel returns the format info for a given numId and level.
func (nr *NumberingResolver) resolveLevel(numID string, level int) (listType ListType, bullet string, startAt int) {
	listType = ListTypeUnordered
	bullet = "•"
	startAt = 1

	lvl := nr.level(numID, level)
	if lvl == nil {
		return
	}

	switch lvl.NumFmt.Val {
	case "bullet":
		listType = ListTypeUnordered
		bullet = getBulletChar(lvl.LvlText.Val, level)
	case "decimal", "lowerLetter", "upperLetter", "lowerRoman", "upperRoman":
		listType = ListTypeOrdered
		bullet = ""
	default:
		listType = ListTypeUnordered
	}

	if lvl.Start.Val != "" {
		if s, err := strconv.Atoi(lvl.Start.Val); err == nil {
			startAt = s
		}
	}
	return
}

// levelFormat returns the numFmt of a level, defaulting to decimal.
func (nr *NumberingResolver) levelFormat(numID string, level int) string {
	if lvl := nr.level(numID, level); lvl != nil && lvl.NumFmt.Val != "" {
		return lvl.NumFmt.Val
	}
	return "decimal"
}

// level finds the level definition for a numbering instance.
func (nr *NumberingResolver) level(numID string, level int) *lvlXML {
	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return nil
	}
	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return nil
	}
	levelStr := strconv.Itoa(level)
	for i := range abstractNum.Levels {
		if abstractNum.Levels[i].ILvl == levelStr {
			return &abstractNum.Levels[i]
		}
	}
	return nil
}

// formatOrdinal renders an ordinal in the given OOXML number format.
func formatOrdinal(n int, format string) string {
	if n < 1 {
		n = 1
	}
	switch format {
	case "lowerLetter":
		return letterOrdinal(n, 'a')
	case "upperLetter":
		return letterOrdinal(n, 'A')
	case "lowerRoman":
		return strings.ToLower(romanOrdinal(n))
	case "upperRoman":
		return romanOrdinal(n)
	default:
		return strconv.Itoa(n)
	}
}

// letterOrdinal renders 1->a, 26->z, 27->aa.
func letterOrdinal(n int, base rune) string {
	var sb strings.Builder
	for n > 0 {
		n--
		sb.WriteRune(base + rune(n%26))
		n /= 26
	}
	// Reverse
	runes := []rune(sb.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// romanOrdinal renders an uppercase roman numeral.
func romanOrdinal(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(symbols[i])
			n -= v
		}
	}
	return sb.String()
}

// getBulletChar returns the appropriate bullet character for the level.
func getBulletChar(lvlText string, level int) string {
	// Common Word bullet characters (standard Unicode)
	bullets := []string{"•", "○", "■", "□", "▪", "▫", "►", "◦"}

	// If lvlText specifies a character, check if it's usable
	if lvlText != "" && !strings.Contains(lvlText, "%") {
		if isRenderableBullet(lvlText) {
			return lvlText
		}
	}

	// Default based on level
	if level >= 0 && level < len(bullets) {
		return bullets[level]
	}
	return "•"
}

// isRenderableBullet checks if a bullet character will render properly.
// Returns false for Private Use Area characters that require special
// fonts; Word commonly uses U+F0xx for Symbol/Wingdings characters.
func isRenderableBullet(s string) bool {
	for _, r := range s {
		if r >= 0xE000 && r <= 0xF8FF {
			return false
		}
		if r < 0x20 {
			return false
		}
	}
	return len(s) > 0
}
