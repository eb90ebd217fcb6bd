package docx

import (
	"encoding/xml"
	"testing"
)

func testNumbering(t *testing.T, raw string) *NumberingResolver {
	t.Helper()
	var parsed numberingXML
	if err := xml.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatalf("Failed to parse numbering XML: %v", err)
	}
	return NewNumberingResolver(&parsed)
}

const decimalNumbering = `<numbering>
	<abstractNum abstractNumId="0">
		<lvl ilvl="0"><start val="1"/><numFmt val="decimal"/><lvlText val="%1."/></lvl>
		<lvl ilvl="1"><start val="1"/><numFmt val="lowerLetter"/><lvlText val="%2."/></lvl>
	</abstractNum>
	<num numId="1"><abstractNumId val="0"/></num>
</numbering>`

func TestNextMarkerDecimal(t *testing.T) {
	nr := testNumbering(t, decimalNumbering)

	for i, want := range []string{"1.", "2.", "3."} {
		got := nr.NextMarker("1", 0)
		if got != want {
			t.Errorf("Item %d: expected marker %q, got %q", i+1, want, got)
		}
	}
}

func TestNextMarkerLowerLetter(t *testing.T) {
	nr := testNumbering(t, decimalNumbering)

	for i, want := range []string{"a.", "b.", "c."} {
		got := nr.NextMarker("1", 1)
		if got != want {
			t.Errorf("Item %d: expected marker %q, got %q", i+1, want, got)
		}
	}
}

func TestNextMarkerCountersIndependentPerLevel(t *testing.T) {
	nr := testNumbering(t, decimalNumbering)

	nr.NextMarker("1", 0)
	nr.NextMarker("1", 1)
	nr.NextMarker("1", 1)

	if got := nr.NextMarker("1", 0); got != "2." {
		t.Errorf("Expected level-0 counter unaffected by level 1, got %q", got)
	}
}

func TestNextMarkerStartValue(t *testing.T) {
	nr := testNumbering(t, `<numbering>
		<abstractNum abstractNumId="0">
			<lvl ilvl="0"><start val="5"/><numFmt val="decimal"/><lvlText val="%1."/></lvl>
		</abstractNum>
		<num numId="1"><abstractNumId val="0"/></num>
	</numbering>`)

	if got := nr.NextMarker("1", 0); got != "5." {
		t.Errorf("Expected first marker '5.', got %q", got)
	}
	if got := nr.NextMarker("1", 0); got != "6." {
		t.Errorf("Expected second marker '6.', got %q", got)
	}
}

func TestNextMarkerBullet(t *testing.T) {
	nr := testNumbering(t, `<numbering>
		<abstractNum abstractNumId="0">
			<lvl ilvl="0"><numFmt val="bullet"/><lvlText val="•"/></lvl>
		</abstractNum>
		<num numId="1"><abstractNumId val="0"/></num>
	</numbering>`)

	if got := nr.NextMarker("1", 0); got != "•" {
		t.Errorf("Expected bullet marker, got %q", got)
	}
	// Bullets do not advance a counter; the marker is stable.
	if got := nr.NextMarker("1", 0); got != "•" {
		t.Errorf("Expected stable bullet marker, got %q", got)
	}
}

func TestNextMarkerSymbolFontBulletFallsBack(t *testing.T) {
	// U+F0B7 is the Symbol-font bullet Word emits; without that font it
	// renders as tofu, so the resolver substitutes a Unicode bullet.
	nr := testNumbering(t, `<numbering>
		<abstractNum abstractNumId="0">
			<lvl ilvl="1"><numFmt val="bullet"/><lvlText val="&#xF0B7;"/></lvl>
		</abstractNum>
		<num numId="1"><abstractNumId val="0"/></num>
	</numbering>`)

	if got := nr.NextMarker("1", 1); got != "○" {
		t.Errorf("Expected level-1 fallback bullet '○', got %q", got)
	}
}

func TestNextMarkerUnknownNumIDDefaultsToBullet(t *testing.T) {
	nr := NewNumberingResolver(nil)

	if got := nr.NextMarker("99", 0); got != "•" {
		t.Errorf("Expected default bullet for unknown numbering, got %q", got)
	}
}

func TestIsListParagraph(t *testing.T) {
	nr := NewNumberingResolver(nil)

	if nr.IsListParagraph("") {
		t.Error("Empty numId should not be a list")
	}
	if nr.IsListParagraph("0") {
		t.Error("numId 0 means numbering removed, should not be a list")
	}
	if !nr.IsListParagraph("1") {
		t.Error("numId 1 should be a list")
	}
}

func TestFormatOrdinalRoman(t *testing.T) {
	tests := []struct {
		n      int
		format string
		want   string
	}{
		{1, "upperRoman", "I"},
		{4, "upperRoman", "IV"},
		{9, "upperRoman", "IX"},
		{14, "lowerRoman", "xiv"},
		{1999, "upperRoman", "MCMXCIX"},
	}

	for _, tt := range tests {
		if got := formatOrdinal(tt.n, tt.format); got != tt.want {
			t.Errorf("formatOrdinal(%d, %s): expected %q, got %q", tt.n, tt.format, tt.want, got)
		}
	}
}

func TestLetterOrdinalWraps(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "a"},
		{26, "z"},
		{27, "aa"},
		{52, "az"},
		{53, "ba"},
	}

	for _, tt := range tests {
		if got := formatOrdinal(tt.n, "lowerLetter"); got != tt.want {
			t.Errorf("formatOrdinal(%d): expected %q, got %q", tt.n, tt.want, got)
		}
	}
}
