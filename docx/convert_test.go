package docx

import (
	"encoding/xml"
	"math"
	"testing"

	"github.com/tsawler/pageflow/flow"
)

func parseParagraph(t *testing.T, raw string) *paragraphXML {
	t.Helper()
	var p paragraphXML
	if err := xml.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Failed to parse paragraph XML: %v", err)
	}
	return &p
}

func emptyResolvers() (*StyleResolver, *NumberingResolver) {
	return NewStyleResolver(nil), NewNumberingResolver(nil)
}

func TestConvertParagraphText(t *testing.T) {
	para := parseParagraph(t, `<p><r><t>Hello</t></r><r><t> world</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if len(block.Runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(block.Runs))
	}
	if block.Runs[0].Text != "Hello" {
		t.Errorf("Expected first run 'Hello', got %q", block.Runs[0].Text)
	}
	if block.Runs[1].Text != " world" {
		t.Errorf("Expected second run ' world', got %q", block.Runs[1].Text)
	}
}

func TestConvertParagraphDirectSpacing(t *testing.T) {
	// 240 twips = 12pt = 16px at 96 DPI
	para := parseParagraph(t, `<p><pPr><spacing before="240" after="120"/></pPr><r><t>x</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if math.Abs(block.Attrs.Spacing.Before-16) > 0.001 {
		t.Errorf("Expected before spacing 16, got %f", block.Attrs.Spacing.Before)
	}
	if math.Abs(block.Attrs.Spacing.After-8) > 0.001 {
		t.Errorf("Expected after spacing 8, got %f", block.Attrs.Spacing.After)
	}
	if !block.Attrs.SpacingExplicit.Before || !block.Attrs.SpacingExplicit.After {
		t.Error("Expected direct spacing to be marked explicit")
	}
}

func TestConvertParagraphStyleInheritance(t *testing.T) {
	stylesRaw := `<styles>
		<style type="paragraph" styleId="Base">
			<name val="Base"/>
			<pPr><spacing before="240"/><contextualSpacing/></pPr>
		</style>
		<style type="paragraph" styleId="Derived">
			<name val="Derived"/>
			<basedOn val="Base"/>
			<pPr><spacing after="240"/></pPr>
		</style>
	</styles>`
	var parsed stylesXML
	if err := xml.Unmarshal([]byte(stylesRaw), &parsed); err != nil {
		t.Fatalf("Failed to parse styles XML: %v", err)
	}
	styles := NewStyleResolver(&parsed)
	nums := NewNumberingResolver(nil)

	para := parseParagraph(t, `<p><pPr><pStyle val="Derived"/></pPr><r><t>x</t></r></p>`)
	block := convertParagraph(para, "p1", styles, nums)

	if math.Abs(block.Attrs.Spacing.Before-16) > 0.001 {
		t.Errorf("Expected inherited before spacing 16, got %f", block.Attrs.Spacing.Before)
	}
	if math.Abs(block.Attrs.Spacing.After-16) > 0.001 {
		t.Errorf("Expected derived after spacing 16, got %f", block.Attrs.Spacing.After)
	}
	if !block.Attrs.ContextualSpacing {
		t.Error("Expected contextualSpacing inherited from base style")
	}
	if block.Attrs.SpacingExplicit.Before {
		t.Error("Style-supplied spacing should not count as explicit")
	}
	if block.Attrs.StyleID != "Derived" {
		t.Errorf("Expected style ID 'Derived', got %q", block.Attrs.StyleID)
	}
}

func TestConvertParagraphToggleOverride(t *testing.T) {
	para := parseParagraph(t, `<p><pPr><contextualSpacing val="0"/><keepLines/></pPr><r><t>x</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if block.Attrs.ContextualSpacing {
		t.Error("Expected contextualSpacing val=\"0\" to mean off")
	}
	if !block.Attrs.KeepLines {
		t.Error("Expected bare keepLines element to mean on")
	}
}

func TestConvertParagraphNegativeIndent(t *testing.T) {
	para := parseParagraph(t, `<p><pPr><ind left="-300"/></pPr><r><t>x</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if math.Abs(block.Attrs.Indent.Left-(-20)) > 0.001 {
		t.Errorf("Expected left indent -20, got %f", block.Attrs.Indent.Left)
	}
}

func TestConvertParagraphFrame(t *testing.T) {
	para := parseParagraph(t, `<p><pPr><framePr wrap="none" x="1440" y="720" xAlign="right"/></pPr><r><t>x</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if block.Attrs.Frame == nil {
		t.Fatal("Expected a frame on the paragraph")
	}
	if block.Attrs.Frame.Wrap != flow.WrapNone {
		t.Errorf("Expected wrap 'none', got %q", block.Attrs.Frame.Wrap)
	}
	if math.Abs(block.Attrs.Frame.X-96) > 0.001 {
		t.Errorf("Expected frame x 96, got %f", block.Attrs.Frame.X)
	}
	if math.Abs(block.Attrs.Frame.Y-48) > 0.001 {
		t.Errorf("Expected frame y 48, got %f", block.Attrs.Frame.Y)
	}
	if block.Attrs.Frame.XAlign != flow.AlignRight {
		t.Errorf("Expected xAlign 'right', got %q", block.Attrs.Frame.XAlign)
	}
}

func TestConvertParagraphFrameWrapAroundIgnored(t *testing.T) {
	para := parseParagraph(t, `<p><pPr><framePr wrap="around" x="1440"/></pPr><r><t>x</t></r></p>`)
	styles, nums := emptyResolvers()

	block := convertParagraph(para, "p1", styles, nums)

	if block.Attrs.Frame != nil {
		t.Error("Expected no frame for wrap modes other than 'none'")
	}
}

func TestConvertParagraphFloatAlignment(t *testing.T) {
	tests := []struct {
		jc   string
		want flow.Alignment
	}{
		{"right", flow.AlignRight},
		{"end", flow.AlignRight},
		{"center", flow.AlignCenter},
		{"left", flow.AlignNone},
		{"both", flow.AlignNone},
	}

	styles, nums := emptyResolvers()
	for _, tt := range tests {
		para := parseParagraph(t, `<p><pPr><jc val="`+tt.jc+`"/></pPr><r><t>x</t></r></p>`)
		block := convertParagraph(para, "p1", styles, nums)
		if block.Attrs.FloatAlignment != tt.want {
			t.Errorf("jc=%q: expected alignment %q, got %q", tt.jc, tt.want, block.Attrs.FloatAlignment)
		}
	}
}

func TestConvertAnchoredDrawing(t *testing.T) {
	raw := `<p><r><drawing><anchor>
		<extent cx="914400" cy="457200"/>
		<positionH relativeFrom="margin"><align>right</align></positionH>
		<positionV relativeFrom="page"><posOffset>914400</posOffset></positionV>
	</anchor></drawing></r></p>`
	para := parseParagraph(t, raw)

	objects := convertAnchors(para, "p1")

	if len(objects) != 1 {
		t.Fatalf("Expected 1 anchored object, got %d", len(objects))
	}
	obj := objects[0]
	if obj.AnchorBlockID != "p1" {
		t.Errorf("Expected anchor block 'p1', got %q", obj.AnchorBlockID)
	}
	if math.Abs(obj.Measure.Width-96) > 0.001 {
		t.Errorf("Expected width 96, got %f", obj.Measure.Width)
	}
	if math.Abs(obj.Measure.Height-48) > 0.001 {
		t.Errorf("Expected height 48, got %f", obj.Measure.Height)
	}
	if obj.Attrs.HRelativeFrom != flow.RelMargin {
		t.Errorf("Expected horizontal frame 'margin', got %q", obj.Attrs.HRelativeFrom)
	}
	if obj.Attrs.AlignH != flow.AlignRight {
		t.Errorf("Expected horizontal align 'right', got %q", obj.Attrs.AlignH)
	}
	if obj.Attrs.VRelativeFrom != flow.RelPage {
		t.Errorf("Expected vertical frame 'page', got %q", obj.Attrs.VRelativeFrom)
	}
	if math.Abs(obj.Attrs.OffsetY-96) > 0.001 {
		t.Errorf("Expected vertical offset 96, got %f", obj.Attrs.OffsetY)
	}
}

func TestConvertInlineDrawingNotAnchored(t *testing.T) {
	para := parseParagraph(t, `<p><r><drawing><inline><extent cx="914400" cy="914400"/></inline></drawing></r></p>`)

	objects := convertAnchors(para, "p1")

	if len(objects) != 0 {
		t.Errorf("Expected no anchored objects for inline drawing, got %d", len(objects))
	}
}

func TestPageConfigFromSectPr(t *testing.T) {
	raw := `<document><body>
		<p><r><t>x</t></r></p>
		<sectPr>
			<pgSz w="12240" h="15840"/>
			<pgMar top="1440" bottom="1440" left="720" right="720"/>
			<cols num="2" space="720"/>
		</sectPr>
	</body></document>`
	var doc documentXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Failed to parse document XML: %v", err)
	}
	r := &Reader{document: &doc}

	config := r.pageConfig()

	if math.Abs(config.PageWidth-816) > 0.001 {
		t.Errorf("Expected page width 816, got %f", config.PageWidth)
	}
	if math.Abs(config.PageHeight-1056) > 0.001 {
		t.Errorf("Expected page height 1056, got %f", config.PageHeight)
	}
	if math.Abs(config.MarginTop-96) > 0.001 {
		t.Errorf("Expected top margin 96, got %f", config.MarginTop)
	}
	if math.Abs(config.MarginLeft-48) > 0.001 {
		t.Errorf("Expected left margin 48, got %f", config.MarginLeft)
	}
	if config.Columns != 2 {
		t.Errorf("Expected 2 columns, got %d", config.Columns)
	}
	if math.Abs(config.ColumnGap-48) > 0.001 {
		t.Errorf("Expected column gap 48, got %f", config.ColumnGap)
	}
}

func TestConvertAssignsDocumentPositions(t *testing.T) {
	raw := `<document><body>
		<p><r><t>abc</t></r></p>
		<p><r><t>de</t></r></p>
	</body></document>`
	var doc documentXML
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Failed to parse document XML: %v", err)
	}
	r := &Reader{document: &doc}

	converted, err := r.Convert()
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(converted.Blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(converted.Blocks))
	}

	first := converted.Blocks[0]
	second := converted.Blocks[1]
	if first.PMStart != 0 || first.PMEnd != 4 {
		t.Errorf("Expected first block positions [0,4], got [%d,%d]", first.PMStart, first.PMEnd)
	}
	if second.PMStart != 4 || second.PMEnd != 7 {
		t.Errorf("Expected second block positions [4,7], got [%d,%d]", second.PMStart, second.PMEnd)
	}
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		name string
		v    onOffXML
		want bool
	}{
		{"absent element", onOffXML{}, false},
		{"bare element", onOffXML{XMLName: xml.Name{Local: "keepLines"}}, true},
		{"val 1", onOffXML{XMLName: xml.Name{Local: "keepLines"}, Val: "1"}, true},
		{"val true", onOffXML{XMLName: xml.Name{Local: "keepLines"}, Val: "true"}, true},
		{"val on", onOffXML{XMLName: xml.Name{Local: "keepLines"}, Val: "on"}, true},
		{"val 0", onOffXML{XMLName: xml.Name{Local: "keepLines"}, Val: "0"}, false},
		{"val false", onOffXML{XMLName: xml.Name{Local: "keepLines"}, Val: "false"}, false},
	}

	for _, tt := range tests {
		if got := parseOnOff(tt.v); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestTwipsToPx(t *testing.T) {
	if v := twipsToPx("1440"); math.Abs(v-96) > 0.001 {
		t.Errorf("Expected 1440 twips = 96px, got %f", v)
	}
	if v := twipsToPx("-300"); math.Abs(v-(-20)) > 0.001 {
		t.Errorf("Expected -300 twips = -20px, got %f", v)
	}
	if v := twipsToPx("junk"); v != 0 {
		t.Errorf("Expected unparseable twips to be 0, got %f", v)
	}
}
