package htmldoc

import (
	"strings"
	"testing"
)

func parseHTML(t *testing.T, raw string) *Reader {
	t.Helper()
	r, err := OpenReader(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Failed to parse HTML: %v", err)
	}
	return r
}

func TestTitle(t *testing.T) {
	r := parseHTML(t, `<html><head><title>Test Doc</title></head><body><p>x</p></body></html>`)

	if r.Title() != "Test Doc" {
		t.Errorf("Expected title 'Test Doc', got %q", r.Title())
	}
}

func TestParagraphBlocks(t *testing.T) {
	r := parseHTML(t, `<html><body><p>First paragraph.</p><p>Second paragraph.</p></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Runs[0].Text != "First paragraph." {
		t.Errorf("Expected 'First paragraph.', got %q", blocks[0].Runs[0].Text)
	}
	if blocks[0].Attrs.StyleID != "Normal" {
		t.Errorf("Expected style 'Normal', got %q", blocks[0].Attrs.StyleID)
	}
	if blocks[0].Attrs.Spacing.After != paragraphSpaceAfter {
		t.Errorf("Expected after spacing %d, got %f", paragraphSpaceAfter, blocks[0].Attrs.Spacing.After)
	}
}

func TestEmptyParagraphKept(t *testing.T) {
	r := parseHTML(t, `<html><body><p>One</p><p></p><p>Two</p></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(blocks))
	}
	if !blocks[1].IsEmptyText() {
		t.Error("Expected middle block to be empty")
	}
}

func TestHeadingBlocks(t *testing.T) {
	r := parseHTML(t, `<html><body><h1>Main Title</h1><h3>Subsection</h3></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Attrs.StyleID != "Heading1" {
		t.Errorf("Expected style 'Heading1', got %q", blocks[0].Attrs.StyleID)
	}
	if blocks[1].Attrs.StyleID != "Heading3" {
		t.Errorf("Expected style 'Heading3', got %q", blocks[1].Attrs.StyleID)
	}
	if !blocks[0].Attrs.KeepLines {
		t.Error("Expected headings to keep their lines together")
	}
}

func TestOrderedList(t *testing.T) {
	r := parseHTML(t, `<html><body><ol><li>Alpha</li><li>Beta</li></ol></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Attrs.WordLayout.MarkerText != "1." {
		t.Errorf("Expected marker '1.', got %q", blocks[0].Attrs.WordLayout.MarkerText)
	}
	if blocks[1].Attrs.WordLayout.MarkerText != "2." {
		t.Errorf("Expected marker '2.', got %q", blocks[1].Attrs.WordLayout.MarkerText)
	}
	if blocks[0].Attrs.StyleID != "ListParagraph" {
		t.Errorf("Expected style 'ListParagraph', got %q", blocks[0].Attrs.StyleID)
	}
	if !blocks[0].Attrs.ContextualSpacing {
		t.Error("Expected list items to use contextual spacing")
	}
}

func TestOrderedListStartAttribute(t *testing.T) {
	r := parseHTML(t, `<html><body><ol start="5"><li>Five</li><li>Six</li></ol></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Attrs.WordLayout.MarkerText != "5." {
		t.Errorf("Expected marker '5.', got %q", blocks[0].Attrs.WordLayout.MarkerText)
	}
}

func TestUnorderedListMarker(t *testing.T) {
	r := parseHTML(t, `<html><body><ul><li>Item</li></ul></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Attrs.WordLayout.MarkerText != "•" {
		t.Errorf("Expected bullet marker, got %q", blocks[0].Attrs.WordLayout.MarkerText)
	}
	if blocks[0].Attrs.Indent.Left != listIndentPerLevel {
		t.Errorf("Expected indent %d, got %f", listIndentPerLevel, blocks[0].Attrs.Indent.Left)
	}
}

func TestNestedListIndentAndNumbering(t *testing.T) {
	r := parseHTML(t, `<html><body><ol><li>Outer<ol><li>Inner</li></ol></li><li>Outer two</li></ol></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("Expected 3 blocks, got %d", len(blocks))
	}
	if blocks[1].Attrs.Indent.Left != 2*listIndentPerLevel {
		t.Errorf("Expected nested indent %d, got %f", 2*listIndentPerLevel, blocks[1].Attrs.Indent.Left)
	}
	if blocks[1].Attrs.WordLayout.MarkerText != "1." {
		t.Errorf("Expected nested counter to restart at '1.', got %q", blocks[1].Attrs.WordLayout.MarkerText)
	}
	if blocks[2].Attrs.WordLayout.MarkerText != "2." {
		t.Errorf("Expected outer counter to continue at '2.', got %q", blocks[2].Attrs.WordLayout.MarkerText)
	}
}

func TestBlockquoteIndent(t *testing.T) {
	r := parseHTML(t, `<html><body><blockquote>Quoted text.</blockquote></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Attrs.Indent.Left != blockquoteIndent {
		t.Errorf("Expected left indent %d, got %f", blockquoteIndent, blocks[0].Attrs.Indent.Left)
	}
	if blocks[0].Attrs.StyleID != "Quote" {
		t.Errorf("Expected style 'Quote', got %q", blocks[0].Attrs.StyleID)
	}
}

func TestScriptAndStyleSkipped(t *testing.T) {
	r := parseHTML(t, `<html><body><script>var x = 1;</script><style>p{}</style><p>Real content</p></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Runs[0].Text != "Real content" {
		t.Errorf("Expected 'Real content', got %q", blocks[0].Runs[0].Text)
	}
}

func TestNestedDivsTraversed(t *testing.T) {
	r := parseHTML(t, `<html><body><div><div><p>Deep paragraph</p></div></div></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Runs[0].Text != "Deep paragraph" {
		t.Errorf("Expected 'Deep paragraph', got %q", blocks[0].Runs[0].Text)
	}
}

func TestDocumentPositionsSequential(t *testing.T) {
	r := parseHTML(t, `<html><body><p>abc</p><p>de</p></body></html>`)

	blocks := r.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].PMStart != 0 || blocks[0].PMEnd != 4 {
		t.Errorf("Expected first block positions [0,4], got [%d,%d]", blocks[0].PMStart, blocks[0].PMEnd)
	}
	if blocks[1].PMStart != 4 || blocks[1].PMEnd != 7 {
		t.Errorf("Expected second block positions [4,7], got [%d,%d]", blocks[1].PMStart, blocks[1].PMEnd)
	}
}
