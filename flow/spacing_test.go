package flow

import (
	"math"
	"testing"
)

func TestParagraphSpacingSanitizes(t *testing.T) {
	tests := []struct {
		name       string
		before     float64
		after      float64
		wantBefore float64
		wantAfter  float64
	}{
		{"plain values", 12, 8, 12, 8},
		{"negative clamped", -5, -1, 0, 0},
		{"NaN clamped", math.NaN(), 8, 0, 8},
		{"infinity clamped", math.Inf(1), math.Inf(-1), 0, 0},
	}

	for _, tt := range tests {
		block := makeBlock("p1", ParagraphAttrs{Spacing: Spacing{Before: tt.before, After: tt.after}})
		before, after := paragraphSpacing(block)
		if before != tt.wantBefore || after != tt.wantAfter {
			t.Errorf("%s: expected (%f,%f), got (%f,%f)", tt.name, tt.wantBefore, tt.wantAfter, before, after)
		}
	}
}

func TestParagraphSpacingEmptySuppression(t *testing.T) {
	empty := &ParagraphBlock{ID: "p1", Attrs: ParagraphAttrs{Spacing: Spacing{Before: 12, After: 8}}}

	before, after := paragraphSpacing(empty)
	if before != 0 || after != 0 {
		t.Errorf("Expected inherited spacing suppressed on empty paragraph, got (%f,%f)", before, after)
	}

	empty.Attrs.SpacingExplicit = SpacingExplicit{Before: true, After: true}
	before, after = paragraphSpacing(empty)
	if before != 12 || after != 8 {
		t.Errorf("Expected explicit spacing kept on empty paragraph, got (%f,%f)", before, after)
	}

	// A single empty run counts as empty text too.
	empty.Runs = []Run{{Text: ""}}
	empty.Attrs.SpacingExplicit = SpacingExplicit{}
	before, after = paragraphSpacing(empty)
	if before != 0 || after != 0 {
		t.Errorf("Expected suppression for single empty run, got (%f,%f)", before, after)
	}
}

func TestResolveSpacingBeforeCollapse(t *testing.T) {
	tests := []struct {
		name     string
		before   float64
		trailing float64
		want     float64
	}{
		{"no trailing", 40, 0, 40},
		{"partial collapse", 40, 30, 10},
		{"trailing wins", 40, 60, 0},
		{"equal", 30, 30, 0},
		{"non-finite trailing", 40, math.NaN(), 40},
		{"negative trailing", 40, -10, 40},
	}

	engine := NewEngine(newTestPages(), nil)
	for _, tt := range tests {
		state := &PageState{CursorY: 100, ContentBottom: 400, TrailingSpacing: tt.trailing}
		got := engine.resolveSpacingBefore(state, ParagraphAttrs{}, tt.before)
		if got != tt.want {
			t.Errorf("%s: expected gap %f, got %f", tt.name, tt.want, got)
		}
		if state.TrailingSpacing != 0 {
			t.Errorf("%s: expected trailing consumed, got %f", tt.name, state.TrailingSpacing)
		}
	}
}

func TestResolveSpacingBeforeContextual(t *testing.T) {
	engine := NewEngine(newTestPages(), nil)
	attrs := ParagraphAttrs{StyleID: "List", ContextualSpacing: true}

	state := &PageState{CursorY: 100, TrailingSpacing: 30, LastStyleID: "List"}
	got := engine.resolveSpacingBefore(state, attrs, 40)
	if got != 0 {
		t.Errorf("Expected zero gap for contextual same style, got %f", got)
	}
	if state.CursorY != 70 {
		t.Errorf("Expected trailing rolled back to cursor 70, got %f", state.CursorY)
	}

	// Different previous style: normal collapse, no rollback.
	state = &PageState{CursorY: 100, TrailingSpacing: 30, LastStyleID: "Normal"}
	got = engine.resolveSpacingBefore(state, attrs, 40)
	if got != 10 {
		t.Errorf("Expected collapsed gap 10 across styles, got %f", got)
	}
	if state.CursorY != 100 {
		t.Errorf("Expected cursor untouched, got %f", state.CursorY)
	}

	// Empty style IDs never match each other.
	state = &PageState{CursorY: 100, TrailingSpacing: 30, LastStyleID: ""}
	got = engine.resolveSpacingBefore(state, ParagraphAttrs{ContextualSpacing: true}, 40)
	if got != 10 {
		t.Errorf("Expected empty style IDs not to pair contextually, got gap %f", got)
	}
}

func TestApplySpacingBeforeFits(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 100

	state = engine.applySpacingBefore(state, 50)
	if state.CursorY != 150 {
		t.Errorf("Expected cursor 150, got %f", state.CursorY)
	}
}

func TestApplySpacingBeforeAdvancesColumn(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 390 // 10px left of 400

	state = engine.applySpacingBefore(state, 50)
	if len(pages.pages) != 2 {
		t.Fatalf("Expected a new page, got %d pages", len(pages.pages))
	}
	if state.CursorY != 50 {
		t.Errorf("Expected spacing applied on fresh page, cursor 50, got %f", state.CursorY)
	}
}

func TestApplySpacingBeforeSkipsDegenerate(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()

	// Gap larger than the whole content area at the top of a fresh
	// column: skipped so layout terminates.
	state = engine.applySpacingBefore(state, 1000)
	if len(pages.pages) != 1 {
		t.Errorf("Expected no page advance, got %d pages", len(pages.pages))
	}
	if state.CursorY != 0 {
		t.Errorf("Expected degenerate spacing skipped, cursor 0, got %f", state.CursorY)
	}
}

func TestCarrySpacingAfter(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 100

	state = engine.carrySpacingAfter(state, 30)
	if state.CursorY != 130 {
		t.Errorf("Expected cursor 130, got %f", state.CursorY)
	}
	if state.TrailingSpacing != 30 {
		t.Errorf("Expected trailing 30, got %f", state.TrailingSpacing)
	}
}

func TestCarrySpacingAfterOverflowsToNextColumn(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 390

	state = engine.carrySpacingAfter(state, 50)
	if len(pages.pages) != 2 {
		t.Fatalf("Expected a new page, got %d pages", len(pages.pages))
	}
	if state.TrailingSpacing != 0 {
		t.Errorf("Expected no trailing carried across the break, got %f", state.TrailingSpacing)
	}
	if state.CursorY != 0 {
		t.Errorf("Expected fresh cursor, got %f", state.CursorY)
	}
}

func TestCarrySpacingAfterZeroClearsTrailing(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.TrailingSpacing = 25

	state = engine.carrySpacingAfter(state, 0)
	if state.TrailingSpacing != 0 {
		t.Errorf("Expected trailing cleared, got %f", state.TrailingSpacing)
	}
}

func TestKeepLinesAdvancesWhenParagraphFitsBlankPage(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 300 // 100 left, paragraph needs 120

	pm := makeMeasure(6, 20, 280, 300).normalized()
	state = engine.applyKeepLines(state, pm, 0, 0)

	if len(pages.pages) != 2 {
		t.Errorf("Expected advance to a fresh page, got %d pages", len(pages.pages))
	}
	if state.CursorY != 0 {
		t.Errorf("Expected fresh cursor, got %f", state.CursorY)
	}
}

func TestKeepLinesStaysWhenParagraphFits(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 200 // 200 left, paragraph needs 120

	pm := makeMeasure(6, 20, 280, 300).normalized()
	state = engine.applyKeepLines(state, pm, 0, 0)

	if len(pages.pages) != 1 {
		t.Errorf("Expected no advance, got %d pages", len(pages.pages))
	}
	if state.CursorY != 200 {
		t.Errorf("Expected cursor unchanged at 200, got %f", state.CursorY)
	}
}

func TestKeepLinesNeverAdvancesForOversizedParagraph(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 300

	// 25 lines of 20px: 500 > 400 blank page. Advancing gains nothing.
	pm := makeMeasure(25, 20, 280, 300).normalized()
	state = engine.applyKeepLines(state, pm, 0, 0)

	if len(pages.pages) != 1 {
		t.Errorf("Expected no advance for paragraph taller than a blank page, got %d pages", len(pages.pages))
	}
}

func TestKeepLinesBlankCheckUsesRawBefore(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()
	state.CursorY = 300

	// Paragraph 380 tall with raw before 40: 420 > 400 blank page, so
	// no advance even though the collapsed gap is 0.
	pm := makeMeasure(19, 20, 280, 300).normalized()
	state = engine.applyKeepLines(state, pm, 40, 0)

	if len(pages.pages) != 1 {
		t.Errorf("Expected blank-page check to use uncollapsed spacing, got %d pages", len(pages.pages))
	}
}

func TestKeepLinesStaysOnEmptyColumn(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)
	state := pages.EnsurePage()

	// Page has no content: nothing to gain by advancing.
	pm := makeMeasure(6, 20, 280, 300).normalized()
	state = engine.applyKeepLines(state, pm, 0, 350)

	if len(pages.pages) != 1 {
		t.Errorf("Expected no advance on an empty column, got %d pages", len(pages.pages))
	}
}

func TestKeepLinesEndToEnd(t *testing.T) {
	pages := newTestPages()
	engine := NewEngine(pages, nil)

	// Fill most of the page, then flow a keep-lines paragraph that fits
	// a blank page but not the remaining 100px.
	engine.FlowParagraph(makeBlock("filler", ParagraphAttrs{}), makeMeasure(15, 20, 280, 300), 300, nil)

	frags := engine.FlowParagraph(
		makeBlock("kept", ParagraphAttrs{KeepLines: true}),
		makeMeasure(6, 20, 280, 300), 300, nil)

	if len(frags) != 1 {
		t.Fatalf("Expected keep-lines paragraph in one piece, got %d fragments", len(frags))
	}
	if len(pages.pages) != 2 {
		t.Fatalf("Expected paragraph moved to page 2, got %d pages", len(pages.pages))
	}
	if frags[0].Y != 0 {
		t.Errorf("Expected paragraph at top of fresh page, got y=%f", frags[0].Y)
	}
}
