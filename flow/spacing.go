package flow

// paragraphSpacing returns the sanitized before/after spacing of a
// block. Blank paragraphs suppress inherited spacing: only explicitly
// authored values survive on a paragraph with no text.
func paragraphSpacing(block *ParagraphBlock) (before, after float64) {
	attrs := block.Attrs
	before = sanitizeLength(attrs.Spacing.Before)
	after = sanitizeLength(attrs.Spacing.After)
	if block.IsEmptyText() {
		if !attrs.SpacingExplicit.Before {
			before = 0
		}
		if !attrs.SpacingExplicit.After {
			after = 0
		}
	}
	return before, after
}

// resolveSpacingBefore collapses the paragraph's before-spacing against
// the carried trailing spacing of the previous paragraph and consumes
// the carry. The collapsed gap is max(before-trailing, 0): the larger of
// the two values wins, never their sum.
//
// Contextual spacing between same-style paragraphs suppresses the gap
// entirely and additionally rolls the already-applied trailing spacing
// back off the cursor, so adjacent same-style paragraphs touch.
func (e *Engine) resolveSpacingBefore(state *PageState, attrs ParagraphAttrs, before float64) float64 {
	trailing := sanitizeLength(state.TrailingSpacing)
	state.TrailingSpacing = 0

	if attrs.ContextualSpacing && attrs.StyleID != "" && attrs.StyleID == state.LastStyleID {
		if trailing > 0 {
			state.CursorY -= trailing
		}
		return 0
	}

	gap := before - trailing
	if gap < 0 {
		gap = 0
	}
	return gap
}

// applySpacingBefore advances the cursor by the collapsed gap, moving to
// the next column first when the gap does not fit. If the cursor is
// already at the top of a fresh column and the gap still does not fit,
// the spacing is skipped entirely: that only happens when configured
// spacing exceeds the whole content-area height, and skipping keeps
// layout terminating instead of advancing forever.
func (e *Engine) applySpacingBefore(state *PageState, gap float64) *PageState {
	for gap > 0 {
		if state.CursorY+gap <= state.ContentBottom+layoutEpsilon {
			state.CursorY += gap
			return state
		}
		if state.CursorY <= state.TopMargin+layoutEpsilon {
			return state
		}
		state = e.Pages.AdvanceColumn(state)
	}
	return state
}

// applyKeepLines advances to the next column before placing line 0 when
// the whole paragraph would fit a blank page but not the remaining space
// of the current one. The blank-page check uses the uncollapsed
// before-spacing, since a blank page carries no trailing spacing to
// collapse against; a paragraph too tall for even a blank page never
// advances, because there is nowhere better to put it.
func (e *Engine) applyKeepLines(state *PageState, pm *ParagraphMeasure, rawBefore, effectiveBefore float64) *PageState {
	full := pm.fullHeight()
	blank := state.ContentBottom - state.TopMargin
	if full+rawBefore > blank+layoutEpsilon {
		return state
	}
	remaining := state.remaining() - effectiveBefore
	if remaining < full-layoutEpsilon && state.hasContent() {
		return e.Pages.AdvanceColumn(state)
	}
	return state
}

// carrySpacingAfter applies the paragraph's after-spacing below its last
// line. Spacing that fits is added to the cursor and carried for the
// next paragraph's collapse; spacing that does not fit is absorbed by a
// column break, matching the collapse applied at the top of the next
// paragraph.
func (e *Engine) carrySpacingAfter(state *PageState, after float64) *PageState {
	if after <= 0 {
		state.TrailingSpacing = 0
		return state
	}
	if state.CursorY+after <= state.ContentBottom+layoutEpsilon {
		state.CursorY += after
		state.TrailingSpacing = after
		return state
	}
	state = e.Pages.AdvanceColumn(state)
	state.TrailingSpacing = 0
	return state
}
