package flow

import "github.com/tsawler/pageflow/model"

// PageProvider owns the page list and the page/column cursor.
type PageProvider interface {
	// EnsurePage returns the current cursor state, creating the first
	// page if none exists yet.
	EnsurePage() *PageState

	// AdvanceColumn commits moving the cursor to the next column, or to
	// the first column of a new page. It may return a new state
	// instance; callers must use the returned value.
	AdvanceColumn(state *PageState) *PageState

	// ColumnX returns the left edge of a column in page pixels.
	ColumnX(columnIndex int) float64
}

// FloatQuery answers exclusion queries for anchored images and drawings.
// Queries must be idempotent: the engine probes every line band of a
// paragraph before deciding whether to remeasure, and may discard the
// answers.
type FloatQuery interface {
	// AvailableWidth returns the narrowed usable width and left offset
	// for the vertical band [y, y+lineHeight) of the given column.
	AvailableWidth(y, lineHeight, columnWidth float64, columnIndex, pageNumber int) (width, offsetX float64)

	// RegisterDrawing records a placed anchored object so later lines
	// see it as an exclusion.
	RegisterDrawing(obj *AnchoredObject, bbox model.BBox, columnIndex, pageNumber int)

	// ExclusionsAt returns the exclusion rectangles overlapping a
	// vertical band, for renderers and diagnostics.
	ExclusionsAt(y, height float64, columnIndex, pageNumber int) []model.BBox
}

// Remeasurer re-runs the line breaker for a paragraph at a target width.
// maxWidth is a column-basis width; the measurer subtracts paragraph
// indents itself. Implementations return nil when they cannot measure,
// in which case the engine keeps the stale geometry.
type Remeasurer interface {
	Remeasure(block *ParagraphBlock, maxWidth, firstLineIndent float64) *ParagraphMeasure
}

// Engine flows paragraphs onto pages. It holds no layout state of its
// own; everything durable lives in the PageState owned by Pages.
type Engine struct {
	Pages  PageProvider
	Floats FloatQuery

	// Remeasurer is optional. Without one the engine never re-wraps and
	// uses the original line geometry even when it mismatches the
	// column width.
	Remeasurer Remeasurer
}

// NewEngine creates a flow engine bound to a page provider and float
// query service.
func NewEngine(pages PageProvider, floats FloatQuery) *Engine {
	return &Engine{
		Pages:  pages,
		Floats: floats,
	}
}

// FlowParagraph places one paragraph, emitting its fragments onto the
// current page(s) and advancing the cursor. Fragments are appended to
// the owning pages and also returned in emission order.
//
// anchors may be nil when the paragraph has no pending anchored objects.
func (e *Engine) FlowParagraph(block *ParagraphBlock, measure *ParagraphMeasure, columnWidth float64, anchors *AnchorContext) []Fragment {
	state := e.Pages.EnsurePage()
	pm := measure.normalized()
	attrs := block.Attrs

	// Positioned paragraphs sit outside the normal flow entirely.
	if attrs.Frame != nil && attrs.Frame.Wrap == WrapNone {
		frag := e.placeFramed(block, pm, columnWidth, state)
		state.TrailingSpacing = 0
		state.LastStyleID = attrs.StyleID
		return []Fragment{frag}
	}

	// Anchored drawings are placed before the text so this paragraph's
	// own lines already wrap around them.
	if anchors != nil {
		e.placeAnchors(block, anchors, state)
	}

	spacingBefore, spacingAfter := paragraphSpacing(block)

	indentLeft := sanitizeOffset(attrs.Indent.Left)
	indentRight := sanitizeOffset(attrs.Indent.Right)
	reduced := columnWidth - indentLeft - indentRight

	firstIndent := firstLineIndent(attrs, pm.Marker)

	// Remeasure once if the lines were measured against a wider column
	// than the one we are flowing into. The measurer subtracts indents
	// itself, so it receives the full column width.
	if e.Remeasurer != nil && pm.maxMeasuredWidth() > reduced+layoutEpsilon {
		if next := e.Remeasurer.Remeasure(block, columnWidth, firstIndent); next != nil {
			pm = next.normalized()
		}
	}

	// Scan every line band for float narrowing against a scratch cursor.
	// The scratch Y applies the uncollapsed before-spacing estimate; the
	// real cursor is untouched until spacing resolves below.
	avail := columnWidth
	offsetX := 0.0
	if e.Floats != nil {
		scratchY := state.CursorY + spacingBefore
		for _, ln := range pm.Lines {
			lh := sanitizeLength(ln.LineHeight)
			w, off := e.Floats.AvailableWidth(scratchY, lh, columnWidth, state.ColumnIndex, state.pageNumber())
			if w > 0 && w < avail {
				avail = w
				offsetX = off
			}
			scratchY += lh
		}
	}
	// One remeasure at the single narrowest width keeps the whole
	// paragraph on a consistent wrap instead of thrashing per line.
	if avail < reduced-layoutEpsilon && e.Remeasurer != nil {
		if next := e.Remeasurer.Remeasure(block, avail, firstIndent); next != nil {
			pm = next.normalized()
		}
	}

	effective := e.resolveSpacingBefore(state, attrs, spacingBefore)

	if attrs.KeepLines {
		state = e.applyKeepLines(state, pm, spacingBefore, effective)
	}

	state = e.applySpacingBefore(state, effective)

	frags := e.emitFragments(state, block, pm, emission{
		columnWidth: columnWidth,
		avail:       avail,
		offsetX:     offsetX,
		indentLeft:  indentLeft,
		indentRight: indentRight,
	})

	state = e.Pages.EnsurePage()
	e.carrySpacingAfter(state, spacingAfter)
	state.LastStyleID = attrs.StyleID
	return frags
}

// emission bundles the horizontal geometry of one paragraph placement.
type emission struct {
	columnWidth float64
	avail       float64
	offsetX     float64
	indentLeft  float64
	indentRight float64
}

// emitFragments greedily slices the paragraph's lines into fragments,
// advancing columns between slices. A slice always contains at least its
// first line, even when that line alone overflows the remaining space:
// fragments are never empty, so layout always makes progress.
func (e *Engine) emitFragments(state *PageState, block *ParagraphBlock, pm *ParagraphMeasure, em emission) []Fragment {
	lines := pm.Lines
	width := em.avail - em.indentLeft - em.indentRight

	var frags []Fragment
	i := 0
	for i < len(lines) {
		state = e.Pages.EnsurePage()
		lh := sanitizeLength(lines[i].LineHeight)
		if state.hasContent() &&
			(state.CursorY >= state.ContentBottom || lh > state.remaining()+layoutEpsilon) {
			state = e.Pages.AdvanceColumn(state)
		}

		from := i
		sliceHeight := 0.0
		for i < len(lines) {
			lh := sanitizeLength(lines[i].LineHeight)
			if i > from && sliceHeight+lh > state.remaining()+layoutEpsilon {
				break
			}
			sliceHeight += lh
			i++
		}

		frag := Fragment{
			BlockID:           block.ID,
			FromLine:          from,
			ToLine:            i,
			X:                 e.Pages.ColumnX(state.ColumnIndex) + em.offsetX + em.indentLeft,
			Y:                 state.CursorY,
			Width:             width,
			ContinuesFromPrev: from > 0,
			ContinuesOnNext:   i < len(lines),
		}
		e.alignFragment(&frag, block.Attrs.FloatAlignment, lines[from:i], state, em)
		if from == 0 {
			attachMarker(&frag, pm.Marker)
		}
		frag.Lines = append([]Line(nil), lines[from:i]...)
		frag.PMStart, frag.PMEnd = fragmentPositions(block, lines, from, i)

		state.Page.Fragments = append(state.Page.Fragments, frag)
		frags = append(frags, frag)
		state.CursorY += sliceHeight
	}
	return frags
}

// alignFragment overrides the fragment x for right- and center-floated
// paragraphs, keyed by the widest line in the fragment's slice.
func (e *Engine) alignFragment(frag *Fragment, align Alignment, slice []Line, state *PageState, em emission) {
	if align != AlignRight && align != AlignCenter {
		return
	}
	widest := 0.0
	for _, ln := range slice {
		if w := sanitizeLength(ln.Width); w > widest {
			widest = w
		}
	}
	colX := e.Pages.ColumnX(state.ColumnIndex)
	switch align {
	case AlignRight:
		frag.X = colX + em.columnWidth - em.indentRight - widest
	case AlignCenter:
		frag.X = colX + (em.columnWidth-widest)/2
	}
}

// fragmentPositions maps a fragment's line range back to absolute
// document positions.
func fragmentPositions(block *ParagraphBlock, lines []Line, from, to int) (start, end int) {
	start = block.PMStart
	end = block.PMEnd
	if from < len(lines) {
		start = block.PMStart + block.charOffset(lines[from].FromRun, lines[from].FromChar)
	}
	if to-1 < len(lines) && to > 0 {
		last := lines[to-1]
		end = block.PMStart + block.charOffset(last.ToRun, last.ToChar)
	}
	if end < start {
		end = start
	}
	return start, end
}

// attachMarker copies sanitized list-marker geometry onto the fragment
// containing line 0.
func attachMarker(frag *Fragment, m *Marker) {
	if m == nil {
		return
	}
	frag.HasMarker = true
	frag.MarkerWidth = sanitizeLength(m.Width)
	if frag.MarkerWidth == 0 {
		frag.MarkerWidth = sanitizeLength(m.BoxWidth)
	}
	frag.MarkerTextWidth = sanitizeLength(m.TextWidth)
	frag.MarkerGutter = sanitizeLength(m.Gutter)
}
