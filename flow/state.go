package flow

// PageState is the page/column cursor: the durable, mutable layout state
// threaded through every paragraph of a document in order. The
// [PageProvider] owns it; the flow engine is its sole mutator during a
// FlowParagraph call.
//
// AdvanceColumn may return a distinct instance, so callers reassign the
// state rather than assume in-place mutation.
type PageState struct {
	Page        *Page
	ColumnIndex int

	// CursorY is the current vertical write position. It never exceeds
	// ContentBottom except transiently inside spacing application, which
	// either resolves the spacing or advances the column before yielding.
	CursorY       float64
	TopMargin     float64
	ContentBottom float64

	// TrailingSpacing is the as-yet-uncollapsed spacing-after of the most
	// recently placed paragraph. Non-finite and negative values behave
	// as 0.
	TrailingSpacing float64

	// LastStyleID is the style of the last placed paragraph, used for
	// contextual same-style spacing suppression. Empty means absent.
	LastStyleID string
}

// pageNumber returns the current page number, or 0 before any page
// exists.
func (s *PageState) pageNumber() int {
	if s == nil || s.Page == nil {
		return 0
	}
	return s.Page.Number
}

// remaining returns the vertical space left in the current column.
func (s *PageState) remaining() float64 {
	return s.ContentBottom - s.CursorY
}

// hasContent reports whether the current column already holds content,
// which gates column advances: a paragraph that does not fit an empty
// column has nowhere better to go.
func (s *PageState) hasContent() bool {
	return s.CursorY > s.TopMargin+layoutEpsilon
}
