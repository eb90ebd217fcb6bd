package flow

import "github.com/tsawler/pageflow/model"

// Fragment is one positioned, renderable slice of a paragraph's lines on
// a specific page and column, or a whole positioned paragraph. A
// paragraph emits one fragment per page/column it touches; the fragments'
// [FromLine, ToLine) ranges partition the paragraph's lines in order,
// without gaps or overlaps.
type Fragment struct {
	BlockID string

	// Line range covered by this fragment; ToLine is exclusive.
	FromLine int
	ToLine   int

	// Position and width of the fragment box, in page pixels.
	X     float64
	Y     float64
	Width float64

	// ContinuesFromPrev marks a fragment that continues a paragraph
	// started on an earlier page or column; ContinuesOnNext marks one
	// with more lines still to come.
	ContinuesFromPrev bool
	ContinuesOnNext   bool

	// List marker geometry, attached only to the fragment containing
	// line 0 of a list paragraph.
	HasMarker       bool
	MarkerWidth     float64
	MarkerTextWidth float64
	MarkerGutter    float64

	// Absolute document positions of the fragment's character range.
	PMStart int
	PMEnd   int

	// Lines is a copy of the fragment's line geometry. Fragments stay
	// renderable on their own even when the paragraph was remeasured
	// during flow and the caller's original measure no longer matches.
	Lines []Line
}

// PlacedObject is an anchored image or drawing fixed onto a page.
type PlacedObject struct {
	BlockID string
	BBox    model.BBox
	Page    int
	Column  int

	// Resize envelope for downstream aspect-ratio-constrained resizing,
	// derived from the object's width basis (page, margin, or column).
	MaxWidth  float64
	MaxHeight float64
}

// Page accumulates the placed content of one output page.
type Page struct {
	Number    int
	Fragments []Fragment
	Objects   []PlacedObject
}
