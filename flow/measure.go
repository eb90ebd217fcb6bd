package flow

// Segment gives an explicit x-offset for a run within a line, produced by
// the measurer for tab stops and similar constructs. Segment offsets are
// final and must not be re-offset by indent logic.
type Segment struct {
	Run int
	X   float64
}

// Line is one measured line box of a paragraph. Lines are produced by the
// external measurer and are immutable; the flow engine only reads them.
type Line struct {
	// Character range covered by the line, as run index plus character
	// offset within that run. ToRun/ToChar are exclusive.
	FromRun  int
	FromChar int
	ToRun    int
	ToChar   int

	// Rendered geometry.
	Width      float64
	Ascent     float64
	Descent    float64
	LineHeight float64

	// MaxWidth is the width the line was measured against. When it
	// exceeds the current column's usable width the measure is stale and
	// the paragraph is remeasured.
	MaxWidth float64

	// Segments, when present, carry explicit per-run x-offsets.
	Segments []Segment
}

// Marker carries the measured geometry of a list marker laid out
// alongside a paragraph. Zero, NaN, and negative widths are treated as
// absent, falling back to BoxWidth and finally to 0.
type Marker struct {
	Width      float64 // measured marker width
	BoxWidth   float64 // marker box width fallback
	TextWidth  float64 // width of the marker text alone
	Gutter     float64 // gap between marker and paragraph text
	IndentLeft float64 // left indent the marker was measured with
}

// ParagraphMeasure is the measured line geometry of one paragraph.
// It is produced once upstream and replaced, never mutated, when the
// engine remeasures the paragraph at a different width.
type ParagraphMeasure struct {
	Lines       []Line
	TotalHeight float64
	Marker      *Marker
}

// normalized returns a measure that is safe to flow: a paragraph with no
// measured lines receives a single synthetic zero-width line occupying
// TotalHeight, so every paragraph takes at least one line slot and empty
// paragraphs stay visible and selectable.
func (m *ParagraphMeasure) normalized() *ParagraphMeasure {
	if m == nil {
		return &ParagraphMeasure{Lines: []Line{{}}}
	}
	if len(m.Lines) > 0 {
		return m
	}
	h := sanitizeLength(m.TotalHeight)
	return &ParagraphMeasure{
		Lines:       []Line{{LineHeight: h, Ascent: h}},
		TotalHeight: h,
		Marker:      m.Marker,
	}
}

// fullHeight sums the sanitized heights of all lines.
func (m *ParagraphMeasure) fullHeight() float64 {
	total := 0.0
	for _, ln := range m.Lines {
		total += sanitizeLength(ln.LineHeight)
	}
	return total
}

// maxMeasuredWidth returns the widest width any line was measured
// against, or 0 when unknown.
func (m *ParagraphMeasure) maxMeasuredWidth() float64 {
	widest := 0.0
	for _, ln := range m.Lines {
		if w := sanitizeLength(ln.MaxWidth); w > widest {
			widest = w
		}
	}
	return widest
}
