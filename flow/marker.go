package flow

// firstLineIndent returns the first-line indent to hand the measurer for
// a list paragraph.
//
// In the standard hanging layout the marker sits in an outdented region
// of its own and the first text line is as wide as every other line, so
// the indent is always 0. In first-line-indent mode the marker occupies
// the start of line 1, and the indent is the marker width (falling back
// to the marker box width, then 0) plus the gutter. All components are
// clamped against NaN, infinite, and negative authoring data.
func firstLineIndent(attrs ParagraphAttrs, m *Marker) float64 {
	if !attrs.WordLayout.FirstLineIndentMode || m == nil {
		return 0
	}
	w := sanitizeLength(m.Width)
	if w == 0 {
		w = sanitizeLength(m.BoxWidth)
	}
	return w + sanitizeLength(m.Gutter)
}
