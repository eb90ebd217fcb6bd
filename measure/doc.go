// Package measure provides a reference text measurer for the flow
// engine.
//
// The [Measurer] breaks paragraph runs into line boxes with real font
// metrics (golang.org/x/image/font over the embedded Go Regular face)
// and implements flow.Remeasurer, so the engine can re-wrap paragraphs
// when column width or float narrowing demands it:
//
//	m, err := measure.New()
//	pm := m.MeasureParagraph(block, columnWidth)
//
// Run text is NFC-normalized before measurement so decomposed input
// measures the same as its composed form. The measurer does greedy
// word wrapping only; shaping, kerning, and bidirectional text belong
// to a full text stack, not this reference implementation.
package measure
