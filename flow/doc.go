// Package flow implements the paragraph flow and pagination engine.
//
// The engine places one paragraph at a time onto pages and columns,
// computing exact pixel positions for every emitted fragment. It owns the
// order-sensitive layout rules of a word processor: inter-paragraph
// spacing collapse, contextual same-style spacing suppression, keep-lines
// page advancement, float-aware width narrowing with single-pass
// remeasurement, list-marker first-line indents, positioned (framed)
// paragraphs, and anchored drawing placement.
//
// # Flowing a paragraph
//
// The [Engine] is invoked once per paragraph block, in document order:
//
//	engine := flow.NewEngine(pages, floats)
//	engine.Remeasurer = measurer
//	frags := engine.FlowParagraph(block, measure, columnWidth, nil)
//
// Durable layout state lives in the [PageState] cursor record owned by
// the [PageProvider]; the engine is the cursor's sole mutator during a
// call. Fragments are appended to the current page and never mutated
// after emission.
//
// # Collaborators
//
// Line geometry is produced by an external measurer and consumed as
// [ParagraphMeasure]. The [FloatQuery] answers available-width queries
// for vertical bands occupied by anchored drawings. The optional
// [Remeasurer] re-runs the line breaker when a paragraph must re-wrap at
// a different width; without one the engine degrades to the original
// geometry.
//
// # Input hygiene
//
// The engine is a total function over its inputs: spacing, width, and
// marker values that are NaN, infinite, or negative are treated as zero,
// a paragraph with no measured lines receives a synthetic one, and
// pathological spacing taller than a whole column is skipped rather than
// retried, so layout always terminates.
package flow
