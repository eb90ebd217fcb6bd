// Package paginate drives full-document pagination.
//
// The [Paginator] owns the page list and the page/column cursor,
// implements flow.PageProvider, and folds a document's paragraph blocks
// through the flow engine in strict document order:
//
//	p := paginate.New(paginate.DefaultConfig())
//	p.Engine.Remeasurer = measurer
//	pages := p.Paginate(blocks, measures)
//
// Each paragraph's placement depends on the cursor state left by the
// previous one, so pagination is a single-threaded, ordered fold; there
// is no safe parallelism across paragraphs. Cancellation, if a host
// needs it, belongs between paragraph calls because mid-paragraph state
// is not resumable.
package paginate
