// Package floats tracks anchored images and drawings as exclusion
// rectangles and answers available-width queries for line bands.
//
// The [Manager] implements flow.FloatQuery. Drawings registered during
// anchored-object placement narrow the usable width of every line whose
// vertical band overlaps them:
//
//	manager := floats.NewManager(geometry)
//	engine := flow.NewEngine(pages, manager)
//
// Queries are pure reads and may be repeated with identical results; the
// flow engine probes every line of a paragraph before deciding whether
// to remeasure.
package floats
