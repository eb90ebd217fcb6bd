package paginate

import (
	"github.com/tsawler/pageflow/floats"
	"github.com/tsawler/pageflow/flow"
)

// Config holds the physical page setup for pagination. All values are
// pixels.
type Config struct {
	// PageWidth and PageHeight are the full page dimensions.
	// Default: 816x1056 (US Letter at 96 DPI)
	PageWidth  float64
	PageHeight float64

	// Margins around the content area.
	// Default: 96 (one inch) on every side
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// Columns is the number of text columns per page.
	// Default: 1
	Columns int

	// ColumnGap is the gap between adjacent columns.
	// Default: 48
	ColumnGap float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		PageWidth:    816,
		PageHeight:   1056,
		MarginTop:    96,
		MarginBottom: 96,
		MarginLeft:   96,
		MarginRight:  96,
		Columns:      1,
		ColumnGap:    48,
	}
}

// Geometry returns the flow.PageGeometry equivalent of the config.
func (c Config) Geometry() flow.PageGeometry {
	return flow.PageGeometry{
		PageWidth:    c.PageWidth,
		PageHeight:   c.PageHeight,
		MarginTop:    c.MarginTop,
		MarginBottom: c.MarginBottom,
		MarginLeft:   c.MarginLeft,
		MarginRight:  c.MarginRight,
		ColumnCount:  c.columns(),
		ColumnWidth:  c.ColumnWidth(),
		ColumnGap:    c.ColumnGap,
	}
}

// ColumnWidth returns the usable width of one column.
func (c Config) ColumnWidth() float64 {
	content := c.PageWidth - c.MarginLeft - c.MarginRight
	n := float64(c.columns())
	return (content - (n-1)*c.ColumnGap) / n
}

func (c Config) columns() int {
	if c.Columns < 1 {
		return 1
	}
	return c.Columns
}

// Measured pairs a paragraph block with its measured line geometry.
type Measured struct {
	Block   *flow.ParagraphBlock
	Measure *flow.ParagraphMeasure
}

// Paginator folds measured paragraph blocks into pages. It implements
// flow.PageProvider and owns the cursor state the flow engine mutates.
type Paginator struct {
	Engine *flow.Engine
	Floats *floats.Manager

	config Config
	pages  []*flow.Page
	state  *flow.PageState

	anchors *flow.AnchorContext
}

// New creates a paginator with its own float manager and flow engine.
func New(config Config) *Paginator {
	p := &Paginator{
		config: config,
		Floats: floats.NewManager(config.Geometry()),
	}
	p.Engine = flow.NewEngine(p, p.Floats)
	return p
}

// Config returns the page setup the paginator was created with.
func (p *Paginator) Config() Config {
	return p.config
}

// Pages returns the paginated pages produced so far.
func (p *Paginator) Pages() []*flow.Page {
	return p.pages
}

// SetAnchors installs the document's pending anchored objects. The
// shared placed-set is created if absent.
func (p *Paginator) SetAnchors(objects []*flow.AnchoredObject) {
	p.anchors = &flow.AnchorContext{
		Objects:  objects,
		Geometry: p.config.Geometry(),
		Placed:   make(map[string]bool),
	}
}

// Paginate flows every measured block in document order and returns the
// resulting pages. It may be called once per document; the paginator
// keeps its cursor, so further calls continue on the current page.
func (p *Paginator) Paginate(blocks []Measured) []*flow.Page {
	for _, mb := range blocks {
		if mb.Block == nil {
			continue
		}
		p.Engine.FlowParagraph(mb.Block, mb.Measure, p.config.ColumnWidth(), p.anchors)
	}
	return p.pages
}

// EnsurePage returns the current cursor state, creating the first page
// if none exists.
func (p *Paginator) EnsurePage() *flow.PageState {
	if p.state == nil {
		p.state = p.newPageState()
	}
	return p.state
}

// AdvanceColumn moves the cursor to the next column, or to the first
// column of a fresh page when the current page has no columns left.
func (p *Paginator) AdvanceColumn(state *flow.PageState) *flow.PageState {
	if state.ColumnIndex+1 < p.config.columns() {
		state.ColumnIndex++
		state.CursorY = state.TopMargin
		state.TrailingSpacing = 0
		return state
	}
	next := p.newPageState()
	next.LastStyleID = state.LastStyleID
	p.state = next
	return p.state
}

// ColumnX returns the left edge of a column in page pixels.
func (p *Paginator) ColumnX(columnIndex int) float64 {
	return p.config.Geometry().ColumnX(columnIndex)
}

func (p *Paginator) newPageState() *flow.PageState {
	page := &flow.Page{Number: len(p.pages) + 1}
	p.pages = append(p.pages, page)
	return &flow.PageState{
		Page:          page,
		ColumnIndex:   0,
		CursorY:       p.config.MarginTop,
		TopMargin:     p.config.MarginTop,
		ContentBottom: p.config.PageHeight - p.config.MarginBottom,
	}
}

var _ flow.PageProvider = (*Paginator)(nil)
