package floats

import (
	"github.com/tsawler/pageflow/flow"
	"github.com/tsawler/pageflow/model"
)

// Exclusion is one registered drawing rectangle on a page.
type Exclusion struct {
	BlockID string
	BBox    model.BBox
	Page    int
	Column  int
}

// Config holds configuration for the float manager.
type Config struct {
	// Padding is extra horizontal clearance kept between wrapped text
	// and the edge of an exclusion.
	// Default: 0
	Padding float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{}
}

// Manager tracks placed drawings and implements flow.FloatQuery.
type Manager struct {
	geom       flow.PageGeometry
	config     Config
	exclusions []Exclusion
}

// NewManager creates a float manager for the given page geometry.
func NewManager(geom flow.PageGeometry) *Manager {
	return NewManagerWithConfig(geom, DefaultConfig())
}

// NewManagerWithConfig creates a float manager with custom configuration.
func NewManagerWithConfig(geom flow.PageGeometry, config Config) *Manager {
	return &Manager{
		geom:   geom,
		config: config,
	}
}

// RegisterDrawing records a placed anchored object as an exclusion.
func (m *Manager) RegisterDrawing(obj *flow.AnchoredObject, bbox model.BBox, columnIndex, pageNumber int) {
	if obj == nil || bbox.IsEmpty() {
		return
	}
	m.exclusions = append(m.exclusions, Exclusion{
		BlockID: obj.ID,
		BBox:    bbox.Expand(m.config.Padding),
		Page:    pageNumber,
		Column:  columnIndex,
	})
}

// AvailableWidth returns the narrowed usable width and left offset for
// the band [y, y+lineHeight) of the given column. Exclusions touching
// the left half of the column push text right (offset grows); ones
// touching the right half shorten the line from the right.
func (m *Manager) AvailableWidth(y, lineHeight, columnWidth float64, columnIndex, pageNumber int) (width, offsetX float64) {
	colX := m.geom.ColumnX(columnIndex)
	colBox := model.NewBBox(colX, y, columnWidth, lineHeight)
	colCenter := colX + columnWidth/2

	leftEdge := colX
	rightEdge := colX + columnWidth
	for _, excl := range m.exclusions {
		if excl.Page != pageNumber {
			continue
		}
		overlap := excl.BBox.Intersection(colBox)
		if overlap.IsEmpty() {
			continue
		}
		if excl.BBox.Center().X <= colCenter {
			if overlap.Right() > leftEdge {
				leftEdge = overlap.Right()
			}
		} else {
			if overlap.Left() < rightEdge {
				rightEdge = overlap.Left()
			}
		}
	}

	width = rightEdge - leftEdge
	if width < 0 {
		width = 0
	}
	return width, leftEdge - colX
}

// ExclusionsAt returns the exclusion rectangles overlapping a vertical
// band of a column.
func (m *Manager) ExclusionsAt(y, height float64, columnIndex, pageNumber int) []model.BBox {
	colX := m.geom.ColumnX(columnIndex)
	band := model.NewBBox(colX, y, m.geom.ColumnWidth, height)

	var boxes []model.BBox
	for _, excl := range m.exclusions {
		if excl.Page != pageNumber {
			continue
		}
		if excl.BBox.Intersects(band) {
			boxes = append(boxes, excl.BBox)
		}
	}
	return boxes
}

// Exclusions returns every registered exclusion, for diagnostics.
func (m *Manager) Exclusions() []Exclusion {
	return m.exclusions
}

// Reset drops all registered exclusions.
func (m *Manager) Reset() {
	m.exclusions = nil
}

var _ flow.FloatQuery = (*Manager)(nil)
