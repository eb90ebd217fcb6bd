package flow

import "github.com/tsawler/pageflow/model"

// RelativeFrom names the reference frame an anchored object is
// positioned against.
type RelativeFrom string

const (
	RelUnset     RelativeFrom = ""
	RelMargin    RelativeFrom = "margin"
	RelPage      RelativeFrom = "page"
	RelColumn    RelativeFrom = "column"
	RelParagraph RelativeFrom = "paragraph"
)

// VerticalAlign names a vertical anchor alignment.
type VerticalAlign string

const (
	VAlignNone   VerticalAlign = ""
	VAlignTop    VerticalAlign = "top"
	VAlignBottom VerticalAlign = "bottom"
	VAlignCenter VerticalAlign = "center"
)

// AnchorAttrs are the placement rules of an anchored image or drawing.
type AnchorAttrs struct {
	VRelativeFrom RelativeFrom
	HRelativeFrom RelativeFrom
	AlignV        VerticalAlign
	AlignH        Alignment
	OffsetX       float64
	OffsetY       float64

	// SizeRelative is the width basis (page, margin, or column) used
	// for the object's resize envelope.
	SizeRelative RelativeFrom
}

// ObjectMeasure is the measured size of an anchored object, in pixels.
type ObjectMeasure struct {
	Width  float64
	Height float64
}

// AnchoredObject pairs an anchored image/drawing block with its measured
// size and placement rules.
type AnchoredObject struct {
	ID            string
	AnchorBlockID string
	Attrs         AnchorAttrs
	Measure       ObjectMeasure
}

// PageGeometry describes the physical page the anchored objects are
// placed on.
type PageGeometry struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
	ColumnCount  int
	ColumnWidth  float64
	ColumnGap    float64
}

// ContentWidth returns the width of the content area between margins.
func (g PageGeometry) ContentWidth() float64 {
	return g.PageWidth - g.MarginLeft - g.MarginRight
}

// ContentHeight returns the height of the content area between margins.
func (g PageGeometry) ContentHeight() float64 {
	return g.PageHeight - g.MarginTop - g.MarginBottom
}

// ColumnX returns the left edge of a column within the content area.
func (g PageGeometry) ColumnX(columnIndex int) float64 {
	return g.MarginLeft + float64(columnIndex)*(g.ColumnWidth+g.ColumnGap)
}

// HorizontalResolver resolves the x position of an anchored object.
// Hosts with richer alignment semantics (character anchors, relative
// tables) supply their own; the engine falls back to frame-and-alignment
// resolution.
type HorizontalResolver interface {
	ResolveX(obj *AnchoredObject, geom PageGeometry, columnIndex int) float64
}

// AnchorContext carries the not-yet-placed anchored objects of a
// document through the paragraph flow. Placed is shared across calls so
// an object is placed exactly once.
type AnchorContext struct {
	Objects  []*AnchoredObject
	Geometry PageGeometry
	Placed   map[string]bool
	ResolveX HorizontalResolver
}

// placeAnchors fixes every pending anchored object associated with the
// paragraph onto the current page and registers it with the float query
// service, so the paragraph's own lines and all later paragraphs wrap
// around it.
func (e *Engine) placeAnchors(block *ParagraphBlock, ctx *AnchorContext, state *PageState) {
	for _, obj := range ctx.Objects {
		if obj == nil || obj.ID == "" {
			continue
		}
		if ctx.Placed != nil && ctx.Placed[obj.ID] {
			continue
		}
		if obj.AnchorBlockID != "" && obj.AnchorBlockID != block.ID {
			continue
		}

		g := ctx.Geometry
		w := sanitizeLength(obj.Measure.Width)
		h := sanitizeLength(obj.Measure.Height)

		y := anchorY(obj, g, state)

		var x float64
		if ctx.ResolveX != nil {
			x = ctx.ResolveX.ResolveX(obj, g, state.ColumnIndex)
		} else {
			x = defaultAnchorX(obj, g, state.ColumnIndex)
		}

		bbox := model.NewBBox(x, y, w, h)
		maxW, maxH := resizeEnvelope(obj, g)
		placed := PlacedObject{
			BlockID:   obj.ID,
			BBox:      bbox,
			Page:      state.pageNumber(),
			Column:    state.ColumnIndex,
			MaxWidth:  maxW,
			MaxHeight: maxH,
		}
		if state.Page != nil {
			state.Page.Objects = append(state.Page.Objects, placed)
		}
		if e.Floats != nil {
			e.Floats.RegisterDrawing(obj, bbox, state.ColumnIndex, state.pageNumber())
		}
		if ctx.Placed != nil {
			ctx.Placed[obj.ID] = true
		}
	}
}

// anchorY computes the vertical anchor position from the object's
// reference frame crossed with its vertical alignment, plus the raw
// offset when no alignment applies.
func anchorY(obj *AnchoredObject, g PageGeometry, state *PageState) float64 {
	h := sanitizeLength(obj.Measure.Height)
	offV := sanitizeOffset(obj.Attrs.OffsetY)
	contentTop := g.MarginTop
	contentBottom := g.PageHeight - g.MarginBottom

	switch obj.Attrs.VRelativeFrom {
	case RelPage:
		switch obj.Attrs.AlignV {
		case VAlignTop:
			return 0
		case VAlignBottom:
			return g.PageHeight - h
		case VAlignCenter:
			return (g.PageHeight - h) / 2
		default:
			return offV
		}
	case RelMargin:
		switch obj.Attrs.AlignV {
		case VAlignTop:
			return contentTop
		case VAlignBottom:
			return contentBottom - h
		case VAlignCenter:
			return contentTop + (contentBottom-contentTop-h)/2
		default:
			return contentTop + offV
		}
	default:
		// Paragraph-relative (and unset): measured from the anchor
		// paragraph's first-line position.
		return state.CursorY + offV
	}
}

// defaultAnchorX resolves the horizontal anchor position keyed by
// hRelativeFrom and the horizontal alignment.
func defaultAnchorX(obj *AnchoredObject, g PageGeometry, columnIndex int) float64 {
	w := sanitizeLength(obj.Measure.Width)
	offH := sanitizeOffset(obj.Attrs.OffsetX)

	switch obj.Attrs.HRelativeFrom {
	case RelPage:
		switch obj.Attrs.AlignH {
		case AlignLeft:
			return 0
		case AlignRight:
			return g.PageWidth - w
		case AlignCenter:
			return (g.PageWidth - w) / 2
		default:
			return offH
		}
	case RelMargin:
		switch obj.Attrs.AlignH {
		case AlignLeft:
			return g.MarginLeft
		case AlignRight:
			return g.PageWidth - g.MarginRight - w
		case AlignCenter:
			return g.MarginLeft + (g.ContentWidth()-w)/2
		default:
			return g.MarginLeft + offH
		}
	default:
		colX := g.ColumnX(columnIndex)
		switch obj.Attrs.AlignH {
		case AlignLeft:
			return colX
		case AlignRight:
			return colX + g.ColumnWidth - w
		case AlignCenter:
			return colX + (g.ColumnWidth-w)/2
		default:
			return colX + offH
		}
	}
}

// resizeEnvelope returns the max width/height metadata for downstream
// aspect-ratio-constrained resizing, from the object's width basis.
func resizeEnvelope(obj *AnchoredObject, g PageGeometry) (maxW, maxH float64) {
	switch obj.Attrs.SizeRelative {
	case RelPage:
		return g.PageWidth, g.PageHeight
	case RelMargin:
		return g.ContentWidth(), g.ContentHeight()
	default:
		return g.ColumnWidth, g.ContentHeight()
	}
}
