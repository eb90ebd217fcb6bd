// Package render draws paginated pages to raster images. It is a
// proofing renderer: one page per image, with optional margin and
// column guides for inspecting layout decisions.
package render

import (
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/tsawler/pageflow/flow"
)

// Config holds rendering options.
type Config struct {
	// FontSize is the text size in pixels.
	// Default: 16
	FontSize float64

	// DPI is the rendering resolution.
	// Default: 96
	DPI float64

	// DrawGuides draws margin and column outlines.
	// Default: false
	DrawGuides bool

	// DrawFragmentBoxes outlines each fragment rectangle.
	// Default: false
	DrawFragmentBoxes bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		FontSize: 16,
		DPI:      96,
	}
}

// Renderer draws flow pages onto raster contexts.
type Renderer struct {
	config Config
	geom   flow.PageGeometry
	face   font.Face
}

// New creates a renderer for the given page geometry with default
// options.
func New(geom flow.PageGeometry) (*Renderer, error) {
	return NewWithConfig(geom, DefaultConfig())
}

// NewWithConfig creates a renderer with the specified configuration.
func NewWithConfig(geom flow.PageGeometry, config Config) (*Renderer, error) {
	if config.FontSize <= 0 {
		config.FontSize = 16
	}
	if config.DPI <= 0 {
		config.DPI = 96
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    config.FontSize,
		DPI:     config.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}

	return &Renderer{
		config: config,
		geom:   geom,
		face:   face,
	}, nil
}

// RenderPage draws one page onto a fresh context. The blocks map lets
// the renderer recover fragment text; fragments whose block is absent
// are drawn as outlines only.
func (r *Renderer) RenderPage(page *flow.Page, blocks map[string]*flow.ParagraphBlock) *gg.Context {
	ctx := gg.NewContext(int(r.geom.PageWidth), int(r.geom.PageHeight))
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	ctx.SetFontFace(r.face)

	if r.config.DrawGuides {
		r.drawGuides(ctx)
	}

	if page == nil {
		return ctx
	}

	for i := range page.Objects {
		r.drawObject(ctx, &page.Objects[i])
	}
	for i := range page.Fragments {
		r.drawFragment(ctx, &page.Fragments[i], blocks)
	}

	return ctx
}

// RenderPageToPNG renders one page and writes it to a PNG file.
func (r *Renderer) RenderPageToPNG(page *flow.Page, blocks map[string]*flow.ParagraphBlock, filename string) error {
	ctx := r.RenderPage(page, blocks)
	if err := ctx.SavePNG(filename); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return nil
}

// drawGuides outlines the content area and column boundaries.
func (r *Renderer) drawGuides(ctx *gg.Context) {
	ctx.SetRGBA(0.6, 0.6, 0.9, 1)
	ctx.SetLineWidth(1)
	ctx.DrawRectangle(r.geom.MarginLeft, r.geom.MarginTop, r.geom.ContentWidth(), r.geom.ContentHeight())
	ctx.Stroke()

	ctx.SetDash(4, 4)
	for i := 1; i < r.geom.ColumnCount; i++ {
		x := r.geom.ColumnX(i) - r.geom.ColumnGap/2
		ctx.DrawLine(x, r.geom.MarginTop, x, r.geom.PageHeight-r.geom.MarginBottom)
		ctx.Stroke()
	}
	ctx.SetDash()
}

// drawFragment draws one paragraph fragment: its marker, its lines of
// text, and optionally its bounding box.
func (r *Renderer) drawFragment(ctx *gg.Context, frag *flow.Fragment, blocks map[string]*flow.ParagraphBlock) {
	block := blocks[frag.BlockID]

	if r.config.DrawFragmentBoxes {
		height := 0.0
		for _, line := range frag.Lines {
			height += line.LineHeight
		}
		ctx.SetRGBA(0.9, 0.6, 0.6, 1)
		ctx.SetLineWidth(0.5)
		ctx.DrawRectangle(frag.X, frag.Y, frag.Width, height)
		ctx.Stroke()
	}

	ctx.SetRGB(0, 0, 0)
	y := frag.Y
	for i, line := range frag.Lines {
		baseline := y + line.Ascent
		if i == 0 && frag.HasMarker && block != nil {
			marker := block.Attrs.WordLayout.MarkerText
			if marker != "" {
				markerX := frag.X
				if !block.Attrs.WordLayout.FirstLineIndentMode {
					markerX = frag.X - frag.MarkerWidth
				}
				ctx.DrawString(marker, markerX, baseline)
			}
		}

		if block != nil {
			if text := lineText(block, &line); text != "" {
				x := frag.X
				if i == 0 && frag.HasMarker && block.Attrs.WordLayout.FirstLineIndentMode {
					x += frag.MarkerWidth + frag.MarkerGutter
				}
				ctx.DrawString(text, x, baseline)
			}
		}
		y += line.LineHeight
	}
}

// drawObject draws an anchored object placeholder: a gray box with a
// diagonal cross, the way broken images are proofed.
func (r *Renderer) drawObject(ctx *gg.Context, obj *flow.PlacedObject) {
	b := obj.BBox
	ctx.SetRGB(0.9, 0.9, 0.9)
	ctx.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	ctx.Fill()

	ctx.SetRGB(0.5, 0.5, 0.5)
	ctx.SetLineWidth(1)
	ctx.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	ctx.DrawLine(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
	ctx.DrawLine(b.X+b.Width, b.Y, b.X, b.Y+b.Height)
	ctx.Stroke()
}

// lineText reconstructs the text of one measured line from its run and
// character boundaries.
func lineText(block *flow.ParagraphBlock, line *flow.Line) string {
	if line.FromRun < 0 || line.FromRun >= len(block.Runs) {
		return ""
	}

	var out []rune
	for i := line.FromRun; i <= line.ToRun && i < len(block.Runs); i++ {
		runes := []rune(block.Runs[i].Text)
		from, to := 0, len(runes)
		if i == line.FromRun {
			from = clamp(line.FromChar, 0, len(runes))
		}
		if i == line.ToRun {
			to = clamp(line.ToChar, 0, len(runes))
		}
		if from < to {
			out = append(out, runes[from:to]...)
		}
	}
	return string(out)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
