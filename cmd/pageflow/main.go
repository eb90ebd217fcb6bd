// Command pageflow paginates a DOCX, ODT, EPUB, or HTML document and
// prints a per-page fragment summary, optionally rendering each page
// to PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tsawler/pageflow/docx"
	"github.com/tsawler/pageflow/epubdoc"
	"github.com/tsawler/pageflow/flow"
	"github.com/tsawler/pageflow/format"
	"github.com/tsawler/pageflow/htmldoc"
	"github.com/tsawler/pageflow/measure"
	"github.com/tsawler/pageflow/odt"
	"github.com/tsawler/pageflow/paginate"
	"github.com/tsawler/pageflow/render"
)

func main() {
	var (
		pngPrefix = flag.String("png", "", "render each page to <prefix>-N.png")
		guides    = flag.Bool("guides", false, "draw margin and column guides in PNG output")
		fontSize  = flag.Float64("fontsize", 16, "font size in pixels")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file.html|file.docx>\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *pngPrefix, *guides, *fontSize); err != nil {
		log.Fatal(err)
	}
}

func run(filename, pngPrefix string, guides bool, fontSize float64) error {
	blocks, anchors, config, err := load(filename)
	if err != nil {
		return err
	}

	measurer, err := measure.NewWithConfig(measure.Config{
		FontSize:        fontSize,
		DPI:             96,
		LineHeightScale: 1.15,
		MarkerGutter:    8,
	})
	if err != nil {
		return err
	}

	paginator := paginate.New(config)
	paginator.Engine.Remeasurer = measurer
	if len(anchors) > 0 {
		paginator.SetAnchors(anchors)
	}

	var measured []paginate.Measured
	for _, block := range blocks {
		measured = append(measured, paginate.Measured{
			Block:   block,
			Measure: measurer.MeasureParagraph(block, config.ColumnWidth()),
		})
	}

	pages := paginator.Paginate(measured)
	printSummary(pages)

	if pngPrefix != "" {
		return renderPages(pages, blocks, config, guides, fontSize, pngPrefix)
	}
	return nil
}

// load reads the input file, dispatching on detected format. Content
// sniffing wins over the extension for the ZIP-based formats.
func load(filename string) ([]*flow.ParagraphBlock, []*flow.AnchoredObject, paginate.Config, error) {
	switch detectFormat(filename) {
	case format.DOCX:
		r, err := docx.Open(filename)
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		defer r.Close()
		doc, err := r.Convert()
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		return doc.Blocks, doc.Anchors, doc.Config, nil

	case format.ODT:
		r, err := odt.Open(filename)
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		defer r.Close()
		doc, err := r.Convert()
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		return doc.Blocks, nil, doc.Config, nil

	case format.EPUB:
		r, err := epubdoc.Open(filename)
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		defer r.Close()
		doc, err := r.Convert()
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		return doc.Blocks, nil, doc.Config, nil

	case format.HTML:
		r, err := htmldoc.Open(filename)
		if err != nil {
			return nil, nil, paginate.Config{}, err
		}
		defer r.Close()
		return r.Blocks(), nil, paginate.DefaultConfig(), nil

	default:
		return nil, nil, paginate.Config{}, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// detectFormat sniffs the file content, falling back to the filename
// extension when sniffing is inconclusive.
func detectFormat(filename string) format.Format {
	if f, err := os.Open(filename); err == nil {
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			if detected, err := format.DetectFromReader(f, info.Size()); err == nil && detected != format.Unknown {
				return detected
			}
		}
	}
	return format.Detect(filename)
}

func printSummary(pages []*flow.Page) {
	for _, page := range pages {
		fmt.Printf("Page %d: %d fragments, %d objects\n", page.Number, len(page.Fragments), len(page.Objects))
		for _, frag := range page.Fragments {
			cont := ""
			if frag.ContinuesFromPrev {
				cont += " <"
			}
			if frag.ContinuesOnNext {
				cont += " >"
			}
			fmt.Printf("  %-8s lines %d-%d at (%.1f, %.1f) width %.1f%s\n",
				frag.BlockID, frag.FromLine, frag.ToLine, frag.X, frag.Y, frag.Width, cont)
		}
		for _, obj := range page.Objects {
			fmt.Printf("  object %-8s at (%.1f, %.1f) %.0fx%.0f\n",
				obj.BlockID, obj.BBox.X, obj.BBox.Y, obj.BBox.Width, obj.BBox.Height)
		}
	}
}

func renderPages(pages []*flow.Page, blocks []*flow.ParagraphBlock, config paginate.Config, guides bool, fontSize float64, prefix string) error {
	byID := make(map[string]*flow.ParagraphBlock, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}

	renderer, err := render.NewWithConfig(config.Geometry(), render.Config{
		FontSize:   fontSize,
		DPI:        96,
		DrawGuides: guides,
	})
	if err != nil {
		return err
	}

	for _, page := range pages {
		name := fmt.Sprintf("%s-%d.png", prefix, page.Number)
		if err := renderer.RenderPageToPNG(page, byID, name); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", name)
	}
	return nil
}
