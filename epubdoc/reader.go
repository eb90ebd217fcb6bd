// Package epubdoc reads EPUB books and converts their spine chapters
// into layout-ready flow blocks via the HTML traversal in htmldoc.
package epubdoc

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/tsawler/pageflow/flow"
	"github.com/tsawler/pageflow/htmldoc"
	"github.com/tsawler/pageflow/paginate"
)

// Reader provides access to EPUB content in spine order.
type Reader struct {
	zipReader *zip.ReadCloser
	spine     *spineInfo
}

// Document is the converted, layout-ready form of an EPUB file.
type Document struct {
	Blocks []*flow.ParagraphBlock
	Config paginate.Config
}

// Open opens an EPUB file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	opfPath, err := parseContainer(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}
	spine, err := parseOPF(zr.File, opfPath)
	if err != nil {
		zr.Close()
		return nil, err
	}

	return &Reader{zipReader: zr, spine: spine}, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.zipReader != nil {
		err := r.zipReader.Close()
		r.zipReader = nil
		return err
	}
	return nil
}

// Title returns the book title from the package metadata.
func (r *Reader) Title() string {
	return r.spine.Title
}

// Creators returns the book's creators from the package metadata.
func (r *Reader) Creators() []string {
	return r.spine.Creators
}

// Chapters returns the archive paths of the spine chapters in reading
// order.
func (r *Reader) Chapters() []string {
	return r.spine.Chapters
}

// Convert parses every spine chapter and concatenates the resulting
// blocks, renumbering IDs and document positions so they are
// contiguous across chapter boundaries. Chapters that fail to parse
// are skipped.
func (r *Reader) Convert() (*Document, error) {
	doc := &Document{Config: paginate.DefaultConfig()}

	nextID := 0
	charOffset := 0
	for _, chapter := range r.spine.Chapters {
		data, err := readZipFile(r.zipReader.File, chapter)
		if err != nil {
			continue
		}
		hr, err := htmldoc.OpenReader(bytes.NewReader(data))
		if err != nil {
			continue
		}

		for _, block := range hr.Blocks() {
			nextID++
			block.ID = fmt.Sprintf("p%d", nextID)
			length := block.PMEnd - block.PMStart
			block.PMStart = charOffset
			charOffset += length
			block.PMEnd = charOffset
			doc.Blocks = append(doc.Blocks, block)
		}
	}

	if len(doc.Blocks) == 0 {
		return nil, fmt.Errorf("no readable chapters in spine")
	}
	return doc, nil
}
