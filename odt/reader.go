// Package odt reads OpenDocument Text (.odt) files and converts their
// paragraphs, headings, and lists into layout-ready flow blocks.
package odt

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ODF XML namespaces.
const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
)

// paragraphXML represents a paragraph element (<text:p>).
type paragraphXML struct {
	XMLName   xml.Name  `xml:"p"`
	StyleName string    `xml:"style-name,attr"`
	Spans     []spanXML `xml:"span"`
	Text      string    `xml:",chardata"`
}

// headingXML represents a heading element (<text:h>).
type headingXML struct {
	XMLName      xml.Name  `xml:"h"`
	StyleName    string    `xml:"style-name,attr"`
	OutlineLevel string    `xml:"outline-level,attr"`
	Spans        []spanXML `xml:"span"`
	Text         string    `xml:",chardata"`
}

// spanXML represents a text span (<text:span>).
type spanXML struct {
	XMLName   xml.Name `xml:"span"`
	StyleName string   `xml:"style-name,attr"`
	Text      string   `xml:",chardata"`
}

// listXML represents a list (<text:list>).
type listXML struct {
	XMLName   xml.Name      `xml:"list"`
	StyleName string        `xml:"style-name,attr"`
	Items     []listItemXML `xml:"list-item"`
}

// listItemXML represents a list item, possibly with nested lists.
type listItemXML struct {
	XMLName    xml.Name       `xml:"list-item"`
	Paragraphs []paragraphXML `xml:"p"`
	SubLists   []listXML      `xml:"list"`
}

// bodyElement is one body-level element kept in document order.
type bodyElement struct {
	Paragraph *paragraphXML
	Heading   *headingXML
	List      *listXML
}

// Reader provides access to ODT document content.
type Reader struct {
	zipReader *zip.ReadCloser
	elements  []bodyElement
	resolver  *StyleResolver
	docStyles *stylesXML
}

// Open opens an ODT file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{zipReader: zr}

	if err := r.validate(); err != nil {
		zr.Close()
		return nil, err
	}

	// styles.xml is optional but usually present.
	_ = r.parseStyles()

	content, err := r.getFileContent("content.xml")
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("reading content: %w", err)
	}

	contentStyles := parseContentStyles(content)
	r.resolver = NewStyleResolver(contentStyles, r.docStyles)

	if err := r.parseBodyElements(content); err != nil {
		zr.Close()
		return nil, fmt.Errorf("parsing content: %w", err)
	}

	return r, nil
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

// validate checks that required ODT files exist.
func (r *Reader) validate() error {
	for _, f := range r.zipReader.File {
		if f.Name == "content.xml" {
			return nil
		}
	}
	return fmt.Errorf("missing required file: content.xml")
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

// parseStyles parses the styles.xml file.
func (r *Reader) parseStyles() error {
	data, err := r.getFileContent("styles.xml")
	if err != nil {
		return err
	}
	r.docStyles = &stylesXML{}
	return xml.Unmarshal(data, r.docStyles)
}

// parseContentStyles extracts the automatic-styles section of
// content.xml. Automatic styles carry the document's direct formatting.
func parseContentStyles(data []byte) *contentStylesXML {
	type contentDoc struct {
		AutoStyles *contentStylesXML `xml:"automatic-styles"`
	}
	var doc contentDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc.AutoStyles
}

// parseBodyElements walks the office:text body with a streaming decoder
// so paragraphs, headings, and lists keep their document order.
func (r *Reader) parseBodyElements(data []byte) error {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	inBody := false

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "text" && t.Name.Space == nsOffice {
				inBody = true
				continue
			}
			if !inBody {
				continue
			}

			switch t.Name.Local {
			case "p":
				var para paragraphXML
				if err := decoder.DecodeElement(&para, &t); err != nil {
					continue
				}
				r.elements = append(r.elements, bodyElement{Paragraph: &para})

			case "h":
				var heading headingXML
				if err := decoder.DecodeElement(&heading, &t); err != nil {
					continue
				}
				r.elements = append(r.elements, bodyElement{Heading: &heading})

			case "list":
				var list listXML
				styleName := ""
				for _, attr := range t.Attr {
					if attr.Name.Local == "style-name" {
						styleName = attr.Value
						break
					}
				}
				if err := decoder.DecodeElement(&list, &t); err != nil {
					continue
				}
				list.StyleName = styleName
				r.elements = append(r.elements, bodyElement{List: &list})
			}

		case xml.EndElement:
			if t.Name.Local == "text" && t.Name.Space == nsOffice {
				inBody = false
			}
		}
	}

	return nil
}

// paragraphText concatenates a paragraph's direct text and span text.
func paragraphText(p *paragraphXML) string {
	var parts []string
	if p.Text != "" {
		parts = append(parts, p.Text)
	}
	for _, span := range p.Spans {
		if span.Text != "" {
			parts = append(parts, span.Text)
		}
	}
	return strings.Join(parts, "")
}

// headingText concatenates a heading's direct text and span text.
func headingText(h *headingXML) string {
	var parts []string
	if h.Text != "" {
		parts = append(parts, h.Text)
	}
	for _, span := range h.Spans {
		if span.Text != "" {
			parts = append(parts, span.Text)
		}
	}
	return strings.Join(parts, "")
}
