// Package htmldoc converts HTML documents into flow paragraph blocks.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/pageflow/flow"
)

// Default paragraph styling per element kind, in pixels. Mirrors common
// browser user-agent spacing at 96 DPI.
const (
	paragraphSpaceAfter = 16
	headingSpaceBefore  = 20
	headingSpaceAfter   = 10
	listIndentPerLevel  = 24
	blockquoteIndent    = 40
)

// Reader provides access to HTML document content as paragraph blocks.
type Reader struct {
	doc    *html.Node
	title  string
	blocks []*flow.ParagraphBlock

	nextID     int
	charOffset int
	listLevel  int
	ordinals   []int
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	reader.extractTitle(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	reader.traverseNode(body)

	return reader, nil
}

// Close releases resources associated with the Reader. HTML readers keep
// no file handles open.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title from the head element.
func (r *Reader) Title() string {
	return r.title
}

// Blocks returns the paragraph blocks in document order.
func (r *Reader) Blocks() []*flow.ParagraphBlock {
	return r.blocks
}

// extractTitle finds the head title element.
func (r *Reader) extractTitle(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "title" {
				r.title = getTextContent(c)
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractTitle(c)
	}
}

// traverseNode recursively processes DOM nodes, appending a paragraph
// block per block-level element.
func (r *Reader) traverseNode(n *html.Node) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level := int(n.Data[1] - '0')
			text := strings.TrimSpace(getTextContent(n))
			if text != "" {
				r.appendBlock(text, flow.ParagraphAttrs{
					StyleID: "Heading" + strconv.Itoa(level),
					Spacing: flow.Spacing{Before: headingSpaceBefore, After: headingSpaceAfter},
					// Headings keep their block on one column.
					KeepLines: true,
				})
			}
			return

		case "p":
			text := strings.TrimSpace(getTextContent(n))
			r.appendBlock(text, flow.ParagraphAttrs{
				StyleID: "Normal",
				Spacing: flow.Spacing{After: paragraphSpaceAfter},
			})
			return

		case "div", "article", "section", "main", "header", "footer", "nav", "aside":
			if isBlockContainer(n) {
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					r.traverseNode(c)
				}
				return
			}
			text := strings.TrimSpace(getTextContent(n))
			if text != "" {
				r.appendBlock(text, flow.ParagraphAttrs{
					StyleID: "Normal",
					Spacing: flow.Spacing{After: paragraphSpaceAfter},
				})
			}
			return

		case "ul", "ol":
			r.listLevel++
			r.ordinals = append(r.ordinals, 0)
			ordered := n.Data == "ol"
			if start := attrValue(n, "start"); start != "" {
				if s, err := strconv.Atoi(start); err == nil {
					r.ordinals[len(r.ordinals)-1] = s - 1
				}
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "li" {
					r.appendListItem(c, ordered)
				}
			}
			r.ordinals = r.ordinals[:len(r.ordinals)-1]
			r.listLevel--
			return

		case "blockquote":
			text := strings.TrimSpace(getTextContent(n))
			if text != "" {
				r.appendBlock(text, flow.ParagraphAttrs{
					StyleID: "Quote",
					Spacing: flow.Spacing{After: paragraphSpaceAfter},
					Indent:  flow.Indent{Left: blockquoteIndent, Right: blockquoteIndent},
				})
			}
			return

		case "pre", "code":
			text := getTextContent(n)
			if text != "" {
				r.appendBlock(text, flow.ParagraphAttrs{
					StyleID:   "Code",
					Spacing:   flow.Spacing{After: paragraphSpaceAfter},
					KeepLines: true,
				})
			}
			return

		case "br", "hr":
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.traverseNode(c)
	}
}

// appendListItem emits the item's own text as a marked paragraph, then
// descends into nested lists.
func (r *Reader) appendListItem(li *html.Node, ordered bool) {
	text := getDirectTextContent(li)
	if text != "" {
		r.ordinals[len(r.ordinals)-1]++
		marker := "•"
		if ordered {
			marker = strconv.Itoa(r.ordinals[len(r.ordinals)-1]) + "."
		}
		r.appendBlock(text, flow.ParagraphAttrs{
			StyleID:           "ListParagraph",
			ContextualSpacing: true,
			Spacing:           flow.Spacing{After: paragraphSpaceAfter},
			Indent:            flow.Indent{Left: float64(r.listLevel) * listIndentPerLevel},
			WordLayout: flow.WordLayout{
				MarkerText:          marker,
				FirstLineIndentMode: true,
			},
		})
	}

	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			r.traverseNode(c)
		}
	}
}

// appendBlock creates a paragraph block with document positions assigned
// sequentially.
func (r *Reader) appendBlock(text string, attrs flow.ParagraphAttrs) {
	r.nextID++
	block := &flow.ParagraphBlock{
		ID:      fmt.Sprintf("p%d", r.nextID),
		Attrs:   attrs,
		PMStart: r.charOffset,
	}
	if text != "" {
		block.Runs = []flow.Run{{Text: text}}
	}
	r.charOffset += len([]rune(text)) + 1
	block.PMEnd = r.charOffset
	r.blocks = append(r.blocks, block)
}

// shouldSkipElement returns true if the element never contributes
// content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockContainer returns true if the element has block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// attrValue returns the value of a named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts all text content from a node and its
// descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

// getDirectTextContent gets text content from a node, excluding nested
// block elements.
func getDirectTextContent(n *html.Node) string {
	var result strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			result.WriteString(c.Data)
		} else if c.Type == html.ElementNode {
			switch c.Data {
			case "ul", "ol", "div", "p", "blockquote":
				// Block elements get their own paragraphs
			default:
				result.WriteString(getTextContent(c))
			}
		}
	}
	return strings.TrimSpace(result.String())
}
