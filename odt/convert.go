package odt

import (
	"fmt"
	"unicode/utf8"

	"github.com/tsawler/pageflow/flow"
	"github.com/tsawler/pageflow/paginate"
)

// listIndentPerLevel is the horizontal indent added per list nesting
// level, in pixels.
const listIndentPerLevel = 24

// Document is the converted, layout-ready form of an ODT file.
type Document struct {
	Blocks []*flow.ParagraphBlock
	Config paginate.Config
}

// Convert maps the parsed ODT content into flow paragraph blocks and a
// page configuration.
func (r *Reader) Convert() (*Document, error) {
	doc := &Document{Config: r.pageConfig()}
	c := &converter{resolver: r.resolver}

	for _, elem := range r.elements {
		switch {
		case elem.Paragraph != nil:
			c.addParagraph(doc, elem.Paragraph)
		case elem.Heading != nil:
			c.addHeading(doc, elem.Heading)
		case elem.List != nil:
			c.addList(doc, elem.List, 0)
		}
	}

	return doc, nil
}

// pageConfig builds the page setup from the first master page's layout,
// falling back to defaults for anything absent.
func (r *Reader) pageConfig() paginate.Config {
	config := paginate.DefaultConfig()
	if r.docStyles == nil || r.docStyles.MasterStyles == nil ||
		r.docStyles.AutoStyles == nil || len(r.docStyles.MasterStyles.MasterPages) == 0 {
		return config
	}

	layoutName := r.docStyles.MasterStyles.MasterPages[0].PageLayoutName
	for i := range r.docStyles.AutoStyles.PageLayouts {
		layout := &r.docStyles.AutoStyles.PageLayouts[i]
		if layout.Name != layoutName || layout.PageProps == nil {
			continue
		}
		props := layout.PageProps
		if v := parseLength(props.PageWidth); v > 0 {
			config.PageWidth = v
		}
		if v := parseLength(props.PageHeight); v > 0 {
			config.PageHeight = v
		}
		if v := parseLength(props.MarginTop); v > 0 {
			config.MarginTop = v
		}
		if v := parseLength(props.MarginBottom); v > 0 {
			config.MarginBottom = v
		}
		if v := parseLength(props.MarginLeft); v > 0 {
			config.MarginLeft = v
		}
		if v := parseLength(props.MarginRight); v > 0 {
			config.MarginRight = v
		}
		break
	}
	return config
}

// converter accumulates blocks with sequential IDs and document
// positions.
type converter struct {
	resolver   *StyleResolver
	nextID     int
	charOffset int
}

// appendBlock assigns the block its ID and document positions and adds
// it to the document.
func (c *converter) appendBlock(doc *Document, block *flow.ParagraphBlock) {
	c.nextID++
	block.ID = fmt.Sprintf("p%d", c.nextID)

	length := 0
	for _, run := range block.Runs {
		length += utf8.RuneCountInString(run.Text)
	}
	block.PMStart = c.charOffset
	c.charOffset += length + 1
	block.PMEnd = c.charOffset

	doc.Blocks = append(doc.Blocks, block)
}

// styleAttrs maps a resolved style onto flow paragraph attributes.
func styleAttrs(style *ResolvedStyle) flow.ParagraphAttrs {
	attrs := flow.ParagraphAttrs{
		StyleID:           style.BaseID,
		ContextualSpacing: style.ContextualSpacing,
		KeepLines:         style.KeepLines,
		Spacing: flow.Spacing{
			Before: style.SpaceBefore,
			After:  style.SpaceAfter,
		},
		SpacingExplicit: flow.SpacingExplicit{
			Before: style.BeforeExplicit,
			After:  style.AfterExplicit,
		},
		Indent: flow.Indent{
			Left:  style.IndentLeft,
			Right: style.IndentRight,
		},
	}
	switch style.Alignment {
	case "right", "end":
		attrs.FloatAlignment = flow.AlignRight
	case "center":
		attrs.FloatAlignment = flow.AlignCenter
	}
	return attrs
}

// addParagraph converts one body paragraph.
func (c *converter) addParagraph(doc *Document, p *paragraphXML) {
	style := c.resolver.Resolve(p.StyleName)
	block := &flow.ParagraphBlock{Attrs: styleAttrs(style)}
	if text := paragraphText(p); text != "" {
		block.Runs = []flow.Run{{Text: text}}
	}
	c.appendBlock(doc, block)
}

// addHeading converts a heading. The outline level on the element wins
// over whatever the style declares.
func (c *converter) addHeading(doc *Document, h *headingXML) {
	style := c.resolver.Resolve(h.StyleName)
	level := style.HeadingLevel
	if l := parseOutlineLevel(h.OutlineLevel); l > 0 {
		level = l
	}
	if level < 1 {
		level = 1
	}

	attrs := styleAttrs(style)
	attrs.StyleID = fmt.Sprintf("Heading%d", level)
	attrs.KeepLines = true

	block := &flow.ParagraphBlock{Attrs: attrs}
	if text := headingText(h); text != "" {
		block.Runs = []flow.Run{{Text: text}}
	}
	c.appendBlock(doc, block)
}

func parseOutlineLevel(s string) int {
	switch s {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	case "7":
		return 7
	case "8":
		return 8
	case "9":
		return 9
	default:
		return 0
	}
}

// addList converts a list recursively. Each nested list restarts its
// own numbering; the outer list's counter keeps running.
func (c *converter) addList(doc *Document, list *listXML, level int) {
	ll := c.resolver.ResolveListLevel(list.StyleName, level)
	num := ll.StartValue - 1

	for i := range list.Items {
		item := &list.Items[i]

		for j := range item.Paragraphs {
			para := &item.Paragraphs[j]
			text := paragraphText(para)
			if text == "" {
				continue
			}

			style := c.resolver.Resolve(para.StyleName)
			attrs := styleAttrs(style)
			attrs.Indent.Left += float64(level+1) * listIndentPerLevel
			attrs.ContextualSpacing = true

			// Only the item's first paragraph carries the marker.
			if j == 0 {
				num++
				attrs.WordLayout.MarkerText = c.markerText(ll, level, num)
				attrs.WordLayout.FirstLineIndentMode = true
			}

			block := &flow.ParagraphBlock{
				Runs:  []flow.Run{{Text: text}},
				Attrs: attrs,
			}
			c.appendBlock(doc, block)
		}

		for k := range item.SubLists {
			sub := &item.SubLists[k]
			if sub.StyleName == "" {
				sub.StyleName = list.StyleName
			}
			c.addList(doc, sub, level+1)
		}
	}
}

// markerText renders the marker for one list item.
func (c *converter) markerText(ll *ResolvedListLevel, level, num int) string {
	if ll.IsBullet {
		if usableBullet(ll.BulletChar) {
			return ll.NumPrefix + ll.BulletChar + ll.NumSuffix
		}
		return bulletForLevel(level)
	}
	return ll.NumPrefix + formatListNumber(num, ll.NumFormat) + ll.NumSuffix
}
