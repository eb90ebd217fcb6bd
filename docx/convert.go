package docx

import (
	"fmt"
	"strconv"

	"github.com/tsawler/pageflow/flow"
	"github.com/tsawler/pageflow/paginate"
)

// Document is the converted, layout-ready form of a DOCX file.
type Document struct {
	Blocks  []*flow.ParagraphBlock
	Anchors []*flow.AnchoredObject
	Config  paginate.Config
}

// Convert maps the parsed DOCX content into flow paragraph blocks,
// anchored objects, and a page configuration.
func (r *Reader) Convert() (*Document, error) {
	if r.document == nil || r.document.Body == nil {
		return nil, fmt.Errorf("document has no body")
	}

	styleResolver := NewStyleResolver(r.styles)
	numResolver := NewNumberingResolver(r.numbering)

	doc := &Document{
		Config: r.pageConfig(),
	}

	charOffset := 0
	for i := range r.document.Body.Paragraphs {
		para := &r.document.Body.Paragraphs[i]
		blockID := fmt.Sprintf("p%d", i+1)

		block := convertParagraph(para, blockID, styleResolver, numResolver)
		block.PMStart = charOffset
		charOffset += blockLength(block) + 1
		block.PMEnd = charOffset

		doc.Blocks = append(doc.Blocks, block)
		doc.Anchors = append(doc.Anchors, convertAnchors(para, blockID)...)
	}

	return doc, nil
}

// pageConfig builds the page setup from section properties, falling
// back to defaults for anything absent or unparseable.
func (r *Reader) pageConfig() paginate.Config {
	config := paginate.DefaultConfig()
	if r.document == nil || r.document.Body == nil {
		return config
	}

	sectPr := r.document.Body.SectPr
	if v := twipsToPx(sectPr.PageSize.W); v > 0 {
		config.PageWidth = v
	}
	if v := twipsToPx(sectPr.PageSize.H); v > 0 {
		config.PageHeight = v
	}
	if v := twipsToPx(sectPr.Margins.Top); v > 0 {
		config.MarginTop = v
	}
	if v := twipsToPx(sectPr.Margins.Bottom); v > 0 {
		config.MarginBottom = v
	}
	if v := twipsToPx(sectPr.Margins.Left); v > 0 {
		config.MarginLeft = v
	}
	if v := twipsToPx(sectPr.Margins.Right); v > 0 {
		config.MarginRight = v
	}
	if n, err := strconv.Atoi(sectPr.Cols.Num); err == nil && n > 1 {
		config.Columns = n
		if v := twipsToPx(sectPr.Cols.Space); v > 0 {
			config.ColumnGap = v
		}
	}
	return config
}

// convertParagraph maps one <w:p> element into a flow paragraph block,
// merging style-inherited properties with direct formatting. Direct
// properties always win over the style chain.
func convertParagraph(para *paragraphXML, blockID string, styles *StyleResolver, nums *NumberingResolver) *flow.ParagraphBlock {
	ppr := para.Properties
	style := styles.Resolve(ppr.Style.Val)

	attrs := flow.ParagraphAttrs{
		StyleID:           ppr.Style.Val,
		ContextualSpacing: style.ContextualSpacing,
		KeepLines:         style.KeepLines,
		Spacing: flow.Spacing{
			Before: style.SpaceBefore,
			After:  style.SpaceAfter,
		},
		Indent: flow.Indent{
			Left:  style.IndentLeft,
			Right: style.IndentRight,
		},
	}

	// Direct formatting overrides. Direct spacing counts as explicitly
	// authored, so blank paragraphs keep it.
	if ppr.Spacing.Before != "" {
		attrs.Spacing.Before = twipsToPx(ppr.Spacing.Before)
		attrs.SpacingExplicit.Before = true
	}
	if ppr.Spacing.After != "" {
		attrs.Spacing.After = twipsToPx(ppr.Spacing.After)
		attrs.SpacingExplicit.After = true
	}
	if ppr.Indent.Left != "" {
		attrs.Indent.Left = twipsToPx(ppr.Indent.Left)
	}
	if ppr.Indent.Right != "" {
		attrs.Indent.Right = twipsToPx(ppr.Indent.Right)
	}
	if ppr.ContextualSpacing.XMLName.Local != "" {
		attrs.ContextualSpacing = parseOnOff(ppr.ContextualSpacing)
	}
	if ppr.KeepLines.XMLName.Local != "" {
		attrs.KeepLines = parseOnOff(ppr.KeepLines)
	}

	switch ppr.Justification.Val {
	case "right", "end":
		attrs.FloatAlignment = flow.AlignRight
	case "center":
		attrs.FloatAlignment = flow.AlignCenter
	}

	if ppr.FramePr.XMLName.Local != "" && ppr.FramePr.Wrap == "none" {
		attrs.Frame = &flow.Frame{
			Wrap:   flow.WrapNone,
			X:      twipsToPx(ppr.FramePr.X),
			Y:      twipsToPx(ppr.FramePr.Y),
			XAlign: frameAlignment(ppr.FramePr.XAlign),
		}
	}

	if nums.IsListParagraph(ppr.NumPr.NumID.Val) {
		level := 0
		if n, err := strconv.Atoi(ppr.NumPr.ILvl.Val); err == nil && n >= 0 {
			level = n
		}
		attrs.WordLayout.MarkerText = nums.NextMarker(ppr.NumPr.NumID.Val, level)
		// With a hanging indent the marker lives in the hanging region
		// and the first line starts flush with the body. Without one the
		// marker pushes the first line right.
		attrs.WordLayout.FirstLineIndentMode = ppr.Indent.Hanging == ""
	}

	return &flow.ParagraphBlock{
		ID:    blockID,
		Runs:  convertRuns(para.Runs),
		Attrs: attrs,
	}
}

// convertRuns flattens run text, mapping tabs and soft line breaks onto
// plain characters the measurer understands.
func convertRuns(runs []runXML) []flow.Run {
	var out []flow.Run
	for _, r := range runs {
		var text string
		for _, t := range r.Text {
			text += t.Value
		}
		for range r.Tabs {
			text += "\t"
		}
		for range r.Breaks {
			text += " "
		}
		if text == "" && len(r.Drawing) > 0 {
			continue
		}
		out = append(out, flow.Run{Text: text})
	}
	return out
}

// convertAnchors extracts anchored (floating) drawings from a
// paragraph's runs. Inline drawings flow with the text and are not
// anchored objects.
func convertAnchors(para *paragraphXML, blockID string) []*flow.AnchoredObject {
	var objects []*flow.AnchoredObject
	n := 0
	for _, run := range para.Runs {
		for _, d := range run.Drawing {
			if d.Anchor == nil {
				continue
			}
			n++
			a := d.Anchor
			obj := &flow.AnchoredObject{
				ID:            fmt.Sprintf("%s-obj%d", blockID, n),
				AnchorBlockID: blockID,
				Measure: flow.ObjectMeasure{
					Width:  emuToPx(a.Extent.CX),
					Height: emuToPx(a.Extent.CY),
				},
				Attrs: flow.AnchorAttrs{
					HRelativeFrom: relativeFrom(a.PositionH.RelativeFrom),
					VRelativeFrom: relativeFrom(a.PositionV.RelativeFrom),
					AlignH:        horizontalAlign(a.PositionH.Align),
					AlignV:        verticalAlign(a.PositionV.Align),
					OffsetX:       emuToPx(a.PositionH.PosOffset),
					OffsetY:       emuToPx(a.PositionV.PosOffset),
					SizeRelative:  relativeFrom(a.PositionH.RelativeFrom),
				},
			}
			objects = append(objects, obj)
		}
	}
	return objects
}

// relativeFrom maps an OOXML relativeFrom attribute onto the engine's
// reference frames. Unknown frames fall back to paragraph-relative.
func relativeFrom(s string) flow.RelativeFrom {
	switch s {
	case "page":
		return flow.RelPage
	case "margin", "leftMargin", "rightMargin", "topMargin", "bottomMargin":
		return flow.RelMargin
	case "column":
		return flow.RelColumn
	case "paragraph", "line":
		return flow.RelParagraph
	default:
		return flow.RelUnset
	}
}

// horizontalAlign maps a wp:align value onto a flow alignment.
func horizontalAlign(s string) flow.Alignment {
	switch s {
	case "left", "inside":
		return flow.AlignLeft
	case "right", "outside":
		return flow.AlignRight
	case "center":
		return flow.AlignCenter
	default:
		return flow.AlignNone
	}
}

// verticalAlign maps a wp:align value onto a vertical alignment.
func verticalAlign(s string) flow.VerticalAlign {
	switch s {
	case "top", "inside":
		return flow.VAlignTop
	case "bottom", "outside":
		return flow.VAlignBottom
	case "center":
		return flow.VAlignCenter
	default:
		return flow.VAlignNone
	}
}

// frameAlignment maps a framePr xAlign value onto a flow alignment.
func frameAlignment(s string) flow.Alignment {
	switch s {
	case "left":
		return flow.AlignLeft
	case "right":
		return flow.AlignRight
	case "center":
		return flow.AlignCenter
	default:
		return flow.AlignNone
	}
}


// blockLength returns the rune count of a block's runs.
func blockLength(b *flow.ParagraphBlock) int {
	total := 0
	for _, r := range b.Runs {
		total += len([]rune(r.Text))
	}
	return total
}
