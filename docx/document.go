package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	SectPr     sectPrXML      `xml:"sectPr"`
}

// sectPrXML represents section properties (page setup).
type sectPrXML struct {
	PageSize pageSizeXML `xml:"pgSz"`
	Margins  pgMarXML    `xml:"pgMar"`
	Cols     colsXML     `xml:"cols"`
}

// pageSizeXML represents page dimensions in twips.
type pageSizeXML struct {
	W string `xml:"w,attr"`
	H string `xml:"h,attr"`
}

// pgMarXML represents page margins in twips.
type pgMarXML struct {
	Top    string `xml:"top,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Right  string `xml:"right,attr"`
}

// colsXML represents section column setup.
type colsXML struct {
	Num   string `xml:"num,attr"`
	Space string `xml:"space,attr"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	XMLName    xml.Name          `xml:"p"`
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style             styleRefXML       `xml:"pStyle"`
	NumPr             numberingPropsXML `xml:"numPr"`
	Justification     justificationXML  `xml:"jc"`
	Spacing           spacingXML        `xml:"spacing"`
	Indent            indentXML         `xml:"ind"`
	ContextualSpacing onOffXML          `xml:"contextualSpacing"`
	KeepLines         onOffXML          `xml:"keepLines"`
	FramePr           framePrXML        `xml:"framePr"`
	OutlineLvl        outlineLvlXML     `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  ilvlXML  `xml:"ilvl"`
	NumID numIDXML `xml:"numId"`
}

// ilvlXML represents indentation level.
type ilvlXML struct {
	Val string `xml:"val,attr"`
}

// numIDXML represents numbering ID.
type numIDXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// spacingXML represents paragraph spacing.
type spacingXML struct {
	Before string `xml:"before,attr"` // Space before in twips
	After  string `xml:"after,attr"`  // Space after in twips
	Line   string `xml:"line,attr"`   // Line spacing
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left      string `xml:"left,attr"`
	Right     string `xml:"right,attr"`
	FirstLine string `xml:"firstLine,attr"`
	Hanging   string `xml:"hanging,attr"`
}

// onOffXML represents an OOXML on/off toggle element. Presence with no
// val attribute means "on".
type onOffXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// framePrXML represents a text frame (<w:framePr>), which positions a
// paragraph absolutely.
type framePrXML struct {
	XMLName xml.Name `xml:"framePr"`
	Wrap    string   `xml:"wrap,attr"`
	X       string   `xml:"x,attr"`
	Y       string   `xml:"y,attr"`
	XAlign  string   `xml:"xAlign,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	XMLName xml.Name     `xml:"r"`
	Text    []textXML    `xml:"t"`
	Tabs    []tabXML     `xml:"tab"`
	Breaks  []breakXML   `xml:"br"`
	Drawing []drawingXML `xml:"drawing"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"` // preserve
	Value   string   `xml:",chardata"`
}

// tabXML represents a tab character.
type tabXML struct {
	XMLName xml.Name `xml:"tab"`
}

// breakXML represents a break (line or page).
type breakXML struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"` // page, column, textWrapping
}

// drawingXML represents an embedded drawing/image.
type drawingXML struct {
	XMLName xml.Name   `xml:"drawing"`
	Inline  *inlineXML `xml:"inline"`
	Anchor  *anchorXML `xml:"anchor"`
}

// inlineXML represents an inline image.
type inlineXML struct {
	Extent extentXML `xml:"extent"`
	DocPr  docPrXML  `xml:"docPr"`
}

// anchorXML represents an anchored (floating) image.
type anchorXML struct {
	Extent    extentXML    `xml:"extent"`
	DocPr     docPrXML     `xml:"docPr"`
	PositionH positionXML  `xml:"positionH"`
	PositionV positionXML  `xml:"positionV"`
	SimplePos simplePosXML `xml:"simplePos"`
}

// positionXML represents wp:positionH / wp:positionV.
type positionXML struct {
	RelativeFrom string `xml:"relativeFrom,attr"` // page, margin, column, paragraph
	Align        string `xml:"align"`             // left, right, center, top, bottom
	PosOffset    string `xml:"posOffset"`         // EMUs
}

// simplePosXML represents wp:simplePos.
type simplePosXML struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
}

// extentXML represents image dimensions.
type extentXML struct {
	CX string `xml:"cx,attr"` // Width in EMUs
	CY string `xml:"cy,attr"` // Height in EMUs
}

// docPrXML represents document properties of an image.
type docPrXML struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"` // Alt text
}
