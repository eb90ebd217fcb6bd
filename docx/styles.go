package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

// docDefaultsXML represents document default styles.
type docDefaultsXML struct {
	PPrDefault pPrDefaultXML `xml:"pPrDefault"`
}

// pPrDefaultXML represents default paragraph properties.
type pPrDefaultXML struct {
	PPr paragraphPropsXML `xml:"pPr"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	XMLName xml.Name          `xml:"style"`
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Default string            `xml:"default,attr"` // "1" if default style
	Name    styleNameXML      `xml:"name"`
	BasedOn basedOnXML        `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// styleNameXML represents a style name.
type styleNameXML struct {
	Val string `xml:"val,attr"`
}

// basedOnXML represents parent style reference.
type basedOnXML struct {
	Val string `xml:"val,attr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl    string     `xml:"ilvl,attr"`
	Start   startXML   `xml:"start"`
	NumFmt  numFmtXML  `xml:"numFmt"`
	LvlText lvlTextXML `xml:"lvlText"`
	PPr     paragraphPropsXML `xml:"pPr"`
}

// startXML represents numbering start value.
type startXML struct {
	Val string `xml:"val,attr"`
}

// numFmtXML represents number format.
type numFmtXML struct {
	Val string `xml:"val,attr"` // decimal, bullet, lowerLetter, upperLetter, lowerRoman, upperRoman
}

// lvlTextXML represents level text pattern.
type lvlTextXML struct {
	Val string `xml:"val,attr"` // e.g., "%1.", "%1.%2"
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string         `xml:"numId,attr"`
	AbstractNumID abstractRefXML `xml:"abstractNumId"`
}

// abstractRefXML represents reference to abstract numbering.
type abstractRefXML struct {
	Val string `xml:"val,attr"`
}
