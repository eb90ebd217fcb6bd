package odt

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// stylesXML represents the structure of styles.xml.
type stylesXML struct {
	XMLName      xml.Name         `xml:"document-styles"`
	Styles       *officeStylesXML `xml:"styles"`
	AutoStyles   *autoStylesXML   `xml:"automatic-styles"`
	MasterStyles *masterStylesXML `xml:"master-styles"`
}

// contentStylesXML represents automatic styles in content.xml.
type contentStylesXML struct {
	XMLName    xml.Name       `xml:"automatic-styles"`
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// officeStylesXML represents the office:styles element (named styles).
type officeStylesXML struct {
	Styles     []styleDefXML  `xml:"style"`
	ListStyles []listStyleXML `xml:"list-style"`
}

// autoStylesXML represents the office:automatic-styles element of
// styles.xml, which carries page layouts.
type autoStylesXML struct {
	Styles      []styleDefXML   `xml:"style"`
	ListStyles  []listStyleXML  `xml:"list-style"`
	PageLayouts []pageLayoutXML `xml:"page-layout"`
}

// masterStylesXML represents the office:master-styles element.
type masterStylesXML struct {
	MasterPages []masterPageXML `xml:"master-page"`
}

// masterPageXML represents a master page (<style:master-page>).
type masterPageXML struct {
	Name           string `xml:"name,attr"`
	PageLayoutName string `xml:"page-layout-name,attr"`
}

// pageLayoutXML represents a page layout (<style:page-layout>).
type pageLayoutXML struct {
	Name      string        `xml:"name,attr"`
	PageProps *pagePropsXML `xml:"page-layout-properties"`
}

// pagePropsXML represents page layout properties.
type pagePropsXML struct {
	PageWidth    string `xml:"page-width,attr"`
	PageHeight   string `xml:"page-height,attr"`
	MarginTop    string `xml:"margin-top,attr"`
	MarginBottom string `xml:"margin-bottom,attr"`
	MarginLeft   string `xml:"margin-left,attr"`
	MarginRight  string `xml:"margin-right,attr"`
}

// styleDefXML represents a style definition (<style:style>).
type styleDefXML struct {
	XMLName             xml.Name           `xml:"style"`
	Name                string             `xml:"name,attr"`
	Family              string             `xml:"family,attr"`
	ParentStyleName     string             `xml:"parent-style-name,attr"`
	DefaultOutlineLevel string             `xml:"default-outline-level,attr"`
	ParagraphProps      *paragraphPropsXML `xml:"paragraph-properties"`
}

// paragraphPropsXML represents paragraph properties
// (<style:paragraph-properties>).
type paragraphPropsXML struct {
	TextAlign         string `xml:"text-align,attr"`
	MarginTop         string `xml:"margin-top,attr"`
	MarginBottom      string `xml:"margin-bottom,attr"`
	MarginLeft        string `xml:"margin-left,attr"`
	MarginRight       string `xml:"margin-right,attr"`
	TextIndent        string `xml:"text-indent,attr"`
	KeepTogether      string `xml:"keep-together,attr"`
	ContextualSpacing string `xml:"contextual-spacing,attr"`
}

// listStyleXML represents a list style definition (<text:list-style>).
type listStyleXML struct {
	XMLName      xml.Name             `xml:"list-style"`
	Name         string               `xml:"name,attr"`
	BulletLevels []listLevelBulletXML `xml:"list-level-style-bullet"`
	NumberLevels []listLevelNumberXML `xml:"list-level-style-number"`
}

// listLevelBulletXML represents a bullet list level.
type listLevelBulletXML struct {
	Level      string `xml:"level,attr"`
	BulletChar string `xml:"bullet-char,attr"`
	NumPrefix  string `xml:"num-prefix,attr"`
	NumSuffix  string `xml:"num-suffix,attr"`
}

// listLevelNumberXML represents a numbered list level.
type listLevelNumberXML struct {
	Level      string `xml:"level,attr"`
	NumFormat  string `xml:"num-format,attr"`
	NumPrefix  string `xml:"num-prefix,attr"`
	NumSuffix  string `xml:"num-suffix,attr"`
	StartValue string `xml:"start-value,attr"`
}

// ResolvedStyle contains the fully resolved layout properties for a
// paragraph style, in pixels.
type ResolvedStyle struct {
	// BaseID is the deepest named (non-automatic) style in the
	// inheritance chain. Automatic styles are per-paragraph direct
	// formatting; consecutive paragraphs pair for contextual spacing
	// by their named ancestor, not by the automatic name.
	BaseID string

	Alignment         string
	SpaceBefore       float64
	SpaceAfter        float64
	BeforeExplicit    bool
	AfterExplicit     bool
	IndentLeft        float64
	IndentRight       float64
	ContextualSpacing bool
	KeepLines         bool
	IsHeading         bool
	HeadingLevel      int
}

// StyleResolver resolves ODT styles with inheritance support.
type StyleResolver struct {
	styles     map[string]*styleDefXML
	listStyles map[string]*listStyleXML
	automatic  map[string]bool
	resolved   map[string]*ResolvedStyle
}

// NewStyleResolver creates a resolver over the named styles from
// styles.xml and the automatic styles from content.xml.
func NewStyleResolver(contentStyles *contentStylesXML, docStyles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:     make(map[string]*styleDefXML),
		listStyles: make(map[string]*listStyleXML),
		automatic:  make(map[string]bool),
		resolved:   make(map[string]*ResolvedStyle),
	}

	if docStyles != nil {
		if docStyles.Styles != nil {
			for i := range docStyles.Styles.Styles {
				style := &docStyles.Styles.Styles[i]
				sr.styles[style.Name] = style
			}
			for i := range docStyles.Styles.ListStyles {
				ls := &docStyles.Styles.ListStyles[i]
				sr.listStyles[ls.Name] = ls
			}
		}
		if docStyles.AutoStyles != nil {
			for i := range docStyles.AutoStyles.Styles {
				style := &docStyles.AutoStyles.Styles[i]
				sr.styles[style.Name] = style
				sr.automatic[style.Name] = true
			}
			for i := range docStyles.AutoStyles.ListStyles {
				ls := &docStyles.AutoStyles.ListStyles[i]
				sr.listStyles[ls.Name] = ls
			}
		}
	}

	if contentStyles != nil {
		for i := range contentStyles.Styles {
			style := &contentStyles.Styles[i]
			sr.styles[style.Name] = style
			sr.automatic[style.Name] = true
		}
		for i := range contentStyles.ListStyles {
			ls := &contentStyles.ListStyles[i]
			sr.listStyles[ls.Name] = ls
		}
	}

	return sr
}

// Resolve returns the fully resolved style for the given style name,
// walking the parent chain from base to derived.
func (sr *StyleResolver) Resolve(styleName string) *ResolvedStyle {
	if styleName == "" {
		return &ResolvedStyle{Alignment: "left"}
	}
	if resolved, ok := sr.resolved[styleName]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{BaseID: styleName, Alignment: "left"}

	chain := sr.buildInheritanceChain(styleName)
	for _, name := range chain {
		def, ok := sr.styles[name]
		if !ok {
			continue
		}
		sr.applyStyleDef(resolved, def)
		if !sr.automatic[name] {
			resolved.BaseID = name
		}
		if def.DefaultOutlineLevel != "" {
			if level, err := strconv.Atoi(def.DefaultOutlineLevel); err == nil && level >= 1 && level <= 9 {
				resolved.IsHeading = true
				resolved.HeadingLevel = level
			}
		}
	}

	if !resolved.IsHeading {
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(resolved.BaseID)
	}

	sr.resolved[styleName] = resolved
	return resolved
}

// buildInheritanceChain returns style names ordered from base to
// derived, cycle-safe.
func (sr *StyleResolver) buildInheritanceChain(styleName string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleName
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.ParentStyleName
	}

	return chain
}

// applyStyleDef layers one style definition's paragraph properties onto
// the resolved style. Margins set by an automatic style count as
// explicitly authored: automatic styles are ODF's direct formatting.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.ParagraphProps
	if ppr == nil {
		return
	}
	direct := sr.automatic[def.Name]

	if ppr.TextAlign != "" {
		resolved.Alignment = ppr.TextAlign
	}
	if ppr.MarginTop != "" {
		resolved.SpaceBefore = parseLength(ppr.MarginTop)
		if direct {
			resolved.BeforeExplicit = true
		}
	}
	if ppr.MarginBottom != "" {
		resolved.SpaceAfter = parseLength(ppr.MarginBottom)
		if direct {
			resolved.AfterExplicit = true
		}
	}
	if ppr.MarginLeft != "" {
		resolved.IndentLeft = parseLength(ppr.MarginLeft)
	}
	if ppr.MarginRight != "" {
		resolved.IndentRight = parseLength(ppr.MarginRight)
	}
	if ppr.KeepTogether == "always" {
		resolved.KeepLines = true
	}
	if ppr.ContextualSpacing == "true" {
		resolved.ContextualSpacing = true
	}
}

// detectBuiltInHeading recognizes the stock heading style names.
// LibreOffice encodes spaces in style names as "_20_".
func detectBuiltInHeading(styleName string) (bool, int) {
	name := strings.ToLower(strings.ReplaceAll(styleName, "_20_", " "))

	if name == "title" {
		return true, 1
	}
	if name == "subtitle" {
		return true, 2
	}
	if !strings.HasPrefix(name, "heading") {
		return false, 0
	}
	for i := 9; i >= 1; i-- {
		if strings.Contains(name, strconv.Itoa(i)) {
			return true, i
		}
	}
	return true, 1
}

// ResolvedListLevel contains resolved list level properties.
type ResolvedListLevel struct {
	IsBullet   bool
	BulletChar string
	NumFormat  string // "1", "a", "A", "i", "I"
	NumPrefix  string
	NumSuffix  string
	StartValue int
}

// ResolveListLevel returns the list formatting for one nesting level of
// a list style. Levels are 0-based here; ODF stores them 1-based.
func (sr *StyleResolver) ResolveListLevel(listStyleName string, level int) *ResolvedListLevel {
	result := &ResolvedListLevel{
		IsBullet:   true,
		BulletChar: "",
		StartValue: 1,
	}

	ls, ok := sr.listStyles[listStyleName]
	if !ok {
		return result
	}

	levelStr := strconv.Itoa(level + 1)

	for _, bl := range ls.BulletLevels {
		if bl.Level == levelStr {
			result.BulletChar = bl.BulletChar
			result.NumPrefix = bl.NumPrefix
			result.NumSuffix = bl.NumSuffix
			return result
		}
	}
	for _, nl := range ls.NumberLevels {
		if nl.Level == levelStr {
			result.IsBullet = false
			result.NumFormat = nl.NumFormat
			result.NumPrefix = nl.NumPrefix
			result.NumSuffix = nl.NumSuffix
			if sv, err := strconv.Atoi(nl.StartValue); err == nil && sv > 0 {
				result.StartValue = sv
			}
			return result
		}
	}

	return result
}

// parseLength parses an ODF length value to pixels at 96 DPI.
// Supports pt, in, cm, mm, and px.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != '-' {
			break
		}
	}
	if i == 0 {
		return 0
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	unit := strings.ToLower(strings.TrimSpace(s[i:]))

	switch unit {
	case "pt":
		return value * 96 / 72
	case "in":
		return value * 96
	case "cm":
		return value * 96 / 2.54
	case "mm":
		return value / 25.4 * 96
	case "px", "":
		return value
	default:
		return 0
	}
}
