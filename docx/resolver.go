package docx

import "strconv"

// ResolvedStyle contains the layout-relevant properties of a paragraph
// style after walking its basedOn inheritance chain. Spacing and indent
// values are pixels.
type ResolvedStyle struct {
	ID   string
	Name string

	SpaceBefore float64
	SpaceAfter  float64
	IndentLeft  float64
	IndentRight float64

	// HasSpaceBefore/After record whether any style in the chain set
	// the value. Style-supplied spacing counts as inherited, not
	// explicit, for blank-paragraph suppression.
	HasSpaceBefore bool
	HasSpaceAfter  bool

	ContextualSpacing bool
	KeepLines         bool
}

// StyleResolver resolves paragraph styles with inheritance support.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	defaults *docDefaultsXML
	resolved map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
	}
	sr.defaults = &styles.DocDefaults

	return sr
}

// Resolve returns the fully resolved style for the given style ID.
// Unknown styles resolve to document defaults.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID}
	if sr.defaults != nil {
		sr.applyProps(resolved, sr.defaults.PPrDefault.PPr)
	}

	if def, ok := sr.styles[styleID]; ok {
		resolved.Name = def.Name.Val
		for _, sid := range sr.buildInheritanceChain(styleID) {
			if d, ok := sr.styles[sid]; ok {
				sr.applyProps(resolved, d.PPr)
			}
		}
	}

	sr.resolved[styleID] = resolved
	return resolved
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		if def, ok := sr.styles[current]; ok {
			current = def.BasedOn.Val
		} else {
			break
		}
	}

	return chain
}

// applyProps applies paragraph properties onto a resolved style.
func (sr *StyleResolver) applyProps(resolved *ResolvedStyle, ppr paragraphPropsXML) {
	if ppr.Spacing.Before != "" {
		resolved.SpaceBefore = twipsToPx(ppr.Spacing.Before)
		resolved.HasSpaceBefore = true
	}
	if ppr.Spacing.After != "" {
		resolved.SpaceAfter = twipsToPx(ppr.Spacing.After)
		resolved.HasSpaceAfter = true
	}
	if ppr.Indent.Left != "" {
		resolved.IndentLeft = twipsToPx(ppr.Indent.Left)
	}
	if ppr.Indent.Right != "" {
		resolved.IndentRight = twipsToPx(ppr.Indent.Right)
	}
	if ppr.ContextualSpacing.XMLName.Local != "" {
		resolved.ContextualSpacing = parseOnOff(ppr.ContextualSpacing)
	}
	if ppr.KeepLines.XMLName.Local != "" {
		resolved.KeepLines = parseOnOff(ppr.KeepLines)
	}
}

// parseOnOff interprets an OOXML on/off toggle. The element being
// present with no val attribute means on; otherwise "1", "true", and
// "on" are on, everything else is off. This is the single place on/off
// coercion happens; the flow engine only ever sees real booleans.
func parseOnOff(v onOffXML) bool {
	if v.XMLName.Local == "" {
		return false
	}
	switch v.Val {
	case "", "1", "true", "on":
		return true
	default:
		return false
	}
}

// twipsToPx converts a twips string to CSS pixels at 96 DPI.
// 1 point = 20 twips, 1 inch = 72 points = 96 pixels.
func twipsToPx(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 20 * 96 / 72
}

// emuToPx converts an EMU string to pixels. 914400 EMUs = 1 inch.
func emuToPx(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 914400 * 96
}
