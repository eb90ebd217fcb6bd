package measure

import (
	"fmt"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/pageflow/flow"
)

// Config holds configuration for text measurement.
type Config struct {
	// FontSize is the text size in pixels.
	// Default: 16
	FontSize float64

	// DPI is the resolution measurement assumes.
	// Default: 96
	DPI float64

	// LineHeightScale multiplies the face height into the line height.
	// Default: 1.15
	LineHeightScale float64

	// MarkerGutter is the gap between a list marker and the paragraph
	// text.
	// Default: 8
	MarkerGutter float64
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		FontSize:        16,
		DPI:             96,
		LineHeightScale: 1.15,
		MarkerGutter:    8,
	}
}

// Measurer measures paragraph text into flow line geometry using the
// embedded Go Regular face.
type Measurer struct {
	config  Config
	face    font.Face
	ascent  float64
	descent float64
}

// New creates a measurer with default configuration.
func New() (*Measurer, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a measurer with custom configuration.
func NewWithConfig(config Config) (*Measurer, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    config.FontSize,
		DPI:     config.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	metrics := face.Metrics()
	return &Measurer{
		config:  config,
		face:    face,
		ascent:  fixedToFloat(metrics.Ascent),
		descent: fixedToFloat(metrics.Descent),
	}, nil
}

// LineHeight returns the measurer's line height in pixels.
func (m *Measurer) LineHeight() float64 {
	return (m.ascent + m.descent) * m.config.LineHeightScale
}

// StringWidth measures the rendered width of a string.
func (m *Measurer) StringWidth(s string) float64 {
	return fixedToFloat(font.MeasureString(m.face, norm.NFC.String(s)))
}

// MeasureParagraph breaks a paragraph into lines against maxWidth, the
// column-basis width. Paragraph indents are subtracted here, and list
// paragraphs get their marker measured alongside.
func (m *Measurer) MeasureParagraph(block *flow.ParagraphBlock, maxWidth float64) *flow.ParagraphMeasure {
	return m.Remeasure(block, maxWidth, 0)
}

// Remeasure implements flow.Remeasurer: it re-runs the line breaker at
// the given column-basis width, shortening the first line by
// firstLineIndent for inline list markers.
func (m *Measurer) Remeasure(block *flow.ParagraphBlock, maxWidth, firstLineIndent float64) *flow.ParagraphMeasure {
	bodyWidth := maxWidth - block.Attrs.Indent.Left - block.Attrs.Indent.Right
	if bodyWidth < 1 {
		bodyWidth = 1
	}
	firstWidth := bodyWidth - firstLineIndent
	if firstWidth < 1 {
		firstWidth = 1
	}

	lineHeight := m.LineHeight()
	runes := flattenRuns(block)

	pm := &flow.ParagraphMeasure{}
	if marker := m.measureMarker(block); marker != nil {
		pm.Marker = marker
	}

	if len(runes) == 0 {
		pm.Lines = []flow.Line{{
			Ascent:     m.ascent,
			Descent:    m.descent,
			LineHeight: lineHeight,
			MaxWidth:   bodyWidth,
		}}
		pm.TotalHeight = lineHeight
		return pm
	}

	lineMax := firstWidth
	start := 0
	for start < len(runes) {
		end, width := m.breakLine(runes, start, lineMax)
		pm.Lines = append(pm.Lines, flow.Line{
			FromRun:    runes[start].run,
			FromChar:   runes[start].char,
			ToRun:      runes[end-1].run,
			ToChar:     runes[end-1].char + 1,
			Width:      width,
			Ascent:     m.ascent,
			Descent:    m.descent,
			LineHeight: lineHeight,
			MaxWidth:   lineMax,
		})
		start = skipLeadingSpace(runes, end)
		lineMax = bodyWidth
	}
	pm.TotalHeight = float64(len(pm.Lines)) * lineHeight
	return pm
}

// measureMarker measures the list marker of a paragraph, if any.
func (m *Measurer) measureMarker(block *flow.ParagraphBlock) *flow.Marker {
	text := block.Attrs.WordLayout.MarkerText
	if text == "" {
		return nil
	}
	textWidth := m.StringWidth(text)
	return &flow.Marker{
		Width:      textWidth,
		BoxWidth:   textWidth + m.config.MarkerGutter,
		TextWidth:  textWidth,
		Gutter:     m.config.MarkerGutter,
		IndentLeft: block.Attrs.Indent.Left,
	}
}

// posRune is one rune of paragraph text tagged with its run coordinates.
type posRune struct {
	r    rune
	run  int
	char int
}

// flattenRuns concatenates a block's runs into a single NFC-normalized
// rune sequence that still knows which run each rune came from.
func flattenRuns(block *flow.ParagraphBlock) []posRune {
	var runes []posRune
	for i, run := range block.Runs {
		for j, r := range []rune(norm.NFC.String(run.Text)) {
			runes = append(runes, posRune{r: r, run: i, char: j})
		}
	}
	return runes
}

// breakLine finds the greedy break for a line starting at start against
// lineMax, returning the exclusive end index and the rendered width.
// A single word wider than the line is never split below one rune.
func (m *Measurer) breakLine(runes []posRune, start int, lineMax float64) (end int, width float64) {
	lastBreak := -1
	lastBreakWidth := 0.0
	current := 0.0

	for i := start; i < len(runes); i++ {
		w := m.runeWidth(runes[i].r)
		if current+w > lineMax && i > start {
			if lastBreak > start {
				return lastBreak, lastBreakWidth
			}
			return i, current
		}
		current += w
		if unicode.IsSpace(runes[i].r) {
			lastBreak = i
			lastBreakWidth = current - w
		}
	}
	return len(runes), current
}

func (m *Measurer) runeWidth(r rune) float64 {
	adv, ok := m.face.GlyphAdvance(r)
	if !ok {
		adv, _ = m.face.GlyphAdvance('?')
	}
	return fixedToFloat(adv)
}

// skipLeadingSpace moves past the spaces a line break consumed.
func skipLeadingSpace(runes []posRune, i int) int {
	for i < len(runes) && unicode.IsSpace(runes[i].r) {
		i++
	}
	return i
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

var _ flow.Remeasurer = (*Measurer)(nil)
