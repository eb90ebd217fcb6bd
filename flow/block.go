package flow

// Alignment is a horizontal alignment keyword.
type Alignment string

const (
	AlignNone   Alignment = ""
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// WrapMode describes how surrounding text wraps a framed paragraph.
type WrapMode string

const (
	// WrapNone places the paragraph as a single absolutely positioned
	// rectangle outside the normal flow.
	WrapNone WrapMode = "none"
)

// Run is one run of paragraph content. The flow engine only needs the
// text to tell empty paragraphs apart and to map lines back to document
// positions; character styling is the measurer's concern.
type Run struct {
	Text string
}

// Spacing is vertical spacing around a paragraph, in pixels.
type Spacing struct {
	Before float64
	After  float64
}

// SpacingExplicit records whether spacing was explicitly authored rather
// than inherited from a style. Inherited spacing is suppressed on blank
// paragraphs; explicit spacing is honored.
type SpacingExplicit struct {
	Before bool
	After  bool
}

// Indent is horizontal paragraph indentation, in pixels. Negative values
// are legal and bleed the paragraph beyond the nominal column box.
type Indent struct {
	Left  float64
	Right float64
}

// Frame positions a paragraph absolutely instead of flowing it.
type Frame struct {
	Wrap   WrapMode
	X      float64
	Y      float64
	XAlign Alignment
}

// WordLayout carries word-processor list layout options.
type WordLayout struct {
	// MarkerText is the rendered marker ("1.", "•", ...), empty for
	// non-list paragraphs.
	MarkerText string

	// FirstLineIndentMode places the marker inline before the text of
	// line 1 instead of in a hanging region outside the text flow.
	FirstLineIndentMode bool
}

// ParagraphAttrs enumerates every layout-relevant paragraph option.
// Attributes are validated once at ingestion (see the docx and htmldoc
// packages); the engine trusts the shape but not the numeric values.
type ParagraphAttrs struct {
	Spacing           Spacing
	SpacingExplicit   SpacingExplicit
	StyleID           string
	ContextualSpacing bool
	KeepLines         bool
	Indent            Indent
	FloatAlignment    Alignment
	Frame             *Frame
	WordLayout        WordLayout
}

// ParagraphBlock is one semantic paragraph. Immutable for the duration
// of a flow call.
type ParagraphBlock struct {
	ID    string
	Runs  []Run
	Attrs ParagraphAttrs

	// PMStart/PMEnd are the paragraph's absolute document positions,
	// carried through to fragments so a host editor can map fragments
	// back to its document model.
	PMStart int
	PMEnd   int
}

// IsEmptyText reports whether the paragraph has no text content: zero
// runs, or exactly one run whose string is empty.
func (b *ParagraphBlock) IsEmptyText() bool {
	switch len(b.Runs) {
	case 0:
		return true
	case 1:
		return b.Runs[0].Text == ""
	default:
		return false
	}
}

// runeLength returns the total rune count of the block's runs.
func (b *ParagraphBlock) runeLength() int {
	total := 0
	for _, r := range b.Runs {
		total += len([]rune(r.Text))
	}
	return total
}

// charOffset converts a (run, char) line boundary into an absolute rune
// offset within the paragraph, clamping out-of-range boundaries from
// stale or synthetic geometry.
func (b *ParagraphBlock) charOffset(run, char int) int {
	if run < 0 {
		return 0
	}
	offset := 0
	for i, r := range b.Runs {
		n := len([]rune(r.Text))
		if i == run {
			if char < 0 {
				char = 0
			}
			if char > n {
				char = n
			}
			return offset + char
		}
		offset += n
	}
	return offset
}
