package flow

// placeFramed places a wrap-none paragraph as one absolutely positioned
// fragment spanning all its lines. Framed paragraphs do not participate
// in line-by-line flow: the cursor and spacing carry are left untouched
// apart from the trailing-spacing reset done by the caller.
func (e *Engine) placeFramed(block *ParagraphBlock, pm *ParagraphMeasure, columnWidth float64, state *PageState) Fragment {
	f := block.Attrs.Frame

	widest := 0.0
	for _, ln := range pm.Lines {
		if w := sanitizeLength(ln.Width); w > widest {
			widest = w
		}
	}
	if widest == 0 {
		widest = sanitizeLength(columnWidth)
	}

	colX := e.Pages.ColumnX(state.ColumnIndex)
	x := colX
	switch f.XAlign {
	case AlignCenter:
		x = colX + (columnWidth-widest)/2
	case AlignRight:
		x = colX + columnWidth - widest
	}
	x += sanitizeOffset(f.X)
	y := state.TopMargin + sanitizeOffset(f.Y)

	frag := Fragment{
		BlockID:  block.ID,
		FromLine: 0,
		ToLine:   len(pm.Lines),
		X:        x,
		Y:        y,
		Width:    widest,
		Lines:    append([]Line(nil), pm.Lines...),
	}
	frag.PMStart, frag.PMEnd = fragmentPositions(block, pm.Lines, 0, len(pm.Lines))
	if state.Page != nil {
		state.Page.Fragments = append(state.Page.Fragments, frag)
	}
	return frag
}
