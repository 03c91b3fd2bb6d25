package text

import (
	"fmt"
)

// Alignment positions the text relative to the anchor point.
type Alignment uint8

const (
	// AlignStart aligns to the left, or to the top if vertical.
	AlignStart Alignment = iota
	// AlignCenter aligns to the center.
	AlignCenter
	// AlignEnd aligns to the right, or to the bottom if vertical.
	AlignEnd
)

// LayoutSettings are the settings of a text layout.
type LayoutSettings struct {
	// MaxWidth is the max width of the text layout. Any line that exceeds
	// this width suffers a line break at the last break opportunity, as
	// specified in UAX #14. If the line has no break opportunity, it
	// breaks at the first glyph to overflow. A single glyph line is
	// allowed to overflow. A MaxWidth of zero or less disables wrapping.
	MaxWidth float32
	// HorizontalAlign aligns the text towards the origin. With AlignEnd,
	// for example, all glyphs have a negative x position.
	HorizontalAlign Alignment
	// VerticalAlign aligns the text block towards the origin.
	VerticalAlign Alignment
}

// Line is a single laid out line of text.
type Line struct {
	// Ascent is the position of the top of the line, relative to the line
	// origin. It grows up.
	Ascent float32
	// Descent is the position of the bottom of the line, relative to the
	// line origin. It grows up, so it is usually negative.
	Descent float32
	// LineGap is the gap between the bottom of this line and the top of
	// the next.
	LineGap float32
	// Y is the vertical position of the line origin, relative to the
	// layout origin.
	Y float32
	// X is the horizontal position of the line start, relative to the
	// layout origin.
	X float32
	// Width of the line, in pixels.
	Width float32
	// ByteRange is the section of the string represented by this line.
	ByteRange Range
	// GlyphRange indexes the glyphs of this line in the layout.
	GlyphRange Range
}

// Height returns ascent - descent.
func (l *Line) Height() float32 {
	return l.Ascent - l.Descent
}

// VisibleWidth returns the width of the line, ignoring the last glyph if it
// is a whitespace.
func (l *Line) VisibleWidth(glyphs []GlyphPosition) float32 {
	if l.GlyphRange.IsEmpty() {
		return l.Width
	}
	last := &glyphs[l.GlyphRange.End-1]
	if last.IsWhitespace {
		return l.Width - last.Width
	}
	return l.Width
}

// moveTo moves this line and all its glyphs to the given position.
func (l *Line) moveTo(x, y float32, glyphs []GlyphPosition) {
	xOff := x - l.X
	yOff := y - l.Y
	l.X = x
	l.Y = y
	for i := l.GlyphRange.Start; i < l.GlyphRange.End; i++ {
		glyphs[i].X += xOff
		glyphs[i].Y += yOff
	}
}

// ColorRect is a rect associated with a color, used for selections and
// backgrounds.
type ColorRect struct {
	// Rect in the form [x1, y1, x2, y2].
	Rect  [4]float32
	Color NRGBA
}

// TextLayout shapes and lays out a SpannedString, producing glyphs for
// rendering. The glyphs are positioned relative to the alignment anchor, and
// must be translated to the desired location to be rendered.
//
// An extra whitespace glyph is appended after the text. It forms the final
// empty line when the text ends in a hard break, and holds the caret
// position for byte index len(text).
type TextLayout struct {
	text     *SpannedString
	settings LayoutSettings
	lines    []Line
	glyphs   []GlyphPosition
	rects    []ColorRect
	// The minimum size of the bound rect so that there is no line wrap or
	// overflow.
	minSize [2]float32
}

// NewTextLayout creates a layout of the given SpannedString. The layout
// takes ownership of the string, use Spanned or ToSpanned to get it back.
func NewTextLayout(text *SpannedString, settings LayoutSettings, fonts *Fonts) *TextLayout {
	t := &TextLayout{
		text:     text,
		settings: settings,
	}
	t.layout(fonts)
	return t
}

// Text returns the string this layout represents.
func (t *TextLayout) Text() string { return t.text.String() }

// Spanned returns the inner SpannedString. Mutating it requires a relayout.
func (t *TextLayout) Spanned() *SpannedString { return t.text }

// ToSpanned destroys the layout, returning the inner SpannedString.
func (t *TextLayout) ToSpanned() *SpannedString {
	text := t.text
	t.text = nil
	return text
}

// Settings returns the layout settings.
func (t *TextLayout) Settings() LayoutSettings { return t.settings }

// MinSize returns the minimum width and height required so that there is no
// line wrap or overflow.
func (t *TextLayout) MinSize() [2]float32 { return t.minSize }

// Height returns the height of the laid out text, from the top of the first
// line to the bottom of the last.
func (t *TextLayout) Height() float32 {
	var sum float32
	for i := range t.lines {
		sum += t.lines[i].Height() + t.lines[i].LineGap
	}
	if len(t.lines) > 0 {
		sum -= t.lines[len(t.lines)-1].LineGap
	}
	return sum
}

// Glyphs returns the glyphs of the layout, positioned relative to the
// alignment anchor.
func (t *TextLayout) Glyphs() []GlyphPosition { return t.glyphs }

// Rects returns the selection and background rects of the layout, positioned
// relative to the alignment anchor.
func (t *TextLayout) Rects() []ColorRect { return t.rects }

// Lines returns the lines of the layout.
func (t *TextLayout) Lines() []Line { return t.lines }

// PixelPositionFromByteIndex returns the position of the caret at the given
// byte index, or false if it is out of bounds. The extra glyph appended
// after the text holds the caret position for byte index len(text).
func (t *TextLayout) PixelPositionFromByteIndex(byteIndex int) ([2]float32, bool) {
	if len(t.glyphs) == 0 {
		return [2]float32{}, false
	}
	i, ok := searchRange(len(t.glyphs), byteIndex, func(j int) Range {
		return t.glyphs[j].ByteRange
	})
	if !ok {
		return [2]float32{}, false
	}
	glyph := &t.glyphs[i]
	return [2]float32{glyph.X, glyph.Y}, true
}

// LineFromYPosition returns the index of the line that contains the given y
// position, or the closest one. If y is above the first line it returns 0,
// if below the last it returns the last line index.
func (t *TextLayout) LineFromYPosition(y float32) int {
	lo, hi := 0, len(t.lines)
	for lo < hi {
		mid := (lo + hi) / 2
		l := &t.lines[mid]
		switch {
		case l.Y-l.Ascent > y:
			hi = mid
		case l.Y-l.Descent < y:
			lo = mid + 1
		default:
			return mid
		}
	}
	if lo == 0 {
		return 0
	}
	if lo >= len(t.lines) {
		return len(t.lines) - 1
	}
	return lo
}

// ByteIndexFromXPosition returns the byte index for the caret located at the
// given line and horizontal position, rounded to the closest caret position.
func (t *TextLayout) ByteIndexFromXPosition(line int, x float32) int {
	l := &t.lines[line]
	glyphs := t.glyphs[l.GlyphRange.Start:l.GlyphRange.End]
	lo, hi := 0, len(glyphs)
	for lo < hi {
		mid := (lo + hi) / 2
		g := &glyphs[mid]
		switch {
		case x < g.X:
			hi = mid
		case x > g.Right():
			lo = mid + 1
		default:
			// round to the nearest side of the glyph
			middle := g.X + g.Width/2.0
			i := mid
			if i < len(glyphs)-1 && x > middle {
				i++
			}
			return glyphs[i].ByteRange.Start
		}
	}
	if lo == 0 {
		return l.ByteRange.Start
	}
	return glyphs[len(glyphs)-1].ByteRange.Start
}

// ByteIndexFromPosition returns the byte index for the caret located closest
// to the given position.
func (t *TextLayout) ByteIndexFromPosition(x, y float32) int {
	line := t.LineFromYPosition(y)
	return t.ByteIndexFromXPosition(line, x)
}

// ReplaceRange removes the given byte range of the string and replaces it
// with the given text, then recomputes the layout. The replacement does not
// need to have the same length as the range.
func (t *TextLayout) ReplaceRange(r Range, s string, fonts *Fonts) {
	if r.End > t.text.Len() {
		panic(fmt.Sprintf("text: range end is %d, but string len is %d", r.End, t.text.Len()))
	}
	t.text.ReplaceRange(r, s)
	t.relayout(fonts)
}

// Relayout recomputes the layout, after the inner SpannedString was mutated
// or to change the settings.
func (t *TextLayout) Relayout(settings LayoutSettings, fonts *Fonts) {
	t.settings = settings
	t.relayout(fonts)
}

func (t *TextLayout) relayout(fonts *Fonts) {
	t.glyphs = t.glyphs[:0]
	t.rects = t.rects[:0]
	t.lines = t.lines[:0]
	t.minSize = [2]float32{}
	t.layout(fonts)
}

func (t *TextLayout) layout(fonts *Fonts) {
	// The extra glyph per the type doc. It uses the font size of the last
	// span so the final empty line has a plausible height.
	working := t.text.String() + " "
	spans := t.text.ShapeSpans()
	lastSize := t.text.Default.FontSize
	lastFont := t.text.Default.FontID
	if len(spans) > 0 {
		lastSize = spans[len(spans)-1].FontSize
		lastFont = spans[len(spans)-1].FontID
	}
	spans = append(spans, ShapeSpan{
		ByteRange: Range{len(working) - 1, len(working)},
		FontSize:  lastSize,
		FontID:    lastFont,
	})

	allowed, mandatory := lineBreaks(working)

	paragraphs := t.layoutParagraphs(working, spans, mandatory, fonts)
	t.computeMinSize(paragraphs)
	t.breakLines(paragraphs, allowed)
	t.positionLines()
	t.applyStyles()
}

// layoutParagraphs lays out each paragraph in a lineLayout. A paragraph is a
// section of the text separated by mandatory break lines.
func (t *TextLayout) layoutParagraphs(working string, spans []ShapeSpan, mandatory []int, fonts *Fonts) []*lineLayout {
	var paragraphs []*lineLayout
	start := 0
	for _, next := range mandatory {
		if next <= start {
			continue
		}
		r := Range{start, next}
		var runs []ShapeSpan
		for _, span := range spans {
			s := span.ByteRange
			if s.End <= r.Start || s.Start >= r.End {
				continue
			}
			span.ByteRange = Range{max(s.Start, r.Start), min(s.End, r.End)}
			runs = append(runs, span)
		}
		paragraphs = append(paragraphs, newLineLayout(working, runs, fonts))
		start = next
	}
	return paragraphs
}

// computeMinSize computes the minimum size of the bound rect of this layout
// required so that there is no line wrap or overflow.
func (t *TextLayout) computeMinSize(paragraphs []*lineLayout) {
	var height, width float32
	for i, p := range paragraphs {
		height += p.height + p.lineGap
		if i == len(paragraphs)-1 {
			height -= p.lineGap
		}
		width = max32(width, p.width)
	}
	t.minSize = [2]float32{width, height}
}

// breakLines breaks the paragraphs in lines bound by max width, and moves
// all lines and glyphs into the layout.
func (t *TextLayout) breakLines(paragraphs []*lineLayout, allowed []int) {
	if t.settings.MaxWidth > 0 {
		breaks := allowed
		for _, p := range paragraphs {
			p.breakLines(t.settings.MaxWidth, &breaks)
		}
	} else {
		for _, p := range paragraphs {
			p.lines = []Line{p.formLine()}
		}
	}

	for _, p := range paragraphs {
		startGlyph := len(t.glyphs)
		for _, line := range p.lines {
			line.GlyphRange.Start += startGlyph
			line.GlyphRange.End += startGlyph
			t.lines = append(t.lines, line)
		}
		for _, glyph := range p.glyphs {
			glyph.Color = t.text.Default.Color
			t.glyphs = append(t.glyphs, glyph)
		}
	}
}

// positionLines moves all lines to their aligned position.
func (t *TextLayout) positionLines() {
	height := t.Height()
	var y float32
	switch t.settings.VerticalAlign {
	case AlignCenter:
		y = -height / 2.0
	case AlignEnd:
		y = -height
	}
	for i := range t.lines {
		line := &t.lines[i]
		y += line.Ascent
		var x float32
		switch t.settings.HorizontalAlign {
		case AlignCenter:
			x = -line.VisibleWidth(t.glyphs) / 2.0
		case AlignEnd:
			x = -line.VisibleWidth(t.glyphs)
		}
		line.moveTo(x, y, t.glyphs)
		y += -line.Descent + line.LineGap
	}
}

// applyStyles applies the span colors and the selection highlights to the
// laid out glyphs.
func (t *TextLayout) applyStyles() {
	search := func(byteIndex int) (int, bool) {
		return searchRange(len(t.glyphs), byteIndex, func(j int) Range {
			return t.glyphs[j].ByteRange
		})
	}

	defaultColor := t.text.Default.Color
	for _, span := range t.text.Spans() {
		if span.Style.Color == defaultColor && span.Style.Background == nil {
			continue
		}
		start, ok1 := search(span.ByteRange.Start)
		end, ok2 := search(span.ByteRange.End)
		if !ok1 || !ok2 || start >= end {
			continue
		}
		for i := start; i < end; i++ {
			t.glyphs[i].Color = span.Style.Color
		}
		if span.Style.Background != nil {
			t.highlight(Range{start, end}, span.ByteRange, *span.Style.Background)
		}
	}

	for _, sel := range t.text.Selections() {
		start, ok1 := search(sel.ByteRange.Start)
		end, ok2 := search(sel.ByteRange.End)
		if !ok1 || !ok2 || start >= end {
			continue
		}
		if sel.Fg != nil {
			for i := start; i < end; i++ {
				t.glyphs[i].Color = *sel.Fg
			}
		}
		t.highlight(Range{start, end}, sel.ByteRange, sel.Bg)
	}
}

// highlight emits one rect per line covered by the given glyph range.
func (t *TextLayout) highlight(glyphRange Range, byteRange Range, color NRGBA) {
	firstLine, ok := searchRange(len(t.lines), byteRange.Start, func(j int) Range {
		return t.lines[j].ByteRange
	})
	if !ok {
		return
	}
	glyphPos := func(i int) [2]float32 {
		g := &t.glyphs[i]
		return [2]float32{g.X, g.Y}
	}
	glyphPosEnd := func(i int) [2]float32 {
		g := &t.glyphs[i]
		return [2]float32{g.Right(), g.Y}
	}

	startPos := glyphPos(glyphRange.Start)
	endPos := glyphPosEnd(glyphRange.End - 1)
	line := &t.lines[firstLine]
	if line.GlyphRange.End > glyphRange.End {
		// the highlight is in a single line
		t.rects = append(t.rects, ColorRect{
			Rect:  [4]float32{startPos[0], startPos[1] - line.Ascent, endPos[0], endPos[1] - line.Descent},
			Color: color,
		})
		return
	}
	lineEnd := glyphPosEnd(line.GlyphRange.End - 1)
	t.rects = append(t.rects, ColorRect{
		Rect:  [4]float32{startPos[0], startPos[1] - line.Ascent, lineEnd[0], lineEnd[1] - line.Descent},
		Color: color,
	})
	for l := firstLine + 1; l < len(t.lines); l++ {
		line := &t.lines[l]
		startPos := glyphPos(line.GlyphRange.Start)
		if line.GlyphRange.End > glyphRange.End {
			t.rects = append(t.rects, ColorRect{
				Rect:  [4]float32{startPos[0], startPos[1] - line.Ascent, endPos[0], endPos[1] - line.Descent},
				Color: color,
			})
			break
		}
		lineEnd := glyphPosEnd(line.GlyphRange.End - 1)
		t.rects = append(t.rects, ColorRect{
			Rect:  [4]float32{startPos[0], startPos[1] - line.Ascent, lineEnd[0], lineEnd[1] - line.Descent},
			Color: color,
		})
	}
}

// lineLayout is the layout of a single paragraph of text, which can be
// broken in multiple lines later.
type lineLayout struct {
	glyphs []GlyphPosition
	// The byte range of the text this paragraph represents.
	byteRange Range
	// Each section of the paragraph can have a different line measure.
	// This is preserved here, for when the paragraph is broken in lines.
	lines   []Line
	width   float32
	height  float32
	lineGap float32
}

// newLineLayout shapes the given runs of the text in a single long line.
func newLineLayout(working string, runs []ShapeSpan, fonts *Fonts) *lineLayout {
	l := &lineLayout{}
	if len(runs) > 0 {
		l.byteRange = Range{
			runs[0].ByteRange.Start,
			runs[len(runs)-1].ByteRange.End,
		}
	}
	for _, run := range runs {
		l.appendRun(fonts, run, working[run.ByteRange.Start:run.ByteRange.End])
	}
	if len(l.glyphs) > 0 {
		l.width = l.glyphs[len(l.glyphs)-1].Right()
	}
	return l
}

func (l *lineLayout) appendRun(fonts *Fonts, run ShapeSpan, runText string) {
	if run.ByteRange.IsEmpty() {
		return
	}

	metrics := fonts.Get(run.FontID).Metrics(run.FontSize)
	l.height = max32(l.height, metrics.Height())
	l.lineGap = max32(l.lineGap, metrics.LineGap)

	var current *Line
	if len(l.lines) > 0 {
		last := &l.lines[len(l.lines)-1]
		if last.Ascent == metrics.Ascent &&
			last.Descent == metrics.Descent &&
			last.LineGap == metrics.LineGap {
			last.ByteRange.End = run.ByteRange.End
			current = last
		} else {
			l.lines = append(l.lines, Line{
				Ascent:     metrics.Ascent,
				Descent:    metrics.Descent,
				LineGap:    metrics.LineGap,
				Y:          last.Y,
				X:          last.X + last.Width,
				ByteRange:  run.ByteRange,
				GlyphRange: Range{len(l.glyphs), len(l.glyphs)},
			})
			current = &l.lines[len(l.lines)-1]
		}
	} else {
		l.lines = append(l.lines, Line{
			Ascent:     metrics.Ascent,
			Descent:    metrics.Descent,
			LineGap:    metrics.LineGap,
			ByteRange:  run.ByteRange,
			GlyphRange: Range{len(l.glyphs), len(l.glyphs)},
		})
		current = &l.lines[len(l.lines)-1]
	}

	startX := current.X + current.Width
	startY := current.Y

	glyphs := currentShaper().Shape(fonts, runText, run)
	for _, glyph := range glyphs {
		glyph.X += startX
		glyph.Y += startY
		glyph.ByteRange.Start += run.ByteRange.Start
		glyph.ByteRange.End += run.ByteRange.Start
		l.glyphs = append(l.glyphs, glyph)
	}

	if len(l.glyphs) > 0 {
		current.Width = l.glyphs[len(l.glyphs)-1].Right() - current.X
	}
	current.GlyphRange.End = len(l.glyphs)
}

// formLine merges all measure runs in a single line and returns it, clearing
// the runs.
func (l *lineLayout) formLine() Line {
	line := l.lines[0]
	line.ByteRange.End = l.lines[len(l.lines)-1].ByteRange.End
	line.Width = l.glyphs[len(l.glyphs)-1].Right() - line.X
	line.GlyphRange.End = len(l.glyphs)
	for i := 1; i < len(l.lines); i++ {
		line.Ascent = max32(line.Ascent, l.lines[i].Ascent)
		line.Descent = max32(line.Descent, l.lines[i].Descent)
		line.LineGap = max32(line.LineGap, l.lines[i].LineGap)
	}
	l.lines = l.lines[:0]
	return line
}

// formLineUntil merges all measure runs before byteIndex in a single line
// and returns it. glyphIndex is the first glyph of the next line. The run
// containing byteIndex is split, and the runs before the split are removed.
func (l *lineLayout) formLineUntil(byteIndex, glyphIndex int) Line {
	splitPos := l.glyphs[glyphIndex].X
	rightPos := l.glyphs[glyphIndex-1].Right()

	line := l.lines[0]
	line.ByteRange.End = byteIndex
	line.GlyphRange.End = glyphIndex
	line.Width = rightPos - line.X

	split := -1
	for i := range l.lines {
		run := &l.lines[i]
		if i > 0 {
			// part of this run stays on the formed line
			line.Ascent = max32(line.Ascent, run.Ascent)
			line.Descent = max32(line.Descent, run.Descent)
			line.LineGap = max32(line.LineGap, run.LineGap)
		}
		if run.ByteRange.Contains(byteIndex) {
			run.Width = run.X + run.Width - splitPos
			run.X = splitPos
			run.GlyphRange.Start = glyphIndex
			run.ByteRange.Start = byteIndex
			split = i
			break
		}
	}
	if split > 0 {
		l.lines = l.lines[split:]
	} else if split < 0 {
		l.lines = l.lines[:0]
	}

	return line
}

// breakLines greedily breaks the paragraph in lines no wider than maxWidth.
// breaks is the shared queue of allowed break positions, consumed in order.
func (l *lineLayout) breakLines(maxWidth float32, breaks *[]int) {
	if l.width < maxWidth {
		l.lines = []Line{l.formLine()}
		return
	}
	var lines []Line
	// skip the first glyph, there is no way to break the line there
	for g := 1; g < len(l.glyphs); g++ {
		if len(l.lines) == 0 {
			break
		}
		glyph := &l.glyphs[g]
		// a partial overflow of a whitespace glyph is ignored
		right := glyph.Right()
		if glyph.IsWhitespace {
			right = glyph.X
		}
		if right-l.lines[0].X <= maxWidth {
			continue
		}

		// find the last allowed break position at or before this glyph
		byteIndex := glyph.ByteRange.Start
		prevBreak := -1
		for len(*breaks) > 0 && (*breaks)[0] <= byteIndex {
			prevBreak = (*breaks)[0]
			*breaks = (*breaks)[1:]
		}
		// a break found in a previous paragraph does not count
		if prevBreak >= 0 && prevBreak < l.lines[0].ByteRange.Start {
			prevBreak = -1
		}

		breakByte, breakGlyph := byteIndex, g
		if prevBreak >= 0 {
			for i := g; i >= 0; i-- {
				if l.glyphs[i].ByteRange.Contains(prevBreak) {
					breakByte, breakGlyph = prevBreak, i
					break
				}
			}
		}
		if breakGlyph == 0 {
			// a single glyph line is allowed to overflow
			continue
		}

		lines = append(lines, l.formLineUntil(breakByte, breakGlyph))
	}
	if len(l.lines) > 0 {
		lines = append(lines, l.formLine())
	}
	l.lines = lines
}

// searchRange binary searches n sorted non-overlapping ranges for the one
// containing the given byte index.
func searchRange(n, byteIndex int, rangeAt func(i int) Range) (int, bool) {
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		switch cmpRange(byteIndex, rangeAt(mid)) {
		case -1:
			lo = mid + 1
		case 0:
			return mid, true
		default:
			hi = mid
		}
	}
	return 0, false
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
