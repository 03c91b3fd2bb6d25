package text

// MotionKind is the unit of a horizontal cursor motion.
type MotionKind uint8

const (
	// MotionClusters moves over grapheme clusters.
	MotionClusters MotionKind = iota
	// MotionWords moves over word boundaries.
	MotionWords
)

// Motion is a horizontal cursor motion. Positive N moves right, negative
// moves left.
type Motion struct {
	Kind MotionKind
	N    int
}

// Clusters returns a motion of n grapheme clusters.
func Clusters(n int) Motion {
	return Motion{Kind: MotionClusters, N: n}
}

// Words returns a motion of n words.
func Words(n int) Motion {
	return Motion{Kind: MotionWords, N: n}
}

// Selection is a selected range of text. When cursor == anchor it is a bare
// caret.
type Selection struct {
	// Cursor is the moving end of the selection, in bytes. It can be
	// before or after the anchor.
	Cursor int
	// Anchor is the position where the selection started.
	Anchor int
	// CursorX is the pixel x position of the cursor. It is only updated
	// on horizontal motion, to keep the cursor aligned when moving
	// vertically across multiple lines.
	CursorX float32
}

// IsEmpty reports whether cursor and anchor coincide.
func (s *Selection) IsEmpty() bool { return s.Cursor == s.Anchor }

// Start returns min(cursor, anchor).
func (s *Selection) Start() int { return min(s.Cursor, s.Anchor) }

// End returns max(cursor, anchor).
func (s *Selection) End() int { return max(s.Cursor, s.Anchor) }

// TextEditor drives a caret and selection over a TextLayout. It holds byte
// indices into the layout's text, and keeps them valid across mutations made
// through it.
type TextEditor struct {
	selection Selection
}

// NewTextEditor creates a TextEditor with the caret at byte 0.
func NewTextEditor() *TextEditor {
	return &TextEditor{}
}

// Selection returns the current selection.
func (e *TextEditor) Selection() Selection { return e.selection }

// SelectionRange returns the byte range of the selected text.
func (e *TextEditor) SelectionRange() Range {
	return Range{e.selection.Start(), e.selection.End()}
}

// SetPosition collapses the selection to the given byte index, clamped to
// the text and snapped to a grapheme boundary.
func (e *TextEditor) SetPosition(byteIndex int, layout *TextLayout) {
	byteIndex = e.snap(byteIndex, layout)
	e.selection.Cursor = byteIndex
	e.selection.Anchor = byteIndex
	e.selection.CursorX = e.pixelX(byteIndex, layout)
}

// SelectRange sets the selection to the given byte range, with the cursor at
// the end.
func (e *TextEditor) SelectRange(r Range, layout *TextLayout) {
	e.selection.Anchor = e.snap(r.Start, layout)
	e.selection.Cursor = e.snap(r.End, layout)
	e.selection.CursorX = e.pixelX(e.selection.Cursor, layout)
}

// SelectAll selects the whole text.
func (e *TextEditor) SelectAll(layout *TextLayout) {
	e.selection.Anchor = 0
	e.selection.Cursor = len(layout.Text())
	e.selection.CursorX = e.pixelX(e.selection.Cursor, layout)
}

// SelectWordsAtByteRange expands the given byte range to word boundaries and
// selects it. This implements double click selection.
func (e *TextEditor) SelectWordsAtByteRange(r Range, layout *TextLayout) {
	text := layout.Text()
	boundaries := wordBoundaries(text)
	start, end := 0, len(text)
	for _, b := range boundaries {
		if b <= r.Start {
			start = b
		}
		if b >= r.End {
			end = b
			break
		}
	}
	e.selection.Anchor = start
	e.selection.Cursor = end
	e.selection.CursorX = e.pixelX(end, layout)
}

// MoveCursorHor moves the cursor horizontally by the given motion. If
// expandSelection is true the anchor is preserved, otherwise the selection
// collapses: an existing selection collapses to its edge in the direction of
// the motion.
func (e *TextEditor) MoveCursorHor(motion Motion, expandSelection bool, layout *TextLayout) {
	cursor := e.offset(e.selection.Cursor, motion, layout)
	e.selection.CursorX = e.pixelX(cursor, layout)
	if expandSelection {
		e.selection.Cursor = cursor
		return
	}
	if !e.selection.IsEmpty() {
		if motion.N > 0 {
			cursor = e.selection.End()
		} else {
			cursor = e.selection.Start()
		}
		e.selection.CursorX = e.pixelX(cursor, layout)
	}
	e.selection.Cursor = cursor
	e.selection.Anchor = cursor
}

// MoveCursorLineStart moves the cursor to the start of its line.
func (e *TextEditor) MoveCursorLineStart(expandSelection bool, layout *TextLayout) {
	line := e.lineOf(e.selection.Cursor, layout)
	cursor := e.lineByteRange(line, layout).Start
	e.selection.CursorX = e.pixelX(cursor, layout)
	e.selection.Cursor = cursor
	if !expandSelection {
		e.selection.Anchor = cursor
	}
}

// MoveCursorLineEnd moves the cursor to the end of its line.
func (e *TextEditor) MoveCursorLineEnd(expandSelection bool, layout *TextLayout) {
	line := e.lineOf(e.selection.Cursor, layout)
	cursor := e.lineByteRange(line, layout).End
	e.selection.CursorX = e.pixelX(cursor, layout)
	e.selection.Cursor = cursor
	if !expandSelection {
		e.selection.Anchor = cursor
	}
}

// MoveCursorVert moves the cursor vertically by the given number of lines,
// up if negative and down if positive. The cached cursor x picks the byte
// index on the target line, so repeated vertical motion stays aligned.
func (e *TextEditor) MoveCursorVert(lines int, expandSelection bool, layout *TextLayout) {
	if len(layout.Lines()) == 0 {
		return
	}
	line := e.lineOf(e.selection.Cursor, layout) + lines
	if line < 0 {
		line = 0
	}
	if line >= len(layout.Lines()) {
		line = len(layout.Lines()) - 1
	}
	cursor := layout.ByteIndexFromXPosition(line, e.selection.CursorX)
	cursor = e.snap(cursor, layout)
	e.selection.Cursor = cursor
	if !expandSelection {
		e.selection.Anchor = cursor
	}
}

// CursorPositionAndHeight returns the x and y position of the top of the
// caret, and its height, in pixels.
func (e *TextEditor) CursorPositionAndHeight(layout *TextLayout) [3]float32 {
	var descent, height float32
	line := e.lineOf(e.selection.Cursor, layout)
	if line < len(layout.Lines()) {
		l := &layout.Lines()[line]
		descent = l.Descent
		height = l.Height()
	}
	pos, _ := layout.PixelPositionFromByteIndex(e.selection.Cursor)
	return [3]float32{pos[0], pos[1] - descent, height}
}

// InsertText replaces the selected text with the given one, or inserts it at
// the caret when the selection is empty. The cursor moves to the end of the
// inserted text. An empty string acts as a selection deletion.
func (e *TextEditor) InsertText(s string, fonts *Fonts, layout *TextLayout) {
	r := e.SelectionRange()
	layout.ReplaceRange(r, s, fonts)
	target := r.Start + len(s)
	e.selection.Cursor = target
	e.selection.Anchor = target
	e.selection.CursorX = e.pixelX(target, layout)
}

// DeleteHor deletes the selected text. When the selection is empty it
// deletes by the given motion instead, right if positive and left if
// negative.
func (e *TextEditor) DeleteHor(motion Motion, fonts *Fonts, layout *TextLayout) {
	if e.selection.IsEmpty() {
		e.selection.Anchor = e.offset(e.selection.Anchor, motion, layout)
	}
	e.InsertText("", fonts, layout)
}

// offset moves a byte index by the given motion, staying within the text.
func (e *TextEditor) offset(byteIndex int, motion Motion, layout *TextLayout) int {
	text := layout.Text()
	switch motion.Kind {
	case MotionWords:
		boundaries := wordBoundaries(text)
		if motion.N > 0 {
			for n := motion.N; n > 0; n-- {
				byteIndex = nextBoundary(boundaries, byteIndex)
			}
		} else {
			for n := -motion.N; n > 0; n-- {
				byteIndex = prevBoundary(boundaries, byteIndex)
			}
		}
	default:
		if motion.N > 0 {
			for n := motion.N; n > 0; n-- {
				byteIndex = nextGraphemeBoundary(text, byteIndex)
			}
		} else {
			for n := -motion.N; n > 0; n-- {
				byteIndex = prevGraphemeBoundary(text, byteIndex)
			}
		}
	}
	return byteIndex
}

// snap clamps a byte index to the text and snaps it back to the nearest
// grapheme boundary at or before it.
func (e *TextEditor) snap(byteIndex int, layout *TextLayout) int {
	text := layout.Text()
	if byteIndex <= 0 {
		return 0
	}
	if byteIndex >= len(text) {
		return len(text)
	}
	return nextGraphemeBoundary(text, prevGraphemeBoundary(text, byteIndex))
}

func (e *TextEditor) pixelX(byteIndex int, layout *TextLayout) float32 {
	pos, ok := layout.PixelPositionFromByteIndex(byteIndex)
	if !ok {
		return 0.0
	}
	return pos[0]
}

// lineOf returns the index of the line containing the byte index.
func (e *TextEditor) lineOf(byteIndex int, layout *TextLayout) int {
	lines := layout.Lines()
	i, ok := searchRange(len(lines), byteIndex, func(j int) Range {
		return lines[j].ByteRange
	})
	if !ok {
		if len(lines) > 0 {
			return len(lines) - 1
		}
		return 0
	}
	return i
}

// lineByteRange returns the byte range of the given line, excluding the
// break glyph at its end.
func (e *TextEditor) lineByteRange(line int, layout *TextLayout) Range {
	lines := layout.Lines()
	if len(lines) == 0 {
		return Range{}
	}
	if line >= len(lines) {
		line = len(lines) - 1
	}
	l := &lines[line]
	glyphs := layout.Glyphs()
	if l.GlyphRange.IsEmpty() || len(glyphs) == 0 {
		return Range{}
	}
	start := glyphs[l.GlyphRange.Start].ByteRange.Start
	end := glyphs[l.GlyphRange.End-1].ByteRange.Start
	return Range{start, end}
}

func nextBoundary(boundaries []int, i int) int {
	for _, b := range boundaries {
		if b > i {
			return b
		}
	}
	if len(boundaries) == 0 {
		return i
	}
	return boundaries[len(boundaries)-1]
}

func prevBoundary(boundaries []int, i int) int {
	prev := 0
	for _, b := range boundaries {
		if b >= i {
			break
		}
		prev = b
	}
	return prev
}
