package text

import (
	"image/color"
)

// NRGBA is the color type of the text engine, a non-premultiplied RGBA.
type NRGBA = color.NRGBA

// Range is a half open byte range [Start, End) of a string.
type Range struct {
	Start int
	End   int
}

// Len returns the length of the range.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether the range has no bytes.
func (r Range) IsEmpty() bool { return r.Start >= r.End }

// Contains reports whether the byte index lies inside the range.
func (r Range) Contains(i int) bool { return r.Start <= i && i < r.End }

// cmpRange compares a byte index against a range, for binary searches over
// sorted non-overlapping ranges. It returns a negative value if the range is
// entirely before the index, zero if the range contains it, and a positive
// value otherwise.
func cmpRange(i int, r Range) int {
	if r.End <= i {
		return -1
	}
	if r.Contains(i) {
		return 0
	}
	return 1
}

// TextStyle is the style of a section of text.
type TextStyle struct {
	Color    color.NRGBA
	FontSize float32
	FontID   FontId
	// Background is an optional background color behind the glyphs.
	Background *color.NRGBA
}

// Span is a byte range of a string with a single uniform style.
type Span struct {
	ByteRange Range
	Style     TextStyle
}

// StyleOverlay is a partial style. Only non-nil fields are applied.
type StyleOverlay struct {
	Color      *color.NRGBA
	FontSize   *float32
	FontID     *FontId
	Background *color.NRGBA
}

// ColorOverlay returns an overlay that only changes the text color.
func ColorOverlay(c color.NRGBA) StyleOverlay {
	return StyleOverlay{Color: &c}
}

func (o StyleOverlay) apply(style TextStyle) TextStyle {
	if o.Color != nil {
		style.Color = *o.Color
	}
	if o.FontSize != nil {
		style.FontSize = *o.FontSize
	}
	if o.FontID != nil {
		style.FontID = *o.FontID
	}
	if o.Background != nil {
		style.Background = o.Background
	}
	return style
}

// SelectionSpan highlights a byte range with a background color, and
// optionally overrides the glyph color. Selections live outside the span
// partition, so adding and clearing them never disturbs the text styles.
type SelectionSpan struct {
	ByteRange Range
	Bg        color.NRGBA
	// Fg overrides the color of the selected glyphs when non-nil.
	Fg *color.NRGBA
}

// ShapeSpan is a byte range uniform in font and size, the unit of work sent
// to the shaper.
type ShapeSpan struct {
	ByteRange Range
	FontSize  float32
	FontID    FontId
}

// SpannedString is a UTF-8 string plus an ordered, non-overlapping partition
// of its byte ranges into styles. The partition always covers the whole
// string contiguously.
type SpannedString struct {
	str string
	// The style of text not covered by any added span, and the fallback
	// for an empty string.
	Default TextStyle

	spans      []Span
	selections []SelectionSpan
}

// NewSpannedString creates a SpannedString where the whole string has the
// given style.
func NewSpannedString(s string, style TextStyle) *SpannedString {
	t := &SpannedString{str: s, Default: style}
	if len(s) > 0 {
		t.spans = []Span{{ByteRange: Range{0, len(s)}, Style: style}}
	}
	return t
}

// String returns the text content.
func (t *SpannedString) String() string { return t.str }

// Len returns the length of the text, in bytes.
func (t *SpannedString) Len() int { return len(t.str) }

// Spans returns the style partition. The returned slice is owned by the
// SpannedString and must not be modified.
func (t *SpannedString) Spans() []Span { return t.spans }

// Selections returns the selection spans.
func (t *SpannedString) Selections() []SelectionSpan { return t.selections }

// AddSelection adds a selection highlight over the given byte range.
func (t *SpannedString) AddSelection(sel SelectionSpan) {
	t.selections = append(t.selections, sel)
}

// ClearSelections removes all selection highlights.
func (t *SpannedString) ClearSelections() {
	t.selections = t.selections[:0]
}

// AddSpan applies a style overlay over the given byte range. Existing spans
// are split at the range boundaries and the overlay fields are merged over
// the covered pieces, preserving the partition invariant.
func (t *SpannedString) AddSpan(r Range, overlay StyleOverlay) {
	r = t.clampRange(r)
	if r.IsEmpty() {
		return
	}
	spans := make([]Span, 0, len(t.spans)+2)
	for _, span := range t.spans {
		s := span.ByteRange
		if s.End <= r.Start || s.Start >= r.End {
			spans = append(spans, span)
			continue
		}
		if s.Start < r.Start {
			spans = append(spans, Span{
				ByteRange: Range{s.Start, r.Start},
				Style:     span.Style,
			})
		}
		covered := Range{max(s.Start, r.Start), min(s.End, r.End)}
		spans = append(spans, Span{
			ByteRange: covered,
			Style:     overlay.apply(span.Style),
		})
		if s.End > r.End {
			spans = append(spans, Span{
				ByteRange: Range{r.End, s.End},
				Style:     span.Style,
			})
		}
	}
	t.spans = spans
}

// ReplaceRange removes the given byte range from the string and inserts the
// given text in its place. Span endpoints after the range are shifted by the
// length delta, spans wholly contained in the removed range are dropped, and
// the inserted text takes the style of the span at the boundary.
func (t *SpannedString) ReplaceRange(r Range, s string) {
	r = t.clampRange(r)
	t.str = t.str[:r.Start] + s + t.str[r.End:]

	delta := len(s) - r.Len()
	remap := func(p int) int {
		switch {
		case p <= r.Start:
			return p
		case p >= r.End:
			return p + delta
		default:
			return r.Start
		}
	}

	spans := t.spans[:0]
	for _, span := range t.spans {
		span.ByteRange.Start = remap(span.ByteRange.Start)
		span.ByteRange.End = remap(span.ByteRange.End)
		if span.ByteRange.IsEmpty() {
			continue
		}
		spans = append(spans, span)
	}
	t.spans = spans
	t.normalize()

	selections := t.selections[:0]
	for _, sel := range t.selections {
		sel.ByteRange.Start = remap(sel.ByteRange.Start)
		sel.ByteRange.End = remap(sel.ByteRange.End)
		if sel.ByteRange.IsEmpty() {
			continue
		}
		selections = append(selections, sel)
	}
	t.selections = selections
}

// StyleAt returns the style at the given byte index.
func (t *SpannedString) StyleAt(i int) TextStyle {
	for _, span := range t.spans {
		if span.ByteRange.Contains(i) {
			return span.Style
		}
	}
	return t.Default
}

// ShapeSpans returns the string partitioned in runs uniform in font and
// size, merging adjacent spans that only differ in color.
func (t *SpannedString) ShapeSpans() []ShapeSpan {
	if len(t.str) == 0 {
		return nil
	}
	if len(t.spans) == 0 {
		return []ShapeSpan{{
			ByteRange: Range{0, len(t.str)},
			FontSize:  t.Default.FontSize,
			FontID:    t.Default.FontID,
		}}
	}
	var shapes []ShapeSpan
	for _, span := range t.spans {
		if len(shapes) > 0 {
			last := &shapes[len(shapes)-1]
			if last.FontSize == span.Style.FontSize && last.FontID == span.Style.FontID {
				last.ByteRange.End = span.ByteRange.End
				continue
			}
		}
		shapes = append(shapes, ShapeSpan{
			ByteRange: span.ByteRange,
			FontSize:  span.Style.FontSize,
			FontID:    span.Style.FontID,
		})
	}
	return shapes
}

// normalize restores the partition invariant after a mutation: the spans
// cover [0, len) contiguously. Gaps are absorbed by the preceding span, or
// by the following one at the start of the string.
func (t *SpannedString) normalize() {
	if len(t.str) == 0 {
		t.spans = t.spans[:0]
		return
	}
	if len(t.spans) == 0 {
		t.spans = append(t.spans, Span{
			ByteRange: Range{0, len(t.str)},
			Style:     t.Default,
		})
		return
	}
	t.spans[0].ByteRange.Start = 0
	for i := 1; i < len(t.spans); i++ {
		t.spans[i-1].ByteRange.End = t.spans[i].ByteRange.Start
	}
	t.spans[len(t.spans)-1].ByteRange.End = len(t.str)
}

func (t *SpannedString) clampRange(r Range) Range {
	if r.Start < 0 {
		r.Start = 0
	}
	if r.End > len(t.str) {
		r.End = len(t.str)
	}
	return r
}
