package gui

import (
	"github.com/gogpu/gui/text"
)

// TextGraphic renders a spanned string inside the control rect. Lines wrap
// at the rect width and the block is anchored by the alignment of its
// layout settings.
type TextGraphic struct {
	// spanned holds the string until the first layout, which takes
	// ownership of it.
	spanned  *text.SpannedString
	settings text.LayoutSettings
	layout   *text.TextLayout

	color      Color
	colorDirty bool
	// dirty means the string or the settings changed and the cached layout
	// and min size are stale.
	dirty bool

	// layoutWidth is the wrap width of the cached layout.
	layoutWidth float32
	hasLayout   bool

	minSize    [2]float32
	hasMinSize bool
}

// NewTextGraphic creates a TextGraphic for a plain string.
func NewTextGraphic(s string, style text.TextStyle, settings text.LayoutSettings) *TextGraphic {
	return NewSpannedTextGraphic(text.NewSpannedString(s, style), settings)
}

// NewSpannedTextGraphic creates a TextGraphic that takes ownership of an
// already spanned string.
func NewSpannedTextGraphic(spanned *text.SpannedString, settings text.LayoutSettings) *TextGraphic {
	return &TextGraphic{
		spanned:    spanned,
		settings:   settings,
		color:      ColorWhite,
		colorDirty: true,
		dirty:      true,
	}
}

// SetText replaces the whole string, keeping the style of its start.
func (t *TextGraphic) SetText(s string) {
	spanned := t.Spanned()
	spanned.ReplaceRange(text.Range{Start: 0, End: spanned.Len()}, s)
	t.Dirty()
}

// Text returns the current string.
func (t *TextGraphic) Text() string { return t.Spanned().String() }

// Spanned returns the underlying spanned string for editing. Call Dirty
// after changing it.
func (t *TextGraphic) Spanned() *text.SpannedString {
	if t.layout != nil {
		return t.layout.Spanned()
	}
	return t.spanned
}

// Dirty marks the text as changed, forcing a relayout and a sprite
// rebuild on the next render.
func (t *TextGraphic) Dirty() {
	t.dirty = true
	t.hasLayout = false
	t.hasMinSize = false
}

// Settings returns the layout settings. The MaxWidth field is overridden
// by the control rect width on layout.
func (t *TextGraphic) Settings() text.LayoutSettings { return t.settings }

// SetSettings replaces the layout settings.
func (t *TextGraphic) SetSettings(settings text.LayoutSettings) {
	t.settings = settings
	t.Dirty()
}

// Layout returns the text laid out to wrap at the width of rect,
// relayouting only when the width or the text changed. Glyph positions
// are relative to Anchor(rect).
func (t *TextGraphic) Layout(rect [4]float32, fonts *text.Fonts) *text.TextLayout {
	width := rect[2] - rect[0]
	if t.layout == nil {
		settings := t.settings
		settings.MaxWidth = width
		t.layout = text.NewTextLayout(t.spanned, settings, fonts)
		t.spanned = nil
		t.layoutWidth = width
		t.hasLayout = true
	} else if !t.hasLayout || !cmpFloat(t.layoutWidth, width) {
		settings := t.settings
		settings.MaxWidth = width
		t.layout.Relayout(settings, fonts)
		t.layoutWidth = width
		t.hasLayout = true
	}
	return t.layout
}

// Anchor returns the point of rect the glyph positions are relative to,
// as given by the alignment of the layout settings.
func (t *TextGraphic) Anchor(rect [4]float32) [2]float32 {
	var anchor [2]float32
	switch t.settings.HorizontalAlign {
	case text.AlignStart:
		anchor[0] = rect[0]
	case text.AlignCenter:
		anchor[0] = (rect[0] + rect[2]) / 2.0
	case text.AlignEnd:
		anchor[0] = rect[2]
	}
	switch t.settings.VerticalAlign {
	case text.AlignStart:
		anchor[1] = rect[1]
	case text.AlignCenter:
		anchor[1] = (rect[1] + rect[3]) / 2.0
	case text.AlignEnd:
		anchor[1] = rect[3]
	}
	// Fractional anchors blur every glyph in the run.
	anchor[0] = round32(anchor[0])
	anchor[1] = round32(anchor[1])
	return anchor
}

func (t *TextGraphic) Color() Color { return t.color }

func (t *TextGraphic) SetColor(color Color) {
	t.color = color
	t.colorDirty = true
}

func (t *TextGraphic) SetAlpha(alpha uint8) {
	t.color.A = alpha
	t.colorDirty = true
}

// FlipX is a no-op, text does not mirror.
func (t *TextGraphic) FlipX() {}

// FlipY is a no-op, text does not mirror.
func (t *TextGraphic) FlipY() {}

func (t *TextGraphic) IsColorDirty() bool { return t.colorDirty }
func (t *TextGraphic) NeedRebuild() bool  { return t.dirty }

func (t *TextGraphic) ClearDirty() {
	t.colorDirty = false
	t.dirty = false
}

// ComputeMinSize reports the size of the text laid out without wrapping.
func (t *TextGraphic) ComputeMinSize(fonts *text.Fonts) ([2]float32, bool) {
	if !t.hasMinSize {
		settings := t.settings
		settings.MaxWidth = 0
		if t.layout == nil {
			t.layout = text.NewTextLayout(t.spanned, settings, fonts)
			t.spanned = nil
		} else {
			t.layout.Relayout(settings, fonts)
		}
		t.minSize = t.layout.MinSize()
		t.hasMinSize = true
		// The cached layout is now the unwrapped one.
		t.hasLayout = false
	}
	return t.minSize, true
}
