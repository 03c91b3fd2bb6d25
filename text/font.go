// Package text implements the text engine of the gui: spanned strings,
// shaping, line breaking, layout and a caret editor.
//
// A SpannedString holds a UTF-8 string plus a contiguous partition of styled
// spans. A TextLayout shapes and positions the string into glyphs, relative
// to an alignment anchor. A TextEditor drives a caret and selection over a
// TextLayout.
package text

import (
	"bytes"
	"fmt"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// FontId is the index of a font in a Fonts set. The zero value refers to the
// first font added.
type FontId uint32

// Metrics holds font wide metrics scaled to a font size, in pixels.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font. It
	// is positive and grows up.
	Ascent float32
	// Descent is the distance from the baseline to the bottom of the font.
	// It grows up, so it is usually negative.
	Descent float32
	// LineGap is the gap between the bottom of a line and the top of the
	// next.
	LineGap float32
}

// Height returns ascent - descent.
func (m Metrics) Height() float32 {
	return m.Ascent - m.Descent
}

// Font is a single parsed font file. The raw data is kept for backends that
// do their own parsing.
type Font struct {
	// Data is the raw content of the font file.
	Data []byte

	// Parsed form used by the shaper. gtfont.Font is read-only and safe
	// for concurrent use.
	shaping *gtfont.Font
	// Parsed form used for metrics and glyph outlines.
	sfnt *sfnt.Font
	buf  sfnt.Buffer
}

// NewFont parses the given TTF or OTF data.
func NewFont(data []byte) (*Font, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	return &Font{
		Data:    data,
		shaping: face.Font,
		sfnt:    sf,
	}, nil
}

// Metrics returns the font metrics scaled to the given font size.
func (f *Font) Metrics(fontSize float32) Metrics {
	m, err := f.sfnt.Metrics(&f.buf, fixed.Int26_6(fontSize*64), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	height := fixedToFloat(m.Height)
	return Metrics{
		Ascent:  ascent,
		Descent: -descent,
		LineGap: height - ascent - descent,
	}
}

// GlyphOutline returns the outline segments of the given glyph, scaled to
// the given font size, or nil if the glyph cannot be loaded.
func (f *Font) GlyphOutline(gid uint16, fontSize float32) sfnt.Segments {
	segments, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(gid), fixed.Int26_6(fontSize*64), nil)
	if err != nil {
		return nil
	}
	return segments
}

// Fonts is an indexed set of fonts. A FontId is stable for the lifetime of
// the set, fonts are never removed.
type Fonts struct {
	fonts []*Font
}

// NewFonts creates an empty font set.
func NewFonts() *Fonts {
	return &Fonts{}
}

// Add adds a font to the set and returns its id.
func (f *Fonts) Add(font *Font) FontId {
	f.fonts = append(f.fonts, font)
	return FontId(len(f.fonts) - 1)
}

// Get returns the font with the given id. A FontId always comes from Add,
// so an out of range id is a programmer error and panics.
func (f *Fonts) Get(id FontId) *Font {
	return f.fonts[id]
}

// Len returns the number of fonts in the set.
func (f *Fonts) Len() int {
	return len(f.fonts)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
