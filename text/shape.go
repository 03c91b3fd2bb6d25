package text

import (
	"image/color"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// GlyphPosition is a positioned scaled glyph, the output of shaping.
type GlyphPosition struct {
	// GID is the glyph index in the font. It is not a character.
	GID uint16
	// FontID is the font of this glyph.
	FontID FontId
	// FontSize is the size the glyph is scaled to, in pixels.
	FontSize float32
	// X and Y are the position of the glyph origin, on the baseline.
	X float32
	Y float32
	// Width is the horizontal advance of this glyph.
	Width float32
	// ByteRange is the section of the text represented by this glyph.
	ByteRange Range
	// Color of the glyph, filled in during layout.
	Color color.NRGBA
	// IsWhitespace reports if the glyph represents a whitespace char.
	IsWhitespace bool
}

// Right returns the position of the right edge of the glyph.
func (g *GlyphPosition) Right() float32 {
	return g.X + g.Width
}

// Shaper converts a run of text uniform in font and size into positioned
// glyphs. The returned positions start at x = 0 with baseline y = 0, and the
// byte ranges are relative to the given text slice.
type Shaper interface {
	Shape(fonts *Fonts, text string, span ShapeSpan) []GlyphPosition
}

var (
	shaperMu     sync.RWMutex
	globalShaper Shaper = NewHarfbuzzShaper()
)

// SetShaper sets the shaper used by text layout. Pass nil to reset to the
// default HarfbuzzShaper.
func SetShaper(s Shaper) {
	shaperMu.Lock()
	defer shaperMu.Unlock()
	if s == nil {
		s = NewHarfbuzzShaper()
	}
	globalShaper = s
}

func currentShaper() Shaper {
	shaperMu.RLock()
	defer shaperMu.RUnlock()
	return globalShaper
}

// HarfbuzzShaper shapes text with go-text/typesetting's HarfBuzz port. It
// supports kerning, ligatures and complex scripts.
//
// HarfbuzzShaper is safe for concurrent use. The underlying shaping.
// HarfbuzzShaper has internal mutable state, so instances are pooled.
type HarfbuzzShaper struct {
	pool sync.Pool
}

// NewHarfbuzzShaper creates a HarfbuzzShaper.
func NewHarfbuzzShaper() *HarfbuzzShaper {
	return &HarfbuzzShaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape implements the Shaper interface.
func (s *HarfbuzzShaper) Shape(fonts *Fonts, text string, span ShapeSpan) []GlyphPosition {
	if text == "" {
		return nil
	}

	f := fonts.Get(span.FontID)

	runes := []rune(text)
	// go-text clusters are rune indices, the glyphs carry byte ranges.
	byteOffset := make([]int, len(runes)+1)
	{
		i := 0
		for j, r := range runes {
			byteOffset[j] = i
			i += len(string(r))
		}
		byteOffset[len(runes)] = len(text)
	}

	dir := baseDirection(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		// font.Face is not safe for concurrent use, so each call gets a
		// fresh one. It is a cheap wrapper over the shared *Font.
		Face:     gtfont.NewFace(f.shaping),
		Size:     fixed.Int26_6(span.FontSize * 64),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}

	shaper := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := shaper.Shape(input)
	s.pool.Put(shaper)

	glyphs := make([]GlyphPosition, 0, len(output.Glyphs))
	var x float32
	for _, g := range output.Glyphs {
		cluster := g.TextIndex()
		xOffset := fixedToFloat(g.XOffset)
		yOffset := fixedToFloat(g.YOffset)
		xAdvance := fixedToFloat(g.XAdvance)

		byteStart := byteOffset[cluster]
		if len(glyphs) > 0 {
			glyphs[len(glyphs)-1].ByteRange.End = byteStart
		}
		glyphs = append(glyphs, GlyphPosition{
			GID:          uint16(g.GlyphID),
			FontID:       span.FontID,
			FontSize:     span.FontSize,
			X:            x + xOffset,
			Y:            yOffset,
			Width:        xAdvance,
			ByteRange:    Range{byteStart, len(text)},
			Color:        color.NRGBA{255, 255, 255, 255},
			IsWhitespace: unicode.IsSpace(runes[cluster]),
		})
		x += xAdvance
	}

	return glyphs
}

// baseDirection resolves the base direction of the text with the Unicode
// bidi algorithm.
func baseDirection(text string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune. For mixed
// script text the shaper relies on HarfBuzz's per-cluster handling.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
