package gui

import (
	"image"
	"math"
	"time"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/gui/internal/atlas"
	"github.com/gogpu/gui/text"
)

// GuiRenderer is the backend interface the draw pass talks to. It only
// needs to maintain the font texture; sprite drawing is up to the host
// with the batch Render returns.
type GuiRenderer interface {
	// UpdateFontTexture writes 8-bit coverage data to a section of the
	// font texture. rect is in the form [x1, y1, x2, y2], in pixels, and
	// data holds (x2-x1)*(y2-y1) bytes in row-major order.
	UpdateFontTexture(fontTexture uint32, rect [4]uint32, data []byte)
	// ResizeFontTexture reallocates the font texture. The previous content
	// is discarded; the draw pass re-uploads every glyph it needs.
	ResizeFontTexture(fontTexture uint32, size [2]uint32)
}

// glyphKey identifies a rasterization in the glyph cache. Subpixel
// position and size quantize to eighths.
type glyphKey struct {
	font    text.FontId
	gid     uint16
	subpix  uint8
	size8th uint32
}

type glyphEntry struct {
	// bearing is the offset from the pixel-snapped pen position to the top
	// left of the coverage rect.
	bearing [2]float32
	// coverage buffered until the cache accepts the rect.
	width, height uint32
}

type maskEntry struct {
	depth   int
	rect    [4]float32
	changed bool
}

// GuiRender turns the control tree into a sprite batch. It owns the glyph
// draw cache and a per-control sprite cache, so an unchanged control
// costs a copy instead of a rebuild.
type GuiRender struct {
	fontTexture  uint32
	whiteTexture uint32

	glyphs   *atlas.Cache[glyphKey]
	metrics  map[glyphKey]glyphEntry
	raster   vector.Rasterizer
	fontsBuf []byte

	// fontTextureValid turns false when the glyph cache is rebuilt, which
	// invalidates every cached text sprite for one frame.
	fontTextureValid bool

	sprites     []Sprite
	lastSprites []Sprite
	spritesMap  map[ID][2]int
	lastMap     map[ID][2]int

	lastAnimDraw time.Time
}

// NewGuiRender creates a GuiRender drawing glyph coverage into the given
// font texture, initially fontTextureSize pixels, and using whiteTexture
// for solid rects. The font texture must be single-channel and zeroed.
func NewGuiRender(fontTexture uint32, fontTextureSize [2]uint32, whiteTexture uint32) *GuiRender {
	return &GuiRender{
		fontTexture:  fontTexture,
		whiteTexture: whiteTexture,
		glyphs:       atlas.NewCache[glyphKey](fontTextureSize[0], fontTextureSize[1]),
		metrics:      make(map[glyphKey]glyphEntry),
		spritesMap:   make(map[ID][2]int),
		lastMap:      make(map[ID][2]int),
	}
}

// Render walks the active tree front to back and returns the sprite
// batch for this frame plus whether an animation is still playing and
// another frame should be scheduled.
//
// The returned slice is owned by the GuiRender and valid until the next
// call.
func (r *GuiRender) Render(gui *Gui, renderer GuiRenderer) ([]Sprite, bool) {
	gui.lazyUpdate()
	gui.UpdateLayouts()
	gui.redraw = false

	now := gui.now()
	animCtx := newContext(gui)
	gui.animations.advance(now, animCtx)
	animCtx.Close()
	gui.UpdateLayouts()
	isAnimating := gui.animations.animating()

	var animDt float32
	if !r.lastAnimDraw.IsZero() {
		animDt = float32(now.Sub(r.lastAnimDraw).Seconds())
	}
	r.lastAnimDraw = now

	scale := float32(gui.ScaleFactor())
	r.sprites = r.sprites[:0]
	clear(r.spritesMap)
	r.ensureGlyphs(gui, renderer, scale)

	controls := gui.Controls()
	type node struct {
		id    ID
		depth int
	}
	stack := []node{{id: RootID, depth: 0}}
	var masks []maskEntry

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for len(masks) > 0 && masks[len(masks)-1].depth >= n.depth {
			masks = masks[:len(masks)-1]
		}

		control := controls.Get(n.id)
		rect := &control.rect
		screen := scaleRect(rect.Rect(), scale)

		mask := screen
		maskChanged := rect.RenderDirtyFlags() != 0
		if len(masks) > 0 {
			parent := masks[len(masks)-1]
			mask = intersect(mask, parent.rect)
			maskChanged = maskChanged || parent.changed
		}
		masks = append(masks, maskEntry{depth: n.depth, rect: mask, changed: maskChanged})

		// Everything below is clipped out; skip the whole subtree.
		if mask[2] <= mask[0] || mask[3] <= mask[1] {
			continue
		}

		if control.graphic != nil {
			isAnimating = r.drawControl(gui, n.id, control, screen, mask, maskChanged, animDt, scale, renderer) || isAnimating
		}
		rect.ClearRenderDirtyFlags()

		children := controls.ActiveChildren(n.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, node{id: children[i], depth: n.depth + 1})
		}
	}

	r.sprites, r.lastSprites = r.lastSprites, r.sprites
	r.spritesMap, r.lastMap = r.lastMap, r.spritesMap
	r.glyphs.NextFrame()
	r.fontTextureValid = true
	return r.lastSprites, isAnimating
}

// drawControl emits the sprites of one control, reusing last frame's when
// nothing that shapes them changed.
func (r *GuiRender) drawControl(gui *Gui, id ID, control *Control, screen, mask [4]float32, maskChanged bool, animDt float32, scale float32, renderer GuiRenderer) bool {
	graphic := control.graphic
	_, isText := graphic.(*TextGraphic)
	animating := false

	cached, hasCached := r.lastMap[id]
	reusable := hasCached &&
		control.rect.RenderDirtyFlags() == 0 &&
		!maskChanged &&
		!graphic.NeedRebuild() &&
		(!isText || r.fontTextureValid) &&
		(!graphic.IsColorDirty() || !isText)
	if reusable {
		start := len(r.sprites)
		r.sprites = append(r.sprites, r.lastSprites[cached[0]:cached[1]]...)
		if graphic.IsColorDirty() {
			color := graphic.Color()
			for i := start; i < len(r.sprites); i++ {
				r.sprites[i].Color = color
			}
		}
		graphic.ClearDirty()
		if len(r.sprites) > start {
			r.spritesMap[id] = [2]int{start, len(r.sprites)}
		}
		return false
	}

	start := len(r.sprites)
	switch g := graphic.(type) {
	case *Texture:
		r.push(g.Sprite(screen), mask)
	case *Icon:
		r.push(g.Sprite(screen), mask)
	case *AnimatedIcon:
		animating = true
		r.push(g.Sprite(screen, animDt), mask)
	case *Panel:
		for _, s := range g.Sprites(screen) {
			r.push(s, mask)
		}
	case *TextGraphic:
		r.drawText(gui, control, g, mask, scale, renderer)
	}
	graphic.ClearDirty()
	if len(r.sprites) > start {
		r.spritesMap[id] = [2]int{start, len(r.sprites)}
	}
	return animating
}

func (r *GuiRender) push(s Sprite, mask [4]float32) {
	if cutSprite(&s, mask) {
		r.sprites = append(r.sprites, s)
	}
}

// ensureGlyphs pre-rasterizes every glyph any text control will need this
// frame, growing the font texture when the cache cannot hold them all.
func (r *GuiRender) ensureGlyphs(gui *Gui, renderer GuiRenderer, scale float32) {
	controls := gui.Controls()
	fonts := gui.Fonts()
	for {
		retry := false
		for _, id := range controls.ActivePreorder(RootID) {
			control := controls.Get(id)
			tg, ok := control.graphic.(*TextGraphic)
			if !ok {
				continue
			}
			rect := control.rect.Rect()
			layout := tg.Layout(rect, fonts)
			anchor := tg.Anchor(rect)
			for i := range layout.Glyphs() {
				g := &layout.Glyphs()[i]
				if g.IsWhitespace {
					continue
				}
				if !r.cacheGlyph(g, anchor, scale, fonts, renderer) {
					retry = true
					break
				}
			}
			if retry {
				break
			}
		}
		if !retry {
			return
		}
		// Double the texture and refill from scratch.
		size := r.glyphs.Size()
		size = [2]uint32{size[0] * 2, size[1] * 2}
		renderer.ResizeFontTexture(r.fontTexture, size)
		r.glyphs.Reset(size[0], size[1])
		clear(r.metrics)
		r.fontTextureValid = false
		Logger().Debug("font texture resized", "width", size[0], "height", size[1])
	}
}

// cacheGlyph makes sure the rasterization of one positioned glyph is in
// the atlas, uploading it on a miss. It reports false when the atlas is
// full.
func (r *GuiRender) cacheGlyph(g *text.GlyphPosition, anchor [2]float32, scale float32, fonts *text.Fonts, renderer GuiRenderer) bool {
	key, _, _ := glyphKeyAt(g, anchor, scale)
	if _, ok := r.glyphs.Get(key); ok {
		return true
	}

	size := float32(key.size8th) / 8.0
	subpix := float32(key.subpix) / 8.0
	width, height, bearing, cov := r.rasterize(fonts.Get(g.FontID), g.GID, size, subpix)
	r.metrics[key] = glyphEntry{bearing: bearing, width: width, height: height}
	if width == 0 || height == 0 {
		return true
	}
	rect, err := r.glyphs.Put(key, width, height)
	if err != nil {
		return false
	}
	renderer.UpdateFontTexture(r.fontTexture, [4]uint32{rect.X, rect.Y, rect.X + rect.W, rect.Y + rect.H}, cov)
	return true
}

func glyphKeyAt(g *text.GlyphPosition, anchor [2]float32, scale float32) (glyphKey, float32, float32) {
	gx := (anchor[0] + g.X) * scale
	gy := (anchor[1] + g.Y) * scale
	frac := gx - float32(math.Floor(float64(gx)))
	key := glyphKey{
		font:    g.FontID,
		gid:     g.GID,
		subpix:  uint8(frac*8.0) % 8,
		size8th: uint32(g.FontSize*scale*8.0 + 0.5),
	}
	return key, float32(math.Floor(float64(gx))), float32(math.Floor(float64(gy)))
}

// rasterize renders a glyph outline to 8-bit coverage at the given size,
// offset horizontally by subpix pixels. The bearing locates the coverage
// rect relative to the pixel-snapped pen position.
func (r *GuiRender) rasterize(font *text.Font, gid uint16, size, subpix float32) (width, height uint32, bearing [2]float32, cov []byte) {
	segments := font.GlyphOutline(gid, size)
	if len(segments) == 0 {
		return 0, 0, [2]float32{}, nil
	}

	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, seg := range segments {
		args := seg.Args[:segmentArgs(seg.Op)]
		for _, p := range args {
			x := fixedToFloat(p.X) + subpix
			y := fixedToFloat(p.Y)
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}
	x0 := float32(math.Floor(float64(minX)))
	y0 := float32(math.Floor(float64(minY)))
	w := int(math.Ceil(float64(maxX))) - int(x0)
	h := int(math.Ceil(float64(maxY))) - int(y0)
	if w <= 0 || h <= 0 {
		return 0, 0, [2]float32{}, nil
	}

	r.raster.Reset(w, h)
	for _, seg := range segments {
		var pts [3][2]float32
		args := seg.Args[:segmentArgs(seg.Op)]
		for i, p := range args {
			pts[i] = [2]float32{fixedToFloat(p.X) + subpix - x0, fixedToFloat(p.Y) - y0}
		}
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			r.raster.MoveTo(pts[0][0], pts[0][1])
		case sfnt.SegmentOpLineTo:
			r.raster.LineTo(pts[0][0], pts[0][1])
		case sfnt.SegmentOpQuadTo:
			r.raster.QuadTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1])
		case sfnt.SegmentOpCubeTo:
			r.raster.CubeTo(pts[0][0], pts[0][1], pts[1][0], pts[1][1], pts[2][0], pts[2][1])
		}
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.raster.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return uint32(w), uint32(h), [2]float32{x0, y0}, dst.Pix
}

func segmentArgs(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}

// drawText emits the selection rects and glyph quads of a text control.
func (r *GuiRender) drawText(gui *Gui, control *Control, tg *TextGraphic, mask [4]float32, scale float32, renderer GuiRenderer) {
	fonts := gui.Fonts()
	rect := control.rect.Rect()
	layout := tg.Layout(rect, fonts)
	anchor := tg.Anchor(rect)
	color := tg.Color()

	for _, cr := range layout.Rects() {
		s := Sprite{
			Texture: r.whiteTexture,
			Color:   modulate(Color{R: cr.Color.R, G: cr.Color.G, B: cr.Color.B, A: cr.Color.A}, color),
			Rect: [4]float32{
				(anchor[0] + cr.Rect[0]) * scale,
				(anchor[1] + cr.Rect[1]) * scale,
				(anchor[0] + cr.Rect[2]) * scale,
				(anchor[1] + cr.Rect[3]) * scale,
			},
			UVRect: [4]float32{0, 0, 1, 1},
		}
		r.push(s, mask)
	}

	texSize := r.glyphs.Size()
	texW, texH := float32(texSize[0]), float32(texSize[1])
	for i := range layout.Glyphs() {
		g := &layout.Glyphs()[i]
		if g.IsWhitespace {
			continue
		}
		key, px, py := glyphKeyAt(g, anchor, scale)
		entry, ok := r.metrics[key]
		if !ok || entry.width == 0 {
			continue
		}
		cached, ok := r.glyphs.Get(key)
		if !ok {
			// Evicted between the pre-pass and here; rasterize it back in.
			if !r.cacheGlyph(g, anchor, scale, fonts, renderer) {
				continue
			}
			cached, _ = r.glyphs.Get(key)
		}
		s := Sprite{
			Texture: r.fontTexture,
			Color:   modulate(Color{R: g.Color.R, G: g.Color.G, B: g.Color.B, A: g.Color.A}, color),
			Rect: [4]float32{
				px + entry.bearing[0],
				py + entry.bearing[1],
				px + entry.bearing[0] + float32(entry.width),
				py + entry.bearing[1] + float32(entry.height),
			},
			UVRect: [4]float32{
				float32(cached.X) / texW,
				float32(cached.Y) / texH,
				float32(cached.W) / texW,
				float32(cached.H) / texH,
			},
		}
		r.push(s, mask)
	}
}

// cutSprite clips a sprite against a mask, adjusting its uv rect
// proportionally. It reports false when nothing remains.
func cutSprite(s *Sprite, mask [4]float32) bool {
	rect := &s.Rect
	uv := &s.UVRect
	if rect[2] <= rect[0] || rect[3] <= rect[1] {
		return false
	}
	if rect[0] < mask[0] {
		d := (mask[0] - rect[0]) / (rect[2] - rect[0])
		uv[0] += uv[2] * d
		uv[2] *= 1.0 - d
		rect[0] = mask[0]
	}
	if rect[2] > mask[2] {
		d := (rect[2] - mask[2]) / (rect[2] - rect[0])
		uv[2] *= 1.0 - d
		rect[2] = mask[2]
	}
	if rect[1] < mask[1] {
		d := (mask[1] - rect[1]) / (rect[3] - rect[1])
		uv[1] += uv[3] * d
		uv[3] *= 1.0 - d
		rect[1] = mask[1]
	}
	if rect[3] > mask[3] {
		d := (rect[3] - mask[3]) / (rect[3] - rect[1])
		uv[3] *= 1.0 - d
		rect[3] = mask[3]
	}
	return rect[2] > rect[0] && rect[3] > rect[1]
}

func scaleRect(rect [4]float32, scale float32) [4]float32 {
	return [4]float32{
		round32(rect[0] * scale),
		round32(rect[1] * scale),
		round32(rect[2] * scale),
		round32(rect[3] * scale),
	}
}

func intersect(a, b [4]float32) [4]float32 {
	return [4]float32{
		max32(a[0], b[0]),
		max32(a[1], b[1]),
		min32(a[2], b[2]),
		min32(a[3], b[3]),
	}
}

func modulate(a, b Color) Color {
	return Color{
		R: uint8(uint16(a.R) * uint16(b.R) / 255),
		G: uint8(uint16(a.G) * uint16(b.G) / 255),
		B: uint8(uint16(a.B) * uint16(b.B) / 255),
		A: uint8(uint16(a.A) * uint16(b.A) / 255),
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64.0
}
