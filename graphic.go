package gui

import (
	"github.com/gogpu/gui/text"
)

// Sprite is a single textured quad emitted by the render pass.
//
// Rect is in screen space, in the form [x1, y1, x2, y2]. UVRect is the
// section of the texture to sample, in the form [x, y, width, height] with
// values in the range 0.0 to 1.0.
type Sprite struct {
	Texture uint32
	Color   Color
	Rect    [4]float32
	UVRect  [4]float32
}

// Graphic is the visual content of a control. A control with a nil Graphic
// renders nothing but still participates in layout and input.
//
// Implementations are not safe for concurrent use. They are owned by the Gui
// that holds the control.
type Graphic interface {
	// Color returns the color the graphic is multiplied by.
	Color() Color
	// SetColor sets the color the graphic is multiplied by.
	SetColor(color Color)
	// SetAlpha sets only the alpha channel of the color.
	SetAlpha(alpha uint8)

	// FlipX mirrors the graphic horizontally by negating its uv widths.
	FlipX()
	// FlipY mirrors the graphic vertically by negating its uv heights.
	FlipY()

	// IsColorDirty reports if the color changed since the last render.
	IsColorDirty() bool
	// NeedRebuild reports if the sprites must be regenerated even when the
	// control rect and color did not change.
	NeedRebuild() bool
	// ClearDirty clears the dirty flags after a render.
	ClearDirty()

	// ComputeMinSize returns the minimal size this graphic needs, or false
	// when the graphic imposes no minimum.
	ComputeMinSize(fonts *text.Fonts) ([2]float32, bool)
}

func flipUVRectX(uv *[4]float32) {
	uv[0] += uv[2]
	uv[2] *= -1.0
}

func flipUVRectY(uv *[4]float32) {
	uv[1] += uv[3]
	uv[3] *= -1.0
}

// Texture is a graphic that stretches a section of a texture over the whole
// control rect.
type Texture struct {
	// The id of the texture.
	TextureID uint32
	// The section of the texture to render, in the form [x, y, width,
	// height], in relative values from 0.0 to 1.0.
	UVRect [4]float32

	color      Color
	colorDirty bool
}

// NewTexture creates a Texture graphic with the given texture id and uv rect.
func NewTexture(texture uint32, uvRect [4]float32) *Texture {
	return &Texture{
		TextureID:  texture,
		UVRect:     uvRect,
		color:      ColorWhite,
		colorDirty: true,
	}
}

func (t *Texture) Color() Color { return t.color }

func (t *Texture) SetColor(color Color) {
	t.color = color
	t.colorDirty = true
}

func (t *Texture) SetAlpha(alpha uint8) {
	t.color.A = alpha
	t.colorDirty = true
}

func (t *Texture) FlipX() { flipUVRectX(&t.UVRect) }
func (t *Texture) FlipY() { flipUVRectY(&t.UVRect) }

func (t *Texture) IsColorDirty() bool { return t.colorDirty }
func (t *Texture) NeedRebuild() bool  { return false }
func (t *Texture) ClearDirty()        { t.colorDirty = false }

func (t *Texture) ComputeMinSize(*text.Fonts) ([2]float32, bool) {
	return [2]float32{}, true
}

// Sprite returns the quad covering the given control rect.
func (t *Texture) Sprite(rect [4]float32) Sprite {
	return Sprite{
		Texture: t.TextureID,
		Color:   t.color,
		Rect:    rect,
		UVRect:  t.UVRect,
	}
}

// Icon is a graphic for a non-resizable texture.
//
// If the control is bigger than the icon, the texture is not stretched.
// It preserves its size and is centered in the control.
type Icon struct {
	TextureID uint32
	UVRect    [4]float32
	// The size of the icon, which is also the min size it reports.
	Size [2]float32

	color      Color
	colorDirty bool
}

// NewIcon creates an Icon graphic with the given texture id, uv rect and
// size in pixels.
func NewIcon(texture uint32, uvRect [4]float32, size [2]float32) *Icon {
	return &Icon{
		TextureID:  texture,
		UVRect:     uvRect,
		Size:       size,
		color:      ColorWhite,
		colorDirty: true,
	}
}

func (c *Icon) Color() Color { return c.color }

func (c *Icon) SetColor(color Color) {
	c.color = color
	c.colorDirty = true
}

func (c *Icon) SetAlpha(alpha uint8) {
	c.color.A = alpha
	c.colorDirty = true
}

func (c *Icon) FlipX() { flipUVRectX(&c.UVRect) }
func (c *Icon) FlipY() { flipUVRectY(&c.UVRect) }

func (c *Icon) IsColorDirty() bool { return c.colorDirty }
func (c *Icon) NeedRebuild() bool  { return false }
func (c *Icon) ClearDirty()        { c.colorDirty = false }

func (c *Icon) ComputeMinSize(*text.Fonts) ([2]float32, bool) {
	return c.Size, true
}

// Sprite returns the quad for the icon, centered in the given control rect.
func (c *Icon) Sprite(rect [4]float32) Sprite {
	width := rect[2] - rect[0]
	height := rect[3] - rect[1]
	w, h := c.Size[0], c.Size[1]
	x := rect[0] + (width-w)/2.0
	y := rect[1] + (height-h)/2.0
	return Sprite{
		Texture: c.TextureID,
		Color:   c.color,
		Rect:    [4]float32{x, y, x + w, y + h},
		UVRect:  c.UVRect,
	}
}

// AnimatedIcon is an Icon that cycles through a sequence of uv rects over
// time. Each call to Sprite advances the animation by the given dt.
type AnimatedIcon struct {
	TextureID uint32
	// Frames per second. Defaults to 60.
	FPS float32
	// One uv rect per frame of the animation.
	Frames [][4]float32
	Size   [2]float32

	currTime   float32
	color      Color
	colorDirty bool
}

// NewAnimatedIcon creates an AnimatedIcon with the given frames, playing at
// 60 frames per second.
func NewAnimatedIcon(texture uint32, frames [][4]float32, size [2]float32) *AnimatedIcon {
	return &AnimatedIcon{
		TextureID:  texture,
		FPS:        60.0,
		Frames:     frames,
		Size:       size,
		color:      ColorWhite,
		colorDirty: true,
	}
}

func (a *AnimatedIcon) Color() Color { return a.color }

func (a *AnimatedIcon) SetColor(color Color) {
	a.color = color
	a.colorDirty = true
}

func (a *AnimatedIcon) SetAlpha(alpha uint8) {
	a.color.A = alpha
	a.colorDirty = true
}

func (a *AnimatedIcon) FlipX() {
	for i := range a.Frames {
		flipUVRectX(&a.Frames[i])
	}
}

func (a *AnimatedIcon) FlipY() {
	for i := range a.Frames {
		flipUVRectY(&a.Frames[i])
	}
}

func (a *AnimatedIcon) IsColorDirty() bool { return a.colorDirty }

// NeedRebuild always reports true so the render pass regenerates the sprite
// every frame while the animation plays.
func (a *AnimatedIcon) NeedRebuild() bool { return true }
func (a *AnimatedIcon) ClearDirty()       { a.colorDirty = false }

func (a *AnimatedIcon) ComputeMinSize(*text.Fonts) ([2]float32, bool) {
	return a.Size, true
}

// Sprite returns the quad for the current frame, centered in the given
// control rect, and advances the animation clock by dt seconds.
func (a *AnimatedIcon) Sprite(rect [4]float32, dt float32) Sprite {
	width := rect[2] - rect[0]
	height := rect[3] - rect[1]
	w, h := a.Size[0], a.Size[1]
	x := rect[0] + (width-w)/2.0
	y := rect[1] + (height-h)/2.0

	frame := int(a.currTime * a.FPS)
	if frame >= len(a.Frames) {
		frame = len(a.Frames) - 1
	}
	sprite := Sprite{
		Texture: a.TextureID,
		Color:   a.color,
		Rect:    [4]float32{x, y, x + w, y + h},
		UVRect:  a.Frames[frame],
	}

	duration := float32(len(a.Frames)) / a.FPS
	a.currTime = mod32(a.currTime+dt, duration)

	return sprite
}

// Panel is a 9-slice graphic. The given uv rect is divided in 9 equal
// sections. The corners keep the size given by border, the edges stretch
// along one axis and the center stretches along both.
type Panel struct {
	TextureID uint32
	UVRects   [9][4]float32
	// Border widths, in the form [left, top, right, bottom].
	Border [4]float32

	color      Color
	colorDirty bool
}

// NewPanel creates a Panel graphic. The uv rect is divided in 9 equal sized
// sections, and border gives the pixel width of each border.
func NewPanel(texture uint32, uvRect [4]float32, border [4]float32) *Panel {
	w := uvRect[2]
	h := uvRect[3]
	x := [3]float32{uvRect[0], uvRect[0] + w/3.0, uvRect[0] + w*2.0/3.0}
	y := [3]float32{uvRect[1], uvRect[1] + h/3.0, uvRect[1] + h*2.0/3.0}

	var uvRects [9][4]float32
	for i := range uvRects {
		uvRects[i] = [4]float32{x[i%3], y[i/3], w / 3.0, h / 3.0}
	}

	return &Panel{
		TextureID:  texture,
		UVRects:    uvRects,
		Border:     border,
		color:      ColorWhite,
		colorDirty: true,
	}
}

func (p *Panel) Color() Color { return p.color }

func (p *Panel) SetColor(color Color) {
	p.color = color
	p.colorDirty = true
}

func (p *Panel) SetAlpha(alpha uint8) {
	p.color.A = alpha
	p.colorDirty = true
}

func (p *Panel) FlipX() {
	for i := range p.UVRects {
		flipUVRectX(&p.UVRects[i])
	}
	p.Border[0], p.Border[2] = p.Border[2], p.Border[0]
	p.UVRects[0], p.UVRects[2] = p.UVRects[2], p.UVRects[0]
	p.UVRects[3], p.UVRects[5] = p.UVRects[5], p.UVRects[3]
	p.UVRects[6], p.UVRects[8] = p.UVRects[8], p.UVRects[6]
}

func (p *Panel) FlipY() {
	for i := range p.UVRects {
		flipUVRectY(&p.UVRects[i])
	}
	p.Border[1], p.Border[3] = p.Border[3], p.Border[1]
	p.UVRects[0], p.UVRects[6] = p.UVRects[6], p.UVRects[0]
	p.UVRects[1], p.UVRects[7] = p.UVRects[7], p.UVRects[1]
	p.UVRects[2], p.UVRects[8] = p.UVRects[8], p.UVRects[2]
}

func (p *Panel) IsColorDirty() bool { return p.colorDirty }
func (p *Panel) NeedRebuild() bool  { return false }
func (p *Panel) ClearDirty()        { p.colorDirty = false }

// ComputeMinSize returns the smallest size where the panel borders do not
// suffer scaling.
func (p *Panel) ComputeMinSize(*text.Fonts) ([2]float32, bool) {
	return [2]float32{
		p.Border[0] + p.Border[2],
		p.Border[1] + p.Border[3],
	}, true
}

// Sprites returns the 9 quads covering the given control rect. When the rect
// is too small to hold the borders, they shrink to half the rect, rounded.
func (p *Panel) Sprites(rect [4]float32) []Sprite {
	width := max32(rect[2]-rect[0], 0.0)
	height := max32(rect[3]-rect[1], 0.0)
	border := [4]float32{
		round32(min32(p.Border[0], width/2.0)),
		round32(min32(p.Border[1], height/2.0)),
		round32(min32(p.Border[2], width/2.0)),
		round32(min32(p.Border[3], height/2.0)),
	}
	x1 := rect[0]
	x2 := rect[0] + border[0]
	x3 := rect[2] - border[2]

	y1 := rect[1]
	y2 := rect[1] + border[1]
	y3 := rect[3] - border[3]

	innerWidth := x3 - x2
	innerHeight := y3 - y2

	xs := [3]float32{x1, x2, x3}
	ys := [3]float32{y1, y2, y3}
	ws := [3]float32{border[0], innerWidth, border[2]}
	hs := [3]float32{border[1], innerHeight, border[3]}

	sprites := make([]Sprite, 0, 9)
	for i := 0; i < 9; i++ {
		x := xs[i%3]
		y := ys[i/3]
		w := ws[i%3]
		h := hs[i/3]
		sprites = append(sprites, Sprite{
			Texture: p.TextureID,
			Color:   p.color,
			Rect:    [4]float32{x, y, x + w, y + h},
			UVRect:  p.UVRects[i],
		})
	}
	return sprites
}
