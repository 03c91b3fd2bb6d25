package gui

import "math"

// RectFill controls how a control uses the area its parent offers when that
// area is larger than the control's min size.
type RectFill uint8

const (
	// Fill uses the whole designed area.
	Fill RectFill = iota
	// ShrinkStart shrinks to min size, anchored at the start of the area.
	ShrinkStart
	// ShrinkCenter shrinks to min size, centered in the area.
	ShrinkCenter
	// ShrinkEnd shrinks to min size, anchored at the end of the area.
	ShrinkEnd
)

// RenderDirtyFlags track which geometric values changed since the last
// draw pass.
type RenderDirtyFlags uint8

const (
	// RenderDirtyWidth is set when the width of the rect has changed.
	RenderDirtyWidth RenderDirtyFlags = 1 << iota
	// RenderDirtyHeight is set when the height of the rect has changed.
	RenderDirtyHeight
	// RenderDirtyRect is set when any corner of the rect has changed.
	RenderDirtyRect

	renderDirtyAll = RenderDirtyWidth | RenderDirtyHeight | RenderDirtyRect
)

// LayoutDirtyFlags track which geometric values changed since the last
// layout pass.
type LayoutDirtyFlags uint16

const (
	// LayoutDirtyWidth is set when the width of the rect has changed.
	LayoutDirtyWidth LayoutDirtyFlags = 1 << iota
	// LayoutDirtyHeight is set when the height of the rect has changed.
	LayoutDirtyHeight
	// LayoutDirtyRect is set when any corner of the rect has changed.
	LayoutDirtyRect
	// LayoutDirtyMinWidth is set when the min width has changed.
	LayoutDirtyMinWidth
	// LayoutDirtyMinHeight is set when the min height has changed.
	LayoutDirtyMinHeight
	// LayoutDirty requests a fresh placement pass over this control.
	LayoutDirty

	layoutDirtyAll = LayoutDirtyWidth | LayoutDirtyHeight | LayoutDirtyRect |
		LayoutDirtyMinWidth | LayoutDirtyMinHeight | LayoutDirty
)

// cmpFloat reports whether a and b are equal within a relative epsilon.
func cmpFloat(a, b float32) bool {
	return float32(math.Abs(float64(a-b))) <=
		epsilon*float32(math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
}

const epsilon = 1.1920929e-07 // 2^-23, f32 machine epsilon

// Rect is the geometric state of a control.
//
// The resolved rect of a control under the default layout is calculated by
// the formula anchors*parent_size + margins. For example, anchors
// [0, 0, 0, 0] and margins [10, 10, 40, 40] always place the control at
// position 10,10 of its parent with size 30x30.
type Rect struct {
	Anchors [4]float32
	Margins [4]float32

	userMinSize [2]float32
	minSize     [2]float32
	rect        [4]float32

	expandX bool
	expandY bool
	fillX   RectFill
	fillY   RectFill

	RatioX float32
	RatioY float32

	renderDirtyFlags RenderDirtyFlags
	layoutDirtyFlags LayoutDirtyFlags
}

// DefaultRect returns a Rect anchored to the full parent area.
func DefaultRect() Rect {
	return Rect{
		Anchors:          [4]float32{0, 0, 1, 1},
		RatioX:           1,
		RatioY:           1,
		renderDirtyFlags: renderDirtyAll,
		layoutDirtyFlags: layoutDirtyAll,
	}
}

// NewRect returns a Rect with the given anchors and margins.
func NewRect(anchors, margins [4]float32) Rect {
	r := DefaultRect()
	r.Anchors = anchors
	r.Margins = margins
	return r
}

// RenderDirtyFlags returns the flags accumulated since the last call to
// ClearRenderDirtyFlags.
func (r *Rect) RenderDirtyFlags() RenderDirtyFlags { return r.renderDirtyFlags }

// ClearRenderDirtyFlags resets the render dirty flags.
func (r *Rect) ClearRenderDirtyFlags() { r.renderDirtyFlags = 0 }

// DirtyRenderDirtyFlags sets all render dirty flags.
func (r *Rect) DirtyRenderDirtyFlags() { r.renderDirtyFlags = renderDirtyAll }

// LayoutDirtyFlags returns the flags accumulated since the last call to
// ClearLayoutDirtyFlags.
func (r *Rect) LayoutDirtyFlags() LayoutDirtyFlags { return r.layoutDirtyFlags }

// ClearLayoutDirtyFlags resets the layout dirty flags.
func (r *Rect) ClearLayoutDirtyFlags() { r.layoutDirtyFlags = 0 }

// DirtyLayoutDirtyFlags sets all layout dirty flags.
func (r *Rect) DirtyLayoutDirtyFlags() { r.layoutDirtyFlags = layoutDirtyAll }

// SetRect sets the resolved rect directly, updating dirty flags.
func (r *Rect) SetRect(rect [4]float32) {
	if rect == r.rect {
		return
	}
	r.renderDirtyFlags |= RenderDirtyRect
	r.layoutDirtyFlags |= LayoutDirtyRect
	if !cmpFloat(r.Width(), rect[2]-rect[0]) {
		r.renderDirtyFlags |= RenderDirtyWidth
		r.layoutDirtyFlags |= LayoutDirtyWidth
	}
	if !cmpFloat(r.Height(), rect[3]-rect[1]) {
		r.renderDirtyFlags |= RenderDirtyHeight
		r.layoutDirtyFlags |= LayoutDirtyHeight
	}
	r.rect = rect
}

// SetDesignedRect gives this rect its designed area. The rect decides its
// own final geometry from the area, its fill policy and its min size: an
// area smaller than min size overflows from the area's top-left corner,
// otherwise the fill policy applies per axis.
func (r *Rect) SetDesignedRect(rect [4]float32) {
	var newRect [4]float32
	min := r.MinSize()
	if rect[2]-rect[0] <= min[0] {
		newRect[0] = rect[0]
		newRect[2] = rect[0] + min[0]
	} else {
		switch r.fillX {
		case Fill:
			newRect[0] = rect[0]
			newRect[2] = rect[2]
		case ShrinkStart:
			newRect[0] = rect[0]
			newRect[2] = rect[0] + min[0]
		case ShrinkCenter:
			x := (rect[2] - rect[0] - min[0]) / 2
			newRect[0] = rect[0] + x
			newRect[2] = rect[2] - x
		case ShrinkEnd:
			newRect[0] = rect[2] - min[0]
			newRect[2] = rect[2]
		}
	}
	if rect[3]-rect[1] <= min[1] {
		newRect[1] = rect[1]
		newRect[3] = rect[1] + min[1]
	} else {
		switch r.fillY {
		case Fill:
			newRect[1] = rect[1]
			newRect[3] = rect[3]
		case ShrinkStart:
			newRect[1] = rect[1]
			newRect[3] = rect[1] + min[1]
		case ShrinkCenter:
			y := (rect[3] - rect[1] - min[1]) / 2
			newRect[1] = rect[1] + y
			newRect[3] = rect[3] - y
		case ShrinkEnd:
			newRect[1] = rect[3] - min[1]
			newRect[3] = rect[3]
		}
	}
	r.SetRect(newRect)
}

// SetFillX sets the horizontal fill policy.
func (r *Rect) SetFillX(fill RectFill) { r.fillX = fill }

// SetFillY sets the vertical fill policy.
func (r *Rect) SetFillY(fill RectFill) { r.fillY = fill }

// FillX returns the horizontal fill policy.
func (r *Rect) FillX() RectFill { return r.fillX }

// FillY returns the vertical fill policy.
func (r *Rect) FillY() RectFill { return r.fillY }

// MinSize returns the computed min size, which is at least the user min
// size.
func (r *Rect) MinSize() [2]float32 { return r.minSize }

// SetMinSize sets the user min size. The computed min size never goes
// below it; if the current rect is smaller, it grows immediately.
func (r *Rect) SetMinSize(minSize [2]float32) {
	r.userMinSize = minSize
	min := [2]float32{
		max32(r.minSize[0], minSize[0]),
		max32(r.minSize[1], minSize[1]),
	}
	if !cmpFloat(r.minSize[0], min[0]) {
		r.layoutDirtyFlags |= LayoutDirtyMinWidth
		r.minSize[0] = min[0]
	}
	if !cmpFloat(r.minSize[1], min[1]) {
		r.layoutDirtyFlags |= LayoutDirtyMinHeight
		r.minSize[1] = min[1]
	}
	if r.Width() < r.minSize[0] {
		r.SetWidth(min[0])
	}
	if r.Height() < r.minSize[1] {
		r.SetHeight(min[1])
	}
}

// UserMinSize returns the min size requested by the user, before the
// layout-computed floor is applied.
func (r *Rect) UserMinSize() [2]float32 { return r.userMinSize }

// setComputedMinSize stores the layout-computed min size, clamped at the
// user min size. Called by the min-size pass.
func (r *Rect) setComputedMinSize(minSize [2]float32) {
	min := [2]float32{
		max32(minSize[0], r.userMinSize[0]),
		max32(minSize[1], r.userMinSize[1]),
	}
	if !cmpFloat(r.minSize[0], min[0]) {
		r.layoutDirtyFlags |= LayoutDirtyMinWidth
		r.minSize[0] = min[0]
	}
	if !cmpFloat(r.minSize[1], min[1]) {
		r.layoutDirtyFlags |= LayoutDirtyMinHeight
		r.minSize[1] = min[1]
	}
}

// SetExpandX marks this rect as a receiver of surplus horizontal space in
// box and grid layouts.
func (r *Rect) SetExpandX(expand bool) { r.expandX = expand }

// SetExpandY marks this rect as a receiver of surplus vertical space in
// box and grid layouts.
func (r *Rect) SetExpandY(expand bool) { r.expandY = expand }

// IsExpandX reports whether this rect expands horizontally.
func (r *Rect) IsExpandX() bool { return r.expandX }

// IsExpandY reports whether this rect expands vertically.
func (r *Rect) IsExpandY() bool { return r.expandY }

// TopLeft returns the position of the top-left corner.
func (r *Rect) TopLeft() (float32, float32) { return r.rect[0], r.rect[1] }

// Rect returns the resolved rect as [x0, y0, x1, y1].
func (r *Rect) Rect() [4]float32 { return r.rect }

// Center returns the center point of the rect.
func (r *Rect) Center() (float32, float32) {
	return (r.rect[0] + r.rect[2]) / 2, (r.rect[1] + r.rect[3]) / 2
}

// Width returns the resolved width.
func (r *Rect) Width() float32 { return r.rect[2] - r.rect[0] }

// SetWidth sets the resolved width, keeping the left edge.
func (r *Rect) SetWidth(width float32) {
	if !cmpFloat(r.Width(), width) {
		r.renderDirtyFlags |= RenderDirtyWidth
		r.layoutDirtyFlags |= LayoutDirtyWidth
	}
	r.rect[2] = r.rect[0] + width
}

// Height returns the resolved height.
func (r *Rect) Height() float32 { return r.rect[3] - r.rect[1] }

// SetHeight sets the resolved height, keeping the top edge.
func (r *Rect) SetHeight(height float32) {
	if !cmpFloat(r.Height(), height) {
		r.renderDirtyFlags |= RenderDirtyHeight
		r.layoutDirtyFlags |= LayoutDirtyHeight
	}
	r.rect[3] = r.rect[1] + height
}

// Size returns the resolved [width, height].
func (r *Rect) Size() [2]float32 {
	return [2]float32{r.rect[2] - r.rect[0], r.rect[3] - r.rect[1]}
}

// RelativeX maps an absolute x to the 0..1 range across this rect.
func (r *Rect) RelativeX(x float32) float32 {
	return (x - r.rect[0]) / r.Width()
}

// Contains reports whether the point lies strictly inside the rect.
func (r *Rect) Contains(x, y float32) bool {
	return r.rect[0] < x && x < r.rect[2] && r.rect[1] < y && y < r.rect[3]
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func round32(v float32) float32 {
	return float32(math.Round(float64(v)))
}

func mod32(a, b float32) float32 {
	return float32(math.Mod(float64(a), float64(b)))
}
