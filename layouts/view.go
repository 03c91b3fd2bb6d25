package layouts

import "github.com/gogpu/gui"

// ViewLayout is a scrolling viewport. Its single child takes its min size
// or the view size, whichever is larger, offset by the scroll position;
// the part outside the control rect is clipped by the draw pass. The
// scroll is driven by a behavior such as widgets.ScrollView, which must
// dirty the layout after changing it.
type ViewLayout struct {
	scroll      [2]float32
	contentSize [2]float32
	viewSize    [2]float32
}

// Scroll returns the scroll position, growing right and down from zero.
func (v *ViewLayout) Scroll() [2]float32 { return v.scroll }

// SetScroll moves the scroll position. It is clamped to the scrollable
// range on the next placement pass.
func (v *ViewLayout) SetScroll(x, y float32) {
	v.scroll = [2]float32{x, y}
}

// ContentSize returns the size of the content as of the last placement.
func (v *ViewLayout) ContentSize() [2]float32 { return v.contentSize }

// ViewSize returns the size of the viewport as of the last placement.
func (v *ViewLayout) ViewSize() [2]float32 { return v.viewSize }

// ScrollRange returns how far the content can scroll on each axis.
func (v *ViewLayout) ScrollRange() [2]float32 {
	return [2]float32{
		max(v.contentSize[0]-v.viewSize[0], 0),
		max(v.contentSize[1]-v.viewSize[1], 0),
	}
}

// ComputeMinSize is zero: the viewport never propagates its content size,
// that is the point of it.
func (v *ViewLayout) ComputeMinSize(gui.ID, *gui.MinSizeContext) [2]float32 {
	return [2]float32{}
}

func (v *ViewLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return
	}
	rect := ctx.Rect(this)
	v.viewSize = [2]float32{rect[2] - rect[0], rect[3] - rect[1]}

	child := children[0]
	min := ctx.MinSize(child)
	v.contentSize = [2]float32{
		max(min[0], v.viewSize[0]),
		max(min[1], v.viewSize[1]),
	}

	r := v.ScrollRange()
	v.scroll[0] = clamp(v.scroll[0], 0, r[0])
	v.scroll[1] = clamp(v.scroll[1], 0, r[1])

	x := rect[0] - v.scroll[0]
	y := rect[1] - v.scroll[1]
	ctx.SetRect(child, [4]float32{x, y, x + v.contentSize[0], y + v.contentSize[1]})
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
