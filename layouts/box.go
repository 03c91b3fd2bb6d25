package layouts

import "github.com/gogpu/gui"

// VBoxLayout stacks the active children vertically. Each child gets its
// min height; leftover space goes to expanding children in proportion to
// their RatioY, or pads the stack by Align when none expand. Children
// span the full width between the margins.
type VBoxLayout struct {
	Spacing float32
	// Margins in the form [left, top, right, bottom].
	Margins [4]float32
	Align   Align
}

func (v *VBoxLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	children := ctx.ActiveChildren(this)
	var width, height float32
	for i, child := range children {
		min := ctx.MinSize(child)
		width = max(width, min[0])
		height += min[1]
		if i > 0 {
			height += v.Spacing
		}
	}
	return [2]float32{
		width + v.Margins[0] + v.Margins[2],
		height + v.Margins[1] + v.Margins[3],
	}
}

func (v *VBoxLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return
	}
	rect := ctx.Rect(this)
	left := rect[0] + v.Margins[0]
	right := rect[2] - v.Margins[2]
	top := rect[1] + v.Margins[1]
	bottom := rect[3] - v.Margins[3]

	var reserved, totalRatio float32
	for _, child := range children {
		reserved += ctx.MinSize(child)[1]
		r := ctx.Layouting(child)
		if r.IsExpandY() {
			totalRatio += r.RatioY
		}
	}
	free := bottom - top - reserved - v.Spacing*float32(len(children)-1)
	if free < 0 {
		free = 0
	}

	y := top
	if totalRatio == 0 {
		switch v.Align {
		case Center:
			y += free / 2
		case End:
			y += free
		}
	}
	for _, child := range children {
		height := ctx.MinSize(child)[1]
		r := ctx.Layouting(child)
		if totalRatio > 0 && r.IsExpandY() {
			height += free * r.RatioY / totalRatio
		}
		ctx.SetDesignedRect(child, [4]float32{left, y, right, y + height})
		y += height + v.Spacing
	}
}

// HBoxLayout is VBoxLayout along the horizontal axis: children get their
// min width, leftover space goes to expanding children by RatioX, and
// every child spans the full height between the margins.
type HBoxLayout struct {
	Spacing float32
	Margins [4]float32
	Align   Align
}

func (h *HBoxLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	children := ctx.ActiveChildren(this)
	var width, height float32
	for i, child := range children {
		min := ctx.MinSize(child)
		height = max(height, min[1])
		width += min[0]
		if i > 0 {
			width += h.Spacing
		}
	}
	return [2]float32{
		width + h.Margins[0] + h.Margins[2],
		height + h.Margins[1] + h.Margins[3],
	}
}

func (h *HBoxLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return
	}
	rect := ctx.Rect(this)
	left := rect[0] + h.Margins[0]
	right := rect[2] - h.Margins[2]
	top := rect[1] + h.Margins[1]
	bottom := rect[3] - h.Margins[3]

	var reserved, totalRatio float32
	for _, child := range children {
		reserved += ctx.MinSize(child)[0]
		r := ctx.Layouting(child)
		if r.IsExpandX() {
			totalRatio += r.RatioX
		}
	}
	free := right - left - reserved - h.Spacing*float32(len(children)-1)
	if free < 0 {
		free = 0
	}

	x := left
	if totalRatio == 0 {
		switch h.Align {
		case Center:
			x += free / 2
		case End:
			x += free
		}
	}
	for _, child := range children {
		width := ctx.MinSize(child)[0]
		r := ctx.Layouting(child)
		if totalRatio > 0 && r.IsExpandX() {
			width += free * r.RatioX / totalRatio
		}
		ctx.SetDesignedRect(child, [4]float32{x, top, x + width, bottom})
		x += width + h.Spacing
	}
}
