package layouts

import "github.com/gogpu/gui"

// RatioLayout letterboxes its children into the largest rect with a fixed
// width/height ratio that fits the control, aligned in the leftover
// space.
type RatioLayout struct {
	// Ratio is width over height. Zero or negative behaves as 1.
	Ratio           float32
	HorizontalAlign Align
	VerticalAlign   Align
}

func (l *RatioLayout) ratio() float32 {
	if l.Ratio <= 0 {
		return 1
	}
	return l.Ratio
}

func (l *RatioLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	ratio := l.ratio()
	var min [2]float32
	for _, child := range ctx.ActiveChildren(this) {
		m := ctx.MinSize(child)
		min[0] = max(min[0], m[0])
		min[1] = max(min[1], m[1])
	}
	// Grow the smaller axis so the min box already respects the ratio.
	if min[0] < min[1]*ratio {
		min[0] = min[1] * ratio
	} else {
		min[1] = min[0] / ratio
	}
	return min
}

func (l *RatioLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return
	}
	rect := ctx.Rect(this)
	width := rect[2] - rect[0]
	height := rect[3] - rect[1]
	ratio := l.ratio()

	fitW := width
	fitH := fitW / ratio
	if fitH > height {
		fitH = height
		fitW = fitH * ratio
	}

	x := rect[0]
	switch l.HorizontalAlign {
	case Center:
		x += (width - fitW) / 2
	case End:
		x += width - fitW
	}
	y := rect[1]
	switch l.VerticalAlign {
	case Center:
		y += (height - fitH) / 2
	case End:
		y += height - fitH
	}

	for _, child := range children {
		ctx.SetDesignedRect(child, [4]float32{x, y, x + fitW, y + fitH})
	}
}
