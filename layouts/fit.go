package layouts

import "github.com/gogpu/gui"

// FitGraphicLayout sizes the control to its own graphic's min size, so an
// icon or a panel is never squeezed below what it can draw. Children are
// placed by their anchors and margins.
type FitGraphicLayout struct {
	gui.DefaultLayout
}

func (FitGraphicLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	graphic := ctx.Graphic(this)
	if graphic == nil {
		return [2]float32{}
	}
	min, ok := graphic.ComputeMinSize(ctx.Fonts())
	if !ok {
		return [2]float32{}
	}
	return min
}

// FitTextLayout sizes the control to the largest min size among its
// children's graphics, labels typically. Children are placed by their
// anchors and margins.
type FitTextLayout struct {
	gui.DefaultLayout
}

func (FitTextLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	var min [2]float32
	for _, child := range ctx.ActiveChildren(this) {
		graphic := ctx.Graphic(child)
		if graphic == nil {
			continue
		}
		m, ok := graphic.ComputeMinSize(ctx.Fonts())
		if !ok {
			continue
		}
		min[0] = max(min[0], m[0])
		min[1] = max(min[1], m[1])
	}
	return min
}
