package layouts

import "github.com/gogpu/gui"

// MarginLayout offers its children the control rect inset by fixed
// margins.
type MarginLayout struct {
	// Margins in the form [left, top, right, bottom].
	Margins [4]float32
}

// NewMarginLayout creates a MarginLayout with the same margin on every
// side.
func NewMarginLayout(margin float32) *MarginLayout {
	return &MarginLayout{Margins: [4]float32{margin, margin, margin, margin}}
}

func (m *MarginLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	var min [2]float32
	for _, child := range ctx.ActiveChildren(this) {
		c := ctx.MinSize(child)
		min[0] = max(min[0], c[0])
		min[1] = max(min[1], c[1])
	}
	return [2]float32{
		min[0] + m.Margins[0] + m.Margins[2],
		min[1] + m.Margins[1] + m.Margins[3],
	}
}

func (m *MarginLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	rect := ctx.Rect(this)
	inner := [4]float32{
		rect[0] + m.Margins[0],
		rect[1] + m.Margins[1],
		rect[2] - m.Margins[2],
		rect[3] - m.Margins[3],
	}
	for _, child := range ctx.ActiveChildren(this) {
		ctx.SetDesignedRect(child, inner)
	}
}
