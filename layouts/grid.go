package layouts

import "github.com/gogpu/gui"

// GridLayout places the active children in a fixed number of columns,
// filling left to right, top to bottom, with as many rows as needed.
// Column widths and row heights come from the largest cell, and surplus
// space is shared among the columns and rows holding expanding cells.
type GridLayout struct {
	Columns int
	// Spacing between columns and between rows.
	Spacing [2]float32
	Margins [4]float32
}

// cells derives the column widths, row heights and expand flags from the
// children's min sizes.
func (g *GridLayout) cells(children []gui.ID, minSize func(gui.ID) [2]float32, layouting func(gui.ID) *gui.Rect) (colWidth, rowHeight []float32, colExpand, rowExpand []bool) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	rows := (len(children) + cols - 1) / cols
	colWidth = make([]float32, cols)
	rowHeight = make([]float32, rows)
	colExpand = make([]bool, cols)
	rowExpand = make([]bool, rows)
	for i, child := range children {
		col, row := i%cols, i/cols
		min := minSize(child)
		colWidth[col] = max(colWidth[col], min[0])
		rowHeight[row] = max(rowHeight[row], min[1])
		r := layouting(child)
		colExpand[col] = colExpand[col] || r.IsExpandX()
		rowExpand[row] = rowExpand[row] || r.IsExpandY()
	}
	return
}

func (g *GridLayout) ComputeMinSize(this gui.ID, ctx *gui.MinSizeContext) [2]float32 {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return [2]float32{
			g.Margins[0] + g.Margins[2],
			g.Margins[1] + g.Margins[3],
		}
	}
	colWidth, rowHeight, _, _ := g.cells(children, ctx.MinSize, ctx.Layouting)
	width := g.Margins[0] + g.Margins[2] + g.Spacing[0]*float32(len(colWidth)-1)
	for _, w := range colWidth {
		width += w
	}
	height := g.Margins[1] + g.Margins[3] + g.Spacing[1]*float32(len(rowHeight)-1)
	for _, h := range rowHeight {
		height += h
	}
	return [2]float32{width, height}
}

func (g *GridLayout) UpdateLayouts(this gui.ID, ctx *gui.LayoutContext) {
	children := ctx.ActiveChildren(this)
	if len(children) == 0 {
		return
	}
	colWidth, rowHeight, colExpand, rowExpand := g.cells(children, ctx.MinSize, ctx.Layouting)
	rect := ctx.Rect(this)

	distribute(colWidth, colExpand,
		rect[2]-rect[0]-g.Margins[0]-g.Margins[2]-g.Spacing[0]*float32(len(colWidth)-1))
	distribute(rowHeight, rowExpand,
		rect[3]-rect[1]-g.Margins[1]-g.Margins[3]-g.Spacing[1]*float32(len(rowHeight)-1))

	colX := make([]float32, len(colWidth))
	x := rect[0] + g.Margins[0]
	for i, w := range colWidth {
		colX[i] = x
		x += w + g.Spacing[0]
	}
	rowY := make([]float32, len(rowHeight))
	y := rect[1] + g.Margins[1]
	for i, h := range rowHeight {
		rowY[i] = y
		y += h + g.Spacing[1]
	}

	for i, child := range children {
		col, row := i%len(colWidth), i/len(colWidth)
		ctx.SetDesignedRect(child, [4]float32{
			colX[col],
			rowY[row],
			colX[col] + colWidth[col],
			rowY[row] + rowHeight[row],
		})
	}
}

// distribute grows the expanding sizes equally until they sum to total.
func distribute(sizes []float32, expand []bool, total float32) {
	var used float32
	count := 0
	for i, s := range sizes {
		used += s
		if expand[i] {
			count++
		}
	}
	if count == 0 || total <= used {
		return
	}
	extra := (total - used) / float32(count)
	for i := range sizes {
		if expand[i] {
			sizes[i] += extra
		}
	}
}
