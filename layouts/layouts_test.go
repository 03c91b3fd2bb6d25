package layouts_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/layouts"
	"github.com/gogpu/gui/text"
)

func newGui(width, height float32) *gui.Gui {
	return gui.NewGui(width, height, 1.0, text.NewFonts())
}

func rects(t *testing.T, g *gui.Gui, ids []gui.ID) [][4]float32 {
	t.Helper()
	g.UpdateLayouts()
	ctx := g.Context()
	defer ctx.Close()
	out := make([][4]float32, len(ids))
	for i, id := range ids {
		out[i] = ctx.Rect(id)
	}
	return out
}

func TestVBoxCenterAligned(t *testing.T) {
	g := newGui(200, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.VBoxLayout{
			Spacing: 4,
			Margins: [4]float32{2, 2, 2, 2},
			Align:   layouts.Center,
		}).
		Build()
	var children []gui.ID
	for i := 0; i < 3; i++ {
		children = append(children, ctx.CreateControl().
			Parent(box).
			MinSize([2]float32{60, 20}).
			Build())
	}
	ctx.Close()

	want := [][4]float32{
		{2, 16, 198, 36},
		{2, 40, 198, 60},
		{2, 64, 198, 84},
	}
	if diff := cmp.Diff(want, rects(t, g, children)); diff != "" {
		t.Errorf("child rects mismatch (-want +got):\n%s", diff)
	}
}

func TestVBoxExpandRatio(t *testing.T) {
	g := newGui(100, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.VBoxLayout{}).
		Build()
	a := ctx.CreateControl().Parent(box).MinSize([2]float32{0, 10}).Build()
	b := ctx.CreateControl().Parent(box).MinSize([2]float32{0, 10}).
		ExpandY(true).Ratio(1, 1).Build()
	c := ctx.CreateControl().Parent(box).MinSize([2]float32{0, 10}).
		ExpandY(true).Ratio(1, 3).Build()
	ctx.Close()

	// 70 px of surplus split 1:3 between the expanders.
	want := [][4]float32{
		{0, 0, 100, 10},
		{0, 10, 100, 37.5},
		{0, 37.5, 100, 100},
	}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{a, b, c})); diff != "" {
		t.Errorf("child rects mismatch (-want +got):\n%s", diff)
	}
}

func TestVBoxMinSize(t *testing.T) {
	g := newGui(400, 400)
	ctx := g.Context()
	box := ctx.CreateControl().
		Layout(&layouts.VBoxLayout{Spacing: 4, Margins: [4]float32{2, 2, 2, 2}}).
		Build()
	for i := 0; i < 3; i++ {
		ctx.CreateControl().Parent(box).MinSize([2]float32{60, 20}).Build()
	}
	ctx.Close()
	g.UpdateLayouts()

	ctx = g.Context()
	defer ctx.Close()
	if got := ctx.MinSize(box); got != [2]float32{64, 72} {
		t.Errorf("box min size = %v, want [64 72]", got)
	}
}

func TestHBoxEndAligned(t *testing.T) {
	g := newGui(100, 50)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.HBoxLayout{Spacing: 10, Align: layouts.End}).
		Build()
	a := ctx.CreateControl().Parent(box).MinSize([2]float32{20, 0}).Build()
	b := ctx.CreateControl().Parent(box).MinSize([2]float32{20, 0}).Build()
	ctx.Close()

	want := [][4]float32{
		{50, 0, 70, 50},
		{80, 0, 100, 50},
	}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{a, b})); diff != "" {
		t.Errorf("child rects mismatch (-want +got):\n%s", diff)
	}
}

func TestGridPlacement(t *testing.T) {
	g := newGui(210, 110)
	ctx := g.Context()
	grid := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.GridLayout{
			Columns: 2,
			Spacing: [2]float32{10, 10},
		}).
		Build()
	var children []gui.ID
	for i := 0; i < 3; i++ { // two columns, two rows, last cell empty
		children = append(children, ctx.CreateControl().
			Parent(grid).
			MinSize([2]float32{50, 30}).
			Build())
	}
	ctx.Close()

	want := [][4]float32{
		{0, 0, 50, 30},
		{60, 0, 110, 30},
		{0, 40, 50, 70},
	}
	if diff := cmp.Diff(want, rects(t, g, children)); diff != "" {
		t.Errorf("cell rects mismatch (-want +got):\n%s", diff)
	}
}

func TestGridExpandingColumn(t *testing.T) {
	g := newGui(200, 100)
	ctx := g.Context()
	grid := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.GridLayout{Columns: 2}).
		Build()
	a := ctx.CreateControl().Parent(grid).MinSize([2]float32{50, 30}).Build()
	b := ctx.CreateControl().Parent(grid).MinSize([2]float32{50, 30}).
		ExpandX(true).Build()
	ctx.Close()

	// The second column takes all 100 px of horizontal surplus.
	want := [][4]float32{
		{0, 0, 50, 30},
		{50, 0, 200, 30},
	}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{a, b})); diff != "" {
		t.Errorf("cell rects mismatch (-want +got):\n%s", diff)
	}
}

func TestRatioLetterbox(t *testing.T) {
	g := newGui(200, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.RatioLayout{
			Ratio:           1,
			HorizontalAlign: layouts.Center,
		}).
		Build()
	child := ctx.CreateControl().Parent(box).Build()
	ctx.Close()

	// A square in a 200 by 100 control is height-bound and centered.
	want := [][4]float32{{50, 0, 150, 100}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{child})); diff != "" {
		t.Errorf("child rect mismatch (-want +got):\n%s", diff)
	}
}

func TestRatioMinSizeRespectsRatio(t *testing.T) {
	g := newGui(400, 400)
	ctx := g.Context()
	box := ctx.CreateControl().
		Layout(&layouts.RatioLayout{Ratio: 2}).
		Build()
	ctx.CreateControl().Parent(box).MinSize([2]float32{10, 30}).Build()
	ctx.Close()
	g.UpdateLayouts()

	ctx = g.Context()
	defer ctx.Close()
	if got := ctx.MinSize(box); got != [2]float32{60, 30} {
		t.Errorf("min size = %v, want [60 30]", got)
	}
}

func TestMarginLayout(t *testing.T) {
	g := newGui(100, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.MarginLayout{Margins: [4]float32{5, 10, 15, 20}}).
		Build()
	child := ctx.CreateControl().Parent(box).MinSize([2]float32{10, 10}).Build()
	ctx.Close()

	want := [][4]float32{{5, 10, 85, 80}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{child})); diff != "" {
		t.Errorf("child rect mismatch (-want +got):\n%s", diff)
	}

	g.UpdateLayouts()
	ctx = g.Context()
	defer ctx.Close()
	if got := ctx.MinSize(box); got != [2]float32{30, 40} {
		t.Errorf("min size = %v, want [30 40]", got)
	}
}

func TestViewLayoutScrollAndClamp(t *testing.T) {
	g := newGui(200, 200)
	view := &layouts.ViewLayout{}
	ctx := g.Context()
	port := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(view).
		Build()
	content := ctx.CreateControl().Parent(port).MinSize([2]float32{200, 1000}).Build()
	ctx.Close()
	g.UpdateLayouts()

	if got := view.ScrollRange(); got != [2]float32{0, 800} {
		t.Fatalf("scroll range = %v, want [0 800]", got)
	}

	view.SetScroll(0, 100)
	ctx = g.Context()
	ctx.DirtyLayout(port)
	ctx.Close()
	want := [][4]float32{{0, -100, 200, 900}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{content})); diff != "" {
		t.Errorf("scrolled content rect mismatch (-want +got):\n%s", diff)
	}

	// Overshoot clamps to the range, negative clamps to zero.
	view.SetScroll(-50, 5000)
	ctx = g.Context()
	ctx.DirtyLayout(port)
	ctx.Close()
	g.UpdateLayouts()
	if got := view.Scroll(); got != [2]float32{0, 800} {
		t.Errorf("clamped scroll = %v, want [0 800]", got)
	}
}

func TestViewLayoutContentNeverSmallerThanView(t *testing.T) {
	g := newGui(300, 300)
	view := &layouts.ViewLayout{}
	ctx := g.Context()
	port := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(view).
		Build()
	content := ctx.CreateControl().Parent(port).MinSize([2]float32{50, 50}).Build()
	ctx.Close()

	want := [][4]float32{{0, 0, 300, 300}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{content})); diff != "" {
		t.Errorf("content rect mismatch (-want +got):\n%s", diff)
	}
	if got := view.ScrollRange(); got != [2]float32{0, 0} {
		t.Errorf("scroll range = %v, want zero", got)
	}
}

func TestFitGraphicLayoutSizesToIcon(t *testing.T) {
	g := newGui(100, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.VBoxLayout{}).
		Build()
	icon := ctx.CreateControl().
		Parent(box).
		Layout(layouts.FitGraphicLayout{}).
		Graphic(gui.NewIcon(1, [4]float32{0, 0, 1, 1}, [2]float32{40, 28})).
		Build()
	ctx.Close()

	want := [][4]float32{{0, 0, 100, 28}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{icon})); diff != "" {
		t.Errorf("icon rect mismatch (-want +got):\n%s", diff)
	}
}

func TestFitTextLayoutSizesToLargestChild(t *testing.T) {
	g := newGui(100, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.VBoxLayout{}).
		Build()
	fit := ctx.CreateControl().
		Parent(box).
		Layout(layouts.FitTextLayout{}).
		Build()
	ctx.CreateControl().
		Parent(fit).
		Graphic(gui.NewIcon(1, [4]float32{0, 0, 1, 1}, [2]float32{40, 10})).
		Build()
	ctx.CreateControl().
		Parent(fit).
		Graphic(gui.NewIcon(1, [4]float32{0, 0, 1, 1}, [2]float32{20, 30})).
		Build()
	ctx.Close()

	want := [][4]float32{{0, 0, 100, 30}}
	if diff := cmp.Diff(want, rects(t, g, []gui.ID{fit})); diff != "" {
		t.Errorf("fit rect mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateOneLayoutRelayoutsSubtree(t *testing.T) {
	g := newGui(200, 100)
	ctx := g.Context()
	box := ctx.CreateControl().
		Anchors([4]float32{0, 0, 1, 1}).
		Layout(&layouts.VBoxLayout{}).
		Build()
	a := ctx.CreateControl().Parent(box).MinSize([2]float32{0, 10}).Build()
	b := ctx.CreateControl().Parent(box).MinSize([2]float32{0, 20}).Build()
	ctx.Close()
	g.UpdateLayouts()

	readRect := func(id gui.ID) [4]float32 { return g.Controls().Get(id).Rect().Rect() }
	if got := readRect(b); got != ([4]float32{0, 10, 200, 30}) {
		t.Fatalf("initial rect of b = %v", got)
	}

	ctx = g.Context()
	ctx.SetMinSize(a, [2]float32{0, 30})
	ctx.Close()

	// The grown min size propagates up and re-places the column without a
	// full pass.
	g.UpdateOneLayout(a)
	if got := readRect(a); got != ([4]float32{0, 0, 200, 30}) {
		t.Errorf("rect of a after grow = %v, want [0 0 200 30]", got)
	}
	if got := readRect(b); got != ([4]float32{0, 30, 200, 50}) {
		t.Errorf("rect of b after grow = %v, want [0 30 200 50]", got)
	}
}
