package widgets_test

import (
	"math"
	"testing"
	"time"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/layouts"
	"github.com/gogpu/gui/widgets"
)

type nopRenderer struct{}

func (nopRenderer) UpdateFontTexture(uint32, [4]uint32, []byte) {}

func (nopRenderer) ResizeFontTexture(uint32, [2]uint32) {}

// scrollFixture builds a full window scroll view over content five times
// taller than the 200x200 view.
func scrollFixture(t *testing.T, scale float64) (*gui.Gui, *testClock, *layouts.ViewLayout) {
	t.Helper()
	g, clock := newTestGui(200, 200, scale)
	view := &layouts.ViewLayout{}
	port := g.CreateControl().
		Layout(view).
		Behavior(widgets.NewScrollView(view)).
		Build()
	g.CreateControl().
		Parent(port).
		MinSize([2]float32{200, 1000}).
		Build()
	g.UpdateLayouts()
	return g, clock, view
}

func scrollY(g *gui.Gui, view *layouts.ViewLayout) float32 {
	g.UpdateLayouts()
	return view.Scroll()[1]
}

func TestScrollViewWheel(t *testing.T) {
	g, _, view := scrollFixture(t, 2.0)

	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 100, 100)

	// One line is 100 physical pixels, 50 logical at scale 2.
	g.MouseScrollLine(gui.DefaultMouseID, 0, -1)
	if got := scrollY(g, view); got != 50 {
		t.Errorf("scroll after a line = %v, want 50", got)
	}

	g.MouseScrollPixel(gui.DefaultMouseID, 0, -30)
	if got := scrollY(g, view); got != 80 {
		t.Errorf("scroll after pixels = %v, want 80", got)
	}

	// Scrolling up past the top clamps.
	g.MouseScrollPixel(gui.DefaultMouseID, 0, 500)
	if got := scrollY(g, view); got != 0 {
		t.Errorf("scroll after clamping = %v, want 0", got)
	}
}

// dragFlick presses at y 150 and drags up in steps ms apart, leaving the
// content scrolled down by the dragged distance.
func dragFlick(g *gui.Gui, clock *testClock, moves int, step float32) {
	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 100, 150)
	g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	y := float32(150)
	for i := 0; i < moves; i++ {
		clock.advance(10 * time.Millisecond)
		y -= step
		g.MouseMoved(gui.DefaultMouseID, 100, y)
	}
	g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
}

func TestScrollViewDragAndMomentum(t *testing.T) {
	g, clock, view := scrollFixture(t, 1.0)
	render := gui.NewGuiRender(1, [2]uint32{256, 256}, 2)

	// Ten 5px steps over 100ms: 50px dragged, released at 500px/s.
	dragFlick(g, clock, 10, 5)
	if got := scrollY(g, view); got != 50 {
		t.Fatalf("scroll after the drag = %v, want 50", got)
	}
	if !g.IsAnimating() {
		t.Fatal("no momentum after the release")
	}

	// The momentum decays linearly from 500px/s over 0.25s, adding
	// v*T/2 = 62.5px. Drive it at 1000fps.
	animating := true
	for i := 0; animating && i < 400; i++ {
		_, animating = render.Render(g, nopRenderer{})
		clock.advance(time.Millisecond)
	}
	if animating {
		t.Fatal("momentum did not end")
	}
	got := scrollY(g, view)
	if math.Abs(float64(got-112.25)) > 0.5 {
		t.Errorf("scroll after momentum = %v, want about 112.25", got)
	}
}

func TestScrollViewWheelCancelsMomentum(t *testing.T) {
	g, clock, view := scrollFixture(t, 1.0)

	dragFlick(g, clock, 3, 5)
	if !g.IsAnimating() {
		t.Fatal("no momentum after the release")
	}

	g.MouseScrollPixel(gui.DefaultMouseID, 0, -10)
	if g.IsAnimating() {
		t.Error("wheel scroll did not stop the momentum")
	}
	if got := scrollY(g, view); got != 25 {
		t.Errorf("scroll = %v, want the dragged 15 plus the wheeled 10", got)
	}
}

func TestScrollViewNewPressCancelsMomentum(t *testing.T) {
	g, clock, _ := scrollFixture(t, 1.0)

	dragFlick(g, clock, 3, 5)
	if !g.IsAnimating() {
		t.Fatal("no momentum after the release")
	}

	g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	if g.IsAnimating() {
		t.Error("a new press did not stop the momentum")
	}
	g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
}
