package widgets_test

import (
	"testing"
	"time"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/text"
	"github.com/gogpu/gui/widgets"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestGui(width, height float32, scale float64) (*gui.Gui, *testClock) {
	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	g := gui.NewGui(width, height, scale, text.NewFonts())
	g.SetClock(clock.Now)
	return g, clock
}

// buttonFixture builds a button over the left half of a 100x100 window.
func buttonFixture(t *testing.T) (*gui.Gui, *widgets.Button, gui.ID, *int) {
	t.Helper()
	g, _ := newTestGui(100, 100, 1.0)
	clicks := 0
	btn := widgets.NewButton(func(gui.ID, *gui.Context) { clicks++ })
	id := g.CreateControl().
		Anchors([4]float32{0, 0, 0.5, 1}).
		Behavior(btn).
		Graphic(gui.NewTexture(2, [4]float32{0, 0, 1, 1})).
		Build()
	return g, btn, id, &clicks
}

func buttonColor(t *testing.T, g *gui.Gui, id gui.ID) gui.Color {
	t.Helper()
	ctx := g.Context()
	defer ctx.Close()
	return ctx.Graphic(id).Color()
}

func TestButtonClick(t *testing.T) {
	g, btn, id, clicks := buttonFixture(t)

	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 25, 50)
	if got := buttonColor(t, g, id); got != btn.HoverColor {
		t.Errorf("hover color = %v, want %v", got, btn.HoverColor)
	}
	if cursor, ok := g.CursorChange(); !ok || cursor != gui.CursorPointer {
		t.Errorf("cursor = %v %v, want a pointer request", cursor, ok)
	}

	g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	if got := buttonColor(t, g, id); got != btn.PressedColor {
		t.Errorf("pressed color = %v, want %v", got, btn.PressedColor)
	}

	g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
	if *clicks != 1 {
		t.Errorf("clicks = %d, want 1", *clicks)
	}
	if got := buttonColor(t, g, id); got != btn.HoverColor {
		t.Errorf("color after release = %v, want %v", got, btn.HoverColor)
	}
}

func TestButtonRightClickIgnored(t *testing.T) {
	g, _, _, clicks := buttonFixture(t)

	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 25, 50)
	g.MouseDown(gui.DefaultMouseID, gui.MouseRight)
	g.MouseUp(gui.DefaultMouseID, gui.MouseRight)
	if *clicks != 0 {
		t.Errorf("clicks = %d, want 0 for the right button", *clicks)
	}
}

func TestButtonExitWhilePressedCancelsClick(t *testing.T) {
	g, btn, id, clicks := buttonFixture(t)

	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 25, 50)
	g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	g.MouseMoved(gui.DefaultMouseID, 75, 50)
	if got := buttonColor(t, g, id); got != btn.NormalColor {
		t.Errorf("color after exit = %v, want %v", got, btn.NormalColor)
	}

	// Releasing back over the button must not fire, the press was lost on
	// exit.
	g.MouseMoved(gui.DefaultMouseID, 25, 50)
	g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
	if *clicks != 0 {
		t.Errorf("clicks = %d, want 0 after leaving mid press", *clicks)
	}
}
