package widgets

import (
	"time"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/layouts"
)

// scrollDeceleration is how fast momentum scrolling slows down, in
// pixels per second squared.
const scrollDeceleration = 1000.0

// velocityWindow is how far back drag samples count towards the release
// velocity.
const velocityWindow = 100 * time.Millisecond

type scrollSample struct {
	at  time.Time
	pos [2]float32
}

// ScrollView scrolls the ViewLayout of its control with the wheel or by
// dragging. A released drag keeps scrolling with a linearly decaying
// velocity; a wheel event or a new press stops it immediately.
type ScrollView struct {
	gui.DefaultBehavior

	// View is the layout of the control this behavior is attached to.
	View *layouts.ViewLayout

	samples []scrollSample
	animID  uint32
	hasAnim bool
}

// NewScrollView creates a ScrollView driving the given view layout.
func NewScrollView(view *layouts.ViewLayout) *ScrollView {
	return &ScrollView{View: view}
}

func (s *ScrollView) InputFlags() gui.InputFlags {
	return gui.InputMouse | gui.InputScroll | gui.InputDrag
}

func (s *ScrollView) OnRemove(this gui.ID, ctx *gui.Context) {
	s.cancelMomentum(ctx)
}

func (s *ScrollView) OnScrollEvent(delta [2]float32, this gui.ID, ctx *gui.Context) {
	s.cancelMomentum(ctx)
	s.scrollBy(-delta[0], -delta[1], this, ctx)
}

func (s *ScrollView) OnMouseEvent(mouse gui.MouseInfo, this gui.ID, ctx *gui.Context) {
	switch mouse.Event {
	case gui.MouseDown:
		if mouse.Button != gui.MouseLeft {
			return
		}
		s.cancelMomentum(ctx)
		s.samples = append(s.samples[:0], scrollSample{at: ctx.Now(), pos: mouse.Pos})
		ctx.LockOver(true, mouse.ID)
	case gui.MouseMoved:
		if !mouse.Buttons.Left.Pressed() {
			return
		}
		s.scrollBy(-mouse.Delta[0], -mouse.Delta[1], this, ctx)
		now := ctx.Now()
		s.samples = append(s.samples, scrollSample{at: now, pos: mouse.Pos})
		for len(s.samples) > 1 && now.Sub(s.samples[0].at) > velocityWindow {
			s.samples = s.samples[1:]
		}
	case gui.MouseUp:
		if mouse.Button != gui.MouseLeft {
			return
		}
		ctx.LockOver(false, mouse.ID)
		s.startMomentum(this, ctx)
	case gui.MouseExit:
		s.samples = s.samples[:0]
	}
}

func (s *ScrollView) scrollBy(dx, dy float32, this gui.ID, ctx *gui.Context) {
	pos := s.View.Scroll()
	s.View.SetScroll(pos[0]+dx, pos[1]+dy)
	ctx.DirtyLayout(this)
}

// startMomentum derives the release velocity from the drag samples of the
// last velocityWindow and keeps scrolling with it, decaying linearly to
// zero.
func (s *ScrollView) startMomentum(this gui.ID, ctx *gui.Context) {
	if len(s.samples) < 2 {
		return
	}
	first := s.samples[0]
	last := s.samples[len(s.samples)-1]
	s.samples = s.samples[:0]
	dt := float32(last.at.Sub(first.at).Seconds())
	if dt <= 0 {
		return
	}
	// The content moves opposite the pointer.
	vel := [2]float32{
		-(last.pos[0] - first.pos[0]) / dt,
		-(last.pos[1] - first.pos[1]) / dt,
	}
	speed := abs32(vel[0])
	if abs32(vel[1]) > speed {
		speed = abs32(vel[1])
	}
	if speed <= 0 {
		return
	}

	length := speed / scrollDeceleration / 2.0
	s.hasAnim = true
	s.animID = ctx.AddAnimation(length, func(t, dt float32, ctx *gui.Context) {
		if t >= 1 {
			s.hasAnim = false
		}
		factor := 1 - t
		s.scrollBy(vel[0]*factor*dt, vel[1]*factor*dt, this, ctx)
	})
}

func (s *ScrollView) cancelMomentum(ctx *gui.Context) {
	if s.hasAnim {
		ctx.CancelAnimation(s.animID)
		s.hasAnim = false
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
