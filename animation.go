package gui

import "time"

// AnimationFunc is called on every render tick of a live animation with
// the normalized progress t in [0, 1], the wall-clock delta since the
// previous tick in seconds, and a context for applying its effect. The
// context belongs to the tick; do not retain it.
type AnimationFunc func(t, dt float32, ctx *Context)

type animation struct {
	id     uint32
	length float32
	start  time.Time
	last   time.Time
	f      AnimationFunc
}

// animations is the registry of live parametric animations, advanced on
// each render-context acquisition.
type animations struct {
	nextID uint32
	list   []animation
}

// add registers a callback driven from 0 to 1 over length seconds and
// returns its id. The clock starts on the first tick, not on add.
func (a *animations) add(length float32, f AnimationFunc) uint32 {
	a.nextID++
	a.list = append(a.list, animation{
		id:     a.nextID,
		length: length,
		f:      f,
	})
	return a.nextID
}

// remove cancels the animation with the given id.
func (a *animations) remove(id uint32) {
	for i := range a.list {
		if a.list[i].id == id {
			a.list = append(a.list[:i], a.list[i+1:]...)
			return
		}
	}
}

// advance ticks every animation. The first tick pins the start instant
// and delivers t = 0; later ticks deliver t = elapsed/length clamped to 1
// and drop the animation once it reaches 1.
func (a *animations) advance(now time.Time, ctx *Context) {
	// Callbacks may register new animations; those land on the fresh list
	// and tick for the first time on the next advance.
	list := a.list
	a.list = nil
	var keep []animation
	for i := range list {
		anim := list[i]
		var t, dt float32
		if anim.start.IsZero() {
			anim.start = now
		} else {
			elapsed := float32(now.Sub(anim.start).Seconds())
			if anim.length > 0 {
				t = elapsed / anim.length
			} else {
				t = 1
			}
			if t > 1 {
				t = 1
			}
			dt = float32(now.Sub(anim.last).Seconds())
		}
		anim.last = now
		anim.f(t, dt, ctx)
		if t < 1 {
			keep = append(keep, anim)
		}
	}
	a.list = append(keep, a.list...)
}

// animating reports whether at least one animation is live.
func (a *animations) animating() bool { return len(a.list) > 0 }
