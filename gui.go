package gui

import (
	"reflect"
	"time"
	"unicode"

	"github.com/gogpu/gui/text"
)

// Gui owns the control tree and everything attached to it: the font set,
// the input router state, the focus chain, the scheduled-event queue, the
// animation registry and the type-keyed resource bag.
//
// Gui is single-threaded and cooperative: the host event loop feeds events
// in through the Mouse*, Key* and Touch methods, drains timers with
// HandleScheduledEvent, and draws through a render context. No method
// blocks and no work happens on background goroutines.
type Gui struct {
	controls  Controls
	fonts     *text.Fonts
	modifiers Modifiers
	resources map[reflect.Type]any

	redraw       bool
	changeCursor *CursorIcon

	dirtyLayouts    []ID
	scheduledEvents scheduledQueue
	lazyEvents      []lazyEvent
	animations      animations

	inputs       []mouseInput
	currentFocus ID

	scaleFactor float64

	// now is the clock; tests replace it to drive timed behavior.
	now func() time.Time
}

// NewGui creates a Gui whose root control covers [0, 0, width, height].
func NewGui(width, height float32, scaleFactor float64, fonts *text.Fonts) *Gui {
	g := &Gui{
		controls:        newControls([4]float32{0, 0, width, height}),
		fonts:           fonts,
		resources:       make(map[reflect.Type]any),
		scheduledEvents: newScheduledQueue(),
		inputs:          []mouseInput{{id: DefaultMouseID, used: true}},
		scaleFactor:     scaleFactor,
		redraw:          true,
		now:             time.Now,
	}
	g.dirtyLayout(RootID)
	return g
}

// SetClock replaces the time source of the Gui, for deterministic tests
// and input replays. Nil restores the wall clock.
func (g *Gui) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// SetResource stores a consumer singleton, retrievable by its type from
// any context via GetResource.
func SetResource[T any](g *Gui, value T) {
	g.resources[reflect.TypeOf((*T)(nil))] = value
}

// GetResource returns the singleton of type T stored with SetResource.
// It panics when no value of that type was stored; that is a programmer
// error, the same as a wrong map key.
func GetResource[T any](g *Gui) T {
	value, ok := g.resources[reflect.TypeOf((*T)(nil))]
	if !ok {
		panic("gui: resource was not set beforehand: " + reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return value.(T)
}

// ResourceFrom is GetResource reachable from an event callback.
func ResourceFrom[T any](ctx *Context) T { return GetResource[T](ctx.gui) }

// Fonts returns the font set.
func (g *Gui) Fonts() *text.Fonts { return g.fonts }

// Controls exposes the control store for read access.
func (g *Gui) Controls() *Controls { return &g.controls }

// ScaleFactor returns the scale applied when rendering.
func (g *Gui) ScaleFactor() float64 { return g.scaleFactor }

// SetScaleFactor sets the scale applied when rendering, for dpi
// awareness.
func (g *Gui) SetScaleFactor(scaleFactor float64) { g.scaleFactor = scaleFactor }

// SetRootRect resizes the root control. Call it when the host window
// resizes. The rect is in the form [x0, y0, x1, y1].
func (g *Gui) SetRootRect(rect [4]float32) {
	g.controls.Get(RootID).rect.SetRect(rect)
	g.dirtyLayout(RootID)
}

// RenderIsDirty reports whether anything changed since the last render
// context was taken.
func (g *Gui) RenderIsDirty() bool { return g.redraw }

// CursorChange returns and clears the pending cursor icon request, if a
// behavior made one since the last call.
func (g *Gui) CursorChange() (CursorIcon, bool) {
	if g.changeCursor == nil {
		return CursorDefault, false
	}
	cursor := *g.changeCursor
	g.changeCursor = nil
	return cursor, true
}

// Focus returns the currently focused control, or the zero ID.
func (g *Gui) Focus() ID { return g.currentFocus }

// Context returns a handle for reading and mutating the tree. The caller
// must Close it.
func (g *Gui) Context() *Context {
	g.lazyUpdate()
	return newContext(g)
}

// ReserveID hands out an id for a control to be created later with
// CreateControlReserved.
func (g *Gui) ReserveID() ID { return g.controls.Reserve() }

// CreateControl returns a builder for a new control, applied immediately
// on Build.
func (g *Gui) CreateControl() ControlBuilder {
	return g.CreateControlReserved(g.controls.Reserve())
}

// CreateControlReserved is CreateControl for an id previously obtained
// from ReserveID.
func (g *Gui) CreateControlReserved(id ID) ControlBuilder {
	return newControlBuilder(id, func(id ID, build controlBuild) ID {
		g.buildControl(id, build)
		return id
	})
}

func (g *Gui) buildControl(id ID, build controlBuild) {
	// The focus flag only becomes true through setFocus, after the
	// control started.
	focus := build.focus
	g.controls.addBuilded(id, Control{
		rect:     build.rect,
		graphic:  build.graphic,
		behavior: build.behavior,
		layout:   build.layout,
		parent:   build.parent,
		active:   build.active,
	})
	g.startControl(id)
	if focus {
		g.setFocus(id)
	}
}

func (g *Gui) startControl(id ID) {
	entry := g.controls.entry(id)
	if entry == nil {
		Logger().Info("starting a stale control", "id", id.String())
		return
	}
	switch entry.state {
	case stateFree, stateReserved:
		panic("gui: started a control that was not built: " + id.String())
	case stateStarted:
		Logger().Debug("double start", "id", id.String())
	case stateBuilded:
		control := &entry.control
		if parent := g.controls.entry(control.parent); parent != nil && parent.state != stateStarted {
			Logger().Debug("delayed start, parent not started yet", "id", id.String())
			return
		}
		Logger().Debug("add control", "id", id.String(), "parent", control.parent.String())
		g.dirtyLayout(id)
		if control.behavior != nil {
			g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnStart, id: id})
		}
		parentReallyActive := control.parent.IsNil()
		if !parentReallyActive {
			if parent := g.controls.Get(control.parent); parent != nil {
				parentReallyActive = parent.reallyActive
			}
		}
		if control.active && parentReallyActive {
			control.reallyActive = true
			g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnActive, id: id})
		}
		entry.state = stateStarted

		children := make([]ID, len(control.children))
		copy(children, control.children)
		for _, child := range children {
			g.startControl(child)
		}
	}
}

// ActiveControl sets the active flag of a control. If every ancestor is
// active too, the whole subtree becomes really active and OnActive fires
// on the next lazy update.
func (g *Gui) ActiveControl(id ID) { g.activeControl(id) }

func (g *Gui) activeControl(id ID) {
	control := g.controls.Get(id)
	if control == nil || control.active {
		return
	}
	control.active = true

	parent := control.parent
	if !parent.IsNil() {
		g.dirtyLayout(parent)
	}
	parentReallyActive := parent.IsNil()
	if !parentReallyActive {
		parentReallyActive = g.controls.Get(parent).reallyActive
	}
	if !parentReallyActive {
		return
	}
	stack := []ID{id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := g.controls.ActiveChildren(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		Logger().Debug("really active", "id", id.String())
		g.controls.Get(id).reallyActive = true
		g.cancelLazy(lazyEvent{kind: lazyOnDeactive, id: id})
		g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnActive, id: id})
	}
}

// DeactiveControl clears the active flag of a control, deactivating its
// whole really-active subtree. The hover and focus references into the
// subtree are dropped, with a synthesized Exit for hovered controls.
func (g *Gui) DeactiveControl(id ID) { g.deactiveControl(id) }

func (g *Gui) deactiveControl(id ID) {
	control := g.controls.Get(id)
	if control == nil || !control.active {
		return
	}
	control.active = false

	parent := control.parent
	if !parent.IsNil() {
		g.dirtyLayout(parent)
	}
	parentReallyActive := parent.IsNil()
	if !parentReallyActive {
		parentReallyActive = g.controls.Get(parent).reallyActive
	}
	if !parentReallyActive {
		return
	}
	stack := []ID{id}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := g.controls.ActiveChildren(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}

		for i := range g.inputs {
			if g.inputs[i].currentScroll == id {
				g.inputs[i].currentScroll = ID{}
			}
			if g.inputs[i].currentMouse == id {
				g.UpdateLayouts()
				mouse := g.inputs[i].info(MouseExit, MouseLeft)
				g.callEventNoLazy(id, func(b Behavior, id ID, ctx *Context) {
					b.OnMouseEvent(mouse, id, ctx)
				})
				g.inputs[i].currentMouse = ID{}
			}
		}
		if g.currentFocus == id {
			g.setFocus(ID{})
		}
		Logger().Debug("really deactive", "id", id.String())
		g.controls.Get(id).reallyActive = false
		g.cancelLazy(lazyEvent{kind: lazyOnActive, id: id})
		g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnDeactive, id: id})
	}
}

func (g *Gui) cancelLazy(event lazyEvent) {
	for i := range g.lazyEvents {
		if g.lazyEvents[i] == event {
			g.lazyEvents = append(g.lazyEvents[:i], g.lazyEvents[i+1:]...)
			return
		}
	}
}

// RemoveControl removes a control and all of its children on the next
// lazy update, invalidating every id that referenced them.
func (g *Gui) RemoveControl(id ID) {
	g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnRemove, id: id, dirtyParent: true})
}

// Reparent unlinks a control from its current parent and links it at the
// end of the children of another. The control is deactivated for the move
// and reactivated under the new parent, so the usual activation events
// fire over its subtree and hover or focus inside it is dropped.
func (g *Gui) Reparent(id, parent ID) error {
	g.lazyUpdate()
	entry := g.controls.entry(id)
	if entry == nil {
		return ErrStaleID
	}
	if entry.state != stateStarted {
		return ErrNotBuilded
	}
	target := g.controls.entry(parent)
	if target == nil {
		return ErrStaleID
	}
	if target.state != stateStarted {
		return ErrNotBuilded
	}
	if parent == id || g.controls.IsDescendant(id, parent) {
		return ErrHasParent
	}
	control := &entry.control
	if parent == control.parent {
		return nil
	}

	wasActive := control.active
	if wasActive {
		g.deactiveControl(id)
	}
	prev := control.parent
	g.controls.relink(id, parent)
	if !prev.IsNil() {
		g.dirtyLayout(prev)
	}
	g.dirtyLayout(parent)
	if wasActive {
		g.activeControl(id)
	}
	return nil
}

// ClearControls removes every control except the root.
func (g *Gui) ClearControls() {
	g.lazyUpdate()
	g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnRemove, id: RootID})
	g.lazyUpdate()
}

// SendEvent applies an event payload to the Gui. Payloads of the types in
// event.go act on the tree; anything else is discarded.
func (g *Gui) SendEvent(event any) { g.sendEvent(event) }

func (g *Gui) sendEvent(event any) {
	switch e := event.(type) {
	case ActiveControl:
		g.activeControl(e.ID)
	case DeactiveControl:
		g.deactiveControl(e.ID)
	case RemoveControl:
		g.RemoveControl(e.ID)
	case StartControl:
		g.startControl(e.ID)
	case RequestFocus:
		g.setFocus(e.ID)
	case SetLockOver:
		if input := getMouse(g.inputs, e.Mouse); input != nil {
			input.overIsLocked = e.Lock
		}
	case CursorIcon:
		cursor := e
		g.changeCursor = &cursor
	case buildEvent:
		g.buildControl(e.id, e.build)
	}
}

// SendEventTo dispatches an event payload to the behavior of a control.
// A stale or removed target is a logged no-op.
func (g *Gui) SendEventTo(id ID, event any) {
	g.callEvent(id, func(b Behavior, id ID, ctx *Context) {
		b.OnEvent(event, id, ctx)
	})
}

// SendEventToScheduled schedules an event payload for the behavior of a
// control at instant, returning an id usable with CancelScheduledEvent.
func (g *Gui) SendEventToScheduled(id ID, event any, instant time.Time) uint64 {
	return g.scheduledEvents.push(id, event, instant)
}

// CancelScheduledEvent cancels a pending scheduled event. Cancelling an
// already dispatched or unknown id is a no-op.
func (g *Gui) CancelScheduledEvent(eventID uint64) {
	g.scheduledEvents.remove(eventID)
}

// HandleScheduledEvent dispatches every scheduled event whose instant has
// passed, in (instant, insertion) order, and returns the instant of the
// next pending event so the host can configure its event-loop wait.
func (g *Gui) HandleScheduledEvent() (time.Time, bool) {
	for {
		next, ok := g.scheduledEvents.next()
		if !ok {
			return time.Time{}, false
		}
		if g.now().Before(next) {
			return next, true
		}
		event := g.scheduledEvents.pop()
		g.SendEventTo(event.target, event.payload)
	}
}

// AddAnimation registers a callback driven with a parameter going from 0
// to 1 over length seconds, advanced on each render. It returns an id for
// CancelAnimation. The animation is dropped when the parameter reaches 1.
func (g *Gui) AddAnimation(length float32, f AnimationFunc) uint32 {
	g.redraw = true
	return g.animations.add(length, f)
}

// CancelAnimation drops a live animation.
func (g *Gui) CancelAnimation(id uint32) { g.animations.remove(id) }

// IsAnimating reports whether at least one animation is live, in which
// case the host should keep scheduling redraws.
func (g *Gui) IsAnimating() bool { return g.animations.animating() }

func (g *Gui) contextDrop(events []any, eventsTo []targetedEvent, dirtys []ID, renderDirty bool) {
	if renderDirty {
		g.redraw = true
	}
	for _, event := range events {
		g.sendEvent(event)
	}
	for _, e := range eventsTo {
		g.SendEventTo(e.id, e.event)
	}
	for _, dirty := range dirtys {
		g.dirtyLayout(dirty)
	}
}

// callEvent runs f against the behavior of id inside a fresh context. The
// behavior is taken out of its slot for the duration of the call, so a
// dispatch back to the same control from inside f is a no-op.
func (g *Gui) callEvent(id ID, f func(Behavior, ID, *Context)) {
	g.lazyUpdate()
	g.callEventNoLazy(id, f)
}

// callEventNoLazy is callEvent without the leading lazy update. It is the
// variant used from inside the lazy update itself.
func (g *Gui) callEventNoLazy(id ID, f func(Behavior, ID, *Context)) {
	control := g.controls.Get(id)
	if control == nil {
		Logger().Info("event sent to a removed control", "id", id.String())
		return
	}
	behavior := control.behavior
	if behavior == nil {
		return
	}
	control.behavior = nil
	ctx := newContext(g)
	f(behavior, id, ctx)
	// The behavior goes back before the context drains, so effects of the
	// callback can reach the control itself.
	if control := g.controls.Get(id); control != nil {
		control.behavior = behavior
	}
	ctx.Close()
}

// callEventChain runs f against the behavior of id and, while f returns
// false, against each ancestor in turn. It reports whether any behavior
// handled the event.
func (g *Gui) callEventChain(id ID, f func(Behavior, ID, *Context) bool) bool {
	handled := false
	g.callEvent(id, func(b Behavior, id ID, ctx *Context) {
		handled = f(b, id, ctx)
	})
	if handled {
		return true
	}
	parent := g.controls.Parent(id)
	if parent.IsNil() {
		return false
	}
	return g.callEventChain(parent, f)
}

func (g *Gui) sendMouseEventTo(id ID, mouse MouseInfo) {
	g.callEvent(id, func(b Behavior, id ID, ctx *Context) {
		b.OnMouseEvent(mouse, id, ctx)
	})
}

// SetModifiers records the keyboard modifier state.
func (g *Gui) SetModifiers(modifiers Modifiers) { g.modifiers = modifiers }

// ReceivedCharacter delivers a typed character to the focus chain.
// Control characters are ignored.
func (g *Gui) ReceivedCharacter(ch rune) {
	g.lazyUpdate()
	if g.currentFocus.IsNil() || unicode.IsControl(ch) {
		return
	}
	event := KeyboardEvent{Kind: KeyChar, Char: ch}
	g.callEventChain(g.currentFocus, func(b Behavior, id ID, ctx *Context) bool {
		return b.OnKeyboardEvent(event, id, ctx)
	})
}

// KeyDown delivers a key press to the focus chain. An unhandled Tab moves
// the focus to the next focusable control in preorder, or the previous
// one with shift held, wrapping around the tree.
func (g *Gui) KeyDown(key Key) {
	g.lazyUpdate()
	if g.currentFocus.IsNil() {
		return
	}
	event := KeyboardEvent{Kind: KeyPressed, Key: key}
	handled := g.callEventChain(g.currentFocus, func(b Behavior, id ID, ctx *Context) bool {
		return b.OnKeyboardEvent(event, id, ctx)
	})
	if !handled && key == KeyTab {
		if next := g.nextFocus(g.currentFocus, !g.modifiers.Shift); !next.IsNil() {
			g.setFocus(next)
		}
	}
}

// KeyUp delivers a key release to the focus chain.
func (g *Gui) KeyUp(key Key) {
	g.lazyUpdate()
	if g.currentFocus.IsNil() {
		return
	}
	event := KeyboardEvent{Kind: KeyReleased, Key: key}
	g.callEventChain(g.currentFocus, func(b Behavior, id ID, ctx *Context) bool {
		return b.OnKeyboardEvent(event, id, ctx)
	})
}

// nextFocus returns the focusable control after (or before) curr in a
// cyclic preorder walk of the active tree.
func (g *Gui) nextFocus(curr ID, forward bool) ID {
	order := g.controls.ActivePreorder(RootID)
	start := -1
	for i, id := range order {
		if id == curr {
			start = i
			break
		}
	}
	if start < 0 {
		start = 0
	}
	n := len(order)
	for step := 1; step < n; step++ {
		var i int
		if forward {
			i = (start + step) % n
		} else {
			i = ((start-step)%n + n) % n
		}
		id := order[i]
		control := g.controls.Get(id)
		if control != nil && control.behavior != nil &&
			control.behavior.InputFlags().Contains(InputFocus) {
			return id
		}
	}
	return ID{}
}

// SetFocus moves the keyboard focus to id, or clears it for the zero ID.
// Focusing a control that is not really active clears the focus instead.
func (g *Gui) SetFocus(id ID) { g.setFocus(id) }

func (g *Gui) setFocus(id ID) {
	g.lazyUpdate()
	if !id.IsNil() {
		control := g.controls.Get(id)
		if control == nil || !control.reallyActive {
			Logger().Info("focus on an inactive control, unfocusing", "id", id.String())
			id = ID{}
		}
	}
	if id == g.currentFocus {
		return
	}

	prev, next := g.currentFocus, id
	switch {
	case !prev.IsNil() && !next.IsNil():
		g.currentFocus = next
		lca := g.controls.LowestCommonAncestor(prev, next)

		curr := prev
		if curr != lca {
			for !curr.IsNil() {
				g.callEvent(curr, focusChange(false))
				g.controls.Get(curr).focus = false
				curr = g.controls.Parent(curr)
				if curr == lca {
					break
				}
			}
		}
		for curr := next; !curr.IsNil(); curr = g.controls.Parent(curr) {
			g.callEvent(curr, focusChange(true))
			g.controls.Get(curr).focus = true
		}
	case !prev.IsNil():
		g.currentFocus = ID{}
		for curr := prev; !curr.IsNil(); curr = g.controls.Parent(curr) {
			g.callEvent(curr, focusChange(false))
			g.controls.Get(curr).focus = false
		}
	case !next.IsNil():
		g.currentFocus = next
		for curr := next; !curr.IsNil(); curr = g.controls.Parent(curr) {
			g.callEvent(curr, focusChange(true))
			g.controls.Get(curr).focus = true
		}
	}
}

func focusChange(focus bool) func(Behavior, ID, *Context) {
	return func(b Behavior, id ID, ctx *Context) {
		b.OnFocusChange(focus, id, ctx)
	}
}

// dirtyLayout marks a control for the next layout pass and requests a
// redraw.
func (g *Gui) dirtyLayout(id ID) {
	g.dirtyLayouts = append(g.dirtyLayouts, id)
	g.redraw = true
}

// lazyUpdate drains the pending lifecycle effects (start, active,
// deactive, remove) in FIFO order, interleaving layout updates, until the
// queue stays empty.
func (g *Gui) lazyUpdate() {
	for {
		for len(g.lazyEvents) > 0 {
			event := g.lazyEvents[0]
			g.lazyEvents = g.lazyEvents[1:]
			switch event.kind {
			case lazyOnStart:
				if g.controls.Get(event.id) == nil {
					Logger().Info("starting a control already removed", "id", event.id.String())
					continue
				}
				g.callEventNoLazy(event.id, func(b Behavior, id ID, ctx *Context) {
					b.OnStart(id, ctx)
				})
			case lazyOnRemove:
				g.applyRemove(event.id, event.dirtyParent)
			case lazyOnActive:
				control := g.controls.Get(event.id)
				if control == nil {
					Logger().Info("activating a control already removed", "id", event.id.String())
					continue
				}
				g.UpdateLayouts()
				// The layout update may have deactivated it meanwhile.
				if !g.controls.Get(event.id).reallyActive {
					continue
				}
				g.callEventNoLazy(event.id, func(b Behavior, id ID, ctx *Context) {
					b.OnActive(id, ctx)
				})
				stack := g.controls.ActiveChildren(event.id)
				reverseIDs(stack)
				for len(stack) > 0 {
					id := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if control := g.controls.Get(id); control != nil && !control.reallyActive {
						children := g.controls.ActiveChildren(id)
						for i := len(children) - 1; i >= 0; i-- {
							stack = append(stack, children[i])
						}
						control.reallyActive = true
						g.callEventNoLazy(id, func(b Behavior, id ID, ctx *Context) {
							b.OnActive(id, ctx)
						})
					}
				}
			case lazyOnDeactive:
				control := g.controls.Get(event.id)
				if control == nil {
					Logger().Info("deactivating a control already removed", "id", event.id.String())
					continue
				}
				g.UpdateLayouts()
				// The layout update may have reactivated it meanwhile.
				if g.controls.Get(event.id).reallyActive {
					continue
				}
				g.callEventNoLazy(event.id, func(b Behavior, id ID, ctx *Context) {
					b.OnDeactive(id, ctx)
				})
			}
		}

		g.UpdateLayouts()

		if len(g.lazyEvents) == 0 {
			return
		}
		Logger().Debug("lazy update is looping")
	}
}

// applyRemove performs the queued removal of a control subtree. Removing
// the root keeps the root itself and drops only its children.
func (g *Gui) applyRemove(id ID, dirtyParentLayout bool) {
	control := g.controls.Get(id)
	if control == nil {
		Logger().Info("removing a control already removed", "id", id.String())
		return
	}

	if control.active {
		control.active = id == RootID
		if dirtyParentLayout && !control.parent.IsNil() {
			g.dirtyLayout(control.parent)
		}
	}

	if parent := g.controls.Get(control.parent); parent != nil {
		for i, child := range parent.children {
			if child == id {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}

	var roots []ID
	if id == RootID {
		roots = g.controls.Children(RootID)
	} else {
		roots = []ID{id}
	}

	stack := make([]ID, len(roots))
	copy(stack, roots)
	reverseIDs(stack)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := g.controls.Children(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}

		for i := range g.inputs {
			if g.inputs[i].currentMouse == id {
				g.inputs[i].currentMouse = ID{}
			}
			if g.inputs[i].currentScroll == id {
				g.inputs[i].currentScroll = ID{}
			}
			if g.inputs[i].downTarget == id {
				if g.inputs[i].dragging() {
					Logger().Warn("drag target removed mid-drag", "id", id.String())
				}
				g.inputs[i].downTarget = ID{}
				g.inputs[i].draggingX = false
				g.inputs[i].draggingY = false
			}
		}
		if g.currentFocus == id {
			for curr := id; !curr.IsNil(); curr = g.controls.Parent(curr) {
				g.controls.Get(curr).focus = false
			}
			g.currentFocus = ID{}
		}

		if control := g.controls.Get(id); control != nil && control.reallyActive {
			g.UpdateLayouts()
			g.callEventNoLazy(id, func(b Behavior, id ID, ctx *Context) {
				b.OnRemove(id, ctx)
			})
		}
	}

	stack = stack[:0]
	if id == RootID {
		stack = append(stack, g.controls.Children(RootID)...)
		g.controls.Get(RootID).children = nil
	} else {
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := g.controls.Children(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		g.controls.Remove(id)
	}
}

func reverseIDs(ids []ID) {
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
}
