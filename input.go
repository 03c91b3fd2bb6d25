package gui

// This file is the host-facing input surface: the embedding event loop
// translates its native events into these calls. Positions are in logical
// pixels, the same space the control rects live in.

// MouseEnter announces a new pointer. The default mouse always exists, so
// entering it is a no-op; any other id claims a slot, recovering the
// click count of a pointer that vanished nearby within the double-click
// window.
func (g *Gui) MouseEnter(id MouseID) {
	if id == DefaultMouseID {
		return
	}
	if getMouse(g.inputs, id) != nil {
		Logger().Error("mouse entered twice", "mouse", uint64(id))
		return
	}
	g.inputs, _ = allocMouse(g.inputs, id, [2]float32{}, false, g.now())
}

// MouseExit announces a pointer leaving. Its hovered control receives an
// Exit, its buttons reset, and the slot is freed but kept around so a
// pointer coming back shortly can recover its click count. The default
// mouse slot itself is never freed.
func (g *Gui) MouseExit(id MouseID) {
	g.lazyUpdate()
	input := getMouse(g.inputs, id)
	if input == nil {
		Logger().Error("exit of an unknown mouse", "mouse", uint64(id))
		return
	}
	input.buttons = MouseButtons{}
	input.downTarget = ID{}
	input.draggingX = false
	input.draggingY = false
	if over := input.currentMouse; !over.IsNil() {
		input.currentMouse = ID{}
		mouse := input.info(MouseExit, MouseLeft)
		g.sendMouseEventTo(over, mouse)
		input = getMouse(g.inputs, id)
		if input == nil {
			return
		}
	}
	input.currentScroll = ID{}
	if id != DefaultMouseID {
		input.used = false
	}
}

// MouseMoved routes a pointer motion: it re-resolves the hovered control
// by hit-testing the active tree, emits Enter and Exit on hover changes,
// and Moved to the hovered control. A motion for an unknown id claims a
// slot first, so hosts that never call MouseEnter still work.
func (g *Gui) MouseMoved(id MouseID, x, y float32) {
	g.lazyUpdate()
	input := getMouse(g.inputs, id)
	if input == nil {
		g.inputs, input = allocMouse(g.inputs, id, [2]float32{x, y}, true, g.now())
	}
	if input.hasPosition {
		input.lastPos = input.position
		input.hasLastPos = true
	}
	input.position = [2]float32{x, y}
	input.hasPosition = true

	if input.buttons.Left.Pressed() && !input.downTarget.IsNil() {
		if abs32(x-input.downPos[0]) >= DragThreshold {
			input.draggingX = true
		}
		if abs32(y-input.downPos[1]) >= DragThreshold {
			input.draggingY = true
		}
	}

	// While the hover is locked the hit test is skipped entirely.
	if !input.currentMouse.IsNil() && input.overIsLocked {
		mouse := input.info(MouseMoved, MouseLeft)
		g.sendMouseEventTo(input.currentMouse, mouse)
		return
	}

	if input.dragging() {
		if target := g.dragTarget(input.downTarget); !target.IsNil() {
			g.switchMouseOver(id, target)
			return
		}
	}

	g.UpdateLayouts()
	currMouse, currScroll := g.hitTest(x, y)
	input = getMouse(g.inputs, id)
	if input == nil {
		return
	}
	input.currentScroll = currScroll
	g.switchMouseOver(id, currMouse)
}

// hitTest descends the active tree front to back, remembering the
// innermost mouse and scroll consumers on the path to the deepest control
// containing the point. A control flagged to block the mouse ends the
// descent.
func (g *Gui) hitTest(x, y float32) (currMouse, currScroll ID) {
	curr := RootID
	for {
		control := g.controls.Get(curr)
		var flags InputFlags
		if control.behavior != nil {
			flags = control.behavior.InputFlags()
		}
		if flags.Contains(InputMouse) {
			currMouse = curr
		}
		if flags.Contains(InputScroll) {
			currScroll = curr
		}
		if flags.Contains(InputBlockMouse) {
			return
		}
		children := g.controls.ActiveChildren(curr)
		descended := false
		for i := len(children) - 1; i >= 0; i-- {
			if g.controls.Get(children[i]).rect.Contains(x, y) {
				curr = children[i]
				descended = true
				break
			}
		}
		if !descended {
			return
		}
	}
}

// dragTarget returns the innermost drag-flagged control among target and
// its ancestors.
func (g *Gui) dragTarget(target ID) ID {
	for curr := target; !curr.IsNil(); curr = g.controls.Parent(curr) {
		control := g.controls.Get(curr)
		if control == nil {
			return ID{}
		}
		if control.behavior != nil && control.behavior.InputFlags().Contains(InputDrag) {
			return curr
		}
	}
	return ID{}
}

// switchMouseOver moves the hover of a pointer to over, sending Exit to
// the previous control and Enter plus Moved to the new one. Entering
// resets the click count, except on the first enter of a recycled slot.
func (g *Gui) switchMouseOver(id MouseID, over ID) {
	input := getMouse(g.inputs, id)
	if input == nil {
		return
	}
	if input.currentMouse == over {
		input.preserved = false
		if !over.IsNil() {
			g.sendMouseEventTo(over, input.info(MouseMoved, MouseLeft))
		}
		return
	}
	if prev := input.currentMouse; !prev.IsNil() {
		g.sendMouseEventTo(prev, input.info(MouseExit, MouseLeft))
		input = getMouse(g.inputs, id)
		if input == nil {
			return
		}
	}
	input.currentMouse = over
	if over.IsNil() {
		return
	}
	if input.preserved {
		input.preserved = false
	} else {
		input.clickCount = 0
	}
	g.sendMouseEventTo(over, input.info(MouseEnter, MouseLeft))
	if input = getMouse(g.inputs, id); input != nil {
		g.sendMouseEventTo(over, input.info(MouseMoved, MouseLeft))
	}
}

// MouseDown routes a button press to the hovered control. It moves the
// focus there first, and a left press updates the click count: within the
// double-click window of the previous down the count increments, past it
// the count restarts at one.
func (g *Gui) MouseDown(id MouseID, button MouseButton) {
	g.lazyUpdate()
	input := getMouse(g.inputs, id)
	if input == nil {
		Logger().Error("button down of an unknown mouse", "mouse", uint64(id))
		return
	}
	input.setButton(button, ButtonPressed)
	if button == MouseLeft {
		input.downPos = input.position
		input.downTarget = input.currentMouse
		input.draggingX = false
		input.draggingY = false
	}
	over := input.currentMouse
	g.setFocus(over)
	input = getMouse(g.inputs, id)
	if input == nil || over.IsNil() {
		return
	}
	if button == MouseLeft {
		now := g.now()
		// A pointer with no down on record counts as within the window, so
		// the very first press already clicks.
		within := input.lastDown.IsZero() || now.Sub(input.lastDown) < DoubleClickWindow
		if within {
			if input.clickCount < 255 {
				input.clickCount++
			}
		} else {
			input.clickCount = 1
		}
		input.lastDown = now
	}
	g.sendMouseEventTo(over, input.info(MouseDown, button))
}

// MouseUp routes a button release to the hovered control. A left release
// also ends any drag in progress.
func (g *Gui) MouseUp(id MouseID, button MouseButton) {
	g.lazyUpdate()
	input := getMouse(g.inputs, id)
	if input == nil {
		Logger().Error("button up of an unknown mouse", "mouse", uint64(id))
		return
	}
	input.setButton(button, ButtonReleased)
	over := input.currentMouse
	if !over.IsNil() {
		g.sendMouseEventTo(over, input.info(MouseUp, button))
		input = getMouse(g.inputs, id)
		if input == nil {
			return
		}
	}
	if button == MouseLeft {
		input.downTarget = ID{}
		input.draggingX = false
		input.draggingY = false
	}
}

// MouseScrollLine routes a wheel scroll measured in lines. Lines are
// converted to logical pixels at 100 physical pixels per line.
func (g *Gui) MouseScrollLine(id MouseID, deltaX, deltaY float32) {
	scale := float32(g.scaleFactor)
	g.mouseScroll(id, [2]float32{deltaX * 100 / scale, deltaY * 100 / scale})
}

// MouseScrollPixel routes a scroll already measured in logical pixels,
// as trackpads report.
func (g *Gui) MouseScrollPixel(id MouseID, deltaX, deltaY float32) {
	g.mouseScroll(id, [2]float32{deltaX, deltaY})
}

func (g *Gui) mouseScroll(id MouseID, delta [2]float32) {
	g.lazyUpdate()
	input := getMouse(g.inputs, id)
	if input == nil {
		Logger().Error("scroll of an unknown mouse", "mouse", uint64(id))
		return
	}
	target := input.currentScroll
	if target.IsNil() {
		return
	}
	g.callEvent(target, func(b Behavior, id ID, ctx *Context) {
		b.OnScrollEvent(delta, id, ctx)
	})
}

// TouchPhase is the lifecycle stage of a touch point.
type TouchPhase uint8

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// Touch routes a touch point as a pointer. Each touch id maps to its own
// mouse id, so simultaneous touches keep independent hover, click count
// and drag state. A start synthesizes enter, move and left down; an end
// synthesizes left up and exit.
func (g *Gui) Touch(phase TouchPhase, touchID uint64, x, y float32) {
	// Touch id 0 must not collide with the default mouse.
	id := MouseID(touchID + 1)
	switch phase {
	case TouchStarted:
		g.MouseEnter(id)
		g.MouseMoved(id, x, y)
		g.MouseDown(id, MouseLeft)
	case TouchMoved:
		g.MouseMoved(id, x, y)
	case TouchEnded:
		g.MouseMoved(id, x, y)
		g.MouseUp(id, MouseLeft)
		g.MouseExit(id)
	case TouchCancelled:
		g.MouseExit(id)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
