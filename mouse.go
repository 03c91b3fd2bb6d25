package gui

import "time"

// MouseID distinguishes pointers when more than one is active, as with
// multi-touch. The default mouse has id 0 and always exists; touch points
// get their own ids.
type MouseID uint64

// DefaultMouseID is the id of the default mouse.
const DefaultMouseID MouseID = 0

// DoubleClickWindow is how long after a left down a second down still
// increments the click count.
const DoubleClickWindow = 500 * time.Millisecond

// DragThreshold is the per-axis motion, in pixels, after which a held
// left button becomes a drag.
const DragThreshold = 20.0

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseOther
)

// ButtonState is the up/down state of a button.
type ButtonState uint8

const (
	ButtonReleased ButtonState = iota
	ButtonPressed
)

// Pressed reports whether the state is ButtonPressed.
func (s ButtonState) Pressed() bool { return s == ButtonPressed }

// MouseButtons is a snapshot of the three tracked button states.
type MouseButtons struct {
	Left   ButtonState
	Right  ButtonState
	Middle ButtonState
}

// MouseEventKind is the kind of a mouse event delivered to a behavior.
type MouseEventKind uint8

const (
	// MouseEnter is sent when the pointer starts hovering the control.
	MouseEnter MouseEventKind = iota
	// MouseExit is sent when the pointer stops hovering the control.
	MouseExit
	// MouseMoved is sent when the pointer moves over the control.
	MouseMoved
	// MouseDown is sent when a button is pressed over the control.
	MouseDown
	// MouseUp is sent when a button is released over the control.
	MouseUp
)

// MouseInfo is the payload of a mouse event.
type MouseInfo struct {
	ID    MouseID
	Event MouseEventKind
	// Button is meaningful for MouseDown and MouseUp.
	Button MouseButton
	// Pos is the current pointer position.
	Pos [2]float32
	// Buttons is the button snapshot at the time of the event.
	Buttons MouseButtons
	// Delta is the motion since the previous position, or zero when the
	// previous position is unknown.
	Delta [2]float32
	// ClickCount counts consecutive left clicks within the double-click
	// window. See Click.
	ClickCount uint8
}

// Click reports whether this event completes a click: a left button
// release with a live click count.
func (m MouseInfo) Click() bool {
	return m.Event == MouseUp && m.Button == MouseLeft && m.ClickCount > 0
}

// mouseInput is the per-pointer state tracked by the input router.
type mouseInput struct {
	id MouseID
	// used marks the slot as belonging to a live pointer. Freed slots stay
	// in the array so a touch id that vanishes and reappears within the
	// double-click window can recover its click count.
	used bool

	position    [2]float32
	hasPosition bool
	lastPos     [2]float32
	hasLastPos  bool

	buttons    MouseButtons
	clickCount uint8
	lastDown   time.Time
	// preserved marks a recycled slot whose click count must survive the
	// first enter.
	preserved bool

	// downPos and downTarget are recorded on left down for drag
	// detection.
	downPos    [2]float32
	downTarget ID
	draggingX  bool
	draggingY  bool

	overIsLocked  bool
	currentMouse  ID
	currentScroll ID
}

func (m *mouseInput) info(event MouseEventKind, button MouseButton) MouseInfo {
	var delta [2]float32
	if m.hasPosition && m.hasLastPos {
		delta = [2]float32{
			m.position[0] - m.lastPos[0],
			m.position[1] - m.lastPos[1],
		}
	}
	return MouseInfo{
		ID:         m.id,
		Event:      event,
		Button:     button,
		Pos:        m.position,
		Buttons:    m.buttons,
		Delta:      delta,
		ClickCount: m.clickCount,
	}
}

func (m *mouseInput) dragging() bool { return m.draggingX || m.draggingY }

// setButton updates the snapshot for one button.
func (m *mouseInput) setButton(button MouseButton, state ButtonState) {
	switch button {
	case MouseLeft:
		m.buttons.Left = state
	case MouseRight:
		m.buttons.Right = state
	case MouseMiddle:
		m.buttons.Middle = state
	}
}

// getMouse finds the live slot for id.
func getMouse(inputs []mouseInput, id MouseID) *mouseInput {
	for i := range inputs {
		if inputs[i].used && inputs[i].id == id {
			return &inputs[i]
		}
	}
	return nil
}

// allocMouse claims a slot for a new pointer id.
//
// A freed slot whose last down is still within the double-click window and
// whose last position is nearest to the new pointer is preferred, keeping
// its click count, so a lifted touch that comes back counts as a double
// click. Failing that, a slot outside the window is recycled with a fresh
// count, and failing that a new slot is appended.
// When the new position is unknown, as for a bare enter, the freed slot
// with the most recent down wins instead.
func allocMouse(inputs []mouseInput, id MouseID, pos [2]float32, hasPos bool, now time.Time) ([]mouseInput, *mouseInput) {
	best := -1
	var bestDist float32
	var bestDown time.Time
	for i := range inputs {
		in := &inputs[i]
		if in.used || in.lastDown.IsZero() || now.Sub(in.lastDown) >= DoubleClickWindow {
			continue
		}
		if hasPos {
			dx := in.lastPos[0] - pos[0]
			dy := in.lastPos[1] - pos[1]
			dist := dx*dx + dy*dy
			if best < 0 || dist < bestDist {
				best = i
				bestDist = dist
			}
		} else if best < 0 || in.lastDown.After(bestDown) {
			best = i
			bestDown = in.lastDown
		}
	}
	if best >= 0 {
		in := &inputs[best]
		count := in.clickCount
		lastDown := in.lastDown
		*in = mouseInput{id: id, used: true, clickCount: count, lastDown: lastDown, preserved: true}
		return inputs, in
	}
	for i := range inputs {
		if !inputs[i].used {
			inputs[i] = mouseInput{id: id, used: true}
			return inputs, &inputs[i]
		}
	}
	inputs = append(inputs, mouseInput{id: id, used: true})
	return inputs, &inputs[len(inputs)-1]
}
