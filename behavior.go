package gui

// InputFlags declare which kinds of input a behavior wants to receive.
// The input router consults them during hit-testing and focus traversal.
type InputFlags uint8

const (
	// InputMouse makes the control a target for mouse enter, exit, moved,
	// down and up events.
	InputMouse InputFlags = 1 << iota
	// InputScroll makes the control a target for scroll events.
	InputScroll
	// InputFocus makes the control reachable by Tab focus traversal.
	InputFocus
	// InputDrag makes the control the forced hover target while a drag
	// that started inside it is in progress.
	InputDrag
	// InputBlockMouse stops the hit-test from descending into children.
	InputBlockMouse
)

// Contains reports whether all bits of other are set in f.
func (f InputFlags) Contains(other InputFlags) bool { return f&other == other }

// Behavior receives the input events of a control.
//
// While one of its methods runs, the behavior is taken out of its control
// slot, so an event dispatched to the same control from inside a callback
// is a no-op instead of a recursion.
//
// Embed DefaultBehavior to implement only the methods of interest.
type Behavior interface {
	// InputFlags reports which events this behavior wants.
	InputFlags() InputFlags

	// OnStart is called once, after the control entered the tree.
	OnStart(this ID, ctx *Context)
	// OnActive is called when the control becomes really active.
	OnActive(this ID, ctx *Context)
	// OnDeactive is called when the control stops being really active.
	OnDeactive(this ID, ctx *Context)
	// OnRemove is called when the control is removed from the tree.
	OnRemove(this ID, ctx *Context)

	// OnEvent receives payloads sent with SendEventTo and scheduled
	// events. The behavior dispatches on the payload's dynamic type.
	OnEvent(event any, this ID, ctx *Context)
	// OnMouseEvent receives mouse events when InputMouse is set.
	OnMouseEvent(mouse MouseInfo, this ID, ctx *Context)
	// OnScrollEvent receives wheel deltas when InputScroll is set.
	OnScrollEvent(delta [2]float32, this ID, ctx *Context)
	// OnFocusChange is called with true/false when the control gains or
	// loses a place in the focus chain.
	OnFocusChange(focus bool, this ID, ctx *Context)
	// OnKeyboardEvent receives character and key events while the control
	// is in the focus chain. Returning false lets the event bubble to the
	// parent.
	OnKeyboardEvent(event KeyboardEvent, this ID, ctx *Context) bool
}

// DefaultBehavior implements Behavior with no-ops. Embed it and override
// the methods of interest.
type DefaultBehavior struct{}

func (DefaultBehavior) InputFlags() InputFlags                           { return 0 }
func (DefaultBehavior) OnStart(ID, *Context)                             {}
func (DefaultBehavior) OnActive(ID, *Context)                            {}
func (DefaultBehavior) OnDeactive(ID, *Context)                          {}
func (DefaultBehavior) OnRemove(ID, *Context)                            {}
func (DefaultBehavior) OnEvent(any, ID, *Context)                        {}
func (DefaultBehavior) OnMouseEvent(MouseInfo, ID, *Context)             {}
func (DefaultBehavior) OnScrollEvent([2]float32, ID, *Context)           {}
func (DefaultBehavior) OnFocusChange(bool, ID, *Context)                 {}
func (DefaultBehavior) OnKeyboardEvent(KeyboardEvent, ID, *Context) bool { return false }

// Layout resolves the geometry of a control's children.
type Layout interface {
	// ComputeMinSize returns the min size of the control, computed from
	// the min sizes of its children. It runs bottom-up over the active
	// tree.
	ComputeMinSize(this ID, ctx *MinSizeContext) [2]float32
	// UpdateLayouts places the active children by calling SetDesignedRect
	// on each one. It runs top-down over the active tree.
	UpdateLayouts(this ID, ctx *LayoutContext)
}

// DefaultLayout places each child by the anchors and margins of its rect:
// child.rect[i] = parent.pos[i%2] + parent.size[i%2]*anchors[i] + margins[i].
// Its own min size is zero.
type DefaultLayout struct{}

func (DefaultLayout) ComputeMinSize(ID, *MinSizeContext) [2]float32 {
	return [2]float32{}
}

func (DefaultLayout) UpdateLayouts(this ID, ctx *LayoutContext) {
	rect := ctx.Rect(this)
	size := [2]float32{rect[2] - rect[0], rect[3] - rect[1]}
	pos := [2]float32{rect[0], rect[1]}
	for _, child := range ctx.ActiveChildren(this) {
		layouting := ctx.Layouting(child)
		var newRect [4]float32
		for i := 0; i < 4; i++ {
			newRect[i] = pos[i%2] + size[i%2]*layouting.Anchors[i] + layouting.Margins[i]
		}
		ctx.SetDesignedRect(child, newRect)
	}
}
