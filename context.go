package gui

import (
	"time"

	"github.com/gogpu/gui/text"
)

// Context is the handle behaviors use to read and mutate the tree during
// an event callback. Tree-shape effects (activate, deactivate, remove,
// focus, new controls) are buffered and applied when the context closes,
// strictly after the callback returns; geometry and graphic mutations take
// effect immediately.
//
// A Context obtained from Gui.Context must be closed by the caller.
// Contexts handed to behavior callbacks are closed by the dispatcher.
type Context struct {
	gui *Gui

	events      []any
	eventsTo    []targetedEvent
	dirtys      []ID
	renderDirty bool
}

type targetedEvent struct {
	id    ID
	event any
}

func newContext(gui *Gui) *Context {
	return &Context{gui: gui}
}

// Close drains the buffered events and dirty marks back to the Gui.
func (c *Context) Close() {
	c.gui.contextDrop(c.events, c.eventsTo, c.dirtys, c.renderDirty)
	c.events = nil
	c.eventsTo = nil
	c.dirtys = nil
	c.renderDirty = false
}

// CreateControl reserves an id and returns a builder for a new control.
// The control enters the tree when the context closes.
func (c *Context) CreateControl() ControlBuilder {
	id := c.gui.controls.Reserve()
	return newControlBuilder(id, func(id ID, build controlBuild) ID {
		c.events = append(c.events, buildEvent{id: id, build: build})
		return id
	})
}

// Modifiers returns the current keyboard modifier state.
func (c *Context) Modifiers() Modifiers { return c.gui.modifiers }

// Fonts returns the font set of the Gui.
func (c *Context) Fonts() *text.Fonts { return c.gui.fonts }

// ScaleFactor returns the current scale factor of the Gui.
func (c *Context) ScaleFactor() float64 { return c.gui.scaleFactor }

// Now returns the Gui's notion of the current instant.
func (c *Context) Now() time.Time { return c.gui.now() }

// SendEvent queues an event for the Gui. Payloads of the types in
// event.go act on the Gui itself; anything else is discarded.
func (c *Context) SendEvent(event any) {
	c.events = append(c.events, event)
}

// SendEventTo queues an event for the behavior of the given control.
func (c *Context) SendEventTo(id ID, event any) {
	c.eventsTo = append(c.eventsTo, targetedEvent{id: id, event: event})
}

// SendEventToScheduled schedules an event for the behavior of the given
// control at instant and returns the schedule id, usable with
// Gui.CancelScheduledEvent.
func (c *Context) SendEventToScheduled(id ID, event any, instant time.Time) uint64 {
	return c.gui.SendEventToScheduled(id, event, instant)
}

// CancelScheduledEvent cancels a pending scheduled event.
func (c *Context) CancelScheduledEvent(eventID uint64) {
	c.gui.CancelScheduledEvent(eventID)
}

// AddAnimation registers an animation; see Gui.AddAnimation.
func (c *Context) AddAnimation(length float32, f AnimationFunc) uint32 {
	return c.gui.AddAnimation(length, f)
}

// CancelAnimation drops a live animation.
func (c *Context) CancelAnimation(id uint32) {
	c.gui.CancelAnimation(id)
}

// Layouting returns the mutable rect of a control. Mutations through it
// do not mark anything dirty; prefer the setter methods.
func (c *Context) Layouting(id ID) *Rect {
	return &c.gui.controls.Get(id).rect
}

// DirtyLayout marks the layout of a control dirty. Applied on close.
func (c *Context) DirtyLayout(id ID) {
	for _, d := range c.dirtys {
		if d == id {
			return
		}
	}
	c.dirtys = append(c.dirtys, id)
}

// Rect returns the resolved rect of a control as [x0, y0, x1, y1].
func (c *Context) Rect(id ID) [4]float32 { return c.gui.controls.Get(id).rect.Rect() }

// Size returns the resolved size of a control.
func (c *Context) Size(id ID) [2]float32 { return c.gui.controls.Get(id).rect.Size() }

// Margins returns the margins of a control.
func (c *Context) Margins(id ID) [4]float32 { return c.gui.controls.Get(id).rect.Margins }

// SetMargins sets the margins of a control and dirties its layout.
func (c *Context) SetMargins(id ID, margins [4]float32) {
	c.gui.controls.Get(id).rect.Margins = margins
	c.DirtyLayout(id)
}

// SetMargin sets one margin (0 left, 1 top, 2 right, 3 bottom) of a
// control and dirties its layout.
func (c *Context) SetMargin(id ID, side int, margin float32) {
	c.gui.controls.Get(id).rect.Margins[side] = margin
	c.DirtyLayout(id)
}

// Anchors returns the anchors of a control.
func (c *Context) Anchors(id ID) [4]float32 { return c.gui.controls.Get(id).rect.Anchors }

// SetAnchors sets the anchors of a control and dirties its layout.
func (c *Context) SetAnchors(id ID, anchors [4]float32) {
	c.gui.controls.Get(id).rect.Anchors = anchors
	c.DirtyLayout(id)
}

// MinSize returns the computed min size of a control.
func (c *Context) MinSize(id ID) [2]float32 { return c.gui.controls.Get(id).rect.MinSize() }

// SetMinSize sets the user min size of a control and dirties its layout.
func (c *Context) SetMinSize(id ID, minSize [2]float32) {
	c.gui.controls.Get(id).rect.SetMinSize(minSize)
	c.DirtyLayout(id)
}

// Graphic returns the graphic of a control, or nil. The render output is
// assumed dirty afterwards, since the caller may mutate the graphic.
func (c *Context) Graphic(id ID) Graphic {
	c.renderDirty = true
	return c.gui.controls.Get(id).graphic
}

// SetGraphic replaces the graphic of a control.
func (c *Context) SetGraphic(id ID, graphic Graphic) {
	control := c.gui.controls.Get(id)
	control.graphic = graphic
	control.rect.DirtyRenderDirtyFlags()
	c.renderDirty = true
}

// RectAndGraphic returns the rect and the graphic of a control, or nil
// when the control has no graphic.
func (c *Context) RectAndGraphic(id ID) (*Rect, Graphic) {
	control := c.gui.controls.Get(id)
	if control.graphic == nil {
		return nil, nil
	}
	c.renderDirty = true
	return &control.rect, control.graphic
}

// IsActive reports whether the active flag of a control is set.
func (c *Context) IsActive(id ID) bool { return c.gui.controls.Get(id).active }

// IsFocus reports whether the control is part of the focus chain.
func (c *Context) IsFocus(id ID) bool { return c.gui.controls.Get(id).focus }

// Active queues the activation of a control. Applied on close.
func (c *Context) Active(id ID) {
	c.events = append(c.events, ActiveControl{ID: id})
}

// Deactive queues the deactivation of a control. Applied on close.
func (c *Context) Deactive(id ID) {
	c.events = append(c.events, DeactiveControl{ID: id})
}

// Remove queues the removal of a control and its subtree, invalidating
// every id that referenced it. Applied on close.
func (c *Context) Remove(id ID) {
	c.events = append(c.events, RemoveControl{ID: id})
}

// RequestFocus queues a focus request for a control. Applied on close.
func (c *Context) RequestFocus(id ID) {
	c.events = append(c.events, RequestFocus{ID: id})
}

// LockOver queues a hover lock change for a mouse. Applied on close.
func (c *Context) LockOver(lock bool, mouse MouseID) {
	c.events = append(c.events, SetLockOver{Lock: lock, Mouse: mouse})
}

// SetCursor queues a cursor icon change for the host. Applied on close.
func (c *Context) SetCursor(cursor CursorIcon) {
	c.events = append(c.events, cursor)
}

// MoveToFront moves the control to the top of its siblings.
func (c *Context) MoveToFront(id ID) {
	c.gui.controls.MoveToFront(id)
	c.DirtyLayout(id)
}

// MoveToBack moves the control to the bottom of its siblings.
func (c *Context) MoveToBack(id ID) {
	c.gui.controls.MoveToBack(id)
	c.DirtyLayout(id)
}

// Parent returns the parent of a control, or the zero ID.
func (c *Context) Parent(id ID) ID { return c.gui.controls.Parent(id) }

// Children returns all children of a control.
func (c *Context) Children(id ID) []ID { return c.gui.controls.Children(id) }

// ActiveChildren returns the active children of a control.
func (c *Context) ActiveChildren(id ID) []ID { return c.gui.controls.ActiveChildren(id) }

// MinSizeContext is the handle a layout receives during the bottom-up
// min-size pass. It exposes read access to the subtree and the fonts.
type MinSizeContext struct {
	this     ID
	controls *Controls
	fonts    *text.Fonts
}

func newMinSizeContext(this ID, controls *Controls, fonts *text.Fonts) *MinSizeContext {
	return &MinSizeContext{this: this, controls: controls, fonts: fonts}
}

// Fonts returns the font set of the Gui.
func (c *MinSizeContext) Fonts() *text.Fonts { return c.fonts }

// Layouting returns the mutable rect of a control.
func (c *MinSizeContext) Layouting(id ID) *Rect { return &c.controls.Get(id).rect }

// Rect returns the resolved rect of a control.
func (c *MinSizeContext) Rect(id ID) [4]float32 { return c.controls.Get(id).rect.Rect() }

// Margins returns the margins of a control.
func (c *MinSizeContext) Margins(id ID) [4]float32 { return c.controls.Get(id).rect.Margins }

// Anchors returns the anchors of a control.
func (c *MinSizeContext) Anchors(id ID) [4]float32 { return c.controls.Get(id).rect.Anchors }

// MinSize returns the computed min size of a control.
func (c *MinSizeContext) MinSize(id ID) [2]float32 { return c.controls.Get(id).rect.MinSize() }

// Graphic returns the graphic of a control, or nil.
func (c *MinSizeContext) Graphic(id ID) Graphic { return c.controls.Get(id).graphic }

// IsActive reports whether the active flag of a control is set.
func (c *MinSizeContext) IsActive(id ID) bool { return c.controls.Get(id).active }

// Parent returns the parent of a control, or the zero ID.
func (c *MinSizeContext) Parent(id ID) ID { return c.controls.Parent(id) }

// Children returns all children of a control.
func (c *MinSizeContext) Children(id ID) []ID { return c.controls.Children(id) }

// ActiveChildren returns the active children of a control.
func (c *MinSizeContext) ActiveChildren(id ID) []ID { return c.controls.ActiveChildren(id) }

// LayoutContext is the handle a layout receives during the top-down
// placement pass. Placement goes through SetDesignedRect; deeper subtrees
// can be dirtied and tree-shape effects queued for after the pass.
type LayoutContext struct {
	this     ID
	controls *Controls
	fonts    *text.Fonts

	dirtys []ID
	events []any
}

func newLayoutContext(this ID, controls *Controls, fonts *text.Fonts) *LayoutContext {
	return &LayoutContext{this: this, controls: controls, fonts: fonts}
}

// Fonts returns the font set of the Gui.
func (c *LayoutContext) Fonts() *text.Fonts { return c.fonts }

// SetRect sets the resolved rect of a control directly, bypassing its
// fill and min-size policy.
func (c *LayoutContext) SetRect(id ID, rect [4]float32) {
	c.controls.Get(id).rect.SetRect(rect)
}

// SetDesignedRect offers an area to a child; the child resolves its final
// rect from it. This is the only sanctioned way for a layout to place its
// children.
func (c *LayoutContext) SetDesignedRect(id ID, rect [4]float32) {
	c.controls.Get(id).rect.SetDesignedRect(rect)
}

// Layouting returns the mutable rect of a control.
func (c *LayoutContext) Layouting(id ID) *Rect { return &c.controls.Get(id).rect }

// DirtyLayout schedules a fresh placement pass over a strict descendant
// subtree. Dirtying a direct child or a non-descendant is a layout
// invariant violation; the request is dropped and logged.
func (c *LayoutContext) DirtyLayout(id ID) {
	if c.controls.IsChild(c.this, id) {
		Logger().Warn("layout dirtied its own child, use SetDesignedRect",
			"this", c.this.String(), "child", id.String())
		return
	}
	if !c.controls.IsDescendant(c.this, id) {
		Logger().Warn("layout dirtied a control outside its subtree",
			"this", c.this.String(), "id", id.String())
		return
	}
	for _, d := range c.dirtys {
		if d == id {
			return
		}
	}
	c.dirtys = append(c.dirtys, id)
}

// Rect returns the resolved rect of a control.
func (c *LayoutContext) Rect(id ID) [4]float32 { return c.controls.Get(id).rect.Rect() }

// Size returns the resolved size of a control.
func (c *LayoutContext) Size(id ID) [2]float32 { return c.controls.Get(id).rect.Size() }

// Margins returns the margins of a control.
func (c *LayoutContext) Margins(id ID) [4]float32 { return c.controls.Get(id).rect.Margins }

// SetMargins sets the margins of a control and dirties its subtree.
func (c *LayoutContext) SetMargins(id ID, margins [4]float32) {
	c.controls.Get(id).rect.Margins = margins
	c.DirtyLayout(id)
}

// Anchors returns the anchors of a control.
func (c *LayoutContext) Anchors(id ID) [4]float32 { return c.controls.Get(id).rect.Anchors }

// SetAnchors sets the anchors of a control and dirties its subtree.
func (c *LayoutContext) SetAnchors(id ID, anchors [4]float32) {
	c.controls.Get(id).rect.Anchors = anchors
	c.DirtyLayout(id)
}

// MinSize returns the computed min size of a control.
func (c *LayoutContext) MinSize(id ID) [2]float32 { return c.controls.Get(id).rect.MinSize() }

// SetMinSize sets the user min size of a control and dirties its subtree.
func (c *LayoutContext) SetMinSize(id ID, minSize [2]float32) {
	c.controls.Get(id).rect.SetMinSize(minSize)
	c.DirtyLayout(id)
}

// IsActive reports whether the active flag of a control is set.
func (c *LayoutContext) IsActive(id ID) bool { return c.controls.Get(id).active }

// Active queues the activation of a control, applied after the pass.
func (c *LayoutContext) Active(id ID) {
	c.events = append(c.events, ActiveControl{ID: id})
}

// Deactive queues the deactivation of a control, applied after the pass.
func (c *LayoutContext) Deactive(id ID) {
	c.events = append(c.events, DeactiveControl{ID: id})
}

// Remove queues the removal of a control, applied after the pass.
func (c *LayoutContext) Remove(id ID) {
	c.events = append(c.events, RemoveControl{ID: id})
}

// MoveToFront moves the control to the top of its siblings.
func (c *LayoutContext) MoveToFront(id ID) {
	c.controls.MoveToFront(id)
	c.DirtyLayout(id)
}

// Parent returns the parent of a control, or the zero ID.
func (c *LayoutContext) Parent(id ID) ID { return c.controls.Parent(id) }

// Children returns all children of a control.
func (c *LayoutContext) Children(id ID) []ID { return c.controls.Children(id) }

// ActiveChildren returns the active children of a control.
func (c *LayoutContext) ActiveChildren(id ID) []ID { return c.controls.ActiveChildren(id) }
