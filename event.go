package gui

// Event payloads understood by the Gui itself. A behavior sends them
// through Context.SendEvent; anything else is ignored by the Gui and only
// meaningful to other behaviors via SendEventTo.

// ActiveControl requests the activation of a control.
type ActiveControl struct{ ID ID }

// DeactiveControl requests the deactivation of a control.
type DeactiveControl struct{ ID ID }

// RemoveControl requests the removal of a control and its subtree.
type RemoveControl struct{ ID ID }

// StartControl requests the start of a builded control.
type StartControl struct{ ID ID }

// RequestFocus requests keyboard focus for a control.
type RequestFocus struct{ ID ID }

// SetLockOver pins or unpins the hover target of a mouse to whatever it
// currently is. While locked, hit-testing is bypassed for that mouse.
type SetLockOver struct {
	Lock  bool
	Mouse MouseID
}

// CursorIcon is the cursor the host window should display. A behavior
// sends one through Context.SendEvent; the host polls it back with
// Gui.CursorChange.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorNotAllowed
	CursorResizeNS
	CursorResizeEW
)

// buildEvent carries a deferred control build from a Context back to the
// Gui when the context closes.
type buildEvent struct {
	id    ID
	build controlBuild
}

// lazyEventKind tags a pending lifecycle effect.
type lazyEventKind uint8

const (
	lazyOnStart lazyEventKind = iota
	lazyOnRemove
	lazyOnActive
	lazyOnDeactive
)

// lazyEvent is a lifecycle effect queued for the next lazy update. The
// queue is FIFO; opposing active/deactive events for the same control
// cancel each other when queued.
type lazyEvent struct {
	kind lazyEventKind
	id   ID
	// dirtyParent applies to lazyOnRemove: whether the parent layout must
	// be marked dirty when the control leaves the tree.
	dirtyParent bool
}
