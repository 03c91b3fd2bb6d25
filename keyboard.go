package gui

// Key is a virtual key code. Only the keys the core and the shipped
// widgets react to are named; hosts with richer key sets can map the rest
// to KeyUnknown.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyTab
	KeyReturn
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
)

// Modifiers is the state of the keyboard modifiers.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Logo  bool
}

// KeyboardEventKind is the kind of a keyboard event.
type KeyboardEventKind uint8

const (
	// KeyChar carries a typed character.
	KeyChar KeyboardEventKind = iota
	// KeyPressed carries a key going down.
	KeyPressed
	// KeyReleased carries a key going up.
	KeyReleased
)

// KeyboardEvent is delivered to the focus chain. Char is meaningful for
// KeyChar, Key for KeyPressed and KeyReleased.
type KeyboardEvent struct {
	Kind KeyboardEventKind
	Char rune
	Key  Key
}
