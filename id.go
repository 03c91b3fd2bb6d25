package gui

import "fmt"

// ID identifies a control in the tree. It pairs a slot index with the
// generation the slot had when the control was created, so references left
// behind by a removed control are detectable: a lookup with a stale
// generation returns nothing.
//
// The zero ID refers to no control. Generations start at 1 and never
// return to 0, so the zero value can never collide with a live control.
type ID struct {
	index      uint32
	generation uint32
}

// RootID is the id of the root control. The root is created with the Gui
// and is never removed.
var RootID = ID{index: 0, generation: 1}

// IsNil reports whether the id refers to no control.
func (id ID) IsNil() bool { return id.generation == 0 }

// Index returns the slot index of the id.
func (id ID) Index() int { return int(id.index) }

// Generation returns the generation of the id.
func (id ID) Generation() uint32 { return id.generation }

// String formats the id as "generation:index".
func (id ID) String() string {
	if id.IsNil() {
		return "none"
	}
	return fmt.Sprintf("%d:%d", id.generation, id.index)
}
