package gui

// controlState is the lifecycle state of a control slot.
type controlState uint8

const (
	// stateFree marks a pooled slot with no control.
	stateFree controlState = iota
	// stateReserved marks a slot whose id was handed out but whose record
	// was not built yet.
	stateReserved
	// stateBuilded marks a slot whose record is populated but not yet
	// linked into the started tree, usually because the parent is still
	// being built.
	stateBuilded
	// stateStarted marks a control that is part of the tree.
	stateStarted
)

// Control is one node of the UI tree.
type Control struct {
	rect     Rect
	graphic  Graphic
	behavior Behavior
	layout   Layout

	parent   ID
	children []ID

	active bool
	// reallyActive is true when this control and every ancestor is active.
	reallyActive bool
	focus        bool
}

// Rect returns the geometric state of the control.
func (c *Control) Rect() *Rect { return &c.rect }

// Graphic returns the visual content of the control, or nil.
func (c *Control) Graphic() Graphic { return c.graphic }

type controlEntry struct {
	state      controlState
	generation uint32
	control    Control
	// pending holds children built while this slot was still reserved.
	// They are adopted when the slot itself is built.
	pending []ID
}

// Controls is a generational slot map of controls plus the tree edges
// between them. Slot 0 always holds the root.
type Controls struct {
	entries []controlEntry
	free    []uint32
}

func newControls(rootRect [4]float32) Controls {
	root := Control{
		layout:       DefaultLayout{},
		active:       true,
		reallyActive: true,
	}
	root.rect = DefaultRect()
	root.rect.SetRect(rootRect)
	return Controls{
		entries: []controlEntry{{
			state:      stateStarted,
			generation: 1,
			control:    root,
		}},
	}
}

// Reserve hands out an id for a control that will be built later. The slot
// is taken from the free pool when one exists.
func (c *Controls) Reserve() ID {
	if n := len(c.free); n > 0 {
		index := c.free[n-1]
		c.free = c.free[:n-1]
		entry := &c.entries[index]
		entry.state = stateReserved
		return ID{index: index, generation: entry.generation}
	}
	index := uint32(len(c.entries))
	c.entries = append(c.entries, controlEntry{
		state:      stateReserved,
		generation: 1,
	})
	return ID{index: index, generation: 1}
}

func (c *Controls) entry(id ID) *controlEntry {
	if id.IsNil() || int(id.index) >= len(c.entries) {
		return nil
	}
	entry := &c.entries[id.index]
	if entry.generation != id.generation {
		return nil
	}
	return entry
}

// Get returns the started control with the given id, or nil when the id is
// stale, free, or not yet started.
func (c *Controls) Get(id ID) *Control {
	entry := c.entry(id)
	if entry == nil || entry.state != stateStarted {
		return nil
	}
	return &entry.control
}

// getBuilded returns the control whether it is builded or already started.
func (c *Controls) getBuilded(id ID) *Control {
	entry := c.entry(id)
	if entry == nil || (entry.state != stateBuilded && entry.state != stateStarted) {
		return nil
	}
	return &entry.control
}

// addBuilded populates a reserved slot with a built record and links it
// under its parent. Children that were built while the parent was still
// reserved are adopted here.
func (c *Controls) addBuilded(id ID, control Control) {
	entry := c.entry(id)
	if entry == nil || entry.state != stateReserved {
		panic("gui: build of a control that is not reserved: " + id.String())
	}
	control.children = append(control.children, entry.pending...)
	entry.pending = nil
	entry.state = stateBuilded
	entry.control = control

	if parent := c.entry(control.parent); parent != nil {
		switch parent.state {
		case stateBuilded, stateStarted:
			parent.control.children = append(parent.control.children, id)
		case stateReserved:
			parent.pending = append(parent.pending, id)
		default:
			panic("gui: control built under a freed parent: " + control.parent.String())
		}
	}
}

// Remove frees the slot and bumps the generation so that outstanding ids
// become stale. Tree unlinking is the caller's responsibility.
func (c *Controls) Remove(id ID) {
	entry := c.entry(id)
	if entry == nil || entry.state == stateFree {
		return
	}
	entry.generation++
	if entry.generation == 0 {
		entry.generation = 1
	}
	entry.state = stateFree
	entry.control = Control{}
	entry.pending = nil
	c.free = append(c.free, id.index)
}

// Parent returns the parent of id, or the zero ID for the root or a stale
// id.
func (c *Controls) Parent(id ID) ID {
	if control := c.Get(id); control != nil {
		return control.parent
	}
	return ID{}
}

// Children returns every child of id, active or not.
func (c *Controls) Children(id ID) []ID {
	control := c.Get(id)
	if control == nil {
		return nil
	}
	children := make([]ID, len(control.children))
	copy(children, control.children)
	return children
}

// ActiveChildren returns the children of id whose active flag is set, in
// tree order.
func (c *Controls) ActiveChildren(id ID) []ID {
	control := c.Get(id)
	if control == nil {
		return nil
	}
	var children []ID
	for _, child := range control.children {
		if cc := c.Get(child); cc != nil && cc.active {
			children = append(children, child)
		}
	}
	return children
}

// MoveToFront moves id to the end of its parent's child list, so it is
// drawn last and hit-tested first.
func (c *Controls) MoveToFront(id ID) {
	c.moveTo(id, true)
}

// MoveToBack moves id to the start of its parent's child list.
func (c *Controls) MoveToBack(id ID) {
	c.moveTo(id, false)
}

func (c *Controls) moveTo(id ID, front bool) {
	control := c.Get(id)
	if control == nil || control.parent.IsNil() {
		return
	}
	parent := c.Get(control.parent)
	if parent == nil {
		return
	}
	for i, child := range parent.children {
		if child == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			if front {
				parent.children = append(parent.children, id)
			} else {
				parent.children = append([]ID{id}, parent.children...)
			}
			return
		}
	}
}

// relink moves id from the child list of its current parent to the end of
// the child list of parent. The caller validates both ids.
func (c *Controls) relink(id, parent ID) {
	control := &c.entry(id).control
	if prev := c.entry(control.parent); prev != nil {
		children := prev.control.children
		for i, child := range children {
			if child == id {
				prev.control.children = append(children[:i], children[i+1:]...)
				break
			}
		}
	}
	control.parent = parent
	target := c.entry(parent)
	target.control.children = append(target.control.children, id)
}

// IsChild reports whether child is a direct child of parent.
func (c *Controls) IsChild(parent, child ID) bool {
	return !child.IsNil() && c.Parent(child) == parent
}

// IsDescendant reports whether descendant is below ascendant in the tree.
// A control is not a descendant of itself.
func (c *Controls) IsDescendant(ascendant, descendant ID) bool {
	curr := c.Parent(descendant)
	for !curr.IsNil() {
		if curr == ascendant {
			return true
		}
		curr = c.Parent(curr)
	}
	return false
}

// ControlStack returns the path from the root down to id, inclusive.
func (c *Controls) ControlStack(id ID) []ID {
	var stack []ID
	curr := id
	for !curr.IsNil() {
		stack = append(stack, curr)
		curr = c.Parent(curr)
	}
	for i, j := 0, len(stack)-1; i < j; i, j = i+1, j-1 {
		stack[i], stack[j] = stack[j], stack[i]
	}
	return stack
}

// LowestCommonAncestor returns the deepest control that is an ancestor of
// both a and b (either may be its own ancestor here), or the zero ID.
func (c *Controls) LowestCommonAncestor(a, b ID) ID {
	stackA := c.ControlStack(a)
	stackB := c.ControlStack(b)
	var lca ID
	for i := 0; i < len(stackA) && i < len(stackB); i++ {
		if stackA[i] != stackB[i] {
			break
		}
		lca = stackA[i]
	}
	return lca
}

// ActivePreorder returns the active subtree of start in preorder.
func (c *Controls) ActivePreorder(start ID) []ID {
	var order []ID
	stack := []ID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, id)
		children := c.ActiveChildren(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return order
}
