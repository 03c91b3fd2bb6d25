package gui

// This file drives the two-phase layout resolution over the tree. Each
// control's Layout first reports the min size of its own control from the
// min sizes of the children (bottom-up), then places the children inside
// the resolved rect (top-down).

// UpdateLayouts runs a full layout pass if any control was dirtied since
// the last pass.
func (g *Gui) UpdateLayouts() {
	if len(g.dirtyLayouts) > 0 {
		g.updateAllLayouts()
	}
}

func (g *Gui) updateAllLayouts() {
	g.dirtyLayouts = g.dirtyLayouts[:0]

	// Bottom-up min size. Reversed preorder visits every child before its
	// parent.
	order := g.controls.ActivePreorder(RootID)
	for i := len(order) - 1; i >= 0; i-- {
		g.computeMinSize(order[i])
	}

	// Top-down placement. The walk re-reads the children at each step so
	// controls activated or removed by a layout are honored mid-pass.
	stack := []ID{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		control := g.controls.Get(id)
		if control == nil || !control.reallyActive {
			continue
		}
		g.runPlacement(id, control, nil)
		control.rect.ClearLayoutDirtyFlags()
		children := g.controls.ActiveChildren(id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// UpdateOneLayout resolves the layout of a single control, propagating a
// min size change to its ancestors and re-placing only the affected
// subtrees. It is the cheap path for a local change such as a text edit.
func (g *Gui) UpdateOneLayout(id ID) {
	control := g.controls.Get(id)
	if control == nil || !control.reallyActive {
		return
	}
	g.computeMinSize(id)

	// Walk up while the min size kept changing, re-deriving each parent's
	// min from its children and marking it for placement.
	highest := id
	for {
		control := g.controls.Get(highest)
		if control.rect.LayoutDirtyFlags()&(LayoutDirtyMinWidth|LayoutDirtyMinHeight) == 0 {
			break
		}
		parent := control.parent
		if parent.IsNil() {
			break
		}
		g.computeMinSize(parent)
		g.controls.Get(parent).rect.layoutDirtyFlags |= LayoutDirty
		highest = parent
	}

	work := []ID{highest}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		control := g.controls.Get(id)
		if control == nil || !control.reallyActive {
			continue
		}
		work = g.runPlacement(id, control, work)
		control.rect.ClearLayoutDirtyFlags()
		for _, child := range g.controls.ActiveChildren(id) {
			rect := &g.controls.Get(child).rect
			if rect.LayoutDirtyFlags() != 0 {
				rect.ClearLayoutDirtyFlags()
				work = append(work, child)
			}
		}
	}
}

func (g *Gui) computeMinSize(id ID) {
	control := g.controls.Get(id)
	if control == nil || control.layout == nil {
		return
	}
	min := control.layout.ComputeMinSize(id, newMinSizeContext(id, &g.controls, g.fonts))
	control.rect.setComputedMinSize(min)
}

// runPlacement runs the layout of one control and applies the deferred
// effects it emitted. Rect dirtying requests from the layout push the
// dirtied control's parent onto work, which may be nil for the full pass
// where everything below is replaced anyway.
func (g *Gui) runPlacement(id ID, control *Control, work []ID) []ID {
	if control.layout == nil {
		return work
	}
	layout := control.layout
	ctx := newLayoutContext(id, &g.controls, g.fonts)
	layout.UpdateLayouts(id, ctx)

	for _, event := range ctx.events {
		switch e := event.(type) {
		case ActiveControl:
			g.activeControl(e.ID)
		case DeactiveControl:
			g.deactiveControl(e.ID)
		case RemoveControl:
			g.lazyEvents = append(g.lazyEvents, lazyEvent{kind: lazyOnRemove, id: e.ID})
		case StartControl:
			g.startControl(e.ID)
		default:
			g.sendEvent(event)
		}
	}
	ctx.events = nil

	if work != nil {
		for _, dirty := range ctx.dirtys {
			parent := g.controls.Parent(dirty)
			if parent == id || parent.IsNil() {
				continue
			}
			work = append(work, parent)
		}
	}
	ctx.dirtys = nil
	return work
}
