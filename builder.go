package gui

// controlBuild is the record a ControlBuilder accumulates before the
// control enters the store.
type controlBuild struct {
	rect     Rect
	graphic  Graphic
	behavior Behavior
	layout   Layout
	parent   ID
	active   bool
	focus    bool
}

func newControlBuild() controlBuild {
	return controlBuild{
		rect:   DefaultRect(),
		active: true,
	}
}

// ControlBuilder accumulates the initial state of a new control. Obtain
// one from Gui.CreateControl or Context.CreateControl, chain the setters,
// and call Build to get the control's id.
//
// A control built from a Context only enters the tree when the context
// closes; its id is valid immediately.
type ControlBuilder struct {
	id    ID
	build controlBuild
	done  func(id ID, build controlBuild) ID
}

func newControlBuilder(id ID, done func(ID, controlBuild) ID) ControlBuilder {
	return ControlBuilder{id: id, build: newControlBuild(), done: done}
}

// ID returns the reserved id of the control being built.
func (b ControlBuilder) ID() ID { return b.id }

// Anchors sets the anchors of the control's rect.
func (b ControlBuilder) Anchors(anchors [4]float32) ControlBuilder {
	b.build.rect.Anchors = anchors
	return b
}

// Margins sets the margins of the control's rect.
func (b ControlBuilder) Margins(margins [4]float32) ControlBuilder {
	b.build.rect.Margins = margins
	return b
}

// MinSize sets the user min size of the control.
func (b ControlBuilder) MinSize(minSize [2]float32) ControlBuilder {
	b.build.rect.SetMinSize(minSize)
	return b
}

// MinWidth sets only the horizontal user min size.
func (b ControlBuilder) MinWidth(minWidth float32) ControlBuilder {
	size := b.build.rect.UserMinSize()
	size[0] = minWidth
	b.build.rect.SetMinSize(size)
	return b
}

// MinHeight sets only the vertical user min size.
func (b ControlBuilder) MinHeight(minHeight float32) ControlBuilder {
	size := b.build.rect.UserMinSize()
	size[1] = minHeight
	b.build.rect.SetMinSize(size)
	return b
}

// FillX sets the horizontal fill policy.
func (b ControlBuilder) FillX(fill RectFill) ControlBuilder {
	b.build.rect.SetFillX(fill)
	return b
}

// FillY sets the vertical fill policy.
func (b ControlBuilder) FillY(fill RectFill) ControlBuilder {
	b.build.rect.SetFillY(fill)
	return b
}

// ExpandX marks the control as a receiver of surplus horizontal space.
func (b ControlBuilder) ExpandX(expand bool) ControlBuilder {
	b.build.rect.SetExpandX(expand)
	return b
}

// ExpandY marks the control as a receiver of surplus vertical space.
func (b ControlBuilder) ExpandY(expand bool) ControlBuilder {
	b.build.rect.SetExpandY(expand)
	return b
}

// Ratio sets the per-axis expansion weights used by box layouts.
func (b ControlBuilder) Ratio(x, y float32) ControlBuilder {
	b.build.rect.RatioX = x
	b.build.rect.RatioY = y
	return b
}

// Behavior attaches a behavior to the control.
func (b ControlBuilder) Behavior(behavior Behavior) ControlBuilder {
	b.build.behavior = behavior
	return b
}

// Layout attaches a layout to the control. The default lays children out
// by their anchors and margins.
func (b ControlBuilder) Layout(layout Layout) ControlBuilder {
	b.build.layout = layout
	return b
}

// Graphic attaches a graphic to the control.
func (b ControlBuilder) Graphic(graphic Graphic) ControlBuilder {
	b.build.graphic = graphic
	return b
}

// Parent links the control under the given parent. The default parent is
// the root.
func (b ControlBuilder) Parent(parent ID) ControlBuilder {
	b.build.parent = parent
	return b
}

// Active sets the initial active flag. Controls are active by default.
func (b ControlBuilder) Active(active bool) ControlBuilder {
	b.build.active = active
	return b
}

// Focus requests keyboard focus for the control once it starts.
func (b ControlBuilder) Focus(focus bool) ControlBuilder {
	b.build.focus = focus
	return b
}

// Build finishes the control and returns its id.
func (b ControlBuilder) Build() ID {
	if b.build.layout == nil {
		b.build.layout = DefaultLayout{}
	}
	if b.build.parent.IsNil() && b.id != RootID {
		b.build.parent = RootID
	}
	return b.done(b.id, b.build)
}
