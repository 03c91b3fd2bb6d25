// Package gui provides a retained-mode GUI core for Go.
//
// # Overview
//
// gui manages a tree of controls identified by generational ids, resolves
// their geometry with pluggable layouts, routes mouse, keyboard, focus,
// scroll and scheduled events to per-control behaviors, and emits
// renderer-agnostic sprite and glyph batches each frame. It owns no window
// and no GPU: the embedding application feeds events in and consumes the
// draw output with whatever backend it likes.
//
// # Quick Start
//
//	import "github.com/gogpu/gui"
//
//	g := gui.NewGui(800, 600, 1.0, fonts)
//
//	ctx := g.Context()
//	button := ctx.CreateControl().
//		Graphic(gui.NewPanel(texture, uvRect, border)).
//		Behavior(&myButton{}).
//		Build()
//	_ = button
//	ctx.Close()
//
//	render := gui.NewGuiRender(fontTexture, [2]uint32{1024, 1024}, whiteTexture)
//
//	// per frame:
//	g.MouseMoved(gui.DefaultMouseID, x, y)
//	sprites, animating := render.Render(g, backend)
//
// # Architecture
//
// The library is organized into:
//   - Root package: control tree, rect model, layout driver, input router,
//     focus, scheduled events, animations, draw pass
//   - text: font registry, shaping, spanned strings, line layout, caret editor
//   - layouts: ready-made Layout implementations (VBoxLayout, GridLayout, ...)
//   - widgets: ready-made Behavior implementations (Button, ScrollView, ...)
//   - internal/atlas: the glyph draw-cache backing the text draw path
//
// All tree mutation goes through a Context borrowed from the Gui; closing
// the context drains deferred start, activation and removal events.
package gui
