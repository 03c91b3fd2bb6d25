// Package widgets provides ready-made behaviors built on the core:
// Button, ScrollView and TextField.
package widgets

import "github.com/gogpu/gui"

// Button is a clickable behavior. It tints the control's graphic by its
// hover and pressed state and fires OnClick on a completed left click.
type Button struct {
	gui.DefaultBehavior

	// OnClick is called on a left release over the button within the
	// click window. The click count is in the mouse info of the last down.
	OnClick func(this gui.ID, ctx *gui.Context)

	NormalColor  gui.Color
	HoverColor   gui.Color
	PressedColor gui.Color

	hover   bool
	pressed bool
}

// NewButton creates a Button with a light hover and pressed tint.
func NewButton(onClick func(this gui.ID, ctx *gui.Context)) *Button {
	return &Button{
		OnClick:      onClick,
		NormalColor:  gui.ColorWhite,
		HoverColor:   gui.Color{R: 220, G: 220, B: 220, A: 255},
		PressedColor: gui.Color{R: 180, G: 180, B: 180, A: 255},
	}
}

func (b *Button) InputFlags() gui.InputFlags {
	return gui.InputMouse | gui.InputFocus
}

func (b *Button) OnActive(this gui.ID, ctx *gui.Context) {
	b.hover = false
	b.pressed = false
	b.applyColor(this, ctx)
}

func (b *Button) OnMouseEvent(mouse gui.MouseInfo, this gui.ID, ctx *gui.Context) {
	switch mouse.Event {
	case gui.MouseEnter:
		b.hover = true
		ctx.SetCursor(gui.CursorPointer)
	case gui.MouseExit:
		b.hover = false
		b.pressed = false
		ctx.SetCursor(gui.CursorDefault)
	case gui.MouseDown:
		if mouse.Button == gui.MouseLeft {
			b.pressed = true
		}
	case gui.MouseUp:
		if mouse.Button == gui.MouseLeft {
			fire := b.pressed && mouse.Click()
			b.pressed = false
			if fire && b.OnClick != nil {
				b.OnClick(this, ctx)
			}
		}
	}
	b.applyColor(this, ctx)
}

func (b *Button) applyColor(this gui.ID, ctx *gui.Context) {
	graphic := ctx.Graphic(this)
	if graphic == nil {
		return
	}
	switch {
	case b.pressed:
		graphic.SetColor(b.PressedColor)
	case b.hover:
		graphic.SetColor(b.HoverColor)
	default:
		graphic.SetColor(b.NormalColor)
	}
}
