package widgets

import (
	"time"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/text"
)

// Clipboard is the host clipboard a TextField cuts, copies and pastes
// through. Register one per app and hand it to the fields that need it.
type Clipboard interface {
	Get() string
	Set(s string)
}

// caretBlink toggles the caret of a focused TextField. It is scheduled by
// the field for itself.
type caretBlink struct{}

// caretBlinkInterval is how long the caret stays on or off.
const caretBlinkInterval = 530 * time.Millisecond

// TextField edits the TextGraphic of its control with a caret, selection,
// word motion and clipboard support.
type TextField struct {
	gui.DefaultBehavior

	// Text must be the graphic of the control this behavior is attached
	// to.
	Text *gui.TextGraphic
	// Clipboard handles ctrl-C, ctrl-X and ctrl-V. Nil disables them.
	Clipboard Clipboard
	// CaretGraphic draws the caret, typically a 1px white Texture. Nil
	// disables the caret.
	CaretGraphic gui.Graphic
	// SelectionColor is the background of the selected text.
	SelectionColor text.NRGBA

	editor  *text.TextEditor
	caretID gui.ID
	focused bool
	blinkID uint64
	blinkOn bool
}

// NewTextField creates a TextField editing the given graphic.
func NewTextField(textGraphic *gui.TextGraphic, caret gui.Graphic) *TextField {
	return &TextField{
		Text:           textGraphic,
		CaretGraphic:   caret,
		SelectionColor: text.NRGBA{R: 51, G: 153, B: 255, A: 128},
		editor:         text.NewTextEditor(),
	}
}

// Editor exposes the caret editor, for programmatic selection.
func (t *TextField) Editor() *text.TextEditor { return t.editor }

func (t *TextField) InputFlags() gui.InputFlags {
	return gui.InputMouse | gui.InputFocus | gui.InputDrag
}

func (t *TextField) OnStart(this gui.ID, ctx *gui.Context) {
	if t.CaretGraphic == nil {
		return
	}
	t.caretID = ctx.CreateControl().
		Parent(this).
		Anchors([4]float32{0, 0, 0, 0}).
		Graphic(t.CaretGraphic).
		Active(false).
		Build()
}

func (t *TextField) OnRemove(this gui.ID, ctx *gui.Context) {
	if t.blinkID != 0 {
		ctx.CancelScheduledEvent(t.blinkID)
		t.blinkID = 0
	}
}

func (t *TextField) OnFocusChange(focus bool, this gui.ID, ctx *gui.Context) {
	t.focused = focus
	if focus {
		t.blinkOn = true
		t.moveCaret(this, ctx)
		t.setCaretVisible(ctx, true)
		t.blinkID = ctx.SendEventToScheduled(this, caretBlink{}, ctx.Now().Add(caretBlinkInterval))
	} else {
		t.setCaretVisible(ctx, false)
		if t.blinkID != 0 {
			ctx.CancelScheduledEvent(t.blinkID)
			t.blinkID = 0
		}
	}
}

func (t *TextField) OnEvent(event any, this gui.ID, ctx *gui.Context) {
	if _, ok := event.(caretBlink); !ok || !t.focused {
		return
	}
	t.blinkOn = !t.blinkOn
	t.setCaretVisible(ctx, t.blinkOn)
	t.blinkID = ctx.SendEventToScheduled(this, caretBlink{}, ctx.Now().Add(caretBlinkInterval))
}

func (t *TextField) OnMouseEvent(mouse gui.MouseInfo, this gui.ID, ctx *gui.Context) {
	layout := t.layout(this, ctx)
	anchor := t.Text.Anchor(ctx.Rect(this))
	index := layout.ByteIndexFromPosition(mouse.Pos[0]-anchor[0], mouse.Pos[1]-anchor[1])

	switch mouse.Event {
	case gui.MouseEnter:
		ctx.SetCursor(gui.CursorText)
	case gui.MouseExit:
		ctx.SetCursor(gui.CursorDefault)
	case gui.MouseDown:
		if mouse.Button != gui.MouseLeft {
			return
		}
		switch {
		case mouse.ClickCount >= 3:
			t.editor.SelectAll(layout)
		case mouse.ClickCount == 2:
			t.editor.SelectWordsAtByteRange(text.Range{Start: index, End: index}, layout)
		default:
			t.editor.SetPosition(index, layout)
		}
		t.refresh(this, ctx)
	case gui.MouseMoved:
		if !mouse.Buttons.Left.Pressed() {
			return
		}
		anchorIndex := t.editor.Selection().Anchor
		t.editor.SelectRange(text.Range{Start: anchorIndex, End: index}, layout)
		t.refresh(this, ctx)
	}
}

func (t *TextField) OnKeyboardEvent(event gui.KeyboardEvent, this gui.ID, ctx *gui.Context) bool {
	layout := t.layout(this, ctx)
	fonts := ctx.Fonts()
	mods := ctx.Modifiers()

	if event.Kind == gui.KeyChar {
		t.editor.InsertText(string(event.Char), fonts, layout)
		t.refresh(this, ctx)
		return true
	}
	if event.Kind != gui.KeyPressed {
		return false
	}

	motion := func(n int) text.Motion {
		if mods.Ctrl {
			return text.Words(n)
		}
		return text.Clusters(n)
	}
	switch event.Key {
	case gui.KeyLeft:
		t.editor.MoveCursorHor(motion(-1), mods.Shift, layout)
	case gui.KeyRight:
		t.editor.MoveCursorHor(motion(1), mods.Shift, layout)
	case gui.KeyUp:
		t.editor.MoveCursorVert(-1, mods.Shift, layout)
	case gui.KeyDown:
		t.editor.MoveCursorVert(1, mods.Shift, layout)
	case gui.KeyHome:
		t.editor.MoveCursorLineStart(mods.Shift, layout)
	case gui.KeyEnd:
		t.editor.MoveCursorLineEnd(mods.Shift, layout)
	case gui.KeyBackspace:
		t.editor.DeleteHor(motion(-1), fonts, layout)
	case gui.KeyDelete:
		t.editor.DeleteHor(motion(1), fonts, layout)
	case gui.KeyReturn:
		t.editor.InsertText("\n", fonts, layout)
	case gui.KeyA:
		if !mods.Ctrl {
			return false
		}
		t.editor.SelectAll(layout)
	case gui.KeyC:
		if !mods.Ctrl || t.Clipboard == nil {
			return false
		}
		t.Clipboard.Set(t.selectedText(layout))
	case gui.KeyX:
		if !mods.Ctrl || t.Clipboard == nil {
			return false
		}
		t.Clipboard.Set(t.selectedText(layout))
		t.editor.InsertText("", fonts, layout)
	case gui.KeyV:
		if !mods.Ctrl || t.Clipboard == nil {
			return false
		}
		t.editor.InsertText(t.Clipboard.Get(), fonts, layout)
	default:
		return false
	}
	t.refresh(this, ctx)
	return true
}

// layout returns the text laid out for the current control rect.
func (t *TextField) layout(this gui.ID, ctx *gui.Context) *text.TextLayout {
	return t.Text.Layout(ctx.Rect(this), ctx.Fonts())
}

func (t *TextField) selectedText(layout *text.TextLayout) string {
	r := t.editor.SelectionRange()
	return layout.Text()[r.Start:r.End]
}

// refresh rewrites the selection highlight, repositions the caret and
// restarts its blink after an edit.
func (t *TextField) refresh(this gui.ID, ctx *gui.Context) {
	spanned := t.Text.Spanned()
	spanned.ClearSelections()
	if r := t.editor.SelectionRange(); !r.IsEmpty() {
		spanned.AddSelection(text.SelectionSpan{ByteRange: r, Bg: t.SelectionColor})
	}
	t.Text.Dirty()
	ctx.DirtyLayout(this)
	// Touching the graphic marks the render dirty.
	ctx.Graphic(this)

	if t.focused {
		t.moveCaret(this, ctx)
		t.blinkOn = true
		t.setCaretVisible(ctx, true)
		if t.blinkID != 0 {
			ctx.CancelScheduledEvent(t.blinkID)
		}
		t.blinkID = ctx.SendEventToScheduled(this, caretBlink{}, ctx.Now().Add(caretBlinkInterval))
	}
}

// moveCaret places the caret child over the cursor position.
func (t *TextField) moveCaret(this gui.ID, ctx *gui.Context) {
	if t.caretID.IsNil() {
		return
	}
	rect := ctx.Rect(this)
	layout := t.layout(this, ctx)
	anchor := t.Text.Anchor(rect)
	pos := t.editor.CursorPositionAndHeight(layout)
	x := anchor[0] + pos[0] - rect[0]
	top := anchor[1] + pos[1] - pos[2] - rect[1]
	ctx.SetMargins(t.caretID, [4]float32{x, top, x + 1, top + pos[2]})
}

func (t *TextField) setCaretVisible(ctx *gui.Context, visible bool) {
	if t.caretID.IsNil() {
		return
	}
	if visible {
		ctx.Active(t.caretID)
	} else {
		ctx.Deactive(t.caretID)
	}
}
