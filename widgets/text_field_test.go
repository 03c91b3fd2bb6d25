package widgets_test

import (
	"testing"
	"time"
	"unicode"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/text"
	"github.com/gogpu/gui/widgets"
	"golang.org/x/image/font/gofont/goregular"
)

// fixedShaper shapes one glyph per rune, ten pixels wide, so caret
// positions land on round numbers.
type fixedShaper struct{}

func (fixedShaper) Shape(_ *text.Fonts, s string, span text.ShapeSpan) []text.GlyphPosition {
	var glyphs []text.GlyphPosition
	var x float32
	for i, r := range s {
		glyphs = append(glyphs, text.GlyphPosition{
			GID:          uint16(r),
			FontID:       span.FontID,
			FontSize:     span.FontSize,
			X:            x,
			Width:        10,
			ByteRange:    text.Range{Start: i, End: i + len(string(r))},
			IsWhitespace: unicode.IsSpace(r),
		})
		x += 10
	}
	return glyphs
}

type fakeClipboard struct {
	content string
}

func (c *fakeClipboard) Get() string { return c.content }

func (c *fakeClipboard) Set(s string) { c.content = s }

type fieldFixture struct {
	g     *gui.Gui
	clock *testClock
	field *widgets.TextField
	text  *gui.TextGraphic
	id    gui.ID
	clip  *fakeClipboard
}

// newFieldFixture builds a focused text field holding "foo bar" in a
// 200x50 window and places the caret with a click at byte 2.
func newFieldFixture(t *testing.T) *fieldFixture {
	t.Helper()
	text.SetShaper(fixedShaper{})
	t.Cleanup(func() { text.SetShaper(nil) })

	font, err := text.NewFont(goregular.TTF)
	if err != nil {
		t.Fatalf("parse test font: %v", err)
	}
	fonts := text.NewFonts()
	fonts.Add(font)

	clock := &testClock{now: time.Unix(1_700_000_000, 0)}
	g := gui.NewGui(200, 50, 1.0, fonts)
	g.SetClock(clock.Now)

	tg := gui.NewTextGraphic("foo bar", text.TextStyle{
		Color:    text.NRGBA{R: 255, G: 255, B: 255, A: 255},
		FontSize: 16,
	}, text.LayoutSettings{})
	clip := &fakeClipboard{}
	field := widgets.NewTextField(tg, gui.NewTexture(2, [4]float32{0, 0, 1, 1}))
	field.Clipboard = clip
	id := g.CreateControl().
		Behavior(field).
		Graphic(tg).
		Build()

	g.MouseEnter(gui.DefaultMouseID)
	g.MouseMoved(gui.DefaultMouseID, 22, 10)
	g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
	return &fieldFixture{g: g, clock: clock, field: field, text: tg, id: id, clip: clip}
}

func TestTextFieldClickAndType(t *testing.T) {
	f := newFieldFixture(t)

	if got := f.field.Editor().Selection().Cursor; got != 2 {
		t.Fatalf("cursor after the click = %d, want 2", got)
	}
	f.g.ReceivedCharacter('X')
	if got := f.text.Text(); got != "foXo bar" {
		t.Errorf("text = %q, want %q", got, "foXo bar")
	}
	if got := f.field.Editor().Selection().Cursor; got != 3 {
		t.Errorf("cursor = %d, want 3", got)
	}
}

func TestTextFieldBackspaceAndDelete(t *testing.T) {
	f := newFieldFixture(t)

	f.g.KeyDown(gui.KeyBackspace)
	if got := f.text.Text(); got != "fo bar" {
		t.Errorf("text = %q, want %q", got, "fo bar")
	}
	f.g.KeyDown(gui.KeyDelete)
	if got := f.text.Text(); got != "f bar" {
		t.Errorf("text = %q, want %q", got, "f bar")
	}
}

func TestTextFieldSelectAllAndReplace(t *testing.T) {
	f := newFieldFixture(t)

	f.g.SetModifiers(gui.Modifiers{Ctrl: true})
	f.g.KeyDown(gui.KeyA)
	f.g.SetModifiers(gui.Modifiers{})
	if got := f.field.Editor().SelectionRange(); got != (text.Range{Start: 0, End: 7}) {
		t.Fatalf("selection = %v, want the whole text", got)
	}
	f.g.ReceivedCharacter('z')
	if got := f.text.Text(); got != "z" {
		t.Errorf("text = %q, want %q", got, "z")
	}
}

func TestTextFieldShiftSelectionAndClipboard(t *testing.T) {
	f := newFieldFixture(t)

	// Select "o b" with shift-right from byte 2.
	f.g.SetModifiers(gui.Modifiers{Shift: true})
	for i := 0; i < 3; i++ {
		f.g.KeyDown(gui.KeyRight)
	}
	f.g.SetModifiers(gui.Modifiers{Ctrl: true})
	f.g.KeyDown(gui.KeyC)
	if f.clip.content != "o b" {
		t.Errorf("clipboard = %q, want %q", f.clip.content, "o b")
	}

	f.g.KeyDown(gui.KeyX)
	if got := f.text.Text(); got != "foar" {
		t.Errorf("text after cut = %q, want %q", got, "foar")
	}

	f.g.KeyDown(gui.KeyV)
	f.g.SetModifiers(gui.Modifiers{})
	if got := f.text.Text(); got != "foo bar" {
		t.Errorf("text after paste = %q, want %q", got, "foo bar")
	}
}

func TestTextFieldDoubleClickSelectsWord(t *testing.T) {
	f := newFieldFixture(t)

	// A second click within the window lands with click count 2.
	f.g.MouseDown(gui.DefaultMouseID, gui.MouseLeft)
	f.g.MouseUp(gui.DefaultMouseID, gui.MouseLeft)
	if got := f.field.Editor().SelectionRange(); got != (text.Range{Start: 0, End: 3}) {
		t.Errorf("selection = %v, want the word under the pointer", got)
	}
}

func TestTextFieldCaretBlinks(t *testing.T) {
	f := newFieldFixture(t)

	ctx := f.g.Context()
	children := ctx.Children(f.id)
	if len(children) != 1 {
		ctx.Close()
		t.Fatalf("children = %v, want the caret control", children)
	}
	caret := children[0]
	on := ctx.IsActive(caret)
	ctx.Close()
	if !on {
		t.Fatal("caret not visible on focus")
	}

	f.clock.advance(600 * time.Millisecond)
	if _, ok := f.g.HandleScheduledEvent(); !ok {
		t.Fatal("no blink scheduled")
	}
	ctx = f.g.Context()
	on = ctx.IsActive(caret)
	ctx.Close()
	if on {
		t.Error("caret still visible after a blink interval")
	}
}
