package gui

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// nopRenderer satisfies GuiRenderer for tests without a text pipeline.
type nopRenderer struct {
	uploads int
	resizes [][2]uint32
}

func (n *nopRenderer) UpdateFontTexture(_ uint32, _ [4]uint32, _ []byte) { n.uploads++ }

func (n *nopRenderer) ResizeFontTexture(_ uint32, size [2]uint32) {
	n.resizes = append(n.resizes, size)
}

func newTestRender() (*GuiRender, *nopRenderer) {
	return NewGuiRender(1, [2]uint32{256, 256}, 2), &nopRenderer{}
}

func TestCutSprite(t *testing.T) {
	tests := []struct {
		name     string
		rect     [4]float32
		mask     [4]float32
		keep     bool
		wantRect [4]float32
		wantUV   [4]float32
	}{
		{
			name: "inside untouched",
			rect: [4]float32{10, 10, 20, 20}, mask: [4]float32{0, 0, 100, 100},
			keep: true, wantRect: [4]float32{10, 10, 20, 20}, wantUV: [4]float32{0, 0, 1, 1},
		},
		{
			name: "left half clipped",
			rect: [4]float32{0, 0, 10, 10}, mask: [4]float32{5, 0, 100, 100},
			keep: true, wantRect: [4]float32{5, 0, 10, 10}, wantUV: [4]float32{0.5, 0, 0.5, 1},
		},
		{
			name: "bottom quarter clipped",
			rect: [4]float32{0, 0, 10, 20}, mask: [4]float32{0, 0, 100, 15},
			keep: true, wantRect: [4]float32{0, 0, 10, 15}, wantUV: [4]float32{0, 0, 1, 0.75},
		},
		{
			name: "clipped on both axes",
			rect: [4]float32{0, 0, 10, 10}, mask: [4]float32{5, 5, 100, 100},
			keep: true, wantRect: [4]float32{5, 5, 10, 10}, wantUV: [4]float32{0.5, 0.5, 0.5, 0.5},
		},
		{
			name: "fully outside",
			rect: [4]float32{0, 0, 10, 10}, mask: [4]float32{20, 20, 30, 30},
			keep: false,
		},
		{
			name: "degenerate rect",
			rect: [4]float32{10, 10, 10, 20}, mask: [4]float32{0, 0, 100, 100},
			keep: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sprite{Rect: tt.rect, UVRect: [4]float32{0, 0, 1, 1}}
			if got := cutSprite(&s, tt.mask); got != tt.keep {
				t.Fatalf("cutSprite = %v, want %v", got, tt.keep)
			}
			if !tt.keep {
				return
			}
			if s.Rect != tt.wantRect {
				t.Errorf("rect = %v, want %v", s.Rect, tt.wantRect)
			}
			if s.UVRect != tt.wantUV {
				t.Errorf("uv = %v, want %v", s.UVRect, tt.wantUV)
			}
		})
	}
}

func TestRenderClipsToAncestors(t *testing.T) {
	g, _ := newTestGui(100, 100)
	render, renderer := newTestRender()

	ctx := g.Context()
	parent := ctx.CreateControl().
		Anchors([4]float32{0, 0, 0, 0}).
		Margins([4]float32{10, 10, 60, 60}).
		Graphic(NewTexture(7, [4]float32{0, 0, 1, 1})).
		Build()
	// Overhangs the parent by 20 px on the right.
	ctx.CreateControl().Parent(parent).
		Anchors([4]float32{0, 0, 0, 0}).
		Margins([4]float32{0, 0, 70, 25}).
		Graphic(NewTexture(8, [4]float32{0, 0, 1, 1})).
		Build()
	// Entirely outside the parent, must not be drawn.
	ctx.CreateControl().Parent(parent).
		Anchors([4]float32{0, 0, 0, 0}).
		Margins([4]float32{60, 0, 80, 25}).
		Graphic(NewTexture(9, [4]float32{0, 0, 1, 1})).
		Build()
	ctx.Close()

	sprites, animating := render.Render(g, renderer)
	if animating {
		t.Error("static scene reports animating")
	}

	want := []Sprite{
		{Texture: 7, Color: ColorWhite, Rect: [4]float32{10, 10, 60, 60}, UVRect: [4]float32{0, 0, 1, 1}},
		{Texture: 8, Color: ColorWhite, Rect: [4]float32{10, 10, 60, 35}, UVRect: [4]float32{0, 0, 5.0 / 7, 1}},
	}
	if diff := cmp.Diff(want, sprites, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("sprites mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderReusesSpritesAndPatchesColor(t *testing.T) {
	g, _ := newTestGui(100, 100)
	render, renderer := newTestRender()
	red := Color{R: 255, A: 255}

	ctx := g.Context()
	id := ctx.CreateControl().
		Anchors([4]float32{0, 0, 0, 0}).
		Margins([4]float32{10, 10, 30, 30}).
		Graphic(NewTexture(7, [4]float32{0, 0, 1, 1})).
		Build()
	ctx.Close()

	first, _ := render.Render(g, renderer)
	if len(first) != 1 || first[0].Color != ColorWhite {
		t.Fatalf("first frame = %v", first)
	}
	// The renderer reuses its sprite buffers across frames, so keep a
	// copy before rendering again.
	firstSprite := first[0]

	second, _ := render.Render(g, renderer)
	if diff := cmp.Diff([]Sprite{firstSprite}, second); diff != "" {
		t.Errorf("clean second frame differs (-want +got):\n%s", diff)
	}

	ctx = g.Context()
	ctx.Graphic(id).SetColor(red)
	ctx.Close()
	third, _ := render.Render(g, renderer)
	if len(third) != 1 || third[0].Color != red {
		t.Errorf("third frame = %v, want the new color", third)
	}
	if third[0].Rect != firstSprite.Rect {
		t.Errorf("color change moved the sprite: %v vs %v", third[0].Rect, firstSprite.Rect)
	}
}

func TestRenderScalesToPhysicalPixels(t *testing.T) {
	g, _ := newTestGui(100, 100)
	g.SetScaleFactor(2.0)
	render, renderer := newTestRender()

	ctx := g.Context()
	ctx.CreateControl().
		Anchors([4]float32{0, 0, 0, 0}).
		Margins([4]float32{10, 10, 30, 30}).
		Graphic(NewTexture(7, [4]float32{0, 0, 1, 1})).
		Build()
	ctx.Close()

	sprites, _ := render.Render(g, renderer)
	if len(sprites) != 1 {
		t.Fatalf("sprites = %v", sprites)
	}
	if got := sprites[0].Rect; got != [4]float32{20, 20, 60, 60} {
		t.Errorf("scaled rect = %v, want [20 20 60 60]", got)
	}
}

func TestRenderDrivesAnimations(t *testing.T) {
	g, clock := newTestGui(100, 100)
	render, renderer := newTestRender()

	var ticks []float32
	g.AddAnimation(1, func(t, _ float32, _ *Context) {
		ticks = append(ticks, t)
	})

	_, animating := render.Render(g, renderer)
	if !animating {
		t.Fatal("live animation not reported by Render")
	}
	clock.advance(500 * time.Millisecond)
	_, animating = render.Render(g, renderer)
	if !animating {
		t.Fatal("half-way animation not reported by Render")
	}
	clock.advance(600 * time.Millisecond)
	_, animating = render.Render(g, renderer)
	if animating {
		t.Error("finished animation still reported by Render")
	}

	if diff := cmp.Diff([]float32{0, 0.5, 1}, ticks); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}
