package gui

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// idCmp lets cmp.Diff look inside ID values.
var idCmp = cmp.AllowUnexported(ID{})

// buildTree creates root children a, b and grandchildren under b, the
// shape most of the tree tests want.
func buildTree(t *testing.T) (g *Gui, a, b, c, d ID) {
	t.Helper()
	g, _ = newTestGui(100, 100)
	ctx := g.Context()
	a = ctx.CreateControl().Build()
	b = ctx.CreateControl().Build()
	c = ctx.CreateControl().Parent(b).Build()
	d = ctx.CreateControl().Parent(b).Build()
	ctx.Close()
	return g, a, b, c, d
}

func TestControlsParentChildren(t *testing.T) {
	g, a, b, c, d := buildTree(t)
	controls := g.Controls()

	if got := controls.Parent(c); got != b {
		t.Errorf("Parent(c) = %v, want %v", got, b)
	}
	if got := controls.Parent(a); got != RootID {
		t.Errorf("Parent(a) = %v, want root", got)
	}
	if got := controls.Parent(RootID); !got.IsNil() {
		t.Errorf("Parent(root) = %v, want nil", got)
	}
	if diff := cmp.Diff([]ID{c, d}, controls.Children(b), idCmp); diff != "" {
		t.Errorf("Children(b) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{a, b}, controls.Children(RootID), idCmp); diff != "" {
		t.Errorf("Children(root) mismatch (-want +got):\n%s", diff)
	}
}

func TestControlsDescendants(t *testing.T) {
	g, a, b, c, _ := buildTree(t)
	controls := g.Controls()

	if !controls.IsChild(b, c) {
		t.Error("IsChild(b, c) = false")
	}
	if controls.IsChild(RootID, c) {
		t.Error("IsChild(root, c) = true, c is a grandchild")
	}
	if !controls.IsDescendant(RootID, c) {
		t.Error("IsDescendant(root, c) = false")
	}
	if controls.IsDescendant(a, c) {
		t.Error("IsDescendant(a, c) = true across siblings")
	}
	if controls.IsDescendant(b, b) {
		t.Error("IsDescendant(b, b) = true, descent is strict")
	}
}

func TestControlStackAndLCA(t *testing.T) {
	g, a, b, c, d := buildTree(t)
	controls := g.Controls()

	if diff := cmp.Diff([]ID{RootID, b, c}, controls.ControlStack(c), idCmp); diff != "" {
		t.Errorf("ControlStack(c) mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		x, y ID
		want ID
	}{
		{"siblings", c, d, b},
		{"cousins", a, c, RootID},
		{"ancestor", b, d, b},
		{"same", c, c, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := controls.LowestCommonAncestor(tt.x, tt.y); got != tt.want {
				t.Errorf("LowestCommonAncestor(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestActivePreorderSkipsInactiveSubtrees(t *testing.T) {
	g, _ := newTestGui(100, 100)
	ctx := g.Context()
	a := ctx.CreateControl().Build()
	b := ctx.CreateControl().Active(false).Build()
	ctx.CreateControl().Parent(b).Build() // hidden with its parent
	d := ctx.CreateControl().Build()
	ctx.Close()

	want := []ID{RootID, a, d}
	if diff := cmp.Diff(want, g.Controls().ActivePreorder(RootID), idCmp); diff != "" {
		t.Errorf("ActivePreorder mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveToFrontBack(t *testing.T) {
	g, a, b, _, _ := buildTree(t)
	controls := g.Controls()

	controls.MoveToFront(a)
	if diff := cmp.Diff([]ID{b, a}, controls.Children(RootID), idCmp); diff != "" {
		t.Errorf("after MoveToFront (-want +got):\n%s", diff)
	}
	controls.MoveToBack(a)
	if diff := cmp.Diff([]ID{a, b}, controls.Children(RootID), idCmp); diff != "" {
		t.Errorf("after MoveToBack (-want +got):\n%s", diff)
	}
}

func TestReparent(t *testing.T) {
	g, a, b, c, d := buildTree(t)
	controls := g.Controls()

	if err := g.Reparent(c, a); err != nil {
		t.Fatalf("Reparent(c, a) = %v", err)
	}
	if got := controls.Parent(c); got != a {
		t.Errorf("Parent(c) = %v, want %v", got, a)
	}
	if diff := cmp.Diff([]ID{c}, controls.Children(a), idCmp); diff != "" {
		t.Errorf("Children(a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]ID{d}, controls.Children(b), idCmp); diff != "" {
		t.Errorf("Children(b) mismatch (-want +got):\n%s", diff)
	}

	// Moving under the current parent is a no-op.
	if err := g.Reparent(d, b); err != nil {
		t.Errorf("Reparent(d, b) = %v", err)
	}
	if diff := cmp.Diff([]ID{d}, controls.Children(b), idCmp); diff != "" {
		t.Errorf("Children(b) after no-op mismatch (-want +got):\n%s", diff)
	}
}

func TestReparentErrors(t *testing.T) {
	g, a, b, _, d := buildTree(t)

	stale := g.CreateControl().Build()
	g.RemoveControl(stale)

	if err := g.Reparent(stale, a); !errors.Is(err, ErrStaleID) {
		t.Errorf("Reparent(stale, a) = %v, want ErrStaleID", err)
	}
	if err := g.Reparent(a, stale); !errors.Is(err, ErrStaleID) {
		t.Errorf("Reparent(a, stale) = %v, want ErrStaleID", err)
	}

	reserved := g.ReserveID()
	if err := g.Reparent(a, reserved); !errors.Is(err, ErrNotBuilded) {
		t.Errorf("Reparent(a, reserved) = %v, want ErrNotBuilded", err)
	}
	if err := g.Reparent(reserved, a); !errors.Is(err, ErrNotBuilded) {
		t.Errorf("Reparent(reserved, a) = %v, want ErrNotBuilded", err)
	}

	if err := g.Reparent(b, b); !errors.Is(err, ErrHasParent) {
		t.Errorf("Reparent(b, b) = %v, want ErrHasParent", err)
	}
	if err := g.Reparent(b, d); !errors.Is(err, ErrHasParent) {
		t.Errorf("Reparent(b, d) = %v, want ErrHasParent", err)
	}
}

func TestGenerationGuardsStaleIDs(t *testing.T) {
	g, _ := newTestGui(100, 100)
	ctx := g.Context()
	id := ctx.CreateControl().Build()
	ctx.Close()

	g.RemoveControl(id)
	ctx = g.Context() // drains the removal
	fresh := ctx.CreateControl().Build()
	ctx.Close()

	if fresh.Index() != id.Index() {
		t.Fatalf("slot not recycled: fresh index %d, removed index %d", fresh.Index(), id.Index())
	}
	if fresh.Generation() == id.Generation() {
		t.Error("recycled slot kept its generation")
	}
	if g.Controls().Get(id) != nil {
		t.Error("stale id still resolves after its slot was recycled")
	}
	if g.Controls().Get(fresh) == nil {
		t.Error("fresh id does not resolve")
	}
}

func TestReservedBuild(t *testing.T) {
	g, _ := newTestGui(100, 100)
	id := g.ReserveID()

	if g.Controls().Get(id) != nil {
		t.Error("reserved id resolves before being built")
	}

	ctx := g.Context()
	child := ctx.CreateControl().Parent(id).Build()
	built := g.CreateControlReserved(id).Build()
	ctx.Close()

	if built != id {
		t.Errorf("CreateControlReserved built %v, want %v", built, id)
	}
	if got := g.Controls().Parent(child); got != id {
		t.Errorf("child built against the reserved id has parent %v, want %v", got, id)
	}
	if diff := cmp.Diff([]ID{child}, g.Controls().Children(id), idCmp); diff != "" {
		t.Errorf("Children(reserved) mismatch (-want +got):\n%s", diff)
	}
}

func TestClearControlsKeepsRoot(t *testing.T) {
	g, _ := newTestGui(100, 100)
	ctx := g.Context()
	a := ctx.CreateControl().Build()
	ctx.CreateControl().Parent(a).Build()
	ctx.Close()

	g.ClearControls()

	if g.Controls().Get(RootID) == nil {
		t.Fatal("root removed by ClearControls")
	}
	if got := g.Controls().Children(RootID); len(got) != 0 {
		t.Errorf("root keeps children after ClearControls: %v", got)
	}
	if g.Controls().Get(a) != nil {
		t.Error("child of root survived ClearControls")
	}
}

func TestRootRectResize(t *testing.T) {
	g, _ := newTestGui(100, 100)
	ctx := g.Context()
	id := ctx.CreateControl().Anchors([4]float32{0, 0, 1, 1}).Build()
	ctx.Close()

	g.SetRootRect([4]float32{0, 0, 300, 200})
	g.UpdateLayouts()

	ctx = g.Context()
	if got := ctx.Rect(id); got != [4]float32{0, 0, 300, 200} {
		t.Errorf("full-anchor child rect = %v, want the new root rect", got)
	}
	ctx.Close()
}
