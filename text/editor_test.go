package text

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetPositionSnapsToGrapheme(t *testing.T) {
	// "e" with a combining acute forms one cluster over bytes 1..4.
	l := fixedLayout(t, newTestSpanned("ae\u0301b"), LayoutSettings{})
	e := NewTextEditor()

	e.SetPosition(2, l)
	if got := e.Selection().Cursor; got != 4 {
		t.Errorf("cursor = %d, want 4 after snapping out of the cluster", got)
	}
	e.SetPosition(-5, l)
	if got := e.Selection().Cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
	e.SetPosition(99, l)
	if got := e.Selection().Cursor; got != len(l.Text()) {
		t.Errorf("cursor = %d, want the text end", got)
	}
}

func TestMoveCursorWords(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("foo bar"), LayoutSettings{})
	e := NewTextEditor()

	steps := []struct {
		motion Motion
		want   int
	}{
		{Words(1), 3},
		{Words(1), 4},
		{Words(1), 7},
		{Words(-1), 4},
		{Words(-2), 0},
		{Words(2), 4},
	}
	for i, s := range steps {
		e.MoveCursorHor(s.motion, false, l)
		if got := e.Selection().Cursor; got != s.want {
			t.Errorf("step %d: cursor = %d, want %d", i, got, s.want)
		}
	}
}

func TestMoveCursorCollapsesSelection(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("hello"), LayoutSettings{})
	e := NewTextEditor()

	e.SelectRange(Range{1, 4}, l)
	e.MoveCursorHor(Clusters(1), false, l)
	if got := e.Selection(); got.Cursor != 4 || got.Anchor != 4 {
		t.Errorf("selection = %+v, want a caret at the selection end", got)
	}

	e.SelectRange(Range{1, 4}, l)
	e.MoveCursorHor(Clusters(-1), false, l)
	if got := e.Selection(); got.Cursor != 1 || got.Anchor != 1 {
		t.Errorf("selection = %+v, want a caret at the selection start", got)
	}

	// An empty selection moves normally and clamps at the end.
	e.SetPosition(4, l)
	e.MoveCursorHor(Clusters(1), false, l)
	e.MoveCursorHor(Clusters(1), false, l)
	if got := e.Selection().Cursor; got != 5 {
		t.Errorf("cursor = %d, want to stay at the text end", got)
	}
}

func TestMoveCursorExpandsSelection(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("hello"), LayoutSettings{})
	e := NewTextEditor()

	e.SetPosition(1, l)
	e.MoveCursorHor(Clusters(2), true, l)
	if diff := cmp.Diff(Range{1, 3}, e.SelectionRange()); diff != "" {
		t.Errorf("selection range mismatch (-want +got):\n%s", diff)
	}
	if got := e.Selection(); got.Cursor != 3 || got.Anchor != 1 {
		t.Errorf("selection = %+v, want the anchor preserved", got)
	}
}

func TestSelectWordsAtByteRange(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("foo bar"), LayoutSettings{})

	tests := []struct {
		r    Range
		want Range
	}{
		{Range{5, 5}, Range{4, 7}},
		{Range{1, 2}, Range{0, 3}},
		{Range{2, 5}, Range{0, 7}},
	}
	for _, tt := range tests {
		e := NewTextEditor()
		e.SelectWordsAtByteRange(tt.r, l)
		if diff := cmp.Diff(tt.want, e.SelectionRange()); diff != "" {
			t.Errorf("words at %v mismatch (-want +got):\n%s", tt.r, diff)
		}
	}
}

func TestSelectAll(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("foo bar"), LayoutSettings{})
	e := NewTextEditor()

	e.SelectAll(l)
	if diff := cmp.Diff(Range{0, 7}, e.SelectionRange()); diff != "" {
		t.Errorf("selection range mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveCursorVertKeepsColumn(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("foo bar baz"), LayoutSettings{MaxWidth: 85})
	e := NewTextEditor()

	e.SetPosition(1, l)
	e.MoveCursorVert(1, false, l)
	if got := e.Selection().Cursor; got != 9 {
		t.Errorf("cursor = %d, want 9 on the second line", got)
	}
	e.MoveCursorVert(-1, false, l)
	if got := e.Selection().Cursor; got != 1 {
		t.Errorf("cursor = %d, want to return to byte 1", got)
	}
	// Motion past the last line clamps to it.
	e.MoveCursorVert(5, false, l)
	if got := e.Selection().Cursor; got != 9 {
		t.Errorf("cursor = %d, want 9", got)
	}
}

func TestMoveCursorLineStartEnd(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("foo bar baz"), LayoutSettings{MaxWidth: 85})
	e := NewTextEditor()

	// The first wrapped line covers "foo bar" plus its breaking space.
	e.SetPosition(5, l)
	e.MoveCursorLineEnd(false, l)
	if got := e.Selection().Cursor; got != 7 {
		t.Errorf("line end cursor = %d, want 7 before the break", got)
	}
	e.MoveCursorLineStart(false, l)
	if got := e.Selection().Cursor; got != 0 {
		t.Errorf("line start cursor = %d, want 0", got)
	}

	e.SetPosition(9, l)
	e.MoveCursorLineEnd(false, l)
	if got := e.Selection().Cursor; got != 11 {
		t.Errorf("last line end cursor = %d, want the text end", got)
	}
	e.MoveCursorLineStart(false, l)
	if got := e.Selection().Cursor; got != 8 {
		t.Errorf("last line start cursor = %d, want 8", got)
	}
}

func TestInsertTextReplacesSelection(t *testing.T) {
	fonts := testFonts(t)
	l := fixedLayout(t, newTestSpanned("hello"), LayoutSettings{})
	e := NewTextEditor()

	e.SelectRange(Range{1, 3}, l)
	e.InsertText("EY", fonts, l)
	if got := l.Text(); got != "hEYlo" {
		t.Fatalf("text = %q, want %q", got, "hEYlo")
	}
	if got := e.Selection(); got.Cursor != 3 || got.Anchor != 3 {
		t.Errorf("selection = %+v, want a caret after the insertion", got)
	}

	e.InsertText("!", fonts, l)
	if got := l.Text(); got != "hEY!lo" {
		t.Errorf("text = %q, want %q", got, "hEY!lo")
	}
	if got := e.Selection().Cursor; got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}
}

func TestDeleteHor(t *testing.T) {
	fonts := testFonts(t)
	l := fixedLayout(t, newTestSpanned("hello"), LayoutSettings{})
	e := NewTextEditor()

	// Backspace with an empty selection deletes the cluster before the
	// caret.
	e.SetPosition(3, l)
	e.DeleteHor(Clusters(-1), fonts, l)
	if got := l.Text(); got != "helo" {
		t.Fatalf("text = %q, want %q", got, "helo")
	}
	if got := e.Selection().Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}

	// Forward delete removes the cluster after the caret.
	e.DeleteHor(Clusters(1), fonts, l)
	if got := l.Text(); got != "heo" {
		t.Fatalf("text = %q, want %q", got, "heo")
	}
	if got := e.Selection().Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}

	// With a selection the motion is ignored and the selection deleted.
	e.SelectRange(Range{1, 3}, l)
	e.DeleteHor(Clusters(-1), fonts, l)
	if got := l.Text(); got != "h" {
		t.Errorf("text = %q, want %q", got, "h")
	}
	if got := e.Selection().Cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestCursorPositionAndHeight(t *testing.T) {
	l := fixedLayout(t, newTestSpanned("hello"), LayoutSettings{})
	e := NewTextEditor()
	line := l.Lines()[0]

	e.SetPosition(2, l)
	got := e.CursorPositionAndHeight(l)
	want := [3]float32{20, line.Y - line.Descent, line.Height()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("caret geometry mismatch (-want +got):\n%s", diff)
	}
}
