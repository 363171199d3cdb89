package ui

import (
	"image"
	"testing"
)

func TestSheetLayoutStacksRowsAboveCancel(t *testing.T) {
	rows := []SheetRow{{ID: "clipboard", Label: "Copy"}, {ID: "save_as", Label: "Save As..."}}
	l := ComputeSheetLayout(414, 736, 1, image.Pt(414, 736), rows)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(l.Rows))
	}
	if l.Cancel.Max.Y > 736 || l.Cancel.Min.Y <= l.Panel.Max.Y-1 {
		t.Fatalf("cancel row %v overlaps panel %v", l.Cancel, l.Panel)
	}
	for _, r := range l.Rows {
		if !r.Rect.In(l.Panel) {
			t.Fatalf("row %s %v outside panel %v", r.ID, r.Rect, l.Panel)
		}
		c := r.Rect.Min.Add(r.Rect.Size().Div(2))
		if id, cancel := l.HitTest(c.X, c.Y); id != r.ID || cancel {
			t.Fatalf("row %s hit as %q cancel=%v", r.ID, id, cancel)
		}
	}
	if !l.Preview.In(l.Panel) || l.Preview.Empty() {
		t.Fatalf("preview %v not inside panel %v", l.Preview, l.Panel)
	}
	// 414x736 preview keeps its aspect ratio.
	if got := l.Preview.Dx() * 736 / 414; got-l.Preview.Dy() > 1 || l.Preview.Dy()-got > 1 {
		t.Fatalf("preview %v lost aspect ratio", l.Preview)
	}
}

func TestSheetHitTestCancelsOutsidePanel(t *testing.T) {
	l := ComputeSheetLayout(414, 736, 1, image.Pt(10, 10), []SheetRow{{ID: "a", Label: "A"}})
	if _, cancel := l.HitTest(5, 2); !cancel {
		t.Fatalf("click above the panel should cancel")
	}
	c := l.Cancel.Min.Add(l.Cancel.Size().Div(2))
	if _, cancel := l.HitTest(c.X, c.Y); !cancel {
		t.Fatalf("cancel row did not cancel")
	}
	p := l.Preview.Min.Add(l.Preview.Size().Div(2))
	if id, cancel := l.HitTest(p.X, p.Y); id != "" || cancel {
		t.Fatalf("preview click should be ignored, got %q cancel=%v", id, cancel)
	}
}

func TestKeyboardLayoutKeys(t *testing.T) {
	l := ComputeKeyboardLayout(414, 736, 260, 1)
	if l.Panel != image.Rect(0, 476, 414, 736) {
		t.Fatalf("unexpected panel %v", l.Panel)
	}
	counts := map[KeyKind]int{}
	for _, k := range l.Keys {
		counts[k.Kind]++
		if !k.Rect.In(l.Panel) {
			t.Fatalf("key %q %v outside panel", k.Label, k.Rect)
		}
	}
	if counts[KeyChar] != 26 || counts[KeySpace] != 1 || counts[KeyBackspace] != 1 || counts[KeyReturn] != 1 {
		t.Fatalf("unexpected key counts %v", counts)
	}
	for _, k := range l.Keys {
		c := k.Rect.Min.Add(k.Rect.Size().Div(2))
		got, ok := l.HitTest(c.X, c.Y)
		if !ok || got.Label != k.Label {
			t.Fatalf("key %q hit as %q", k.Label, got.Label)
		}
	}
	if _, ok := l.HitTest(2, 100); ok {
		t.Fatalf("hit outside the keyboard")
	}
}

func TestKeyboardLayoutZeroHeight(t *testing.T) {
	l := ComputeKeyboardLayout(414, 736, 0, 1)
	if len(l.Keys) != 0 {
		t.Fatalf("zero-height keyboard has keys")
	}
}
