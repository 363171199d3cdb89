package ui

import (
	"image"
	"testing"

	"mememe/internal/fonts"
	"mememe/internal/render"
)

func TestComputeLayoutSplitsBarsAndSurface(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(414, 736, theme, 1, Chrome{})
	if l.NavBar != image.Rect(0, 0, 414, 44) {
		t.Fatalf("unexpected nav bar %v", l.NavBar)
	}
	if l.Toolbar != image.Rect(0, 692, 414, 736) {
		t.Fatalf("unexpected toolbar %v", l.Toolbar)
	}
	if l.Surface != image.Rect(0, 44, 414, 692) {
		t.Fatalf("unexpected surface %v", l.Surface)
	}
	if len(l.Buttons) != 4 {
		t.Fatalf("expected 4 buttons, got %d", len(l.Buttons))
	}
}

func TestHitTestSkipsDisabledButtons(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(414, 736, theme, 1, Chrome{ShareEnabled: false, CameraEnabled: false})
	for _, b := range l.Buttons {
		c := b.Rect.Min.Add(b.Rect.Size().Div(2))
		got := l.HitTest(c.X, c.Y)
		switch b.Action {
		case ActionShare, ActionCamera:
			if got != ActionNone {
				t.Fatalf("disabled %s was hit", b.Action)
			}
		default:
			if got != b.Action {
				t.Fatalf("expected %s, got %q", b.Action, got)
			}
		}
	}
	enabled := ComputeLayout(414, 736, theme, 1, Chrome{ShareEnabled: true, CameraEnabled: true})
	for _, b := range enabled.Buttons {
		c := b.Rect.Min.Add(b.Rect.Size().Div(2))
		if got := enabled.HitTest(c.X, c.Y); got != b.Action {
			t.Fatalf("expected %s, got %q", b.Action, got)
		}
	}
	if got := enabled.HitTest(200, 300); got != ActionNone {
		t.Fatalf("surface click hit %q", got)
	}
}

func TestHiddenBarsHaveNoButtons(t *testing.T) {
	l := ComputeLayout(414, 736, DefaultTheme(), 1, Chrome{NavBarHidden: true, ToolbarHidden: true, ShareEnabled: true})
	if len(l.Buttons) != 0 {
		t.Fatalf("hidden bars still expose %d buttons", len(l.Buttons))
	}
	if l.Surface.Empty() {
		t.Fatalf("surface collapsed when bars hidden")
	}
}

func TestDrawShellPaintsBarsOnlyWhenVisible(t *testing.T) {
	bank, err := fonts.NewBank()
	if err != nil {
		t.Fatal(err)
	}
	theme := DefaultTheme()
	fb := render.NewFrameBuffer(320, 480)

	chrome := Chrome{ShareEnabled: true}
	l := ComputeLayout(fb.W, fb.H, theme, 1, chrome)
	DrawShell(fb, l, theme, chrome, bank, 1, image.Pt(-1, -1))
	if got := fb.Image().RGBAAt(160, 2); got != theme.NavBar {
		t.Fatalf("nav bar not painted: %#v", got)
	}

	hidden := Chrome{NavBarHidden: true, ToolbarHidden: true}
	l = ComputeLayout(fb.W, fb.H, theme, 1, hidden)
	DrawShell(fb, l, theme, hidden, bank, 1, image.Pt(-1, -1))
	if got := fb.Image().RGBAAt(160, 2); got != theme.ViewBackground {
		t.Fatalf("hidden nav bar painted: %#v", got)
	}
	if got := fb.Image().RGBAAt(160, 478); got != theme.ViewBackground {
		t.Fatalf("hidden toolbar painted: %#v", got)
	}
}

func TestDrawShellOutlinesHoveredButton(t *testing.T) {
	bank, err := fonts.NewBank()
	if err != nil {
		t.Fatal(err)
	}
	theme := DefaultTheme()
	fb := render.NewFrameBuffer(320, 480)
	chrome := Chrome{ShareEnabled: true}
	l := ComputeLayout(fb.W, fb.H, theme, 1, chrome)

	var album Button
	for _, b := range l.Buttons {
		if b.Action == ActionAlbum {
			album = b
		}
	}
	DrawShell(fb, l, theme, chrome, bank, 1, album.Rect.Min.Add(image.Pt(2, 2)))
	img := fb.Image()
	if got := img.RGBAAt(album.Rect.Min.X, album.Rect.Min.Y+album.Rect.Dy()/2); got != theme.Border {
		t.Fatalf("hovered button left edge not outlined: %#v", got)
	}
	if got := img.RGBAAt(album.Rect.Min.X+1, album.Rect.Min.Y+1); got != theme.ButtonHover {
		t.Fatalf("hovered button not filled: %#v", got)
	}
}
