package ui

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"mememe/internal/fonts"
	"mememe/internal/render"
)

type Action string

const (
	ActionNone   Action = ""
	ActionShare  Action = "share"
	ActionCancel Action = "cancel"
	ActionAlbum  Action = "album"
	ActionCamera Action = "camera"
)

type Layout struct {
	NavBar  image.Rectangle
	Toolbar image.Rectangle
	Surface image.Rectangle
	Buttons []Button
}

type Button struct {
	Action  Action
	Label   string
	Rect    image.Rectangle
	Enabled bool
}

// Chrome is the part of the editor state the bars depend on.
type Chrome struct {
	NavBarHidden  bool
	ToolbarHidden bool
	ShareEnabled  bool
	CameraEnabled bool
}

func ComputeLayout(w, h int, theme Theme, scale float32, chrome Chrome) Layout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	navH := dp(theme.NavBarHeightDp)
	toolH := dp(theme.ToolbarHeightDp)
	if navH+toolH > h {
		navH, toolH = h/2, h-h/2
	}
	layout := Layout{
		NavBar:  image.Rect(0, 0, w, navH),
		Toolbar: image.Rect(0, h-toolH, w, h),
		Surface: image.Rect(0, navH, w, h-toolH),
	}

	pad := dp(8)
	bw := dp(84)
	if bw*2+pad*3 > w {
		bw = (w - pad*3) / 2
	}
	if !chrome.NavBarHidden {
		layout.Buttons = append(layout.Buttons,
			Button{Action: ActionShare, Label: "Share", Rect: image.Rect(pad, pad/2, pad+bw, navH-pad/2), Enabled: chrome.ShareEnabled},
			Button{Action: ActionCancel, Label: "Cancel", Rect: image.Rect(w-pad-bw, pad/2, w-pad, navH-pad/2), Enabled: true},
		)
	}
	if !chrome.ToolbarHidden {
		mid := w / 2
		layout.Buttons = append(layout.Buttons,
			Button{Action: ActionCamera, Label: "Camera", Rect: image.Rect(mid-pad-bw, h-toolH+pad/2, mid-pad, h-pad/2), Enabled: chrome.CameraEnabled},
			Button{Action: ActionAlbum, Label: "Album", Rect: image.Rect(mid+pad, h-toolH+pad/2, mid+pad+bw, h-pad/2), Enabled: true},
		)
	}
	return layout
}

// HitTest returns the enabled button under x,y.
func (l Layout) HitTest(x, y int) Action {
	p := image.Pt(x, y)
	for _, b := range l.Buttons {
		if b.Enabled && p.In(b.Rect) {
			return b.Action
		}
	}
	return ActionNone
}

// DrawShell paints the background and whatever bars are visible. The surface
// itself is left to the caller.
func DrawShell(fb *render.FrameBuffer, layout Layout, theme Theme, chrome Chrome, bank *fonts.Bank, scale float32, hover image.Point) {
	fb.Clear(theme.ViewBackground)

	if !chrome.NavBarHidden {
		r := layout.NavBar
		fb.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), theme.NavBar)
		fb.FillRect(r.Min.X, r.Max.Y-1, r.Dx(), 1, theme.Border)
	}
	if !chrome.ToolbarHidden {
		r := layout.Toolbar
		fb.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), theme.Toolbar)
		fb.FillRect(r.Min.X, r.Min.Y, r.Dx(), 1, theme.Border)
	}

	if scale <= 0 {
		scale = 1
	}
	face := bank.Face(fonts.Regular, theme.ButtonFontPx*float64(scale))
	for _, b := range layout.Buttons {
		fg := theme.ButtonText
		if !b.Enabled {
			fg = theme.ButtonDisabled
		} else if hover.In(b.Rect) {
			fb.FillRect(b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Dx(), b.Rect.Dy(), theme.ButtonHover)
			fb.StrokeRect(b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Dx(), b.Rect.Dy(), 1, theme.Border)
		}
		drawLabel(fb, face, b.Label, b.Rect, fg)
	}
}

func drawLabel(fb *render.FrameBuffer, face font.Face, label string, r image.Rectangle, c color.RGBA) {
	tw := fonts.Measure(face, label)
	m := face.Metrics()
	ascent := m.Ascent.Round()
	descent := m.Descent.Round()
	x := r.Min.X + (r.Dx()-tw)/2
	baseline := r.Min.Y + (r.Dy()+ascent+descent)/2 - descent
	d := &font.Drawer{
		Dst:  fb.Image(),
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(baseline)},
	}
	d.DrawString(label)
}
