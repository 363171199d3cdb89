package app

import (
	"image"
	"image/color"

	"mememe/internal/fonts"
	"mememe/internal/render"
	"mememe/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

func (a *App) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if a.frameBuffer == nil || a.frameBuffer.W != w || a.frameBuffer.H != h {
		a.frameBuffer = render.NewFrameBuffer(w, h)
		a.canvas = ebiten.NewImage(w, h)
	}
	if w != a.ctrl.Size().X || h != a.ctrl.Size().Y {
		a.ctrl.SetSize(w, h)
	}
	screen.Fill(a.theme.ViewBackground)

	if err := a.ctrl.Draw(a.frameBuffer.Image()); err != nil {
		a.status = "Draw failed: " + err.Error()
		return
	}
	a.canvas.WritePixels(a.frameBuffer.Pixels)
	origin := a.ctrl.OriginY()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, origin)
	screen.DrawImage(a.canvas, op)

	a.drawCaret(screen, origin)
	a.drawStatus(screen, origin)
	a.drawKeyboard(screen, w, h)
	a.drawShareSheet(screen)
	if a.showHelp {
		a.drawHelpOverlay(screen)
	}
}

func (a *App) drawCaret(screen *ebiten.Image, origin float64) {
	r, ok := a.ctrl.CaretRect()
	if !ok || (a.frameTick/30)%2 != 0 {
		return
	}
	a.drawFilledRectOnScreen(screen, r.Add(image.Pt(0, int(origin))), a.theme.Caret)
}

// drawStatus writes the last outcome in the middle of the nav bar, between
// the Share and Cancel buttons.
func (a *App) drawStatus(screen *ebiten.Image, origin float64) {
	if a.status == "" || a.ctrl.State().NavBarHidden {
		return
	}
	layout := a.ctrl.Layout()
	left, right := layout.NavBar.Min.X, layout.NavBar.Max.X
	for _, b := range layout.Buttons {
		if b.Rect.Min.Y >= layout.NavBar.Max.Y {
			continue
		}
		if b.Rect.Max.X <= layout.NavBar.Dx()/2 && b.Rect.Max.X > left {
			left = b.Rect.Max.X
		}
		if b.Rect.Min.X >= layout.NavBar.Dx()/2 && b.Rect.Min.X < right {
			right = b.Rect.Min.X
		}
	}
	face := a.fonts.Face(fonts.Regular, 12*float64(a.scale()))
	msg := truncateToWidth(face, a.status, right-left-8)
	tw := fonts.Measure(face, msg)
	x := left + (right-left-tw)/2
	y := layout.NavBar.Min.Y + layout.NavBar.Dy()/2 + face.Metrics().Ascent.Round()/2 + int(origin)
	text.Draw(screen, msg, face, x, y, a.theme.StatusText)
}

func (a *App) drawKeyboard(screen *ebiten.Image, w, h int) {
	kb := a.deps.Platform.Keyboard()
	if !kb.Visible() {
		return
	}
	layout := ui.ComputeKeyboardLayout(w, h, kb.Height(), a.scale())
	a.drawFilledRectOnScreen(screen, layout.Panel, a.theme.KeyboardPanel)
	face := a.fonts.Face(fonts.Regular, 15*float64(a.scale()))
	for _, k := range layout.Keys {
		a.drawFilledRectOnScreen(screen, k.Rect, a.theme.KeyboardKey)
		drawCenteredText(screen, face, k.Label, k.Rect, a.theme.SheetText)
	}
}

func (a *App) drawShareSheet(screen *ebiten.Image) {
	sheet := a.ctrl.Sheet()
	if !sheet.Visible() {
		a.preview, a.previewFrom = nil, nil
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	layout := a.sheetLayout()
	a.drawFilledRectOnScreen(screen, image.Rect(0, 0, w, h), a.theme.SheetBackdrop)
	a.drawFilledRectOnScreen(screen, layout.Panel, a.theme.SheetPanel)
	a.drawFilledRectOnScreen(screen, layout.Cancel, a.theme.SheetPanel)

	if img := sheet.Image(); img != nil && !layout.Preview.Empty() {
		if a.previewFrom != img {
			a.preview = ebiten.NewImageFromImage(img)
			a.previewFrom = img
		}
		b := img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(layout.Preview.Dx())/float64(b.Dx()), float64(layout.Preview.Dy())/float64(b.Dy()))
		op.GeoM.Translate(float64(layout.Preview.Min.X), float64(layout.Preview.Min.Y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(a.preview, op)
	}

	face := a.fonts.Face(fonts.Regular, a.theme.ButtonFontPx*float64(a.scale()))
	bold := a.fonts.Face(fonts.Bold, a.theme.ButtonFontPx*float64(a.scale()))
	for _, r := range layout.Rows {
		vector.StrokeLine(screen, float32(r.Rect.Min.X), float32(r.Rect.Min.Y), float32(r.Rect.Max.X), float32(r.Rect.Min.Y), 1, a.theme.Border, false)
		drawCenteredText(screen, face, r.Label, r.Rect, a.theme.ButtonText)
	}
	drawCenteredText(screen, bold, "Cancel", layout.Cancel, a.theme.ButtonText)
}

func (a *App) layoutHelpDialogBounds(w, h int) {
	panelW := int(float64(w) * 0.86)
	panelH := int(float64(h) * 0.6)
	if panelW > w-20 {
		panelW = w - 20
	}
	if panelH > h-20 {
		panelH = h - 20
	}
	px := (w - panelW) / 2
	py := (h - panelH) / 2
	a.helpRect = image.Rect(px, py, px+panelW, py+panelH)
	a.helpClose = image.Rect(px+panelW-90, py+12, px+panelW-12, py+42)
}

var helpLines = []string{
	"Ctrl+O: Pick from album | Ctrl+K: Camera",
	"Ctrl+S: Share",
	"Click TOP or BOTTOM to edit a caption",
	"Enter ends editing | Ctrl+V pastes",
	"Ctrl+= / Ctrl+-: UI scale",
	"Esc: end editing, close sheet or quit",
	"F1 or Esc closes this dialog",
}

func (a *App) drawHelpOverlay(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	a.layoutHelpDialogBounds(w, h)
	r := a.helpRect
	a.drawFilledRectOnScreen(screen, image.Rect(0, 0, w, h), a.theme.SheetBackdrop)
	a.drawFilledRectOnScreen(screen, r, a.theme.SheetPanel)
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, a.theme.Border, false)

	face := a.fonts.Face(fonts.Regular, 13*float64(a.scale()))
	a.drawFilledRectOnScreen(screen, a.helpClose, a.theme.ButtonHover)
	drawCenteredText(screen, face, "Close", a.helpClose, a.theme.ButtonText)

	titleFace := a.fonts.Face(fonts.Bold, 16*float64(a.scale()))
	text.Draw(screen, "Help", titleFace, r.Min.X+20, r.Min.Y+32, a.theme.SheetText)

	y := r.Min.Y + 70
	for _, l := range helpLines {
		text.Draw(screen, truncateToWidth(face, l, r.Dx()-40), face, r.Min.X+20, y, a.theme.SheetText)
		y += int(24 * a.scale())
	}
}

func (a *App) drawFilledRectOnScreen(screen *ebiten.Image, r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
}

func drawCenteredText(screen *ebiten.Image, face font.Face, s string, r image.Rectangle, c color.RGBA) {
	s = truncateToWidth(face, s, r.Dx()-4)
	tw := fonts.Measure(face, s)
	m := face.Metrics()
	ascent, descent := m.Ascent.Round(), m.Descent.Round()
	x := r.Min.X + (r.Dx()-tw)/2
	y := r.Min.Y + (r.Dy()+ascent+descent)/2 - descent
	text.Draw(screen, s, face, x, y, c)
}

// truncateToWidth shortens s with an ellipsis until it fits in width pixels.
func truncateToWidth(face font.Face, s string, width int) string {
	if fonts.Measure(face, s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		out := string(runes) + "..."
		if fonts.Measure(face, out) <= width {
			return out
		}
	}
	return ""
}
