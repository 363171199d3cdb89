package app

import (
	"context"
	"fmt"
	"image"
	"unicode/utf8"

	"mememe/internal/compositor"
	"mememe/internal/config"
	"mememe/internal/editor"
	"mememe/internal/fonts"
	"mememe/internal/render"
	"mememe/internal/screen"
	"mememe/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// App runs the meme editor in an ebiten window. When the editor is dismissed
// a fresh one is presented over the same meme store.
type App struct {
	cfg   config.Config
	deps  screen.Deps
	theme ui.Theme
	fonts *fonts.Bank

	ctrl *screen.Controller

	frameBuffer *render.FrameBuffer
	canvas      *ebiten.Image

	preview     *ebiten.Image
	previewFrom image.Image

	uiScales   []float32
	uiScaleIdx int
	status     string
	seenStatus string
	frameTick  uint64
	showHelp   bool
	helpRect   image.Rectangle
	helpClose  image.Rectangle

	screenW int
	screenH int
}

// New builds the app around deps. Style and MaxRunes come from cfg.
func New(cfg config.Config, deps screen.Deps) (*App, error) {
	style := compositor.DefaultStyle()
	style.Backdrop = deps.Theme.ViewBackground
	style.FontSize = cfg.Caption.FontSize
	style.MinFontSize = cfg.Caption.MinFontSize
	style.StrokeWidth = cfg.Caption.StrokeWidth
	deps.Style = style
	deps.MaxRunes = cfg.Caption.MaxRunes
	a := &App{
		cfg:      cfg,
		deps:     deps,
		theme:    deps.Theme,
		fonts:    deps.Fonts,
		uiScales: []float32{1.0, 1.25, 1.5, 2.0},
		status:   "Pick an image to start",
		screenW:  cfg.Window.Width,
		screenH:  cfg.Window.Height,
	}
	if err := a.present(); err != nil {
		return nil, err
	}
	return a, nil
}

// present shows a new editor screen.
func (a *App) present() error {
	ctrl, err := screen.New(a.deps)
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}
	ctrl.SetSize(a.screenW, a.screenH)
	ctrl.SetScale(a.scale())
	ctrl.Appear()
	a.ctrl = ctrl
	a.seenStatus = ""
	return nil
}

func (a *App) Run() error {
	defer func() { a.ctrl.Disappear() }()
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(320, 480, -1, -1)
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game loop: %w", err)
	}
	return nil
}

func (a *App) scale() float32 {
	return a.uiScales[a.uiScaleIdx]
}

func (a *App) Update() error {
	a.frameTick++
	ctx := context.Background()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	sheet := a.ctrl.Sheet()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		switch {
		case a.showHelp:
			a.showHelp = false
		case sheet.Visible():
			a.ctrl.CancelShare()
		case a.ctrl.State().Focused != editor.RoleNone:
			a.ctrl.EndEditing()
		default:
			return ebiten.Termination
		}
		return a.afterInput()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.showHelp = !a.showHelp
	}
	if a.showHelp {
		a.layoutHelpDialogBounds(a.screenW, a.screenH)
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			p := image.Pt(ebiten.CursorPosition())
			if !p.In(a.helpRect) || p.In(a.helpClose) {
				a.showHelp = false
			}
		}
		return nil
	}

	if ctrl && (inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd)) {
		a.bumpUIScale(1)
	}
	if ctrl && (inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract)) {
		a.bumpUIScale(-1)
	}

	x, y := ebiten.CursorPosition()
	if sheet.Visible() {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			a.handleSheetClick(x, y)
		}
		return a.afterInput()
	}
	a.ctrl.Hover(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if !a.handleKeyboardClick(x, y) {
			a.report(a.ctrl.Click(ctx, x, y))
		}
	}

	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO) {
		a.report(a.ctrl.Invoke(ctx, ui.ActionAlbum))
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyK) {
		a.report(a.ctrl.Invoke(ctx, ui.ActionCamera))
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		a.report(a.ctrl.Invoke(ctx, ui.ActionShare))
	}

	if a.ctrl.State().Focused != editor.RoleNone {
		a.handleTextInput(ctrl)
	}
	return a.afterInput()
}

func (a *App) handleTextInput(ctrl bool) {
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		paste, err := clipboard.ReadAll()
		if err != nil {
			a.status = "Paste failed: " + err.Error()
		} else if paste != "" {
			a.ctrl.TypeText(paste)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		a.ctrl.MoveCaret(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		a.ctrl.MoveCaret(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		a.ctrl.MoveCaretToEdge(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		a.ctrl.MoveCaretToEdge(true)
	}
	if ctrl {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.ctrl.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) {
		a.ctrl.DeleteForward()
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		if r < 0x20 || !utf8.ValidRune(r) {
			continue
		}
		a.ctrl.TypeText(string(r))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyKPEnter) {
		a.ctrl.Return()
	}
}

// handleKeyboardClick routes presses on the on-screen keyboard. It reports
// whether the press landed on the panel.
func (a *App) handleKeyboardClick(x, y int) bool {
	kb := a.deps.Platform.Keyboard()
	if !kb.Visible() {
		return false
	}
	layout := ui.ComputeKeyboardLayout(a.screenW, a.screenH, kb.Height(), a.scale())
	if !image.Pt(x, y).In(layout.Panel) {
		return false
	}
	key, ok := layout.HitTest(x, y)
	if !ok {
		return true
	}
	switch key.Kind {
	case ui.KeyChar:
		a.ctrl.TypeText(key.Label)
	case ui.KeySpace:
		a.ctrl.TypeText(" ")
	case ui.KeyBackspace:
		a.ctrl.Backspace()
	case ui.KeyReturn:
		a.ctrl.Return()
	}
	return true
}

func (a *App) handleSheetClick(x, y int) {
	id, cancel := a.sheetLayout().HitTest(x, y)
	switch {
	case cancel:
		a.ctrl.CancelShare()
	case id != "":
		a.ctrl.ChooseShareTarget(id)
	}
}

func (a *App) sheetLayout() ui.SheetLayout {
	sheet := a.ctrl.Sheet()
	rows := make([]ui.SheetRow, 0, len(sheet.Targets()))
	for _, t := range sheet.Targets() {
		rows = append(rows, ui.SheetRow{ID: t.ID(), Label: t.Label()})
	}
	var size image.Point
	if img := sheet.Image(); img != nil {
		size = img.Bounds().Size()
	}
	return ui.ComputeSheetLayout(a.screenW, a.screenH, a.scale(), size, rows)
}

// afterInput picks up the controller's status and replaces a dismissed
// editor with a new one.
func (a *App) afterInput() error {
	if s := a.ctrl.Status(); s != a.seenStatus {
		a.seenStatus = s
		if s != "" {
			a.status = s
		}
	}
	if !a.ctrl.Dismissed() {
		return nil
	}
	a.ctrl.Disappear()
	if err := a.present(); err != nil {
		return err
	}
	if n := a.deps.Store.Len(); n > 0 {
		a.status = fmt.Sprintf("%s (%d saved)", a.status, n)
	}
	return nil
}

func (a *App) report(err error) {
	if err != nil && a.ctrl.Status() == a.seenStatus {
		a.status = err.Error()
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	if outsideWidth < 320 {
		outsideWidth = 320
	}
	if outsideHeight < 480 {
		outsideHeight = 480
	}
	if outsideWidth != a.screenW || outsideHeight != a.screenH {
		a.screenW = outsideWidth
		a.screenH = outsideHeight
		a.ctrl.SetSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func (a *App) bumpUIScale(delta int) {
	prev := a.uiScaleIdx
	a.uiScaleIdx += delta
	if a.uiScaleIdx < 0 {
		a.uiScaleIdx = 0
	}
	if a.uiScaleIdx >= len(a.uiScales) {
		a.uiScaleIdx = len(a.uiScales) - 1
	}
	if prev != a.uiScaleIdx {
		a.fonts.Reset()
		a.ctrl.SetScale(a.scale())
		a.status = fmt.Sprintf("UI scale %.0f%%", a.scale()*100)
	}
}
