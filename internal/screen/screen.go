package screen

import (
	"context"
	"errors"
	"fmt"
	"image"

	"mememe/internal/compositor"
	"mememe/internal/editor"
	"mememe/internal/fonts"
	"mememe/internal/picker"
	"mememe/internal/platform"
	"mememe/internal/render"
	"mememe/internal/share"
	"mememe/internal/ui"
	"mememe/pkg/meme"
)

var (
	ErrShareDisabled = errors.New("screen: share needs a picked image")
	ErrMissingDeps   = errors.New("screen: missing dependency")
)

// Deps are the collaborators an editor screen is built with. Store is owned
// by the caller and outlives the screen.
type Deps struct {
	Store    *meme.Store
	Picker   picker.Picker
	Sheet    *share.Sheet
	Platform platform.Platform
	Fonts    *fonts.Bank
	Theme    ui.Theme
	Style    compositor.Style
	MaxRunes int
}

// Controller is the meme editor screen. All methods must be called from the
// UI loop.
type Controller struct {
	deps     Deps
	state    *editor.State
	renderer *compositor.Renderer
	scope    *platform.Scope

	size  image.Point
	scale float32
	hover image.Point

	layout      ui.Layout
	sceneLayout compositor.SceneLayout

	status    string
	dismissed bool
}

func New(deps Deps) (*Controller, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingDeps)
	case deps.Picker == nil:
		return nil, fmt.Errorf("%w: picker", ErrMissingDeps)
	case deps.Sheet == nil:
		return nil, fmt.Errorf("%w: share sheet", ErrMissingDeps)
	case deps.Platform == nil:
		return nil, fmt.Errorf("%w: platform", ErrMissingDeps)
	case deps.Fonts == nil:
		return nil, fmt.Errorf("%w: fonts", ErrMissingDeps)
	}
	if deps.MaxRunes <= 0 {
		deps.MaxRunes = 64
	}
	c := &Controller{
		deps:     deps,
		state:    editor.NewState(deps.MaxRunes),
		renderer: compositor.NewRenderer(deps.Fonts, deps.Style),
		size:     image.Pt(414, 736),
		scale:    1,
		hover:    image.Pt(-1, -1),
	}
	c.relayout()
	return c, nil
}

// Appear is called each time the screen becomes visible. It refreshes the
// camera capability and registers for keyboard notifications.
func (c *Controller) Appear() {
	c.state.CameraEnabled = c.deps.Picker.Available(picker.SourceCamera)
	c.relayout()
	if c.scope != nil {
		return
	}
	c.scope = c.deps.Platform.Notifications().NewScope()
	c.scope.Subscribe(platform.EventKeyboardWillShow, c.keyboardWillShow)
	c.scope.Subscribe(platform.EventKeyboardWillHide, c.keyboardWillHide)
}

// Disappear drops the keyboard registrations. It is safe to call repeatedly.
func (c *Controller) Disappear() {
	c.scope.Close()
	c.scope = nil
}

func (c *Controller) keyboardWillShow(ev platform.Event) {
	if c.state.KeyboardWillShow(ev.KeyboardHeight) {
		logDebug("keyboard shown, origin %.0f", c.state.OriginY())
	}
}

func (c *Controller) keyboardWillHide(platform.Event) {
	c.state.KeyboardWillHide()
}

func (c *Controller) State() *editor.State           { return c.state }
func (c *Controller) Status() string                 { return c.status }
func (c *Controller) Dismissed() bool                { return c.dismissed }
func (c *Controller) Sheet() *share.Sheet            { return c.deps.Sheet }
func (c *Controller) OriginY() float64               { return c.state.OriginY() }
func (c *Controller) Layout() ui.Layout              { return c.layout }
func (c *Controller) Renderer() *compositor.Renderer { return c.renderer }

func (c *Controller) SetSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.size = image.Pt(w, h)
	c.relayout()
}

func (c *Controller) SetScale(scale float32) {
	if scale <= 0 {
		scale = 1
	}
	c.scale = scale
	c.renderer.SetScale(float64(scale))
	c.relayout()
}

// Size, ToolbarsHidden, SetToolbarsHidden and DrawHierarchy make the screen a
// compositor.View.
func (c *Controller) Size() image.Point { return c.size }

func (c *Controller) ToolbarsHidden() bool { return c.state.ToolbarsHidden() }

func (c *Controller) SetToolbarsHidden(hidden bool) {
	c.state.SetToolbarsHidden(hidden)
	c.relayout()
}

func (c *Controller) DrawHierarchy(dst *image.RGBA) error {
	return c.paint(dst, image.Pt(-1, -1))
}

// Draw renders the screen for display, with hover feedback on the bars.
func (c *Controller) Draw(dst *image.RGBA) error {
	return c.paint(dst, c.hover)
}

func (c *Controller) paint(dst *image.RGBA, hover image.Point) error {
	fb, err := render.Wrap(dst)
	if err != nil {
		return err
	}
	if fb.W != c.size.X || fb.H != c.size.Y {
		return fmt.Errorf("draw target is %dx%d, view is %dx%d", fb.W, fb.H, c.size.X, c.size.Y)
	}
	c.relayout()
	ui.DrawShell(fb, c.layout, c.deps.Theme, c.chrome(), c.deps.Fonts, c.scale, hover)
	c.sceneLayout = c.renderer.Draw(dst, c.layout.Surface, c.scene())
	return nil
}

func (c *Controller) chrome() ui.Chrome {
	return ui.Chrome{
		NavBarHidden:  c.state.NavBarHidden,
		ToolbarHidden: c.state.ToolbarHidden,
		ShareEnabled:  c.state.ShareEnabled,
		CameraEnabled: c.state.CameraEnabled,
	}
}

func (c *Controller) scene() compositor.Scene {
	return compositor.Scene{
		Background: c.state.Image,
		Top:        c.state.Top.String(),
		Bottom:     c.state.Bottom.String(),
	}
}

func (c *Controller) relayout() {
	c.layout = ui.ComputeLayout(c.size.X, c.size.Y, c.deps.Theme, c.scale, c.chrome())
	c.sceneLayout = c.renderer.Layout(c.layout.Surface, c.scene())
}

// CaretRect is where the text caret goes in view coordinates, if a caption
// is being edited.
func (c *Controller) CaretRect() (image.Rectangle, bool) {
	field := c.state.FocusedCaption()
	if field == nil {
		return image.Rectangle{}, false
	}
	cl := c.sceneLayout.Top
	if field.Role == editor.RoleBottom {
		cl = c.sceneLayout.Bottom
	}
	x := c.renderer.CaretX(cl, field.String(), field.CaretByte)
	h := cl.Face.Metrics().Height.Ceil()
	top := cl.Baseline - cl.Face.Metrics().Ascent.Ceil()
	w := int(2*c.scale + 0.5)
	return image.Rect(x, top, x+w, top+h), true
}

// toView converts window coordinates to view coordinates, undoing the
// keyboard shift.
func (c *Controller) toView(x, y int) image.Point {
	return image.Pt(x, y-int(c.state.OriginY()))
}

func (c *Controller) Hover(x, y int) {
	c.hover = c.toView(x, y)
}

// Click routes a pointer press in window coordinates.
func (c *Controller) Click(ctx context.Context, x, y int) error {
	if c.deps.Sheet.Visible() || c.dismissed {
		return nil
	}
	p := c.toView(x, y)
	c.relayout()
	if action := c.layout.HitTest(p.X, p.Y); action != ui.ActionNone {
		return c.Invoke(ctx, action)
	}
	switch {
	case p.In(c.sceneLayout.Top.Rect):
		c.FocusCaption(editor.RoleTop)
	case p.In(c.sceneLayout.Bottom.Rect):
		c.FocusCaption(editor.RoleBottom)
	default:
		c.EndEditing()
	}
	return nil
}

func (c *Controller) Invoke(ctx context.Context, action ui.Action) error {
	switch action {
	case ui.ActionShare:
		return c.Share()
	case ui.ActionCancel:
		c.Cancel()
	case ui.ActionAlbum:
		return c.PickImage(ctx, picker.SourcePhotoLibrary)
	case ui.ActionCamera:
		if !c.state.CameraEnabled {
			return nil
		}
		return c.PickImage(ctx, picker.SourceCamera)
	}
	return nil
}

// PickImage presents the picker and installs the result. Cancelling, or a
// selection that holds no image, leaves the editor unchanged.
func (c *Controller) PickImage(ctx context.Context, src picker.Source) error {
	c.EndEditing()
	img, err := c.deps.Picker.Pick(ctx, src)
	if err != nil {
		if errors.Is(err, picker.ErrCancelled) {
			logDebug("%s picker cancelled", src)
			return nil
		}
		c.status = "Could not load image: " + err.Error()
		return err
	}
	if !c.state.SetImage(img) {
		c.status = "Could not load image"
		return picker.ErrNoImage
	}
	c.status = "Image selected"
	c.relayout()
	return nil
}

func (c *Controller) FocusCaption(role editor.Role) {
	if !c.state.BeginEditing(role) {
		return
	}
	c.relayout()
	c.deps.Platform.Keyboard().Show()
}

// Return ends editing and dismisses the keyboard, like a return key press.
func (c *Controller) Return() {
	c.EndEditing()
}

func (c *Controller) EndEditing() {
	if c.state.Focused == editor.RoleNone {
		return
	}
	c.state.EndEditing()
	c.relayout()
	if kb := c.deps.Platform.Keyboard(); kb.Visible() {
		kb.Hide()
	}
}

func (c *Controller) TypeText(s string) {
	if c.state.InsertText(s) {
		c.relayout()
	}
}

func (c *Controller) Backspace() {
	c.state.Backspace()
	c.relayout()
}

func (c *Controller) DeleteForward() {
	c.state.DeleteForward()
	c.relayout()
}

func (c *Controller) MoveCaret(delta int) {
	field := c.state.FocusedCaption()
	if field == nil {
		return
	}
	switch {
	case delta < 0:
		field.MoveCaretLeft()
	case delta > 0:
		field.MoveCaretRight()
	}
}

func (c *Controller) MoveCaretToEdge(end bool) {
	field := c.state.FocusedCaption()
	if field == nil {
		return
	}
	if end {
		field.MoveCaretToEnd()
	} else {
		field.MoveCaretToStart()
	}
}

// GenerateMemedImage flattens the editor with the bars hidden.
func (c *Controller) GenerateMemedImage() (*image.RGBA, error) {
	return compositor.Capture(c)
}

// Share composites the meme and offers it on the share sheet. The meme is
// saved only once a target reports success.
func (c *Controller) Share() error {
	if !c.state.ShareEnabled || !c.state.HasImage() {
		return ErrShareDisabled
	}
	c.EndEditing()
	memed, err := c.GenerateMemedImage()
	if err != nil {
		c.status = "Could not render meme: " + err.Error()
		return err
	}
	return c.deps.Sheet.Present(memed, func(done share.Completion) {
		c.shareCompleted(memed, done)
	})
}

func (c *Controller) ChooseShareTarget(id string) share.Completion {
	return c.deps.Sheet.Choose(id)
}

func (c *Controller) CancelShare() {
	c.deps.Sheet.Cancel()
}

func (c *Controller) shareCompleted(memed *image.RGBA, done share.Completion) {
	if !done.Success {
		if done.Err != nil {
			c.status = "Share failed: " + done.Err.Error()
		} else {
			c.status = ""
		}
		return
	}
	if err := c.save(memed); err != nil {
		c.status = "Could not save meme: " + err.Error()
		return
	}
	c.status = "Shared via " + done.ActivityID
}

func (c *Controller) save(memed *image.RGBA) error {
	m, err := meme.New(c.state.Top.String(), c.state.Bottom.String(), c.state.Image, memed)
	if err != nil {
		return err
	}
	c.deps.Store.Append(m)
	logDebug("saved meme %s (%d total)", m.ShortID(), c.deps.Store.Len())
	c.dismiss()
	return nil
}

// Cancel dismisses the editor without saving.
func (c *Controller) Cancel() {
	c.EndEditing()
	c.deps.Sheet.Cancel()
	c.status = "Meme discarded"
	c.dismiss()
}

func (c *Controller) dismiss() {
	c.dismissed = true
	c.Disappear()
}
