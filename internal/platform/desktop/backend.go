package desktop

import (
	"os/exec"
	"strings"

	"mememe/internal/platform"
)

type Config struct {
	KeyboardHeight float64
	CameraCommand  string
}

type Backend struct {
	center   *platform.Center
	keyboard *softKeyboard
	caps     platform.Capabilities
}

func New(cfg Config) *Backend {
	center := platform.NewCenter()
	return &Backend{
		center:   center,
		keyboard: &softKeyboard{center: center, height: cfg.KeyboardHeight},
		caps:     platform.Capabilities{Camera: cameraAvailable(cfg.CameraCommand)},
	}
}

func (b *Backend) Name() string                        { return "desktop" }
func (b *Backend) Capabilities() platform.Capabilities { return b.caps }
func (b *Backend) Notifications() *platform.Center     { return b.center }
func (b *Backend) Keyboard() platform.Keyboard         { return b.keyboard }

// SetCapabilities overrides the probed capabilities.
func (b *Backend) SetCapabilities(caps platform.Capabilities) {
	b.caps = caps
}

// cameraAvailable reports whether the capture command's executable resolves.
func cameraAvailable(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}

// softKeyboard stands in for a mobile on-screen keyboard. Every Show posts a
// will-show notification, including while already visible, the same way the
// mobile platform re-announces the keyboard when focus moves between fields.
type softKeyboard struct {
	center  *platform.Center
	height  float64
	visible bool
}

func (k *softKeyboard) Show() {
	k.visible = true
	k.center.Post(platform.Event{Type: platform.EventKeyboardWillShow, KeyboardHeight: k.height})
}

func (k *softKeyboard) Hide() {
	if !k.visible {
		return
	}
	k.visible = false
	k.center.Post(platform.Event{Type: platform.EventKeyboardWillHide, KeyboardHeight: k.height})
}

func (k *softKeyboard) Visible() bool   { return k.visible }
func (k *softKeyboard) Height() float64 { return k.height }
