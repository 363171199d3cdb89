package editor

// KeyboardTracker shifts the editor view up while the soft keyboard is shown.
// Show notifications can arrive more than once per appearance; the guard
// counter makes only the first one since the last hide take effect.
type KeyboardTracker struct {
	counter int
	originY float64
}

// WillShow handles a keyboard-will-show notification. The view moves up by
// height only for the first show after a hide, and only when the top caption
// has text. It reports whether the origin moved.
func (k *KeyboardTracker) WillShow(height float64, topHasText bool) bool {
	prev := k.counter
	k.counter++
	if prev >= 1 || !topHasText {
		return false
	}
	k.originY -= height
	return true
}

func (k *KeyboardTracker) WillHide() {
	k.counter = 0
	k.originY = 0
}

func (k *KeyboardTracker) OriginY() float64 {
	return k.originY
}

func (k *KeyboardTracker) Counter() int {
	return k.counter
}
