package desktop

import (
	"testing"

	"mememe/internal/platform"
)

func TestSoftKeyboardPostsEveryShow(t *testing.T) {
	b := New(Config{KeyboardHeight: 216})
	var shows, hides int
	b.Notifications().Subscribe(platform.EventKeyboardWillShow, func(ev platform.Event) {
		shows++
		if ev.KeyboardHeight != 216 {
			t.Fatalf("unexpected height %v", ev.KeyboardHeight)
		}
	})
	b.Notifications().Subscribe(platform.EventKeyboardWillHide, func(platform.Event) { hides++ })

	kb := b.Keyboard()
	kb.Hide()
	kb.Show()
	kb.Show()
	if !kb.Visible() {
		t.Fatalf("keyboard not visible after show")
	}
	kb.Hide()
	kb.Hide()
	if shows != 2 || hides != 1 {
		t.Fatalf("unexpected notifications: shows=%d hides=%d", shows, hides)
	}
}

func TestCameraCapability(t *testing.T) {
	if New(Config{}).Capabilities().Camera {
		t.Fatalf("camera reported without a capture command")
	}
	if New(Config{CameraCommand: "definitely-not-a-real-capture-tool {out}"}).Capabilities().Camera {
		t.Fatalf("camera reported for a missing executable")
	}
	b := New(Config{})
	b.SetCapabilities(platform.Capabilities{Camera: true})
	if !b.Capabilities().Camera {
		t.Fatalf("override ignored")
	}
}
