package platform

type EventType int

const (
	EventUnknown EventType = iota
	EventKeyboardWillShow
	EventKeyboardWillHide
	EventResize
	EventClose
)

func (t EventType) String() string {
	switch t {
	case EventKeyboardWillShow:
		return "keyboard-will-show"
	case EventKeyboardWillHide:
		return "keyboard-will-hide"
	case EventResize:
		return "resize"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

type Event struct {
	Type   EventType
	Width  int
	Height int
	// KeyboardHeight is the end-frame height of the soft keyboard for
	// keyboard events.
	KeyboardHeight float64
}

type Capabilities struct {
	Camera bool
}

// Platform is what the editor screen needs from the host: a notification
// center, the soft keyboard and a capability probe.
type Platform interface {
	Name() string
	Capabilities() Capabilities
	Notifications() *Center
	Keyboard() Keyboard
}

type Keyboard interface {
	Show()
	Hide()
	Visible() bool
	Height() float64
}
