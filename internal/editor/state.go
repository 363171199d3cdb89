package editor

import (
	"image"
)

// State is the transient editor model. It lives as long as the screen is
// presented and is discarded on dismissal unless saved into a meme.
type State struct {
	Top    *Caption
	Bottom *Caption
	Image  image.Image

	Focused       Role
	ShareEnabled  bool
	CameraEnabled bool

	NavBarHidden  bool
	ToolbarHidden bool

	Keyboard KeyboardTracker
}

func NewState(maxRunes int) *State {
	return &State{
		Top:    newCaption(RoleTop, maxRunes),
		Bottom: newCaption(RoleBottom, maxRunes),
	}
}

func (s *State) Caption(role Role) *Caption {
	switch role {
	case RoleTop:
		return s.Top
	case RoleBottom:
		return s.Bottom
	default:
		return nil
	}
}

func (s *State) FocusedCaption() *Caption {
	return s.Caption(s.Focused)
}

// BeginEditing focuses role. A caption still showing its placeholder is
// cleared so the user starts from an empty field. Focusing another caption
// ends editing on the current one first.
func (s *State) BeginEditing(role Role) bool {
	c := s.Caption(role)
	if c == nil {
		return false
	}
	if s.Focused != RoleNone && s.Focused != role {
		s.EndEditing()
	}
	if s.Focused == role {
		return true
	}
	s.Focused = role
	if c.IsPlaceholder() {
		c.SetText("")
	}
	c.MoveCaretToEnd()
	return true
}

// EndEditing releases focus. An empty caption reverts to its placeholder;
// any other text is kept verbatim. It returns the role that lost focus.
func (s *State) EndEditing() Role {
	role := s.Focused
	c := s.Caption(role)
	s.Focused = RoleNone
	if c == nil {
		return RoleNone
	}
	if c.IsEmpty() {
		c.SetText(role.Placeholder())
	}
	return role
}

// SetImage installs the picked source image and enables sharing. A nil image
// leaves the state untouched.
func (s *State) SetImage(img image.Image) bool {
	if img == nil {
		return false
	}
	s.Image = img
	s.ShareEnabled = true
	return true
}

func (s *State) HasImage() bool {
	return s.Image != nil
}

func (s *State) ToolbarsHidden() bool {
	return s.NavBarHidden && s.ToolbarHidden
}

func (s *State) SetToolbarsHidden(hidden bool) {
	s.NavBarHidden = hidden
	s.ToolbarHidden = hidden
}

func (s *State) KeyboardWillShow(height float64) bool {
	return s.Keyboard.WillShow(height, !s.Top.IsEmpty())
}

func (s *State) KeyboardWillHide() {
	s.Keyboard.WillHide()
}

func (s *State) OriginY() float64 {
	return s.Keyboard.OriginY()
}

func (s *State) InsertText(input string) bool {
	c := s.FocusedCaption()
	if c == nil {
		return false
	}
	c.InsertText(input)
	return true
}

func (s *State) Backspace() {
	if c := s.FocusedCaption(); c != nil {
		c.Backspace()
	}
}

func (s *State) DeleteForward() {
	if c := s.FocusedCaption(); c != nil {
		c.DeleteForward()
	}
}
