package share

import (
	"errors"
	"image"
)

// Completion is what the share surface reports when it closes.
type Completion struct {
	ActivityID string
	Success    bool
	Err        error
}

// Sheet is the activity surface: it holds one image and the installed
// targets until the user picks one or cancels. onComplete runs exactly once
// per Present.
type Sheet struct {
	targets    []Target
	image      image.Image
	onComplete func(Completion)
	visible    bool
}

func NewSheet(targets ...Target) *Sheet {
	return &Sheet{targets: targets}
}

func (s *Sheet) Targets() []Target {
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	return out
}

func (s *Sheet) Visible() bool { return s.visible }

func (s *Sheet) Image() image.Image { return s.image }

// Present opens the sheet for img. A sheet that is already open is cancelled
// first.
func (s *Sheet) Present(img image.Image, onComplete func(Completion)) error {
	if img == nil {
		return ErrNoImage
	}
	if s.visible {
		s.Cancel()
	}
	s.image = img
	s.onComplete = onComplete
	s.visible = true
	return nil
}

// Choose performs the target with the given id and closes the sheet.
func (s *Sheet) Choose(id string) Completion {
	if !s.visible {
		return Completion{ActivityID: id}
	}
	var target Target
	for _, t := range s.targets {
		if t.ID() == id {
			target = t
			break
		}
	}
	if target == nil {
		return Completion{ActivityID: id, Err: errors.New("share: unknown target " + id)}
	}
	c := Completion{ActivityID: id, Success: true}
	if err := target.Perform(s.image); err != nil {
		c.Success = false
		if !errors.Is(err, ErrCancelled) {
			c.Err = err
		}
	}
	s.finish(c)
	return c
}

func (s *Sheet) Cancel() {
	if !s.visible {
		return
	}
	s.finish(Completion{})
}

func (s *Sheet) finish(c Completion) {
	cb := s.onComplete
	s.visible = false
	s.image = nil
	s.onComplete = nil
	if cb != nil {
		cb(c)
	}
}
