package meme

// Store is the application-wide meme collection. It is only appended to from
// the UI loop, so it carries no lock.
type Store struct {
	memes []*Meme
}

func NewStore() *Store {
	return &Store{memes: make([]*Meme, 0, 16)}
}

func (s *Store) Append(m *Meme) {
	if m == nil {
		return
	}
	s.memes = append(s.memes, m)
}

func (s *Store) Len() int {
	return len(s.memes)
}

// All returns the memes oldest first. The returned slice is a copy.
func (s *Store) All() []*Meme {
	out := make([]*Meme, len(s.memes))
	copy(out, s.memes)
	return out
}

func (s *Store) Last() (*Meme, bool) {
	if len(s.memes) == 0 {
		return nil, false
	}
	return s.memes[len(s.memes)-1], true
}
