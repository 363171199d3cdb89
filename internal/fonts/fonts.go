package fonts

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type Weight int

const (
	Regular Weight = iota
	Bold
)

var (
	parseOnce sync.Once
	regular   *opentype.Font
	bold      *opentype.Font
	parseErr  error
)

// load parses the embedded Go fonts once.
func load() error {
	parseOnce.Do(func() {
		reg, err := opentype.Parse(goregular.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse regular font: %w", err)
			return
		}
		bol, err := opentype.Parse(gobold.TTF)
		if err != nil {
			parseErr = fmt.Errorf("parse bold font: %w", err)
			return
		}
		regular = reg
		bold = bol
	})
	return parseErr
}

type key struct {
	weight Weight
	size   int // 1/1000 px
}

// Bank caches faces by weight and pixel size. It is not safe for concurrent
// use; the UI loop owns it.
type Bank struct {
	cache map[key]font.Face
}

func NewBank() (*Bank, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return &Bank{cache: map[key]font.Face{}}, nil
}

// Face returns a face at size pixels. If the face cannot be built the 7x13
// bitmap face is returned so drawing still produces something legible.
func (b *Bank) Face(weight Weight, size float64) font.Face {
	k := key{weight: weight, size: int(math.Round(size * 1000))}
	if f, ok := b.cache[k]; ok {
		return f
	}
	base := regular
	if weight == Bold {
		base = bold
	}
	if base == nil || size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[k] = face
	return face
}

// Reset drops cached faces, e.g. after a UI scale change.
func (b *Bank) Reset() {
	for k, f := range b.cache {
		_ = f.Close()
		delete(b.cache, k)
	}
}

// Measure returns the advance width of s in whole pixels.
func Measure(face font.Face, s string) int {
	if face == nil || s == "" {
		return 0
	}
	adv := font.MeasureString(face, s)
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}
