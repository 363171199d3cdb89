package render

import (
	"errors"
	"image"
	"image/color"
)

type FrameBuffer struct {
	W      int
	H      int
	Pixels []uint8 // RGBA
}

var ErrNotPacked = errors.New("render: image is not a tightly packed RGBA buffer at origin")

// Wrap paints directly into img's pixels. img must be tightly packed with its
// origin at 0,0, which is what image.NewRGBA returns.
func Wrap(img *image.RGBA) (*FrameBuffer, error) {
	if img == nil {
		return nil, ErrNotPacked
	}
	b := img.Bounds()
	if b.Min != (image.Point{}) || img.Stride != b.Dx()*4 || len(img.Pix) < b.Dx()*b.Dy()*4 {
		return nil, ErrNotPacked
	}
	return &FrameBuffer{W: b.Dx(), H: b.Dy(), Pixels: img.Pix}, nil
}

// Image exposes the buffer as an *image.RGBA sharing the same pixels.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{Pix: fb.Pixels, Stride: fb.W * 4, Rect: image.Rect(0, 0, fb.W, fb.H)}
}

func NewFrameBuffer(w, h int) *FrameBuffer {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FrameBuffer{W: w, H: h, Pixels: make([]uint8, w*h*4)}
}

func (fb *FrameBuffer) Clear(c color.RGBA) {
	for i := 0; i < len(fb.Pixels); i += 4 {
		fb.Pixels[i+0] = c.R
		fb.Pixels[i+1] = c.G
		fb.Pixels[i+2] = c.B
		fb.Pixels[i+3] = c.A
	}
}

func (fb *FrameBuffer) FillRect(x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > fb.W {
		w = fb.W - x
	}
	if y+h > fb.H {
		h = fb.H - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	for row := 0; row < h; row++ {
		off := ((y+row)*fb.W + x) * 4
		for col := 0; col < w; col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = c.R
			fb.Pixels[idx+1] = c.G
			fb.Pixels[idx+2] = c.B
			fb.Pixels[idx+3] = c.A
		}
	}
}

func (fb *FrameBuffer) StrokeRect(x, y, w, h, line int, c color.RGBA) {
	if line <= 0 {
		line = 1
	}
	fb.FillRect(x, y, w, line, c)
	fb.FillRect(x, y+h-line, w, line, c)
	fb.FillRect(x, y, line, h, c)
	fb.FillRect(x+w-line, y, line, h, c)
}

// Blend draws c over the rectangle using its alpha.
func (fb *FrameBuffer) Blend(x, y, w, h int, c color.RGBA) {
	if c.A == 0xFF {
		fb.FillRect(x, y, w, h, c)
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, fb.W, fb.H))
	if r.Empty() {
		return
	}
	a := uint32(c.A)
	inv := 255 - a
	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := (row*fb.W + r.Min.X) * 4
		for col := 0; col < r.Dx(); col++ {
			idx := off + col*4
			fb.Pixels[idx+0] = uint8((uint32(c.R)*a + uint32(fb.Pixels[idx+0])*inv) / 255)
			fb.Pixels[idx+1] = uint8((uint32(c.G)*a + uint32(fb.Pixels[idx+1])*inv) / 255)
			fb.Pixels[idx+2] = uint8((uint32(c.B)*a + uint32(fb.Pixels[idx+2])*inv) / 255)
			fb.Pixels[idx+3] = uint8(a + uint32(fb.Pixels[idx+3])*inv/255)
		}
	}
}
