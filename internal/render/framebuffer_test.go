package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestFillRectClipsToBuffer(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	fb.FillRect(-2, -2, 4, 4, red)
	img := fb.Image()
	if got := img.RGBAAt(1, 1); got != red {
		t.Fatalf("expected red at 1,1, got %#v", got)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Fatalf("fill leaked past clip: %#v", got)
	}
}

func TestWrapSharesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	fb, err := Wrap(img)
	if err != nil {
		t.Fatal(err)
	}
	fb.Clear(color.RGBA{B: 0x80, A: 0xFF})
	if got := img.RGBAAt(2, 1); got.B != 0x80 {
		t.Fatalf("wrapped buffer did not write through: %#v", got)
	}
}

func TestWrapRejectsSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8)).SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	if _, err := Wrap(img); !errors.Is(err, ErrNotPacked) {
		t.Fatalf("expected ErrNotPacked, got %v", err)
	}
}

func TestBlendMixesColors(t *testing.T) {
	fb := NewFrameBuffer(1, 1)
	fb.Clear(color.RGBA{A: 0xFF})
	fb.Blend(0, 0, 1, 1, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80})
	got := fb.Image().RGBAAt(0, 0)
	if got.R != 0x80 || got.A != 0xFF {
		t.Fatalf("unexpected blend result: %#v", got)
	}
}

func TestStrokeRectDrawsBorderOnly(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	border := color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xFF}
	fb.StrokeRect(2, 2, 6, 6, 1, border)
	img := fb.Image()
	for _, p := range []image.Point{{2, 2}, {7, 2}, {2, 7}, {7, 7}, {4, 2}, {2, 4}} {
		if got := img.RGBAAt(p.X, p.Y); got != border {
			t.Fatalf("border missing at %v: %#v", p, got)
		}
	}
	if got := img.RGBAAt(4, 4); got == border {
		t.Fatalf("interior painted")
	}
}
