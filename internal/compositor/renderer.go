package compositor

import (
	"image"
	"image/color"
	"image/draw"
	"reflect"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"mememe/internal/fonts"
)

// Style is the caption look: white glyphs with a black outline over a black
// backdrop.
type Style struct {
	Fill        color.RGBA
	Stroke      color.RGBA
	Backdrop    color.RGBA
	FontSize    float64
	MinFontSize float64
	StrokeWidth int
	Inset       int
}

func DefaultStyle() Style {
	return Style{
		Fill:        color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Stroke:      color.RGBA{A: 0xFF},
		Backdrop:    color.RGBA{A: 0xFF},
		FontSize:    40,
		MinFontSize: 17,
		StrokeWidth: 3,
		Inset:       24,
	}
}

// Scene is everything that ends up in the flattened meme.
type Scene struct {
	Background image.Image
	Top        string
	Bottom     string
}

type CaptionLayout struct {
	Rect     image.Rectangle
	TextX    int
	Baseline int
	Face     font.Face
	Width    int
}

type SceneLayout struct {
	ImageRect image.Rectangle
	Top       CaptionLayout
	Bottom    CaptionLayout
}

type scaledKey struct {
	src  image.Image
	rect image.Rectangle
}

type Renderer struct {
	style Style
	scale float64
	bank  *fonts.Bank

	cacheKey scaledKey
	scaled   *image.RGBA
}

func NewRenderer(bank *fonts.Bank, style Style) *Renderer {
	return &Renderer{style: style, scale: 1, bank: bank}
}

func (r *Renderer) Style() Style { return r.style }

// SetScale multiplies font size, stroke and inset, e.g. for HiDPI windows.
func (r *Renderer) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	r.scale = scale
}

// Layout positions the image and both captions inside area without drawing.
func (r *Renderer) Layout(area image.Rectangle, scene Scene) SceneLayout {
	out := SceneLayout{}
	if scene.Background != nil {
		out.ImageRect = aspectFit(scene.Background.Bounds(), area)
	}
	inset := r.px(float64(r.style.Inset))
	lineH := r.px(r.style.FontSize * 1.3)
	w := area.Dx() - inset*2
	if w < 1 {
		w = 1
	}
	topRect := image.Rect(area.Min.X+inset, area.Min.Y+inset, area.Min.X+inset+w, area.Min.Y+inset+lineH)
	bottomRect := image.Rect(area.Min.X+inset, area.Max.Y-inset-lineH, area.Min.X+inset+w, area.Max.Y-inset)
	out.Top = r.layoutCaption(topRect, scene.Top)
	out.Bottom = r.layoutCaption(bottomRect, scene.Bottom)
	return out
}

// Draw paints scene into dst inside area and returns the layout used.
// Drawing is deterministic for a given scene, area and scale.
func (r *Renderer) Draw(dst *image.RGBA, area image.Rectangle, scene Scene) SceneLayout {
	layout := r.Layout(area, scene)
	draw.Draw(dst, area, image.NewUniform(r.style.Backdrop), image.Point{}, draw.Src)
	if scene.Background != nil && !layout.ImageRect.Empty() {
		scaled := r.scaledBackground(scene.Background, layout.ImageRect)
		draw.Draw(dst, layout.ImageRect.Intersect(area), scaled, layout.ImageRect.Intersect(area).Min.Sub(layout.ImageRect.Min), draw.Src)
	}
	r.drawCaption(dst, area, layout.Top, scene.Top)
	r.drawCaption(dst, area, layout.Bottom, scene.Bottom)
	return layout
}

// CaretX returns the x position after the first n bytes of text.
func (r *Renderer) CaretX(c CaptionLayout, text string, n int) int {
	if n < 0 {
		n = 0
	}
	if n > len(text) {
		n = len(text)
	}
	return c.TextX + fonts.Measure(c.Face, text[:n])
}

func (r *Renderer) px(v float64) int {
	return int(v*r.scale + 0.5)
}

// layoutCaption picks the largest size between MinFontSize and FontSize at
// which text fits the caption width, then centers it.
func (r *Renderer) layoutCaption(rect image.Rectangle, text string) CaptionLayout {
	size := r.style.FontSize * r.scale
	minSize := r.style.MinFontSize * r.scale
	if minSize <= 0 || minSize > size {
		minSize = size
	}
	avail := rect.Dx() - 2*r.px(float64(r.style.StrokeWidth))
	face := r.bank.Face(fonts.Bold, size)
	width := fonts.Measure(face, text)
	for width > avail && size-1 >= minSize {
		size--
		face = r.bank.Face(fonts.Bold, size)
		width = fonts.Measure(face, text)
	}
	m := face.Metrics()
	ascent := m.Ascent.Round()
	descent := m.Descent.Round()
	return CaptionLayout{
		Rect:     rect,
		TextX:    rect.Min.X + (rect.Dx()-width)/2,
		Baseline: rect.Min.Y + (rect.Dy()+ascent+descent)/2 - descent,
		Face:     face,
		Width:    width,
	}
}

func (r *Renderer) drawCaption(dst *image.RGBA, clip image.Rectangle, c CaptionLayout, text string) {
	if text == "" || c.Face == nil {
		return
	}
	stroke := r.px(float64(r.style.StrokeWidth))
	box := c.Rect.Inset(-stroke).Intersect(clip)
	if box.Empty() {
		return
	}
	mask := image.NewAlpha(box)
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: c.Face,
		Dot:  fixed.Point26_6{X: fixed.I(c.TextX), Y: fixed.I(c.Baseline)},
	}
	d.DrawString(text)
	if stroke > 0 {
		outline := dilate(mask, stroke)
		draw.DrawMask(dst, box, image.NewUniform(r.style.Stroke), image.Point{}, outline, box.Min, draw.Over)
	}
	draw.DrawMask(dst, box, image.NewUniform(r.style.Fill), image.Point{}, mask, box.Min, draw.Over)
}

// scaledBackground scales src into rect. The result is cached per source and
// rect; sources whose type cannot be compared are rescaled every time.
func (r *Renderer) scaledBackground(src image.Image, rect image.Rectangle) *image.RGBA {
	cacheable := reflect.TypeOf(src).Comparable()
	k := scaledKey{rect: rect}
	if cacheable {
		k.src = src
		if r.scaled != nil && r.cacheKey == k {
			return r.scaled
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	if cacheable {
		r.cacheKey = k
		r.scaled = out
	} else {
		r.cacheKey = scaledKey{}
		r.scaled = nil
	}
	return out
}

// aspectFit returns the largest rectangle with src's aspect ratio centered in
// area.
func aspectFit(src, area image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	aw, ah := area.Dx(), area.Dy()
	if sw <= 0 || sh <= 0 || aw <= 0 || ah <= 0 {
		return image.Rectangle{}
	}
	w, h := aw, sh*aw/sw
	if h > ah {
		w, h = sw*ah/sh, ah
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := area.Min.X + (aw-w)/2
	y := area.Min.Y + (ah-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// dilate grows mask by radius pixels using a disk kernel. The result is the
// outline mask drawn underneath the glyphs.
func dilate(mask *image.Alpha, radius int) *image.Alpha {
	b := mask.Bounds()
	out := image.NewAlpha(b)
	type offset struct{ dx, dy int }
	kernel := make([]offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				kernel = append(kernel, offset{dx, dy})
			}
		}
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := mask.Pix[mask.PixOffset(x, y)]
			if v == 0 {
				continue
			}
			for _, k := range kernel {
				px, py := x+k.dx, y+k.dy
				if px < b.Min.X || py < b.Min.Y || px >= b.Max.X || py >= b.Max.Y {
					continue
				}
				i := out.PixOffset(px, py)
				if out.Pix[i] < v {
					out.Pix[i] = v
				}
			}
		}
	}
	return out
}
