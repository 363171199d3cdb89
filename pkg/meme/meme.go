package meme

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"image"
	"image/draw"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

var (
	ErrNoSourceImage = errors.New("meme: source image required")
	ErrNoMemedImage  = errors.New("meme: composited image required")
)

// Meme is a finished composition. Fields are only reachable through accessors
// so a stored record cannot be altered after construction.
type Meme struct {
	id          string
	topText     string
	bottomText  string
	origImage   image.Image
	memedImage  *image.RGBA
	createdUnix int64
	fingerprint [32]byte
}

func New(topText, bottomText string, orig image.Image, memed image.Image) (*Meme, error) {
	if orig == nil {
		return nil, ErrNoSourceImage
	}
	if memed == nil {
		return nil, ErrNoMemedImage
	}
	flat := cloneRGBA(memed)
	return &Meme{
		id:          uuid.NewString(),
		topText:     topText,
		bottomText:  bottomText,
		origImage:   orig,
		memedImage:  flat,
		createdUnix: time.Now().Unix(),
		fingerprint: Fingerprint(flat),
	}, nil
}

func (m *Meme) ID() string             { return m.id }
func (m *Meme) TopText() string        { return m.topText }
func (m *Meme) BottomText() string     { return m.bottomText }
func (m *Meme) OrigImage() image.Image { return m.origImage }
func (m *Meme) CreatedUnix() int64     { return m.createdUnix }
func (m *Meme) Fingerprint() [32]byte  { return m.fingerprint }

// MemedImage returns a copy of the composited bitmap.
func (m *Meme) MemedImage() *image.RGBA { return cloneRGBA(m.memedImage) }

// ShortID is the first eight hex digits of the fingerprint.
func (m *Meme) ShortID() string {
	return hex.EncodeToString(m.fingerprint[:4])
}

// Fingerprint hashes the visible content of img: its dimensions followed by
// its pixels in RGBA order. Two images with equal fingerprints render the same.
func Fingerprint(img image.Image) [32]byte {
	if img == nil {
		return [32]byte{}
	}
	rgba := cloneRGBA(img)
	b := rgba.Bounds()
	h, err := blake2b.New256(nil)
	if err != nil {
		return [32]byte{}
	}
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(b.Dy()))
	h.Write(dims[:])
	for y := 0; y < b.Dy(); y++ {
		off := y * rgba.Stride
		h.Write(rgba.Pix[off : off+b.Dx()*4])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func cloneRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
