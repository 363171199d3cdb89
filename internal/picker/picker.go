package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/sqweek/dialog"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"mememe/internal/platform"
)

type Source int

const (
	SourcePhotoLibrary Source = iota
	SourceCamera
)

func (s Source) String() string {
	switch s {
	case SourcePhotoLibrary:
		return "photo library"
	case SourceCamera:
		return "camera"
	default:
		return "unknown"
	}
}

var (
	ErrCancelled   = errors.New("picker: cancelled")
	ErrNoImage     = errors.New("picker: selection contains no image")
	ErrUnavailable = errors.New("picker: source unavailable")
)

// MaxDimension bounds the long edge of picked images.
const MaxDimension = 4096

// MaxSourcePixels bounds the size an encoded image may declare before it is
// decoded.
const MaxSourcePixels = 64 << 20

// Picker presents a media selection surface and blocks until the user picks
// or cancels.
type Picker interface {
	Available(src Source) bool
	Pick(ctx context.Context, src Source) (image.Image, error)
}

type Options struct {
	CameraCommand string
	CameraTimeout time.Duration
	Capabilities  platform.Capabilities
}

type Native struct {
	opts Options
}

func NewNative(opts Options) *Native {
	if opts.CameraTimeout <= 0 {
		opts.CameraTimeout = 15 * time.Second
	}
	return &Native{opts: opts}
}

func (n *Native) Available(src Source) bool {
	switch src {
	case SourcePhotoLibrary:
		return true
	case SourceCamera:
		return n.opts.Capabilities.Camera && strings.TrimSpace(n.opts.CameraCommand) != ""
	default:
		return false
	}
}

func (n *Native) Pick(ctx context.Context, src Source) (image.Image, error) {
	if !n.Available(src) {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, src)
	}
	switch src {
	case SourceCamera:
		return n.capture(ctx)
	default:
		return n.openLibrary()
	}
}

func (n *Native) openLibrary() (image.Image, error) {
	path, err := dialog.File().Title("Choose a photo").Filter("Images", "png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp").Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("open photo dialog: %w", err)
	}
	if path == "" {
		return nil, ErrCancelled
	}
	return Load(filepath.Clean(path))
}

// capture runs the configured capture command with {out} replaced by a temp
// file and decodes what it wrote.
func (n *Native) capture(ctx context.Context) (image.Image, error) {
	dir, err := os.MkdirTemp("", "mememe-capture-")
	if err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}
	defer os.RemoveAll(dir)
	out := filepath.Join(dir, "capture.jpg")

	args := expandCommand(n.opts.CameraCommand, out)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, SourceCamera)
	}
	ctx, cancel := context.WithTimeout(ctx, n.opts.CameraTimeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("camera capture: %w", ctx.Err())
		}
		return nil, fmt.Errorf("camera capture: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(out); errors.Is(err, os.ErrNotExist) {
		return nil, ErrCancelled
	}
	return Load(out)
}

func expandCommand(command, out string) []string {
	fields := strings.Fields(command)
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, "{out}", out)
	}
	return fields
}

// Load reads and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	return Extract(f)
}

// Extract decodes an image from r. Anything that does not decode, or that
// declares more than MaxSourcePixels, is reported as ErrNoImage rather than
// yielding a nil image.
func Extract(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrNoImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrNoImage, cfg.Width, cfg.Height, MaxSourcePixels)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	return fitWithin(img, MaxDimension), nil
}

// fitWithin downscales img so neither side exceeds limit.
func fitWithin(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}
	if w >= h {
		h = h * limit / w
		w = limit
	} else {
		w = w * limit / h
		h = limit
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
