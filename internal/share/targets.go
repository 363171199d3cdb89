package share

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sqweek/dialog"
	"golang.design/x/clipboard"
)

var (
	ErrCancelled = errors.New("share: cancelled")
	ErrNoImage   = errors.New("share: nothing to share")
)

// Target is one installed sharing destination.
type Target interface {
	ID() string
	Label() string
	Perform(img image.Image) error
}

func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func writePNG(path string, img image.Image) error {
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// ClipboardTarget copies the meme to the system clipboard as a PNG.
type ClipboardTarget struct{}

func (ClipboardTarget) ID() string    { return "clipboard" }
func (ClipboardTarget) Label() string { return "Copy" }

func (ClipboardTarget) Perform(img image.Image) error {
	clipboardOnce.Do(func() { clipboardErr = clipboard.Init() })
	if clipboardErr != nil {
		return fmt.Errorf("clipboard unavailable: %w", clipboardErr)
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// SaveAsTarget asks for a destination with the native save dialog.
type SaveAsTarget struct{}

func (SaveAsTarget) ID() string    { return "save_as" }
func (SaveAsTarget) Label() string { return "Save As..." }

func (SaveAsTarget) Perform(img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	path, err := dialog.File().Title("Save meme").Filter("PNG image", "png").Save()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return ErrCancelled
		}
		return fmt.Errorf("save dialog: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		return ErrCancelled
	}
	if filepath.Ext(path) == "" {
		path += ".png"
	}
	return writePNG(filepath.Clean(path), img)
}

// DirectoryTarget drops the meme into a fixed directory.
type DirectoryTarget struct {
	Dir string
	Now func() time.Time

	lastPath string
}

func NewDirectoryTarget(dir string) *DirectoryTarget {
	return &DirectoryTarget{Dir: dir, Now: time.Now}
}

func (t *DirectoryTarget) ID() string    { return "save_to_dir" }
func (t *DirectoryTarget) Label() string { return "Save to " + filepath.Base(t.Dir) }

func (t *DirectoryTarget) Perform(img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	if strings.TrimSpace(t.Dir) == "" {
		return errors.New("share: no save directory configured")
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	name := fmt.Sprintf("meme-%s-%s.png", now().Format("20060102-150405"), uuid.NewString()[:8])
	path := filepath.Join(t.Dir, name)
	if err := writePNG(path, img); err != nil {
		return err
	}
	t.lastPath = path
	return nil
}

// LastPath is the file written by the most recent successful Perform.
func (t *DirectoryTarget) LastPath() string { return t.lastPath }
