package picker

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"mememe/internal/platform"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestExtractDecodesPNG(t *testing.T) {
	img, err := Extract(bytes.NewReader(encodePNG(t, 8, 6)))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestExtractRejectsNonImage(t *testing.T) {
	_, err := Extract(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestFitWithinDownscalesLongEdge(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	got := fitWithin(src, 200).Bounds()
	if got.Dx() != 200 || got.Dy() != 50 {
		t.Fatalf("unexpected size %v", got)
	}
	if fitWithin(src, 400) != image.Image(src) {
		t.Fatalf("image within bounds was copied")
	}
}

func TestAvailability(t *testing.T) {
	n := NewNative(Options{})
	if !n.Available(SourcePhotoLibrary) {
		t.Fatalf("photo library should always be available")
	}
	if n.Available(SourceCamera) {
		t.Fatalf("camera available without command")
	}
	n = NewNative(Options{CameraCommand: "cp a {out}"})
	if n.Available(SourceCamera) {
		t.Fatalf("camera available without platform capability")
	}
	if _, err := n.Pick(context.Background(), SourceCamera); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestExpandCommand(t *testing.T) {
	got := expandCommand("fswebcam -r 640x480 --save={out}", "/tmp/x.jpg")
	want := []string{"fswebcam", "-r", "640x480", "--save=/tmp/x.jpg"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected expansion %q", got)
	}
}

func TestCameraCaptureRunsCommand(t *testing.T) {
	if _, err := exec.LookPath("cp"); err != nil {
		t.Skip("cp not available")
	}
	src := filepath.Join(t.TempDir(), "frame.png")
	if err := os.WriteFile(src, encodePNG(t, 5, 7), 0o644); err != nil {
		t.Fatal(err)
	}
	n := NewNative(Options{CameraCommand: "cp " + src + " {out}", Capabilities: platform.Capabilities{Camera: true}})
	img, err := n.Pick(context.Background(), SourceCamera)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 7 {
		t.Fatalf("unexpected capture bounds %v", img.Bounds())
	}
}

func TestCameraCaptureWithoutOutputIsCancel(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	n := NewNative(Options{CameraCommand: "true {out}", Capabilities: platform.Capabilities{Camera: true}})
	if _, err := n.Pick(context.Background(), SourceCamera); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

// hugePNG is a tiny valid PNG whose header claims w x h pixels.
func hugePNG(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := encodePNG(t, 1, 1)
	// IHDR: length at 8, type at 12, width at 16, height at 20, CRC at 29.
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestExtractRejectsOversizedDeclaration(t *testing.T) {
	_, err := Extract(bytes.NewReader(hugePNG(t, 100000, 100000)))
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Fatalf("rejected for the wrong reason: %v", err)
	}
}
