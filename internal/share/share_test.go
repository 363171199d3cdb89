package share

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeTarget struct {
	id    string
	err   error
	calls int
	got   image.Image
}

func (f *fakeTarget) ID() string    { return f.id }
func (f *fakeTarget) Label() string { return strings.ToUpper(f.id) }
func (f *fakeTarget) Perform(img image.Image) error {
	f.calls++
	f.got = img
	return f.err
}

func TestSheetChooseCompletesOnce(t *testing.T) {
	target := &fakeTarget{id: "ok"}
	sheet := NewSheet(target)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var completions []Completion
	if err := sheet.Present(img, func(c Completion) { completions = append(completions, c) }); err != nil {
		t.Fatal(err)
	}
	if !sheet.Visible() {
		t.Fatalf("sheet not visible after present")
	}
	c := sheet.Choose("ok")
	if !c.Success || c.ActivityID != "ok" || c.Err != nil {
		t.Fatalf("unexpected completion %+v", c)
	}
	if target.got != image.Image(img) {
		t.Fatalf("target did not receive the presented image")
	}
	sheet.Choose("ok")
	sheet.Cancel()
	if len(completions) != 1 || sheet.Visible() {
		t.Fatalf("expected exactly one completion, got %d", len(completions))
	}
}

func TestSheetCancelAndFailure(t *testing.T) {
	boom := errors.New("disk full")
	failing := &fakeTarget{id: "fail", err: boom}
	declined := &fakeTarget{id: "declined", err: ErrCancelled}
	sheet := NewSheet(failing, declined)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	var last Completion
	record := func(c Completion) { last = c }

	_ = sheet.Present(img, record)
	sheet.Cancel()
	if last.Success || last.Err != nil {
		t.Fatalf("cancel reported %+v", last)
	}

	_ = sheet.Present(img, record)
	sheet.Choose("fail")
	if last.Success || !errors.Is(last.Err, boom) {
		t.Fatalf("failure reported %+v", last)
	}

	_ = sheet.Present(img, record)
	sheet.Choose("declined")
	if last.Success || last.Err != nil || last.ActivityID != "declined" {
		t.Fatalf("declined target reported %+v", last)
	}
}

func TestSheetUnknownTargetKeepsSheetOpen(t *testing.T) {
	sheet := NewSheet(&fakeTarget{id: "a"})
	called := false
	_ = sheet.Present(image.NewRGBA(image.Rect(0, 0, 1, 1)), func(Completion) { called = true })
	c := sheet.Choose("missing")
	if c.Err == nil || called || !sheet.Visible() {
		t.Fatalf("unknown target should report an error and keep the sheet open")
	}
}

func TestSheetRejectsNilImage(t *testing.T) {
	if err := NewSheet().Present(nil, nil); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestDirectoryTargetWritesPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "memes")
	target := NewDirectoryTarget(dir)
	target.Now = func() time.Time { return time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC) }
	if err := target.Perform(image.NewRGBA(image.Rect(0, 0, 3, 4))); err != nil {
		t.Fatal(err)
	}
	path := target.LastPath()
	if !strings.HasPrefix(filepath.Base(path), "meme-20261016-093000-") {
		t.Fatalf("unexpected file name %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 4 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if target.Label() != "Save to memes" {
		t.Fatalf("unexpected label %q", target.Label())
	}
}

func TestDirectoryTargetRequiresDir(t *testing.T) {
	if err := (&DirectoryTarget{}).Perform(image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatalf("expected error without directory")
	}
}
