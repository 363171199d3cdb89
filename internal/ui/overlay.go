package ui

import "image"

// SheetRow is one share target on the activity sheet.
type SheetRow struct {
	ID    string
	Label string
	Rect  image.Rectangle
}

// SheetLayout places the share sheet at the bottom of the window: a preview
// of the meme, one row per target and a separate cancel row.
type SheetLayout struct {
	Panel   image.Rectangle
	Preview image.Rectangle
	Rows    []SheetRow
	Cancel  image.Rectangle
}

// ComputeSheetLayout lays out rows for the given targets. preview is the
// size of the image being shared; it is fitted into the preview slot.
func ComputeSheetLayout(w, h int, scale float32, preview image.Point, rows []SheetRow) SheetLayout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) int { return int(float32(v) * scale) }

	pad := dp(8)
	rowH := dp(48)
	previewH := dp(160)
	if maxPreview := h / 3; previewH > maxPreview {
		previewH = maxPreview
	}

	cancel := image.Rect(pad, h-pad-rowH, w-pad, h-pad)
	panelH := pad + previewH + pad + rowH*len(rows) + pad
	panel := image.Rect(pad, cancel.Min.Y-pad-panelH, w-pad, cancel.Min.Y-pad)
	if panel.Min.Y < pad {
		panel.Min.Y = pad
	}

	out := SheetLayout{Panel: panel, Cancel: cancel}
	slot := image.Rect(panel.Min.X+pad, panel.Min.Y+pad, panel.Max.X-pad, panel.Min.Y+pad+previewH)
	out.Preview = fitInto(preview, slot)

	y := slot.Max.Y + pad
	for _, r := range rows {
		r.Rect = image.Rect(panel.Min.X, y, panel.Max.X, y+rowH)
		out.Rows = append(out.Rows, r)
		y += rowH
	}
	return out
}

// HitTest reports the target under x,y. cancel is true for the cancel row
// and for anything outside the panel.
func (l SheetLayout) HitTest(x, y int) (id string, cancel bool) {
	p := image.Pt(x, y)
	for _, r := range l.Rows {
		if p.In(r.Rect) {
			return r.ID, false
		}
	}
	if p.In(l.Cancel) || !p.In(l.Panel) {
		return "", true
	}
	return "", false
}

func fitInto(size image.Point, slot image.Rectangle) image.Rectangle {
	if size.X <= 0 || size.Y <= 0 || slot.Empty() {
		return image.Rectangle{}
	}
	w, h := slot.Dx(), slot.Dy()
	if size.X*h > size.Y*w {
		h = size.Y * w / size.X
	} else {
		w = size.X * h / size.Y
	}
	x := slot.Min.X + (slot.Dx()-w)/2
	y := slot.Min.Y + (slot.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

type KeyKind int

const (
	KeyChar KeyKind = iota
	KeySpace
	KeyBackspace
	KeyReturn
)

type Key struct {
	Kind  KeyKind
	Label string
	Rect  image.Rectangle
}

// KeyboardLayout is the on-screen keyboard panel drawn while a caption is
// being edited.
type KeyboardLayout struct {
	Panel image.Rectangle
	Keys  []Key
}

var keyRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// ComputeKeyboardLayout fills a panel of the given height at the bottom of
// the window with a letter grid, backspace, space and return keys.
func ComputeKeyboardLayout(w, h int, height float64, scale float32) KeyboardLayout {
	if scale <= 0 {
		scale = 1
	}
	ph := int(height)
	if ph > h {
		ph = h
	}
	out := KeyboardLayout{Panel: image.Rect(0, h-ph, w, h)}
	if ph <= 0 || w <= 0 {
		return out
	}

	gap := int(6 * scale)
	rowH := (ph - gap*5) / 4
	if rowH <= 0 {
		return out
	}
	keyW := (w - gap*11) / 10
	y := out.Panel.Min.Y + gap
	for i, row := range keyRows {
		n := len(row)
		if i == 2 {
			n++
		}
		x := (w - (n*keyW + (n-1)*gap)) / 2
		for _, r := range row {
			out.Keys = append(out.Keys, Key{Kind: KeyChar, Label: string(r), Rect: image.Rect(x, y, x+keyW, y+rowH)})
			x += keyW + gap
		}
		if i == 2 {
			out.Keys = append(out.Keys, Key{Kind: KeyBackspace, Label: "del", Rect: image.Rect(x, y, x+keyW, y+rowH)})
		}
		y += rowH + gap
	}

	retW := keyW*3 + gap*2
	out.Keys = append(out.Keys,
		Key{Kind: KeySpace, Label: "space", Rect: image.Rect(gap, y, w-gap*2-retW, y+rowH)},
		Key{Kind: KeyReturn, Label: "return", Rect: image.Rect(w-gap-retW, y, w-gap, y+rowH)},
	)
	return out
}

func (l KeyboardLayout) HitTest(x, y int) (Key, bool) {
	p := image.Pt(x, y)
	for _, k := range l.Keys {
		if p.In(k.Rect) {
			return k, true
		}
	}
	return Key{}, false
}
