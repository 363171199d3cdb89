package compositor

import (
	"errors"
	"fmt"
	"image"
)

var ErrEmptyView = errors.New("compositor: view has no area")

// View is a screen whose visible hierarchy can be flattened.
type View interface {
	Size() image.Point
	ToolbarsHidden() bool
	SetToolbarsHidden(hidden bool)
	DrawHierarchy(dst *image.RGBA) error
}

// Capture flattens v into a new image at its current size with the toolbars
// hidden. Toolbar visibility is put back before Capture returns, whether or
// not drawing succeeded.
func Capture(v View) (*image.RGBA, error) {
	prev := v.ToolbarsHidden()
	v.SetToolbarsHidden(true)
	defer v.SetToolbarsHidden(prev)

	size := v.Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrEmptyView
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	if err := v.DrawHierarchy(dst); err != nil {
		return nil, fmt.Errorf("draw hierarchy: %w", err)
	}
	return dst, nil
}
