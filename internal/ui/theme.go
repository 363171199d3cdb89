package ui

import "image/color"

type Theme struct {
	ViewBackground  color.RGBA
	NavBar          color.RGBA
	Toolbar         color.RGBA
	Border          color.RGBA
	ButtonText      color.RGBA
	ButtonDisabled  color.RGBA
	ButtonHover     color.RGBA
	StatusText      color.RGBA
	Caret           color.RGBA
	SheetBackdrop   color.RGBA
	SheetPanel      color.RGBA
	SheetText       color.RGBA
	KeyboardPanel   color.RGBA
	KeyboardKey     color.RGBA
	NavBarHeightDp  int
	ToolbarHeightDp int
	ButtonFontPx    float64
}

func DefaultTheme() Theme {
	return Theme{
		ViewBackground:  color.RGBA{0x00, 0x00, 0x00, 0xFF},
		NavBar:          color.RGBA{0xF7, 0xF7, 0xF7, 0xFF},
		Toolbar:         color.RGBA{0xF7, 0xF7, 0xF7, 0xFF},
		Border:          color.RGBA{0xB2, 0xB2, 0xB2, 0xFF},
		ButtonText:      color.RGBA{0x00, 0x7A, 0xFF, 0xFF},
		ButtonDisabled:  color.RGBA{0xB8, 0xB8, 0xBE, 0xFF},
		ButtonHover:     color.RGBA{0xE4, 0xEC, 0xF7, 0xFF},
		StatusText:      color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		Caret:           color.RGBA{0x00, 0x7A, 0xFF, 0xFF},
		SheetBackdrop:   color.RGBA{0x00, 0x00, 0x00, 0x66},
		SheetPanel:      color.RGBA{0xF2, 0xF2, 0xF7, 0xFF},
		SheetText:       color.RGBA{0x1C, 0x1C, 0x1E, 0xFF},
		KeyboardPanel:   color.RGBA{0xD1, 0xD4, 0xDA, 0xFF},
		KeyboardKey:     color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		NavBarHeightDp:  44,
		ToolbarHeightDp: 44,
		ButtonFontPx:    17,
	}
}
