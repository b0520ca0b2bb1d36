package ui

import "image/color"

type Theme struct {
	AppBackground   color.RGBA
	TopBar          color.RGBA
	TopBarText      color.RGBA
	Toolbar         color.RGBA
	Button          color.RGBA
	ButtonActive    color.RGBA
	ButtonDisabled  color.RGBA
	Panel           color.RGBA
	PanelText       color.RGBA
	MutedText       color.RGBA
	Field           color.RGBA
	FieldFocus      color.RGBA
	RowSelected     color.RGBA
	Border          color.RGBA
	StatusBar       color.RGBA
	Accent          color.RGBA
	Shadow          color.RGBA
	MenuHeightDp    int
	ToolbarHeightDp int
	StatusHeightDp  int
	TreeWidthDp     int
	PanelWidthDp    int
	RowHeightDp     int
	ButtonWidthDp   int
	FontSizeDp      int
}

func DefaultTheme() Theme {
	return Theme{
		AppBackground:   color.RGBA{0xF3, 0xF5, 0xF8, 0xFF},
		TopBar:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		TopBarText:      color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Toolbar:         color.RGBA{0xF7, 0xF9, 0xFC, 0xFF},
		Button:          color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		ButtonActive:    color.RGBA{0xD6, 0xE4, 0xF7, 0xFF},
		ButtonDisabled:  color.RGBA{0xA0, 0xA8, 0xB4, 0xFF},
		Panel:           color.RGBA{0xFB, 0xFC, 0xFE, 0xFF},
		PanelText:       color.RGBA{0x2A, 0x38, 0x50, 0xFF},
		MutedText:       color.RGBA{0x6B, 0x77, 0x8C, 0xFF},
		Field:           color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		FieldFocus:      color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		RowSelected:     color.RGBA{0xD6, 0xE4, 0xF7, 0xFF},
		Border:          color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		StatusBar:       color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		Accent:          color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		Shadow:          color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		MenuHeightDp:    30,
		ToolbarHeightDp: 40,
		StatusHeightDp:  26,
		TreeWidthDp:     200,
		PanelWidthDp:    240,
		RowHeightDp:     24,
		ButtonWidthDp:   64,
		FontSizeDp:      12,
	}
}
