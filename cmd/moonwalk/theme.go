package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"moonwalk/internal/core/macro"
)

type moonwalkTheme struct {
	base fyne.Theme
}

func newMoonwalkTheme() fyne.Theme {
	return &moonwalkTheme{base: theme.DarkTheme()}
}

func (t *moonwalkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x0d, G: 0x10, B: 0x14, A: 0xff}
	case theme.ColorNameHeaderBackground:
		return color.NRGBA{R: 0x12, G: 0x16, B: 0x1c, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0x1d, G: 0x23, B: 0x2c, A: 0xff}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0x16, G: 0x1a, B: 0x20, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0x13, G: 0x18, B: 0x1f, A: 0xff}
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return color.NRGBA{R: 0x2b, G: 0x33, B: 0x40, A: 0xff}
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return color.NRGBA{R: 0x8a, G: 0x7d, B: 0xff, A: 0xff}
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x9d, G: 0x92, B: 0xff, A: 0x66}
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x9d, G: 0x92, B: 0xff, A: 0x22}
	case theme.ColorNamePressed:
		return color.NRGBA{R: 0x9d, G: 0x92, B: 0xff, A: 0x40}
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x8a, G: 0x7d, B: 0xff, A: 0x44}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xf2, G: 0xf4, B: 0xf8, A: 0xff}
	case theme.ColorNamePlaceHolder:
		return color.NRGBA{R: 0xa9, G: 0xb3, B: 0xc2, A: 0xff}
	}
	return t.base.Color(name, variant)
}

func (t *moonwalkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *moonwalkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *moonwalkTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInputRadius:
		return 6
	}
	return t.base.Size(name)
}

// severityColor maps status severity to white, green, yellow or red.
func severityColor(severity macro.Severity) color.Color {
	switch severity {
	case macro.SeveritySuccess:
		return color.NRGBA{R: 0x4c, G: 0xd9, B: 0x64, A: 0xff}
	case macro.SeverityWarning:
		return color.NRGBA{R: 0xff, G: 0xd6, B: 0x0a, A: 0xff}
	case macro.SeverityError:
		return color.NRGBA{R: 0xff, G: 0x45, B: 0x3a, A: 0xff}
	default:
		return color.White
	}
}
