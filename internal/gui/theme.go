package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme names accepted by the Themes menu and the ui.theme setting
const (
	ThemeLight = "Light"
	ThemeDark  = "Dark"
)

var (
	darkBackground      = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	darkInputBackground = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
)

// speakTheme pins the default theme to one variant, with the dark variant
// using the app's own grey palette
type speakTheme struct {
	variant fyne.ThemeVariant
}

func newTheme(name string) fyne.Theme {
	if name == ThemeDark {
		return &speakTheme{variant: theme.VariantDark}
	}
	return &speakTheme{variant: theme.VariantLight}
}

// normalizeTheme maps unknown names to the light theme
func normalizeTheme(name string) string {
	if name == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

func (t *speakTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if t.variant == theme.VariantDark {
		switch name {
		case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
			return darkBackground
		case theme.ColorNameInputBackground, theme.ColorNameButton:
			return darkInputBackground
		case theme.ColorNameForeground:
			return color.White
		}
	}
	return theme.DefaultTheme().Color(name, t.variant)
}

func (t *speakTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *speakTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *speakTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
