package pitty

import "sync"

// Layer identifies a default color of the terminal, i.e. the foreground or
// background.
type Layer uint8

const (
	Foreground Layer = iota
	Background
)

func (l Layer) String() string {
	if l == Foreground {
		return "foreground"
	}
	return "background"
}

// Theme provides concrete color values for the terminal's foreground and
// background defaults as well as for the sixteen extended ANSI colors.
//
// By itself, a theme enables the conversion of ANSI colors to
// high-resolution colors. Through a Matcher, it also enables the lossy
// conversion of high-resolution colors to ANSI and 8-bit colors. Since a
// matcher captures the theme's color values at construction, an application
// should create a new matcher whenever its theme changes.
//
// The zero value maps all eighteen entries to sRGB black; DefaultTheme
// returns a theme with usable values.
type Theme struct {
	colors [18]Color
}

// Default returns the theme's color value for the given layer.
func (t *Theme) Default(layer Layer) Color {
	if layer == Background {
		return t.colors[1]
	}
	return t.colors[0]
}

// SetDefault updates the theme's color value for the given layer.
func (t *Theme) SetDefault(layer Layer, color Color) {
	if layer == Background {
		t.colors[1] = color
	} else {
		t.colors[0] = color
	}
}

// Ansi returns the theme's color value for the given ANSI color. It panics
// if the color is not one of the sixteen ANSI colors.
func (t *Theme) Ansi(color AnsiColor) Color {
	return t.colors[2+int(color)]
}

// SetAnsi updates the theme's color value for the given ANSI color. It
// panics if the color is not one of the sixteen ANSI colors.
func (t *Theme) SetAnsi(color AnsiColor, value Color) {
	t.colors[2+int(color)] = value
}

// DefaultTheme returns a theme with the colors of VGA text mode. The theme
// pairs a black foreground with a white background.
func DefaultTheme() Theme {
	return Theme{colors: [18]Color{
		New(SRGB, 0.0, 0.0, 0.0),
		New(SRGB, 1.0, 1.0, 1.0),
		New(SRGB, 0.0, 0.0, 0.0),
		New(SRGB, 0.666666666666667, 0.0, 0.0),
		New(SRGB, 0.0, 0.666666666666667, 0.0),
		New(SRGB, 0.666666666666667, 0.333333333333333, 0.0),
		New(SRGB, 0.0, 0.0, 0.666666666666667),
		New(SRGB, 0.666666666666667, 0.0, 0.666666666666667),
		New(SRGB, 0.0, 0.666666666666667, 0.666666666666667),
		New(SRGB, 0.666666666666667, 0.666666666666667, 0.666666666666667),
		New(SRGB, 0.333333333333333, 0.333333333333333, 0.333333333333333),
		New(SRGB, 1.0, 0.333333333333333, 0.333333333333333),
		New(SRGB, 0.333333333333333, 1.0, 0.333333333333333),
		New(SRGB, 1.0, 1.0, 0.333333333333333),
		New(SRGB, 0.333333333333333, 0.333333333333333, 1.0),
		New(SRGB, 1.0, 0.333333333333333, 1.0),
		New(SRGB, 0.333333333333333, 1.0, 1.0),
		New(SRGB, 1.0, 1.0, 1.0),
	}}
}

var (
	currentMutex sync.Mutex
	currentTheme = DefaultTheme()
)

// CurrentTheme returns a copy of the process-wide current theme, which
// starts out as the default theme. The current theme exists as a
// convenience for applications that do not want to thread a theme value
// through their code; the other APIs of this package take explicit themes.
func CurrentTheme() Theme {
	currentMutex.Lock()
	defer currentMutex.Unlock()
	return currentTheme
}

// SetCurrentTheme replaces the process-wide current theme.
func SetCurrentTheme(theme Theme) {
	currentMutex.Lock()
	defer currentMutex.Unlock()
	currentTheme = theme
}
