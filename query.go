package pitty

import "github.com/muesli/termenv"

// colorFromTermenv resolves a termenv color against the theme. It returns
// false for termenv.NoColor and for out-of-range codes.
func colorFromTermenv(c termenv.Color, theme *Theme) (Color, bool) {
	switch c := c.(type) {
	case termenv.RGBColor:
		color, err := Parse(string(c))
		if err != nil {
			return Color{}, false
		}
		return color, true
	case termenv.ANSIColor:
		if c < 0 || 15 < c {
			return Color{}, false
		}
		return theme.Ansi(AnsiColor(c)), true
	case termenv.ANSI256Color:
		if c < 0 || 255 < c {
			return Color{}, false
		}
		switch candidate := EightBitFromCode(uint8(c)).(type) {
		case AnsiColor:
			return theme.Ansi(candidate), true
		case EmbeddedRGB:
			return candidate.Color(), true
		case GrayGradient:
			return candidate.Color(), true
		}
	}
	return Color{}, false
}

// QueryTheme determines the terminal's current theme. It queries the
// terminal for its default foreground and background colors and falls back
// onto the built-in theme for colors the terminal does not report,
// including the sixteen extended ANSI colors.
func QueryTheme(output *termenv.Output) Theme {
	theme := DefaultTheme()
	if fg, ok := colorFromTermenv(output.ForegroundColor(), &theme); ok {
		theme.SetDefault(Foreground, fg)
	}
	if bg, ok := colorFromTermenv(output.BackgroundColor(), &theme); ok {
		theme.SetDefault(Background, bg)
	}
	return theme
}

// DetectFidelity determines the output's color fidelity from its color
// profile, honoring the NO_COLOR and CLICOLOR conventions.
func DetectFidelity(output *termenv.Output) Fidelity {
	if output.EnvNoColor() {
		return FidelityNoColor
	}
	switch output.Profile {
	case termenv.TrueColor:
		return FidelityFull
	case termenv.ANSI256:
		return FidelityEightBit
	case termenv.ANSI:
		return FidelityAnsi
	default:
		return FidelityPlain
	}
}
