package pitty

// OkVersion distinguishes the original Oklab from the revised Oklrab, whose
// lightness estimate corrects the original's bias towards dark tones.
type OkVersion uint8

const (
	OkOriginal OkVersion = iota
	OkRevised
)

// CartesianSpace returns the Cartesian color space for this version of the
// Oklab color space, i.e. Oklab or Oklrab.
func (v OkVersion) CartesianSpace() ColorSpace {
	if v == OkOriginal {
		return Oklab
	}
	return Oklrab
}

// PolarSpace returns the polar color space for this version of the Oklab
// color space, i.e. Oklch or Oklrch.
func (v OkVersion) PolarSpace() ColorSpace {
	if v == OkOriginal {
		return Oklch
	}
	return Oklrch
}

func (v OkVersion) String() string {
	if v == OkOriginal {
		return "original"
	}
	return "revised"
}

// Matcher converts high-resolution colors to ANSI or 8-bit terminal colors
// by exhaustive search for the closest matching color.
//
// To make the search meaningful, a matcher compares colors in a perceptually
// uniform color space. It precomputes the coordinates of all candidate
// colors in that space at construction, the sixteen ANSI colors from the
// theme and the 240 remaining 8-bit colors from their standard values, and
// caches them for its lifetime. Since a matcher does not track theme
// changes, an application should create a new matcher whenever its theme
// changes.
type Matcher struct {
	space    ColorSpace
	metric   Metric
	ansi     [16][3]float64
	eightBit [240][3]float64
}

// NewMatcher creates a matcher that compares colors by delta E in the
// Cartesian color space of the given Oklab version.
func NewMatcher(theme *Theme, version OkVersion) *Matcher {
	return NewMatcherMetric(theme, version.CartesianSpace(), DeltaEOk)
}

// NewMatcherMetric creates a matcher that compares colors with the given
// metric after converting them to the given color space.
func NewMatcherMetric(theme *Theme, space ColorSpace, metric Metric) *Matcher {
	m := &Matcher{space: space, metric: metric}

	for code := 0; code <= 15; code++ {
		m.ansi[code] = theme.Ansi(AnsiColor(code)).To(space).Coordinates()
	}
	for code := 16; code <= 231; code++ {
		rgb, _ := EmbeddedRGBFromCode(uint8(code))
		m.eightBit[code-16] = rgb.Color().To(space).Coordinates()
	}
	for code := 232; code <= 255; code++ {
		gray, _ := GrayGradientFromCode(uint8(code))
		m.eightBit[code-16] = gray.Color().To(space).Coordinates()
	}

	return m
}

// ToAnsi returns the ANSI color closest to the given color.
func (m *Matcher) ToAnsi(color Color) AnsiColor {
	target := color.To(m.space)
	return AnsiColor(findClosest(target.coords, m.ansi[:], m.metric))
}

// ToEightBit returns the 8-bit color closest to the given color.
//
// The search covers the embedded RGB cube and the gray gradient but not the
// ANSI colors. Even though that means ignoring 16 out of 256 candidates,
// themed ANSI colors tend to stick out as visible outliers from runs of
// otherwise converted colors.
func (m *Matcher) ToEightBit(color Color) EightBitColor {
	target := color.To(m.space)
	index := findClosest(target.coords, m.eightBit[:], m.metric)
	return EightBitFromCode(uint8(index + 16))
}

// Adapt degrades the given color to a color that terminals with the given
// fidelity can display. The second result is false if the fidelity rules
// out color altogether.
func (m *Matcher) Adapt(color Color, fidelity Fidelity) (Color, bool) {
	switch fidelity {
	case FidelityFull:
		return color, true
	case FidelityEightBit:
		switch eight := m.ToEightBit(color).(type) {
		case EmbeddedRGB:
			return eight.Color(), true
		case GrayGradient:
			return eight.Color(), true
		}
		return color, true
	case FidelityAnsi:
		ansi := m.ToAnsi(color)
		return Color{space: m.space, coords: m.ansi[ansi]}, true
	default:
		return Color{}, false
	}
}
