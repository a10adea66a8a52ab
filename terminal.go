package pitty

import "fmt"

// OutOfRangeError indicates a value outside the expected range of an 8-bit
// terminal color component. Both bounds are inclusive.
type OutOfRangeError struct {
	Value    int
	Min, Max int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("value %d outside expected range %d to %d", e.Value, e.Min, e.Max)
}

// AnsiColor represents the sixteen extended ANSI colors.
//
// ANSI colors carry no intrinsic color values; themes provide them. Despite
// their names, white and bright black are both gray. Together with black and
// bright white, they form a four-color gray gradient from black to bright
// black to white to bright white.
type AnsiColor uint8

const (
	Black AnsiColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// NewAnsiColor creates an ANSI color from its 8-bit code 0..15.
func NewAnsiColor(code uint8) (AnsiColor, error) {
	if code > 15 {
		return 0, &OutOfRangeError{Value: int(code), Min: 0, Max: 15}
	}
	return AnsiColor(code), nil
}

// IsBright returns true for the second, nonstandard half of the ANSI colors.
func (c AnsiColor) IsBright() bool {
	return c >= BrightBlack
}

// EightBit returns this ANSI color's 8-bit code.
func (c AnsiColor) EightBit() uint8 {
	return uint8(c)
}

var ansiNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright black", "bright red", "bright green", "bright yellow",
	"bright blue", "bright magenta", "bright cyan", "bright white",
}

func (c AnsiColor) String() string {
	if c > BrightWhite {
		return fmt.Sprintf("AnsiColor(%d)", uint8(c))
	}
	return ansiNames[c]
}

// EmbeddedRGB is a color from the 6x6x6 RGB cube embedded in the 8-bit
// terminal colors, with each coordinate ranging 0..5.
type EmbeddedRGB [3]uint8

// NewEmbeddedRGB creates an embedded RGB color from three coordinates
// ranging 0..5 each.
func NewEmbeddedRGB(r, g, b uint8) (EmbeddedRGB, error) {
	for _, value := range [3]uint8{r, g, b} {
		if value > 5 {
			return EmbeddedRGB{}, &OutOfRangeError{Value: int(value), Min: 0, Max: 5}
		}
	}
	return EmbeddedRGB{r, g, b}, nil
}

// EmbeddedRGBFromCode creates an embedded RGB color from its 8-bit code
// 16..231.
func EmbeddedRGBFromCode(code uint8) (EmbeddedRGB, error) {
	if code < 16 || code > 231 {
		return EmbeddedRGB{}, &OutOfRangeError{Value: int(code), Min: 16, Max: 231}
	}
	value := code - 16
	r := value / 36
	value -= 36 * r
	g := value / 6
	b := value - 6*g
	return EmbeddedRGB{r, g, b}, nil
}

// EightBit returns this embedded RGB color's 8-bit code.
func (c EmbeddedRGB) EightBit() uint8 {
	return 16 + 36*c[0] + 6*c[1] + c[2]
}

// TrueColor returns the 24-bit representation of this embedded RGB color.
// Following xterm, a zero coordinate maps to zero and a nonzero coordinate n
// maps to 55 + 40n.
func (c EmbeddedRGB) TrueColor() TrueColor {
	return TrueColor{cubeComponent(c[0]), cubeComponent(c[1]), cubeComponent(c[2])}
}

func cubeComponent(value uint8) uint8 {
	if value == 0 {
		return 0
	}
	return 55 + 40*value
}

// Color returns the high-resolution sRGB color matching this embedded RGB
// color.
func (c EmbeddedRGB) Color() Color {
	t := c.TrueColor()
	return t.Color()
}

// GrayGradient is a color from the 24-step gray gradient of the 8-bit
// terminal colors. Its value is the gray level 0..23.
type GrayGradient uint8

// NewGrayGradient creates a gray gradient color from its level 0..23.
func NewGrayGradient(level uint8) (GrayGradient, error) {
	if level > 23 {
		return 0, &OutOfRangeError{Value: int(level), Min: 0, Max: 23}
	}
	return GrayGradient(level), nil
}

// GrayGradientFromCode creates a gray gradient color from its 8-bit code
// 232..255.
func GrayGradientFromCode(code uint8) (GrayGradient, error) {
	if code < 232 {
		return 0, &OutOfRangeError{Value: int(code), Min: 232, Max: 255}
	}
	return GrayGradient(code - 232), nil
}

// Level returns this color's gray level 0..23.
func (g GrayGradient) Level() uint8 {
	return uint8(g)
}

// EightBit returns this gray gradient color's 8-bit code.
func (g GrayGradient) EightBit() uint8 {
	return 232 + uint8(g)
}

// TrueColor returns the 24-bit representation of this gray gradient color,
// which has 8 + 10 * level for all three coordinates.
func (g GrayGradient) TrueColor() TrueColor {
	value := 8 + 10*uint8(g)
	return TrueColor{value, value, value}
}

// Color returns the high-resolution sRGB color matching this gray gradient
// color.
func (g GrayGradient) Color() Color {
	t := g.TrueColor()
	return t.Color()
}

// TrueColor is a 24-bit terminal color with three 8-bit coordinates.
type TrueColor [3]uint8

// Color returns the high-resolution sRGB color with the same coordinates.
func (t TrueColor) Color() Color {
	return Color{space: SRGB, coords: from24Bit(t[0], t[1], t[2])}
}

// Hex returns this color in hashed hexadecimal notation, e.g. "#ffa563".
func (t TrueColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", t[0], t[1], t[2])
}

func (t TrueColor) String() string {
	return t.Hex()
}

// EightBitColor is an 8-bit terminal color: an ANSI color, an embedded RGB
// color, or a gray gradient color, depending on where its code falls within
// 0..255.
type EightBitColor interface {
	// EightBit returns the color's 8-bit code.
	EightBit() uint8
}

// EightBitFromCode resolves an 8-bit color code to the matching color:
// 0..15 are ANSI colors, 16..231 the embedded RGB cube, and 232..255 the
// gray gradient.
func EightBitFromCode(code uint8) EightBitColor {
	switch {
	case code <= 15:
		return AnsiColor(code)
	case code <= 231:
		c, _ := EmbeddedRGBFromCode(code)
		return c
	default:
		g, _ := GrayGradientFromCode(code)
		return g
	}
}

// Fidelity gauges the color capabilities of a terminal, in order of
// increasing capability.
type Fidelity uint8

const (
	// FidelityPlain rules out colors and ANSI escape codes altogether.
	FidelityPlain Fidelity = iota
	// FidelityNoColor allows ANSI escape codes but no colors.
	FidelityNoColor
	// FidelityAnsi covers the sixteen extended ANSI colors.
	FidelityAnsi
	// FidelityEightBit covers 8-bit colors, including the ANSI colors.
	FidelityEightBit
	// FidelityFull covers 24-bit colors.
	FidelityFull
)

func (f Fidelity) String() string {
	switch f {
	case FidelityPlain:
		return "plain"
	case FidelityNoColor:
		return "no color"
	case FidelityAnsi:
		return "ANSI color"
	case FidelityEightBit:
		return "8-bit color"
	case FidelityFull:
		return "full color"
	default:
		return fmt.Sprintf("Fidelity(%d)", uint8(f))
	}
}
