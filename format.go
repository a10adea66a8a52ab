package pitty

import (
	"math"
	"strconv"
	"strings"
)

// cssPrefix returns the CSS serialization prefix for the color space. Color
// spaces without standard CSS names use color() notation with a
// double-dashed name, mirroring custom properties.
func cssPrefix(space ColorSpace) string {
	switch space {
	case SRGB:
		return "color(srgb "
	case LinearSRGB:
		return "color(linear-srgb "
	case DisplayP3:
		return "color(display-p3 "
	case LinearDisplayP3:
		return "color(--linear-display-p3 "
	case Rec2020:
		return "color(rec2020 "
	case LinearRec2020:
		return "color(--linear-rec2020 "
	case Oklab:
		return "oklab("
	case Oklch:
		return "oklch("
	case Oklrab:
		return "color(--oklrab "
	case Oklrch:
		return "color(--oklrch "
	case XYZ:
		return "color(xyz "
	default:
		return "color(--unknown "
	}
}

// formatCSS renders the coordinates in CSS-like function notation, rounding
// each one to the given number of significant decimal digits. Since hues
// range over 0 to 360 instead of 0 to 1, they get two fewer fractional
// digits. A not-a-number coordinate renders as "none", which CSS uses for
// powerless components such as the hue of an achromatic color.
func formatCSS(space ColorSpace, coords [3]float64, precision int) string {
	var out strings.Builder
	out.WriteString(cssPrefix(space))

	for index, value := range coords {
		if index > 0 {
			out.WriteByte(' ')
		}
		if math.IsNaN(value) {
			out.WriteString("none")
			continue
		}
		factor := math.Pow(10, float64(precision))
		if space.IsPolar() && index == 2 {
			factor /= 100
		}
		rounded := math.Round(value*factor) / factor
		out.WriteString(strconv.FormatFloat(rounded, 'f', -1, 64))
	}

	out.WriteByte(')')
	return out.String()
}

// String renders the color in CSS-like function notation with coordinates
// rounded to five decimal digits. The output parses as the same color,
// modulo rounding.
func (c Color) String() string {
	return formatCSS(c.space, c.coords, 5)
}
