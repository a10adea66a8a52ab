package pitty

import "fmt"

// ColorSpace identifies one of the color spaces supported by this package.
//
// The RGB spaces sRGB, Display P3, and Rec. 2020 represent in-gamut colors
// with coordinates ranging 0..1. The linear variants share gamut and
// coordinate range with their gamma-corrected siblings. Oklab and Oklrab use
// Cartesian coordinates, with lightness ranging 0..1, while Oklch and Oklrch
// use polar coordinates, with the hue measured in degrees. XYZ is the root
// of the conversion graph.
type ColorSpace uint8

const (
	SRGB ColorSpace = iota
	LinearSRGB
	DisplayP3
	LinearDisplayP3
	Rec2020
	LinearRec2020
	Oklab
	Oklch
	Oklrab
	Oklrch
	XYZ
)

// IsPolar returns true for color spaces with polar coordinates, i.e. Oklch
// and Oklrch. For those two spaces, the third coordinate is the hue in
// degrees and a not-a-number hue marks an achromatic color.
func (s ColorSpace) IsPolar() bool {
	return s == Oklch || s == Oklrch
}

// IsRGB returns true for RGB color spaces, whether gamma-corrected or
// linear. In-gamut coordinates for these spaces range 0..1.
func (s ColorSpace) IsRGB() bool {
	switch s {
	case SRGB, LinearSRGB, DisplayP3, LinearDisplayP3, Rec2020, LinearRec2020:
		return true
	}
	return false
}

// IsOk returns true for the color spaces of the Oklab family.
func (s ColorSpace) IsOk() bool {
	switch s {
	case Oklab, Oklch, Oklrab, Oklrch:
		return true
	}
	return false
}

func (s ColorSpace) String() string {
	switch s {
	case SRGB:
		return "sRGB"
	case LinearSRGB:
		return "linear sRGB"
	case DisplayP3:
		return "Display P3"
	case LinearDisplayP3:
		return "linear Display P3"
	case Rec2020:
		return "Rec. 2020"
	case LinearRec2020:
		return "linear Rec. 2020"
	case Oklab:
		return "Oklab"
	case Oklch:
		return "Oklch"
	case Oklrab:
		return "Oklrab"
	case Oklrch:
		return "Oklrch"
	case XYZ:
		return "XYZ"
	default:
		return fmt.Sprintf("ColorSpace(%d)", uint8(s))
	}
}

// ParseColorSpace resolves a color space name as it appears in CSS-like
// color notation, e.g. "srgb", "--linear-rec2020", or "oklch". It also
// accepts the "xyz-d65" alias for XYZ and tolerates omitted leading dashes
// for the non-standard color space names.
func ParseColorSpace(name string) (ColorSpace, error) {
	switch name {
	case "srgb":
		return SRGB, nil
	case "linear-srgb", "--linear-srgb":
		return LinearSRGB, nil
	case "display-p3":
		return DisplayP3, nil
	case "--linear-display-p3", "linear-display-p3":
		return LinearDisplayP3, nil
	case "rec2020":
		return Rec2020, nil
	case "--linear-rec2020", "linear-rec2020":
		return LinearRec2020, nil
	case "oklab":
		return Oklab, nil
	case "oklch":
		return Oklch, nil
	case "--oklrab", "oklrab":
		return Oklrab, nil
	case "--oklrch", "oklrch":
		return Oklrch, nil
	case "xyz", "xyz-d65":
		return XYZ, nil
	default:
		return 0, fmt.Errorf("unknown color space %q", name)
	}
}
