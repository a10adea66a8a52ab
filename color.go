package pitty

import "math"

// Color is a high-resolution color, pairing a color space with three
// floating point coordinates. Color values are immutable; operations return
// new colors. The zero value is sRGB black.
type Color struct {
	space  ColorSpace
	coords [3]float64
}

// New creates a new color from a color space and three coordinates.
func New(space ColorSpace, c1, c2, c3 float64) Color {
	return Color{space: space, coords: [3]float64{c1, c2, c3}}
}

// Space returns this color's color space.
func (c Color) Space() ColorSpace {
	return c.space
}

// Coordinates returns this color's three coordinates.
func (c Color) Coordinates() [3]float64 {
	return c.coords
}

// To converts this color to the given color space.
func (c Color) To(space ColorSpace) Color {
	return Color{space: space, coords: Convert(c.space, space, c.coords)}
}

// Equal determines whether this color equals the other color. Two colors
// are equal if they are in the same color space and their coordinates are
// equal after not-a-number coordinates have been replaced with zero. In
// particular, two achromatic colors with not-a-number hues are equal as
// long as their lightness and chroma agree.
func (c Color) Equal(other Color) bool {
	if c.space != other.space {
		return false
	}
	for index := range c.coords {
		if zeroNaN(c.coords[index]) != zeroNaN(other.coords[index]) {
			return false
		}
	}
	return true
}

func zeroNaN(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return value
}

// TrueColor converts this color to its 24-bit representation, which entails
// conversion to sRGB and clamping of out-of-gamut coordinates.
func (c Color) TrueColor() TrueColor {
	srgb := c.To(SRGB)
	return TrueColor(to24Bit(SRGB, srgb.coords))
}

// A Metric computes the distance between two coordinate triples. Whether
// small distances are meaningful depends on the color space the coordinates
// belong to; perceptually uniform spaces like the Oklab variations make for
// meaningful distances.
type Metric func(c1, c2 [3]float64) float64

// DeltaEOk computes the color difference delta E for two coordinate triples
// in an Oklab variation, which is their Euclidean distance.
func DeltaEOk(c1, c2 [3]float64) float64 {
	d1 := c1[0] - c2[0]
	d2 := c1[1] - c2[1]
	d3 := c1[2] - c2[2]
	return math.Sqrt(d1*d1 + d2*d2 + d3*d3)
}

// findClosest scans the candidates for the entry with the smallest distance
// to the target. Ties go to the candidate with the lowest index, and
// not-a-number distances rank behind all others. The result is -1 only if
// there are no candidates.
func findClosest(target [3]float64, candidates [][3]float64, metric Metric) int {
	index := -1
	minimum := math.Inf(1)

	for current, candidate := range candidates {
		distance := metric(target, candidate)
		if math.IsNaN(distance) {
			distance = math.Inf(1)
		}
		if index < 0 || distance < minimum {
			index = current
			minimum = distance
		}
	}

	return index
}

// FindClosest determines the index of the candidate color closest to this
// color under the given metric. All colors are converted to the given color
// space before the metric applies. The second result is false if there are
// no candidates.
func (c Color) FindClosest(candidates []Color, space ColorSpace, metric Metric) (int, bool) {
	coords := make([][3]float64, len(candidates))
	for index, candidate := range candidates {
		coords[index] = candidate.To(space).coords
	}

	index := findClosest(c.To(space).coords, coords, metric)
	return index, index >= 0
}

// Closest determines the index of the candidate color closest to this color
// by delta E in Oklrab. The second result is false if there are no
// candidates.
func (c Color) Closest(candidates []Color) (int, bool) {
	return c.FindClosest(candidates, Oklrab, DeltaEOk)
}
