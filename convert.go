package pitty

import "math"

// The 3x3 conversion matrices below are taken from the color.js library
// (https://github.com/color-js/color.js), which maintains them at full
// double precision.

var linearSRGBToXYZMatrix = [3][3]float64{
	{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
	{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
	{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
}

var xyzToLinearSRGBMatrix = [3][3]float64{
	{3.2409699419045226, -1.537383177570094, -0.4986107602930034},
	{-0.9692436362808796, 1.8759675015077202, 0.04155505740717559},
	{0.05563007969699366, -0.20397695888897652, 1.0569715142428786},
}

var linearDisplayP3ToXYZMatrix = [3][3]float64{
	{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
	{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
	{0.0000000000000000, 0.04511338185890264, 1.043944368900976},
}

var xyzToLinearDisplayP3Matrix = [3][3]float64{
	{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
	{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
	{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
}

var linearRec2020ToXYZMatrix = [3][3]float64{
	{0.6369580483012914, 0.14461690358620832, 0.1688809751641721},
	{0.2627002120112671, 0.6779980715188708, 0.05930171646986196},
	{0.000000000000000, 0.028072693049087428, 1.060985057710791},
}

var xyzToLinearRec2020Matrix = [3][3]float64{
	{1.716651187971268, -0.355670783776392, -0.253366281373660},
	{-0.666684351832489, 1.616481236634939, 0.0157685458139111},
	{0.017639857445311, -0.042770613257809, 0.942103121235474},
}

var oklabToOklmsMatrix = [3][3]float64{
	{1.0000000000000000, 0.3963377773761749, 0.2158037573099136},
	{1.0000000000000000, -0.1055613458156586, -0.0638541728258133},
	{1.0000000000000000, -0.0894841775298119, -1.2914855480194092},
}

var oklmsToXYZMatrix = [3][3]float64{
	{1.2268798758459243, -0.5578149944602171, 0.2813910456659647},
	{-0.0405757452148008, 1.1122868032803170, -0.0717110580655164},
	{-0.0763729366746601, -0.4214933324022432, 1.5869240198367816},
}

var xyzToOklmsMatrix = [3][3]float64{
	{0.8190224379967030, 0.3619062600528904, -0.1288737815209879},
	{0.0329836539323885, 0.9292868615863434, 0.0361446663506424},
	{0.0481771893596242, 0.2642395317527308, 0.6335478284694309},
}

var oklmsToOklabMatrix = [3][3]float64{
	{0.2104542683093140, 0.7936177747023054, -0.0040720430116193},
	{1.9779985324311684, -2.4285922420485799, 0.4505937096174110},
	{0.0259040424655478, 0.7827717124575296, -0.8086757549230774},
}

// multiply computes the product of a 3 by 3 matrix and a 3-element vector,
// producing a new 3-element vector. It fuses multiplications and additions
// for improved accuracy.
func multiply(matrix *[3][3]float64, vector [3]float64) [3]float64 {
	return [3]float64{
		math.FMA(matrix[0][0], vector[0], math.FMA(matrix[0][1], vector[1], matrix[0][2]*vector[2])),
		math.FMA(matrix[1][0], vector[0], math.FMA(matrix[1][1], vector[1], matrix[1][2]*vector[2])),
		math.FMA(matrix[2][0], vector[0], math.FMA(matrix[2][1], vector[1], matrix[2][2]*vector[2])),
	}
}

// normalize replaces not-a-number coordinates with zero. The hue of a polar
// color space is exempt because a not-a-number hue is the canonical marker
// for achromatic colors.
func normalize(space ColorSpace, coords [3]float64) [3]float64 {
	for index, value := range coords {
		if math.IsNaN(value) && !(space.IsPolar() && index == 2) {
			coords[index] = 0
		}
	}
	return coords
}

// from24Bit converts 24-bit RGB coordinates to floating point coordinates.
func from24Bit(r, g, b uint8) [3]float64 {
	return [3]float64{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0}
}

// to24Bit converts floating point coordinates to their 24-bit
// representation. It assumes an in-gamut RGB color with coordinates ranging
// 0..1 but clamps the results to 0x00..0xff either way.
func to24Bit(space ColorSpace, coords [3]float64) [3]uint8 {
	c := normalize(space, coords)
	return [3]uint8{scale8(c[0]), scale8(c[1]), scale8(c[2])}
}

func scale8(value float64) uint8 {
	n := math.Round(value * 255.0)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// srgbGammaDecode converts one gamma-corrected component to its linear
// counterpart using sRGB's gamma, which Display P3 shares. It preserves the
// sign of out-of-gamut components.
func srgbGammaDecode(value float64) float64 {
	magnitude := math.Abs(value)
	if magnitude <= 0.04045 {
		return value / 12.92
	}
	return math.Copysign(math.Pow((magnitude+0.055)/1.055, 2.4), value)
}

// srgbGammaEncode converts one linear component to its gamma-corrected
// counterpart using sRGB's gamma, which Display P3 shares.
func srgbGammaEncode(value float64) float64 {
	magnitude := math.Abs(value)
	if magnitude <= 0.00313098 {
		return value * 12.92
	}
	return math.Copysign(math.Pow(magnitude, 1.0/2.4)*1.055-0.055, value)
}

// rgbToLinearRGB converts sRGB or Display P3 coordinates to linear form.
func rgbToLinearRGB(value [3]float64) [3]float64 {
	return [3]float64{srgbGammaDecode(value[0]), srgbGammaDecode(value[1]), srgbGammaDecode(value[2])}
}

// linearRGBToRGB converts linear sRGB or Display P3 coordinates to
// gamma-corrected form.
func linearRGBToRGB(value [3]float64) [3]float64 {
	return [3]float64{srgbGammaEncode(value[0]), srgbGammaEncode(value[1]), srgbGammaEncode(value[2])}
}

// Rec. 2020 uses a distinct transfer function with its own constants.
const (
	rec2020Alpha = 1.09929682680944
	rec2020Beta  = 0.018053968510807
)

func rec2020GammaDecode(value float64) float64 {
	if value < rec2020Beta*4.5 {
		return value / 4.5
	}
	return math.Pow((value+rec2020Alpha-1.0)/rec2020Alpha, 1.0/0.45)
}

func rec2020GammaEncode(value float64) float64 {
	if value < rec2020Beta {
		return value * 4.5
	}
	return rec2020Alpha*math.Pow(value, 0.45) - (rec2020Alpha - 1.0)
}

// rec2020ToLinearRec2020 converts Rec. 2020 coordinates to linear form.
func rec2020ToLinearRec2020(value [3]float64) [3]float64 {
	return [3]float64{rec2020GammaDecode(value[0]), rec2020GammaDecode(value[1]), rec2020GammaDecode(value[2])}
}

// linearRec2020ToRec2020 converts linear Rec. 2020 coordinates to
// gamma-corrected form.
func linearRec2020ToRec2020(value [3]float64) [3]float64 {
	return [3]float64{rec2020GammaEncode(value[0]), rec2020GammaEncode(value[1]), rec2020GammaEncode(value[2])}
}

// Chroma magnitudes below epsilon count as zero when converting to polar
// form, with the hue becoming not-a-number.
const epsilon = 0.0002

// okxchToOkxab converts Oklch to Oklab or Oklrch to Oklrab coordinates. A
// not-a-number hue yields zero for both a and b.
func okxchToOkxab(value [3]float64) [3]float64 {
	lightness, chroma, hue := value[0], value[1], value[2]
	if math.IsNaN(hue) {
		return [3]float64{lightness, 0.0, 0.0}
	}
	radians := hue * (math.Pi / 180.0)
	return [3]float64{lightness, chroma * math.Cos(radians), chroma * math.Sin(radians)}
}

// okxabToOkxch converts Oklab to Oklch or Oklrab to Oklrch coordinates.
// Colors with near-zero chroma come out with a chroma of exactly zero and a
// not-a-number hue. All other hues range 0..360 degrees.
func okxabToOkxch(value [3]float64) [3]float64 {
	lightness, a, b := value[0], value[1], value[2]

	var chroma, hue float64
	if math.Abs(a) < epsilon && math.Abs(b) < epsilon {
		chroma, hue = 0.0, math.NaN()
	} else {
		chroma = math.Sqrt(a*a + b*b)
		hue = math.Atan2(b, a) * (180.0 / math.Pi)
	}
	if hue < 0.0 {
		hue += 360.0
	}

	return [3]float64{lightness, chroma, hue}
}

// The lightness estimate of the original Oklab is biased towards dark
// tones. The revised lightness Lr of Oklrab corrects for that bias; see
// https://bottosson.github.io/posts/colorpicker/ for its derivation.
const (
	lrK1 = 0.206
	lrK2 = 0.03
	lrK3 = (1.0 + lrK1) / (1.0 + lrK2)
)

// lToLr replaces the lightness L of Oklab/Oklch coordinates with the revised
// lightness Lr, turning them into Oklrab/Oklrch coordinates.
func lToLr(value [3]float64) [3]float64 {
	k3l := lrK3 * value[0]
	lr := 0.5 * (k3l - lrK1 + math.Sqrt((k3l-lrK1)*(k3l-lrK1)+4.0*lrK2*k3l))
	return [3]float64{lr, value[1], value[2]}
}

// lrToL replaces the revised lightness Lr of Oklrab/Oklrch coordinates with
// the original lightness L, turning them into Oklab/Oklch coordinates.
func lrToL(value [3]float64) [3]float64 {
	lr := value[0]
	l := (lr * (lr + lrK1)) / (lrK3 * (lr + lrK2))
	return [3]float64{l, value[1], value[2]}
}

func cube(value float64) float64 {
	return value * value * value
}

// oklabToXYZ converts Oklab coordinates to XYZ. The conversion chains two
// matrix multiplications with a coordinate-wise cube in between.
func oklabToXYZ(value [3]float64) [3]float64 {
	lms := multiply(&oklabToOklmsMatrix, value)
	return multiply(&oklmsToXYZMatrix, [3]float64{cube(lms[0]), cube(lms[1]), cube(lms[2])})
}

// xyzToOklab converts XYZ coordinates to Oklab. The conversion chains two
// matrix multiplications with a coordinate-wise cube root in between.
func xyzToOklab(value [3]float64) [3]float64 {
	lms := multiply(&xyzToOklmsMatrix, value)
	return multiply(&oklmsToOklabMatrix, [3]float64{math.Cbrt(lms[0]), math.Cbrt(lms[1]), math.Cbrt(lms[2])})
}

func srgbToXYZ(value [3]float64) [3]float64 {
	return multiply(&linearSRGBToXYZMatrix, rgbToLinearRGB(value))
}

func xyzToSRGB(value [3]float64) [3]float64 {
	return linearRGBToRGB(multiply(&xyzToLinearSRGBMatrix, value))
}

func displayP3ToXYZ(value [3]float64) [3]float64 {
	return multiply(&linearDisplayP3ToXYZMatrix, rgbToLinearRGB(value))
}

func xyzToDisplayP3(value [3]float64) [3]float64 {
	return linearRGBToRGB(multiply(&xyzToLinearDisplayP3Matrix, value))
}

func rec2020ToXYZ(value [3]float64) [3]float64 {
	return multiply(&linearRec2020ToXYZMatrix, rec2020ToLinearRec2020(value))
}

func xyzToRec2020(value [3]float64) [3]float64 {
	return linearRec2020ToRec2020(multiply(&xyzToLinearRec2020Matrix, value))
}

func oklchToXYZ(value [3]float64) [3]float64 {
	return oklabToXYZ(okxchToOkxab(value))
}

func xyzToOklch(value [3]float64) [3]float64 {
	return okxabToOkxch(xyzToOklab(value))
}

func oklrabToXYZ(value [3]float64) [3]float64 {
	return oklabToXYZ(lrToL(value))
}

func xyzToOklrab(value [3]float64) [3]float64 {
	return lToLr(xyzToOklab(value))
}

func oklrchToXYZ(value [3]float64) [3]float64 {
	return oklchToXYZ(lrToL(value))
}

func xyzToOklrch(value [3]float64) [3]float64 {
	return lToLr(xyzToOklch(value))
}

// Convert transforms coordinates from one color space to another.
//
// Convert first normalizes not-a-number coordinates to zero, excepting polar
// hues, and returns the result if source and target are the same. Otherwise
// it takes the shortest route through the conversion graph, staying within
// the source's branch where possible and passing through the XYZ root
// otherwise. Convert does not check whether the result is in gamut for the
// target color space.
func Convert(from, to ColorSpace, coords [3]float64) [3]float64 {
	coords = normalize(from, coords)
	if from == to {
		return coords
	}

	// In-branch conversions that skip the XYZ root.
	switch {
	case from == SRGB && to == LinearSRGB,
		from == DisplayP3 && to == LinearDisplayP3:
		return rgbToLinearRGB(coords)
	case from == LinearSRGB && to == SRGB,
		from == LinearDisplayP3 && to == DisplayP3:
		return linearRGBToRGB(coords)

	case from == Rec2020 && to == LinearRec2020:
		return rec2020ToLinearRec2020(coords)
	case from == LinearRec2020 && to == Rec2020:
		return linearRec2020ToRec2020(coords)

	case from == Oklch && to == Oklab,
		from == Oklrch && to == Oklrab:
		return okxchToOkxab(coords)
	case from == Oklab && to == Oklch,
		from == Oklrab && to == Oklrch:
		return okxabToOkxch(coords)
	case from == Oklab && to == Oklrab,
		from == Oklch && to == Oklrch:
		return lToLr(coords)
	case from == Oklrab && to == Oklab,
		from == Oklrch && to == Oklch:
		return lrToL(coords)

	case from == Oklrch && to == Oklab:
		return okxchToOkxab(lrToL(coords))
	case from == Oklch && to == Oklrab:
		return lToLr(okxchToOkxab(coords))
	case from == Oklab && to == Oklrch:
		return lToLr(okxabToOkxch(coords))
	case from == Oklrab && to == Oklch:
		return okxabToOkxch(lrToL(coords))
	}

	// Convert from the source color space to the XYZ root.
	var intermediate [3]float64
	switch from {
	case SRGB:
		intermediate = srgbToXYZ(coords)
	case LinearSRGB:
		intermediate = multiply(&linearSRGBToXYZMatrix, coords)
	case DisplayP3:
		intermediate = displayP3ToXYZ(coords)
	case LinearDisplayP3:
		intermediate = multiply(&linearDisplayP3ToXYZMatrix, coords)
	case Rec2020:
		intermediate = rec2020ToXYZ(coords)
	case LinearRec2020:
		intermediate = multiply(&linearRec2020ToXYZMatrix, coords)
	case Oklch:
		intermediate = oklchToXYZ(coords)
	case Oklab:
		intermediate = oklabToXYZ(coords)
	case Oklrch:
		intermediate = oklrchToXYZ(coords)
	case Oklrab:
		intermediate = oklrabToXYZ(coords)
	case XYZ:
		intermediate = coords
	}

	// Convert from the XYZ root to the target color space.
	switch to {
	case SRGB:
		return xyzToSRGB(intermediate)
	case LinearSRGB:
		return multiply(&xyzToLinearSRGBMatrix, intermediate)
	case DisplayP3:
		return xyzToDisplayP3(intermediate)
	case LinearDisplayP3:
		return multiply(&xyzToLinearDisplayP3Matrix, intermediate)
	case Rec2020:
		return xyzToRec2020(intermediate)
	case LinearRec2020:
		return multiply(&xyzToLinearRec2020Matrix, intermediate)
	case Oklch:
		return xyzToOklch(intermediate)
	case Oklab:
		return xyzToOklab(intermediate)
	case Oklrch:
		return xyzToOklrch(intermediate)
	case Oklrab:
		return xyzToOklrab(intermediate)
	default:
		return intermediate
	}
}
