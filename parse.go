package pitty

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The ways a color string can be malformed. Parse surfaces these errors,
// wrapped with the offending input and, for per-coordinate errors, the
// zero-based coordinate position, so callers can test for them with
// errors.Is. A malformed color string stays malformed; there is no point in
// retrying.
var (
	// ErrUnknownFormat indicates a color that does not start with a known
	// prefix such as "#" or "rgb:".
	ErrUnknownFormat = errors.New(`color format should start with "#", "color()", "oklab()", "oklch()", or "rgb:"`)

	// ErrUnexpectedCharacters indicates unexpected characters or an
	// unexpected number of characters, e.g. "#00" or "#💩00".
	ErrUnexpectedCharacters = errors.New("color format should contain only valid ASCII characters")

	// ErrNoOpeningParenthesis indicates a parenthesized color format
	// without the opening parenthesis, e.g. "color srgb 0 0 0)".
	ErrNoOpeningParenthesis = errors.New("color format should include an opening parenthesis but has none")

	// ErrNoClosingParenthesis indicates a parenthesized color format
	// without the closing parenthesis, e.g. "oklab(1 2 3".
	ErrNoClosingParenthesis = errors.New("color format should include a closing parenthesis but has none")

	// ErrUnknownColorSpace indicates a color format naming an unknown
	// color space, e.g. "color(unknown 1 1 1)".
	ErrUnknownColorSpace = errors.New("color format should have known color space but does not")

	// ErrMissingCoordinate indicates a color format with less than three
	// coordinates, e.g. "rgb:0" or "rgb:0//0".
	ErrMissingCoordinate = errors.New("color format should have 3 coordinates but is missing one")

	// ErrOversizedCoordinate indicates a coordinate with too many digits,
	// e.g. "rgb:12345/1/22".
	ErrOversizedCoordinate = errors.New("color format coordinates should have 1-4 hex digits but one has more")

	// ErrMalformedHex indicates a coordinate that is not a hexadecimal
	// integer, e.g. "#efg".
	ErrMalformedHex = errors.New("color format coordinates should be hexadecimal integers but are not")

	// ErrMalformedFloat indicates a coordinate that is not a floating
	// point number, e.g. "color(srgb 1.0 0..1 0.0)".
	ErrMalformedFloat = errors.New("color format coordinates should be floating point numbers but are not")

	// ErrTooManyCoordinates indicates a color format with more than three
	// coordinates, e.g. "rgb:1/2/3/4".
	ErrTooManyCoordinates = errors.New("color format should have 3 coordinates but has more")
)

func isHexDigit(b byte) bool {
	return '0' <= b && b <= '9' || 'a' <= b && b <= 'f' || 'A' <= b && b <= 'F'
}

// parseHashed parses a 24-bit color in hashed hexadecimal format,
// transparently scaling single-digit coordinates.
func parseHashed(s string) ([3]uint8, error) {
	if !strings.HasPrefix(s, "#") {
		return [3]uint8{}, ErrUnknownFormat
	}
	if len(s) != 4 && len(s) != 7 {
		return [3]uint8{}, ErrUnexpectedCharacters
	}

	factor := len(s) / 3
	var result [3]uint8
	for index := range result {
		t := s[1+factor*index : 1+factor*(index+1)]
		for i := 0; i < len(t); i++ {
			if t[i] >= 0x80 {
				return [3]uint8{}, ErrUnexpectedCharacters
			}
			if !isHexDigit(t[i]) {
				return [3]uint8{}, fmt.Errorf("coordinate %d: %w", index, ErrMalformedHex)
			}
		}
		n, err := strconv.ParseUint(t, 16, 8)
		if err != nil {
			return [3]uint8{}, fmt.Errorf("coordinate %d: %w", index, ErrMalformedHex)
		}
		if factor == 1 {
			n = 16*n + n
		}
		result[index] = uint8(n)
	}

	return result, nil
}

// xCoordinate is one coordinate of the X Windows color format. The digit
// count matters because it determines the coordinate's denominator.
type xCoordinate struct {
	digits int
	value  uint16
}

// parseX parses a color in X Windows format, i.e. "rgb:" followed by three
// coordinates with 1-4 hexadecimal digits each, separated by slashes.
func parseX(s string) ([3]xCoordinate, error) {
	var result [3]xCoordinate

	rest, ok := strings.CutPrefix(s, "rgb:")
	if !ok {
		return result, ErrUnknownFormat
	}

	parts := strings.Split(rest, "/")
	for index := range result {
		if index >= len(parts) || parts[index] == "" {
			return result, fmt.Errorf("coordinate %d: %w", index, ErrMissingCoordinate)
		}
		t := parts[index]
		if len(t) > 4 {
			return result, fmt.Errorf("coordinate %d: %w", index, ErrOversizedCoordinate)
		}
		n, err := strconv.ParseUint(t, 16, 16)
		if err != nil {
			return result, fmt.Errorf("coordinate %d: %w", index, ErrMalformedHex)
		}
		result[index] = xCoordinate{digits: len(t), value: uint16(n)}
	}
	if len(parts) > 3 {
		return result, ErrTooManyCoordinates
	}

	return result, nil
}

// cssSpaceNames maps the color space names of CSS-like color() notation to
// color spaces. Names outside the CSS standard carry two leading dashes,
// just like custom properties. Oklab and Oklch are absent because they have
// their own function notation. The "xyz-d65" alias precedes plain "xyz" so
// that the longer name wins the prefix match.
var cssSpaceNames = []struct {
	name  string
	space ColorSpace
}{
	{"srgb", SRGB},
	{"linear-srgb", LinearSRGB},
	{"display-p3", DisplayP3},
	{"--linear-display-p3", LinearDisplayP3},
	{"rec2020", Rec2020},
	{"--linear-rec2020", LinearRec2020},
	{"--oklrab", Oklrab},
	{"--oklrch", Oklrch},
	{"xyz-d65", XYZ},
	{"xyz", XYZ},
}

// parseCSS parses a subset of valid CSS color formats, namely the oklab(),
// oklch(), and color() functions with space-separated coordinates and no
// units. The color space for color() must be one of the names in
// cssSpaceNames.
func parseCSS(s string) (ColorSpace, [3]float64, error) {
	var coords [3]float64
	var space ColorSpace
	var spaceKnown bool
	var rest string

	switch {
	case strings.HasPrefix(s, "oklab"):
		space, spaceKnown, rest = Oklab, true, s[len("oklab"):]
	case strings.HasPrefix(s, "oklch"):
		space, spaceKnown, rest = Oklch, true, s[len("oklch"):]
	case strings.HasPrefix(s, "color"):
		rest = s[len("color"):]
	default:
		return 0, coords, ErrUnknownFormat
	}

	rest, ok := strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "(")
	if !ok {
		return 0, coords, ErrNoOpeningParenthesis
	}
	rest, ok = strings.CutSuffix(rest, ")")
	if !ok {
		return 0, coords, ErrNoClosingParenthesis
	}

	if !spaceKnown {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		for _, entry := range cssSpaceNames {
			if body, found := strings.CutPrefix(rest, entry.name); found {
				space, spaceKnown, rest = entry.space, true, body
				break
			}
		}
		if !spaceKnown {
			return 0, coords, ErrUnknownColorSpace
		}
	}

	fields := strings.Fields(rest)
	for index := range coords {
		if index >= len(fields) {
			return 0, coords, fmt.Errorf("coordinate %d: %w", index, ErrMissingCoordinate)
		}
		value, err := strconv.ParseFloat(fields[index], 64)
		if err != nil {
			return 0, coords, fmt.Errorf("coordinate %d: %w", index, ErrMalformedFloat)
		}
		coords[index] = value
	}
	if len(fields) > 3 {
		return 0, coords, ErrTooManyCoordinates
	}

	return space, coords, nil
}

// asciiLowercase converts ASCII letters to lowercase, leaving all other
// characters alone. A valid color string may contain Unicode white space
// and hence needn't be all ASCII.
func asciiLowercase(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

// Parse parses the string into a color.
//
// Parse recognizes the hashed hexadecimal format with three or six digits,
// the X Windows format with "rgb:" prefix, and the modern syntax of the CSS
// color(), oklab(), and oklch() functions with space-separated coordinates.
// It trims leading and trailing white space and ignores the case of ASCII
// letters.
func Parse(s string) (Color, error) {
	text := asciiLowercase(strings.TrimSpace(s))

	var color Color
	var err error
	switch {
	case strings.HasPrefix(text, "#"):
		var rgb [3]uint8
		rgb, err = parseHashed(text)
		color = Color{space: SRGB, coords: from24Bit(rgb[0], rgb[1], rgb[2])}
	case strings.HasPrefix(text, "rgb:"):
		var parts [3]xCoordinate
		parts, err = parseX(text)
		var coords [3]float64
		for index, part := range parts {
			coords[index] = float64(part.value) / float64(int(1)<<(4*part.digits)-1)
		}
		color = Color{space: SRGB, coords: coords}
	default:
		var space ColorSpace
		var coords [3]float64
		space, coords, err = parseCSS(text)
		color = Color{space: space, coords: coords}
	}

	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return color, nil
}
