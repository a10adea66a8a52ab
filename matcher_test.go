package pitty

import (
	"math"
	"testing"
)

func TestOkVersion(t *testing.T) {
	if got := OkOriginal.CartesianSpace(); got != Oklab {
		t.Errorf("CartesianSpace() = %v, want %v", got, Oklab)
	}
	if got := OkOriginal.PolarSpace(); got != Oklch {
		t.Errorf("PolarSpace() = %v, want %v", got, Oklch)
	}
	if got := OkRevised.CartesianSpace(); got != Oklrab {
		t.Errorf("CartesianSpace() = %v, want %v", got, Oklrab)
	}
	if got := OkRevised.PolarSpace(); got != Oklrch {
		t.Errorf("PolarSpace() = %v, want %v", got, Oklrch)
	}
}

func TestMatcherToAnsi(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		name  string
		color Color
		want  AnsiColor
	}{
		{"yellow", New(SRGB, 1, 1, 0), BrightYellow},
		{"apricot #ffa563", TrueColor{0xff, 0xa5, 0x63}.Color(), White},
		{"orange #ff9600", TrueColor{0xff, 0x96, 0x00}.Color(), BrightRed},
		{"black", New(SRGB, 0, 0, 0), Black},
		{"white", New(SRGB, 1, 1, 1), BrightWhite},
	}

	for _, version := range []OkVersion{OkOriginal, OkRevised} {
		t.Run(version.String(), func(t *testing.T) {
			matcher := NewMatcher(&theme, version)
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					if got := matcher.ToAnsi(tt.color); got != tt.want {
						t.Errorf("ToAnsi(%v) = %v, want %v", tt.color, got, tt.want)
					}
				})
			}
		})
	}
}

func TestMatcherToAnsiThemed(t *testing.T) {
	// A theme that reassigns red to pure blue must attract blues to the
	// red slot.
	theme := DefaultTheme()
	theme.SetAnsi(Red, New(SRGB, 0, 0, 1))

	matcher := NewMatcher(&theme, OkRevised)
	if got := matcher.ToAnsi(New(SRGB, 0, 0, 0.95)); got != Red {
		t.Errorf("ToAnsi() = %v, want %v", got, Red)
	}
}

func TestMatcherToEightBit(t *testing.T) {
	theme := DefaultTheme()
	matcher := NewMatcher(&theme, OkRevised)

	// Every one of the 240 candidate colors matches itself.
	for code := 16; code <= 255; code++ {
		var color Color
		if code <= 231 {
			rgb, err := EmbeddedRGBFromCode(uint8(code))
			if err != nil {
				t.Fatalf("EmbeddedRGBFromCode(%d) error: %v", code, err)
			}
			color = rgb.Color()
		} else {
			gray, err := GrayGradientFromCode(uint8(code))
			if err != nil {
				t.Fatalf("GrayGradientFromCode(%d) error: %v", code, err)
			}
			color = gray.Color()
		}

		if got := matcher.ToEightBit(color); got.EightBit() != uint8(code) {
			t.Errorf("ToEightBit(%v) = %d, want %d", color, got.EightBit(), code)
		}
	}
}

func TestMatcherToEightBitSkipsAnsi(t *testing.T) {
	theme := DefaultTheme()
	matcher := NewMatcher(&theme, OkRevised)

	// The match lands in the embedded RGB cube or the gray gradient even
	// when a themed ANSI color is the exact color.
	for _, color := range []Color{
		theme.Ansi(Red),
		theme.Ansi(BrightYellow),
		New(SRGB, 0, 0, 0),
	} {
		if got := matcher.ToEightBit(color).EightBit(); got < 16 {
			t.Errorf("ToEightBit(%v) = %d, want at least 16", color, got)
		}
	}
}

func TestMatcherHueMetric(t *testing.T) {
	// Compare by hue alone, measuring the minimal separation in degrees.
	// Achromatic candidates have not-a-number hues and not-a-number
	// distances, which rank behind all others.
	hueDistance := func(c1, c2 [3]float64) float64 {
		d1 := math.Mod(c1[2]-c2[2], 360)
		if d1 < 0 {
			d1 += 360
		}
		d2 := math.Mod(c2[2]-c1[2], 360)
		if d2 < 0 {
			d2 += 360
		}
		return math.Min(d1, d2)
	}

	theme := DefaultTheme()
	candidates := make([]Color, 16)
	for code := range candidates {
		candidates[code] = theme.Ansi(AnsiColor(code))
	}

	apricot := TrueColor{0xff, 0xa5, 0x63}.Color()
	index, ok := apricot.FindClosest(candidates, Oklrch, hueDistance)
	if !ok {
		t.Fatal("FindClosest() found no candidate")
	}
	if AnsiColor(index) != Yellow {
		t.Errorf("FindClosest() = %v, want %v", AnsiColor(index), Yellow)
	}

	matcher := NewMatcherMetric(&theme, Oklrch, hueDistance)
	if got := matcher.ToAnsi(apricot); got != Yellow {
		t.Errorf("ToAnsi() = %v, want %v", got, Yellow)
	}
}

func TestMatcherAdapt(t *testing.T) {
	theme := DefaultTheme()
	matcher := NewMatcher(&theme, OkRevised)
	apricot := TrueColor{0xff, 0xa5, 0x63}.Color()

	full, ok := matcher.Adapt(apricot, FidelityFull)
	if !ok || !full.Equal(apricot) {
		t.Errorf("Adapt(FidelityFull) = %v, %v, want the color unchanged", full, ok)
	}

	eight, ok := matcher.Adapt(apricot, FidelityEightBit)
	if !ok {
		t.Fatal("Adapt(FidelityEightBit) found no color")
	}
	want := matcher.ToEightBit(apricot)
	if rgb, isCube := want.(EmbeddedRGB); !isCube || !eight.Equal(rgb.Color()) {
		t.Errorf("Adapt(FidelityEightBit) = %v, want %v", eight, want)
	}

	ansi, ok := matcher.Adapt(apricot, FidelityAnsi)
	if !ok {
		t.Fatal("Adapt(FidelityAnsi) found no color")
	}
	if !ansi.Equal(theme.Ansi(White).To(Oklrab)) {
		t.Errorf("Adapt(FidelityAnsi) = %v, want themed white", ansi)
	}

	if _, ok := matcher.Adapt(apricot, FidelityNoColor); ok {
		t.Error("Adapt(FidelityNoColor) = true, want false")
	}
	if _, ok := matcher.Adapt(apricot, FidelityPlain); ok {
		t.Error("Adapt(FidelityPlain) = true, want false")
	}
}
