package pitty

import (
	"errors"
	"testing"
)

func TestAnsiColor(t *testing.T) {
	magenta, err := NewAnsiColor(5)
	if err != nil {
		t.Fatalf("NewAnsiColor(5) error: %v", err)
	}
	if magenta != Magenta {
		t.Errorf("NewAnsiColor(5) = %v, want %v", magenta, Magenta)
	}
	if magenta.EightBit() != 5 {
		t.Errorf("EightBit() = %d, want 5", magenta.EightBit())
	}
	if magenta.IsBright() {
		t.Error("IsBright() = true, want false")
	}
	if !BrightYellow.IsBright() {
		t.Error("IsBright() = false, want true")
	}
	if got := BrightYellow.String(); got != "bright yellow" {
		t.Errorf("String() = %q, want %q", got, "bright yellow")
	}
}

func TestAnsiColorOutOfRange(t *testing.T) {
	_, err := NewAnsiColor(16)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("NewAnsiColor(16) error: %v, want OutOfRangeError", err)
	}
	if oor.Value != 16 || oor.Min != 0 || oor.Max != 15 {
		t.Errorf("error = %v, want value 16 in range 0 to 15", oor)
	}
}

func TestEmbeddedRGB(t *testing.T) {
	green, err := NewEmbeddedRGB(0, 4, 0)
	if err != nil {
		t.Fatalf("NewEmbeddedRGB(0, 4, 0) error: %v", err)
	}
	if got := green.EightBit(); got != 40 {
		t.Errorf("EightBit() = %d, want 40", got)
	}

	back, err := EmbeddedRGBFromCode(40)
	if err != nil {
		t.Fatalf("EmbeddedRGBFromCode(40) error: %v", err)
	}
	if back != green {
		t.Errorf("EmbeddedRGBFromCode(40) = %v, want %v", back, green)
	}

	if got := green.TrueColor(); got != (TrueColor{0, 215, 0}) {
		t.Errorf("TrueColor() = %v, want {0 215 0}", got)
	}
}

func TestEmbeddedRGBComponents(t *testing.T) {
	// xterm maps coordinate 0 to 0 and coordinate n to 55 + 40n.
	want := [6]uint8{0, 95, 135, 175, 215, 255}
	for value, component := range want {
		c, err := NewEmbeddedRGB(uint8(value), 0, 0)
		if err != nil {
			t.Fatalf("NewEmbeddedRGB(%d, 0, 0) error: %v", value, err)
		}
		if got := c.TrueColor()[0]; got != component {
			t.Errorf("TrueColor()[0] = %d, want %d", got, component)
		}
	}
}

func TestEmbeddedRGBOutOfRange(t *testing.T) {
	if _, err := NewEmbeddedRGB(1, 6, 1); err == nil {
		t.Error("NewEmbeddedRGB(1, 6, 1) error = nil, want OutOfRangeError")
	}
	if _, err := EmbeddedRGBFromCode(15); err == nil {
		t.Error("EmbeddedRGBFromCode(15) error = nil, want OutOfRangeError")
	}
	if _, err := EmbeddedRGBFromCode(232); err == nil {
		t.Error("EmbeddedRGBFromCode(232) error = nil, want OutOfRangeError")
	}
}

func TestGrayGradient(t *testing.T) {
	gray, err := NewGrayGradient(12)
	if err != nil {
		t.Fatalf("NewGrayGradient(12) error: %v", err)
	}
	if got := gray.EightBit(); got != 244 {
		t.Errorf("EightBit() = %d, want 244", got)
	}

	back, err := GrayGradientFromCode(244)
	if err != nil {
		t.Fatalf("GrayGradientFromCode(244) error: %v", err)
	}
	if back.Level() != 12 {
		t.Errorf("Level() = %d, want 12", back.Level())
	}

	if got := gray.TrueColor(); got != (TrueColor{128, 128, 128}) {
		t.Errorf("TrueColor() = %v, want {128 128 128}", got)
	}
}

func TestGrayGradientOutOfRange(t *testing.T) {
	if _, err := NewGrayGradient(24); err == nil {
		t.Error("NewGrayGradient(24) error = nil, want OutOfRangeError")
	}
	if _, err := GrayGradientFromCode(231); err == nil {
		t.Error("GrayGradientFromCode(231) error = nil, want OutOfRangeError")
	}
}

func TestTrueColor(t *testing.T) {
	c := TrueColor{255, 165, 99}
	if got := c.Hex(); got != "#ffa563" {
		t.Errorf("Hex() = %q, want %q", got, "#ffa563")
	}

	want := [3]float64{1.0, 165.0 / 255.0, 99.0 / 255.0}
	if got := c.Color().Coordinates(); !closeEnough(got, want, false) {
		t.Errorf("Color().Coordinates() = %v, want %v", got, want)
	}
}

func TestEightBitFromCode(t *testing.T) {
	tests := []struct {
		code uint8
		want EightBitColor
	}{
		{0, Black},
		{5, Magenta},
		{15, BrightWhite},
		{16, EmbeddedRGB{0, 0, 0}},
		{40, EmbeddedRGB{0, 4, 0}},
		{231, EmbeddedRGB{5, 5, 5}},
		{232, GrayGradient(0)},
		{244, GrayGradient(12)},
		{255, GrayGradient(23)},
	}

	for _, tt := range tests {
		got := EightBitFromCode(tt.code)
		if got != tt.want {
			t.Errorf("EightBitFromCode(%d) = %v, want %v", tt.code, got, tt.want)
		}
		if got.EightBit() != tt.code {
			t.Errorf("EightBitFromCode(%d).EightBit() = %d", tt.code, got.EightBit())
		}
	}
}

func TestFidelityOrder(t *testing.T) {
	order := []Fidelity{
		FidelityPlain, FidelityNoColor, FidelityAnsi, FidelityEightBit, FidelityFull,
	}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Errorf("%v >= %v, want ascending order", order[i-1], order[i])
		}
	}
}
