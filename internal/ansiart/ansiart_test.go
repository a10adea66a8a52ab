package ansiart

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/apparebit/pitty"
)

func solid(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	red         = color.NRGBA{R: 255, A: 255}
	blue        = color.NRGBA{B: 255, A: 255}
	transparent = color.NRGBA{}
)

func TestRenderTrueColor(t *testing.T) {
	r := &Renderer{Fidelity: pitty.FidelityFull}

	got, err := r.Render(solid(2, 2, red))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// One escape sequence covers the whole run of identical cells.
	want := "\x1b[38;2;255;0;0;48;2;255;0;0m▀▀\x1b[0m\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEightBit(t *testing.T) {
	theme := pitty.DefaultTheme()
	r := &Renderer{
		Matcher:  pitty.NewMatcher(&theme, pitty.OkRevised),
		Fidelity: pitty.FidelityEightBit,
	}

	got, err := r.Render(solid(1, 2, red))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Pure red is an exact cube color, 16 + 36*5 = 196.
	want := "\x1b[38;5;196;48;5;196m▀\x1b[0m\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderAnsi(t *testing.T) {
	theme := pitty.DefaultTheme()
	theme.SetAnsi(pitty.Red, pitty.New(pitty.SRGB, 1, 0, 0))
	r := &Renderer{
		Matcher:  pitty.NewMatcher(&theme, pitty.OkRevised),
		Fidelity: pitty.FidelityAnsi,
	}

	got, err := r.Render(solid(1, 2, red))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	want := "\x1b[31;41m▀\x1b[0m\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderTransparency(t *testing.T) {
	r := &Renderer{Fidelity: pitty.FidelityFull}

	upper := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	upper.SetNRGBA(0, 0, red)
	upper.SetNRGBA(0, 1, transparent)

	got, err := r.Render(upper)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "\x1b[38;2;255;0;0;49m▀\x1b[0m\n"; got != want {
		t.Errorf("upper opaque = %q, want %q", got, want)
	}

	lower := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	lower.SetNRGBA(0, 0, transparent)
	lower.SetNRGBA(0, 1, blue)

	got, err = r.Render(lower)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "\x1b[38;2;0;0;255;49m▄\x1b[0m\n"; got != want {
		t.Errorf("lower opaque = %q, want %q", got, want)
	}

	empty, err := r.Render(solid(1, 2, transparent))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if want := "\x1b[49m \x1b[0m\n"; empty != want {
		t.Errorf("fully transparent = %q, want %q", empty, want)
	}
}

func TestRenderScaling(t *testing.T) {
	r := &Renderer{Fidelity: pitty.FidelityFull, Width: 2}

	got, err := r.Render(solid(4, 4, red))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if rows := strings.Count(got, "\n"); rows != 1 {
		t.Errorf("expected 1 output row, got %d:\n%q", rows, got)
	}
	if cells := strings.Count(got, string(upperHalf)); cells != 2 {
		t.Errorf("expected 2 cells, got %d:\n%q", cells, got)
	}
}

func TestRenderOddHeight(t *testing.T) {
	r := &Renderer{Fidelity: pitty.FidelityFull}

	got, err := r.Render(solid(1, 3, red))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// The last row has no lower pixel, so the background stays default.
	want := "\x1b[38;2;255;0;0;48;2;255;0;0m▀\x1b[0m\n" +
		"\x1b[38;2;255;0;0;49m▀\x1b[0m\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmptyImage(t *testing.T) {
	r := &Renderer{Fidelity: pitty.FidelityFull}

	got, err := r.Render(image.NewNRGBA(image.Rectangle{}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestRenderFidelityErrors(t *testing.T) {
	img := solid(1, 2, red)

	r := &Renderer{Fidelity: pitty.FidelityNoColor}
	if _, err := r.Render(img); err == nil {
		t.Error("expected error for colorless fidelity")
	}

	r = &Renderer{Fidelity: pitty.FidelityEightBit}
	if _, err := r.Render(img); err == nil {
		t.Error("expected error for missing matcher")
	}
}
