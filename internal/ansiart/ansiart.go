// Package ansiart renders images as half-block escape sequence art.
//
// Each output row covers two pixel rows: the upper half block glyph shows
// the upper pixel in the foreground color and the lower pixel in the
// background color. Since a terminal cell is about twice as tall as it is
// wide, the two stacked half blocks come out roughly square and the image
// keeps its aspect ratio.
package ansiart

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/apparebit/pitty"
)

const (
	upperHalf = '▀'
	lowerHalf = '▄'

	// Pixels with less than half coverage render as transparent.
	alphaOpaque = 128
)

// Renderer converts images to escape sequence art at a given fidelity.
// FidelityFull emits 24-bit colors, FidelityEightBit and FidelityAnsi match
// every pixel through the Matcher. Lower fidelities cannot show art at all.
type Renderer struct {
	Matcher  *pitty.Matcher
	Fidelity pitty.Fidelity
	Width    int // output columns; 0 uses the image width
}

// Render scales the image to the output width and converts it to one escape
// sequence per run of equally colored cells. Every line resets the terminal
// colors, so partial output does not bleed.
func (r *Renderer) Render(img image.Image) (string, error) {
	switch r.Fidelity {
	case pitty.FidelityFull:
	case pitty.FidelityEightBit, pitty.FidelityAnsi:
		if r.Matcher == nil {
			return "", fmt.Errorf("%s output needs a matcher", r.Fidelity)
		}
	default:
		return "", fmt.Errorf("%s output cannot show color art", r.Fidelity)
	}

	img = r.scale(img)
	bounds := img.Bounds()
	if bounds.Empty() {
		return "", nil
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		prev := ""
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			upper, upperOK := pixelAt(img, x, y)
			var lower pitty.Color
			lowerOK := false
			if y+1 < bounds.Max.Y {
				lower, lowerOK = pixelAt(img, x, y+1)
			}

			params, glyph := r.cell(upper, upperOK, lower, lowerOK)
			if params != prev {
				b.WriteString("\x1b[")
				b.WriteString(params)
				b.WriteByte('m')
				prev = params
			}
			b.WriteRune(glyph)
		}
		b.WriteString("\x1b[0m\n")
	}

	return b.String(), nil
}

// scale resizes the image so it comes out r.Width cells wide, preserving the
// aspect ratio in half-block pixels.
func (r *Renderer) scale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Empty() || r.Width <= 0 || r.Width == bounds.Dx() {
		return img
	}

	width := r.Width
	height := int(float64(width)*float64(bounds.Dy())/float64(bounds.Dx()) + 0.5)
	if height < 1 {
		height = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// cell picks the glyph and SGR parameters for one pair of stacked pixels.
// A transparent half leaves the terminal's default background showing.
func (r *Renderer) cell(upper pitty.Color, upperOK bool, lower pitty.Color, lowerOK bool) (string, rune) {
	switch {
	case upperOK && lowerOK:
		return r.foreground(upper) + ";" + r.background(lower), upperHalf
	case upperOK:
		return r.foreground(upper) + ";49", upperHalf
	case lowerOK:
		return r.foreground(lower) + ";49", lowerHalf
	default:
		return "49", ' '
	}
}

func (r *Renderer) foreground(c pitty.Color) string {
	switch r.Fidelity {
	case pitty.FidelityAnsi:
		ansi := r.Matcher.ToAnsi(c)
		if ansi.IsBright() {
			return strconv.Itoa(90 + int(ansi) - 8)
		}
		return strconv.Itoa(30 + int(ansi))
	case pitty.FidelityEightBit:
		return "38;5;" + strconv.Itoa(int(r.Matcher.ToEightBit(c).EightBit()))
	default:
		t := c.TrueColor()
		return fmt.Sprintf("38;2;%d;%d;%d", t[0], t[1], t[2])
	}
}

func (r *Renderer) background(c pitty.Color) string {
	switch r.Fidelity {
	case pitty.FidelityAnsi:
		ansi := r.Matcher.ToAnsi(c)
		if ansi.IsBright() {
			return strconv.Itoa(100 + int(ansi) - 8)
		}
		return strconv.Itoa(40 + int(ansi))
	case pitty.FidelityEightBit:
		return "48;5;" + strconv.Itoa(int(r.Matcher.ToEightBit(c).EightBit()))
	default:
		t := c.TrueColor()
		return fmt.Sprintf("48;2;%d;%d;%d", t[0], t[1], t[2])
	}
}

// pixelAt reads one pixel as a high-resolution color. The second result is
// false for transparent pixels.
func pixelAt(img image.Image, x, y int) (pitty.Color, bool) {
	nrgba := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if nrgba.A < alphaOpaque {
		return pitty.Color{}, false
	}
	return pitty.TrueColor{nrgba.R, nrgba.G, nrgba.B}.Color(), true
}
