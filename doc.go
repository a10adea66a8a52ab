// Package pitty brings 2020s color science to 1970s terminals.
//
// The package models colors as coordinates in one of eleven color spaces,
// covering the RGB spaces of contemporary displays, sRGB, Display P3, and
// Rec. 2020, in gamma-corrected and linear form, the perceptually uniform
// Oklab family in Cartesian and polar form with original and revised
// lightness, and CIE XYZ with standard illuminant D65, which serves as the
// root of the conversion graph. Convert translates coordinates between any
// two of these spaces; Color wraps a color space and its coordinates into a
// self-contained value.
//
// The package also models the color formats of terminal emulators, the
// sixteen extended ANSI colors, the 8-bit colors with their embedded 6x6x6
// RGB cube and 24-step gray gradient, and 24-bit true color. ANSI colors
// have no intrinsic color values; a Theme supplies concrete values for them
// and for the default foreground and background. On top of theme and
// conversion graph, a Matcher translates high-resolution colors to the
// closest ANSI or 8-bit color by exhaustive search in a perceptually
// uniform color space.
//
// Conversions and matchers are pure and deterministic. Out-of-gamut results
// are returned as is; only the 24-bit conversions clamp.
package pitty
