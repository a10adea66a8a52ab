package pitty

import (
	"io"
	"testing"

	"github.com/muesli/termenv"
)

type mapEnviron map[string]string

func (m mapEnviron) Environ() []string {
	environ := make([]string, 0, len(m))
	for key, value := range m {
		environ = append(environ, key+"="+value)
	}
	return environ
}

func (m mapEnviron) Getenv(key string) string {
	return m[key]
}

func TestColorFromTermenv(t *testing.T) {
	theme := DefaultTheme()

	tests := []struct {
		name  string
		input termenv.Color
		want  Color
		ok    bool
	}{
		{
			name:  "24-bit color",
			input: termenv.RGBColor("#ffca00"),
			want:  TrueColor{0xff, 0xca, 0x00}.Color(),
			ok:    true,
		},
		{
			name:  "ansi color",
			input: termenv.ANSIColor(3),
			want:  theme.Ansi(Yellow),
			ok:    true,
		},
		{
			name:  "8-bit ansi color",
			input: termenv.ANSI256Color(9),
			want:  theme.Ansi(BrightRed),
			ok:    true,
		},
		{
			name:  "8-bit cube color",
			input: termenv.ANSI256Color(40),
			want:  EmbeddedRGB{0, 4, 0}.Color(),
			ok:    true,
		},
		{
			name:  "8-bit gray color",
			input: termenv.ANSI256Color(244),
			want:  GrayGradient(12).Color(),
			ok:    true,
		},
		{
			name:  "no color",
			input: termenv.NoColor{},
			ok:    false,
		},
		{
			name:  "malformed 24-bit color",
			input: termenv.RGBColor("#nope"),
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := colorFromTermenv(tt.input, &theme)
			if ok != tt.ok {
				t.Fatalf("colorFromTermenv() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("colorFromTermenv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryThemeWithoutTerminal(t *testing.T) {
	// Without a terminal to interrogate, the query falls back onto the
	// built-in theme in its entirety.
	output := termenv.NewOutput(io.Discard, termenv.WithEnvironment(mapEnviron{}))
	if got := QueryTheme(output); got != DefaultTheme() {
		t.Error("QueryTheme() differs from the default theme")
	}
}

func TestDetectFidelity(t *testing.T) {
	tests := []struct {
		name    string
		profile termenv.Profile
		environ mapEnviron
		want    Fidelity
	}{
		{"true color", termenv.TrueColor, mapEnviron{}, FidelityFull},
		{"8-bit color", termenv.ANSI256, mapEnviron{}, FidelityEightBit},
		{"ansi color", termenv.ANSI, mapEnviron{}, FidelityAnsi},
		{"ascii", termenv.Ascii, mapEnviron{}, FidelityPlain},
		{"no color", termenv.TrueColor, mapEnviron{"NO_COLOR": "1"}, FidelityNoColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := termenv.NewOutput(
				io.Discard,
				termenv.WithProfile(tt.profile),
				termenv.WithEnvironment(tt.environ),
			)
			if got := DetectFidelity(output); got != tt.want {
				t.Errorf("DetectFidelity() = %v, want %v", got, tt.want)
			}
		})
	}
}
