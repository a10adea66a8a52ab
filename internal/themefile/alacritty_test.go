package themefile

import (
	"strings"
	"testing"

	"github.com/apparebit/pitty"
)

const sampleAlacritty = `
colors:
  primary:
    background: '0x191724'
    foreground: '#e0def4'
  normal:
    black: '0x26233a'
    red: '0xeb6f92'
    green: '0x31748f'
    yellow: '0xf6c177'
    blue: '0x9ccfd8'
    magenta: '0xc4a7e7'
    cyan: '0xebbcba'
    white: '0xe0def4'
  bright:
    black: '0x6e6a86'
    red: '0xeb6f92'
`

func TestLoadAlacritty(t *testing.T) {
	path := writeTheme(t, "rosepine.yml", sampleAlacritty)
	file, err := LoadAlacritty(path)
	if err != nil {
		t.Fatalf("LoadAlacritty() error: %v", err)
	}

	if file.Meta.Name != "rosepine" {
		t.Errorf("Meta.Name = %q, want %q", file.Meta.Name, "rosepine")
	}

	fg := file.Theme.Default(pitty.Foreground).TrueColor()
	if fg != (pitty.TrueColor{0xe0, 0xde, 0xf4}) {
		t.Errorf("foreground = %v, want #e0def4", fg)
	}
	bg := file.Theme.Default(pitty.Background).TrueColor()
	if bg != (pitty.TrueColor{0x19, 0x17, 0x24}) {
		t.Errorf("background = %v, want #191724", bg)
	}

	if got := file.Theme.Ansi(pitty.Red).TrueColor(); got != (pitty.TrueColor{0xeb, 0x6f, 0x92}) {
		t.Errorf("Ansi(Red) = %v, want #eb6f92", got)
	}
	if got := file.Theme.Ansi(pitty.BrightBlack).TrueColor(); got != (pitty.TrueColor{0x6e, 0x6a, 0x86}) {
		t.Errorf("Ansi(BrightBlack) = %v, want #6e6a86", got)
	}

	// Entries missing from the scheme keep their default values. The sample
	// has no bright yellow, so the VGA color shows through.
	def := pitty.DefaultTheme()
	want := def.Ansi(pitty.BrightYellow)
	if got := file.Theme.Ansi(pitty.BrightYellow); !got.Equal(want) {
		t.Errorf("Ansi(BrightYellow) = %v, want default %v", got, want)
	}
}

func TestLoadAlacrittyErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "unknown color name",
			content: `
colors:
  normal:
    orange: '0xff9600'
`,
			want: "orange",
		},
		{
			name: "malformed color",
			content: `
colors:
  normal:
    red: 'not-a-color'
`,
			want: "red",
		},
		{
			name:    "malformed yaml",
			content: "colors: [",
			want:    "parsing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, "scheme.yml", tt.content)
			_, err := LoadAlacritty(path)
			if err == nil {
				t.Fatal("LoadAlacritty() error = nil, want an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadAlacritty() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
