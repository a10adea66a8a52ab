package pitty

import "testing"

func TestColorSpacePredicates(t *testing.T) {
	tests := []struct {
		space ColorSpace
		polar bool
		rgb   bool
		ok    bool
	}{
		{SRGB, false, true, false},
		{LinearSRGB, false, true, false},
		{DisplayP3, false, true, false},
		{LinearDisplayP3, false, true, false},
		{Rec2020, false, true, false},
		{LinearRec2020, false, true, false},
		{Oklab, false, false, true},
		{Oklch, true, false, true},
		{Oklrab, false, false, true},
		{Oklrch, true, false, true},
		{XYZ, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.space.String(), func(t *testing.T) {
			if got := tt.space.IsPolar(); got != tt.polar {
				t.Errorf("IsPolar() = %v, want %v", got, tt.polar)
			}
			if got := tt.space.IsRGB(); got != tt.rgb {
				t.Errorf("IsRGB() = %v, want %v", got, tt.rgb)
			}
			if got := tt.space.IsOk(); got != tt.ok {
				t.Errorf("IsOk() = %v, want %v", got, tt.ok)
			}
		})
	}
}

func TestColorSpaceString(t *testing.T) {
	tests := []struct {
		space ColorSpace
		want  string
	}{
		{SRGB, "sRGB"},
		{LinearDisplayP3, "linear Display P3"},
		{Rec2020, "Rec. 2020"},
		{Oklrch, "Oklrch"},
		{XYZ, "XYZ"},
	}

	for _, tt := range tests {
		if got := tt.space.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseColorSpace(t *testing.T) {
	tests := []struct {
		name string
		want ColorSpace
	}{
		{"srgb", SRGB},
		{"linear-srgb", LinearSRGB},
		{"display-p3", DisplayP3},
		{"--linear-display-p3", LinearDisplayP3},
		{"linear-display-p3", LinearDisplayP3},
		{"rec2020", Rec2020},
		{"--linear-rec2020", LinearRec2020},
		{"oklab", Oklab},
		{"oklch", Oklch},
		{"--oklrab", Oklrab},
		{"oklrch", Oklrch},
		{"xyz", XYZ},
		{"xyz-d65", XYZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColorSpace(tt.name)
			if err != nil {
				t.Fatalf("ParseColorSpace(%q) error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseColorSpace(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if _, err := ParseColorSpace("cmyk"); err == nil {
		t.Error(`ParseColorSpace("cmyk") error = nil, want an error`)
	}
}
