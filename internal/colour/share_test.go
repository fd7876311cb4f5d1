package colour

import (
	"errors"
	"strings"
	"testing"
)

func TestParseShareList(t *testing.T) {
	got := ParseShareList(" #FF0000, ,#00FF00,")
	if len(got) != 2 || got[0] != "#FF0000" || got[1] != "#00FF00" {
		t.Errorf("ParseShareList() = %q", got)
	}
	if got := ParseShareList(""); len(got) != 0 {
		t.Errorf("ParseShareList(\"\") = %q, want empty", got)
	}
}

func TestSharedPalette(t *testing.T) {
	got, err := SharedPalette([]string{"#FF0000", "00ff00", "#0000FF"}, true)
	if err != nil {
		t.Fatalf("SharedPalette() error = %v", err)
	}
	for _, e := range got.Entries {
		if e.Percentage != 33.3 {
			t.Errorf("%s percentage = %v, want 33.3", e.Hex, e.Percentage)
		}
	}
	if got.Entries[1].Hex != "#00FF00" {
		t.Errorf("hex should be normalised, got %s", got.Entries[1].Hex)
	}
	if !got.Entries[0].Accessibility.Tritanopia {
		t.Errorf("accessibility should be computed, got %+v", got.Entries[0].Accessibility)
	}

	if ShareList(got) != "#FF0000,#00FF00,#0000FF" {
		t.Errorf("ShareList() = %s", ShareList(got))
	}
}

func TestSharedPaletteErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []string
	}{
		{name: "empty", input: nil},
		{name: "malformed", input: []string{"#FF0000", "#XYZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SharedPalette(tt.input, false)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("SharedPalette() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		c    RGB
		want string
	}{
		{c: RGB{R: 255}, want: "red"},
		{c: RGB{R: 255, G: 200}, want: "orange-yellow"},
		{c: RGB{R: 128, G: 255}, want: "green"},
		{c: RGB{G: 255, B: 200}, want: "cyan-teal"},
		{c: RGB{G: 128, B: 255}, want: "blue"},
		{c: RGB{R: 150, B: 255}, want: "purple"},
		{c: RGB{R: 255, B: 128}, want: "pink-magenta"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Describe(tt.c)
			if got.Family != tt.want {
				t.Errorf("Describe(%s).Family = %s, want %s", tt.c.Hex(), got.Family, tt.want)
			}
			if len(got.Traits) == 0 || got.Description == "" {
				t.Errorf("Describe(%s) is missing text: %+v", tt.c.Hex(), got)
			}
		})
	}
}

func TestDescribeCopiesTraits(t *testing.T) {
	p := Describe(RGB{R: 255})
	p.Traits[0] = "changed"
	if Describe(RGB{R: 255}).Traits[0] == "changed" {
		t.Error("Describe() shares its traits slice")
	}
}

func TestColourPreview(t *testing.T) {
	got := ColourPreview(RGB{R: 255, G: 128}, 4)
	if !strings.HasPrefix(got, "\033[48;2;255;128;0m") || !strings.HasSuffix(got, "    \033[0m") {
		t.Errorf("ColourPreview() = %q", got)
	}

	withText := ColourPreviewWithText(RGB{}, "ab", 6)
	if !strings.Contains(withText, "\033[38;2;255;255;255m") {
		t.Errorf("dark colours should use white text, got %q", withText)
	}
	if !strings.Contains(withText, "  ab  ") {
		t.Errorf("text should be centred, got %q", withText)
	}
}
