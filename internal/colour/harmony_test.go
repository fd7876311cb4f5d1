package colour

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestComplementaryInvolution(t *testing.T) {
	for _, c := range channelGrid(15) {
		once := Complementary(c)
		if len(once) != 1 {
			t.Fatalf("Complementary() returned %d colours, want 1", len(once))
		}
		twice := Complementary(once[0])
		if twice[0] != c {
			t.Errorf("Complementary(Complementary(%s)) = %s", c.Hex(), twice[0].Hex())
		}
	}
}

func TestHueRotations(t *testing.T) {
	red := RGB{R: 255}
	tests := []struct {
		name string
		fn   func(RGB) []RGB
		want []RGB
	}{
		{name: "complementary", fn: Complementary, want: []RGB{{G: 255, B: 255}}},
		{name: "analogous", fn: Analogous, want: []RGB{{R: 255, G: 128}, {R: 255, B: 128}}},
		{name: "triad", fn: Triad, want: []RGB{{G: 255}, {B: 255}}},
		{name: "tetradic", fn: Tetradic, want: []RGB{{R: 128, G: 255}, {G: 255, B: 255}, {R: 128, B: 255}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(red)
			if len(got) != len(tt.want) {
				t.Fatalf("returned %d colours, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if maxChannelDelta(got[i], tt.want[i]) > 1 {
					t.Errorf("colour %d = %s, want %s", i, got[i].Hex(), tt.want[i].Hex())
				}
			}
		})
	}
}

func TestMonochromatic(t *testing.T) {
	base := RGB{R: 200, G: 60, B: 60}
	baseHue, _, baseL := base.HSL()

	got := Monochromatic(base)
	if len(got) != 4 {
		t.Fatalf("Monochromatic() returned %d colours, want 4", len(got))
	}
	for i, c := range got {
		h, _, _ := c.HSL()
		if hueDelta(float64(h), float64(baseHue)) > 3 {
			t.Errorf("colour %d hue = %d, want near %d", i, h, baseHue)
		}
	}
	if _, _, l := got[0].HSL(); l <= baseL {
		t.Errorf("first variant lightness = %v, want lighter than %v", l, baseL)
	}
	if _, _, l := got[1].HSL(); l >= baseL {
		t.Errorf("second variant lightness = %v, want darker than %v", l, baseL)
	}
}

func TestHarmonyFuncUnknown(t *testing.T) {
	if _, err := HarmonyFunc("square"); err == nil {
		t.Error("HarmonyFunc(square) should fail")
	}
}

func TestGenerateHarmonies(t *testing.T) {
	palette := []PaletteEntry{
		NewPaletteEntry(RGB{R: 255}, 40),
		NewPaletteEntry(RGB{G: 255}, 30),
		NewPaletteEntry(RGB{B: 255}, 20),
		NewPaletteEntry(RGB{R: 255, G: 255}, 10),
	}

	got := GenerateHarmonies(palette, nil)
	if len(got.Sets) != MaxHarmonyBases*len(HarmonyKinds()) {
		t.Errorf("generated %d sets, want %d", len(got.Sets), MaxHarmonyBases*len(HarmonyKinds()))
	}
	if len(got.Failures) != 0 {
		t.Errorf("unexpected failures: %v", got.Failures)
	}
	for _, s := range got.Sets {
		if s.Base.Hex == "#FFFF00" {
			t.Error("harmonies generated for the fourth palette colour")
		}
	}
}

func TestGenerateHarmoniesFewerBases(t *testing.T) {
	got := GenerateHarmonies([]PaletteEntry{NewPaletteEntry(RGB{R: 255}, 100)}, nil)
	if len(got.Sets) != len(HarmonyKinds()) {
		t.Errorf("generated %d sets, want %d", len(got.Sets), len(HarmonyKinds()))
	}
	if got := GenerateHarmonies(nil, nil); len(got.Sets) != 0 {
		t.Errorf("GenerateHarmonies(nil) generated %d sets", len(got.Sets))
	}
}

func TestGenerateHarmoniesIsolatesFailures(t *testing.T) {
	broken := NewPaletteEntry(RGB{G: 255}, 30)
	broken.Hex = "#nope"
	palette := []PaletteEntry{
		NewPaletteEntry(RGB{R: 255}, 50),
		broken,
		NewPaletteEntry(RGB{B: 255}, 20),
	}

	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Name: "test", Output: &buf, Level: hclog.Warn})

	got := GenerateHarmonies(palette, logger)
	if len(got.Sets) != 2*len(HarmonyKinds()) {
		t.Errorf("generated %d sets, want %d", len(got.Sets), 2*len(HarmonyKinds()))
	}
	if len(got.Failures) != len(HarmonyKinds()) {
		t.Fatalf("recorded %d failures, want %d", len(got.Failures), len(HarmonyKinds()))
	}
	for _, f := range got.Failures {
		if f.Base.Hex != "#nope" {
			t.Errorf("failure recorded for %s, want #nope", f.Base.Hex)
		}
		if !strings.Contains(f.Error(), "#nope") {
			t.Errorf("failure message %q should name the base colour", f.Error())
		}
	}
	if !strings.Contains(buf.String(), "harmony generation failed") {
		t.Errorf("failures should be logged, got %q", buf.String())
	}
}
