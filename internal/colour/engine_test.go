package colour

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Options) {}},
		{name: "minimum count", modify: func(o *Options) { o.ColourCount = 3 }},
		{name: "maximum count", modify: func(o *Options) { o.ColourCount = 15 }},
		{name: "count too small", modify: func(o *Options) { o.ColourCount = 2 }, wantErr: true},
		{name: "count too large", modify: func(o *Options) { o.ColourCount = 16 }, wantErr: true},
		{name: "unknown mode", modify: func(o *Options) { o.Mode = "pastel" }, wantErr: true},
		{name: "zero threshold uses default", modify: func(o *Options) { o.BackgroundThreshold = 0 }},
		{name: "threshold above one", modify: func(o *Options) { o.BackgroundThreshold = 1.5 }, wantErr: true},
		{name: "negative threshold", modify: func(o *Options) { o.BackgroundThreshold = -0.1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error = %v, should wrap ErrInvalidInput", err)
			}
		})
	}
}

func TestExtractPaletteSynthetic(t *testing.T) {
	opts := DefaultOptions()
	opts.ColourCount = 3
	opts.Rand = rand.New(rand.NewSource(1))

	candidates := swatches(RGB{R: 255}, RGB{G: 255}, RGB{B: 255})
	got, err := NewEngine(nil).ExtractPalette(candidates, opts, nil)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}

	if got.Len() != 3 {
		t.Fatalf("palette has %d colours, want 3", got.Len())
	}
	if got.Measured {
		t.Error("palette without pixels should not be measured")
	}
	if sum := got.TotalPercentage(); math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want 100", sum)
	}
	for _, e := range got.Entries {
		if e.Accessibility != DefaultProfile() {
			t.Errorf("%s accessibility = %+v, want default", e.Hex, e.Accessibility)
		}
	}
}

func TestExtractPaletteMeasured(t *testing.T) {
	white := RGB{R: 250, G: 250, B: 250}
	blue := RGB{R: 10, G: 20, B: 200}
	red := RGB{R: 255}

	var buf PixelBuffer
	fill(&buf, white, 255, 900)
	fill(&buf, blue, 255, 80)
	fill(&buf, red, 255, 20)

	opts := DefaultOptions()
	opts.ColourCount = 3
	opts.SmartFilter = true
	opts.Accessibility = true

	candidates := NewCandidates(white, []RGB{blue, red})
	got, err := NewEngine(nil).ExtractPalette(candidates, opts, &buf)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}

	if !got.Measured {
		t.Error("palette with pixels should be measured")
	}
	want := []struct {
		hex string
		pct float64
	}{
		{hex: blue.Hex(), pct: 80},
		{hex: red.Hex(), pct: 20},
	}
	if got.Len() != len(want) {
		t.Fatalf("palette = %v, want %d colours", got.ToHex(), len(want))
	}
	for i, w := range want {
		if got.Entries[i].Hex != w.hex || got.Entries[i].Percentage != w.pct {
			t.Errorf("entry %d = %s %.1f%%, want %s %.1f%%", i, got.Entries[i].Hex, got.Entries[i].Percentage, w.hex, w.pct)
		}
	}
	if !got.Entries[1].Accessibility.Tritanopia || got.Entries[1].Accessibility.Protanopia {
		t.Errorf("red accessibility = %+v", got.Entries[1].Accessibility)
	}
}

func TestExtractPaletteMeasuredSumsToHundred(t *testing.T) {
	var colours []RGB
	for _, r := range []uint8{0, 120, 240} {
		for _, g := range []uint8{0, 120, 240} {
			for _, b := range []uint8{60, 200} {
				colours = append(colours, RGB{R: r, G: g, B: b})
			}
		}
	}
	colours = colours[:15]

	var buf PixelBuffer
	fill(&buf, colours[0], 255, 816)
	for _, c := range colours[1:] {
		fill(&buf, c, 255, 656)
	}

	opts := DefaultOptions()
	opts.ColourCount = 15
	opts.SmartFilter = true

	candidates := NewCandidates(colours[0], colours[1:])
	got, err := NewEngine(nil).ExtractPalette(candidates, opts, &buf)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}
	if got.Len() != 15 {
		t.Fatalf("palette has %d colours, want 15", got.Len())
	}
	if sum := got.TotalPercentage(); sum < 99.5 || sum > 100.5 {
		t.Errorf("percentages sum to %v, want within [99.5, 100.5]", sum)
	}
	if got.Entries[0].Hex != colours[0].Hex() {
		t.Errorf("first entry = %s, want the most populous %s", got.Entries[0].Hex, colours[0].Hex())
	}
}

func TestExtractPalettePortraitWithoutPixels(t *testing.T) {
	opts := DefaultOptions()
	opts.PortraitMode = true
	opts.Rand = rand.New(rand.NewSource(3))

	got, err := NewEngine(nil).ExtractPalette(swatches(RGB{R: 255}, RGB{B: 255}), opts, nil)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v", err)
	}
	if got.Measured || got.Len() != 2 {
		t.Errorf("palette = %+v, want two synthetic entries", got)
	}
}

func TestExtractPaletteEmptyAfterFiltering(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeVibrant

	greys := swatches(RGB{R: 128, G: 128, B: 128}, RGB{R: 60, G: 60, B: 60}, RGB{R: 200, G: 200, B: 200})
	got, err := NewEngine(nil).ExtractPalette(greys, opts, nil)
	if err != nil {
		t.Fatalf("ExtractPalette() error = %v, want nil for an empty result", err)
	}
	if !got.IsEmpty() {
		t.Errorf("palette = %v, want empty", got.ToHex())
	}
}

func TestExtractPaletteInvalidInput(t *testing.T) {
	engine := NewEngine(nil)

	if _, err := engine.ExtractPalette(nil, DefaultOptions(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no candidates: error = %v, want ErrInvalidInput", err)
	}

	opts := DefaultOptions()
	opts.ColourCount = 20
	if _, err := engine.ExtractPalette(swatches(RGB{R: 255}), opts, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad count: error = %v, want ErrInvalidInput", err)
	}
}

func TestEngineGenerateHarmonies(t *testing.T) {
	p := Palette{Entries: []PaletteEntry{NewPaletteEntry(RGB{R: 255}, 100)}}
	got := NewEngine(nil).GenerateHarmonies(p)
	if len(got.Sets) != len(HarmonyKinds()) {
		t.Errorf("generated %d sets, want %d", len(got.Sets), len(HarmonyKinds()))
	}
}
