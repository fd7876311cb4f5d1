package colour

import (
	"errors"
	"testing"
)

func swatches(colours ...RGB) []Swatch {
	out := make([]Swatch, len(colours))
	for i, c := range colours {
		out[i] = Swatch{Colour: c, Source: SourceQuantizer}
	}
	return out
}

func TestParseMode(t *testing.T) {
	for _, m := range ValidModes() {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}

	if _, err := ParseMode("neon"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ParseMode(neon) error = %v, want ErrInvalidInput", err)
	}
}

func TestDedupThreshold(t *testing.T) {
	tests := []struct {
		mode Mode
		want float64
	}{
		{ModeBalanced, 25},
		{ModeVibrant, 30},
		{ModeMuted, 20},
	}
	for _, tt := range tests {
		if got := tt.mode.DedupThreshold(); got != tt.want {
			t.Errorf("%s.DedupThreshold() = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestNewCandidates(t *testing.T) {
	got := NewCandidates(RGB{R: 1}, []RGB{{G: 2}, {B: 3}})

	if len(got) != 3 {
		t.Fatalf("NewCandidates() returned %d swatches, want 3", len(got))
	}
	if got[0].Source != SourceDominant || got[0].Colour != (RGB{R: 1}) {
		t.Errorf("first candidate = %+v, want dominant", got[0])
	}
	if got[2].Source != SourceQuantizer || got[2].Colour != (RGB{B: 3}) {
		t.Errorf("last candidate = %+v, want quantizer blue", got[2])
	}
}

func TestDeduplicate(t *testing.T) {
	tests := []struct {
		name      string
		input     []Swatch
		threshold float64
		want      []RGB
	}{
		{
			name:      "near duplicate dropped",
			input:     swatches(RGB{R: 255}, RGB{R: 250, G: 5, B: 5}, RGB{G: 255}),
			threshold: 25,
			want:      []RGB{{R: 255}, {G: 255}},
		},
		{
			name:      "exact threshold kept",
			input:     swatches(RGB{}, RGB{B: 25}),
			threshold: 25,
			want:      []RGB{{}, {B: 25}},
		},
		{
			name:      "first occurrence wins",
			input:     swatches(RGB{R: 100}, RGB{R: 110}, RGB{R: 120}),
			threshold: 15,
			want:      []RGB{{R: 100}, {R: 120}},
		},
		{
			name:      "empty",
			input:     nil,
			threshold: 25,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deduplicate(tt.input, tt.threshold)
			if len(got) != len(tt.want) {
				t.Fatalf("Deduplicate() returned %d swatches, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i].Colour != tt.want[i] {
					t.Errorf("Deduplicate()[%d] = %s, want %s", i, got[i].Colour.Hex(), tt.want[i].Hex())
				}
			}
		})
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	input := swatches(channelGrid(40)...)
	for _, mode := range ValidModes() {
		once := Deduplicate(input, mode.DedupThreshold())
		twice := Deduplicate(once, mode.DedupThreshold())
		if len(once) != len(twice) {
			t.Fatalf("%s: second pass changed length %d -> %d", mode, len(once), len(twice))
		}
		for i := range once {
			if once[i] != twice[i] {
				t.Errorf("%s: second pass changed entry %d", mode, i)
			}
		}
		for i := range once {
			for j := i + 1; j < len(once); j++ {
				if Distance(once[i].Colour, once[j].Colour) < mode.DedupThreshold() {
					t.Errorf("%s: %s and %s are closer than the threshold", mode, once[i].Colour.Hex(), once[j].Colour.Hex())
				}
			}
		}
	}
}

func TestModePredicates(t *testing.T) {
	tests := []struct {
		name    string
		c       RGB
		vibrant bool
		muted   bool
	}{
		{name: "pure red", c: RGB{R: 255}, vibrant: true, muted: false},
		{name: "grey", c: RGB{R: 128, G: 128, B: 128}, vibrant: false, muted: true},
		{name: "dark red", c: RGB{R: 60}, vibrant: false, muted: false},
		{name: "dusty rose", c: RGB{R: 200, G: 150, B: 150}, vibrant: false, muted: true},
		{name: "half saturated", c: RGB{R: 200, G: 100, B: 100}, vibrant: true, muted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsVibrant(tt.c); got != tt.vibrant {
				t.Errorf("IsVibrant(%s) = %v, want %v", tt.c.Hex(), got, tt.vibrant)
			}
			if got := IsMuted(tt.c); got != tt.muted {
				t.Errorf("IsMuted(%s) = %v, want %v", tt.c.Hex(), got, tt.muted)
			}
		})
	}
}

func TestBuildCandidates(t *testing.T) {
	input := swatches(
		RGB{R: 255},
		RGB{R: 128, G: 128, B: 128},
		RGB{G: 255},
		RGB{B: 255},
		RGB{R: 255, G: 255},
	)

	tests := []struct {
		name  string
		mode  Mode
		count int
		want  int
	}{
		{name: "balanced keeps all", mode: ModeBalanced, count: 8, want: 5},
		{name: "balanced truncates", mode: ModeBalanced, count: 3, want: 3},
		{name: "vibrant drops grey", mode: ModeVibrant, count: 8, want: 4},
		{name: "muted keeps grey only", mode: ModeMuted, count: 8, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildCandidates(input, tt.mode, tt.count)
			if len(got) != tt.want {
				t.Errorf("BuildCandidates(%s, %d) returned %d swatches, want %d", tt.mode, tt.count, len(got), tt.want)
			}
		})
	}
}
