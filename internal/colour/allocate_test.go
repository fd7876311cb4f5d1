package colour

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func sumPercentages(entries []PaletteEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += e.Percentage
	}
	return total
}

func TestAllocateMeasured(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   []float64
	}{
		{name: "even split", counts: []int{50, 50}, want: []float64{50, 50}},
		{name: "thirds", counts: []int{1, 1, 1}, want: []float64{33.4, 33.3, 33.3}},
		{name: "skewed", counts: []int{80, 15, 5}, want: []float64{80, 15, 5}},
		{name: "rounding", counts: []int{2, 1}, want: []float64{66.7, 33.3}},
		{
			name:   "fifteen entries",
			counts: []int{816, 656, 656, 656, 656, 656, 656, 656, 656, 656, 656, 656, 656, 656, 656},
			want:   []float64{8.2, 6.6, 6.6, 6.6, 6.6, 6.6, 6.6, 6.6, 6.6, 6.5, 6.5, 6.5, 6.5, 6.5, 6.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colours := make([]ClassifiedColour, len(tt.counts))
			for i, n := range tt.counts {
				colours[i] = classified(RGB{R: uint8(i * 50)}, n)
			}
			got := AllocateMeasured(colours)
			if len(got) != len(tt.want) {
				t.Fatalf("AllocateMeasured() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if math.Abs(got[i].Percentage-tt.want[i]) > 1e-9 {
					t.Errorf("entry %d percentage = %v, want %v", i, got[i].Percentage, tt.want[i])
				}
			}
			if sum := sumPercentages(got); sum < 99.5 || sum > 100.5 {
				t.Errorf("percentages sum to %v, want within [99.5, 100.5]", sum)
			}
		})
	}
}

func TestAllocateMeasuredSumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 15; n++ {
		for range 50 {
			colours := make([]ClassifiedColour, n)
			counts := make([]int, n)
			total := 0
			for i := range colours {
				counts[i] = 1 + rng.Intn(5000)
				total += counts[i]
				colours[i] = classified(RGB{G: uint8(i)}, counts[i])
			}

			got := AllocateMeasured(colours)
			if sum := sumPercentages(got); sum < 99.5 || sum > 100.5 {
				t.Fatalf("n=%d: percentages sum to %v, want within [99.5, 100.5]", n, sum)
			}
			for i, e := range got {
				exact := float64(counts[i]) / float64(total) * 100
				if math.Abs(e.Percentage-exact) > 0.1+1e-9 {
					t.Fatalf("n=%d: entry %d = %v, exact share %v", n, i, e.Percentage, exact)
				}
				if e.RGB != colours[i].Colour {
					t.Fatalf("n=%d: entry %d colour %v, want order preserved", n, i, e.RGB)
				}
			}
		}
	}
}

func TestAllocateMeasuredZeroTotal(t *testing.T) {
	if got := AllocateMeasured([]ClassifiedColour{classified(RGB{}, 0)}); got != nil {
		t.Errorf("AllocateMeasured(zero counts) = %+v, want nil", got)
	}
	if got := AllocateMeasured(nil); got != nil {
		t.Errorf("AllocateMeasured(nil) = %+v, want nil", got)
	}
}

func TestAllocateSynthetic(t *testing.T) {
	input := swatches(RGB{R: 255}, RGB{G: 255}, RGB{B: 255})
	got := AllocateSynthetic(input, rand.New(rand.NewSource(42)))

	if len(got) != 3 {
		t.Fatalf("AllocateSynthetic() returned %d entries, want 3", len(got))
	}
	if sum := sumPercentages(got); math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages sum to %v, want exactly 100", sum)
	}

	hexes := map[string]bool{}
	for i, e := range got {
		hexes[e.Hex] = true
		if e.Percentage < 5 {
			t.Errorf("entry %d percentage = %v, want >= 5", i, e.Percentage)
		}
		if i > 0 && got[i-1].Percentage < e.Percentage {
			t.Errorf("entries not sorted descending at %d: %v < %v", i, got[i-1].Percentage, e.Percentage)
		}
	}
	for _, want := range []string{"#FF0000", "#00FF00", "#0000FF"} {
		if !hexes[want] {
			t.Errorf("result is missing %s", want)
		}
	}
}

func TestAllocateSyntheticProperties(t *testing.T) {
	for seed := range int64(100) {
		n := MinColourCount + int(seed)%(MaxColourCount-MinColourCount+1)
		input := swatches(channelGrid(51)[:n]...)
		got := AllocateSynthetic(input, rand.New(rand.NewSource(seed)))

		if sum := sumPercentages(got); math.Abs(sum-100) > 1e-9 {
			t.Fatalf("seed %d: percentages sum to %v", seed, sum)
		}
		for _, e := range got {
			if e.Percentage < 5 {
				t.Fatalf("seed %d: percentage %v below the 5%% floor", seed, e.Percentage)
			}
			if tenths := e.Percentage * 10; math.Abs(tenths-math.Round(tenths)) > 1e-9 {
				t.Fatalf("seed %d: percentage %v has more than one decimal", seed, e.Percentage)
			}
		}
	}
}

func TestAllocateSyntheticDeterministic(t *testing.T) {
	input := swatches(channelGrid(51)[:8]...)
	a := AllocateSynthetic(input, rand.New(rand.NewSource(99)))
	b := AllocateSynthetic(input, rand.New(rand.NewSource(99)))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different allocations:\n%+v\n%+v", a, b)
	}
}

func TestAllocateSyntheticSingle(t *testing.T) {
	got := AllocateSynthetic(swatches(RGB{R: 255}), nil)
	if len(got) != 1 || got[0].Percentage != 100 {
		t.Errorf("AllocateSynthetic(single) = %+v, want one entry at 100%%", got)
	}
	if AllocateSynthetic(nil, nil) != nil {
		t.Error("AllocateSynthetic(nil) should return nil")
	}
}
