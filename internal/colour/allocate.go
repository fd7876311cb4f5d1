package colour

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// minSyntheticTenths is the 5% floor for synthetic shares, in tenths of a percent.
const minSyntheticTenths = 50

// roundTenth rounds to one decimal place.
func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// AllocateMeasured turns pixel populations into percentages of their summed
// count with one decimal place. A budget of 1000 tenths is shared by largest
// remainder, so the result sums to exactly 100 and every entry is within 0.1
// of its exact share. Order is preserved.
func AllocateMeasured(colours []ClassifiedColour) []PaletteEntry {
	total := 0
	for _, c := range colours {
		total += c.Count
	}
	if total == 0 {
		return nil
	}

	tenths := make([]int, len(colours))
	remainders := make([]int, len(colours))
	left := 1000
	for i, c := range colours {
		scaled := c.Count * 1000
		tenths[i] = scaled / total
		remainders[i] = scaled % total
		left -= tenths[i]
	}

	order := make([]int, len(colours))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order[:left] {
		tenths[i]++
	}

	entries := make([]PaletteEntry, len(colours))
	for i, c := range colours {
		entries[i] = NewPaletteEntry(c.Colour, float64(tenths[i])/10)
	}
	return entries
}

// AllocateSynthetic assigns pseudo-random percentages summing to exactly 100
// when no pixel populations are available. Every entry but the last receives
// at least 5% and at most its even share of the remaining budget; the last
// absorbs the remainder. The result is sorted by descending percentage.
//
// rng supplies the randomness; nil uses a time-seeded source.
func AllocateSynthetic(swatches []Swatch, rng *rand.Rand) []PaletteEntry {
	if len(swatches) == 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- not security sensitive
	}

	remaining := 1000
	floor := min(minSyntheticTenths, remaining/len(swatches))
	entries := make([]PaletteEntry, len(swatches))
	for i, s := range swatches {
		left := len(swatches) - i
		share := remaining
		if left > 1 {
			even := float64(remaining) / float64(left)
			share = max(floor, int(math.Round(rng.Float64()*even)))
		}
		remaining -= share
		entries[i] = NewPaletteEntry(s.Colour, float64(share)/10)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})
	return entries
}
