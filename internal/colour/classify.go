package colour

import (
	"math"
	"runtime"
	"sort"
	"sync"
)

const (
	// MaxSampledPixels bounds how many pixels the classifier examines.
	MaxSampledPixels = 50000

	// MatchDistance is the exclusive upper bound on the distance between a
	// pixel and its nearest candidate for the pixel to be counted.
	MatchDistance = 60

	// OpaqueAlpha is the lowest alpha treated as opaque.
	OpaqueAlpha = 128

	maxWorkers = 8
)

// PixelSample is one decoded pixel.
type PixelSample struct {
	Colour RGB
	A      uint8
}

// PixelBuffer is a flat, row-major pixel buffer with its natural size.
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []PixelSample
}

// ClassifiedColour is a candidate with its pixel population.
type ClassifiedColour struct {
	Swatch
	Count int
	// Percentage is Count relative to every sampled pixel, matched or not.
	Percentage float64
}

// Classification is the classifier output, sorted by descending Count.
type Classification struct {
	Colours []ClassifiedColour
	// Sampled is the number of pixel positions examined.
	Sampled int
}

// Total returns the summed population of all classified colours.
func (c Classification) Total() int {
	total := 0
	for _, cc := range c.Colours {
		total += cc.Count
	}
	return total
}

// ClassifyOptions configures Classify.
type ClassifyOptions struct {
	// ExcludeSkin drops skin-toned pixels before matching.
	ExcludeSkin bool
	// Workers is the number of goroutines; 0 picks NumCPU capped at 8.
	Workers int
}

// SampleStride returns the pixel skip interval for a buffer of total pixels.
func SampleStride(total int) int {
	return max(1, total/MaxSampledPixels)
}

// Classify assigns every sampled opaque pixel to its nearest candidate and
// returns the per-candidate populations. Pixels further than MatchDistance
// from every candidate are not counted.
func Classify(buf PixelBuffer, candidates []Swatch, opts ClassifyOptions) Classification {
	total := len(buf.Pixels)
	if total == 0 || len(candidates) == 0 {
		return Classification{}
	}

	stride := SampleStride(total)
	sampled := (total + stride - 1) / stride

	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxWorkers)
	}
	workers = max(1, min(workers, sampled))

	local := make([][]int, workers)
	var wg sync.WaitGroup
	for worker := range workers {
		start, end := splitRange(sampled, workers, worker)
		wg.Add(1)
		go func(workerIndex, start, end int) {
			defer wg.Done()
			counts := make([]int, len(candidates))
			for i := start; i < end; i++ {
				px := buf.Pixels[i*stride]
				if px.A < OpaqueAlpha {
					continue
				}
				if opts.ExcludeSkin && IsSkinTone(px.Colour) {
					continue
				}
				if idx := nearestCandidate(px.Colour, candidates); idx >= 0 {
					counts[idx]++
				}
			}
			local[workerIndex] = counts
		}(worker, start, end)
	}
	wg.Wait()

	counts := make([]int, len(candidates))
	for _, l := range local {
		for i, n := range l {
			counts[i] += n
		}
	}

	colours := make([]ClassifiedColour, 0, len(candidates))
	for i, n := range counts {
		if n == 0 {
			continue
		}
		colours = append(colours, ClassifiedColour{
			Swatch:     candidates[i],
			Count:      n,
			Percentage: float64(n) / float64(sampled) * 100,
		})
	}
	sort.SliceStable(colours, func(i, j int) bool {
		return colours[i].Count > colours[j].Count
	})

	return Classification{Colours: colours, Sampled: sampled}
}

// nearestCandidate returns the index of the closest candidate within
// MatchDistance, or -1.
func nearestCandidate(c RGB, candidates []Swatch) int {
	nearest := -1
	minDist := math.MaxFloat64
	for i, cand := range candidates {
		d := Distance(c, cand.Colour)
		if d < minDist && d < MatchDistance {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// splitRange returns the [start, end) slice of length handled by workerIndex.
func splitRange(length, workers, workerIndex int) (int, int) {
	chunkSize := length / workers
	remainder := length % workers
	start := workerIndex*chunkSize + min(workerIndex, remainder)
	end := start + chunkSize
	if workerIndex < remainder {
		end++
	}
	return start, end
}
