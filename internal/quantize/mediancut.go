package quantize

import (
	"image"
	"image/color"
	"runtime"
	"slices"
	"sync"

	gq "github.com/ericpauley/go-quantize/quantize"

	"github.com/jmylchreest/swatch/internal/colour"
)

const defaultWorkerCap = 8

// MedianCut quantizes with go-quantize's median cut, sampling every
// quality-th pixel on both axes.
type MedianCut struct {
	quality int
	workers int
}

// NewMedianCut creates a median-cut quantizer.
func NewMedianCut(opts Options) *MedianCut {
	return &MedianCut{
		quality: max(1, opts.Quality),
		workers: opts.Workers,
	}
}

// Quantize extracts up to count swatches ordered by descending population.
func (m *MedianCut) Quantize(img image.Image, count int) (Result, error) {
	if err := validateRequest(img, count); err != nil {
		return Result{}, err
	}

	q := gq.MedianCutQuantizer{
		Aggregation: gq.Mean,
		Weighting:   m.weight,
	}
	palette := q.Quantize(make(color.Palette, 0, count), img)

	swatches := make([]colour.RGB, 0, len(palette))
	for _, c := range palette {
		rgb, _ := toRGB(c)
		if !slices.Contains(swatches, rgb) {
			swatches = append(swatches, rgb)
		}
	}
	if len(swatches) == 0 {
		return Result{}, ErrNoPixels
	}

	counts := m.populations(img, swatches)
	order := make([]int, len(swatches))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return counts[b] - counts[a]
	})

	sorted := make([]colour.RGB, len(order))
	for i, idx := range order {
		sorted[i] = swatches[idx]
	}
	return Result{Dominant: sorted[0], Swatches: sorted}, nil
}

// sampled reports whether (x, y) lies on the quality grid.
func (m *MedianCut) sampled(bounds image.Rectangle, x, y int) bool {
	return (x-bounds.Min.X)%m.quality == 0 && (y-bounds.Min.Y)%m.quality == 0
}

// weight gives sampled opaque pixels a priority of one and skips the rest.
func (m *MedianCut) weight(img image.Image, x, y int) uint32 {
	if !m.sampled(img.Bounds(), x, y) {
		return 0
	}
	if _, a := toRGB(img.At(x, y)); a < colour.OpaqueAlpha {
		return 0
	}
	return 1
}

// populations counts the sampled opaque pixels nearest to each swatch. Row
// bands are counted on separate goroutines and merged.
func (m *MedianCut) populations(img image.Image, swatches []colour.RGB) []int {
	bounds := img.Bounds()
	height := bounds.Dy()

	workerCount := m.workers
	if workerCount <= 0 {
		workerCount = min(runtime.NumCPU(), defaultWorkerCap)
	}
	workers := max(1, min(workerCount, height))
	local := make([][]int, workers)

	var wg sync.WaitGroup
	for worker := range workers {
		start, end := splitRows(height, workers, worker)
		wg.Add(1)
		go func(workerIndex, start, end int) {
			defer wg.Done()
			counts := make([]int, len(swatches))
			for y := bounds.Min.Y + start; y < bounds.Min.Y+end; y++ {
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					if !m.sampled(bounds, x, y) {
						continue
					}
					c, a := toRGB(img.At(x, y))
					if a < colour.OpaqueAlpha {
						continue
					}
					counts[nearestSwatch(c, swatches)]++
				}
			}
			local[workerIndex] = counts
		}(worker, start, end)
	}
	wg.Wait()

	total := make([]int, len(swatches))
	for _, counts := range local {
		for i, n := range counts {
			total[i] += n
		}
	}
	return total
}

func nearestSwatch(c colour.RGB, swatches []colour.RGB) int {
	best, bestDist := 0, colour.Distance(c, swatches[0])
	for i := 1; i < len(swatches); i++ {
		if d := colour.Distance(c, swatches[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func splitRows(length, workers, workerIndex int) (int, int) {
	chunk := length / workers
	remainder := length % workers
	start := workerIndex*chunk + min(workerIndex, remainder)
	end := start + chunk
	if workerIndex < remainder {
		end++
	}
	return start, end
}
