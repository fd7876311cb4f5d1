package quantize

import (
	"fmt"
	"image"
	"sort"

	"github.com/EdlinOrg/prominentcolor"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Prominent wraps prominentcolor's k-means. It resizes the image and masks
// plain white, black and green backgrounds before clustering.
type Prominent struct {
	arguments int
	resize    uint
}

// NewProminent creates a prominentcolor-backed quantizer.
func NewProminent() *Prominent {
	return &Prominent{
		arguments: prominentcolor.ArgumentNoCropping,
		resize:    prominentcolor.DefaultSize,
	}
}

// Quantize returns up to count swatches ordered by cluster size.
func (p *Prominent) Quantize(img image.Image, count int) (Result, error) {
	if err := validateRequest(img, count); err != nil {
		return Result{}, err
	}

	items, err := prominentcolor.KmeansWithAll(count, img, p.arguments, p.resize, prominentcolor.GetDefaultMasks())
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract prominent colours: %w", err)
	}
	if len(items) == 0 {
		return Result{}, ErrNoPixels
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Cnt > items[j].Cnt
	})

	swatches := make([]colour.RGB, len(items))
	for i, item := range items {
		swatches[i] = colour.RGB{
			R: uint8(min(item.Color.R, 255)),
			G: uint8(min(item.Color.G, 255)),
			B: uint8(min(item.Color.B, 255)),
		}
	}
	return Result{Dominant: swatches[0], Swatches: swatches}, nil
}
