package quantize

import (
	"image"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/jmylchreest/swatch/internal/colour"
)

// maxKMeansSamples bounds the pixels fed to the clustering loop.
const maxKMeansSamples = 2000

// KMeans implements quantization using k-means++ clustering.
type KMeans struct {
	maxIterations int
	convergence   float64
	seed          *int64
}

// NewKMeans creates a k-means quantizer with default settings.
func NewKMeans(opts Options) *KMeans {
	return &KMeans{
		maxIterations: 20,
		convergence:   2.0,
		seed:          opts.Seed,
	}
}

// Quantize clusters the sampled pixels into count centroids. Centroids are
// returned by descending cluster size.
func (e *KMeans) Quantize(img image.Image, count int) (Result, error) {
	if err := validateRequest(img, count); err != nil {
		return Result{}, err
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return Result{}, ErrNoPixels
	}

	// Fewer distinct colours than requested: return them by frequency.
	frequency := make(map[colour.RGB]int)
	var unique []colour.RGB
	for _, p := range pixels {
		if frequency[p] == 0 {
			unique = append(unique, p)
		}
		frequency[p]++
	}
	if count >= len(unique) {
		sort.SliceStable(unique, func(i, j int) bool {
			return frequency[unique[i]] > frequency[unique[j]]
		})
		return Result{Dominant: unique[0], Swatches: unique}, nil
	}

	rng := e.newRand()
	centroids, weights := e.kmeans(pixels, count, rng)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})

	swatches := make([]colour.RGB, 0, len(centroids))
	for _, i := range order {
		if weights[i] == 0 {
			continue
		}
		swatches = append(swatches, centroids[i].rgb())
	}
	return Result{Dominant: swatches[0], Swatches: swatches}, nil
}

func (e *KMeans) newRand() *rand.Rand {
	seed := time.Now().UnixNano()
	if e.seed != nil {
		seed = *e.seed
	}
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- clustering, not security
}

// point3D represents a point in 3D RGB color space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

func (p point3D) rgb() colour.RGB {
	return colour.RGB{
		R: uint8(math.Round(math.Max(0, math.Min(255, p.R)))),
		G: uint8(math.Round(math.Max(0, math.Min(255, p.G)))),
		B: uint8(math.Round(math.Max(0, math.Min(255, p.B)))),
	}
}

// samplePixels grid-samples opaque pixels from the image.
func samplePixels(img image.Image) []colour.RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > maxKMeansSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(maxKMeansSamples))), 1)
	}

	pixels := make([]colour.RGB, 0, min(totalPixels, maxKMeansSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			c, a := toRGB(img.At(x, y))
			if a < colour.OpaqueAlpha {
				continue
			}
			pixels = append(pixels, c)
			if len(pixels) >= maxKMeansSamples {
				return pixels
			}
		}
	}
	return pixels
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeans) kmeans(pixels []colour.RGB, k int, rng *rand.Rand) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		points[i] = point3D{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
	}

	centroids := initializeCentroidsKMeansPlusPlus(points, k, rng)
	assignments := make([]int, len(points))

	for range e.maxIterations {
		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of assignments changed.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, k, rng)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Reassign against the final centroids so weights match them.
	for i, point := range points {
		assignments[i] = findNearestCentroid(point, centroids)
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus picks initial centroids with probability
// proportional to squared distance from the centroids chosen so far.
func initializeCentroidsKMeansPlusPlus(points []point3D, k int, rng *rand.Rand) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				minDist = math.Min(minDist, point.distance(centroid))
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

func recalculateCentroids(points []point3D, assignments []int, k int, rng *rand.Rand) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)
	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			n := float64(counts[i])
			centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
		} else {
			// Empty cluster, reseed from a random point.
			centroids[i] = points[rng.Intn(len(points))]
		}
	}
	return centroids
}
