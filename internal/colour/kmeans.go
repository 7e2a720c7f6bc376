package colour

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"math/rand"
	"slices"
)

// WeightedColour is a cluster centre together with the share of sampled pixels it covers.
type WeightedColour struct {
	RGB    RGB
	Weight float64
}

// KMeansExtractor finds dominant colours using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	rng           *rand.Rand
}

// NewKMeansExtractor creates a KMeansExtractor whose centroid initialisation is
// driven by seed, so the same image and seed always produce the same clusters.
func NewKMeansExtractor(seed int64) *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
		rng:           rand.New(rand.NewSource(seed)), // #nosec G404 -- deterministic clustering, not security sensitive
	}
}

// Dominant extracts up to count colours, ordered by descending weight.
func (e *KMeansExtractor) Dominant(img image.Image, count int) ([]WeightedColour, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", count)
	}
	if count > 256 {
		return nil, fmt.Errorf("colour count too large: %d (maximum: 256)", count)
	}

	points := e.samplePixels(img)
	if len(points) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	centroids, weights := e.kmeans(points, min(count, len(points)))

	result := make([]WeightedColour, 0, len(centroids))
	for i, c := range centroids {
		if weights[i] == 0 {
			continue
		}
		result = append(result, WeightedColour{
			RGB: RGB{
				R: uint8(math.Round(c.R)),
				G: uint8(math.Round(c.G)),
				B: uint8(math.Round(c.B)),
			},
			Weight: weights[i],
		})
	}

	slices.SortStableFunc(result, func(a, b WeightedColour) int {
		return cmp.Compare(b.Weight, a.Weight)
	})
	return result, nil
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels grid-samples the image down to at most maxSamples points.
func (e *KMeansExtractor) samplePixels(img image.Image) []point3D {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > e.maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)
	}

	points := make([]point3D, 0, min(totalPixels, e.maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			rgb := FromColor(img.At(x, y))
			points = append(points, point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)})
			if len(points) >= e.maxSamples {
				return points
			}
		}
	}
	return points
}

// kmeans returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(points []point3D, k int) ([]point3D, []float64) {
	centroids := e.initialiseCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := nearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of assignments changed.
		if iter > 0 && float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		next := e.recalculateCentroids(points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(next[i])
		}
		centroids = next

		if totalMovement/float64(k) < e.convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	weights := make([]float64, k)
	for _, point := range points {
		weights[nearestCentroid(point, centroids)]++
	}
	for i := range weights {
		weights[i] /= float64(len(points))
	}

	return centroids, weights
}

// initialiseCentroids picks starting centroids with k-means++.
func (e *KMeansExtractor) initialiseCentroids(points []point3D, k int) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[e.rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, point := range points {
			d := point.distance(centroids[nearestCentroid(point, centroids)])
			distances[i] = d * d
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Every point already sits on a centroid.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := e.rng.Float64() * totalDistance
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

func nearestCentroid(point point3D, centroids []point3D) int {
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

// recalculateCentroids averages the points assigned to each cluster.
func (e *KMeansExtractor) recalculateCentroids(points []point3D, assignments []int, k int) []point3D {
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
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			// Empty cluster - reinitialise from a random point.
			centroids[i] = points[e.rng.Intn(len(points))]
		}
	}

	return centroids
}
