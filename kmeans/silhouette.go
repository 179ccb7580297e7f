package kmeans

import (
	"maps"
	"math"
	"slices"
)

// DistanceFunc measures the dissimilarity of two vectors.
type DistanceFunc func(a, b []float64) float64

// Euclidean is the straight-line distance of two vectors.
func Euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Cosine is the cosine distance of two unit vectors.
func Cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return 1 - dot
}

// Silhouette returns the mean silhouette coefficient of a labeling. Points
// alone in their cluster score 0. The score is undefined, and ok is false,
// unless there are at least two clusters and fewer clusters than points.
func Silhouette(points map[int][]float64, labels map[int]int, distance DistanceFunc) (score float64, ok bool) {
	indices := slices.Sorted(maps.Keys(labels))
	members := make(map[int][]int)
	for _, idx := range indices {
		members[labels[idx]] = append(members[labels[idx]], idx)
	}
	clusterIDs := slices.Sorted(maps.Keys(members))
	if len(members) < 2 || len(members) >= len(labels) {
		return 0, false
	}

	var total float64
	for _, idx := range indices {
		own := labels[idx]
		if len(members[own]) == 1 {
			continue
		}

		a := meanDistance(points, idx, members[own], distance)
		b := math.Inf(1)
		for _, label := range clusterIDs {
			if label != own {
				b = min(b, meanDistance(points, idx, members[label], distance))
			}
		}
		if m := max(a, b); m > 0 {
			total += (b - a) / m
		}
	}
	return total / float64(len(labels)), true
}

// meanDistance averages the distance from idx to every other member.
func meanDistance(points map[int][]float64, idx int, members []int, distance DistanceFunc) float64 {
	var sum float64
	n := 0
	for _, m := range members {
		if m == idx {
			continue
		}
		sum += distance(points[idx], points[m])
		n++
	}
	return sum / float64(n)
}
