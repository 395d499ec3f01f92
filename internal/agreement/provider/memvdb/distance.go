package memvdb

import (
	"fmt"
	"math"

	"github.com/goodnatureofminers/provider-daemon/internal/agreement/provider"
)

// distanceFunc returns a function where a smaller result means a closer match.
func distanceFunc(metric provider.MetricType) (func(a, b []float64) float64, error) {
	switch metric {
	case provider.MetricL2, "":
		return l2, nil
	case provider.MetricIP:
		return func(a, b []float64) float64 { return -dot(a, b) }, nil
	case provider.MetricCosine:
		return cosine, nil
	case provider.MetricJaccard:
		return jaccard, nil
	case provider.MetricHamming:
		return hamming, nil
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", provider.ErrInvalid, metric)
	}
}

func l2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func cosine(a, b []float64) float64 {
	na, nb := math.Sqrt(dot(a, a)), math.Sqrt(dot(b, b))
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot(a, b)/(na*nb)
}

// jaccard and hamming treat every positive component as a set bit.
func jaccard(a, b []float64) float64 {
	var inter, union float64
	for i := range a {
		x, y := a[i] > 0, b[i] > 0
		if x && y {
			inter++
		}
		if x || y {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return 1 - inter/union
}

func hamming(a, b []float64) float64 {
	var diff float64
	for i := range a {
		if (a[i] > 0) != (b[i] > 0) {
			diff++
		}
	}
	return diff
}
