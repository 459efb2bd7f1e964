package stats

import (
	"fmt"
	"math"
)

// PearsonCorrelation returns
//
//	r = Σ(xi-x̄)(yi-ȳ) / sqrt(Σ(xi-x̄)² · Σ(yi-ȳ)²)
//
// The result is NaN when either series is constant.
func PearsonCorrelation(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	n := len(x)
	if n < 2 {
		return 0, ErrInsufficientData
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += x[i]
		sumY += y[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	denominator := math.Sqrt(sxx * syy)
	if denominator == 0 {
		return math.NaN(), nil
	}
	r := sxy / denominator

	// Rounding can push |r| a hair past 1 for perfectly linear series.
	return math.Max(-1, math.Min(1, r)), nil
}
