package stats

import (
	"fmt"
	"math"
)

// Convention selects which slots contribute to the sum of squared deviations
// in StandardDeviation. Both divide by the non-zero count.
type Convention int

const (
	// ConventionInherited sums over every slot, zero slots included.
	ConventionInherited Convention = iota
	// ConventionObserved sums over the non-zero slots only.
	ConventionObserved
)

// ParseConvention maps "inherited" or "observed" to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "inherited":
		return ConventionInherited, nil
	case "observed":
		return ConventionObserved, nil
	default:
		return 0, fmt.Errorf("unknown standard deviation convention: %q", s)
	}
}

func (c Convention) String() string {
	if c == ConventionObserved {
		return "observed"
	}
	return "inherited"
}

// nonZero counts the observed slots.
func nonZero(values []float64) int {
	n := 0
	for _, v := range values {
		if v != 0 {
			n++
		}
	}
	return n
}

// Mean returns the sum of all slots divided by the number of non-zero slots.
func Mean(values []float64) (float64, error) {
	n := nonZero(values)
	if n == 0 {
		return 0, ErrEmptyPopulation
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(n), nil
}

// StandardDeviation returns the population standard deviation with the
// non-zero count as denominator.
func StandardDeviation(values []float64, convention Convention) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	n := nonZero(values)

	sum := 0.0
	for _, v := range values {
		if v == 0 && convention == ConventionObserved {
			continue
		}
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n)), nil
}

// ZScore returns (value - mean) / sd.
func ZScore(value, mean, sd float64) (float64, error) {
	if sd == 0 {
		return 0, ErrZeroDeviation
	}
	return (value - mean) / sd, nil
}

// Standardize converts every non-zero slot to its z-score. Zero slots stay
// zero: they mark codes that do not occur, not observations.
func Standardize(values []float64, mean, sd float64) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == 0 {
			continue
		}
		z, err := ZScore(v, mean, sd)
		if err != nil {
			return nil, err
		}
		out[i] = z
	}
	return out, nil
}
