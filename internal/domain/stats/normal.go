package stats

import "math"

// Abramowitz and Stegun 7.1.26 coefficients.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// Erf approximates the error function with A&S 7.1.26. It is odd by
// construction; the maximum absolute error is about 1.5e-7.
func Erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1
	}
	x = math.Abs(x)
	t := 1 / (1 + erfP*x)
	poly := ((((erfA5*t+erfA4)*t+erfA3)*t+erfA2)*t + erfA1) * t
	return sign * (1 - poly*math.Exp(-x*x))
}

// NormalCDF returns Φ(z) for the standard normal distribution.
func NormalCDF(z float64) float64 {
	sign := 1.0
	if z < 0 {
		sign = -1
	}
	return 0.5 * (1 + sign*Erf(math.Abs(z)/math.Sqrt2))
}

// UpperTailP returns the one-tailed p-value 1 - Φ(z).
func UpperTailP(z float64) float64 {
	return 1 - NormalCDF(z)
}
