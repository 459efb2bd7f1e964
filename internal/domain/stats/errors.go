package stats

import "errors"

// Sentinel kinds for degenerate statistical input.
var (
	ErrEmptyPopulation    = errors.New("empty population")
	ErrZeroDeviation      = errors.New("zero standard deviation")
	ErrLengthMismatch     = errors.New("series length mismatch")
	ErrInsufficientData   = errors.New("at least two observations required")
	ErrInsufficientSample = errors.New("sample size must exceed 3")
)
