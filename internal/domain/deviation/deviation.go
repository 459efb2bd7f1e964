// Package deviation finds ECO codes that a top-rated subpopulation plays
// significantly more often than the population as a whole.
package deviation

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/openings/internal/domain/eco"
	"github.com/okian/openings/internal/domain/stats"
)

// DefaultAlpha is the one-tailed significance level.
const DefaultAlpha = 0.05

// Mode selects which mean standardizes the black top-quartile distribution.
type Mode int

const (
	// TopZInherited standardizes the black top distribution with the white top
	// mean and the black top SD. It keeps historical reports reproducible and
	// is the default.
	TopZInherited Mode = iota
	// TopZConsistent uses the black top distribution's own mean.
	TopZConsistent
)

func (m Mode) String() string {
	if m == TopZConsistent {
		return "consistent"
	}
	return "inherited"
}

// Population pairs the overall distribution of one color with the
// distribution of its top-rated subset.
type Population struct {
	Overall eco.Distribution
	Top     eco.Distribution
}

// Options configures Compare.
type Options struct {
	Alpha      float64
	Convention stats.Convention
	Mode       Mode
}

// DefaultOptions returns alpha 0.05, the inherited SD convention and the
// inherited top-z mode.
func DefaultOptions() Options {
	return Options{Alpha: DefaultAlpha, Convention: stats.ConventionInherited, Mode: TopZInherited}
}

// Finding is one ECO code retained by the test.
type Finding struct {
	Code     eco.Code
	ZOverall float64
	ZTop     float64
	PValue   float64
}

// Result lists the retained codes per color in ascending index order.
type Result struct {
	White []Finding
	Black []Finding
}

// moments is the mean and SD used to standardize one distribution.
type moments struct {
	mean, sd float64
}

func momentsOf(d eco.Distribution, convention stats.Convention) (moments, error) {
	mean, err := stats.Mean(d)
	if err != nil {
		return moments{}, err
	}
	sd, err := stats.StandardDeviation(d, convention)
	if err != nil {
		return moments{}, err
	}
	return moments{mean: mean, sd: sd}, nil
}

// standardize z-scores d with the moments returned by m. m is only evaluated
// when d has at least one observation.
func standardize(d eco.Distribution, m func() (moments, error)) ([]float64, error) {
	if d.Observed() == 0 {
		return make([]float64, len(d)), nil
	}
	mm, err := m()
	if err != nil {
		return nil, err
	}
	return stats.Standardize(d, mm.mean, mm.sd)
}

// Compare runs the test for both colors.
func Compare(white, black Population, opts Options) (Result, error) {
	if opts.Alpha <= 0 {
		opts.Alpha = DefaultAlpha
	}
	own := func(d eco.Distribution) func() (moments, error) {
		return func() (moments, error) { return momentsOf(d, opts.Convention) }
	}

	wOverall, err := standardize(white.Overall, own(white.Overall))
	if err != nil {
		return Result{}, fmt.Errorf("white overall: %w", err)
	}
	wTop, err := standardize(white.Top, own(white.Top))
	if err != nil {
		return Result{}, fmt.Errorf("white top: %w", err)
	}
	bOverall, err := standardize(black.Overall, own(black.Overall))
	if err != nil {
		return Result{}, fmt.Errorf("black overall: %w", err)
	}

	blackTopMoments := own(black.Top)
	if opts.Mode == TopZInherited {
		blackTopMoments = func() (moments, error) {
			// An empty white top leaves no mean to borrow; the black top
			// z-scores become NaN and Select drops them.
			mean, err := stats.Mean(white.Top)
			if errors.Is(err, stats.ErrEmptyPopulation) {
				mean = math.NaN()
			} else if err != nil {
				return moments{}, err
			}
			sd, err := stats.StandardDeviation(black.Top, opts.Convention)
			if err != nil {
				return moments{}, err
			}
			return moments{mean: mean, sd: sd}, nil
		}
	}
	bTop, err := standardize(black.Top, blackTopMoments)
	if err != nil {
		return Result{}, fmt.Errorf("black top: %w", err)
	}

	whiteFindings, err := Select(wOverall, wTop, opts.Alpha)
	if err != nil {
		return Result{}, err
	}
	blackFindings, err := Select(bOverall, bTop, opts.Alpha)
	if err != nil {
		return Result{}, err
	}
	return Result{White: whiteFindings, Black: blackFindings}, nil
}

// Select keeps every index where zTop exceeds zOverall and the one-tailed
// p-value 1 - Φ(zTop - zOverall) is below alpha. NaN scores never qualify.
func Select(zOverall, zTop []float64, alpha float64) ([]Finding, error) {
	if len(zOverall) != len(zTop) {
		return nil, fmt.Errorf("%w: %d vs %d", stats.ErrLengthMismatch, len(zOverall), len(zTop))
	}
	out := make([]Finding, 0)
	for i := range zOverall {
		if math.IsNaN(zTop[i]) || math.IsNaN(zOverall[i]) || zTop[i] <= zOverall[i] {
			continue
		}
		p := stats.UpperTailP(zTop[i] - zOverall[i])
		if p >= alpha {
			continue
		}
		code, err := eco.FromIndex(eco.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, Finding{Code: code, ZOverall: zOverall[i], ZTop: zTop[i], PValue: p})
	}
	return out, nil
}
