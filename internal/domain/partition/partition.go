// Package partition derives sub-populations from the record store: split by
// color, sufficient win rate and top rating quartile. Inputs are never
// modified.
package partition

import (
	"cmp"
	"math"
	"slices"

	"github.com/okian/openings/internal/domain/model"
)

// Default thresholds. The win-rate cutoffs encode the first-move advantage
// and are fixed; they are not read from configuration.
const (
	DefaultWhiteMinWinPercent = 52.0
	DefaultBlackMinWinPercent = 45.0
	DefaultTopFraction        = 0.25
)

// Thresholds groups the filtering cutoffs.
type Thresholds struct {
	WhiteMinWinPercent float64
	BlackMinWinPercent float64
	TopFraction        float64
}

// DefaultThresholds returns the fixed cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WhiteMinWinPercent: DefaultWhiteMinWinPercent,
		BlackMinWinPercent: DefaultBlackMinWinPercent,
		TopFraction:        DefaultTopFraction,
	}
}

// SplitByColor partitions records by color, preserving relative order.
// Records with an unknown color are omitted.
func SplitByColor(records []model.Opening) (white, black []model.Opening) {
	white = make([]model.Opening, 0, len(records))
	black = make([]model.Opening, 0, len(records))
	for _, r := range records {
		switch r.Color {
		case model.White:
			white = append(white, r)
		case model.Black:
			black = append(black, r)
		}
	}
	return white, black
}

// FilterBySufficientWinRate keeps white records at or above
// th.WhiteMinWinPercent and black records at or above th.BlackMinWinPercent.
func FilterBySufficientWinRate(records []model.Opening, th Thresholds) (white, black []model.Opening) {
	white = make([]model.Opening, 0)
	black = make([]model.Opening, 0)
	for _, r := range records {
		switch r.Color {
		case model.White:
			if r.WinPercent >= th.WhiteMinWinPercent {
				white = append(white, r)
			}
		case model.Black:
			if r.WinPercent >= th.BlackMinWinPercent {
				black = append(black, r)
			}
		}
	}
	return white, black
}

// FilterTopQuartileByRating returns the first floor(fraction*n) records of a
// copy stable-sorted by AvgRating descending. Small populations may yield an
// empty result.
func FilterTopQuartileByRating(records []model.Opening, fraction float64) []model.Opening {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b model.Opening) int {
		return cmp.Compare(b.AvgRating, a.AvgRating)
	})

	cutoff := int(math.Floor(fraction * float64(len(sorted))))
	cutoff = max(0, min(cutoff, len(sorted)))
	return sorted[:cutoff:cutoff]
}
