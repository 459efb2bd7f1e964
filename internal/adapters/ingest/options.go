package ingest

import "github.com/okian/openings/pkg/logger"

// Columns holds the zero-based positions of the fields the loader reads.
type Columns struct {
	Name       int
	Color      int
	NumGames   int
	ECO        int
	AvgRating  int
	WinPercent int
	Moves      int
}

// DefaultColumns returns the layout of the public chess openings dataset,
// which carries a leading index column.
func DefaultColumns() Columns {
	return Columns{
		Name:       1,
		Color:      2,
		NumGames:   3,
		ECO:        4,
		AvgRating:  7,
		WinPercent: 8,
		Moves:      12,
	}
}

// width is the minimum number of fields a row needs.
func (c Columns) width() int {
	return max(c.Name, c.Color, c.NumGames, c.ECO, c.AvgRating, c.WinPercent, c.Moves) + 1
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithColumns overrides the column layout.
func WithColumns(c Columns) Option {
	return func(l *Loader) {
		l.columns = c
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// WithHeader controls whether the first row is skipped. Defaults to true.
func WithHeader(has bool) Option {
	return func(l *Loader) {
		l.hasHeader = has
	}
}
