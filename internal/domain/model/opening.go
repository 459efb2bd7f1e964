// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/okian/openings/internal/domain/eco"
)

// Color is the side whose outcome a record describes.
type Color int

// Colors. ColorUnknown is never produced by ingestion.
const (
	ColorUnknown Color = iota
	White
	Black
)

// ParseColor maps a dataset label (case-insensitive) to a Color.
func ParseColor(s string) Color {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White
	case "black":
		return Black
	default:
		return ColorUnknown
	}
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// Opening is one observed (opening, color) outcome. Records are read-only
// once built.
type Opening struct {
	Name       string   // opening label, not unique
	Color      Color    // observed side
	ECO        eco.Code // classification of the line
	NumGames   int      // popularity
	AvgRating  int      // average player rating
	WinPercent float64  // observed side's win rate in [0,100]
	Moves      []string // ordered move tokens
}

// DevelopmentLevel is the number of recorded moves.
func (o Opening) DevelopmentLevel() int { return len(o.Moves) }

// Codes returns the ECO code of each record, in order.
func Codes(records []Opening) []eco.Code {
	out := make([]eco.Code, len(records))
	for i, r := range records {
		out[i] = r.ECO
	}
	return out
}
