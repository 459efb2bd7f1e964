// Package types contains the findings handed from the analysis service to
// report renderers.
package types

import (
	"encoding/json"
	"math"
	"time"
)

// Number is a float that encodes NaN and infinities as JSON null.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Report is the outcome of one analysis run. Sections for questions that
// were not run are nil.
type Report struct {
	RunID       string              `json:"run_id" yaml:"run_id"`
	Dataset     string              `json:"dataset" yaml:"dataset"`
	Records     int                 `json:"records" yaml:"records"`
	GeneratedAt time.Time           `json:"generated_at" yaml:"generated_at"`
	WinRates    *WinRateFinding     `json:"win_rates,omitempty" yaml:"win_rates,omitempty"`
	Development *CorrelationFinding `json:"development,omitempty" yaml:"development,omitempty"`
	Popularity  *CorrelationFinding `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	TopPlayers  *DeviationFinding   `json:"top_players,omitempty" yaml:"top_players,omitempty"`
}

// SideOpenings lists the sufficient-win-rate openings of one color.
type SideOpenings struct {
	Names    []string       `json:"names" yaml:"names"`
	Count    int            `json:"count" yaml:"count"`
	Families map[string]int `json:"families" yaml:"families"`
}

// WinRateFinding answers which openings have a sufficient win rate.
type WinRateFinding struct {
	White SideOpenings `json:"white" yaml:"white"`
	Black SideOpenings `json:"black" yaml:"black"`
}

// FisherSummary reports the comparison of two correlation coefficients.
type FisherSummary struct {
	Mode       string `json:"mode" yaml:"mode"`
	SampleSize int    `json:"sample_size" yaml:"sample_size"`
	Statistic  Number `json:"statistic" yaml:"statistic"`
	Verdict    string `json:"verdict" yaml:"verdict"`
}

// CorrelationFinding answers whether a metric correlates with win rate and
// whether the correlation differs between colors.
type CorrelationFinding struct {
	Metric string        `json:"metric" yaml:"metric"`
	White  Number        `json:"white" yaml:"white"`
	Black  Number        `json:"black" yaml:"black"`
	Fisher FisherSummary `json:"fisher" yaml:"fisher"`
}

// CodeDeviation is one ECO code top players use significantly more often.
type CodeDeviation struct {
	Code     string  `json:"code" yaml:"code"`
	ZOverall float64 `json:"z_overall" yaml:"z_overall"`
	ZTop     float64 `json:"z_top" yaml:"z_top"`
	PValue   float64 `json:"p_value" yaml:"p_value"`
}

// DeviationFinding answers which ECO codes top-rated players favour.
type DeviationFinding struct {
	Mode  string          `json:"mode" yaml:"mode"`
	White []CodeDeviation `json:"white" yaml:"white"`
	Black []CodeDeviation `json:"black" yaml:"black"`
}

// Codes returns the ECO codes of ds, in order.
func Codes(ds []CodeDeviation) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}
