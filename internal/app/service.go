// Package service answers the four opening questions against a record store
// and assembles the results into a report.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okian/openings/internal/adapters/repository"
	"github.com/okian/openings/internal/domain/deviation"
	"github.com/okian/openings/internal/domain/eco"
	"github.com/okian/openings/internal/domain/model"
	"github.com/okian/openings/internal/domain/partition"
	"github.com/okian/openings/internal/domain/stats"
	"github.com/okian/openings/internal/domain/types"
	"github.com/okian/openings/pkg/logger"
	"github.com/okian/openings/pkg/metrics"
)

// Color labels used in metrics.
const (
	labelWhite = "white"
	labelBlack = "black"
)

// Service runs analyses over one ingested dataset. It never mutates the
// store, so questions may run in any order.
type Service struct {
	store repository.Store

	// Configuration
	dataset    string
	thresholds partition.Thresholds
	fisher     stats.FisherOptions
	deviation  deviation.Options

	now    func() time.Time
	logger logger.Logger
}

// New constructs a Service over store with the default thresholds and the
// inherited statistical conventions.
func New(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:      store,
		thresholds: partition.DefaultThresholds(),
		fisher:     stats.DefaultFisherOptions(),
		deviation:  deviation.DefaultOptions(),
		now:        time.Now,
		logger:     logger.GetOrNop().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WinRates lists the openings whose win rate clears the color's threshold.
func (s *Service) WinRates(ctx context.Context) (types.WinRateFinding, error) {
	if err := ctx.Err(); err != nil {
		return types.WinRateFinding{}, err
	}
	white, black := partition.FilterBySufficientWinRate(s.store.All(ctx), s.thresholds)
	return types.WinRateFinding{
		White: sideOpenings(white),
		Black: sideOpenings(black),
	}, nil
}

func sideOpenings(records []model.Opening) types.SideOpenings {
	names := make([]string, len(records))
	tally := make(map[string]int, eco.Letters)
	for _, l := range eco.Families() {
		tally[string(l)] = 0
	}
	for i, r := range records {
		names[i] = r.Name
		tally[string(r.ECO.Family())]++
	}
	return types.SideOpenings{Names: names, Count: len(records), Families: tally}
}

// DevelopmentCorrelation correlates the number of recorded moves with win
// rate for each color and compares the two coefficients.
func (s *Service) DevelopmentCorrelation(ctx context.Context) (types.CorrelationFinding, error) {
	return s.correlate(ctx, QuestionDevelopment, func(o model.Opening) float64 {
		return float64(o.DevelopmentLevel())
	})
}

// PopularityCorrelation correlates the number of games played with win rate
// for each color and compares the two coefficients.
func (s *Service) PopularityCorrelation(ctx context.Context) (types.CorrelationFinding, error) {
	return s.correlate(ctx, QuestionPopularity, func(o model.Opening) float64 {
		return float64(o.NumGames)
	})
}

func (s *Service) correlate(ctx context.Context, q Question, metric func(model.Opening) float64) (types.CorrelationFinding, error) {
	if err := ctx.Err(); err != nil {
		return types.CorrelationFinding{}, err
	}
	records := s.store.All(ctx)
	white, black := partition.SplitByColor(records)

	rWhite, err := s.pearson(ctx, q, labelWhite, white, metric)
	if err != nil {
		return types.CorrelationFinding{}, fmt.Errorf("white correlation: %w", err)
	}
	rBlack, err := s.pearson(ctx, q, labelBlack, black, metric)
	if err != nil {
		return types.CorrelationFinding{}, fmt.Errorf("black correlation: %w", err)
	}

	// The Fisher sample is the sufficient-win-rate population of both colors.
	goodWhite, goodBlack := partition.FilterBySufficientWinRate(records, s.thresholds)
	res, err := stats.FisherTest(rWhite, rBlack, len(goodWhite)+len(goodBlack), s.fisher)
	if err != nil {
		return types.CorrelationFinding{}, fmt.Errorf("fisher test: %w", err)
	}

	metrics.UpdateCorrelation(q.String(), labelWhite, rWhite)
	metrics.UpdateCorrelation(q.String(), labelBlack, rBlack)

	return types.CorrelationFinding{
		Metric: q.String(),
		White:  types.Number(rWhite),
		Black:  types.Number(rBlack),
		Fisher: types.FisherSummary{
			Mode:       res.Mode.String(),
			SampleSize: res.SampleSize,
			Statistic:  types.Number(res.Statistic),
			Verdict:    res.Verdict.String(),
		},
	}, nil
}

// pearson correlates metric with win rate over records. A color with fewer
// than two records has no coefficient and yields NaN, which the Fisher test
// reports as indeterminate.
func (s *Service) pearson(ctx context.Context, q Question, color string, records []model.Opening, metric func(model.Opening) float64) (float64, error) {
	x := make([]float64, len(records))
	y := make([]float64, len(records))
	for i, r := range records {
		x[i] = metric(r)
		y[i] = r.WinPercent
	}
	r, err := stats.PearsonCorrelation(x, y)
	if errors.Is(err, stats.ErrInsufficientData) {
		s.logger.Warn(ctx, "too few records to correlate",
			logger.String("question", q.String()),
			logger.String("color", color),
			logger.Int("records", len(records)),
		)
		return math.NaN(), nil
	}
	return r, err
}

// TopPlayerOpenings finds the ECO codes that the top-rated quartile of each
// color plays significantly more often than everyone else.
func (s *Service) TopPlayerOpenings(ctx context.Context) (types.DeviationFinding, error) {
	if err := ctx.Err(); err != nil {
		return types.DeviationFinding{}, err
	}
	white := s.store.ByColor(ctx, model.White)
	black := s.store.ByColor(ctx, model.Black)

	res, err := deviation.Compare(s.population(white), s.population(black), s.deviation)
	if err != nil {
		return types.DeviationFinding{}, fmt.Errorf("top player deviation: %w", err)
	}

	metrics.UpdateFindings(QuestionTopPlayers.String(), labelWhite, len(res.White))
	metrics.UpdateFindings(QuestionTopPlayers.String(), labelBlack, len(res.Black))

	return types.DeviationFinding{
		Mode:  s.deviation.Mode.String(),
		White: codeDeviations(res.White),
		Black: codeDeviations(res.Black),
	}, nil
}

func (s *Service) population(records []model.Opening) deviation.Population {
	top := partition.FilterTopQuartileByRating(records, s.thresholds.TopFraction)
	return deviation.Population{
		Overall: eco.NewDistribution(model.Codes(records)),
		Top:     eco.NewDistribution(model.Codes(top)),
	}
}

func codeDeviations(findings []deviation.Finding) []types.CodeDeviation {
	out := make([]types.CodeDeviation, len(findings))
	for i, f := range findings {
		out[i] = types.CodeDeviation{
			Code:     f.Code.String(),
			ZOverall: f.ZOverall,
			ZTop:     f.ZTop,
			PValue:   f.PValue,
		}
	}
	return out
}

// Run answers questions in the given order, all four when none are named,
// and returns them as one report. The first failing question aborts the run.
func (s *Service) Run(ctx context.Context, questions ...Question) (types.Report, error) {
	if len(questions) == 0 {
		questions = AllQuestions()
	}
	for _, q := range questions {
		if !q.Valid() {
			return types.Report{}, fmt.Errorf("%w: %d", ErrUnknownQuestion, int(q))
		}
	}

	rep := types.Report{
		RunID:       uuid.NewString(),
		Dataset:     s.dataset,
		Records:     s.store.Count(ctx),
		GeneratedAt: s.now().UTC(),
	}
	log := s.logger
	log.Info(ctx, "analysis started",
		logger.String("runID", rep.RunID),
		logger.Int("records", rep.Records),
		logger.Int("questions", len(questions)),
	)

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return types.Report{}, err
		}
		start := time.Now()
		err := s.answer(ctx, q, &rep)
		metrics.RecordAnalysisDuration(q.String(), time.Since(start).Seconds())
		if err != nil {
			metrics.RecordAnalysisError(q.String())
			log.Error(ctx, "question failed",
				logger.String("runID", rep.RunID),
				logger.String("question", q.String()),
				logger.Error(err),
			)
			return types.Report{}, fmt.Errorf("%s: %w", q, err)
		}
	}

	log.Info(ctx, "analysis finished", logger.String("runID", rep.RunID))
	return rep, nil
}

// answer runs q and stores its finding on rep.
func (s *Service) answer(ctx context.Context, q Question, rep *types.Report) error {
	switch q {
	case QuestionWinRates:
		f, err := s.WinRates(ctx)
		if err != nil {
			return err
		}
		metrics.UpdateFindings(q.String(), labelWhite, f.White.Count)
		metrics.UpdateFindings(q.String(), labelBlack, f.Black.Count)
		s.logger.Info(ctx, "win rates",
			logger.Int("white", f.White.Count),
			logger.Int("black", f.Black.Count),
		)
		rep.WinRates = &f
	case QuestionDevelopment, QuestionPopularity:
		var (
			f   types.CorrelationFinding
			err error
		)
		if q == QuestionDevelopment {
			f, err = s.DevelopmentCorrelation(ctx)
		} else {
			f, err = s.PopularityCorrelation(ctx)
		}
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "correlation",
			logger.String("question", q.String()),
			logger.Float64("white", float64(f.White)),
			logger.Float64("black", float64(f.Black)),
			logger.String("verdict", f.Fisher.Verdict),
		)
		if q == QuestionDevelopment {
			rep.Development = &f
		} else {
			rep.Popularity = &f
		}
	case QuestionTopPlayers:
		f, err := s.TopPlayerOpenings(ctx)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "top player openings",
			logger.String("mode", f.Mode),
			logger.Int("white", len(f.White)),
			logger.Int("black", len(f.Black)),
		)
		rep.TopPlayers = &f
	default:
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, int(q))
	}
	return nil
}
