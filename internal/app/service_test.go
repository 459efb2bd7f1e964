package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okian/openings/internal/adapters/repository"
	service "github.com/okian/openings/internal/app"
	"github.com/okian/openings/internal/domain/deviation"
	"github.com/okian/openings/internal/domain/eco"
	"github.com/okian/openings/internal/domain/model"
	"github.com/okian/openings/internal/domain/partition"
	"github.com/okian/openings/internal/domain/stats"
	"github.com/okian/openings/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func opening(name string, color model.Color, code eco.Code, games, rating int, win float64, moves int) model.Opening {
	m := make([]string, moves)
	for i := range m {
		m[i] = "m"
	}
	return model.Opening{
		Name: name, Color: color, ECO: code,
		NumGames: games, AvgRating: rating, WinPercent: win, Moves: m,
	}
}

func fixture() []model.Opening {
	return []model.Opening{
		opening("Italian Game", model.White, "C50", 100, 2000, 55, 4),
		opening("Ruy Lopez", model.White, "C60", 300, 2200, 53, 6),
		opening("Two Knights", model.White, "C50", 50, 1800, 48, 2),
		opening("Queen's Gambit", model.White, "D06", 500, 2400, 52, 5),
		opening("Polish Opening", model.White, "A00", 20, 1500, 40, 1),
		opening("Sicilian Defense", model.Black, "B20", 400, 2300, 47, 3),
		opening("Sicilian Defense", model.Black, "B20", 100, 1900, 44, 2),
		opening("French Defense", model.Black, "C00", 200, 2100, 45, 5),
		opening("King's Indian", model.Black, "E60", 80, 1700, 30, 4),
	}
}

func newService(opts ...service.Option) *service.Service {
	return serviceOver(fixture(), opts...)
}

func serviceOver(records []model.Opening, opts ...service.Option) *service.Service {
	store, err := repository.NewMemoryStore(context.Background(), records)
	So(err, ShouldBeNil)
	return service.New(store, opts...)
}

func population(rs []model.Opening) deviation.Population {
	return deviation.Population{
		Overall: eco.NewDistribution(model.Codes(rs)),
		Top:     eco.NewDistribution(model.Codes(partition.FilterTopQuartileByRating(rs, partition.DefaultTopFraction))),
	}
}

func series(color model.Color, metric func(model.Opening) float64) (x, y []float64) {
	for _, r := range fixture() {
		if r.Color != color {
			continue
		}
		x = append(x, metric(r))
		y = append(y, r.WinPercent)
	}
	return x, y
}

func TestWinRates(t *testing.T) {
	Convey("Given the fixture dataset", t, func() {
		svc := newService()

		f, err := svc.WinRates(context.Background())

		Convey("Then openings at or above the thresholds are kept in order", func() {
			So(err, ShouldBeNil)
			So(f.White.Names, ShouldResemble, []string{"Italian Game", "Ruy Lopez", "Queen's Gambit"})
			So(f.White.Count, ShouldEqual, 3)
			So(f.Black.Names, ShouldResemble, []string{"Sicilian Defense", "French Defense"})
			So(f.Black.Count, ShouldEqual, 2)
		})

		Convey("Then every ECO family is tallied", func() {
			So(f.White.Families, ShouldResemble, map[string]int{"A": 0, "B": 0, "C": 2, "D": 1, "E": 0})
			So(f.Black.Families, ShouldResemble, map[string]int{"A": 0, "B": 1, "C": 1, "D": 0, "E": 0})
		})
	})

	Convey("Given stricter thresholds", t, func() {
		th := partition.DefaultThresholds()
		th.WhiteMinWinPercent = 54
		svc := newService(service.WithThresholds(th))

		f, err := svc.WinRates(context.Background())

		Convey("Then fewer white openings qualify", func() {
			So(err, ShouldBeNil)
			So(f.White.Names, ShouldResemble, []string{"Italian Game"})
		})
	})
}

func TestCorrelations(t *testing.T) {
	moves := func(o model.Opening) float64 { return float64(o.DevelopmentLevel()) }
	games := func(o model.Opening) float64 { return float64(o.NumGames) }

	Convey("Given the fixture dataset", t, func() {
		ctx := context.Background()

		Convey("When correlating development with win rate", func() {
			f, err := newService().DevelopmentCorrelation(ctx)
			So(err, ShouldBeNil)

			wx, wy := series(model.White, moves)
			bx, by := series(model.Black, moves)
			rw, _ := stats.PearsonCorrelation(wx, wy)
			rb, _ := stats.PearsonCorrelation(bx, by)

			Convey("Then each color gets its own coefficient", func() {
				So(float64(f.White), ShouldAlmostEqual, rw, 1e-12)
				So(float64(f.Black), ShouldAlmostEqual, rb, 1e-12)
				So(f.Metric, ShouldEqual, "development")
			})

			Convey("Then the Fisher sample is the sufficient win rate population", func() {
				So(f.Fisher.SampleSize, ShouldEqual, 5)
			})

			Convey("Then the inherited comparison never finds a difference", func() {
				So(f.Fisher.Mode, ShouldEqual, "inherited")
				So(float64(f.Fisher.Statistic), ShouldEqual, 0.0)
				So(f.Fisher.Verdict, ShouldEqual, stats.VerdictNotDifferent.String())
			})
		})

		Convey("When correlating popularity with win rate in corrected mode", func() {
			f, err := newService(service.WithFisherMode(stats.FisherCorrected)).PopularityCorrelation(ctx)
			So(err, ShouldBeNil)

			wx, wy := series(model.White, games)
			bx, by := series(model.Black, games)
			rw, _ := stats.PearsonCorrelation(wx, wy)
			rb, _ := stats.PearsonCorrelation(bx, by)
			want, _ := stats.FisherTest(rw, rb, 5, stats.FisherOptions{Mode: stats.FisherCorrected})

			Convey("Then the verdict follows the corrected statistic", func() {
				So(float64(f.White), ShouldAlmostEqual, rw, 1e-12)
				So(float64(f.Black), ShouldAlmostEqual, rb, 1e-12)
				So(f.Fisher.Mode, ShouldEqual, "corrected")
				So(float64(f.Fisher.Statistic), ShouldAlmostEqual, want.Statistic, 1e-12)
				So(f.Fisher.Verdict, ShouldEqual, want.Verdict.String())
			})
		})
	})

	Convey("Given a custom Fisher cutoff in corrected mode", t, func() {
		ctx := context.Background()
		wx, wy := series(model.White, games)
		bx, by := series(model.Black, games)
		rw, _ := stats.PearsonCorrelation(wx, wy)
		rb, _ := stats.PearsonCorrelation(bx, by)

		Convey("Then a tiny cutoff finds a difference and a huge one does not", func() {
			low, err := newService(service.WithFisherMode(stats.FisherCorrected), service.WithCriticalValue(1e-9)).PopularityCorrelation(ctx)
			So(err, ShouldBeNil)
			So(low.Fisher.Verdict, ShouldEqual, stats.VerdictDifferent.String())

			high, err := newService(service.WithFisherMode(stats.FisherCorrected), service.WithCriticalValue(1e6)).PopularityCorrelation(ctx)
			So(err, ShouldBeNil)
			So(high.Fisher.Verdict, ShouldEqual, stats.VerdictNotDifferent.String())
		})

		Convey("Then a non-positive cutoff keeps the default", func() {
			f, err := newService(service.WithFisherMode(stats.FisherCorrected), service.WithCriticalValue(-1)).PopularityCorrelation(ctx)
			So(err, ShouldBeNil)
			want, _ := stats.FisherTest(rw, rb, 5, stats.FisherOptions{Mode: stats.FisherCorrected})
			So(f.Fisher.Verdict, ShouldEqual, want.Verdict.String())
		})
	})

	Convey("Given a single black record", t, func() {
		ctx := context.Background()
		records := []model.Opening{
			opening("a", model.White, "A00", 10, 1500, 60, 1),
			opening("b", model.White, "A01", 20, 1600, 55, 2),
			opening("c", model.White, "A02", 30, 1700, 53, 4),
			opening("d", model.White, "A03", 40, 1800, 58, 3),
			opening("e", model.Black, "B00", 10, 1500, 50, 2),
		}

		Convey("When correlating in corrected mode", func() {
			f, err := serviceOver(records, service.WithFisherMode(stats.FisherCorrected)).DevelopmentCorrelation(ctx)

			Convey("Then black has no coefficient and the verdict is indeterminate", func() {
				So(err, ShouldBeNil)
				So(math.IsNaN(float64(f.White)), ShouldBeFalse)
				So(math.IsNaN(float64(f.Black)), ShouldBeTrue)
				So(f.Fisher.SampleSize, ShouldEqual, 5)
				So(f.Fisher.Verdict, ShouldEqual, stats.VerdictIndeterminate.String())
			})
		})

		Convey("When running every question", func() {
			rep, err := serviceOver(records).Run(ctx)

			Convey("Then the report is still produced", func() {
				So(err, ShouldBeNil)
				So(rep.Development, ShouldNotBeNil)
				So(rep.Popularity, ShouldNotBeNil)
				So(math.IsNaN(float64(rep.Popularity.Black)), ShouldBeTrue)
				So(rep.TopPlayers, ShouldNotBeNil)
			})
		})
	})

	Convey("Given too few sufficient openings for a Fisher test", t, func() {
		store, err := repository.NewMemoryStore(context.Background(), []model.Opening{
			opening("a", model.White, "A00", 10, 1500, 60, 1),
			opening("b", model.White, "A01", 20, 1600, 50, 2),
			opening("c", model.Black, "B00", 10, 1500, 50, 1),
			opening("d", model.Black, "B01", 30, 1600, 40, 3),
		})
		So(err, ShouldBeNil)

		_, err = service.New(store).DevelopmentCorrelation(context.Background())

		Convey("Then the question fails", func() {
			So(errors.Is(err, stats.ErrInsufficientSample), ShouldBeTrue)
		})
	})
}

func TestTopPlayerOpenings(t *testing.T) {
	Convey("Given the fixture dataset", t, func() {
		ctx := context.Background()

		Convey("When using the default options", func() {
			f, err := newService().TopPlayerOpenings(ctx)

			Convey("Then the result matches a direct comparison", func() {
				So(err, ShouldBeNil)
				So(f.Mode, ShouldEqual, "inherited")

				white, black := partition.SplitByColor(fixture())
				want, err := deviation.Compare(population(white), population(black), deviation.DefaultOptions())
				So(err, ShouldBeNil)
				So(len(f.White), ShouldEqual, len(want.White))
				So(len(f.Black), ShouldEqual, len(want.Black))
				for i := range want.White {
					So(f.White[i].Code, ShouldEqual, want.White[i].Code.String())
				}
			})
		})

		Convey("When loosening alpha", func() {
			loose, err := newService(service.WithAlpha(0.5)).TopPlayerOpenings(ctx)
			So(err, ShouldBeNil)
			strict, err := newService().TopPlayerOpenings(ctx)
			So(err, ShouldBeNil)

			white, black := partition.SplitByColor(fixture())
			opts := deviation.DefaultOptions()
			opts.Alpha = 0.5
			want, err := deviation.Compare(population(white), population(black), opts)
			So(err, ShouldBeNil)

			Convey("Then the findings follow the configured level", func() {
				So(loose.White, ShouldHaveLength, len(want.White))
				So(loose.Black, ShouldHaveLength, len(want.Black))
				for i := range want.Black {
					So(loose.Black[i].Code, ShouldEqual, want.Black[i].Code.String())
					So(loose.Black[i].PValue, ShouldBeLessThan, 0.5)
				}
				So(len(loose.White)+len(loose.Black), ShouldBeGreaterThanOrEqualTo, len(strict.White)+len(strict.Black))
			})

			Convey("Then an out of range alpha keeps the default", func() {
				f, err := newService(service.WithAlpha(1)).TopPlayerOpenings(ctx)
				So(err, ShouldBeNil)
				So(f, ShouldResemble, strict)
			})
		})

		Convey("When a single top record meets the observed convention", func() {
			svc := newService(
				service.WithConvention(stats.ConventionObserved),
				service.WithTopZMode(deviation.TopZConsistent),
			)
			_, err := svc.TopPlayerOpenings(ctx)

			Convey("Then the zero deviation is reported", func() {
				So(errors.Is(err, stats.ErrZeroDeviation), ShouldBeTrue)
			})
		})
	})
}

func TestTopPlayerOpeningsEmptyWhiteTop(t *testing.T) {
	Convey("Given three white records and four black records", t, func() {
		ctx := context.Background()
		// The white top quartile of three records is empty.
		records := []model.Opening{
			opening("a", model.White, "A00", 10, 1500, 60, 1),
			opening("b", model.White, "A01", 20, 1600, 55, 2),
			opening("c", model.White, "A02", 30, 1700, 53, 4),
			opening("d", model.Black, "B00", 10, 2200, 50, 1),
			opening("e", model.Black, "B01", 40, 1800, 44, 3),
			opening("f", model.Black, "B02", 25, 1900, 46, 2),
			opening("g", model.Black, "B03", 15, 1600, 40, 5),
		}
		svc := serviceOver(records)

		Convey("When comparing in the inherited mode", func() {
			f, err := svc.TopPlayerOpenings(ctx)

			Convey("Then black has no findings instead of an error", func() {
				So(err, ShouldBeNil)
				So(f.Mode, ShouldEqual, "inherited")
				So(f.White, ShouldBeEmpty)
				So(f.Black, ShouldBeEmpty)
			})
		})

		Convey("When running every question", func() {
			rep, err := svc.Run(ctx)

			Convey("Then the report is complete", func() {
				So(err, ShouldBeNil)
				So(rep.WinRates, ShouldNotBeNil)
				So(rep.Development, ShouldNotBeNil)
				So(rep.Popularity, ShouldNotBeNil)
				So(rep.TopPlayers, ShouldNotBeNil)
				So(rep.TopPlayers.Black, ShouldBeEmpty)
			})
		})
	})
}

func TestRun(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	Convey("Given a service over the fixture dataset", t, func() {
		svc := newService(
			service.WithDataset("fixture.csv"),
			service.WithClock(func() time.Time { return at }),
		)
		ctx := context.Background()

		Convey("When running without naming questions", func() {
			rep, err := svc.Run(ctx)

			Convey("Then all four questions are answered", func() {
				So(err, ShouldBeNil)
				So(rep.WinRates, ShouldNotBeNil)
				So(rep.Development, ShouldNotBeNil)
				So(rep.Popularity, ShouldNotBeNil)
				So(rep.TopPlayers, ShouldNotBeNil)
			})

			Convey("Then the report is stamped", func() {
				_, perr := uuid.Parse(rep.RunID)
				So(perr, ShouldBeNil)
				So(rep.Dataset, ShouldEqual, "fixture.csv")
				So(rep.Records, ShouldEqual, 9)
				So(rep.GeneratedAt.Equal(at), ShouldBeTrue)
				So(rep.GeneratedAt.Location(), ShouldEqual, time.UTC)
			})
		})

		Convey("When running a single question", func() {
			rep, err := svc.Run(ctx, service.QuestionPopularity)

			Convey("Then only that section is filled", func() {
				So(err, ShouldBeNil)
				So(rep.Popularity, ShouldNotBeNil)
				So(rep.WinRates, ShouldBeNil)
				So(rep.Development, ShouldBeNil)
				So(rep.TopPlayers, ShouldBeNil)
			})
		})

		Convey("When naming an unknown question", func() {
			_, err := svc.Run(ctx, service.Question(7))

			Convey("Then nothing runs", func() {
				So(errors.Is(err, service.ErrUnknownQuestion), ShouldBeTrue)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Run(cctx)

			Convey("Then the run stops", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})

		Convey("When a question fails", func() {
			failing := newService(
				service.WithConvention(stats.ConventionObserved),
				service.WithTopZMode(deviation.TopZConsistent),
			)
			_, err := failing.Run(ctx)

			Convey("Then the error names the question", func() {
				So(errors.Is(err, stats.ErrZeroDeviation), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "top_players:")
			})
		})
	})
}

func TestParseQuestion(t *testing.T) {
	Convey("Given question identifiers", t, func() {
		q, err := service.ParseQuestion("2")
		So(err, ShouldBeNil)
		So(q, ShouldEqual, service.QuestionDevelopment)

		q, err = service.ParseQuestion(" Top_Players ")
		So(err, ShouldBeNil)
		So(q, ShouldEqual, service.QuestionTopPlayers)

		_, err = service.ParseQuestion("5")
		So(errors.Is(err, service.ErrUnknownQuestion), ShouldBeTrue)

		_, err = service.ParseQuestion("openings")
		So(errors.Is(err, service.ErrUnknownQuestion), ShouldBeTrue)

		So(service.AllQuestions(), ShouldHaveLength, 4)
	})
}
