package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/openings/internal/adapters/ingest"
	"github.com/okian/openings/internal/adapters/report"
	"github.com/okian/openings/internal/adapters/repository"
	service "github.com/okian/openings/internal/app"
	"github.com/okian/openings/internal/config"
	"github.com/okian/openings/pkg/logger"
	"github.com/okian/openings/pkg/metrics"
)

// flags holds command line overrides. Empty values leave the loaded
// configuration untouched.
type flags struct {
	configPath  string
	dataset     string
	format      string
	metricsFile string
	questions   []string
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "openings",
		Short: "Statistical analysis of chess opening outcomes",
		Long: `openings reads a chess openings dataset and answers four questions:
which openings win often enough, whether development or popularity
correlate with win rate, and which ECO codes top-rated players favour.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), f, stdout, stderr)
			if err != nil {
				_, _ = fmt.Fprintln(stderr, "openings: "+err.Error())
			}
			return err
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "YAML config file (defaults to $"+config.EnvConfigFile+")")
	fl.StringVar(&f.dataset, "dataset", "", "path of the openings CSV")
	fl.StringVar(&f.format, "format", "", "report format: text, json or yaml")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write run metrics in Prometheus text format to this file")
	fl.StringSliceVarP(&f.questions, "question", "q", nil, "question to answer (1-4 or name); repeatable, all by default")
	return cmd
}

func run(ctx context.Context, f flags, stdout, stderr io.Writer) error {
	path := f.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFile(ctx, path)
	if err != nil {
		return err
	}
	if f.dataset != "" {
		cfg.Dataset = f.dataset
	}
	if f.format != "" {
		cfg.Format = f.format
	}
	if f.metricsFile != "" {
		cfg.MetricsFile = f.metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	questions := make([]service.Question, 0, len(f.questions))
	for _, s := range f.questions {
		q, err := service.ParseQuestion(s)
		if err != nil {
			return err
		}
		questions = append(questions, q)
	}

	renderer, err := report.New(cfg.Format)
	if err != nil {
		return err
	}

	// stdout carries only the report.
	if err := logger.Init(logger.WithWriter(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	log.Info(ctx, "loading dataset", logger.String("dataset", cfg.Dataset))
	records, err := ingest.NewLoader(ingest.WithLogger(log.Named("ingest"))).LoadFile(ctx, cfg.Dataset)
	if err != nil {
		log.Error(ctx, "ingestion failed", logger.Error(err))
		return err
	}
	store, err := repository.NewMemoryStore(ctx, records, repository.WithLogger(log.Named("repository")))
	if err != nil {
		log.Error(ctx, "no usable records", logger.String("dataset", cfg.Dataset), logger.Error(err))
		return err
	}

	svc := service.New(store,
		service.WithLogger(log.Named("service")),
		service.WithDataset(cfg.Dataset),
		service.WithFisherMode(cfg.FisherMode()),
		service.WithTopZMode(cfg.TopZMode()),
		service.WithConvention(cfg.Convention()),
	)
	rep, runErr := svc.Run(ctx, questions...)

	// Metrics are exported even for a failed run.
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn(ctx, "metrics export failed", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := renderer.Render(stdout, rep); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
