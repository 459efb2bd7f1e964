package service

import (
	"time"

	"github.com/okian/openings/internal/domain/deviation"
	"github.com/okian/openings/internal/domain/partition"
	"github.com/okian/openings/internal/domain/stats"
	"github.com/okian/openings/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDataset sets the dataset name stamped on reports.
func WithDataset(name string) Option {
	return func(s *Service) {
		s.dataset = name
	}
}

// WithThresholds overrides the filtering cutoffs.
func WithThresholds(th partition.Thresholds) Option {
	return func(s *Service) {
		s.thresholds = th
	}
}

// WithFisherMode selects how correlation coefficients are compared.
func WithFisherMode(mode stats.FisherMode) Option {
	return func(s *Service) {
		s.fisher.Mode = mode
	}
}

// WithCriticalValue sets the Fisher test cutoff.
func WithCriticalValue(v float64) Option {
	return func(s *Service) {
		if v > 0 {
			s.fisher.CriticalValue = v
		}
	}
}

// WithConvention sets the SD convention of the top-player test.
func WithConvention(c stats.Convention) Option {
	return func(s *Service) {
		s.deviation.Convention = c
	}
}

// WithTopZMode selects the mean that standardizes the black top quartile.
func WithTopZMode(m deviation.Mode) Option {
	return func(s *Service) {
		s.deviation.Mode = m
	}
}

// WithAlpha sets the significance level of the top-player test.
func WithAlpha(alpha float64) Option {
	return func(s *Service) {
		if alpha > 0 && alpha < 1 {
			s.deviation.Alpha = alpha
		}
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
