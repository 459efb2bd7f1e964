package config

import "errors"

// Errors returned while loading and validating the analysis configuration.
var (
	// ErrInvalidConfig marks a value outside its allowed range, such as a
	// threshold or alpha that cannot parameterize a test.
	ErrInvalidConfig = errors.New("invalid analysis config")
	// ErrLoadConfig marks a config file or environment layer that failed to parse.
	ErrLoadConfig = errors.New("load analysis config")
)
