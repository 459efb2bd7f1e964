package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrParse           = errors.New("dataset parse error")
)

// Drop reasons reported to metrics and logs.
const (
	DropReasonColor = "color"
	DropReasonECO   = "eco"
)
