// Package repository holds the read-only record store shared by every
// analysis of a run.
package repository

import (
	"context"

	"github.com/okian/openings/internal/domain/model"
)

// Store provides read access to the ingested records.
type Store interface {
	// All returns every record in ingestion order. Callers own the slice.
	All(ctx context.Context) []model.Opening

	// ByColor returns the records of one color in ingestion order.
	ByColor(ctx context.Context, color model.Color) []model.Opening

	// Count returns the number of records held.
	Count(ctx context.Context) int
}
