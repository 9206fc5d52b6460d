// Package store provides persistence for the valuation journal.
package store

import (
	"context"
	"time"

	"option-pricer/internal/models"
)

// Journal defines the interface for valuation persistence.
type Journal interface {
	SaveValuation(ctx context.Context, v *models.Valuation) error
	ListValuations(ctx context.Context, filter ValuationFilter) ([]models.Valuation, error)
	CountValuations(ctx context.Context) (int64, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// ValuationFilter represents filters for querying journaled valuations.
type ValuationFilter struct {
	Kind       models.ValuationKind
	OptionType string
	Since      time.Time
	Limit      int
}
