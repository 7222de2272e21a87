// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltfield/ohmwork/internal/model"
)

// EstimateFilter defines filtering options for estimate history queries.
type EstimateFilter struct {
	NameContains string
	Limit        int
	Offset       int
}

// Storage defines the contract for the estimate history persistence layer.
// The matching and calculation core never touches storage; commands wire
// the two together.
type Storage interface {
	SaveEstimate(ctx context.Context, estimate *model.Estimate) (int64, error)
	UpdateEstimate(ctx context.Context, estimate *model.Estimate) error
	GetEstimate(ctx context.Context, id int64) (*model.Estimate, error)
	ListEstimates(ctx context.Context, filter EstimateFilter) ([]model.Estimate, error)
	DeleteEstimate(ctx context.Context, id int64) error

	Migrate(ctx context.Context) error
	Close() error
}

// PriceQuote is the result of one vendor catalog lookup. Price is nil when
// the vendor withholds pricing (login required) or nothing was found.
type PriceQuote struct {
	Price       *decimal.Decimal
	ProductName string
	URL         string
	Stock       string
	Vendor      string
	CatalogID   string
}

// PriceLookup fetches a material price for a part description or exact
// vendor catalog ID. Implementations are expected to cache and rate-limit
// internally; callers treat a lookup as a slow, fallible network step.
type PriceLookup interface {
	Lookup(ctx context.Context, description, catalogID string) (*PriceQuote, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
