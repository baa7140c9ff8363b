package domain

import (
	"context"

	"github.com/meterworks/metrobill/internal/period"
)

// Options are the run-level policies that source behavior left open.
type Options struct {
	// Workers bounds the per-meter fan-out within one run.
	Workers int
	// EmitZeroTiers includes tier lines that allocated no quantity.
	EmitZeroTiers bool
	// EmptyChargeMapPolicy decides what an unmapped water meter yields:
	// config.EmptyChargeMapTiersOnly or config.EmptyChargeMapNone.
	EmptyChargeMapPolicy string
}

// Service is the rating engine. RunRating is a pure computation over the
// read repositories; persistence belongs to the statement collaborator.
type Service interface {
	RunRating(ctx context.Context, req RunRequest) (*RunResult, error)
	// RunAllTenants rates every active tenant for the period, returning
	// one result per tenant. Per-tenant failures do not abort the batch.
	RunAllTenants(ctx context.Context, p period.Period) ([]*RunResult, error)
}
