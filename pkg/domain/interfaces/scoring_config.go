package interfaces

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model/config"
)

type ScoringConfigRepository interface {
	// LoadWeights returns persisted multipliers, defaults for missing ones
	LoadWeights(ctx context.Context) (config.Weights, error)

	// SaveWeights persists the multipliers. It does not recompute objects.
	SaveWeights(ctx context.Context, weights config.Weights) error

	// LoadTiers returns persisted tiers ordered by threshold, highest first
	LoadTiers(ctx context.Context) (config.Tiers, error)

	// SaveTiers persists the tiers
	SaveTiers(ctx context.Context, tiers config.Tiers) error
}
