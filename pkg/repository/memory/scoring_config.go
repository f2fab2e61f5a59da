package memory

import (
	"context"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
)

type scoringConfigRepository struct {
	mu      sync.RWMutex
	weights config.Weights
	tiers   config.Tiers
}

func newScoringConfigRepository(cfg config.ScoringConfig) *scoringConfigRepository {
	return &scoringConfigRepository{
		weights: cfg.Weights.WithDefaults(),
		tiers:   append(config.Tiers(nil), cfg.Tiers...),
	}
}

func (r *scoringConfigRepository) LoadWeights(ctx context.Context) (config.Weights, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.weights, nil
}

func (r *scoringConfigRepository) SaveWeights(ctx context.Context, weights config.Weights) error {
	if err := weights.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidWeight, err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.weights = weights
	return nil
}

func (r *scoringConfigRepository) LoadTiers(ctx context.Context) (config.Tiers, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.tiers) == 0 {
		return config.DefaultTiers(), nil
	}
	return r.tiers.Sorted(), nil
}

func (r *scoringConfigRepository) SaveTiers(ctx context.Context, tiers config.Tiers) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tiers = append(config.Tiers(nil), tiers...)
	return nil
}
