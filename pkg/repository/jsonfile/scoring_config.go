package jsonfile

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
)

type scoringConfigRepository struct {
	store *configStore
}

func (r *scoringConfigRepository) LoadWeights(ctx context.Context) (config.Weights, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	return r.store.weights, nil
}

func (r *scoringConfigRepository) SaveWeights(ctx context.Context, weights config.Weights) error {
	if err := weights.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidWeight, err.Error())
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	r.store.weights = weights
	if err := r.store.write(ctx); err != nil {
		return goerr.Wrap(err, "failed to save weights")
	}
	return nil
}

func (r *scoringConfigRepository) LoadTiers(ctx context.Context) (config.Tiers, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	return append(config.Tiers(nil), r.store.tiers...), nil
}

func (r *scoringConfigRepository) SaveTiers(ctx context.Context, tiers config.Tiers) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	r.store.tiers = tiers.Sorted()
	if err := r.store.write(ctx); err != nil {
		return goerr.Wrap(err, "failed to save tiers")
	}
	return nil
}
