package usecase

import (
	"context"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
)

// state is the working copy of the catalog and scoring config shared by all
// use cases. Every operation holds mu for its whole duration, so there is a
// single writer per process.
type state struct {
	mu   sync.Mutex
	repo interfaces.Repository

	loaded  bool
	catalog model.Catalog
	weights config.Weights
	tiers   config.Tiers
}

func newState(repo interfaces.Repository) *state {
	return &state{repo: repo}
}

// acquire locks the state and loads it on first use. The returned function
// releases the lock.
func (s *state) acquire(ctx context.Context) (func(), error) {
	s.mu.Lock()
	if err := s.load(ctx); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	return s.mu.Unlock, nil
}

func (s *state) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	catalog, err := s.repo.Criteria().Load(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load criteria")
	}
	weights, err := s.repo.ScoringConfig().LoadWeights(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load weights")
	}
	tiers, err := s.repo.ScoringConfig().LoadTiers(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load tiers")
	}

	s.catalog = catalog
	s.weights = weights.WithDefaults()
	s.tiers = tiers
	s.loaded = true
	return nil
}

// recompute scores one object against the current state
func (s *state) recompute(obj *model.AuditObject) *model.AuditObject {
	return model.Recompute(obj, s.catalog, s.weights, s.tiers)
}

// recomputeAll rescores every stored object and writes them back at once
func (s *state) recomputeAll(ctx context.Context) ([]*model.AuditObject, error) {
	objs, err := s.repo.Object().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auditable objects")
	}

	updated := model.RecomputeAll(objs, s.catalog, s.weights, s.tiers)
	if err := s.repo.Object().ReplaceAll(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to save recomputed objects")
	}
	return updated, nil
}

// saveCatalog swaps the working catalog and persists it. The new catalog is
// kept even when the write fails.
func (s *state) saveCatalog(ctx context.Context, catalog model.Catalog) error {
	s.catalog = catalog
	if err := s.repo.Criteria().Save(ctx, catalog); err != nil {
		return goerr.Wrap(err, "failed to save criteria")
	}
	return nil
}
