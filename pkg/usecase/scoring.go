package usecase

import (
	"context"
	"log/slog"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ScoringUseCase manages weights and tiers and rescoring of objects
type ScoringUseCase struct {
	state *state
}

func (uc *ScoringUseCase) Weights(ctx context.Context) (config.Weights, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return config.Weights{}, err
	}
	defer unlock()

	return uc.state.weights, nil
}

func (uc *ScoringUseCase) Tiers(ctx context.Context) (config.Tiers, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return append(config.Tiers(nil), uc.state.tiers...), nil
}

// UpdateWeights persists new multipliers and rescores every object
func (uc *ScoringUseCase) UpdateWeights(ctx context.Context, weights config.Weights) error {
	if err := weights.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidWeight, err.Error())
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	uc.state.weights = weights
	if err := uc.state.repo.ScoringConfig().SaveWeights(ctx, weights); err != nil {
		return goerr.Wrap(err, "failed to save weights")
	}

	objs, err := uc.state.recomputeAll(ctx)
	if err != nil {
		return err
	}
	logging.From(ctx).Info("Weights updated",
		slog.Int("materialidade", weights.Materialidade),
		slog.Int("relevancia", weights.Relevancia),
		slog.Int("criticidade", weights.Criticidade),
		slog.Int("objects", len(objs)))
	return nil
}

// UpdateTiers clamps the tiers in the given order so thresholds strictly
// decrease, persists them and rescores every object. It returns the tiers
// as stored.
func (uc *ScoringUseCase) UpdateTiers(ctx context.Context, tiers config.Tiers) (config.Tiers, error) {
	clamped := tiers.Clamp()
	if err := clamped.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidTier, err.Error())
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	uc.state.tiers = clamped
	if err := uc.state.repo.ScoringConfig().SaveTiers(ctx, clamped); err != nil {
		return nil, goerr.Wrap(err, "failed to save tiers")
	}

	objs, err := uc.state.recomputeAll(ctx)
	if err != nil {
		return nil, err
	}
	logging.From(ctx).Info("Risk tiers updated",
		slog.Int("tiers", len(clamped)),
		slog.Int("objects", len(objs)))
	return append(config.Tiers(nil), clamped...), nil
}

// ApplyPreset replaces the tiers with a named preset
func (uc *ScoringUseCase) ApplyPreset(ctx context.Context, name string) (config.Tiers, error) {
	tiers, err := config.TierPreset(name)
	if err != nil {
		return nil, goerr.Wrap(model.ErrInvalidTier, err.Error(), goerr.V(PresetKey, name))
	}
	return uc.UpdateTiers(ctx, tiers)
}

// RecomputeAll rescores every object against the current catalog, weights
// and tiers and writes the collection once
func (uc *ScoringUseCase) RecomputeAll(ctx context.Context) ([]*model.AuditObject, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.state.recomputeAll(ctx)
}
