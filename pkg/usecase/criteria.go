package usecase

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CriteriaUseCase edits the criteria catalog. Every change rewrites the
// whole catalog. Object scores are not recomputed; call
// ScoringUseCase.RecomputeAll for that.
type CriteriaUseCase struct {
	state *state
}

// Catalog returns a copy of the whole catalog
func (uc *CriteriaUseCase) Catalog(ctx context.Context) (model.Catalog, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.state.catalog.Clone(), nil
}

// ListCriteria returns the criteria of a category in display order. An
// unknown category yields an empty list.
func (uc *CriteriaUseCase) ListCriteria(ctx context.Context, category types.Category) ([]model.Criterion, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.state.catalog.Clone().Criteria(category), nil
}

// AddCriterion appends a criterion to a category
func (uc *CriteriaUseCase) AddCriterion(ctx context.Context, category types.Category, crit model.Criterion) error {
	if err := crit.Validate(); err != nil {
		return err
	}
	return uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if crit.Options == nil {
			crit.Options = []model.Option{}
		}
		return append(criteria, crit), nil
	})
}

// UpdateCriterion replaces the criterion at index
func (uc *CriteriaUseCase) UpdateCriterion(ctx context.Context, category types.Category, index int, crit model.Criterion) error {
	if err := crit.Validate(); err != nil {
		return err
	}
	return uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if err := checkIndex(category, index, len(criteria)); err != nil {
			return nil, err
		}
		if crit.Options == nil {
			crit.Options = []model.Option{}
		}
		criteria[index] = crit
		return criteria, nil
	})
}

// RemoveCriterion deletes the criterion at index and returns it
func (uc *CriteriaUseCase) RemoveCriterion(ctx context.Context, category types.Category, index int) (*model.Criterion, error) {
	var removed model.Criterion
	err := uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if err := checkIndex(category, index, len(criteria)); err != nil {
			return nil, err
		}
		removed = criteria[index]
		return append(criteria[:index], criteria[index+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// AddOption appends an option to the criterion at critIndex
func (uc *CriteriaUseCase) AddOption(ctx context.Context, category types.Category, critIndex int, opt model.Option) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	return uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if err := checkIndex(category, critIndex, len(criteria)); err != nil {
			return nil, err
		}
		crit := &criteria[critIndex]
		if _, ok := crit.FindOption(opt.Description); ok {
			return nil, duplicateOption(category, crit.Name, opt.Description)
		}
		crit.Options = append(crit.Options, opt)
		return criteria, nil
	})
}

// UpdateOption replaces the option at optIndex of the criterion at critIndex
func (uc *CriteriaUseCase) UpdateOption(ctx context.Context, category types.Category, critIndex, optIndex int, opt model.Option) error {
	if err := opt.Validate(); err != nil {
		return err
	}
	return uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if err := checkIndex(category, critIndex, len(criteria)); err != nil {
			return nil, err
		}
		options := criteria[critIndex].Options
		if err := checkOptionIndex(category, criteria[critIndex].Name, optIndex, len(options)); err != nil {
			return nil, err
		}
		for i, existing := range options {
			if i != optIndex && existing.Description == opt.Description {
				return nil, duplicateOption(category, criteria[critIndex].Name, opt.Description)
			}
		}
		options[optIndex] = opt
		return criteria, nil
	})
}

// RemoveOption deletes the option at optIndex of the criterion at critIndex
func (uc *CriteriaUseCase) RemoveOption(ctx context.Context, category types.Category, critIndex, optIndex int) error {
	return uc.mutate(ctx, category, func(criteria []model.Criterion) ([]model.Criterion, error) {
		if err := checkIndex(category, critIndex, len(criteria)); err != nil {
			return nil, err
		}
		options := criteria[critIndex].Options
		if err := checkOptionIndex(category, criteria[critIndex].Name, optIndex, len(options)); err != nil {
			return nil, err
		}
		criteria[critIndex].Options = append(options[:optIndex], options[optIndex+1:]...)
		return criteria, nil
	})
}

// mutate applies fn to a copy of one category, checks that criterion names
// stay unique and persists the catalog
func (uc *CriteriaUseCase) mutate(ctx context.Context, category types.Category, fn func([]model.Criterion) ([]model.Criterion, error)) error {
	if err := category.Validate(); err != nil {
		return goerr.Wrap(model.ErrInvalidCategory, err.Error(), goerr.V(model.CategoryKey, category))
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	catalog := uc.state.catalog.Clone()
	criteria, err := fn(catalog[category])
	if err != nil {
		return err
	}
	catalog[category] = criteria

	names := make(map[string]bool, len(criteria))
	for _, crit := range criteria {
		if names[crit.Name] {
			return goerr.Wrap(model.ErrInvalidCriterion, "duplicate criterion name",
				goerr.V(model.CategoryKey, category),
				goerr.V(model.CriterionKey, crit.Name))
		}
		names[crit.Name] = true
	}

	return uc.state.saveCatalog(ctx, catalog)
}

func checkIndex(category types.Category, index, length int) error {
	if index < 0 || index >= length {
		return goerr.Wrap(model.ErrInvalidIndex, "criterion index out of range",
			goerr.V(model.CategoryKey, category),
			goerr.V(model.IndexKey, index),
			goerr.V("count", length))
	}
	return nil
}

func checkOptionIndex(category types.Category, criterion string, index, length int) error {
	if index < 0 || index >= length {
		return goerr.Wrap(model.ErrInvalidIndex, "option index out of range",
			goerr.V(model.CategoryKey, category),
			goerr.V(model.CriterionKey, criterion),
			goerr.V(OptionIndexKey, index),
			goerr.V("count", length))
	}
	return nil
}

func duplicateOption(category types.Category, criterion, description string) error {
	return goerr.Wrap(model.ErrInvalidOption, "duplicate option description",
		goerr.V(model.CategoryKey, category),
		goerr.V(model.CriterionKey, criterion),
		goerr.V(model.OptionKey, description))
}
