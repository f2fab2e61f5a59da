package usecase

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ObjectUseCase manages auditable objects and their selections
type ObjectUseCase struct {
	state *state
}

// List returns every object in stored order
func (uc *ObjectUseCase) List(ctx context.Context) ([]*model.AuditObject, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	objs, err := uc.state.repo.Object().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auditable objects")
	}
	return objs, nil
}

// Get returns the object with the given description
func (uc *ObjectUseCase) Get(ctx context.Context, description string) (*model.AuditObject, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.state.repo.Object().Get(ctx, description)
}

// GetByID returns the object with the given surrogate identifier
func (uc *ObjectUseCase) GetByID(ctx context.Context, id types.ObjectID) (*model.AuditObject, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return uc.getByID(ctx, id)
}

func (uc *ObjectUseCase) getByID(ctx context.Context, id types.ObjectID) (*model.AuditObject, error) {
	objs, err := uc.state.repo.Object().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auditable objects")
	}
	for _, obj := range objs {
		if obj.ID == id {
			return obj, nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "auditable object not found", goerr.V(ObjectIDKey, id))
}

// Add creates an object with the zero-value selection of every criterion.
// A non-positive nr is replaced by the next free number.
func (uc *ObjectUseCase) Add(ctx context.Context, nr int, description string) (*model.AuditObject, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	objs, err := uc.state.repo.Object().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auditable objects")
	}

	maxNR := 0
	for _, obj := range objs {
		if obj.Description == description {
			return nil, goerr.Wrap(model.ErrDuplicateObject, "auditable object already exists",
				goerr.V(model.DescriptionKey, description))
		}
		maxNR = max(maxNR, obj.NR)
	}
	if nr <= 0 {
		nr = maxNR + 1
	}

	obj, err := model.NewAuditObject(nr, description, uc.state.catalog)
	if err != nil {
		return nil, err
	}
	obj = uc.state.recompute(obj)

	if err := uc.state.repo.Object().Upsert(ctx, obj); err != nil {
		return nil, goerr.Wrap(err, "failed to save auditable object")
	}
	return obj, nil
}

// Upsert rescores obj and stores it, replacing any object with the same
// description
func (uc *ObjectUseCase) Upsert(ctx context.Context, obj *model.AuditObject) (*model.AuditObject, error) {
	if obj == nil || obj.Description == "" {
		return nil, goerr.New("auditable object description is required")
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	updated := uc.state.recompute(obj)
	id, err := uc.resolveID(ctx, updated)
	if err != nil {
		return nil, err
	}
	updated.ID = id

	if err := uc.state.repo.Object().Upsert(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to save auditable object",
			goerr.V(model.DescriptionKey, obj.Description))
	}
	return updated, nil
}

// resolveID keeps a caller supplied ID only when it is a UUID not held by an
// object with another description. Otherwise the stored object's ID is reused,
// or a new one is generated.
func (uc *ObjectUseCase) resolveID(ctx context.Context, obj *model.AuditObject) (types.ObjectID, error) {
	objs, err := uc.state.repo.Object().List(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to list auditable objects")
	}

	var current types.ObjectID
	taken := false
	for _, o := range objs {
		if o.Description == obj.Description {
			current = o.ID
		} else if obj.ID != "" && o.ID == obj.ID {
			taken = true
		}
	}

	if obj.ID != "" && !taken && obj.ID.Validate() == nil {
		return obj.ID, nil
	}
	if current != "" {
		return current, nil
	}
	return types.NewObjectID(), nil
}

// Select chooses an option of a criterion for the object and rescores it
func (uc *ObjectUseCase) Select(ctx context.Context, description string, category types.Category, criterion, option string) (*model.AuditObject, error) {
	return uc.update(ctx, description, category, criterion, func(crit model.Criterion) (model.Selection, error) {
		opt, ok := crit.FindOption(option)
		if !ok {
			return model.Selection{}, goerr.Wrap(model.ErrNotFound, "option not found",
				goerr.V(model.CategoryKey, category),
				goerr.V(model.CriterionKey, criterion),
				goerr.V(model.OptionKey, option))
		}
		return model.Selection{Description: opt.Description, Score: opt.Score}, nil
	})
}

// ClearSelection unsets the selection of a criterion for the object
func (uc *ObjectUseCase) ClearSelection(ctx context.Context, description string, category types.Category, criterion string) (*model.AuditObject, error) {
	return uc.update(ctx, description, category, criterion, func(model.Criterion) (model.Selection, error) {
		return model.Selection{}, nil
	})
}

func (uc *ObjectUseCase) update(ctx context.Context, description string, category types.Category, criterion string, choose func(model.Criterion) (model.Selection, error)) (*model.AuditObject, error) {
	if err := category.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCategory, err.Error(), goerr.V(model.CategoryKey, category))
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	obj, err := uc.state.repo.Object().Get(ctx, description)
	if err != nil {
		return nil, err
	}

	crit, ok := uc.state.catalog.FindCriterion(category, criterion)
	if !ok {
		return nil, goerr.Wrap(model.ErrNotFound, "criterion not found",
			goerr.V(model.CategoryKey, category),
			goerr.V(model.CriterionKey, criterion))
	}
	sel, err := choose(crit)
	if err != nil {
		return nil, err
	}

	obj.SetSelection(category, criterion, sel)
	obj = uc.state.recompute(obj)

	if err := uc.state.repo.Object().Upsert(ctx, obj); err != nil {
		return nil, goerr.Wrap(err, "failed to save auditable object",
			goerr.V(model.DescriptionKey, description))
	}
	return obj, nil
}
