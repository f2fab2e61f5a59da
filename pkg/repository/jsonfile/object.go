package jsonfile

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type objectRepository struct {
	store *configStore
}

func (r *objectRepository) List(ctx context.Context) ([]*model.AuditObject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	objs := make([]*model.AuditObject, len(r.store.objects))
	for i, obj := range r.store.objects {
		objs[i] = obj.Clone()
	}
	return objs, nil
}

func (r *objectRepository) Get(ctx context.Context, description string) (*model.AuditObject, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	for _, obj := range r.store.objects {
		if obj.Description == description {
			return obj.Clone(), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "auditable object not found",
		goerr.V(model.DescriptionKey, description))
}

func (r *objectRepository) Upsert(ctx context.Context, obj *model.AuditObject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	replaced := false
	for i, existing := range r.store.objects {
		if existing.Description == obj.Description {
			r.store.objects[i] = obj.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		r.store.objects = append(r.store.objects, obj.Clone())
	}

	if err := r.store.write(ctx); err != nil {
		return goerr.Wrap(err, "failed to save auditable object",
			goerr.V(model.DescriptionKey, obj.Description))
	}
	return nil
}

func (r *objectRepository) ReplaceAll(ctx context.Context, objs []*model.AuditObject) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.load(ctx)

	replaced := make([]*model.AuditObject, len(objs))
	for i, obj := range objs {
		replaced[i] = obj.Clone()
	}
	r.store.objects = replaced

	if err := r.store.write(ctx); err != nil {
		return goerr.Wrap(err, "failed to save auditable objects")
	}
	return nil
}
