package memory

import (
	"context"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type objectRepository struct {
	mu      sync.RWMutex
	objects []*model.AuditObject
}

func newObjectRepository() *objectRepository {
	return &objectRepository{}
}

func (r *objectRepository) List(ctx context.Context) ([]*model.AuditObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objs := make([]*model.AuditObject, len(r.objects))
	for i, obj := range r.objects {
		objs[i] = obj.Clone()
	}
	return objs, nil
}

func (r *objectRepository) Get(ctx context.Context, description string) (*model.AuditObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, obj := range r.objects {
		if obj.Description == description {
			return obj.Clone(), nil
		}
	}
	return nil, goerr.Wrap(model.ErrNotFound, "auditable object not found",
		goerr.V(model.DescriptionKey, description))
}

func (r *objectRepository) Upsert(ctx context.Context, obj *model.AuditObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.objects {
		if existing.Description == obj.Description {
			r.objects[i] = obj.Clone()
			return nil
		}
	}
	r.objects = append(r.objects, obj.Clone())
	return nil
}

func (r *objectRepository) ReplaceAll(ctx context.Context, objs []*model.AuditObject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := make([]*model.AuditObject, len(objs))
	for i, obj := range objs {
		replaced[i] = obj.Clone()
	}
	r.objects = replaced
	return nil
}
