package memory

import (
	"context"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/model"
)

type criteriaRepository struct {
	mu      sync.RWMutex
	catalog model.Catalog
}

func newCriteriaRepository() *criteriaRepository {
	return &criteriaRepository{}
}

func (r *criteriaRepository) Load(ctx context.Context) (model.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.catalog == nil {
		r.catalog = model.DefaultCatalog()
	}
	return r.catalog.Clone(), nil
}

func (r *criteriaRepository) Save(ctx context.Context, catalog model.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog = catalog.Clone()
	return nil
}
