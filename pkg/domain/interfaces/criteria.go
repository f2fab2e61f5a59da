package interfaces

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
)

type CriteriaRepository interface {
	// Load returns the persisted catalog. A missing store is seeded with the
	// default catalog; unreadable data yields an empty catalog.
	Load(ctx context.Context) (model.Catalog, error)

	// Save rewrites the whole catalog
	Save(ctx context.Context, catalog model.Catalog) error
}
