package interfaces

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
)

type ObjectRepository interface {
	// List retrieves all objects in stored order
	List(ctx context.Context) ([]*model.AuditObject, error)

	// Get retrieves an object by its description
	Get(ctx context.Context, description string) (*model.AuditObject, error)

	// Upsert creates or replaces the object with the same description
	Upsert(ctx context.Context, obj *model.AuditObject) error

	// ReplaceAll swaps the whole collection in a single write
	ReplaceAll(ctx context.Context, objs []*model.AuditObject) error
}
