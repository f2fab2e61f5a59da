package interfaces

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/model"
)

// WorkbookService reads and writes spreadsheet files
type WorkbookService interface {
	Read(ctx context.Context, path string) (*model.Workbook, error)
	Write(ctx context.Context, path string, wb *model.Workbook) error
}
