package usecase

import (
	"context"
	"log/slog"

	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// WorkbookUseCase imports and exports spreadsheets
type WorkbookUseCase struct {
	state *state
	svc   interfaces.WorkbookService
}

// ImportFile reads the workbook at path and imports it
func (uc *WorkbookUseCase) ImportFile(ctx context.Context, path string) (*model.ImportResult, error) {
	if uc.svc == nil {
		return nil, goerr.Wrap(ErrWorkbookUnavailable, "cannot import", goerr.V(WorkbookPathKey, path))
	}

	wb, err := uc.svc.Read(ctx, path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read workbook", goerr.V(WorkbookPathKey, path))
	}
	return uc.Import(ctx, wb)
}

// Import replaces the catalog and the objects with the workbook contents.
// Nothing is written when the workbook is invalid.
func (uc *WorkbookUseCase) Import(ctx context.Context, wb *model.Workbook) (*model.ImportResult, error) {
	result, err := model.BuildImport(wb)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Objects go first so a failed object write leaves the stored catalog
	// untouched. A failed catalog write leaves scores a recompute can fix.
	result.Objects = model.RecomputeAll(result.Objects, result.Catalog, uc.state.weights, uc.state.tiers)
	if err := uc.state.repo.Object().ReplaceAll(ctx, result.Objects); err != nil {
		return nil, goerr.Wrap(err, "failed to save imported objects")
	}
	if err := uc.state.saveCatalog(ctx, result.Catalog); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("Workbook imported",
		slog.Int("criteria", result.Catalog.CriterionCount()),
		slog.Int("objects", len(result.Objects)))
	return result, nil
}

// Export builds a workbook from the current catalog and objects
func (uc *WorkbookUseCase) Export(ctx context.Context) (*model.Workbook, error) {
	unlock, err := uc.state.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	objs, err := uc.state.repo.Object().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list auditable objects")
	}
	return model.BuildExport(uc.state.catalog, objs), nil
}

// ExportFile writes the export workbook to path
func (uc *WorkbookUseCase) ExportFile(ctx context.Context, path string) error {
	if uc.svc == nil {
		return goerr.Wrap(ErrWorkbookUnavailable, "cannot export", goerr.V(WorkbookPathKey, path))
	}

	wb, err := uc.Export(ctx)
	if err != nil {
		return err
	}
	if err := uc.svc.Write(ctx, path, wb); err != nil {
		return goerr.Wrap(err, "failed to write workbook", goerr.V(WorkbookPathKey, path))
	}
	return nil
}
