package workbook

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/ccimar11/riskmap/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"
)

// service implements interfaces.WorkbookService on xlsx files
type service struct{}

var _ interfaces.WorkbookService = &service{}

// New creates an xlsx workbook service
func New() interfaces.WorkbookService {
	return &service{}
}

// Read loads every sheet of an xlsx file. The first row of a sheet is its
// header; rows that are entirely blank are dropped.
func (s *service) Read(ctx context.Context, path string) (*model.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open workbook", goerr.V(model.PathKey, path))
	}
	defer safe.Close(ctx, f)

	wb := &model.Workbook{Sheets: make(map[string]model.Sheet)}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read sheet",
				goerr.V(model.PathKey, path),
				goerr.V("sheet", name))
		}

		var sheet model.Sheet
		for i, row := range rows {
			if i == 0 {
				sheet.Header = trimAll(row)
				continue
			}
			if isBlank(row) {
				continue
			}
			sheet.Rows = append(sheet.Rows, row)
		}
		wb.Sheets[strings.TrimSpace(name)] = sheet
	}

	logging.From(ctx).Debug("Workbook read",
		slog.String("path", path),
		slog.Int("sheets", len(wb.Sheets)))
	return wb, nil
}

// Write saves wb as an xlsx file. Import sheets come first in their usual
// order, other sheets follow by name. Integer cells are stored as numbers.
func (s *service) Write(ctx context.Context, path string, wb *model.Workbook) error {
	if wb == nil || len(wb.Sheets) == 0 {
		return goerr.New("workbook has no sheets", goerr.V(model.PathKey, path))
	}

	f := excelize.NewFile()
	defer safe.Close(ctx, f)

	const defaultSheet = "Sheet1"
	for i, name := range sheetOrder(wb) {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return goerr.Wrap(err, "failed to name sheet", goerr.V("sheet", name))
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return goerr.Wrap(err, "failed to create sheet", goerr.V("sheet", name))
		}

		sheet := wb.Sheets[name]
		if err := writeRow(f, name, 1, sheet.Header); err != nil {
			return err
		}
		for j, row := range sheet.Rows {
			if err := writeRow(f, name, j+2, row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V(model.PathKey, path))
	}
	if err := f.SaveAs(path); err != nil {
		return goerr.Wrap(err, "failed to save workbook", goerr.V(model.PathKey, path))
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return goerr.Wrap(err, "invalid cell position", goerr.V("row", rowNum))
	}

	values := make([]interface{}, len(cells))
	for i, v := range cells {
		if n, err := strconv.Atoi(v); err == nil {
			values[i] = n
		} else {
			values[i] = v
		}
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return goerr.Wrap(err, "failed to write row", goerr.V("sheet", sheet), goerr.V("row", rowNum))
	}
	return nil
}

func sheetOrder(wb *model.Workbook) []string {
	var order []string
	known := make(map[string]bool)
	for _, name := range model.RequiredSheets() {
		known[name] = true
		if _, ok := wb.Sheets[name]; ok {
			order = append(order, name)
		}
	}

	var extra []string
	for name := range wb.Sheets {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
