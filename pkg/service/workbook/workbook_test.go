package workbook_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/service/workbook"
	"github.com/m-mizutani/gt"
	"github.com/xuri/excelize/v2"
)

// buildXLSX writes sheets given as rows of cells, header first
func buildXLSX(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		gt.NoError(t, err).Required()
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			gt.NoError(t, err).Required()
			gt.NoError(t, f.SetSheetRow(name, cell, &row)).Required()
		}
	}
	gt.NoError(t, f.DeleteSheet("Sheet1")).Required()

	path := filepath.Join(t.TempDir(), "entrada.xlsx")
	gt.NoError(t, f.SaveAs(path)).Required()
	return path
}

func criteriaRows(rows ...[]interface{}) [][]interface{} {
	return append([][]interface{}{{"Critério", "Tipo", "Descrição", "Pontuação"}}, rows...)
}

func TestReadBuildsImport(t *testing.T) {
	path := buildXLSX(t, map[string][][]interface{}{
		"Compilado": {
			{"NR", "Objetos Auditáveis"},
			{1, "Base Naval de Aratu"},
			{},
			{2.0, "Centro de Instrução"},
		},
		"Materialidade": criteriaRows(
			[]interface{}{"Vulto", "Quantitativo", "Baixo", 0},
			[]interface{}{"Vulto", "Quantitativo", "Alto", 10.0},
		),
		"Relevância":  criteriaRows([]interface{}{"AEN", "", "Sim", 7}),
		"Criticidade": criteriaRows(),
	})

	ctx := context.Background()
	wb, err := workbook.New().Read(ctx, path)
	gt.NoError(t, err).Required()
	gt.Map(t, wb.Sheets).HasKey("Relevância")
	gt.Array(t, wb.Sheets["Compilado"].Rows).Length(2)

	result, err := model.BuildImport(wb)
	gt.NoError(t, err).Required()
	gt.Array(t, result.Objects).Length(2).Required()
	gt.Value(t, result.Objects[1].NR).Equal(2)

	mat := result.Catalog.Criteria(types.CategoryMaterialidade)
	gt.Array(t, mat).Length(1).Required()
	gt.Value(t, mat[0].Kind).Equal("Quantitativo")
	gt.Value(t, mat[0].Options[1]).Equal(model.Option{Description: "Alto", Score: 10})
}

func TestReadReportsMissingSheetsAndColumns(t *testing.T) {
	path := buildXLSX(t, map[string][][]interface{}{
		"Compilado":     {{"NR", "Objetos Auditáveis"}},
		"Materialidade": criteriaRows(),
		"Criticidade":   {{"Critério", "Tipo", "Descrição"}},
	})

	wb, err := workbook.New().Read(context.Background(), path)
	gt.NoError(t, err).Required()

	err = model.ValidateWorkbook(wb)
	var verr *model.ImportValidationError
	gt.Bool(t, errors.As(err, &verr)).True()
	gt.Array(t, verr.Issues).Length(2)
	gt.Array(t, verr.Issues).Has(model.ImportIssue{Sheet: "Relevância"})
	gt.Array(t, verr.Issues).Has(model.ImportIssue{Sheet: "Criticidade", Column: "Pontuação"})
}

func TestReadMissingFile(t *testing.T) {
	_, err := workbook.New().Read(context.Background(), filepath.Join(t.TempDir(), "nada.xlsx"))
	gt.Error(t, err)
}

func TestWriteThenRead(t *testing.T) {
	ctx := context.Background()
	svc := workbook.New()

	catalog := model.DefaultCatalog()
	obj, err := model.NewAuditObject(1, "Comando do 1º Distrito Naval", catalog)
	gt.NoError(t, err).Required()
	obj.Scores = model.Scores{MaterialidadeWeighted: 4, Total: 4, RiskLabel: "Baixo"}

	path := filepath.Join(t.TempDir(), "saida", "export.xlsx")
	gt.NoError(t, svc.Write(ctx, path, model.BuildExport(catalog, []*model.AuditObject{obj}))).Required()

	f, err := excelize.OpenFile(path)
	gt.NoError(t, err).Required()
	defer func() { _ = f.Close() }()
	gt.Value(t, f.GetSheetList()).Equal([]string{"Compilado", "Materialidade", "Relevância", "Criticidade"})

	wb, err := svc.Read(ctx, path)
	gt.NoError(t, err).Required()
	gt.Value(t, wb.Sheets["Compilado"].Rows[0]).Equal([]string{"1", "Comando do 1º Distrito Naval", "4", "0", "0", "4", "Baixo"})

	result, err := model.BuildImport(wb)
	gt.NoError(t, err).Required()
	gt.Value(t, result.Catalog).Equal(catalog)
}

func TestWriteRejectsEmptyWorkbook(t *testing.T) {
	err := workbook.New().Write(context.Background(), filepath.Join(t.TempDir(), "x.xlsx"), &model.Workbook{})
	gt.Error(t, err)
}
