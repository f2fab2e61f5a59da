package model

import (
	"math"
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Workbook layout shared by import and export
const (
	SheetCompilado = "Compilado"

	ColumnNR          = "NR"
	ColumnObject      = "Objetos Auditáveis"
	ColumnCriterion   = "Critério"
	ColumnKind        = "Tipo"
	ColumnDescription = "Descrição"
	ColumnScore       = "Pontuação"
)

// RequiredSheets returns the sheets an import workbook must contain, in order
func RequiredSheets() []string {
	sheets := []string{SheetCompilado}
	for _, cat := range types.AllCategories() {
		sheets = append(sheets, cat.SheetName())
	}
	return sheets
}

// CompiladoColumns returns the columns required in the Compilado sheet
func CompiladoColumns() []string {
	return []string{ColumnNR, ColumnObject}
}

// CriteriaColumns returns the columns required in every category sheet
func CriteriaColumns() []string {
	return []string{ColumnCriterion, ColumnKind, ColumnDescription, ColumnScore}
}

// Sheet is one table of a workbook: the first row is the header
type Sheet struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of a header, -1 if absent
func (s Sheet) ColumnIndex(name string) int {
	for i, h := range s.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value of a column in a row, "" when absent
func (s Sheet) Cell(row []string, column string) string {
	idx := s.ColumnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Workbook is tabular data keyed by sheet name
type Workbook struct {
	Sheets map[string]Sheet
}

// ValidateWorkbook reports every missing sheet and column at once. It
// returns nil or an *ImportValidationError.
func ValidateWorkbook(wb *Workbook) error {
	if wb == nil {
		wb = &Workbook{}
	}
	result := &ImportValidationError{}

	check := func(sheet string, columns []string) {
		s, ok := wb.Sheets[sheet]
		if !ok {
			result.AddIssue(ImportIssue{Sheet: sheet})
			return
		}
		for _, col := range columns {
			if s.ColumnIndex(col) < 0 {
				result.AddIssue(ImportIssue{Sheet: sheet, Column: col})
			}
		}
	}

	check(SheetCompilado, CompiladoColumns())
	for _, cat := range types.AllCategories() {
		check(cat.SheetName(), CriteriaColumns())
	}

	if result.HasIssues() {
		return result
	}
	return nil
}

// ImportResult is the data built from a valid workbook
type ImportResult struct {
	Catalog Catalog
	Objects []*AuditObject
}

// BuildImport validates the workbook and builds the catalog and the objects.
// Every object starts with the zero-value selection of each criterion.
func BuildImport(wb *Workbook) (*ImportResult, error) {
	if err := ValidateWorkbook(wb); err != nil {
		return nil, err
	}

	catalog := NewCatalog()
	for _, cat := range types.AllCategories() {
		catalog[cat] = buildCriteria(wb.Sheets[cat.SheetName()])
	}

	compilado := wb.Sheets[SheetCompilado]
	seen := make(map[string]bool, len(compilado.Rows))
	objects := make([]*AuditObject, 0, len(compilado.Rows))
	for i, row := range compilado.Rows {
		desc := compilado.Cell(row, ColumnObject)
		if desc == "" {
			continue
		}
		if seen[desc] {
			return nil, goerr.Wrap(ErrDuplicateObject, "duplicate object in workbook",
				goerr.V(DescriptionKey, desc),
				goerr.V("row", i+2))
		}
		seen[desc] = true

		nr, ok := parseNumber(compilado.Cell(row, ColumnNR))
		if !ok {
			nr = i + 1
		}
		obj, err := NewAuditObject(nr, desc, catalog)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}

	return &ImportResult{Catalog: catalog, Objects: objects}, nil
}

// buildCriteria groups option rows by criterion in first-appearance order
func buildCriteria(sheet Sheet) []Criterion {
	var criteria []Criterion
	index := make(map[string]int)

	for _, row := range sheet.Rows {
		name := sheet.Cell(row, ColumnCriterion)
		if name == "" {
			continue
		}
		pos, ok := index[name]
		if !ok {
			pos = len(criteria)
			index[name] = pos
			criteria = append(criteria, Criterion{
				Name:    name,
				Kind:    sheet.Cell(row, ColumnKind),
				Options: []Option{},
			})
		}

		desc := sheet.Cell(row, ColumnDescription)
		if desc == "" {
			continue
		}
		score, _ := parseNumber(sheet.Cell(row, ColumnScore))
		criteria[pos].Options = append(criteria[pos].Options, Option{
			Description: desc,
			Score:       score,
		})
	}

	if criteria == nil {
		return []Criterion{}
	}
	return criteria
}

// parseNumber reads integer or float cells. Blank and NaN cells are not ok.
func parseNumber(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Round(f)), true
}

// Extra columns of an exported Compilado sheet
const (
	ColumnTotal    = "Total"
	ColumnRiskType = "Tipo de Risco"
)

// ExportColumns returns the header of an exported Compilado sheet
func ExportColumns() []string {
	cols := CompiladoColumns()
	for _, cat := range types.AllCategories() {
		cols = append(cols, cat.SheetName())
	}
	return append(cols, ColumnTotal, ColumnRiskType)
}

// BuildExport lays out the catalog and the objects so that the result can
// be imported again. Category columns of Compilado hold weighted values.
func BuildExport(catalog Catalog, objects []*AuditObject) *Workbook {
	compilado := Sheet{Header: ExportColumns()}
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		row := []string{strconv.Itoa(obj.NR), obj.Description}
		for _, cat := range types.AllCategories() {
			row = append(row, strconv.Itoa(obj.Scores.Weighted(cat)))
		}
		row = append(row, strconv.Itoa(obj.Scores.Total), obj.Scores.RiskLabel)
		compilado.Rows = append(compilado.Rows, row)
	}

	wb := &Workbook{Sheets: map[string]Sheet{SheetCompilado: compilado}}
	for _, cat := range types.AllCategories() {
		sheet := Sheet{Header: CriteriaColumns()}
		for _, crit := range catalog.Criteria(cat) {
			if len(crit.Options) == 0 {
				sheet.Rows = append(sheet.Rows, []string{crit.Name, crit.Kind, "", ""})
				continue
			}
			for _, opt := range crit.Options {
				sheet.Rows = append(sheet.Rows,
					[]string{crit.Name, crit.Kind, opt.Description, strconv.Itoa(opt.Score)})
			}
		}
		wb.Sheets[cat.SheetName()] = sheet
	}
	return wb
}
