package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/repository/jsonfile"
	"github.com/m-mizutani/gt"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	return string(data)
}

func TestCriteriaSeedsDefaultsWhenMissing(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := jsonfile.New(dir)

	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, catalog.CriterionCount()).Equal(model.DefaultCatalog().CriterionCount())

	content := readFile(t, repo.CriteriaPath())
	gt.String(t, content).Contains(`"nome": "Relevância"`)
	gt.String(t, content).Contains(`"Recursos Extraorçamentários"`)
	gt.String(t, content).Contains("\n    \"materialidade\": {")
}

func TestCriteriaNormalizesLegacyShapes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultCriteriaFile)
	writeFile(t, path, `{
		"materialidade": ["Vulto Financeiro", {"nome": "Contratos", "opcoes": [{"descricao": "Poucos", "pontuacao": 2.0}]}],
		"relevancia": {"nome": "Relevância", "criterios": [{"nome": "AEN", "opcoes": [{"descricao": "Sim", "pontuacao": "7"}]}]}
	}`)

	repo := jsonfile.New(dir)
	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()

	mat := catalog.Criteria(types.CategoryMaterialidade)
	gt.Array(t, mat).Length(2).Required()
	gt.Value(t, mat[0].Name).Equal("Vulto Financeiro")
	gt.Array(t, mat[0].Options).Length(0)
	gt.Value(t, mat[1].Options[0].Score).Equal(2)

	rel := catalog.Criteria(types.CategoryRelevancia)
	gt.Array(t, rel).Length(1).Required()
	gt.Value(t, rel[0].Options[0].Score).Equal(7)
	gt.Array(t, catalog.Criteria(types.CategoryCriticidade)).Length(0)

	// written back in canonical shape
	var doc map[string]struct {
		Nome      string `json:"nome"`
		Criterios []struct {
			Nome   string `json:"nome"`
			Opcoes []struct {
				Descricao string `json:"descricao"`
				Pontuacao int    `json:"pontuacao"`
			} `json:"opcoes"`
		} `json:"criterios"`
	}
	gt.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &doc)).Required()
	gt.Map(t, doc).HasKey("criticidade")
	gt.Value(t, doc["materialidade"].Nome).Equal("Materialidade")
	gt.Value(t, doc["materialidade"].Criterios[0].Nome).Equal("Vulto Financeiro")
	gt.Value(t, doc["relevancia"].Criterios[0].Opcoes[0].Pontuacao).Equal(7)
}

func TestCriteriaCorruptFileIsLeftUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultCriteriaFile)
	writeFile(t, path, `{not json`)

	repo := jsonfile.New(dir)
	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, catalog.CriterionCount()).Equal(0)
	gt.Value(t, readFile(t, path)).Equal(`{not json`)
}

func TestCriteriaKeepsCategoryWithOddOptionTypes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultCriteriaFile)
	writeFile(t, path, `{
    "materialidade": {"nome": "Materialidade", "criterios": [
        {"nome": "Orçamento", "opcoes": [{"descricao": 5, "pontuacao": 3}, {"descricao": "Alto", "pontuacao": 9}]},
        {"nome": "Valor", "opcoes": [{"descricao": "Sim", "pontuacao": 10}]}
    ]},
    "relevancia": {"nome": "Relevância", "criterios": []},
    "criticidade": {"nome": "Criticidade", "criterios": []}
}`)

	repo := jsonfile.New(dir)
	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()

	criteria := catalog.Criteria(types.CategoryMaterialidade)
	gt.Array(t, criteria).Length(2).Required()
	gt.Value(t, criteria[0].Name).Equal("Orçamento")
	gt.Value(t, criteria[0].Options[0]).Equal(model.Option{Description: "5", Score: 3})
	gt.Value(t, criteria[1].Name).Equal("Valor")

	content := readFile(t, path)
	gt.String(t, content).Contains("Orçamento")
	gt.String(t, content).Contains("Valor")
}

func TestCriteriaUndecodableCategoryIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultCriteriaFile)
	original := `{
    "materialidade": {"nome": "Materialidade", "criterios": [
        {"nome": "Orçamento", "opcoes": {"descricao": "Alto"}},
        {"nome": "Valor", "opcoes": []}
    ]},
    "relevancia": ["Exposição"],
    "criticidade": {"nome": "Criticidade", "criterios": []}
}`
	writeFile(t, path, original)

	repo := jsonfile.New(dir)
	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, catalog.Criteria(types.CategoryMaterialidade)).Length(0)
	gt.Array(t, catalog.Criteria(types.CategoryRelevancia)).Length(1)

	gt.Value(t, readFile(t, path)).Equal(original)
}

func TestCriteriaMigratesLegacyScores(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, jsonfile.DefaultConfigFile), `{
		"pontuacao_criterios": {
			"criticidade": [
				{"Critério": "Tempo sem Auditoria", "Tipo": "Temporal", "opcoes": [
					{"Descrição": "Até 2 anos", "Pontuação": 1},
					{"Descrição": "Acima de 4 anos", "Pontuação": 10.0}
				]}
			]
		}
	}`)

	repo := jsonfile.New(dir)
	catalog, err := repo.Criteria().Load(ctx)
	gt.NoError(t, err).Required()

	crit := catalog.Criteria(types.CategoryCriticidade)
	gt.Array(t, crit).Length(1).Required()
	gt.Value(t, crit[0].Kind).Equal("Temporal")
	gt.Value(t, crit[0].Options[1].Score).Equal(10)
	gt.Array(t, catalog.Criteria(types.CategoryMaterialidade)).Length(0)

	_, err = os.Stat(repo.CriteriaPath())
	gt.NoError(t, err)
}

func TestConfigReadsLegacyKeysAndFallsBack(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, jsonfile.DefaultConfigFile), `{
		"multiplicadores": {"materialidade": 6, "relevancia": 0, "criticidade": "3"},
		"riscos": {"Baixo": 0, "Alto": 90},
		"objetos_auditaveis": [
			{"NR": 3.0, "Objetos Auditáveis": "Base Naval", "materialidade": {"Vulto Financeiro": 5}},
			{"nr": 4, "descricao": "Base Naval"},
			{"nr": 5}
		]
	}`)

	repo := jsonfile.New(dir)

	weights, err := repo.ScoringConfig().LoadWeights(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, weights).Equal(config.Weights{Materialidade: 6, Relevancia: config.DefaultWeightRelevancia, Criticidade: 3})

	tiers, err := repo.ScoringConfig().LoadTiers(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, tiers).Equal(config.Tiers{{Label: "Alto", Threshold: 90}, {Label: "Baixo", Threshold: 0}})

	objs, err := repo.Object().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, objs).Length(1).Required()
	gt.Value(t, objs[0].NR).Equal(3)
	gt.NoError(t, objs[0].ID.Validate())
	sel := objs[0].Selection(types.CategoryMaterialidade, "Vulto Financeiro")
	gt.Bool(t, sel.IsSet()).False()
	_, ok := objs[0].Selections[types.CategoryMaterialidade]["Vulto Financeiro"]
	gt.Bool(t, ok).True()
}

func TestConfigUsesSeededScoringConfig(t *testing.T) {
	ctx := context.Background()
	repo := jsonfile.New(t.TempDir(), jsonfile.WithScoringConfig(config.ScoringConfig{
		Weights: config.Weights{Materialidade: 1, Relevancia: 1, Criticidade: 1},
		Tiers:   config.FiveTiers(),
	}))

	weights, err := repo.ScoringConfig().LoadWeights(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, weights.Materialidade).Equal(1)

	tiers, err := repo.ScoringConfig().LoadTiers(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, tiers).Length(5)
}

func TestConfigWriteKeepsOtherSections(t *testing.T) {
	ctx := context.Background()
	repo := jsonfile.New(t.TempDir())

	obj, err := model.NewAuditObject(1, "Hospital Naval <Marcílio Dias>", model.DefaultCatalog())
	gt.NoError(t, err).Required()
	obj.Scores = model.Scores{Total: 12, RiskLabel: "Baixo"}
	gt.NoError(t, repo.Object().Upsert(ctx, obj)).Required()
	gt.NoError(t, repo.ScoringConfig().SaveTiers(ctx, config.FiveTiers())).Required()

	content := readFile(t, repo.ConfigPath())
	gt.String(t, content).Contains(`"Hospital Naval <Marcílio Dias>"`)
	gt.String(t, content).Contains(`"Muito Alto": 250`)
	gt.String(t, content).Contains(`"tipo_risco": "Baixo"`)
	gt.String(t, content).Contains(`"materialidade_ponderada": 0`)
	gt.String(t, content).Contains(`"multiplicador"`)

	entries, err := os.ReadDir(filepath.Dir(repo.ConfigPath()))
	gt.NoError(t, err).Required()
	for _, e := range entries {
		gt.Bool(t, strings.HasSuffix(e.Name(), ".tmp")).False()
	}
}

func TestSaveFailsWhenDirectoryIsAFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	writeFile(t, blocker, "x")

	repo := jsonfile.New(blocker)
	err := repo.Criteria().Save(ctx, model.DefaultCatalog())
	gt.Error(t, err).Is(model.ErrStorageWrite)
}

func TestConfigUnreadableDocumentIsMovedAsideBeforeWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultConfigFile)
	original := `{
    "objetos_auditaveis": [
        {"descricao": "Obra A", "nr": 1},
        {"descricao": "Obra B", "nr": 2}
    ],
    "multiplicador": {"materialidade": 4, "relevancia": 2, "criticidade": 4},
}`
	writeFile(t, path, original)

	repo := jsonfile.New(dir)
	objs, err := repo.Object().List(ctx)
	gt.NoError(t, err).Required()
	gt.Array(t, objs).Length(0)

	weights := config.Weights{Materialidade: 5, Relevancia: 2, Criticidade: 4}
	gt.NoError(t, repo.ScoringConfig().SaveWeights(ctx, weights)).Required()

	gt.Value(t, readFile(t, path+jsonfile.CorruptSuffix)).Equal(original)
	gt.String(t, readFile(t, path)).Contains(`"materialidade": 5`)

	// a later write replaces the new document without touching the backup
	gt.NoError(t, repo.ScoringConfig().SaveTiers(ctx, config.FiveTiers())).Required()
	gt.Value(t, readFile(t, path+jsonfile.CorruptSuffix)).Equal(original)
}

func TestConfigUnreadableDocumentIsKeptWhenItCannotBeMoved(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, jsonfile.DefaultConfigFile)
	writeFile(t, path, `{broken`)

	repo := jsonfile.New(dir)
	_, err := repo.ScoringConfig().LoadWeights(ctx)
	gt.NoError(t, err).Required()

	// a directory at the backup path makes the rename fail
	gt.NoError(t, os.Mkdir(path+jsonfile.CorruptSuffix, 0o750)).Required()
	gt.NoError(t, os.WriteFile(filepath.Join(path+jsonfile.CorruptSuffix, "x"), []byte("x"), 0o600)).Required()

	err = repo.ScoringConfig().SaveWeights(ctx, config.Weights{Materialidade: 5, Relevancia: 2, Criticidade: 4})
	gt.Error(t, err).Is(model.ErrStorageWrite)
	gt.Value(t, readFile(t, path)).Equal(`{broken`)

	weights, err := repo.ScoringConfig().LoadWeights(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, weights.Materialidade).Equal(5)
}
