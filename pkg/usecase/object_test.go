package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/repository/jsonfile"
	"github.com/ccimar11/riskmap/pkg/repository/memory"
	"github.com/ccimar11/riskmap/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestObjectUseCase_Add(t *testing.T) {
	t.Run("assigns numbers and zero selections", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		first, err := uc.Object.Add(ctx, 5, "Arsenal")
		gt.NoError(t, err).Required()
		gt.Value(t, first.NR).Equal(5)

		second, err := uc.Object.Add(ctx, 0, "Depósito")
		gt.NoError(t, err).Required()
		gt.Value(t, second.NR).Equal(6)
		gt.NoError(t, second.ID.Validate())

		sel := second.Selection(types.CategoryRelevancia, "Vinculação ao Portfólio Estratégico")
		gt.Value(t, sel.Description).Equal("Não")
		gt.Value(t, second.Scores.Total).Equal(0)
		gt.Value(t, second.Scores.RiskLabel).Equal("Baixo")

		objs, err := uc.Object.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, objs).Length(2)
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := context.Background()

		_, err := uc.Object.Add(ctx, 1, "Arsenal")
		gt.NoError(t, err).Required()
		_, err = uc.Object.Add(ctx, 2, "Arsenal")
		gt.Error(t, err).Is(model.ErrDuplicateObject)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Object.Add(context.Background(), 1, "")
		gt.Error(t, err)
	})
}

func TestObjectUseCase_SelectAndClear(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.Object.Add(ctx, 1, "Arsenal")
	gt.NoError(t, err).Required()

	obj, err := uc.Object.Select(ctx, "Arsenal", types.CategoryMaterialidade, "Vulto Financeiro", "De 10% a 20%")
	gt.NoError(t, err).Required()
	gt.Value(t, obj.Scores.Materialidade).Equal(5)
	gt.Value(t, obj.Scores.MaterialidadeWeighted).Equal(20)
	gt.Value(t, obj.Scores.Total).Equal(20)
	gt.Value(t, obj.ID).Equal(created.ID)

	got, err := uc.Object.GetByID(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Scores.Total).Equal(20)

	obj, err = uc.Object.ClearSelection(ctx, "Arsenal", types.CategoryMaterialidade, "Vulto Financeiro")
	gt.NoError(t, err).Required()
	gt.Bool(t, obj.Selection(types.CategoryMaterialidade, "Vulto Financeiro").IsSet()).False()
	gt.Value(t, obj.Scores.Total).Equal(0)

	_, err = uc.Object.Select(ctx, "Arsenal", types.CategoryMaterialidade, "Vulto Financeiro", "Enorme")
	gt.Error(t, err).Is(model.ErrNotFound)
	_, err = uc.Object.Select(ctx, "Arsenal", types.CategoryMaterialidade, "Inexistente", "Sim")
	gt.Error(t, err).Is(model.ErrNotFound)
	_, err = uc.Object.Select(ctx, "Outro", types.CategoryMaterialidade, "Vulto Financeiro", "Até 10%")
	gt.Error(t, err).Is(model.ErrNotFound)
	_, err = uc.Object.Select(ctx, "Arsenal", "impacto", "Vulto Financeiro", "Até 10%")
	gt.Error(t, err).Is(model.ErrInvalidCategory)
	_, err = uc.Object.GetByID(ctx, types.NewObjectID())
	gt.Error(t, err).Is(model.ErrNotFound)
}

func TestObjectUseCase_Upsert(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	created, err := uc.Object.Add(ctx, 1, "Arsenal")
	gt.NoError(t, err).Required()

	replacement := &model.AuditObject{NR: 9, Description: "Arsenal"}
	replacement.SetSelection(types.CategoryCriticidade, "Tempo sem Auditoria", model.Selection{Description: "Acima de 4 anos"})

	stored, err := uc.Object.Upsert(ctx, replacement)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.ID).Equal(created.ID)
	gt.Value(t, stored.NR).Equal(9)
	gt.Value(t, stored.Scores.CriticidadeWeighted).Equal(40)

	fresh, err := uc.Object.Upsert(ctx, &model.AuditObject{Description: "Novo"})
	gt.NoError(t, err).Required()
	gt.NoError(t, fresh.ID.Validate())

	_, err = uc.Object.Upsert(ctx, &model.AuditObject{})
	gt.Error(t, err)
}

func TestObjectUseCase_UpsertReplacesUnusableID(t *testing.T) {
	uc := usecase.New(memory.New())
	ctx := context.Background()

	arsenal, err := uc.Object.Add(ctx, 1, "Arsenal")
	gt.NoError(t, err).Required()

	t.Run("malformed ID on a new object", func(t *testing.T) {
		stored, err := uc.Object.Upsert(ctx, &model.AuditObject{ID: "bad", Description: "Base Naval"})
		gt.NoError(t, err).Required()
		gt.NoError(t, stored.ID.Validate())
		gt.Value(t, stored.ID).NotEqual(types.ObjectID("bad"))
	})

	t.Run("malformed ID on an existing object", func(t *testing.T) {
		stored, err := uc.Object.Upsert(ctx, &model.AuditObject{ID: "bad", Description: "Arsenal"})
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ID).Equal(arsenal.ID)
	})

	t.Run("ID held by another object", func(t *testing.T) {
		stored, err := uc.Object.Upsert(ctx, &model.AuditObject{ID: arsenal.ID, Description: "Depósito"})
		gt.NoError(t, err).Required()
		gt.NoError(t, stored.ID.Validate())
		gt.Value(t, stored.ID).NotEqual(arsenal.ID)

		got, err := uc.Object.Get(ctx, "Arsenal")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(arsenal.ID)
	})

	t.Run("unused UUID is kept", func(t *testing.T) {
		id := types.NewObjectID()
		stored, err := uc.Object.Upsert(ctx, &model.AuditObject{ID: id, Description: "Hospital Naval"})
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ID).Equal(id)
	})
}

func TestObjectUseCase_WriteFailureKeepsWorkingState(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := jsonfile.New(dir)
	uc := usecase.New(repo)

	_, err := uc.Criteria.Catalog(ctx)
	gt.NoError(t, err).Required()

	// make the data directory unwritable by replacing it with a file
	gt.NoError(t, os.RemoveAll(dir)).Required()
	gt.NoError(t, os.WriteFile(dir, []byte("x"), 0o600)).Required()
	t.Cleanup(func() { _ = os.Remove(dir) })

	err = uc.Criteria.AddCriterion(ctx, types.CategoryRelevancia, model.Criterion{Name: "Novo"})
	gt.Error(t, err).Is(model.ErrStorageWrite)

	criteria, err := uc.Criteria.ListCriteria(ctx, types.CategoryRelevancia)
	gt.NoError(t, err).Required()
	gt.Array(t, criteria).Length(4)

	_, err = os.Stat(filepath.Join(dir, jsonfile.DefaultCriteriaFile))
	gt.Error(t, err)
}
