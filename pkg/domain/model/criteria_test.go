package model_test

import (
	"testing"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestOption_Validate(t *testing.T) {
	tests := []struct {
		name    string
		option  model.Option
		wantErr bool
	}{
		{"minimum", model.Option{Description: "Não", Score: 0}, false},
		{"maximum", model.Option{Description: "Sim", Score: 10}, false},
		{"negative", model.Option{Description: "x", Score: -1}, true},
		{"too high", model.Option{Description: "x", Score: 11}, true},
		{"no description", model.Option{Score: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.option.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Option.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				gt.Error(t, err).Is(model.ErrInvalidOption)
			}
		})
	}
}

func TestCriterion_Validate(t *testing.T) {
	gt.NoError(t, model.Criterion{Name: "Novo", Options: []model.Option{}}.Validate())

	err := model.Criterion{}.Validate()
	gt.Error(t, err).Is(model.ErrInvalidCriterion)

	err = model.Criterion{Name: "Dup", Options: []model.Option{
		{Description: "Sim", Score: 1},
		{Description: "Sim", Score: 2},
	}}.Validate()
	gt.Error(t, err).Is(model.ErrInvalidOption)
}

func TestCatalog(t *testing.T) {
	catalog := model.DefaultCatalog()
	gt.NoError(t, catalog.Validate())
	gt.Value(t, catalog.CriterionCount()).Equal(9)

	crit, ok := catalog.FindCriterion(types.CategoryRelevancia, "Vinculação ao Portfólio Estratégico")
	gt.Bool(t, ok).True()
	gt.Array(t, crit.Options).Length(2)

	_, ok = catalog.FindCriterion(types.CategoryRelevancia, "Tempo sem Auditoria")
	gt.Bool(t, ok).False()

	gt.Array(t, catalog.Criteria("desconhecida")).Length(0)
	gt.Array(t, model.Catalog(nil).Criteria(types.CategoryCriticidade)).Length(0)

	clone := catalog.Clone()
	clone[types.CategoryMaterialidade][0].Options[0].Score = 7
	gt.Value(t, catalog[types.CategoryMaterialidade][0].Options[0].Score).Equal(1)

	catalog[types.CategoryCriticidade] = append(catalog[types.CategoryCriticidade],
		model.Criterion{Name: "Tempo sem Auditoria"})
	gt.Error(t, catalog.Validate()).Is(model.ErrInvalidCriterion)
}

func TestCriterion_ZeroSelection(t *testing.T) {
	c := model.Criterion{Name: "x", Options: []model.Option{
		{Description: "um", Score: 1},
		{Description: "zero", Score: 0},
	}}
	gt.Value(t, c.ZeroSelection()).Equal(model.Selection{Description: "zero"})
	gt.Bool(t, model.Criterion{Name: "y"}.ZeroSelection().IsSet()).False()
}
