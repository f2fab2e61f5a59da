package types_test

import (
	"testing"

	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestCategory_Validate(t *testing.T) {
	tests := []struct {
		name     string
		category types.Category
		wantErr  bool
	}{
		{"materialidade", types.CategoryMaterialidade, false},
		{"relevancia", types.CategoryRelevancia, false},
		{"criticidade", types.CategoryCriticidade, false},
		{"empty", "", true},
		{"display name", "Relevância", true},
		{"unknown", "impacto", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Category.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Category
		wantErr bool
	}{
		{"materialidade", types.CategoryMaterialidade, false},
		{"Relevância", types.CategoryRelevancia, false},
		{" CRITICIDADE ", types.CategoryCriticidade, false},
		{"relevância", types.CategoryRelevancia, false},
		{"", "", true},
		{"risco", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := types.ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategory_DisplayName(t *testing.T) {
	gt.Value(t, types.CategoryMaterialidade.DisplayName()).Equal("Materialidade")
	gt.Value(t, types.CategoryRelevancia.SheetName()).Equal("Relevância")
	gt.Value(t, types.Category("x").DisplayName()).Equal("x")
	gt.Array(t, types.AllCategories()).Length(3)
}

func TestObjectID(t *testing.T) {
	id := types.NewObjectID()
	gt.NoError(t, id.Validate())
	gt.Value(t, types.NewObjectID()).NotEqual(id)
	gt.Error(t, types.ObjectID("not-a-uuid").Validate())
	gt.Error(t, types.ObjectID("").Validate())
}
