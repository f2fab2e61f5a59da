package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Category is one of the three independent scoring dimensions
type Category string

const (
	CategoryMaterialidade Category = "materialidade"
	CategoryRelevancia    Category = "relevancia"
	CategoryCriticidade   Category = "criticidade"
)

// AllCategories returns the categories in their canonical order
func AllCategories() []Category {
	return []Category{CategoryMaterialidade, CategoryRelevancia, CategoryCriticidade}
}

// Validate checks if the Category is one of the known categories
func (c Category) Validate() error {
	switch c {
	case CategoryMaterialidade, CategoryRelevancia, CategoryCriticidade:
		return nil
	case "":
		return goerr.New("category cannot be empty")
	default:
		return goerr.New("unknown category", goerr.V("category", c))
	}
}

// ParseCategory accepts the category key or its display name, ignoring case
func ParseCategory(s string) (Category, error) {
	v := strings.TrimSpace(s)
	for _, cat := range AllCategories() {
		if strings.EqualFold(v, string(cat)) || strings.EqualFold(v, cat.DisplayName()) {
			return cat, nil
		}
	}
	return "", goerr.New("unknown category", goerr.V("category", s))
}

// DisplayName returns the human readable name stored in the criteria document
func (c Category) DisplayName() string {
	switch c {
	case CategoryMaterialidade:
		return "Materialidade"
	case CategoryRelevancia:
		return "Relevância"
	case CategoryCriticidade:
		return "Criticidade"
	default:
		return string(c)
	}
}

// SheetName returns the workbook sheet holding the options of this category
func (c Category) SheetName() string {
	return c.DisplayName()
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}
