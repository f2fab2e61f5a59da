package model

import (
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Option scores accepted when an option is edited. Stored values are not capped.
const (
	MinOptionScore = 0
	MaxOptionScore = 10
)

// Option is one answer choice of a Criterion
type Option struct {
	Description string
	Score       int
}

// Validate checks if the Option can be saved through an edit
func (o Option) Validate() error {
	if o.Description == "" {
		return goerr.Wrap(ErrInvalidOption, "option description is required")
	}
	if o.Score < MinOptionScore || o.Score > MaxOptionScore {
		return goerr.Wrap(ErrInvalidOption, "option score out of range",
			goerr.V(OptionKey, o.Description),
			goerr.V("score", o.Score))
	}
	return nil
}

// Criterion is a named scoring question within a category
type Criterion struct {
	Name string
	// Kind is the free-form "Tipo" column of imported workbooks
	Kind    string
	Options []Option
}

// Validate checks the criterion name and every option
func (c Criterion) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(ErrInvalidCriterion, "criterion name is required")
	}
	seen := make(map[string]bool, len(c.Options))
	for _, opt := range c.Options {
		if err := opt.Validate(); err != nil {
			return goerr.Wrap(err, "invalid option", goerr.V(CriterionKey, c.Name))
		}
		if seen[opt.Description] {
			return goerr.Wrap(ErrInvalidOption, "duplicate option description",
				goerr.V(CriterionKey, c.Name),
				goerr.V(OptionKey, opt.Description))
		}
		seen[opt.Description] = true
	}
	return nil
}

// FindOption returns the option with the given description
func (c Criterion) FindOption(description string) (Option, bool) {
	for _, opt := range c.Options {
		if opt.Description == description {
			return opt, true
		}
	}
	return Option{}, false
}

// ZeroSelection returns the selection a new object starts with: the option
// scored 0 if the criterion has one, an unset selection otherwise.
func (c Criterion) ZeroSelection() Selection {
	for _, opt := range c.Options {
		if opt.Score == 0 {
			return Selection{Description: opt.Description, Score: 0}
		}
	}
	return Selection{}
}

func (c Criterion) clone() Criterion {
	out := c
	out.Options = append([]Option(nil), c.Options...)
	return out
}

// Catalog holds the criteria of every category in display order
type Catalog map[types.Category][]Criterion

// NewCatalog returns an empty catalog with every category present
func NewCatalog() Catalog {
	c := make(Catalog, 3)
	for _, cat := range types.AllCategories() {
		c[cat] = []Criterion{}
	}
	return c
}

// Criteria returns the criteria of a category, empty for unknown categories
func (c Catalog) Criteria(category types.Category) []Criterion {
	if c == nil {
		return []Criterion{}
	}
	criteria, ok := c[category]
	if !ok {
		return []Criterion{}
	}
	return criteria
}

// FindCriterion returns the criterion with the given name in a category
func (c Catalog) FindCriterion(category types.Category, name string) (Criterion, bool) {
	for _, crit := range c.Criteria(category) {
		if crit.Name == name {
			return crit, true
		}
	}
	return Criterion{}, false
}

// Clone returns a deep copy of the catalog
func (c Catalog) Clone() Catalog {
	out := NewCatalog()
	for cat, criteria := range c {
		cloned := make([]Criterion, len(criteria))
		for i, crit := range criteria {
			cloned[i] = crit.clone()
		}
		out[cat] = cloned
	}
	return out
}

// Validate checks every category and the name uniqueness of its criteria
func (c Catalog) Validate() error {
	for cat, criteria := range c {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidCategory, err.Error(), goerr.V(CategoryKey, cat))
		}
		names := make(map[string]bool, len(criteria))
		for _, crit := range criteria {
			if err := crit.Validate(); err != nil {
				return goerr.Wrap(err, "invalid criterion", goerr.V(CategoryKey, cat))
			}
			if names[crit.Name] {
				return goerr.Wrap(ErrInvalidCriterion, "duplicate criterion name",
					goerr.V(CategoryKey, cat),
					goerr.V(CriterionKey, crit.Name))
			}
			names[crit.Name] = true
		}
	}
	return nil
}

// CriterionCount returns the number of criteria across all categories
func (c Catalog) CriterionCount() int {
	n := 0
	for _, criteria := range c {
		n += len(criteria)
	}
	return n
}
