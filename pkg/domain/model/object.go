package model

import (
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Selection is the option currently chosen for one criterion of an object.
// An empty Description means the selection is unset.
type Selection struct {
	Description string
	Score       int
}

// IsSet returns true if an option has been chosen
func (s Selection) IsSet() bool {
	return s.Description != ""
}

// Scores holds the derived values of an object. They are recomputed from
// the selections, the catalog and the scoring config, and persisted so a
// listing does not need to recompute.
type Scores struct {
	Materialidade         int
	Relevancia            int
	Criticidade           int
	MaterialidadeWeighted int
	RelevanciaWeighted    int
	CriticidadeWeighted   int
	Total                 int
	RiskLabel             string
}

// Raw returns the unweighted value of a category
func (s Scores) Raw(category types.Category) int {
	switch category {
	case types.CategoryMaterialidade:
		return s.Materialidade
	case types.CategoryRelevancia:
		return s.Relevancia
	case types.CategoryCriticidade:
		return s.Criticidade
	default:
		return 0
	}
}

// Weighted returns the weighted value of a category
func (s Scores) Weighted(category types.Category) int {
	switch category {
	case types.CategoryMaterialidade:
		return s.MaterialidadeWeighted
	case types.CategoryRelevancia:
		return s.RelevanciaWeighted
	case types.CategoryCriticidade:
		return s.CriticidadeWeighted
	default:
		return 0
	}
}

func (s *Scores) set(category types.Category, raw, weighted int) {
	switch category {
	case types.CategoryMaterialidade:
		s.Materialidade, s.MaterialidadeWeighted = raw, weighted
	case types.CategoryRelevancia:
		s.Relevancia, s.RelevanciaWeighted = raw, weighted
	case types.CategoryCriticidade:
		s.Criticidade, s.CriticidadeWeighted = raw, weighted
	}
}

// AuditObject is an entity being risk-scored
type AuditObject struct {
	ID          types.ObjectID
	NR          int
	Description string
	// Selections maps category -> criterion name -> chosen option
	Selections map[types.Category]map[string]Selection
	Scores     Scores
}

// NewAuditObject creates an object whose selections start at the zero-value
// option of every criterion in the catalog
func NewAuditObject(nr int, description string, catalog Catalog) (*AuditObject, error) {
	if description == "" {
		return nil, goerr.New("auditable object description is required", goerr.V("nr", nr))
	}

	obj := &AuditObject{
		ID:          types.NewObjectID(),
		NR:          nr,
		Description: description,
		Selections:  make(map[types.Category]map[string]Selection, 3),
	}
	for _, cat := range types.AllCategories() {
		sel := make(map[string]Selection)
		for _, crit := range catalog.Criteria(cat) {
			sel[crit.Name] = crit.ZeroSelection()
		}
		obj.Selections[cat] = sel
	}
	return obj, nil
}

// Selection returns the selection of a criterion, unset if absent
func (o *AuditObject) Selection(category types.Category, criterion string) Selection {
	if o.Selections == nil {
		return Selection{}
	}
	return o.Selections[category][criterion]
}

// SetSelection stores the selection of a criterion
func (o *AuditObject) SetSelection(category types.Category, criterion string, sel Selection) {
	if o.Selections == nil {
		o.Selections = make(map[types.Category]map[string]Selection, 3)
	}
	if o.Selections[category] == nil {
		o.Selections[category] = make(map[string]Selection)
	}
	o.Selections[category][criterion] = sel
}

// Clone returns a deep copy of the object
func (o *AuditObject) Clone() *AuditObject {
	if o == nil {
		return nil
	}
	out := *o
	out.Selections = make(map[types.Category]map[string]Selection, len(o.Selections))
	for cat, sels := range o.Selections {
		copied := make(map[string]Selection, len(sels))
		for name, sel := range sels {
			copied[name] = sel
		}
		out.Selections[cat] = copied
	}
	return &out
}
