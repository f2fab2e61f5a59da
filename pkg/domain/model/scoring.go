package model

import (
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
)

// PontuacaoFor returns the score of the first option in the category whose
// description matches. A missing match is 0: options get renamed and removed.
func PontuacaoFor(catalog Catalog, category types.Category, description string) int {
	if description == "" {
		return 0
	}
	for _, crit := range catalog.Criteria(category) {
		if opt, ok := crit.FindOption(description); ok {
			return opt.Score
		}
	}
	return 0
}

// ResolveSelection returns the current catalog score of a selection, 0 when
// the selection is unset or no longer points at an existing option
func ResolveSelection(catalog Catalog, category types.Category, criterion string, sel Selection) int {
	if !sel.IsSet() {
		return 0
	}
	crit, ok := catalog.FindCriterion(category, criterion)
	if !ok {
		return 0
	}
	opt, ok := crit.FindOption(sel.Description)
	if !ok {
		return 0
	}
	return opt.Score
}

// Recompute returns a copy of obj with every selection score refreshed from
// the catalog and the derived scores filled in. obj is not modified.
func Recompute(obj *AuditObject, catalog Catalog, weights config.Weights, tiers config.Tiers) *AuditObject {
	out := obj.Clone()
	if out == nil {
		return nil
	}

	var scores Scores
	total := 0
	for _, cat := range types.AllCategories() {
		raw := 0
		for name, sel := range out.Selections[cat] {
			value := ResolveSelection(catalog, cat, name, sel)
			sel.Score = value
			out.Selections[cat][name] = sel
			raw += value
		}
		weighted := raw * weights.For(cat)
		scores.set(cat, raw, weighted)
		total += weighted
	}
	scores.Total = total
	scores.RiskLabel = tiers.Classify(total)
	out.Scores = scores

	return out
}

// RecomputeAll applies Recompute to every object and returns the new slice
func RecomputeAll(objs []*AuditObject, catalog Catalog, weights config.Weights, tiers config.Tiers) []*AuditObject {
	out := make([]*AuditObject, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		out = append(out, Recompute(obj, catalog, weights, tiers))
	}
	return out
}
