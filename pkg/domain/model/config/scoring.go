package config

import (
	"sort"

	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Default category multipliers
const (
	DefaultWeightMaterialidade = 4
	DefaultWeightRelevancia    = 2
	DefaultWeightCriticidade   = 4
)

// Tier presets
const (
	PresetThreeTier = "three-tier"
	PresetFiveTier  = "five-tier"
)

// Weights holds the per-category multipliers
type Weights struct {
	Materialidade int
	Relevancia    int
	Criticidade   int
}

// DefaultWeights returns the multipliers used when none are persisted
func DefaultWeights() Weights {
	return Weights{
		Materialidade: DefaultWeightMaterialidade,
		Relevancia:    DefaultWeightRelevancia,
		Criticidade:   DefaultWeightCriticidade,
	}
}

// For returns the multiplier of a category, 0 for unknown categories
func (w Weights) For(category types.Category) int {
	switch category {
	case types.CategoryMaterialidade:
		return w.Materialidade
	case types.CategoryRelevancia:
		return w.Relevancia
	case types.CategoryCriticidade:
		return w.Criticidade
	default:
		return 0
	}
}

// Validate checks that every multiplier is positive
func (w Weights) Validate() error {
	for _, cat := range types.AllCategories() {
		if v := w.For(cat); v < 1 {
			return goerr.New("weight must be a positive integer",
				goerr.V("category", cat),
				goerr.V("weight", v))
		}
	}
	return nil
}

// WithDefaults replaces every non-positive multiplier with its default
func (w Weights) WithDefaults() Weights {
	d := DefaultWeights()
	if w.Materialidade < 1 {
		w.Materialidade = d.Materialidade
	}
	if w.Relevancia < 1 {
		w.Relevancia = d.Relevancia
	}
	if w.Criticidade < 1 {
		w.Criticidade = d.Criticidade
	}
	return w
}

// Tier maps every total at or above Threshold to Label
type Tier struct {
	Label     string
	Threshold int
}

// Tiers is an ordered set of risk tiers
type Tiers []Tier

// DefaultTiers returns the three-tier set used when none are persisted
func DefaultTiers() Tiers {
	return Tiers{
		{Label: "Alto", Threshold: 80},
		{Label: "Médio", Threshold: 50},
		{Label: "Baixo", Threshold: 0},
	}
}

// FiveTiers returns the five-tier set
func FiveTiers() Tiers {
	return Tiers{
		{Label: "Muito Alto", Threshold: 250},
		{Label: "Alto", Threshold: 200},
		{Label: "Médio", Threshold: 150},
		{Label: "Baixo", Threshold: 100},
		{Label: "Muito Baixo", Threshold: 50},
	}
}

// TierPreset returns a named tier set
func TierPreset(name string) (Tiers, error) {
	switch name {
	case PresetThreeTier:
		return DefaultTiers(), nil
	case PresetFiveTier:
		return FiveTiers(), nil
	default:
		return nil, goerr.New("unknown tier preset", goerr.V("preset", name))
	}
}

// Sorted returns a copy ordered by threshold, highest first
func (t Tiers) Sorted() Tiers {
	out := append(Tiers(nil), t...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold > out[j].Threshold
	})
	return out
}

// Classify returns the label of the first tier, in descending threshold
// order, whose threshold is at most total. Totals below every threshold get
// the lowest tier's label. An empty set classifies everything as "".
func (t Tiers) Classify(total int) string {
	if len(t) == 0 {
		return ""
	}
	sorted := t.Sorted()
	for _, tier := range sorted {
		if total >= tier.Threshold {
			return tier.Label
		}
	}
	return sorted[len(sorted)-1].Label
}

// Clamp walks the tiers in the given order and lowers every threshold that
// is not strictly below its predecessor to predecessor - 1.
func (t Tiers) Clamp() Tiers {
	out := append(Tiers(nil), t...)
	for i := 1; i < len(out); i++ {
		if limit := out[i-1].Threshold - 1; out[i].Threshold > limit {
			out[i].Threshold = limit
		}
	}
	return out
}

// Validate checks labels and strict ordering
func (t Tiers) Validate() error {
	if len(t) == 0 {
		return goerr.New("at least one risk tier is required")
	}
	labels := make(map[string]bool, len(t))
	for i, tier := range t {
		if tier.Label == "" {
			return goerr.New("risk tier label is required", goerr.V("index", i))
		}
		if labels[tier.Label] {
			return goerr.New("duplicate risk tier label", goerr.V("label", tier.Label))
		}
		labels[tier.Label] = true

		if i > 0 && tier.Threshold >= t[i-1].Threshold {
			return goerr.New("risk tier thresholds must be strictly decreasing",
				goerr.V("label", tier.Label),
				goerr.V("threshold", tier.Threshold),
				goerr.V("previous", t[i-1].Threshold))
		}
	}
	return nil
}

// Rank returns the position of a label counted from the lowest tier (0),
// or -1 if the label is not part of the set.
func (t Tiers) Rank(label string) int {
	sorted := t.Sorted()
	for i, tier := range sorted {
		if tier.Label == label {
			return len(sorted) - 1 - i
		}
	}
	return -1
}

// ScoringConfig is the single weight/tier configuration of an installation
type ScoringConfig struct {
	Weights Weights
	Tiers   Tiers
}

// DefaultScoringConfig returns the default weights and three-tier set
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: DefaultWeights(),
		Tiers:   DefaultTiers(),
	}
}
