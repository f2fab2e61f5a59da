package http

import (
	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
)

type optionJSON struct {
	Description string `json:"descricao"`
	Score       int    `json:"pontuacao"`
}

type criterionJSON struct {
	Name    string       `json:"nome"`
	Kind    string       `json:"tipo,omitempty"`
	Options []optionJSON `json:"opcoes"`
}

func toCriterionJSON(c model.Criterion) criterionJSON {
	out := criterionJSON{Name: c.Name, Kind: c.Kind, Options: make([]optionJSON, 0, len(c.Options))}
	for _, opt := range c.Options {
		out.Options = append(out.Options, optionJSON{Description: opt.Description, Score: opt.Score})
	}
	return out
}

func toCriteriaJSON(criteria []model.Criterion) []criterionJSON {
	out := make([]criterionJSON, 0, len(criteria))
	for _, c := range criteria {
		out = append(out, toCriterionJSON(c))
	}
	return out
}

func (c criterionJSON) toModel() model.Criterion {
	out := model.Criterion{Name: c.Name, Kind: c.Kind, Options: make([]model.Option, 0, len(c.Options))}
	for _, opt := range c.Options {
		out.Options = append(out.Options, model.Option{Description: opt.Description, Score: opt.Score})
	}
	return out
}

type weightsJSON struct {
	Materialidade int `json:"materialidade"`
	Relevancia    int `json:"relevancia"`
	Criticidade   int `json:"criticidade"`
}

func toWeightsJSON(w config.Weights) weightsJSON {
	return weightsJSON{Materialidade: w.Materialidade, Relevancia: w.Relevancia, Criticidade: w.Criticidade}
}

func (w weightsJSON) toModel() config.Weights {
	return config.Weights{Materialidade: w.Materialidade, Relevancia: w.Relevancia, Criticidade: w.Criticidade}
}

type tierJSON struct {
	Label     string `json:"label"`
	Threshold int    `json:"threshold"`
}

func toTiersJSON(tiers config.Tiers) []tierJSON {
	out := make([]tierJSON, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierJSON{Label: t.Label, Threshold: t.Threshold})
	}
	return out
}

func fromTiersJSON(tiers []tierJSON) config.Tiers {
	out := make(config.Tiers, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, config.Tier{Label: t.Label, Threshold: t.Threshold})
	}
	return out
}

type scoresJSON struct {
	Materialidade         int    `json:"materialidade"`
	Relevancia            int    `json:"relevancia"`
	Criticidade           int    `json:"criticidade"`
	MaterialidadeWeighted int    `json:"materialidade_ponderada"`
	RelevanciaWeighted    int    `json:"relevancia_ponderada"`
	CriticidadeWeighted   int    `json:"criticidade_ponderada"`
	Total                 int    `json:"total"`
	RiskLabel             string `json:"tipo_risco"`
}

type objectJSON struct {
	ID          string                                   `json:"id"`
	NR          int                                      `json:"nr"`
	Description string                                   `json:"descricao"`
	Selections  map[types.Category]map[string]optionJSON `json:"selecoes"`
	Scores      scoresJSON                               `json:"valores_calculados"`
}

func toObjectJSON(obj *model.AuditObject) objectJSON {
	out := objectJSON{
		ID:          obj.ID.String(),
		NR:          obj.NR,
		Description: obj.Description,
		Selections:  make(map[types.Category]map[string]optionJSON, len(obj.Selections)),
		Scores: scoresJSON{
			Materialidade:         obj.Scores.Materialidade,
			Relevancia:            obj.Scores.Relevancia,
			Criticidade:           obj.Scores.Criticidade,
			MaterialidadeWeighted: obj.Scores.MaterialidadeWeighted,
			RelevanciaWeighted:    obj.Scores.RelevanciaWeighted,
			CriticidadeWeighted:   obj.Scores.CriticidadeWeighted,
			Total:                 obj.Scores.Total,
			RiskLabel:             obj.Scores.RiskLabel,
		},
	}
	for _, cat := range types.AllCategories() {
		sels := make(map[string]optionJSON, len(obj.Selections[cat]))
		for name, sel := range obj.Selections[cat] {
			sels[name] = optionJSON{Description: sel.Description, Score: sel.Score}
		}
		out.Selections[cat] = sels
	}
	return out
}

func toObjectsJSON(objs []*model.AuditObject) []objectJSON {
	out := make([]objectJSON, 0, len(objs))
	for _, obj := range objs {
		out = append(out, toObjectJSON(obj))
	}
	return out
}
