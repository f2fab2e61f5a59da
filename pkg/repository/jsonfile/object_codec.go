package jsonfile

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
)

// decodeObjects reads the object list. Records without a description and
// repeated descriptions are dropped.
func decodeObjects(ctx context.Context, raw json.RawMessage) []*model.AuditObject {
	if len(raw) == 0 {
		return nil
	}

	logger := logging.From(ctx)

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("Ignoring malformed object list", slog.Any("error", err))
		return nil
	}

	seen := make(map[string]bool, len(records))
	objects := make([]*model.AuditObject, 0, len(records))
	for i, rec := range records {
		obj, ok := decodeObject(rec)
		if !ok {
			logger.Warn("Skipping malformed object record", slog.Int("position", i))
			continue
		}
		if seen[obj.Description] {
			logger.Warn("Skipping duplicate object record",
				slog.String("description", obj.Description))
			continue
		}
		seen[obj.Description] = true
		objects = append(objects, obj)
	}
	return objects
}

func decodeObject(raw json.RawMessage) (*model.AuditObject, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}

	desc := stringField(fields, "descricao", model.ColumnObject)
	if desc == "" {
		return nil, false
	}

	obj := &model.AuditObject{
		ID:          types.ObjectID(stringField(fields, "id")),
		Description: desc,
		Selections:  make(map[types.Category]map[string]model.Selection, 3),
	}
	if obj.ID.Validate() != nil {
		obj.ID = types.NewObjectID()
	}

	for _, key := range []string{"nr", model.ColumnNR} {
		if v, ok := fields[key]; ok {
			var nr flexInt
			_ = json.Unmarshal(v, &nr)
			obj.NR = int(nr)
			break
		}
	}

	var selections map[string]map[string]selectionDocument
	if v, ok := fields["selecoes"]; ok {
		_ = json.Unmarshal(v, &selections)
	}
	for _, cat := range types.AllCategories() {
		sels := make(map[string]model.Selection)
		if docs, ok := selections[string(cat)]; ok {
			for name, sel := range docs {
				sels[name] = model.Selection{Description: sel.Description, Score: sel.Score}
			}
		} else if v, ok := fields[string(cat)]; ok {
			// Older records keep one value per criterion under the category
			// key with no option attached; keep the criteria, unset.
			var values map[string]json.RawMessage
			if json.Unmarshal(v, &values) == nil {
				for name := range values {
					sels[name] = model.Selection{}
				}
			}
		}
		obj.Selections[cat] = sels
	}

	if v, ok := fields["valores_calculados"]; ok {
		var computed computedDocument
		if json.Unmarshal(v, &computed) == nil {
			obj.Scores = model.Scores{
				Materialidade:         int(computed.Materialidade),
				Relevancia:            int(computed.Relevancia),
				Criticidade:           int(computed.Criticidade),
				MaterialidadeWeighted: int(computed.MaterialidadeWeighted),
				RelevanciaWeighted:    int(computed.RelevanciaWeighted),
				CriticidadeWeighted:   int(computed.CriticidadeWeighted),
				Total:                 int(computed.Total),
				RiskLabel:             computed.RiskLabel,
			}
		}
	}

	return obj, true
}

func stringField(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if json.Unmarshal(v, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func encodeObject(obj *model.AuditObject) objectDocument {
	doc := objectDocument{
		ID:          obj.ID.String(),
		NR:          obj.NR,
		Description: obj.Description,
		Selections:  make(map[string]map[string]selectionDocument, len(obj.Selections)),
		Computed: computedDocument{
			Materialidade:         flexInt(obj.Scores.Materialidade),
			Relevancia:            flexInt(obj.Scores.Relevancia),
			Criticidade:           flexInt(obj.Scores.Criticidade),
			MaterialidadeWeighted: flexInt(obj.Scores.MaterialidadeWeighted),
			RelevanciaWeighted:    flexInt(obj.Scores.RelevanciaWeighted),
			CriticidadeWeighted:   flexInt(obj.Scores.CriticidadeWeighted),
			Total:                 flexInt(obj.Scores.Total),
			RiskLabel:             obj.Scores.RiskLabel,
		},
	}
	for _, cat := range types.AllCategories() {
		sels := make(map[string]selectionDocument, len(obj.Selections[cat]))
		for name, sel := range obj.Selections[cat] {
			sels[name] = selectionDocument{Description: sel.Description, Score: sel.Score}
		}
		doc.Selections[string(cat)] = sels
	}
	return doc
}
