package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type optionDocument struct {
	Description flexString `json:"descricao"`
	Score       flexInt    `json:"pontuacao"`
}

type criterionDocument struct {
	Name    flexString       `json:"nome"`
	Kind    flexString       `json:"tipo,omitempty"`
	Options []optionDocument `json:"opcoes"`
}

type categoryDocument struct {
	Name     string              `json:"nome"`
	Criteria []criterionDocument `json:"criterios"`
}

// catalogDocument fixes the key order of the written file
type catalogDocument struct {
	Materialidade categoryDocument `json:"materialidade"`
	Relevancia    categoryDocument `json:"relevancia"`
	Criticidade   categoryDocument `json:"criticidade"`
}

// criterionEntry is either a bare criterion name (older files) or a
// structured criterion
type criterionEntry struct {
	legacyName *string
	structured *criterionDocument
}

func (e *criterionEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		e.legacyName = &name
		return nil
	}

	var doc criterionDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return err
	}
	e.structured = &doc
	return nil
}

// criterion converts the entry; legacy is true when the entry was a bare name
func (e criterionEntry) criterion() (crit model.Criterion, legacy bool) {
	if e.legacyName != nil {
		return model.Criterion{Name: *e.legacyName, Options: []model.Option{}}, true
	}
	if e.structured == nil {
		return model.Criterion{Options: []model.Option{}}, true
	}

	crit = model.Criterion{
		Name:    string(e.structured.Name),
		Kind:    string(e.structured.Kind),
		Options: make([]model.Option, 0, len(e.structured.Options)),
	}
	for _, opt := range e.structured.Options {
		crit.Options = append(crit.Options, model.Option{
			Description: string(opt.Description),
			Score:       int(opt.Score),
		})
	}
	return crit, e.structured.Options == nil
}

// categoryEntry is either the canonical {nome, criterios} object or a bare
// list of criteria
type categoryEntry struct {
	criteria []criterionEntry
	legacy   bool
}

func (e *categoryEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return goerr.Wrap(model.ErrSchemaMismatch, "empty category entry")
	}

	switch trimmed[0] {
	case '{':
		var doc struct {
			Criteria []criterionEntry `json:"criterios"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return err
		}
		e.criteria = doc.Criteria
		e.legacy = doc.Criteria == nil
		return nil

	case '[':
		if err := json.Unmarshal(trimmed, &e.criteria); err != nil {
			return err
		}
		e.legacy = true
		return nil

	default:
		return goerr.Wrap(model.ErrSchemaMismatch, "category entry is neither an object nor a list")
	}
}

// decodeCatalog reads a criteria document. normalized is true when the data
// was not in canonical shape and should be written back. damaged is true
// when a category could not be decoded and was left empty; the document
// must then not be rewritten.
func decodeCatalog(ctx context.Context, data []byte) (catalog model.Catalog, normalized, damaged bool, err error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, false, false, goerr.Wrap(errors.Join(model.ErrStorageRead, err), "failed to parse criteria document")
	}

	catalog = model.NewCatalog()
	for _, cat := range types.AllCategories() {
		raw, ok := top[string(cat)]
		if !ok {
			normalized = true
			continue
		}

		var entry categoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			logging.From(ctx).Warn("Skipping malformed criteria category",
				slog.String("category", string(cat)),
				slog.Any("error", goerr.Wrap(errors.Join(model.ErrSchemaMismatch, err), "decode category")))
			damaged = true
			continue
		}
		if entry.legacy {
			normalized = true
		}

		criteria := make([]model.Criterion, 0, len(entry.criteria))
		for _, e := range entry.criteria {
			crit, legacy := e.criterion()
			if legacy {
				normalized = true
			}
			if crit.Name == "" {
				normalized = true
				continue
			}
			criteria = append(criteria, crit)
		}
		catalog[cat] = criteria
	}

	return catalog, normalized, damaged, nil
}

func toCategoryDocument(catalog model.Catalog, cat types.Category) categoryDocument {
	criteria := catalog.Criteria(cat)
	doc := categoryDocument{
		Name:     cat.DisplayName(),
		Criteria: make([]criterionDocument, 0, len(criteria)),
	}
	for _, crit := range criteria {
		c := criterionDocument{
			Name:    flexString(crit.Name),
			Kind:    flexString(crit.Kind),
			Options: make([]optionDocument, 0, len(crit.Options)),
		}
		for _, opt := range crit.Options {
			c.Options = append(c.Options, optionDocument{
				Description: flexString(opt.Description),
				Score:       flexInt(opt.Score),
			})
		}
		doc.Criteria = append(doc.Criteria, c)
	}
	return doc
}

func encodeCatalog(catalog model.Catalog) catalogDocument {
	return catalogDocument{
		Materialidade: toCategoryDocument(catalog, types.CategoryMaterialidade),
		Relevancia:    toCategoryDocument(catalog, types.CategoryRelevancia),
		Criticidade:   toCategoryDocument(catalog, types.CategoryCriticidade),
	}
}

type criteriaRepository struct {
	mu    sync.Mutex
	path  string
	store *configStore
}

func newCriteriaRepository(path string, store *configStore) *criteriaRepository {
	return &criteriaRepository{path: path, store: store}
}

// Load reads the criteria document. A missing file is seeded from the legacy
// scores embedded in the config document, or from the default catalog, and
// written. A file that cannot be parsed yields an empty catalog and is left
// untouched.
func (r *criteriaRepository) Load(ctx context.Context) (model.Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := logging.From(ctx).With(slog.String("path", r.path))

	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		catalog := r.seed(ctx)
		if err := writeDocument(ctx, r.path, encodeCatalog(catalog)); err != nil {
			logger.Error("Failed to persist seeded criteria", slog.Any("error", err))
		}
		return catalog, nil
	}
	if err != nil {
		logger.Warn("Failed to read criteria document, starting with an empty catalog",
			slog.Any("error", goerr.Wrap(errors.Join(model.ErrStorageRead, err), "read criteria")))
		return model.NewCatalog(), nil
	}

	catalog, normalized, damaged, err := decodeCatalog(ctx, data)
	if err != nil {
		logger.Warn("Failed to parse criteria document, starting with an empty catalog",
			slog.Any("error", err))
		return model.NewCatalog(), nil
	}

	switch {
	case damaged:
		logger.Warn("Criteria document is partly unreadable, leaving it untouched until the next save")
	case normalized:
		logger.Info("Normalizing criteria document", slog.Any("reason", model.ErrSchemaMismatch))
		if err := writeDocument(ctx, r.path, encodeCatalog(catalog)); err != nil {
			logger.Error("Failed to write normalized criteria", slog.Any("error", err))
		}
	}

	return catalog, nil
}

func (r *criteriaRepository) seed(ctx context.Context) model.Catalog {
	if legacy := r.store.legacyCatalog(ctx); legacy != nil {
		logging.From(ctx).Info("Migrating criteria from config document",
			slog.Int("criteria", legacy.CriterionCount()))
		return legacy
	}
	return model.DefaultCatalog()
}

func (r *criteriaRepository) Save(ctx context.Context, catalog model.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeDocument(ctx, r.path, encodeCatalog(catalog)); err != nil {
		return goerr.Wrap(err, "failed to save criteria")
	}
	return nil
}
