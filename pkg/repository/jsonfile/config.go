package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Keys of the combined config document
const (
	keyObjects       = "objetos_auditaveis"
	keyWeights       = "multiplicador"
	keyLegacyWeights = "multiplicadores"
	keyTiers         = "riscos"
	keyLegacyScores  = "pontuacao_criterios"
)

type selectionDocument struct {
	Description string `json:"descricao"`
	Score       int    `json:"pontuacao"`
}

type computedDocument struct {
	Materialidade         flexInt `json:"materialidade"`
	Relevancia            flexInt `json:"relevancia"`
	Criticidade           flexInt `json:"criticidade"`
	MaterialidadeWeighted flexInt `json:"materialidade_ponderada"`
	RelevanciaWeighted    flexInt `json:"relevancia_ponderada"`
	CriticidadeWeighted   flexInt `json:"criticidade_ponderada"`
	Total                 flexInt `json:"total"`
	RiskLabel             string  `json:"tipo_risco"`
}

type objectDocument struct {
	ID          string                                  `json:"id"`
	NR          int                                     `json:"nr"`
	Description string                                  `json:"descricao"`
	Selections  map[string]map[string]selectionDocument `json:"selecoes"`
	Computed    computedDocument                        `json:"valores_calculados"`
}

type weightsDocument struct {
	Materialidade int `json:"materialidade"`
	Relevancia    int `json:"relevancia"`
	Criticidade   int `json:"criticidade"`
}

type configDocument struct {
	Objects []objectDocument `json:"objetos_auditaveis"`
	Weights weightsDocument  `json:"multiplicador"`
	Tiers   map[string]int   `json:"riscos"`
}

// legacyScoreCriterion is one entry of the old pontuacao_criterios block
type legacyScoreCriterion struct {
	Name    string `json:"Critério"`
	Kind    string `json:"Tipo"`
	Options []struct {
		Description string  `json:"Descrição"`
		Score       flexInt `json:"Pontuação"`
	} `json:"opcoes"`
}

// configStore caches the combined document so that saving one part rewrites
// the file without losing the others
type configStore struct {
	mu       sync.Mutex
	path     string
	defaults config.ScoringConfig

	loaded  bool
	objects []*model.AuditObject
	weights config.Weights
	tiers   config.Tiers
	legacy  model.Catalog

	// unreadable is set when the document exists but could not be read or
	// parsed. It is moved aside before the next write.
	unreadable bool
}

func newConfigStore(path string, defaults config.ScoringConfig) *configStore {
	return &configStore{path: path, defaults: defaults}
}

// load reads the document once. Callers must hold s.mu.
func (s *configStore) load(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.unreadable = false
	s.objects = nil
	s.weights = s.defaults.Weights.WithDefaults()
	s.tiers = s.defaultTiers()

	logger := logging.From(ctx).With(slog.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		logger.Warn("Failed to read config document, using defaults",
			slog.Any("error", goerr.Wrap(errors.Join(model.ErrStorageRead, err), "read config")))
		s.unreadable = true
		return
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		logger.Warn("Failed to parse config document, using defaults",
			slog.Any("error", goerr.Wrap(errors.Join(model.ErrStorageRead, err), "parse config")))
		s.unreadable = true
		return
	}

	s.objects = decodeObjects(ctx, top[keyObjects])

	weightsRaw, ok := top[keyWeights]
	if !ok {
		weightsRaw = top[keyLegacyWeights]
	}
	s.weights = decodeWeights(weightsRaw, s.weights)

	if tiers := decodeTiers(top[keyTiers]); len(tiers) > 0 {
		s.tiers = tiers
	}

	if raw, ok := top[keyLegacyScores]; ok {
		s.legacy = decodeLegacyScores(ctx, raw)
	}
}

func (s *configStore) defaultTiers() config.Tiers {
	if len(s.defaults.Tiers) == 0 {
		return config.DefaultTiers()
	}
	return s.defaults.Tiers.Sorted()
}

// write persists the cached state. An unreadable document is first renamed
// to <path>.corrupt; if that fails nothing is written. Callers must hold s.mu.
func (s *configStore) write(ctx context.Context) error {
	if s.unreadable {
		if err := s.moveAside(ctx); err != nil {
			return err
		}
	}

	doc := configDocument{
		Objects: make([]objectDocument, 0, len(s.objects)),
		Weights: weightsDocument{
			Materialidade: s.weights.Materialidade,
			Relevancia:    s.weights.Relevancia,
			Criticidade:   s.weights.Criticidade,
		},
		Tiers: make(map[string]int, len(s.tiers)),
	}
	for _, obj := range s.objects {
		doc.Objects = append(doc.Objects, encodeObject(obj))
	}
	for _, tier := range s.tiers {
		doc.Tiers[tier.Label] = tier.Threshold
	}

	return writeDocument(ctx, s.path, doc)
}

// CorruptSuffix is appended to the name of a config document that could not
// be read when it is replaced
const CorruptSuffix = ".corrupt"

func (s *configStore) moveAside(ctx context.Context) error {
	dst := s.path + CorruptSuffix
	if err := os.Rename(s.path, dst); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(errors.Join(model.ErrStorageWrite, err), "failed to move unreadable config document aside",
			goerr.V(model.PathKey, s.path))
	}
	logging.From(ctx).Warn("Moved unreadable config document aside",
		slog.String("path", s.path),
		slog.String("backup", dst))
	s.unreadable = false
	return nil
}

// legacyCatalog returns the catalog embedded in an old config document, nil
// when there is none
func (s *configStore) legacyCatalog(ctx context.Context) model.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	if s.legacy == nil {
		return nil
	}
	return s.legacy.Clone()
}

func decodeWeights(raw json.RawMessage, fallback config.Weights) config.Weights {
	if len(raw) == 0 {
		return fallback
	}
	var values map[string]flexInt
	if err := json.Unmarshal(raw, &values); err != nil {
		return fallback
	}

	w := config.Weights{
		Materialidade: int(values[string(types.CategoryMaterialidade)]),
		Relevancia:    int(values[string(types.CategoryRelevancia)]),
		Criticidade:   int(values[string(types.CategoryCriticidade)]),
	}
	if w.Materialidade < 1 {
		w.Materialidade = fallback.Materialidade
	}
	if w.Relevancia < 1 {
		w.Relevancia = fallback.Relevancia
	}
	if w.Criticidade < 1 {
		w.Criticidade = fallback.Criticidade
	}
	return w
}

func decodeTiers(raw json.RawMessage) config.Tiers {
	if len(raw) == 0 {
		return nil
	}
	var values map[string]flexInt
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}

	tiers := make(config.Tiers, 0, len(values))
	for label, threshold := range values {
		if label == "" {
			continue
		}
		tiers = append(tiers, config.Tier{Label: label, Threshold: int(threshold)})
	}
	// Map iteration order is random; sort by label first so equal
	// thresholds come out the same way on every load.
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].Label < tiers[j].Label
	})
	return tiers.Sorted()
}

func decodeLegacyScores(ctx context.Context, raw json.RawMessage) model.Catalog {
	var legacy map[string][]legacyScoreCriterion
	if err := json.Unmarshal(raw, &legacy); err != nil {
		logging.From(ctx).Warn("Ignoring malformed legacy criteria scores", slog.Any("error", err))
		return nil
	}

	catalog := model.NewCatalog()
	for _, cat := range types.AllCategories() {
		for _, entry := range legacy[string(cat)] {
			if entry.Name == "" {
				continue
			}
			crit := model.Criterion{
				Name:    entry.Name,
				Kind:    entry.Kind,
				Options: make([]model.Option, 0, len(entry.Options)),
			}
			for _, opt := range entry.Options {
				if opt.Description == "" {
					continue
				}
				crit.Options = append(crit.Options, model.Option{
					Description: opt.Description,
					Score:       int(opt.Score),
				})
			}
			catalog[cat] = append(catalog[cat], crit)
		}
	}
	return catalog
}
