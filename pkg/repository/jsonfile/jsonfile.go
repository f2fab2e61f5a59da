package jsonfile

import (
	"path/filepath"

	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
)

// Default file names inside the data directory
const (
	DefaultCriteriaFile = "mat_relev_crit.json"
	DefaultConfigFile   = "config_paint.json"
)

// Repository persists the criteria catalog in one JSON document and the
// objects, weights and tiers in a second one. Every save rewrites a whole
// document. The files are owned by a single process; there is no locking.
type Repository struct {
	criteria *criteriaRepository
	scoring  *scoringConfigRepository
	object   *objectRepository
}

var _ interfaces.Repository = &Repository{}

type Option func(*options)

type options struct {
	criteriaFile string
	configFile   string
	scoring      config.ScoringConfig
}

// WithCriteriaFile overrides the criteria document file name
func WithCriteriaFile(name string) Option {
	return func(o *options) {
		o.criteriaFile = name
	}
}

// WithConfigFile overrides the combined config document file name
func WithConfigFile(name string) Option {
	return func(o *options) {
		o.configFile = name
	}
}

// WithScoringConfig sets the weights and tiers used when the config
// document does not carry them
func WithScoringConfig(cfg config.ScoringConfig) Option {
	return func(o *options) {
		o.scoring = cfg
	}
}

// New creates a repository rooted at dir. Nothing is read until the first
// Load call.
func New(dir string, opts ...Option) *Repository {
	o := options{
		criteriaFile: DefaultCriteriaFile,
		configFile:   DefaultConfigFile,
		scoring:      config.DefaultScoringConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	store := newConfigStore(resolve(dir, o.configFile), o.scoring)
	return &Repository{
		criteria: newCriteriaRepository(resolve(dir, o.criteriaFile), store),
		scoring:  &scoringConfigRepository{store: store},
		object:   &objectRepository{store: store},
	}
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func (r *Repository) Criteria() interfaces.CriteriaRepository {
	return r.criteria
}

func (r *Repository) ScoringConfig() interfaces.ScoringConfigRepository {
	return r.scoring
}

func (r *Repository) Object() interfaces.ObjectRepository {
	return r.object
}

// CriteriaPath returns the criteria document location
func (r *Repository) CriteriaPath() string {
	return r.criteria.path
}

// ConfigPath returns the combined config document location
func (r *Repository) ConfigPath() string {
	return r.object.store.path
}

func (r *Repository) Close() error {
	return nil
}
