package memory

import (
	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	criteria *criteriaRepository
	scoring  *scoringConfigRepository
	object   *objectRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*options)

type options struct {
	scoring config.ScoringConfig
}

// WithScoringConfig sets the weights and tiers the repository starts with
func WithScoringConfig(cfg config.ScoringConfig) Option {
	return func(o *options) {
		o.scoring = cfg
	}
}

func New(opts ...Option) *Memory {
	o := options{scoring: config.DefaultScoringConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Memory{
		criteria: newCriteriaRepository(),
		scoring:  newScoringConfigRepository(o.scoring),
		object:   newObjectRepository(),
	}
}

func (m *Memory) Criteria() interfaces.CriteriaRepository {
	return m.criteria
}

func (m *Memory) ScoringConfig() interfaces.ScoringConfigRepository {
	return m.scoring
}

func (m *Memory) Object() interfaces.ObjectRepository {
	return m.object
}

func (m *Memory) Close() error {
	return nil
}
