package config

import (
	"context"

	"github.com/ccimar11/riskmap/pkg/domain/interfaces"
	domainconfig "github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/repository/jsonfile"
	"github.com/ccimar11/riskmap/pkg/repository/memory"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Storage holds CLI flags for the persistence backend
type Storage struct {
	backend      string
	dataDir      string
	criteriaFile string
	configFile   string
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend",
			Category:    "Storage",
			Usage:       "Storage backend type (file or memory)",
			Value:       BackendFile,
			Sources:     cli.EnvVars("RISKMAP_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Category:    "Storage",
			Usage:       "Directory holding the criteria and config documents",
			Value:       "./data",
			Sources:     cli.EnvVars("RISKMAP_DATA_DIR"),
			Destination: &s.dataDir,
		},
		&cli.StringFlag{
			Name:        "criteria-file",
			Category:    "Storage",
			Usage:       "Criteria catalog file name, relative to --data-dir",
			Value:       jsonfile.DefaultCriteriaFile,
			Sources:     cli.EnvVars("RISKMAP_CRITERIA_FILE"),
			Destination: &s.criteriaFile,
		},
		&cli.StringFlag{
			Name:        "config-file",
			Category:    "Storage",
			Usage:       "Objects, weights and tiers file name, relative to --data-dir",
			Value:       jsonfile.DefaultConfigFile,
			Sources:     cli.EnvVars("RISKMAP_CONFIG_FILE"),
			Destination: &s.configFile,
		},
	}
}

// Backend returns the configured backend type
func (s *Storage) Backend() string {
	return s.backend
}

// DataDir returns the data directory
func (s *Storage) DataDir() string {
	return s.dataDir
}

// Configure initializes a repository for the configured backend. scoring
// seeds the weights and tiers of a store that has none persisted yet.
// The caller is responsible for calling Close() on the returned repository.
func (s *Storage) Configure(ctx context.Context, scoring domainconfig.ScoringConfig) (interfaces.Repository, error) {
	switch s.backend {
	case "", BackendFile:
		repo := jsonfile.New(s.dataDir,
			jsonfile.WithCriteriaFile(s.criteriaFile),
			jsonfile.WithConfigFile(s.configFile),
			jsonfile.WithScoringConfig(scoring),
		)
		logging.From(ctx).Debug("Using JSON file repository",
			"criteria", repo.CriteriaPath(),
			"config", repo.ConfigPath(),
		)
		return repo, nil

	case BackendMemory:
		logging.From(ctx).Debug("Using in-memory repository (development mode)")
		return memory.New(memory.WithScoringConfig(scoring)), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unsupported storage backend", goerr.V(BackendKey, s.backend))
	}
}
