package config

import (
	"errors"
	"io/fs"
	"os"

	domainconfig "github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Profile holds the CLI flag pointing at an optional scoring profile
type Profile struct {
	path string
}

// Flags returns CLI flags for the scoring profile
func (p *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Category:    "Scoring",
			Usage:       "Path to a TOML scoring profile seeding weights and risk tiers",
			Sources:     cli.EnvVars("RISKMAP_PROFILE"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured profile path
func (p *Profile) Path() string {
	return p.path
}

// Configure returns the scoring config of the profile, or the defaults if
// no profile is configured
func (p *Profile) Configure() (domainconfig.ScoringConfig, error) {
	if p.path == "" {
		return domainconfig.DefaultScoringConfig(), nil
	}
	profile, err := LoadScoringProfile(p.path)
	if err != nil {
		return domainconfig.ScoringConfig{}, err
	}
	return profile.ScoringConfig(), nil
}

// ScoringProfile is the TOML representation of weights and risk tiers
type ScoringProfile struct {
	Preset  string          `toml:"preset"`
	Weights *WeightsProfile `toml:"weights"`
	Tiers   []TierProfile   `toml:"tier"`
}

// WeightsProfile holds category multipliers. Zero means "use the default".
type WeightsProfile struct {
	Materialidade int `toml:"materialidade"`
	Relevancia    int `toml:"relevancia"`
	Criticidade   int `toml:"criticidade"`
}

// TierProfile is one risk tier
type TierProfile struct {
	Label     string `toml:"label"`
	Threshold int    `toml:"threshold"`
}

// Validate checks the multipliers are not negative
func (w *WeightsProfile) Validate() error {
	if w.Materialidade < 0 || w.Relevancia < 0 || w.Criticidade < 0 {
		return goerr.Wrap(ErrInvalidProfile, "weights must be positive",
			goerr.V("materialidade", w.Materialidade),
			goerr.V("relevancia", w.Relevancia),
			goerr.V("criticidade", w.Criticidade))
	}
	return nil
}

// Validate checks if the ScoringProfile is valid
func (s *ScoringProfile) Validate() error {
	if s.Weights != nil {
		if err := s.Weights.Validate(); err != nil {
			return err
		}
	}

	if s.Preset != "" {
		if len(s.Tiers) > 0 {
			return goerr.Wrap(ErrInvalidProfile, "preset and tier entries are mutually exclusive",
				goerr.V("preset", s.Preset))
		}
		if _, err := domainconfig.TierPreset(s.Preset); err != nil {
			return goerr.Wrap(ErrInvalidProfile, err.Error(), goerr.V("preset", s.Preset))
		}
		return nil
	}

	if len(s.Tiers) > 0 {
		if err := s.tiers().Validate(); err != nil {
			return goerr.Wrap(ErrInvalidProfile, err.Error())
		}
	}
	return nil
}

func (s *ScoringProfile) tiers() domainconfig.Tiers {
	tiers := make(domainconfig.Tiers, len(s.Tiers))
	for i, t := range s.Tiers {
		tiers[i] = domainconfig.Tier{Label: t.Label, Threshold: t.Threshold}
	}
	return tiers
}

// ScoringConfig converts the profile to the domain scoring config. Missing
// weights and tiers fall back to the defaults.
func (s *ScoringProfile) ScoringConfig() domainconfig.ScoringConfig {
	cfg := domainconfig.DefaultScoringConfig()

	if s.Weights != nil {
		cfg.Weights = domainconfig.Weights{
			Materialidade: s.Weights.Materialidade,
			Relevancia:    s.Weights.Relevancia,
			Criticidade:   s.Weights.Criticidade,
		}.WithDefaults()
	}

	switch {
	case s.Preset != "":
		if tiers, err := domainconfig.TierPreset(s.Preset); err == nil {
			cfg.Tiers = tiers
		}
	case len(s.Tiers) > 0:
		cfg.Tiers = s.tiers().Sorted()
	}
	return cfg
}

// LoadScoringProfile loads and validates a scoring profile from a TOML file
func LoadScoringProfile(path string) (*ScoringProfile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrProfileNotFound, "scoring profile does not exist", goerr.V(ProfilePathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read scoring profile", goerr.V(ProfilePathKey, path))
	}

	var profile ScoringProfile
	if err := toml.Unmarshal(data, &profile); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidProfile, err), "failed to parse TOML profile", goerr.V(ProfilePathKey, path))
	}

	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "profile validation failed", goerr.V(ProfilePathKey, path))
	}

	return &profile, nil
}
