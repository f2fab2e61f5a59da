package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccimar11/riskmap/pkg/cli/config"
	domainconfig "github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/m-mizutani/gt"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadScoringProfile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, cfg domainconfig.ScoringConfig)
	}{
		{
			name: "weights and tiers",
			content: `
[weights]
materialidade = 5
relevancia = 3
criticidade = 2

[[tier]]
label = "Alto"
threshold = 100

[[tier]]
label = "Baixo"
threshold = 0
`,
			check: func(t *testing.T, cfg domainconfig.ScoringConfig) {
				gt.Value(t, cfg.Weights).Equal(domainconfig.Weights{Materialidade: 5, Relevancia: 3, Criticidade: 2})
				gt.Array(t, cfg.Tiers).Length(2).Required()
				gt.Value(t, cfg.Tiers[0]).Equal(domainconfig.Tier{Label: "Alto", Threshold: 100})
			},
		},
		{
			name: "partial weights fall back to defaults",
			content: `
[weights]
relevancia = 7
`,
			check: func(t *testing.T, cfg domainconfig.ScoringConfig) {
				gt.Value(t, cfg.Weights).Equal(domainconfig.Weights{Materialidade: 4, Relevancia: 7, Criticidade: 4})
				gt.Value(t, cfg.Tiers).Equal(domainconfig.DefaultTiers())
			},
		},
		{
			name:    "five-tier preset",
			content: `preset = "five-tier"`,
			check: func(t *testing.T, cfg domainconfig.ScoringConfig) {
				gt.Value(t, cfg.Tiers).Equal(domainconfig.FiveTiers())
				gt.Value(t, cfg.Weights).Equal(domainconfig.DefaultWeights())
			},
		},
		{
			name:    "unknown preset",
			content: `preset = "seven-tier"`,
			wantErr: config.ErrInvalidProfile,
		},
		{
			name: "preset with tiers",
			content: `
preset = "five-tier"

[[tier]]
label = "Alto"
threshold = 10
`,
			wantErr: config.ErrInvalidProfile,
		},
		{
			name: "negative weight",
			content: `
[weights]
criticidade = -1
`,
			wantErr: config.ErrInvalidProfile,
		},
		{
			name: "duplicate tier label",
			content: `
[[tier]]
label = "Alto"
threshold = 50

[[tier]]
label = "Alto"
threshold = 10
`,
			wantErr: config.ErrInvalidProfile,
		},
		{
			name: "ascending thresholds",
			content: `
[[tier]]
label = "Baixo"
threshold = 0

[[tier]]
label = "Alto"
threshold = 80
`,
			wantErr: config.ErrInvalidProfile,
		},
		{
			name:    "broken toml",
			content: `[weights`,
			wantErr: config.ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := config.LoadScoringProfile(writeProfile(t, tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			tt.check(t, profile.ScoringConfig())
		})
	}
}

func TestLoadScoringProfile_NotFound(t *testing.T) {
	_, err := config.LoadScoringProfile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err).Is(config.ErrProfileNotFound)
}
