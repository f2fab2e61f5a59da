package cli

import (
	"context"
	"strconv"

	"github.com/ccimar11/riskmap/pkg/cli/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdProfile(a *app) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "Scoring profile utilities",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Aliases:   []string{"v"},
				Usage:     "Validate a TOML scoring profile (defaults to --profile)",
				ArgsUsage: "[profile.toml]",
				Action: func(ctx context.Context, c *cli.Command) error {
					path := a.profile.Path()
					if c.Args().Len() > 0 {
						path = c.Args().First()
					}
					if path == "" {
						return goerr.Wrap(ErrUsage, "no profile given; pass a path or --profile")
					}

					profile, err := config.LoadScoringProfile(path)
					if err != nil {
						return goerr.Wrap(err, "profile validation failed")
					}

					cfg := profile.ScoringConfig()
					logging.From(ctx).Info("Profile validation passed", "path", path)

					rows := make([][2]string, 0, 3)
					for _, cat := range types.AllCategories() {
						rows = append(rows, [2]string{cat.DisplayName(), strconv.Itoa(cfg.Weights.For(cat))})
					}
					printKV(a.out, rows)
					printTiers(a, cfg.Tiers)
					return nil
				},
			},
		},
	}
}
