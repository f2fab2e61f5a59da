package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdWeights(a *app) *cli.Command {
	return &cli.Command{
		Name:  "weights",
		Usage: "Show or change the category multipliers",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the category multipliers",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, closer, err := a.useCases(ctx)
					if err != nil {
						return err
					}
					defer closer()

					weights, err := uc.Scoring.Weights(ctx)
					if err != nil {
						return err
					}
					printWeights(a, weights)
					return nil
				},
			},
			cmdWeightsSet(a),
		},
	}
}

func printWeights(a *app, weights config.Weights) {
	rows := make([][2]string, 0, 3)
	for _, cat := range types.AllCategories() {
		rows = append(rows, [2]string{cat.DisplayName(), strconv.Itoa(weights.For(cat))})
	}
	printKV(a.out, rows)
}

func cmdWeightsSet(a *app) *cli.Command {
	flags := make([]cli.Flag, 0, 3)
	for _, cat := range types.AllCategories() {
		flags = append(flags, &cli.IntFlag{
			Name:  string(cat),
			Usage: "Multiplier of " + cat.DisplayName(),
		})
	}

	return &cli.Command{
		Name:  "set",
		Usage: "Change multipliers and recompute every object",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			weights, err := uc.Scoring.Weights(ctx)
			if err != nil {
				return err
			}
			if c.IsSet(string(types.CategoryMaterialidade)) {
				weights.Materialidade = int(c.Int(string(types.CategoryMaterialidade)))
			}
			if c.IsSet(string(types.CategoryRelevancia)) {
				weights.Relevancia = int(c.Int(string(types.CategoryRelevancia)))
			}
			if c.IsSet(string(types.CategoryCriticidade)) {
				weights.Criticidade = int(c.Int(string(types.CategoryCriticidade)))
			}

			if err := uc.Scoring.UpdateWeights(ctx, weights); err != nil {
				return err
			}
			printWeights(a, weights)
			return nil
		},
	}
}

func cmdTiers(a *app) *cli.Command {
	return &cli.Command{
		Name:  "tiers",
		Usage: "Show or change the risk tiers",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the risk tiers, highest first",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, closer, err := a.useCases(ctx)
					if err != nil {
						return err
					}
					defer closer()

					tiers, err := uc.Scoring.Tiers(ctx)
					if err != nil {
						return err
					}
					printTiers(a, tiers)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Replace the risk tiers, highest first. Thresholds are clamped below their predecessor.",
				ArgsUsage: "<label=threshold>...",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, 1, "<label=threshold>..."); err != nil {
						return err
					}
					tiers := make(config.Tiers, 0, c.Args().Len())
					for _, raw := range c.Args().Slice() {
						label, threshold, err := parsePair(raw)
						if err != nil {
							return err
						}
						tiers = append(tiers, config.Tier{Label: label, Threshold: threshold})
					}

					uc, closer, err := a.useCases(ctx)
					if err != nil {
						return err
					}
					defer closer()

					saved, err := uc.Scoring.UpdateTiers(ctx, tiers)
					if err != nil {
						return err
					}
					printTiers(a, saved)
					return nil
				},
			},
			{
				Name:      "preset",
				Usage:     "Apply a named tier set (three-tier, five-tier)",
				ArgsUsage: "<name>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, 1, "<name>"); err != nil {
						return err
					}

					uc, closer, err := a.useCases(ctx)
					if err != nil {
						return err
					}
					defer closer()

					tiers, err := uc.Scoring.ApplyPreset(ctx, c.Args().First())
					if err != nil {
						return err
					}
					printTiers(a, tiers)
					return nil
				},
			},
		},
	}
}

func printTiers(a *app, tiers config.Tiers) {
	rows := make([][]string, 0, len(tiers))
	for _, tier := range tiers.Sorted() {
		rows = append(rows, []string{riskLabel(tiers, tier.Label), strconv.Itoa(tier.Threshold)})
	}
	printTable(a.out, []string{"LABEL", "THRESHOLD"}, rows)
}

func cmdRecompute(a *app) *cli.Command {
	return &cli.Command{
		Name:  "recompute",
		Usage: "Recompute the scores of every object and save them",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			objs, err := uc.Scoring.RecomputeAll(ctx)
			if err != nil {
				return err
			}
			logging.From(ctx).Info("Recomputed objects", "count", len(objs))
			_, _ = fmt.Fprintf(a.out, "recomputed %d objects\n", len(objs))
			return nil
		},
	}
}
