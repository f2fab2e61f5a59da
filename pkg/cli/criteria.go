package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdCriteria(a *app) *cli.Command {
	return &cli.Command{
		Name:    "criteria",
		Aliases: []string{"c"},
		Usage:   "Manage the scoring criteria catalog",
		Commands: []*cli.Command{
			cmdCriteriaList(a),
			cmdCriteriaAdd(a),
			cmdCriteriaRemove(a),
			cmdCriteriaOptionAdd(a),
			cmdCriteriaOptionRemove(a),
		},
	}
}

func cmdCriteriaList(a *app) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List criteria of every category, or of one",
		ArgsUsage: "[category]",
		Action: func(ctx context.Context, c *cli.Command) error {
			categories := types.AllCategories()
			if c.Args().Len() > 0 {
				cat, err := categoryArg(c, 0)
				if err != nil {
					return err
				}
				categories = []types.Category{cat}
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			var rows [][]string
			for _, cat := range categories {
				criteria, err := uc.Criteria.ListCriteria(ctx, cat)
				if err != nil {
					return err
				}
				for i, crit := range criteria {
					rows = append(rows, []string{
						cat.DisplayName(),
						strconv.Itoa(i),
						crit.Name,
						crit.Kind,
						formatOptions(crit.Options),
					})
				}
			}
			printTable(a.out, []string{"CATEGORY", "INDEX", "CRITERION", "KIND", "OPTIONS"}, rows)
			return nil
		},
	}
}

func formatOptions(opts []model.Option) string {
	parts := make([]string, len(opts))
	for i, opt := range opts {
		parts[i] = fmt.Sprintf("[%d] %s=%d", i, opt.Description, opt.Score)
	}
	return strings.Join(parts, "; ")
}

func cmdCriteriaAdd(a *app) *cli.Command {
	var kind string
	var options []string

	return &cli.Command{
		Name:      "add",
		Usage:     "Add a criterion to a category",
		ArgsUsage: "<category> <name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "kind",
				Usage:       "Free-form criterion kind",
				Destination: &kind,
			},
			&cli.StringSliceFlag{
				Name:        "option",
				Aliases:     []string{"o"},
				Usage:       "Option as description=score, repeatable",
				Destination: &options,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 2, "<category> <name>"); err != nil {
				return err
			}
			cat, err := categoryArg(c, 0)
			if err != nil {
				return err
			}

			crit := model.Criterion{Name: strings.TrimSpace(c.Args().Get(1)), Kind: kind}
			for _, raw := range options {
				desc, score, err := parsePair(raw)
				if err != nil {
					return err
				}
				crit.Options = append(crit.Options, model.Option{Description: desc, Score: score})
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := uc.Criteria.AddCriterion(ctx, cat, crit); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "added criterion %q to %s\n", crit.Name, cat.DisplayName())
			return nil
		},
	}
}

func cmdCriteriaRemove(a *app) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove a criterion by index",
		ArgsUsage: "<category> <index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 2, "<category> <index>"); err != nil {
				return err
			}
			cat, err := categoryArg(c, 0)
			if err != nil {
				return err
			}
			index, err := intArg(c, 1, "index")
			if err != nil {
				return err
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			removed, err := uc.Criteria.RemoveCriterion(ctx, cat, index)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "removed criterion %q from %s\n", removed.Name, cat.DisplayName())
			return nil
		},
	}
}

func cmdCriteriaOptionAdd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "option-add",
		Usage:     "Add an option to a criterion",
		ArgsUsage: "<category> <criterion-index> <description> <score>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 4, "<category> <criterion-index> <description> <score>"); err != nil {
				return err
			}
			cat, err := categoryArg(c, 0)
			if err != nil {
				return err
			}
			critIndex, err := intArg(c, 1, "criterion_index")
			if err != nil {
				return err
			}
			score, err := intArg(c, 3, "score")
			if err != nil {
				return err
			}
			opt := model.Option{Description: strings.TrimSpace(c.Args().Get(2)), Score: score}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := uc.Criteria.AddOption(ctx, cat, critIndex, opt); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "added option %q (%d)\n", opt.Description, opt.Score)
			return nil
		},
	}
}

func cmdCriteriaOptionRemove(a *app) *cli.Command {
	return &cli.Command{
		Name:      "option-remove",
		Usage:     "Remove an option from a criterion",
		ArgsUsage: "<category> <criterion-index> <option-index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 3, "<category> <criterion-index> <option-index>"); err != nil {
				return err
			}
			cat, err := categoryArg(c, 0)
			if err != nil {
				return err
			}
			critIndex, err := intArg(c, 1, "criterion_index")
			if err != nil {
				return err
			}
			optIndex, err := intArg(c, 2, "option_index")
			if err != nil {
				return err
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := uc.Criteria.RemoveOption(ctx, cat, critIndex, optIndex); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.out, "removed option; run `riskmap recompute` to refresh scores")
			return nil
		},
	}
}
