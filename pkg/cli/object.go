package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdObject(a *app) *cli.Command {
	return &cli.Command{
		Name:    "object",
		Aliases: []string{"o"},
		Usage:   "Manage auditable objects and their selections",
		Commands: []*cli.Command{
			cmdObjectList(a),
			cmdObjectAdd(a),
			cmdObjectSelect(a),
			cmdObjectShow(a),
		},
	}
}

func cmdObjectList(a *app) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List objects with their weighted scores and risk",
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			objs, err := uc.Object.List(ctx)
			if err != nil {
				return err
			}
			tiers, err := uc.Scoring.Tiers(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(objs))
			for _, obj := range objs {
				rows = append(rows, []string{
					strconv.Itoa(obj.NR),
					obj.Description,
					strconv.Itoa(obj.Scores.MaterialidadeWeighted),
					strconv.Itoa(obj.Scores.RelevanciaWeighted),
					strconv.Itoa(obj.Scores.CriticidadeWeighted),
					strconv.Itoa(obj.Scores.Total),
					riskLabel(tiers, obj.Scores.RiskLabel),
				})
			}
			printTable(a.out, []string{"NR", "OBJECT", "MAT", "REL", "CRIT", "TOTAL", "RISK"}, rows)
			return nil
		},
	}
}

func cmdObjectAdd(a *app) *cli.Command {
	var nr int

	return &cli.Command{
		Name:      "add",
		Usage:     "Add an object with zero-value selections",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "nr",
				Usage:       "Row number; the next free number when omitted",
				Destination: &nr,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<description>"); err != nil {
				return err
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			obj, err := uc.Object.Add(ctx, nr, strings.TrimSpace(c.Args().First()))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "added object %d %q (%s)\n", obj.NR, obj.Description, obj.ID)
			return nil
		},
	}
}

func cmdObjectSelect(a *app) *cli.Command {
	return &cli.Command{
		Name:      "select",
		Usage:     "Choose an option for a criterion of an object, or clear it when no option is given",
		ArgsUsage: "<description> <category> <criterion> [option]",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 3, "<description> <category> <criterion> [option]"); err != nil {
				return err
			}
			cat, err := categoryArg(c, 1)
			if err != nil {
				return err
			}
			desc := c.Args().Get(0)
			criterion := c.Args().Get(2)
			option := c.Args().Get(3)

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			var obj *model.AuditObject
			if option == "" {
				obj, err = uc.Object.ClearSelection(ctx, desc, cat, criterion)
			} else {
				obj, err = uc.Object.Select(ctx, desc, cat, criterion, option)
			}
			if err != nil {
				return err
			}

			tiers, err := uc.Scoring.Tiers(ctx)
			if err != nil {
				return err
			}
			printObject(a, obj, tiers)
			return nil
		},
	}
}

func cmdObjectShow(a *app) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the selections and scores of an object",
		ArgsUsage: "<description>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<description>"); err != nil {
				return err
			}

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			obj, err := uc.Object.Get(ctx, c.Args().First())
			if err != nil {
				return err
			}
			tiers, err := uc.Scoring.Tiers(ctx)
			if err != nil {
				return err
			}
			printObject(a, obj, tiers)
			return nil
		},
	}
}

func printObject(a *app, obj *model.AuditObject, tiers config.Tiers) {
	rows := [][2]string{
		{"id", string(obj.ID)},
		{"nr", strconv.Itoa(obj.NR)},
		{"description", obj.Description},
	}
	for _, cat := range types.AllCategories() {
		rows = append(rows, [2]string{
			cat.DisplayName(),
			fmt.Sprintf("raw %d, weighted %d", obj.Scores.Raw(cat), obj.Scores.Weighted(cat)),
		})
	}
	rows = append(rows,
		[2]string{"total", strconv.Itoa(obj.Scores.Total)},
		[2]string{"risk", riskLabel(tiers, obj.Scores.RiskLabel)},
	)
	printKV(a.out, rows)

	var sel [][]string
	for _, cat := range types.AllCategories() {
		for _, name := range slices.Sorted(maps.Keys(obj.Selections[cat])) {
			s := obj.Selections[cat][name]
			desc := s.Description
			if !s.IsSet() {
				desc = "-"
			}
			sel = append(sel, []string{cat.DisplayName(), name, desc, strconv.Itoa(s.Score)})
		}
	}
	_, _ = fmt.Fprintln(a.out)
	printTable(a.out, []string{"CATEGORY", "CRITERION", "OPTION", "SCORE"}, sel)
}
