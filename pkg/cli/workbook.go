package cli

import (
	"context"
	"fmt"

	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdImport(a *app) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Replace the catalog and objects with the contents of an xlsx workbook",
		ArgsUsage: "<file.xlsx>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<file.xlsx>"); err != nil {
				return err
			}
			path := c.Args().First()

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			result, err := uc.Workbook.ImportFile(ctx, path)
			if err != nil {
				return err
			}

			logging.From(ctx).Info("Workbook imported",
				"path", path,
				"criteria", result.Catalog.CriterionCount(),
				"objects", len(result.Objects),
			)
			_, _ = fmt.Fprintf(a.out, "imported %d criteria and %d objects from %s\n",
				result.Catalog.CriterionCount(), len(result.Objects), path)
			return nil
		},
	}
}

func cmdExport(a *app) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the objects and the catalog to an xlsx workbook that can be imported again",
		ArgsUsage: "<file.xlsx>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := requireArgs(c, 1, "<file.xlsx>"); err != nil {
				return err
			}
			path := c.Args().First()

			uc, closer, err := a.useCases(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if err := uc.Workbook.ExportFile(ctx, path); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.out, "exported to %s\n", path)
			return nil
		},
	}
}
