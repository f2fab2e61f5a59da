package cli

import (
	"context"
	"io"
	"os"

	"github.com/ccimar11/riskmap/pkg/cli/config"
	"github.com/ccimar11/riskmap/pkg/service/workbook"
	"github.com/ccimar11/riskmap/pkg/usecase"
	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Run executes the riskmap command line
func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout)
}

// app carries the flag groups shared by every subcommand and the writer
// command output goes to
type app struct {
	storage config.Storage
	profile config.Profile
	out     io.Writer
}

// useCases opens the configured store. The returned closer releases it.
func (a *app) useCases(ctx context.Context) (*usecase.UseCases, func(), error) {
	scoring, err := a.profile.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load scoring profile")
	}

	repo, err := a.storage.Configure(ctx, scoring)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}

	closer := func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}
	return usecase.New(repo, usecase.WithWorkbookService(workbook.New())), closer, nil
}

func run(ctx context.Context, args []string, version string, out io.Writer) error {
	var loggerCfg config.Logger
	var closer func()
	a := &app{out: out}

	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, a.storage.Flags()...)
	flags = append(flags, a.profile.Flags()...)

	root := &cli.Command{
		Name:    "riskmap",
		Usage:   "Risk scoring of auditable objects for audit planning",
		Version: version,
		Flags:   flags,
		Writer:  out,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Debug("Starting riskmap", "logger", loggerCfg, "backend", a.storage.Backend())
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdCriteria(a),
			cmdWeights(a),
			cmdTiers(a),
			cmdObject(a),
			cmdImport(a),
			cmdExport(a),
			cmdRecompute(a),
			cmdProfile(a),
			cmdServe(a),
		},
	}

	if err := root.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
