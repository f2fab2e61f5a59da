package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
)

// Logger holds CLI flags for logging
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "Logging",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("RISKMAP_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "Logging",
			Usage:       "Log format (console, json)",
			Value:       "console",
			Sources:     cli.EnvVars("RISKMAP_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "Logging",
			Usage:       "Log output (stdout, stderr or a file path)",
			Value:       "stderr",
			Sources:     cli.EnvVars("RISKMAP_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

// LogValue keeps the logger settings readable in the startup log
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Configure builds the process logger, installs it as the default and
// returns a closer for the output file, if any.
func (l *Logger) Configure() (func(), error) {
	level, ok := logLevels[strings.ToLower(l.level)]
	if !ok {
		return nil, goerr.Wrap(ErrInvalidLogLevel, "unsupported log level", goerr.V(LogLevelKey, l.level))
	}

	var w io.Writer
	closer := func() {}
	switch l.output {
	case "", "stderr":
		w = os.Stderr
	case "stdout", "-":
		w = os.Stdout
	default:
		// #nosec G304 - path is provided by CLI argument
		f, err := os.OpenFile(l.output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log output", goerr.V("path", l.output))
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				_, _ = os.Stderr.WriteString("failed to close log file: " + err.Error() + "\n")
			}
		}
	}

	filter := masq.New(
		masq.WithTag("secret"),
		masq.WithFieldPrefix("secret_"),
	)

	var handler slog.Handler
	switch strings.ToLower(l.format) {
	case "", "console":
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(true),
		)
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		closer()
		return nil, goerr.Wrap(ErrInvalidLogFmt, "unsupported log format", goerr.V(LogFormatKey, l.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}
