package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/ccimar11/riskmap/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestFrom_FallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	logging.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	logging.From(context.Background()).Info("hello")

	gt.String(t, buf.String()).Contains("hello")
}

func TestWith_OverridesDefault(t *testing.T) {
	var def, scoped bytes.Buffer
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	logging.SetDefault(slog.New(slog.NewTextHandler(&def, nil)))
	ctx := logging.With(context.Background(), slog.New(slog.NewTextHandler(&scoped, nil)))
	logging.From(ctx).Info("scoped message")

	gt.String(t, scoped.String()).Contains("scoped message")
	gt.Value(t, def.Len()).Equal(0)
}
