package cli

import (
	"strconv"
	"strings"

	"github.com/ccimar11/riskmap/pkg/domain/model"
	"github.com/ccimar11/riskmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// ErrUsage is returned when positional arguments are missing or malformed
var ErrUsage = goerr.New("invalid command usage")

func requireArgs(c *cli.Command, n int, usage string) error {
	if c.Args().Len() < n {
		return goerr.Wrap(ErrUsage, "missing arguments", goerr.V("usage", c.Name+" "+usage))
	}
	return nil
}

func categoryArg(c *cli.Command, i int) (types.Category, error) {
	cat, err := types.ParseCategory(c.Args().Get(i))
	if err != nil {
		return "", goerr.Wrap(model.ErrInvalidCategory, err.Error(), goerr.V(model.CategoryKey, c.Args().Get(i)))
	}
	return cat, nil
}

func intArg(c *cli.Command, i int, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(c.Args().Get(i)))
	if err != nil {
		return 0, goerr.Wrap(ErrUsage, "argument must be an integer", goerr.V(name, c.Args().Get(i)))
	}
	return v, nil
}

// parsePair splits "key=value" on the last '=' and parses value as an
// integer, so keys may contain '='
func parsePair(s string) (string, int, error) {
	idx := strings.LastIndex(s, "=")
	if idx <= 0 {
		return "", 0, goerr.Wrap(ErrUsage, "expected key=value", goerr.V("value", s))
	}
	n, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
	if err != nil {
		return "", 0, goerr.Wrap(ErrUsage, "value must be an integer", goerr.V("value", s))
	}
	return strings.TrimSpace(s[:idx]), n, nil
}
