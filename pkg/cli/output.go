package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ccimar11/riskmap/pkg/domain/model/config"
	"github.com/fatih/color"
)

func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "no results")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

func printKV(w io.Writer, rows [][2]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	_ = tw.Flush()
}

// riskLabel colours a label by its rank: the top tier red, the bottom tier
// green, everything in between yellow
func riskLabel(tiers config.Tiers, label string) string {
	rank := tiers.Rank(label)
	switch {
	case rank < 0 || len(tiers) < 2:
		return label
	case rank == len(tiers)-1:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case rank == 0:
		return color.New(color.FgGreen).Sprint(label)
	default:
		return color.New(color.FgYellow).Sprint(label)
	}
}
