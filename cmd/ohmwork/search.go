package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voltfield/ohmwork/internal/cli"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <description>",
		Short: "Fuzzy-search the labor table",
		Long: `Fuzzy-search the labor-unit table the way the estimator matches parts.

Examples:
  ohmwork search "3/4 emt connector"
  ohmwork search "duplex recep" --limit 20`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntP("limit", "l", 10, "Maximum results to show")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	limit, _ := cmd.Flags().GetInt("limit")

	matcher, _, err := newMatcher()
	if err != nil {
		return err
	}

	candidates := matcher.TopN(query, limit)
	if len(candidates) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No matches."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Matches for %q", query)))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tID\tUNIT\tITEM")
	for _, cand := range candidates {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			cli.FormatConfidence(cand.Score),
			cand.Record.ID,
			cand.Record.Unit,
			cand.Record.Display())
	}
	return w.Flush()
}
