package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voltfield/ohmwork/internal/cli"
	"github.com/voltfield/ohmwork/internal/model"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [section] [category]",
		Short: "Browse the labor table by section and category",
		Long: `Browse the labor-unit table hierarchy.

Examples:
  ohmwork browse                      # list sections
  ohmwork browse Conduit              # list categories in a section
  ohmwork browse Conduit "EMT Fittings"  # list items with hours`,
		Args: cobra.MaximumNArgs(2),
		RunE: runBrowse,
	}
}

func runBrowse(_ *cobra.Command, args []string) error {
	_, table, err := newMatcher()
	if err != nil {
		return err
	}

	switch len(args) {
	case 0:
		fmt.Println(cli.TitleStyle.Render("Sections"))
		for _, section := range table.Sections() {
			fmt.Println("  " + section)
		}
	case 1:
		categories := table.Categories(args[0])
		if len(categories) == 0 {
			return fmt.Errorf("no categories found in section %q", args[0])
		}
		fmt.Println(cli.TitleStyle.Render(args[0]))
		for _, category := range categories {
			fmt.Println("  " + category)
		}
	case 2:
		items := table.Items(args[0], args[1])
		if len(items) == 0 {
			return fmt.Errorf("no items found in %s > %s", args[0], args[1])
		}
		fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s > %s", args[0], args[1])))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUNIT\tAVG HRS\tITEM")
		for _, rec := range items {
			hours := "-"
			if h, ok := rec.HoursFor(model.ConditionAverage); ok {
				hours = fmt.Sprintf("%.4g", h)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", rec.ID, rec.Unit, hours, rec.Item)
		}
		return w.Flush()
	}
	return nil
}
