package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/voltfield/ohmwork/internal/cli"
	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/report"
	"github.com/voltfield/ohmwork/internal/service"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved estimates",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	cmd.AddCommand(historyDeleteCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved estimates",
		RunE:  runHistoryList,
	}

	cmd.Flags().StringP("name", "n", "", "Filter by name substring")
	cmd.Flags().IntP("limit", "l", 20, "Maximum estimates to show")

	return cmd
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Listing shows headers only, no record rehydration needed
	db, err := openStorage(ctx, nil)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	name, _ := cmd.Flags().GetString("name")
	limit, _ := cmd.Flags().GetInt("limit")

	estimates, err := db.ListEstimates(ctx, service.EstimateFilter{
		NameContains: name,
		Limit:        limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list estimates: %w", err)
	}
	if len(estimates) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No saved estimates."))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tRATE\tCONDITION\tNAME")
	for i := range estimates {
		est := &estimates[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			est.ID,
			est.CreatedAt.Format("2006-01-02 15:04"),
			est.HourlyRate.StringFixed(2),
			est.DefaultCondition,
			est.Name)
	}
	return w.Flush()
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <estimate-id>",
		Short: "Show a saved estimate's summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid estimate ID %q: %w", args[0], err)
			}

			table, _, err := loadTable()
			if err != nil {
				return err
			}

			db, err := openStorage(ctx, table)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			est, err := db.GetEstimate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load estimate %d: %w", id, err)
			}

			return report.WriteSummary(os.Stdout, est)
		},
	}
}

func historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <estimate-id>",
		Short: "Delete a saved estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid estimate ID %q: %w", args[0], err)
			}

			db, err := openStorage(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStorage(db)

			est, err := db.GetEstimate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to load estimate %d: %w", id, err)
			}

			if err := db.DeleteEstimate(ctx, id); err != nil {
				return fmt.Errorf("failed to delete estimate %d: %w", id, err)
			}

			totals := estimate.Totals(est.Lines)
			slog.Info("Estimate deleted",
				"id", id,
				"name", est.Name,
				"lines", totals.LineCount)
			return nil
		},
	}
}
