package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/tui"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <estimate-id>",
		Short: "Interactively resolve a saved estimate's action items",
		Long: `Walk through every flagged line of a saved estimate. Each line shows the
top labor-table candidates; pick one to resolve the line, search for a
better match, or skip it. Resolutions are saved back to the estimate.`,
		Args: cobra.ExactArgs(1),
		RunE: runReview,
	}
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid estimate ID %q: %w", args[0], err)
	}

	matcher, table, err := newMatcher()
	if err != nil {
		return err
	}
	eng := newEngine(matcher)

	db, err := openStorage(ctx, table)
	if err != nil {
		return err
	}
	defer closeStorage(db)

	est, err := db.GetEstimate(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load estimate %d: %w", id, err)
	}

	totals := estimate.Totals(est.Lines)
	if totals.ActionItemCount() == 0 {
		slog.Info("Nothing to review", "estimate", est.Name)
		return nil
	}

	resolved, err := tui.Run(eng, matcher, est)
	if err != nil {
		return err
	}
	if resolved == 0 {
		slog.Info("No lines resolved, estimate unchanged", "estimate", est.Name)
		return nil
	}

	if err := db.UpdateEstimate(ctx, est); err != nil {
		return fmt.Errorf("failed to save reviewed estimate: %w", err)
	}

	remaining := estimate.Totals(est.Lines)
	slog.Info("Review saved",
		"estimate", est.Name,
		"resolved", resolved,
		"remaining", remaining.ActionItemCount())

	return nil
}
