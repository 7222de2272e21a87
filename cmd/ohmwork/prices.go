package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voltfield/ohmwork/internal/common"
	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/model"
	"github.com/voltfield/ohmwork/internal/pricing"
)

func pricesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices <estimate-id>",
		Short: "Fetch vendor material prices for a saved estimate",
		Long: `Look up each line of a saved estimate in the vendor catalog and merge
the returned material prices into the estimate.

Lines with a catalog ID are looked up by exact item number; everything else
is searched by description. Lookups are rate limited and cached, so rerunning
the command is cheap.`,
		Args: cobra.ExactArgs(1),
		RunE: runPrices,
	}

	cmd.Flags().String("vendor-url", "", "Vendor catalog base URL")

	_ = viper.BindPFlag("pricing.base_url", cmd.Flags().Lookup("vendor-url"))

	return cmd
}

func runPrices(cmd *cobra.Command, args []string) error {
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

	if err := mergeVendorPrices(ctx, eng, est); err != nil {
		return err
	}

	if err := db.UpdateEstimate(ctx, est); err != nil {
		return fmt.Errorf("failed to save priced estimate: %w", err)
	}

	totals := estimate.Totals(est.Lines)
	slog.Info("Prices merged",
		"estimate", est.Name,
		"material_cost", totals.TotalMaterialCost.StringFixed(2),
		"total_cost", totals.TotalCost.StringFixed(2))

	return nil
}

// mergeVendorPrices looks up every line in the vendor catalog and merges
// the quotes in. A line the vendor cannot price stays as it was.
func mergeVendorPrices(ctx context.Context, eng *estimate.Engine, est *model.Estimate) error {
	cfg := pricing.DefaultConfig()
	if baseURL := viper.GetString("pricing.base_url"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if vendor := viper.GetString("pricing.vendor"); vendor != "" {
		cfg.Vendor = vendor
	}
	if ttl := viper.GetDuration("pricing.cache_ttl"); ttl > 0 {
		cfg.CacheTTL = ttl
	}
	client := pricing.NewClient(cfg)

	bar := progressbar.Default(int64(len(est.Lines)), "pricing")
	start := time.Now()
	priced := 0

	for i := range est.Lines {
		li := &est.Lines[i]
		quote, err := client.Lookup(ctx, li.RawDescription, li.CatalogID)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if errors.Is(err, common.ErrPriceUnavailable) {
				slog.Debug("No price for line", "line", i, "description", li.RawDescription)
			} else {
				slog.Warn("Price lookup failed", "line", i, "description", li.RawDescription, "error", err)
			}
			_ = bar.Add(1)
			continue
		}
		if err := eng.MergePrice(est, i, quote); err != nil {
			return err
		}
		if quote != nil && quote.Price != nil {
			priced++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	slog.Info("Vendor lookup complete",
		"lines", len(est.Lines),
		"priced", priced,
		"duration", time.Since(start))

	return nil
}
