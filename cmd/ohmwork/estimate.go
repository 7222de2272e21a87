package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voltfield/ohmwork/internal/common"
	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/model"
	"github.com/voltfield/ohmwork/internal/report"
)

func estimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate <parts.csv>",
		Short: "Build a labor estimate from a parts list",
		Long: `Build a labor estimate from a parts CSV.

The CSV needs a "description" column; "quantity" and "catalog_id" columns
are picked up when present. Every part is fuzzy-matched against the labor
table, hours are computed for the chosen condition, and lines that need
attention are flagged for review.

Examples:
  ohmwork estimate parts.csv --rate 95
  ohmwork estimate parts.csv --condition Difficult --prices --save
  ohmwork estimate parts.csv --output estimate.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runEstimate,
	}

	cmd.Flags().StringP("rate", "r", "85", "Hourly labor rate in dollars")
	cmd.Flags().StringP("condition", "c", string(model.ConditionAverage), "Installation condition (Easy, Average, Difficult, Remodel, Old_Work)")
	cmd.Flags().IntP("workers", "w", 0, "Matching workers (0 = default)")
	cmd.Flags().StringP("name", "n", "", "Estimate name (default: parts file name)")
	cmd.Flags().Bool("prices", false, "Fetch vendor material prices")
	cmd.Flags().Bool("save", false, "Save the estimate to history")
	cmd.Flags().StringP("output", "o", "", "Write the summary to a file instead of stdout")

	_ = viper.BindPFlag("estimate.rate", cmd.Flags().Lookup("rate"))
	_ = viper.BindPFlag("estimate.condition", cmd.Flags().Lookup("condition"))
	_ = viper.BindPFlag("estimate.workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	partsPath := args[0]

	rate, err := decimal.NewFromString(viper.GetString("estimate.rate"))
	if err != nil {
		return fmt.Errorf("invalid hourly rate %q: %w", viper.GetString("estimate.rate"), err)
	}

	condition, err := model.ParseCondition(viper.GetString("estimate.condition"))
	if err != nil {
		return err
	}

	parts, err := readPartsCSV(partsPath)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(partsPath), filepath.Ext(partsPath))
	}

	matcher, table, err := newMatcher()
	if err != nil {
		return err
	}
	eng := newEngine(matcher)

	bar := progressbar.Default(int64(len(parts)), "matching")
	est, err := eng.BuildEstimate(ctx, name, parts, condition, rate, func() {
		_ = bar.Add(1)
	})
	if err != nil {
		return fmt.Errorf("failed to build estimate: %w", err)
	}
	_ = bar.Finish()

	if fetchPrices, _ := cmd.Flags().GetBool("prices"); fetchPrices {
		if err := mergeVendorPrices(ctx, eng, est); err != nil {
			return err
		}
	}

	var out io.Writer = os.Stdout
	if outputPath, _ := cmd.Flags().GetString("output"); outputPath != "" {
		f, createErr := os.Create(outputPath) // #nosec G304
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := report.WriteSummary(out, est); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		db, openErr := openStorage(ctx, table)
		if openErr != nil {
			return openErr
		}
		defer closeStorage(db)

		id, saveErr := db.SaveEstimate(ctx, est)
		if saveErr != nil {
			return fmt.Errorf("failed to save estimate: %w", saveErr)
		}
		slog.Info("Estimate saved", "id", id, "name", est.Name)

		totals := estimate.Totals(est.Lines)
		if totals.ActionItemCount() > 0 {
			slog.Info("Lines need review", "count", totals.ActionItemCount(),
				"hint", fmt.Sprintf("ohmwork review %d", id))
		}
	}

	return nil
}

// readPartsCSV reads a parts list. The header must carry a description
// column; quantity and catalog_id columns are optional.
func readPartsCSV(path string) ([]estimate.PartInput, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrNoParts, path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read parts header: %w", err)
	}

	descCol, qtyCol, catalogCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "description", "part", "item":
			descCol = i
		case "quantity", "qty":
			qtyCol = i
		case "catalog_id", "catalog", "sku":
			catalogCol = i
		}
	}
	if descCol == -1 {
		return nil, fmt.Errorf("%w: parts file has no description column", common.ErrNoParts)
	}

	var parts []estimate.PartInput
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read parts row: %w", readErr)
		}

		description := strings.TrimSpace(colAt(row, descCol))
		if description == "" {
			continue
		}

		part := estimate.PartInput{Description: description}
		if qtyCol >= 0 {
			part.Quantity = strings.TrimSpace(colAt(row, qtyCol))
		}
		if catalogCol >= 0 {
			part.CatalogID = strings.TrimSpace(colAt(row, catalogCol))
		}
		parts = append(parts, part)
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in %s", common.ErrNoParts, path)
	}

	return parts, nil
}

func colAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
