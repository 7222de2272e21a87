package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voltfield/ohmwork/internal/config"
	"github.com/voltfield/ohmwork/internal/model"
	"github.com/voltfield/ohmwork/internal/report"
	"github.com/voltfield/ohmwork/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <estimate-id>",
		Short: "Export a saved estimate",
		Long: `Export a saved estimate as CSV, XLSX, a plain-text summary, or to
Google Sheets.

Examples:
  ohmwork export 3 --format csv --output estimate.csv
  ohmwork export 3 --format xlsx --output estimate.xlsx
  ohmwork export 3 --format summary
  ohmwork export 3 --format sheets`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", "summary", "Export format (csv, xlsx, summary, sheets)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout for csv/summary)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid estimate ID %q: %w", args[0], err)
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

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

	switch format {
	case "csv":
		return exportWriter(outputPath, est, report.WriteCSV)
	case "summary":
		return exportWriter(outputPath, est, report.WriteSummary)
	case "xlsx":
		if outputPath == "" {
			return fmt.Errorf("xlsx export needs --output")
		}
		if err := report.WriteXLSX(outputPath, est); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		slog.Info("Workbook written", "path", outputPath)
		return nil
	case "sheets":
		return exportSheets(cmd, est)
	default:
		return fmt.Errorf("unknown export format %q (use csv, xlsx, summary, or sheets)", format)
	}
}

func exportWriter(outputPath string, est *model.Estimate, write func(io.Writer, *model.Estimate) error) error {
	var out io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := write(out, est); err != nil {
		return fmt.Errorf("failed to export estimate: %w", err)
	}
	if outputPath != "" {
		slog.Info("Estimate exported", "path", outputPath)
	}
	return nil
}

func exportSheets(cmd *cobra.Command, est *model.Estimate) error {
	ctx := cmd.Context()

	cfg := sheets.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		// Fall back to config file values
		cfg.ClientID = viper.GetString("sheets.client_id")
		cfg.ClientSecret = viper.GetString("sheets.client_secret")
		cfg.RefreshToken = viper.GetString("sheets.refresh_token")
		cfg.ServiceAccountPath = config.ExpandPath(viper.GetString("sheets.service_account_path"))
		cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
		cfg.SpreadsheetName = viper.GetString("sheets.spreadsheet_name")
	}
	if cfg.SpreadsheetName == "" {
		cfg.SpreadsheetName = est.Name
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	return writer.Write(ctx, est)
}
