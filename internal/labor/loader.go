package labor

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/voltfield/ohmwork/internal/model"
)

// Required reference table columns. Section, Category and Unit are optional;
// a missing Unit defaults to each.
var requiredColumns = []string{"Item", "Easy", "Average", "Difficult", "Remodel", "Old_Work"}

// LoadStats reports data quality for one table load.
type LoadStats struct {
	Rows        int
	Loaded      int
	SkippedRows int
	BadValues   int
}

// Loader reads a labor-unit reference table from a tabular source.
type Loader struct {
	normalizer *Normalizer
}

// NewLoader creates a loader that indexes records with the given normalizer.
func NewLoader(n *Normalizer) *Loader {
	return &Loader{normalizer: n}
}

// Load reads a reference table from a CSV or XLSX file. Malformed rows are
// skipped with a warning; an unreadable source or a source yielding zero
// valid records is fatal.
func (l *Loader) Load(path string) (*Table, LoadStats, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to read reference table %s: %w", path, err)
	}

	return l.loadRows(rows, path)
}

func (l *Loader) loadRows(rows [][]string, source string) (*Table, LoadStats, error) {
	if len(rows) == 0 {
		return nil, LoadStats{}, fmt.Errorf("reference table %s is empty", source)
	}

	cols, err := columnIndex(rows[0])
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("reference table %s: %w", source, err)
	}

	stats := LoadStats{Rows: len(rows) - 1}
	records := make([]*model.LaborRecord, 0, len(rows)-1)

	for rowNum, row := range rows[1:] {
		item := cell(row, cols["Item"])
		if strings.TrimSpace(item) == "" {
			stats.SkippedRows++
			slog.Warn("Skipping reference row without item description",
				"source", source,
				"row", rowNum+2)
			continue
		}

		rec := &model.LaborRecord{
			ID:       len(records) + 1,
			Section:  strings.TrimSpace(cell(row, cols["Section"])),
			Category: strings.TrimSpace(cell(row, cols["Category"])),
			Item:     strings.TrimSpace(item),
			Unit:     parseUnit(cell(row, cols["Unit"])),
			Hours:    make(map[model.Condition]float64, 5),
		}

		for _, cond := range model.AllConditions() {
			raw := strings.TrimSpace(cell(row, cols[string(cond)]))
			if raw == "" {
				continue // condition unavailable for this record
			}
			v, parseErr := strconv.ParseFloat(raw, 64)
			if parseErr != nil || v < 0 {
				stats.BadValues++
				slog.Warn("Ignoring malformed labor-hour value",
					"source", source,
					"row", rowNum+2,
					"condition", cond,
					"value", raw)
				continue
			}
			rec.Hours[cond] = v
		}

		records = append(records, rec)
		stats.Loaded++
	}

	if len(records) == 0 {
		return nil, stats, fmt.Errorf("reference table %s produced no valid records", source)
	}

	slog.Info("Loaded labor reference table",
		"source", source,
		"records", stats.Loaded,
		"skipped_rows", stats.SkippedRows,
		"bad_values", stats.BadValues)

	return NewTable(records, l.normalizer), stats, nil
}

// columnIndex maps header names to column positions and validates that the
// required columns are present.
func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	// Optional columns resolve to -1 so cell() returns empty for them.
	for _, name := range []string{"Section", "Category", "Unit"} {
		if _, ok := cols[name]; !ok {
			cols[name] = -1
		}
	}
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseUnit(raw string) model.UnitOfMeasure {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "C":
		return model.UnitPerHundred
	case "M":
		return model.UnitPerThousand
	default:
		return model.UnitEach
	}
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from user config
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close reference table file", "error", closeErr)
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close reference table workbook", "error", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}
