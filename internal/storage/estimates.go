package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltfield/ohmwork/internal/common"
	"github.com/voltfield/ohmwork/internal/model"
	"github.com/voltfield/ohmwork/internal/service"
)

const flagReasonSeparator = "\x1f"

// SaveEstimate persists an estimate and its line items atomically,
// returning the assigned estimate ID.
func (s *SQLiteStorage) SaveEstimate(ctx context.Context, est *model.Estimate) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateEstimate(est); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createdAt := est.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO estimates (name, hourly_rate, default_condition, created_at)
		VALUES (?, ?, ?, ?)
	`, est.Name, est.HourlyRate.String(), string(est.DefaultCondition), createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert estimate: %w", err)
	}

	estimateID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read estimate id: %w", err)
	}

	for i := range est.Lines {
		if err := insertLine(ctx, tx, estimateID, i, &est.Lines[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit estimate: %w", err)
	}

	est.ID = estimateID
	return estimateID, nil
}

// UpdateEstimate rewrites a saved estimate in place, replacing its header
// fields and all line items.
func (s *SQLiteStorage) UpdateEstimate(ctx context.Context, est *model.Estimate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEstimate(est); err != nil {
		return err
	}
	if est.ID == 0 {
		return fmt.Errorf("%w: estimate has no ID", ErrInvalidEstimate)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE estimates SET name = ?, hourly_rate = ?, default_condition = ?
		WHERE id = ?
	`, est.Name, est.HourlyRate.String(), string(est.DefaultCondition), est.ID)
	if err != nil {
		return fmt.Errorf("failed to update estimate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrEstimateNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE estimate_id = ?`, est.ID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}
	for i := range est.Lines {
		if err := insertLine(ctx, tx, est.ID, i, &est.Lines[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertLine(ctx context.Context, tx *sql.Tx, estimateID int64, position int, li *model.PartLineItem) error {
	var recordID any
	if li.Match.Record != nil {
		recordID = li.Match.Record.ID
	}
	var materialPrice any
	if li.MaterialPrice != nil {
		materialPrice = li.MaterialPrice.String()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO line_items (
			estimate_id, position, raw_description, catalog_id, quantity, unit,
			quantity_parsed, record_id, confidence, match_status, condition,
			labor_hours, labor_cost, material_price, material_cost,
			flagged, flag_reasons, price_source, price_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		estimateID, position, li.RawDescription, li.CatalogID, li.Quantity.String(), li.Unit,
		li.QuantityParsed, recordID, li.Match.Confidence, string(li.Match.Status), string(li.Condition),
		li.LaborHours.String(), li.LaborCost.String(), materialPrice, li.MaterialCost.String(),
		li.Flagged, strings.Join(li.FlagReasons, flagReasonSeparator), li.PriceSource, li.PriceURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert line %d: %w", position, err)
	}
	return nil
}

// GetEstimate loads an estimate with its line items in original order.
func (s *SQLiteStorage) GetEstimate(ctx context.Context, id int64) (*model.Estimate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	est := &model.Estimate{ID: id}
	var rateStr, condStr string

	err := s.db.QueryRowContext(ctx, `
		SELECT name, hourly_rate, default_condition, created_at
		FROM estimates WHERE id = ?
	`, id).Scan(&est.Name, &rateStr, &condStr, &est.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrEstimateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	if est.HourlyRate, err = decimal.NewFromString(rateStr); err != nil {
		return nil, fmt.Errorf("corrupt hourly rate %q: %w", rateStr, err)
	}
	est.DefaultCondition = model.Condition(condStr)

	rows, err := s.db.QueryContext(ctx, `
		SELECT raw_description, catalog_id, quantity, unit, quantity_parsed, record_id,
			confidence, match_status, condition, labor_hours, labor_cost,
			material_price, material_cost, flagged, flag_reasons,
			price_source, price_url
		FROM line_items WHERE estimate_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		li, scanErr := s.scanLine(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		est.Lines = append(est.Lines, *li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read line items: %w", err)
	}

	return est, nil
}

func (s *SQLiteStorage) scanLine(rows *sql.Rows) (*model.PartLineItem, error) {
	var li model.PartLineItem
	var qtyStr, hoursStr, laborCostStr, materialCostStr, statusStr, condStr string
	var materialPrice, reasons, priceSource, priceURL sql.NullString
	var recordID sql.NullInt64

	if err := rows.Scan(
		&li.RawDescription, &li.CatalogID, &qtyStr, &li.Unit, &li.QuantityParsed, &recordID,
		&li.Match.Confidence, &statusStr, &condStr, &hoursStr, &laborCostStr,
		&materialPrice, &materialCostStr, &li.Flagged, &reasons,
		&priceSource, &priceURL,
	); err != nil {
		return nil, fmt.Errorf("failed to scan line item: %w", err)
	}

	var err error
	if li.Quantity, err = decimal.NewFromString(qtyStr); err != nil {
		return nil, fmt.Errorf("corrupt quantity %q: %w", qtyStr, err)
	}
	if li.LaborHours, err = decimal.NewFromString(hoursStr); err != nil {
		return nil, fmt.Errorf("corrupt labor hours %q: %w", hoursStr, err)
	}
	if li.LaborCost, err = decimal.NewFromString(laborCostStr); err != nil {
		return nil, fmt.Errorf("corrupt labor cost %q: %w", laborCostStr, err)
	}
	if li.MaterialCost, err = decimal.NewFromString(materialCostStr); err != nil {
		return nil, fmt.Errorf("corrupt material cost %q: %w", materialCostStr, err)
	}
	if materialPrice.Valid {
		price, priceErr := decimal.NewFromString(materialPrice.String)
		if priceErr != nil {
			return nil, fmt.Errorf("corrupt material price %q: %w", materialPrice.String, priceErr)
		}
		li.MaterialPrice = &price
	}

	li.Match.Status = model.MatchStatus(statusStr)
	li.Condition = model.Condition(condStr)
	li.Flagged = li.Flagged || li.Match.Status != model.MatchAutoAccepted
	if reasons.Valid && reasons.String != "" {
		li.FlagReasons = strings.Split(reasons.String, flagReasonSeparator)
	}
	li.PriceSource = priceSource.String
	li.PriceURL = priceURL.String

	// Record references are weak: resolve against the current table
	// snapshot, tolerating records that no longer exist.
	if recordID.Valid && s.table != nil {
		li.Match.Record = s.table.Get(int(recordID.Int64))
	}

	return &li, nil
}

// ListEstimates returns estimate headers (no line items), newest first.
func (s *SQLiteStorage) ListEstimates(ctx context.Context, filter service.EstimateFilter) ([]model.Estimate, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, name, hourly_rate, default_condition, created_at FROM estimates`
	var args []any
	if filter.NameContains != "" {
		query += ` WHERE name LIKE ?`
		args = append(args, "%"+filter.NameContains+"%")
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Estimate
	for rows.Next() {
		var est model.Estimate
		var rateStr, condStr string
		if err := rows.Scan(&est.ID, &est.Name, &rateStr, &condStr, &est.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		if est.HourlyRate, err = decimal.NewFromString(rateStr); err != nil {
			return nil, fmt.Errorf("corrupt hourly rate %q: %w", rateStr, err)
		}
		est.DefaultCondition = model.Condition(condStr)
		out = append(out, est)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read estimates: %w", err)
	}
	return out, nil
}

// DeleteEstimate removes an estimate and its line items.
func (s *SQLiteStorage) DeleteEstimate(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM line_items WHERE estimate_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrEstimateNotFound
	}

	return tx.Commit()
}
