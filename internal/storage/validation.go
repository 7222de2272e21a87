package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voltfield/ohmwork/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidEstimate = errors.New("invalid estimate")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEstimate validates an estimate before persisting it.
func validateEstimate(est *model.Estimate) error {
	if est == nil {
		return fmt.Errorf("%w: estimate", ErrNilParameter)
	}
	if strings.TrimSpace(est.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEstimate)
	}
	if !est.HourlyRate.IsPositive() {
		return fmt.Errorf("%w: hourly rate must be positive", ErrInvalidEstimate)
	}
	if !est.DefaultCondition.Valid() {
		return fmt.Errorf("%w: unknown condition %q", ErrInvalidEstimate, est.DefaultCondition)
	}
	if len(est.Lines) == 0 {
		return fmt.Errorf("%w: estimate has no lines", ErrInvalidEstimate)
	}
	return nil
}
