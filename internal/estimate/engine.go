package estimate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/voltfield/ohmwork/internal/match"
	"github.com/voltfield/ohmwork/internal/model"
	"github.com/voltfield/ohmwork/internal/quantity"
	"github.com/voltfield/ohmwork/internal/service"
)

// PartInput is one raw row of a parts list. Quantity is the raw quantity
// field as entered or pasted; an empty field defaults the count to 1 and
// flags the line. CatalogID is an optional exact vendor item number used
// only for price lookups.
type PartInput struct {
	Description string
	Quantity    string
	CatalogID   string
}

// Options configures estimate building.
type Options struct {
	Workers int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Workers: 4}
}

// Engine turns parts lists into priced estimates. It owns no mutable
// state beyond its matcher reference, so one engine may serve concurrent
// batches.
type Engine struct {
	matcher *match.Matcher
	workers int
}

// NewEngine creates an engine over the given matcher.
func NewEngine(matcher *match.Matcher, opts Options) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	return &Engine{matcher: matcher, workers: opts.Workers}
}

// BuildLine matches, parses and costs a single part line.
func (e *Engine) BuildLine(input PartInput, condition model.Condition, rate decimal.Decimal) model.PartLineItem {
	li := model.PartLineItem{
		RawDescription: input.Description,
		CatalogID:      input.CatalogID,
		Condition:      condition,
	}

	parsed := quantity.Parse(input.Quantity)
	li.Quantity = parsed.Quantity
	li.Unit = parsed.Unit
	li.QuantityParsed = parsed.Parsed
	if !parsed.Parsed {
		li.Flag(ReasonQuantityDefault)
	}

	li.Match = e.matcher.Match(input.Description)
	switch li.Match.Status {
	case model.MatchNone:
		li.Flag(ReasonNoMatch)
	case model.MatchNeedsReview:
		li.Flag(ReasonLowConfidence)
	case model.MatchAutoAccepted:
	}

	Compute(&li, rate)
	return li
}

// BuildEstimate runs a whole parts list through the engine. Lines are
// matched in parallel and reassembled in input order; a problem with one
// line becomes a flag on that line, never an abort of the batch. The
// progress callback, when non-nil, is invoked once per completed line.
func (e *Engine) BuildEstimate(ctx context.Context, name string, parts []PartInput, condition model.Condition, rate decimal.Decimal, progress func()) (*model.Estimate, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts provided")
	}
	if !condition.Valid() {
		return nil, fmt.Errorf("invalid working condition %q", condition)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("hourly rate must be positive, got %s", rate)
	}

	start := time.Now()
	lines := make([]model.PartLineItem, len(parts))

	// Fan indices out to workers; each index is written exactly once, so
	// the results slice needs no locking and order is preserved for free.
	work := make(chan int, len(parts))
	for i := range parts {
		work <- i
	}
	close(work)

	var wg sync.WaitGroup
	wg.Add(e.workers)
	for w := 0; w < e.workers; w++ {
		go func() {
			defer wg.Done()
			for i := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				lines[i] = e.BuildLine(parts[i], condition, rate)
				if progress != nil {
					progress()
				}
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	est := &model.Estimate{
		Name:             name,
		HourlyRate:       rate,
		DefaultCondition: condition,
		Lines:            lines,
		CreatedAt:        time.Now(),
	}

	totals := Totals(est.Lines)
	slog.Info("Estimate built",
		"name", name,
		"lines", len(lines),
		"auto_accepted", totals.Histogram.AutoAccepted,
		"needs_review", totals.Histogram.NeedsReview,
		"no_match", totals.Histogram.NoMatch,
		"duration", time.Since(start))

	return est, nil
}

// Rematch reruns matching and costing for one line, e.g. after the
// reference table snapshot or the raw description changed.
func (e *Engine) Rematch(est *model.Estimate, index int) error {
	li, err := lineAt(est, index)
	if err != nil {
		return err
	}
	rebuilt := e.BuildLine(PartInput{Description: li.RawDescription, Quantity: li.Quantity.String(), CatalogID: li.CatalogID}, li.Condition, est.HourlyRate)
	// A price merged earlier survives a rematch.
	rebuilt.MaterialPrice = li.MaterialPrice
	rebuilt.PriceSource = li.PriceSource
	rebuilt.PriceURL = li.PriceURL
	Compute(&rebuilt, est.HourlyRate)
	*li = rebuilt
	return nil
}

// AssignRecord resolves a flagged line to a manually chosen record. The
// line is costed against the record and its review flags are cleared.
func (e *Engine) AssignRecord(est *model.Estimate, index int, rec *model.LaborRecord) error {
	li, err := lineAt(est, index)
	if err != nil {
		return err
	}
	li.Match = model.MatchResult{
		Record:     rec,
		Confidence: 100,
		Status:     model.MatchAutoAccepted,
	}
	li.Flagged = false
	li.FlagReasons = nil
	if !li.QuantityParsed {
		li.Flag(ReasonQuantityDefault)
	}
	Compute(li, est.HourlyRate)
	return nil
}

// SetQuantity reparses a raw quantity for one line and recomputes it.
func (e *Engine) SetQuantity(est *model.Estimate, index int, raw string) error {
	li, err := lineAt(est, index)
	if err != nil {
		return err
	}
	parsed := quantity.Parse(raw)
	li.Quantity = parsed.Quantity
	if parsed.Unit != "" {
		li.Unit = parsed.Unit
	}
	li.QuantityParsed = parsed.Parsed
	if !parsed.Parsed {
		li.Flag(ReasonQuantityDefault)
	}
	Compute(li, est.HourlyRate)
	return nil
}

// SetCondition changes the working condition for one line and recomputes it.
func (e *Engine) SetCondition(est *model.Estimate, index int, condition model.Condition) error {
	if !condition.Valid() {
		return fmt.Errorf("invalid working condition %q", condition)
	}
	li, err := lineAt(est, index)
	if err != nil {
		return err
	}
	li.Condition = condition
	Compute(li, est.HourlyRate)
	return nil
}

// SetRate changes the estimate's hourly rate and recomputes every line.
func (e *Engine) SetRate(est *model.Estimate, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("hourly rate must be positive, got %s", rate)
	}
	est.HourlyRate = rate
	for i := range est.Lines {
		Compute(&est.Lines[i], rate)
	}
	return nil
}

// MergePrice applies an external vendor quote to a line. This is the only
// mutation allowed on a line after creation, and it touches nothing but
// the material-price fields before recomputing costs.
func (e *Engine) MergePrice(est *model.Estimate, index int, quote *service.PriceQuote) error {
	li, err := lineAt(est, index)
	if err != nil {
		return err
	}
	if quote == nil || quote.Price == nil {
		return nil
	}
	price := *quote.Price
	li.MaterialPrice = &price
	li.PriceSource = quote.Vendor
	li.PriceURL = quote.URL
	Compute(li, est.HourlyRate)
	return nil
}

func lineAt(est *model.Estimate, index int) (*model.PartLineItem, error) {
	if index < 0 || index >= len(est.Lines) {
		return nil, fmt.Errorf("line index %d out of range (estimate has %d lines)", index, len(est.Lines))
	}
	return &est.Lines[index], nil
}
