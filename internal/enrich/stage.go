// Package enrich implements the record enrichment stages and the pass
// driver that runs them over the dataset.
package enrich

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// Outcome is the per-record result of one stage.
type Outcome int

const (
	// OutcomeSkipped means the stage did not apply to the record.
	OutcomeSkipped Outcome = iota
	// OutcomeNoMatch means the provider returned no usable result; the
	// record is unchanged. Not an error.
	OutcomeNoMatch
	// OutcomeEnriched means at least the stage's merge ran against a
	// usable result.
	OutcomeEnriched
	// OutcomeFailed means the API call failed; the failure is recorded on
	// the record and the pass continues.
	OutcomeFailed
)

// String returns the outcome label used in logs and reports.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeEnriched:
		return "enriched"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage processes one record with a fresh token. Implementations mutate
// the record in place with fill-only semantics and never return an error:
// per-record failures are recorded onto the record itself, so one bad
// record cannot abort the pass.
type Stage interface {
	Name() string
	Process(ctx context.Context, token string, rec *model.Record) Outcome
}

// failRecord records an API failure on the record. The raw provider error
// body is preserved when available.
func failRecord(stage string, rec *model.Record, err error) Outcome {
	var apiErr *zoominfo.APIError
	if errors.As(err, &apiErr) {
		rec.MarkFailed(apiErr.Body)
		zap.L().Warn("enrich: provider error",
			zap.String("stage", stage),
			zap.String("company", rec.CompanyName),
			zap.Int("status", apiErr.StatusCode),
		)
	} else {
		rec.MarkFailed(err.Error())
		zap.L().Warn("enrich: request error",
			zap.String("stage", stage),
			zap.String("company", rec.CompanyName),
			zap.Error(err),
		)
	}
	return OutcomeFailed
}
