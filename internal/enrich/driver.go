package enrich

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/dataset"
	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/internal/session"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// PassReport accumulates outcome counts for one stage pass.
type PassReport struct {
	Stage     string
	Processed int
	Enriched  int
	NoMatch   int
	Failed    int
	Skipped   int
}

func (r *PassReport) add(o Outcome) {
	r.Processed++
	switch o {
	case OutcomeEnriched:
		r.Enriched++
	case OutcomeNoMatch:
		r.NoMatch++
	case OutcomeFailed:
		r.Failed++
	case OutcomeSkipped:
		r.Skipped++
	}
}

// Driver runs stage passes over the dataset. Each pass loads the full
// collection, processes records one at a time in order, and persists the
// collection whole before the next stage starts, so an interrupted run
// loses at most one stage of in-memory progress.
type Driver struct {
	client zoominfo.Client
	guard  *session.Guard
	store  dataset.Store
}

// NewDriver creates a pass driver.
func NewDriver(client zoominfo.Client, guard *session.Guard, store dataset.Store) *Driver {
	return &Driver{client: client, guard: guard, store: store}
}

// Run executes the full enrichment sequence: contact enrichment, the
// strict and loose company tiers, the missing-contact scan, the contact
// search cascade, new-contact hydration, and the final address backfill.
// The session is threaded through every pass; auth and file failures abort
// the run, per-record failures never do.
func (d *Driver) Run(ctx context.Context) ([]PassReport, error) {
	sess, err := d.guard.Login(ctx)
	if err != nil {
		return nil, err
	}

	var reports []PassReport

	stages := []Stage{
		NewContactStage(d.client),
		NewCompanyStage(d.client, true),
		NewCompanyStage(d.client, false),
	}
	for _, stage := range stages {
		report, err := d.RunPass(ctx, &sess, stage)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *report)
	}

	if err := d.transform(ctx, "needs-contact-scan", func(records []model.Record) {
		missing := dataset.UpdateNeedsContact(records)
		zap.L().Info("enrich: missing contacts flagged", zap.Int("count", missing))
	}); err != nil {
		return reports, err
	}

	for _, stage := range []Stage{NewSearchStage(d.client), NewHydrateStage(d.client)} {
		report, err := d.RunPass(ctx, &sess, stage)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *report)
	}

	if err := d.transform(ctx, "address-backfill", func(records []model.Record) {
		dataset.BackfillAddress(records)
	}); err != nil {
		return reports, err
	}

	return reports, nil
}

// RunPass runs a single stage over every record, checking token freshness
// before each record's outbound calls, and persists the result. Records
// are processed strictly in order, one HTTP round-trip at a time.
func (d *Driver) RunPass(ctx context.Context, sess *session.Session, stage Stage) (*PassReport, error) {
	records, err := d.store.Load(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: load dataset")
	}

	report := &PassReport{Stage: stage.Name()}
	for i := range records {
		fresh, err := d.guard.EnsureFresh(ctx, *sess)
		if err != nil {
			return nil, err
		}
		*sess = fresh

		report.add(stage.Process(ctx, sess.Token, &records[i]))
	}

	if err := d.store.Save(ctx, records); err != nil {
		return nil, eris.Wrap(err, "enrich: save dataset")
	}

	zap.L().Info("enrich: pass complete",
		zap.String("stage", report.Stage),
		zap.Int("processed", report.Processed),
		zap.Int("enriched", report.Enriched),
		zap.Int("no_match", report.NoMatch),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// transform applies an in-memory mutation to the whole dataset and
// persists it, with the same checkpoint semantics as a stage pass.
func (d *Driver) transform(ctx context.Context, name string, fn func(records []model.Record)) error {
	records, err := d.store.Load(ctx)
	if err != nil {
		return eris.Wrap(err, "enrich: load dataset")
	}

	fn(records)

	if err := d.store.Save(ctx, records); err != nil {
		return eris.Wrap(err, "enrich: save dataset")
	}

	zap.L().Info("enrich: transform complete", zap.String("step", name))
	return nil
}
