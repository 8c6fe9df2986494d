package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// hydrateOutputFields adds jobTitle to the person fields fetched for a
// newly resolved contact.
var hydrateOutputFields = []string{"firstName", "lastName", "email", "phone", "jobTitle"}

// HydrateStage fetches full contact details for records whose search pass
// resolved a person ID, and merges them fill-only.
type HydrateStage struct {
	client zoominfo.Client
}

// NewHydrateStage creates the new-contact hydration stage.
func NewHydrateStage(client zoominfo.Client) *HydrateStage {
	return &HydrateStage{client: client}
}

func (s *HydrateStage) Name() string { return "contact-hydrate" }

func (s *HydrateStage) Process(ctx context.Context, token string, rec *model.Record) Outcome {
	if rec.NeedsContact != model.FlagYes || rec.PersonID == "" {
		return OutcomeSkipped
	}

	req := zoominfo.ContactEnrichRequest{
		MatchPersonInput: []zoominfo.MatchPersonInput{{PersonID: rec.PersonID}},
		OutputFields:     hydrateOutputFields,
	}

	resp, err := s.client.EnrichContact(ctx, token, req)
	if err != nil {
		return failRecord(s.Name(), rec, err)
	}

	// A previously resolved person ID can still come back empty or
	// mis-shaped; leave the record as-is rather than aborting the pass.
	if !resp.Success || len(resp.Data.Result) == 0 || len(resp.Data.Result[0].Data) == 0 {
		zap.L().Warn("enrich: hydration returned no person data",
			zap.String("company", rec.CompanyName),
			zap.String("person_id", rec.PersonID),
		)
		return OutcomeNoMatch
	}

	mergePerson(rec, resp.Data.Result[0].Data[0], true)
	return OutcomeEnriched
}
