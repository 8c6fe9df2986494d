package enrich

import (
	"context"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// contactOutputFields are the person fields requested from the match
// endpoint during the initial contact pass.
var contactOutputFields = []string{"firstName", "lastName", "email", "phone"}

// ContactStage fills missing person fields by direct match on whatever
// identity attributes the record already carries.
type ContactStage struct {
	client zoominfo.Client
}

// NewContactStage creates the contact enrichment stage.
func NewContactStage(client zoominfo.Client) *ContactStage {
	return &ContactStage{client: client}
}

func (s *ContactStage) Name() string { return "contact-enrich" }

// Process matches the record against the person endpoint and merges the
// top result when the match is FULL_MATCH or CONTACT_ONLY_MATCH. Any other
// match status leaves the record unchanged.
func (s *ContactStage) Process(ctx context.Context, token string, rec *model.Record) Outcome {
	req := zoominfo.ContactEnrichRequest{
		MatchPersonInput: []zoominfo.MatchPersonInput{{
			CompanyName:  rec.CompanyName,
			FirstName:    rec.FirstName,
			LastName:     rec.LastName,
			EmailAddress: rec.EmailAddress,
			Phone:        rec.Phone,
		}},
		OutputFields: contactOutputFields,
	}

	resp, err := s.client.EnrichContact(ctx, token, req)
	if err != nil {
		return failRecord(s.Name(), rec, err)
	}
	if !resp.Success || len(resp.Data.Result) == 0 {
		return OutcomeNoMatch
	}

	result := resp.Data.Result[0]
	if result.MatchStatus != zoominfo.MatchStatusFull && result.MatchStatus != zoominfo.MatchStatusContactOnly {
		return OutcomeNoMatch
	}
	if len(result.Data) == 0 {
		return OutcomeNoMatch
	}

	mergePerson(rec, result.Data[0], false)
	return OutcomeEnriched
}

// mergePerson fill-only merges person fields into the record. Job title is
// only merged during hydration, matching the narrower output of the
// initial contact pass.
func mergePerson(rec *model.Record, p zoominfo.PersonData, withJobTitle bool) {
	model.Fill(&rec.FirstName, p.FirstName)
	model.Fill(&rec.LastName, p.LastName)
	model.Fill(&rec.EmailAddress, p.Email)
	model.Fill(&rec.Phone, p.Phone)
	if withJobTitle {
		model.Fill(&rec.JobTitle, p.JobTitle)
	}
}
