package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// Strict seniority/department filter applied by the strict search tiers.
const (
	strictManagementLevel = "C Level Exec, VP Level Exec, Director, Manager"
	strictDepartment      = "C-Suite, Operations, Marketing, Engineering & Technical"
)

// searchTier is one attempt of the contact-search cascade.
type searchTier struct {
	label       model.ContactMatchTier
	useLocation bool
	strict      bool
}

// searchTiers is the cascade order: location scope before company scope,
// strict filtering before loose. The first tier returning a person ID
// wins; later tiers are not attempted.
var searchTiers = []searchTier{
	{label: model.TierLocationStrict, useLocation: true, strict: true},
	{label: model.TierLocationLoose, useLocation: true, strict: false},
	{label: model.TierCompanyStrict, useLocation: false, strict: true},
	{label: model.TierCompanyLoose, useLocation: false, strict: false},
}

// SearchStage resolves a person ID for records flagged as needing a
// contact, walking the fallback cascade over whichever of the resolved
// location/company identifiers are available.
type SearchStage struct {
	client zoominfo.Client
}

// NewSearchStage creates the contact search stage.
func NewSearchStage(client zoominfo.Client) *SearchStage {
	return &SearchStage{client: client}
}

func (s *SearchStage) Name() string { return "contact-search" }

func (s *SearchStage) Process(ctx context.Context, token string, rec *model.Record) Outcome {
	if rec.NeedsContact != model.FlagYes {
		return OutcomeSkipped
	}

	// Without either identifier no request is worth sending: this is a
	// no-match, not an error.
	if rec.ZILocationID == "" && rec.ZICompanyID == "" {
		rec.NewContactFound = model.FlagNo
		return OutcomeNoMatch
	}

	failed := false
	for _, tier := range searchTiers {
		if tier.useLocation && rec.ZILocationID == "" {
			continue
		}
		if !tier.useLocation && rec.ZICompanyID == "" {
			continue
		}

		resp, err := s.client.SearchContact(ctx, token, buildSearchRequest(rec, tier))
		if err != nil {
			// A failed tier is recorded but does not stop the cascade;
			// a later tier can still resolve the record.
			failRecord(s.Name(), rec, err)
			failed = true
			continue
		}

		if id := resp.FirstID(); id != "" {
			rec.PersonID = id
			rec.ContactMatchCriteria = string(tier.label)
			rec.NewContactFound = model.FlagYes
			zap.L().Debug("enrich: contact resolved",
				zap.String("company", rec.CompanyName),
				zap.String("tier", string(tier.label)),
			)
			return OutcomeEnriched
		}
	}

	rec.NewContactFound = model.FlagNo
	if failed {
		return OutcomeFailed
	}
	return OutcomeNoMatch
}

func buildSearchRequest(rec *model.Record, tier searchTier) zoominfo.ContactSearchRequest {
	req := zoominfo.ContactSearchRequest{
		RequiredFields: "email, phone",
		SortBy:         "hierarchy",
		ResultsPerPage: 1,
		Page:           1,
	}

	if tier.useLocation {
		req.LocationCompanyID = []string{rec.ZILocationID}
	} else {
		req.CompanyID = rec.ZICompanyID
	}

	if tier.strict {
		req.ManagementLevel = strictManagementLevel
		req.Department = strictDepartment
	}

	return req
}
