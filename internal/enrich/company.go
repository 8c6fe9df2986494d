package enrich

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// companyOutputFields is the fixed allow-list of company fields requested
// and merged by both company tiers.
var companyOutputFields = []string{
	"zi_c_location_id", "zi_c_name", "zi_c_company_name",
	"zi_c_phone", "zi_c_url", "zi_c_linkedin_url", "zi_c_naics6",
	"zi_c_industry_primary", "zi_c_sub_industry_primary", "zi_c_employees",
	"zi_c_street", "zi_c_city", "zi_c_state", "zi_c_zip", "zi_c_country",
	"zi_c_company_id",
}

// CompanyStage fills missing company fields. It comes in two tiers built
// from one request builder: the strict tier matches on the full street
// address with a fuzzy-name weight, the loose tier on country alone. The
// driver runs strict first, then loose over whatever strict left
// unresolved.
type CompanyStage struct {
	client zoominfo.Client
	strict bool
}

// NewCompanyStage creates a company enrichment tier.
func NewCompanyStage(client zoominfo.Client, strict bool) *CompanyStage {
	return &CompanyStage{client: client, strict: strict}
}

func (s *CompanyStage) Name() string {
	if s.strict {
		return "company-enrich-strict"
	}
	return "company-enrich-loose"
}

func (s *CompanyStage) Process(ctx context.Context, token string, rec *model.Record) Outcome {
	// The loose tier only handles records the strict tier could not
	// resolve; re-querying a strict match would be a guaranteed no-op.
	if !s.strict && rec.CompanyMatchCriteria == string(model.CompanyMatchStrict) {
		return OutcomeSkipped
	}

	req := s.buildRequest(rec)
	resp, err := s.enrichWithEmailRetry(ctx, token, rec, req)
	if err != nil {
		return failRecord(s.Name(), rec, err)
	}

	if !resp.HasResult() {
		// The loose tier is the last company attempt; a record that
		// matched neither tier is recorded as None.
		if !s.strict && rec.CompanyMatchCriteria == "" {
			rec.CompanyMatchCriteria = string(model.CompanyMatchNone)
		}
		return OutcomeNoMatch
	}

	mergeCompany(rec, resp.Data.Result[0].Data)
	if rec.CompanyMatchCriteria == "" || rec.CompanyMatchCriteria == string(model.CompanyMatchNone) {
		if s.strict {
			rec.CompanyMatchCriteria = string(model.CompanyMatchStrict)
		} else {
			rec.CompanyMatchCriteria = string(model.CompanyMatchLoose)
		}
	}
	return OutcomeEnriched
}

// enrichWithEmailRetry sends the company match request, retrying exactly
// once without the email key on HTTP 400. The provider's validation
// sporadically rejects otherwise-valid emails; dropping the key salvages
// the match on the remaining attributes. Other statuses are not retried.
func (s *CompanyStage) enrichWithEmailRetry(ctx context.Context, token string, rec *model.Record, req zoominfo.CompanyEnrichRequest) (*zoominfo.CompanyEnrichResponse, error) {
	resp, err := s.client.EnrichCompany(ctx, token, req)
	if err == nil {
		return resp, nil
	}

	var apiErr *zoominfo.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		return nil, err
	}
	if req.MatchCompanyInput[0].Email == "" {
		return nil, err
	}

	zap.L().Debug("enrich: retrying company match without email",
		zap.String("stage", s.Name()),
		zap.String("company", rec.CompanyName),
	)
	req.MatchCompanyInput[0].Email = ""
	return s.client.EnrichCompany(ctx, token, req)
}

func (s *CompanyStage) buildRequest(rec *model.Record) zoominfo.CompanyEnrichRequest {
	input := zoominfo.MatchCompanyInput{
		Name:  rec.CompanyName,
		Phone: &zoominfo.CompanyPhone{Phone: rec.Phone},
		Email: rec.EmailAddress,
	}

	if s.strict {
		input.Address = &zoominfo.CompanyAddress{
			Street:  rec.CompanyStreet,
			City:    rec.CompanyCity,
			State:   rec.CompanyState,
			Zip:     rec.CompanyZipCode,
			Country: rec.CompanyCountry,
		}
		input.MatchReasons = []map[string]string{{
			"zi_c_country": zoominfo.MatchReasonExact,
			"zi_c_name":    zoominfo.MatchReasonFuzzy,
		}}
	} else {
		input.Address = &zoominfo.CompanyAddress{
			Country: rec.CompanyCountry,
		}
		input.MatchReasons = []map[string]string{{
			"zi_c_country": zoominfo.MatchReasonExact,
		}}
	}

	return zoominfo.CompanyEnrichRequest{
		MatchCompanyInput: []zoominfo.MatchCompanyInput{input},
		OutputFields:      companyOutputFields,
	}
}

// mergeCompany fill-only merges the fixed company allow-list.
func mergeCompany(rec *model.Record, data *zoominfo.CompanyData) {
	model.Fill(&rec.ZILocationID, data.LocationID.String())
	model.Fill(&rec.ZICompanyID, data.CompanyID.String())
	model.Fill(&rec.ZICompanyName, data.Name)
	model.Fill(&rec.ZIHQName, data.HQName)
	model.Fill(&rec.ZIPhone, data.Phone)
	model.Fill(&rec.ZIURL, data.URL)
	model.Fill(&rec.ZILinkedInURL, data.LinkedInURL)
	model.Fill(&rec.ZINAICS, data.NAICS.String())
	model.Fill(&rec.ZIIndustry, data.IndustryPrimary)
	model.Fill(&rec.ZISubIndustry, data.SubIndustry)
	model.Fill(&rec.ZIEmployeeCount, data.Employees.String())
	model.Fill(&rec.ZIStreet, data.Street)
	model.Fill(&rec.ZICity, data.City)
	model.Fill(&rec.ZIState, data.State)
	model.Fill(&rec.ZIZip, data.Zip)
	model.Fill(&rec.ZICountry, data.Country)
}
