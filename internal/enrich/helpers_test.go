package enrich

import (
	"context"
	"slices"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// fakeClient implements zoominfo.Client with per-endpoint hooks. Endpoints
// without a hook report no match.
type fakeClient struct {
	authFn    func(ctx context.Context, username, password string) (string, error)
	contactFn func(ctx context.Context, token string, req zoominfo.ContactEnrichRequest) (*zoominfo.ContactEnrichResponse, error)
	companyFn func(ctx context.Context, token string, req zoominfo.CompanyEnrichRequest) (*zoominfo.CompanyEnrichResponse, error)
	searchFn  func(ctx context.Context, token string, req zoominfo.ContactSearchRequest) (*zoominfo.ContactSearchResponse, error)
}

func (f *fakeClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	if f.authFn != nil {
		return f.authFn(ctx, username, password)
	}
	return "test-token", nil
}

func (f *fakeClient) EnrichContact(ctx context.Context, token string, req zoominfo.ContactEnrichRequest) (*zoominfo.ContactEnrichResponse, error) {
	if f.contactFn != nil {
		return f.contactFn(ctx, token, req)
	}
	return &zoominfo.ContactEnrichResponse{Success: true}, nil
}

func (f *fakeClient) EnrichCompany(ctx context.Context, token string, req zoominfo.CompanyEnrichRequest) (*zoominfo.CompanyEnrichResponse, error) {
	if f.companyFn != nil {
		return f.companyFn(ctx, token, req)
	}
	return &zoominfo.CompanyEnrichResponse{Success: true}, nil
}

func (f *fakeClient) SearchContact(ctx context.Context, token string, req zoominfo.ContactSearchRequest) (*zoominfo.ContactSearchResponse, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, token, req)
	}
	return &zoominfo.ContactSearchResponse{}, nil
}

// contactMatch builds a contact response with a single result.
func contactMatch(status string, p zoominfo.PersonData) *zoominfo.ContactEnrichResponse {
	resp := &zoominfo.ContactEnrichResponse{Success: true}
	resp.Data.Result = []zoominfo.ContactResult{{
		MatchStatus: status,
		Data:        []zoominfo.PersonData{p},
	}}
	return resp
}

// companyMatch builds a company response with a single result.
func companyMatch(data zoominfo.CompanyData) *zoominfo.CompanyEnrichResponse {
	resp := &zoominfo.CompanyEnrichResponse{Success: true}
	resp.Data.Result = []zoominfo.CompanyResult{{Data: &data}}
	return resp
}

// memStore is an in-memory dataset.Store for driver tests.
type memStore struct {
	records []model.Record
	saves   int
}

func (m *memStore) Load(ctx context.Context) ([]model.Record, error) {
	return slices.Clone(m.records), nil
}

func (m *memStore) Save(ctx context.Context, records []model.Record) error {
	m.records = slices.Clone(records)
	m.saves++
	return nil
}
