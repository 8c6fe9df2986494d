package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intit/supplier-enrich/internal/model"
	"github.com/intit/supplier-enrich/internal/session"
	"github.com/intit/supplier-enrich/pkg/zoominfo"
)

// stageFunc adapts a function to the Stage interface for driver tests.
type stageFunc struct {
	name string
	fn   func(ctx context.Context, token string, rec *model.Record) Outcome
}

func (s stageFunc) Name() string { return s.name }
func (s stageFunc) Process(ctx context.Context, token string, rec *model.Record) Outcome {
	return s.fn(ctx, token, rec)
}

func testGuard(client zoominfo.Client) *session.Guard {
	return session.NewGuard(session.Credentials{Username: "u", Password: "p"}, client.Authenticate)
}

func TestRunPassFailureIsolation(t *testing.T) {
	// Record 2's API call returns HTTP 500: records 1 and 3 enrich
	// normally and the pass completes.
	client := &fakeClient{
		contactFn: func(ctx context.Context, token string, req zoominfo.ContactEnrichRequest) (*zoominfo.ContactEnrichResponse, error) {
			if req.MatchPersonInput[0].CompanyName == "Globex" {
				return nil, &zoominfo.APIError{StatusCode: 500, Body: `{"error":"upstream"}`}
			}
			return contactMatch(zoominfo.MatchStatusFull, zoominfo.PersonData{
				FirstName: "Jane", LastName: "Doe",
				Email: "jane@example.com", Phone: "555-0100",
			}), nil
		},
	}
	store := &memStore{records: []model.Record{
		{CompanyName: "Acme"},
		{CompanyName: "Globex"},
		{CompanyName: "Initech"},
	}}
	driver := NewDriver(client, testGuard(client), store)

	sess := session.Session{Token: "tok", IssuedAt: time.Now()}
	report, err := driver.RunPass(context.Background(), &sess, NewContactStage(client))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Processed)
	assert.Equal(t, 2, report.Enriched)
	assert.Equal(t, 1, report.Failed)

	assert.Equal(t, "Jane", store.records[0].FirstName)
	assert.Equal(t, model.StatusFailed, store.records[1].EnrichmentStatus)
	assert.Equal(t, `{"error":"upstream"}`, store.records[1].ErrorMessage)
	assert.Empty(t, store.records[1].FirstName)
	assert.Equal(t, "Jane", store.records[2].FirstName)

	// Order preserved.
	assert.Equal(t, "Acme", store.records[0].CompanyName)
	assert.Equal(t, "Globex", store.records[1].CompanyName)
	assert.Equal(t, "Initech", store.records[2].CompanyName)
}

func TestRunPassRefreshesTokenMidPass(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := issued

	tokens := 0
	client := &fakeClient{
		authFn: func(ctx context.Context, username, password string) (string, error) {
			tokens++
			return "tok-refreshed", nil
		},
	}
	guard := testGuard(client).WithNow(func() time.Time { return now })

	store := &memStore{records: []model.Record{{CompanyName: "A"}, {CompanyName: "B"}}}
	driver := NewDriver(client, guard, store)

	var seen []string
	stage := stageFunc{name: "clock-stage", fn: func(ctx context.Context, token string, rec *model.Record) Outcome {
		seen = append(seen, token)
		// The pass outlives the token between records.
		now = now.Add(56 * time.Minute)
		return OutcomeNoMatch
	}}

	sess := session.Session{Token: "tok-initial", IssuedAt: issued}
	_, err := driver.RunPass(context.Background(), &sess, stage)
	require.NoError(t, err)

	assert.Equal(t, []string{"tok-initial", "tok-refreshed"}, seen)
	assert.Equal(t, 1, tokens, "exactly one refresh at the stale boundary")
	assert.Equal(t, "tok-refreshed", sess.Token)
}

func TestRunPassRefreshFailureAbortsPass(t *testing.T) {
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	client := &fakeClient{
		authFn: func(ctx context.Context, username, password string) (string, error) {
			return "", eris.New("auth endpoint unreachable")
		},
	}
	guard := testGuard(client).WithNow(func() time.Time { return issued.Add(time.Hour) })

	store := &memStore{records: []model.Record{{CompanyName: "A"}}}
	driver := NewDriver(client, guard, store)

	sess := session.Session{Token: "tok", IssuedAt: issued}
	_, err := driver.RunPass(context.Background(), &sess, NewContactStage(client))
	require.Error(t, err)
	assert.Zero(t, store.saves, "nothing is persisted when the pass aborts")
}

func TestDriverRunEndToEnd(t *testing.T) {
	// One record with nothing but a company name: contact match misses,
	// company strict resolves identifiers, the search cascade finds a
	// person, hydration fills the contact fields.
	client := &fakeClient{
		companyFn: func(ctx context.Context, token string, req zoominfo.CompanyEnrichRequest) (*zoominfo.CompanyEnrichResponse, error) {
			return companyMatch(sampleCompanyData()), nil
		},
		searchFn: func(ctx context.Context, token string, req zoominfo.ContactSearchRequest) (*zoominfo.ContactSearchResponse, error) {
			return searchHit("42"), nil
		},
		contactFn: func(ctx context.Context, token string, req zoominfo.ContactEnrichRequest) (*zoominfo.ContactEnrichResponse, error) {
			if req.MatchPersonInput[0].PersonID == "" {
				return &zoominfo.ContactEnrichResponse{Success: true}, nil // initial pass: no match
			}
			return contactMatch(zoominfo.MatchStatusFull, zoominfo.PersonData{
				FirstName: "Jane", LastName: "Doe",
				Email: "jane@acme.com", Phone: "555-0100",
				JobTitle: "VP Operations",
			}), nil
		},
	}
	store := &memStore{records: []model.Record{{CompanyName: "Acme", CompanyCountry: "USA"}}}
	driver := NewDriver(client, testGuard(client), store)

	reports, err := driver.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 5)

	rec := store.records[0]
	assert.Equal(t, "987654", rec.ZICompanyID)
	assert.Equal(t, "1234", rec.ZILocationID)
	assert.Equal(t, model.FlagYes, rec.NeedsContact)
	assert.Equal(t, model.FlagYes, rec.NewContactFound)
	assert.Equal(t, "42", rec.PersonID)
	assert.Equal(t, string(model.TierLocationStrict), rec.ContactMatchCriteria)
	assert.Equal(t, "Jane", rec.FirstName)
	assert.Equal(t, "VP Operations", rec.JobTitle)

	// Address backfill copied the provider address.
	assert.Equal(t, "100 Main St", rec.CompanyStreet)
	assert.Equal(t, "Austin", rec.CompanyCity)

	// Five stage passes plus two transform checkpoints.
	assert.Equal(t, 7, store.saves)
}

func TestDriverRunLoginFailureIsFatal(t *testing.T) {
	client := &fakeClient{
		authFn: func(ctx context.Context, username, password string) (string, error) {
			return "", eris.New("bad credentials")
		},
	}
	store := &memStore{records: []model.Record{{CompanyName: "Acme"}}}
	driver := NewDriver(client, testGuard(client), store)

	_, err := driver.Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, store.saves)
}
