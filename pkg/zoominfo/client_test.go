package zoominfo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
		wantErr bool
	}{
		{
			name: "happy path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/authenticate", r.URL.Path)
				assert.Empty(t, r.Header.Get("Authorization"))

				var req authRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "user@example.com", req.Username)
				assert.Equal(t, "hunter2", req.Password)

				json.NewEncoder(w).Encode(authResponse{JWT: "token-abc"})
			},
			want: "token-abc",
		},
		{
			name: "bad credentials",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid credentials"}`))
			},
			wantErr: true,
		},
		{
			name: "empty jwt",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(authResponse{})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, tt.handler)
			token, err := c.Authenticate(context.Background(), "user@example.com", "hunter2")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestEnrichContact(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enrich/contact", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ContactEnrichRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.MatchPersonInput, 1)
		assert.Equal(t, "Acme", req.MatchPersonInput[0].CompanyName)

		w.Write([]byte(`{
			"success": true,
			"data": {"result": [{
				"matchStatus": "FULL_MATCH",
				"data": [{"firstName":"Jane","lastName":"Doe","email":"jane@acme.com","phone":"555-0100"}]
			}]}
		}`))
	})

	resp, err := c.EnrichContact(context.Background(), "tok", ContactEnrichRequest{
		MatchPersonInput: []MatchPersonInput{{CompanyName: "Acme"}},
		OutputFields:     []string{"firstName", "lastName", "email", "phone"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Result, 1)
	assert.Equal(t, MatchStatusFull, resp.Data.Result[0].MatchStatus)
	require.Len(t, resp.Data.Result[0].Data, 1)
	assert.Equal(t, "jane@acme.com", resp.Data.Result[0].Data[0].Email)
}

func TestEnrichCompany(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/enrich/company-master", r.URL.Path)

		var req CompanyEnrichRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.MatchCompanyInput, 1)
		assert.Equal(t, "Acme", req.MatchCompanyInput[0].Name)

		w.Write([]byte(`{
			"success": true,
			"data": {"result": [{"data": {
				"zi_c_company_id": 987654,
				"zi_c_location_id": 1234,
				"zi_c_name": "Acme Corp",
				"zi_c_employees": 250
			}}]}
		}`))
	})

	resp, err := c.EnrichCompany(context.Background(), "tok", CompanyEnrichRequest{
		MatchCompanyInput: []MatchCompanyInput{{Name: "Acme"}},
	})
	require.NoError(t, err)
	require.True(t, resp.HasResult())

	data := resp.Data.Result[0].Data
	assert.Equal(t, "987654", data.CompanyID.String())
	assert.Equal(t, "1234", data.LocationID.String())
	assert.Equal(t, "250", data.Employees.String())
	assert.Equal(t, "Acme Corp", data.Name)
}

func TestEnrichCompanyAPIError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid email"}`))
	})

	_, err := c.EnrichCompany(context.Background(), "tok", CompanyEnrichRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, `{"error":"invalid email"}`, apiErr.Body)
}

func TestSearchContact(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
	}{
		{
			name:   "top hit",
			body:   `{"data": [{"id": 42}, {"id": 43}]}`,
			wantID: "42",
		},
		{
			name:   "no hits",
			body:   `{"data": []}`,
			wantID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/search/contact", r.URL.Path)

				var req ContactSearchRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, 1, req.ResultsPerPage)

				w.Write([]byte(tt.body))
			})

			resp, err := c.SearchContact(context.Background(), "tok", ContactSearchRequest{
				RequiredFields: "email, phone",
				SortBy:         "hierarchy",
				ResultsPerPage: 1,
				Page:           1,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.FirstID())
		})
	}
}
