package zoominfo

import "encoding/json"

// MatchPersonInput identifies a person for match/enrich requests. Either a
// personId or some combination of identity attributes must be set.
type MatchPersonInput struct {
	PersonID     string `json:"personId,omitempty"`
	CompanyName  string `json:"companyName,omitempty"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// ContactEnrichRequest is the body for POST /enrich/contact.
type ContactEnrichRequest struct {
	MatchPersonInput []MatchPersonInput `json:"matchPersonInput"`
	OutputFields     []string           `json:"outputFields"`
}

// Person match statuses accepted as usable results.
const (
	MatchStatusFull        = "FULL_MATCH"
	MatchStatusContactOnly = "CONTACT_ONLY_MATCH"
)

// PersonData holds the person fields returned by enrich endpoints.
type PersonData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"jobTitle"`
}

// ContactResult is one entry of the enrich/contact result list.
type ContactResult struct {
	MatchStatus string       `json:"matchStatus"`
	Data        []PersonData `json:"data"`
}

// ContactEnrichResponse is the envelope returned by POST /enrich/contact.
type ContactEnrichResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Result []ContactResult `json:"result"`
	} `json:"data"`
}

// CompanyPhone nests the phone match key.
type CompanyPhone struct {
	Phone string `json:"zi_c_phone"`
}

// CompanyAddress nests the address match keys. Strict matching sends the
// full street address; loose matching sends the country only.
type CompanyAddress struct {
	Street  string `json:"zi_c_street,omitempty"`
	City    string `json:"zi_c_city,omitempty"`
	State   string `json:"zi_c_state,omitempty"`
	Zip     string `json:"zi_c_zip,omitempty"`
	Country string `json:"zi_c_country,omitempty"`
}

// Match-reason weight codes.
const (
	MatchReasonExact = "E"
	MatchReasonFuzzy = "F"
)

// MatchCompanyInput identifies a company for enrich/company-master.
type MatchCompanyInput struct {
	Name         string              `json:"zi_c_name"`
	Phone        *CompanyPhone       `json:"phone,omitempty"`
	Address      *CompanyAddress     `json:"address,omitempty"`
	Email        string              `json:"email,omitempty"`
	MatchReasons []map[string]string `json:"match_reasons,omitempty"`
}

// CompanyEnrichRequest is the body for POST /enrich/company-master.
type CompanyEnrichRequest struct {
	MatchCompanyInput []MatchCompanyInput `json:"matchCompanyInput"`
	OutputFields      []string            `json:"outputFields"`
}

// CompanyData holds the company fields returned by enrich/company-master.
// Numeric identifiers arrive as JSON numbers and are kept as json.Number so
// they round-trip into string record fields without float mangling.
type CompanyData struct {
	LocationID      json.Number `json:"zi_c_location_id"`
	CompanyID       json.Number `json:"zi_c_company_id"`
	Name            string      `json:"zi_c_name"`
	HQName          string      `json:"zi_c_company_name"`
	Phone           string      `json:"zi_c_phone"`
	URL             string      `json:"zi_c_url"`
	LinkedInURL     string      `json:"zi_c_linkedin_url"`
	NAICS           json.Number `json:"zi_c_naics6"`
	IndustryPrimary string      `json:"zi_c_industry_primary"`
	SubIndustry     string      `json:"zi_c_sub_industry_primary"`
	Employees       json.Number `json:"zi_c_employees"`
	Street          string      `json:"zi_c_street"`
	City            string      `json:"zi_c_city"`
	State           string      `json:"zi_c_state"`
	Zip             string      `json:"zi_c_zip"`
	Country         string      `json:"zi_c_country"`
}

// CompanyResult is one entry of the enrich/company-master result list.
type CompanyResult struct {
	Data *CompanyData `json:"data"`
}

// CompanyEnrichResponse is the envelope returned by POST /enrich/company-master.
type CompanyEnrichResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Result []CompanyResult `json:"result"`
	} `json:"data"`
}

// HasResult reports whether the response carries a usable company payload.
func (r *CompanyEnrichResponse) HasResult() bool {
	return r != nil && r.Success && len(r.Data.Result) > 0 && r.Data.Result[0].Data != nil
}

// ContactSearchRequest is the body for POST /search/contact.
type ContactSearchRequest struct {
	RequiredFields    string   `json:"requiredFields"`
	SortBy            string   `json:"sortBy"`
	ResultsPerPage    int      `json:"rpp"`
	Page              int      `json:"page"`
	LocationCompanyID []string `json:"locationCompanyId,omitempty"`
	CompanyID         string   `json:"companyId,omitempty"`
	ManagementLevel   string   `json:"managementLevel,omitempty"`
	Department        string   `json:"department,omitempty"`
}

// SearchHit is one contact returned by search/contact.
type SearchHit struct {
	ID json.Number `json:"id"`
}

// ContactSearchResponse is the envelope returned by POST /search/contact.
type ContactSearchResponse struct {
	Data []SearchHit `json:"data"`
}

// FirstID returns the top-ranked person ID, or "" when the search found
// nothing.
func (r *ContactSearchResponse) FirstID() string {
	if r == nil || len(r.Data) == 0 {
		return ""
	}
	return r.Data[0].ID.String()
}

// authRequest is the body for POST /authenticate.
type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authResponse is the body returned by POST /authenticate on success.
type authResponse struct {
	JWT string `json:"jwt"`
}
