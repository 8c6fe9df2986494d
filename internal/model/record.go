// Package model defines the supplier record shape shared by every
// enrichment stage.
package model

// Yes/No flag values used by needsContact and newContactFound.
const (
	FlagYes = "Yes"
	FlagNo  = "No"
)

// Enrichment status values.
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// ContactMatchTier labels which contact-search fallback tier resolved a
// person ID. Precedence: location-scoped before company-scoped, strict
// before loose.
type ContactMatchTier string

const (
	TierLocationStrict ContactMatchTier = "locationId_strict"
	TierLocationLoose  ContactMatchTier = "locationId_loose"
	TierCompanyStrict  ContactMatchTier = "companyId_strict"
	TierCompanyLoose   ContactMatchTier = "companyId_loose"
)

// CompanyMatchCriteria labels which company-enrichment tier matched.
type CompanyMatchCriteria string

const (
	CompanyMatchNone   CompanyMatchCriteria = "None"
	CompanyMatchStrict CompanyMatchCriteria = "Strict"
	CompanyMatchLoose  CompanyMatchCriteria = "Non-strict"
)

// Record is one supplier contact/company row. All fields are strings with
// "" as the universal empty sentinel; enrichment only ever writes into
// empty fields (fill-only). The csv tags carry the fixed spreadsheet
// header mapping, the json tags the working-file field names.
type Record struct {
	CompanyName           string `json:"companyName" csv:"Supplier Company"`
	CompanyStreet         string `json:"companyStreet" csv:"Supplier Street"`
	CompanyCity           string `json:"companyCity" csv:"Supplier City"`
	CompanyState          string `json:"companyState" csv:"Supplier State"`
	CompanyZipCode        string `json:"companyZipCode" csv:"Supplier Zip Code"`
	CompanyCountry        string `json:"companyCountry" csv:"Supplier Country"`
	FirstName             string `json:"firstName" csv:"Supplier First Name"`
	LastName              string `json:"lastName" csv:"Supplier Last Name"`
	EmailAddress          string `json:"emailAddress" csv:"Supplier Email"`
	Phone                 string `json:"phone" csv:"Supplier Phone"`
	JobTitle              string `json:"jobTitle" csv:"Contact Job Title"`
	SiteName              string `json:"siteName" csv:"Site Name"`
	SiteID                string `json:"siteID" csv:"Site ID"`
	AdditionalContactInfo string `json:"additionalContactInfo" csv:"Additional Contact Info"`

	// Provider-resolved company fields.
	ZICompanyName   string `json:"zi_c_name" csv:"Zoominfo Company Name"`
	ZICompanyID     string `json:"zi_c_company_id" csv:"Zoominfo Company ID"`
	ZIHQName        string `json:"zi_c_company_name" csv:"Company HQ Name"`
	ZIPhone         string `json:"zi_c_phone" csv:"Company Phone"`
	ZIURL           string `json:"zi_c_url" csv:"Website"`
	ZILinkedInURL   string `json:"zi_c_linkedin_url" csv:"Company LinkedIn URL"`
	ZINAICS         string `json:"zi_c_naics6" csv:"6-digit NAICS Code"`
	ZIIndustry      string `json:"zi_c_industry_primary" csv:"Primary Industry"`
	ZISubIndustry   string `json:"zi_c_sub_industry_primary" csv:"Sector Title"`
	ZIEmployeeCount string `json:"zi_c_employees" csv:"Number of Employees"`
	ZIStreet        string `json:"zi_c_street" csv:"Company Street"`
	ZICity          string `json:"zi_c_city" csv:"Company City"`
	ZIState         string `json:"zi_c_state" csv:"Company State"`
	ZIZip           string `json:"zi_c_zip" csv:"Company Zip Code"`
	ZICountry       string `json:"zi_c_country" csv:"Company Country"`
	ZILocationID    string `json:"zi_c_location_id" csv:"Company Location ID"`

	// Derived flags and diagnostics.
	NeedsContact         string `json:"needsContact" csv:"Needs New Contact"`
	NewContactFound      string `json:"newContactFound" csv:"New Contact Found"`
	PersonID             string `json:"personId" csv:"Contact Person ID"`
	ContactMatchCriteria string `json:"contactMatchCriteria" csv:"Contact Match Criteria"`
	CompanyMatchCriteria string `json:"company_match_criteria" csv:"Company Match Criteria"`
	EnrichmentStatus     string `json:"enrichmentStatus" csv:"Enrichment Status"`
	ErrorMessage         string `json:"errorMessage" csv:"Error Message"`
}

// Fill writes src into dst only when dst is currently empty and src is not.
// Reports whether a write happened.
func Fill(dst *string, src string) bool {
	if *dst != "" || src == "" {
		return false
	}
	*dst = src
	return true
}

// ComputeNeedsContact derives the needsContact flag: Yes iff all four
// identity-contact fields are empty.
func (r *Record) ComputeNeedsContact() {
	if r.FirstName == "" && r.LastName == "" && r.EmailAddress == "" && r.Phone == "" {
		r.NeedsContact = FlagYes
	} else {
		r.NeedsContact = FlagNo
	}
}

// MarkFailed records a per-record API failure. The raw provider error body
// is kept verbatim for diagnostics.
func (r *Record) MarkFailed(body string) {
	r.EnrichmentStatus = StatusFailed
	r.ErrorMessage = body
}

// HasAnyAddress reports whether any of the four supplier street-level
// address fields is populated.
func (r *Record) HasAnyAddress() bool {
	return r.CompanyStreet != "" || r.CompanyCity != "" ||
		r.CompanyState != "" || r.CompanyZipCode != ""
}
