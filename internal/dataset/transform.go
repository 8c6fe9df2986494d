package dataset

import (
	"reflect"
	"strings"

	"github.com/intit/supplier-enrich/internal/model"
)

// NormalizeWhitespace trims every string field and collapses internal runs
// of whitespace to a single space, in place.
func NormalizeWhitespace(records []model.Record) {
	for i := range records {
		v := reflect.ValueOf(&records[i]).Elem()
		for j := 0; j < v.NumField(); j++ {
			f := v.Field(j)
			if f.Kind() != reflect.String {
				continue
			}
			f.SetString(strings.Join(strings.Fields(f.String()), " "))
		}
	}
}

// UpdateNeedsContact recomputes the needsContact flag for every record and
// returns how many records are missing all contact identity fields.
func UpdateNeedsContact(records []model.Record) int {
	count := 0
	for i := range records {
		records[i].ComputeNeedsContact()
		if records[i].NeedsContact == model.FlagYes {
			count++
		}
	}
	return count
}

// BackfillAddress copies the provider address onto records whose supplier
// address is entirely empty. Partially filled addresses are left alone.
func BackfillAddress(records []model.Record) {
	for i := range records {
		r := &records[i]
		if r.HasAnyAddress() {
			continue
		}
		r.CompanyStreet = r.ZIStreet
		r.CompanyCity = r.ZICity
		r.CompanyState = r.ZIState
		r.CompanyZipCode = r.ZIZip
	}
}
