// Package normalize converts loosely-labeled spreadsheet and API input into
// canonical donor and contribution values. Everything in this package is a
// pure function: no I/O, no database access.
package normalize

import "strings"

// Canonical field keys used across the import pipeline and donor services.
const (
	FieldName             = "name"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBusinessName     = "business_name"
	FieldContactFirstName = "contact_first_name"
	FieldContactLastName  = "contact_last_name"
	FieldDonorType        = "donor_type"
	FieldIsBusiness       = "is_business"
	FieldPhone            = "phone"
	FieldAlternatePhone   = "alternate_phone"
	FieldEmail            = "email"
	FieldFullAddress      = "full_address"
	FieldStreetAddress    = "street_address"
	FieldAddressLine2     = "address_line2"
	FieldCity             = "city"
	FieldState            = "state"
	FieldPostalCode       = "postal_code"
	FieldCityStateZip     = "city_state_zip"
	FieldEmployer         = "employer"
	FieldOccupation       = "occupation"
	FieldJobTitle         = "job_title"
	FieldTags             = "tags"
	FieldSuggestedAsk     = "suggested_ask"
	FieldBio              = "bio"
	FieldNotes            = "notes"
	FieldPhotoURL         = "photo_url"
	FieldExclusive        = "exclusive"
	FieldDonorID          = "donor_id"
	FieldClientID         = "client_id"
	FieldClientName       = "client_name"
	FieldPriority         = "priority"
	FieldAssignmentNotes  = "assignment_notes"
)

// NormalizeColumnName lowercases a header label and strips everything that is
// not a letter or digit, so "First Name", "first_name" and "FirstName" all
// collapse to the same key.
func NormalizeColumnName(label string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(label) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fieldCandidates maps each canonical field to its known header aliases in
// priority order: the first non-empty cell wins. Aliases are stored in
// normalized form.
var fieldCandidates = map[string][]string{
	FieldName: {"name", "fullname", "donorname", "contactname"},
	FieldFirstName: {
		"firstname", "first", "fname", "givenname",
	},
	FieldLastName: {
		"lastname", "last", "lname", "surname", "familyname",
	},
	FieldBusinessName: {
		"businessname", "business", "company", "companyname", "organization",
		"organizationname", "orgname", "entityname", "committeename",
	},
	FieldContactFirstName: {"contactfirstname", "contactfirst"},
	FieldContactLastName:  {"contactlastname", "contactlast"},
	FieldDonorType: {
		"donortype", "type", "category", "entitytype", "recordtype",
	},
	FieldIsBusiness: {"isbusiness", "businessflag"},
	FieldPhone: {
		"phone", "phonenumber", "primaryphone", "cell", "cellphone",
		"mobile", "mobilephone", "telephone",
	},
	FieldAlternatePhone: {
		"alternatephone", "altphone", "phone2", "secondaryphone",
		"workphone", "homephone", "otherphone",
	},
	FieldEmail: {
		"email", "emailaddress", "primaryemail", "mail",
	},
	FieldFullAddress: {
		"fulladdress", "address", "mailingaddress", "completeaddress",
	},
	FieldStreetAddress: {
		"streetaddress", "street", "address1", "addressline1", "addr1",
	},
	FieldAddressLine2: {
		"addressline2", "address2", "addr2", "apt", "suite", "unit",
	},
	FieldCity:  {"city", "town"},
	FieldState: {"state", "st", "province"},
	FieldPostalCode: {
		"postalcode", "zip", "zipcode", "postal",
	},
	FieldCityStateZip: {
		"citystatezip", "citystate", "cityststatezip",
	},
	FieldEmployer: {
		"employer", "employername", "worksfor",
	},
	FieldOccupation: {"occupation", "profession"},
	FieldJobTitle:   {"jobtitle", "title", "position", "role"},
	FieldTags: {
		"tags", "tag", "categories", "labels", "groups",
	},
	FieldSuggestedAsk: {
		"suggestedask", "askamount", "ask", "targetask", "suggestedamount",
	},
	FieldBio:   {"bio", "biography", "background"},
	FieldNotes: {"notes", "note", "comments", "comment", "remarks"},
	FieldPhotoURL: {
		"photourl", "photo", "picture", "pictureurl", "imageurl",
	},
	FieldExclusive: {
		"exclusive", "exclusivedonor", "locked", "lockeddonor",
	},
	FieldDonorID: {"donorid", "id", "recordid"},
	FieldClientID: {
		"clientid", "campaignid", "accountid",
	},
	FieldClientName: {
		"clientname", "client", "campaign", "campaignname", "candidatename",
	},
	FieldPriority: {
		"priority", "prioritylevel", "callpriority", "rank",
	},
	FieldAssignmentNotes: {"assignmentnotes", "assignmentnote"},
}

// Row is one parsed tabular row keyed by normalized column name. Duplicate
// headers keep the first non-empty value.
type Row struct {
	values map[string]string
}

// NewRow builds a Row from raw header/value pairs.
func NewRow(fields map[string]string) Row {
	values := make(map[string]string, len(fields))
	for label, value := range fields {
		key := NormalizeColumnName(label)
		if key == "" {
			continue
		}
		trimmed := strings.TrimSpace(value)
		if existing, ok := values[key]; !ok || existing == "" {
			values[key] = trimmed
		}
	}
	return Row{values: values}
}

// Get returns the value for a raw label, normalized.
func (r Row) Get(label string) string {
	return r.values[NormalizeColumnName(label)]
}

// First returns the first non-empty value among the given labels.
func (r Row) First(labels ...string) string {
	for _, label := range labels {
		if v := r.values[NormalizeColumnName(label)]; v != "" {
			return v
		}
	}
	return ""
}

// Field resolves a canonical field through its alias candidate list,
// first non-empty wins.
func (r Row) Field(canonical string) string {
	for _, alias := range fieldCandidates[canonical] {
		if v := r.values[alias]; v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether the row carries a non-empty value for the canonical field.
func (r Row) Has(canonical string) bool {
	return r.Field(canonical) != ""
}

// Len returns the number of populated columns.
func (r Row) Len() int {
	return len(r.values)
}

// Keys returns the normalized column names present in the row.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	return keys
}
