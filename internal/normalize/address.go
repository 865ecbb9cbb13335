package normalize

import (
	"regexp"
	"strings"
)

// Address is the canonical structured address.
type Address struct {
	StreetAddress string
	AddressLine2  string
	City          string
	State         string
	PostalCode    string
}

// AddressInput carries every address-ish cell a row may provide. Any
// combination may be populated.
type AddressInput struct {
	FullAddress  string // one blob: "12 Main St, Apt 4, Springfield, IL 62704"
	Street       string
	Line2        string
	CityStateZip string // combined "Springfield, IL 62704" cell
	City         string
	State        string
	PostalCode   string
}

var (
	// "City, ST 12345" / "City, ST 12345-6789" / "City, ST"
	cityStateZipCommaRe = regexp.MustCompile(`^(.+?),\s*([A-Za-z]{2})(?:\s+(\d{5}(?:-\d{4})?))?$`)
	// "City ST 12345": no comma, zip required to disambiguate
	cityStateZipSpaceRe = regexp.MustCompile(`^(.+?)\s+([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	// "City ST": no comma, state must be uppercase to count
	cityStateSpaceRe = regexp.MustCompile(`^(.+?)\s+([A-Z]{2})$`)
)

// ReconcileAddress merges discrete cells, a combined city/state/zip cell and a
// full-address blob into one structured address. Explicit discrete fields
// always win; parsed fragments only fill the gaps.
func ReconcileAddress(in AddressInput) Address {
	out := Address{
		StreetAddress: strings.TrimSpace(in.Street),
		AddressLine2:  strings.TrimSpace(in.Line2),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		PostalCode:    strings.TrimSpace(in.PostalCode),
	}

	if csz := strings.TrimSpace(in.CityStateZip); csz != "" {
		if city, state, zip, ok := parseCityStateZip(csz); ok {
			fillGap(&out.City, city)
			fillGap(&out.State, state)
			fillGap(&out.PostalCode, zip)
		} else {
			fillGap(&out.City, csz)
		}
	}

	if blob := strings.TrimSpace(in.FullAddress); blob != "" {
		street, line2, city, state, zip := splitFullAddress(blob)
		fillGap(&out.StreetAddress, street)
		fillGap(&out.AddressLine2, line2)
		fillGap(&out.City, city)
		fillGap(&out.State, state)
		fillGap(&out.PostalCode, zip)
	}

	out.State = strings.ToUpper(out.State)
	return out
}

func fillGap(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = strings.TrimSpace(value)
	}
}

// parseCityStateZip extracts city, state and zip from a combined cell.
func parseCityStateZip(s string) (city, state, zip string, ok bool) {
	if m := cityStateZipCommaRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2], m[3], true
	}
	if m := cityStateZipSpaceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2], m[3], true
	}
	if m := cityStateSpaceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), m[2], "", true
	}
	return "", "", "", false
}

// splitFullAddress pulls a trailing city/state/zip off an address blob and
// splits the remainder into street and line2.
func splitFullAddress(blob string) (street, line2, city, state, zip string) {
	normalized := strings.NewReplacer("\r\n", ",", "\n", ",").Replace(blob)

	var parts []string
	for _, p := range strings.Split(normalized, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", "", "", "", ""
	}

	// Trailing "City ST 12345" sits in the last comma part; "City, ST 12345"
	// spans the last two. The single-part match runs first so an earlier
	// line2 part ("Apt 4") never gets swallowed into the city.
	consumed := 0
	if len(parts) >= 2 {
		if c, s, z, ok := parseCityStateZip(parts[len(parts)-1]); ok {
			city, state, zip = c, s, z
			consumed = 1
		} else if c, s, z, ok := parseCityStateZip(parts[len(parts)-2] + ", " + parts[len(parts)-1]); ok {
			city, state, zip = c, s, z
			consumed = 2
		}
	} else if c, s, z, ok := parseCityStateZip(parts[0]); ok && z != "" {
		// A lone "Springfield IL 62704" blob is all location, no street.
		return "", "", c, s, z
	}

	rest := parts[:len(parts)-consumed]
	if len(rest) > 0 {
		street = rest[0]
	}
	if len(rest) > 1 {
		line2 = strings.Join(rest[1:], ", ")
	}
	return street, line2, city, state, zip
}
