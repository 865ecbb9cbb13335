package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ContributionEntry is one normalized giving-history entry extracted from a
// row or API payload.
type ContributionEntry struct {
	ID           *int
	Year         int
	Candidate    string
	OfficeSought string
	Amount       float64
	IsInkind     bool
}

// contributionColumnRe matches the prefixed, optionally-indexed column
// families used by spreadsheet exports: contribution1Year, givingHistory2Amount,
// donationOffice, gift3InKind and so on. Column names are matched after
// NormalizeColumnName, so separators never matter.
var contributionColumnRe = regexp.MustCompile(
	`^(contribution|givinghistory|donation|gift)(\d*)(id|year|candidate|office|officesought|amount|inkind)$`,
)

// ExtractContributionFields groups a row's contribution columns by index.
// Unindexed columns ("donationYear") share index 1 with explicitly indexed
// ones ("donation1Year"). The result maps index -> field suffix -> raw value.
func ExtractContributionFields(row Row) map[int]map[string]string {
	grouped := make(map[int]map[string]string)
	for _, key := range row.Keys() {
		m := contributionColumnRe.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		value := row.Get(key)
		if value == "" {
			continue
		}
		index := 1
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				index = n
			}
		}
		field := m[3]
		if field == "officesought" {
			field = "office"
		}
		if grouped[index] == nil {
			grouped[index] = make(map[string]string)
		}
		grouped[index][field] = value
	}
	return grouped
}

// ExtractContributions converts a row's contribution column families into
// entries plus human-readable validation errors for incomplete ones. The
// rowLabel prefixes error messages ("row 3: ...").
func ExtractContributions(row Row, rowLabel string) ([]ContributionEntry, []string) {
	grouped := ExtractContributionFields(row)
	if len(grouped) == 0 {
		return nil, nil
	}

	indexes := make([]int, 0, len(grouped))
	for i := range grouped {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)

	var entries []ContributionEntry
	var errs []string
	for _, i := range indexes {
		entry, err := buildContributionEntry(grouped[i])
		if err != "" {
			errs = append(errs, fmt.Sprintf("%scontribution %d: %s", labelPrefix(rowLabel), i, err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// TransformContributionRows converts loosely-typed rows (one contribution per
// row) into valid entries plus a parallel list of validation error strings.
// Partial success: bad rows are reported and skipped, good rows come through.
func TransformContributionRows(rows []Row) ([]ContributionEntry, []string) {
	var entries []ContributionEntry
	var errs []string
	for i, row := range rows {
		fields := map[string]string{
			"id":        row.First("id", "contribution_id"),
			"year":      row.First("year", "contribution_year", "election_year"),
			"candidate": row.First("candidate", "candidate_name", "recipient"),
			"office":    row.First("office", "office_sought"),
			"amount":    row.First("amount", "contribution_amount", "total"),
			"inkind":    row.First("inkind", "in_kind", "is_inkind"),
		}
		entry, err := buildContributionEntry(fields)
		if err != "" {
			errs = append(errs, fmt.Sprintf("row %d: %s", i+1, err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// buildContributionEntry validates the required fields (year, candidate,
// amount) and reports the first missing one by name.
func buildContributionEntry(fields map[string]string) (ContributionEntry, string) {
	var entry ContributionEntry

	year := ParseInteger(fields["year"])
	if year == nil {
		return entry, "missing or invalid year"
	}
	candidate := strings.TrimSpace(fields["candidate"])
	if candidate == "" {
		return entry, "missing candidate"
	}
	amount := ParseCurrency(fields["amount"])
	if amount == nil {
		return entry, "missing or invalid amount"
	}

	entry = ContributionEntry{
		ID:           ParseInteger(fields["id"]),
		Year:         *year,
		Candidate:    candidate,
		OfficeSought: strings.TrimSpace(fields["office"]),
		Amount:       *amount,
		IsInkind:     ParseBooleanFlag(fields["inkind"], false),
	}
	return entry, ""
}

func labelPrefix(label string) string {
	if label == "" {
		return ""
	}
	return label + ": "
}
