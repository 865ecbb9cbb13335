package service

import (
	"errors"
	"fmt"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/logger"
	"calltime-backend/internal/normalize"
	"calltime-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportService runs the bulk import pipeline: normalized rows in, one
// transaction per batch out. Row-level problems become entries in the result
// summary; only infrastructure failures roll the whole batch back.
type ImportService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewImportService creates a new import service
func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db, log: logger.New().WithField("component", "import")}
}

// ImportOptions carries batch-level context supplied by the caller.
type ImportOptions struct {
	// FallbackClientID receives donors whose rows name no client at all.
	FallbackClientID *uint
	AssignedBy       string
}

// ImportSummary is the per-batch result.
type ImportSummary struct {
	BatchID string   `json:"batch_id"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// ImportRows ingests a batch of tabular rows. Every row is processed
// independently; the successful subset commits as a single transaction.
func (s *ImportService) ImportRows(rows []normalize.Row, opts ImportOptions) (*ImportSummary, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrImportEmptyBatch
	}

	summary := &ImportSummary{
		BatchID: uuid.New().String(),
		Errors:  []string{},
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		clients := newClientResolver(tx)
		for i, row := range rows {
			if err := s.importRow(tx, row, i+1, opts, clients, summary); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import batch %s failed: %w", summary.BatchID, err)
	}

	s.log.WithFields(map[string]interface{}{
		"batch_id": summary.BatchID,
		"created":  summary.Created,
		"updated":  summary.Updated,
		"skipped":  summary.Skipped,
		"errors":   len(summary.Errors),
	}).Info("import batch committed")
	return summary, nil
}

// importRow processes one row. A nil return with a summary error entry means
// the row was skipped; a non-nil return aborts the batch.
func (s *ImportService) importRow(tx *gorm.DB, row normalize.Row, line int, opts ImportOptions, clients *clientResolver, summary *ImportSummary) error {
	rowLabel := fmt.Sprintf("row %d", line)
	if row.Len() == 0 {
		summary.Skipped++
		return nil
	}

	clientID, rowErr, err := resolveRowClient(row, opts, clients)
	if err != nil {
		return err
	}
	if rowErr != "" {
		summary.Errors = append(summary.Errors, rowLabel+": "+rowErr)
		summary.Skipped++
		return nil
	}

	donor, existed, rowErr, err := matchOrBuildDonor(tx, row)
	if err != nil {
		return err
	}
	if rowErr != "" {
		summary.Errors = append(summary.Errors, rowLabel+": "+rowErr)
		summary.Skipped++
		return nil
	}

	applyRowFields(donor, row)

	exclusive := normalize.ParseBooleanFlag(row.Field(normalize.FieldExclusive), donor.ExclusiveDonor)
	if exclusive && clientID != nil {
		if donor.ExclusiveDonor && donor.ExclusiveClientID != nil && *donor.ExclusiveClientID != *clientID {
			summary.Errors = append(summary.Errors, rowLabel+": donor is exclusively assigned to another client")
			summary.Skipped++
			return nil
		}
		donor.ExclusiveDonor = true
		donor.ExclusiveClientID = clientID
	}
	if donor.ExclusiveDonor && donor.ExclusiveClientID != nil && clientID != nil && *donor.ExclusiveClientID != *clientID {
		summary.Errors = append(summary.Errors, rowLabel+": donor is exclusively assigned to another client")
		summary.Skipped++
		return nil
	}

	if !existed {
		if donor.ClientID == nil {
			donor.ClientID = clientID
		}
		if err := tx.Create(donor).Error; err != nil {
			return err
		}
	} else if err := tx.Save(donor).Error; err != nil {
		return err
	}

	if clientID != nil {
		meta := repository.AssignmentMeta{
			ClientID:      *clientID,
			PriorityLevel: normalize.ParseInteger(row.Field(normalize.FieldPriority)),
			AssignedBy:    opts.AssignedBy,
		}
		if notes := strings.TrimSpace(row.Field(normalize.FieldAssignmentNotes)); notes != "" {
			meta.AssignmentNotes = &notes
		}
		if donor.ExclusiveDonor {
			if err := repository.EnforceExclusiveTx(tx, donor.ID, *clientID, meta); err != nil {
				return err
			}
		} else if _, err := repository.UpsertAssignmentTx(tx, *clientID, donor.ID, meta); err != nil {
			return err
		}
	}

	entries, entryErrs := normalize.ExtractContributions(row, rowLabel)
	summary.Errors = append(summary.Errors, entryErrs...)
	if err := mergeContributions(tx, donor.ID, entries); err != nil {
		return err
	}

	if existed {
		summary.Updated++
	} else {
		summary.Created++
	}
	return nil
}

// resolveRowClient applies the resolution order: explicit id, then label
// lookup, then the caller's fallback, then unassigned. An explicit reference
// that resolves to nothing is a row error; silence is not.
func resolveRowClient(row normalize.Row, opts ImportOptions, clients *clientResolver) (*uint, string, error) {
	if raw := row.Field(normalize.FieldClientID); raw != "" {
		id := normalize.ParseInteger(raw)
		if id == nil || *id <= 0 {
			return nil, fmt.Sprintf("invalid client id %q", raw), nil
		}
		found, err := clients.byID(uint(*id))
		if err != nil {
			return nil, "", err
		}
		if found == nil {
			return nil, fmt.Sprintf("client %d not found", *id), nil
		}
		return found, "", nil
	}

	if label := row.Field(normalize.FieldClientName); label != "" {
		found, err := clients.byLabel(label)
		if err != nil {
			return nil, "", err
		}
		if found == nil {
			return nil, fmt.Sprintf("client %q not found", label), nil
		}
		return found, "", nil
	}

	return opts.FallbackClientID, "", nil
}

// matchOrBuildDonor locates an existing donor by explicit id or normalized
// email, or constructs a fresh one with its identity resolved.
func matchOrBuildDonor(tx *gorm.DB, row normalize.Row) (*models.Donor, bool, string, error) {
	if raw := row.Field(normalize.FieldDonorID); raw != "" {
		id := normalize.ParseInteger(raw)
		if id == nil || *id <= 0 {
			return nil, false, fmt.Sprintf("invalid donor id %q", raw), nil
		}
		var donor models.Donor
		err := tx.First(&donor, uint(*id)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, fmt.Sprintf("donor %d not found", *id), nil
		}
		if err != nil {
			return nil, false, "", err
		}
		return &donor, true, "", nil
	}

	if email := strings.TrimSpace(row.Field(normalize.FieldEmail)); email != "" {
		var donor models.Donor
		err := tx.Where("LOWER(email) = LOWER(?)", email).First(&donor).Error
		if err == nil {
			return &donor, true, "", nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, "", err
		}
	}

	donor := &models.Donor{}
	if rowErr := resolveRowIdentity(donor, row); rowErr != "" {
		return nil, false, rowErr, nil
	}
	return donor, false, "", nil
}

// resolveRowIdentity fills the type and name fields of a new donor.
func resolveRowIdentity(donor *models.Donor, row normalize.Row) string {
	var isBusiness *bool
	if raw := row.Field(normalize.FieldIsBusiness); raw != "" {
		v := normalize.ParseBooleanFlag(raw, false)
		isBusiness = &v
	}
	donorType := normalize.ResolveDonorType(row.Field(normalize.FieldDonorType), isBusiness)
	donor.DonorType = donorType
	donor.IsBusiness = donorType.IsOrganization()

	first := strings.TrimSpace(row.Field(normalize.FieldFirstName))
	last := strings.TrimSpace(row.Field(normalize.FieldLastName))
	full := strings.TrimSpace(row.Field(normalize.FieldName))
	if first == "" && last == "" && full != "" {
		first, last = normalize.SplitFullName(full)
	}

	if donorType.IsOrganization() {
		name := strings.TrimSpace(row.Field(normalize.FieldBusinessName))
		if name == "" {
			name = strings.TrimSpace(row.Field(normalize.FieldEmployer))
		}
		if name == "" {
			name = strings.TrimSpace(full)
		}
		if name == "" {
			return "missing business_name for organization donor"
		}
		donor.BusinessName = name
		donor.ContactFirstName = first
		donor.ContactLastName = last
		return ""
	}

	if first == "" && last == "" && row.Field(normalize.FieldEmail) == "" {
		return "missing donor name"
	}
	donor.FirstName = first
	donor.LastName = last
	return ""
}

// applyRowFields overlays row values onto the donor: non-empty incoming
// values win, absent columns leave stored data alone.
func applyRowFields(donor *models.Donor, row normalize.Row) {
	setIfPresent := func(dst *string, canonical string) {
		if v := strings.TrimSpace(row.Field(canonical)); v != "" {
			*dst = v
		}
	}

	setIfPresent(&donor.Phone, normalize.FieldPhone)
	setIfPresent(&donor.AlternatePhone, normalize.FieldAlternatePhone)
	setIfPresent(&donor.Email, normalize.FieldEmail)
	setIfPresent(&donor.Employer, normalize.FieldEmployer)
	setIfPresent(&donor.Occupation, normalize.FieldOccupation)
	setIfPresent(&donor.JobTitle, normalize.FieldJobTitle)
	setIfPresent(&donor.Tags, normalize.FieldTags)
	setIfPresent(&donor.Bio, normalize.FieldBio)
	setIfPresent(&donor.Notes, normalize.FieldNotes)
	setIfPresent(&donor.PhotoURL, normalize.FieldPhotoURL)

	if ask := normalize.ParseSuggestedAsk(row.Field(normalize.FieldSuggestedAsk)); ask != nil {
		donor.SuggestedAsk = ask
	}

	addr := normalize.ReconcileAddress(normalize.AddressInput{
		FullAddress:  row.Field(normalize.FieldFullAddress),
		Street:       row.Field(normalize.FieldStreetAddress),
		Line2:        row.Field(normalize.FieldAddressLine2),
		CityStateZip: row.Field(normalize.FieldCityStateZip),
		City:         row.Field(normalize.FieldCity),
		State:        row.Field(normalize.FieldState),
		PostalCode:   row.Field(normalize.FieldPostalCode),
	})
	if addr.StreetAddress != "" {
		donor.StreetAddress = addr.StreetAddress
	}
	if addr.AddressLine2 != "" {
		donor.AddressLine2 = addr.AddressLine2
	}
	if addr.City != "" {
		donor.City = addr.City
	}
	if addr.State != "" {
		donor.State = addr.State
	}
	if addr.PostalCode != "" {
		donor.PostalCode = addr.PostalCode
	}
}

// mergeContributions unions incoming entries into the donor's giving history.
// Entries carrying an explicit id match by id; the rest match by value, so
// re-importing the same spreadsheet never duplicates history.
func mergeContributions(tx *gorm.DB, donorID uint, entries []normalize.ContributionEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var existing []models.Contribution
	if err := tx.Where("donor_id = ?", donorID).Find(&existing).Error; err != nil {
		return err
	}
	byID := make(map[uint]bool, len(existing))
	byValue := make(map[string]bool, len(existing))
	for _, c := range existing {
		byID[c.ID] = true
		byValue[contributionKey(c.Year, c.Candidate, c.OfficeSought, c.Amount, c.IsInkind)] = true
	}

	for _, e := range entries {
		if e.ID != nil && *e.ID > 0 && byID[uint(*e.ID)] {
			continue
		}
		key := contributionKey(e.Year, e.Candidate, e.OfficeSought, e.Amount, e.IsInkind)
		if byValue[key] {
			continue
		}
		c := models.Contribution{
			DonorID:      donorID,
			Year:         e.Year,
			Candidate:    e.Candidate,
			OfficeSought: e.OfficeSought,
			Amount:       e.Amount,
			IsInkind:     e.IsInkind,
		}
		if e.ID != nil && *e.ID > 0 {
			// Keep the sheet's entry id unless another donor already owns it.
			var taken int64
			if err := tx.Model(&models.Contribution{}).Where("id = ?", uint(*e.ID)).Count(&taken).Error; err != nil {
				return err
			}
			if taken == 0 {
				c.ID = uint(*e.ID)
			}
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		byID[c.ID] = true
		byValue[key] = true
	}
	return nil
}

func contributionKey(year int, candidate, office string, amount float64, inkind bool) string {
	return fmt.Sprintf("%d|%s|%s|%.2f|%t", year, strings.ToLower(candidate), strings.ToLower(office), amount, inkind)
}

// clientResolver caches client lookups for the duration of one batch.
type clientResolver struct {
	tx      *gorm.DB
	byIDs   map[uint]*uint
	byNames map[string]*uint
}

func newClientResolver(tx *gorm.DB) *clientResolver {
	return &clientResolver{
		tx:      tx,
		byIDs:   make(map[uint]*uint),
		byNames: make(map[string]*uint),
	}
}

func (r *clientResolver) byID(id uint) (*uint, error) {
	if cached, ok := r.byIDs[id]; ok {
		return cached, nil
	}
	var client models.Client
	err := r.tx.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.byIDs[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	found := client.ID
	r.byIDs[id] = &found
	return &found, nil
}

// byLabel matches a client by normalized name or candidate label.
func (r *clientResolver) byLabel(label string) (*uint, error) {
	key := normalize.NormalizeColumnName(label)
	if key == "" {
		return nil, nil
	}
	if cached, ok := r.byNames[key]; ok {
		return cached, nil
	}

	var clients []models.Client
	if err := r.tx.Find(&clients).Error; err != nil {
		return nil, err
	}
	var found *uint
	for _, c := range clients {
		if normalize.NormalizeColumnName(c.Name) == key || normalize.NormalizeColumnName(c.Candidate) == key {
			id := c.ID
			found = &id
			break
		}
	}
	r.byNames[key] = found
	return found, nil
}
