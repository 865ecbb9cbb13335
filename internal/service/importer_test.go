package service

import (
	"strconv"
	"testing"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/normalize"
	"calltime-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
)

// ImportServiceTestSuite tests the bulk import pipeline
type ImportServiceTestSuite struct {
	suite.Suite
	base      *testutils.BaseTestSuite
	service   *ImportService
	factories *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ImportServiceTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())
	suite.service = NewImportService(suite.base.DB)
	suite.factories = testutils.NewFactorySet()
}

// SetupTest runs before each test
func (suite *ImportServiceTestSuite) SetupTest() {
	suite.base.TruncateAll()
}

func (suite *ImportServiceTestSuite) createClient(name string) *models.Client {
	client := suite.factories.Client.WithName(name)
	suite.Require().NoError(suite.base.DB.Create(client).Error)
	return client
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func rowsFrom(maps ...map[string]string) []normalize.Row {
	rows := make([]normalize.Row, 0, len(maps))
	for _, m := range maps {
		rows = append(rows, normalize.NewRow(m))
	}
	return rows
}

// TestEmptyBatch tests the no-rows guard
func (suite *ImportServiceTestSuite) TestEmptyBatch() {
	_, err := suite.service.ImportRows(nil, ImportOptions{})
	suite.ErrorIs(err, apperrors.ErrImportEmptyBatch)
}

// TestImportCreatesDonorWithAssignment tests the basic create path
func (suite *ImportServiceTestSuite) TestImportCreatesDonorWithAssignment() {
	client := suite.createClient("Rivera for Senate")

	summary, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"First Name":  "Ada",
		"Last Name":   "Lovelace",
		"Email":       "ada@example.com",
		"Client Name": "Rivera for Senate",
		"Address":     "12 Main St, Apt 4, Springfield, IL 62704",
		"Ask Amount":  "$500",
	}), ImportOptions{AssignedBy: "import"})
	suite.Require().NoError(err)

	suite.Equal(1, summary.Created)
	suite.Zero(summary.Updated)
	suite.Empty(summary.Errors)
	suite.NotEmpty(summary.BatchID)

	var donor models.Donor
	suite.Require().NoError(suite.base.DB.First(&donor, "email = ?", "ada@example.com").Error)
	suite.Equal("Ada", donor.FirstName)
	suite.Equal("12 Main St", donor.StreetAddress)
	suite.Equal("Apt 4", donor.AddressLine2)
	suite.Equal("Springfield", donor.City)
	suite.Equal("IL", donor.State)
	suite.Equal("62704", donor.PostalCode)
	suite.Require().NotNil(donor.SuggestedAsk)
	suite.Equal(500.0, *donor.SuggestedAsk)

	var assignment models.Assignment
	suite.Require().NoError(suite.base.DB.First(&assignment, "client_id = ? AND donor_id = ?", client.ID, donor.ID).Error)
	suite.True(assignment.IsActive)
	suite.Equal("import", assignment.AssignedBy)
}

// TestReimportMatchesByEmailAndUnionsHistory tests the two-run scenario: the
// second run updates contact fields and unions giving history without
// duplicating entries.
func (suite *ImportServiceTestSuite) TestReimportMatchesByEmailAndUnionsHistory() {
	suite.createClient("Rivera for Senate")

	row := map[string]string{
		"Name":                     "Ada Lovelace",
		"Email":                    "ada@example.com",
		"Phone":                    "555-0100",
		"Client Name":              "Rivera for Senate",
		"Contribution 1 Year":      "2020",
		"Contribution 1 Candidate": "Smith for Senate",
		"Contribution 1 Amount":    "$1,000",
	}

	first, err := suite.service.ImportRows(rowsFrom(row), ImportOptions{})
	suite.Require().NoError(err)
	suite.Equal(1, first.Created)

	// Second run: same email, updated phone, same contribution plus a new one.
	row["Phone"] = "555-0199"
	row["Contribution 2 Year"] = "2022"
	row["Contribution 2 Candidate"] = "Jones for Mayor"
	row["Contribution 2 Amount"] = "250"

	second, err := suite.service.ImportRows(rowsFrom(row), ImportOptions{})
	suite.Require().NoError(err)
	suite.Zero(second.Created)
	suite.Equal(1, second.Updated)
	suite.Empty(second.Errors)

	var donors []models.Donor
	suite.Require().NoError(suite.base.DB.Find(&donors).Error)
	suite.Require().Len(donors, 1)
	suite.Equal("555-0199", donors[0].Phone)

	var history []models.Contribution
	suite.Require().NoError(suite.base.DB.Where("donor_id = ?", donors[0].ID).Find(&history).Error)
	suite.Len(history, 2)
}

// TestRowErrorsDoNotAbortBatch tests per-row independence
func (suite *ImportServiceTestSuite) TestRowErrorsDoNotAbortBatch() {
	suite.createClient("Rivera for Senate")

	summary, err := suite.service.ImportRows(rowsFrom(
		map[string]string{"Name": "Ada Lovelace", "Client Name": "Rivera for Senate"},
		map[string]string{"Name": "Bob Smith", "Client Name": "No Such Campaign"},
		map[string]string{"Phone": "555-0100"}, // no identity at all
	), ImportOptions{})
	suite.Require().NoError(err)

	suite.Equal(1, summary.Created)
	suite.Equal(2, summary.Skipped)
	suite.Require().Len(summary.Errors, 2)
	suite.Contains(summary.Errors[0], "row 2")
	suite.Contains(summary.Errors[0], "No Such Campaign")
	suite.Contains(summary.Errors[1], "row 3")
}

// TestMissingAmountReportsAndSkipsEntry tests the contribution validation:
// the donor lands, the incomplete entry does not, and the error names amount.
func (suite *ImportServiceTestSuite) TestMissingAmountReportsAndSkipsEntry() {
	summary, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"Name":                     "Ada Lovelace",
		"Contribution 1 Year":      "2020",
		"Contribution 1 Candidate": "Smith for Senate",
	}), ImportOptions{})
	suite.Require().NoError(err)

	suite.Equal(1, summary.Created)
	suite.Require().Len(summary.Errors, 1)
	suite.Contains(summary.Errors[0], "amount")

	var count int64
	suite.base.DB.Model(&models.Contribution{}).Count(&count)
	suite.Zero(count)
}

// TestFallbackClient tests the caller-supplied fallback in the resolution order
func (suite *ImportServiceTestSuite) TestFallbackClient() {
	client := suite.createClient("Open Campaign")

	summary, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"Name": "Ada Lovelace",
	}), ImportOptions{FallbackClientID: &client.ID})
	suite.Require().NoError(err)
	suite.Equal(1, summary.Created)

	var assignment models.Assignment
	suite.Require().NoError(suite.base.DB.First(&assignment, "client_id = ?", client.ID).Error)
	suite.True(assignment.IsActive)
}

// TestNoClientLeavesUnassigned tests that silence about a client is fine
func (suite *ImportServiceTestSuite) TestNoClientLeavesUnassigned() {
	summary, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"Name": "Ada Lovelace",
	}), ImportOptions{})
	suite.Require().NoError(err)
	suite.Equal(1, summary.Created)
	suite.Empty(summary.Errors)

	var count int64
	suite.base.DB.Model(&models.Assignment{}).Count(&count)
	suite.Zero(count)
}

// TestExplicitClientIDResolution tests numeric id references
func (suite *ImportServiceTestSuite) TestExplicitClientIDResolution() {
	client := suite.createClient("Rivera for Senate")

	summary, err := suite.service.ImportRows(rowsFrom(
		map[string]string{"Name": "Ada Lovelace", "Client ID": "99999"},
		map[string]string{"Name": "Bob Smith", "Client ID": itoa(client.ID)},
	), ImportOptions{})
	suite.Require().NoError(err)

	suite.Equal(1, summary.Created)
	suite.Equal(1, summary.Skipped)
	suite.Require().Len(summary.Errors, 1)
	suite.Contains(summary.Errors[0], "client 99999 not found")
}

// TestExclusiveImportDeactivatesOthers tests the locked-donor column
func (suite *ImportServiceTestSuite) TestExclusiveImportDeactivatesOthers() {
	clientA := suite.createClient("Alpha Campaign")
	clientB := suite.createClient("Beta Campaign")

	_, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"Name":      "Ada Lovelace",
		"Email":     "ada@example.com",
		"Client ID": itoa(clientA.ID),
	}), ImportOptions{})
	suite.Require().NoError(err)

	summary, err := suite.service.ImportRows(rowsFrom(map[string]string{
		"Email":     "ada@example.com",
		"Client ID": itoa(clientB.ID),
		"Exclusive": "yes",
	}), ImportOptions{})
	suite.Require().NoError(err)
	suite.Equal(1, summary.Updated)

	var active []models.Assignment
	suite.Require().NoError(suite.base.DB.Where("is_active").Find(&active).Error)
	suite.Require().Len(active, 1)
	suite.Equal(clientB.ID, active[0].ClientID)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
