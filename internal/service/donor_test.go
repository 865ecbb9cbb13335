package service

import (
	"testing"

	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"
	"calltime-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

// DonorServiceTestSuite tests the donor service
type DonorServiceTestSuite struct {
	suite.Suite
	base        *testutils.BaseTestSuite
	service     *DonorService
	assignments *AssignmentService
	factories   *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *DonorServiceTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())

	donorRepo := repository.NewDonorRepository(suite.base.DB)
	assignmentRepo := repository.NewAssignmentRepository(suite.base.DB)
	clientRepo := repository.NewClientRepository(suite.base.DB)
	validate := validator.New()

	suite.service = NewDonorService(donorRepo, assignmentRepo, validate)
	suite.assignments = NewAssignmentService(assignmentRepo, donorRepo, clientRepo)
	suite.factories = testutils.NewFactorySet()
}

// SetupTest runs before each test
func (suite *DonorServiceTestSuite) SetupTest() {
	suite.base.TruncateAll()
}

func (suite *DonorServiceTestSuite) createClient() uint {
	client := suite.factories.Client.Create()
	suite.Require().NoError(suite.base.DB.Create(client).Error)
	return client.ID
}

// TestCreateIndividualWithFullName tests full-name splitting
func (suite *DonorServiceTestSuite) TestCreateIndividualWithFullName() {
	donor, err := suite.service.CreateDonor(&CreateDonorRequest{Name: "Ada King Lovelace"})
	suite.Require().NoError(err)
	suite.Equal("individual", donor.DonorType)
	suite.Equal("Ada", donor.FirstName)
	suite.Equal("King Lovelace", donor.LastName)
	suite.Equal("Ada King Lovelace", donor.Name)
}

// TestCreateIndividualWithoutName tests the identity requirement
func (suite *DonorServiceTestSuite) TestCreateIndividualWithoutName() {
	_, err := suite.service.CreateDonor(&CreateDonorRequest{Phone: "555-0100"})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestCreateBusinessNameFallbacks tests business_name -> employer -> name
func (suite *DonorServiceTestSuite) TestCreateBusinessNameFallbacks() {
	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		DonorType: "company",
		Employer:  "Acme Holdings",
	})
	suite.Require().NoError(err)
	suite.Equal("business", donor.DonorType)
	suite.Equal("Acme Holdings", donor.BusinessName)

	donor, err = suite.service.CreateDonor(&CreateDonorRequest{
		DonorType: "pac",
		Name:      "Friends of Good Government",
	})
	suite.Require().NoError(err)
	suite.Equal("campaign", donor.DonorType)
	suite.Equal("Friends of Good Government", donor.BusinessName)
}

// TestCreateBusinessWithoutAnyName tests the organization identity requirement
func (suite *DonorServiceTestSuite) TestCreateBusinessWithoutAnyName() {
	_, err := suite.service.CreateDonor(&CreateDonorRequest{DonorType: "business"})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Contains(err.Error(), "business_name")
}

// TestCreateOrganizationClearsPersonalName tests that org donors never carry
// first/last name fields
func (suite *DonorServiceTestSuite) TestCreateOrganizationClearsPersonalName() {
	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		DonorType:    "organization",
		BusinessName: "Acme Holdings",
		FirstName:    "Jane",
		LastName:     "Smith",
	})
	suite.Require().NoError(err)
	suite.Empty(donor.FirstName)
	suite.Empty(donor.LastName)
	suite.Equal("Acme Holdings", donor.Name)
}

// TestCreateWithSeedAssignments tests atomic assignment seeding
func (suite *DonorServiceTestSuite) TestCreateWithSeedAssignments() {
	clientA := suite.createClient()
	clientB := suite.createClient()

	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:            "Jamie Donor",
		AssignClientIDs: []uint{clientA, clientB},
	})
	suite.Require().NoError(err)
	suite.Equal([]uint{clientA, clientB}, donor.AssignedClientIDs)
}

// TestCreateExclusiveDonorRequiresTarget tests that the exclusivity lock
// cannot be created without a client to hold it
func (suite *DonorServiceTestSuite) TestCreateExclusiveDonorRequiresTarget() {
	clientA := suite.createClient()
	clientB := suite.createClient()

	_, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:            "Jamie Donor",
		ExclusiveDonor:  true,
		AssignClientIDs: []uint{clientA, clientB},
	})
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestCreateExclusiveDonorSeedsSingleAssignment tests that seeding an
// exclusive donor with several clients leaves only the lock holder active
func (suite *DonorServiceTestSuite) TestCreateExclusiveDonorSeedsSingleAssignment() {
	clientA := suite.createClient()
	clientB := suite.createClient()

	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:            "Jamie Donor",
		ExclusiveDonor:  true,
		ExclusiveClient: &clientA,
		AssignClientIDs: []uint{clientA, clientB},
	})
	suite.Require().NoError(err)
	suite.Equal([]uint{clientA}, donor.AssignedClientIDs)
}

// TestGetDonorForClientAssignmentGate tests the 403-vs-404 distinction
func (suite *DonorServiceTestSuite) TestGetDonorForClientAssignmentGate() {
	clientA := suite.createClient()
	clientB := suite.createClient()

	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:            "Jamie Donor",
		AssignClientIDs: []uint{clientA},
	})
	suite.Require().NoError(err)

	// Assigned client sees the donor.
	got, err := suite.service.GetDonorForClient(clientA, donor.ID)
	suite.Require().NoError(err)
	suite.Equal(donor.ID, got.ID)

	// Unassigned client gets an authorization error, not a not-found.
	_, err = suite.service.GetDonorForClient(clientB, donor.ID)
	suite.Require().Error(err)
	suite.True(apperrors.IsAuthorization(err))
	suite.False(apperrors.IsNotFound(err))

	// A donor that does not exist at all is a not-found.
	_, err = suite.service.GetDonorForClient(clientA, 99999)
	suite.Require().Error(err)
	suite.True(apperrors.IsNotFound(err))
}

// TestAssignExclusiveDonorToWrongClient tests the exclusivity conflict
func (suite *DonorServiceTestSuite) TestAssignExclusiveDonorToWrongClient() {
	clientA := suite.createClient()
	clientB := suite.createClient()

	donor, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:            "Jamie Donor",
		ExclusiveDonor:  true,
		ExclusiveClient: &clientA,
		AssignClientIDs: []uint{clientA},
	})
	suite.Require().NoError(err)

	_, err = suite.assignments.Assign(donor.ID, &AssignRequest{ClientID: clientB})
	suite.ErrorIs(err, apperrors.ErrExclusiveConflict)
}

// TestUpdateDonorPartial tests that omitted fields survive an update
func (suite *DonorServiceTestSuite) TestUpdateDonorPartial() {
	created, err := suite.service.CreateDonor(&CreateDonorRequest{
		Name:  "Jamie Donor",
		Phone: "555-0100",
		Email: "jamie@example.com",
	})
	suite.Require().NoError(err)

	newPhone := "555-0199"
	updated, err := suite.service.UpdateDonor(created.ID, &UpdateDonorRequest{Phone: &newPhone})
	suite.Require().NoError(err)
	suite.Equal("555-0199", updated.Phone)
	suite.Equal("jamie@example.com", updated.Email)
}

// TestGivingHistorySorted tests that responses carry sorted history
func (suite *DonorServiceTestSuite) TestGivingHistorySorted() {
	created, err := suite.service.CreateDonor(&CreateDonorRequest{Name: "Jamie Donor"})
	suite.Require().NoError(err)

	for _, c := range []struct {
		year      int
		candidate string
	}{
		{2019, "Old Campaign"},
		{2023, "Zeta for Senate"},
		{2023, "Alpha for Mayor"},
	} {
		suite.Require().NoError(suite.base.DB.Create(suite.factories.Contribution.Create(created.ID, c.year, c.candidate, 100)).Error)
	}

	donor, err := suite.service.GetDonor(created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(donor.GivingHistory, 3)
	suite.Equal("Alpha for Mayor", donor.GivingHistory[0].Candidate)
	suite.Equal("Zeta for Senate", donor.GivingHistory[1].Candidate)
	suite.Equal(2019, donor.GivingHistory[2].Year)
}

func TestDonorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DonorServiceTestSuite))
}
