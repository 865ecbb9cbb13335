package repository

import (
	"testing"

	"calltime-backend/internal/database/models"
	"calltime-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// AssignmentRepositoryTestSuite tests the assignment ledger
type AssignmentRepositoryTestSuite struct {
	suite.Suite
	base      *testutils.BaseTestSuite
	repo      *AssignmentRepository
	factories *testutils.FactorySet

	clientA *models.Client
	clientB *models.Client
	donor   *models.Donor
}

// SetupSuite runs before all tests in the suite
func (suite *AssignmentRepositoryTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())
	suite.repo = NewAssignmentRepository(suite.base.DB)
	suite.factories = testutils.NewFactorySet()
}

// SetupTest runs before each test
func (suite *AssignmentRepositoryTestSuite) SetupTest() {
	suite.base.TruncateAll()

	suite.clientA = suite.factories.Client.Create()
	suite.clientB = suite.factories.Client.Create()
	suite.donor = suite.factories.Donor.Create()
	suite.Require().NoError(suite.base.DB.Create(suite.clientA).Error)
	suite.Require().NoError(suite.base.DB.Create(suite.clientB).Error)
	suite.Require().NoError(suite.base.DB.Create(suite.donor).Error)
}

// TestAssignCreatesActiveAssignment tests the create path of the upsert
func (suite *AssignmentRepositoryTestSuite) TestAssignCreatesActiveAssignment() {
	assignment, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{AssignedBy: "manager"})
	suite.NoError(err)
	suite.True(assignment.IsActive)
	suite.Equal(3, assignment.PriorityLevel)
	suite.Equal("manager", assignment.AssignedBy)
}

// TestAssignUpsertMergesMetadata tests that omitted fields survive a re-assign
func (suite *AssignmentRepositoryTestSuite) TestAssignUpsertMergesMetadata() {
	priority := 1
	ask := 500.0
	notes := "college roommate"
	_, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{
		PriorityLevel:   &priority,
		CustomAskAmount: &ask,
		AssignmentNotes: &notes,
	})
	suite.Require().NoError(err)

	// Re-assign with only the priority supplied. Ask and notes must survive.
	newPriority := 2
	assignment, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{
		PriorityLevel: &newPriority,
	})
	suite.Require().NoError(err)

	suite.Equal(2, assignment.PriorityLevel)
	suite.Require().NotNil(assignment.CustomAskAmount)
	suite.Equal(500.0, *assignment.CustomAskAmount)
	suite.Require().NotNil(assignment.AssignmentNotes)
	suite.Equal("college roommate", *assignment.AssignmentNotes)
}

// TestAssignNeverDuplicatesPair tests the unique (client, donor) constraint
func (suite *AssignmentRepositoryTestSuite) TestAssignNeverDuplicatesPair() {
	_, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)
	_, err = suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)

	var count int64
	suite.base.DB.Model(&models.Assignment{}).
		Where("client_id = ? AND donor_id = ?", suite.clientA.ID, suite.donor.ID).
		Count(&count)
	suite.Equal(int64(1), count)
}

// TestUnassignIsSoft tests that unassign keeps the row and its metadata
func (suite *AssignmentRepositoryTestSuite) TestUnassignIsSoft() {
	ask := 250.0
	_, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{CustomAskAmount: &ask})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.Unassign(suite.clientA.ID, suite.donor.ID))

	assignment, err := suite.repo.Get(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.False(assignment.IsActive)
	suite.Require().NotNil(assignment.CustomAskAmount)
	suite.Equal(250.0, *assignment.CustomAskAmount)

	// Reassigning restores the stored metadata.
	restored, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)
	suite.True(restored.IsActive)
	suite.Require().NotNil(restored.CustomAskAmount)
	suite.Equal(250.0, *restored.CustomAskAmount)
}

// TestUnassignMissingPair tests unassigning a pair that never existed
func (suite *AssignmentRepositoryTestSuite) TestUnassignMissingPair() {
	err := suite.repo.Unassign(suite.clientA.ID, suite.donor.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestEnforceExclusiveDeactivatesOthers tests the exclusivity invariant
func (suite *AssignmentRepositoryTestSuite) TestEnforceExclusiveDeactivatesOthers() {
	_, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)
	_, err = suite.repo.Assign(suite.clientB.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.EnforceExclusive(suite.donor.ID, suite.clientB.ID, AssignmentMeta{}))

	active, err := suite.repo.ActiveForDonor(suite.donor.ID)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.Equal(suite.clientB.ID, active[0].ClientID)

	// Client A's row survives deactivated.
	a, err := suite.repo.Get(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.False(a.IsActive)
}

// TestEnforceExclusiveFreshDonor tests exclusivity on a donor with no prior rows
func (suite *AssignmentRepositoryTestSuite) TestEnforceExclusiveFreshDonor() {
	suite.Require().NoError(suite.repo.EnforceExclusive(suite.donor.ID, suite.clientA.ID, AssignmentMeta{}))

	ok, err := suite.repo.IsActivelyAssigned(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.True(ok)
}

// TestActiveForClientOrdersByPriority tests the call queue ordering
func (suite *AssignmentRepositoryTestSuite) TestActiveForClientOrdersByPriority() {
	second := suite.factories.Donor.Create()
	third := suite.factories.Donor.Create()
	suite.Require().NoError(suite.base.DB.Create(second).Error)
	suite.Require().NoError(suite.base.DB.Create(third).Error)

	low, high := 5, 1
	_, err := suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{PriorityLevel: &low})
	suite.Require().NoError(err)
	_, err = suite.repo.Assign(suite.clientA.ID, second.ID, AssignmentMeta{PriorityLevel: &high})
	suite.Require().NoError(err)
	_, err = suite.repo.Assign(suite.clientA.ID, third.ID, AssignmentMeta{})
	suite.Require().NoError(err)

	assignments, total, err := suite.repo.ActiveForClient(suite.clientA.ID, 10, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(assignments, 3)
	suite.Equal(second.ID, assignments[0].DonorID)
	suite.Equal(third.ID, assignments[1].DonorID)
	suite.Equal(suite.donor.ID, assignments[2].DonorID)
}

// TestIsActivelyAssigned tests both sides of the assignment gate
func (suite *AssignmentRepositoryTestSuite) TestIsActivelyAssigned() {
	ok, err := suite.repo.IsActivelyAssigned(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.False(ok)

	_, err = suite.repo.Assign(suite.clientA.ID, suite.donor.ID, AssignmentMeta{})
	suite.Require().NoError(err)

	ok, err = suite.repo.IsActivelyAssigned(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.True(ok)

	suite.Require().NoError(suite.repo.Unassign(suite.clientA.ID, suite.donor.ID))
	ok, err = suite.repo.IsActivelyAssigned(suite.clientA.ID, suite.donor.ID)
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestAssignmentRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(AssignmentRepositoryTestSuite))
}
