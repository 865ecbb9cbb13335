package repository

import (
	"testing"

	"calltime-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ContributionRepositoryTestSuite tests the giving-history store
type ContributionRepositoryTestSuite struct {
	suite.Suite
	base      *testutils.BaseTestSuite
	repo      *ContributionRepository
	factories *testutils.FactorySet
	donorID   uint
}

// SetupSuite runs before all tests in the suite
func (suite *ContributionRepositoryTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())
	suite.repo = NewContributionRepository(suite.base.DB)
	suite.factories = testutils.NewFactorySet()
}

// SetupTest runs before each test
func (suite *ContributionRepositoryTestSuite) SetupTest() {
	suite.base.TruncateAll()
	donor := suite.factories.Donor.Create()
	suite.Require().NoError(suite.base.DB.Create(donor).Error)
	suite.donorID = donor.ID
}

// TestGetByDonorDisplayOrder tests the year-desc, candidate-asc contract
// regardless of insertion order
func (suite *ContributionRepositoryTestSuite) TestGetByDonorDisplayOrder() {
	for _, c := range []struct {
		year      int
		candidate string
	}{
		{2018, "Zeta for Council"},
		{2022, "Beta for Senate"},
		{2022, "Alpha for Mayor"},
		{2020, "Gamma for Governor"},
	} {
		suite.Require().NoError(suite.repo.Add(suite.factories.Contribution.Create(suite.donorID, c.year, c.candidate, 100)))
	}

	history, err := suite.repo.GetByDonor(suite.donorID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 4)

	suite.Equal(2022, history[0].Year)
	suite.Equal("Alpha for Mayor", history[0].Candidate)
	suite.Equal(2022, history[1].Year)
	suite.Equal("Beta for Senate", history[1].Candidate)
	suite.Equal(2020, history[2].Year)
	suite.Equal(2018, history[3].Year)
}

// TestRemoveSingleRow tests that removal touches exactly one entry
func (suite *ContributionRepositoryTestSuite) TestRemoveSingleRow() {
	first := suite.factories.Contribution.Create(suite.donorID, 2020, "Smith", 100)
	second := suite.factories.Contribution.Create(suite.donorID, 2021, "Jones", 200)
	suite.Require().NoError(suite.repo.Add(first))
	suite.Require().NoError(suite.repo.Add(second))

	suite.Require().NoError(suite.repo.Remove(first.ID))

	history, err := suite.repo.GetByDonor(suite.donorID)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(second.ID, history[0].ID)
}

// TestRemoveMissing tests removing an absent entry
func (suite *ContributionRepositoryTestSuite) TestRemoveMissing() {
	suite.ErrorIs(suite.repo.Remove(12345), gorm.ErrRecordNotFound)
}

func TestContributionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ContributionRepositoryTestSuite))
}
