package service

import (
	"testing"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"
	"calltime-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// ClientServiceTestSuite tests the client service
type ClientServiceTestSuite struct {
	suite.Suite
	base      *testutils.BaseTestSuite
	service   *ClientService
	factories *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ClientServiceTestSuite) SetupSuite() {
	suite.base = testutils.SetupTestSuite(suite.T())
	suite.service = NewClientService(repository.NewClientRepository(suite.base.DB), validator.New())
	suite.factories = testutils.NewFactorySet()
}

// SetupTest runs before each test
func (suite *ClientServiceTestSuite) SetupTest() {
	suite.base.TruncateAll()
}

func (suite *ClientServiceTestSuite) TestCreateClientHashesPortalPassword() {
	resp, err := suite.service.CreateClient(&CreateClientRequest{
		Name:           "Rivera for Senate",
		Candidate:      "Jamie Rivera",
		PortalPassword: "opensesame",
	})
	suite.Require().NoError(err)
	suite.NotZero(resp.ID)

	var stored models.Client
	suite.Require().NoError(suite.base.DB.First(&stored, resp.ID).Error)
	suite.NotEqual("opensesame", stored.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("opensesame")))
}

func (suite *ClientServiceTestSuite) TestCreateClientWithoutPasswordLeavesPortalLocked() {
	resp, err := suite.service.CreateClient(&CreateClientRequest{Name: "Chen for Council"})
	suite.Require().NoError(err)

	var stored models.Client
	suite.Require().NoError(suite.base.DB.First(&stored, resp.ID).Error)
	suite.Empty(stored.PasswordHash)
}

func (suite *ClientServiceTestSuite) TestCreateClientDuplicateName() {
	_, err := suite.service.CreateClient(&CreateClientRequest{Name: "Rivera for Senate"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateClient(&CreateClientRequest{Name: "Rivera for Senate"})
	suite.Require().ErrorIs(err, apperrors.ErrClientExists)
}

func (suite *ClientServiceTestSuite) TestCreateClientValidation() {
	_, err := suite.service.CreateClient(&CreateClientRequest{
		Name:         "Rivera for Senate",
		ManagerEmail: "not-an-email",
	})
	suite.Require().Error(err)

	_, err = suite.service.CreateClient(&CreateClientRequest{
		Name:           "Rivera for Senate",
		PortalPassword: "short",
	})
	suite.Require().Error(err)
}

func (suite *ClientServiceTestSuite) TestUpdateClientPartial() {
	created, err := suite.service.CreateClient(&CreateClientRequest{
		Name:      "Rivera for Senate",
		Candidate: "Jamie Rivera",
		Office:    "State Senate",
	})
	suite.Require().NoError(err)

	office := "US Senate"
	updated, err := suite.service.UpdateClient(created.ID, &UpdateClientRequest{Office: &office})
	suite.Require().NoError(err)
	suite.Equal("US Senate", updated.Office)
	suite.Equal("Jamie Rivera", updated.Candidate)
}

func (suite *ClientServiceTestSuite) TestGetMissingClient() {
	_, err := suite.service.GetClient(9999)
	suite.Require().ErrorIs(err, apperrors.ErrClientNotFound)
}

func (suite *ClientServiceTestSuite) TestResetPortalPasswordForcesChange() {
	client := suite.factories.Client.WithPassword("original-pass")
	suite.Require().NoError(suite.base.DB.Create(client).Error)

	suite.Require().NoError(suite.service.ResetPortalPassword(client.ID, "temporary-pass"))

	var stored models.Client
	suite.Require().NoError(suite.base.DB.First(&stored, client.ID).Error)
	suite.True(stored.PasswordResetRequired)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("temporary-pass")))
	suite.Error(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("original-pass")))
}

func (suite *ClientServiceTestSuite) TestChangePortalPasswordClearsFlag() {
	client := suite.factories.Client.WithPassword("temporary-pass")
	client.PasswordResetRequired = true
	suite.Require().NoError(suite.base.DB.Create(client).Error)

	suite.Require().NoError(suite.service.ChangePortalPassword(client.ID, "chosen-by-client"))

	var stored models.Client
	suite.Require().NoError(suite.base.DB.First(&stored, client.ID).Error)
	suite.False(stored.PasswordResetRequired)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("chosen-by-client")))
}

func (suite *ClientServiceTestSuite) TestShortPasswordRejected() {
	client := suite.factories.Client.Create()
	suite.Require().NoError(suite.base.DB.Create(client).Error)

	err := suite.service.ResetPortalPassword(client.ID, "short")
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))

	err = suite.service.ChangePortalPassword(client.ID, "short")
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestClientServiceTestSuite runs the test suite
func TestClientServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClientServiceTestSuite))
}
