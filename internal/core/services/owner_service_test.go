package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/core/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/utils"
)

type OwnerServiceTestSuite struct {
	suite.Suite
	mockOwnerRepo   *MockOwnerRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.OwnerSvcFacade
}

func (suite *OwnerServiceTestSuite) SetupTest() {
	suite.mockOwnerRepo = new(MockOwnerRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewOwnerService(suite.mockOwnerRepo, suite.mockAccountRepo)
}

func (suite *OwnerServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Jane Roe",
		TaxID:    "123.456.789-00",
		Address:  "1 Main St",
		Email:    "Jane.Roe@Example.com",
		Password: "correct-horse",
	}

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "jane.roe@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOwnerRepo.On("FindOwnerByTaxID", ctx, req.TaxID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOwnerRepo.On("SaveOwner", ctx, mock.AnythingOfType("domain.Owner")).Return(nil).Once()

	owner, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(owner)
	suite.NotEmpty(owner.OwnerID)
	suite.Equal("jane.roe@example.com", owner.Email, "email is normalized to lower case")
	suite.NotEqual(req.Password, owner.PasswordHash)
	suite.True(utils.CheckPasswordHash(req.Password, owner.PasswordHash))
	suite.mockOwnerRepo.AssertExpectations(suite.T())
}

func (suite *OwnerServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name: "Jane Roe", TaxID: "123", Address: "1 Main St",
		Email: "jane@example.com", Password: "correct-horse",
	}

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "jane@example.com").
		Return(&domain.Owner{OwnerID: uuid.NewString()}, nil).Once()

	owner, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(owner)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOwnerRepo.AssertNotCalled(suite.T(), "SaveOwner", mock.Anything, mock.Anything)
}

func (suite *OwnerServiceTestSuite) TestRegister_DuplicateTaxID() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name: "Jane Roe", TaxID: "123", Address: "1 Main St",
		Email: "jane@example.com", Password: "correct-horse",
	}

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockOwnerRepo.On("FindOwnerByTaxID", ctx, "123").
		Return(&domain.Owner{OwnerID: uuid.NewString()}, nil).Once()

	owner, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(owner)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *OwnerServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.Owner{OwnerID: uuid.NewString(), Email: "jane@example.com", PasswordHash: hash}

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "jane@example.com").Return(stored, nil).Once()

	owner, err := suite.service.Authenticate(ctx, "Jane@Example.com", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(stored.OwnerID, owner.OwnerID)
}

func (suite *OwnerServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	stored := &domain.Owner{OwnerID: uuid.NewString(), Email: "jane@example.com", PasswordHash: hash}

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "jane@example.com").Return(stored, nil).Once()

	owner, err := suite.service.Authenticate(ctx, "jane@example.com", "wrong")

	suite.Require().Error(err)
	suite.Nil(owner)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *OwnerServiceTestSuite) TestAuthenticate_UnknownEmailIsUnauthorized() {
	ctx := context.Background()

	suite.mockOwnerRepo.On("FindOwnerByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	owner, err := suite.service.Authenticate(ctx, "ghost@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(owner)
	suite.ErrorIs(err, apperrors.ErrUnauthorized, "unknown email must not be distinguishable from a wrong password")
}

func (suite *OwnerServiceTestSuite) TestUpdateOwner_PartialFields() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	stored := &domain.Owner{OwnerID: ownerID, Name: "Old Name", TaxID: "123", Address: "Old Addr"}
	newName := "New Name"

	suite.mockOwnerRepo.On("FindOwnerByID", ctx, ownerID).Return(stored, nil).Once()
	suite.mockOwnerRepo.On("UpdateOwner", ctx, mock.MatchedBy(func(o domain.Owner) bool {
		return o.Name == "New Name" && o.TaxID == "123" && o.Address == "Old Addr"
	})).Return(nil).Once()

	owner, err := suite.service.UpdateOwner(ctx, ownerID, dto.UpdateOwnerRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal("New Name", owner.Name)
	suite.mockOwnerRepo.AssertExpectations(suite.T())
}

func (suite *OwnerServiceTestSuite) TestDeleteOwner_BlockedByAccounts() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	stored := &domain.Owner{OwnerID: ownerID}

	suite.mockOwnerRepo.On("FindOwnerByID", ctx, ownerID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByOwner", ctx, ownerID).
		Return([]domain.Account{{AccountID: uuid.NewString(), OwnerID: ownerID}}, nil).Once()

	err := suite.service.DeleteOwner(ctx, ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockOwnerRepo.AssertNotCalled(suite.T(), "DeleteOwner", mock.Anything, mock.Anything)
}

func (suite *OwnerServiceTestSuite) TestDeleteOwner_Success() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	stored := &domain.Owner{OwnerID: ownerID}

	suite.mockOwnerRepo.On("FindOwnerByID", ctx, ownerID).Return(stored, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByOwner", ctx, ownerID).Return([]domain.Account{}, nil).Once()
	suite.mockOwnerRepo.On("DeleteOwner", ctx, ownerID).Return(nil).Once()

	err := suite.service.DeleteOwner(ctx, ownerID)

	suite.Require().NoError(err)
	suite.mockOwnerRepo.AssertExpectations(suite.T())
}

func TestOwnerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OwnerServiceTestSuite))
}
