package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portssvc "github.com/ledgerhouse/banking-backoffice/internal/core/ports/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
	"github.com/ledgerhouse/banking-backoffice/internal/handlers"
	"github.com/ledgerhouse/banking-backoffice/internal/platform/config"
	"github.com/ledgerhouse/banking-backoffice/internal/utils"
)

// --- Mock OwnerService ---
type MockOwnerService struct {
	mock.Mock
}

func (m *MockOwnerService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Owner, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}
func (m *MockOwnerService) Authenticate(ctx context.Context, email string, password string) (*domain.Owner, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}
func (m *MockOwnerService) ListOwners(ctx context.Context) ([]domain.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Owner), args.Error(1)
}
func (m *MockOwnerService) GetOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}
func (m *MockOwnerService) UpdateOwner(ctx context.Context, ownerID string, req dto.UpdateOwnerRequest) (*domain.Owner, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}
func (m *MockOwnerService) DeleteOwner(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

var _ portssvc.OwnerSvcFacade = (*MockOwnerService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccountNumber(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}
func (m *MockAccountService) SetBalance(ctx context.Context, accountID string, balance *decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, accountID, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock MovementService ---
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}
func (m *MockMovementService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}
func (m *MockMovementService) CreateMovement(ctx context.Context, req dto.CreateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) UpdateMovementDate(ctx context.Context, movementID string, newDate time.Time) (*domain.Movement, error) {
	args := m.Called(ctx, movementID, newDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) DeleteMovement(ctx context.Context, movementID string) error {
	args := m.Called(ctx, movementID)
	return args.Error(0)
}

var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Test Suite Setup ---

type MovementHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	jwtSecret           string
	mockOwnerService    *MockOwnerService
	mockAccountService  *MockAccountService
	mockMovementService *MockMovementService
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockOwnerService = new(MockOwnerService)
	suite.mockAccountService = new(MockAccountService)
	suite.mockMovementService = new(MockMovementService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
		IsProduction:      true, // skip swagger routes
	}
	container := &portssvc.ServiceContainer{
		Owner:    suite.mockOwnerService,
		Account:  suite.mockAccountService,
		Movement: suite.mockMovementService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *MovementHandlerTestSuite) authHeader() string {
	token, err := utils.GenerateJWT(uuid.NewString(), suite.jwtSecret, time.Hour, "test")
	suite.Require().NoError(err)
	return "Bearer " + token
}

func (suite *MovementHandlerTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authHeader())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *MovementHandlerTestSuite) TestCreateMovement_Success() {
	accountID := uuid.NewString()
	req := dto.CreateMovementRequest{
		AccountID: accountID,
		Kind:      "DEPOSIT",
		Amount:    decimal.NewFromInt(100),
		Date:      "2024-03-15",
	}
	created := &domain.Movement{
		MovementID: uuid.NewString(),
		AccountID:  accountID,
		Kind:       domain.Deposit,
		Amount:     decimal.NewFromInt(100),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockMovementService.On("CreateMovement", mock.Anything, req).Return(created, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements", req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.MovementID, resp.MovementID)
	suite.Equal("DEPOSIT", resp.Kind)
	suite.Equal("2024-03-15", resp.Date)
	suite.mockMovementService.AssertExpectations(suite.T())
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_InsufficientFunds() {
	req := dto.CreateMovementRequest{
		AccountID: uuid.NewString(),
		Kind:      "WITHDRAWAL",
		Amount:    decimal.NewFromInt(500),
		Date:      "2024-03-15",
	}

	suite.mockMovementService.On("CreateMovement", mock.Anything, req).
		Return(nil, fmt.Errorf("%w: balance 100 is less than 500", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/movements", req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_InvalidKindRejectedByBinding() {
	body := map[string]any{
		"accountID": uuid.NewString(),
		"kind":      "TRANSFER",
		"amount":    "100",
		"date":      "2024-03-15",
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/movements", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMovementService.AssertNotCalled(suite.T(), "CreateMovement", mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestGetMovement_NotFound() {
	movementID := uuid.NewString()
	suite.mockMovementService.On("GetMovementByID", mock.Anything, movementID).
		Return(nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/movements/"+movementID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *MovementHandlerTestSuite) TestDeleteMovement_AbsentStillNoContent() {
	movementID := uuid.NewString()
	suite.mockMovementService.On("DeleteMovement", mock.Anything, movementID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/movements/"+movementID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *MovementHandlerTestSuite) TestMovements_RequireAuth() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movements", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MovementHandlerTestSuite) TestLogin_ReturnsToken() {
	owner := &domain.Owner{OwnerID: uuid.NewString(), Name: "Jane", Email: "jane@example.com"}
	suite.mockOwnerService.On("Authenticate", mock.Anything, "jane@example.com", "correct-horse").
		Return(owner, nil).Once()

	body := dto.LoginRequest{Email: "jane@example.com", Password: "correct-horse"}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Token)
	suite.Equal("Bearer", resp.TokenType)
	suite.Equal(owner.OwnerID, resp.OwnerID)
}

func TestMovementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
