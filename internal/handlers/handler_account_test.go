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
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/handlers"
	"github.com/klinikore/klinik-ledger/internal/platform/config"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListMovements(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListMovementsResponse), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock TransferService ---

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, note string, userID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amount, note, userID)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*domain.Transfer), args.Get(1).(*domain.Movement), args.Get(2).(*domain.Movement), args.Error(3)
}

func (m *MockTransferService) GetTransferByID(ctx context.Context, transferID string) (*domain.Transfer, *domain.Movement, *domain.Movement, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).(*domain.Transfer), args.Get(1).(*domain.Movement), args.Get(2).(*domain.Movement), args.Error(3)
}

var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) AccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingService) Summary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceSummary), args.Error(1)
}

func (m *MockReportingService) DebtorsByPatient(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error) {
	args := m.Called(ctx, minDebt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PatientDebt), args.Error(1)
}

func (m *MockReportingService) DebtByCompany(ctx context.Context) ([]domain.CompanyDebt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyDebt), args.Error(1)
}

func (m *MockReportingService) MonthlySummary(ctx context.Context, monthsBack int) ([]domain.MonthlySummary, error) {
	args := m.Called(ctx, monthsBack)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySummary), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockAccountService   *MockAccountService
	mockTransferService  *MockTransferService
	mockReportingService *MockReportingService
	jwtSecret            string
}

// generateTestToken creates a signed JWT for test requests.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "klinik-ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)
	suite.mockTransferService = new(MockTransferService)
	suite.mockReportingService = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:      suite.jwtSecret,
		LoginRateLimit: "10-M",
	}
	services := &portssvc.ServiceContainer{
		Account:   suite.mockAccountService,
		Transfer:  suite.mockTransferService,
		Reporting: suite.mockReportingService,
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AccountHandlerTestSuite) authedRequest(method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	body := dto.CreateAccountRequest{
		Name:     "Ana Kasa",
		Kind:     domain.Cash,
		Currency: "TRY",
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		Name:         "Ana Kasa",
		Kind:         domain.Cash,
		CurrencyCode: "TRY",
		IsActive:     true,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), mock.AnythingOfType("string")).
		Return(created, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/accounts", body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.Cash, resp.Kind)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{}"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListMovements_Success() {
	accountID := uuid.NewString()
	expected := &dto.ListMovementsResponse{
		Movements: []dto.MovementResponse{
			{MovementID: uuid.NewString(), AccountID: accountID, Direction: domain.In, Amount: decimal.NewFromInt(100)},
		},
		NextToken: nil,
	}

	suite.mockAccountService.On("ListMovements", mock.Anything, accountID, mock.MatchedBy(func(p dto.ListMovementsParams) bool {
		return p.Limit == 10
	})).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/movements?limit=10", accountID), nil))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMovementsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Movements, 1)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestTransfer_Success() {
	fromID := uuid.NewString()
	toID := uuid.NewString()
	amount := decimal.NewFromInt(500)
	body := dto.TransferRequest{ToAccountID: toID, Amount: amount}

	transfer := &domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	}
	out := &domain.Movement{MovementID: uuid.NewString(), AccountID: fromID, Direction: domain.Out, Amount: amount}
	in := &domain.Movement{MovementID: uuid.NewString(), AccountID: toID, Direction: domain.In, Amount: amount}

	suite.mockTransferService.On("Transfer", mock.Anything, fromID, toID, amount, "", mock.AnythingOfType("string")).
		Return(transfer, out, in, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/transfer", fromID), body))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(transfer.TransferID, resp.TransferID)
	suite.Equal(domain.Out, resp.MovementOut.Direction)
	suite.Equal(domain.In, resp.MovementIn.Direction)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestTransfer_SameAccountRejected() {
	accountID := uuid.NewString()
	body := dto.TransferRequest{ToAccountID: accountID, Amount: decimal.NewFromInt(10)}

	suite.mockTransferService.On("Transfer", mock.Anything, accountID, accountID, decimal.NewFromInt(10), "", mock.AnythingOfType("string")).
		Return(nil, nil, nil, fmt.Errorf("%w: accounts must differ", apperrors.ErrValidation)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/transfer", accountID), body))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetTransfer_Success() {
	transferID := uuid.NewString()
	fromID := uuid.NewString()
	toID := uuid.NewString()
	amount := decimal.NewFromInt(900)
	transfer := &domain.Transfer{
		TransferID:    transferID,
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
	}
	out := &domain.Movement{MovementID: uuid.NewString(), AccountID: fromID, Direction: domain.Out, Amount: amount}
	in := &domain.Movement{MovementID: uuid.NewString(), AccountID: toID, Direction: domain.In, Amount: amount}

	suite.mockTransferService.On("GetTransferByID", mock.Anything, transferID).Return(transfer, out, in, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/transfers/%s", transferID), nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), transferID)
	suite.Contains(w.Body.String(), "movement_out")
	suite.Contains(w.Body.String(), "movement_in")
}

func (suite *AccountHandlerTestSuite) TestGetTransfer_NotFound() {
	transferID := uuid.NewString()

	suite.mockTransferService.On("GetTransferByID", mock.Anything, transferID).
		Return(nil, nil, nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/transfers/%s", transferID), nil))

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetBalance_AsOf() {
	accountID := uuid.NewString()

	suite.mockReportingService.On("AccountBalance", mock.Anything, accountID, mock.AnythingOfType("*time.Time")).
		Return(decimal.NewFromInt(730), nil).Once()

	url := fmt.Sprintf("/api/v1/accounts/%s/balance?as_of=2026-03-15T12:00:00Z", accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, url, nil))

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "bakiye")
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetBalance_BadAsOf() {
	accountID := uuid.NewString()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/accounts/"+accountID+"/balance?as_of=gecen-hafta", nil))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "AccountBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount_Conflict() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeactivateAccount", mock.Anything, accountID, mock.AnythingOfType("string")).
		Return(fmt.Errorf("%w: account holds a balance", apperrors.ErrConflict)).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil))

	suite.Equal(http.StatusConflict, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
