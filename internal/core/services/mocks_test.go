package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
)

// Hand-written testify mocks for the repository facades, shared by the
// service test suites in this package.

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, openingMovement *domain.Movement) error {
	args := m.Called(ctx, account, openingMovement)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// MockMovementRepository is a mock type for the MovementRepositoryFacade interface.
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var movements []domain.Movement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.Movement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockMovementRepository) FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementsByTransferID(ctx context.Context, transferID string) ([]domain.Movement, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) AppendMovementsInTx(ctx context.Context, tx pgx.Tx, lockedAccounts map[string]domain.Account, movements []domain.Movement) ([]domain.Movement, error) {
	args := m.Called(ctx, tx, lockedAccounts, movements)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error {
	args := m.Called(ctx, txn, movements)
	return args.Error(0)
}

func (m *MockTransactionRepository) SettleTransaction(ctx context.Context, txn domain.Transaction, payments []domain.Payment, movements []domain.Movement) error {
	args := m.Called(ctx, txn, payments, movements)
	return args.Error(0)
}

func (m *MockTransactionRepository) CancelTransaction(ctx context.Context, transactionID string, expectedStatus domain.TransactionStatus, reversingMovements []domain.Movement, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, expectedStatus, reversingMovements, userID, now)
	return args.Error(0)
}

// MockTransferRepository is a mock type for the TransferRepositoryFacade interface.
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) SaveTransfer(ctx context.Context, transfer domain.Transfer, out domain.Movement, in domain.Movement) (*domain.Movement, *domain.Movement, error) {
	args := m.Called(ctx, transfer, out, in)
	var savedOut, savedIn *domain.Movement
	if args.Get(0) != nil {
		savedOut = args.Get(0).(*domain.Movement)
	}
	if args.Get(1) != nil {
		savedIn = args.Get(1).(*domain.Movement)
	}
	return savedOut, savedIn, args.Error(2)
}

func (m *MockTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

// MockPatientDirectory is a mock type for the PatientDirectory interface.
type MockPatientDirectory struct {
	mock.Mock
}

func (m *MockPatientDirectory) FindPatientByID(ctx context.Context, patientID string) (*domain.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patient), args.Error(1)
}

func (m *MockPatientDirectory) FindPatientsByIDs(ctx context.Context, patientIDs []string) (map[string]domain.Patient, error) {
	args := m.Called(ctx, patientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Patient), args.Error(1)
}

// MockCategoryRepository is a mock type for the CategoryRepositoryFacade interface.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, appliesTo *domain.TransactionType, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, appliesTo, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountTransactionsByCategory(ctx context.Context, categoryID string) (int, error) {
	args := m.Called(ctx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	args := m.Called(ctx, categoryID, userID, now)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface.
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) GetSummaryData(ctx context.Context, from, to time.Time, now time.Time) (*domain.FinanceSummary, error) {
	args := m.Called(ctx, from, to, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinanceSummary), args.Error(1)
}

func (m *MockReportingRepository) GetPatientDebtors(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error) {
	args := m.Called(ctx, minDebt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PatientDebt), args.Error(1)
}

func (m *MockReportingRepository) GetCompanyDebts(ctx context.Context) ([]domain.CompanyDebt, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CompanyDebt), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlySummary(ctx context.Context, monthsBack int, now time.Time) ([]domain.MonthlySummary, error) {
	args := m.Called(ctx, monthsBack, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlySummary), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
