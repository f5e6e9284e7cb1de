package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/dto"
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

var (
	ErrPaymentsExceedNet   = errors.New("payment amounts exceed the transaction net amount")
	ErrPaymentsIncomplete  = errors.New("payment amounts must settle the full net amount")
	ErrNoDueDateNoPayments = errors.New("a transaction without payments requires a due date")
	ErrCategoryMismatch    = errors.New("category does not apply to this transaction type")
)

// transactionService implements the transaction ledger: business events that
// settle through payments against accounts, producing movement log entries.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
	movementRepo    portsrepo.MovementRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	patientDir      portsrepo.PatientDirectory
}

// NewTransactionService creates a new transaction ledger service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	categoryRepo portsrepo.CategoryRepositoryFacade,
	patientDir portsrepo.PatientDirectory,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		movementRepo:    movementRepo,
		categoryRepo:    categoryRepo,
		patientDir:      patientDir,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// newReferenceCode builds the human-readable unique code shown on receipts:
// GLR- for income (gelir), GDR- for expense (gider).
func newReferenceCode(txnType domain.TransactionType, id string) string {
	prefix := "GLR"
	if txnType == domain.Expense {
		prefix = "GDR"
	}
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10])
}

// validatePayments checks every payment leg and resolves the referenced
// accounts, returning them keyed by ID.
func (s *transactionService) validatePayments(ctx context.Context, payments []dto.PaymentRequest) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(payments))
	for _, p := range payments {
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		accountIDs = append(accountIDs, p.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment accounts: %w", err)
	}
	for _, id := range accountIDs {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accounts, nil
}

// buildPayments converts payment requests into domain payments.
func buildPayments(reqs []dto.PaymentRequest, transactionID string, now time.Time, audit domain.AuditFields) []domain.Payment {
	payments := make([]domain.Payment, len(reqs))
	for i, p := range reqs {
		payments[i] = domain.Payment{
			PaymentID:     uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     p.AccountID,
			Amount:        p.Amount,
			Method:        p.Method,
			PaidAt:        now,
			AuditFields:   audit,
		}
	}
	return payments
}

// buildSettlementMovements produces one movement per payment leg. Resulting
// balances are filled in by the repository under row locks.
func buildSettlementMovements(txn *domain.Transaction, payments []domain.Payment, now time.Time, audit domain.AuditFields) []domain.Movement {
	direction := txn.MovementDirectionFor()
	movements := make([]domain.Movement, len(payments))
	for i, p := range payments {
		movements[i] = domain.Movement{
			MovementID:    uuid.NewString(),
			AccountID:     p.AccountID,
			Direction:     direction,
			Amount:        p.Amount,
			Description:   fmt.Sprintf("%s %s", txn.ReferenceCode, txn.Description),
			OccurredAt:    now,
			TransactionID: &txn.TransactionID,
			AuditFields:   audit,
		}
	}
	return movements
}

// CreateTransaction creates a transaction. Payments summing exactly to the
// net amount complete it immediately and post settlement movements; no
// payments plus a due date create it pending (an accrued receivable/payable).
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.NetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: net amount must be positive", apperrors.ErrValidation)
	}
	if req.GrossAmount.LessThan(req.NetAmount) {
		return nil, fmt.Errorf("%w: gross amount must not be below net amount", apperrors.ErrValidation)
	}

	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, req.CategoryID)
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category.AppliesTo != req.Type {
		return nil, fmt.Errorf("%w: %w: category %s applies to %s", apperrors.ErrValidation, ErrCategoryMismatch, category.CategoryID, category.AppliesTo)
	}

	paymentTotal := decimal.Zero
	for _, p := range req.Payments {
		paymentTotal = paymentTotal.Add(p.Amount)
	}
	if paymentTotal.GreaterThan(req.NetAmount) {
		return nil, fmt.Errorf("%w: %w: %s > %s", apperrors.ErrValidation, ErrPaymentsExceedNet, paymentTotal.String(), req.NetAmount.String())
	}
	if len(req.Payments) > 0 && !paymentTotal.Equal(req.NetAmount) {
		return nil, fmt.Errorf("%w: %w: %s of %s", apperrors.ErrValidation, ErrPaymentsIncomplete, paymentTotal.String(), req.NetAmount.String())
	}
	if len(req.Payments) == 0 && req.DueDate == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoDueDateNoPayments)
	}

	// The patients table is owned by the clinical side; resolve the reference
	// here so a transaction never points at a patient that does not exist.
	if req.PatientID != nil {
		if _, err := s.patientDir.FindPatientByID(ctx, *req.PatientID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		ReferenceCode: newReferenceCode(req.Type, transactionID),
		Type:          req.Type,
		Status:        domain.Pending,
		GrossAmount:   req.GrossAmount,
		NetAmount:     req.NetAmount,
		CategoryID:    req.CategoryID,
		PatientID:     req.PatientID,
		CompanyID:     req.CompanyID,
		Description:   req.Description,
		DueDate:       req.DueDate,
		AuditFields:   audit,
	}

	var movements []domain.Movement
	if len(req.Payments) > 0 {
		if _, err := s.validatePayments(ctx, req.Payments); err != nil {
			return nil, err
		}
		txn.Status = domain.Completed
		txn.Payments = buildPayments(req.Payments, transactionID, now, audit)
		movements = buildSettlementMovements(&txn, txn.Payments, now, audit)
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, movements); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", transactionID),
		slog.String("reference_code", txn.ReferenceCode),
		slog.String("status", string(txn.Status)))
	return &txn, nil
}

// SettlePending transitions a pending transaction to completed, posting one
// movement per payment leg. Only pending transactions can be settled.
func (s *transactionService) SettlePending(ctx context.Context, transactionID string, req dto.SettleTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.Pending {
		return nil, fmt.Errorf("%w: transaction %s is %s, expected PENDING", apperrors.ErrConflict, transactionID, txn.Status)
	}

	paymentTotal := decimal.Zero
	for _, p := range req.Payments {
		paymentTotal = paymentTotal.Add(p.Amount)
	}
	if !paymentTotal.Equal(txn.NetAmount) {
		if paymentTotal.GreaterThan(txn.NetAmount) {
			return nil, fmt.Errorf("%w: %w: %s > %s", apperrors.ErrValidation, ErrPaymentsExceedNet, paymentTotal.String(), txn.NetAmount.String())
		}
		return nil, fmt.Errorf("%w: %w: %s of %s", apperrors.ErrValidation, ErrPaymentsIncomplete, paymentTotal.String(), txn.NetAmount.String())
	}

	if _, err := s.validatePayments(ctx, req.Payments); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	txn.Status = domain.Completed
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	payments := buildPayments(req.Payments, transactionID, now, audit)
	movements := buildSettlementMovements(txn, payments, now, audit)

	if err := s.transactionRepo.SettleTransaction(ctx, *txn, payments, movements); err != nil {
		logger.Error("Failed to settle transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to settle transaction: %w", err)
	}

	txn.Payments = payments
	logger.Info("Transaction settled", slog.String("transaction_id", transactionID))
	return txn, nil
}

// CancelTransaction cancels a transaction. A completed one gets offsetting
// movements (opposite direction, same amounts and accounts) so every affected
// balance returns to its pre-transaction value; the originals stay untouched.
// A pending one is simply marked cancelled. Cancelling twice is a conflict.
func (s *transactionService) CancelTransaction(ctx context.Context, transactionID string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.Status.CanTransitionTo(domain.Cancelled) {
		return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrConflict, transactionID, txn.Status)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	var reversing []domain.Movement
	if txn.Status == domain.Completed {
		originals, err := s.movementRepo.FindMovementsByTransactionID(ctx, transactionID)
		if err != nil {
			logger.Error("Failed to fetch movements for cancellation", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			return nil, fmt.Errorf("failed to fetch movements for cancellation: %w", err)
		}
		reversing = make([]domain.Movement, 0, len(originals))
		for _, orig := range originals {
			direction := domain.In
			if orig.Direction == domain.In {
				direction = domain.Out
			}
			reversing = append(reversing, domain.Movement{
				MovementID:    uuid.NewString(),
				AccountID:     orig.AccountID,
				Direction:     direction,
				Amount:        orig.Amount,
				Description:   fmt.Sprintf("Reversal of %s", txn.ReferenceCode),
				OccurredAt:    now,
				TransactionID: &txn.TransactionID,
				AuditFields:   audit,
			})
		}
	}

	if err := s.transactionRepo.CancelTransaction(ctx, transactionID, txn.Status, reversing, userID, now); err != nil {
		logger.Error("Failed to cancel transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to cancel transaction: %w", err)
	}

	txn.Status = domain.Cancelled
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	logger.Info("Transaction cancelled", slog.String("transaction_id", transactionID), slog.Int("reversing_movements", len(reversing)))
	return txn, nil
}

// GetTransactionByID retrieves a transaction with its payments.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, transactionID)
}

// ListTransactions retrieves a filtered page plus the total match count.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	skip := params.Skip
	if skip < 0 {
		skip = 0
	}

	filter := portsrepo.ListTransactionsFilter{
		Type:       params.Type,
		Status:     params.Status,
		CategoryID: params.CategoryID,
		CompanyID:  params.CompanyID,
		PatientID:  params.PatientID,
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
		Search:     params.Search,
		Skip:       skip,
		Limit:      limit,
	}

	items, total, err := s.transactionRepo.ListTransactions(ctx, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Items: dto.ToTransactionResponses(items),
		Total: total,
	}, nil
}

// GetOverdue retrieves pending transactions past due as of the given instant,
// oldest debt first, with debtor names resolved from the patient directory.
func (s *transactionService) GetOverdue(ctx context.Context, asOf time.Time) ([]dto.OverdueTransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	overdue, err := s.transactionRepo.ListOverdue(ctx, asOf)
	if err != nil {
		logger.Error("Failed to list overdue transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve overdue transactions: %w", err)
	}

	patientIDs := []string{}
	for _, txn := range overdue {
		if txn.PatientID != nil {
			patientIDs = append(patientIDs, *txn.PatientID)
		}
	}
	patients := map[string]domain.Patient{}
	if len(patientIDs) > 0 {
		patients, err = s.patientDir.FindPatientsByIDs(ctx, uniqueStrings(patientIDs))
		if err != nil {
			logger.Error("Failed to resolve patient names for overdue listing", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to resolve overdue debtors: %w", err)
		}
	}

	return dto.ToOverdueTransactionResponses(overdue, patients), nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
