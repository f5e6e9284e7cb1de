package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	portssvc "github.com/klinikore/klinik-ledger/internal/core/ports/services"
	"github.com/klinikore/klinik-ledger/internal/middleware"
)

// reportingService answers derived read-side queries. Everything here is
// recomputed from the movement and transaction tables on each call.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, accountRepo: accountRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// AccountBalance computes the account's balance as of the given instant from
// its movement log. With a nil asOf the result equals the account's cached
// balance; the recomputation is the authoritative answer either way.
func (s *reportingService) AccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}

	at := time.Now().UTC()
	if asOf != nil {
		at = asOf.UTC()
	}
	balance, err := s.reportingRepo.GetAccountBalanceAsOf(ctx, accountID, at)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute account balance: %w", err)
	}
	return balance, nil
}

// Summary aggregates income/expense/net plus today's totals, pending
// receivables and overdue counts for a date range.
func (s *reportingService) Summary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}

	summary, err := s.reportingRepo.GetSummaryData(ctx, from, to, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to compute finance summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute finance summary: %w", err)
	}
	return summary, nil
}

// DebtorsByPatient lists patients with outstanding balance at or above
// minDebt, largest balance first.
func (s *reportingService) DebtorsByPatient(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if minDebt.IsNegative() {
		minDebt = decimal.Zero
	}
	debtors, err := s.reportingRepo.GetPatientDebtors(ctx, minDebt)
	if err != nil {
		logger.Error("Failed to compute patient debtors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute patient debtors: %w", err)
	}
	if debtors == nil {
		debtors = []domain.PatientDebt{}
	}
	return debtors, nil
}

// DebtByCompany lists outstanding payables per supplier company.
func (s *reportingService) DebtByCompany(ctx context.Context) ([]domain.CompanyDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debts, err := s.reportingRepo.GetCompanyDebts(ctx)
	if err != nil {
		logger.Error("Failed to compute company debts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute company debts: %w", err)
	}
	if debts == nil {
		debts = []domain.CompanyDebt{}
	}
	return debts, nil
}

// MonthlySummary buckets income/expense by month for the last monthsBack
// months, oldest first.
func (s *reportingService) MonthlySummary(ctx context.Context, monthsBack int) ([]domain.MonthlySummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if monthsBack <= 0 {
		monthsBack = 12
	}
	if monthsBack > 60 {
		return nil, fmt.Errorf("%w: months_back must not exceed 60", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.GetMonthlySummary(ctx, monthsBack, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to compute monthly summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute monthly summary: %w", err)
	}
	if rows == nil {
		rows = []domain.MonthlySummary{}
	}
	return rows, nil
}
