package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// ReportingRepository answers the read-side aggregate queries. Every result
// is recomputed from the movements/transactions tables on each call; nothing
// here mutates state.
type ReportingRepository interface {
	// GetAccountBalanceAsOf computes the signed sum of an account's movements
	// up to and including the given instant.
	GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// GetSummaryData aggregates completed income/expense plus pending and
	// overdue figures for the dashboard.
	GetSummaryData(ctx context.Context, from, to time.Time, now time.Time) (*domain.FinanceSummary, error)

	// GetPatientDebtors returns per-patient billed/paid/balance rows with
	// balance >= minDebt, largest balance first.
	GetPatientDebtors(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error)

	// GetCompanyDebts returns the outstanding payable per supplier company.
	GetCompanyDebts(ctx context.Context) ([]domain.CompanyDebt, error)

	// GetMonthlySummary returns one row per month for the last monthsBack
	// months, oldest first, bucketed by transaction date.
	GetMonthlySummary(ctx context.Context, monthsBack int, now time.Time) ([]domain.MonthlySummary, error)
}
