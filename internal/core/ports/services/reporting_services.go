package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// ReportingSvcFacade answers the derived read-side queries. Implementations
// never mutate ledger state and never cache in a way that can drift from the
// movement log.
type ReportingSvcFacade interface {
	// AccountBalance computes an account's balance as of the given instant
	// from its movement log. A nil asOf means now.
	AccountBalance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// Summary aggregates income/expense/net plus today's totals and overdue
	// stats for a date range.
	Summary(ctx context.Context, from, to time.Time) (*domain.FinanceSummary, error)

	// DebtorsByPatient lists patients with outstanding balance >= minDebt.
	DebtorsByPatient(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error)

	// DebtByCompany lists outstanding payables per supplier company.
	DebtByCompany(ctx context.Context) ([]domain.CompanyDebt, error)

	// MonthlySummary buckets income/expense by month for the last monthsBack
	// months, oldest first.
	MonthlySummary(ctx context.Context, monthsBack int) ([]domain.MonthlySummary, error)
}
