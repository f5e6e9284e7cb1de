package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. Every
// query recomputes its answer from the movements/transactions tables.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountBalanceAsOf computes the signed sum of an account's movements up
// to and including the given instant. With asOf = now this always agrees with
// the cached accounts.balance column.
func (r *reportingRepository) GetAccountBalanceAsOf(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'IN' THEN amount ELSE -amount END), 0)
		FROM movements
		WHERE account_id = $1 AND occurred_at <= $2;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("error querying balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// GetSummaryData aggregates completed income/expense plus pending and overdue
// figures for the dashboard.
func (r *reportingRepository) GetSummaryData(ctx context.Context, from, to time.Time, now time.Time) (*domain.FinanceSummary, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'COMPLETED' AND type = 'INCOME'  AND created_at >= $1 AND created_at < $2 THEN net_amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN status = 'COMPLETED' AND type = 'EXPENSE' AND created_at >= $1 AND created_at < $2 THEN net_amount ELSE 0 END), 0) AS total_expense,
			COALESCE(SUM(CASE WHEN status = 'COMPLETED' AND type = 'INCOME'  AND created_at >= $3 AND created_at < $4 THEN net_amount ELSE 0 END), 0) AS today_income,
			COALESCE(SUM(CASE WHEN status = 'COMPLETED' AND type = 'EXPENSE' AND created_at >= $3 AND created_at < $4 THEN net_amount ELSE 0 END), 0) AS today_expense,
			COALESCE(SUM(CASE WHEN status = 'PENDING'   AND type = 'INCOME'  THEN net_amount ELSE 0 END), 0) AS pending_due,
			COUNT(*) FILTER (WHERE status = 'PENDING' AND due_date IS NOT NULL AND due_date < $5) AS overdue_count
		FROM transactions;
	`

	var summary domain.FinanceSummary
	err := r.Pool.QueryRow(ctx, query, from, to.AddDate(0, 0, 1), today, tomorrow, now).Scan(
		&summary.TotalIncome,
		&summary.TotalExpense,
		&summary.TodayIncome,
		&summary.TodayExpense,
		&summary.PendingDue,
		&summary.OverdueCount,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying finance summary: %w", err)
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	return &summary, nil
}

// GetPatientDebtors returns per-patient billed/paid/balance rows with
// balance >= minDebt, largest balance first. Billed counts every
// non-cancelled income transaction; paid counts the payments they carry, so
// balance = billed - paid is the pending remainder.
func (r *reportingRepository) GetPatientDebtors(ctx context.Context, minDebt decimal.Decimal) ([]domain.PatientDebt, error) {
	query := `
		SELECT
			p.patient_id,
			p.full_name,
			COALESCE(SUM(t.net_amount), 0) AS total_billed,
			COALESCE(SUM(pay.paid), 0) AS total_paid
		FROM patients p
		JOIN transactions t ON t.patient_id = p.patient_id
		LEFT JOIN LATERAL (
			SELECT SUM(amount) AS paid FROM payments WHERE transaction_id = t.transaction_id
		) pay ON TRUE
		WHERE t.type = 'INCOME' AND t.status != 'CANCELLED'
		GROUP BY p.patient_id, p.full_name
		HAVING COALESCE(SUM(t.net_amount), 0) - COALESCE(SUM(pay.paid), 0) >= $1
		ORDER BY COALESCE(SUM(t.net_amount), 0) - COALESCE(SUM(pay.paid), 0) DESC;
	`

	rows, err := r.Pool.Query(ctx, query, minDebt)
	if err != nil {
		return nil, fmt.Errorf("error querying patient debtors: %w", err)
	}
	defer rows.Close()

	result := []domain.PatientDebt{}
	for rows.Next() {
		var row domain.PatientDebt
		if err := rows.Scan(&row.PatientID, &row.PatientName, &row.TotalBilled, &row.TotalPaid); err != nil {
			return nil, fmt.Errorf("error scanning patient debtor row: %w", err)
		}
		row.Balance = row.TotalBilled.Sub(row.TotalPaid)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patient debtor rows: %w", err)
	}

	return result, nil
}

// GetCompanyDebts returns the outstanding payable per supplier company:
// pending expense transactions not yet settled.
func (r *reportingRepository) GetCompanyDebts(ctx context.Context) ([]domain.CompanyDebt, error) {
	query := `
		SELECT
			c.company_id,
			c.name,
			COALESCE(SUM(t.net_amount), 0) AS total_debt
		FROM companies c
		JOIN transactions t ON t.company_id = c.company_id
		WHERE t.type = 'EXPENSE' AND t.status = 'PENDING'
		GROUP BY c.company_id, c.name
		HAVING COALESCE(SUM(t.net_amount), 0) > 0
		ORDER BY total_debt DESC;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying company debts: %w", err)
	}
	defer rows.Close()

	result := []domain.CompanyDebt{}
	for rows.Next() {
		var row domain.CompanyDebt
		if err := rows.Scan(&row.CompanyID, &row.CompanyName, &row.TotalDebt); err != nil {
			return nil, fmt.Errorf("error scanning company debt row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company debt rows: %w", err)
	}

	return result, nil
}

// GetMonthlySummary returns one row per month for the last monthsBack months,
// oldest first, bucketed by transaction creation date. Months with no
// transactions still appear, zero-valued.
func (r *reportingRepository) GetMonthlySummary(ctx context.Context, monthsBack int, now time.Time) ([]domain.MonthlySummary, error) {
	query := `
		WITH months AS (
			SELECT date_trunc('month', $1::timestamptz) - (n || ' months')::interval AS month_start
			FROM generate_series(0, $2 - 1) AS n
		)
		SELECT
			EXTRACT(YEAR FROM m.month_start)::int AS year,
			EXTRACT(MONTH FROM m.month_start)::int AS month,
			COALESCE(SUM(CASE WHEN t.type = 'INCOME'  THEN t.net_amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN t.type = 'EXPENSE' THEN t.net_amount ELSE 0 END), 0) AS expense
		FROM months m
		LEFT JOIN transactions t
			ON t.status = 'COMPLETED'
			AND t.created_at >= m.month_start
			AND t.created_at < m.month_start + interval '1 month'
		GROUP BY m.month_start
		ORDER BY m.month_start;
	`

	rows, err := r.Pool.Query(ctx, query, now, monthsBack)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly summary: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlySummary{}
	for rows.Next() {
		var row domain.MonthlySummary
		if err := rows.Scan(&row.Year, &row.Month, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("error scanning monthly summary row: %w", err)
		}
		row.Net = row.Income.Sub(row.Expense)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly summary rows: %w", err)
	}

	return result, nil
}
