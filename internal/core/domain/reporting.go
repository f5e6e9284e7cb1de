package domain

import (
	"github.com/shopspring/decimal"
)

// FinanceSummary is the dashboard rollup for a date range.
type FinanceSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`
	TodayIncome  decimal.Decimal `json:"todayIncome"`
	TodayExpense decimal.Decimal `json:"todayExpense"`
	PendingDue   decimal.Decimal `json:"pendingDue"`   // Sum of pending income not yet collected
	OverdueCount int             `json:"overdueCount"` // Pending transactions past their due date
}

// PatientDebt is one row of the patient debtor report. Balance is always
// TotalBilled minus TotalPaid; it is recomputed, never persisted.
type PatientDebt struct {
	PatientID   string          `json:"patientID"`
	PatientName string          `json:"patientName"`
	TotalBilled decimal.Decimal `json:"totalBilled"`
	TotalPaid   decimal.Decimal `json:"totalPaid"`
	Balance     decimal.Decimal `json:"balance"`
}

// CompanyDebt is the outstanding payable toward one supplier company.
type CompanyDebt struct {
	CompanyID   string          `json:"companyID"`
	CompanyName string          `json:"companyName"`
	TotalDebt   decimal.Decimal `json:"totalDebt"`
}

// MonthlySummary is one month's income/expense bucket.
type MonthlySummary struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"` // 1..12
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
