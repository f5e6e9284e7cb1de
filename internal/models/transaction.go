package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions table row.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	ReferenceCode string          `db:"reference_code"`
	Type          string          `db:"type"`   // INCOME or EXPENSE
	Status        string          `db:"status"` // COMPLETED, PENDING or CANCELLED
	GrossAmount   decimal.Decimal `db:"gross_amount"`
	NetAmount     decimal.Decimal `db:"net_amount"`
	CategoryID    string          `db:"category_id"`
	PatientID     *string         `db:"patient_id"` // Nullable
	CompanyID     *string         `db:"company_id"` // Nullable
	Description   string          `db:"description"`
	DueDate       *time.Time      `db:"due_date"` // Nullable
	AuditFields
}

// Payment is the payments table row, one settlement leg of a transaction.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        string          `db:"method"` // CASH, CARD or TRANSFER
	PaidAt        time.Time       `db:"paid_at"`
	AuditFields
}
