package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction brings money in or sends it out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the recognized transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// TransactionStatus is the closed set of transaction states.
type TransactionStatus string

const (
	Completed TransactionStatus = "COMPLETED"
	Pending   TransactionStatus = "PENDING"
	Cancelled TransactionStatus = "CANCELLED"
)

// CanTransitionTo reports whether a transition from s to target is allowed.
// Pending transactions settle to Completed; both Pending and Completed may be
// cancelled. Nothing leaves the Cancelled state.
func (s TransactionStatus) CanTransitionTo(target TransactionStatus) bool {
	switch s {
	case Pending:
		return target == Completed || target == Cancelled
	case Completed:
		return target == Cancelled
	}
	return false
}

// PaymentMethod identifies how one payment leg was made.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "CASH"
	MethodCard     PaymentMethod = "CARD"
	MethodTransfer PaymentMethod = "TRANSFER"
)

// Payment is one leg of a transaction's settlement, tied to a specific
// account and method. A transaction may be split across accounts/methods.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	Method        PaymentMethod   `json:"method"`
	PaidAt        time.Time       `json:"paidAt"`
	AuditFields
}

// Transaction is a billable/payable business event (islem): a sale, a
// purchase or a company bill. A completed transaction carries payments whose
// amounts sum exactly to NetAmount; a pending transaction carries none until
// it is settled. Settlement and cancellation post movements, never edit them.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	ReferenceCode string            `json:"referenceCode"` // Human-readable, unique
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	GrossAmount   decimal.Decimal   `json:"grossAmount"`
	NetAmount     decimal.Decimal   `json:"netAmount"` // Gross minus any deduction
	CategoryID    string            `json:"categoryID"`
	PatientID     *string           `json:"patientID,omitempty"` // Counterparty for income transactions
	CompanyID     *string           `json:"companyID,omitempty"` // Counterparty for expense transactions
	Description   string            `json:"description"`
	DueDate       *time.Time        `json:"dueDate,omitempty"` // Present on deferred/credit transactions
	Payments      []Payment         `json:"payments,omitempty"`
	AuditFields
}

// IsOverdue reports whether the transaction is pending and past due as of now.
func (t Transaction) IsOverdue(now time.Time) bool {
	return t.Status == Pending && t.DueDate != nil && t.DueDate.Before(now)
}

// PaymentTotal returns the sum of all payment amounts.
func (t Transaction) PaymentTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range t.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// MovementDirectionFor returns the direction a settlement movement takes for
// this transaction type. Cancellation posts the opposite direction.
func (t Transaction) MovementDirectionFor() MovementDirection {
	if t.Type == Expense {
		return Out
	}
	return In
}
