package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// PaymentRequest is one settlement leg in a create/settle request.
type PaymentRequest struct {
	AccountID string               `json:"account_id" binding:"required"`
	Amount    decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Method    domain.PaymentMethod `json:"method" binding:"required,oneof=CASH CARD TRANSFER"`
}

// CreateTransactionRequest defines the data needed to create a transaction.
// With payments summing to net_amount the transaction completes immediately;
// with no payments and a due date it is created pending.
type CreateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryID  string                 `json:"category_id" binding:"required"`
	PatientID   *string                `json:"patient_id"`
	CompanyID   *string                `json:"company_id"`
	GrossAmount decimal.Decimal        `json:"gross_amount" binding:"required,dgt0"`
	NetAmount   decimal.Decimal        `json:"net_amount" binding:"required,dgt0"`
	Description string                 `json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Payments    []PaymentRequest       `json:"payments"`
}

// SettleTransactionRequest carries the payments that settle a pending transaction.
type SettleTransactionRequest struct {
	Payments []PaymentRequest `json:"payments" binding:"required,min=1,dive"`
}

// PaymentResponse defines the data returned for one payment.
type PaymentResponse struct {
	PaymentID string               `json:"id"`
	AccountID string               `json:"account_id"`
	Amount    decimal.Decimal      `json:"amount"`
	Method    domain.PaymentMethod `json:"method"`
	PaidAt    time.Time            `json:"paid_at"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"id"`
	ReferenceCode string                   `json:"reference_code"`
	Type          domain.TransactionType   `json:"type"`
	Status        domain.TransactionStatus `json:"status"`
	GrossAmount   decimal.Decimal          `json:"gross_amount"`
	NetAmount     decimal.Decimal          `json:"net_amount"`
	CategoryID    string                   `json:"category_id"`
	PatientID     *string                  `json:"patient_id,omitempty"`
	CompanyID     *string                  `json:"company_id,omitempty"`
	Description   string                   `json:"description"`
	DueDate       *time.Time               `json:"due_date,omitempty"`
	Payments      []PaymentResponse        `json:"payments,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type       *domain.TransactionType   `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Status     *domain.TransactionStatus `form:"status" binding:"omitempty,oneof=COMPLETED PENDING CANCELLED"`
	CategoryID *string                   `form:"category_id"`
	CompanyID  *string                   `form:"company_id"`
	PatientID  *string                   `form:"patient_id"`
	DateFrom   *time.Time                `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time                `form:"date_to" time_format:"2006-01-02"`
	Search     string                    `form:"search"`
	Skip       int                       `form:"skip,default=0"`
	Limit      int                       `form:"limit,default=20"`
}

// OverdueTransactionResponse is a transaction in the overdue listing with the
// debtor's name resolved from the patient directory.
type OverdueTransactionResponse struct {
	TransactionResponse
	PatientName *string `json:"patient_name,omitempty"`
}

// ListTransactionsResponse wraps a page of transactions with the total count.
type ListTransactionsResponse struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		AccountID: p.AccountID,
		Amount:    p.Amount,
		Method:    p.Method,
		PaidAt:    p.PaidAt,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	payments := make([]PaymentResponse, len(t.Payments))
	for i := range t.Payments {
		payments[i] = ToPaymentResponse(&t.Payments[i])
	}
	return TransactionResponse{
		TransactionID: t.TransactionID,
		ReferenceCode: t.ReferenceCode,
		Type:          t.Type,
		Status:        t.Status,
		GrossAmount:   t.GrossAmount,
		NetAmount:     t.NetAmount,
		CategoryID:    t.CategoryID,
		PatientID:     t.PatientID,
		CompanyID:     t.CompanyID,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Payments:      payments,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(ts))
	for i := range ts {
		res[i] = ToTransactionResponse(&ts[i])
	}
	return res
}

// ToOverdueTransactionResponses converts overdue transactions, attaching the
// patient name where the directory resolved one.
func ToOverdueTransactionResponses(ts []domain.Transaction, patients map[string]domain.Patient) []OverdueTransactionResponse {
	res := make([]OverdueTransactionResponse, len(ts))
	for i := range ts {
		res[i] = OverdueTransactionResponse{TransactionResponse: ToTransactionResponse(&ts[i])}
		if ts[i].PatientID != nil {
			if p, found := patients[*ts[i].PatientID]; found {
				name := p.FullName
				res[i].PatientName = &name
			}
		}
	}
	return res
}
