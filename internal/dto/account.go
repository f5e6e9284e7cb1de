package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=CASH BANK POS"`
	Currency       string             `json:"currency" binding:"required,len=3"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	BankName       string             `json:"bank_name"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string             `json:"id"`
	Name      string             `json:"name"`
	Kind      domain.AccountKind `json:"kind"`
	Currency  string             `json:"currency"`
	BankName  string             `json:"bank_name,omitempty"`
	Balance   decimal.Decimal    `json:"balance"`
	IsActive  bool               `json:"active"`
	CreatedAt time.Time          `json:"created_at"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	IncludeInactive bool `form:"include_inactive,default=false"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Kind:      acc.Kind,
		Currency:  acc.CurrencyCode,
		BankName:  acc.BankName,
		Balance:   acc.Balance,
		IsActive:  acc.IsActive,
		CreatedAt: acc.CreatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}
