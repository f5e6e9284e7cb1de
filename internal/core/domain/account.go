package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies a money container held by the clinic.
type AccountKind string

const (
	Cash AccountKind = "CASH"
	Bank AccountKind = "BANK"
	POS  AccountKind = "POS"
)

// Account represents a named money container (kasa): a cash drawer, a bank
// account or a POS terminal.
//
// Balance is a materialized value maintained transactionally alongside every
// movement write; it always equals the signed sum of the account's movements.
// Nothing outside movement creation is allowed to change it.
type Account struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Kind         AccountKind     `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	BankName     string          `json:"bankName"` // Only meaningful for BANK accounts
	IsActive     bool            `json:"isActive"` // Soft-deactivated accounts keep their movement history
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// ValidKind reports whether k is one of the recognized account kinds.
func ValidKind(k AccountKind) bool {
	switch k {
	case Cash, Bank, POS:
		return true
	}
	return false
}
