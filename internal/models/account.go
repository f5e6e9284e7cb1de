package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind classifies a money container.
type AccountKind string

const (
	Cash AccountKind = "CASH"
	Bank AccountKind = "BANK"
	POS  AccountKind = "POS"
)

// Account is the accounts table row.
type Account struct {
	AccountID    string          `db:"account_id"`
	Name         string          `db:"name"`
	Kind         AccountKind     `db:"kind"`
	CurrencyCode string          `db:"currency_code"`
	BankName     string          `db:"bank_name"` // Nullable, stored as empty string when absent
	IsActive     bool            `db:"is_active"`
	Balance      decimal.Decimal `db:"balance"` // Cached sum of movements, updated in the same tx as each movement
	AuditFields
}
