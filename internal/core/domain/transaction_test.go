package domain_test

import (
	"testing"
	"time"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.TransactionStatus
		to   domain.TransactionStatus
		want bool
	}{
		{"pending settles to completed", domain.Pending, domain.Completed, true},
		{"pending can be cancelled", domain.Pending, domain.Cancelled, true},
		{"completed can be cancelled", domain.Completed, domain.Cancelled, true},
		{"completed cannot go back to pending", domain.Completed, domain.Pending, false},
		{"cancelled is terminal (to pending)", domain.Cancelled, domain.Pending, false},
		{"cancelled is terminal (to completed)", domain.Cancelled, domain.Completed, false},
		{"no self transition for pending", domain.Pending, domain.Pending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransaction_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name:        "pending past due",
			transaction: domain.Transaction{Status: domain.Pending, DueDate: &yesterday},
			want:        true,
		},
		{
			name:        "pending not yet due",
			transaction: domain.Transaction{Status: domain.Pending, DueDate: &tomorrow},
			want:        false,
		},
		{
			name:        "pending without due date",
			transaction: domain.Transaction{Status: domain.Pending},
			want:        false,
		},
		{
			name:        "completed transactions are never overdue",
			transaction: domain.Transaction{Status: domain.Completed, DueDate: &yesterday},
			want:        false,
		},
		{
			name:        "cancelled transactions are never overdue",
			transaction: domain.Transaction{Status: domain.Cancelled, DueDate: &yesterday},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.IsOverdue(now))
		})
	}
}

func TestTransaction_PaymentTotal(t *testing.T) {
	txn := domain.Transaction{
		Payments: []domain.Payment{
			{Amount: decimal.NewFromInt(300)},
			{Amount: decimal.NewFromInt(200)},
		},
	}
	assert.True(t, decimal.NewFromInt(500).Equal(txn.PaymentTotal()))

	empty := domain.Transaction{}
	assert.True(t, decimal.Zero.Equal(empty.PaymentTotal()))
}

func TestMovement_SignedAmount(t *testing.T) {
	in := domain.Movement{Direction: domain.In, Amount: decimal.NewFromInt(100)}
	out := domain.Movement{Direction: domain.Out, Amount: decimal.NewFromInt(100)}

	assert.True(t, decimal.NewFromInt(100).Equal(in.SignedAmount()))
	assert.True(t, decimal.NewFromInt(-100).Equal(out.SignedAmount()))
}

func TestTransaction_MovementDirectionFor(t *testing.T) {
	income := domain.Transaction{Type: domain.Income}
	expense := domain.Transaction{Type: domain.Expense}

	assert.Equal(t, domain.In, income.MovementDirectionFor())
	assert.Equal(t, domain.Out, expense.MovementDirectionFor())
}
