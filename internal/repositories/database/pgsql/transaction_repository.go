package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	"github.com/klinikore/klinik-ledger/internal/models"
	"github.com/klinikore/klinik-ledger/internal/utils/mapping"
)

const transactionColumns = `transaction_id, reference_code, type, status, gross_amount, net_amount, category_id, patient_id, company_id, description, due_date, created_at, created_by, last_updated_at, last_updated_by`
const paymentColumns = `payment_id, transaction_id, account_id, amount, method, paid_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo  portsrepo.AccountRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for transaction and payment data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactionRow(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.ReferenceCode,
		&m.Type,
		&m.Status,
		&m.GrossAmount,
		&m.NetAmount,
		&m.CategoryID,
		&m.PatientID,
		&m.CompanyID,
		&m.Description,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// balanceChangesFor folds a movement set into per-account signed deltas.
func balanceChangesFor(movements []domain.Movement) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, mv := range movements {
		changes[mv.AccountID] = changes[mv.AccountID].Add(mv.SignedAmount())
	}
	return changes
}

// postMovementsInTx locks the affected accounts, applies balance deltas and
// appends the movement rows, all inside the supplied transaction.
func (r *PgxTransactionRepository) postMovementsInTx(ctx context.Context, tx pgx.Tx, movements []domain.Movement, userID string, now time.Time) error {
	if len(movements) == 0 {
		return nil
	}

	changes := balanceChangesFor(movements)
	accountIDs := make([]string, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return err
	}
	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, userID, now); err != nil {
		return err
	}
	if _, err := r.movementRepo.AppendMovementsInTx(ctx, tx, lockedAccounts, movements); err != nil {
		return err
	}
	return nil
}

func (r *PgxTransactionRepository) insertPaymentsInTx(ctx context.Context, tx pgx.Tx, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, p := range payments {
		modelP := mapping.ToModelPayment(p)
		batch.Queue(query,
			modelP.PaymentID,
			modelP.TransactionID,
			modelP.AccountID,
			modelP.Amount,
			modelP.Method,
			modelP.PaidAt,
			modelP.CreatedAt,
			modelP.CreatedBy,
			modelP.LastUpdatedAt,
			modelP.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return classifyError(fmt.Errorf("failed to execute payment batch: %w", err))
	}
	return nil
}

// SaveTransaction persists a new transaction and, for a directly completed
// one, its payments and their settlement movements. All rows and balance
// updates commit together or not at all.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error {
	modelTxn := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.ReferenceCode,
		modelTxn.Type,
		modelTxn.Status,
		modelTxn.GrossAmount,
		modelTxn.NetAmount,
		modelTxn.CategoryID,
		modelTxn.PatientID,
		modelTxn.CompanyID,
		modelTxn.Description,
		modelTxn.DueDate,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
			case "23503":
				return fmt.Errorf("%w: transaction references a missing row", apperrors.ErrNotFound)
			}
		}
		return classifyError(fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err))
	}

	if err := r.insertPaymentsInTx(ctx, tx, txn.Payments); err != nil {
		return err
	}
	if err := r.postMovementsInTx(ctx, tx, movements, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SettleTransaction transitions a pending transaction to completed,
// persisting its payments and posting their movements atomically. The status
// check is repeated inside the transaction so two concurrent settlements
// cannot both succeed.
func (r *PgxTransactionRepository) SettleTransaction(ctx context.Context, txn domain.Transaction, payments []domain.Payment, movements []domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query,
		txn.TransactionID,
		string(domain.Completed),
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
		string(domain.Pending),
	)
	if err != nil {
		return classifyError(fmt.Errorf("failed to update transaction %s status: %w", txn.TransactionID, err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrConflict, txn.TransactionID)
	}

	if err := r.insertPaymentsInTx(ctx, tx, payments); err != nil {
		return err
	}
	if err := r.postMovementsInTx(ctx, tx, movements, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// CancelTransaction marks the transaction cancelled and posts the given
// reversing movements (empty for a pending transaction). The original
// movements are never touched. The status guard ensures the reversing
// movements match what is actually on the books: a pending transaction that
// was settled after the caller read it no longer matches, and the caller must
// re-read and rebuild the reversals.
func (r *PgxTransactionRepository) CancelTransaction(ctx context.Context, transactionID string, expectedStatus domain.TransactionStatus, reversingMovements []domain.Movement, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, query, transactionID, string(domain.Cancelled), now, userID, string(expectedStatus))
	if err != nil {
		return classifyError(fmt.Errorf("failed to cancel transaction %s: %w", transactionID, err))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is no longer %s", apperrors.ErrConflict, transactionID, expectedStatus)
	}

	if err := r.postMovementsInTx(ctx, tx, reversingMovements, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction with its payments.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	payments, err := r.findPaymentsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	domainTxn.Payments = payments

	return &domainTxn, nil
}

func (r *PgxTransactionRepository) findPaymentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1 ORDER BY paid_at, payment_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var m models.Payment
		err := rows.Scan(
			&m.PaymentID,
			&m.TransactionID,
			&m.AccountID,
			&m.Amount,
			&m.Method,
			&m.PaidAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", rows.Err())
	}

	return payments, nil
}

// ListTransactions retrieves a filtered page of transactions, newest first,
// along with the total count matching the filter.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.Type != nil {
		addArg(` AND type = $%d`, string(*filter.Type))
	}
	if filter.Status != nil {
		addArg(` AND status = $%d`, string(*filter.Status))
	}
	if filter.CategoryID != nil {
		addArg(` AND category_id = $%d`, *filter.CategoryID)
	}
	if filter.CompanyID != nil {
		addArg(` AND company_id = $%d`, *filter.CompanyID)
	}
	if filter.PatientID != nil {
		addArg(` AND patient_id = $%d`, *filter.PatientID)
	}
	if filter.DateFrom != nil {
		addArg(` AND created_at >= $%d`, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addArg(` AND created_at < $%d`, filter.DateTo.AddDate(0, 0, 1))
	}
	if filter.Search != "" {
		addArg(` AND (reference_code ILIKE $%d OR description ILIKE $%[1]d)`, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Skip)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(modelTxn))
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return transactions, total, nil
}

// ListOverdue retrieves pending transactions whose due date has passed as of
// the given instant, oldest debt first.
func (r *PgxTransactionRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = $1 AND due_date IS NOT NULL AND due_date < $2
		ORDER BY due_date, transaction_id;
	`

	rows, err := r.Pool.Query(ctx, query, string(domain.Pending), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(modelTxn))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating overdue transaction rows: %w", rows.Err())
	}

	return transactions, nil
}
