package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/klinikore/klinik-ledger/internal/apperrors"
	"github.com/klinikore/klinik-ledger/internal/core/domain"
	portsrepo "github.com/klinikore/klinik-ledger/internal/core/ports/repositories"
	"github.com/klinikore/klinik-ledger/internal/models"
	"github.com/klinikore/klinik-ledger/internal/utils/mapping"
	"github.com/klinikore/klinik-ledger/internal/utils/pagination"
)

const movementColumns = `movement_id, account_id, direction, amount, resulting_balance, description, occurred_at, transaction_id, transfer_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxMovementRepository owns the append-only movements table. There is no
// update or delete path here on purpose.
type PgxMovementRepository struct {
	BaseRepository
	overdraft domain.OverdraftPolicy
}

// newPgxMovementRepository creates a new repository for movement data.
func newPgxMovementRepository(pool *pgxpool.Pool, overdraft domain.OverdraftPolicy) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		overdraft:      overdraft,
	}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

func scanMovementRow(row pgx.Row) (models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.Direction,
		&m.Amount,
		&m.ResultingBalance,
		&m.Description,
		&m.OccurredAt,
		&m.TransactionID,
		&m.TransferID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// AppendMovementsInTx inserts movement rows inside an open transaction. The
// caller must have locked every affected account via
// FindAccountsByIDsForUpdate; resulting balances are computed from those
// locked balances, so each row freezes the account balance at its instant.
// Returns the movements with ResultingBalance filled in.
func (r *PgxMovementRepository) AppendMovementsInTx(ctx context.Context, tx pgx.Tx, lockedAccounts map[string]domain.Account, movements []domain.Movement) ([]domain.Movement, error) {
	if len(movements) == 0 {
		return movements, nil
	}

	// Running balance per account across the movements of this unit,
	// processed in a deterministic order.
	running := make(map[string]decimal.Decimal, len(lockedAccounts))
	for id, acc := range lockedAccounts {
		running[id] = acc.Balance
	}

	ordered := make([]domain.Movement, len(movements))
	copy(ordered, movements)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].MovementID < ordered[j].MovementID
	})

	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	batch := &pgx.Batch{}
	for i := range ordered {
		mv := &ordered[i]
		acc, ok := lockedAccounts[mv.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s was not locked before movement append", mv.AccountID)
		}

		newBalance := running[mv.AccountID].Add(mv.SignedAmount())
		if newBalance.IsNegative() && !r.overdraft.Allows(acc.Kind) {
			return nil, fmt.Errorf("%w: movement would overdraw %s account %s", apperrors.ErrValidation, acc.Kind, mv.AccountID)
		}
		running[mv.AccountID] = newBalance
		mv.ResultingBalance = newBalance

		modelMv := mapping.ToModelMovement(*mv)
		batch.Queue(query,
			modelMv.MovementID,
			modelMv.AccountID,
			modelMv.Direction,
			modelMv.Amount,
			modelMv.ResultingBalance,
			modelMv.Description,
			modelMv.OccurredAt,
			modelMv.TransactionID,
			modelMv.TransferID,
			modelMv.CreatedAt,
			modelMv.CreatedBy,
			modelMv.LastUpdatedAt,
			modelMv.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, classifyError(fmt.Errorf("failed to execute movement batch: %w", err))
	}

	return ordered, nil
}

// ListMovementsByAccountID retrieves a page of an account's movements, newest
// first, using a cursor token on (occurred_at, movement_id).
func (r *PgxMovementRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Movement, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []interface{}{accountID}
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE account_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		occurredAt, movementID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (occurred_at, movement_id) < ($2, $3)`
		args = append(args, occurredAt, movementID)
	}
	query += fmt.Sprintf(` ORDER BY occurred_at DESC, movement_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // Fetch one extra to detect another page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	modelMovements := []models.Movement{}
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		modelMovements = append(modelMovements, m)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows: %w", rows.Err())
	}

	var newNextToken *string
	if len(modelMovements) > limit {
		modelMovements = modelMovements[:limit]
		last := modelMovements[len(modelMovements)-1]
		token := pagination.EncodeToken(last.OccurredAt, last.MovementID)
		newNextToken = &token
	}

	return mapping.ToDomainMovementSlice(modelMovements), newNextToken, nil
}

// FindMovementsByTransactionID retrieves every movement a transaction has
// posted, oldest first.
func (r *PgxMovementRepository) FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE transaction_id = $1
		ORDER BY occurred_at, movement_id;
	`
	return r.queryMovements(ctx, query, transactionID)
}

// FindMovementsByTransferID retrieves the two legs of a transfer.
func (r *PgxMovementRepository) FindMovementsByTransferID(ctx context.Context, transferID string) ([]domain.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE transfer_id = $1
		ORDER BY direction DESC, movement_id;
	`
	return r.queryMovements(ctx, query, transferID)
}

func (r *PgxMovementRepository) queryMovements(ctx context.Context, query string, args ...interface{}) ([]domain.Movement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	modelMovements := []models.Movement{}
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		modelMovements = append(modelMovements, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", rows.Err())
	}

	return mapping.ToDomainMovementSlice(modelMovements), nil
}
