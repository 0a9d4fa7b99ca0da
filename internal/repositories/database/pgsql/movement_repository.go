package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
)

type PgxMovementRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxMovementRepository creates a new repository for movement data. It
// needs the account repository to lock and rewrite balances inside its
// transactions.
func newPgxMovementRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) portsrepo.MovementRepository {
	return &PgxMovementRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.MovementRepository = (*PgxMovementRepository)(nil)

const movementColumns = `movement_id, account_id, kind, amount, date, created_at, last_updated_at`

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.Kind,
		&m.Amount,
		&m.Date,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE movement_id = $1;`
	movement, err := scanMovement(r.Pool.QueryRow(ctx, query, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
		}
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return movement, nil
}

func (r *PgxMovementRepository) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY date, created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE account_id = $1 ORDER BY date, created_at;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements for account %s: %w", accountID, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]domain.Movement, error) {
	var movements []domain.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, *movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}

// ApplyMovement performs the balance update and the movement insert as one
// transaction. The account row is locked first, so the insufficient-funds
// check below sees the balance no concurrent movement can change until we
// commit.
func (r *PgxMovementRepository) ApplyMovement(ctx context.Context, movement domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	account, err := r.accountRepo.findAccountByIDForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return err
	}

	if movement.Kind == domain.Withdrawal && account.Balance.LessThan(movement.Amount) {
		return fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, account.Balance.String(), movement.Amount.String())
	}

	newBalance := account.Balance.Add(movement.Kind.BalanceDelta(movement.Amount))
	if err := r.accountRepo.updateAccountBalanceInTx(ctx, tx, movement.AccountID, newBalance, movement.LastUpdatedAt); err != nil {
		return err
	}

	insert := `
		INSERT INTO movements (movement_id, account_id, kind, amount, date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, insert,
		movement.MovementID,
		movement.AccountID,
		movement.Kind,
		movement.Amount,
		movement.Date,
		movement.CreatedAt,
		movement.LastUpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", movement.MovementID, err)
	}

	return r.Commit(ctx, tx)
}

// ReverseMovement undoes the movement's balance effect and deletes the
// record in one transaction. A reversal may drive the balance negative
// unless strict is set.
func (r *PgxMovementRepository) ReverseMovement(ctx context.Context, movement domain.Movement, strict bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	account, err := r.accountRepo.findAccountByIDForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return err
	}

	newBalance := account.Balance.Sub(movement.Kind.BalanceDelta(movement.Amount))
	if strict && newBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: reversal would leave balance at %s", apperrors.ErrConflict, newBalance.String())
	}

	now := time.Now().UTC()
	if err := r.accountRepo.updateAccountBalanceInTx(ctx, tx, movement.AccountID, newBalance, now); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM movements WHERE movement_id = $1;`, movement.MovementID)
	if err != nil {
		return fmt.Errorf("failed to delete movement %s: %w", movement.MovementID, err)
	}
	if tag.RowsAffected() == 0 {
		// Someone else deleted it first; their reversal already ran.
		return fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movement.MovementID)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxMovementRepository) UpdateMovementDate(ctx context.Context, movementID string, date time.Time, now time.Time) error {
	query := `UPDATE movements SET date = $2, last_updated_at = $3 WHERE movement_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, movementID, date, now)
	if err != nil {
		return fmt.Errorf("failed to update movement %s: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
	}
	return nil
}
