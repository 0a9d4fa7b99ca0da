package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	portsrepo "github.com/ledgerhouse/banking-backoffice/internal/core/ports/repositories"
)

type PgxOwnerRepository struct {
	BaseRepository
}

// newPgxOwnerRepository creates a new repository for owner data.
func newPgxOwnerRepository(pool *pgxpool.Pool) portsrepo.OwnerRepository {
	return &PgxOwnerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.OwnerRepository = (*PgxOwnerRepository)(nil)

const ownerColumns = `owner_id, name, tax_id, address, email, password_hash, created_at, last_updated_at`

func scanOwner(row pgx.Row) (*domain.Owner, error) {
	var o domain.Owner
	err := row.Scan(
		&o.OwnerID,
		&o.Name,
		&o.TaxID,
		&o.Address,
		&o.Email,
		&o.PasswordHash,
		&o.CreatedAt,
		&o.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOwner inserts a new owner. Unique violations on email or tax_id come
// back as ErrConflict.
func (r *PgxOwnerRepository) SaveOwner(ctx context.Context, owner domain.Owner) error {
	query := `
		INSERT INTO owners (owner_id, name, tax_id, address, email, password_hash, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		owner.OwnerID,
		owner.Name,
		owner.TaxID,
		owner.Address,
		owner.Email,
		owner.PasswordHash,
		owner.CreatedAt,
		owner.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: owner with this email or tax ID already exists", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to save owner %s: %w", owner.OwnerID, err)
	}
	return nil
}

func (r *PgxOwnerRepository) FindOwnerByID(ctx context.Context, ownerID string) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE owner_id = $1;`
	owner, err := scanOwner(r.Pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to find owner %s: %w", ownerID, err)
	}
	return owner, nil
}

func (r *PgxOwnerRepository) FindOwnerByEmail(ctx context.Context, email string) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE email = $1;`
	owner, err := scanOwner(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: owner with email %s", apperrors.ErrNotFound, email)
		}
		return nil, fmt.Errorf("failed to find owner by email: %w", err)
	}
	return owner, nil
}

func (r *PgxOwnerRepository) FindOwnerByTaxID(ctx context.Context, taxID string) (*domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners WHERE tax_id = $1;`
	owner, err := scanOwner(r.Pool.QueryRow(ctx, query, taxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: owner with tax ID %s", apperrors.ErrNotFound, taxID)
		}
		return nil, fmt.Errorf("failed to find owner by tax ID: %w", err)
	}
	return owner, nil
}

func (r *PgxOwnerRepository) ListOwners(ctx context.Context) ([]domain.Owner, error) {
	query := `SELECT ` + ownerColumns + ` FROM owners ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	defer rows.Close()

	var owners []domain.Owner
	for rows.Next() {
		owner, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan owner row: %w", err)
		}
		owners = append(owners, *owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating owner rows: %w", err)
	}
	return owners, nil
}

func (r *PgxOwnerRepository) UpdateOwner(ctx context.Context, owner domain.Owner) error {
	query := `
		UPDATE owners
		SET name = $2, tax_id = $3, address = $4, last_updated_at = $5
		WHERE owner_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		owner.OwnerID,
		owner.Name,
		owner.TaxID,
		owner.Address,
		owner.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: tax ID already registered", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to update owner %s: %w", owner.OwnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, owner.OwnerID)
	}
	return nil
}

func (r *PgxOwnerRepository) DeleteOwner(ctx context.Context, ownerID string) error {
	query := `DELETE FROM owners WHERE owner_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete owner %s: %w", ownerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: owner %s", apperrors.ErrNotFound, ownerID)
	}
	return nil
}
