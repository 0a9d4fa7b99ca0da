package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ledgerhouse/banking-backoffice/internal/apperrors"
	"github.com/ledgerhouse/banking-backoffice/internal/core/domain"
	"github.com/ledgerhouse/banking-backoffice/internal/core/services"
	"github.com/ledgerhouse/banking-backoffice/internal/dto"
)

// ledgerStore is an in-memory stand-in for the pgsql repositories. A single
// mutex plays the role of the account row lock: Apply and Reverse hold it
// for their whole read-check-write cycle, so the same serialization
// guarantees hold as in the database.
type ledgerStore struct {
	mu        sync.Mutex
	accounts  map[string]domain.Account
	movements map[string]domain.Movement

	failInsert bool // inject a failure after the guard, before the write
}

func newLedgerStore() *ledgerStore {
	return &ledgerStore{
		accounts:  make(map[string]domain.Account),
		movements: make(map[string]domain.Movement),
	}
}

// --- AccountRepository ---

func (s *ledgerStore) SaveAccount(ctx context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountID] = account
	return nil
}

func (s *ledgerStore) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return &acc, nil
}

func (s *ledgerStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc)
	}
	return out, nil
}

func (s *ledgerStore) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Account
	for _, acc := range s.accounts {
		if acc.OwnerID == ownerID {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (s *ledgerStore) UpdateAccountNumber(ctx context.Context, accountID string, number string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.Number = number
	acc.LastUpdatedAt = now
	s.accounts[accountID] = acc
	return nil
}

func (s *ledgerStore) UpdateAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.Balance = balance
	acc.LastUpdatedAt = now
	s.accounts[accountID] = acc
	return nil
}

func (s *ledgerStore) DeleteAccount(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountID]; !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	delete(s.accounts, accountID)
	return nil
}

func (s *ledgerStore) AccountExists(ctx context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[accountID]
	return ok, nil
}

// --- MovementRepository ---

func (s *ledgerStore) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[movementID]
	if !ok {
		return nil, fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
	}
	return &m, nil
}

func (s *ledgerStore) ListMovements(ctx context.Context) ([]domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, m)
	}
	return out, nil
}

func (s *ledgerStore) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Movement
	for _, m := range s.movements {
		if m.AccountID == accountID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *ledgerStore) ApplyMovement(ctx context.Context, movement domain.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[movement.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, movement.AccountID)
	}
	if movement.Kind == domain.Withdrawal && acc.Balance.LessThan(movement.Amount) {
		return fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, acc.Balance, movement.Amount)
	}
	if s.failInsert {
		return fmt.Errorf("simulated insert failure")
	}

	acc.Balance = acc.Balance.Add(movement.Kind.BalanceDelta(movement.Amount))
	s.accounts[movement.AccountID] = acc
	s.movements[movement.MovementID] = movement
	return nil
}

func (s *ledgerStore) ReverseMovement(ctx context.Context, movement domain.Movement, strict bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[movement.AccountID]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, movement.AccountID)
	}
	newBalance := acc.Balance.Sub(movement.Kind.BalanceDelta(movement.Amount))
	if strict && newBalance.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: reversal would leave balance at %s", apperrors.ErrConflict, newBalance)
	}

	acc.Balance = newBalance
	s.accounts[movement.AccountID] = acc
	delete(s.movements, movement.MovementID)
	return nil
}

func (s *ledgerStore) UpdateMovementDate(ctx context.Context, movementID string, date time.Time, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.movements[movementID]
	if !ok {
		return fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, movementID)
	}
	m.Date = date
	m.LastUpdatedAt = now
	s.movements[movementID] = m
	return nil
}

// --- Scenario tests ---

func seedAccount(t *testing.T, store *ledgerStore, balance decimal.Decimal) domain.Account {
	t.Helper()
	acc := domain.Account{
		AccountID:   "acc-1",
		Number:      "ACC-001",
		Balance:     balance,
		OwnerID:     "owner-1",
		AuditFields: domain.NewAuditFields(time.Now().UTC()),
	}
	require.NoError(t, store.SaveAccount(context.Background(), acc))
	return acc
}

func TestMovementLifecycle_BalancesTrackMovements(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore()
	svc := services.NewMovementService(store, store)
	acc := seedAccount(t, store, decimal.Zero)

	// Deposit 100.
	dep, err := svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "DEPOSIT", Amount: decimal.NewFromInt(100), Date: "2024-01-10",
	})
	require.NoError(t, err)

	got, err := store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	// Withdraw 40.
	wd, err := svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "WITHDRAWAL", Amount: decimal.NewFromInt(40), Date: "2024-01-11",
	})
	require.NoError(t, err)

	got, err = store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(60)))

	// Withdrawing 100 must fail and must not change anything.
	_, err = svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "WITHDRAWAL", Amount: decimal.NewFromInt(100), Date: "2024-01-12",
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	got, err = store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(60)))
	movements, err := svc.ListMovementsByAccount(ctx, acc.AccountID)
	require.NoError(t, err)
	require.Len(t, movements, 2, "the failed withdrawal leaves no record")

	// Deleting the withdrawal restores the funds.
	require.NoError(t, svc.DeleteMovement(ctx, wd.MovementID))
	got, err = store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(100)))

	// Deleting the deposit takes the balance back to zero.
	require.NoError(t, svc.DeleteMovement(ctx, dep.MovementID))
	got, err = store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.IsZero())

	movements, err = svc.ListMovementsByAccount(ctx, acc.AccountID)
	require.NoError(t, err)
	require.Empty(t, movements)
}

func TestMovementCreate_FailedWriteLeavesBalanceUntouched(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore()
	svc := services.NewMovementService(store, store)
	acc := seedAccount(t, store, decimal.NewFromInt(50))

	store.failInsert = true
	_, err := svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "DEPOSIT", Amount: decimal.NewFromInt(25), Date: "2024-01-10",
	})
	require.Error(t, err)

	got, err := store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(50)), "no partial effect on failure")
	movements, err := svc.ListMovementsByAccount(ctx, acc.AccountID)
	require.NoError(t, err)
	require.Empty(t, movements)
}

func TestMovementDelete_DepositReversalCanOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore()
	svc := services.NewMovementService(store, store)
	acc := seedAccount(t, store, decimal.Zero)

	dep, err := svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "DEPOSIT", Amount: decimal.NewFromInt(100), Date: "2024-01-10",
	})
	require.NoError(t, err)
	_, err = svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "WITHDRAWAL", Amount: decimal.NewFromInt(80), Date: "2024-01-11",
	})
	require.NoError(t, err)

	// Default mode: the deposit reversal goes through and the balance goes
	// negative.
	require.NoError(t, svc.DeleteMovement(ctx, dep.MovementID))
	got, err := store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(-80)))
}

func TestMovementDelete_StrictReversalRefusesOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore()
	svc := services.NewMovementService(store, store, services.WithStrictReversal(true))
	acc := seedAccount(t, store, decimal.Zero)

	dep, err := svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "DEPOSIT", Amount: decimal.NewFromInt(100), Date: "2024-01-10",
	})
	require.NoError(t, err)
	_, err = svc.CreateMovement(ctx, dto.CreateMovementRequest{
		AccountID: acc.AccountID, Kind: "WITHDRAWAL", Amount: decimal.NewFromInt(80), Date: "2024-01-11",
	})
	require.NoError(t, err)

	err = svc.DeleteMovement(ctx, dep.MovementID)
	require.ErrorIs(t, err, apperrors.ErrConflict)

	// Nothing changed: movement still present, balance untouched.
	got, err := store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(20)))
	_, err = svc.GetMovementByID(ctx, dep.MovementID)
	require.NoError(t, err)
}

func TestMovementCreate_ConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	store := newLedgerStore()
	svc := services.NewMovementService(store, store)
	acc := seedAccount(t, store, decimal.NewFromInt(100))

	const attempts = 10
	amount := decimal.NewFromInt(80)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateMovement(ctx, dto.CreateMovementRequest{
				AccountID: acc.AccountID, Kind: "WITHDRAWAL", Amount: amount, Date: "2024-01-10",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		}
	}
	require.Equal(t, 1, succeeded, "only one 80 withdrawal fits in a 100 balance")

	got, err := store.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	require.True(t, got.Balance.Equal(decimal.NewFromInt(20)))
}
