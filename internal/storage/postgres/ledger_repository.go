package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PauKap/rupees/internal/domain"
)

// LedgerRepository stores one balance row per buyer. The row is created
// lazily on the first deposit; a buyer without a row has balance zero.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) Deposit(ctx context.Context, buyerID string, amount int64) (int64, error) {
	const stmt = `
INSERT INTO balances (buyer_id, balance)
VALUES ($1, $2)
ON CONFLICT (buyer_id) DO UPDATE
SET balance = balances.balance + EXCLUDED.balance, updated_at = NOW()
RETURNING balance`

	var balance int64
	if err := r.pool.QueryRow(ctx, stmt, buyerID, amount).Scan(&balance); err != nil {
		return 0, fmt.Errorf("deposit: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) Balance(ctx context.Context, buyerID string) (int64, error) {
	const query = `SELECT balance FROM balances WHERE buyer_id = $1`

	var balance int64
	err := r.pool.QueryRow(ctx, query, buyerID).Scan(&balance)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// Debit applies the balance guard and the decrement in one statement;
// an insufficient balance leaves the row untouched.
func (r *LedgerRepository) Debit(ctx context.Context, buyerID string, amount int64) (int64, error) {
	const stmt = `
UPDATE balances
SET balance = balance - $2, updated_at = NOW()
WHERE buyer_id = $1 AND balance >= $2
RETURNING balance`

	var remaining int64
	err := r.pool.QueryRow(ctx, stmt, buyerID, amount).Scan(&remaining)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("debit: %w", err)
	}
	return remaining, nil
}

// ResetToZero zeroes the balance and returns the amount that was held.
// A buyer with no row (or a zero balance) refunds zero.
func (r *LedgerRepository) ResetToZero(ctx context.Context, buyerID string) (int64, error) {
	const stmt = `
UPDATE balances b
SET balance = 0, updated_at = NOW()
FROM (SELECT buyer_id, balance FROM balances WHERE buyer_id = $1 FOR UPDATE) held
WHERE b.buyer_id = held.buyer_id
RETURNING held.balance`

	var refunded int64
	err := r.pool.QueryRow(ctx, stmt, buyerID).Scan(&refunded)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("reset balance: %w", err)
	}
	return refunded, nil
}
