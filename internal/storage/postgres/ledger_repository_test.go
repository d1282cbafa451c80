package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/PauKap/rupees/internal/domain"
	"github.com/PauKap/rupees/internal/testutil"
)

func TestLedgerRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewLedgerRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("deposit creates the row then accumulates", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		balance, err := repo.Deposit(ctx, "buyer-1", 50)
		require.NoError(t, err)
		assert.Equal(t, int64(50), balance)

		balance, err = repo.Deposit(ctx, "buyer-1", 100)
		require.NoError(t, err)
		assert.Equal(t, int64(150), balance)
	})

	t.Run("balance defaults to zero without a row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		balance, err := repo.Balance(ctx, "buyer-unknown")
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("debit enforces the balance guard atomically", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.SetBalance(t, ctx, pool, "buyer-1", 100)

		remaining, err := repo.Debit(ctx, "buyer-1", 65)
		require.NoError(t, err)
		assert.Equal(t, int64(35), remaining)

		_, err = repo.Debit(ctx, "buyer-1", 65)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)

		balance, err := repo.Balance(ctx, "buyer-1")
		require.NoError(t, err)
		assert.Equal(t, int64(35), balance, "failed debit must leave the balance untouched")
	})

	t.Run("debit against a missing row is insufficient funds", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.Debit(ctx, "buyer-unknown", 5)
		require.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("reset returns the held amount and zeroes the row", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.SetBalance(t, ctx, pool, "buyer-1", 135)

		refunded, err := repo.ResetToZero(ctx, "buyer-1")
		require.NoError(t, err)
		assert.Equal(t, int64(135), refunded)

		balance, err := repo.Balance(ctx, "buyer-1")
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("reset without a row refunds zero", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		refunded, err := repo.ResetToZero(ctx, "buyer-unknown")
		require.NoError(t, err)
		assert.Zero(t, refunded)
	})

	t.Run("concurrent deposits on one buyer all land", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		const deposits = 10
		g := new(errgroup.Group)
		for i := 0; i < deposits; i++ {
			g.Go(func() error {
				_, err := repo.Deposit(ctx, "buyer-1", 10)
				return err
			})
		}
		require.NoError(t, g.Wait())

		balance, err := repo.Balance(ctx, "buyer-1")
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)
	})
}
