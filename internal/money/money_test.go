package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PauKap/rupees/internal/domain"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, d := range Denominations {
		require.NoError(t, Validate(d), "denomination %d should be accepted", d)
	}

	for _, amount := range []int64{0, 1, 3, 7, 15, 25, 101, 200, -5, -100} {
		assert.ErrorIs(t, Validate(amount), domain.ErrInvalidDenomination, "amount %d", amount)
	}
}

func TestMakeChange(t *testing.T) {
	t.Parallel()

	t.Run("greedy breakdown largest first", func(t *testing.T) {
		change, err := MakeChange(35)
		require.NoError(t, err)
		require.Equal(t, []domain.Coin{
			{Denomination: 20, Count: 1},
			{Denomination: 10, Count: 1},
			{Denomination: 5, Count: 1},
		}, change)
	})

	t.Run("repeats denominations as needed", func(t *testing.T) {
		change, err := MakeChange(240)
		require.NoError(t, err)
		require.Equal(t, []domain.Coin{
			{Denomination: 100, Count: 2},
			{Denomination: 20, Count: 2},
		}, change)
	})

	t.Run("zero total yields no coins", func(t *testing.T) {
		change, err := MakeChange(0)
		require.NoError(t, err)
		assert.Empty(t, change)
	})

	t.Run("unrepresentable total fails", func(t *testing.T) {
		for _, total := range []int64{1, 3, 33, 67, 102, -5} {
			_, err := MakeChange(total)
			assert.ErrorIs(t, err, domain.ErrUnrepresentableAmount, "total %d", total)
		}
	})

	t.Run("sum is preserved for every representable total", func(t *testing.T) {
		for total := int64(0); total <= 1000; total += 5 {
			change, err := MakeChange(total)
			require.NoError(t, err, "total %d", total)

			var sum int64
			for _, c := range change {
				require.Positive(t, c.Count)
				require.NoError(t, Validate(c.Denomination))
				sum += c.Denomination * int64(c.Count)
			}
			require.Equal(t, total, sum)
		}
	})
}
