// Package money implements the fixed coin denomination policy: deposit
// validation and greedy change-making over a canonical coin system.
package money

import "github.com/PauKap/rupees/internal/domain"

// Denominations is the fixed set of accepted coin values in paise,
// ascending. The set is canonical, so greedy change-making always
// yields the minimal coin count.
var Denominations = []int64{5, 10, 20, 50, 100}

// Validate rejects any deposit amount that is not exactly one coin.
func Validate(amount int64) error {
	for _, d := range Denominations {
		if amount == d {
			return nil
		}
	}
	return domain.ErrInvalidDenomination
}

// MakeChange breaks total into the minimal multiset of coins, largest
// denomination first. The result always sums to total; if total cannot
// be expressed in the coin set (an internal invariant violation, since
// balances are built from valid deposits) it returns
// ErrUnrepresentableAmount.
func MakeChange(total int64) ([]domain.Coin, error) {
	if total < 0 {
		return nil, domain.ErrUnrepresentableAmount
	}

	var change []domain.Coin
	remaining := total
	for i := len(Denominations) - 1; i >= 0; i-- {
		d := Denominations[i]
		if remaining < d {
			continue
		}
		count := int(remaining / d)
		change = append(change, domain.Coin{Denomination: d, Count: count})
		remaining -= d * int64(count)
	}
	if remaining != 0 {
		return nil, domain.ErrUnrepresentableAmount
	}
	return change, nil
}
