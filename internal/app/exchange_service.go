package app

import (
	"context"
	"fmt"

	"github.com/PauKap/rupees/internal/clock"
	"github.com/PauKap/rupees/internal/domain"
	"github.com/PauKap/rupees/internal/money"
)

// StockRepository is the slice of the catalog the exchange engine
// touches. ReserveStock is the single concurrency-critical primitive:
// it must check and decrement availability in one indivisible step.
type StockRepository interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	ReserveStock(ctx context.Context, productID string, quantity int) error
	RestoreStock(ctx context.Context, productID string, quantity int) error
}

// LedgerRepository holds one non-negative balance per buyer, implicitly
// zero before the first deposit. Debit must apply its balance guard and
// decrement atomically.
type LedgerRepository interface {
	Deposit(ctx context.Context, buyerID string, amount int64) (int64, error)
	Balance(ctx context.Context, buyerID string) (int64, error)
	Debit(ctx context.Context, buyerID string, amount int64) (int64, error)
	ResetToZero(ctx context.Context, buyerID string) (int64, error)
}

// ExchangeService coordinates purchases across the catalog and the
// buyer ledger. It owns no state itself; the two stores are not covered
// by one transaction, so a failed debit is compensated by restoring the
// reserved stock.
type ExchangeService struct {
	stock  StockRepository
	ledger LedgerRepository
	clock  clock.Clock
}

func NewExchangeService(stock StockRepository, ledger LedgerRepository, clk clock.Clock) *ExchangeService {
	return &ExchangeService{
		stock:  stock,
		ledger: ledger,
		clock:  clk,
	}
}

// Deposit adds a single coin to the caller's balance and returns the
// new balance.
func (s *ExchangeService) Deposit(ctx context.Context, caller domain.User, amount int64) (int64, error) {
	if err := requireBuyer(caller); err != nil {
		return 0, err
	}
	if err := money.Validate(amount); err != nil {
		return 0, err
	}
	return s.ledger.Deposit(ctx, caller.ID, amount)
}

// ResetDeposit zeroes the caller's balance and returns the refunded
// amount. Resetting an untouched balance refunds zero.
func (s *ExchangeService) ResetDeposit(ctx context.Context, caller domain.User) (int64, error) {
	if err := requireBuyer(caller); err != nil {
		return 0, err
	}
	return s.ledger.ResetToZero(ctx, caller.ID)
}

type BuyInput struct {
	ProductID string
	Quantity  int
}

// Buy runs the purchase state machine: validate, reserve stock, debit,
// settle. No partial commit is observable: a reserve that cannot be
// paid for is rolled back before the error is returned.
func (s *ExchangeService) Buy(ctx context.Context, caller domain.User, in BuyInput) (domain.BuyResult, error) {
	if err := requireBuyer(caller); err != nil {
		return domain.BuyResult{}, err
	}
	if in.Quantity < 1 {
		return domain.BuyResult{}, domain.ErrInvalidQuantity
	}

	product, err := s.stock.GetProduct(ctx, in.ProductID)
	if err != nil {
		return domain.BuyResult{}, err
	}
	if product.Expired(s.clock.Now()) {
		return domain.BuyResult{}, domain.ErrProductExpired
	}

	requiredCost := product.Cost * int64(in.Quantity)

	// Pre-check funds before touching stock. The debit below re-applies
	// the guard atomically, since balance and stock can both move
	// between this read and the commit.
	balance, err := s.ledger.Balance(ctx, caller.ID)
	if err != nil {
		return domain.BuyResult{}, err
	}
	if balance < requiredCost {
		return domain.BuyResult{}, domain.ErrInsufficientFunds
	}

	if err := s.stock.ReserveStock(ctx, in.ProductID, in.Quantity); err != nil {
		return domain.BuyResult{}, err
	}

	remaining, err := s.ledger.Debit(ctx, caller.ID, requiredCost)
	if err != nil {
		// Compensating action: the reservation must not outlive a
		// failed payment.
		if restoreErr := s.stock.RestoreStock(ctx, in.ProductID, in.Quantity); restoreErr != nil {
			return domain.BuyResult{}, fmt.Errorf("restore stock after failed debit: %w", restoreErr)
		}
		return domain.BuyResult{}, err
	}

	// Settle: whatever balance remains beyond the exact cost comes back
	// as change, and only then does the balance return to zero. If the
	// remainder cannot be broken into coins the balance is left intact
	// rather than destroyed.
	change, err := money.MakeChange(remaining)
	if err != nil {
		return domain.BuyResult{}, err
	}
	if _, err := s.ledger.ResetToZero(ctx, caller.ID); err != nil {
		return domain.BuyResult{}, err
	}

	product.AmountAvailable -= in.Quantity
	return domain.BuyResult{
		Product:    product,
		Quantity:   in.Quantity,
		TotalSpent: requiredCost,
		Change:     change,
	}, nil
}
