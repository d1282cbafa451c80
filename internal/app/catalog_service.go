package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PauKap/rupees/internal/clock"
	"github.com/PauKap/rupees/internal/domain"
)

// maxImageBytes caps the stored product image reference (data URL).
const maxImageBytes = 500_000

type CatalogRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateProduct(ctx context.Context, product domain.Product) error
	GetProductForUpdate(ctx context.Context, productID string) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

type CatalogService struct {
	repo  CatalogRepository
	clock clock.Clock
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock) *CatalogService {
	return &CatalogService{
		repo:  repo,
		clock: clk,
	}
}

type CreateProductInput struct {
	ProductName     string
	Cost            int64
	AmountAvailable int
	ExpireDate      time.Time
	ProductImage    string
}

func (s *CatalogService) CreateProduct(ctx context.Context, caller domain.User, in CreateProductInput) (domain.Product, error) {
	if err := requireSeller(caller); err != nil {
		return domain.Product{}, err
	}
	if in.ProductName == "" {
		return domain.Product{}, domain.ErrProductNameRequired
	}
	if in.Cost < 0 {
		return domain.Product{}, domain.ErrInvalidCost
	}
	if in.AmountAvailable < 1 {
		return domain.Product{}, domain.ErrInvalidStock
	}
	now := s.clock.Now()
	if err := validateExpireDate(in.ExpireDate, now); err != nil {
		return domain.Product{}, err
	}
	if len(in.ProductImage) > maxImageBytes {
		return domain.Product{}, domain.ErrImageTooLarge
	}

	product := domain.Product{
		ID:              uuid.NewString(),
		SellerID:        caller.ID,
		ProductName:     in.ProductName,
		Cost:            in.Cost,
		AmountAvailable: in.AmountAvailable,
		ExpireDate:      in.ExpireDate.UTC(),
		ProductImage:    in.ProductImage,
		CreatedAt:       now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

// UpdateProductInput is a patch: nil fields are left unchanged.
type UpdateProductInput struct {
	ProductName     *string
	Cost            *int64
	AmountAvailable *int
	ExpireDate      *time.Time
	ProductImage    *string
}

func (s *CatalogService) UpdateProduct(ctx context.Context, caller domain.User, productID string, in UpdateProductInput) (domain.Product, error) {
	if err := requireSeller(caller); err != nil {
		return domain.Product{}, err
	}

	now := s.clock.Now()
	var result domain.Product

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		product, err := s.repo.GetProductForUpdate(txCtx, productID)
		if err != nil {
			return err
		}
		if product.SellerID != caller.ID {
			return domain.ErrForbidden
		}

		if in.ProductName != nil {
			if *in.ProductName == "" {
				return domain.ErrProductNameRequired
			}
			product.ProductName = *in.ProductName
		}
		if in.Cost != nil {
			if *in.Cost < 0 {
				return domain.ErrInvalidCost
			}
			product.Cost = *in.Cost
		}
		if in.AmountAvailable != nil {
			if *in.AmountAvailable < 1 {
				return domain.ErrInvalidStock
			}
			product.AmountAvailable = *in.AmountAvailable
		}
		if in.ExpireDate != nil {
			if err := validateExpireDate(*in.ExpireDate, now); err != nil {
				return err
			}
			product.ExpireDate = in.ExpireDate.UTC()
		}
		// The image is replaced only when a new one is supplied.
		if in.ProductImage != nil {
			if len(*in.ProductImage) > maxImageBytes {
				return domain.ErrImageTooLarge
			}
			product.ProductImage = *in.ProductImage
		}

		if err := s.repo.UpdateProduct(txCtx, product); err != nil {
			return err
		}
		result = product
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return result, nil
}

// ListProducts returns every product, expired ones included; expired
// products stay visible and editable but are not purchasable.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func validateExpireDate(expireDate, now time.Time) error {
	if expireDate.IsZero() {
		return domain.ErrExpireDateRequired
	}
	if !expireDate.After(now) {
		return domain.ErrExpireDateInPast
	}
	switch expireDate.UTC().Weekday() {
	case time.Saturday, time.Sunday:
		return domain.ErrExpireDateNonBusiness
	}
	return nil
}
