package domain

import "errors"

var (
	ErrForbidden             = errors.New("forbidden")
	ErrProductNotFound       = errors.New("product not found")
	ErrProductNameRequired   = errors.New("product name required")
	ErrInvalidCost           = errors.New("invalid cost")
	ErrInvalidStock          = errors.New("invalid amount available")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrExpireDateRequired    = errors.New("expire date required")
	ErrExpireDateInPast      = errors.New("expire date must be in the future")
	ErrExpireDateNonBusiness = errors.New("expire date must fall on a business day")
	ErrImageTooLarge         = errors.New("product image is too big")
	ErrInvalidDenomination   = errors.New("invalid denomination")
	ErrUnrepresentableAmount = errors.New("amount not representable in coin denominations")
	ErrProductExpired        = errors.New("product expired")
	ErrOutOfStock            = errors.New("out of stock")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidID             = errors.New("invalid id")
)
