package domain

import "time"

// Product is a sellable item owned by exactly one seller.
// Cost is denominated in paise (smallest currency unit).
type Product struct {
	ID              string
	SellerID        string
	ProductName     string
	Cost            int64
	AmountAvailable int
	ExpireDate      time.Time
	// ProductImage is an opaque blob reference (data URL in practice);
	// the core stores it without interpreting it.
	ProductImage string
	CreatedAt    time.Time
}

// Expired reports whether the product can no longer be purchased.
// Expired products stay visible and editable.
func (p Product) Expired(now time.Time) bool {
	return now.After(p.ExpireDate)
}
