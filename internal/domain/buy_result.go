package domain

// Coin is a count of a single denomination, used for change breakdowns.
type Coin struct {
	Denomination int64
	Count        int
}

// BuyResult is the ephemeral outcome of a successful purchase.
// Change holds the buyer's post-purchase balance broken into coins,
// ordered largest denomination first. It is returned once and never persisted.
type BuyResult struct {
	Product    Product
	Quantity   int
	TotalSpent int64
	Change     []Coin
}
