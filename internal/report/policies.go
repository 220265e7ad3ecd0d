package report

// RevenueFunc computes the monetary revenue of a single purchased line
// item. The product carrying the catalog entry for the item's SKU is
// passed alongside so alternative policies can price from cost.
type RevenueFunc func(item LineItem, product Product) float64

// BonusFunc computes a seller's bonus from its zero-based rank position
// among total ranked sellers.
type BonusFunc func(index, total int, seller RankedSeller) float64

// RankedSeller is the read-only view of a seller's accumulated totals
// handed to bonus policies after ranking.
type RankedSeller struct {
	SellerID   string
	Name       string
	Revenue    float64
	Profit     float64
	SalesCount int
}

// Options carries the caller-supplied scoring policies for one analysis
// run. Diagnostics is optional; when set, the engine counts line items
// skipped over unresolved seller or SKU references.
type Options struct {
	CalculateRevenue RevenueFunc
	CalculateBonus   BonusFunc
	Diagnostics      *Diagnostics
}

// SimpleRevenue is the default revenue policy: list price times quantity
// with the percentage discount applied. The catalog entry is unused but
// accepted for signature symmetry with cost-based policies.
func SimpleRevenue(item LineItem, _ Product) float64 {
	return item.SalePrice * float64(item.Quantity) * (1 - item.Discount/100)
}

// BonusByProfit is the default bonus policy. The branches are evaluated
// in this exact order; for small rosters the early branches win before
// the zero-bonus tail is ever reached (a single seller always lands in
// the 15% tier).
func BonusByProfit(index, total int, seller RankedSeller) float64 {
	if index == 0 {
		return 0.15 * seller.Profit
	}
	if index >= 1 && index <= 2 {
		return 0.10 * seller.Profit
	}
	if index < total-1 {
		return 0.05 * seller.Profit
	}
	return 0
}
