// Package report implements the seller performance engine: a single
// synchronous pass over an in-memory retail dataset producing per-seller
// revenue, profit, rank-based bonus and top-product statistics.
package report

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

const topProductsLimit = 10

// Analyze validates the dataset and options, accumulates revenue and
// profit per seller, ranks sellers by profit descending and assembles
// the final result rows. It either returns a complete result set or a
// single validation error; once validation passes nothing fails.
//
// Purchase records referencing an unknown seller and line items
// referencing an unknown SKU contribute nothing and raise no error.
func Analyze(data *Dataset, opts *Options) ([]SellerResult, error) {
	if err := validate(data, opts); err != nil {
		return nil, err
	}

	stats, sellerIndex := indexSellers(data.Sellers)
	productIndex := indexProducts(data.Products)

	aggregate(data.PurchaseRecords, sellerIndex, productIndex, opts)

	// Stable sort keeps roster order among equal profits, so reruns over
	// the same dataset are deterministic.
	slices.SortStableFunc(stats, func(a, b *sellerStats) int {
		return cmp.Compare(b.profit, a.profit)
	})

	return assemble(stats, opts.CalculateBonus), nil
}

func validate(data *Dataset, opts *Options) error {
	switch {
	case data == nil:
		return ErrMissingData
	case len(data.Customers) == 0:
		return ErrMissingCustomers
	case len(data.Sellers) == 0:
		return ErrMissingSellers
	case len(data.Products) == 0:
		return ErrMissingProducts
	case len(data.PurchaseRecords) == 0:
		return ErrMissingPurchaseRecords
	case opts == nil:
		return ErrMissingOptions
	case opts.CalculateRevenue == nil:
		return ErrInvalidRevenueFn
	case opts.CalculateBonus == nil:
		return ErrInvalidBonusFn
	}
	return nil
}

// indexSellers builds one zeroed accumulator per roster entry plus an
// id lookup over the same accumulators. Duplicate ids are not expected
// in well-formed input; the last occurrence wins in the index.
func indexSellers(sellers []Seller) ([]*sellerStats, map[string]*sellerStats) {
	stats := make([]*sellerStats, 0, len(sellers))
	index := make(map[string]*sellerStats, len(sellers))
	for _, s := range sellers {
		st := &sellerStats{
			sellerID:     s.ID,
			name:         s.FirstName + " " + s.LastName,
			productsSold: make(map[string]int),
		}
		stats = append(stats, st)
		index[s.ID] = st
	}
	return stats, index
}

func indexProducts(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.SKU] = p
	}
	return index
}

// aggregate walks every purchase record once. A record attributed to a
// known seller bumps that seller's sales count regardless of how many
// line items it carries; each line item then accrues revenue and profit
// only when both the seller and the catalog entry resolve.
func aggregate(records []PurchaseRecord, sellers map[string]*sellerStats, products map[string]Product, opts *Options) {
	for _, rec := range records {
		seller, ok := sellers[rec.SellerID]
		if !ok {
			if opts.Diagnostics != nil {
				opts.Diagnostics.UnknownSellers++
			}
			continue
		}
		seller.salesCount++
		for _, item := range rec.Items {
			product, ok := products[item.SKU]
			if !ok {
				if opts.Diagnostics != nil {
					opts.Diagnostics.UnknownSKUs++
				}
				continue
			}
			revenue := opts.CalculateRevenue(item, product)
			profit := revenue - product.PurchasePrice*float64(item.Quantity)
			seller.revenue += revenue
			seller.profit += profit
			if _, seen := seller.productsSold[item.SKU]; !seen {
				seller.skuOrder = append(seller.skuOrder, item.SKU)
			}
			seller.productsSold[item.SKU] += item.Quantity
		}
	}
}

// topProducts reduces a seller's quantity map to its highest-quantity
// entries. Ties keep first-sale order so the output is stable.
func topProducts(st *sellerStats) []TopProduct {
	entries := make([]TopProduct, 0, len(st.skuOrder))
	for _, sku := range st.skuOrder {
		entries = append(entries, TopProduct{SKU: sku, Quantity: st.productsSold[sku]})
	}
	slices.SortStableFunc(entries, func(a, b TopProduct) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})
	if len(entries) > topProductsLimit {
		entries = entries[:topProductsLimit]
	}
	return entries
}

// assemble computes bonuses against the unrounded profit and emits the
// final rows in ranked order with monetary fields rounded to 2 decimals.
func assemble(ranked []*sellerStats, bonus BonusFunc) []SellerResult {
	results := make([]SellerResult, 0, len(ranked))
	for i, st := range ranked {
		b := bonus(i, len(ranked), RankedSeller{
			SellerID:   st.sellerID,
			Name:       st.name,
			Revenue:    st.revenue,
			Profit:     st.profit,
			SalesCount: st.salesCount,
		})
		results = append(results, SellerResult{
			SellerID:    st.sellerID,
			Name:        st.name,
			Revenue:     round2(st.revenue),
			Profit:      round2(st.profit),
			SalesCount:  st.salesCount,
			TopProducts: topProducts(st),
			Bonus:       round2(b),
		})
	}
	return results
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
