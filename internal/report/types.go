package report

// Customer is carried in the dataset for completeness only. The engine
// asserts the collection is non-empty but reads no fields from it.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Seller identifies a member of the seller roster.
type Seller struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Product is a catalog entry. PurchasePrice is the unit cost used for
// profit calculation.
type Product struct {
	SKU           string  `json:"sku" validate:"required"`
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchase_price"`
}

// LineItem is a single purchased position within a purchase record.
// Discount is a percentage in [0,100]; SalePrice is the unit list price
// before discount. Neither bound is enforced here.
type LineItem struct {
	SKU       string  `json:"sku" validate:"required"`
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
	Discount  float64 `json:"discount"`
}

// PurchaseRecord is one transaction attributed to a seller.
type PurchaseRecord struct {
	SellerID string     `json:"seller_id" validate:"required"`
	Items    []LineItem `json:"items" validate:"dive"`
}

// Dataset is the fully materialized input to a single analysis run.
type Dataset struct {
	Customers       []Customer       `json:"customers" validate:"dive"`
	Sellers         []Seller         `json:"sellers" validate:"dive"`
	Products        []Product        `json:"products" validate:"dive"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"dive"`
}

// TopProduct is one entry of a seller's top-products list.
type TopProduct struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// SellerResult is the final per-seller report row. Revenue, Profit and
// Bonus are rounded to two decimal digits.
type SellerResult struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     float64      `json:"revenue"`
	Profit      float64      `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       float64      `json:"bonus"`
}

// Diagnostics counts purchase records and line items dropped during
// aggregation because their seller or SKU did not resolve. The engine
// never treats those as errors; callers that care about data loss can
// inspect the counters afterwards.
type Diagnostics struct {
	UnknownSellers int
	UnknownSKUs    int
}

// sellerStats accumulates per-seller totals during the aggregation pass.
// One instance exists per roster entry; it is mutated only between
// indexing and extraction.
type sellerStats struct {
	sellerID     string
	name         string
	salesCount   int
	revenue      float64
	profit       float64
	productsSold map[string]int
	skuOrder     []string
}
