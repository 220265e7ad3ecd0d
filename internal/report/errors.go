package report

import "errors"

var (
	// ErrMissingData is returned when the dataset itself is absent.
	ErrMissingData = errors.New("no data to analyze")
	// ErrMissingCustomers is returned when the customer collection is absent or empty.
	ErrMissingCustomers = errors.New("no customer data")
	// ErrMissingSellers is returned when the seller roster is absent or empty.
	ErrMissingSellers = errors.New("no seller data")
	// ErrMissingProducts is returned when the product catalog is absent or empty.
	ErrMissingProducts = errors.New("no product data")
	// ErrMissingPurchaseRecords is returned when the purchase record collection is absent or empty.
	ErrMissingPurchaseRecords = errors.New("no purchase data")
	// ErrMissingOptions is returned when no analysis options are supplied.
	ErrMissingOptions = errors.New("no analysis options")
	// ErrInvalidRevenueFn is returned when the revenue policy is not set.
	ErrInvalidRevenueFn = errors.New("invalid revenue policy")
	// ErrInvalidBonusFn is returned when the bonus policy is not set.
	ErrInvalidBonusFn = errors.New("invalid bonus policy")
)
