package reports_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/seller-insights/internal/common"
	"github.com/noah-isme/seller-insights/internal/report"
	"github.com/noah-isme/seller-insights/internal/reports"
)

func testDataset() *report.Dataset {
	return &report.Dataset{
		Customers: []report.Customer{{ID: "c1"}},
		Sellers:   []report.Seller{{ID: "s1", FirstName: "Ada", LastName: "Lovelace"}},
		Products:  []report.Product{{SKU: "P1", PurchasePrice: 5}},
		PurchaseRecords: []report.PurchaseRecord{
			{SellerID: "s1", Items: []report.LineItem{{SKU: "P1", Quantity: 2, SalePrice: 10}}},
		},
	}
}

func TestGenerateCachesResults(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	calls := 0
	svc := &reports.Service{
		R:   rdb,
		TTL: time.Minute,
		Analyze: func(ds *report.Dataset, opts *report.Options) ([]report.SellerResult, error) {
			calls++
			return report.Analyze(ds, opts)
		},
	}

	first, err := svc.Generate(context.Background(), reports.Request{Dataset: testDataset()})
	require.NoError(t, err)
	second, err := svc.Generate(context.Background(), reports.Request{Dataset: testDataset()})
	require.NoError(t, err)

	require.Equal(t, 1, calls, "second call should come from cache")
	require.Equal(t, first, second)
	require.Equal(t, "Ada Lovelace", first[0].Name)
	require.Equal(t, 1.5, first[0].Bonus)
}

func TestGenerateCacheKeyedByPolicy(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	calls := 0
	svc := &reports.Service{
		R:   rdb,
		TTL: time.Minute,
		Analyze: func(ds *report.Dataset, opts *report.Options) ([]report.SellerResult, error) {
			calls++
			return report.Analyze(ds, opts)
		},
	}

	_, err = svc.Generate(context.Background(), reports.Request{Dataset: testDataset()})
	require.NoError(t, err)
	flat, err := svc.Generate(context.Background(), reports.Request{Dataset: testDataset(), BonusPolicy: reports.BonusFlat})
	require.NoError(t, err)

	require.Equal(t, 2, calls, "different policy must not share a cache entry")
	require.Equal(t, 0.5, flat[0].Bonus)
}

func TestGenerateWithoutRedis(t *testing.T) {
	svc := &reports.Service{}
	results, err := svc.Generate(context.Background(), reports.Request{Dataset: testDataset()})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestGenerateUnknownPolicy(t *testing.T) {
	svc := &reports.Service{}
	_, err := svc.Generate(context.Background(), reports.Request{Dataset: testDataset(), RevenuePolicy: "nope"})
	require.Error(t, err)
	require.True(t, common.IsAppError(err))
	_, err = svc.Generate(context.Background(), reports.Request{Dataset: testDataset(), BonusPolicy: "nope"})
	require.Error(t, err)
	require.True(t, common.IsAppError(err))
}

func TestGenerateValidationError(t *testing.T) {
	svc := &reports.Service{}
	ds := testDataset()
	ds.PurchaseRecords = nil
	_, err := svc.Generate(context.Background(), reports.Request{Dataset: ds})
	require.ErrorIs(t, err, report.ErrMissingPurchaseRecords)
}
