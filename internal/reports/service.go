// Package reports wraps the report engine for delivery: named policy
// selection, Redis-backed result caching and domain metrics.
package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/seller-insights/internal/common"
	"github.com/noah-isme/seller-insights/internal/obs"
	"github.com/noah-isme/seller-insights/internal/report"
)

// Request describes one report computation.
type Request struct {
	Dataset       *report.Dataset
	RevenuePolicy string
	BonusPolicy   string
}

// Service runs the report engine with caching. Analyze is swappable for
// tests; the zero value falls back to report.Analyze.
type Service struct {
	R       *redis.Client
	TTL     time.Duration
	Logger  zerolog.Logger
	Analyze func(*report.Dataset, *report.Options) ([]report.SellerResult, error)
}

// Generate resolves the requested policies, consults the cache and runs
// the engine on a miss. Cached and fresh results are identical because
// the engine is deterministic for pure policies.
func (s *Service) Generate(ctx context.Context, req Request) ([]report.SellerResult, error) {
	revenueFn, err := ResolveRevenue(req.RevenuePolicy)
	if err != nil {
		return nil, common.NewAppError("UNKNOWN_POLICY", err.Error(), http.StatusBadRequest, err)
	}
	bonusFn, err := ResolveBonus(req.BonusPolicy)
	if err != nil {
		return nil, common.NewAppError("UNKNOWN_POLICY", err.Error(), http.StatusBadRequest, err)
	}

	key, err := s.cacheKey(req)
	if err == nil {
		if results, ok := s.fromCache(ctx, key); ok {
			incCounter(obs.ReportCacheTotal, "hit")
			return results, nil
		}
		incCounter(obs.ReportCacheTotal, "miss")
	}

	analyze := s.Analyze
	if analyze == nil {
		analyze = report.Analyze
	}

	diags := &report.Diagnostics{}
	start := time.Now()
	results, err := analyze(req.Dataset, &report.Options{
		CalculateRevenue: revenueFn,
		CalculateBonus:   bonusFn,
		Diagnostics:      diags,
	})
	if err != nil {
		incCounter(obs.ReportsGeneratedTotal, "error")
		return nil, err
	}
	incCounter(obs.ReportsGeneratedTotal, "ok")
	if obs.ReportDuration != nil {
		obs.ReportDuration.Observe(obs.DurationMillis(time.Since(start)))
	}
	if diags.UnknownSellers > 0 || diags.UnknownSKUs > 0 {
		addCounter(obs.SkippedReferencesTotal, "seller", diags.UnknownSellers)
		addCounter(obs.SkippedReferencesTotal, "sku", diags.UnknownSKUs)
		s.Logger.Warn().
			Int("unknown_sellers", diags.UnknownSellers).
			Int("unknown_skus", diags.UnknownSKUs).
			Msg("purchase references skipped during aggregation")
	}

	s.store(ctx, key, results)
	return results, nil
}

// cacheKey hashes the dataset together with the policy names; any change
// to either produces a different key.
func (s *Service) cacheKey(req Request) (string, error) {
	payload, err := json.Marshal(struct {
		Dataset *report.Dataset `json:"dataset"`
		Revenue string          `json:"revenue"`
		Bonus   string          `json:"bonus"`
	}{req.Dataset, req.RevenuePolicy, req.BonusPolicy})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("rep:sellers:%s", hex.EncodeToString(sum[:])), nil
}

func (s *Service) fromCache(ctx context.Context, key string) ([]report.SellerResult, bool) {
	if s.R == nil || s.TTL <= 0 {
		return nil, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var results []report.SellerResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (s *Service) store(ctx context.Context, key string, results []report.SellerResult) {
	if s.R == nil || s.TTL <= 0 || key == "" {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}

func incCounter(vec *prometheus.CounterVec, label string) {
	if vec != nil {
		vec.WithLabelValues(label).Inc()
	}
}

func addCounter(vec *prometheus.CounterVec, label string, n int) {
	if vec != nil && n > 0 {
		vec.WithLabelValues(label).Add(float64(n))
	}
}
