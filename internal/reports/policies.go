package reports

import (
	"fmt"
	"sort"

	"github.com/noah-isme/seller-insights/internal/report"
)

// Named policy identifiers accepted over the API and CLI. The engine
// takes plain functions; these names exist so callers can pick a
// strategy without shipping code.
const (
	RevenueSimple = "simple"
	BonusByProfit = "by_profit"
	BonusFlat     = "flat"
)

var revenuePolicies = map[string]report.RevenueFunc{
	RevenueSimple: report.SimpleRevenue,
}

var bonusPolicies = map[string]report.BonusFunc{
	BonusByProfit: report.BonusByProfit,
	BonusFlat: func(_, _ int, seller report.RankedSeller) float64 {
		return 0.05 * seller.Profit
	},
}

// ResolveRevenue returns the revenue policy registered under name, with
// the empty string meaning the default.
func ResolveRevenue(name string) (report.RevenueFunc, error) {
	if name == "" {
		name = RevenueSimple
	}
	fn, ok := revenuePolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown revenue policy %q", name)
	}
	return fn, nil
}

// ResolveBonus returns the bonus policy registered under name, with the
// empty string meaning the default.
func ResolveBonus(name string) (report.BonusFunc, error) {
	if name == "" {
		name = BonusByProfit
	}
	fn, ok := bonusPolicies[name]
	if !ok {
		return nil, fmt.Errorf("unknown bonus policy %q", name)
	}
	return fn, nil
}

// PolicyNames lists the registered policy identifiers, sorted.
func PolicyNames() (revenue, bonus []string) {
	for name := range revenuePolicies {
		revenue = append(revenue, name)
	}
	for name := range bonusPolicies {
		bonus = append(bonus, name)
	}
	sort.Strings(revenue)
	sort.Strings(bonus)
	return revenue, bonus
}
