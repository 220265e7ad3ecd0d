// Command report runs the seller performance engine over a dataset
// document and prints the result collection as JSON. It is the offline
// companion to the HTTP service for one-off and scripted runs.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/noah-isme/seller-insights/internal/dataset"
	"github.com/noah-isme/seller-insights/internal/obs"
	"github.com/noah-isme/seller-insights/internal/report"
	"github.com/noah-isme/seller-insights/internal/reports"
)

func main() {
	var (
		input      = flag.String("input", "-", "dataset JSON file, or - for stdin")
		revenueArg = flag.String("revenue", reports.RevenueSimple, "revenue policy name")
		bonusArg   = flag.String("bonus", reports.BonusByProfit, "bonus policy name")
		pretty     = flag.Bool("pretty", false, "indent the JSON output")
	)
	flag.Parse()

	logger := obs.NewLogger("console", "info")

	var (
		ds  *report.Dataset
		err error
	)
	if *input == "-" {
		ds, err = dataset.Decode(os.Stdin)
	} else {
		ds, err = dataset.LoadFile(*input)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("load dataset")
	}
	if err := dataset.Validate(ds); err != nil {
		logger.Fatal().Err(err).Msg("validate dataset")
	}

	revenueFn, err := reports.ResolveRevenue(*revenueArg)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve revenue policy")
	}
	bonusFn, err := reports.ResolveBonus(*bonusArg)
	if err != nil {
		logger.Fatal().Err(err).Msg("resolve bonus policy")
	}

	diags := &report.Diagnostics{}
	results, err := report.Analyze(ds, &report.Options{
		CalculateRevenue: revenueFn,
		CalculateBonus:   bonusFn,
		Diagnostics:      diags,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("analyze dataset")
	}
	if diags.UnknownSellers > 0 || diags.UnknownSKUs > 0 {
		logger.Warn().
			Int("unknown_sellers", diags.UnknownSellers).
			Int("unknown_skus", diags.UnknownSKUs).
			Msg("purchase references skipped")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(results); err != nil {
		logger.Fatal().Err(err).Msg("encode results")
	}
}
