// Command seeder generates a randomized demo dataset. It writes the
// dataset as JSON and can optionally load it straight into Postgres so
// the API's GET report endpoint has something to chew on.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/seller-insights/internal/obs"
	"github.com/noah-isme/seller-insights/internal/report"
	"github.com/noah-isme/seller-insights/internal/store"
)

var firstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Tony", "Leslie"}
var lastNames = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Hoare", "Lamport"}

func main() {
	var (
		sellers   = flag.Int("sellers", 8, "number of sellers")
		customers = flag.Int("customers", 20, "number of customers")
		products  = flag.Int("products", 30, "number of products")
		records   = flag.Int("records", 200, "number of purchase records")
		out       = flag.String("out", "-", "output JSON file, or - for stdout")
		seedDB    = flag.Bool("db", false, "insert the dataset into DATABASE_URL instead of writing JSON")
		seed      = flag.Int64("seed", time.Now().UnixNano(), "random seed")
	)
	flag.Parse()

	logger := obs.NewLogger("console", "info")
	rng := rand.New(rand.NewSource(*seed))
	ds := generate(rng, *customers, *sellers, *products, *records)

	if *seedDB {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			logger.Fatal().Msg("DATABASE_URL is required with -db")
		}
		if err := store.Migrate(databaseURL); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect database")
		}
		defer pool.Close()
		if err := store.New(pool).InsertDataset(ctx, ds); err != nil {
			logger.Fatal().Err(err).Msg("insert dataset")
		}
		logger.Info().
			Int("sellers", len(ds.Sellers)).
			Int("records", len(ds.PurchaseRecords)).
			Msg("dataset seeded")
		return
	}

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Fatal().Err(err).Msg("create output file")
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		logger.Fatal().Err(err).Msg("encode dataset")
	}
}

func generate(rng *rand.Rand, customers, sellers, products, records int) *report.Dataset {
	ds := &report.Dataset{}
	for i := 0; i < customers; i++ {
		ds.Customers = append(ds.Customers, report.Customer{
			ID:        uuid.NewString(),
			FirstName: pick(rng, firstNames),
			LastName:  pick(rng, lastNames),
		})
	}
	for i := 0; i < sellers; i++ {
		ds.Sellers = append(ds.Sellers, report.Seller{
			ID:        uuid.NewString(),
			FirstName: pick(rng, firstNames),
			LastName:  pick(rng, lastNames),
		})
	}
	for i := 0; i < products; i++ {
		ds.Products = append(ds.Products, report.Product{
			SKU:           fmt.Sprintf("SKU_%03d", i+1),
			Name:          fmt.Sprintf("Product %03d", i+1),
			PurchasePrice: 1 + rng.Float64()*99,
		})
	}
	for i := 0; i < records; i++ {
		rec := report.PurchaseRecord{
			SellerID: ds.Sellers[rng.Intn(len(ds.Sellers))].ID,
		}
		for n := 1 + rng.Intn(4); n > 0; n-- {
			product := ds.Products[rng.Intn(len(ds.Products))]
			rec.Items = append(rec.Items, report.LineItem{
				SKU:       product.SKU,
				Quantity:  1 + rng.Intn(10),
				SalePrice: product.PurchasePrice * (1.1 + rng.Float64()),
				Discount:  float64(rng.Intn(30)),
			})
		}
		ds.PurchaseRecords = append(ds.PurchaseRecords, rec)
	}
	return ds
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
