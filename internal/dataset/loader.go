// Package dataset loads raw analysis input from JSON documents and applies
// boundary shape checks. The report engine performs its own structural
// validation; the checks here exist to reject malformed payloads with
// field-level detail before they reach the core.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/seller-insights/internal/report"
)

var validate = validator.New()

// Decode parses a JSON dataset document from the reader.
func Decode(r io.Reader) (*report.Dataset, error) {
	var ds report.Dataset
	dec := json.NewDecoder(r)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// LoadFile reads and parses a dataset document from disk.
func LoadFile(path string) (*report.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate applies declarative shape checks over the parsed dataset:
// sellers need ids, products and line items need SKUs. Business bounds
// (discount range, price signs) are deliberately not checked.
func Validate(ds *report.Dataset) error {
	if ds == nil {
		return report.ErrMissingData
	}
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("dataset shape: %w", err)
	}
	return nil
}
