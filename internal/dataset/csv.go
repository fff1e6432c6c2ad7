// Package dataset reads and writes listing batches as CSV.
//
// The input schema and its coercions are fixed: missing title/description
// become empty strings, non-numeric price and posted_days_ago become 0, and
// a missing required column is a schema error rather than a silent default.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/model"
)

var requiredColumns = []string{
	"listing_id", "category", "location", "seller_type",
	"posted_days_ago", "title", "description", "price_aed",
}

// header maps column names to their index in the CSV.
type header map[string]int

func parseHeader(record []string) (header, error) {
	h := make(header, len(record))
	for i, name := range record {
		h[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, col)
		}
	}
	return h, nil
}

func (h header) get(record []string, col string) (string, bool) {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return "", false
	}
	return record[i], true
}

// ReadListings loads a full listing batch from a CSV file. The read is
// all-or-nothing: any row-level failure beyond the defined coercions aborts
// the batch.
func ReadListings(ctx context.Context, path string) ([]model.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parseListings(ctx, f)
}

func parseListings(ctx context.Context, r io.Reader) ([]model.Listing, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headRec, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	h, err := parseHeader(headRec)
	if err != nil {
		return nil, err
	}

	var listings []model.Listing
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		l, err := parseRow(h, record)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func parseRow(h header, record []string) (model.Listing, error) {
	get := func(col string) string {
		v, _ := h.get(record, col)
		return v
	}

	l := model.Listing{
		ListingID:        get("listing_id"),
		Category:         get("category"),
		Location:         get("location"),
		SellerType:       model.ParseSellerType(get("seller_type")),
		Title:            get("title"),
		Description:      get("description"),
		SuspiciousReason: get("suspicious_reason"),
		PostedDaysAgo:    coerceInt(get("posted_days_ago")),
		PriceAED:         coerceFloat(get("price_aed")),
	}

	// Only a blank value means unlabeled. Anything else must parse as an
	// integer; guessing a label here would silently train on garbage.
	if raw, ok := h.get(record, "is_suspicious"); ok {
		if raw = strings.TrimSpace(raw); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return model.Listing{}, fmt.Errorf("%w: listing %s has is_suspicious %q",
					common.ErrInvalidLabel, l.ListingID, raw)
			}
			label := 0
			if v != 0 {
				label = 1
			}
			l.IsSuspicious = &label
		}
	}
	return l, nil
}

func coerceInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func coerceFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// WriteListings writes a labeled or unlabeled batch in the input schema.
func WriteListings(path string, listings []model.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create listing file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	cols := append(append([]string{}, requiredColumns...), "is_suspicious", "suspicious_reason")
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, l := range listings {
		label := ""
		if v, ok := l.Label(); ok {
			label = strconv.Itoa(v)
		}
		record := []string{
			l.ListingID, l.Category, l.Location, string(l.SellerType),
			strconv.Itoa(l.PostedDaysAgo), l.Title, l.Description,
			formatPrice(l.PriceAED), label, l.SuspiciousReason,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Sync()
}

// WriteScored writes a scored batch: the input columns plus risk_score and
// predicted_suspicious, preserving the caller's row order.
func WriteScored(path string, scored []model.ScoredListing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	cols := append(append([]string{}, requiredColumns...),
		"is_suspicious", "suspicious_reason", "risk_score", "predicted_suspicious")
	if err := w.Write(cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range scored {
		label := ""
		if v, ok := s.Label(); ok {
			label = strconv.Itoa(v)
		}
		record := []string{
			s.ListingID, s.Category, s.Location, string(s.SellerType),
			strconv.Itoa(s.PostedDaysAgo), s.Title, s.Description,
			formatPrice(s.PriceAED), label, s.SuspiciousReason,
			strconv.FormatFloat(s.RiskScore, 'f', 6, 64),
			strconv.Itoa(s.PredictedSuspicious),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return f.Sync()
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
