package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/souqrisk/souqrisk/internal/model"
)

// SaveListings upserts a listing batch in one transaction.
func (s *SQLiteStorage) SaveListings(ctx context.Context, listings []model.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (listing_id, category, location, seller_type,
			posted_days_ago, title, description, price_aed,
			is_suspicious, suspicious_reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(listing_id) DO UPDATE SET
			category = excluded.category,
			location = excluded.location,
			seller_type = excluded.seller_type,
			posted_days_ago = excluded.posted_days_ago,
			title = excluded.title,
			description = excluded.description,
			price_aed = excluded.price_aed,
			is_suspicious = excluded.is_suspicious,
			suspicious_reason = excluded.suspicious_reason`)
	if err != nil {
		return fmt.Errorf("failed to prepare listing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, l := range listings {
		var label any
		if v, ok := l.Label(); ok {
			label = v
		}
		if _, err := stmt.ExecContext(ctx,
			l.ListingID, l.Category, l.Location, string(l.SellerType),
			l.PostedDaysAgo, l.Title, l.Description, l.PriceAED,
			label, l.SuspiciousReason); err != nil {
			return fmt.Errorf("failed to save listing %s: %w", l.ListingID, err)
		}
	}
	return tx.Commit()
}

// GetListings returns every stored listing, most recently created first.
func (s *SQLiteStorage) GetListings(ctx context.Context) ([]model.Listing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT listing_id, category, location, seller_type,
			posted_days_ago, title, description, price_aed,
			is_suspicious, suspicious_reason
		FROM listings
		ORDER BY created_at DESC, listing_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		var sellerType string
		var label sql.NullInt64
		var location, title, description, reason sql.NullString
		if err := rows.Scan(&l.ListingID, &l.Category, &location, &sellerType,
			&l.PostedDaysAgo, &title, &description, &l.PriceAED,
			&label, &reason); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		l.Location = location.String
		l.Title = title.String
		l.Description = description.String
		l.SuspiciousReason = reason.String
		l.SellerType = model.ParseSellerType(sellerType)
		if label.Valid {
			v := int(label.Int64)
			l.IsSuspicious = &v
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
