package storage

import (
	"context"
	"fmt"

	"github.com/souqrisk/souqrisk/internal/model"
)

// SaveScores records a scored batch under a batch ID, upserting the listing
// rows alongside so a score always has its listing.
func (s *SQLiteStorage) SaveScores(ctx context.Context, batchID string, scored []model.ScoredListing) error {
	listings := make([]model.Listing, len(scored))
	for i, sl := range scored {
		listings[i] = sl.Listing
	}
	if err := s.SaveListings(ctx, listings); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scores (batch_id, listing_id, risk_score, predicted_suspicious)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(batch_id, listing_id) DO UPDATE SET
			risk_score = excluded.risk_score,
			predicted_suspicious = excluded.predicted_suspicious`)
	if err != nil {
		return fmt.Errorf("failed to prepare score insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, sl := range scored {
		if _, err := stmt.ExecContext(ctx,
			batchID, sl.ListingID, sl.RiskScore, sl.PredictedSuspicious); err != nil {
			return fmt.Errorf("failed to save score for %s: %w", sl.ListingID, err)
		}
	}
	return tx.Commit()
}

// TopScores returns the highest-risk stored scores with their listings,
// descending by risk score.
func (s *SQLiteStorage) TopScores(ctx context.Context, limit int) ([]model.ScoredListing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.listing_id, l.category, l.location, l.seller_type,
			l.posted_days_ago, l.title, l.description, l.price_aed,
			sc.risk_score, sc.predicted_suspicious
		FROM scores sc
		JOIN listings l ON l.listing_id = sc.listing_id
		ORDER BY sc.risk_score DESC, l.listing_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ScoredListing
	for rows.Next() {
		var sl model.ScoredListing
		var sellerType string
		if err := rows.Scan(&sl.ListingID, &sl.Category, &sl.Location, &sellerType,
			&sl.PostedDaysAgo, &sl.Title, &sl.Description, &sl.PriceAED,
			&sl.RiskScore, &sl.PredictedSuspicious); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		sl.SellerType = model.ParseSellerType(sellerType)
		out = append(out, sl)
	}
	return out, rows.Err()
}
