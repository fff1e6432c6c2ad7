// Package model defines the core domain types used throughout the application.
package model

import "strings"

// SellerType identifies who posted a listing.
type SellerType string

// Seller type constants.
const (
	SellerIndividual SellerType = "individual"
	SellerBusiness   SellerType = "business"
)

// ParseSellerType normalizes a raw seller type value. Anything that is not
// recognizably a business is treated as an individual seller.
func ParseSellerType(raw string) SellerType {
	if strings.EqualFold(strings.TrimSpace(raw), string(SellerBusiness)) {
		return SellerBusiness
	}
	return SellerIndividual
}

// Listing represents a single marketplace listing from any source.
type Listing struct {
	ListingID        string
	Category         string
	Location         string
	SellerType       SellerType
	Title            string
	Description      string
	SuspiciousReason string
	PostedDaysAgo    int
	PriceAED         float64

	// IsSuspicious is the training label. Nil for unlabeled listings.
	IsSuspicious *int
}

// Label returns the training label, or an error-free default of (0, false)
// when the listing is unlabeled.
func (l *Listing) Label() (int, bool) {
	if l.IsSuspicious == nil {
		return 0, false
	}
	return *l.IsSuspicious, true
}

// SellerIsBusiness returns 1 for business sellers and 0 otherwise,
// in the form the feature matrix consumes.
func (l *Listing) SellerIsBusiness() float64 {
	if l.SellerType == SellerBusiness {
		return 1
	}
	return 0
}

// ScoredListing is a listing augmented with the model's risk assessment.
type ScoredListing struct {
	Listing
	RiskScore           float64
	PredictedSuspicious int
}
