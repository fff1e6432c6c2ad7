// Package server exposes the risk scorer over HTTP for callers that cannot
// shell out to the CLI. One JSON batch in, one scored batch out; the model
// bundle is loaded once at startup.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/souqrisk/souqrisk/internal/common"
	"github.com/souqrisk/souqrisk/internal/model"
)

// Scorer is the scoring dependency of the HTTP layer.
type Scorer interface {
	Score(ctx context.Context, batch []model.Listing) ([]model.ScoredListing, error)
}

// HTTPServer serves the scoring API.
type HTTPServer struct {
	echo     *echo.Echo
	scorer   Scorer
	validate *validator.Validate
}

// ListingRequest is one listing in a scoring request.
type ListingRequest struct {
	ListingID     string  `json:"listing_id" validate:"required"`
	Category      string  `json:"category" validate:"required"`
	Location      string  `json:"location"`
	SellerType    string  `json:"seller_type" validate:"required"`
	PostedDaysAgo int     `json:"posted_days_ago" validate:"gte=0"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	PriceAED      float64 `json:"price_aed" validate:"gte=0"`
}

// ScoreRequest is a scoring batch.
type ScoreRequest struct {
	Listings []ListingRequest `json:"listings" validate:"required,min=1,dive"`
}

// ScoredResponse is one scored listing, ordered descending by risk score.
type ScoredResponse struct {
	ListingRequest
	RiskScore           float64 `json:"risk_score"`
	PredictedSuspicious int     `json:"predicted_suspicious"`
}

// ScoreResponse is the scoring result for a batch.
type ScoreResponse struct {
	BatchID  string           `json:"batch_id"`
	Listings []ScoredResponse `json:"listings"`
}

// NewHTTPServer wires the routes around a scorer.
func NewHTTPServer(scorer Scorer) *HTTPServer {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &HTTPServer{
		echo:     e,
		scorer:   scorer,
		validate: validator.New(),
	}

	e.GET("/health", s.healthCheck)
	e.POST("/api/v1/score", s.handleScore)

	return s
}

func (s *HTTPServer) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "souqrisk",
	})
}

func (s *HTTPServer) handleScore(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request payload",
		})
	}
	if err := s.validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	batch := make([]model.Listing, len(req.Listings))
	for i, lr := range req.Listings {
		batch[i] = model.Listing{
			ListingID:     lr.ListingID,
			Category:      lr.Category,
			Location:      lr.Location,
			SellerType:    model.ParseSellerType(lr.SellerType),
			PostedDaysAgo: lr.PostedDaysAgo,
			Title:         lr.Title,
			Description:   lr.Description,
			PriceAED:      lr.PriceAED,
		}
	}

	scored, err := s.scorer.Score(c.Request().Context(), batch)
	if err != nil {
		common.LogError(err, "scoring failed", common.Fields{"rows": len(batch)})
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrArtifactNotFound) || errors.Is(err, common.ErrSchemaMismatch) {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, map[string]string{"error": "scoring failed"})
	}

	resp := ScoreResponse{
		BatchID:  uuid.NewString(),
		Listings: make([]ScoredResponse, len(scored)),
	}
	for i, sl := range scored {
		resp.Listings[i] = ScoredResponse{
			ListingRequest: ListingRequest{
				ListingID:     sl.ListingID,
				Category:      sl.Category,
				Location:      sl.Location,
				SellerType:    string(sl.SellerType),
				PostedDaysAgo: sl.PostedDaysAgo,
				Title:         sl.Title,
				Description:   sl.Description,
				PriceAED:      sl.PriceAED,
			},
			RiskScore:           sl.RiskScore,
			PredictedSuspicious: sl.PredictedSuspicious,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// Start begins serving on the given address.
func (s *HTTPServer) Start(address string) error {
	slog.Info("Starting HTTP server", "address", address)
	return s.echo.Start(address)
}

// Shutdown stops the server gracefully.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
