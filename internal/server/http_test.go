package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqrisk/souqrisk/internal/model"
)

// stubScorer scores by price: cheaper means riskier. Enough to exercise the
// HTTP layer without a trained model.
type stubScorer struct {
	err error
}

func (s *stubScorer) Score(_ context.Context, batch []model.Listing) ([]model.ScoredListing, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.ScoredListing, len(batch))
	for i, l := range batch {
		score := 1.0 / (1.0 + l.PriceAED/100)
		decision := 0
		if score >= 0.5 {
			decision = 1
		}
		out[i] = model.ScoredListing{Listing: l, RiskScore: score, PredictedSuspicious: decision}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RiskScore > out[j].RiskScore })
	return out, nil
}

func doRequest(t *testing.T, s *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

const (
	echoContentType = "Content-Type"
	echoJSON        = "application/json"
)

func TestHealthCheck(t *testing.T) {
	s := NewHTTPServer(&stubScorer{})
	rec := doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestScoreEndpoint(t *testing.T) {
	s := NewHTTPServer(&stubScorer{})

	body := `{"listings":[
		{"listing_id":"1","category":"Mobiles","seller_type":"individual","price_aed":2500,"title":"iPhone"},
		{"listing_id":"2","category":"Mobiles","seller_type":"individual","price_aed":50,"title":"CHEAP iPhone"}
	]}`
	rec := doRequest(t, s, http.MethodPost, "/api/v1/score", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Listings, 2)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "2", resp.Listings[0].ListingID, "riskier listing comes first")
	assert.GreaterOrEqual(t, resp.Listings[0].RiskScore, resp.Listings[1].RiskScore)
}

func TestScoreEndpointValidation(t *testing.T) {
	s := NewHTTPServer(&stubScorer{})

	tests := []struct {
		name string
		body string
	}{
		{name: "empty batch", body: `{"listings":[]}`},
		{name: "missing listing id", body: `{"listings":[{"category":"Cars","seller_type":"individual"}]}`},
		{name: "negative price", body: `{"listings":[{"listing_id":"1","category":"Cars","seller_type":"individual","price_aed":-5}]}`},
		{name: "malformed json", body: `{"listings":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/v1/score", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestScoreEndpointScorerFailure(t *testing.T) {
	s := NewHTTPServer(&stubScorer{err: assert.AnError})

	body := `{"listings":[{"listing_id":"1","category":"Cars","seller_type":"individual"}]}`
	rec := doRequest(t, s, http.MethodPost, "/api/v1/score", body)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
