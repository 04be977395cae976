package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/normalize"
)

func testClient(serverURL string) *PropOddsClient {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := PropOddsConfig{
		Name:    "test_provider",
		BaseURL: serverURL,
		APIKey:  "test-key",
		HTTP: HTTPClientConfig{
			Timeout:           2 * time.Second,
			MaxRetries:        0,
			RetryWaitMin:      time.Millisecond,
			RetryWaitMax:      time.Millisecond,
			RateLimit:         100,
			CircuitBreakerMax: 5,
		},
	}
	return NewPropOddsClient(cfg, normalize.New(), logger)
}

func TestFetchOffersParsesDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/offers/batter_home_runs", r.URL.Path)
		assert.Equal(t, "2026-08-29", r.URL.Query().Get("date"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"date": "2026-08-29",
			"market": "batter_home_runs",
			"offers": [
				{"player": "Ronald Acuña Jr.", "bookmaker": "fanduel", "line": 0.5, "price": 320, "last_update": "2026-08-29T15:04:05Z"},
				{"player": "Aaron Judge", "bookmaker": "draftkings", "line": 0.5, "price": 210},
				{"player": "", "bookmaker": "draftkings", "price": 150},
				{"player": "No Price", "bookmaker": "draftkings", "price": 0}
			]
		}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	snapshot, err := client.FetchOffers(context.Background(), "batter_home_runs", time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-29", snapshot.DateKey)
	assert.Equal(t, "batter_home_runs", snapshot.Market)
	assert.Len(t, snapshot.Players, 2, "offers without player or price must be dropped")
	assert.False(t, snapshot.FetchedAt.IsZero())

	// keyed by normalized name, display name preserved on the offer
	offer, ok := snapshot.Players["ronald acuna jr"]
	require.True(t, ok)
	assert.Equal(t, "Ronald Acuña Jr.", offer.PlayerName)
	assert.Equal(t, "fanduel", offer.Bookmaker)
	assert.Equal(t, 320, offer.AmericanPrice)
	assert.Equal(t, "batter_home_runs", offer.Market)
	require.NotNil(t, offer.Line)
	assert.Equal(t, "0.5", offer.Line.String())
}

func TestFetchOffersStatusFailures(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		expectedCode string
	}{
		{"unauthorized", http.StatusUnauthorized, ErrCodeAuthenticationFailed},
		{"not found", http.StatusNotFound, ErrCodeNotFound},
		{"teapot", http.StatusTeapot, ErrCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := testClient(server.URL)
			snapshot, err := client.FetchOffers(context.Background(), "batter_home_runs", time.Now())
			assert.Nil(t, snapshot)
			require.Error(t, err)

			var provErr ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, tt.expectedCode, provErr.Code)
			assert.ErrorIs(t, err, ErrNonSuccessState)
		})
	}
}

func TestFetchOffersMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"offers": not json`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	snapshot, err := client.FetchOffers(context.Background(), "batter_home_runs", time.Now())
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestFetchOffersNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening

	client := testClient(server.URL)
	snapshot, err := client.FetchOffers(context.Background(), "batter_home_runs", time.Now())
	assert.Nil(t, snapshot)
	require.Error(t, err)

	var provErr ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrCodeNetworkError, provErr.Code)
}
