// Package provider implements clients for external odds providers.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/normalize"
	"github.com/yourusername/prop-edge/internal/store"
)

// PropOddsClient fetches player-prop offers from a REST odds provider.
type PropOddsClient struct {
	name       string
	baseURL    string
	apiKey     string
	client     *RateLimitedHTTPClient
	normalizer *normalize.Normalizer
	logger     *logrus.Logger
}

// PropOddsConfig configures the client.
type PropOddsConfig struct {
	Name    string
	BaseURL string
	APIKey  string
	HTTP    HTTPClientConfig
}

// NewPropOddsClient creates a provider client.
func NewPropOddsClient(cfg PropOddsConfig, normalizer *normalize.Normalizer, logger *logrus.Logger) *PropOddsClient {
	name := cfg.Name
	if name == "" {
		name = "prop_odds"
	}
	return &PropOddsClient{
		name:       name,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		client:     NewRateLimitedHTTPClient(cfg.HTTP, logger),
		normalizer: normalizer,
		logger:     logger,
	}
}

// Name returns the provider name.
func (c *PropOddsClient) Name() string {
	return c.name
}

// offersDocument mirrors the provider's wire format: one document per
// market and date, keyed by player display name.
type offersDocument struct {
	Date   string `json:"date"`
	Market string `json:"market"`
	Offers []struct {
		Player     string   `json:"player"`
		Bookmaker  string   `json:"bookmaker"`
		Market     string   `json:"market"`
		Line       *float64 `json:"line"`
		Price      int      `json:"price"` // American odds
		LastUpdate string   `json:"last_update"`
	} `json:"offers"`
}

// FetchOffers retrieves current offers for a market and date and maps them
// into an OddsSnapshot keyed by normalized player name. Any transport,
// status or decode failure collapses to a failed fetch.
func (c *PropOddsClient) FetchOffers(ctx context.Context, market string, date time.Time) (*models.OddsSnapshot, error) {
	endpoint, err := c.buildURL(market, date)
	if err != nil {
		return nil, NewProviderError(c.name, ErrCodeInvalidData, "bad endpoint", err)
	}

	resp, err := c.client.Get(ctx, endpoint)
	if err != nil {
		return nil, NewProviderError(c.name, ErrCodeNetworkError, "request failed", fmt.Errorf("%w: %v", ErrFetchFailed, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewProviderError(c.name, ErrCodeAuthenticationFailed, "rejected credentials", ErrNonSuccessState)
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewProviderError(c.name, ErrCodeNotFound, "no document for market/date", ErrNonSuccessState)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewProviderError(c.name, ErrCodeRateLimitExceeded, "rate limited", ErrNonSuccessState)
	default:
		return nil, NewProviderError(c.name, ErrCodeServerError,
			fmt.Sprintf("status %d", resp.StatusCode), ErrNonSuccessState)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewProviderError(c.name, ErrCodeNetworkError, "reading body", fmt.Errorf("%w: %v", ErrFetchFailed, err))
	}

	var doc offersDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, NewProviderError(c.name, ErrCodeInvalidData, "decoding body", fmt.Errorf("%w: %v", ErrMalformedBody, err))
	}

	snapshot := c.snapshotFromDocument(market, date, &doc)

	c.logger.WithFields(logrus.Fields{
		"provider": c.name,
		"market":   market,
		"date":     snapshot.DateKey,
		"players":  len(snapshot.Players),
	}).Debug("Fetched offers document")

	return snapshot, nil
}

func (c *PropOddsClient) buildURL(market string, date time.Time) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	u = u.JoinPath("v1", "offers", market)

	q := u.Query()
	q.Set("date", store.DateKey(date))
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *PropOddsClient) snapshotFromDocument(market string, date time.Time, doc *offersDocument) *models.OddsSnapshot {
	dateKey := doc.Date
	if dateKey == "" {
		dateKey = store.DateKey(date)
	}

	snapshot := &models.OddsSnapshot{
		DateKey:   dateKey,
		Market:    market,
		Players:   make(map[string]models.Offer, len(doc.Offers)),
		FetchedAt: time.Now().UTC(),
	}

	for _, raw := range doc.Offers {
		if raw.Player == "" || raw.Price == 0 {
			continue
		}
		offer := models.Offer{
			PlayerName:    raw.Player,
			Market:        raw.Market,
			Bookmaker:     raw.Bookmaker,
			AmericanPrice: raw.Price,
		}
		if offer.Market == "" {
			offer.Market = market
		}
		if raw.Line != nil {
			line := decimal.NewFromFloat(*raw.Line)
			offer.Line = &line
		}
		if ts, err := time.Parse(time.RFC3339, raw.LastUpdate); err == nil {
			offer.LastUpdate = ts
		}
		snapshot.Players[c.normalizer.Normalize(raw.Player)] = offer
	}

	return snapshot
}
