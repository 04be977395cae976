package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is one sportsbook offer for a player in a single market.
type Offer struct {
	PlayerName    string           `json:"player_name"`
	Market        string           `json:"market"`
	Bookmaker     string           `json:"bookmaker"`
	Line          *decimal.Decimal `json:"line,omitempty"`
	AmericanPrice int              `json:"american_price"`
	LastUpdate    time.Time        `json:"last_update"`
}

// ImpliedProbability converts the American price to an implied probability.
// Returns 0 for a missing price (American odds are never 0).
func (o *Offer) ImpliedProbability() float64 {
	price := o.AmericanPrice
	if price == 0 {
		return 0
	}
	if price > 0 {
		// positive odds: 100 / (odds + 100)
		p := decimal.NewFromInt(100).Div(decimal.NewFromInt(int64(price) + 100))
		f, _ := p.Float64()
		return f
	}
	// negative odds: -odds / (-odds + 100)
	abs := decimal.NewFromInt(int64(-price))
	p := abs.Div(abs.Add(decimal.NewFromInt(100)))
	f, _ := p.Float64()
	return f
}

// OddsSnapshot is a single cached, dated copy of externally-fetched offers,
// keyed by normalized player name. Owned by the snapshot store; written only
// by the refresh subsystem, read by any number of concurrent estimators.
// Writes are whole-value replacements; last write wins.
type OddsSnapshot struct {
	DateKey   string           `json:"date_key"` // "2006-01-02"
	Market    string           `json:"market"`
	Players   map[string]Offer `json:"players"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Lookup returns the offer for a normalized player key, if present.
func (s *OddsSnapshot) Lookup(key string) (Offer, bool) {
	if s == nil || s.Players == nil {
		return Offer{}, false
	}
	offer, ok := s.Players[key]
	return offer, ok
}

// Age returns how long ago the snapshot was fetched.
func (s *OddsSnapshot) Age(now time.Time) time.Duration {
	if s == nil || s.FetchedAt.IsZero() {
		return 0
	}
	return now.Sub(s.FetchedAt)
}
