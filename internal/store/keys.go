package store

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// Key returns the dated snapshot key for a market: "<market>/<date>.json".
func Key(market string, date time.Time) string {
	return fmt.Sprintf("%s/%s.json", market, date.Format(dateKeyLayout))
}

// LatestKey returns the rolling alias key for a market.
func LatestKey(market string) string {
	return fmt.Sprintf("%s/latest.json", market)
}

// DateKey formats a time into the snapshot date-key form.
func DateKey(date time.Time) string {
	return date.Format(dateKeyLayout)
}
