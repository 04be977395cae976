package provider

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// OddsProvider defines the interface for fetching player-prop offers from
// an external sportsbook-odds provider. The only contract with the remote
// side is "fetch succeeded with parseable JSON" vs "fetch failed": network
// errors, non-success status codes and malformed bodies all collapse to a
// failed fetch.
type OddsProvider interface {
	// FetchOffers retrieves the current offers for a market and game date
	FetchOffers(ctx context.Context, market string, date time.Time) (*models.OddsSnapshot, error)

	// Name returns the name of the provider
	Name() string
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Provider string // Provider name
	Code     string // Error code (e.g., "rate_limit_exceeded")
	Message  string // Error message
	Err      error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
)

// Sentinel errors
var (
	ErrFetchFailed     = errors.New("provider fetch failed")
	ErrMalformedBody   = errors.New("malformed provider response")
	ErrNonSuccessState = errors.New("provider returned non-success status")
)

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, err error) ProviderError {
	return ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}
