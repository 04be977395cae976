// Package service wires the pipeline, snapshot store and provider together.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/provider"
	"github.com/yourusername/prop-edge/internal/store"
)

// RefreshService repopulates the snapshot store from the odds provider.
// Each run is independent and idempotent: the same upstream data yields the
// same stored snapshot, and overlapping runs resolve last-write-wins with
// no coordination.
type RefreshService struct {
	provider provider.OddsProvider
	store    store.SnapshotStore
	logger   *logrus.Logger
	timeout  time.Duration
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	RunID     uuid.UUID
	Market    string
	DateKey   string
	Players   int
	FetchedAt time.Time
}

// NewRefreshService creates a refresh service.
func NewRefreshService(p provider.OddsProvider, s store.SnapshotStore, timeout time.Duration, logger *logrus.Logger) *RefreshService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &RefreshService{
		provider: p,
		store:    s,
		logger:   logger,
		timeout:  timeout,
	}
}

// Refresh fetches the current offers for a market and, only on success,
// replaces the dated snapshot and the latest alias. On any provider
// failure — timeout included — the existing cached snapshot is left
// untouched and the failure is reported.
func (s *RefreshService) Refresh(ctx context.Context, market string) (*RefreshResult, error) {
	runID := uuid.New()
	now := time.Now().UTC()

	log := s.logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"market":   market,
		"provider": s.provider.Name(),
	})
	log.Info("Starting snapshot refresh")

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snapshot, err := s.provider.FetchOffers(fetchCtx, market, now)
	if err != nil {
		refreshFailuresTotal.WithLabelValues(market).Inc()
		log.WithError(err).Error("Provider fetch failed, cache left untouched")
		return nil, fmt.Errorf("refresh %s: %w", market, err)
	}

	if err := s.writeSnapshot(ctx, market, now, snapshot); err != nil {
		refreshFailuresTotal.WithLabelValues(market).Inc()
		log.WithError(err).Error("Snapshot write failed")
		return nil, err
	}

	refreshesTotal.WithLabelValues(market).Inc()
	snapshotAgeSeconds.WithLabelValues(market).Set(0)
	snapshotPlayers.WithLabelValues(market).Set(float64(len(snapshot.Players)))

	log.WithFields(logrus.Fields{
		"date_key": snapshot.DateKey,
		"players":  len(snapshot.Players),
	}).Info("Snapshot refresh complete")

	return &RefreshResult{
		RunID:     runID,
		Market:    market,
		DateKey:   snapshot.DateKey,
		Players:   len(snapshot.Players),
		FetchedAt: snapshot.FetchedAt,
	}, nil
}

// writeSnapshot performs the dated write then the latest-alias write. Both
// are whole-value replacements; a reader racing this sees old or new, never
// a mix within one key.
func (s *RefreshService) writeSnapshot(ctx context.Context, market string, now time.Time, snapshot *models.OddsSnapshot) error {
	datedKey := store.Key(market, now)
	if err := s.store.Set(ctx, datedKey, snapshot); err != nil {
		return fmt.Errorf("writing %s: %w", datedKey, err)
	}

	latestKey := store.LatestKey(market)
	if err := s.store.Set(ctx, latestKey, snapshot); err != nil {
		return fmt.Errorf("writing %s: %w", latestKey, err)
	}
	return nil
}
