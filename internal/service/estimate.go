package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/normalize"
	"github.com/yourusername/prop-edge/internal/pipeline"
	"github.com/yourusername/prop-edge/internal/store"
)

// EstimateService runs the full adjustment pipeline for one candidate:
// guard, snapshot merge, ordered multiplier stages, archetype metadata.
// Each request runs synchronously to completion; the only suspension point
// is the snapshot read.
type EstimateService struct {
	pipeline   *pipeline.Pipeline
	store      store.SnapshotStore
	normalizer *normalize.Normalizer
	logger     *logrus.Logger
}

// NewEstimateService creates an estimate service.
func NewEstimateService(p *pipeline.Pipeline, s store.SnapshotStore, n *normalize.Normalizer, logger *logrus.Logger) *EstimateService {
	return &EstimateService{
		pipeline:   p,
		store:      s,
		normalizer: n,
		logger:     logger,
	}
}

// Estimate produces an AdjustedCandidate. A snapshot miss degrades
// gracefully to a market-less estimate; a store connectivity failure is
// fatal and propagated, never conflated with a miss.
func (s *EstimateService) Estimate(ctx context.Context, candidate models.Candidate) (*models.AdjustedCandidate, error) {
	if candidate.Market == "" {
		return nil, models.ErrUnknownMarket
	}
	if candidate.BaselineProbability <= 0 {
		return nil, models.ErrMissingBaseline
	}

	snapshot, err := s.store.Get(ctx, store.LatestKey(candidate.Market))
	switch {
	case err == nil:
		snapshotHitsTotal.WithLabelValues(candidate.Market).Inc()
		snapshotAgeSeconds.WithLabelValues(candidate.Market).Set(snapshot.Age(time.Now().UTC()).Seconds())
	case errors.Is(err, store.ErrSnapshotNotFound):
		snapshotMissesTotal.WithLabelValues(candidate.Market).Inc()
		s.logger.WithField("market", candidate.Market).Debug("No snapshot cached, estimating without market data")
		snapshot = nil
	default:
		return nil, fmt.Errorf("reading snapshot for %s: %w", candidate.Market, err)
	}

	key := s.normalizer.Normalize(candidate.Name)
	return s.pipeline.Compose(candidate, snapshot, key), nil
}
