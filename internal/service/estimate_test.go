package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/normalize"
	"github.com/yourusername/prop-edge/internal/pipeline"
	"github.com/yourusername/prop-edge/internal/store"
)

func newEstimateService(s store.SnapshotStore) *EstimateService {
	logger := testLogger()
	p := pipeline.New(pipeline.Options{ClassifyArchetypes: true}, logger)
	return NewEstimateService(p, s, normalize.New(), logger)
}

func homeRunCandidate() models.Candidate {
	return models.Candidate{
		ID:                  "c-1",
		Name:                "Ronald Acuña Jr.",
		Team:                "ATL",
		Bats:                "R",
		Market:              "batter_home_runs",
		BaselineProbability: 0.16,
		Pitchers: models.PitcherContext{
			Pitcher: &models.Pitcher{Team: "NYM", Throws: "L"},
		},
	}
}

func TestEstimateRejectsMissingMarket(t *testing.T) {
	svc := newEstimateService(store.NewMemoryStore(0))

	candidate := homeRunCandidate()
	candidate.Market = ""

	_, err := svc.Estimate(context.Background(), candidate)
	assert.ErrorIs(t, err, models.ErrUnknownMarket)
}

func TestEstimateRejectsMissingBaseline(t *testing.T) {
	svc := newEstimateService(store.NewMemoryStore(0))

	candidate := homeRunCandidate()
	candidate.BaselineProbability = 0

	_, err := svc.Estimate(context.Background(), candidate)
	assert.ErrorIs(t, err, models.ErrMissingBaseline)
}

func TestEstimateToleratesSnapshotMiss(t *testing.T) {
	svc := newEstimateService(store.NewMemoryStore(0))

	adjusted, err := svc.Estimate(context.Background(), homeRunCandidate())

	require.NoError(t, err)
	require.NotNil(t, adjusted)
	assert.Nil(t, adjusted.Offer)
	assert.Nil(t, adjusted.Edge)
	// the pipeline still ran in full
	assert.Len(t, adjusted.Stages, 5)
	assert.NotNil(t, adjusted.Archetype)
}

func TestEstimateMergesCachedOffer(t *testing.T) {
	memory := store.NewMemoryStore(0)
	snapshot := &models.OddsSnapshot{
		DateKey: store.DateKey(time.Now().UTC()),
		Market:  "batter_home_runs",
		Players: map[string]models.Offer{
			// snapshots key players by normalized name
			"ronald acuna jr": {
				PlayerName:    "Ronald Acuña Jr.",
				Market:        "batter_home_runs",
				Bookmaker:     "fanduel",
				AmericanPrice: 425,
			},
		},
		FetchedAt: time.Now().UTC(),
	}
	require.NoError(t, memory.Set(context.Background(), store.LatestKey("batter_home_runs"), snapshot))

	svc := newEstimateService(memory)
	adjusted, err := svc.Estimate(context.Background(), homeRunCandidate())

	require.NoError(t, err)
	require.NotNil(t, adjusted.Offer)
	assert.Equal(t, "fanduel", adjusted.Offer.Bookmaker)
	require.NotNil(t, adjusted.MarketImpliedProbability)
	assert.InDelta(t, 100.0/525.0, *adjusted.MarketImpliedProbability, 1e-9)
	require.NotNil(t, adjusted.Edge)
	assert.InDelta(t, adjusted.FinalProbability-*adjusted.MarketImpliedProbability, *adjusted.Edge, 1e-9)
}

func TestEstimatePropagatesStoreFailure(t *testing.T) {
	broken := new(mockStore)
	broken.On("Get", mock.Anything, store.LatestKey("batter_home_runs")).Return(nil, store.ErrStoreUnavailable)

	svc := newEstimateService(broken)
	adjusted, err := svc.Estimate(context.Background(), homeRunCandidate())

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.NotErrorIs(t, err, store.ErrSnapshotNotFound)
	assert.Nil(t, adjusted)
}
