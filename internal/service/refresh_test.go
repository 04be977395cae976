package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/store"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) FetchOffers(ctx context.Context, market string, date time.Time) (*models.OddsSnapshot, error) {
	args := m.Called(ctx, market, date)
	if snapshot := args.Get(0); snapshot != nil {
		return snapshot.(*models.OddsSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) Name() string {
	return "mock"
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, key string) (*models.OddsSnapshot, error) {
	args := m.Called(ctx, key)
	if snapshot := args.Get(0); snapshot != nil {
		return snapshot.(*models.OddsSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, key string, snapshot *models.OddsSnapshot) error {
	args := m.Called(ctx, key, snapshot)
	return args.Error(0)
}

func (m *mockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testSnapshot(market string, players ...string) *models.OddsSnapshot {
	offers := make(map[string]models.Offer, len(players))
	for _, p := range players {
		offers[p] = models.Offer{PlayerName: p, Market: market, AmericanPrice: 300}
	}
	return &models.OddsSnapshot{
		DateKey:   store.DateKey(time.Now().UTC()),
		Market:    market,
		Players:   offers,
		FetchedAt: time.Now().UTC(),
	}
}

func TestRefreshWritesDatedAndLatestKeys(t *testing.T) {
	market := "batter_home_runs"
	snapshot := testSnapshot(market, "aaron judge", "shohei ohtani")

	p := new(mockProvider)
	p.On("FetchOffers", mock.Anything, market, mock.Anything).Return(snapshot, nil)
	memory := store.NewMemoryStore(0)

	svc := NewRefreshService(p, memory, time.Second, testLogger())
	result, err := svc.Refresh(context.Background(), market)

	require.NoError(t, err)
	assert.Equal(t, market, result.Market)
	assert.Equal(t, 2, result.Players)
	assert.NotEqual(t, result.RunID.String(), "00000000-0000-0000-0000-000000000000")

	now := time.Now().UTC()
	dated, err := memory.Get(context.Background(), store.Key(market, now))
	require.NoError(t, err)
	assert.Len(t, dated.Players, 2)

	latest, err := memory.Get(context.Background(), store.LatestKey(market))
	require.NoError(t, err)
	assert.Equal(t, dated.FetchedAt, latest.FetchedAt)
	p.AssertExpectations(t)
}

func TestRefreshFailureLeavesCacheUntouched(t *testing.T) {
	market := "batter_home_runs"
	memory := store.NewMemoryStore(0)

	seeded := testSnapshot(market, "aaron judge")
	require.NoError(t, memory.Set(context.Background(), store.LatestKey(market), seeded))

	p := new(mockProvider)
	p.On("FetchOffers", mock.Anything, market, mock.Anything).Return(nil, errors.New("upstream down"))

	svc := NewRefreshService(p, memory, time.Second, testLogger())
	result, err := svc.Refresh(context.Background(), market)

	require.Error(t, err)
	assert.Nil(t, result)

	cached, err := memory.Get(context.Background(), store.LatestKey(market))
	require.NoError(t, err)
	assert.Equal(t, seeded.FetchedAt, cached.FetchedAt)
	assert.Len(t, cached.Players, 1)
}

func TestRefreshStoreWriteFailurePropagates(t *testing.T) {
	market := "batter_home_runs"
	snapshot := testSnapshot(market, "aaron judge")

	p := new(mockProvider)
	p.On("FetchOffers", mock.Anything, market, mock.Anything).Return(snapshot, nil)

	broken := new(mockStore)
	broken.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(store.ErrStoreUnavailable)

	svc := NewRefreshService(p, broken, time.Second, testLogger())
	result, err := svc.Refresh(context.Background(), market)

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	assert.Nil(t, result)
}

func TestRefreshIsIdempotent(t *testing.T) {
	market := "batter_home_runs"
	snapshot := testSnapshot(market, "aaron judge")

	p := new(mockProvider)
	p.On("FetchOffers", mock.Anything, market, mock.Anything).Return(snapshot, nil)
	memory := store.NewMemoryStore(0)

	svc := NewRefreshService(p, memory, time.Second, testLogger())
	_, err := svc.Refresh(context.Background(), market)
	require.NoError(t, err)
	first, err := memory.Get(context.Background(), store.LatestKey(market))
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), market)
	require.NoError(t, err)
	second, err := memory.Get(context.Background(), store.LatestKey(market))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// dated key plus latest alias, no extra entries from the rerun
	assert.Equal(t, 2, memory.ItemCount())
}

func TestRefreshLastWriteWins(t *testing.T) {
	market := "batter_home_runs"
	memory := store.NewMemoryStore(0)
	svc := func(s *models.OddsSnapshot) *RefreshService {
		p := new(mockProvider)
		p.On("FetchOffers", mock.Anything, market, mock.Anything).Return(s, nil)
		return NewRefreshService(p, memory, time.Second, testLogger())
	}

	_, err := svc(testSnapshot(market, "aaron judge")).Refresh(context.Background(), market)
	require.NoError(t, err)
	_, err = svc(testSnapshot(market, "aaron judge", "juan soto")).Refresh(context.Background(), market)
	require.NoError(t, err)

	latest, err := memory.Get(context.Background(), store.LatestKey(market))
	require.NoError(t, err)
	assert.Len(t, latest.Players, 2)
	assert.Contains(t, latest.Players, "juan soto")
}
