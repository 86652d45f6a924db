package prices

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spotResponse() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"steem":   {"usd": 0.15, "usd_24h_change": -2.34, "usd_market_cap": 1.2e6},
		"bitcoin": {"usd": 65000},
	}
}

func TestRefreshPopulatesQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("ids"), "steem")
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		json.NewEncoder(w).Encode(spotResponse())
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.SpotUrl = srv.URL
	f := NewFeed(cfg)

	require.NoError(t, f.Refresh())
	require.NoError(t, f.LastError())

	q, ok := f.Quote("STEEM")
	require.True(t, ok)
	assert.Equal(t, 0.15, q.Price)
	require.NotNil(t, q.Change24h)
	assert.Equal(t, -2.34, *q.Change24h)
	require.NotNil(t, q.MarketCap)

	// bitcoin came without change/cap fields
	q, ok = f.Quote("BTC")
	require.True(t, ok)
	assert.Equal(t, 65000.0, q.Price)
	assert.Nil(t, q.Change24h)

	// symbols the feed skipped are absent
	_, ok = f.Quote("SBD")
	assert.False(t, ok)
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(spotResponse())
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.SpotUrl = srv.URL
	f := NewFeed(cfg)

	require.NoError(t, f.Refresh())
	fail.Store(true)
	assert.Error(t, f.Refresh())
	assert.Error(t, f.LastError())

	// the stale quote is still readable
	q, ok := f.Quote("STEEM")
	assert.True(t, ok)
	assert.Equal(t, 0.15, q.Price)

	// a later success clears the error
	fail.Store(false)
	require.NoError(t, f.Refresh())
	assert.NoError(t, f.LastError())
}

func TestRunPolls(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		json.NewEncoder(w).Encode(spotResponse())
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.SpotUrl = srv.URL
	cfg.PollInterval = 30 * time.Millisecond
	f := NewFeed(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	err := f.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// immediate refresh plus at least one tick
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(2))
}

func TestSteemHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "STEEM", r.URL.Query().Get("fsym"))
		assert.Equal(t, "USD", r.URL.Query().Get("tsym"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": "Success",
			"Data": []map[string]interface{}{
				{"time": 1700000000, "open": 0.14, "close": 0.15, "high": 0.16, "low": 0.13},
				{"time": 1700086400, "open": 0.15, "close": 0.14, "high": 0.15, "low": 0.14},
			},
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.HistoryUrl = srv.URL
	f := NewFeed(cfg)

	candles, err := f.SteemHistory()
	require.NoError(t, err)
	require.Len(t, candles, 2)
	assert.Equal(t, int64(1700000000), candles[0].Time)
	assert.Equal(t, 0.15, candles[0].Close)
}

func TestSteemHistoryError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": "Error",
			"Message":  "rate limit",
		})
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.HistoryUrl = srv.URL
	f := NewFeed(cfg)

	_, err := f.SteemHistory()
	assert.ErrorIs(t, err, ErrHistoryUnavailable)
	assert.Contains(t, err.Error(), "rate limit")
}
