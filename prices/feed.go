// USD price feed. Spot quotes come from coingecko, the STEEM daily
// candle history from cryptocompare. A poll loop keeps the spot cache
// fresh; readers never block on the network.

package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

// Symbols quoted by the spot feed, keyed to their coingecko ids.
var coingeckoIds = map[string]string{
	"STEEM": "steem",
	"SBD":   "steem-dollars",
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"USDC":  "usd-coin",
}

const fiat = "usd"

var ErrHistoryUnavailable = errors.New("price history unavailable")

// Quote is one cached spot price.
type Quote struct {
	// USD price.
	Price float64
	// 24h change in percent. Nil when the feed omitted it.
	Change24h *float64
	// USD market cap. Nil when the feed omitted it.
	MarketCap *float64
}

// Candle is one daily OHLCV entry of the STEEM/USD history.
type Candle struct {
	Time       int64   `json:"time"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Open       float64 `json:"open"`
	Close      float64 `json:"close"`
	VolumeFrom float64 `json:"volumefrom"`
	VolumeTo   float64 `json:"volumeto"`
}

type Feed struct {
	cfg  *Config
	http *http.Client

	mu      sync.RWMutex
	quotes  map[string]Quote
	lastErr error
}

func NewFeed(cfg *Config) *Feed {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Feed{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		quotes: make(map[string]Quote),
	}
}

// Quote returns the cached spot price of a symbol.
func (f *Feed) Quote(symbol string) (Quote, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	q, ok := f.quotes[symbol]
	return q, ok
}

// Quotes returns a snapshot of every cached spot price.
func (f *Feed) Quotes() map[string]Quote {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Quote, len(f.quotes))
	for k, v := range f.quotes {
		out[k] = v
	}
	return out
}

// LastError reports the most recent refresh failure, nil after a
// successful refresh.
func (f *Feed) LastError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

// Run refreshes once immediately, then on every tick until the context
// ends. Refresh failures keep the previous cache.
func (f *Feed) Run(ctx context.Context) error {
	logger.Info("starting price feed")
	defer logger.Info("stopping price feed")

	if err := f.Refresh(); err != nil {
		logger.Warnf("initial price refresh failed: err=%v", err)
	}

	ticker := time.NewTicker(f.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := f.Refresh(); err != nil {
				logger.Warnf("price refresh failed: err=%v", err)
			}
		}
	}
}

// Refresh fetches fresh spot quotes for every known symbol.
func (f *Feed) Refresh() error {
	ids := make([]string, 0, len(coingeckoIds))
	for _, id := range coingeckoIds {
		ids = append(ids, id)
	}

	v := url.Values{}
	v.Set("ids", strings.Join(ids, ","))
	v.Set("vs_currencies", fiat)
	v.Set("include_24hr_change", "true")
	v.Set("include_market_cap", "true")

	resp, err := f.http.Get(f.cfg.SpotUrl + "?" + v.Encode())
	if err != nil {
		return f.fail(fmt.Errorf("spot price request failed: %w", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return f.fail(fmt.Errorf("spot price request returned %d", resp.StatusCode))
	}

	// {"steem": {"usd": 0.15, "usd_24h_change": -2.3, "usd_market_cap": 1.2e6}, ...}
	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return f.fail(fmt.Errorf("failed to decode spot prices: %w", err))
	}

	quotes := make(map[string]Quote, len(coingeckoIds))
	for symbol, id := range coingeckoIds {
		entry, ok := data[id]
		if !ok {
			continue
		}
		price, ok := entry[fiat]
		if !ok {
			continue
		}
		q := Quote{Price: price}
		if ch, ok := entry[fiat+"_24h_change"]; ok {
			q.Change24h = &ch
		}
		if mc, ok := entry[fiat+"_market_cap"]; ok {
			q.MarketCap = &mc
		}
		quotes[symbol] = q
	}

	f.mu.Lock()
	f.quotes = quotes
	f.lastErr = nil
	f.mu.Unlock()
	return nil
}

func (f *Feed) fail(err error) error {
	f.mu.Lock()
	f.lastErr = err
	f.mu.Unlock()
	return err
}

// SteemHistory fetches the STEEM/USD daily candles, most recent last.
func (f *Feed) SteemHistory() ([]Candle, error) {
	v := url.Values{}
	v.Set("fsym", "STEEM")
	v.Set("tsym", "USD")
	v.Set("limit", strconv.Itoa(f.cfg.HistoryDays))

	resp, err := f.http.Get(f.cfg.HistoryUrl + "?" + v.Encode())
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history request returned %d", resp.StatusCode)
	}

	var out struct {
		Response string   `json:"Response"`
		Message  string   `json:"Message"`
		Data     []Candle `json:"Data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	if out.Response != "Success" {
		if out.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrHistoryUnavailable, out.Message)
		}
		return nil, ErrHistoryUnavailable
	}
	return out.Data, nil
}
