package prices

import "time"

type Config struct {
	// Spot price endpoint (coingecko simple/price compatible).
	SpotUrl string
	// Daily history endpoint (cryptocompare histoday compatible).
	HistoryUrl string

	// Poll interval of the spot feed.
	PollInterval time.Duration
	// Per-request timeout.
	Timeout time.Duration
	// Days of STEEM/USD history to fetch.
	HistoryDays int
}

func DefaultConfig() *Config {
	return &Config{
		SpotUrl:      "https://api.coingecko.com/api/v3/simple/price",
		HistoryUrl:   "https://min-api.cryptocompare.com/data/histoday",
		PollInterval: 60 * time.Second,
		Timeout:      15 * time.Second,
		HistoryDays:  365,
	}
}
