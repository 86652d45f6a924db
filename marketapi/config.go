package marketapi

import "time"

type Config struct {
	// Base url of the sidechain REST api, no trailing slash.
	BaseUrl string
	// Per-request timeout.
	Timeout time.Duration
}

func DefaultConfig(baseUrl string) *Config {
	return &Config{
		BaseUrl: baseUrl,
		Timeout: 15 * time.Second,
	}
}
