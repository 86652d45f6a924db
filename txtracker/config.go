package txtracker

import "time"

type Config struct {
	// Authority level the signer is asked for.
	RequiredAuth string

	// Default timeout of Handle.Wait when the caller passes zero.
	WaitTimeout time.Duration

	// Grace period before a terminal record is evicted from the live
	// registry, so late listeners can still observe it.
	EvictionGrace time.Duration

	// Auto-remove delays of the result toast.
	SuccessToastAfter time.Duration
	FailureToastAfter time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		RequiredAuth:      "active",
		WaitTimeout:       60 * time.Second,
		EvictionGrace:     30 * time.Second,
		SuccessToastAfter: 5 * time.Second,
		FailureToastAfter: 7 * time.Second,
	}
}
