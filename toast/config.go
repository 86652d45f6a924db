package toast

import "time"

type Config struct {
	// Auto-close delay for ordinary toasts.
	DefaultDuration time.Duration
	// Auto-close delay for error toasts.
	ErrorDuration time.Duration

	// Transaction progress animation. The bar climbs to MaxAutoProgress
	// over AnimationWindow, ticking every AnimationTick.
	AnimationWindow time.Duration
	AnimationTick   time.Duration
	MaxAutoProgress float64

	// Base url for the "View TX" link, tx id is appended.
	ExplorerTxUrl string
}

func DefaultConfig() *Config {
	return &Config{
		DefaultDuration: 5 * time.Second,
		ErrorDuration:   7 * time.Second,
		AnimationWindow: 30 * time.Second,
		AnimationTick:   100 * time.Millisecond,
		MaxAutoProgress: 90,
		ExplorerTxUrl:   "https://explorer.meeray.com/tx/",
	}
}
