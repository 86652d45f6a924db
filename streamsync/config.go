package streamsync

import "time"

type Config struct {
	// Websocket endpoint of the event-push backend, eg. ws://localhost:8080/events
	Url string

	// Catch-all topic subscribed right after the connection opens.
	CatchAllTopic string

	// Delay before the single reconnect attempt after an unexpected close.
	ReconnectDelay time.Duration

	// Dial timeout.
	HandshakeTimeout time.Duration

	// Buffer of the parsed-event channel handed to the consumer.
	ChannelSize int

	// Diagnostic buffer caps.
	RawCap      int
	CategoryCap int
}

func DefaultConfig(url string) *Config {
	return &Config{
		Url:              url,
		CatchAllTopic:    "all",
		ReconnectDelay:   5 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		ChannelSize:      64,
		RawCap:           500,
		CategoryCap:      100,
	}
}
