package streamsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamsync_events_received_total",
		Help: "Parsed events received from the event feed",
	})
	parseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamsync_parse_failures_total",
		Help: "Inbound frames dropped because they failed to parse",
	})
	reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamsync_reconnects_total",
		Help: "Reconnect attempts after an unexpected close",
	})
)
