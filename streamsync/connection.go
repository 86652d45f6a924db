// One persistent duplex connection to the event-push backend. The
// connection owns reconnect policy and the diagnostic buffers; parsed
// events are handed to the consumer over a channel in arrival order.

package streamsync

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	logger "github.com/sirupsen/logrus"
)

type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateConnected
)

type Conn struct {
	cfg    *Config
	log    *EventLog
	events chan *Event

	mu             sync.Mutex
	ws             *websocket.Conn
	state          connState
	manualClose    bool
	reconnectTimer *time.Timer
	pendingSource  func() []string

	writeMu sync.Mutex
}

func NewConn(cfg *Config) *Conn {
	return &Conn{
		cfg:    cfg,
		log:    NewEventLog(cfg.RawCap, cfg.CategoryCap),
		events: make(chan *Event, cfg.ChannelSize),
	}
}

// Events is the parsed-event feed. Never closed; consumers stop on their
// own context.
func (c *Conn) Events() <-chan *Event {
	return c.events
}

// Log exposes the diagnostic buffers (raw ring + category log).
func (c *Conn) Log() *EventLog {
	return c.log
}

// SetPendingSource installs the callback that lists tracking ids which
// must be re-subscribed after a reconnect.
func (c *Conn) SetPendingSource(f func() []string) {
	c.mu.Lock()
	c.pendingSource = f
	c.mu.Unlock()
}

func (c *Conn) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateConnected
}

// Connect establishes the outbound connection. No-op when already
// connected or connecting. On open it subscribes the catch-all topic and
// re-subscribes every live tracking id.
func (c *Conn) Connect() error {
	c.mu.Lock()
	if c.state != stateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.state = stateConnecting
	c.manualClose = false
	c.mu.Unlock()

	dialer := websocket.Dialer{HandshakeTimeout: c.cfg.HandshakeTimeout}
	ws, _, err := dialer.Dial(c.cfg.Url, nil)
	if err != nil {
		logger.Errorf("failed to connect event feed: err=%v", err)
		c.mu.Lock()
		c.state = stateDisconnected
		if !c.manualClose {
			c.scheduleReconnectLocked()
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.manualClose {
		// Close() raced the dial, drop the fresh socket.
		c.state = stateDisconnected
		c.mu.Unlock()
		ws.Close()
		return nil
	}
	c.ws = ws
	c.state = stateConnected
	src := c.pendingSource
	c.mu.Unlock()

	logger.WithField("url", c.cfg.Url).Info("connected to event feed")

	c.SubscribeTopic(c.cfg.CatchAllTopic)
	if src != nil {
		for _, id := range src() {
			c.SubscribeTransaction(id)
		}
	}

	go c.readLoop(ws)
	return nil
}

// Close tears the connection down and suppresses the auto-reconnect for
// this close only.
func (c *Conn) Close() {
	c.mu.Lock()
	c.manualClose = true
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	ws := c.ws
	c.mu.Unlock()

	if ws != nil {
		ws.Close()
	}
}

// SubscribeTopic sends the named-topic control frame. Reports whether the
// frame went out.
func (c *Conn) SubscribeTopic(topic string) bool {
	return c.sendFrame(subscribeFrame{Type: frameSubscribeTopic, Topic: topic})
}

// SubscribeTransaction sends the per-transaction control frame.
func (c *Conn) SubscribeTransaction(txId string) bool {
	return c.sendFrame(subscribeFrame{Type: frameSubscribeTransaction, TxId: txId})
}

func (c *Conn) sendFrame(f subscribeFrame) bool {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil {
		return false
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := ws.WriteJSON(f); err != nil {
		logger.Warnf("failed to send %s frame: err=%v", f.Type, err)
		return false
	}
	return true
}

func (c *Conn) readLoop(ws *websocket.Conn) {
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}

		ev := &Event{}
		if err := json.Unmarshal(msg, ev); err != nil {
			parseFailures.Inc()
			logger.Warnf("discarding unparsable event frame: err=%v", err)
			continue
		}

		eventsReceived.Inc()
		c.log.Record(ev)

		select {
		case c.events <- ev:
		default:
			// Consumer is not keeping up. Dropping preserves liveness of
			// the read loop; the raw ring still has the event.
			logger.WithField("event", ev.Id).Warn("event channel full, dropping event")
		}
	}
	c.handleClose(ws)
}

func (c *Conn) handleClose(ws *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != ws {
		// stale read loop of an older socket
		return
	}
	c.ws = nil
	c.state = stateDisconnected

	manual := c.manualClose
	c.manualClose = false
	if manual {
		logger.Info("event feed closed")
		return
	}

	logger.Warn("event feed disconnected unexpectedly")
	c.scheduleReconnectLocked()
}

// Exactly one reconnect timer at a time; a manual close before it fires
// suppresses it.
func (c *Conn) scheduleReconnectLocked() {
	if c.reconnectTimer != nil {
		return
	}
	c.reconnectTimer = time.AfterFunc(c.cfg.ReconnectDelay, func() {
		c.mu.Lock()
		c.reconnectTimer = nil
		manual := c.manualClose
		c.mu.Unlock()
		if manual {
			return
		}
		reconnects.Inc()
		if err := c.Connect(); err != nil {
			logger.Errorf("reconnect attempt failed: err=%v", err)
		}
	})
}
