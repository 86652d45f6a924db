// In-process event-push backend for tests. Mirrors the real backend's
// contract: accepts subscribe control frames, pushes JSON event frames.

package streamsync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

type ReceivedFrame struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
	TxId  string `json:"txId,omitempty"`
}

type SimBackend struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  []*websocket.Conn
	frames []ReceivedFrame
}

func NewSimBackend() *SimBackend {
	b := &SimBackend{}
	b.server = httptest.NewServer(http.HandlerFunc(b.handle))
	return b
}

// Url is the ws:// endpoint clients dial.
func (b *SimBackend) Url() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http")
}

func (b *SimBackend) handle(w http.ResponseWriter, r *http.Request) {
	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	b.mu.Lock()
	b.conns = append(b.conns, ws)
	b.mu.Unlock()

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		var f ReceivedFrame
		if err := json.Unmarshal(msg, &f); err != nil {
			continue
		}
		b.mu.Lock()
		b.frames = append(b.frames, f)
		b.mu.Unlock()
	}

	b.mu.Lock()
	for i, c := range b.conns {
		if c == ws {
			b.conns = append(b.conns[:i], b.conns[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	ws.Close()
}

// Push sends the event to every connected client.
func (b *SimBackend) Push(ev *Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	b.PushRaw(data)
	return nil
}

// PushRaw sends an arbitrary frame, parsable or not.
func (b *SimBackend) PushRaw(data []byte) {
	b.mu.Lock()
	conns := make([]*websocket.Conn, len(b.conns))
	copy(conns, b.conns)
	b.mu.Unlock()

	for _, c := range conns {
		_ = c.WriteMessage(websocket.TextMessage, data)
	}
}

// Frames returns the control frames received so far.
func (b *SimBackend) Frames() []ReceivedFrame {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ReceivedFrame, len(b.frames))
	copy(out, b.frames)
	return out
}

func (b *SimBackend) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.conns)
}

// DropClients force-closes every client socket without shutting the
// server down, simulating an unexpected disconnect.
func (b *SimBackend) DropClients() {
	b.mu.Lock()
	conns := make([]*websocket.Conn, len(b.conns))
	copy(conns, b.conns)
	b.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}

func (b *SimBackend) Close() {
	b.DropClients()
	b.server.Close()
}
