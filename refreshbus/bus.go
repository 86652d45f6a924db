// Completion callbacks keyed by operation type. UI regions register a
// refresh function for "swap", "nft_mint" etc. and get called when a
// transaction of that type completes, without coupling to the registry.

package refreshbus

import (
	"sync"

	logger "github.com/sirupsen/logrus"
)

type Callback func() error

type entry struct {
	cb Callback
}

type Bus struct {
	mu        sync.Mutex
	callbacks map[string][]*entry
}

func New() *Bus {
	return &Bus{callbacks: make(map[string][]*entry)}
}

// Subscribe appends a callback for the operation type and returns the
// unsubscribe capability. Callbacks run in insertion order.
func (b *Bus) Subscribe(opType string, cb Callback) func() {
	e := &entry{cb: cb}

	b.mu.Lock()
	b.callbacks[opType] = append(b.callbacks[opType], e)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.callbacks[opType]
		for i, cur := range list {
			if cur == e {
				b.callbacks[opType] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(b.callbacks[opType]) == 0 {
			delete(b.callbacks, opType)
		}
	}
}

// SubscribeMany subscribes one callback to several operation types and
// returns a combined unsubscribe.
func (b *Bus) SubscribeMany(opTypes []string, cb Callback) func() {
	cancels := make([]func(), 0, len(opTypes))
	for _, t := range opTypes {
		cancels = append(cancels, b.Subscribe(t, cb))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// Trigger runs every callback registered for the operation type. A failing
// or panicking callback is logged and never stops the others, and nothing
// propagates to the caller.
func (b *Bus) Trigger(opType string) {
	b.mu.Lock()
	list := b.callbacks[opType]
	snapshot := make([]*entry, len(list))
	copy(snapshot, list)
	b.mu.Unlock()

	if len(snapshot) == 0 {
		logger.WithField("type", opType).Debug("no refresh callbacks registered")
		return
	}

	for _, e := range snapshot {
		b.invoke(opType, e.cb)
	}
}

// Count reports how many callbacks are registered for the type.
func (b *Bus) Count(opType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.callbacks[opType])
}

func (b *Bus) invoke(opType string, cb Callback) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("type", opType).Errorf("refresh callback panicked: %v", r)
		}
	}()
	if err := cb(); err != nil {
		logger.WithField("type", opType).Errorf("refresh callback failed: err=%v", err)
	}
}
