package streamsync

import "sync"

// EventLog keeps the diagnostic views of the feed: one most-recent-first
// ring of every parsed message, and a per-category ring. Both are bounded;
// there is no invariant beyond the caps.
type EventLog struct {
	mu          sync.Mutex
	rawCap      int
	categoryCap int
	raw         []*Event
	byCategory  map[string][]*Event
}

func NewEventLog(rawCap, categoryCap int) *EventLog {
	return &EventLog{
		rawCap:      rawCap,
		categoryCap: categoryCap,
		byCategory:  make(map[string][]*Event),
	}
}

// Record prepends the event to the raw ring and to its category ring,
// truncating both to their caps.
func (l *EventLog) Record(ev *Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.raw = prepend(l.raw, ev, l.rawCap)
	if ev.Category != "" {
		l.byCategory[ev.Category] = prepend(l.byCategory[ev.Category], ev, l.categoryCap)
	}
}

// Raw returns a most-recent-first snapshot of the full feed.
func (l *EventLog) Raw() []*Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Event, len(l.raw))
	copy(out, l.raw)
	return out
}

// Category returns a most-recent-first snapshot for one category.
func (l *EventLog) Category(name string) []*Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := l.byCategory[name]
	out := make([]*Event, len(list))
	copy(out, list)
	return out
}

// Categories lists the category names seen so far.
func (l *EventLog) Categories() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.byCategory))
	for name := range l.byCategory {
		names = append(names, name)
	}
	return names
}

func prepend(list []*Event, ev *Event, cap_ int) []*Event {
	list = append([]*Event{ev}, list...)
	if len(list) > cap_ {
		list = list[:cap_]
	}
	return list
}
