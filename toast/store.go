// Short-lived user-facing status messages. The store is a plain state
// container; transaction progress semantics live in the tracker, which
// drives this store through Update/RemoveAfter.

package toast

import (
	"fmt"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
	Loading Kind = "loading"
)

type Link struct {
	Text string `json:"text"`
	Url  string `json:"url"`
}

type Toast struct {
	Id           string        `json:"id"`
	Kind         Kind          `json:"kind"`
	Title        string        `json:"title"`
	Message      string        `json:"message,omitempty"`
	Duration     time.Duration `json:"duration"`
	Progress     float64       `json:"progress"` // 0-100
	ShowProgress bool          `json:"showProgress"`
	Link         *Link         `json:"link,omitempty"`
	// Pinned toasts stay until removed explicitly. Zero value keeps the
	// default auto-close behaviour.
	Pinned    bool  `json:"pinned"`
	CreatedAt int64 `json:"createdAt"`
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Kind         *Kind
	Title        *string
	Message      *string
	Progress     *float64
	ShowProgress *bool
	Pinned       *bool
}

type Store struct {
	cfg *Config

	mu     sync.Mutex
	toasts map[string]*Toast
	order  []string
	seq    int
	timers map[string]*time.Timer   // auto-close
	anims  map[string]chan struct{} // progress animation stop signals
}

func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Store{
		cfg:    cfg,
		toasts: make(map[string]*Toast),
		timers: make(map[string]*time.Timer),
		anims:  make(map[string]chan struct{}),
	}
}

// Add inserts a toast, filling in the generated id, the default duration
// and the auto-close timer. Returns the id.
func (s *Store) Add(t Toast) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t.Id = fmt.Sprintf("toast_%d_%d", time.Now().UnixMilli(), s.seq)
	if t.Duration == 0 {
		t.Duration = s.cfg.DefaultDuration
	}
	t.CreatedAt = time.Now().UnixMilli()

	s.toasts[t.Id] = &t
	s.order = append(s.order, t.Id)

	if !t.Pinned && t.Duration > 0 {
		s.scheduleRemoveLocked(t.Id, t.Duration)
	}
	return t.Id
}

// Update merges a partial patch into an existing toast. No-op when absent.
func (s *Store) Update(id string, p Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.toasts[id]
	if !ok {
		return false
	}
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Message != nil {
		t.Message = *p.Message
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.ShowProgress != nil {
		t.ShowProgress = *p.ShowProgress
	}
	if p.Pinned != nil {
		t.Pinned = *p.Pinned
	}
	return true
}

// Remove deletes by id and cancels its timers. No-op when absent.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(id)
}

// RemoveAfter schedules removal after the given delay, replacing any
// earlier auto-close timer for the toast.
func (s *Store) RemoveAfter(id string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.toasts[id]; !ok {
		return
	}
	s.scheduleRemoveLocked(id, d)
}

func (s *Store) Get(id string) (Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.toasts[id]
	if !ok {
		return Toast{}, false
	}
	return *t, true
}

// List returns a snapshot in insertion order.
func (s *Store) List() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.toasts[id]; ok {
			out = append(out, *t)
		}
	}
	return out
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.toasts {
		s.removeLocked(id)
	}
}

func (s *Store) removeLocked(id string) bool {
	if _, ok := s.toasts[id]; !ok {
		return false
	}
	delete(s.toasts, id)
	if tm, ok := s.timers[id]; ok {
		tm.Stop()
		delete(s.timers, id)
	}
	if stop, ok := s.anims[id]; ok {
		close(stop)
		delete(s.anims, id)
	}
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) scheduleRemoveLocked(id string, d time.Duration) {
	if tm, ok := s.timers[id]; ok {
		tm.Stop()
	}
	s.timers[id] = time.AfterFunc(d, func() {
		s.Remove(id)
	})
}

// Convenience constructors.

func (s *Store) Success(title, message string) string {
	return s.Add(Toast{Kind: Success, Title: title, Message: message})
}

func (s *Store) Error(title, message string) string {
	return s.Add(Toast{Kind: Error, Title: title, Message: message, Duration: s.cfg.ErrorDuration})
}

func (s *Store) Warning(title, message string) string {
	return s.Add(Toast{Kind: Warning, Title: title, Message: message})
}

func (s *Store) Info(title, message string) string {
	return s.Add(Toast{Kind: Info, Title: title, Message: message})
}

func (s *Store) Loading(title, message string) string {
	return s.Add(Toast{Kind: Loading, Title: title, Message: message, Pinned: true, ShowProgress: true})
}

// Transaction creates the pinned loading toast for an in-flight operation
// and starts the progress animation. The animation climbs toward (never
// reaching past) MaxAutoProgress over AnimationWindow; the remaining span
// only comes from real status updates.
func (s *Store) Transaction(title, externalId string) string {
	t := Toast{
		Kind:         Loading,
		Title:        title,
		Message:      "Processing transaction...",
		Pinned:       true,
		ShowProgress: true,
	}
	if externalId != "" && s.cfg.ExplorerTxUrl != "" {
		t.Link = &Link{Text: "View TX", Url: s.cfg.ExplorerTxUrl + externalId}
	}
	id := s.Add(t)
	s.startAnimation(id)
	return id
}

func (s *Store) startAnimation(id string) {
	stop := make(chan struct{})
	s.mu.Lock()
	s.anims[id] = stop
	s.mu.Unlock()

	start := time.Now()
	go func() {
		ticker := time.NewTicker(s.cfg.AnimationTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				elapsed := time.Since(start)
				auto := float64(elapsed) / float64(s.cfg.AnimationWindow) * s.cfg.MaxAutoProgress
				if auto > s.cfg.MaxAutoProgress {
					auto = s.cfg.MaxAutoProgress
				}
				if done := s.bumpProgress(id, auto); done {
					return
				}
				if auto >= s.cfg.MaxAutoProgress {
					logger.WithField("toast", id).Debug("progress animation reached its cap")
					return
				}
			}
		}
	}()
}

// bumpProgress raises the animated progress, never lowering a value a real
// status update already set. Reports true once the toast is gone or no
// longer loading.
func (s *Store) bumpProgress(id string, p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.toasts[id]
	if !ok || t.Kind != Loading {
		return true
	}
	if p > t.Progress {
		t.Progress = p
	}
	return false
}
