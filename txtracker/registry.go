package txtracker

import "sync"

// Registry is the authoritative map of in-flight tracking ids to their
// current status. Mutated only by the submission path and the event loop;
// all access goes through the mutex to preserve the single-writer shape
// on a multi-threaded runtime.
type Registry struct {
	mu      sync.Mutex
	pending map[string]*TransactionStatus
}

func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]*TransactionStatus)}
}

// Register inserts or overwrites the record. Last write wins; at most one
// record per tracking id exists at any time.
func (r *Registry) Register(st TransactionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := st
	r.pending[st.Id] = &cp
}

func (r *Registry) Get(id string) (TransactionStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.pending[id]
	if !ok {
		return TransactionStatus{}, false
	}
	return *st, true
}

// List returns a snapshot of every live record.
func (r *Registry) List() []TransactionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TransactionStatus, 0, len(r.pending))
	for _, st := range r.pending {
		out = append(out, *st)
	}
	return out
}

func (r *Registry) ListByType(opType string) []TransactionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []TransactionStatus{}
	for _, st := range r.pending {
		if st.Type == opType {
			out = append(out, *st)
		}
	}
	return out
}

// Ids lists the live tracking ids, for re-subscription after reconnects.
func (r *Registry) Ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.pending))
	for id := range r.pending {
		out = append(out, id)
	}
	return out
}

// apply runs the mutation under the lock and returns the updated record.
// The mutation reports false to abort (record left untouched).
func (r *Registry) apply(id string, mutate func(*TransactionStatus) bool) (TransactionStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.pending[id]
	if !ok {
		return TransactionStatus{}, false
	}
	cp := *st
	if !mutate(&cp) {
		return TransactionStatus{}, false
	}
	r.pending[id] = &cp
	return cp, true
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, id)
}
