// In-process signer for tests. Records submissions and hands out
// deterministic base chain transaction ids.

package steemauth

import (
	"fmt"
	"sync"
)

type SimSubmission struct {
	OpKind string
	Op     *CustomJsonOperation
	Opts   *SubmitOptions
}

type SimSigner struct {
	mu          sync.Mutex
	username    string
	failWith    error
	seq         int
	submissions []SimSubmission
}

func NewSimSigner(username string) *SimSigner {
	return &SimSigner{username: username}
}

func (s *SimSigner) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// SetUsername simulates login/logout.
func (s *SimSigner) SetUsername(u string) {
	s.mu.Lock()
	s.username = u
	s.mu.Unlock()
}

// FailWith makes every following Submit return the error.
func (s *SimSigner) FailWith(err error) {
	s.mu.Lock()
	s.failWith = err
	s.mu.Unlock()
}

func (s *SimSigner) Submit(opKind string, op *CustomJsonOperation, opts *SubmitOptions) (*Result, error) {
	s.mu.Lock()
	if s.username == "" {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	if s.failWith != nil {
		err := s.failWith
		s.mu.Unlock()
		return nil, err
	}
	s.seq++
	id := fmt.Sprintf("steemtx-%d", s.seq)
	s.submissions = append(s.submissions, SimSubmission{OpKind: opKind, Op: op, Opts: opts})
	s.mu.Unlock()

	NotifyTransactionHooks(id, opKind, op)
	return &Result{Id: id}, nil
}

// Submissions returns everything broadcast so far.
func (s *SimSigner) Submissions() []SimSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SimSubmission, len(s.submissions))
	copy(out, s.submissions)
	return out
}
