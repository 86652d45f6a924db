package steemauth

import (
	"sync"

	logger "github.com/sirupsen/logrus"
)

// TransactionHook observes every operation broadcast through a signer,
// with the signer-returned transaction id. Used to pick up transactions
// submitted outside the tracker's own Submit path.
type TransactionHook func(txId, opKind string, op *CustomJsonOperation)

type hookEntry struct {
	h TransactionHook
}

var (
	hookMu sync.Mutex
	hooks  []*hookEntry
)

// RegisterTransactionHook appends a hook and returns its unregister
// capability. Hooks run in registration order.
func RegisterTransactionHook(h TransactionHook) func() {
	e := &hookEntry{h: h}

	hookMu.Lock()
	hooks = append(hooks, e)
	hookMu.Unlock()

	return func() {
		hookMu.Lock()
		defer hookMu.Unlock()
		for i, cur := range hooks {
			if cur == e {
				hooks = append(hooks[:i], hooks[i+1:]...)
				break
			}
		}
	}
}

// NotifyTransactionHooks is called by signer implementations after a
// successful broadcast. A panicking hook never breaks the submission path.
func NotifyTransactionHooks(txId, opKind string, op *CustomJsonOperation) {
	hookMu.Lock()
	snapshot := make([]*hookEntry, len(hooks))
	copy(snapshot, hooks)
	hookMu.Unlock()

	for _, e := range snapshot {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("transaction hook panicked: %v", r)
				}
			}()
			e.h(txId, opKind, op)
		}()
	}
}
