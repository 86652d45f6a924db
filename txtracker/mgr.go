// The transaction lifecycle tracker. Submits operations through the
// external signer, keeps the pending registry, reconciles inbound stream
// events against it and drives toasts, waiters, history and refresh
// callbacks. The Big Loop is Run().

package txtracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/meeray/market-go/common"
	"github.com/meeray/market-go/refreshbus"
	"github.com/meeray/market-go/steemauth"
	"github.com/meeray/market-go/streamsync"
	"github.com/meeray/market-go/toast"
)

var (
	ErrWaitTimeout       = errors.New("timed out waiting for transaction completion")
	ErrTransactionFailed = errors.New("transaction failed")
)

// EventStream is the slice of the stream connection the tracker needs.
type EventStream interface {
	Connect() error
	SubscribeTransaction(txId string) bool
	Events() <-chan *streamsync.Event
}

// HistorySink records terminal transactions, eg. the local history db.
type HistorySink interface {
	RecordTerminal(st TransactionStatus) error
}

type listenerEntry struct {
	l StatusListener
}

type Tracker struct {
	cfg     *Config
	signer  steemauth.Signer
	stream  EventStream
	toasts  *toast.Store
	bus     *refreshbus.Bus
	history HistorySink

	reg *Registry

	mu        sync.Mutex
	listeners map[string][]*listenerEntry
	toastIds  map[string]string
	evictions map[string]*time.Timer
}

func NewTracker(cfg *Config, signer steemauth.Signer, stream EventStream, toasts *toast.Store, bus *refreshbus.Bus) *Tracker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Tracker{
		cfg:       cfg,
		signer:    signer,
		stream:    stream,
		toasts:    toasts,
		bus:       bus,
		reg:       NewRegistry(),
		listeners: make(map[string][]*listenerEntry),
		toastIds:  make(map[string]string),
		evictions: make(map[string]*time.Timer),
	}
}

// SetHistory wires the optional terminal-transaction sink.
func (t *Tracker) SetHistory(h HistorySink) {
	t.history = h
}

func (t *Tracker) Registry() *Registry {
	return t.reg
}

// PendingIds feeds the stream's re-subscription on reconnect.
func (t *Tracker) PendingIds() []string {
	return t.reg.Ids()
}

// Register inserts the record, makes sure the stream is up, subscribes
// the tracking id and opens the progress toast. Last write wins on a
// duplicate id; the existing toast is kept.
func (t *Tracker) Register(st TransactionStatus) {
	if st.Timestamp == 0 {
		st.Timestamp = common.NowMs()
	}
	t.reg.Register(st)

	if t.stream != nil {
		if err := t.stream.Connect(); err != nil {
			logger.Warnf("event stream connect failed, will retry: err=%v", err)
		}
		t.stream.SubscribeTransaction(st.Id)
	}

	if t.toasts != nil {
		t.mu.Lock()
		_, has := t.toastIds[st.Id]
		t.mu.Unlock()
		if !has {
			ext := st.SteemTxId
			if ext == "" {
				ext = st.Id
			}
			toastId := t.toasts.Transaction(HumanizeType(st.Type), ext)
			t.mu.Lock()
			t.toastIds[st.Id] = toastId
			t.mu.Unlock()
		}
	}

	logger.WithField("tx", st.Id).WithField("type", st.Type).Info("tracking transaction")
}

// Submit builds the operation envelope with a fresh tracking id embedded
// in the payload, broadcasts it through the signer and registers the
// transaction. Nothing is registered when the signer fails.
func (t *Tracker) Submit(contract string, payload map[string]interface{}, opType string) (*Handle, error) {
	username := t.signer.Username()
	if username == "" {
		return nil, steemauth.ErrNotAuthenticated
	}

	trackingId := common.NewTrackingId()
	p := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		p[k] = v
	}
	p["_trackingId"] = trackingId

	op, err := steemauth.NewSidechainOperation(username, contract, p)
	if err != nil {
		return nil, err
	}

	res, err := t.signer.Submit("custom_json", op, &steemauth.SubmitOptions{RequiredAuth: t.cfg.RequiredAuth})
	if err != nil {
		logger.Errorf("failed to send %s transaction: err=%v", opType, err)
		return nil, err
	}

	t.Register(TransactionStatus{
		Id:        trackingId,
		SteemTxId: res.Id,
		Status:    StatusSteemConfirmed,
		Timestamp: common.NowMs(),
		Type:      opType,
	})

	return &Handle{t: t, Id: trackingId, SteemTxId: res.Id}, nil
}

// TrackSignedOperations registers every operation broadcast through the
// signer library, keyed by the signer-returned id with no embedded
// marker. Returns the unregister capability. Alternative correlation
// strategy to Submit; a process normally enables one of the two.
func (t *Tracker) TrackSignedOperations() func() {
	return steemauth.RegisterTransactionHook(func(txId, opKind string, op *steemauth.CustomJsonOperation) {
		if txId == "" {
			logger.Warn("transaction hook fired without a transaction id")
			return
		}
		t.Register(TransactionStatus{
			Id:        txId,
			SteemTxId: txId,
			Status:    StatusPending,
			Timestamp: common.NowMs(),
			Type:      steemauth.InferType(opKind, op),
		})
	})
}

// OnStatusChange attaches a listener invoked on every subsequent status
// mutation for the id. Returns the detach capability.
func (t *Tracker) OnStatusChange(id string, l StatusListener) func() {
	e := &listenerEntry{l: l}
	t.mu.Lock()
	t.listeners[id] = append(t.listeners[id], e)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		list := t.listeners[id]
		for i, cur := range list {
			if cur == e {
				t.listeners[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
		if len(t.listeners[id]) == 0 {
			delete(t.listeners, id)
		}
	}
}

// WaitForCompletion blocks until the transaction reaches COMPLETED (nil
// error), a terminal failure, the timeout, or context cancellation. The
// current registry state is checked before listening, so a terminal event
// that arrived earlier is not lost.
func (t *Tracker) WaitForCompletion(ctx context.Context, id string, timeout time.Duration) (*TransactionStatus, error) {
	if timeout <= 0 {
		timeout = t.cfg.WaitTimeout
	}

	ch := make(chan TransactionStatus, 1)
	detach := t.OnStatusChange(id, func(st TransactionStatus) {
		if st.Status.Terminal() {
			select {
			case ch <- st:
			default:
			}
		}
	})
	defer detach()

	if st, ok := t.reg.Get(id); ok && st.Status.Terminal() {
		return resolveTerminal(st)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case st := <-ch:
		return resolveTerminal(st)
	case <-timer.C:
		return nil, fmt.Errorf("%w: transaction %s after %v", ErrWaitTimeout, id, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func resolveTerminal(st TransactionStatus) (*TransactionStatus, error) {
	if st.Status == StatusCompleted {
		return &st, nil
	}
	reason := st.Error
	if reason == "" {
		reason = string(st.Status)
	}
	return &st, fmt.Errorf("%w: %s", ErrTransactionFailed, reason)
}

// Run consumes the event feed until the context ends. Events are
// reconciled strictly in arrival order.
func (t *Tracker) Run(ctx context.Context) error {
	logger.Info("starting transaction tracker")
	defer logger.Info("stopping transaction tracker")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-t.stream.Events():
			t.HandleEvent(ev)
		}
	}
}

// HandleEvent reconciles one inbound event against the registry.
// Unmatched events are already in the category log and are dropped here.
func (t *Tracker) HandleEvent(ev *streamsync.Event) {
	id := t.match(ev)
	if id == "" {
		logger.WithField("event", ev.Id).Debug("event matched no pending transaction")
		return
	}

	newStatus := Classify(ev)

	updated, ok := t.reg.apply(id, func(st *TransactionStatus) bool {
		// forward-only: terminal records are frozen and a lower-ranked
		// status never overwrites a higher one
		if st.Status.Terminal() || newStatus.rank() < st.Status.rank() {
			return false
		}
		st.Status = newStatus
		if ev.Id != "" {
			st.SidechainTxId = ev.Id
		}
		if ev.Data != nil {
			st.Result = ev.Data
		}
		if errText := ev.ErrorText(); errText != "" {
			st.Error = errText
		}
		if ms, ok := common.ParseEventTime(ev.Timestamp); ok {
			st.Timestamp = ms
		}
		return true
	})
	if !ok {
		logger.WithField("tx", id).WithField("status", string(newStatus)).
			Debug("dropping event that would move status backwards")
		return
	}

	t.afterUpdate(updated)
}

func (t *Tracker) match(ev *streamsync.Event) string {
	if tid := ev.TrackingId(); tid != "" {
		if _, ok := t.reg.Get(tid); ok {
			return tid
		}
	}
	// some producers echo the submission id back as the event id
	if ev.Id != "" {
		if _, ok := t.reg.Get(ev.Id); ok {
			return ev.Id
		}
	}
	return ""
}

func (t *Tracker) afterUpdate(st TransactionStatus) {
	t.updateToast(st)
	t.notifyListeners(st)

	if st.Status == StatusCompleted && t.bus != nil {
		t.bus.Trigger(st.Type)
	}

	if st.Status.Terminal() {
		if t.history != nil {
			if err := t.history.RecordTerminal(st); err != nil {
				logger.Errorf("failed to record transaction history: err=%v", err)
			}
		}
		t.scheduleEviction(st.Id)
	}
}

// Fixed progress mapping of the status machine onto the toast.
func (t *Tracker) updateToast(st TransactionStatus) {
	if t.toasts == nil {
		return
	}
	t.mu.Lock()
	toastId, ok := t.toastIds[st.Id]
	t.mu.Unlock()
	if !ok {
		return
	}

	patch := func(kind toast.Kind, progress float64, title, message string) {
		t.toasts.Update(toastId, toast.Patch{
			Kind:     &kind,
			Progress: &progress,
			Title:    &title,
			Message:  &message,
		})
	}

	switch st.Status {
	case StatusSteemConfirmed:
		patch(toast.Loading, 33, HumanizeType(st.Type), "Confirmed on Steem...")
	case StatusSidechainProcessing:
		patch(toast.Loading, 66, HumanizeType(st.Type), "Processing on sidechain...")
	case StatusCompleted:
		patch(toast.Success, 100, TitleFor(st.Type, st.Status), MessageFor(&st))
		t.toasts.RemoveAfter(toastId, t.cfg.SuccessToastAfter)
	case StatusValidationFailed:
		patch(toast.Warning, 100, TitleFor(st.Type, st.Status), MessageFor(&st))
		t.toasts.RemoveAfter(toastId, t.cfg.FailureToastAfter)
	case StatusFailed:
		patch(toast.Error, 100, TitleFor(st.Type, st.Status), MessageFor(&st))
		t.toasts.RemoveAfter(toastId, t.cfg.FailureToastAfter)
	}
}

func (t *Tracker) notifyListeners(st TransactionStatus) {
	t.mu.Lock()
	list := t.listeners[st.Id]
	snapshot := make([]*listenerEntry, len(list))
	copy(snapshot, list)
	t.mu.Unlock()

	for _, e := range snapshot {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("status listener panicked: %v", r)
				}
			}()
			e.l(st)
		}()
	}
}

// Terminal records linger for the grace period so late listeners can
// still observe them, then the entry and its listeners go away.
func (t *Tracker) scheduleEviction(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.evictions[id]; ok {
		return
	}
	t.evictions[id] = time.AfterFunc(t.cfg.EvictionGrace, func() {
		t.evict(id)
	})
}

func (t *Tracker) evict(id string) {
	t.reg.remove(id)
	t.mu.Lock()
	delete(t.listeners, id)
	delete(t.toastIds, id)
	delete(t.evictions, id)
	t.mu.Unlock()
	logger.WithField("tx", id).Debug("evicted terminal transaction")
}

// Handle is what Submit returns: the correlation identities plus the two
// ways to observe the outcome.
type Handle struct {
	t *Tracker
	// Tracking id embedded in the payload.
	Id string
	// Base chain transaction id returned by the signer.
	SteemTxId string
}

// OnStatusChange attaches a listener for this transaction.
func (h *Handle) OnStatusChange(l StatusListener) func() {
	return h.t.OnStatusChange(h.Id, l)
}

// Wait blocks for the terminal outcome. Zero timeout uses the configured
// default.
func (h *Handle) Wait(ctx context.Context, timeout time.Duration) (*TransactionStatus, error) {
	return h.t.WaitForCompletion(ctx, h.Id, timeout)
}
