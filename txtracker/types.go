package txtracker

// Lifecycle of one submitted operation. The base chain leg confirms
// first, then the sidechain processor picks it up and concludes.
type Status string

const (
	StatusPending             Status = "PENDING"
	StatusSteemConfirmed      Status = "STEEM_CONFIRMED"
	StatusSidechainProcessing Status = "SIDECHAIN_PROCESSING"
	StatusCompleted           Status = "COMPLETED"
	StatusFailed              Status = "FAILED"
	StatusValidationFailed    Status = "VALIDATION_FAILED"
)

// Terminal reports whether no further transition can occur.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusValidationFailed:
		return true
	}
	return false
}

// rank orders the forward-only state machine. Intermediate states may be
// skipped but a record never moves to a lower rank.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusSteemConfirmed:
		return 1
	case StatusSidechainProcessing:
		return 2
	default:
		return 3
	}
}

// TransactionStatus is the registry record of one in-flight or recently
// terminal operation.
type TransactionStatus struct {
	// Tracking identity, unique per submitted operation.
	Id string `json:"id"`
	// Base chain transaction id, known at submission time.
	SteemTxId string `json:"steemTxId,omitempty"`
	// Sidechain event id, populated as confirmations arrive.
	SidechainTxId string `json:"sidechainTxId,omitempty"`

	Status Status `json:"status"`
	// Failure reason, present only in FAILED / VALIDATION_FAILED.
	Error string `json:"error,omitempty"`
	// Opaque payload of the concluding event, echoed to the UI.
	Result map[string]interface{} `json:"result,omitempty"`

	// Creation time or event-supplied time, unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Operation category, eg. "swap", "nft_mint". Routes refresh
	// callbacks and titles.
	Type string `json:"type"`
}

// StatusListener observes every status mutation of one tracking id.
type StatusListener func(TransactionStatus)
