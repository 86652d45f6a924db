package streamsync

// Event is the inbound frame pushed by the event backend. The data
// sub-object carries operation-specific fields and is kept loose.
type Event struct {
	Id        string                 `json:"_id"`
	Category  string                 `json:"category"`
	Action    string                 `json:"action"`
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp"`
	Actor     string                 `json:"actor"`
	Data      map[string]interface{} `json:"data"`
}

// TrackingId extracts the correlation key the submitter embedded in the
// payload. Empty when the event carries none.
func (e *Event) TrackingId() string {
	if e.Data == nil {
		return ""
	}
	if v, ok := e.Data["transactionId"].(string); ok && v != "" {
		return v
	}
	if v, ok := e.Data["_trackingId"].(string); ok && v != "" {
		return v
	}
	return ""
}

// ErrorText extracts the backend-supplied failure reason, if any.
func (e *Event) ErrorText() string {
	if e.Data == nil {
		return ""
	}
	if v, ok := e.Data["error"].(string); ok {
		return v
	}
	return ""
}

// Outbound control frames. Empty fields are omitted so a topic subscribe
// does not carry a txId and vice versa.
type subscribeFrame struct {
	Type  string `json:"type"`
	Topic string `json:"topic,omitempty"`
	TxId  string `json:"txId,omitempty"`
}

const (
	frameSubscribeTopic       = "SUBSCRIBE_TOPIC"
	frameSubscribeTransaction = "SUBSCRIBE_TRANSACTION"
)
