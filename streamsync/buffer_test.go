package streamsync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventLogCategoryCap(t *testing.T) {
	l := NewEventLog(500, 100)

	for i := 0; i < 150; i++ {
		l.Record(&Event{Id: fmt.Sprintf("ev%d", i), Category: "nft", Action: "nft_mint"})
	}

	got := l.Category("nft")
	assert.Len(t, got, 100)
	// most recent first
	assert.Equal(t, "ev149", got[0].Id)
	assert.Equal(t, "ev50", got[99].Id)
}

func TestEventLogRawCap(t *testing.T) {
	l := NewEventLog(500, 100)

	for i := 0; i < 600; i++ {
		l.Record(&Event{Id: fmt.Sprintf("ev%d", i), Category: "transaction"})
	}

	raw := l.Raw()
	assert.Len(t, raw, 500)
	assert.Equal(t, "ev599", raw[0].Id)
	assert.Equal(t, "ev100", raw[499].Id)
}

func TestEventLogCategoriesIndependent(t *testing.T) {
	l := NewEventLog(500, 100)
	l.Record(&Event{Id: "a", Category: "nft"})
	l.Record(&Event{Id: "b", Category: "defi"})
	l.Record(&Event{Id: "c", Category: "nft"})
	l.Record(&Event{Id: "d"}) // no category, raw only

	assert.Len(t, l.Category("nft"), 2)
	assert.Len(t, l.Category("defi"), 1)
	assert.Empty(t, l.Category("market"))
	assert.Len(t, l.Raw(), 4)
	assert.ElementsMatch(t, []string{"nft", "defi"}, l.Categories())
}

func TestEventAccessors(t *testing.T) {
	ev := &Event{
		Id: "ev1",
		Data: map[string]interface{}{
			"transactionId": "tx1",
			"error":         "bad things",
		},
	}
	assert.Equal(t, "tx1", ev.TrackingId())
	assert.Equal(t, "bad things", ev.ErrorText())

	// legacy marker field
	ev2 := &Event{Data: map[string]interface{}{"_trackingId": "tx2"}}
	assert.Equal(t, "tx2", ev2.TrackingId())

	empty := &Event{}
	assert.Empty(t, empty.TrackingId())
	assert.Empty(t, empty.ErrorText())
}
