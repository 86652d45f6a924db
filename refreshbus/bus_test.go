package refreshbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeAndTrigger(t *testing.T) {
	b := New()
	calls := []string{}

	b.Subscribe("swap", func() error {
		calls = append(calls, "first")
		return nil
	})
	b.Subscribe("swap", func() error {
		calls = append(calls, "second")
		return nil
	})

	b.Trigger("swap")
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestTriggerIsolatesFailures(t *testing.T) {
	b := New()
	ran := 0

	b.Subscribe("swap", func() error {
		ran++
		return errors.New("boom")
	})
	b.Subscribe("swap", func() error {
		ran++
		panic("much worse")
	})
	b.Subscribe("swap", func() error {
		ran++
		return nil
	})

	// Must not panic and must run all three exactly once.
	assert.NotPanics(t, func() { b.Trigger("swap") })
	assert.Equal(t, 3, ran)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	called := false

	cancel := b.Subscribe("swap", func() error {
		called = true
		return nil
	})
	cancel()

	b.Trigger("swap")
	assert.False(t, called)
	assert.Equal(t, 0, b.Count("swap"))

	// double-cancel is harmless
	cancel()
}

func TestSubscribeMany(t *testing.T) {
	b := New()
	n := 0

	cancel := b.SubscribeMany([]string{"swap", "token_create", "nft_mint"}, func() error {
		n++
		return nil
	})

	b.Trigger("swap")
	b.Trigger("nft_mint")
	assert.Equal(t, 2, n)

	cancel()
	b.Trigger("swap")
	b.Trigger("token_create")
	b.Trigger("nft_mint")
	assert.Equal(t, 2, n)
}

func TestTriggerUnknownTypeIsNoop(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() { b.Trigger("never_registered") })
}
