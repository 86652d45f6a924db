package toast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastConfig() *Config {
	return &Config{
		DefaultDuration: 50 * time.Millisecond,
		ErrorDuration:   80 * time.Millisecond,
		AnimationWindow: 200 * time.Millisecond,
		AnimationTick:   10 * time.Millisecond,
		MaxAutoProgress: 90,
		ExplorerTxUrl:   "https://explorer.meeray.com/tx/",
	}
}

func TestAddDefaultsAndAutoClose(t *testing.T) {
	s := NewStore(fastConfig())

	id := s.Success("Swap Completed", "done")
	got, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, Success, got.Kind)
	assert.Equal(t, 50*time.Millisecond, got.Duration)
	assert.False(t, got.Pinned)

	// auto-close fires after the default duration
	time.Sleep(120 * time.Millisecond)
	_, ok = s.Get(id)
	assert.False(t, ok)
}

func TestPinnedToastStays(t *testing.T) {
	s := NewStore(fastConfig())

	id := s.Loading("Processing", "")
	time.Sleep(120 * time.Millisecond)
	got, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, Loading, got.Kind)
	assert.True(t, got.ShowProgress)
}

func TestUpdateMergesFields(t *testing.T) {
	s := NewStore(fastConfig())
	id := s.Loading("Processing", "wait")

	kind := Success
	prog := 100.0
	msg := "all done"
	ok := s.Update(id, Patch{Kind: &kind, Progress: &prog, Message: &msg})
	assert.True(t, ok)

	got, _ := s.Get(id)
	assert.Equal(t, Success, got.Kind)
	assert.Equal(t, 100.0, got.Progress)
	assert.Equal(t, "all done", got.Message)
	assert.Equal(t, "Processing", got.Title) // untouched

	// update of an unknown id is a no-op
	assert.False(t, s.Update("nope", Patch{Kind: &kind}))
}

func TestRemoveAndClear(t *testing.T) {
	s := NewStore(fastConfig())
	a := s.Info("a", "")
	b := s.Info("b", "")

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Len(t, s.List(), 1)

	s.Clear()
	assert.Empty(t, s.List())
	_, ok := s.Get(b)
	assert.False(t, ok)
}

func TestListInsertionOrder(t *testing.T) {
	s := NewStore(fastConfig())
	s.Info("first", "")
	s.Info("second", "")
	s.Info("third", "")

	list := s.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "third", list[2].Title)
}

func TestTransactionAnimationCapped(t *testing.T) {
	s := NewStore(fastConfig())
	id := s.Transaction("Swapping tokens", "abc123")

	got, ok := s.Get(id)
	assert.True(t, ok)
	assert.NotNil(t, got.Link)
	assert.Equal(t, "https://explorer.meeray.com/tx/abc123", got.Link.Url)

	// Let the animation run well past its window. It must never cross the cap.
	time.Sleep(400 * time.Millisecond)
	got, ok = s.Get(id)
	assert.True(t, ok)
	assert.LessOrEqual(t, got.Progress, 90.0)
	assert.Greater(t, got.Progress, 0.0)
}

func TestAnimationNeverLowersRealProgress(t *testing.T) {
	s := NewStore(fastConfig())
	id := s.Transaction("Swapping tokens", "")

	// A real status update pushes progress past anything the animation
	// could have computed so far.
	prog := 100.0
	kind := Success
	s.Update(id, Patch{Progress: &prog, Kind: &kind})

	time.Sleep(100 * time.Millisecond)
	got, ok := s.Get(id)
	assert.True(t, ok)
	assert.Equal(t, 100.0, got.Progress)
}

func TestRemoveAfter(t *testing.T) {
	s := NewStore(fastConfig())
	id := s.Loading("pinned", "")

	s.RemoveAfter(id, 40*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	_, ok := s.Get(id)
	assert.False(t, ok)

	// scheduling on an unknown id does nothing
	s.RemoveAfter("nope", 10*time.Millisecond)
}
