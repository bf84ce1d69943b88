package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"living-resume-be/internal/repository/memory"
	"living-resume-be/pkg/store"
)

func newManager() *Manager {
	return NewManager(memory.NewSessionRepository())
}

func TestGetOrCreateDefaults(t *testing.T) {
	m := newManager()

	sess := m.GetOrCreate("alpha")

	require.NotNil(t, sess)
	assert.Equal(t, "alpha", sess.ID)
	assert.Equal(t, store.DefaultTone, sess.Tone)
	assert.Equal(t, store.DefaultLanguage, sess.Language)
	assert.Empty(t, sess.History)
}

func TestGetOrCreateIdempotent(t *testing.T) {
	m := newManager()

	m.SetTone("alpha", "formal")
	sess := m.GetOrCreate("alpha")

	assert.Equal(t, "formal", sess.Tone, "second GetOrCreate must not reset state")
}

func TestSetToneAndLanguage(t *testing.T) {
	m := newManager()

	m.SetTone("alpha", "witty")
	m.SetLanguage("alpha", "French")

	sess, found := m.Snapshot("alpha")
	require.True(t, found)
	assert.Equal(t, "witty", sess.Tone)
	assert.Equal(t, "French", sess.Language)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := newManager()

	m.SetTone("alpha", "formal")
	m.AppendExchange("alpha", "hi", "hello")

	beta := m.GetOrCreate("beta")
	assert.Equal(t, store.DefaultTone, beta.Tone)
	assert.Empty(t, beta.History)
}

func TestAppendExchangeRecordsPair(t *testing.T) {
	m := newManager()

	m.AppendExchange("alpha", "what did you build?", "a few things")

	history := m.RecentHistory("alpha", 10)
	require.Len(t, history, 2)
	assert.Equal(t, store.SenderUser, history[0].Sender)
	assert.Equal(t, "what did you build?", history[0].Text)
	assert.Equal(t, store.SenderAssistant, history[1].Sender)
	assert.Equal(t, "a few things", history[1].Text)
}

func TestHistoryCappedAtMaxStoredTurns(t *testing.T) {
	m := newManager()

	for i := 0; i < 40; i++ {
		m.AppendExchange("alpha", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := m.RecentHistory("alpha", 100)
	require.Len(t, history, maxStoredTurns)
	// oldest surviving turn is the user half of exchange 25 (40 - 30/2)
	assert.Equal(t, "q25", history[0].Text)
	assert.Equal(t, "a39", history[len(history)-1].Text)
}

func TestRecentHistoryWindow(t *testing.T) {
	m := newManager()

	for i := 0; i < 5; i++ {
		m.AppendExchange("alpha", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := m.RecentHistory("alpha", 6)
	require.Len(t, history, 6)
	assert.Equal(t, "q2", history[0].Text)
	assert.Equal(t, "a4", history[5].Text)

	assert.Nil(t, m.RecentHistory("alpha", 0))
	assert.Nil(t, m.RecentHistory("missing", 6))
}

func TestRecentHistoryReturnsCopy(t *testing.T) {
	m := newManager()
	m.AppendExchange("alpha", "q", "a")

	history := m.RecentHistory("alpha", 10)
	history[0].Text = "mutated"

	again := m.RecentHistory("alpha", 10)
	assert.Equal(t, "q", again[0].Text)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	m := newManager()
	m.AppendExchange("alpha", "q", "a")

	snap, found := m.Snapshot("alpha")
	require.True(t, found)
	snap.History[0].Text = "mutated"
	snap.Tone = "mutated"

	again, _ := m.Snapshot("alpha")
	assert.Equal(t, "q", again.History[0].Text)
	assert.Equal(t, store.DefaultTone, again.Tone)

	_, found = m.Snapshot("missing")
	assert.False(t, found)
}

func TestConcurrentAppendsKeepPairsAdjacent(t *testing.T) {
	m := newManager()

	const writers = 8
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			m.AppendExchange("alpha", fmt.Sprintf("q%d", w), fmt.Sprintf("a%d", w))
		}(w)
	}
	wg.Wait()

	history := m.RecentHistory("alpha", 100)
	require.Len(t, history, writers*2)
	for i := 0; i < len(history); i += 2 {
		assert.Equal(t, store.SenderUser, history[i].Sender)
		assert.Equal(t, store.SenderAssistant, history[i+1].Sender)
		assert.Equal(t, history[i].Text[1:], history[i+1].Text[1:], "user and assistant halves must come from the same exchange")
	}
}
