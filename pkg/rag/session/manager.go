package session

import (
	"hash/fnv"
	"sync"

	"living-resume-be/internal/repository/memory"
	"living-resume-be/pkg/store"
)

// maxStoredTurns caps how much history a session keeps. The prompt only ever
// reads the most recent window, so older turns are dropped from storage too.
const maxStoredTurns = 30

// lockShards is the size of the striped lock table. Requests for the same
// session always hash to the same mutex, so read-modify-write cycles on one
// session are serialized while different sessions proceed in parallel.
const lockShards = 64

// Manager handles session state operations
type Manager struct {
	sessionRepo *memory.SessionRepository
	locks       [lockShards]sync.Mutex
}

// NewManager creates a new session manager
func NewManager(sessionRepo *memory.SessionRepository) *Manager {
	return &Manager{sessionRepo: sessionRepo}
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	return &m.locks[h.Sum32()%lockShards]
}

// GetOrCreate retrieves the session or creates it with defaults. Idempotent.
func (m *Manager) GetOrCreate(sessionID string) *store.Session {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return m.getOrCreateLocked(sessionID)
}

func (m *Manager) getOrCreateLocked(sessionID string) *store.Session {
	session, found := m.sessionRepo.Get(sessionID)
	if !found {
		session = store.NewSession(sessionID)
		m.sessionRepo.Save(session)
	}
	return session
}

// SetTone updates the session tone. Any non-empty string is accepted.
func (m *Manager) SetTone(sessionID, tone string) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := m.getOrCreateLocked(sessionID)
	session.Tone = tone
	m.sessionRepo.Save(session)
}

// SetLanguage updates the session language. Any non-empty string is accepted.
func (m *Manager) SetLanguage(sessionID, language string) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := m.getOrCreateLocked(sessionID)
	session.Language = language
	m.sessionRepo.Save(session)
}

// AppendExchange records a completed fallback exchange as a User turn
// followed by an Assistant turn. Appending the pair under one lock keeps
// history ordering aligned with arrival order.
func (m *Manager) AppendExchange(sessionID, userText, assistantText string) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := m.getOrCreateLocked(sessionID)
	session.History = append(session.History,
		store.Turn{Sender: store.SenderUser, Text: userText},
		store.Turn{Sender: store.SenderAssistant, Text: assistantText},
	)
	if overflow := len(session.History) - maxStoredTurns; overflow > 0 {
		session.History = session.History[overflow:]
	}
	m.sessionRepo.Save(session)
}

// RecentHistory returns the last n turns in chronological order, fewer if
// the history is shorter. The returned slice is a copy.
func (m *Manager) RecentHistory(sessionID string, n int) []store.Turn {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, found := m.sessionRepo.Get(sessionID)
	if !found || n <= 0 {
		return nil
	}

	history := session.History
	if len(history) > n {
		history = history[len(history)-n:]
	}

	out := make([]store.Turn, len(history))
	copy(out, history)
	return out
}

// Snapshot returns a copy of the current session state for inspection
// endpoints without exposing the live struct.
func (m *Manager) Snapshot(sessionID string) (store.Session, bool) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, found := m.sessionRepo.Get(sessionID)
	if !found {
		return store.Session{}, false
	}

	copied := *session
	copied.History = make([]store.Turn, len(session.History))
	copy(copied.History, session.History)
	return copied, true
}
