package service

import "sync"

// UsageRecorder counts fallback exchanges per session. Purely in-memory;
// restarting the process resets the counters like everything else here.
type UsageRecorder struct {
	mu         sync.Mutex
	perSession map[string]int
	total      int
}

func NewUsageRecorder() *UsageRecorder {
	return &UsageRecorder{
		perSession: make(map[string]int),
	}
}

func (r *UsageRecorder) Record(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.perSession[sessionID]++
	r.total++
}

// Snapshot returns the current totals as copies.
func (r *UsageRecorder) Snapshot() (int, map[string]int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]int, len(r.perSession))
	for k, v := range r.perSession {
		out[k] = v
	}
	return r.total, out
}
