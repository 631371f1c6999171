package service

import "sync"

// SubmissionGuard is a single-slot in-flight lock per form session. It closes
// the window between a user's second submit and the first attempt resolving:
// acquisition is synchronous, so rapid duplicate attempts coalesce into one.
type SubmissionGuard struct {
	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewSubmissionGuard constructs the guard.
func NewSubmissionGuard() *SubmissionGuard {
	return &SubmissionGuard{inflight: make(map[string]struct{})}
}

// TryAcquire claims the session's slot. A false return means another attempt
// is in flight and the new one must be dropped without side effects.
func (g *SubmissionGuard) TryAcquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.inflight[sessionID]; held {
		return false
	}
	g.inflight[sessionID] = struct{}{}
	return true
}

// Release frees the slot. Always called via defer so a failed attempt cannot
// wedge the session.
func (g *SubmissionGuard) Release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inflight, sessionID)
}

// IsLocked reports whether a submission is currently in flight for the session.
func (g *SubmissionGuard) IsLocked(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.inflight[sessionID]
	return held
}
