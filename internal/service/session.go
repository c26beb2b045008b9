package service

import (
	"context"
	"sync"

	"github.com/skycast/backend/internal/domain"
)

// Session owns the display state of one client: the last result or the
// last error, never both. Each search takes a ticket from a monotonically
// increasing sequence and only the latest ticket may commit, so a slow
// response to an older search cannot overwrite a newer one.
type Session struct {
	searcher Searcher

	mu     sync.Mutex
	seq    uint64
	result *domain.SearchResult
	err    *domain.SearchError
}

// NewSession creates a new session backed by the searcher
func NewSession(searcher Searcher) *Session {
	return &Session{searcher: searcher}
}

// Begin starts a search: it clears the previous error and returns the ticket.
// The previous result stays visible until the search commits.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.err = nil
	return s.seq
}

// Commit applies a search outcome if seq is still the latest ticket.
// Success replaces the previous result; failure clears it and records the error.
func (s *Session) Commit(seq uint64, result domain.SearchResult, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}

	if err != nil {
		s.result = nil
		s.err = domain.NewSearchError(err)
		return true
	}

	stored := result.Clone()
	s.result = &stored
	s.err = nil
	return true
}

// Search runs a search through the session and returns the resulting state.
// applied is false when a newer search superseded this one.
func (s *Session) Search(ctx context.Context, city string) (state domain.SessionState, applied bool) {
	seq := s.Begin()
	result, err := s.searcher.Search(ctx, city)
	applied = s.Commit(seq, result, err)
	return s.Snapshot(), applied
}

// Snapshot returns a deep copy of the current state
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := domain.SessionState{Sequence: s.seq}
	if s.result != nil {
		r := s.result.Clone()
		state.Result = &r
	}
	if s.err != nil {
		e := *s.err
		state.Error = &e
	}
	return state
}

// Reset clears result and error. In-flight searches are invalidated.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.result = nil
	s.err = nil
}

// SessionRegistry keeps one in-memory Session per client id
type SessionRegistry struct {
	searcher Searcher

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry creates a new session registry
func NewSessionRegistry(searcher Searcher) *SessionRegistry {
	return &SessionRegistry{
		searcher: searcher,
		sessions: make(map[string]*Session),
	}
}

// Get returns the client's session, creating it on first use
func (r *SessionRegistry) Get(clientID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[clientID]
	if !ok {
		s = NewSession(r.searcher)
		r.sessions[clientID] = s
	}
	return s
}

// Lookup returns the client's session without creating one
func (r *SessionRegistry) Lookup(clientID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[clientID]
	return s, ok
}

// Delete drops the client's session
func (r *SessionRegistry) Delete(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, clientID)
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
