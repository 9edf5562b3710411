package checkout

import (
	"sync"
	"time"

	"github.com/VictorChidex1/eventflow/internal/domain"
)

// Session is one purchase attempt walking through the checkout states.
// It lives in memory only; the sole durable artifact of a purchase is
// the tracker record written on verified success.
type Session struct {
	Reference        string
	State            domain.CheckoutState
	Request          domain.PaymentRequest
	AuthorizationURL string
	ErrorMessage     string
	Payment          domain.TrackedPayment
	UpdatedAt        time.Time
}

// settled is only read while holding the registry mutex.
func (s *Session) settled() bool {
	return s.State == domain.CheckoutVerifiedSuccess || s.State == domain.CheckoutVerifiedError
}

// Sessions holds live checkout attempts keyed by reference.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

func (ss *Sessions) Put(s *Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s.UpdatedAt = time.Now()
	ss.sessions[s.Reference] = s
}

// Update mutates a session under the registry mutex. All writes to a
// shared session go through here so they synchronize with Sweep reading
// states on its own goroutine.
func (ss *Sessions) Update(s *Session, fn func(*Session)) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	fn(s)
	s.UpdatedAt = time.Now()
	ss.sessions[s.Reference] = s
}

func (ss *Sessions) Get(reference string) (*Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[reference]
	return s, ok
}

func (ss *Sessions) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// Sweep drops sessions that settled or went idle longer than ttl.
// Returns how many were removed.
func (ss *Sessions) Sweep(ttl time.Duration) int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for ref, s := range ss.sessions {
		if s.settled() || s.UpdatedAt.Before(cutoff) {
			delete(ss.sessions, ref)
			removed++
		}
	}
	return removed
}
