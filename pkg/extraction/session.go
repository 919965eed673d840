package extraction

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lessonkit/lessonkit/models"
)

// Sessions manages extraction session lifecycles and retry budgets.
// State is keyed by session ID so unrelated sessions never contend.
type Sessions struct {
	opts models.Options

	mu       sync.Mutex
	sessions map[string]*models.ExtractionSession
	rng      *rand.Rand
	now      func() time.Time
}

// NewSessions returns a manager using the real clock and a
// time-seeded jitter source.
func NewSessions(opts models.Options) *Sessions {
	return NewSessionsWithDeps(opts, time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionsWithDeps injects the clock and jitter source so backoff
// and expiry are deterministic in tests.
func NewSessionsWithDeps(opts models.Options, now func() time.Time, rng *rand.Rand) *Sessions {
	return &Sessions{
		opts:     opts,
		sessions: make(map[string]*models.ExtractionSession),
		rng:      rng,
		now:      now,
	}
}

// Start creates a session in the started state.
func (s *Sessions) Start(sourceURL string) *models.ExtractionSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &models.ExtractionSession{
		SessionID: uuid.NewString(),
		SourceURL: sourceURL,
		Status:    models.SessionStarted,
		Metadata:  make(map[string]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.SessionID] = sess
	return sess
}

// Get returns a copy of the session, or false if unknown or purged.
func (s *Sessions) Get(sessionID string) (models.ExtractionSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return models.ExtractionSession{}, false
	}
	return *sess, true
}

// Transition moves the session forward through its lifecycle. The only
// backward edge is failed -> started, taken via retry and bounded by
// the retry budget.
func (s *Sessions) Transition(sessionID string, next models.SessionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("session %s not found", sessionID)
	}
	if !sess.Status.CanTransition(next) {
		return fmt.Errorf("illegal session transition %s -> %s", sess.Status, next)
	}
	if sess.Status == models.SessionFailed && next == models.SessionStarted &&
		sess.RetryCount >= s.opts.MaxRetryAttempts {
		return fmt.Errorf("session %s exhausted its %d retries", sessionID, s.opts.MaxRetryAttempts)
	}
	sess.Status = next
	sess.UpdatedAt = s.now()
	return nil
}

// CanRetryExtraction reports whether the session still has retry
// budget.
func (s *Sessions) CanRetryExtraction(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return ok && sess.RetryCount < s.opts.MaxRetryAttempts
}

// RecordRetryAttempt increments the session's retry counter.
func (s *Sessions) RecordRetryAttempt(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		sess.RetryCount++
		sess.UpdatedAt = s.now()
	}
}

// RetryDelay computes the next backoff for the session:
// min(maxDelay, base*2^attempt + uniform(0, 0.1*base*2^attempt)).
func (s *Sessions) RetryDelay(sessionID string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt := 0
	if sess, ok := s.sessions[sessionID]; ok {
		attempt = sess.RetryCount
	}
	return backoff(s.opts.RetryBaseDelay, s.opts.RetryMaxDelay, attempt, s.rng)
}

// backoff is the shared exponential-backoff-with-jitter formula.
func backoff(base, max time.Duration, attempt int, rng *rand.Rand) time.Duration {
	exp := base << uint(attempt)
	if exp <= 0 || exp > max {
		exp = max
	}
	jitter := time.Duration(rng.Float64() * 0.1 * float64(exp))
	delay := exp + jitter
	if delay > max {
		delay = max
	}
	return delay
}

// Sweep purges terminal sessions older than the retention window.
// Purging is sweep-driven, not proactive; callers run it periodically.
// Returns the number of sessions removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.opts.SessionRetention)
	removed := 0
	for id, sess := range s.sessions {
		if sess.Status.IsTerminal() && sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
