package extraction

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/errclass"
)

type fakeNow struct {
	t time.Time
}

func (f *fakeNow) Now() time.Time { return f.t }

func newTestSessions(t *testing.T) (*Sessions, *fakeNow) {
	t.Helper()
	clock := &fakeNow{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewSessionsWithDeps(models.DefaultOptions(), clock.Now, rand.New(rand.NewSource(1)))
	return s, clock
}

func TestSessions_Lifecycle(t *testing.T) {
	s, _ := newTestSessions(t)
	sess := s.Start("https://example.com/article")

	if sess.Status != models.SessionStarted {
		t.Fatalf("Status = %q, want %q", sess.Status, models.SessionStarted)
	}

	steps := []models.SessionStatus{
		models.SessionExtracting,
		models.SessionValidating,
		models.SessionComplete,
	}
	for _, next := range steps {
		if err := s.Transition(sess.SessionID, next); err != nil {
			t.Fatalf("Transition(%q) error = %v", next, err)
		}
	}

	got, ok := s.Get(sess.SessionID)
	if !ok {
		t.Fatal("Get() session not found")
	}
	if got.Status != models.SessionComplete {
		t.Errorf("Status = %q, want %q", got.Status, models.SessionComplete)
	}
}

func TestSessions_IllegalTransitions(t *testing.T) {
	s, _ := newTestSessions(t)
	sess := s.Start("https://example.com")

	tests := []models.SessionStatus{
		models.SessionValidating, // skips extracting
		models.SessionComplete,   // skips everything
		models.SessionStarted,    // no self loop
	}
	for _, next := range tests {
		if err := s.Transition(sess.SessionID, next); err == nil {
			t.Errorf("Transition(started -> %q) succeeded, want error", next)
		}
	}

	if err := s.Transition("missing", models.SessionExtracting); err == nil {
		t.Error("Transition() on unknown session succeeded, want error")
	}
}

func TestSessions_RetryEdgeAndBudget(t *testing.T) {
	s, _ := newTestSessions(t)
	sess := s.Start("https://example.com")

	fail := func() {
		t.Helper()
		if err := s.Transition(sess.SessionID, models.SessionExtracting); err != nil {
			t.Fatalf("Transition(extracting) error = %v", err)
		}
		if err := s.Transition(sess.SessionID, models.SessionFailed); err != nil {
			t.Fatalf("Transition(failed) error = %v", err)
		}
	}

	// Three failed attempts, each retried: the budget allows exactly
	// MaxRetryAttempts retries.
	fail()
	for i := 0; i < 3; i++ {
		if !s.CanRetryExtraction(sess.SessionID) {
			t.Fatalf("CanRetryExtraction() = false on retry %d, want true", i+1)
		}
		s.RecordRetryAttempt(sess.SessionID)
		if err := s.Transition(sess.SessionID, models.SessionStarted); err != nil {
			t.Fatalf("retry transition error = %v", err)
		}
		fail()
	}

	if s.CanRetryExtraction(sess.SessionID) {
		t.Error("CanRetryExtraction() = true after 3 retries, want false")
	}
	if err := s.Transition(sess.SessionID, models.SessionStarted); err == nil {
		t.Error("Transition(failed -> started) succeeded past the retry budget")
	}
}

func TestSessions_RetryDelayFormula(t *testing.T) {
	opts := models.DefaultOptions()

	for attempt := 0; attempt < 6; attempt++ {
		// Identical seeds give identical jitter for the formula check.
		rngA := rand.New(rand.NewSource(42))
		rngB := rand.New(rand.NewSource(42))

		got := backoff(opts.RetryBaseDelay, opts.RetryMaxDelay, attempt, rngA)

		exp := opts.RetryBaseDelay << uint(attempt)
		if exp > opts.RetryMaxDelay {
			exp = opts.RetryMaxDelay
		}
		want := exp + time.Duration(rngB.Float64()*0.1*float64(exp))
		if want > opts.RetryMaxDelay {
			want = opts.RetryMaxDelay
		}

		if got != want {
			t.Errorf("backoff(attempt=%d) = %v, want %v", attempt, got, want)
		}
		if got > opts.RetryMaxDelay {
			t.Errorf("backoff(attempt=%d) = %v exceeds max %v", attempt, got, opts.RetryMaxDelay)
		}
	}
}

func TestSessions_Sweep(t *testing.T) {
	s, clock := newTestSessions(t)

	done := s.Start("https://example.com/done")
	s.Transition(done.SessionID, models.SessionExtracting)
	s.Transition(done.SessionID, models.SessionValidating)
	s.Transition(done.SessionID, models.SessionComplete)

	active := s.Start("https://example.com/active")

	// Inside the retention window nothing is purged.
	if removed := s.Sweep(); removed != 0 {
		t.Errorf("Sweep() = %d, want 0", removed)
	}

	// Past retention only the terminal session is purged.
	clock.t = clock.t.Add(25 * time.Hour)
	if removed := s.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	if _, ok := s.Get(done.SessionID); ok {
		t.Error("terminal session survived the sweep")
	}
	if _, ok := s.Get(active.SessionID); !ok {
		t.Error("active session was purged")
	}
}

func TestHandleValidationError_Retryability(t *testing.T) {
	warningOnly := models.ValidationResult{
		Issues: []models.ValidationIssue{
			{Type: models.IssueLowReadability, Severity: models.SeverityWarning},
			{Type: models.IssueLowEducationalValue, Severity: models.SeverityWarning},
		},
	}
	got := HandleValidationError(warningOnly)
	if !got.Retryable {
		t.Error("Retryable = false for warning-only result, want true")
	}
	foundRetry := false
	for _, opt := range got.RecoveryOptions {
		if opt.Action == ActionRetry {
			foundRetry = true
		}
	}
	if !foundRetry {
		t.Error("warning-only result offers no retry option")
	}

	withError := models.ValidationResult{
		Issues: []models.ValidationIssue{
			{Type: models.IssueInsufficientContent, Severity: models.SeverityError},
			{Type: models.IssueLowReadability, Severity: models.SeverityWarning},
		},
	}
	got = HandleValidationError(withError)
	if got.Retryable {
		t.Error("Retryable = true with an error-severity issue, want false")
	}
	for _, opt := range got.RecoveryOptions {
		if opt.Action == ActionRetry {
			t.Error("non-retryable result offers a retry option")
		}
	}
}

func TestHandleValidationError_DedupesOptions(t *testing.T) {
	result := models.ValidationResult{
		Issues: []models.ValidationIssue{
			{Type: models.IssueInsufficientContent, Severity: models.SeverityError},
			{Type: models.IssueInsufficientContent, Severity: models.SeverityError},
		},
	}
	got := HandleValidationError(result)

	seen := make(map[string]int)
	for _, opt := range got.RecoveryOptions {
		seen[opt.Action+opt.Label]++
	}
	for key, n := range seen {
		if n > 1 {
			t.Errorf("recovery option %q appears %d times", key, n)
		}
	}
}

func TestHandleExtractionError(t *testing.T) {
	networkErr := errclass.Classify(errors.New("connection refused"), models.ErrorContext{})
	if networkErr.Kind != models.ErrNetwork {
		t.Fatalf("Kind = %q, want %q", networkErr.Kind, models.ErrNetwork)
	}

	got := HandleExtractionError(networkErr, true)
	if !got.Retryable {
		t.Error("Retryable = false for network error with budget, want true")
	}
	if got.RecoveryOptions[0].Action != ActionRetry || !got.RecoveryOptions[0].Primary {
		t.Errorf("first option = %+v, want primary retry", got.RecoveryOptions[0])
	}
	if got.ErrorID == "" {
		t.Error("ErrorID is empty")
	}

	// Exhausted budget removes the retry option.
	got = HandleExtractionError(networkErr, false)
	if got.Retryable {
		t.Error("Retryable = true with exhausted budget, want false")
	}
	for _, opt := range got.RecoveryOptions {
		if opt.Action == ActionRetry {
			t.Error("exhausted budget still offers a retry option")
		}
	}
	if !got.RecoveryOptions[0].Primary || got.RecoveryOptions[0].Action != ActionDifferentSource {
		t.Errorf("first option = %+v, want primary different_source", got.RecoveryOptions[0])
	}
}

func TestHandleExtractionError_BlockedNeverRetries(t *testing.T) {
	// Quota errors are normally retryable, but a permission block wins.
	blocked := errclass.Classify(errors.New("rate limit check: access denied"), models.ErrorContext{})
	if blocked.Kind != models.ErrQuotaExceeded {
		t.Fatalf("Kind = %q, want %q", blocked.Kind, models.ErrQuotaExceeded)
	}

	got := HandleExtractionError(blocked, true)
	if got.Retryable {
		t.Error("Retryable = true for blocked failure, want false")
	}
}
