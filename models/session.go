package models

import "time"

// SessionStatus is the extraction session lifecycle state. Transitions
// run strictly forward except failed -> started via a bounded retry.
type SessionStatus string

const (
	SessionStarted    SessionStatus = "started"
	SessionExtracting SessionStatus = "extracting"
	SessionValidating SessionStatus = "validating"
	SessionComplete   SessionStatus = "complete"
	SessionFailed     SessionStatus = "failed"
)

// IsTerminal reports whether the session can no longer progress; only
// terminal sessions are eligible for retention expiry and purge.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionComplete || s == SessionFailed
}

// CanTransition reports whether moving from s to next is a legal
// lifecycle step. failed -> started is the retry edge; its retry-count
// bound is enforced by the session manager, not here.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	switch s {
	case SessionStarted:
		return next == SessionExtracting || next == SessionFailed
	case SessionExtracting:
		return next == SessionValidating || next == SessionFailed
	case SessionValidating:
		return next == SessionComplete || next == SessionFailed
	case SessionFailed:
		return next == SessionStarted
	}
	return false
}

// ExtractionSession tracks one user-initiated extraction. Session-scoped
// only: never persisted beyond the authoring session's retention window.
type ExtractionSession struct {
	SessionID  string            `json:"session_id"`
	SourceURL  string            `json:"source_url"`
	Status     SessionStatus     `json:"status"`
	RetryCount int               `json:"retry_count"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
