package models

import "time"

// ErrorKind is the closed taxonomy for failures at the AI/network
// boundary. Classification happens once, at the boundary; the kind is
// carried as structured data and never re-parsed from message strings.
type ErrorKind string

const (
	ErrQuotaExceeded ErrorKind = "QUOTA_EXCEEDED"
	ErrContentIssue  ErrorKind = "CONTENT_ISSUE"
	ErrNetwork       ErrorKind = "NETWORK_ERROR"
	ErrUnknown       ErrorKind = "UNKNOWN"
)

// ErrorContext carries request-scoped detail into a classification.
type ErrorContext struct {
	UserID        string    `json:"user_id,omitempty"`
	ContentLength int       `json:"content_length,omitempty"`
	LessonType    string    `json:"lesson_type,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	RequestID     string    `json:"request_id,omitempty"`
	APIEndpoint   string    `json:"api_endpoint,omitempty"`
}

// ClassifiedError is one classification of one failed external call.
// ErrorID is globally unique and appears identically in the user-facing
// and support-facing messages so a support ticket can be correlated to
// internal logs.
type ClassifiedError struct {
	Kind          ErrorKind    `json:"kind"`
	OriginalError error        `json:"-"`
	Context       ErrorContext `json:"context"`
	ErrorID       string       `json:"error_id"`
}

func (e *ClassifiedError) Error() string {
	if e.OriginalError != nil {
		return string(e.Kind) + ": " + e.OriginalError.Error()
	}
	return string(e.Kind)
}

func (e *ClassifiedError) Unwrap() error { return e.OriginalError }

// UserErrorMessage is the structured, fixed-wording failure surface
// shown to end users. Steps are ordered: step one is the most likely
// fix. The UI depends on exact titles and step order.
type UserErrorMessage struct {
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Steps     []string `json:"steps"`
	Retryable bool     `json:"retryable"`
	ErrorID   string   `json:"error_id"`
}

// SupportErrorMessage is the internal counterpart, carrying the same
// ErrorID plus diagnostic context.
type SupportErrorMessage struct {
	ErrorID     string       `json:"error_id"`
	Kind        ErrorKind    `json:"kind"`
	Detail      string       `json:"detail"`
	Context     ErrorContext `json:"context"`
	ReportedAt  time.Time    `json:"reported_at"`
}
