// Package errclass maps raw failures from the AI/network boundary to a
// closed taxonomy. Classification happens once per failed call; the
// resulting kind is carried as structured data and never re-parsed from
// message strings downstream.
package errclass

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lessonkit/lessonkit/models"
)

// StatusCarrier is implemented by boundary errors that know their HTTP
// status. Status 0 means the request never reached the server.
type StatusCarrier interface {
	HTTPStatus() int
}

var quotaKeywords = []string{
	"rate limit", "quota", "too many requests", "limit exceeded", "overloaded",
}

var networkKeywords = []string{
	"connection refused", "no such host", "connection reset", "broken pipe",
	"i/o timeout", "timeout", "network", "unreachable", "bad gateway",
	"service unavailable", "gateway timeout", "eof",
}

var contentKeywords = []string{
	"content policy", "content blocked", "invalid prompt", "empty response",
	"unsupported content", "bad request", "context length",
	"permission denied", "access denied", "forbidden",
}

// IsBlocked reports whether the underlying failure is a permission or
// content block. Blocked failures are never auto-retried.
func IsBlocked(c *models.ClassifiedError) bool {
	if c == nil || c.OriginalError == nil {
		return false
	}
	msg := strings.ToLower(c.OriginalError.Error())
	blocked := []string{"permission denied", "access denied", "forbidden", "content blocked"}
	if matchesAny(msg, blocked) {
		return true
	}
	var sc StatusCarrier
	if errors.As(c.OriginalError, &sc) && sc.HTTPStatus() == 403 {
		return true
	}
	return false
}

// Classify assigns err one of the four error kinds, evaluated in fixed
// priority order: quota indicators, then network, then content, then
// UNKNOWN. A zero ctx.Timestamp is filled with the current time.
func Classify(err error, ctx models.ErrorContext) *models.ClassifiedError {
	if ctx.Timestamp.IsZero() {
		ctx.Timestamp = time.Now()
	}

	return &models.ClassifiedError{
		Kind:          kindOf(err),
		OriginalError: err,
		Context:       ctx,
		ErrorID:       newErrorID(ctx.Timestamp),
	}
}

func kindOf(err error) models.ErrorKind {
	status := 0
	statusKnown := false
	var sc StatusCarrier
	if errors.As(err, &sc) {
		status = sc.HTTPStatus()
		statusKnown = true
	}

	msg := ""
	if err != nil {
		msg = strings.ToLower(err.Error())
	}

	if status == 429 || matchesAny(msg, quotaKeywords) {
		return models.ErrQuotaExceeded
	}

	var netErr net.Error
	isNet := errors.As(err, &netErr)
	if (statusKnown && (status == 0 || status == 502 || status == 503 || status == 504)) ||
		isNet || matchesAny(msg, networkKeywords) {
		return models.ErrNetwork
	}

	if status == 400 || status == 403 || matchesAny(msg, contentKeywords) {
		return models.ErrContentIssue
	}

	return models.ErrUnknown
}

func matchesAny(msg string, keywords []string) bool {
	if msg == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

// newErrorID builds the human-shareable correlation ID,
// ERR_<timestamp-base36>_<random>. The same ID appears in the user and
// support messages for one classification.
func newErrorID(ts time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ERR_" + strconv.FormatInt(ts.UnixMilli(), 36) + "_" + random
}
