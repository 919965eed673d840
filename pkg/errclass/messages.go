package errclass

import (
	"time"

	"github.com/lessonkit/lessonkit/models"
)

// messageTemplate fixes the user-facing wording per error kind. This
// table is a UI contract: titles, messages, and step order must not
// change silently. Step one is the most likely fix.
type messageTemplate struct {
	Title     string
	Message   string
	Steps     []string
	Retryable bool
}

var messageTable = map[models.ErrorKind]messageTemplate{
	models.ErrQuotaExceeded: {
		Title:   "Generation limit reached",
		Message: "The lesson generator is temporarily rate-limited.",
		Steps: []string{
			"Wait a minute and try again",
			"Generate fewer sections at once",
			"Contact support if the limit persists",
		},
		Retryable: true,
	},
	models.ErrNetwork: {
		Title:   "Connection problem",
		Message: "We could not reach the lesson generation service.",
		Steps: []string{
			"Check your internet connection",
			"Try again in a few seconds",
			"Contact support if the problem continues",
		},
		Retryable: true,
	},
	models.ErrContentIssue: {
		Title:   "Content could not be processed",
		Message: "The selected content was rejected by the lesson generator.",
		Steps: []string{
			"Select a different part of the page",
			"Try a different source article",
			"Contact support with the error ID below",
		},
		Retryable: false,
	},
	models.ErrUnknown: {
		Title:   "Something went wrong",
		Message: "An unexpected error occurred while building the lesson.",
		Steps: []string{
			"Try again",
			"Reload the page and restart the lesson",
			"Contact support with the error ID below",
		},
		Retryable: false,
	},
}

// UserMessage renders the fixed, structured failure surface shown to
// the user. Never a raw exception message.
func UserMessage(c *models.ClassifiedError) models.UserErrorMessage {
	tpl := messageTable[c.Kind]
	steps := make([]string, len(tpl.Steps))
	copy(steps, tpl.Steps)
	return models.UserErrorMessage{
		Title:     tpl.Title,
		Message:   tpl.Message,
		Steps:     steps,
		Retryable: tpl.Retryable,
		ErrorID:   c.ErrorID,
	}
}

// SupportMessage renders the internal counterpart carrying the same
// ErrorID plus the raw detail a support engineer needs.
func SupportMessage(c *models.ClassifiedError) models.SupportErrorMessage {
	detail := ""
	if c.OriginalError != nil {
		detail = c.OriginalError.Error()
	}
	return models.SupportErrorMessage{
		ErrorID:    c.ErrorID,
		Kind:       c.Kind,
		Detail:     detail,
		Context:    c.Context,
		ReportedAt: time.Now(),
	}
}
