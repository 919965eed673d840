// Package extraction turns failed validations and classified errors
// into actionable recovery options, and owns per-session retry counting
// and backoff.
package extraction

import (
	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/errclass"
)

// RecoveryOption is one actionable step offered to the user. The first
// option with Primary set is the suggested default action.
type RecoveryOption struct {
	Action  string `json:"action"`
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

// Fixed recovery actions.
const (
	ActionRetry           = "retry"
	ActionManualSelection = "manual_selection"
	ActionDifferentSource = "different_source"
	ActionSetLanguage     = "set_language"
	ActionContactSupport  = "contact_support"
)

// ExtractionError is the structured failure handed to the UI. Never a
// raw exception message: every failure path is testable against this
// fixed shape.
type ExtractionError struct {
	Title           string           `json:"title"`
	Message         string           `json:"message"`
	RecoveryOptions []RecoveryOption `json:"recovery_options"`
	Retryable       bool             `json:"retryable"`
	ErrorID         string           `json:"error_id,omitempty"`
}

// recoveryTable is the authoritative UX contract mapping issue types to
// recovery options, in presentation order. Not free text.
var recoveryTable = map[models.IssueType][]RecoveryOption{
	models.IssueInsufficientContent: {
		{Action: ActionManualSelection, Label: "Select the article text manually", Primary: true},
		{Action: ActionDifferentSource, Label: "Try a longer article"},
	},
	models.IssueTooMuchAdvertising: {
		{Action: ActionDifferentSource, Label: "Try a source with less advertising", Primary: true},
		{Action: ActionManualSelection, Label: "Select only the article body"},
	},
	models.IssueUnsupportedLanguage: {
		{Action: ActionSetLanguage, Label: "Set the content language", Primary: true},
		{Action: ActionDifferentSource, Label: "Choose a source in a supported language"},
	},
	models.IssueNavigationOnly: {
		{Action: ActionManualSelection, Label: "Select the article body, not the page frame", Primary: true},
	},
	models.IssueSocialMediaContent: {
		{Action: ActionDifferentSource, Label: "Use the original article instead of a feed", Primary: true},
	},
	models.IssueLowReadability: {
		{Action: ActionDifferentSource, Label: "Try a source with simpler sentences", Primary: true},
	},
	models.IssuePoorStructure: {
		{Action: ActionManualSelection, Label: "Select well-structured paragraphs", Primary: true},
	},
	models.IssueLowEducationalValue: {
		{Action: ActionDifferentSource, Label: "Prefer articles, tutorials, or encyclopedia entries", Primary: true},
	},
	models.IssueCountError: {
		{Action: ActionRetry, Label: "Regenerate the section", Primary: true},
	},
}

// HandleValidationError converts a failed validation into an
// ExtractionError. A validation failure is retryable only when every
// contributing issue is a warning: a single error-severity issue is
// structural, and retrying without changing the source would reproduce
// it.
func HandleValidationError(result models.ValidationResult) ExtractionError {
	retryable := result.AllWarnings()

	var options []RecoveryOption
	seen := make(map[string]bool)
	for _, iss := range result.Issues {
		for _, opt := range recoveryTable[iss.Type] {
			if !seen[opt.Action+opt.Label] {
				seen[opt.Action+opt.Label] = true
				options = append(options, opt)
			}
		}
	}
	if retryable {
		options = append(options, RecoveryOption{Action: ActionRetry, Label: "Try extracting again"})
	}

	return ExtractionError{
		Title:           "Content did not pass validation",
		Message:         "The extracted content is not suitable for lesson generation yet.",
		RecoveryOptions: options,
		Retryable:       retryable,
	}
}

// HandleExtractionError converts a classified extraction failure into
// an ExtractionError. Permission-denied and content-blocked failures
// are never retryable; canRetry additionally reflects the session's
// retry budget.
func HandleExtractionError(classified *models.ClassifiedError, canRetry bool) ExtractionError {
	user := errclass.UserMessage(classified)

	retryable := user.Retryable && canRetry && !errclass.IsBlocked(classified)

	var options []RecoveryOption
	if retryable {
		options = append(options, RecoveryOption{Action: ActionRetry, Label: "Try again", Primary: true})
	}
	options = append(options,
		RecoveryOption{Action: ActionDifferentSource, Label: "Try a different source", Primary: !retryable},
		RecoveryOption{Action: ActionContactSupport, Label: "Contact support (error " + user.ErrorID + ")"},
	)

	return ExtractionError{
		Title:           user.Title,
		Message:         user.Message,
		RecoveryOptions: options,
		Retryable:       retryable,
		ErrorID:         user.ErrorID,
	}
}
