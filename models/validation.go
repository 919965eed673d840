package models

// Severity of a validation issue. Any error-severity issue makes a
// result invalid; warnings only lower the score.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// IssueType is the closed taxonomy of validation issues. Section
// validators reuse the same taxonomy: count violations map to
// IssueCountError, malformed structure to IssuePoorStructure, empty or
// missing content to IssueInsufficientContent, and level-inappropriate
// content to IssueLowEducationalValue.
type IssueType string

const (
	IssueInsufficientContent IssueType = "insufficient_content"
	IssueUnsupportedLanguage IssueType = "unsupported_language"
	IssueLowReadability      IssueType = "low_readability"
	IssuePoorStructure       IssueType = "poor_structure"
	IssueTooMuchAdvertising  IssueType = "too_much_advertising"
	IssueLowEducationalValue IssueType = "low_educational_value"
	IssueSocialMediaContent  IssueType = "social_media_content"
	IssueNavigationOnly      IssueType = "navigation_only"
	IssueCountError          IssueType = "count_error"
)

// ValidationIssue is an immutable finding produced by a validator.
// Issues are never mutated after creation.
type ValidationIssue struct {
	Type            IssueType `json:"type"`
	Severity        Severity  `json:"severity"`
	Message         string    `json:"message"`
	SuggestedAction string    `json:"suggested_action,omitempty"`
	Recoverable     bool      `json:"recoverable"`
}

// ValidationResult is derived from content plus metadata and recomputed
// whenever either changes. It is never persisted.
type ValidationResult struct {
	IsValid             bool              `json:"is_valid"`
	MeetsMinimumQuality bool              `json:"meets_minimum_quality"`
	Issues              []ValidationIssue `json:"issues"`
	Warnings            []ValidationIssue `json:"warnings"`
	Recommendations     []string          `json:"recommendations,omitempty"`
	Score               float64           `json:"score"` // 0-100
}

// ErrorCount returns the number of error-severity issues.
func (r ValidationResult) ErrorCount() int {
	n := 0
	for _, iss := range r.Issues {
		if iss.Severity == SeverityError {
			n++
		}
	}
	return n
}

// AllWarnings reports whether every contributing issue has warning
// severity. Used by the retry policy: only all-warning results are
// worth retrying without changing the source.
func (r ValidationResult) AllWarnings() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityError {
			return false
		}
	}
	return true
}

// ContentMetadata accompanies extracted text into validation.
type ContentMetadata struct {
	SourceURL          string      `json:"source_url,omitempty"`
	Title              string      `json:"title,omitempty"`
	ContentType        ContentType `json:"content_type,omitempty"`
	Language           string      `json:"language,omitempty"`
	LanguageConfidence float64     `json:"language_confidence,omitempty"`
}

// ClampScore bounds a 0-100 score. Every scoring function clamps after
// weighted combination; no component may return a score outside range.
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ClampUnit bounds a 0-1 score.
func ClampUnit(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
