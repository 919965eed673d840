package validation

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/lessonkit/lessonkit/models"
)

// linguaByISO maps the supported ISO-639-1 codes to lingua languages.
var linguaByISO = map[string]lingua.Language{
	"en": lingua.English,
	"es": lingua.Spanish,
	"fr": lingua.French,
	"de": lingua.German,
	"it": lingua.Italian,
	"pt": lingua.Portuguese,
	"nl": lingua.Dutch,
	"pl": lingua.Polish,
	"ru": lingua.Russian,
	"ja": lingua.Japanese,
	"ko": lingua.Korean,
	"zh": lingua.Chinese,
}

// languageChecker verifies content language metadata, falling back to
// free-text detection when the metadata carries no confidence of its
// own.
type languageChecker struct {
	supported []string
	detector  lingua.LanguageDetector
}

func newLanguageChecker(supported []string) *languageChecker {
	langs := make([]lingua.Language, 0, len(supported))
	for _, code := range supported {
		if l, ok := linguaByISO[code]; ok {
			langs = append(langs, l)
		}
	}
	return &languageChecker{
		supported: supported,
		detector:  lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
	}
}

// check returns the language issues plus the confidence used as a
// scoring factor. Missing language metadata is itself an error: the
// pipeline fails closed, not open.
func (c *languageChecker) check(text string, metadata *models.ContentMetadata) ([]models.ValidationIssue, float64) {
	if metadata == nil || strings.TrimSpace(metadata.Language) == "" {
		return []models.ValidationIssue{{
			Type:            models.IssueUnsupportedLanguage,
			Severity:        models.SeverityError,
			Message:         "content language is unknown",
			SuggestedAction: "set the content language before generating a lesson",
			Recoverable:     true,
		}}, 0
	}

	lang := strings.ToLower(strings.TrimSpace(metadata.Language))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}

	supported := false
	for _, s := range c.supported {
		if s == lang {
			supported = true
			break
		}
	}
	if !supported {
		return []models.ValidationIssue{{
			Type:            models.IssueUnsupportedLanguage,
			Severity:        models.SeverityError,
			Message:         fmt.Sprintf("language %q is not supported", metadata.Language),
			SuggestedAction: "choose a source in one of the supported languages",
			Recoverable:     false,
		}}, 0
	}

	var issues []models.ValidationIssue

	confidence := metadata.LanguageConfidence
	if confidence == 0 {
		// Metadata names a language but carries no confidence: verify
		// against the text itself.
		confidence = c.detector.ComputeLanguageConfidence(text, linguaByISO[lang])
		if detected, ok := c.detector.DetectLanguageOf(text); ok {
			iso := strings.ToLower(detected.IsoCode639_1().String())
			if iso != lang {
				issues = append(issues, models.ValidationIssue{
					Type:        models.IssueUnsupportedLanguage,
					Severity:    models.SeverityWarning,
					Message:     fmt.Sprintf("text reads as %q, metadata says %q", iso, lang),
					Recoverable: true,
				})
			}
		}
	}

	if confidence < 0.5 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueUnsupportedLanguage,
			Severity:        models.SeverityWarning,
			Message:         fmt.Sprintf("language confidence %.2f is low", confidence),
			SuggestedAction: "confirm the content language manually",
			Recoverable:     true,
		})
	}

	return issues, confidence
}
