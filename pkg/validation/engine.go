// Package validation scores already-extracted text and metadata against
// minimum-quality rules, producing a typed issue list and a 0-100
// score. The computation is pure: same input, same output.
package validation

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

// Engine is the content validation engine. Construct once per
// configuration; Validate is safe for concurrent use.
type Engine struct {
	opts models.Options
	lang *languageChecker
}

// New builds an Engine. The language checker embeds a lingua detector
// restricted to the supported-language set.
func New(opts models.Options) *Engine {
	return &Engine{
		opts: opts,
		lang: newLanguageChecker(opts.SupportedLanguages),
	}
}

// Validate runs every metric group and collects issues exhaustively;
// it never short-circuits on the first issue, so the UI can present a
// complete picture.
func (e *Engine) Validate(text string, metadata *models.ContentMetadata) models.ValidationResult {
	text = strings.TrimSpace(text)

	var issues []models.ValidationIssue
	var recommendations []string

	stats := analyzeText(text)

	// Length group.
	if stats.WordCount < e.opts.MinWordCount {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueInsufficientContent,
			Severity:        models.SeverityError,
			Message:         fmt.Sprintf("content has %d words, minimum is %d", stats.WordCount, e.opts.MinWordCount),
			SuggestedAction: "select a longer article or add more text manually",
			Recoverable:     true,
		})
	} else if stats.WordCount < e.opts.MinWordCount*3/2 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueInsufficientContent,
			Severity:        models.SeverityWarning,
			Message:         fmt.Sprintf("content is short (%d words); lessons improve with more source material", stats.WordCount),
			SuggestedAction: "consider a longer source",
			Recoverable:     true,
		})
		recommendations = append(recommendations, "use a source above 300 words for richer vocabulary coverage")
	}

	// Language group. Missing language metadata fails closed.
	langIssues, langConfidence := e.lang.check(text, metadata)
	issues = append(issues, langIssues...)

	// Quality group.
	readabilityScore := readability(stats)
	if readabilityScore < 0.5 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueLowReadability,
			Severity:        models.SeverityWarning,
			Message:         fmt.Sprintf("average sentence length %.1f words is outside the readable range", stats.AvgWordsPerSentence),
			SuggestedAction: "prefer sources with moderate sentence length",
			Recoverable:     true,
		})
		recommendations = append(recommendations, "sources averaging 15-20 words per sentence validate best")
	}

	adRatio := advertisingTextRatio(text)
	if adRatio > e.opts.MaxAdvertisingRatio {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueTooMuchAdvertising,
			Severity:        models.SeverityError,
			Message:         fmt.Sprintf("%.0f%% of the content looks promotional", adRatio*100),
			SuggestedAction: "try a different source without embedded advertising",
			Recoverable:     false,
		})
	} else if adRatio > e.opts.MaxAdvertisingRatio/2 {
		issues = append(issues, models.ValidationIssue{
			Type:        models.IssueTooMuchAdvertising,
			Severity:    models.SeverityWarning,
			Message:     "content contains some promotional language",
			Recoverable: true,
		})
	}

	eduScore := educationalValue(text)
	if eduScore < 0.3 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueLowEducationalValue,
			Severity:        models.SeverityWarning,
			Message:         "content shows few educational signals",
			SuggestedAction: "prefer articles, tutorials, or encyclopedia entries",
			Recoverable:     true,
		})
	}

	// Structure group.
	structureScore, structIssues := e.checkStructure(text, stats)
	issues = append(issues, structIssues...)

	score := e.score(stats, issues, readabilityScore, structureScore, eduScore, langConfidence)

	result := models.ValidationResult{
		Issues:          issues,
		Recommendations: recommendations,
		Score:           score,
	}
	for _, iss := range issues {
		if iss.Severity == models.SeverityWarning {
			result.Warnings = append(result.Warnings, iss)
		}
	}
	result.IsValid = result.ErrorCount() == 0
	result.MeetsMinimumQuality = score >= e.opts.MinQualityScore
	return result
}

// score implements the scoring contract: start at 100 and subtract 30
// per error and 15 per warning; when no errors exist, instead multiply
// the base by four clamped factors (so no single weak metric can crater
// the score) and add a +10 bonus for generously long content. Always
// clamped to [0,100].
func (e *Engine) score(stats textStats, issues []models.ValidationIssue, readabilityScore, structureScore, eduScore, langConfidence float64) float64 {
	errors, warnings := 0, 0
	for _, iss := range issues {
		if iss.Severity == models.SeverityError {
			errors++
		} else {
			warnings++
		}
	}

	if errors > 0 {
		return models.ClampScore(100 - 30*float64(errors) - 15*float64(warnings))
	}

	score := 100.0
	score *= floor(readabilityScore, 0.7)
	score *= floor(structureScore, 0.7)
	score *= floor(eduScore, 0.6)
	score *= floor(langConfidence, 0.8)

	if stats.WordCount > e.opts.MinWordCount*2 {
		score += 10
	}
	return models.ClampScore(score)
}

// checkStructure inspects paragraph/sentence counts and runs the
// social-media and navigation pattern classifiers.
func (e *Engine) checkStructure(text string, stats textStats) (float64, []models.ValidationIssue) {
	var issues []models.ValidationIssue

	score := 1.0
	if stats.ParagraphCount < 2 {
		score -= 0.3
		issues = append(issues, models.ValidationIssue{
			Type:        models.IssuePoorStructure,
			Severity:    models.SeverityWarning,
			Message:     "content is a single block of text",
			Recoverable: true,
		})
	}
	if stats.SentenceCount < 3 {
		score -= 0.3
		issues = append(issues, models.ValidationIssue{
			Type:        models.IssuePoorStructure,
			Severity:    models.SeverityWarning,
			Message:     "content has too few sentences to structure a lesson",
			Recoverable: true,
		})
	}

	if socialSignalCount(text) >= 3 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueSocialMediaContent,
			Severity:        models.SeverityError,
			Message:         "content looks like a social media feed",
			SuggestedAction: "extract from the original article instead of a feed",
			Recoverable:     false,
		})
	}

	if navigationLineRatio(text) > 0.5 {
		issues = append(issues, models.ValidationIssue{
			Type:            models.IssueNavigationOnly,
			Severity:        models.SeverityError,
			Message:         "content is mostly navigation links",
			SuggestedAction: "select the article body manually",
			Recoverable:     false,
		})
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}

func floor(v, fl float64) float64 {
	if v < fl {
		return fl
	}
	if v > 1 {
		return 1
	}
	return v
}
