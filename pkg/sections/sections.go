// Package sections holds the structural and pedagogical checkers for
// AI-generated lesson sections. Every validator is a pure function
// sharing one additive scoring convention: start at 100, subtract 20
// per error and 10 per warning, add a +5 bonus for meeting the
// section's minimum count, clamp to [0,100].
package sections

import (
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

// DefaultMinScore is the acceptance threshold the regeneration loop
// applies when no configured threshold overrides it.
const DefaultMinScore = 60

const (
	errorPenalty   = 20
	warningPenalty = 10
	minimumBonus   = 5
)

// Context carries lesson-level facts a section validator may need.
type Context struct {
	VocabularyWords []string
	Topic           string
}

// finish assembles a ValidationResult from collected issues.
// metMinimum marks that the section's headline count requirement held.
func finish(issues []models.ValidationIssue, metMinimum bool) models.ValidationResult {
	errors, warnings := 0, 0
	var warnList []models.ValidationIssue
	for _, iss := range issues {
		if iss.Severity == models.SeverityError {
			errors++
		} else {
			warnings++
			warnList = append(warnList, iss)
		}
	}

	score := 100.0 - float64(errors*errorPenalty) - float64(warnings*warningPenalty)
	if metMinimum {
		score += minimumBonus
	}
	score = models.ClampScore(score)

	return models.ValidationResult{
		IsValid:             errors == 0,
		MeetsMinimumQuality: score >= DefaultMinScore,
		Issues:              issues,
		Warnings:            warnList,
		Score:               score,
	}
}

func countError(msg string) models.ValidationIssue {
	return models.ValidationIssue{
		Type:            models.IssueCountError,
		Severity:        models.SeverityError,
		Message:         msg,
		SuggestedAction: "regenerate the section",
		Recoverable:     true,
	}
}

func structureError(msg string) models.ValidationIssue {
	return models.ValidationIssue{
		Type:            models.IssuePoorStructure,
		Severity:        models.SeverityError,
		Message:         msg,
		SuggestedAction: "regenerate the section",
		Recoverable:     true,
	}
}

func contentError(msg string) models.ValidationIssue {
	return models.ValidationIssue{
		Type:            models.IssueInsufficientContent,
		Severity:        models.SeverityError,
		Message:         msg,
		SuggestedAction: "regenerate the section",
		Recoverable:     true,
	}
}

func levelWarning(msg string) models.ValidationIssue {
	return models.ValidationIssue{
		Type:        models.IssueLowEducationalValue,
		Severity:    models.SeverityWarning,
		Message:     msg,
		Recoverable: true,
	}
}

func wordCount(s string) int { return len(strings.Fields(s)) }

// containsWord reports whether text contains word as a case-folded
// substring match on word boundaries loose enough for inflections.
func containsWord(text, word string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(strings.TrimSpace(word)))
}
