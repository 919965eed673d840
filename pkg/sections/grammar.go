package sections

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

const (
	minExplanationLen  = 10
	minGrammarExamples = 3
	minGrammarDrills   = 5
)

// ValidateGrammar checks a grammar section: substantive rule, form, and
// usage explanations, enough examples, and complete exercises.
func ValidateGrammar(g models.GrammarSection, _ models.CEFRLevel, _ *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	explanations := []struct {
		name  string
		value string
	}{
		{"rule", g.Rule},
		{"form", g.Form},
		{"usage", g.Usage},
	}
	for _, ex := range explanations {
		if len(strings.TrimSpace(ex.value)) < minExplanationLen {
			issues = append(issues, contentError(fmt.Sprintf(
				"grammar %s explanation is missing or too short", ex.name)))
		}
	}

	if len(g.Examples) < minGrammarExamples {
		issues = append(issues, countError(fmt.Sprintf(
			"grammar has %d examples, minimum is %d", len(g.Examples), minGrammarExamples)))
	}

	metMinimum := len(g.Exercises) >= minGrammarDrills
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"grammar has %d exercises, minimum is %d", len(g.Exercises), minGrammarDrills)))
	}

	incomplete := 0
	for _, ex := range g.Exercises {
		if strings.TrimSpace(ex.Prompt) == "" || strings.TrimSpace(ex.Answer) == "" {
			incomplete++
		}
	}
	if incomplete > 0 {
		issues = append(issues, contentError(fmt.Sprintf(
			"%d exercises are missing a prompt or an answer", incomplete)))
	}

	return finish(issues, metMinimum)
}
