package sections

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

const (
	minVocabularyItems = 5
	maxVocabularyItems = 12
	minDefinitionLen   = 10
)

// ValidateVocabulary checks a vocabulary section: a teachable number of
// items, each with a real definition and an example using the term.
func ValidateVocabulary(v models.VocabularySection, _ models.CEFRLevel, _ *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	n := len(v.Items)
	metMinimum := n >= minVocabularyItems && n <= maxVocabularyItems
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"vocabulary has %d items, expected %d-%d", n, minVocabularyItems, maxVocabularyItems)))
	}

	missingDefinition := 0
	exampleMismatch := 0
	for _, item := range v.Items {
		if strings.TrimSpace(item.Term) == "" || len(strings.TrimSpace(item.Definition)) < minDefinitionLen {
			missingDefinition++
		}
		if strings.TrimSpace(item.Example) == "" || !containsWord(item.Example, item.Term) {
			exampleMismatch++
		}
	}
	if missingDefinition > 0 {
		issues = append(issues, contentError(fmt.Sprintf(
			"%d items are missing a term or a usable definition", missingDefinition)))
	}
	if exampleMismatch > 0 {
		issues = append(issues, structureError(fmt.Sprintf(
			"%d items have an example that does not use the term", exampleMismatch)))
	}

	return finish(issues, metMinimum)
}
