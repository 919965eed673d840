package lesson

import (
	"encoding/json"
	"strings"

	"github.com/lessonkit/lessonkit/models"
	"github.com/lessonkit/lessonkit/pkg/sections"
)

// generationOrder is fixed: vocabulary precedes dialogue so dialogue
// validation can check vocabulary coverage.
var generationOrder = []models.SectionType{
	models.SectionWarmUp,
	models.SectionVocabulary,
	models.SectionDialogue,
	models.SectionDiscussion,
	models.SectionGrammar,
	models.SectionPronunciation,
}

// extractJSON trims any prose wrapping around the JSON object a model
// returned.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return text
	}
	return text[start : end+1]
}

func malformedResult() models.ValidationResult {
	return models.ValidationResult{
		IsValid: false,
		Issues: []models.ValidationIssue{{
			Type:     models.IssueCountError,
			Severity: models.SeverityError,
			Message:  "response is not valid section JSON",
		}},
		Score: 0,
	}
}

// validateFor returns the loop's validate callback for one section. It
// decodes the generated text and applies the section's validator.
func validateFor(section models.SectionType, level models.CEFRLevel, sctx *sections.Context) func(text string) models.ValidationResult {
	return func(text string) models.ValidationResult {
		raw := []byte(extractJSON(text))
		switch section {
		case models.SectionWarmUp:
			var s models.WarmUpSection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidateWarmUp(s, level, sctx)
		case models.SectionVocabulary:
			var s models.VocabularySection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidateVocabulary(s, level, sctx)
		case models.SectionDialogue:
			var s models.DialogueSection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidateDialogue(s, level, sctx)
		case models.SectionDiscussion:
			var s models.DiscussionSection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidateDiscussion(s, level, sctx)
		case models.SectionGrammar:
			var s models.GrammarSection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidateGrammar(s, level, sctx)
		case models.SectionPronunciation:
			var s models.PronunciationSection
			if err := json.Unmarshal(raw, &s); err != nil {
				return malformedResult()
			}
			return sections.ValidatePronunciation(s, level, sctx)
		}
		return malformedResult()
	}
}

// install decodes an accepted section's text into the lesson and, for
// vocabulary, feeds the taught terms into the shared context.
func install(lsn *models.Lesson, sctx *sections.Context, section models.SectionType, text string) error {
	raw := []byte(extractJSON(text))
	switch section {
	case models.SectionWarmUp:
		var s models.WarmUpSection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.WarmUp = &s
	case models.SectionVocabulary:
		var s models.VocabularySection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.Vocabulary = &s
		for _, item := range s.Items {
			sctx.VocabularyWords = append(sctx.VocabularyWords, item.Term)
		}
	case models.SectionDialogue:
		var s models.DialogueSection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.Dialogue = &s
	case models.SectionDiscussion:
		var s models.DiscussionSection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.Discussion = &s
	case models.SectionGrammar:
		var s models.GrammarSection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.Grammar = &s
	case models.SectionPronunciation:
		var s models.PronunciationSection
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		lsn.Pronunciation = &s
	}
	return nil
}
