package lesson

import (
	"fmt"

	"github.com/lessonkit/lessonkit/models"
)

// promptTemplates describe the JSON shape each section generation must
// return. The generation loop re-sends the same prompt on regeneration;
// variation comes from sampling temperature, not prompt mutation.
var promptTemplates = map[models.SectionType]string{
	models.SectionWarmUp: `Write warm-up questions for a %s lesson about "%s" in %s.
Return JSON only: {"questions": ["..."]} with 3 to 5 open-ended questions.`,

	models.SectionVocabulary: `Select vocabulary for a %s lesson about "%s" in %s.
Return JSON only: {"items": [{"term": "...", "definition": "...", "example": "..."}]}
with 5 to 12 items. Each definition must be at least 10 characters and
each example sentence must use its term.`,

	models.SectionDialogue: `Write a two-speaker dialogue for a %s lesson about "%s" in %s.
Return JSON only: {"lines": [{"speaker": "...", "text": "..."}]} with at
least 12 lines, alternating speakers.`,

	models.SectionDiscussion: `Write discussion questions for a %s lesson about "%s" in %s.
Return JSON only: {"questions": ["..."]} with exactly 5 questions, each
ending in a question mark.`,

	models.SectionGrammar: `Write a grammar focus for a %s lesson about "%s" in %s.
Return JSON only: {"rule": "...", "form": "...", "usage": "...",
"examples": ["..."], "exercises": [{"prompt": "...", "answer": "..."}]}
with at least 3 examples and 5 exercises.`,

	models.SectionPronunciation: `Write pronunciation practice for a %s lesson about "%s" in %s.
Return JSON only: {"words": [{"word": "...", "ipa": "...", "tips": "...",
"practice_sentence": "..."}], "tongue_twisters": [{"text": "...",
"target_sounds": ["..."]}]} with at least 5 words and 2 tongue twisters.`,
}

func buildPrompt(section models.SectionType, topic string, level models.CEFRLevel, language string) string {
	return fmt.Sprintf(promptTemplates[section], level, topic, language)
}
