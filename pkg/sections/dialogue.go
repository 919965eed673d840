package sections

import (
	"fmt"

	"github.com/lessonkit/lessonkit/models"
)

const minDialogueLines = 12

// lineWordBands is the per-line word-count band keyed by CEFR level.
var lineWordBands = map[models.CEFRLevel][2]int{
	models.LevelA1: {3, 8},
	models.LevelA2: {4, 10},
	models.LevelB1: {6, 15},
	models.LevelB2: {8, 20},
	models.LevelC1: {12, 25},
}

// ValidateDialogue checks a dialogue section: minimum line count,
// per-line word band for the level, lesson-vocabulary coverage, and
// speaker alternation.
func ValidateDialogue(d models.DialogueSection, level models.CEFRLevel, ctx *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	metMinimum := len(d.Lines) >= minDialogueLines
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"dialogue has %d lines, minimum is %d", len(d.Lines), minDialogueLines)))
	}

	band, hasBand := lineWordBands[level]
	outOfBand := 0
	for _, line := range d.Lines {
		wc := wordCount(line.Text)
		if hasBand && (wc < band[0] || wc > band[1]) {
			outOfBand++
		}
	}
	if outOfBand > 0 && len(d.Lines) > 0 {
		// Tolerate occasional outliers; flag when more than a quarter of
		// the lines miss the band.
		if outOfBand*4 > len(d.Lines) {
			issues = append(issues, levelWarning(fmt.Sprintf(
				"%d of %d lines fall outside the %d-%d word range for level %s",
				outOfBand, len(d.Lines), band[0], band[1], level)))
		}
	}

	if ctx != nil && len(ctx.VocabularyWords) > 0 {
		required := len(ctx.VocabularyWords)
		if required > 3 {
			required = 3
		}
		full := dialogueText(d)
		found := 0
		for _, w := range ctx.VocabularyWords {
			if containsWord(full, w) {
				found++
			}
		}
		if found < required {
			issues = append(issues, contentError(fmt.Sprintf(
				"dialogue uses %d of the required %d lesson vocabulary words", found, required)))
		}
	}

	consecutive := 0
	for i := 1; i < len(d.Lines); i++ {
		if d.Lines[i].Speaker != "" && d.Lines[i].Speaker == d.Lines[i-1].Speaker {
			consecutive++
		}
	}
	if consecutive > 0 {
		issues = append(issues, structureError(fmt.Sprintf(
			"%d consecutive lines share the same speaker", consecutive)))
	}

	return finish(issues, metMinimum)
}

func dialogueText(d models.DialogueSection) string {
	out := ""
	for _, line := range d.Lines {
		out += line.Text + "\n"
	}
	return out
}
