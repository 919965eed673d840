package sections

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

const (
	minPronunciationWords = 5
	minTongueTwisters     = 2
	minTwisterLen         = 15
)

// ValidatePronunciation checks a pronunciation section: enough complete
// word entries and usable tongue-twisters.
func ValidatePronunciation(p models.PronunciationSection, _ models.CEFRLevel, _ *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	metMinimum := len(p.Words) >= minPronunciationWords
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"pronunciation has %d words, minimum is %d", len(p.Words), minPronunciationWords)))
	}

	incomplete := 0
	for _, w := range p.Words {
		if strings.TrimSpace(w.Word) == "" || strings.TrimSpace(w.IPA) == "" ||
			strings.TrimSpace(w.Tips) == "" || strings.TrimSpace(w.PracticeSentence) == "" {
			incomplete++
		}
	}
	if incomplete > 0 {
		issues = append(issues, contentError(fmt.Sprintf(
			"%d word entries are missing IPA, tips, or a practice sentence", incomplete)))
	}

	if len(p.TongueTwisters) < minTongueTwisters {
		issues = append(issues, countError(fmt.Sprintf(
			"pronunciation has %d tongue-twisters, minimum is %d", len(p.TongueTwisters), minTongueTwisters)))
	}

	badTwisters := 0
	for _, t := range p.TongueTwisters {
		if len(strings.TrimSpace(t.Text)) < minTwisterLen || len(t.TargetSounds) == 0 {
			badTwisters++
		}
	}
	if badTwisters > 0 {
		issues = append(issues, structureError(fmt.Sprintf(
			"%d tongue-twisters are too short or missing a target-sound tag", badTwisters)))
	}

	return finish(issues, metMinimum)
}
