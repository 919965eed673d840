package sections

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

const (
	minWarmUpQuestions = 3
	maxWarmUpQuestions = 5
)

// yesNoStarters open closed questions, too shallow above A2.
var yesNoStarters = []string{
	"do you", "are you", "is it", "have you", "did you", "can you", "would you",
}

// ValidateWarmUp checks a warm-up section: three to five open,
// well-formed questions, ideally touching the lesson topic.
func ValidateWarmUp(w models.WarmUpSection, level models.CEFRLevel, ctx *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	n := len(w.Questions)
	metMinimum := n >= minWarmUpQuestions && n <= maxWarmUpQuestions
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"warm-up has %d questions, expected %d-%d", n, minWarmUpQuestions, maxWarmUpQuestions)))
	}

	malformed := 0
	for _, q := range w.Questions {
		q = strings.TrimSpace(q)
		if !strings.HasSuffix(q, "?") || len(q) < 10 {
			malformed++
		}
	}
	if malformed > 0 {
		issues = append(issues, structureError(fmt.Sprintf(
			"%d warm-up questions are too short or do not end with a question mark", malformed)))
	}

	if !level.IsBeginner() {
		closed := 0
		for _, q := range w.Questions {
			lower := strings.ToLower(strings.TrimSpace(q))
			for _, s := range yesNoStarters {
				if strings.HasPrefix(lower, s) {
					closed++
					break
				}
			}
		}
		if closed > 0 {
			issues = append(issues, levelWarning(fmt.Sprintf(
				"%d warm-up questions are yes/no questions; use open questions above A2", closed)))
		}
	}

	if ctx != nil && ctx.Topic != "" && len(w.Questions) > 0 {
		onTopic := false
		for _, q := range w.Questions {
			for _, word := range strings.Fields(strings.ToLower(ctx.Topic)) {
				if len(word) >= 4 && strings.Contains(strings.ToLower(q), word) {
					onTopic = true
					break
				}
			}
		}
		if !onTopic {
			issues = append(issues, levelWarning(
				"no warm-up question mentions the lesson topic"))
		}
	}

	return finish(issues, metMinimum)
}
