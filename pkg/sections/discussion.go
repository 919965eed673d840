package sections

import (
	"fmt"
	"strings"

	"github.com/lessonkit/lessonkit/models"
)

const discussionQuestionCount = 5

// analyticalMarkers indicate higher-order questions required at B2/C1.
var analyticalMarkers = []string{
	"why do you think", "to what extent", "how would", "what might",
	"compare", "analyze", "analyse", "evaluate", "justify", "what if",
	"imagine", "suppose",
}

// hypotheticalMarkers must not appear at A1/A2.
var hypotheticalMarkers = []string{
	"what if", "imagine", "suppose", "to what extent", "analyze",
	"analyse", "evaluate", "hypothetical",
}

// ValidateDiscussion checks a discussion section: exactly five
// questions, each well-formed, with level-appropriate complexity and
// varied question starters.
func ValidateDiscussion(d models.DiscussionSection, level models.CEFRLevel, _ *Context) models.ValidationResult {
	var issues []models.ValidationIssue

	metMinimum := len(d.Questions) == discussionQuestionCount
	if !metMinimum {
		issues = append(issues, countError(fmt.Sprintf(
			"discussion has %d questions, expected exactly %d", len(d.Questions), discussionQuestionCount)))
	}

	malformed := 0
	for _, q := range d.Questions {
		q = strings.TrimSpace(q)
		if !strings.HasSuffix(q, "?") || len(q) < 10 {
			malformed++
		}
	}
	if malformed > 0 {
		issues = append(issues, structureError(fmt.Sprintf(
			"%d questions are too short or do not end with a question mark", malformed)))
	}

	joined := strings.ToLower(strings.Join(d.Questions, "\n"))

	if level.IsAdvanced() {
		found := false
		for _, m := range analyticalMarkers {
			if strings.Contains(joined, m) {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, levelWarning(
				"no analytical question for an advanced level; add a why/extent/compare question"))
		}
	}

	if level.IsBeginner() {
		for _, m := range hypotheticalMarkers {
			if strings.Contains(joined, m) {
				issues = append(issues, models.ValidationIssue{
					Type:            models.IssueLowEducationalValue,
					Severity:        models.SeverityError,
					Message:         fmt.Sprintf("question uses %q, too abstract for level %s", m, level),
					SuggestedAction: "regenerate with concrete, personal questions",
					Recoverable:     true,
				})
				break
			}
		}
	}

	if starter, repeated := allSameStarter(d.Questions); repeated {
		issues = append(issues, models.ValidationIssue{
			Type:        models.IssuePoorStructure,
			Severity:    models.SeverityWarning,
			Message:     fmt.Sprintf("every question starts with %q; vary the question starters", starter),
			Recoverable: true,
		})
	}

	return finish(issues, metMinimum)
}

// allSameStarter reports whether all questions open with the same first
// word.
func allSameStarter(questions []string) (string, bool) {
	if len(questions) < 2 {
		return "", false
	}
	first := ""
	for i, q := range questions {
		fields := strings.Fields(strings.ToLower(q))
		if len(fields) == 0 {
			return "", false
		}
		if i == 0 {
			first = fields[0]
			continue
		}
		if fields[0] != first {
			return "", false
		}
	}
	return first, true
}
