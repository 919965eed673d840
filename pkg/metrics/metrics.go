// Package metrics aggregates per-section generation outcomes into one
// lesson-level quality report.
package metrics

import (
	"sync"

	"github.com/lessonkit/lessonkit/models"
)

// Tracker collects SectionMetrics for one lesson-generation run. It is
// append-only while the run is in progress; the report is read after
// the run completes and sections never mutate past entries.
type Tracker struct {
	mu       sync.Mutex
	sections []models.SectionMetrics
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Record appends one section's outcome. Safe for concurrent use:
// sections generate in parallel but each records exactly once.
func (t *Tracker) Record(m models.SectionMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sections = append(t.sections, m)
}

// Report aggregates the run. OverallScore is the mean of section
// scores; an empty run reports zero.
func (t *Tracker) Report() models.LessonQualityMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	report := models.LessonQualityMetrics{
		Sections: append([]models.SectionMetrics(nil), t.sections...),
	}

	if len(t.sections) == 0 {
		return report
	}

	total := 0.0
	for _, s := range t.sections {
		total += s.Score
		report.TotalTimeMs += s.GenerationTimeMs
		if s.Regenerated {
			report.TotalRegenerations += s.AttemptCount - 1
		}
	}
	report.OverallScore = total / float64(len(t.sections))
	return report
}
