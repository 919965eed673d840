package models

// SectionMetrics records one section's generation outcome. Created fresh
// per lesson-generation run and frozen once the run completes.
type SectionMetrics struct {
	Section          SectionType `json:"section"`
	Score            float64     `json:"score"`
	AttemptCount     int         `json:"attempt_count"`
	GenerationTimeMs int64       `json:"generation_time_ms"`
	IssueCount       int         `json:"issue_count"`
	WarningCount     int         `json:"warning_count"`
	Regenerated      bool        `json:"regenerated"`
}

// LessonQualityMetrics is the one lesson-level aggregate.
type LessonQualityMetrics struct {
	OverallScore       float64          `json:"overall_score"` // mean of section scores
	TotalRegenerations int              `json:"total_regenerations"`
	TotalTimeMs        int64            `json:"total_time_ms"`
	Sections           []SectionMetrics `json:"sections"`
}
