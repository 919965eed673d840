package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lessonkit/lessonkit/models"
)

// StoredLesson is a persisted lesson row plus its decoded body.
type StoredLesson struct {
	LessonID     int64
	Lesson       models.Lesson
	OverallScore float64
	CreatedAt    time.Time
}

// SaveLesson stores a finished, validated lesson. The section content
// is stored as one JSON document; queryable fields get columns.
func (s *Store) SaveLesson(lesson models.Lesson, overallScore float64) (int64, error) {
	body, err := json.Marshal(lesson)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal lesson: %w", err)
	}

	res, err := s.Exec(`
		INSERT INTO lessons (title, topic, level, language, source_url, overall_score, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, lesson.Title, lesson.Topic, string(lesson.Level), lesson.Language, lesson.SourceURL, overallScore, string(body))
	if err != nil {
		return 0, fmt.Errorf("failed to save lesson: %w", err)
	}
	return res.LastInsertId()
}

// GetLesson loads one lesson by ID.
func (s *Store) GetLesson(lessonID int64) (*StoredLesson, error) {
	var stored StoredLesson
	var body string
	err := s.QueryRow(`
		SELECT lesson_id, overall_score, body, created_at
		FROM lessons WHERE lesson_id = ?
	`, lessonID).Scan(&stored.LessonID, &stored.OverallScore, &body, &stored.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("lesson %d not found", lessonID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if err := json.Unmarshal([]byte(body), &stored.Lesson); err != nil {
		return nil, fmt.Errorf("failed to unmarshal lesson body: %w", err)
	}
	return &stored, nil
}

// ListLessons returns lesson summaries newest first.
func (s *Store) ListLessons(limit int) ([]StoredLesson, error) {
	query := `
		SELECT lesson_id, overall_score, body, created_at
		FROM lessons ORDER BY created_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var lessons []StoredLesson
	for rows.Next() {
		var stored StoredLesson
		var body string
		if err := rows.Scan(&stored.LessonID, &stored.OverallScore, &body, &stored.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		if err := json.Unmarshal([]byte(body), &stored.Lesson); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lesson body: %w", err)
		}
		lessons = append(lessons, stored)
	}
	return lessons, rows.Err()
}
