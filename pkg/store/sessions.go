package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lessonkit/lessonkit/models"
)

// SaveSession inserts or updates a session row.
func (s *Store) SaveSession(sess models.ExtractionSession) error {
	_, err := s.Exec(`
		INSERT INTO sessions (session_id, source_url, status, retry_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			status = excluded.status,
			retry_count = excluded.retry_count,
			updated_at = excluded.updated_at
	`, sess.SessionID, sess.SourceURL, string(sess.Status), sess.RetryCount, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession loads one session by ID.
func (s *Store) GetSession(sessionID string) (*models.ExtractionSession, error) {
	var sess models.ExtractionSession
	var status string
	err := s.QueryRow(`
		SELECT session_id, source_url, status, retry_count, created_at, updated_at
		FROM sessions WHERE session_id = ?
	`, sessionID).Scan(&sess.SessionID, &sess.SourceURL, &status, &sess.RetryCount, &sess.CreatedAt, &sess.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	sess.Status = models.SessionStatus(status)
	return &sess, nil
}

// ListSessions returns sessions newest first.
func (s *Store) ListSessions(limit int) ([]models.ExtractionSession, error) {
	query := `
		SELECT session_id, source_url, status, retry_count, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.ExtractionSession
	for rows.Next() {
		var sess models.ExtractionSession
		var status string
		if err := rows.Scan(&sess.SessionID, &sess.SourceURL, &status, &sess.RetryCount, &sess.CreatedAt, &sess.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sess.Status = models.SessionStatus(status)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// SessionEvent is one append-only log entry for a session.
type SessionEvent struct {
	EventID   int64
	SessionID string
	EventType string
	Detail    string
	CreatedAt time.Time
}

// AppendEvent logs one event and evicts the oldest entries once the
// global cap is exceeded.
func (s *Store) AppendEvent(sessionID, eventType, detail string, maxEvents int) error {
	_, err := s.Exec(`
		INSERT INTO session_events (session_id, event_type, detail, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, eventType, detail, time.Now())
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}

	if maxEvents > 0 {
		_, err = s.Exec(`
			DELETE FROM session_events WHERE event_id IN (
				SELECT event_id FROM session_events
				ORDER BY event_id ASC
				LIMIT max(0, (SELECT COUNT(*) FROM session_events) - ?)
			)
		`, maxEvents)
		if err != nil {
			return fmt.Errorf("failed to evict old events: %w", err)
		}
	}
	return nil
}

// ListEvents returns a session's events oldest first.
func (s *Store) ListEvents(sessionID string) ([]SessionEvent, error) {
	rows, err := s.Query(`
		SELECT event_id, session_id, event_type, COALESCE(detail, ''), created_at
		FROM session_events WHERE session_id = ? ORDER BY event_id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var ev SessionEvent
		if err := rows.Scan(&ev.EventID, &ev.SessionID, &ev.EventType, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountEvents returns the total number of retained events.
func (s *Store) CountEvents() (int, error) {
	var n int
	if err := s.QueryRow("SELECT COUNT(*) FROM session_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// SweepSessions purges terminal sessions not updated within the
// retention window, along with their events. Returns rows removed.
func (s *Store) SweepSessions(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := s.Exec(`
		DELETE FROM sessions
		WHERE status IN ('complete', 'failed') AND updated_at < ?
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep sessions: %w", err)
	}
	return res.RowsAffected()
}
