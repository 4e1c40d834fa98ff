package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type eventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) EventRepository {
	return &eventRepository{db: db}
}

// InsertEvent stores a detected event. Events are unique per
// (message, dedup key); a repeated detection is a no-op. Returns whether
// a new row was written.
func (r *eventRepository) InsertEvent(messageID string, ev NewEvent) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO events (id, message_id, summary, description, location,
		                    start_at, end_at, timezone, dedup_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (message_id, dedup_key) DO NOTHING
	`, uuid.NewString(), messageID, ev.Summary, ev.Description, ev.Location,
		ev.StartAt, ev.EndAt, ev.TimeZone, ev.DedupKey)
	if err != nil {
		return false, fmt.Errorf("failed to insert event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}

	return affected > 0, nil
}

func (r *eventRepository) GetEvent(id string) (*Event, error) {
	row := r.db.QueryRow(eventSelect+` WHERE id = ?`, id)

	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return ev, nil
}

func (r *eventRepository) GetEvents(limit int) ([]Event, error) {
	if limit == 0 {
		limit = -1
	}

	rows, err := r.db.Query(eventSelect+`
		ORDER BY start_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) GetEventsByMessage(messageID string) ([]Event, error) {
	rows, err := r.db.Query(eventSelect+`
		WHERE message_id = ?
		ORDER BY start_at ASC
	`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events for message: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *eventRepository) GetEventStats() (total, pushed, failed int, err error) {
	err = r.db.QueryRow(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pushed' THEN 1 ELSE 0 END), 0) AS pushed,
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) AS failed
		FROM events
	`).Scan(&total, &pushed, &failed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to get event stats: %w", err)
	}
	return total, pushed, failed, nil
}

// UpdateEventPushStatus records the outcome of a calendar push attempt.
func (r *eventRepository) UpdateEventPushStatus(id, status, calendarLink, pushError string) error {
	_, err := r.db.Exec(`
		UPDATE events
		SET status = ?, calendar_link = ?, push_error = ?,
		    pushed_at = CASE WHEN ? = 'pushed' THEN CURRENT_TIMESTAMP ELSE pushed_at END
		WHERE id = ?
	`, status, calendarLink, pushError, status, id)
	if err != nil {
		return fmt.Errorf("failed to update event push status: %w", err)
	}
	return nil
}

// DeleteEventsForMessage clears a message's events ahead of a rescan.
func (r *eventRepository) DeleteEventsForMessage(messageID string) error {
	_, err := r.db.Exec(`DELETE FROM events WHERE message_id = ?`, messageID)
	if err != nil {
		return fmt.Errorf("failed to delete events for message: %w", err)
	}
	return nil
}

const eventSelect = `
	SELECT id, message_id, summary, COALESCE(description, ''), COALESCE(location, ''),
	       start_at, end_at, COALESCE(timezone, ''), dedup_key, status,
	       pushed_at, COALESCE(calendar_link, ''), COALESCE(push_error, ''), created_at
	FROM events`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var ev Event
	err := row.Scan(&ev.ID, &ev.MessageID, &ev.Summary, &ev.Description, &ev.Location,
		&ev.StartAt, &ev.EndAt, &ev.TimeZone, &ev.DedupKey, &ev.Status,
		&ev.PushedAt, &ev.CalendarLink, &ev.PushError, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func collectEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, *ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}
