package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type messageRepository struct {
	db *DB
}

func NewMessageRepository(db *DB) MessageRepository {
	return &messageRepository{db: db}
}

// UpsertMessage stores a fetched message, keyed by (source, guid), and
// returns the stored row. The returned row carries the fingerprint of the
// previous scan, which the caller passes back into the scanner to skip
// unchanged bodies.
func (r *messageRepository) UpsertMessage(sourceID string, msg NewMessage) (*Message, error) {
	var existingID string
	err := r.db.QueryRow(`
		SELECT id FROM messages WHERE source_id = ? AND guid = ?
	`, sourceID, msg.GUID).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		id := uuid.NewString()
		_, err = r.db.Exec(`
			INSERT INTO messages (id, source_id, guid, subject, body, published_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, id, sourceID, msg.GUID, msg.Subject, msg.Body, msg.PublishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert message: %w", err)
		}
		return r.GetMessage(id)
	case err != nil:
		return nil, fmt.Errorf("failed to check existing message: %w", err)
	}

	_, err = r.db.Exec(`
		UPDATE messages SET subject = ?, body = ?, published_at = ?
		WHERE id = ?
	`, msg.Subject, msg.Body, msg.PublishedAt, existingID)
	if err != nil {
		return nil, fmt.Errorf("failed to update message: %w", err)
	}

	return r.GetMessage(existingID)
}

// MarkScanned records the fingerprint of the body that was just scanned.
func (r *messageRepository) MarkScanned(messageID, fingerprint string) error {
	_, err := r.db.Exec(`
		UPDATE messages SET fingerprint = ?, scanned_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, fingerprint, messageID)
	if err != nil {
		return fmt.Errorf("failed to mark message scanned: %w", err)
	}
	return nil
}

func (r *messageRepository) GetMessage(id string) (*Message, error) {
	var m Message
	err := r.db.QueryRow(`
		SELECT id, source_id, guid, COALESCE(subject, ''), COALESCE(body, ''),
		       published_at, COALESCE(fingerprint, ''), scanned_at, created_at
		FROM messages
		WHERE id = ?
	`, id).Scan(&m.ID, &m.SourceID, &m.GUID, &m.Subject, &m.Body,
		&m.PublishedAt, &m.Fingerprint, &m.ScannedAt, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

// GetMessages returns the most recent messages of a source. A negative
// limit returns all of them.
func (r *messageRepository) GetMessages(sourceName string, limit int) ([]Message, error) {
	if limit == 0 {
		limit = -1
	}

	rows, err := r.db.Query(`
		SELECT m.id, m.source_id, m.guid, COALESCE(m.subject, ''), COALESCE(m.body, ''),
		       m.published_at, COALESCE(m.fingerprint, ''), m.scanned_at, m.created_at
		FROM messages m
		JOIN sources s ON s.id = m.source_id
		WHERE s.name = ?
		ORDER BY COALESCE(m.published_at, m.created_at) DESC
		LIMIT ?
	`, sourceName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		err := rows.Scan(&m.ID, &m.SourceID, &m.GUID, &m.Subject, &m.Body,
			&m.PublishedAt, &m.Fingerprint, &m.ScannedAt, &m.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

func (r *messageRepository) GetMessageCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get message count: %w", err)
	}
	return count, nil
}
