package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type sourceRepository struct {
	db *DB
}

func NewSourceRepository(db *DB) SourceRepository {
	return &sourceRepository{db: db}
}

// UpsertSource inserts or updates a source registration and returns its
// database ID.
func (r *sourceRepository) UpsertSource(name, url string) (string, error) {
	existing, err := r.GetSource(name)
	if err != nil {
		return "", fmt.Errorf("failed to check existing source: %w", err)
	}

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE sources
			SET url = ?, updated_at = CURRENT_TIMESTAMP
			WHERE name = ?
		`, url, name)
		if err != nil {
			return "", fmt.Errorf("failed to update source: %w", err)
		}
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO sources (id, name, url)
		VALUES (?, ?, ?)
	`, id, name, url)
	if err != nil {
		return "", fmt.Errorf("failed to insert source: %w", err)
	}

	return id, nil
}

func (r *sourceRepository) GetSource(name string) (*Source, error) {
	var s Source
	err := r.db.QueryRow(`
		SELECT id, name, url, COALESCE(title, ''),
		       last_fetched_at, next_fetch_at, created_at, updated_at
		FROM sources
		WHERE name = ?
	`, name).Scan(&s.ID, &s.Name, &s.URL, &s.Title,
		&s.LastFetchedAt, &s.NextFetchAt, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get source: %w", err)
	}
	return &s, nil
}

func (r *sourceRepository) GetSources() ([]Source, error) {
	rows, err := r.db.Query(`
		SELECT id, name, url, COALESCE(title, ''),
		       last_fetched_at, next_fetch_at, created_at, updated_at
		FROM sources
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		var s Source
		err := rows.Scan(&s.ID, &s.Name, &s.URL, &s.Title,
			&s.LastFetchedAt, &s.NextFetchAt, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}

func (r *sourceRepository) GetSourceCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return count, nil
}

// UpdateSourceMetadata records a successful fetch and schedules the next
// one.
func (r *sourceRepository) UpdateSourceMetadata(name, title string, nextFetch time.Time) error {
	_, err := r.db.Exec(`
		UPDATE sources
		SET title = ?, last_fetched_at = CURRENT_TIMESTAMP,
		    next_fetch_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, title, nextFetch, name)
	if err != nil {
		return fmt.Errorf("failed to update source metadata: %w", err)
	}
	return nil
}
