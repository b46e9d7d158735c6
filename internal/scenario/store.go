package scenario

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/retirewise/retirement-planner/internal/domain"
)

// ErrNotFound is returned when a scenario id does not exist.
var ErrNotFound = errors.New("scenario not found")

// Store persists named copies of simulation parameters in SQLite.
type Store struct {
	db *sql.DB
}

// Safe to run on every open - uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS scenario (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    data TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scenario_updated_at ON scenario(updated_at);
`

// Open opens (or creates) the store at the given path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario store %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping scenario store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create scenario schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Summary is a scenario listing entry.
type Summary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LastModified time.Time `json:"last_modified"`
}

// Document is a stored scenario with its parameters.
type Document struct {
	ID   string                  `json:"id"`
	Name string                  `json:"name"`
	Data domain.SimulationParams `json:"data"`
}

// Save upserts a scenario by name: saving under an existing name overwrites
// that scenario and keeps its id. Returns the scenario id.
func (s *Store) Save(name string, params *domain.SimulationParams) (string, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode scenario %q: %w", name, err)
	}

	var id string
	err = s.db.QueryRow(`SELECT id FROM scenario WHERE name = ?`, name).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = s.db.Exec(`INSERT INTO scenario (id, name, data, updated_at) VALUES (?, ?, ?, ?)`,
			id, name, string(data), time.Now().Unix())
	case err == nil:
		_, err = s.db.Exec(`UPDATE scenario SET data = ?, updated_at = ? WHERE id = ?`,
			string(data), time.Now().Unix(), id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to save scenario %q: %w", name, err)
	}
	return id, nil
}

// List returns all scenarios, most recently modified first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT id, name, updated_at FROM scenario ORDER BY updated_at DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		var updatedAt int64
		if err := rows.Scan(&sum.ID, &sum.Name, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		sum.LastModified = time.Unix(updatedAt, 0).UTC()
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// Get returns the stored scenario with the given id.
func (s *Store) Get(id string) (*Document, error) {
	var doc Document
	var data string
	err := s.db.QueryRow(`SELECT id, name, data FROM scenario WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Name, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(data), &doc.Data); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", id, err)
	}
	return &doc, nil
}

// Delete removes the scenario with the given id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM scenario WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
