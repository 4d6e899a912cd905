// Package history persists terminal interactions in a SQLite database so
// past pipeline runs survive process restarts.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

// SQLiteStore is the durable interaction log. One row per terminal
// interaction; the full pipeline result is flattened into columns so the
// history can be queried without JSON extraction.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path, creating parent
// directories as needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS interactions (
		id TEXT PRIMARY KEY,
		type TEXT,
		status TEXT,
		prompt TEXT,
		provider TEXT,
		statement TEXT,
		strategy TEXT,
		valid INTEGER,
		confidence REAL,
		output TEXT,
		success INTEGER,
		error_code TEXT,
		error_message TEXT,
		cached INTEGER,
		session_id TEXT,
		total_ms REAL,
		created_at TEXT
	);`)
	return err
}

// Save inserts one terminal interaction. Saving the same ID twice replaces
// the earlier row.
func (s *SQLiteStore) Save(interaction domain.Interaction) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO interactions
		(id, type, status, prompt, provider, statement, strategy, valid, confidence,
		 output, success, error_code, error_message, cached, session_id, total_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		interaction.ID,
		string(interaction.Type),
		string(interaction.Status),
		interaction.Prompt,
		interaction.Result.Provider,
		interaction.Result.Statement.Text(),
		interaction.Result.Strategy,
		boolToInt(interaction.Result.Valid),
		interaction.Result.Confidence,
		interaction.Result.Output,
		boolToInt(interaction.Result.Success),
		string(interaction.Result.ErrorCode),
		interaction.Result.ErrorMessage,
		boolToInt(interaction.Cached),
		interaction.SessionID,
		interaction.Timings.TotalMS,
		interaction.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// Recent returns up to limit interactions, newest first. A zero limit means
// no cap.
func (s *SQLiteStore) Recent(limit int) ([]domain.Interaction, error) {
	query := `SELECT id, type, status, prompt, provider, statement, strategy, valid,
		confidence, output, success, error_code, error_message, cached, session_id,
		total_ms, created_at FROM interactions ORDER BY datetime(created_at) DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var i domain.Interaction
		var typ, status, statement, errorCode, createdAt string
		var valid, success, cached int
		if err := rows.Scan(
			&i.ID, &typ, &status, &i.Prompt, &i.Result.Provider, &statement,
			&i.Result.Strategy, &valid, &i.Result.Confidence, &i.Result.Output,
			&success, &errorCode, &i.Result.ErrorMessage, &cached, &i.SessionID,
			&i.Timings.TotalMS, &createdAt,
		); err != nil {
			return nil, err
		}
		i.Type = domain.InteractionType(typ)
		i.Status = domain.InteractionStatus(status)
		i.Result.Prompt = i.Prompt
		i.Result.Statement = domain.NewStatement(statement)
		i.Result.Valid = valid == 1
		i.Result.Success = success == 1
		i.Result.ErrorCode = domain.ErrorCode(errorCode)
		i.Cached = cached == 1
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			i.CreatedAt = t
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// Clear deletes every stored interaction.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM interactions")
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database location.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
