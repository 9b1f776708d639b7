package snapshot

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"trade-master/internal/models"
)

// SQLiteBackend stores the state document as a value in a key-value
// snapshots table. The document shape is identical to the file backend;
// SQLite only changes where the blob lives.
type SQLiteBackend struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLiteBackend opens (or creates) the snapshot database under dataDir.
func NewSQLiteBackend(dataDir string, logger zerolog.Logger) (*SQLiteBackend, error) {
	dbPath := filepath.Join(dataDir, "trademaster.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteBackend{db: db, logger: logger}, nil
}

// Load reads the document stored under the namespace key. A missing row
// or a corrupt document yields an empty state, never an error.
func (b *SQLiteBackend) Load() (*models.AppState, error) {
	var raw string
	err := b.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, Key).Scan(&raw)
	if err != nil {
		if err != sql.ErrNoRows {
			b.logger.Warn().Err(err).Msg("Snapshot unreadable, starting empty")
		}
		return models.EmptyState(), nil
	}
	state := decode([]byte(raw))
	if state == nil {
		b.logger.Warn().Msg("Snapshot corrupt, starting empty")
		return models.EmptyState(), nil
	}
	return state, nil
}

// Save upserts the document under the namespace key.
func (b *SQLiteBackend) Save(state *models.AppState) error {
	raw, err := encode(state)
	if err != nil {
		return err
	}
	_, err = b.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		Key, string(raw),
	)
	return err
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
