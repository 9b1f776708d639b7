package snapshot

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"trade-master/internal/models"
)

// FileBackend stores the state document as a flat JSON file named after
// the namespace key.
type FileBackend struct {
	path   string
	logger zerolog.Logger
}

// NewFileBackend creates a file-backed snapshot store under dataDir.
func NewFileBackend(dataDir string, logger zerolog.Logger) (*FileBackend, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &FileBackend{
		path:   filepath.Join(dataDir, Key+".json"),
		logger: logger,
	}, nil
}

// Load reads and parses the snapshot file. A missing file or a corrupt
// document yields an empty state, never an error.
func (b *FileBackend) Load() (*models.AppState, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Warn().Err(err).Str("path", b.path).Msg("Snapshot unreadable, starting empty")
		}
		return models.EmptyState(), nil
	}
	state := decode(raw)
	if state == nil {
		b.logger.Warn().Str("path", b.path).Msg("Snapshot corrupt, starting empty")
		return models.EmptyState(), nil
	}
	return state, nil
}

// Save replaces the snapshot file with the full document. The document is
// written to a temp file first and renamed into place, so a crash mid-write
// never leaves a truncated snapshot behind.
func (b *FileBackend) Save(state *models.AppState) error {
	raw, err := encode(state)
	if err != nil {
		return err
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, b.path)
}

// Close is a no-op for the file backend.
func (b *FileBackend) Close() error {
	return nil
}
