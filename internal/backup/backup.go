// Package backup implements the file-based import/export collaborator.
// Backups are the same four-field JSON document the snapshot backend
// persists; import is all-or-nothing with no merge and no cross-reference
// validation.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "trade-master/internal/errors"
	"trade-master/internal/models"
)

// FileName returns the backup file name for a given day.
func FileName(now time.Time) string {
	return fmt.Sprintf("trademaster_backup_%s.json", now.Format("2006-01-02"))
}

// Export writes the state document to dir, named with the current date,
// and returns the written path. Array order is preserved as-is.
func Export(state *models.AppState, dir string, now time.Time) (string, error) {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", apperrors.NewBackupError("export", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperrors.NewBackupError("export", dir, err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", apperrors.NewBackupError("export", path, err)
	}
	return path, nil
}

// Import parses a backup file. A file that cannot be read or parsed
// returns ErrMalformedBackup and leaves the caller's state untouched; the
// caller confirms with the user before applying the returned document via
// Store.ReplaceAll.
func Import(path string) (*models.AppState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewBackupError("import", path, err)
	}
	var state models.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, apperrors.NewBackupError("import", path, apperrors.ErrMalformedBackup)
	}
	state.Normalize()
	return &state, nil
}
