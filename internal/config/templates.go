package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# trademaster configuration

[storage]
# Snapshot backend: "file" (single JSON document) or "sqlite".
backend = "file"
# Directory holding the snapshot and backups.
# data_dir = "~/.config/trademaster"

[logs]
level = "info"
console = false
file = true

[ui]
color_enabled = true
# Number of weeks shown in the goal history view.
history_weeks = 4
locale = "en-US"
`

// createTemplateConfig writes a commented config.toml for a first run.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0644)
}
