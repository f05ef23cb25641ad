package config

import (
	"os"
	"path/filepath"
)

const configTemplate = `# forex-journal configuration

[journal]
# db_path = "~/.config/forex-journal/journal.db"
user_id = "local"
account_currency = "USD"
default_lot_size = 1.0

[display]
color_enabled = true
curve_tail = 10

[logging]
level = "info"
console = true
file = true
max_size = 20
max_backups = 5
max_age = 30
`

// createTemplateConfig writes a commented starter config so a first run
// leaves something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(configTemplate), 0o644)
}
