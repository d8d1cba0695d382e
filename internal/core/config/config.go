package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultTemplate renders a parsed conversation as markdown. A custom
// template at ~/.config/slackmd/template.mustache overrides it.
const DefaultTemplate = `{{#messages}}**{{username}}**{{#timestamp}} ({{timestamp}}){{/timestamp}}

{{text}}
{{#reaction_line}}
> {{reaction_line}}
{{/reaction_line}}{{#thread_info}}
> _{{thread_info}}_
{{/thread_info}}

{{/messages}}`

type Config struct {
	Template string            // Mustache template for markdown output
	Format   string            // Default format hint: auto, standard, bracket, mixed
	DBPath   string            // Archive database path
	UserMap  map[string]string // Slack user ID -> display name
	EmojiMap map[string]string // Emoji code -> replacement text
}

type tomlConfig struct {
	Format   string            `toml:"format"`
	DBPath   string            `toml:"db_path"`
	UserMap  map[string]string `toml:"user_map"`
	EmojiMap map[string]string `toml:"emoji_map"`
}

// Load reads config from ~/.config/slackmd/
func Load() (*Config, error) {
	cfg := &Config{
		Template: DefaultTemplate,
		Format:   "auto",
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil // Use defaults
	}

	configDir := filepath.Join(home, ".config", "slackmd")
	templatePath := filepath.Join(configDir, "template.mustache")
	tomlPath := filepath.Join(configDir, "config.toml")

	cfg.DBPath = filepath.Join(home, ".local", "share", "slackmd", "archive.db")

	// Load TOML config if it exists
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.Format != "" {
				cfg.Format = strings.ToLower(strings.TrimSpace(tc.Format))
			}
			if tc.DBPath != "" {
				cfg.DBPath = expandHome(home, tc.DBPath)
			}
			cfg.UserMap = tc.UserMap
			cfg.EmojiMap = tc.EmojiMap
		}
	}

	// If custom template exists, use it
	if data, err := os.ReadFile(templatePath); err == nil {
		cfg.Template = string(data)
	}

	return cfg, nil
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
