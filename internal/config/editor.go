package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/version"
)

// LoadEditorConfig reads pixelpad.toml from the workspace.
// Returns defaults if the file doesn't exist; a present file with a
// missing or unknown schema is an error.
func LoadEditorConfig(paths *Paths) (*model.EditorConfig, error) {
	data, err := os.ReadFile(paths.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultEditorConfig(), nil
		}
		return nil, fmt.Errorf("failed to read workspace config: %w", err)
	}

	// Decode into a zero struct so a file missing the schema field is
	// detectable, then backfill unset values from the defaults.
	cfg := &model.EditorConfig{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid workspace config: %w", err)
	}

	if cfg.PixelpadSchema == "" {
		return nil, fmt.Errorf("workspace config %s has no pixelpad_schema field", paths.ConfigPath())
	}
	if cfg.PixelpadSchema != version.CurrentConfigSchema() {
		return nil, fmt.Errorf("workspace config %s has schema %q, this build supports %q",
			paths.ConfigPath(), cfg.PixelpadSchema, version.CurrentConfigSchema())
	}

	def := model.DefaultEditorConfig()
	if cfg.DefaultWidth == 0 {
		cfg.DefaultWidth = def.DefaultWidth
	}
	if cfg.DefaultHeight == 0 {
		cfg.DefaultHeight = def.DefaultHeight
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}

	return cfg, nil
}

// SaveEditorConfig writes pixelpad.toml, stamping the current schema.
func SaveEditorConfig(paths *Paths, cfg *model.EditorConfig) error {
	cfg.PixelpadSchema = version.CurrentConfigSchema()

	f, err := os.Create(paths.ConfigPath())
	if err != nil {
		return fmt.Errorf("failed to create workspace config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
