package service

import (
	"fmt"
	"os"

	"github.com/pixelpad/pixelpad/internal/config"
	"github.com/pixelpad/pixelpad/internal/model"
)

// InitService handles workspace initialization.
type InitService struct {
	paths *config.Paths
}

// NewInitService creates a new init service.
func NewInitService(paths *config.Paths) *InitService {
	return &InitService{paths: paths}
}

// Initialize creates the workspace layout under the root:
// .pixelpad/saves/, .pixelpad/palettes/, and pixelpad.toml with defaults.
// Re-running on an initialized workspace is a no-op.
func (s *InitService) Initialize() error {
	alreadyInitialized := true
	if _, err := os.Stat(s.paths.ConfigPath()); err != nil {
		alreadyInitialized = false
	}

	for _, dir := range []string{s.paths.SavesDir(), s.paths.PalettesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if alreadyInitialized {
		return nil
	}
	return config.SaveEditorConfig(s.paths, model.DefaultEditorConfig())
}

// IsInitialized returns true if the workspace layout exists.
func (s *InitService) IsInitialized() bool {
	_, err := os.Stat(s.paths.SavesDir())
	return err == nil
}
