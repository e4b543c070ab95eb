package model

import "github.com/pixelpad/pixelpad/internal/version"

// EditorConfig holds workspace-level editor defaults.
// Stored as pixelpad.toml in the workspace directory.
type EditorConfig struct {
	PixelpadSchema string `toml:"pixelpad_schema" json:"pixelpad_schema"`

	// Defaults applied when creating a new document.
	DefaultWidth          int  `toml:"default_width" json:"default_width"`
	DefaultHeight         int  `toml:"default_height" json:"default_height"`
	TransparentBackground bool `toml:"transparent_background" json:"transparent_background"`

	// Serve settings.
	Port int `toml:"port" json:"port"`
}

// DefaultEditorConfig returns the config written on workspace init.
func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		PixelpadSchema:        version.CurrentConfigSchema(),
		DefaultWidth:          32,
		DefaultHeight:         32,
		TransparentBackground: false,
		Port:                  3800,
	}
}
