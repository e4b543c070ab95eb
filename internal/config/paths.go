package config

import "path/filepath"

const (
	DefaultWorkspaceDir = ".pixelpad"
	SavesDirName        = "saves"
	PalettesDirName     = "palettes"
	ConfigFileName      = "pixelpad.toml"
)

// Paths provides path resolution inside a pixelpad workspace.
type Paths struct {
	workspaceRoot string
}

// NewPaths creates a Paths resolver rooted at the given workspace directory
// (the directory that contains .pixelpad/).
func NewPaths(workspaceRoot string) *Paths {
	return &Paths{workspaceRoot: workspaceRoot}
}

// Root returns the workspace root directory.
func (p *Paths) Root() string {
	return p.workspaceRoot
}

// DataRoot returns the .pixelpad data directory.
func (p *Paths) DataRoot() string {
	return filepath.Join(p.workspaceRoot, DefaultWorkspaceDir)
}

// SavesDir returns the directory holding document saves.
func (p *Paths) SavesDir() string {
	return filepath.Join(p.DataRoot(), SavesDirName)
}

// SavePath returns the file path for a named save.
func (p *Paths) SavePath(name string) string {
	return filepath.Join(p.SavesDir(), name+".json")
}

// PalettesDir returns the watched directory for palette interchange files.
func (p *Paths) PalettesDir() string {
	return filepath.Join(p.DataRoot(), PalettesDirName)
}

// ConfigPath returns the path to the workspace config file.
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.DataRoot(), ConfigFileName)
}
