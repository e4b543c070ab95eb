// Package discovery locates the pixelpad workspace for the current
// directory by walking up toward the filesystem root.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixelpad/pixelpad/internal/config"
)

// Result contains the discovered workspace root.
type Result struct {
	WorkspaceRoot string // Absolute path to the directory containing .pixelpad/
}

// DiscoverWorkspace finds the workspace root by walking up from cwd.
// Returns nil if no workspace is found (not initialized).
func DiscoverWorkspace() (*Result, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return DiscoverWorkspaceFrom(cwd)
}

// DiscoverWorkspaceFrom finds the workspace root starting from a given
// directory. A directory counts as a workspace root when it contains
// .pixelpad/saves/, which `pixelpad init` creates.
func DiscoverWorkspaceFrom(startDir string) (*Result, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	for {
		savesDir := filepath.Join(dir, config.DefaultWorkspaceDir, config.SavesDirName)
		if _, err := os.Stat(savesDir); err == nil {
			return &Result{WorkspaceRoot: dir}, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, no workspace found
			return nil, nil
		}
		dir = parent
	}
}
