package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelpad/pixelpad/internal/config"
	"github.com/pixelpad/pixelpad/internal/model"
)

// TestDocument returns a document with sensible test defaults: one
// visible, fully decoded layer and the default black/white palette.
func TestDocument(id, name string) *model.Document {
	doc := model.NewDocument(id, name, 4, 4)

	layer := &model.Layer{
		ID:      id + "-layer1",
		Name:    "Layer 1",
		Visible: true,
		Pixels:  model.NewBitmap(4, 4),
	}
	doc.InsertLayerTop(layer)
	doc.ActiveLayerID = layer.ID

	n := 0
	doc.Palette = model.DefaultPalette(func() string {
		n++
		return fmt.Sprintf("%s-entry%d", id, n)
	})
	return doc
}

// TempWorkspace creates a temporary directory with a .pixelpad structure
// for testing. Returns the temp dir path and a cleanup function.
func TempWorkspace(t *testing.T) (string, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "pixelpad-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	paths := config.NewPaths(dir)
	for _, sub := range []string{paths.SavesDir(), paths.PalettesDir()} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			os.RemoveAll(dir)
			t.Fatalf("failed to create %s: %v", filepath.Base(sub), err)
		}
	}

	cleanup := func() {
		os.RemoveAll(dir)
	}

	return dir, cleanup
}

// NewTestPaths creates a Paths for testing with the given temp directory.
func NewTestPaths(baseDir string) *config.Paths {
	return config.NewPaths(baseDir)
}
