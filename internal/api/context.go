package api

import (
	"fmt"
	"os"

	"github.com/pixelpad/pixelpad/internal/config"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/service"
	"github.com/pixelpad/pixelpad/internal/store"
)

// AppContext bundles the wired dependencies the HTTP handlers need.
//
// Design: single-user, single-session. One in-memory document store is
// shared by all requests; `pixelpad serve` is a local editor backend, not
// a multi-tenant server. All connected browser tabs see the same state.
type AppContext struct {
	Paths     *config.Paths
	Config    *model.EditorConfig
	Store     *store.DocumentStore
	Documents *service.DocumentService
	Palettes  *service.PaletteService
}

// BuildAppContext wires up a full application context for a workspace
// root. It reads the workspace config but performs no other disk writes;
// callers run init first if the workspace doesn't exist yet.
func BuildAppContext(workspaceRoot string) (*AppContext, error) {
	if workspaceRoot == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	if _, err := os.Stat(workspaceRoot); err != nil {
		return nil, fmt.Errorf("workspace path does not exist: %s", workspaceRoot)
	}

	paths := config.NewPaths(workspaceRoot)
	cfg, err := config.LoadEditorConfig(paths)
	if err != nil {
		return nil, err
	}

	st := store.New()
	return &AppContext{
		Paths:     paths,
		Config:    cfg,
		Store:     st,
		Documents: service.NewDocumentService(st, paths, cfg),
		Palettes:  service.NewPaletteService(st),
	}, nil
}
