package cli

import (
	"fmt"
	"os"

	"github.com/pixelpad/pixelpad/internal/config"
	"github.com/pixelpad/pixelpad/internal/discovery"
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/prompt"
	"github.com/pixelpad/pixelpad/internal/service"
	"github.com/pixelpad/pixelpad/internal/store"
)

// App holds all the dependencies for the CLI.
type App struct {
	Paths         *config.Paths
	Config        *model.EditorConfig
	Store         *store.DocumentStore
	InitService   *service.InitService
	Documents     *service.DocumentService
	Palettes      *service.PaletteService
	Prompter      prompt.Prompter
	WorkspaceRoot string
}

// NewApp creates a new App with all dependencies wired up.
// If interactive is false, uses NoopPrompter that fails on prompts.
func NewApp(interactive bool) (*App, error) {
	result, err := discovery.DiscoverWorkspace()
	if err != nil {
		return nil, err
	}

	// WorkspaceRoot may stay empty - RequireWorkspace() catches it before use.
	var workspaceRoot string
	if result != nil {
		workspaceRoot = result.WorkspaceRoot
	}

	paths := config.NewPaths(workspaceRoot)

	cfg := model.DefaultEditorConfig()
	if workspaceRoot != "" {
		loaded, err := config.LoadEditorConfig(paths)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	var prompter prompt.Prompter
	if interactive {
		prompter = prompt.NewHuhPrompter()
	} else {
		prompter = &prompt.NoopPrompter{}
	}

	st := store.New()

	return &App{
		Paths:         paths,
		Config:        cfg,
		Store:         st,
		InitService:   service.NewInitService(paths),
		Documents:     service.NewDocumentService(st, paths, cfg),
		Palettes:      service.NewPaletteService(st),
		Prompter:      prompter,
		WorkspaceRoot: workspaceRoot,
	}, nil
}

// RequireWorkspace ensures a pixelpad workspace was discovered.
func (a *App) RequireWorkspace() error {
	if a.WorkspaceRoot == "" {
		return &pperr.NotInitializedError{}
	}
	if !a.InitService.IsInitialized() {
		return &pperr.NotInitializedError{Path: a.WorkspaceRoot}
	}
	return nil
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
