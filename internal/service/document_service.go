package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pixelpad/pixelpad/internal/config"
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/persist"
	"github.com/pixelpad/pixelpad/internal/store"
	"github.com/pixelpad/pixelpad/internal/util"
)

// DocumentService orchestrates document lifecycle against the workspace:
// creating, saving to and loading from the saves directory, and exports.
// The in-memory state itself lives in the store.
type DocumentService struct {
	store *store.DocumentStore
	paths *config.Paths
	cfg   *model.EditorConfig
}

// NewDocumentService creates a new document service.
func NewDocumentService(st *store.DocumentStore, paths *config.Paths, cfg *model.EditorConfig) *DocumentService {
	return &DocumentService{store: st, paths: paths, cfg: cfg}
}

// SaveInfo describes one entry in the saves directory.
type SaveInfo struct {
	Name     string
	ModTime  time.Time
	SizeByte int64
}

// Create opens a new document. Zero width or height falls back to the
// workspace defaults.
func (s *DocumentService) Create(name string, width, height int, transparent bool) (*model.Document, error) {
	if width == 0 {
		width = s.cfg.DefaultWidth
	}
	if height == 0 {
		height = s.cfg.DefaultHeight
	}
	return s.store.CreateDocument(name, width, height, transparent)
}

// Save serializes a document into the saves directory. An empty saveName
// derives one from the document name. Refuses to overwrite an existing
// save unless overwrite is set. Returns the save name used.
func (s *DocumentService) Save(docID, saveName string, overwrite bool) (string, error) {
	doc, err := s.resolve(docID)
	if err != nil {
		return "", err
	}

	if saveName == "" {
		saveName = util.Slug(doc.Name)
	}
	path := s.paths.SavePath(saveName)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", pperr.InvalidField("save name",
				fmt.Sprintf("%q already exists, pass overwrite to replace it", saveName))
		}
	}

	data, err := persist.Save(doc)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write save: %w", err)
	}
	return saveName, nil
}

// Open loads a save into the store and activates it. Loading the same
// save twice replaces the first copy rather than duplicating it.
func (s *DocumentService) Open(saveName string) (*model.Document, error) {
	data, err := os.ReadFile(s.paths.SavePath(saveName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, pperr.SaveNotFound(saveName)
		}
		return nil, fmt.Errorf("failed to read save: %w", err)
	}

	doc, err := persist.Load(data)
	if err != nil {
		return nil, err
	}
	s.store.AdoptDocument(doc)
	return doc, nil
}

// ListSaves returns the saves directory contents, newest first.
func (s *DocumentService) ListSaves() ([]SaveInfo, error) {
	entries, err := os.ReadDir(s.paths.SavesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read saves directory: %w", err)
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		saves = append(saves, SaveInfo{
			Name:     strings.TrimSuffix(entry.Name(), ".json"),
			ModTime:  info.ModTime(),
			SizeByte: info.Size(),
		})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].ModTime.After(saves[j].ModTime)
	})
	return saves, nil
}

// DeleteSave removes a save file from the workspace.
func (s *DocumentService) DeleteSave(saveName string) error {
	err := os.Remove(s.paths.SavePath(saveName))
	if os.IsNotExist(err) {
		return pperr.SaveNotFound(saveName)
	}
	return err
}

// ExportPNG flattens a document and writes it as a PNG file. An empty
// outPath derives one from the document name next to the workspace root.
// Returns the path written.
func (s *DocumentService) ExportPNG(docID, outPath string, checkerboard bool) (string, error) {
	doc, err := s.resolve(docID)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = filepath.Join(s.paths.Root(), util.Slug(doc.Name)+".png")
	}

	data, err := persist.ExportPNG(doc, checkerboard)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return outPath, nil
}

// resolve maps an empty docID to the active document and returns a
// snapshot, so saving and exporting read a stable copy while the store
// keeps mutating.
func (s *DocumentService) resolve(docID string) (*model.Document, error) {
	if docID == "" {
		docID = s.store.ActiveDocumentID()
		if docID == "" {
			return nil, pperr.NoActiveDocument()
		}
	}
	return s.store.Snapshot(docID)
}
