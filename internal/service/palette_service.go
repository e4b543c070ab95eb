package service

import (
	"fmt"
	"os"
	"path/filepath"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/store"
	"github.com/pixelpad/pixelpad/internal/swatch"
)

// PaletteService moves palettes between documents and interchange files.
type PaletteService struct {
	store *store.DocumentStore
}

// NewPaletteService creates a new palette service.
func NewPaletteService(st *store.DocumentStore) *PaletteService {
	return &PaletteService{store: st}
}

// ImportFile reads a swatch file and replaces a document's palette with
// its entries. An empty docID targets the active document.
//
// A truncated file that still yielded entries is imported anyway; the
// FormatError comes back alongside the count so callers can warn.
func (s *PaletteService) ImportFile(docID, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read swatch file: %w", err)
	}
	return s.ImportData(docID, filepath.Base(path), data)
}

// ImportData is ImportFile for in-memory bytes, e.g. an upload.
func (s *PaletteService) ImportData(docID, filename string, data []byte) (int, error) {
	format, err := swatch.DetectFormat(filename, data)
	if err != nil {
		return 0, err
	}

	entries, decodeErr := swatch.Decode(data, format)
	if len(entries) == 0 {
		if decodeErr != nil {
			return 0, decodeErr
		}
		return 0, pperr.BadFormat(string(format), "no colors in file")
	}

	if docID == "" {
		docID = s.store.ActiveDocumentID()
		if docID == "" {
			return 0, pperr.NoActiveDocument()
		}
	}
	if err := s.store.SetPalette(docID, entries); err != nil {
		return 0, err
	}
	return len(entries), decodeErr
}

// ExportFile writes a document's palette to a swatch file, format chosen
// by the output extension. Entries are written in stored order; the sort
// order is a display setting and does not reorder exports.
func (s *PaletteService) ExportFile(docID, path string) (int, error) {
	format, err := swatch.DetectFormat(path, nil)
	if err != nil {
		return 0, err
	}

	if docID == "" {
		docID = s.store.ActiveDocumentID()
		if docID == "" {
			return 0, pperr.NoActiveDocument()
		}
	}
	doc, err := s.store.Snapshot(docID)
	if err != nil {
		return 0, err
	}

	data, err := swatch.Encode(doc.Palette.Entries, format)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, fmt.Errorf("failed to write swatch file: %w", err)
	}
	return len(doc.Palette.Entries), nil
}

// Convert rewrites a swatch file into the format the output extension
// names, no document involved. Partially decodable input converts what
// it can and reports the error alongside the count.
func (s *PaletteService) Convert(inPath, outPath string) (int, error) {
	outFormat, err := swatch.DetectFormat(outPath, nil)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read swatch file: %w", err)
	}
	inFormat, err := swatch.DetectFormat(filepath.Base(inPath), data)
	if err != nil {
		return 0, err
	}

	entries, decodeErr := swatch.Decode(data, inFormat)
	if len(entries) == 0 && decodeErr != nil {
		return 0, decodeErr
	}

	out, err := swatch.Encode(entries, outFormat)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return 0, fmt.Errorf("failed to write swatch file: %w", err)
	}
	return len(entries), decodeErr
}

// Entries returns the palette of a document for read-only use, in the
// order the document's sort setting displays it.
func (s *PaletteService) Entries(docID string) ([]*model.PaletteEntry, error) {
	if docID == "" {
		docID = s.store.ActiveDocumentID()
		if docID == "" {
			return nil, pperr.NoActiveDocument()
		}
	}
	return s.store.PaletteView(docID)
}
