// Package persist serializes whole documents to the versioned save format
// and back, and renders still-image exports. It works on bytes; file and
// workspace handling lives in the service layer.
package persist

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pixelpad/pixelpad/internal/composite"
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/version"
)

// legacyLayerName names the single layer reconstructed from a pre-layers
// (v0.1) save.
const legacyLayerName = "Background"

// dataURIPrefix is tolerated in front of embedded bitmaps on load; saves
// from the original browser builds stored layer pixels as data URIs.
const dataURIPrefix = "data:image/png;base64,"

// saveFile is the on-disk shape across all schema versions. Version
// increments are additive: new optional fields only, never removal or
// rename.
type saveFile struct {
	Version string `json:"version,omitempty"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`

	// Pre-layers (0.1): the whole canvas as one bitmap.
	Pixels string `json:"pixels,omitempty"`

	// 0.2+
	Layers        []saveLayer `json:"layers,omitempty"`
	ActiveLayerID string      `json:"active_layer_id,omitempty"`

	// 0.3+
	Palette         []savePaletteEntry `json:"palette,omitempty"`
	CurrentColor    *model.RGBA        `json:"current_color,omitempty"`
	SelectedEntryID string             `json:"selected_entry_id,omitempty"`
	SortOrder       string             `json:"sort_order,omitempty"`
}

type saveLayer struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Pixels  string `json:"pixels,omitempty"`
}

type savePaletteEntry struct {
	ID    string     `json:"id,omitempty"`
	Color model.RGBA `json:"color"`
	Name  string     `json:"name,omitempty"`
}

// Save serializes a document at the current schema version.
func Save(doc *model.Document) ([]byte, error) {
	sf := saveFile{
		Version:         version.CurrentSave,
		ID:              doc.ID,
		Name:            doc.Name,
		Width:           doc.Width,
		Height:          doc.Height,
		ActiveLayerID:   doc.ActiveLayerID,
		SelectedEntryID: doc.Color.SelectedEntryID,
		SortOrder:       string(doc.Color.SortOrder),
		CurrentColor:    doc.Color.CurrentColor,
	}

	for _, l := range doc.Layers {
		encoded := ""
		if l.Pixels != nil {
			png, err := l.Pixels.EncodePNG()
			if err != nil {
				return nil, fmt.Errorf("failed to encode layer %s: %w", l.ID, err)
			}
			encoded = base64.StdEncoding.EncodeToString(png)
		}
		sf.Layers = append(sf.Layers, saveLayer{
			ID:      l.ID,
			Name:    l.Name,
			Visible: l.Visible,
			Pixels:  encoded,
		})
	}

	for _, e := range doc.Palette.Entries {
		sf.Palette = append(sf.Palette, savePaletteEntry{ID: e.ID, Color: e.Color, Name: e.Name})
	}

	return json.MarshalIndent(sf, "", "  ")
}

// Load reconstructs a document from save data. The document is built
// completely before being returned, so callers hand the store a whole
// document in one step; on error nothing is produced.
//
// A missing version field means 0.1, the oldest format. Unknown future
// versions are not an error: the newest-known layout is assumed and a
// warning is logged.
func Load(data []byte) (*model.Document, error) {
	var sf saveFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, pperr.BadFormatf("save", "not a valid save document: %v", err)
	}

	v := sf.Version
	if v == "" {
		v = version.SaveV01
	}
	if !version.IsKnown(v) {
		fmt.Fprintf(os.Stderr, "Warning: unknown save version %q, loading with the %s layout\n", v, version.CurrentSave)
	}

	if sf.Width <= 0 || sf.Height <= 0 {
		return nil, pperr.BadFormatf("save", "invalid dimensions %dx%d", sf.Width, sf.Height)
	}

	docID := sf.ID
	if docID == "" {
		docID = id.Generate()
	}
	name := sf.Name
	if name == "" {
		name = "Untitled"
	}
	doc := model.NewDocument(docID, name, sf.Width, sf.Height)

	if !version.AtLeast(v, version.SaveV02) {
		return loadLegacy(doc, &sf)
	}

	for _, sl := range sf.Layers {
		layerID := sl.ID
		if layerID == "" {
			layerID = id.Generate()
		}
		pixels, err := decodeBitmap(sl.Pixels, sf.Width, sf.Height)
		if err != nil {
			return nil, err
		}
		doc.Layers = append(doc.Layers, &model.Layer{
			ID:      layerID,
			Name:    sl.Name,
			Visible: sl.Visible,
			Pixels:  pixels,
		})
	}

	doc.ActiveLayerID = ""
	if doc.HasLayer(sf.ActiveLayerID) {
		doc.ActiveLayerID = sf.ActiveLayerID
	} else if len(doc.Layers) > 0 {
		doc.ActiveLayerID = doc.TopLayerID()
	}
	if doc.ActiveLayerID != "" {
		doc.SelectedLayerIDs[doc.ActiveLayerID] = true
	}

	if version.AtLeast(v, version.SaveV03) {
		loadColorState(doc, &sf)
	} else {
		applyColorDefaults(doc)
	}

	return doc, nil
}

// loadLegacy handles the pre-layers format: one flat bitmap becomes the
// sole layer, with the default palette and color state.
func loadLegacy(doc *model.Document, sf *saveFile) (*model.Document, error) {
	pixels, err := decodeBitmap(sf.Pixels, sf.Width, sf.Height)
	if err != nil {
		return nil, err
	}

	layer := &model.Layer{
		ID:      id.Generate(),
		Name:    legacyLayerName,
		Visible: true,
		Pixels:  pixels,
	}
	doc.Layers = []*model.Layer{layer}
	doc.ActiveLayerID = layer.ID
	doc.SelectedLayerIDs[layer.ID] = true

	applyColorDefaults(doc)
	return doc, nil
}

// loadColorState applies the 0.3+ palette and picker fields.
func loadColorState(doc *model.Document, sf *saveFile) {
	for _, se := range sf.Palette {
		entryID := se.ID
		if entryID == "" {
			entryID = id.Generate()
		}
		doc.Palette.Add(&model.PaletteEntry{ID: entryID, Color: se.Color, Name: se.Name})
	}

	doc.Color.SortOrder = model.ParseSortOrder(sf.SortOrder)
	doc.Color.CurrentColor = sf.CurrentColor
	if _, i := doc.Palette.Entry(sf.SelectedEntryID); i >= 0 {
		doc.Color.SelectedEntryID = sf.SelectedEntryID
	}
}

// applyColorDefaults fills the color state for saves that predate it:
// the initial palette, black current color, insertion order, first entry
// selected.
func applyColorDefaults(doc *model.Document) {
	doc.Palette = model.DefaultPalette(id.Generate)
	black := model.Black
	doc.Color = model.ColorState{
		CurrentColor:    &black,
		SelectedEntryID: doc.Palette.Entries[0].ID,
		SortOrder:       model.SortInsertion,
	}
}

// ExportPNG flattens a document and serializes it as a PNG, dimensions
// equal to the document's, alpha preserved. With checkerboard set, the
// transparency checkerboard is baked beneath the composite and the result
// is fully opaque.
func ExportPNG(doc *model.Document, checkerboard bool) ([]byte, error) {
	flat := composite.Composite(doc.Layers, doc.Width, doc.Height)
	if checkerboard {
		flat = composite.WithCheckerboard(flat)
	}
	return flat.EncodePNG()
}

// decodeBitmap turns an embedded base64 PNG (with or without a data-URI
// prefix) into a bitmap. Empty input decodes to a transparent canvas.
func decodeBitmap(encoded string, width, height int) (*model.Bitmap, error) {
	if encoded == "" {
		return model.NewBitmap(width, height), nil
	}
	encoded = strings.TrimPrefix(encoded, dataURIPrefix)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, pperr.BadFormatf("save", "bad embedded bitmap: %v", err)
	}
	bm, err := model.DecodePNG(raw, width, height)
	if err != nil {
		return nil, pperr.BadFormatf("save", "bad embedded bitmap: %v", err)
	}
	return bm, nil
}
