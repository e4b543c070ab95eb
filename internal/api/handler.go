package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/persist"
	"github.com/pixelpad/pixelpad/internal/swatch"
)

// Handler contains all HTTP handlers for the API.
type Handler struct {
	app *AppContext
}

// NewHandler creates a new handler over a wired application context.
func NewHandler(app *AppContext) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Workspace routes
	mux.HandleFunc("GET /api/v1/workspace", h.GetWorkspace)
	mux.HandleFunc("GET /favicon.svg", h.GetFavicon)

	// Document routes
	mux.HandleFunc("GET /api/v1/documents", h.ListDocuments)
	mux.HandleFunc("POST /api/v1/documents", h.CreateDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}", h.GetDocument)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", h.CloseDocument)
	mux.HandleFunc("POST /api/v1/documents/{id}/activate", h.ActivateDocument)
	mux.HandleFunc("GET /api/v1/documents/{id}/composite.png", h.GetComposite)
	mux.HandleFunc("POST /api/v1/documents/{id}/save", h.SaveDocument)

	// Save routes
	mux.HandleFunc("GET /api/v1/saves", h.ListSaves)
	mux.HandleFunc("POST /api/v1/saves/{name}/open", h.OpenSave)
	mux.HandleFunc("DELETE /api/v1/saves/{name}", h.DeleteSave)

	// Layer routes
	mux.HandleFunc("POST /api/v1/documents/{id}/layers", h.AddLayer)
	mux.HandleFunc("DELETE /api/v1/documents/{id}/layers/{layerID}", h.DeleteLayer)
	mux.HandleFunc("PATCH /api/v1/documents/{id}/layers/{layerID}", h.RenameLayer)
	mux.HandleFunc("POST /api/v1/documents/{id}/layers/{layerID}/visibility", h.ToggleLayerVisibility)
	mux.HandleFunc("POST /api/v1/documents/{id}/layers/{layerID}/activate", h.ActivateLayer)
	mux.HandleFunc("PUT /api/v1/documents/{id}/layers/order", h.ReorderLayers)
	mux.HandleFunc("PUT /api/v1/documents/{id}/layers/selected", h.SelectLayers)
	mux.HandleFunc("POST /api/v1/documents/{id}/layers/{layerID}/pixels", h.WritePixels)

	// Palette and color routes
	mux.HandleFunc("GET /api/v1/documents/{id}/palette", h.GetPalette)
	mux.HandleFunc("POST /api/v1/documents/{id}/palette", h.AddPaletteEntry)
	mux.HandleFunc("DELETE /api/v1/documents/{id}/palette/{entryID}", h.DeletePaletteEntry)
	mux.HandleFunc("PATCH /api/v1/documents/{id}/palette/{entryID}", h.UpdatePaletteEntry)
	mux.HandleFunc("PUT /api/v1/documents/{id}/palette/order", h.ReorderPalette)
	mux.HandleFunc("POST /api/v1/documents/{id}/palette/{entryID}/select", h.SelectPaletteEntry)
	mux.HandleFunc("POST /api/v1/documents/{id}/palette/deselect", h.DeselectPaletteEntry)
	mux.HandleFunc("POST /api/v1/documents/{id}/palette/sort/cycle", h.CycleSortOrder)
	mux.HandleFunc("PUT /api/v1/documents/{id}/color", h.SetCurrentColor)
	mux.HandleFunc("POST /api/v1/documents/{id}/palette/import", h.ImportPalette)
	mux.HandleFunc("GET /api/v1/documents/{id}/palette/export", h.ExportPalette)

	// Static files (frontend)
	mux.Handle("/", h.StaticHandler())
}

// --- Response shapes ---

// DocumentSummary is the list-view shape of a document.
type DocumentSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Active bool   `json:"active"`
}

// LayerResponse describes one layer without its bitmap. Pixels travel as
// PNG through the composite endpoint, not as JSON.
type LayerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Visible  bool   `json:"visible"`
	Selected bool   `json:"selected"`
	Decoded  bool   `json:"decoded"`
}

// ColorStateResponse is a document's picker state.
type ColorStateResponse struct {
	CurrentColor    *model.RGBA     `json:"current_color"`
	SelectedEntryID string          `json:"selected_entry_id,omitempty"`
	SortOrder       model.SortOrder `json:"sort_order"`
}

// DocumentResponse is the full document shape. The palette comes back in
// display order for the document's sort setting.
type DocumentResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	Layers        []LayerResponse       `json:"layers"`
	ActiveLayerID string                `json:"active_layer_id,omitempty"`
	Palette       []*model.PaletteEntry `json:"palette"`
	Color         ColorStateResponse    `json:"color"`
}

func toDocumentResponse(doc *model.Document) DocumentResponse {
	resp := DocumentResponse{
		ID:            doc.ID,
		Name:          doc.Name,
		Width:         doc.Width,
		Height:        doc.Height,
		Layers:        make([]LayerResponse, 0, len(doc.Layers)),
		ActiveLayerID: doc.ActiveLayerID,
		Palette:       doc.Palette.View(doc.Color.SortOrder),
		Color: ColorStateResponse{
			CurrentColor:    doc.Color.CurrentColor,
			SelectedEntryID: doc.Color.SelectedEntryID,
			SortOrder:       doc.Color.SortOrder,
		},
	}
	for _, l := range doc.Layers {
		resp.Layers = append(resp.Layers, LayerResponse{
			ID:       l.ID,
			Name:     l.Name,
			Visible:  l.Visible,
			Selected: doc.SelectedLayerIDs[l.ID],
			Decoded:  l.Pixels != nil,
		})
	}
	return resp
}

// --- Workspace handlers ---

// GetWorkspace returns workspace metadata and editor defaults.
func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{
		"root":   h.app.Paths.Root(),
		"config": h.app.Config,
	})
}

// --- Document handlers ---

// ListDocuments returns all open documents.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	activeID := h.app.Store.ActiveDocumentID()
	docs := h.app.Store.Documents()

	out := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, DocumentSummary{
			ID:     doc.ID,
			Name:   doc.Name,
			Width:  doc.Width,
			Height: doc.Height,
			Active: doc.ID == activeID,
		})
	}
	JSON(w, http.StatusOK, out)
}

// CreateDocument opens a new document.
func (h *Handler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Width       int    `json:"width"`
		Height      int    `json:"height"`
		Transparent bool   `json:"transparent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	doc, err := h.app.Documents.Create(req.Name, req.Width, req.Height, req.Transparent)
	if err != nil {
		Error(w, err)
		return
	}
	snap, err := h.app.Store.Snapshot(doc.ID)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, toDocumentResponse(snap))
}

// GetDocument returns one document in full.
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.app.Store.Snapshot(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, toDocumentResponse(doc))
}

// CloseDocument closes a document without saving.
func (h *Handler) CloseDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.CloseDocument(r.PathValue("id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ActivateDocument switches the active document.
func (h *Handler) ActivateDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.ActivateDocument(r.PathValue("id")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// GetComposite renders the flattened document as a PNG.
// ?checkerboard=1 bakes the transparency checkerboard underneath.
func (h *Handler) GetComposite(w http.ResponseWriter, r *http.Request) {
	doc, err := h.app.Store.Snapshot(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}

	data, err := persist.ExportPNG(doc, r.URL.Query().Get("checkerboard") == "1")
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// SaveDocument writes a document to the saves directory.
func (h *Handler) SaveDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Overwrite bool   `json:"overwrite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	name, err := h.app.Documents.Save(r.PathValue("id"), req.Name, req.Overwrite)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"name": name})
}

// --- Save handlers ---

// SaveResponse describes one save file.
type SaveResponse struct {
	Name          string `json:"name"`
	ModifiedMilli int64  `json:"modified_at_millis"`
	SizeByte      int64  `json:"size_bytes"`
}

// ListSaves lists the saves directory, newest first.
func (h *Handler) ListSaves(w http.ResponseWriter, r *http.Request) {
	saves, err := h.app.Documents.ListSaves()
	if err != nil {
		Error(w, err)
		return
	}
	out := make([]SaveResponse, 0, len(saves))
	for _, s := range saves {
		out = append(out, SaveResponse{
			Name:          s.Name,
			ModifiedMilli: s.ModTime.UnixMilli(),
			SizeByte:      s.SizeByte,
		})
	}
	JSON(w, http.StatusOK, out)
}

// OpenSave loads a save into the store and activates it.
func (h *Handler) OpenSave(w http.ResponseWriter, r *http.Request) {
	doc, err := h.app.Documents.Open(r.PathValue("name"))
	if err != nil {
		Error(w, err)
		return
	}
	snap, err := h.app.Store.Snapshot(doc.ID)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, toDocumentResponse(snap))
}

// DeleteSave removes a save file.
func (h *Handler) DeleteSave(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Documents.DeleteSave(r.PathValue("name")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// --- Layer handlers ---

// AddLayer inserts a new layer at the top of the stack.
func (h *Handler) AddLayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	layer, err := h.app.Store.AddLayer(r.PathValue("id"), req.Name)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, LayerResponse{
		ID:       layer.ID,
		Name:     layer.Name,
		Visible:  layer.Visible,
		Selected: true,
		Decoded:  true,
	})
}

// DeleteLayer removes a layer.
func (h *Handler) DeleteLayer(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.DeleteLayer(r.PathValue("id"), r.PathValue("layerID")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// RenameLayer updates a layer's name.
func (h *Handler) RenameLayer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.RenameLayer(r.PathValue("id"), r.PathValue("layerID"), req.Name); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ToggleLayerVisibility flips a layer's visibility.
func (h *Handler) ToggleLayerVisibility(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.ToggleLayerVisibility(r.PathValue("id"), r.PathValue("layerID")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ActivateLayer changes the active layer.
func (h *Handler) ActivateLayer(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.SetActiveLayer(r.PathValue("id"), r.PathValue("layerID")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ReorderLayers moves a layer from one stack position to another.
func (h *Handler) ReorderLayers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.ReorderLayer(r.PathValue("id"), req.From, req.To); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// SelectLayers replaces the layer selection set.
func (h *Handler) SelectLayers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.SetSelectedLayers(r.PathValue("id"), req.IDs); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// PixelWrite is one pixel assignment in a WritePixels batch.
type PixelWrite struct {
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Color model.RGBA `json:"color"`
}

// WritePixels applies a batch of pixel writes to a layer. A drag stroke
// arrives as one batch. Out-of-bounds pixels are dropped silently.
func (h *Handler) WritePixels(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pixels []PixelWrite `json:"pixels"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}
	if len(req.Pixels) == 0 {
		BadRequest(w, "no pixels in request")
		return
	}

	docID, layerID := r.PathValue("id"), r.PathValue("layerID")
	for _, p := range req.Pixels {
		if err := h.app.Store.WritePixel(docID, layerID, p.X, p.Y, p.Color); err != nil {
			Error(w, err)
			return
		}
	}
	JSON(w, http.StatusOK, nil)
}

// --- Palette and color handlers ---

// GetPalette returns the palette in display order plus the color state.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	doc, err := h.app.Store.Snapshot(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"entries": doc.Palette.View(doc.Color.SortOrder),
		"color": ColorStateResponse{
			CurrentColor:    doc.Color.CurrentColor,
			SelectedEntryID: doc.Color.SelectedEntryID,
			SortOrder:       doc.Color.SortOrder,
		},
	})
}

// AddPaletteEntry appends a color to the palette.
func (h *Handler) AddPaletteEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color model.RGBA `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	entry, err := h.app.Store.AddPaletteEntry(r.PathValue("id"), req.Color)
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusCreated, entry)
}

// DeletePaletteEntry removes a palette entry.
func (h *Handler) DeletePaletteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.DeletePaletteEntry(r.PathValue("id"), r.PathValue("entryID")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// UpdatePaletteEntry changes a palette entry's color.
func (h *Handler) UpdatePaletteEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color model.RGBA `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.UpdatePaletteEntryColor(r.PathValue("id"), r.PathValue("entryID"), req.Color); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ReorderPalette rewrites the palette's insertion order.
func (h *Handler) ReorderPalette(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.ReorderPalette(r.PathValue("id"), req.IDs); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// SelectPaletteEntry selects an entry, adopting its color as current.
func (h *Handler) SelectPaletteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.SetSelectedPaletteEntry(r.PathValue("id"), r.PathValue("entryID")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// DeselectPaletteEntry clears the selection and the current color.
func (h *Handler) DeselectPaletteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Store.SetSelectedPaletteEntry(r.PathValue("id"), ""); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// CycleSortOrder advances the palette sort order and returns the new one.
func (h *Handler) CycleSortOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.app.Store.CycleSortOrder(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"sort_order": string(order)})
}

// SetCurrentColor sets or clears the picker color. A null color clears it.
func (h *Handler) SetCurrentColor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Color *model.RGBA `json:"color"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body")
		return
	}

	if err := h.app.Store.SetCurrentColor(r.PathValue("id"), req.Color); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, nil)
}

// ImportPalette replaces the palette from an uploaded swatch file. The
// body is the raw file; ?filename= carries the original name so the
// format can be detected from its extension.
func (h *Handler) ImportPalette(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		BadRequest(w, "failed to read upload")
		return
	}

	n, err := h.app.Palettes.ImportData(r.PathValue("id"), r.URL.Query().Get("filename"), data)
	if err != nil && n == 0 {
		Error(w, err)
		return
	}

	resp := map[string]any{"imported": n}
	if err != nil {
		resp["warning"] = err.Error()
	}
	JSON(w, http.StatusOK, resp)
}

// ExportPalette serializes the palette as a downloadable swatch file.
// ?format= selects ase or gpl.
func (h *Handler) ExportPalette(w http.ResponseWriter, r *http.Request) {
	doc, err := h.app.Store.Snapshot(r.PathValue("id"))
	if err != nil {
		Error(w, err)
		return
	}

	format := swatch.Format(r.URL.Query().Get("format"))
	data, err := swatch.Encode(doc.Palette.Entries, format)
	if err != nil {
		Error(w, err)
		return
	}

	contentType := "application/octet-stream"
	if format == swatch.FormatGPL {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="palette.`+string(format)+`"`)
	w.Write(data)
}
