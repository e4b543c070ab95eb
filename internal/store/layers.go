package store

import (
	"fmt"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
)

// AddLayer inserts a transparent layer at the top of the stack; it becomes
// the active and sole selected layer. An empty name gets a generated one.
// The returned layer is a detached copy.
func (s *DocumentStore) AddLayer(docID, name string) (*model.Layer, error) {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	if name == "" {
		name = fmt.Sprintf("Layer %d", len(doc.Layers)+1)
	}
	layer := &model.Layer{
		ID:      id.Generate(),
		Name:    name,
		Visible: true,
		Pixels:  model.NewBitmap(doc.Width, doc.Height),
	}

	doc.InsertLayerTop(layer)
	doc.ActiveLayerID = layer.ID
	doc.SelectedLayerIDs = map[string]bool{layer.ID: true}
	out := layer.Clone()
	s.mu.Unlock()

	s.publish(Event{Action: ActionCreated, Kind: KindLayer, DocumentID: docID, TargetID: out.ID})
	return out, nil
}

// DeleteLayer removes a layer. When the active layer is deleted, the new
// top layer becomes active, or no layer when the stack is empty.
func (s *DocumentStore) DeleteLayer(docID, layerID string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !doc.RemoveLayer(layerID) {
		s.mu.Unlock()
		return pperr.LayerNotFound(layerID)
	}
	if doc.ActiveLayerID == layerID {
		doc.ActiveLayerID = doc.TopLayerID()
	}
	s.mu.Unlock()

	s.publish(Event{Action: ActionDeleted, Kind: KindLayer, DocumentID: docID, TargetID: layerID})
	return nil
}

// ToggleLayerVisibility flips a layer's visibility. Hiding is
// non-destructive: the layer's pixels are untouched.
func (s *DocumentStore) ToggleLayerVisibility(docID, layerID string) error {
	s.mu.Lock()
	layer, err := s.layerLocked(docID, layerID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	layer.Visible = !layer.Visible
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindLayer, DocumentID: docID, TargetID: layerID})
	return nil
}

// RenameLayer sets a layer's display name.
func (s *DocumentStore) RenameLayer(docID, layerID, newName string) error {
	s.mu.Lock()
	layer, err := s.layerLocked(docID, layerID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	layer.Name = newName
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindLayer, DocumentID: docID, TargetID: layerID})
	return nil
}

// ReorderLayer performs a stable single-element move within the stack.
func (s *DocumentStore) ReorderLayer(docID string, from, to int) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !doc.MoveLayer(from, to) {
		s.mu.Unlock()
		return pperr.InvalidField("layer index", fmt.Sprintf("move %d -> %d with %d layers", from, to, len(doc.Layers)))
	}
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindLayer, DocumentID: docID})
	return nil
}

// SetActiveLayer focuses a layer for painting.
func (s *DocumentStore) SetActiveLayer(docID, layerID string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !doc.HasLayer(layerID) {
		s.mu.Unlock()
		return pperr.LayerNotFound(layerID)
	}
	doc.ActiveLayerID = layerID
	s.mu.Unlock()

	s.publish(Event{Action: ActionActivated, Kind: KindLayer, DocumentID: docID, TargetID: layerID})
	return nil
}

// SetSelectedLayers replaces the selection set. Every id must reference an
// existing layer; otherwise the selection is left untouched.
func (s *DocumentStore) SetSelectedLayers(docID string, layerIDs []string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	next := make(map[string]bool, len(layerIDs))
	for _, lid := range layerIDs {
		if !doc.HasLayer(lid) {
			s.mu.Unlock()
			return pperr.LayerNotFound(lid)
		}
		next[lid] = true
	}
	doc.SelectedLayerIDs = next
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindLayer, DocumentID: docID})
	return nil
}

// WritePixel paints a single pixel on a layer. Writes outside the document
// bounds, and writes to a layer whose bitmap is still decoding, are silent
// no-ops.
func (s *DocumentStore) WritePixel(docID, layerID string, x, y int, c model.RGBA) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	layer, _ := doc.Layer(layerID)
	if layer == nil {
		s.mu.Unlock()
		return pperr.LayerNotFound(layerID)
	}
	if layer.Pixels == nil {
		s.mu.Unlock()
		return nil
	}
	if x < 0 || x >= doc.Width || y < 0 || y >= doc.Height {
		s.mu.Unlock()
		return nil
	}
	layer.Pixels.SetPixel(x, y, c)
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindPixel, DocumentID: docID, TargetID: layerID})
	return nil
}

// CompleteBitmapDecode applies an asynchronously decoded bitmap to a layer.
// If the document or layer was closed or deleted while the decode was in
// flight, the result is discarded as a no-op.
func (s *DocumentStore) CompleteBitmapDecode(docID, layerID string, bm *model.Bitmap) {
	s.mu.Lock()
	doc, ok := s.documents[docID]
	if !ok {
		s.mu.Unlock()
		return
	}
	layer, _ := doc.Layer(layerID)
	if layer == nil {
		s.mu.Unlock()
		return
	}
	layer.Pixels = bm
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindLayer, DocumentID: docID, TargetID: layerID})
}

func (s *DocumentStore) layerLocked(docID, layerID string) (*model.Layer, error) {
	doc, err := s.documentLocked(docID)
	if err != nil {
		return nil, err
	}
	layer, _ := doc.Layer(layerID)
	if layer == nil {
		return nil, pperr.LayerNotFound(layerID)
	}
	return layer, nil
}
