package store

import (
	"testing"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
)

func TestAddLayerGoesOnTopAndBecomesActive(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	bgID := doc.Layers[0].ID

	layer, err := s.AddLayer(doc.ID, "Sketch")
	if err != nil {
		t.Fatalf("AddLayer failed: %v", err)
	}

	if doc.Layers[0].ID != layer.ID {
		t.Error("new layer is not at the top of the stack")
	}
	if doc.ActiveLayerID != layer.ID {
		t.Error("new layer is not active")
	}
	if !doc.SelectedLayerIDs[layer.ID] || doc.SelectedLayerIDs[bgID] {
		t.Error("new layer is not the sole selection")
	}
	if got := layer.Pixels.Pixel(0, 0); got != model.Transparent {
		t.Errorf("new layer pixel = %v, want transparent", got)
	}
}

func TestAddLayerGeneratesName(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)

	layer, err := s.AddLayer(doc.ID, "")
	if err != nil {
		t.Fatalf("AddLayer failed: %v", err)
	}
	if layer.Name != "Layer 2" {
		t.Errorf("generated name = %q, want %q", layer.Name, "Layer 2")
	}
}

func TestDeleteActiveLayerFallsBackToTop(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	second, _ := s.AddLayer(doc.ID, "second")
	third, _ := s.AddLayer(doc.ID, "third")

	// third is on top and active; deleting it should activate the new top.
	if err := s.DeleteLayer(doc.ID, third.ID); err != nil {
		t.Fatalf("DeleteLayer failed: %v", err)
	}
	if doc.ActiveLayerID != second.ID {
		t.Errorf("active layer = %q, want new top %q", doc.ActiveLayerID, second.ID)
	}
}

func TestDeleteLastLayerLeavesNoActive(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)

	if err := s.DeleteLayer(doc.ID, doc.Layers[0].ID); err != nil {
		t.Fatalf("DeleteLayer failed: %v", err)
	}
	if len(doc.Layers) != 0 {
		t.Fatalf("document still has %d layers", len(doc.Layers))
	}
	if doc.ActiveLayerID != "" {
		t.Errorf("active layer = %q, want none", doc.ActiveLayerID)
	}
}

func TestDeleteInactiveLayerKeepsActive(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	bgID := doc.Layers[0].ID
	top, _ := s.AddLayer(doc.ID, "top")

	if err := s.DeleteLayer(doc.ID, bgID); err != nil {
		t.Fatalf("DeleteLayer failed: %v", err)
	}
	if doc.ActiveLayerID != top.ID {
		t.Error("deleting an inactive layer moved activation")
	}
}

func TestToggleLayerVisibility(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.Layers[0].ID

	if err := s.ToggleLayerVisibility(doc.ID, layerID); err != nil {
		t.Fatalf("ToggleLayerVisibility failed: %v", err)
	}
	if doc.Layers[0].Visible {
		t.Error("layer still visible after toggle")
	}
	if err := s.ToggleLayerVisibility(doc.ID, layerID); err != nil {
		t.Fatalf("ToggleLayerVisibility failed: %v", err)
	}
	if !doc.Layers[0].Visible {
		t.Error("layer still hidden after second toggle")
	}
}

func TestRenameLayer(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)

	if err := s.RenameLayer(doc.ID, doc.Layers[0].ID, "Base Coat"); err != nil {
		t.Fatalf("RenameLayer failed: %v", err)
	}
	if doc.Layers[0].Name != "Base Coat" {
		t.Errorf("name = %q, want %q", doc.Layers[0].Name, "Base Coat")
	}

	if err := s.RenameLayer(doc.ID, "nope", "x"); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestReorderLayer(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	s.AddLayer(doc.ID, "mid")
	top, _ := s.AddLayer(doc.ID, "top")

	if err := s.ReorderLayer(doc.ID, 0, 2); err != nil {
		t.Fatalf("ReorderLayer failed: %v", err)
	}
	if doc.Layers[2].ID != top.ID {
		t.Error("layer did not move to the bottom")
	}

	if err := s.ReorderLayer(doc.ID, 0, 9); !pperr.IsValidationError(err) {
		t.Errorf("out-of-range reorder: expected validation error, got %v", err)
	}
}

func TestSetActiveLayer(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	bgID := doc.Layers[0].ID
	s.AddLayer(doc.ID, "top")

	if err := s.SetActiveLayer(doc.ID, bgID); err != nil {
		t.Fatalf("SetActiveLayer failed: %v", err)
	}
	if doc.ActiveLayerID != bgID {
		t.Error("active layer did not change")
	}

	if err := s.SetActiveLayer(doc.ID, "nope"); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestSetSelectedLayersValidatesMembership(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	bgID := doc.Layers[0].ID
	top, _ := s.AddLayer(doc.ID, "top")

	if err := s.SetSelectedLayers(doc.ID, []string{bgID, top.ID}); err != nil {
		t.Fatalf("SetSelectedLayers failed: %v", err)
	}
	if !doc.SelectedLayerIDs[bgID] || !doc.SelectedLayerIDs[top.ID] {
		t.Error("selection not applied")
	}

	if err := s.SetSelectedLayers(doc.ID, []string{bgID, "nope"}); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
	if !doc.SelectedLayerIDs[bgID] || !doc.SelectedLayerIDs[top.ID] {
		t.Error("failed selection call mutated the selection")
	}
}

func TestWritePixel(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.ActiveLayerID
	red := model.RGBA{R: 255, G: 0, B: 0, A: 255}

	if err := s.WritePixel(doc.ID, layerID, 1, 1, red); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if got := doc.Layers[0].Pixels.Pixel(1, 1); got != red {
		t.Errorf("pixel = %v, want red", got)
	}

	// Out-of-bounds writes are silent no-ops.
	before := doc.Layers[0].Pixels.Clone()
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if err := s.WritePixel(doc.ID, layerID, pt[0], pt[1], red); err != nil {
			t.Errorf("out-of-bounds WritePixel(%d,%d) returned %v, want nil", pt[0], pt[1], err)
		}
	}
	if !doc.Layers[0].Pixels.Equal(before) {
		t.Error("out-of-bounds write mutated the bitmap")
	}

	if err := s.WritePixel(doc.ID, "nope", 0, 0, red); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestWritePixelSkipsUndecodedLayer(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	doc.Layers[0].Pixels = nil

	if err := s.WritePixel(doc.ID, doc.Layers[0].ID, 0, 0, model.Black); err != nil {
		t.Errorf("write to undecoded layer returned %v, want silent no-op", err)
	}
}

func TestCompleteBitmapDecode(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.Layers[0].ID
	doc.Layers[0].Pixels = nil

	bm := model.NewBitmap(4, 4)
	bm.Fill(model.Black)
	s.CompleteBitmapDecode(doc.ID, layerID, bm)

	if doc.Layers[0].Pixels == nil || doc.Layers[0].Pixels.Pixel(0, 0) != model.Black {
		t.Error("decode completion was not applied")
	}
}

func TestCompleteBitmapDecodeDiscardedAfterDeletion(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.Layers[0].ID

	if err := s.DeleteLayer(doc.ID, layerID); err != nil {
		t.Fatalf("DeleteLayer failed: %v", err)
	}

	// Late decode completion for a deleted layer must be a no-op.
	s.CompleteBitmapDecode(doc.ID, layerID, model.NewBitmap(4, 4))
	if len(doc.Layers) != 0 {
		t.Error("late decode resurrected a deleted layer")
	}

	// Same for a closed document.
	s.CloseDocument(doc.ID)
	s.CompleteBitmapDecode(doc.ID, layerID, model.NewBitmap(4, 4))
}
