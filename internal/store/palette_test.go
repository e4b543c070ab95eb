package store

import (
	"testing"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
)

func TestSortCycleIsAViewNotAMutation(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	gray := model.RGBA{R: 200, G: 200, B: 200, A: 255}

	entry, err := s.AddPaletteEntry(doc.ID, gray)
	if err != nil {
		t.Fatalf("AddPaletteEntry failed: %v", err)
	}
	blackID := doc.Palette.Entries[0].ID
	whiteID := doc.Palette.Entries[1].ID

	order, err := s.CycleSortOrder(doc.ID)
	if err != nil || order != model.SortLightnessAsc {
		t.Fatalf("CycleSortOrder = %q, %v; want lightness-asc", order, err)
	}

	view, err := s.PaletteView(doc.ID)
	if err != nil {
		t.Fatalf("PaletteView failed: %v", err)
	}
	wantView := []string{blackID, entry.ID, whiteID}
	for i, want := range wantView {
		if view[i].ID != want {
			t.Fatalf("lightness-asc view[%d] = %s, want %s", i, view[i].ID, want)
		}
	}

	// Cycle through desc back to insertion: original order restored.
	s.CycleSortOrder(doc.ID)
	order, _ = s.CycleSortOrder(doc.ID)
	if order != model.SortInsertion {
		t.Fatalf("third cycle = %q, want insertion", order)
	}

	view, _ = s.PaletteView(doc.ID)
	wantInsertion := []string{blackID, whiteID, entry.ID}
	for i, want := range wantInsertion {
		if view[i].ID != want {
			t.Fatalf("insertion view[%d] = %s, want %s", i, view[i].ID, want)
		}
	}
}

func TestSelectPaletteEntryAdoptsColor(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	whiteID := doc.Palette.Entries[1].ID

	if err := s.SetSelectedPaletteEntry(doc.ID, whiteID); err != nil {
		t.Fatalf("SetSelectedPaletteEntry failed: %v", err)
	}
	if doc.Color.SelectedEntryID != whiteID {
		t.Error("entry not selected")
	}
	if doc.Color.CurrentColor == nil || *doc.Color.CurrentColor != model.White {
		t.Error("current color did not adopt the entry's color")
	}

	// Deselecting clears the current color.
	if err := s.SetSelectedPaletteEntry(doc.ID, ""); err != nil {
		t.Fatalf("deselect failed: %v", err)
	}
	if doc.Color.SelectedEntryID != "" || doc.Color.CurrentColor != nil {
		t.Error("deselect did not clear selection and current color")
	}

	if err := s.SetSelectedPaletteEntry(doc.ID, "nope"); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestCurrentColorLiveUpdatesSelectedEntry(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	whiteID := doc.Palette.Entries[1].ID
	teal := model.RGBA{R: 0, G: 128, B: 128, A: 255}

	s.SetSelectedPaletteEntry(doc.ID, whiteID)
	if err := s.SetCurrentColor(doc.ID, &teal); err != nil {
		t.Fatalf("SetCurrentColor failed: %v", err)
	}

	entry, _ := doc.Palette.Entry(whiteID)
	if entry.Color != teal {
		t.Errorf("selected entry color = %v, want %v (two-way binding)", entry.Color, teal)
	}
}

func TestCurrentColorWithoutSelectionLeavesPaletteAlone(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	teal := model.RGBA{R: 0, G: 128, B: 128, A: 255}

	if err := s.SetCurrentColor(doc.ID, &teal); err != nil {
		t.Fatalf("SetCurrentColor failed: %v", err)
	}
	if *doc.Color.CurrentColor != teal {
		t.Error("current color not set")
	}
	if doc.Palette.Entries[0].Color != model.Black || doc.Palette.Entries[1].Color != model.White {
		t.Error("palette mutated without a selection")
	}

	if err := s.SetCurrentColor(doc.ID, nil); err != nil {
		t.Fatalf("SetCurrentColor(nil) failed: %v", err)
	}
	if doc.Color.CurrentColor != nil {
		t.Error("current color not cleared")
	}
}

func TestUpdatePaletteEntryColorFollowsSelection(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	blackID := doc.Palette.Entries[0].ID
	plum := model.RGBA{R: 120, G: 30, B: 90, A: 255}

	s.SetSelectedPaletteEntry(doc.ID, blackID)
	if err := s.UpdatePaletteEntryColor(doc.ID, blackID, plum); err != nil {
		t.Fatalf("UpdatePaletteEntryColor failed: %v", err)
	}
	if *doc.Color.CurrentColor != plum {
		t.Error("current color did not follow the selected entry")
	}

	if err := s.UpdatePaletteEntryColor(doc.ID, "nope", plum); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestDeletePaletteEntryClearsSelection(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	blackID := doc.Palette.Entries[0].ID

	s.SetSelectedPaletteEntry(doc.ID, blackID)
	if err := s.DeletePaletteEntry(doc.ID, blackID); err != nil {
		t.Fatalf("DeletePaletteEntry failed: %v", err)
	}
	if doc.Color.SelectedEntryID != "" {
		t.Error("deleted entry still selected")
	}
	if len(doc.Palette.Entries) != 1 {
		t.Errorf("palette has %d entries, want 1", len(doc.Palette.Entries))
	}

	if err := s.DeletePaletteEntry(doc.ID, blackID); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestReorderPalette(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	blackID := doc.Palette.Entries[0].ID
	whiteID := doc.Palette.Entries[1].ID

	if err := s.ReorderPalette(doc.ID, []string{whiteID, blackID}); err != nil {
		t.Fatalf("ReorderPalette failed: %v", err)
	}
	if doc.Palette.Entries[0].ID != whiteID {
		t.Error("reorder not applied")
	}

	if err := s.ReorderPalette(doc.ID, []string{whiteID}); !pperr.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetPaletteReplacesAndDeselects(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	s.SetSelectedPaletteEntry(doc.ID, doc.Palette.Entries[0].ID)

	imported := []*model.PaletteEntry{
		{ID: "i1", Color: model.RGBA{R: 1, G: 2, B: 3, A: 255}, Name: "One"},
	}
	if err := s.SetPalette(doc.ID, imported); err != nil {
		t.Fatalf("SetPalette failed: %v", err)
	}
	if len(doc.Palette.Entries) != 1 || doc.Palette.Entries[0].ID != "i1" {
		t.Error("palette not replaced")
	}
	if doc.Color.SelectedEntryID != "" {
		t.Error("stale selection survived palette replacement")
	}
}
