package store

import (
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
)

// SetCurrentColor changes the picked drawing color. While a palette entry
// is selected, the picker and that entry are two-way bound: the entry's
// color is live-updated to match.
func (s *DocumentStore) SetCurrentColor(docID string, c *model.RGBA) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	events := []Event{{Action: ActionUpdated, Kind: KindColor, DocumentID: docID}}
	if c == nil {
		doc.Color.CurrentColor = nil
	} else {
		cc := *c
		doc.Color.CurrentColor = &cc
		if doc.Color.SelectedEntryID != "" {
			if entry, i := doc.Palette.Entry(doc.Color.SelectedEntryID); i >= 0 {
				entry.Color = cc
				events = append(events, Event{Action: ActionUpdated, Kind: KindPalette, DocumentID: docID, TargetID: entry.ID})
			}
		}
	}
	s.mu.Unlock()

	s.publish(events...)
	return nil
}

// AddPaletteEntry appends a color to the palette in insertion order.
// The returned entry is a detached copy.
func (s *DocumentStore) AddPaletteEntry(docID string, c model.RGBA) (*model.PaletteEntry, error) {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	entry := &model.PaletteEntry{ID: id.Generate(), Color: c}
	doc.Palette.Add(entry)
	out := *entry
	s.mu.Unlock()

	s.publish(Event{Action: ActionCreated, Kind: KindPalette, DocumentID: docID, TargetID: out.ID})
	return &out, nil
}

// DeletePaletteEntry removes an entry. Deleting the selected entry clears
// the selection; the current color stays picked.
func (s *DocumentStore) DeletePaletteEntry(docID, entryID string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !doc.Palette.Remove(entryID) {
		s.mu.Unlock()
		return pperr.PaletteEntryNotFound(entryID)
	}
	if doc.Color.SelectedEntryID == entryID {
		doc.Color.SelectedEntryID = ""
	}
	s.mu.Unlock()

	s.publish(Event{Action: ActionDeleted, Kind: KindPalette, DocumentID: docID, TargetID: entryID})
	return nil
}

// ReorderPalette rewrites the palette's insertion order. ids must be a
// permutation of the current entry ids.
func (s *DocumentStore) ReorderPalette(docID string, ids []string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !doc.Palette.Reorder(ids) {
		s.mu.Unlock()
		return pperr.InvalidField("palette order", "ids must be a permutation of the current entries")
	}
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindPalette, DocumentID: docID})
	return nil
}

// UpdatePaletteEntryColor changes an entry's color value. If the entry is
// selected, the current color follows it (two-way binding).
func (s *DocumentStore) UpdatePaletteEntryColor(docID, entryID string, c model.RGBA) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	entry, i := doc.Palette.Entry(entryID)
	if i < 0 {
		s.mu.Unlock()
		return pperr.PaletteEntryNotFound(entryID)
	}
	entry.Color = c

	events := []Event{{Action: ActionUpdated, Kind: KindPalette, DocumentID: docID, TargetID: entryID}}
	if doc.Color.SelectedEntryID == entryID {
		cc := c
		doc.Color.CurrentColor = &cc
		events = append(events, Event{Action: ActionUpdated, Kind: KindColor, DocumentID: docID})
	}
	s.mu.Unlock()

	s.publish(events...)
	return nil
}

// SetSelectedPaletteEntry selects an entry and adopts its color as the
// current color. An empty entryID deselects and clears the current color.
func (s *DocumentStore) SetSelectedPaletteEntry(docID, entryID string) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	if entryID == "" {
		doc.Color.SelectedEntryID = ""
		doc.Color.CurrentColor = nil
	} else {
		entry, i := doc.Palette.Entry(entryID)
		if i < 0 {
			s.mu.Unlock()
			return pperr.PaletteEntryNotFound(entryID)
		}
		doc.Color.SelectedEntryID = entryID
		cc := entry.Color
		doc.Color.CurrentColor = &cc
	}
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindColor, DocumentID: docID, TargetID: entryID})
	return nil
}

// CycleSortOrder advances the palette view order:
// insertion -> lightness-asc -> lightness-desc -> insertion.
func (s *DocumentStore) CycleSortOrder(docID string) (model.SortOrder, error) {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	doc.Color.SortOrder = doc.Color.SortOrder.Next()
	order := doc.Color.SortOrder
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindPalette, DocumentID: docID})
	return order, nil
}

// PaletteView returns copies of the palette entries in the document's
// current display order. The underlying insertion order is never changed
// by sorts.
func (s *DocumentStore) PaletteView(docID string) ([]*model.PaletteEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		return nil, err
	}
	view := doc.Palette.View(doc.Color.SortOrder)
	out := make([]*model.PaletteEntry, len(view))
	for i, e := range view {
		c := *e
		out[i] = &c
	}
	return out, nil
}

// SetPalette replaces the whole palette, clearing any entry selection.
// Used by palette import; a failed import never reaches this point.
func (s *DocumentStore) SetPalette(docID string, entries []*model.PaletteEntry) error {
	s.mu.Lock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	doc.Palette = &model.Palette{Entries: entries}
	doc.Color.SelectedEntryID = ""
	s.mu.Unlock()

	s.publish(Event{Action: ActionUpdated, Kind: KindPalette, DocumentID: docID})
	return nil
}
