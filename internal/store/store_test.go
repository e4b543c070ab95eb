package store

import (
	"testing"

	"github.com/pixelpad/pixelpad/internal/composite"
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/testutil"
)

func newTestDoc(t *testing.T, s *DocumentStore) *model.Document {
	t.Helper()
	doc, err := s.CreateDocument("test", 4, 4, false)
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	return doc
}

func TestCreateDocumentDefaults(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)

	if len(doc.Layers) != 1 {
		t.Fatalf("new document has %d layers, want 1", len(doc.Layers))
	}
	bg := doc.Layers[0]
	if bg.Name != "Background" || !bg.Visible {
		t.Errorf("background layer = %q visible=%v", bg.Name, bg.Visible)
	}
	if got := bg.Pixels.Pixel(0, 0); got != model.White {
		t.Errorf("opaque background pixel = %v, want white", got)
	}
	if doc.ActiveLayerID != bg.ID {
		t.Error("background layer is not active")
	}
	if !doc.SelectedLayerIDs[bg.ID] {
		t.Error("background layer is not selected")
	}

	if len(doc.Palette.Entries) != 2 {
		t.Fatalf("seed palette has %d entries, want 2", len(doc.Palette.Entries))
	}
	if doc.Palette.Entries[0].Color != model.Black || doc.Palette.Entries[1].Color != model.White {
		t.Error("seed palette is not [Black, White]")
	}
	if doc.Color.CurrentColor == nil || *doc.Color.CurrentColor != model.Black {
		t.Error("current color is not black")
	}
	if doc.Color.SortOrder != model.SortInsertion {
		t.Errorf("sort order = %q, want insertion", doc.Color.SortOrder)
	}

	if s.ActiveDocumentID() != doc.ID {
		t.Error("new document is not the active document")
	}
}

func TestCreateDocumentTransparentBackground(t *testing.T) {
	s := New()
	doc, err := s.CreateDocument("t", 2, 2, true)
	if err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}
	if got := doc.Layers[0].Pixels.Pixel(0, 0); got != model.Transparent {
		t.Errorf("transparent background pixel = %v, want transparent", got)
	}
}

func TestCreateDocumentRejectsBadDimensions(t *testing.T) {
	s := New()
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 4}} {
		if _, err := s.CreateDocument("bad", dims[0], dims[1], false); !pperr.IsValidationError(err) {
			t.Errorf("CreateDocument(%dx%d): expected validation error, got %v", dims[0], dims[1], err)
		}
	}
}

func TestCloseDocumentActivationFallback(t *testing.T) {
	s := New()
	first := newTestDoc(t, s)
	second := newTestDoc(t, s)

	if s.ActiveDocumentID() != second.ID {
		t.Fatal("second document should be active")
	}

	if err := s.CloseDocument(second.ID); err != nil {
		t.Fatalf("CloseDocument failed: %v", err)
	}
	if s.ActiveDocumentID() != first.ID {
		t.Error("activation did not fall back to the remaining document")
	}

	if err := s.CloseDocument(first.ID); err != nil {
		t.Fatalf("CloseDocument failed: %v", err)
	}
	if s.ActiveDocumentID() != "" {
		t.Error("activation should be none after closing the last document")
	}

	if err := s.CloseDocument(first.ID); !pperr.IsNotFound(err) {
		t.Errorf("closing a closed document: expected not-found, got %v", err)
	}
}

func TestCloseInactiveDocumentKeepsActivation(t *testing.T) {
	s := New()
	first := newTestDoc(t, s)
	second := newTestDoc(t, s)

	if err := s.CloseDocument(first.ID); err != nil {
		t.Fatalf("CloseDocument failed: %v", err)
	}
	if s.ActiveDocumentID() != second.ID {
		t.Error("closing an inactive document changed activation")
	}
}

func TestActivateDocument(t *testing.T) {
	s := New()
	first := newTestDoc(t, s)
	newTestDoc(t, s)

	if err := s.ActivateDocument(first.ID); err != nil {
		t.Fatalf("ActivateDocument failed: %v", err)
	}
	if s.ActiveDocumentID() != first.ID {
		t.Error("activation did not move")
	}

	if err := s.ActivateDocument("nope"); !pperr.IsNotFound(err) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestAdoptDocumentIsAtomicallyVisible(t *testing.T) {
	s := New()
	doc := model.NewDocument("loaded", "loaded", 2, 2)
	doc.Layers = []*model.Layer{{ID: "l1", Name: "Background", Visible: true, Pixels: model.NewBitmap(2, 2)}}
	doc.ActiveLayerID = "l1"

	s.AdoptDocument(doc)

	got, err := s.Document("loaded")
	if err != nil {
		t.Fatalf("adopted document not retrievable: %v", err)
	}
	if got != doc || s.ActiveDocumentID() != "loaded" {
		t.Error("adopted document is not installed and active")
	}
}

func TestAdoptFixtureDocument(t *testing.T) {
	s := New()
	doc := testutil.TestDocument("fixture", "Fixture")

	s.AdoptDocument(doc)

	got, err := s.Document("fixture")
	if err != nil {
		t.Fatalf("adopted document not retrievable: %v", err)
	}
	if len(got.Palette.Entries) != 2 || got.ActiveLayerID != "fixture-layer1" {
		t.Errorf("fixture document adopted with %d palette entries, active layer %q",
			len(got.Palette.Entries), got.ActiveLayerID)
	}
}

func TestSnapshotIsDetachedCopy(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.Layers[0].ID

	snap, err := s.Snapshot(doc.ID)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	red := model.RGBA{R: 255, G: 0, B: 0, A: 255}
	s.WritePixel(doc.ID, layerID, 0, 0, red)
	s.AddPaletteEntry(doc.ID, red)
	s.RenameLayer(doc.ID, layerID, "renamed")

	if got := snap.Layers[0].Pixels.Pixel(0, 0); got == red {
		t.Error("snapshot bitmap shares storage with the live document")
	}
	if len(snap.Palette.Entries) != 2 {
		t.Errorf("snapshot palette has %d entries, want the 2 it was taken with", len(snap.Palette.Entries))
	}
	if snap.Layers[0].Name == "renamed" {
		t.Error("snapshot layer shares state with the live document")
	}
}

// Exercises snapshot reads racing pixel writes; run with -race.
func TestSnapshotCompositeDuringConcurrentWrites(t *testing.T) {
	s := New()
	doc := newTestDoc(t, s)
	layerID := doc.Layers[0].ID

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s.WritePixel(doc.ID, layerID, i%4, (i/4)%4, model.RGBA{R: uint8(i), G: 0, B: 0, A: 255})
		}
	}()

	for i := 0; i < 100; i++ {
		snap, err := s.Snapshot(doc.ID)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		composite.Composite(snap.Layers, snap.Width, snap.Height)
	}
	<-done
}

func TestSubscribeReceivesEvents(t *testing.T) {
	s := New()

	var events []Event
	s.Subscribe(SubscriberFunc(func(e Event) { events = append(events, e) }))

	doc := newTestDoc(t, s)
	if len(events) < 2 {
		t.Fatalf("got %d events after create, want created+activated", len(events))
	}
	if events[0].Kind != KindDocument || events[0].Action != ActionCreated || events[0].DocumentID != doc.ID {
		t.Errorf("first event = %+v, want document created", events[0])
	}

	events = nil
	if err := s.WritePixel(doc.ID, doc.ActiveLayerID, 1, 1, model.Black); err != nil {
		t.Fatalf("WritePixel failed: %v", err)
	}
	if len(events) != 1 || events[0].Kind != KindPixel {
		t.Errorf("pixel write published %+v, want one pixel event", events)
	}
}
