// Package store owns the set of open documents and every mutation the UI
// performs on them. Each public method validates first and applies second,
// so a failed call leaves no partial mutation behind; each successful call
// is immediately observable by subsequent reads and is followed by a change
// notification to subscribers.
package store

import (
	"fmt"
	"sync"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
)

// The editor model is single-threaded in spirit (UI event -> mutation ->
// re-render), but the HTTP surface and the palette watcher call in from
// their own goroutines, so a mutex serializes public operations.
type DocumentStore struct {
	mu        sync.Mutex
	documents map[string]*model.Document
	order     []string // creation order, drives activation fallback
	activeID  string

	publisher
}

// New creates an empty document store.
func New() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*model.Document),
	}
}

// CreateDocument allocates a document with a single background layer
// (transparent or opaque white per the flag), seeds the default palette,
// sets the current color to black, and makes the document active.
func (s *DocumentStore) CreateDocument(name string, width, height int, transparent bool) (*model.Document, error) {
	if width <= 0 || height <= 0 {
		return nil, pperr.InvalidField("dimensions", fmt.Sprintf("%dx%d (must be positive)", width, height))
	}
	if name == "" {
		name = "Untitled"
	}

	background := &model.Layer{
		ID:      id.Generate(),
		Name:    "Background",
		Visible: true,
		Pixels:  model.NewBitmap(width, height),
	}
	if !transparent {
		background.Pixels.Fill(model.White)
	}

	doc := model.NewDocument(id.Generate(), name, width, height)
	doc.Layers = []*model.Layer{background}
	doc.ActiveLayerID = background.ID
	doc.SelectedLayerIDs[background.ID] = true
	doc.Palette = model.DefaultPalette(id.Generate)
	black := model.Black
	doc.Color = model.ColorState{
		CurrentColor: &black,
		SortOrder:    model.SortInsertion,
	}

	s.mu.Lock()
	s.documents[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	s.activeID = doc.ID
	s.mu.Unlock()

	s.publish(
		Event{Action: ActionCreated, Kind: KindDocument, DocumentID: doc.ID},
		Event{Action: ActionActivated, Kind: KindDocument, DocumentID: doc.ID},
	)
	return doc, nil
}

// AdoptDocument installs a fully-built document (from a file load) in one
// step and makes it active. A document with the same id is replaced, which
// gives re-opening a save file reload semantics.
func (s *DocumentStore) AdoptDocument(doc *model.Document) {
	s.mu.Lock()
	if _, exists := s.documents[doc.ID]; !exists {
		s.order = append(s.order, doc.ID)
	}
	s.documents[doc.ID] = doc
	s.activeID = doc.ID
	s.mu.Unlock()

	s.publish(
		Event{Action: ActionCreated, Kind: KindDocument, DocumentID: doc.ID},
		Event{Action: ActionActivated, Kind: KindDocument, DocumentID: doc.ID},
	)
}

// CloseDocument removes a document and all its owned state. If it was
// active, activation falls to another open document or to none.
func (s *DocumentStore) CloseDocument(docID string) error {
	s.mu.Lock()
	if _, ok := s.documents[docID]; !ok {
		s.mu.Unlock()
		return pperr.DocumentNotFound(docID)
	}

	delete(s.documents, docID)
	for i, oid := range s.order {
		if oid == docID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	events := []Event{{Action: ActionDeleted, Kind: KindDocument, DocumentID: docID}}
	if s.activeID == docID {
		s.activeID = ""
		if len(s.order) > 0 {
			s.activeID = s.order[len(s.order)-1]
		}
		events = append(events, Event{Action: ActionActivated, Kind: KindDocument, DocumentID: s.activeID})
	}
	s.mu.Unlock()

	s.publish(events...)
	return nil
}

// ActivateDocument focuses the given document.
func (s *DocumentStore) ActivateDocument(docID string) error {
	s.mu.Lock()
	if _, ok := s.documents[docID]; !ok {
		s.mu.Unlock()
		return pperr.DocumentNotFound(docID)
	}
	s.activeID = docID
	s.mu.Unlock()

	s.publish(Event{Action: ActionActivated, Kind: KindDocument, DocumentID: docID})
	return nil
}

// ActiveDocumentID returns the focused document's id, or empty when none.
func (s *DocumentStore) ActiveDocumentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// ActiveDocument returns the focused document, or nil when none.
func (s *DocumentStore) ActiveDocument() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeID == "" {
		return nil
	}
	return s.documents[s.activeID]
}

// Document returns the live document with the given id. The pointer shares
// state with the store: callers on other goroutines must not read layers,
// bitmaps, or palette entries through it while mutations run. Concurrent
// readers use Snapshot instead.
func (s *DocumentStore) Document(docID string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.documentLocked(docID)
}

// Snapshot returns a deep copy of a document, taken under the store lock.
// The copy shares nothing mutable with the store, so it can be composited,
// serialized, or marshalled while mutations continue.
func (s *DocumentStore) Snapshot(docID string) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.documentLocked(docID)
	if err != nil {
		return nil, err
	}
	return doc.Clone(), nil
}

// Documents returns all open documents in creation order.
func (s *DocumentStore) Documents() []*model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Document, 0, len(s.order))
	for _, docID := range s.order {
		out = append(out, s.documents[docID])
	}
	return out
}

func (s *DocumentStore) documentLocked(docID string) (*model.Document, error) {
	doc, ok := s.documents[docID]
	if !ok {
		return nil, pperr.DocumentNotFound(docID)
	}
	return doc, nil
}
