package model

// Document is one open canvas with its layer stack, palette, and color state.
// Layer order is top-to-bottom paint order: index 0 is the topmost layer.
type Document struct {
	ID     string
	Name   string
	Width  int
	Height int

	Layers           []*Layer
	ActiveLayerID    string // empty when no layer is active
	SelectedLayerIDs map[string]bool

	Palette *Palette
	Color   ColorState
}

// Layer is one paintable raster plane within a Document.
// Pixels is nil while the layer's bitmap is still being decoded; such
// layers are not paintable and are skipped by compositing.
type Layer struct {
	ID      string
	Name    string
	Visible bool
	Pixels  *Bitmap
}

// NewDocument creates an empty document shell with no layers.
func NewDocument(id, name string, width, height int) *Document {
	return &Document{
		ID:               id,
		Name:             name,
		Width:            width,
		Height:           height,
		SelectedLayerIDs: make(map[string]bool),
		Palette:          NewPalette(),
	}
}

// Layer returns the layer with the given id and its index, or (nil, -1).
func (d *Document) Layer(layerID string) (*Layer, int) {
	for i, l := range d.Layers {
		if l.ID == layerID {
			return l, i
		}
	}
	return nil, -1
}

// HasLayer reports whether a layer with the given id exists.
func (d *Document) HasLayer(layerID string) bool {
	_, i := d.Layer(layerID)
	return i >= 0
}

// InsertLayerTop places l at index 0, the top of the paint order.
func (d *Document) InsertLayerTop(l *Layer) {
	d.Layers = append([]*Layer{l}, d.Layers...)
}

// RemoveLayer deletes the layer with the given id.
// Returns false if no such layer exists.
func (d *Document) RemoveLayer(layerID string) bool {
	_, i := d.Layer(layerID)
	if i < 0 {
		return false
	}
	d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
	delete(d.SelectedLayerIDs, layerID)
	return true
}

// MoveLayer performs a stable single-element move from one index to another.
// Returns false if either index is out of range.
func (d *Document) MoveLayer(from, to int) bool {
	if from < 0 || from >= len(d.Layers) || to < 0 || to >= len(d.Layers) {
		return false
	}
	if from == to {
		return true
	}
	l := d.Layers[from]
	rest := append(d.Layers[:from:from], d.Layers[from+1:]...)
	d.Layers = append(rest[:to:to], append([]*Layer{l}, rest[to:]...)...)
	return true
}

// TopLayerID returns the id of the topmost layer, or empty when there are none.
func (d *Document) TopLayerID() string {
	if len(d.Layers) == 0 {
		return ""
	}
	return d.Layers[0].ID
}

// Clone returns a deep copy sharing no mutable state with the original.
// Used to hand document state across goroutine boundaries.
func (d *Document) Clone() *Document {
	out := &Document{
		ID:               d.ID,
		Name:             d.Name,
		Width:            d.Width,
		Height:           d.Height,
		Layers:           make([]*Layer, len(d.Layers)),
		ActiveLayerID:    d.ActiveLayerID,
		SelectedLayerIDs: make(map[string]bool, len(d.SelectedLayerIDs)),
		Palette:          d.Palette.Clone(),
		Color: ColorState{
			SelectedEntryID: d.Color.SelectedEntryID,
			SortOrder:       d.Color.SortOrder,
		},
	}
	for i, l := range d.Layers {
		out.Layers[i] = l.Clone()
	}
	for lid, sel := range d.SelectedLayerIDs {
		out.SelectedLayerIDs[lid] = sel
	}
	if d.Color.CurrentColor != nil {
		c := *d.Color.CurrentColor
		out.Color.CurrentColor = &c
	}
	return out
}

// Clone returns a deep copy of the layer, bitmap included.
func (l *Layer) Clone() *Layer {
	out := &Layer{ID: l.ID, Name: l.Name, Visible: l.Visible}
	if l.Pixels != nil {
		out.Pixels = l.Pixels.Clone()
	}
	return out
}
