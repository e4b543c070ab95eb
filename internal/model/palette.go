package model

import (
	"sort"

	"github.com/pixelpad/pixelpad/internal/colorspace"
)

// PaletteEntry is one reusable named color owned by a document's palette.
type PaletteEntry struct {
	ID    string `json:"id"`
	Color RGBA   `json:"color"`
	Name  string `json:"name,omitempty"`
}

// SortOrder selects how the palette view is ordered. Sorting is a view:
// the underlying insertion order is never rewritten by a sort change.
type SortOrder string

const (
	SortInsertion     SortOrder = "insertion"
	SortLightnessAsc  SortOrder = "lightness-asc"
	SortLightnessDesc SortOrder = "lightness-desc"
)

// Next cycles insertion -> lightness-asc -> lightness-desc -> insertion.
func (s SortOrder) Next() SortOrder {
	switch s {
	case SortInsertion:
		return SortLightnessAsc
	case SortLightnessAsc:
		return SortLightnessDesc
	default:
		return SortInsertion
	}
}

// ParseSortOrder maps a stored string to a SortOrder, defaulting to insertion.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortLightnessAsc, SortLightnessDesc:
		return SortOrder(s)
	default:
		return SortInsertion
	}
}

// ColorState holds a document's picker/palette selection state.
type ColorState struct {
	CurrentColor    *RGBA // nil when no color is picked
	SelectedEntryID string
	SortOrder       SortOrder
}

// Palette is an ordered collection of entries. Entries holds insertion
// order; display order under a sort is derived via View.
type Palette struct {
	Entries []*PaletteEntry
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{}
}

// DefaultPalette returns the palette every new document starts with.
func DefaultPalette(newID func() string) *Palette {
	return &Palette{Entries: []*PaletteEntry{
		{ID: newID(), Color: Black, Name: "Black"},
		{ID: newID(), Color: White, Name: "White"},
	}}
}

// Entry returns the entry with the given id and its insertion index, or (nil, -1).
func (p *Palette) Entry(entryID string) (*PaletteEntry, int) {
	for i, e := range p.Entries {
		if e.ID == entryID {
			return e, i
		}
	}
	return nil, -1
}

// Add appends an entry in insertion order.
func (p *Palette) Add(e *PaletteEntry) {
	p.Entries = append(p.Entries, e)
}

// Remove deletes the entry with the given id.
// Returns false if no such entry exists.
func (p *Palette) Remove(entryID string) bool {
	_, i := p.Entry(entryID)
	if i < 0 {
		return false
	}
	p.Entries = append(p.Entries[:i], p.Entries[i+1:]...)
	return true
}

// Reorder rewrites the insertion order to match ids. Every current entry
// must appear exactly once; otherwise the palette is left untouched and
// Reorder returns false.
func (p *Palette) Reorder(ids []string) bool {
	if len(ids) != len(p.Entries) {
		return false
	}
	seen := make(map[string]bool, len(ids))
	next := make([]*PaletteEntry, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return false
		}
		seen[id] = true
		e, i := p.Entry(id)
		if i < 0 {
			return false
		}
		next = append(next, e)
	}
	p.Entries = next
	return true
}

// View returns the entries in display order for the given sort. The
// insertion slice is never mutated; lightness sorts are stable so equal
// colors keep their insertion order.
func (p *Palette) View(order SortOrder) []*PaletteEntry {
	out := make([]*PaletteEntry, len(p.Entries))
	copy(out, p.Entries)

	switch order {
	case SortLightnessAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return lightness(out[i].Color) < lightness(out[j].Color)
		})
	case SortLightnessDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return lightness(out[i].Color) > lightness(out[j].Color)
		})
	}
	return out
}

// Clone returns a deep copy; entry pointers are not shared.
func (p *Palette) Clone() *Palette {
	out := &Palette{Entries: make([]*PaletteEntry, len(p.Entries))}
	for i, e := range p.Entries {
		c := *e
		out.Entries[i] = &c
	}
	return out
}

func lightness(c RGBA) float64 {
	return colorspace.Lightness(c.R, c.G, c.B)
}
