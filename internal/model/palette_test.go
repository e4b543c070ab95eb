package model

import "testing"

func testPalette() *Palette {
	return &Palette{Entries: []*PaletteEntry{
		{ID: "e1", Color: Black, Name: "Black"},
		{ID: "e2", Color: White, Name: "White"},
	}}
}

func TestSortOrderCycle(t *testing.T) {
	order := SortInsertion
	want := []SortOrder{SortLightnessAsc, SortLightnessDesc, SortInsertion}
	for _, w := range want {
		order = order.Next()
		if order != w {
			t.Fatalf("Next() = %q, want %q", order, w)
		}
	}
}

func TestViewIsNotAMutation(t *testing.T) {
	p := testPalette()
	p.Add(&PaletteEntry{ID: "e3", Color: RGBA{200, 200, 200, 255}})

	asc := p.View(SortLightnessAsc)
	gotIDs := []string{asc[0].ID, asc[1].ID, asc[2].ID}
	wantIDs := []string{"e1", "e3", "e2"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("lightness-asc view = %v, want %v", gotIDs, wantIDs)
		}
	}

	// Underlying insertion order must be untouched.
	ins := p.View(SortInsertion)
	wantIns := []string{"e1", "e2", "e3"}
	for i := range wantIns {
		if ins[i].ID != wantIns[i] {
			t.Fatalf("insertion view = [%s %s %s], want %v", ins[0].ID, ins[1].ID, ins[2].ID, wantIns)
		}
	}
}

func TestViewLightnessDesc(t *testing.T) {
	p := testPalette()
	desc := p.View(SortLightnessDesc)
	if desc[0].ID != "e2" || desc[1].ID != "e1" {
		t.Errorf("lightness-desc view = [%s %s], want [e2 e1]", desc[0].ID, desc[1].ID)
	}
}

func TestPaletteReorder(t *testing.T) {
	p := testPalette()

	if !p.Reorder([]string{"e2", "e1"}) {
		t.Fatal("Reorder with valid ids failed")
	}
	if p.Entries[0].ID != "e2" || p.Entries[1].ID != "e1" {
		t.Errorf("order after Reorder = [%s %s], want [e2 e1]", p.Entries[0].ID, p.Entries[1].ID)
	}

	// Invalid permutations leave the palette untouched.
	for _, ids := range [][]string{
		{"e1"},
		{"e1", "e1"},
		{"e1", "nope"},
		{"e1", "e2", "e3"},
	} {
		if p.Reorder(ids) {
			t.Errorf("Reorder(%v) succeeded, want rejection", ids)
		}
	}
	if p.Entries[0].ID != "e2" || p.Entries[1].ID != "e1" {
		t.Error("failed Reorder mutated the palette")
	}
}

func TestPaletteRemove(t *testing.T) {
	p := testPalette()
	if !p.Remove("e1") {
		t.Fatal("Remove existing entry failed")
	}
	if len(p.Entries) != 1 || p.Entries[0].ID != "e2" {
		t.Errorf("entries after remove = %d, want just e2", len(p.Entries))
	}
	if p.Remove("e1") {
		t.Error("Remove of missing entry reported success")
	}
}

func TestDefaultPalette(t *testing.T) {
	n := 0
	newID := func() string { n++; return string(rune('a' + n)) }

	p := DefaultPalette(newID)
	if len(p.Entries) != 2 {
		t.Fatalf("default palette has %d entries, want 2", len(p.Entries))
	}
	if p.Entries[0].Color != Black || p.Entries[1].Color != White {
		t.Error("default palette is not [Black, White]")
	}
}
