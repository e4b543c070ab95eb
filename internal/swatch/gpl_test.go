package swatch

import (
	"strings"
	"testing"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
)

func TestDecodeGPL(t *testing.T) {
	data := []byte(`
GIMP Palette
#
# a comment
#
  0   0   0 Black
255 255 255 White
200 200 200
 12  34  56 Stormy Sea Blue
`)

	entries, err := DecodeGPL(data)
	if err != nil {
		t.Fatalf("DecodeGPL failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	if entries[0].Name != "Black" || entries[0].Color != model.Black {
		t.Errorf("entry 0 = %v %q, want black", entries[0].Color, entries[0].Name)
	}
	if entries[2].Name != "" {
		t.Errorf("unnamed entry has name %q", entries[2].Name)
	}
	if entries[3].Name != "Stormy Sea Blue" {
		t.Errorf("multi-word name = %q, want %q", entries[3].Name, "Stormy Sea Blue")
	}
	want := model.RGBA{R: 12, G: 34, B: 56, A: 255}
	if entries[3].Color != want {
		t.Errorf("entry 3 color = %v, want %v", entries[3].Color, want)
	}
}

func TestDecodeGPLMissingHeader(t *testing.T) {
	_, err := DecodeGPL([]byte("0 0 0 Black\n"))
	if !pperr.IsFormat(err) {
		t.Fatalf("expected FormatError, got %v", err)
	}

	_, err = DecodeGPL(nil)
	if !pperr.IsFormat(err) {
		t.Fatalf("expected FormatError for empty data, got %v", err)
	}
}

func TestDecodeGPLSkipsShortAndNonNumericLines(t *testing.T) {
	data := []byte(strings.Join([]string{
		"GIMP Palette",
		"Name: Some Foreign Tool Field",
		"Columns: 8",
		"12 34",
		"12 34 notanumber",
		"1 2 3 Kept",
	}, "\n"))

	entries, err := DecodeGPL(data)
	if err != nil {
		t.Fatalf("DecodeGPL failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Kept" {
		t.Fatalf("got %d entries, want only \"Kept\"", len(entries))
	}
}

func TestDecodeGPLClampsChannels(t *testing.T) {
	entries, err := DecodeGPL([]byte("GIMP Palette\n999 -5 300 Loud\n"))
	if err != nil {
		t.Fatalf("DecodeGPL failed: %v", err)
	}
	want := model.RGBA{R: 255, G: 0, B: 255, A: 255}
	if entries[0].Color != want {
		t.Errorf("clamped color = %v, want %v", entries[0].Color, want)
	}
}

func TestGPLRoundTrip(t *testing.T) {
	in := []*model.PaletteEntry{
		{ID: "a", Color: model.Black, Name: "Black"},
		{ID: "b", Color: model.White, Name: "White"},
		{ID: "c", Color: model.RGBA{R: 12, G: 200, B: 9, A: 255}, Name: "Leaf Green"},
		{ID: "d", Color: model.RGBA{R: 1, G: 2, B: 3, A: 255}},
	}

	out, err := DecodeGPL(EncodeGPL(in))
	if err != nil {
		t.Fatalf("round trip decode failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d entries, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i].Color != in[i].Color {
			t.Errorf("entry %d color = %v, want %v", i, out[i].Color, in[i].Color)
		}
		if out[i].Name != in[i].Name {
			t.Errorf("entry %d name = %q, want %q", i, out[i].Name, in[i].Name)
		}
	}
}

func TestEncodeGPLHeaderLiteral(t *testing.T) {
	out := string(EncodeGPL(nil))
	if !strings.HasPrefix(out, "GIMP Palette\n") {
		t.Fatalf("encoded palette does not start with the fixed header: %q", out)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		data     []byte
		want     Format
		wantErr  bool
	}{
		{"colors.ase", nil, FormatASE, false},
		{"colors.ASE", nil, FormatASE, false},
		{"colors.gpl", nil, FormatGPL, false},
		{"colors.txt", nil, FormatGPL, false},
		{"mystery", []byte("ASEF\x00\x00\x00\x01"), FormatASE, false},
		{"mystery", []byte("\nGIMP Palette\n"), FormatGPL, false},
		{"colors.bin", []byte("junk"), "", true},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.filename, tt.data)
		if tt.wantErr {
			if !pperr.IsFormat(err) {
				t.Errorf("DetectFormat(%q): expected FormatError, got %v", tt.filename, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", tt.filename, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
