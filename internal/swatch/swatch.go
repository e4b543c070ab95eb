// Package swatch encodes and decodes palette interchange files: the binary
// ASE swatch format and the plain-text GPL format. Both codecs operate on
// the in-memory palette entry sequence and know nothing about documents.
package swatch

import (
	"bytes"
	"path/filepath"
	"strings"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/model"
)

// Format identifies a palette interchange format.
type Format string

const (
	FormatASE Format = "ase"
	FormatGPL Format = "gpl"
)

// DetectFormat picks a codec from the file extension, falling back to
// content sniffing when the extension is unrecognized. data may be nil
// when only the name is known (e.g. choosing an export format).
func DetectFormat(filename string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ase":
		return FormatASE, nil
	case ".gpl", ".txt":
		return FormatGPL, nil
	}

	if bytes.HasPrefix(data, []byte(aseSignature)) {
		return FormatASE, nil
	}
	if sniffGPL(data) {
		return FormatGPL, nil
	}

	return "", pperr.BadFormatf("swatch", "unsupported palette file extension: %q", filepath.Ext(filename))
}

// Decode parses palette data in the given format.
//
// On error, any entries that parsed cleanly before the failure are still
// returned so callers can keep them (best-effort import of foreign files).
func Decode(data []byte, format Format) ([]*model.PaletteEntry, error) {
	switch format {
	case FormatASE:
		return DecodeASE(data)
	case FormatGPL:
		return DecodeGPL(data)
	default:
		return nil, pperr.BadFormatf("swatch", "unknown palette format: %q", format)
	}
}

// Encode serializes entries in the given format.
func Encode(entries []*model.PaletteEntry, format Format) ([]byte, error) {
	switch format {
	case FormatASE:
		return EncodeASE(entries), nil
	case FormatGPL:
		return EncodeGPL(entries), nil
	default:
		return nil, pperr.BadFormatf("swatch", "unknown palette format: %q", format)
	}
}
