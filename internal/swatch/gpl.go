package swatch

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
)

// gplHeader is the literal first line third-party tools expect. It must
// round-trip byte-for-byte.
const gplHeader = "GIMP Palette"

// DecodeGPL parses a plain-text palette file. Blank lines and lines
// starting with '#' are ignored; data lines are R G B followed by an
// optional display name. Lines with fewer than three numeric tokens are
// skipped, not fatal. The text format carries no alpha; entries decode
// as fully opaque.
func DecodeGPL(data []byte) ([]*model.PaletteEntry, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	sawHeader := false
	var entries []*model.PaletteEntry

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !sawHeader {
			if line != gplHeader {
				return nil, pperr.BadFormatf("gpl", "missing %q header", gplHeader)
			}
			sawHeader = true
			continue
		}

		if strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 3 {
			continue
		}
		r, okR := parseChannel(fields[0])
		g, okG := parseChannel(fields[1])
		b, okB := parseChannel(fields[2])
		if !okR || !okG || !okB {
			continue
		}

		entries = append(entries, &model.PaletteEntry{
			ID:    id.Generate(),
			Color: model.RGBA{R: r, G: g, B: b, A: 255},
			Name:  strings.Join(fields[3:], " "),
		})
	}

	if !sawHeader {
		return nil, pperr.BadFormatf("gpl", "missing %q header", gplHeader)
	}
	return entries, nil
}

// EncodeGPL serializes entries as a plain-text palette file: the fixed
// header, a comment block, then one fixed-width R G B line per entry.
func EncodeGPL(entries []*model.PaletteEntry) []byte {
	var buf bytes.Buffer
	buf.WriteString(gplHeader + "\n")
	buf.WriteString("#\n")
	buf.WriteString("# Exported by pixelpad\n")
	buf.WriteString("#\n")

	for _, e := range entries {
		line := fmt.Sprintf("%-3d %-3d %-3d %s", e.Color.R, e.Color.G, e.Color.B, e.Name)
		buf.WriteString(strings.TrimRight(line, " ") + "\n")
	}

	return buf.Bytes()
}

// parseChannel reads a 0-255 integer token, clamping out-of-range values.
func parseChannel(tok string) (uint8, bool) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n), true
}

// sniffGPL reports whether data's first non-empty line is the GPL header.
func sniffGPL(data []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line == gplHeader
	}
	return false
}
