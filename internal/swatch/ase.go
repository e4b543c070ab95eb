package swatch

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/pixelpad/pixelpad/internal/colorspace"
	pperr "github.com/pixelpad/pixelpad/internal/errors"
	"github.com/pixelpad/pixelpad/internal/id"
	"github.com/pixelpad/pixelpad/internal/model"
)

// Binary swatch format layout:
//
//	"ASEF" | uint32 version | uint32 block count | blocks...
//
// Each block is uint16 tag + uint32 body length + body. Color blocks (tag 1)
// carry a UTF-16BE name, a 4-byte color model tag, float32 channels in [0,1],
// and a uint16 global/spot flag. Group blocks exist in the format but have no
// in-memory representation; they are skipped, as is any unknown tag, using
// the declared body length so the stream never desyncs.
const (
	aseSignature = "ASEF"
	aseVersion   = 1

	blockColor      = 0x0001
	blockGroupStart = 0xC001
	blockGroupEnd   = 0xC002
	blockTerminator = 0x0000

	modelRGB  = "RGB "
	modelCMYK = "CMYK"

	// colorGlobal is the color-type flag written on export. The flag is
	// stored in the format but has no behavioral meaning here.
	colorGlobal = 0
)

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// DecodeASE parses a binary swatch file.
//
// A bad signature fails outright. A stream truncated after at least one
// color entry returns the parsed prefix alongside the error; callers decide
// whether to keep it.
func DecodeASE(data []byte) ([]*model.PaletteEntry, error) {
	if len(data) < 12 || string(data[:4]) != aseSignature {
		return nil, pperr.BadFormat("ase", "missing ASEF signature")
	}

	r := &byteReader{data: data, off: 4}
	r.uint32() // version; every known version shares the block grammar
	count := r.uint32()

	var entries []*model.PaletteEntry
	for i := uint32(0); i < count; i++ {
		tag := r.uint16()
		if r.err != nil {
			return entries, truncated(entries)
		}
		if tag == blockTerminator {
			break
		}

		length := r.uint32()
		body := r.bytes(int(length))
		if r.err != nil {
			return entries, truncated(entries)
		}

		switch tag {
		case blockColor:
			entry, ok := parseColorBlock(body)
			if ok {
				entries = append(entries, entry)
			}
		case blockGroupStart, blockGroupEnd:
			// Groups are flattened away; their bodies carry only names.
		default:
			// Unknown tag: body already consumed via the declared length.
		}
	}

	return entries, nil
}

// parseColorBlock decodes one color entry body. Malformed bodies are
// dropped (ok=false) rather than failing the whole stream.
func parseColorBlock(body []byte) (*model.PaletteEntry, bool) {
	r := &byteReader{data: body}

	nameLen := int(r.uint16())
	nameBytes := r.bytes(nameLen * 2)
	colorModel := string(r.bytes(4))
	if r.err != nil {
		return nil, false
	}

	name := decodeUTF16Name(nameBytes)

	// The float section self-describes: everything between the model tag
	// and the trailing 2-byte color-type flag.
	floatCount := (len(body) - r.off - 2) / 4
	floats := make([]float32, 0, 4)
	for i := 0; i < floatCount && i < 4; i++ {
		floats = append(floats, math.Float32frombits(r.uint32()))
	}
	r.uint16() // color-type flag: stored in the format, ignored here
	if r.err != nil {
		return nil, false
	}

	var c model.RGBA
	switch colorModel {
	case modelRGB:
		if len(floats) < 3 {
			return nil, false
		}
		c = model.RGBA{
			R: floatChannel(floats[0]),
			G: floatChannel(floats[1]),
			B: floatChannel(floats[2]),
			A: 255,
		}
		// A 4th float is alpha when the block length says it is there.
		if len(floats) >= 4 {
			c.A = floatChannel(floats[3])
		}
	case modelCMYK:
		if len(floats) < 4 {
			return nil, false
		}
		r8, g8, b8 := colorspace.CMYKToRGB(
			float64(floats[0])*100, float64(floats[1])*100,
			float64(floats[2])*100, float64(floats[3])*100)
		// CMYK blocks carry no alpha; it defaults to opaque.
		c = model.RGBA{R: r8, G: g8, B: b8, A: 255}
	default:
		return nil, false
	}

	return &model.PaletteEntry{ID: id.Generate(), Color: c, Name: name}, true
}

// EncodeASE serializes entries as a binary swatch file. Entries are always
// written as RGB-model color blocks with alpha.
func EncodeASE(entries []*model.PaletteEntry) []byte {
	var buf bytes.Buffer
	buf.WriteString(aseSignature)
	writeUint32(&buf, aseVersion)
	writeUint32(&buf, uint32(len(entries)))

	for _, e := range entries {
		nameBytes := encodeUTF16Name(e.Name)

		var body bytes.Buffer
		writeUint16(&body, uint16(len(nameBytes)/2))
		body.Write(nameBytes)
		body.WriteString(modelRGB)
		for _, v := range []uint8{e.Color.R, e.Color.G, e.Color.B, e.Color.A} {
			writeUint32(&body, math.Float32bits(float32(v)/255))
		}
		writeUint16(&body, colorGlobal)

		writeUint16(&buf, blockColor)
		writeUint32(&buf, uint32(body.Len()))
		buf.Write(body.Bytes())
	}

	return buf.Bytes()
}

func truncated(entries []*model.PaletteEntry) error {
	if len(entries) > 0 {
		return pperr.BadFormatf("ase", "block stream truncated after %d entries", len(entries))
	}
	return pperr.BadFormat("ase", "block stream truncated")
}

func decodeUTF16Name(raw []byte) string {
	decoded, err := utf16be.NewDecoder().Bytes(raw)
	if err != nil {
		return ""
	}
	// Foreign writers include a trailing NUL code unit in the name.
	return strings.TrimRight(string(decoded), "\x00")
}

func encodeUTF16Name(name string) []byte {
	encoded, err := utf16be.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil
	}
	return encoded
}

func floatChannel(v float32) uint8 {
	f := float64(v)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return uint8(math.Round(f * 255))
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// byteReader is a cursor over a byte slice that latches the first
// out-of-data error instead of panicking.
type byteReader struct {
	data []byte
	off  int
	err  error
}

func (r *byteReader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.data) {
		r.err = pperr.ErrFormat
		return nil
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out
}

func (r *byteReader) uint16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *byteReader) uint32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}
