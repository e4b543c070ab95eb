package model

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// Bitmap is a rectangular RGBA pixel buffer, 4 bytes per pixel.
type Bitmap struct {
	width  int
	height int
	data   []uint8
}

// NewBitmap creates a fully transparent bitmap.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the bitmap.
func (b *Bitmap) Width() int {
	return b.width
}

// Height returns the height of the bitmap.
func (b *Bitmap) Height() int {
	return b.height
}

// Data returns the raw pixel data (RGBA order).
func (b *Bitmap) Data() []uint8 {
	return b.data
}

// InBounds reports whether (x, y) is inside the bitmap.
func (b *Bitmap) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetPixel writes a single pixel. Out-of-bounds writes are dropped.
func (b *Bitmap) SetPixel(x, y int, c RGBA) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.width + x) * 4
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = c.A
}

// Pixel returns the pixel at (x, y), or Transparent when out of bounds.
func (b *Bitmap) Pixel(x, y int) RGBA {
	if !b.InBounds(x, y) {
		return Transparent
	}
	i := (y*b.width + x) * 4
	return RGBA{b.data[i+0], b.data[i+1], b.data[i+2], b.data[i+3]}
}

// Fill sets every pixel to c.
func (b *Bitmap) Fill(c RGBA) {
	for i := 0; i < len(b.data); i += 4 {
		b.data[i+0] = c.R
		b.data[i+1] = c.G
		b.data[i+2] = c.B
		b.data[i+3] = c.A
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	out := NewBitmap(b.width, b.height)
	copy(out.data, b.data)
	return out
}

// Equal reports whether two bitmaps have identical dimensions and pixels.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	return bytes.Equal(b.data, other.data)
}

// ToImage converts the bitmap to a stdlib NRGBA image.
func (b *Bitmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// EncodePNG serializes the bitmap as a lossless PNG, alpha preserved.
func (b *Bitmap) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.ToImage()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePNG reads a PNG into a width x height bitmap. The decoded image is
// placed at the top-left corner; pixels outside its bounds stay transparent.
func DecodePNG(data []byte, width, height int) (*Bitmap, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)

	b := NewBitmap(width, height)
	copy(b.data, nrgba.Pix)
	return b, nil
}

// BitmapFromImage converts any stdlib image to a Bitmap.
func BitmapFromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	b := NewBitmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.SetPixel(x, y, RGBA{c.R, c.G, c.B, c.A})
		}
	}
	return b
}
