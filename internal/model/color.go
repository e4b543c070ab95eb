package model

import "fmt"

// RGBA is an 8-bit-per-channel straight-alpha color.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common colors.
var (
	Black       = RGBA{0, 0, 0, 255}
	White       = RGBA{255, 255, 255, 255}
	Transparent = RGBA{0, 0, 0, 0}
)

// Hex returns the color as #rrggbbaa.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the color in rgba(r, g, b, a) form.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}
