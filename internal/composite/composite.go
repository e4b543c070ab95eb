// Package composite flattens a document's layer stack into one raster.
package composite

import "github.com/pixelpad/pixelpad/internal/model"

// Checkerboard tile size and colors for the opaque transparency preview.
const (
	checkerTile = 8

	checkerLight uint8 = 255
	checkerDark  uint8 = 204
)

// Composite flattens layers into a single width x height bitmap using
// source-over alpha blending. Layers are stored top-first, so blending
// walks them in reverse. Invisible layers and layers whose bitmap has not
// finished decoding contribute nothing. Pure function of its inputs.
func Composite(layers []*model.Layer, width, height int) *model.Bitmap {
	// Accumulate in normalized floats; quantizing once at the end keeps
	// repeated composites bit-identical.
	n := width * height
	accR := make([]float64, n)
	accG := make([]float64, n)
	accB := make([]float64, n)
	accA := make([]float64, n)

	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !l.Visible || l.Pixels == nil {
			continue
		}
		blendOver(accR, accG, accB, accA, l.Pixels, width, height)
	}

	out := model.NewBitmap(width, height)
	data := out.Data()
	for i := 0; i < n; i++ {
		data[i*4+0] = quantize(accR[i])
		data[i*4+1] = quantize(accG[i])
		data[i*4+2] = quantize(accB[i])
		data[i*4+3] = quantize(accA[i])
	}
	return out
}

// blendOver composites src over the accumulator:
//
//	outA = srcA + dstA*(1-srcA)
//	outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA, 0 when outA is 0
func blendOver(accR, accG, accB, accA []float64, src *model.Bitmap, width, height int) {
	pix := src.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !src.InBounds(x, y) {
				continue
			}
			si := (y*src.Width() + x) * 4
			srcA := float64(pix[si+3]) / 255
			if srcA == 0 {
				continue
			}
			srcR := float64(pix[si+0]) / 255
			srcG := float64(pix[si+1]) / 255
			srcB := float64(pix[si+2]) / 255

			dstA := accA[i]
			outA := srcA + dstA*(1-srcA)
			if outA == 0 {
				accR[i], accG[i], accB[i], accA[i] = 0, 0, 0, 0
				continue
			}
			accR[i] = (srcR*srcA + accR[i]*dstA*(1-srcA)) / outA
			accG[i] = (srcG*srcA + accG[i]*dstA*(1-srcA)) / outA
			accB[i] = (srcB*srcA + accB[i]*dstA*(1-srcA)) / outA
			accA[i] = outA
		}
	}
}

// WithCheckerboard bakes the transparency checkerboard beneath bm: the
// result is fully opaque, with the two fixed checker grays showing through
// wherever bm's alpha is below 1. Used for export to formats viewed without
// native transparency preview.
func WithCheckerboard(bm *model.Bitmap) *model.Bitmap {
	width, height := bm.Width(), bm.Height()
	out := model.NewBitmap(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := checkerLight
			if ((x/checkerTile)+(y/checkerTile))%2 == 1 {
				base = checkerDark
			}

			c := bm.Pixel(x, y)
			a := float64(c.A) / 255
			out.SetPixel(x, y, model.RGBA{
				R: quantize(float64(c.R)/255*a + float64(base)/255*(1-a)),
				G: quantize(float64(c.G)/255*a + float64(base)/255*(1-a)),
				B: quantize(float64(c.B)/255*a + float64(base)/255*(1-a)),
				A: 255,
			})
		}
	}
	return out
}

func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
