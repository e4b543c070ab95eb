package composite

import (
	"testing"

	"github.com/pixelpad/pixelpad/internal/model"
)

func filledLayer(id string, w, h int, c model.RGBA) *model.Layer {
	bm := model.NewBitmap(w, h)
	bm.Fill(c)
	return &model.Layer{ID: id, Name: id, Visible: true, Pixels: bm}
}

func transparentLayer(id string, w, h int) *model.Layer {
	return &model.Layer{ID: id, Name: id, Visible: true, Pixels: model.NewBitmap(w, h)}
}

func TestCompositeSingleOpaqueLayer(t *testing.T) {
	l := filledLayer("a", 4, 4, model.RGBA{R: 10, G: 20, B: 30, A: 255})
	out := Composite([]*model.Layer{l}, 4, 4)

	if !out.Equal(l.Pixels) {
		t.Error("single opaque layer should composite to itself")
	}
}

func TestCompositeAllHiddenIsTransparent(t *testing.T) {
	a := filledLayer("a", 4, 4, model.White)
	b := filledLayer("b", 4, 4, model.Black)
	a.Visible = false
	b.Visible = false

	out := Composite([]*model.Layer{a, b}, 4, 4)
	if !out.Equal(model.NewBitmap(4, 4)) {
		t.Error("all-hidden stack should composite to a transparent canvas")
	}

	// Hiding is non-destructive: pixel data survives.
	if a.Pixels.Pixel(0, 0) != model.White {
		t.Error("hidden layer lost its pixels")
	}
}

func TestCompositeIdempotent(t *testing.T) {
	top := transparentLayer("top", 4, 4)
	top.Pixels.SetPixel(2, 2, model.RGBA{R: 255, G: 0, B: 0, A: 128})
	bottom := filledLayer("bottom", 4, 4, model.RGBA{R: 0, G: 0, B: 255, A: 200})

	first := Composite([]*model.Layer{top, bottom}, 4, 4)
	second := Composite([]*model.Layer{top, bottom}, 4, 4)
	if !first.Equal(second) {
		t.Error("composite of unchanged layers differs between calls")
	}
}

func TestCompositePaintedPixelOverBackground(t *testing.T) {
	// Typical editor scenario: white background, red pixel on a
	// transparent top layer.
	top := transparentLayer("top", 4, 4)
	top.Pixels.SetPixel(1, 1, model.RGBA{R: 255, G: 0, B: 0, A: 255})
	background := filledLayer("background", 4, 4, model.White)

	out := Composite([]*model.Layer{top, background}, 4, 4)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := model.White
			if x == 1 && y == 1 {
				want = model.RGBA{R: 255, G: 0, B: 0, A: 255}
			}
			if got := out.Pixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompositeTopFirstOrder(t *testing.T) {
	// Index 0 is topmost: an opaque top layer wins over the bottom.
	top := filledLayer("top", 2, 2, model.Black)
	bottom := filledLayer("bottom", 2, 2, model.White)

	out := Composite([]*model.Layer{top, bottom}, 2, 2)
	if got := out.Pixel(0, 0); got != model.Black {
		t.Errorf("pixel = %v, want topmost layer's black", got)
	}
}

func TestCompositeSourceOverMath(t *testing.T) {
	// 50%-alpha red over opaque white: outA=1, outC = 0.5*src + 0.5*white.
	top := filledLayer("top", 1, 1, model.RGBA{R: 255, G: 0, B: 0, A: 128})
	bottom := filledLayer("bottom", 1, 1, model.White)

	out := Composite([]*model.Layer{top, bottom}, 1, 1)
	got := out.Pixel(0, 0)

	if got.A != 255 {
		t.Fatalf("alpha = %d, want 255", got.A)
	}
	if got.R != 255 {
		t.Errorf("red = %d, want 255", got.R)
	}
	// 128/255 blend of 0 over 255 is ~127.25.
	if got.G < 126 || got.G > 128 {
		t.Errorf("green = %d, want ~127", got.G)
	}
}

func TestCompositeSkipsUndecodedLayers(t *testing.T) {
	pending := &model.Layer{ID: "pending", Name: "pending", Visible: true, Pixels: nil}
	bottom := filledLayer("bottom", 2, 2, model.White)

	out := Composite([]*model.Layer{pending, bottom}, 2, 2)
	if got := out.Pixel(0, 0); got != model.White {
		t.Errorf("pixel = %v, want white from decoded layer only", got)
	}
}

func TestCompositeEmptyStack(t *testing.T) {
	out := Composite(nil, 3, 3)
	if !out.Equal(model.NewBitmap(3, 3)) {
		t.Error("empty stack should composite to a transparent canvas")
	}
}

func TestWithCheckerboard(t *testing.T) {
	bm := model.NewBitmap(16, 16)
	bm.SetPixel(0, 0, model.RGBA{R: 255, G: 0, B: 0, A: 255})

	out := WithCheckerboard(bm)

	// Opaque pixels pass through.
	if got := out.Pixel(0, 0); got != (model.RGBA{R: 255, G: 0, B: 0, A: 255}) {
		t.Errorf("opaque pixel = %v, want solid red", got)
	}

	// Transparent pixels show the tile colors, alternating every 8 units.
	if got := out.Pixel(1, 1); got != (model.RGBA{R: checkerLight, G: checkerLight, B: checkerLight, A: 255}) {
		t.Errorf("pixel (1,1) = %v, want light checker", got)
	}
	if got := out.Pixel(9, 1); got != (model.RGBA{R: checkerDark, G: checkerDark, B: checkerDark, A: 255}) {
		t.Errorf("pixel (9,1) = %v, want dark checker", got)
	}
	if got := out.Pixel(9, 9); got != (model.RGBA{R: checkerLight, G: checkerLight, B: checkerLight, A: 255}) {
		t.Errorf("pixel (9,9) = %v, want light checker", got)
	}

	// Result is fully opaque everywhere.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if out.Pixel(x, y).A != 255 {
				t.Fatalf("pixel (%d,%d) not opaque", x, y)
			}
		}
	}
}
