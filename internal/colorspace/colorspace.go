// Package colorspace implements the numeric conversions behind the color
// picker: RGB to and from HSL and CMYK, plus the palette lightness metric.
//
// Every function is total: out-of-range inputs are clamped, never rejected.
// Alpha never participates in any conversion; callers carry it through
// unchanged.
package colorspace

import "math"

// RGBToHSL converts 8-bit RGB channels to hue [0,360), saturation [0,100],
// and lightness [0,100].
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	maxC := math.Max(rf, math.Max(gf, bf))
	minC := math.Min(rf, math.Min(gf, bf))
	l = (maxC + minC) / 2

	if maxC == minC {
		return 0, 0, l * 100
	}

	d := maxC - minC
	if l > 0.5 {
		s = d / (2 - maxC - minC)
	} else {
		s = d / (maxC + minC)
	}

	switch maxC {
	case rf:
		h = (gf - bf) / d
		if gf < bf {
			h += 6
		}
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60

	return h, s * 100, l * 100
}

// HSLToRGB converts hue [0,360), saturation [0,100], lightness [0,100]
// back to 8-bit RGB channels.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s = clamp01(s / 100)
	l = clamp01(l / 100)

	if s == 0 {
		v := round255(l)
		return v, v, v
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return round255(hueToChannel(p, q, h+1.0/3)),
		round255(hueToChannel(p, q, h)),
		round255(hueToChannel(p, q, h-1.0/3))
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// RGBToCMYK converts 8-bit RGB channels to CMYK percentages [0,100] using
// the simplified non-ICC model: k = 1 - max(r,g,b)/255. Pure black maps to
// c = m = y = 0 rather than dividing by zero.
func RGBToCMYK(r, g, b uint8) (c, m, y, k float64) {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	k = 1 - math.Max(rf, math.Max(gf, bf))
	if k == 1 {
		return 0, 0, 0, 100
	}

	c = (1 - rf - k) / (1 - k)
	m = (1 - gf - k) / (1 - k)
	y = (1 - bf - k) / (1 - k)

	return c * 100, m * 100, y * 100, k * 100
}

// CMYKToRGB converts CMYK percentages [0,100] back to 8-bit RGB channels.
func CMYKToRGB(c, m, y, k float64) (r, g, b uint8) {
	cf := clamp01(c / 100)
	mf := clamp01(m / 100)
	yf := clamp01(y / 100)
	kf := clamp01(k / 100)

	return round255((1 - cf) * (1 - kf)),
		round255((1 - mf) * (1 - kf)),
		round255((1 - yf) * (1 - kf))
}

// Lightness is the palette sort metric: (max+min)/2 over the raw 0-255
// channel values, not true HSL lightness.
func Lightness(r, g, b uint8) float64 {
	maxC := max(r, max(g, b))
	minC := min(r, min(g, b))
	return (float64(maxC) + float64(minC)) / 2
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round255(v float64) uint8 {
	n := math.Round(clamp01(v) * 255)
	return uint8(n)
}
