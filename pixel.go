package raster

import (
	"image/color"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Pixel is the arithmetic every raster element type supports. The zero
// value of T is the "blank" pixel.
type Pixel[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T // component-wise
	Div(T) T // component-wise
	Scale(float32) T
}

// The capability interfaces below are optional. An Image[T] whose T does
// not implement one treats the matching operation as a no-op.

// Grayscaler converts a pixel to its grey equivalent.
type Grayscaler[T any] interface {
	Gray() T
}

// Clamper limits every component of a pixel to [lo, hi].
type Clamper[T any] interface {
	Clamp(lo, hi float32) T
}

// Constrainer maps a pixel back into its valid domain (eg. hue wrap,
// dropping non-finite vectors).
type Constrainer[T any] interface {
	Constrain() T
}

// Noiser returns the pixel perturbed by random noise of amplitude a.
type Noiser[T any] interface {
	Noise(r *rand.Rand, a float32) T
}

// ColorCodec converts a pixel to and from image/color values; it is what
// the JPEG / PNG hooks need from a pixel type.
type ColorCodec[T any] interface {
	Color() color.Color
	FromColor(c color.Color) T
}

// FieldFiller builds a field entry that sends pixel p to pixel target of
// an image of size dim. Warp fields (Index) and offset fields (Vec2i)
// implement it.
type FieldFiller[T any] interface {
	FromTarget(p, target, dim Vec2i) T
}

// Gray is a single channel float pixel.
type Gray float32

func (g Gray) Add(o Gray) Gray      { return g + o }
func (g Gray) Sub(o Gray) Gray      { return g - o }
func (g Gray) Mul(o Gray) Gray      { return g * o }
func (g Gray) Div(o Gray) Gray      { return g / o }
func (g Gray) Scale(s float32) Gray { return g * Gray(s) }
func (g Gray) Gray() Gray           { return g }

func (g Gray) Clamp(lo, hi float32) Gray {
	return Gray(clampN(float32(g), lo, hi))
}

func (g Gray) Noise(r *rand.Rand, a float32) Gray {
	return g + Gray(a*(r.Float32()-0.5))
}

// Color returns g as 16 bit grey, clamped to [0, 1].
func (g Gray) Color() color.Color {
	return color.Gray16{Y: unit16(float32(g))}
}

func (Gray) FromColor(c color.Color) Gray {
	y := color.Gray16Model.Convert(c).(color.Gray16).Y
	return Gray(float32(y) / 0xffff)
}

// FRGB is a float RGB pixel. Components are nominally in [0, 1] but may
// leave that range between Clamp calls.
type FRGB struct {
	R, G, B float32
}

func (c FRGB) Add(o FRGB) FRGB { return FRGB{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c FRGB) Sub(o FRGB) FRGB { return FRGB{c.R - o.R, c.G - o.G, c.B - o.B} }
func (c FRGB) Mul(o FRGB) FRGB { return FRGB{c.R * o.R, c.G * o.G, c.B * o.B} }
func (c FRGB) Div(o FRGB) FRGB { return FRGB{c.R / o.R, c.G / o.G, c.B / o.B} }

func (c FRGB) Scale(s float32) FRGB { return FRGB{c.R * s, c.G * s, c.B * s} }

// Gray uses Rec. 601 luma weights.
func (c FRGB) Gray() FRGB {
	y := 0.299*c.R + 0.587*c.G + 0.114*c.B
	return FRGB{y, y, y}
}

func (c FRGB) Clamp(lo, hi float32) FRGB {
	return FRGB{clampN(c.R, lo, hi), clampN(c.G, lo, hi), clampN(c.B, lo, hi)}
}

// Constrain replaces non-finite components with zero.
func (c FRGB) Constrain() FRGB {
	fix := func(f float32) float32 {
		if math32.IsNaN(f) || math32.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return FRGB{fix(c.R), fix(c.G), fix(c.B)}
}

func (c FRGB) Noise(r *rand.Rand, a float32) FRGB {
	return FRGB{
		c.R + a*(r.Float32()-0.5),
		c.G + a*(r.Float32()-0.5),
		c.B + a*(r.Float32()-0.5),
	}
}

func (c FRGB) Color() color.Color {
	return color.NRGBA64{R: unit16(c.R), G: unit16(c.G), B: unit16(c.B), A: 0xffff}
}

func (FRGB) FromColor(col color.Color) FRGB {
	n := color.NRGBA64Model.Convert(col).(color.NRGBA64)
	return FRGB{float32(n.R) / 0xffff, float32(n.G) / 0xffff, float32(n.B) / 0xffff}
}

func unit16(f float32) uint16 {
	return uint16(round32(clampN(f, 0, 1) * 0xffff))
}

// Index is a warp field entry: the flat index of the source pixel.
type Index int32

func (i Index) Add(o Index) Index     { return i + o }
func (i Index) Sub(o Index) Index     { return i - o }
func (i Index) Mul(o Index) Index     { return i * o }
func (i Index) Div(o Index) Index     { return safeDiv(i, o) }
func (i Index) Scale(s float32) Index { return Index(round32(float32(i) * s)) }

func (Index) FromTarget(_, target, dim Vec2i) Index {
	return Index(target.Y*dim.X + target.X)
}

// FromTarget gives an offset field entry: the displacement p -> target.
func (Vec[N]) FromTarget(p, target, _ Vec2i) Vec[N] {
	d := target.Sub(p)
	return Vec[N]{N(d.X), N(d.Y)}
}

// Noise perturbs each component by a uniform value in [-a/2, a/2).
func (v Vec[N]) Noise(r *rand.Rand, a float32) Vec[N] {
	return Vec[N]{v.X + N(a*(r.Float32()-0.5)), v.Y + N(a*(r.Float32()-0.5))}
}
