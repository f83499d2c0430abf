package raster

import (
	"math"
)

// Extend is the rule for resolving pixel coordinates outside an image.
type Extend int

const (
	// SampleSingle clamps to the nearest edge pixel.
	SampleSingle Extend = iota
	// SampleRepeat wraps around, tiling the image.
	SampleRepeat
	// SampleReflect mirrors at each edge (period 2*dim).
	SampleReflect
)

// String returns a string representation of the extend policy.
func (e Extend) String() string {
	switch e {
	case SampleSingle:
		return "Single"
	case SampleRepeat:
		return "Repeat"
	case SampleReflect:
		return "Reflect"
	default:
		return "Unknown"
	}
}

// snapEps is how close to a whole pixel a sample position must be to be
// treated as exactly on it.
const snapEps = 1e-5

// float32Eps is the relative spacing of float32 values.
const float32Eps = 0x1p-23

// pos is a pixel-space position held in float64. tx and ty are the snap
// tolerances per axis: how far from a whole pixel the position may sit and
// still count as on it.
type pos struct {
	x, y   float64
	tx, ty float64
}

// mapPos maps logical v from box from onto pixel box to. The tolerance
// grows with the size of the mapped term, covering the rounding a float32
// logical coordinate already carries.
func mapPos(from, to Box2f, v Vec2f) pos {
	sx, ox := axisMap(from.Min.X, from.Max.X, to.Min.X, to.Max.X)
	sy, oy := axisMap(from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y)
	x, y := float64(v.X)*sx, float64(v.Y)*sy
	return pos{
		x:  x + ox,
		y:  y + oy,
		tx: snapEps + 4*float32Eps*math.Abs(x),
		ty: snapEps + 4*float32Eps*math.Abs(y),
	}
}

func (p pos) vec() Vec2f { return Vec2f{float32(p.x), float32(p.y)} }

// resolve1 maps coordinate x onto [0, n) with the given policy. n > 0.
func resolve1(x, n int, e Extend) int {
	switch e {
	case SampleRepeat:
		m := x % n
		if m < 0 {
			m += n
		}
		return m
	case SampleReflect:
		p := 2 * n
		m := x % p
		if m < 0 {
			m += p
		}
		if m >= n {
			m = p - 1 - m
		}
		return m
	default:
		return clampN(x, 0, n-1)
	}
}

func resolve(vi, dim Vec2i, e Extend) Vec2i {
	return Vec2i{resolve1(vi.X, dim.X, e), resolve1(vi.Y, dim.Y, e)}
}

func (p plane[T]) index(vi Vec2i, e Extend) T {
	if len(p.base) == 0 {
		var z T
		return z
	}
	r := resolve(vi, p.dim, e)
	return p.base[r.Y*p.dim.X+r.X]
}

// sample reads at pixel-space position pv.
func (p plane[T]) sample(pv pos, smooth bool, e Extend) T {
	if !smooth {
		return p.index(Vec2i{round64(pv.x), round64(pv.y)}, e)
	}

	x0, fx := snapSplit(pv.x, pv.tx)
	y0, fy := snapSplit(pv.y, pv.ty)
	if fx == 0 && fy == 0 {
		return p.index(Vec2i{x0, y0}, e)
	}
	return p.bilerp(x0, y0, fx, fy, e)
}

// bilerp blends the 2x2 block at (x0, y0) with weights fx, fy. Weights
// outside [0, 1] extrapolate.
func (p plane[T]) bilerp(x0, y0 int, fx, fy float32, e Extend) T {
	c00 := p.index(Vec2i{x0, y0}, e)
	c10 := p.index(Vec2i{x0 + 1, y0}, e)
	c01 := p.index(Vec2i{x0, y0 + 1}, e)
	c11 := p.index(Vec2i{x0 + 1, y0 + 1}, e)

	top := c00.Scale(1 - fx).Add(c10.Scale(fx))
	bot := c01.Scale(1 - fx).Add(c11.Scale(fx))
	return top.Scale(1 - fy).Add(bot.Scale(fy))
}

// snapSplit splits f into floor and fraction, snapping fractions within
// tol of a whole pixel onto it.
func snapSplit(f, tol float64) (int, float32) {
	i := math.Floor(f)
	fr := f - i
	switch {
	case fr < tol:
		fr = 0
	case fr > 1-tol:
		i++
		fr = 0
	}
	return int(i), float32(fr)
}

func round64(f float64) int { return int(math.Floor(f + 0.5)) }

// Index reads pixel vi, resolving out of range coordinates with extend.
// An empty image reads as the zero pixel.
func (img *Image[T]) Index(vi Vec2i, extend Extend) T {
	return img.plane0().index(vi, extend)
}

// Sample reads at logical position v. With smooth the four surrounding
// pixels are blended bilinearly, each resolved through extend; otherwise
// the nearest pixel is returned.
func (img *Image[T]) Sample(v Vec2f, smooth bool, extend Extend) T {
	return img.plane0().sample(mapPos(img.bounds, img.fpbounds, v), smooth, extend)
}

// SampleTile is the older tiling sampler, kept because existing effects
// depend on its output. It differs from Sample on purpose:
//
//   - logical bounds map onto the integer box [0, dim] rather than
//     [0, dim-1], so the far edge of the bounds lands one pixel past the
//     last pixel (pixel 0 again under SampleRepeat);
//   - positions are truncated toward zero instead of rounded (nearest) or
//     floored (smooth), so left of / above pixel 0 the blend weights go
//     negative and the result extrapolates from the first two pixels.
//
// Do not route new code through it.
func (img *Image[T]) SampleTile(v Vec2f, smooth bool, extend Extend) T {
	p := img.plane0()
	pv := img.bounds.Map(v, img.ipbounds.Float())
	vi := pv.Trunc()
	if !smooth {
		return p.index(vi, extend)
	}
	return p.bilerp(vi.X, vi.Y, pv.X-float32(vi.X), pv.Y-float32(vi.Y), extend)
}

// IndexMip reads pixel vi of pyramid level k (see level clamping in
// SampleMip).
func (img *Image[T]) IndexMip(vi Vec2i, k int, extend Extend) (T, error) {
	p, err := img.level(k)
	if err != nil {
		var z T
		return z, err
	}
	return p.index(vi, extend), nil
}

// SampleMip samples pyramid level k at logical position v. A stale pyramid
// is rebuilt first; an image that does not keep a pyramid returns
// ErrMipNotReady for k > 0. Level numbers past the coarsest clamp to it.
func (img *Image[T]) SampleMip(v Vec2f, k int, smooth bool, extend Extend) (T, error) {
	p, err := img.level(k)
	if err != nil {
		var z T
		return z, err
	}
	return p.sample(mapPos(img.bounds, p.fpbounds, v), smooth, extend), nil
}

// PixelToLogical maps a pixel position to logical space.
func (img *Image[T]) PixelToLogical(vi Vec2i) Vec2f {
	return mapPos(img.fpbounds, img.bounds, vi.Float()).vec()
}

// LogicalToPixel maps a logical position to (fractional) pixel space.
func (img *Image[T]) LogicalToPixel(v Vec2f) Vec2f {
	return mapPos(img.bounds, img.fpbounds, v).vec()
}
