package raster

import (
	"fmt"
	"math"
)

// mipLevel is one downsampled copy of an image. Level 0 is the image
// itself and is never stored.
type mipLevel[T any] struct {
	dim      Vec2i
	base     []T
	ipbounds Box2i
	fpbounds Box2f
}

// plane is a read-only view of level 0 or of a pyramid level.
type plane[T Pixel[T]] struct {
	dim      Vec2i
	base     []T
	fpbounds Box2f
}

// UseMip turns pyramid maintenance on (building it now) or off (freeing it).
func (img *Image[T]) UseMip(m bool) {
	img.mipMe = m
	if m {
		img.MipIt()
		return
	}
	img.DeMip()
}

// MipIt (re)builds every pyramid level by 2x2 box filtering the level
// above it. Blocks cut short by an odd edge average the pixels they have.
// Level k is max(1, dim>>k) in each axis; the last level is 1x1.
func (img *Image[T]) MipIt() {
	if img.Empty() {
		img.DeMip()
		return
	}

	var dims []Vec2i
	for d := img.dim; d.X > 1 || d.Y > 1; {
		d = Vec2i{max(1, d.X/2), max(1, d.Y/2)}
		dims = append(dims, d)
	}

	// keep the arena when its shape still fits
	if len(img.mip) != len(dims) {
		img.mip = make([]mipLevel[T], len(dims))
	}
	src := img.plane0()
	for k, d := range dims {
		lvl := &img.mip[k]
		if lvl.dim != d || len(lvl.base) != d.X*d.Y {
			lvl.dim = d
			lvl.base = make([]T, d.X*d.Y)
			lvl.ipbounds = Box2i{Max: d}
			lvl.fpbounds = Box2f{Max: d.Sub(Vec2i{1, 1}).Float()}
		}
		downsample(src, lvl)
		src = plane[T]{dim: lvl.dim, base: lvl.base, fpbounds: lvl.fpbounds}
	}

	img.mipped = true
	img.mipUTD = true
	Logger().Debug("raster: mip-map built", "dim", img.dim, "levels", len(dims)+1)
}

func downsample[T Pixel[T]](src plane[T], dst *mipLevel[T]) {
	for y := 0; y < dst.dim.Y; y++ {
		y0 := min(2*y, src.dim.Y-1)
		y1 := min(2*y+1, src.dim.Y-1)
		for x := 0; x < dst.dim.X; x++ {
			x0 := min(2*x, src.dim.X-1)
			x1 := min(2*x+1, src.dim.X-1)

			sum := src.base[y0*src.dim.X+x0]
			n := 1
			if x1 != x0 {
				sum = sum.Add(src.base[y0*src.dim.X+x1])
				n++
			}
			if y1 != y0 {
				sum = sum.Add(src.base[y1*src.dim.X+x0])
				n++
				if x1 != x0 {
					sum = sum.Add(src.base[y1*src.dim.X+x1])
					n++
				}
			}
			dst.base[y*dst.dim.X+x] = sum.Scale(1 / float32(n))
		}
	}
}

// DeMip frees the pyramid.
func (img *Image[T]) DeMip() {
	img.mip = nil
	img.mipped = false
	img.mipUTD = false
}

// Mipped reports whether a pyramid is allocated and whether it is up to
// date with the pixels.
func (img *Image[T]) Mipped() (allocated, current bool) {
	return img.mipped, img.mipped && img.mipUTD
}

// MipLevels returns the number of levels including level 0, building the
// pyramid first if it is stale.
func (img *Image[T]) MipLevels() int {
	if img.mipMe && !img.mipUTD {
		img.MipIt()
	}
	return len(img.mip) + 1
}

// MipLevel returns a copy of pyramid level k as a standalone image with
// the parent's logical bounds.
func (img *Image[T]) MipLevel(k int) (*Image[T], error) {
	p, err := img.level(k)
	if err != nil {
		return nil, err
	}
	out := &Image[T]{dim: p.dim, base: append([]T(nil), p.base...), extend: img.extend}
	out.setBoxes(false)
	out.bounds = img.bounds
	return out, nil
}

// LevelForScale picks the pyramid level to sample when the image is drawn
// at scale times its size: floor(-log2(scale)), clamped to the levels
// that exist. Without a pyramid it is always 0.
func (img *Image[T]) LevelForScale(scale float32) int {
	if !img.mipMe || scale >= 1 || scale <= 0 {
		return 0
	}
	k := int(math.Floor(-math.Log2(float64(scale))))
	return clampN(k, 0, img.MipLevels()-1)
}

func (img *Image[T]) plane0() plane[T] {
	return plane[T]{dim: img.dim, base: img.base, fpbounds: img.fpbounds}
}

// level returns level k, rebuilding a stale pyramid when the image keeps
// one. A current pyramid built by an explicit MipIt is usable either way.
// Levels past the last one clamp to the 1x1 level.
func (img *Image[T]) level(k int) (plane[T], error) {
	if k <= 0 {
		return img.plane0(), nil
	}
	if !img.mipped || !img.mipUTD {
		if !img.mipMe {
			return plane[T]{}, fmt.Errorf("%w: level %d requested, pyramid disabled", ErrMipNotReady, k)
		}
		img.MipIt()
	}
	if len(img.mip) == 0 {
		return img.plane0(), nil
	}
	lvl := img.mip[min(k, len(img.mip))-1]
	return plane[T]{dim: lvl.dim, base: lvl.base, fpbounds: lvl.fpbounds}, nil
}
