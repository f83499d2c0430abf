package raster

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

// Fill sets every pixel to c.
func (img *Image[T]) Fill(c T) {
	for i := range img.base {
		img.base[i] = c
	}
	img.touch()
}

// FillBox sets every pixel inside the pixel box bb (clipped) to c.
func (img *Image[T]) FillBox(c T, bb Box2i) {
	img.eachIn(bb, func(i int) { img.base[i] = c })
}

// FillBoxF sets every pixel whose centre lies inside the logical box bb
// to c.
func (img *Image[T]) FillBoxF(c T, bb Box2f) {
	img.FillBox(c, img.pixelBox(bb))
}

// Clear sets every pixel to the zero value.
func (img *Image[T]) Clear() {
	var z T
	img.Fill(z)
}

// Noise adds random noise of amplitude a to every pixel. Pixel types that
// implement Noiser decide what that means; for the rest each pixel is
// scaled by a random factor in [1-a/2, 1+a/2).
func (img *Image[T]) Noise(a float32) {
	img.NoiseBox(a, img.ipbounds)
}

// NoiseBox adds noise inside the pixel box bb (clipped).
func (img *Image[T]) NoiseBox(a float32, bb Box2i) {
	r := img.rand()
	img.eachIn(bb, func(i int) {
		p := img.base[i]
		if n, ok := any(p).(Noiser[T]); ok {
			img.base[i] = n.Noise(r, a)
			return
		}
		img.base[i] = p.Add(p.Scale(a * (r.Float32() - 0.5)))
	})
}

// NoiseBoxF adds noise to pixels whose centre lies inside logical box bb.
func (img *Image[T]) NoiseBoxF(a float32, bb Box2f) {
	img.NoiseBox(a, img.pixelBox(bb))
}

// eachIn calls fn with the flat index of every pixel in bb ∩ image.
func (img *Image[T]) eachIn(bb Box2i, fn func(i int)) {
	bb = bb.Normalize().Intersect(img.ipbounds)
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			fn(img.index(x, y))
		}
	}
	img.touch()
}

// pixelBox converts a logical box to the pixel box of pixel centres it
// contains.
func (img *Image[T]) pixelBox(bb Box2f) Box2i {
	p := Box2f{img.LogicalToPixel(bb.Min), img.LogicalToPixel(bb.Max)}.Normalize()
	return Box2i{
		Min: Vec2i{int(math.Ceil(float64(p.Min.X))), int(math.Ceil(float64(p.Min.Y)))},
		Max: Vec2i{int(math.Floor(float64(p.Max.X))) + 1, int(math.Floor(float64(p.Max.Y))) + 1},
	}
}

// ApplyMask combines layer over the image pixel by pixel, weighted by the
// matching mask pixel, using mode. All three must be the same size.
func (img *Image[T]) ApplyMask(layer, mask *Image[T], mode MaskMode) error {
	if !img.CompareDims(layer) {
		return mismatch("apply mask layer", img.dim, layer.dim)
	}
	if !img.CompareDims(mask) {
		return mismatch("apply mask", img.dim, mask.dim)
	}
	for i := range img.base {
		img.base[i] = composite(img.base[i], layer.base[i], mask.base[i], true, mode)
	}
	img.touch()
	return nil
}

// Splat stamps src onto the image, centred at logical position center,
// scaled by scale (src's logical unit becomes scale canvas units) and
// rotated theta degrees counter-clockwise. Only the pixels under the
// transformed src bounds are visited. Each is mapped back into src,
// sampled smoothly with src's own extend policy (from a pyramid level if
// src keeps one), optionally multiplied by tint and combined using mode,
// weighted by mask when given. mask must be the size of src.
func (img *Image[T]) Splat(center Vec2f, scale, theta float32, src *Image[T], mask *Image[T], tint *T, mode MaskMode) error {
	if src == img || mask == img {
		return fmt.Errorf("%w: splat", ErrAliased)
	}
	if mask != nil && !mask.CompareDims(src) {
		return mismatch("splat mask", src.dim, mask.dim)
	}
	if img.Empty() || src.Empty() || scale == 0 {
		return nil
	}

	rad := gg.Radians(float64(theta))
	toCanvas := affChain(affScale(float64(scale)), affRotate(rad), affTranslate(center))

	// footprint of the transformed bounds, in canvas pixels
	fp := footprint{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	sb := src.bounds
	for _, c := range []Vec2f{sb.Min, {sb.Max.X, sb.Min.Y}, {sb.Min.X, sb.Max.Y}, sb.Max} {
		l := affApply(toCanvas, float64(c.X), float64(c.Y))
		p := img.LogicalToPixel(l)
		fp.minMax(float64(p.X), float64(p.Y))
	}
	box := Box2i{
		Min: Vec2i{int(math.Floor(fp.minX)), int(math.Floor(fp.minY))},
		Max: Vec2i{int(math.Ceil(fp.maxX)) + 1, int(math.Ceil(fp.maxY)) + 1},
	}.Intersect(img.ipbounds)
	if box.Empty() {
		return nil
	}

	k := 0
	if src.mipMe {
		span := max(fp.maxX-fp.minX, fp.maxY-fp.minY)
		k = src.LevelForScale(float32(span / float64(max(src.dim.X, src.dim.Y))))
	}
	lvl, err := src.level(k)
	if err != nil {
		return err
	}

	toLocal := affChain(
		affBox(img.fpbounds, img.bounds),
		affTranslate(center.Scale(-1)),
		affRotate(-rad),
		affScale(1/float64(scale)),
	)
	toSrc := affChain(toLocal, affBox(src.bounds, src.fpbounds))
	toLvl := affChain(toLocal, affBox(src.bounds, lvl.fpbounds))

	var m T
	edgeX, edgeY := float64(src.fpbounds.Max.X)+0.5, float64(src.fpbounds.Max.Y)+0.5
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			sp := affPos(toSrc, float64(x), float64(y))
			if sp.x < -0.5 || sp.y < -0.5 || sp.x >= edgeX || sp.y >= edgeY {
				continue
			}

			s := lvl.sample(affPos(toLvl, float64(x), float64(y)), true, src.extend)
			if tint != nil {
				s = s.Mul(*tint)
			}
			if mask != nil {
				m = mask.plane0().sample(sp, true, mask.extend)
			}
			i := img.index(x, y)
			img.base[i] = composite(img.base[i], s, m, mask != nil, mode)
		}
	}
	img.touch()
	return nil
}

// footprint accumulates the extent touched by an operation.
type footprint struct {
	minX, minY float64
	maxX, maxY float64
}

// minMax grows the footprint to include (x, y).
func (f *footprint) minMax(x, y float64) {
	f.minX = math.Min(f.minX, x)
	f.maxX = math.Max(f.maxX, x)
	f.minY = math.Min(f.minY, y)
	f.maxY = math.Max(f.maxY, y)
}
