package raster

import (
	"fmt"
)

// prepareWarp checks that img can receive a warp of in. An empty
// destination takes on the size and bounds of in.
func (img *Image[T]) prepareWarp(in *Image[T]) error {
	if in == img {
		return fmt.Errorf("%w: warp", ErrAliased)
	}
	if img.Empty() && !in.Empty() {
		if err := img.Resize(in.dim); err != nil {
			return err
		}
		img.bounds = in.bounds
	}
	return nil
}

// WarpVector resamples in through the vector field vf into img. For each
// destination pixel at logical position p with field value v the target
// is p + step*v when relative, otherwise step*v; the pixel becomes
// in.Sample(target, smooth, extend). vf must be the size of img.
func (img *Image[T]) WarpVector(in *Image[T], vf *Image[Vec2f], step float32, smooth, relative bool, extend Extend) error {
	if err := img.prepareWarp(in); err != nil {
		return err
	}
	if !img.CompareDims(vf) {
		return mismatch("warp vector field", img.dim, vf.dim)
	}
	img.warpEach(in, func(i int, _ Vec2f) Vec2f { return vf.base[i] }, step, smooth, relative, extend)
	return nil
}

// WarpFunc is WarpVector with the displacement computed by fn from the
// destination pixel's logical position.
func (img *Image[T]) WarpFunc(in *Image[T], fn func(Vec2f) Vec2f, step float32, smooth, relative bool, extend Extend) error {
	if err := img.prepareWarp(in); err != nil {
		return err
	}
	img.warpEach(in, func(_ int, p Vec2f) Vec2f { return fn(p) }, step, smooth, relative, extend)
	return nil
}

func (img *Image[T]) warpEach(in *Image[T], disp func(i int, p Vec2f) Vec2f, step float32, smooth, relative bool, extend Extend) {
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			i := img.index(x, y)
			p := img.PixelToLogical(Vec2i{x, y})
			target := disp(i, p).Scale(step)
			if relative {
				target = target.Add(p)
			}
			img.base[i] = in.Sample(target, smooth, extend)
		}
	}
	img.touch()
}

// WarpField moves pixels by flat index: pixel i becomes in's pixel wf[i].
// Entries are absolute source indices, not offsets added to i, so the
// identity field holds wf[i] = i and a displacement d is written as
// wf[i] = i + d. FillField builds fields in this form. Indices outside in
// are resolved with in's own extend policy applied to the flat index.
// wf must be the size of img.
func (img *Image[T]) WarpField(in *Image[T], wf *Image[Index]) error {
	if err := img.prepareWarp(in); err != nil {
		return err
	}
	if !img.CompareDims(wf) {
		return mismatch("warp field", img.dim, wf.dim)
	}
	n := len(in.base)
	if n == 0 {
		img.Clear()
		return nil
	}
	for i, j := range wf.base {
		img.base[i] = in.base[resolve1(int(j), n, in.extend)]
	}
	img.touch()
	return nil
}

// WarpOffset moves pixels by integer offset: pixel p becomes
// in.Index(p + of.Index(p, ofExtend) + slide, extend). The offset field is
// read with its own policy, so a small field may tile a large image.
func (img *Image[T]) WarpOffset(in *Image[T], of *Image[Vec2i], slide Vec2i, extend, ofExtend Extend) error {
	if err := img.prepareWarp(in); err != nil {
		return err
	}
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			p := Vec2i{x, y}
			off := of.Index(p, ofExtend)
			img.base[img.index(x, y)] = in.Index(p.Add(off).Add(slide), extend)
		}
	}
	img.touch()
	return nil
}

// FillField fills a warp field (Image[Index]) or offset field
// (Image[Vec2i]) from the vector field vf so that warping through it
// approximates warping through vf with step 1. Each pixel's target is
// rounded to the nearest pixel and resolved with extend. An empty field
// takes on vf's size and bounds. Pixel types without FieldFiller are left
// untouched.
func (img *Image[T]) FillField(vf *Image[Vec2f], relative bool, extend Extend) error {
	var z T
	if _, ok := any(z).(FieldFiller[T]); !ok {
		return nil
	}
	if img.Empty() && !vf.Empty() {
		if err := img.Resize(vf.dim); err != nil {
			return err
		}
		img.bounds = vf.bounds
	}
	if !img.CompareDims(vf) {
		return mismatch("fill field", img.dim, vf.dim)
	}
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			p := Vec2i{x, y}
			i := img.index(x, y)
			target := vf.base[i]
			if relative {
				target = target.Add(img.PixelToLogical(p))
			}
			t := resolve(img.LogicalToPixel(target).Round(), img.dim, extend)
			img.base[i] = any(img.base[i]).(FieldFiller[T]).FromTarget(p, t, img.dim)
		}
	}
	img.touch()
	return nil
}
