package raster

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Resize reallocates the pixel buffer for dim. Pixels are zeroed, not
// resampled (see Resample), and all three bounding boxes are reset to
// their defaults for the new size.
func (img *Image[T]) Resize(dim Vec2i) error {
	if dim.X < 0 || dim.Y < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, dim.X, dim.Y)
	}
	if dim.X == 0 || dim.Y == 0 {
		dim = Vec2i{}
	}
	img.dim = dim
	img.base = make([]T, dim.X*dim.Y)
	img.setBoxes(true)
	img.touch()
	if img.mipMe {
		img.MipIt()
	} else {
		img.DeMip()
	}
	Logger().Debug("raster: resized", "dim", dim)
	return nil
}

// Resample changes the size to dim keeping the picture: each new pixel
// samples the old image at its logical position. Logical bounds are kept.
func (img *Image[T]) Resample(dim Vec2i, smooth bool) error {
	if img.Empty() {
		return img.Resize(dim)
	}
	old := img.Clone()
	old.mipMe = false
	bounds := img.bounds
	if err := img.Resize(dim); err != nil {
		return err
	}
	img.bounds = bounds
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			v := img.PixelToLogical(Vec2i{x, y})
			img.base[img.index(x, y)] = old.Sample(v, smooth, SampleSingle)
		}
	}
	img.touch()
	return nil
}

// Crop replaces the image with the pixels inside bb, which is clipped to
// the image first. The new logical bounds cover the same logical region
// the kept pixels covered before.
func (img *Image[T]) Crop(bb Box2i) {
	bb = bb.Normalize().Intersect(img.ipbounds)
	if bb.Empty() {
		img.Reset()
		return
	}

	dim := bb.Dim()
	base := make([]T, dim.X*dim.Y)
	for y := 0; y < dim.Y; y++ {
		row := img.index(bb.Min.X, bb.Min.Y+y)
		copy(base[y*dim.X:(y+1)*dim.X], img.base[row:row+dim.X])
	}

	bounds := Box2f{
		Min: img.PixelToLogical(bb.Min),
		Max: img.PixelToLogical(bb.Max.Sub(Vec2i{1, 1})),
	}
	img.dim = dim
	img.base = base
	img.setBoxes(false)
	img.bounds = bounds
	img.touch()
	if img.mipMe {
		img.MipIt()
	} else {
		img.DeMip()
	}
	Logger().Debug("raster: cropped", "box", bb, "dim", dim)
}

// CropCircle sets everything outside the circle inscribed in the image to
// background. With rampWidth > 0 pixels within rampWidth of the edge fade
// linearly from the original (inside) to background (at the edge).
func (img *Image[T]) CropCircle(rampWidth float32, background T) {
	if img.Empty() {
		return
	}
	c := img.fpbounds.Max.Scale(0.5)
	r := float32(min(img.dim.X, img.dim.Y)) / 2
	for y := 0; y < img.dim.Y; y++ {
		for x := 0; x < img.dim.X; x++ {
			dx, dy := float32(x)-c.X, float32(y)-c.Y
			d := math32.Sqrt(dx*dx + dy*dy)
			i := img.index(x, y)
			switch {
			case d >= r:
				img.base[i] = background
			case rampWidth > 0 && d > r-rampWidth:
				t := (r - d) / rampWidth
				img.base[i] = background.Add(img.base[i].Sub(background).Scale(t))
			}
		}
	}
	img.touch()
}
