// Package raster is a generic raster store for pixel images and 2D
// vector / scalar fields.
//
// An Image[T] owns a flat row-major pixel buffer together with three
// bounding boxes: logical bounds (resolution independent, y up), an
// integer pixel box [0, dim) and a float pixel box [0, dim-1] onto which
// logical coordinates are mapped for sampling. On top of that it offers a
// lazily built mip-map pyramid, sampling with clamp / wrap / mirror extend
// policies, warping through displacement fields, masked compositing and
// splatting. T only needs the arithmetic in Pixel; everything colour
// specific is left to the pixel type (see the capability interfaces).
//
// Nothing in this package is safe for concurrent mutation. An operation
// that reads one image and writes another may be run in parallel with
// other readers of the source.
package raster

import (
	"math/rand/v2"
)

// Dimensioned is anything with pixel dimensions, regardless of pixel type.
type Dimensioned interface {
	Dim() Vec2i
}

// Image is a raster of T. The zero value is an empty 0x0 stub ready to use.
type Image[T Pixel[T]] struct {
	dim  Vec2i
	base []T // len(base) == dim.X*dim.Y

	bounds   Box2f // logical space
	ipbounds Box2i // pixel space (int), [0,0]..dim
	fpbounds Box2f // pixel space (float), [0,0]..dim-1

	extend Extend
	rng    *rand.Rand // created on first use
	seed   uint64
	seeded bool

	mipMe  bool // maintain a pyramid
	mipped bool // pyramid allocated
	mipUTD bool // pyramid matches base
	mip    []mipLevel[T]
}

// New creates a zeroed image of the given size.
func New[T Pixel[T]](dim Vec2i, opts ...Option) (*Image[T], error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	img := &Image[T]{extend: cfg.extend, mipMe: cfg.mip, seed: cfg.seed, seeded: cfg.seeded}
	if err := img.Resize(dim); err != nil {
		return nil, err
	}
	if cfg.bounds != nil {
		img.bounds = *cfg.bounds
	}
	return img, nil
}

// Open creates an image from a file (see Load).
func Open[T Pixel[T]](filename string, opts ...Option) (*Image[T], error) {
	img, err := New[T](Vec2i{}, opts...)
	if err != nil {
		return nil, err
	}
	return img, img.Load(filename)
}

// Clone returns a deep copy. If the source keeps a pyramid the copy's
// pyramid is rebuilt straight away. A seeded copy starts its noise stream
// from the seed; the source's stream is left where it was.
func (img *Image[T]) Clone() *Image[T] {
	c := &Image[T]{
		dim:      img.dim,
		base:     append([]T(nil), img.base...),
		bounds:   img.bounds,
		ipbounds: img.ipbounds,
		fpbounds: img.fpbounds,
		extend:   img.extend,
		mipMe:    img.mipMe,
		seed:     img.seed,
		seeded:   img.seeded,
	}
	if c.mipMe {
		c.MipIt()
	}
	return c
}

// Copy makes img a pixel-for-pixel copy of src (dimensions, bounds and
// pixels). Mip and extend settings of img are kept.
func (img *Image[T]) Copy(src *Image[T]) {
	if img == src {
		return
	}
	if img.dim != src.dim {
		img.base = make([]T, len(src.base))
	}
	copy(img.base, src.base)
	img.dim = src.dim
	img.bounds = src.bounds
	img.ipbounds = src.ipbounds
	img.fpbounds = src.fpbounds
	img.touch()
}

// Reset frees pixel and pyramid memory and sets the dimensions to zero.
// Whether the image uses a pyramid is remembered.
func (img *Image[T]) Reset() {
	img.base = nil
	img.dim = Vec2i{}
	img.bounds = Box2f{}
	img.ipbounds = Box2i{}
	img.fpbounds = Box2f{}
	img.DeMip()
}

// Dim returns the size in pixels.
func (img *Image[T]) Dim() Vec2i { return img.dim }

// Width returns the width in pixels.
func (img *Image[T]) Width() int { return img.dim.X }

// Height returns the height in pixels.
func (img *Image[T]) Height() int { return img.dim.Y }

// SetDim is Resize.
func (img *Image[T]) SetDim(dim Vec2i) error { return img.Resize(dim) }

// Bounds returns the logical bounding box.
func (img *Image[T]) Bounds() Box2f { return img.bounds }

// SetBounds changes the logical bounding box; pixels are untouched.
func (img *Image[T]) SetBounds(bb Box2f) { img.bounds = bb }

// IPBounds returns the integer pixel box [0,0]..dim.
func (img *Image[T]) IPBounds() Box2i { return img.ipbounds }

// FPBounds returns the float pixel box [0,0]..dim-1.
func (img *Image[T]) FPBounds() Box2f { return img.fpbounds }

// CompareDims reports whether o has the same pixel dimensions.
func (img *Image[T]) CompareDims(o Dimensioned) bool { return img.dim == o.Dim() }

// Extend returns the image's own extend policy.
func (img *Image[T]) Extend() Extend { return img.extend }

// SetExtend sets the image's own extend policy.
func (img *Image[T]) SetExtend(e Extend) { img.extend = e }

// Empty reports whether the image has no pixels.
func (img *Image[T]) Empty() bool { return len(img.base) == 0 }

// Base gives direct access to the pixel buffer, row-major. Call Touch
// after writing through it.
func (img *Image[T]) Base() []T { return img.base }

// At returns the pixel at flat index i.
func (img *Image[T]) At(i int) T { return img.base[i] }

// Set writes the pixel at flat index i.
func (img *Image[T]) Set(i int, v T) {
	img.base[i] = v
	img.touch()
}

// Touch marks the pixels as modified, so the pyramid gets rebuilt before
// it is next read.
func (img *Image[T]) Touch() { img.touch() }

func (img *Image[T]) touch() { img.mipUTD = false }

// setBoxes derives the pixel boxes (and, when reset is true, the default
// logical bounds) from dim.
func (img *Image[T]) setBoxes(resetBounds bool) {
	img.ipbounds = Box2i{Max: img.dim}
	img.fpbounds = Box2f{}
	if img.dim.X > 0 && img.dim.Y > 0 {
		img.fpbounds.Max = img.dim.Sub(Vec2i{1, 1}).Float()
	}
	if resetBounds {
		img.bounds = defaultBounds(img.dim)
	}
}

// defaultBounds spans [-1, 1] in x and keeps square pixels in y, with y
// pointing up.
func defaultBounds(dim Vec2i) Box2f {
	if dim.X <= 0 {
		return Box2f{}
	}
	r := float32(dim.Y) / float32(dim.X)
	return B(-1, r, 1, -r)
}

func (img *Image[T]) rand() *rand.Rand {
	if img.rng == nil {
		seed := img.seed
		if !img.seeded {
			seed = rand.Uint64()
		}
		img.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	return img.rng
}

// index returns the flat index of pixel (x, y).
func (img *Image[T]) index(x, y int) int { return y*img.dim.X + x }
