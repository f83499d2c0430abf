package raster

import (
	"fmt"
)

// BufferPair holds a primary image and, once asked for, a scratch copy of
// it, for effects that read the previous frame while writing the next
// (cellular automata, feedback, melt). Swap flips which slot is primary,
// so neither image is ever reachable as both at once.
//
// The zero value holds no image.
type BufferPair[T Pixel[T]] struct {
	slots  [2]*Image[T]
	active int // index of the primary slot
}

// NewBufferPair returns a pair whose primary is a copy of img.
func NewBufferPair[T Pixel[T]](img *Image[T]) *BufferPair[T] {
	bp := &BufferPair[T]{}
	bp.Reset(img)
	return bp
}

// HasImage reports whether there is a primary image.
func (bp *BufferPair[T]) HasImage() bool { return bp.slots[bp.active] != nil }

// Image returns the primary image, or nil if none has been set.
func (bp *BufferPair[T]) Image() *Image[T] { return bp.slots[bp.active] }

// Buffer returns the scratch image, creating it as a copy of the primary
// the first time it is needed.
func (bp *BufferPair[T]) Buffer() (*Image[T], error) {
	scratch := 1 - bp.active
	if bp.slots[scratch] == nil {
		if !bp.HasImage() {
			return nil, fmt.Errorf("%w: buffer requested before an image was set", ErrNoImage)
		}
		bp.slots[scratch] = bp.slots[bp.active].Clone()
	}
	return bp.slots[scratch], nil
}

// Swap exchanges primary and scratch. No pixels are copied. Swapping
// before a scratch exists leaves the pair without a primary until the next
// swap.
func (bp *BufferPair[T]) Swap() { bp.active = 1 - bp.active }

// Load replaces the primary with an image read from filename. On error
// the pair is unchanged.
func (bp *BufferPair[T]) Load(filename string) error {
	img, err := Open[T](filename)
	if err != nil {
		return err
	}
	bp.replace(img)
	return nil
}

// Reset replaces the primary with a copy of img.
func (bp *BufferPair[T]) Reset(img *Image[T]) { bp.replace(img.Clone()) }

// ResetDim replaces the primary with a blank image of size dim.
func (bp *BufferPair[T]) ResetDim(dim Vec2i) error {
	img, err := New[T](dim)
	if err != nil {
		return err
	}
	bp.replace(img)
	return nil
}

// Set copies img into the existing primary, or behaves like Reset when
// there is none. The scratch image is dropped either way.
func (bp *BufferPair[T]) Set(img *Image[T]) {
	if !bp.HasImage() {
		bp.Reset(img)
		return
	}
	bp.slots[bp.active].Copy(img)
	bp.slots[1-bp.active] = nil
}

// SetPair is Set with the primary of another pair.
func (bp *BufferPair[T]) SetPair(o *BufferPair[T]) error {
	if !o.HasImage() {
		return fmt.Errorf("%w: source pair is empty", ErrNoImage)
	}
	bp.Set(o.Image())
	return nil
}

// SetDim clears the primary if it already has size dim, otherwise it
// behaves like ResetDim.
func (bp *BufferPair[T]) SetDim(dim Vec2i) error {
	if bp.HasImage() && bp.Image().Dim() == dim {
		bp.Image().Clear()
		bp.slots[1-bp.active] = nil
		return nil
	}
	return bp.ResetDim(dim)
}

func (bp *BufferPair[T]) replace(img *Image[T]) {
	bp.slots[bp.active] = img
	bp.slots[1-bp.active] = nil
}
