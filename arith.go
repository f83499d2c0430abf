package raster

// Element-wise arithmetic. Image operands must match in size; a mismatch
// returns ErrDimensionMismatch and leaves the receiver unchanged.

func (img *Image[T]) zip(op string, rhs *Image[T], fn func(a, b T) T) error {
	if !img.CompareDims(rhs) {
		return mismatch(op, img.dim, rhs.dim)
	}
	for i := range img.base {
		img.base[i] = fn(img.base[i], rhs.base[i])
	}
	img.touch()
	return nil
}

func (img *Image[T]) each(fn func(p T) T) {
	for i := range img.base {
		img.base[i] = fn(img.base[i])
	}
	img.touch()
}

// AddImage adds rhs pixel by pixel.
func (img *Image[T]) AddImage(rhs *Image[T]) error {
	return img.zip("add", rhs, func(a, b T) T { return a.Add(b) })
}

// SubImage subtracts rhs pixel by pixel.
func (img *Image[T]) SubImage(rhs *Image[T]) error {
	return img.zip("subtract", rhs, func(a, b T) T { return a.Sub(b) })
}

// MulImage multiplies by rhs pixel by pixel (component-wise).
func (img *Image[T]) MulImage(rhs *Image[T]) error {
	return img.zip("multiply", rhs, func(a, b T) T { return a.Mul(b) })
}

// DivImage divides by rhs pixel by pixel (component-wise).
func (img *Image[T]) DivImage(rhs *Image[T]) error {
	return img.zip("divide", rhs, func(a, b T) T { return a.Div(b) })
}

// AddPixel adds c to every pixel.
func (img *Image[T]) AddPixel(c T) { img.each(func(p T) T { return p.Add(c) }) }

// SubPixel subtracts c from every pixel.
func (img *Image[T]) SubPixel(c T) { img.each(func(p T) T { return p.Sub(c) }) }

// MulPixel multiplies every pixel by c.
func (img *Image[T]) MulPixel(c T) { img.each(func(p T) T { return p.Mul(c) }) }

// DivPixel divides every pixel by c.
func (img *Image[T]) DivPixel(c T) { img.each(func(p T) T { return p.Div(c) }) }

// MulScalar scales every pixel by s.
func (img *Image[T]) MulScalar(s float32) { img.each(func(p T) T { return p.Scale(s) }) }

// DivScalar scales every pixel by 1/s.
func (img *Image[T]) DivScalar(s float32) { img.MulScalar(1 / s) }

// Apply replaces every pixel p with fn(p, t). t is typically a time
// parameter for animated effects.
func (img *Image[T]) Apply(fn func(p T, t float32) T, t float32) {
	img.each(func(p T) T { return fn(p, t) })
}

// Grayscale converts every pixel to grey when T implements Grayscaler.
func (img *Image[T]) Grayscale() {
	var z T
	if _, ok := any(z).(Grayscaler[T]); !ok {
		return
	}
	img.each(func(p T) T { return any(p).(Grayscaler[T]).Gray() })
}

// Clamp limits every component to [lo, hi] when T implements Clamper.
func (img *Image[T]) Clamp(lo, hi float32) {
	var z T
	if _, ok := any(z).(Clamper[T]); !ok {
		return
	}
	img.each(func(p T) T { return any(p).(Clamper[T]).Clamp(lo, hi) })
}

// Constrain maps every pixel into its valid domain when T implements
// Constrainer.
func (img *Image[T]) Constrain() {
	var z T
	if _, ok := any(z).(Constrainer[T]); !ok {
		return
	}
	img.each(func(p T) T { return any(p).(Constrainer[T]).Constrain() })
}
