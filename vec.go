package raster

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

// Scalar is a constraint for the coordinate types Vec and Box can hold.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// Vec is a 2D vector. Vec2f doubles as the pixel type of vector fields and
// Vec2i as the pixel type of offset fields.
type Vec[N Scalar] struct {
	X, Y N
}

type (
	Vec2f = Vec[float32]
	Vec2i = Vec[int]
)

// V is shorthand for Vec{x, y}.
func V[N Scalar](x, y N) Vec[N] {
	return Vec[N]{X: x, Y: y}
}

// Add returns v+o.
func (v Vec[N]) Add(o Vec[N]) Vec[N] { return Vec[N]{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec[N]) Sub(o Vec[N]) Vec[N] { return Vec[N]{v.X - o.X, v.Y - o.Y} }

// Mul multiplies component-wise.
func (v Vec[N]) Mul(o Vec[N]) Vec[N] { return Vec[N]{v.X * o.X, v.Y * o.Y} }

// Div divides component-wise. Integer division by a zero component
// yields zero for that component.
func (v Vec[N]) Div(o Vec[N]) Vec[N] {
	return Vec[N]{safeDiv(v.X, o.X), safeDiv(v.Y, o.Y)}
}

// Scale multiplies both components by s.
func (v Vec[N]) Scale(s float32) Vec[N] {
	return Vec[N]{scaleN(v.X, s), scaleN(v.Y, s)}
}

// Len returns the euclidean length.
func (v Vec[N]) Len() float32 {
	x, y := float32(v.X), float32(v.Y)
	return math32.Sqrt(x*x + y*y)
}

// Rotate rotates v by theta radians (counter-clockwise).
func (v Vec[N]) Rotate(theta float32) Vec[N] {
	s, c := math32.Sin(theta), math32.Cos(theta)
	x, y := float32(v.X), float32(v.Y)
	return Vec[N]{N(x*c - y*s), N(x*s + y*c)}
}

// Float converts to Vec2f.
func (v Vec[N]) Float() Vec2f { return Vec2f{float32(v.X), float32(v.Y)} }

// Round converts to the nearest Vec2i, halves rounding up.
func (v Vec[N]) Round() Vec2i {
	return Vec2i{int(round32(float32(v.X))), int(round32(float32(v.Y)))}
}

// Floor converts to Vec2i rounding toward negative infinity.
func (v Vec[N]) Floor() Vec2i {
	return Vec2i{int(math32.Floor(float32(v.X))), int(math32.Floor(float32(v.Y)))}
}

// Trunc converts to Vec2i rounding toward zero.
func (v Vec[N]) Trunc() Vec2i {
	return Vec2i{int(v.X), int(v.Y)}
}

// Constrain keeps vector fields finite: NaN / Inf components become zero.
func (v Vec[N]) Constrain() Vec[N] {
	x, y := float32(v.X), float32(v.Y)
	if math32.IsNaN(x) || math32.IsInf(x, 0) {
		v.X = 0
	}
	if math32.IsNaN(y) || math32.IsInf(y, 0) {
		v.Y = 0
	}
	return v
}

func safeDiv[N Scalar](a, b N) N {
	var z N
	switch any(z).(type) {
	case float32, float64:
		return a / b
	}
	if b == 0 {
		return 0
	}
	return a / b
}

func round32(f float32) float32 { return math32.Floor(f + 0.5) }

// scaleN multiplies n by s, rounding to nearest for integer types.
func scaleN[N Scalar](n N, s float32) N {
	f := float32(n) * s
	var z N
	switch any(z).(type) {
	case float32, float64:
		return N(f)
	}
	return N(round32(f))
}

// Box is an axis aligned bounding box between two corners. Min is not
// required to be smaller than Max: logical bounds put y up, so their Min.Y
// is the larger value.
type Box[N Scalar] struct {
	Min, Max Vec[N]
}

type (
	Box2f = Box[float32]
	Box2i = Box[int]
)

// B is shorthand for Box{Vec{x0, y0}, Vec{x1, y1}}.
func B[N Scalar](x0, y0, x1, y1 N) Box[N] {
	return Box[N]{Min: Vec[N]{x0, y0}, Max: Vec[N]{x1, y1}}
}

// Dim returns Max-Min.
func (b Box[N]) Dim() Vec[N] { return b.Max.Sub(b.Min) }

// Empty reports whether the box encloses no area (for integer pixel boxes,
// whether it covers no pixels).
func (b Box[N]) Empty() bool { return b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y }

// Intersect returns the overlap of two boxes whose Min <= Max.
func (b Box[N]) Intersect(o Box[N]) Box[N] {
	r := Box[N]{
		Min: Vec[N]{max(b.Min.X, o.Min.X), max(b.Min.Y, o.Min.Y)},
		Max: Vec[N]{min(b.Max.X, o.Max.X), min(b.Max.Y, o.Max.Y)},
	}
	if r.Empty() {
		return Box[N]{}
	}
	return r
}

// Contains reports whether p lies inside the box, treating Max as exclusive.
func (b Box[N]) Contains(p Vec[N]) bool {
	return p.X >= b.Min.X && p.X < b.Max.X && p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Normalize orders the corners so Min <= Max.
func (b Box[N]) Normalize() Box[N] {
	return Box[N]{
		Min: Vec[N]{min(b.Min.X, b.Max.X), min(b.Min.Y, b.Max.Y)},
		Max: Vec[N]{max(b.Min.X, b.Max.X), max(b.Min.Y, b.Max.Y)},
	}
}

// Float converts to Box2f.
func (b Box[N]) Float() Box2f { return Box2f{b.Min.Float(), b.Max.Float()} }

// Map linearly maps v from box b into box to. A degenerate axis maps onto
// to.Min.
func (b Box[N]) Map(v Vec2f, to Box2f) Vec2f {
	from := b.Float()
	return Vec2f{
		mapAxis(v.X, from.Min.X, from.Max.X, to.Min.X, to.Max.X),
		mapAxis(v.Y, from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y),
	}
}

func mapAxis(v, a0, a1, b0, b1 float32) float32 {
	if a1 == a0 {
		return b0
	}
	return b0 + (v-a0)*(b1-b0)/(a1-a0)
}

// clampN clamps v to [lo, hi].
func clampN[N Scalar](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
