package raster

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine helpers over f64.Aff3, which is row major with an implicit
// bottom row [0 0 1]:
//
//	x' = m[0]*x + m[1]*y + m[2]
//	y' = m[3]*x + m[4]*y + m[5]
//
// Transforms are composed in float64 so that chains of box mappings land
// back on whole pixels.

func affIdentity() f64.Aff3 { return f64.Aff3{1, 0, 0, 0, 1, 0} }

func affTranslate(v Vec2f) f64.Aff3 {
	return f64.Aff3{1, 0, float64(v.X), 0, 1, float64(v.Y)}
}

func affScale(s float64) f64.Aff3 { return f64.Aff3{s, 0, 0, 0, s, 0} }

// affRotate rotates counter-clockwise by theta radians.
func affRotate(theta float64) f64.Aff3 {
	s, c := math.Sincos(theta)
	return f64.Aff3{c, -s, 0, s, c, 0}
}

// affBox maps box from onto box to, axis by axis. A degenerate axis of
// from maps onto to.Min.
func affBox(from, to Box2f) f64.Aff3 {
	sx, tx := axisMap(from.Min.X, from.Max.X, to.Min.X, to.Max.X)
	sy, ty := axisMap(from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y)
	return f64.Aff3{sx, 0, tx, 0, sy, ty}
}

func axisMap(a0, a1, b0, b1 float32) (scale, offset float64) {
	if a0 == a1 {
		return 0, float64(b0)
	}
	scale = (float64(b1) - float64(b0)) / (float64(a1) - float64(a0))
	return scale, float64(b0) - float64(a0)*scale
}

// affMul returns m*n, the transform applying n first, then m.
func affMul(m, n f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		m[0]*n[0] + m[1]*n[3],
		m[0]*n[1] + m[1]*n[4],
		m[0]*n[2] + m[1]*n[5] + m[2],
		m[3]*n[0] + m[4]*n[3],
		m[3]*n[1] + m[4]*n[4],
		m[3]*n[2] + m[4]*n[5] + m[5],
	}
}

// affChain composes transforms applied left to right.
func affChain(ms ...f64.Aff3) f64.Aff3 {
	r := affIdentity()
	for _, m := range ms {
		r = affMul(m, r)
	}
	return r
}

func affApply(m f64.Aff3, x, y float64) Vec2f {
	return Vec2f{
		float32(m[0]*x + m[1]*y + m[2]),
		float32(m[3]*x + m[4]*y + m[5]),
	}
}

// affPos applies m to a whole pixel position, keeping the result in float64.
func affPos(m f64.Aff3, x, y float64) pos {
	return pos{
		x:  m[0]*x + m[1]*y + m[2],
		y:  m[3]*x + m[4]*y + m[5],
		tx: snapEps,
		ty: snapEps,
	}
}
