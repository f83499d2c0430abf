package raster

import (
	"testing"
)

func TestIndexExtend(t *testing.T) {
	img := ramp(t, 4, 3) // pixel (x, y) = y*4 + x

	tests := []struct {
		name   string
		vi     Vec2i
		extend Extend
		want   Gray
	}{
		{"in range", V(2, 1), SampleSingle, 6},
		{"single left", V(-1, 0), SampleSingle, 0},
		{"single right", V(5, 1), SampleSingle, 7},
		{"single above", V(2, -3), SampleSingle, 2},
		{"single below", V(1, 9), SampleSingle, 9},
		{"repeat left", V(-1, 0), SampleRepeat, 3},
		{"repeat right", V(5, 1), SampleRepeat, 5},
		{"repeat above", V(2, -1), SampleRepeat, 10},
		{"repeat far", V(-9, 7), SampleRepeat, 7},
		{"reflect left", V(-1, 0), SampleReflect, 0},
		{"reflect right edge", V(4, 0), SampleReflect, 3},
		{"reflect right", V(5, 1), SampleReflect, 6},
		{"reflect below", V(0, 3), SampleReflect, 8},
		{"reflect full period", V(8, 0), SampleReflect, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.Index(tt.vi, tt.extend); got != tt.want {
				t.Errorf("Index(%v, %v) = %v, want %v", tt.vi, tt.extend, got, tt.want)
			}
		})
	}
}

func TestIndexRepeatPeriodic(t *testing.T) {
	img := ramp(t, 5, 3)
	dim := img.Dim()
	for y := 0; y < dim.Y; y++ {
		for x := 0; x < dim.X; x++ {
			vi := V(x, y)
			want := img.Index(vi, SampleRepeat)
			if got := img.Index(vi.Add(dim), SampleRepeat); got != want {
				t.Errorf("Index(%v+dim) = %v, want %v", vi, got, want)
			}
			if got := img.Index(vi.Sub(dim.Scale(3)), SampleRepeat); got != want {
				t.Errorf("Index(%v-3*dim) = %v, want %v", vi, got, want)
			}
		}
	}
}

func TestIndexEmpty(t *testing.T) {
	var img Image[Gray]
	if got := img.Index(V(3, 3), SampleRepeat); got != 0 {
		t.Errorf("Index() on empty image = %v, want 0", got)
	}
	if got := img.Sample(V[float32](0, 0), true, SampleReflect); got != 0 {
		t.Errorf("Sample() on empty image = %v, want 0", got)
	}
}

func TestSampleAtPixelCentres(t *testing.T) {
	for _, dim := range []Vec2i{V(4, 3), V(7, 7), V(16, 5), V(1, 4)} {
		img := ramp(t, dim.X, dim.Y)
		for y := 0; y < dim.Y; y++ {
			for x := 0; x < dim.X; x++ {
				vi := V(x, y)
				want := img.Index(vi, SampleSingle)
				v := img.PixelToLogical(vi)
				if got := img.Sample(v, false, SampleSingle); got != want {
					t.Errorf("%v: Sample(%v, nearest) = %v, want %v", dim, v, got, want)
				}
				if got := img.Sample(v, true, SampleSingle); got != want {
					t.Errorf("%v: Sample(%v, smooth) = %v, want %v", dim, v, got, want)
				}
			}
		}
	}
}

func TestSampleAtPixelCentresLarge(t *testing.T) {
	tests := []struct {
		name string
		dim  Vec2i
		opts []Option
	}{
		{"640x480", V(640, 480), nil},
		{"1024x768", V(1024, 768), nil},
		{"offset bounds", V(640, 480), []Option{WithBounds(B[float32](1000, 1010, 1010, 1000))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := ramp(t, tt.dim.X, tt.dim.Y, tt.opts...)
			bad := 0
			for y := 0; y < tt.dim.Y; y++ {
				for x := 0; x < tt.dim.X; x++ {
					vi := V(x, y)
					want := img.Index(vi, SampleSingle)
					v := img.PixelToLogical(vi)
					if got := img.Sample(v, true, SampleSingle); got != want {
						if bad < 5 {
							t.Errorf("Sample(%v, smooth) at %v = %v, want %v", v, vi, got, want)
						}
						bad++
					}
					if got := img.Sample(v, false, SampleSingle); got != want {
						if bad < 5 {
							t.Errorf("Sample(%v, nearest) at %v = %v, want %v", v, vi, got, want)
						}
						bad++
					}
				}
			}
			if bad > 0 {
				t.Errorf("%d samples missed their pixel", bad)
			}
		})
	}
}

func TestSampleBilinear(t *testing.T) {
	img := ramp(t, 4, 3)

	a := img.PixelToLogical(V(0, 0))
	b := img.PixelToLogical(V(1, 0))
	mid := a.Add(b).Scale(0.5)
	if got := img.Sample(mid, true, SampleSingle); !near(float32(got), 0.5, 1e-4) {
		t.Errorf("Sample(midpoint x) = %v, want 0.5", got)
	}

	c := img.PixelToLogical(V(1, 1))
	centre := a.Add(c).Scale(0.5) // between pixels 0, 1, 4 and 5
	if got := img.Sample(centre, true, SampleSingle); !near(float32(got), 2.5, 1e-4) {
		t.Errorf("Sample(centre of 2x2) = %v, want 2.5", got)
	}
}

func TestSampleExtendThroughBounds(t *testing.T) {
	img := ramp(t, 4, 1)
	// one pixel right of the last pixel
	last := img.PixelToLogical(V(3, 0))
	step := img.PixelToLogical(V(1, 0)).Sub(img.PixelToLogical(V(0, 0)))
	past := last.Add(step)

	tests := []struct {
		extend Extend
		want   Gray
	}{
		{SampleSingle, 3},
		{SampleRepeat, 0},
		{SampleReflect, 3},
	}
	for _, tt := range tests {
		t.Run(tt.extend.String(), func(t *testing.T) {
			if got := img.Sample(past, false, tt.extend); got != tt.want {
				t.Errorf("Sample(past edge) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleTile(t *testing.T) {
	img := ramp(t, 4, 3) // bounds x [-1, 1], y [0.75, -0.75]

	t.Run("far edge wraps under repeat", func(t *testing.T) {
		v := V[float32](1, 0.75)
		if got := img.SampleTile(v, false, SampleRepeat); got != 0 {
			t.Errorf("SampleTile(%v) = %v, want 0", v, got)
		}
		if got := img.Sample(v, false, SampleRepeat); got != 3 {
			t.Errorf("Sample(%v) = %v, want 3", v, got)
		}
	})

	t.Run("maps onto dim not dim-1", func(t *testing.T) {
		v := V[float32](0.5, 0.75)
		if got := img.SampleTile(v, false, SampleSingle); got != 3 {
			t.Errorf("SampleTile(%v) = %v, want 3", v, got)
		}
		if got := img.Sample(v, false, SampleSingle); got != 2 {
			t.Errorf("Sample(%v) = %v, want 2", v, got)
		}
	})

	t.Run("extrapolates left of the first pixel", func(t *testing.T) {
		v := V[float32](-1.25, 0.75)
		if got := img.SampleTile(v, true, SampleSingle); got != -0.5 {
			t.Errorf("SampleTile(%v, smooth) = %v, want -0.5", v, got)
		}
		if got := img.Sample(v, true, SampleSingle); got != 0 {
			t.Errorf("Sample(%v, smooth) = %v, want 0", v, got)
		}
	})
}

func TestLogicalPixelRoundTrip(t *testing.T) {
	img := ramp(t, 10, 6)
	for _, vi := range []Vec2i{V(0, 0), V(9, 5), V(3, 2)} {
		got := img.LogicalToPixel(img.PixelToLogical(vi))
		if !near(got.X, float32(vi.X), 1e-5) || !near(got.Y, float32(vi.Y), 1e-5) {
			t.Errorf("round trip of %v = %v", vi, got)
		}
	}

	// logical y points up: top row has the larger y
	top := img.PixelToLogical(V(0, 0))
	bottom := img.PixelToLogical(V(0, 5))
	if top.Y <= bottom.Y {
		t.Errorf("top row y = %v, bottom row y = %v, want top > bottom", top.Y, bottom.Y)
	}
}
