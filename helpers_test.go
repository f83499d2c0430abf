package raster

import (
	"testing"
)

// ramp returns a w x h Gray image whose pixel i holds float32(i).
func ramp(t *testing.T, w, h int, opts ...Option) *Image[Gray] {
	t.Helper()
	img, err := New[Gray](V(w, h), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := range img.Base() {
		img.Base()[i] = Gray(i)
	}
	img.Touch()
	return img
}

// filled returns a w x h Gray image with every pixel set to v.
func filled(t *testing.T, w, h int, v Gray) *Image[Gray] {
	t.Helper()
	img, err := New[Gray](V(w, h))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	img.Fill(v)
	return img
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}
