package raster

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestBufferPairSwap(t *testing.T) {
	bp := NewBufferPair(ramp(t, 3, 3))
	primary := bp.Image()

	scratch, err := bp.Buffer()
	if err != nil {
		t.Fatalf("Buffer() error = %v", err)
	}
	if scratch == primary {
		t.Fatal("Buffer() returned the primary image")
	}
	for i := range primary.Base() {
		if scratch.At(i) != primary.At(i) {
			t.Fatalf("scratch pixel %d = %v, want a copy of the primary", i, scratch.At(i))
		}
	}

	bp.Swap()
	if bp.Image() != scratch {
		t.Error("Swap() did not promote the scratch image")
	}
	if b, _ := bp.Buffer(); b != primary {
		t.Error("Swap() did not demote the primary image")
	}
	bp.Swap()
	if bp.Image() != primary {
		t.Error("Swap() twice did not restore the primary image")
	}
	if b, _ := bp.Buffer(); b != scratch {
		t.Error("Swap() twice did not restore the scratch image")
	}
}

func TestBufferPairFeedback(t *testing.T) {
	bp := NewBufferPair(ramp(t, 4, 1))
	for step := 0; step < 2; step++ {
		next, err := bp.Buffer()
		if err != nil {
			t.Fatalf("Buffer() error = %v", err)
		}
		prev := bp.Image()
		for x := 0; x < 4; x++ {
			next.Set(x, prev.Index(V(x+1, 0), SampleRepeat))
		}
		bp.Swap()
	}
	want := []Gray{2, 3, 0, 1}
	for i, w := range want {
		if got := bp.Image().At(i); got != w {
			t.Errorf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestBufferPairEmpty(t *testing.T) {
	var bp BufferPair[Gray]
	if bp.HasImage() || bp.Image() != nil {
		t.Error("zero BufferPair has an image")
	}
	if _, err := bp.Buffer(); !errors.Is(err, ErrNoImage) {
		t.Errorf("Buffer() error = %v, want ErrNoImage", err)
	}
	var other BufferPair[Gray]
	if err := bp.SetPair(&other); !errors.Is(err, ErrNoImage) {
		t.Errorf("SetPair(empty) error = %v, want ErrNoImage", err)
	}

	bp.Set(ramp(t, 2, 2))
	if !bp.HasImage() || bp.Image().At(3) != 3 {
		t.Error("Set() on an empty pair did not set the primary")
	}
}

func TestBufferPairDropsScratch(t *testing.T) {
	src := ramp(t, 2, 2)

	tests := []struct {
		name string
		op   func(*BufferPair[Gray]) error
	}{
		{"Reset", func(bp *BufferPair[Gray]) error { bp.Reset(src); return nil }},
		{"Set", func(bp *BufferPair[Gray]) error { bp.Set(src); return nil }},
		{"SetPair", func(bp *BufferPair[Gray]) error { return bp.SetPair(NewBufferPair(src)) }},
		{"ResetDim", func(bp *BufferPair[Gray]) error { return bp.ResetDim(V(5, 5)) }},
		{"SetDim same", func(bp *BufferPair[Gray]) error { return bp.SetDim(V(2, 2)) }},
		{"SetDim new", func(bp *BufferPair[Gray]) error { return bp.SetDim(V(3, 1)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp := NewBufferPair(filled(t, 2, 2, 9))
			old, _ := bp.Buffer()
			if err := tt.op(bp); err != nil {
				t.Fatalf("error = %v", err)
			}
			scratch, err := bp.Buffer()
			if err != nil {
				t.Fatalf("Buffer() error = %v", err)
			}
			if scratch == old {
				t.Error("scratch image survived")
			}
			if !scratch.CompareDims(bp.Image()) {
				t.Errorf("new scratch is %v, primary is %v", scratch.Dim(), bp.Image().Dim())
			}
		})
	}
}

func TestBufferPairSet(t *testing.T) {
	bp := NewBufferPair(filled(t, 2, 2, 9))
	primary := bp.Image()
	src := ramp(t, 3, 3)

	bp.Set(src)
	if bp.Image() != primary {
		t.Error("Set() replaced the primary instead of copying into it")
	}
	if bp.Image().Dim() != V(3, 3) || bp.Image().At(8) != 8 {
		t.Errorf("Set() primary = %v, pixel 8 = %v", bp.Image().Dim(), bp.Image().At(8))
	}

	src.Set(8, 100)
	if bp.Image().At(8) != 8 {
		t.Error("Set() shares pixels with its argument")
	}

	if err := bp.SetDim(V(3, 3)); err != nil {
		t.Fatalf("SetDim() error = %v", err)
	}
	if bp.Image() != primary || count(bp.Image(), 0) != 9 {
		t.Error("SetDim() with the same size did not clear in place")
	}
	if err := bp.SetDim(V(-1, 3)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("SetDim(-1, 3) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestBufferPairLoad(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "frame.bin")
	if err := ramp(t, 3, 2).WriteBinary(fn); err != nil {
		t.Fatalf("WriteBinary() error = %v", err)
	}

	bp := NewBufferPair(filled(t, 1, 1, 9))
	if err := bp.Load(filepath.Join(dir, "missing.bin")); !errors.Is(err, ErrIO) {
		t.Errorf("Load(missing) error = %v, want ErrIO", err)
	}
	if bp.Image().Dim() != V(1, 1) {
		t.Error("failed Load() changed the pair")
	}

	if err := bp.Load(fn); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if bp.Image().Dim() != V(3, 2) || bp.Image().At(5) != 5 {
		t.Errorf("Load() primary = %v, pixel 5 = %v", bp.Image().Dim(), bp.Image().At(5))
	}
}
