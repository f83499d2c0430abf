package raster

import (
	"fmt"
)

// config collects Option values before an Image is allocated.
type config struct {
	bounds *Box2f
	mip    bool
	extend Extend
	seed   uint64
	seeded bool
}

// Option is something that can be configured on an Image at creation.
type Option func(*config) error

// WithBounds sets non-default logical bounds. By default x spans [-1, 1]
// and y spans the same distance per pixel, pointing up.
func WithBounds(bb Box2f) Option {
	return func(c *config) error {
		if bb.Min.X == bb.Max.X || bb.Min.Y == bb.Max.Y {
			return fmt.Errorf("bounds must have non-zero extent, given %v", bb)
		}
		c.bounds = &bb
		return nil
	}
}

// WithMip makes the image maintain a mip-map pyramid (see UseMip).
func WithMip(m bool) Option {
	return func(c *config) error {
		c.mip = m
		return nil
	}
}

// WithExtend sets the image's own extend policy, used when the image is
// read as a splat or warp-field source.
func WithExtend(e Extend) Option {
	return func(c *config) error {
		if e < SampleSingle || e > SampleReflect {
			return fmt.Errorf("unknown extend policy %d", e)
		}
		c.extend = e
		return nil
	}
}

// WithSeed seeds the image's noise generator. Without it every image draws
// a random seed.
func WithSeed(s uint64) Option {
	return func(c *config) error {
		c.seed = s
		c.seeded = true
		return nil
	}
}
