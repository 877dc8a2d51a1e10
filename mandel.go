// Package mandel renders grayscale Mandelbrot escape-time rasters.
//
// A render maps every pixel of a width×height grid onto a rectangle of the
// complex plane, counts how many iterations of z = z²+c it takes the orbit to
// leave the radius-2 disc, and turns that count into one intensity byte that
// is written three times (R=G=B). The buffer is row-major, rows top to bottom
// in buffer order and pixels left to right.
//
// The same raster can be produced sequentially on the calling goroutine or in
// parallel by a pool of row workers. Both produce the same bytes.
package mandel

import (
	"maps"
	"slices"
)

// Rect is a rectangle of the complex plane.
// Left/Right bound the real axis, Top/Bottom the imaginary axis.
// No ordering is required: inverted rectangles mirror the image and
// degenerate ones collapse an axis to a constant.
type Rect struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Point returns the complex coordinate of pixel (x, y) in a width×height grid.
//
// Row 0 maps onto Bottom and the imaginary part moves towards Top as y grows.
// Renderers depend on this exact expression so outputs stay bit-compatible.
func (r Rect) Point(x, y, width, height int) complex128 {
	return complex(
		r.Left+(float64(x)/float64(width))*(r.Right-r.Left),
		r.Bottom+(float64(y)/float64(height))*(r.Top-r.Bottom),
	)
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Classic – the whole set, as rendered by the timing harness
	Classic = Rect{
		Left:   -2.0,
		Right:  1.0,
		Top:    -1.0,
		Bottom: 1.0,
	}

	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Rect{
		Left:   -0.8,
		Right:  -0.7,
		Top:    0.15,
		Bottom: 0.05,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Rect{
		Left:   -1.85,
		Right:  -1.75,
		Top:    -0.02,
		Bottom: -0.10,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Rect{
		Left:   -0.7435,
		Right:  -0.7420,
		Top:    0.1325,
		Bottom: 0.1310,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Rect{
		Left:   -0.7480,
		Right:  -0.7450,
		Top:    0.0980,
		Bottom: 0.0950,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Rect{
		Left:   -0.7400,
		Right:  -0.7350,
		Top:    0.1850,
		Bottom: 0.1800,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Rect{
		Left:   -1.7390,
		Right:  -1.7375,
		Top:    -0.0220,
		Bottom: -0.0235,
	}
)

// regions indexes the landmark rectangles by a short lowercase name.
var regions = map[string]Rect{
	"classic":    Classic,
	"seahorse":   SeahorseValley,
	"elephant":   ElephantValley,
	"minibrot":   SpiralMinibrot,
	"triple":     TripleSpiral,
	"dragon":     ValleyOfTheDragon,
	"minispiral": MinibrotInMiniSpiral,
}

// RegionByName returns the landmark rectangle registered under name.
func RegionByName(name string) (Rect, bool) {
	r, ok := regions[name]
	return r, ok
}

// RegionNames returns the names accepted by RegionByName in sorted order.
func RegionNames() []string {
	return slices.Sorted(maps.Keys(regions))
}
