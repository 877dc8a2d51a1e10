package mandel

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Renderer produces grayscale escape-time rasters.
// The zero value renders with DefaultMaxIterations and GOMAXPROCS workers.
// A Renderer is safe for concurrent use.
type Renderer struct {
	cfg config
}

// NewRenderer returns a Renderer configured by opts.
func NewRenderer(opts ...Option) (*Renderer, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("new renderer: %w", err)
		}
	}
	return &Renderer{cfg: cfg}, nil
}

// MaxIterations returns the escape-time cap in effect.
func (r *Renderer) MaxIterations() int {
	return r.cfg.maxIterations()
}

// Workers returns the size of the pool Parallel starts.
func (r *Renderer) Workers() int {
	return r.cfg.workerCount()
}

// Sequential renders the raster on the calling goroutine, row by row.
// width and height must be positive; otherwise the result is empty.
func (r *Renderer) Sequential(width, height int, rect Rect) []byte {
	if width <= 0 || height <= 0 {
		return []byte{}
	}
	stride := width * 3
	pix := make([]byte, 0, height*stride)
	for y := 0; y < height; y++ {
		pix = r.appendRow(pix, y, width, height, rect)
	}
	return pix
}

// Parallel renders the raster with a fixed pool of row workers.
// Rows are claimed from a shared counter and written into their own window
// of a pre-sized buffer, so the result is byte-identical to Sequential no
// matter which worker finishes first.
//
// A failing worker fails the whole render; no partial buffer is returned.
func (r *Renderer) Parallel(width, height int, rect Rect) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return []byte{}, nil
	}
	stride := width * 3
	pix := make([]byte, height*stride)
	workers := min(r.cfg.workerCount(), height)

	var next atomic.Int64
	var g errgroup.Group
	for w := range workers {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("row worker %d: %v", w, p)
				}
			}()
			for {
				y := int(next.Add(1)) - 1
				if y >= height {
					return nil
				}
				row := pix[y*stride : (y+1)*stride : (y+1)*stride]
				r.appendRow(row[:0], y, width, height, rect)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel render: %w", err)
	}
	return pix, nil
}

// appendRow appends the width*3 bytes of row y to dst.
func (r *Renderer) appendRow(dst []byte, y, width, height int, rect Rect) []byte {
	maxIter := r.cfg.maxIterations()
	for x := 0; x < width; x++ {
		c := Intensity(EscapeTime(rect.Point(x, y, width, height), maxIter), maxIter)
		dst = append(dst, c, c, c)
	}
	if r.cfg.onRowRender != nil {
		r.cfg.onRowRender(y)
	}
	return dst
}

// Generate validates req and renders it with the requested strategy.
func (r *Renderer) Generate(req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	switch req.Strategy {
	case StrategySequential:
		return r.Sequential(req.Width, req.Height, req.Rect), nil
	default:
		return r.Parallel(req.Width, req.Height, req.Rect)
	}
}

var _ ImageGenerator = (*Renderer)(nil)

// GenerateSequential renders the rectangle [left, right] × [bottom, top] on a
// width×height grid with the default configuration, on the calling goroutine.
func GenerateSequential(width, height int, left, right, top, bottom float64) []byte {
	var r Renderer
	return r.Sequential(width, height, Rect{Left: left, Right: right, Top: top, Bottom: bottom})
}

// GenerateParallel is GenerateSequential spread over GOMAXPROCS row workers.
func GenerateParallel(width, height int, left, right, top, bottom float64) ([]byte, error) {
	var r Renderer
	return r.Parallel(width, height, Rect{Left: left, Right: right, Top: top, Bottom: bottom})
}
