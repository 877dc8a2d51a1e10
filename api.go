package mandel

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

//go:generate irpc api.go

var ErrInvalidRequest = errors.New("invalid render request")

// ImageGenerator renders a Request into a flat R=G=B pixel buffer.
type ImageGenerator interface {
	Generate(req Request) ([]byte, error)
}

// Request describes one render as it crosses a transport boundary.
type Request struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Rect     Rect     `json:"rect"`
	Strategy Strategy `json:"strategy"`
}

// Pixels returns Width*Height, or 0 for a non-positive size.
// A product that does not fit in an int saturates at math.MaxInt.
func (req Request) Pixels() int {
	if req.Width <= 0 || req.Height <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(req.Width), uint64(req.Height))
	if hi != 0 || lo > math.MaxInt {
		return math.MaxInt
	}
	return int(lo)
}

// Validate reports whether req can be rendered. Renderer methods themselves
// trust their arguments, so transports call this before handing work over.
func (req Request) Validate() error {
	if req.Width <= 0 || req.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRequest, req.Width, req.Height)
	}
	for _, v := range [...]float64{req.Rect.Left, req.Rect.Right, req.Rect.Top, req.Rect.Bottom} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite rect %+v", ErrInvalidRequest, req.Rect)
		}
	}
	if !req.Strategy.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, req.Strategy)
	}
	return nil
}
