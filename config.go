package mandel

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	ErrInvalidMaxIterations = errors.New("max iterations must be at least 1")
	ErrInvalidWorkers       = errors.New("workers must not be negative")
)

type config struct {
	maxIter     int
	workers     int
	onRowRender func(y int)
}

// Option configures a Renderer.
type Option func(*config) error

// WithMaxIterations caps the escape-time search depth. Defaults to DefaultMaxIterations.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidMaxIterations, n)
		}
		c.maxIter = n
		return nil
	}
}

// WithWorkers sets the number of row workers used by Parallel.
// 0 means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkers, n)
		}
		c.workers = n
		return nil
	}
}

// WithOnRowRender registers fn to be called after every finished row.
// Parallel renders call it from several goroutines at once.
func WithOnRowRender(fn func(y int)) Option {
	return func(c *config) error {
		c.onRowRender = fn
		return nil
	}
}

func (c config) maxIterations() int {
	if c.maxIter == 0 {
		return DefaultMaxIterations
	}
	return c.maxIter
}

func (c config) workerCount() int {
	if c.workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.workers
}
