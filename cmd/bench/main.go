// main.go times the sequential and parallel renderers against each other.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/graymandel"
)

type benchFlags struct {
	width, height            int
	left, right, top, bottom float64
	region                   string
	workers                  int
	maxIter                  int
	progress                 bool
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var f benchFlags
	cmd := &cobra.Command{
		Use:           "bench",
		Short:         "Time single-threaded against multi-threaded Mandelbrot rendering",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.region != "" {
				rect, ok := mandel.RegionByName(f.region)
				if !ok {
					return fmt.Errorf("unknown region %q", f.region)
				}
				f.left, f.right, f.top, f.bottom = rect.Left, rect.Right, rect.Top, rect.Bottom
			}
			return run(out, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.width, "width", 2000, "image width in pixels")
	fl.IntVar(&f.height, "height", 2000, "image height in pixels")
	fl.Float64Var(&f.left, "left", mandel.Classic.Left, "real part at the left edge")
	fl.Float64Var(&f.right, "right", mandel.Classic.Right, "real part at the right edge")
	fl.Float64Var(&f.top, "top", mandel.Classic.Top, "imaginary part towards the last row")
	fl.Float64Var(&f.bottom, "bottom", mandel.Classic.Bottom, "imaginary part at row 0")
	fl.StringVar(&f.region, "region", "", "named region, overrides the edge flags")
	fl.IntVar(&f.workers, "workers", 0, "row workers for the parallel run (0 = GOMAXPROCS)")
	fl.IntVar(&f.maxIter, "max-iter", mandel.DefaultMaxIterations, "escape-time iteration cap")
	fl.BoolVar(&f.progress, "progress", false, "log every finished tenth of the image")
	return cmd
}

func run(out io.Writer, f benchFlags) error {
	req := mandel.Request{
		Width:  f.width,
		Height: f.height,
		Rect:   mandel.Rect{Left: f.left, Right: f.right, Top: f.top, Bottom: f.bottom},
	}
	if err := req.Validate(); err != nil {
		return err
	}

	opts := []mandel.Option{mandel.WithWorkers(f.workers), mandel.WithMaxIterations(f.maxIter)}
	if f.progress {
		opts = append(opts, mandel.WithOnRowRender(progressLogger(f.height)))
	}
	r, err := mandel.NewRenderer(opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	seq := r.Sequential(req.Width, req.Height, req.Rect)
	fmt.Fprintf(out, "Single thread: %s\n", time.Since(start))

	start = time.Now()
	par, err := r.Parallel(req.Width, req.Height, req.Rect)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Multiple threads (%d workers): %s\n", r.Workers(), time.Since(start))

	if !bytes.Equal(seq, par) {
		return fmt.Errorf("sequential and parallel renders differ")
	}
	fmt.Fprintf(out, "Outputs identical: %d bytes\n", len(seq))
	return nil
}

// progressLogger returns a row hook logging each tenth of a render.
// The count restarts once a render completes.
func progressLogger(height int) func(int) {
	var done atomic.Int64
	step := max(int64(height)/10, 1)
	return func(int) {
		n := done.Add(1)
		if n%step == 0 || n == int64(height) {
			log.Printf("finished: %.0f%%", 100*float64(n)/float64(height))
		}
		if n == int64(height) {
			done.Store(0)
		}
	}
}
