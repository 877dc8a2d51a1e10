package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/marben/irpc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/graymandel"
)

type serverFlags struct {
	addr       string
	irpcAddr   string
	static     string
	maxRenders int64
	maxPixels  int
	workers    int
	maxIter    int
}

// main is the entry point for the Mandelbrot render server.
// It exposes the renderer over plain HTTP and as an irpc service on tcp and websocket.
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func newRootCmd() *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve grayscale Mandelbrot renders over HTTP and irpc",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.addr, "addr", ":8080", "http listen address, also serving irpc on /ws")
	fl.StringVar(&f.irpcAddr, "irpc-addr", ":8081", "tcp listen address for irpc clients")
	fl.StringVar(&f.static, "static", "./static", "directory served at /")
	fl.Int64Var(&f.maxRenders, "max-renders", 4, "renders allowed to run at once")
	fl.IntVar(&f.maxPixels, "max-pixels", 4096*4096, "largest width*height accepted")
	fl.IntVar(&f.workers, "workers", 0, "row workers per parallel render (0 = GOMAXPROCS)")
	fl.IntVar(&f.maxIter, "max-iter", mandel.DefaultMaxIterations, "escape-time iteration cap")
	return cmd
}

func run(ctx context.Context, f serverFlags) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	renderer, err := mandel.NewRenderer(mandel.WithWorkers(f.workers), mandel.WithMaxIterations(f.maxIter))
	if err != nil {
		return err
	}
	rs, err := newRenderServer(renderer, f.maxRenders, f.maxPixels)
	if err != nil {
		return fmt.Errorf("newRenderServer: %w", err)
	}
	defer rs.Close()

	// irpc server backed by renderServer, so irpc clients share the render slots with /render
	irpcServer := newIrpcServer(rs)

	log.Printf("tcp listening on %s", f.irpcAddr)
	tcpListener, err := net.Listen("tcp", f.irpcAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	wsListener := NewWSListener(ctx, f.addr+"/ws")
	httpServer := webServer(f.addr, f.static, rs, wsListener)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on http://localhost%s (%d workers, %d max iterations)", f.addr, renderer.Workers(), renderer.MaxIterations())
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	g.Go(func() error {
		if err := irpcServer.Serve(tcpListener); !errors.Is(err, irpc.ErrServerClosed) {
			return fmt.Errorf("irpcServer.Serve tcp: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := irpcServer.Serve(wsListener); !errors.Is(err, irpc.ErrServerClosed) {
			return fmt.Errorf("irpcServer.Serve ws: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// endpoints already closed by their peers report that as an error
		if err := irpcServer.Close(); err != nil {
			log.Printf("irpcServer.Close: %v", err)
		}
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newIrpcServer provides mandel.ImageGenerator over network, backed by gen.
func newIrpcServer(gen mandel.ImageGenerator) *irpc.Server {
	return irpc.NewServer(
		irpc.WithServices(mandel.NewImageGeneratorIrpcService(gen)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			log.Printf("got connection from: %s", ep.RemoteAddr())
		}),
	)
}
