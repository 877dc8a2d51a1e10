// main.go is a CLI client for the Mandelbrot render server.
// It connects over irpc, requests one render and saves the raw R=G=B bytes.

package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"
	"github.com/spf13/cobra"

	mandel "github.com/marben/graymandel"
)

type clientFlags struct {
	addr     string
	out      string
	region   string
	width    int
	height   int
	strategy mandel.Strategy
	timeout  time.Duration
}

// main is the entry point for the CLI client.
// It runs the client logic and logs any fatal errors.
func main() {
	log.Printf("Starting CLI client...")
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var f clientFlags
	cmd := &cobra.Command{
		Use:           "cliclient",
		Short:         "Fetch a grayscale Mandelbrot render from the server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.addr, "addr", "localhost:8081", "server tcp address, or a ws:// url of its /ws endpoint")
	fl.StringVarP(&f.out, "out", "o", "mandel.rgb", "output file for the raw pixel buffer")
	fl.StringVar(&f.region, "region", "classic", "named region to render ("+strings.Join(mandel.RegionNames(), ", ")+")")
	fl.IntVar(&f.width, "width", 1920, "image width in pixels")
	fl.IntVar(&f.height, "height", 1080, "image height in pixels")
	fl.Var(&f.strategy, "strategy", "parallel or sequential")
	fl.DurationVar(&f.timeout, "timeout", time.Minute, "give up after this long")
	return cmd
}

// run connects to the Mandelbrot server, requests the render and saves it.
// Returns an error if any step fails.
func run(ctx context.Context, f clientFlags) error {
	rect, ok := mandel.RegionByName(f.region)
	if !ok {
		return fmt.Errorf("unknown region %q", f.region)
	}
	req := mandel.Request{Width: f.width, Height: f.height, Rect: rect, Strategy: f.strategy}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Step 1: Connect to Mandelbrot server
	log.Printf("Connecting to Mandelbrot server on %s...", f.addr)
	conn, err := dial(ctx, f.addr)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	ep := irpc.NewEndpoint(conn)
	defer ep.Close()

	// generated client calls can't be canceled, closing the endpoint fails them instead
	stop := context.AfterFunc(ctx, func() { ep.Close() })
	defer stop()

	// Step 2: Create a client for the ImageGenerator interface
	client, err := mandel.NewImageGeneratorIrpcClient(ep)
	if err != nil {
		return fmt.Errorf("failed to create ImageGenerator client: %w", err)
	}

	// Step 3: Request the render
	log.Printf("Requesting %dx%d %s render of %q...", req.Width, req.Height, req.Strategy, f.region)
	start := time.Now()
	pix, err := client.Generate(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("client.Generate: %w", context.Cause(ctx))
		}
		return fmt.Errorf("client.Generate: %w", err)
	}
	if want := req.Pixels() * 3; len(pix) != want {
		return fmt.Errorf("got %d bytes, want %d", len(pix), want)
	}
	log.Printf("Received %d bytes in %s", len(pix), time.Since(start))

	// Step 4: Save the raw pixel buffer
	if err := os.WriteFile(f.out, pix, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Printf("Rendered image saved to %q", f.out)
	return nil
}

// dial opens a tcp connection, or a websocket one when addr is a ws:// or wss:// url.
func dial(ctx context.Context, addr string) (net.Conn, error) {
	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		c, _, err := websocket.Dial(ctx, addr, nil)
		if err != nil {
			return nil, err
		}
		return websocket.NetConn(context.Background(), c, websocket.MessageBinary), nil
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}
