package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/semaphore"

	mandel "github.com/marben/graymandel"
)

var errTooLarge = errors.New("render too large")

// renderServer hands requests from either transport to one ImageGenerator,
// limiting how many renders run at once.
type renderServer struct {
	gen       mandel.ImageGenerator
	sem       *semaphore.Weighted
	enc       *zstd.Encoder
	maxPixels int
}

func newRenderServer(gen mandel.ImageGenerator, maxRenders int64, maxPixels int) (*renderServer, error) {
	if maxRenders < 1 {
		return nil, fmt.Errorf("max renders must be at least 1, got %d", maxRenders)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd.NewWriter: %w", err)
	}
	return &renderServer{
		gen:       gen,
		sem:       semaphore.NewWeighted(maxRenders),
		enc:       enc,
		maxPixels: maxPixels,
	}, nil
}

func (rs *renderServer) Close() error {
	return rs.enc.Close()
}

// Generate serves irpc clients. It waits for a render slot as long as it takes.
func (rs *renderServer) Generate(req mandel.Request) ([]byte, error) {
	return rs.render(context.Background(), req)
}

// render validates req and waits for a free render slot, giving up when ctx ends.
func (rs *renderServer) render(ctx context.Context, req mandel.Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Width > rs.maxPixels/req.Height {
		return nil, fmt.Errorf("%w: %dx%d, limit %d pixels", errTooLarge, req.Width, req.Height, rs.maxPixels)
	}
	if err := rs.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for render slot: %w", err)
	}
	defer rs.sem.Release(1)

	start := time.Now()
	pix, err := rs.gen.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	log.Printf("rendered %dx%d %s in %s", req.Width, req.Height, req.Strategy, time.Since(start))
	return pix, nil
}

// webServer creates server serving files in the static folder along with
// the /render endpoint and the /ws endpoint feeding connections to l
func webServer(addr, static string, rs *renderServer, l *WebsocketListener) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /render", rs.handleRender)
	mux.HandleFunc("/ws", websocketHandler(l))
	mux.Handle("/", http.FileServer(http.Dir(static)))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// handleRender answers GET /render with the raw pixel buffer,
// zstd-compressed when the client accepts it.
func (rs *renderServer) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pix, err := rs.render(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/octet-stream")
	h.Set("X-Image-Width", strconv.Itoa(req.Width))
	h.Set("X-Image-Height", strconv.Itoa(req.Height))
	h.Add("Vary", "Accept-Encoding")
	if acceptsZstd(r) {
		pix = rs.enc.EncodeAll(pix, make([]byte, 0, len(pix)/4))
		h.Set("Content-Encoding", "zstd")
	}
	h.Set("Content-Length", strconv.Itoa(len(pix)))
	if _, err := w.Write(pix); err != nil {
		log.Printf("write response: %v", err)
	}
}

// websocketHandler handles the http ws endpoint
// if websocket is succesfully initialized it is passed to WebsocketListener so it can be accepted
func websocketHandler(l *WebsocketListener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}

		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, mandel.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func acceptsZstd(r *http.Request) bool {
	for _, v := range r.Header.Values("Accept-Encoding") {
		for _, enc := range strings.Split(v, ",") {
			name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
			if strings.EqualFold(name, "zstd") {
				return true
			}
		}
	}
	return false
}
