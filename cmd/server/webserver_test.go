package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/klauspost/compress/zstd"
	"github.com/marben/irpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandel "github.com/marben/graymandel"
)

func newTestServer(t *testing.T, maxRenders int64, maxPixels int) (*httptest.Server, *renderServer) {
	t.Helper()
	r, err := mandel.NewRenderer(mandel.WithWorkers(3))
	require.NoError(t, err)
	rs, err := newRenderServer(r, maxRenders, maxPixels)
	require.NoError(t, err)

	wsl := NewWSListener(context.Background(), "/ws")
	irpcServer := newIrpcServer(rs)
	served := make(chan error, 1)
	go func() { served <- irpcServer.Serve(wsl) }()

	srv := httptest.NewServer(webServer("", t.TempDir(), rs, wsl).Handler)
	t.Cleanup(func() {
		irpcServer.Close()
		assert.ErrorIs(t, <-served, irpc.ErrServerClosed)
		srv.Close()
		rs.Close()
	})
	return srv, rs
}

type countingGenerator struct {
	calls atomic.Int32
}

func (g *countingGenerator) Generate(mandel.Request) ([]byte, error) {
	g.calls.Add(1)
	return nil, nil
}

func get(t *testing.T, url string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestRenderEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, 2, 1<<20)

	resp, body := get(t, srv.URL+"/render?width=10&height=10&left=-2&right=1&top=-1&bottom=1&strategy=sequential", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/octet-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "10", resp.Header.Get("X-Image-Width"))
	assert.Equal(t, "10", resp.Header.Get("X-Image-Height"))
	assert.Equal(t, mandel.GenerateSequential(10, 10, -2, 1, -1, 1), body)
}

func TestRenderEndpointZstd(t *testing.T) {
	srv, _ := newTestServer(t, 2, 1<<20)

	resp, body := get(t, srv.URL+"/render?width=64&height=48&region=seahorse", http.Header{"Accept-Encoding": {"gzip, zstd"}})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "zstd", resp.Header.Get("Content-Encoding"))

	dec, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer dec.Close()
	pix, err := dec.DecodeAll(body, nil)
	require.NoError(t, err)

	r := mandel.SeahorseValley
	assert.Equal(t, mandel.GenerateSequential(64, 48, r.Left, r.Right, r.Top, r.Bottom), pix)
}

func TestRenderEndpointErrors(t *testing.T) {
	srv, _ := newTestServer(t, 1, 100)

	tests := []struct {
		query string
		code  int
	}{
		{"width=0&height=10", http.StatusBadRequest},
		{"width=abc&height=10", http.StatusBadRequest},
		{"width=10&height=10&region=nowhere", http.StatusBadRequest},
		{"width=10&height=10&left=x", http.StatusBadRequest},
		{"width=10&height=10&strategy=gpu", http.StatusBadRequest},
		{"width=20&height=20", http.StatusRequestEntityTooLarge},
		{"width=4294967296&height=4294967296", http.StatusRequestEntityTooLarge},
		{"width=3037000500&height=3037000500", http.StatusRequestEntityTooLarge},
		{"width=9223372036854775807&height=2", http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		resp, body := get(t, srv.URL+"/render?"+tt.query, nil)
		assert.Equal(t, tt.code, resp.StatusCode, "%s: %s", tt.query, body)
	}
}

func TestRenderWaitsForSlot(t *testing.T) {
	_, rs := newTestServer(t, 1, 1<<20)

	require.NoError(t, rs.sem.Acquire(context.Background(), 1))
	defer rs.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := rs.render(ctx, mandel.Request{Width: 2, Height: 2, Rect: mandel.Classic})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(err))
}

func TestRenderRejectsOverflowingSize(t *testing.T) {
	var gen countingGenerator
	rs, err := newRenderServer(&gen, 1, 100)
	require.NoError(t, err)
	defer rs.Close()

	for _, req := range []mandel.Request{
		{Width: 1 << 32, Height: 1 << 32, Rect: mandel.Classic},
		{Width: 101, Height: 1, Rect: mandel.Classic},
		{Width: 1, Height: 101, Rect: mandel.Classic},
	} {
		_, err := rs.render(context.Background(), req)
		assert.ErrorIs(t, err, errTooLarge, "%dx%d", req.Width, req.Height)
	}
	assert.Zero(t, gen.calls.Load())

	_, err = rs.render(context.Background(), mandel.Request{Width: 10, Height: 10, Rect: mandel.Classic})
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestIrpcOverWebsocket(t *testing.T) {
	srv, _ := newTestServer(t, 2, 1<<20)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	ep := irpc.NewEndpoint(websocket.NetConn(context.Background(), c, websocket.MessageBinary))
	defer ep.Close()
	client, err := mandel.NewImageGeneratorIrpcClient(ep)
	require.NoError(t, err)

	req := mandel.Request{Width: 30, Height: 20, Rect: mandel.Classic, Strategy: mandel.StrategyParallel}
	pix, err := client.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, mandel.GenerateSequential(30, 20, -2, 1, -1, 1), pix)

	// a bad request is answered, the connection stays usable
	_, err = client.Generate(mandel.Request{Width: -1, Height: 1})
	assert.ErrorContains(t, err, "invalid render request")
	_, err = client.Generate(mandel.Request{Width: 2048, Height: 2048, Rect: mandel.Classic})
	assert.ErrorContains(t, err, "render too large")

	req.Strategy = mandel.StrategySequential
	pix2, err := client.Generate(req)
	require.NoError(t, err)
	assert.Equal(t, pix, pix2)
}

func TestIrpcOverTCP(t *testing.T) {
	r, err := mandel.NewRenderer(mandel.WithWorkers(2))
	require.NoError(t, err)
	rs, err := newRenderServer(r, 1, 1<<20)
	require.NoError(t, err)
	defer rs.Close()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	irpcServer := newIrpcServer(rs)
	served := make(chan error, 1)
	go func() { served <- irpcServer.Serve(l) }()

	conn, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	ep := irpc.NewEndpoint(conn)
	client, err := mandel.NewImageGeneratorIrpcClient(ep)
	require.NoError(t, err)

	pix, err := client.Generate(mandel.Request{Width: 12, Height: 9, Rect: mandel.ElephantValley})
	require.NoError(t, err)
	e := mandel.ElephantValley
	assert.Equal(t, mandel.GenerateSequential(12, 9, e.Left, e.Right, e.Top, e.Bottom), pix)

	irpcServer.Close()
	assert.ErrorIs(t, <-served, irpc.ErrServerClosed)
	<-ep.Context().Done()
}

func TestWSListenerClose(t *testing.T) {
	l := NewWSListener(context.Background(), ":8080/ws")
	assert.Equal(t, "ws", l.Addr().Network())
	assert.Equal(t, ":8080/ws", l.Addr().String())

	require.NoError(t, l.Close())
	_, err := l.Accept()
	assert.ErrorIs(t, err, net.ErrClosed)
}

func TestAcceptsZstd(t *testing.T) {
	for header, want := range map[string]bool{
		"":                 false,
		"gzip":             false,
		"zstd":             true,
		"gzip, ZSTD;q=0.5": true,
		"br, zstdx":        false,
	} {
		r := httptest.NewRequest(http.MethodGet, "/render", nil)
		if header != "" {
			r.Header.Set("Accept-Encoding", header)
		}
		assert.Equal(t, want, acceptsZstd(r), header)
	}
}

func TestNewRenderServerRejectsZeroSlots(t *testing.T) {
	_, err := newRenderServer(&mandel.Renderer{}, 0, 100)
	assert.Error(t, err)
}
