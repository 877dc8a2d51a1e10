package mandel

import (
	"math"
	"net"
	"testing"

	"github.com/marben/irpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestPixels(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{10, 10, 100},
		{1920, 1080, 1920 * 1080},
		{0, 10, 0},
		{-3, 10, 0},
		{10, -3, 0},
		{1 << 32, 1 << 32, math.MaxInt},
		{math.MaxInt, 2, math.MaxInt},
		{math.MaxInt, 1, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Request{Width: tt.w, Height: tt.h}.Pixels(), "%dx%d", tt.w, tt.h)
	}
}

func TestRegionByName(t *testing.T) {
	r, ok := RegionByName("seahorse")
	require.True(t, ok)
	assert.Equal(t, SeahorseValley, r)

	_, ok = RegionByName("atlantis")
	assert.False(t, ok)

	// the returned value is a copy
	r.Left = 42
	again, _ := RegionByName("seahorse")
	assert.Equal(t, SeahorseValley, again)

	assert.Equal(t, []string{"classic", "dragon", "elephant", "minibrot", "minispiral", "seahorse", "triple"}, RegionNames())
}

func newIrpcClient(t *testing.T, gen ImageGenerator) *ImageGeneratorIrpcClient {
	t.Helper()
	srvConn, cliConn := net.Pipe()
	srvEp := irpc.NewEndpoint(srvConn, irpc.WithEndpointServices(NewImageGeneratorIrpcService(gen)))
	cliEp := irpc.NewEndpoint(cliConn)
	t.Cleanup(func() {
		cliEp.Close()
		<-srvEp.Context().Done()
	})

	c, err := NewImageGeneratorIrpcClient(cliEp)
	require.NoError(t, err)
	return c
}

func TestImageGeneratorOverIrpc(t *testing.T) {
	r, err := NewRenderer(WithWorkers(3))
	require.NoError(t, err)
	c := newIrpcClient(t, r)

	for _, s := range []Strategy{StrategySequential, StrategyParallel} {
		pix, err := c.Generate(Request{Width: 24, Height: 17, Rect: TripleSpiral, Strategy: s})
		require.NoError(t, err, s)
		assert.Equal(t, r.Sequential(24, 17, TripleSpiral), pix, s)
	}

	_, err = c.Generate(Request{Width: 0, Height: 4, Rect: Classic})
	assert.ErrorContains(t, err, "invalid render request")
}
