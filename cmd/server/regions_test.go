package main

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandel "github.com/marben/graymandel"
)

func TestRequestFromQuery(t *testing.T) {
	q, err := url.ParseQuery("width=80&height=60")
	require.NoError(t, err)
	req, err := requestFromQuery(q)
	require.NoError(t, err)
	assert.Equal(t, mandel.Request{Width: 80, Height: 60, Rect: mandel.Classic}, req)

	q, err = url.ParseQuery("width=8&height=6&region=dragon&left=-0.75&strategy=st")
	require.NoError(t, err)
	req, err = requestFromQuery(q)
	require.NoError(t, err)
	want := mandel.ValleyOfTheDragon
	want.Left = -0.75
	assert.Equal(t, mandel.Request{Width: 8, Height: 6, Rect: want, Strategy: mandel.StrategySequential}, req)
}

func TestRequestFromQueryErrors(t *testing.T) {
	for _, raw := range []string{
		"width=1.5",
		"height=x",
		"region=atlantis",
		"top=north",
		"strategy=gpu",
	} {
		q, err := url.ParseQuery(raw)
		require.NoError(t, err)
		_, err = requestFromQuery(q)
		assert.Error(t, err, raw)
	}
}
