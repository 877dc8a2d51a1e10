package main

import (
	"fmt"
	"net/url"
	"strconv"

	mandel "github.com/marben/graymandel"
)

// requestFromQuery builds a render request from URL query parameters.
// A named region is the starting rectangle; explicit bounds override it.
func requestFromQuery(q url.Values) (mandel.Request, error) {
	req := mandel.Request{Rect: mandel.Classic}

	if name := q.Get("region"); name != "" {
		rect, ok := mandel.RegionByName(name)
		if !ok {
			return req, fmt.Errorf("unknown region %q", name)
		}
		req.Rect = rect
	}

	var err error
	if req.Width, err = intParam(q, "width", 0); err != nil {
		return req, err
	}
	if req.Height, err = intParam(q, "height", 0); err != nil {
		return req, err
	}

	bounds := []struct {
		name string
		dst  *float64
	}{
		{"left", &req.Rect.Left},
		{"right", &req.Rect.Right},
		{"top", &req.Rect.Top},
		{"bottom", &req.Rect.Bottom},
	}
	for _, b := range bounds {
		s := q.Get(b.name)
		if s == "" {
			continue
		}
		if *b.dst, err = strconv.ParseFloat(s, 64); err != nil {
			return req, fmt.Errorf("%s: %w", b.name, err)
		}
	}

	if s := q.Get("strategy"); s != "" {
		if req.Strategy, err = mandel.ParseStrategy(s); err != nil {
			return req, err
		}
	}
	return req, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}
