//go:build js && wasm

package main

import (
	"syscall/js"
	"time"
)

func canvas() js.Value {
	return js.Global().Get("document").Call("getElementById", "myCanvas")
}

// canvasSize returns the on-screen size of the canvas element.
func canvasSize() (int, int) {
	c := canvas()
	return c.Get("clientWidth").Int(), c.Get("clientHeight").Int()
}

func initCanvas(width, height int, color string) {
	c := canvas()
	c.Set("width", width)
	c.Set("height", height)

	ctx := c.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// drawGray displays an R=G=B buffer on the canvas
func drawGray(pix []byte, width, height int) {
	start := time.Now()

	// ImageData wants RGBA, the server sends RGB
	rgba := make([]byte, width*height*4)
	for i, j := 0, 0; i+2 < len(pix); i, j = i+3, j+4 {
		rgba[j], rgba[j+1], rgba[j+2], rgba[j+3] = pix[i], pix[i+1], pix[i+2], 255
	}

	jsData := js.Global().Get("Uint8ClampedArray").New(len(rgba))
	js.CopyBytesToJS(jsData, rgba)

	imageData := js.Global().Get("ImageData").New(jsData, width, height)
	canvas().Call("getContext", "2d").Call("putImageData", imageData, 0, 0)
	logScreenf("draw took %s", time.Since(start))
}
