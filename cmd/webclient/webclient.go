//go:build js && wasm

// webclient.go is a WASM web client for the Mandelbrot render server.
// It asks the server for a render sized to the canvas and draws it.

package main

import (
	"fmt"
	"log"
	"syscall/js"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/graymandel"
)

// main is the entry point for the WASM web client.
// It connects to the server, requests one render and paints it on the canvas.
func main() {
	logScreenf("Starting WASM web client...")

	// Step 1: Determine server address for WebSocket connection
	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketUrl := proto + "://" + host + "/ws"

	// Step 2: Connect to server via WebSocket
	logScreenf("Connecting to Mandelbrot server at %s...", websocketUrl)
	websocketRWC := NewWSReadWriteCloser(js.Global().Get("WebSocket").New(websocketUrl))
	if err := websocketRWC.waitOpen(); err != nil {
		logFatalf("WebSocket: %v", err)
	}
	logScreenf("WebSocket connected.")

	// Step 3: Set up IRPC endpoint and ImageGenerator client
	endpoint := irpc.NewEndpoint(websocketRWC)
	generator, err := mandel.NewImageGeneratorIrpcClient(endpoint)
	if err != nil {
		logFatalf("Failed to create ImageGenerator client: %v", err)
	}

	// Step 4: Size the request to the canvas
	width, height := canvasSize()
	req := mandel.Request{Width: width, Height: height, Rect: mandel.Classic}
	initCanvas(width, height, "#3a3a6e")
	logScreenf("Canvas initialized to dimensions %dx%d", width, height)

	// Step 5: Render and draw
	start := time.Now()
	pix, err := generator.Generate(req)
	if err != nil {
		logFatalf("render: %v", err)
	}
	logScreenf("render of %d bytes took %s", len(pix), time.Since(start))
	drawGray(pix, width, height)

	// Step 6: Block main goroutine to keep WASM running
	select {}
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}
