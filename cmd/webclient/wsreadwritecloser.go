//go:build js && wasm

package main

import (
	"io"
	"sync"
	"syscall/js"
)

// WSReadWriteCloser turns a browser WebSocket into the byte stream an irpc endpoint runs on.
type WSReadWriteCloser struct {
	ws js.Value

	mu     sync.Mutex // needed because js onClose event can preempt Write() call
	closed bool

	readCh chan []byte

	openCh chan struct{} // closed when connected
	err    error

	// unread rest of the last message
	buf []byte
}

func NewWSReadWriteCloser(ws js.Value) *WSReadWriteCloser {
	c := &WSReadWriteCloser{
		ws:     ws,
		readCh: make(chan []byte, 8),
		openCh: make(chan struct{}),
	}

	ws.Set("binaryType", "arraybuffer")

	ws.Set("onopen", js.FuncOf(func(js.Value, []js.Value) any {
		close(c.openCh)
		return nil
	}))

	ws.Set("onerror", js.FuncOf(func(js.Value, []js.Value) any {
		c.mu.Lock()
		c.err = io.ErrUnexpectedEOF
		c.mu.Unlock()
		select {
		case <-c.openCh:
		default:
			close(c.openCh)
		}
		return nil
	}))

	ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) any {
		u8 := js.Global().Get("Uint8Array").New(args[0].Get("data"))
		b := make([]byte, u8.Get("byteLength").Int())
		js.CopyBytesToGo(b, u8)

		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.closed {
			c.readCh <- b
		}
		return nil
	}))

	ws.Set("onclose", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("ws onClose received")
		c.mu.Lock()
		defer c.mu.Unlock()
		if !c.closed {
			c.closed = true
			close(c.readCh)
		}
		return nil
	}))

	return c
}

func (c *WSReadWriteCloser) Read(p []byte) (int, error) {
	if len(c.buf) == 0 {
		msg, ok := <-c.readCh
		if !ok {
			return 0, io.EOF
		}
		c.buf = msg
	}

	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *WSReadWriteCloser) Write(p []byte) (int, error) {
	if err := c.waitOpen(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.ErrClosedPipe
	}

	u8 := js.Global().Get("Uint8Array").New(len(p))
	js.CopyBytesToJS(u8, p)
	c.ws.Call("send", u8)
	return len(p), nil
}

func (c *WSReadWriteCloser) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true

	select {
	case <-c.openCh:
	default:
		close(c.openCh)
	}

	close(c.readCh)
	c.mu.Unlock()

	c.ws.Call("close")
	return nil
}

func (c *WSReadWriteCloser) waitOpen() error {
	<-c.openCh

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return c.err
	}
	if c.closed {
		return io.ErrClosedPipe
	}
	return nil
}
