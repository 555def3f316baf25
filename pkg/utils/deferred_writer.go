package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter forwards writes to an underlying writer. While held, writes
// are buffered instead and delivered in order on Release. It lets command
// output and stderr logs wait while a full screen program owns the terminal.
// Safe for concurrent use.
type DeferredWriter struct {
	mu   sync.Mutex
	w    io.Writer
	held bool
	buf  bytes.Buffer
}

// NewDeferredWriter creates a writer forwarding to w.
func NewDeferredWriter(w io.Writer) *DeferredWriter {
	return &DeferredWriter{w: w}
}

// Write forwards p, or buffers it while held.
func (d *DeferredWriter) Write(p []byte) (n int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.held {
		return d.buf.Write(p)
	}
	return d.w.Write(p)
}

// Hold starts buffering writes.
func (d *DeferredWriter) Hold() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

// Release writes everything buffered since Hold to the underlying writer
// and resumes forwarding.
func (d *DeferredWriter) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.held = false
	if d.buf.Len() == 0 {
		return nil
	}

	_, err := d.buf.WriteTo(d.w)
	return err
}
