package router

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/teranos/prdiff/errors"
)

// maxFrameSize bounds a single inbound JSON-RPC line
const maxFrameSize = 10 * 1024 * 1024

// Serve reads newline-delimited JSON-RPC frames from in and writes one
// response line per request to out. tools/call frames are handled
// concurrently; everything else is answered in arrival order.
//
// Serve returns nil on EOF or when ctx is cancelled, after in-flight
// calls have written their responses.
func (r *Router) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := &frameWriter{out: out}
	frames := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		readErr <- readFrames(ctx, in, frames)
	}()

	r.logger.Infow("Serving MCP over stdio")

	var inflight sync.WaitGroup
	defer inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("Stdio server stopping", "reason", ctx.Err())
			return nil

		case err := <-readErr:
			if err != nil {
				return errors.Wrap(err, "failed to read from stdin")
			}
			r.logger.Infow("Stdin closed, stopping")
			return nil

		case frame := <-frames:
			if r.traceFrames {
				r.logger.Debugw("Frame received", "frame", string(frame))
			}

			if _, isCall := parseToolCall(frame); isCall {
				inflight.Add(1)
				go func() {
					defer inflight.Done()
					r.respond(ctx, w, frame)
				}()
				continue
			}
			r.respond(ctx, w, frame)
		}
	}
}

func (r *Router) respond(ctx context.Context, w *frameWriter, frame []byte) {
	response := r.HandleMessage(ctx, frame)
	if response == nil {
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		r.logger.Errorw("Failed to encode response", "error", err)
		return
	}
	if r.traceFrames {
		r.logger.Debugw("Frame sent", "frame", string(data))
	}
	if err := w.writeLine(data); err != nil {
		r.logger.Errorw("Failed to write response", "error", err)
	}
}

// readFrames sends each non-empty line to frames until EOF, a read error or
// cancellation. EOF is reported as nil. A line longer than maxFrameSize
// fails with bufio.ErrTooLong before it is fully buffered.
func readFrames(ctx context.Context, in io.Reader, frames chan<- []byte) error {
	scanner := bufio.NewScanner(in)
	// +1 leaves room for the newline of a frame of exactly maxFrameSize
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameSize+1)

	for scanner.Scan() {
		trimmed := bytes.TrimSpace(scanner.Bytes())
		if len(trimmed) == 0 {
			continue
		}
		// The scanner reuses its buffer; calls outlive the next Scan
		frame := append([]byte(nil), trimmed...)
		select {
		case frames <- frame:
		case <-ctx.Done():
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return errors.Wrapf(err, "frame exceeds %d bytes", maxFrameSize)
		}
		return err
	}
	return nil
}

// frameWriter serializes response lines from concurrent calls
type frameWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (w *frameWriter) writeLine(data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.out.Write(data); err != nil {
		return err
	}
	_, err := w.out.Write([]byte{'\n'})
	return err
}
