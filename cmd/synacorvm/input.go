package main

import (
	"bufio"
	"io"
)

// echoingInput wraps an io.Reader so that, when enabled, every chunk of
// bytes read from it is echoed to an auxiliary writer (stderr in
// practice), prefixed by "> " once per Read call. A chunk is whatever one
// Read of the underlying source returns; it is not split into lines.
// spec.md §9 is explicit that this is "a client convenience, not a core
// contract, and should live in the driver" — so it lives here, not in the
// synacorvm package, mirroring the teacher's own "Input: " prompt and the
// original Rust source's `eprint!("> {line}")`.
type echoingInput struct {
	src     *bufio.Reader
	echo    io.Writer
	enabled bool
}

func newEchoingInput(src io.Reader, echo io.Writer, enabled bool) *echoingInput {
	return &echoingInput{src: bufio.NewReader(src), echo: echo, enabled: enabled}
}

// Read satisfies io.Reader by delegating to the underlying line-buffered
// source and echoing whatever bytes pass through. synacorvm.Machine.Run
// wraps any io.Reader in its own *bufio.Reader, so single small reads are
// fine here; we don't try to line-buffer a second time.
func (e *echoingInput) Read(p []byte) (int, error) {
	n, err := e.src.Read(p)
	if n > 0 && e.enabled {
		e.echo.Write([]byte("> "))
		e.echo.Write(p[:n])
	}
	return n, err
}
