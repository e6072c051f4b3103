package synacorvm

import (
	"bufio"
	"io"
)

// lineReader implements the line-buffered input discipline of spec.md
// §4.5: a whole line (terminator included) is pulled from the source on
// demand, and its bytes are handed out to the guest program one at a
// time. Adapted from the teacher's inline unused_input []uint16 buffer
// kept on Machine; pulled out into its own type so Machine.input
// survives snapshot/restore independently of any particular io.Reader.
type lineReader struct {
	pending []byte
}

// nextByte returns the next input byte for an `in` instruction. If the
// pending buffer is empty, it reads one line (including its terminator)
// from src. A zero-byte read (EOF with nothing buffered) is reported via
// ok=false, which the caller (Machine.Run) turns into NoMoreInput
// suspension, not an error.
func (lr *lineReader) nextByte(src *bufio.Reader) (b byte, ok bool, err error) {
	if len(lr.pending) == 0 {
		line, rerr := src.ReadString('\n')
		if len(line) == 0 {
			if rerr == nil || rerr == io.EOF {
				return 0, false, nil
			}
			return 0, false, &IOError{Err: rerr}
		}
		lr.pending = []byte(line)
	}

	b = lr.pending[0]
	lr.pending = lr.pending[1:]
	return b, true, nil
}

// bytes returns the currently buffered, not-yet-consumed input bytes, for
// serialization.
func (lr *lineReader) bytes() []byte {
	return lr.pending
}

// setBytes restores a previously serialized pending-input buffer.
func (lr *lineReader) setBytes(b []byte) {
	lr.pending = append([]byte(nil), b...)
}

// newBufReader wraps an io.Reader in a *bufio.Reader suitable for
// lineReader.nextByte. A reader that is already a *bufio.Reader is
// returned as is rather than wrapped a second time.
func newBufReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
