package kubewatch

import (
	"bytes"
	"io"
)

const framerChunkSize = 4096

// Framer splits a byte stream into newline-delimited frames. Chunks may
// arrive in any sizes; the framer buffers the unconsumed tail across reads,
// so at most one partial frame is held in memory at a time and memory use is
// bounded by the longest single frame.
type Framer struct {
	r     io.Reader
	buf   []byte
	chunk []byte
	err   error
}

func NewFramer(r io.Reader) *Framer {
	return &Framer{r: r, chunk: make([]byte, framerChunkSize)}
}

// Next returns the next complete frame without its trailing newline. When
// the stream ends on an unterminated line, those dangling bytes are returned
// as a final frame; afterwards Next returns io.EOF. The returned slice is
// only valid until the next call.
func (f *Framer) Next() ([]byte, error) {
	for {
		if i := bytes.IndexByte(f.buf, '\n'); i >= 0 {
			frame := f.buf[:i]
			f.buf = f.buf[i+1:]
			return frame, nil
		}

		if f.err != nil {
			if f.err == io.EOF && len(f.buf) > 0 {
				frame := f.buf
				f.buf = nil
				return frame, nil
			}
			return nil, f.err
		}

		n, err := f.r.Read(f.chunk)
		if n > 0 {
			f.buf = append(f.buf, f.chunk[:n]...)
		}
		if err != nil {
			// Sticky: drain buffered frames first, surface the error after.
			f.err = err
		}
	}
}
