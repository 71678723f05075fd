package kubewatch

import (
	"context"
	"errors"
	"io"
	"iter"
)

// Stream is a lazy, pull-based sequence of watch events. It owns the HTTP
// response body for its lifetime and is not safe for concurrent use: one
// caller pulls, in order, until the stream ends or it loses interest.
type Stream[T any] struct {
	body   io.ReadCloser
	framer *Framer
	done   bool
}

// Events opens a watch on the given resource path and returns its event
// stream. The request is GET <base>/<resource>?watch=true; a transport
// failure or non-2xx status yields a *ConnectionError and no stream. The
// caller must Close the stream unless it drains it to the end.
//
// Events is a function rather than a Cluster method because Go methods
// cannot introduce type parameters.
func Events[T any](ctx context.Context, c *Cluster, resource string) (*Stream[T], error) {
	body, err := c.open(ctx, resource)
	if err != nil {
		return nil, err
	}
	return &Stream[T]{body: body, framer: NewFramer(body)}, nil
}

// Next blocks until the next event arrives and returns it decoded. It
// returns io.EOF once the server closes the stream, after releasing the
// connection. A malformed frame yields a *DecodeError for that frame only;
// the stream stays open and the following Next call moves past it.
func (s *Stream[T]) Next() (Event[T], error) {
	var zero Event[T]
	if s.done {
		return zero, io.EOF
	}

	frame, err := s.framer.Next()
	if err != nil {
		s.done = true
		s.body.Close()
		return zero, err
	}
	return DecodeEvent[T](frame)
}

// Close releases the underlying connection. It is safe to call more than
// once; any later Next returns io.EOF.
func (s *Stream[T]) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.body.Close()
}

// All adapts the stream to a range-over-func iterator. Decode failures are
// yielded inline with a zero event and iteration continues; iteration ends
// at stream end or on a transport error, and the stream is closed when the
// loop exits either way.
func (s *Stream[T]) All() iter.Seq2[Event[T], error] {
	return func(yield func(Event[T], error) bool) {
		defer s.Close()
		for {
			event, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(event, err) {
				return
			}
			if err != nil && !isDecodeError(err) {
				return
			}
		}
	}
}

func isDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
