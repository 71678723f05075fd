package kubewatch

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeError reports a frame that could not be decoded into an event. It
// carries a copy of the raw frame for diagnostics. Framing is unaffected, so
// the surrounding stream stays usable after one of these.
type DecodeError struct {
	Frame []byte
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode watch frame %q: %v", e.Frame, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeEvent parses a single frame as {"type": ..., "object": ...} with the
// object decoded into T. It has no state of its own, so callers that bring
// their own framing (or want to retry a frame) can use it directly.
func DecodeEvent[T any](frame []byte) (Event[T], error) {
	var raw struct {
		Type   EventType       `json:"type"`
		Object json.RawMessage `json:"object"`
	}
	var event Event[T]

	if err := json.Unmarshal(frame, &raw); err != nil {
		return event, &DecodeError{Frame: bytes.Clone(frame), Err: err}
	}
	if raw.Type == "" {
		return event, &DecodeError{Frame: bytes.Clone(frame), Err: fmt.Errorf("missing event type")}
	}

	event.Type = raw.Type
	if len(raw.Object) > 0 {
		if err := json.Unmarshal(raw.Object, &event.Object); err != nil {
			return event, &DecodeError{Frame: bytes.Clone(frame), Err: err}
		}
	}
	return event, nil
}
