package statio

import (
	"errors"
	"fmt"

	"github.com/svyio/statio/engine"
)

// ErrEngineInit indicates the external engine failed to allocate a parse or
// write session.
var ErrEngineInit = errors.New("statio: engine session init failed")

// ParseError is a non-success, non-abort status from a whole parse call.
// Message carries the engine's last error event when one arrived.
type ParseError struct {
	Code    engine.Code
	Message string
}

func (e *ParseError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("code %d", int(e.Code))
	}
	return "statio: parse failed: " + msg
}

// SerializationError indicates finalization of the columnar payload failed.
type SerializationError struct {
	Reason string
}

func (e *SerializationError) Error() string {
	return "statio: serializing columnar payload: " + e.Reason
}

// UnsupportedFeatureError reports a write-time constraint violation, such as
// a text column wider than the target format can represent.
type UnsupportedFeatureError struct {
	Column  string
	Width   int
	Ceiling int
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("statio: column %q needs a text width of %d bytes but the target format caps text at %d bytes (long-string overflow is not supported)",
		e.Column, e.Width, e.Ceiling)
}

// RowInsertError is a nonzero code from one of the engine's write
// primitives.  It aborts the whole write; the partially written output is
// left in place.
type RowInsertError struct {
	Op   string
	Code engine.Code
}

func (e *RowInsertError) Error() string {
	return fmt.Sprintf("statio: %s failed with code %d", e.Op, int(e.Code))
}
