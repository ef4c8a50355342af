// Package engine defines the callback/event protocol spoken between the
// statio adapter and an external statistical-file engine.  The engine owns
// binary layouts, compression codecs, and character-set conversion; the
// adapter sees only the typed events and session calls declared here.
//
// A parse traversal is single-pass and single-threaded: the engine invokes
// the handlers on the thread that started the parse, and every variable
// declaration for a file precedes its first value event.
package engine

// Action is a handler's verdict on whether the engine should keep going.
// Abort asks the engine to terminate the traversal promptly; it is the row
// cap's mechanism, not an error.
type Action int

const (
	Continue Action = iota
	Abort
)

// Code is the engine's status for a whole parse or write call, or for a
// single write primitive.  Zero is success, UserAbort reports that a handler
// returned Abort, and any other value is an engine-defined failure.
type Code int

const (
	OK        Code = 0
	UserAbort Code = 2
)

// TypeClass is the engine's two-way storage classification of a variable.
type TypeClass int

const (
	ClassNumeric TypeClass = iota
	ClassString
)

// Compression selects the write-side record compression mode.  The codec is
// the engine's concern; this is configuration only.
type Compression int

const (
	CompressNone Compression = iota
	CompressRows
)
