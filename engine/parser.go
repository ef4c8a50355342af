package engine

// Metadata is the engine's file-level report, delivered once before any
// variable or value event.
type Metadata struct {
	FileLabel   string
	RowCount    int
	ColumnCount int
}

// MissingRange is one user-missing declaration on a variable.  Endpoints use
// NaN for the engine's missing-value sentinel; Lo == Hi declares a discrete
// value.
type MissingRange struct {
	Lo, Hi float64
}

// Variable is one column declaration as reported by the engine.  Names may
// arrive padded with whitespace; consumers are expected to trim.
type Variable struct {
	Index         int
	Name          string
	Class         TypeClass
	Label         string
	Format        string
	MissingRanges []MissingRange
}

// Handlers is the callback set a parse traversal is driven through.  A nil
// member drops that event kind.
type Handlers struct {
	Error      func(message string)
	Metadata   func(m Metadata) Action
	Variable   func(index int, v *Variable, labelSet string) Action
	Value      func(row int, v *Variable, val Value) Action
	Note       func(index int, note string) Action
	ValueLabel func(set string, val Value, label string) Action
}

// Parser is one parse session over one source file.  Parse delivers the
// file's events to h in engine order and returns the session status; it must
// honor an Abort returned by any handler by terminating promptly with
// UserAbort.
type Parser interface {
	Parse(h Handlers) Code
}
