// Package ingest accumulates the parse events of an external statistical-
// file engine into a columnar Arrow payload and a metadata record.
package ingest

import (
	"go.uber.org/zap"

	"github.com/svyio/statio"
)

// Options configures one read.  The zero value reads everything.
type Options struct {
	// RowsSkip drops source rows with indices below it.
	RowsSkip int
	// MaxRows caps emitted rows; zero or negative means no cap.  Reaching
	// the cap aborts the engine traversal; that abort is success, not an
	// error.
	MaxRows int
	// SkipColumns names variables to drop.  A skipped variable still
	// occupies a placeholder column during the parse so row alignment by
	// name holds.
	SkipColumns []string
	// Logger receives non-fatal diagnostics such as catalog parse failures.
	// Nil logs nothing.
	Logger *zap.Logger
}

// Context is the mutable state threaded through every parse event of one
// engine traversal.  It is created once per read, mutated only by the
// handlers, and drained exactly once by Finalize.
type Context struct {
	format statio.Format

	cols   []*column
	byName map[string]int
	skip   map[string]struct{}

	rowsSkip    int
	maxRows     int
	rowsSeen    int
	rowsEmitted int

	fileLabel string
	lastErr   string
	notes     []string
	labelSets map[string]map[string]string
	tagged    map[string]*statio.TaggedMissing

	finalized bool
}

// NewContext makes the context for one traversal of a file in the given
// format.
func NewContext(format statio.Format, opts Options) *Context {
	skip := make(map[string]struct{}, len(opts.SkipColumns))
	for _, name := range opts.SkipColumns {
		skip[name] = struct{}{}
	}
	return &Context{
		format:    format,
		byName:    make(map[string]int),
		skip:      skip,
		rowsSkip:  opts.RowsSkip,
		maxRows:   opts.MaxRows,
		labelSets: make(map[string]map[string]string),
		tagged:    make(map[string]*statio.TaggedMissing),
	}
}

// RowsEmitted is the number of rows accumulated so far.
func (c *Context) RowsEmitted() int { return c.rowsEmitted }

// RowsSeen is the high-water mark of source row indices observed, whether or
// not they landed in the window.
func (c *Context) RowsSeen() int { return c.rowsSeen }

func (c *Context) register(col *column) {
	c.byName[col.name] = len(c.cols)
	c.cols = append(c.cols, col)
}
