package ingest

import (
	"strconv"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/svyio/statio"
)

// column is one growable typed column.  Its kind is fixed at creation and
// exactly one push method fires per row.
type column struct {
	kind     statio.Kind
	name     string
	label    string
	labelSet string
	format   string
	missing  *statio.UserMissing

	str *array.StringBuilder
	num *array.Float64Builder
}

func newColumn(name string, kind statio.Kind) *column {
	c := &column{kind: kind, name: name}
	switch kind {
	case statio.KindText:
		c.str = array.NewStringBuilder(memory.DefaultAllocator)
	case statio.KindNumeric:
		c.num = array.NewFloat64Builder(memory.DefaultAllocator)
	}
	return c
}

func (c *column) len() int {
	switch c.kind {
	case statio.KindText:
		return c.str.Len()
	default:
		return c.num.Len()
	}
}

func (c *column) pushMissing() {
	switch c.kind {
	case statio.KindText:
		c.str.AppendNull()
	case statio.KindNumeric:
		c.num.AppendNull()
	}
}

// pushText records s.  A numeric column fed text records a missing cell:
// the mismatch drops the value rather than failing the parse.
func (c *column) pushText(s string) {
	switch c.kind {
	case statio.KindText:
		c.str.Append(s)
	case statio.KindNumeric:
		c.num.AppendNull()
	}
}

// pushFloat records v, stringifying it for text columns.
func (c *column) pushFloat(v float64) {
	switch c.kind {
	case statio.KindNumeric:
		c.num.Append(v)
	case statio.KindText:
		c.str.Append(formatFloat(v))
	}
}

// newArray drains the accumulator into a finished array.  It returns nil
// once the column has already been drained.
func (c *column) newArray() arrow.Array {
	switch c.kind {
	case statio.KindText:
		if c.str == nil {
			return nil
		}
		a := c.str.NewArray()
		c.str.Release()
		c.str = nil
		return a
	default:
		if c.num == nil {
			return nil
		}
		a := c.num.NewArray()
		c.num.Release()
		c.num = nil
		return a
	}
}

func (c *column) release() {
	if c.str != nil {
		c.str.Release()
		c.str = nil
	}
	if c.num != nil {
		c.num.Release()
		c.num = nil
	}
}

func (c *column) dataType() arrow.DataType {
	if c.kind == statio.KindText {
		return arrow.BinaryTypes.String
	}
	return arrow.PrimitiveTypes.Float64
}

// formatFloat is the canonical numeric-to-text rendering shared by
// stringified cells and value-label keys.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
