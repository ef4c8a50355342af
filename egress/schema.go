// Package egress maps a columnar Arrow payload onto the variable-declaration
// and row-insertion protocol of an external statistical-file engine.
package egress

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// temporalKind classifies the temporal shape of a source column.
type temporalKind int

const (
	temporalNone    temporalKind = iota
	temporalDate                 // calendar date
	temporalStamp                // instant
	temporalElapsed              // duration, unit-converted only
)

// Column is the write plan for one output variable.
type Column struct {
	Name     string
	Class    engine.TypeClass
	Width    int
	Format   string
	Label    string
	LabelSet string

	temporal temporalKind
}

// DeriveSchema inspects records and derives the per-column storage plan for
// the target format.  Text columns take the widest observed UTF-8 byte
// length, clamped to the format's limit; a column over the format's hard
// ceiling fails the whole write before any engine call is made.  Records are
// never mutated.
func DeriveSchema(records []arrow.Record, format statio.Format) ([]Column, error) {
	if len(records) == 0 {
		return nil, nil
	}
	schema := records[0].Schema()
	cols := make([]Column, 0, len(schema.Fields()))
	for i, field := range schema.Fields() {
		col := Column{Name: field.Name, Class: engine.ClassNumeric}
		col.Label, _ = lookupMeta(field.Metadata, "label")
		col.LabelSet, _ = lookupMeta(field.Metadata, "label_set")
		explicit, hasExplicit := lookupMeta(field.Metadata, "format")

		if isTextType(field.Type) {
			col.Class = engine.ClassString
			width := maxTextWidth(records, i)
			if ceiling := format.TextWidthCeiling(); ceiling > 0 && width > ceiling {
				return nil, &statio.UnsupportedFeatureError{
					Column:  field.Name,
					Width:   width,
					Ceiling: ceiling,
				}
			}
			col.Width = clamp(width, 1, format.MaxTextWidth())
			if hasExplicit {
				col.Format = explicit
			}
		} else {
			col.temporal = temporalOf(field.Type)
			switch {
			case hasExplicit:
				col.Format = explicit
			case col.temporal == temporalDate:
				col.Format = format.DateFormat()
			case col.temporal == temporalStamp:
				col.Format = format.DatetimeFormat()
			case col.temporal == temporalElapsed:
				col.Format = format.TimeFormat()
			}
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func isTextType(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		return true
	case arrow.DICTIONARY:
		return isTextType(dt.(*arrow.DictionaryType).ValueType)
	}
	return false
}

func temporalOf(dt arrow.DataType) temporalKind {
	switch dt.ID() {
	case arrow.DATE32, arrow.DATE64:
		return temporalDate
	case arrow.TIMESTAMP:
		return temporalStamp
	case arrow.DURATION, arrow.TIME32, arrow.TIME64:
		return temporalElapsed
	}
	return temporalNone
}

func maxTextWidth(records []arrow.Record, i int) int {
	max := 0
	for _, rec := range records {
		col := rec.Column(i)
		for row := 0; row < col.Len(); row++ {
			if s, ok := textAt(col, row); ok && len(s) > max {
				max = len(s)
			}
		}
	}
	return max
}

// textAt fetches the row's string payload, decoding dictionary-encoded
// columns through their value arrays.
func textAt(a arrow.Array, row int) (string, bool) {
	if a.IsNull(row) {
		return "", false
	}
	switch a := a.(type) {
	case *array.String:
		return a.Value(row), true
	case *array.LargeString:
		return a.Value(row), true
	case *array.Dictionary:
		return textAt(a.Dictionary(), a.GetValueIndex(row))
	}
	return "", false
}

func lookupMeta(md arrow.Metadata, key string) (string, bool) {
	if i := md.FindKey(key); i >= 0 {
		return md.Values()[i], true
	}
	return "", false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
