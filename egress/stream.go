package egress

import (
	"math"
	"strings"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// streamRows drives the engine's row-insertion protocol over every record.
// Cells the engine cannot take (absent values, text with an embedded NUL,
// non-finite numbers) become missing markers instead of failing the write;
// a nonzero code from any primitive is fatal for the whole write.
func streamRows(w engine.Writer, records []arrow.Record, cols []Column, vars []engine.VariableHandle, format statio.Format) error {
	for _, rec := range records {
		n := int(rec.NumRows())
		for row := 0; row < n; row++ {
			if code := w.BeginRow(); code != engine.OK {
				return &statio.RowInsertError{Op: "begin row", Code: code}
			}
			for j := range cols {
				if err := insertCell(w, rec.Column(j), cols[j], vars[j], format, row); err != nil {
					return err
				}
			}
			if code := w.EndRow(); code != engine.OK {
				return &statio.RowInsertError{Op: "end row", Code: code}
			}
		}
	}
	return nil
}

func insertCell(w engine.Writer, a arrow.Array, col Column, v engine.VariableHandle, format statio.Format, row int) error {
	if col.Class == engine.ClassString {
		s, ok := textAt(a, row)
		if !ok || strings.IndexByte(s, 0) >= 0 {
			return insertMissing(w, v)
		}
		if code := w.InsertString(v, s); code != engine.OK {
			return &statio.RowInsertError{Op: "insert string", Code: code}
		}
		return nil
	}
	val, ok := cellFloat(format, col, a, row)
	if !ok || math.IsInf(val, 0) {
		return insertMissing(w, v)
	}
	if code := w.InsertFloat64(v, val); code != engine.OK {
		return &statio.RowInsertError{Op: "insert double", Code: code}
	}
	return nil
}

func insertMissing(w engine.Writer, v engine.VariableHandle) error {
	if code := w.InsertMissing(v); code != engine.OK {
		return &statio.RowInsertError{Op: "insert missing", Code: code}
	}
	return nil
}

func cellFloat(format statio.Format, col Column, a arrow.Array, row int) (float64, bool) {
	if col.temporal != temporalNone {
		return temporalFloat(format, a, row)
	}
	return numericFloat(a, row)
}

// numericFloat casts the plain numeric cell at row to float64.  ok is false
// for absent cells and unsupported types.
func numericFloat(a arrow.Array, row int) (float64, bool) {
	if a.IsNull(row) {
		return 0, false
	}
	switch a := a.(type) {
	case *array.Float64:
		return a.Value(row), true
	case *array.Float32:
		return float64(a.Value(row)), true
	case *array.Int64:
		return float64(a.Value(row)), true
	case *array.Int32:
		return float64(a.Value(row)), true
	case *array.Int16:
		return float64(a.Value(row)), true
	case *array.Int8:
		return float64(a.Value(row)), true
	case *array.Uint64:
		return float64(a.Value(row)), true
	case *array.Uint32:
		return float64(a.Value(row)), true
	case *array.Uint16:
		return float64(a.Value(row)), true
	case *array.Uint8:
		return float64(a.Value(row)), true
	case *array.Boolean:
		if a.Value(row) {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
