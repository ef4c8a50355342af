package ingest

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/svyio/statio"
)

// Finalize drains c into the Arrow IPC payload and its metadata record.  It
// consumes the accumulators; a second call fails with a SerializationError.
func (c *Context) Finalize() ([]byte, *statio.Metadata, error) {
	if c.finalized {
		return nil, nil, &statio.SerializationError{Reason: "context already finalized"}
	}
	c.finalized = true

	var (
		fields []arrow.Field
		arrays []arrow.Array
		vars   []statio.Variable
	)
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()
	length := -1
	for _, col := range c.cols {
		if _, ok := c.skip[col.name]; ok {
			col.release()
			continue
		}
		arr := col.newArray()
		if arr == nil {
			return nil, nil, &statio.SerializationError{
				Reason: fmt.Sprintf("column %q already drained", col.name),
			}
		}
		arrays = append(arrays, arr)
		if length == -1 {
			length = arr.Len()
		} else if arr.Len() != length {
			// Cannot happen if every value event landed; checked anyway.
			return nil, nil, &statio.SerializationError{
				Reason: fmt.Sprintf("column %q has %d cells, want %d", col.name, arr.Len(), length),
			}
		}
		fields = append(fields, arrow.Field{
			Name:     col.name,
			Type:     col.dataType(),
			Nullable: true,
			Metadata: fieldMetadata(col),
		})
		vars = append(vars, statio.Variable{
			Name:     col.name,
			Label:    col.label,
			LabelSet: col.labelSet,
			Format:   col.format,
			Kind:     col.kind,
			Missing:  col.missing,
		})
	}
	if length < 0 {
		length = 0
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrays, int64(length))
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(schema))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, nil, &statio.SerializationError{Reason: err.Error()}
	}
	if err := w.Close(); err != nil {
		return nil, nil, &statio.SerializationError{Reason: err.Error()}
	}

	meta := &statio.Metadata{
		FileLabel:      c.fileLabel,
		Variables:      vars,
		LabelSets:      c.drainLabelSets(),
		Rows:           c.rowsEmitted,
		TaggedMissings: c.drainTagged(),
		Notes:          c.notes,
	}
	return buf.Bytes(), meta, nil
}

// fieldMetadata attaches the label, label_set, and format keys that round-
// trip through the payload; keys without a value stay off the field.
func fieldMetadata(col *column) arrow.Metadata {
	kv := map[string]string{}
	if col.label != "" {
		kv["label"] = col.label
	}
	if col.labelSet != "" {
		kv["label_set"] = col.labelSet
	}
	if col.format != "" {
		kv["format"] = col.format
	}
	if len(kv) == 0 {
		return arrow.Metadata{}
	}
	return arrow.MetadataFrom(kv)
}

func (c *Context) drainLabelSets() []statio.LabelSet {
	names := maps.Keys(c.labelSets)
	slices.Sort(names)
	sets := make([]statio.LabelSet, 0, len(names))
	for _, name := range names {
		sets = append(sets, statio.LabelSet{Name: name, Mapping: c.labelSets[name]})
	}
	return sets
}

func (c *Context) drainTagged() []statio.TaggedMissing {
	cols := maps.Keys(c.tagged)
	slices.Sort(cols)
	out := make([]statio.TaggedMissing, 0, len(cols))
	for _, col := range cols {
		out = append(out, *c.tagged[col])
	}
	return out
}
