package egress

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// Options configures one write.  The zero value writes a plain, unlabeled
// file with the format's defaults.
type Options struct {
	FileLabel   string
	Compression engine.Compression
	// FileFormatVersion selects the target format's version where it has
	// one (Stata dta versions, transport v5/v8).  Zero keeps the engine
	// default.
	FileFormatVersion int
	// TableName is the member name for formats that carry one (SAS
	// transport).
	TableName string
	// VariableLabels overrides per-column labels; columns absent here fall
	// back to their label field metadata.
	VariableLabels map[string]string
	// UserMissing declares per-column user-missing rules.
	UserMissing map[string]statio.UserMissing
	// ValueLabels declares per-column value→label mappings; each becomes a
	// label set named <column>_labels attached to that column.
	ValueLabels map[string]map[string]string
}

// Write maps the columnar payload onto session's declaration and row-
// insertion protocol, emitting the output file through out.  An empty
// payload writes an empty file.  On a row-insertion failure the partially
// written output is left in place.
func Write(session engine.Writer, out io.Writer, payload []byte, format statio.Format, opts Options) error {
	if session == nil {
		return statio.ErrEngineInit
	}
	records, err := decodePayload(payload)
	if err != nil {
		return err
	}
	defer releaseAll(records)
	if len(records) == 0 {
		return nil
	}
	cols, err := DeriveSchema(records, format)
	if err != nil {
		return err
	}

	session.SetCompression(opts.Compression)
	if opts.FileFormatVersion != 0 {
		session.SetFileFormatVersion(opts.FileFormatVersion)
	}
	if opts.FileLabel != "" {
		session.SetFileLabel(opts.FileLabel)
	}
	if opts.TableName != "" {
		session.SetTableName(opts.TableName)
	}

	vars := make([]engine.VariableHandle, 0, len(cols))
	for _, col := range cols {
		v, err := session.AddVariable(col.Name, col.Class, col.Width)
		if err != nil {
			return fmt.Errorf("statio: declaring variable %q: %w", col.Name, err)
		}
		if col.Format != "" {
			v.SetFormat(col.Format)
		}
		if label := variableLabel(col, opts.VariableLabels); label != "" {
			v.SetLabel(label)
		}
		if um, ok := opts.UserMissing[col.Name]; ok {
			applyUserMissing(v, col, um)
		}
		if labels := opts.ValueLabels[col.Name]; len(labels) > 0 {
			attachValueLabels(session, v, col, labels)
		}
		vars = append(vars, v)
	}

	total := 0
	for _, rec := range records {
		total += int(rec.NumRows())
	}
	if code := session.BeginWriting(out, total); code != engine.OK {
		return &statio.RowInsertError{Op: "begin writing", Code: code}
	}
	if err := streamRows(session, records, cols, vars, format); err != nil {
		return err
	}
	if code := session.EndWriting(); code != engine.OK {
		return &statio.RowInsertError{Op: "end writing", Code: code}
	}
	return nil
}

func variableLabel(col Column, overrides map[string]string) string {
	if label, ok := overrides[col.Name]; ok {
		return label
	}
	return col.Label
}

// applyUserMissing re-emits a user-missing rule.  Text columns take only
// discrete values, rendered without a trailing ".0" for integral values;
// the engine exposes no string-range call, so a range on a text column is
// dropped.
func applyUserMissing(v engine.VariableHandle, col Column, um statio.UserMissing) {
	if col.Class == engine.ClassString {
		for _, val := range um.Values {
			v.AddMissingString(missingString(val))
		}
		return
	}
	for _, val := range um.Values {
		v.AddMissingValue(val)
	}
	if um.Range != nil {
		v.AddMissingRange(um.Range.Lo, um.Range.Hi)
	}
}

func missingString(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func attachValueLabels(session engine.Writer, v engine.VariableHandle, col Column, labels map[string]string) {
	set := session.AddLabelSet(col.Class, col.Name+"_labels")
	if set == nil {
		return
	}
	keys := maps.Keys(labels)
	slices.Sort(keys)
	for _, key := range keys {
		if col.Class == engine.ClassString {
			set.LabelString(key, labels[key])
			continue
		}
		// Numeric sets take only keys that parse; anything else is skipped.
		if val, err := strconv.ParseFloat(key, 64); err == nil {
			set.LabelFloat64(val, labels[key])
		}
	}
	v.AttachLabelSet(set)
}

var arrowFileMagic = []byte("ARROW1")

// decodePayload accepts both the Arrow IPC file and stream encodings,
// decided by the leading magic.
func decodePayload(payload []byte) ([]arrow.Record, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	if bytes.HasPrefix(payload, arrowFileMagic) {
		fr, err := ipc.NewFileReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("statio: decoding columnar payload: %w", err)
		}
		defer fr.Close()
		return readAll(fr)
	}
	rr, err := ipc.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("statio: decoding columnar payload: %w", err)
	}
	defer rr.Release()
	return readAll(rr)
}

type recordReader interface {
	Read() (arrow.Record, error)
}

func readAll(rr recordReader) ([]arrow.Record, error) {
	var records []arrow.Record
	for {
		rec, err := rr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			releaseAll(records)
			return nil, fmt.Errorf("statio: decoding columnar payload: %w", err)
		}
		rec.Retain()
		records = append(records, rec)
	}
}

func releaseAll(records []arrow.Record) {
	for _, rec := range records {
		rec.Release()
	}
}
