package engine

import "io"

// VariableHandle is one declared output variable.  All metadata calls must
// happen before the session's BeginWriting.
type VariableHandle interface {
	SetLabel(label string)
	SetFormat(format string)
	AddMissingValue(v float64)
	AddMissingRange(lo, hi float64)
	AddMissingString(s string)
	AttachLabelSet(ls LabelSetHandle)
}

// LabelSetHandle is one named value→label dictionary under construction.
type LabelSetHandle interface {
	LabelFloat64(value float64, label string)
	LabelString(value, label string)
}

// Writer is one write session.  Declaration order fixes column order in the
// output file.  Configuration and declarations precede BeginWriting; rows
// then run strictly BeginRow, one insert per declared variable in order,
// EndRow.  Any nonzero Code from a primitive poisons the session; the bytes
// already emitted through the BeginWriting sink stay where they are.
type Writer interface {
	SetCompression(c Compression)
	SetFileFormatVersion(v int)
	SetFileLabel(label string)
	SetTableName(name string)
	AddVariable(name string, class TypeClass, width int) (VariableHandle, error)
	AddLabelSet(class TypeClass, name string) LabelSetHandle
	BeginWriting(w io.Writer, rows int) Code
	BeginRow() Code
	InsertString(v VariableHandle, s string) Code
	InsertFloat64(v VariableHandle, f float64) Code
	InsertMissing(v VariableHandle) Code
	EndRow() Code
	EndWriting() Code
}
