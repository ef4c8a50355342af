package enginetest

import (
	"errors"
	"fmt"
	"io"

	"github.com/svyio/statio/engine"
)

// RecordedVar is one declared output variable with everything the session
// attached to it.
type RecordedVar struct {
	Name           string
	Class          engine.TypeClass
	Width          int
	Label          string
	Format         string
	MissingValues  []float64
	MissingStrings []string
	MissingRange   *[2]float64
	LabelSet       *RecordedLabelSet
}

// RecordedLabelSet is a captured label set; it doubles as the session's
// label-set handle.
type RecordedLabelSet struct {
	Name    string
	Class   engine.TypeClass
	Floats  map[float64]string
	Strings map[string]string
}

func (s *RecordedLabelSet) LabelFloat64(value float64, label string) {
	s.Floats[value] = label
}

func (s *RecordedLabelSet) LabelString(value, label string) {
	s.Strings[value] = label
}

// Recorder captures a full write session.  FailOn forces a failure from the
// named primitive ("begin writing", "begin row", "insert string", "insert
// double", "insert missing", "end row", "end writing", "add variable") to
// exercise error propagation.
type Recorder struct {
	FailOn   string
	FailCode engine.Code

	FileLabel   string
	Compression engine.Compression
	Version     int
	TableName   string
	Vars        []*RecordedVar
	LabelSets   []*RecordedLabelSet
	Rows        [][]engine.Value
	TotalRows   int

	out io.Writer
	cur []engine.Value
}

func (r *Recorder) code(op string) engine.Code {
	if r.FailOn != op {
		return engine.OK
	}
	if r.FailCode != engine.OK {
		return r.FailCode
	}
	return engine.Code(1)
}

func (r *Recorder) SetCompression(c engine.Compression) { r.Compression = c }

func (r *Recorder) SetFileFormatVersion(v int) { r.Version = v }

func (r *Recorder) SetFileLabel(label string) { r.FileLabel = label }

func (r *Recorder) SetTableName(name string) { r.TableName = name }

func (r *Recorder) AddVariable(name string, class engine.TypeClass, width int) (engine.VariableHandle, error) {
	if r.FailOn == "add variable" {
		return nil, errors.New("variable refused")
	}
	v := &RecordedVar{Name: name, Class: class, Width: width}
	r.Vars = append(r.Vars, v)
	return varHandle{v}, nil
}

func (r *Recorder) AddLabelSet(class engine.TypeClass, name string) engine.LabelSetHandle {
	s := &RecordedLabelSet{
		Name:    name,
		Class:   class,
		Floats:  map[float64]string{},
		Strings: map[string]string{},
	}
	r.LabelSets = append(r.LabelSets, s)
	return s
}

func (r *Recorder) BeginWriting(w io.Writer, rows int) engine.Code {
	if code := r.code("begin writing"); code != engine.OK {
		return code
	}
	r.out = w
	r.TotalRows = rows
	fmt.Fprintf(w, "%d vars, %d rows\n", len(r.Vars), rows)
	return engine.OK
}

func (r *Recorder) BeginRow() engine.Code {
	if code := r.code("begin row"); code != engine.OK {
		return code
	}
	r.cur = nil
	return engine.OK
}

func (r *Recorder) InsertString(v engine.VariableHandle, s string) engine.Code {
	if code := r.code("insert string"); code != engine.OK {
		return code
	}
	r.cur = append(r.cur, engine.String(s))
	return engine.OK
}

func (r *Recorder) InsertFloat64(v engine.VariableHandle, f float64) engine.Code {
	if code := r.code("insert double"); code != engine.OK {
		return code
	}
	r.cur = append(r.cur, engine.Float64(f))
	return engine.OK
}

func (r *Recorder) InsertMissing(v engine.VariableHandle) engine.Code {
	if code := r.code("insert missing"); code != engine.OK {
		return code
	}
	r.cur = append(r.cur, engine.SystemMissing())
	return engine.OK
}

func (r *Recorder) EndRow() engine.Code {
	if code := r.code("end row"); code != engine.OK {
		return code
	}
	r.Rows = append(r.Rows, r.cur)
	r.cur = nil
	if r.out != nil {
		io.WriteString(r.out, ".")
	}
	return engine.OK
}

func (r *Recorder) EndWriting() engine.Code {
	if code := r.code("end writing"); code != engine.OK {
		return code
	}
	if r.out != nil {
		io.WriteString(r.out, "\n")
	}
	return engine.OK
}

// Source converts the captured session back into a scripted parse source,
// closing the write→read round trip.
func (r *Recorder) Source() *Source {
	src := &Source{FileLabel: r.FileLabel, Rows: r.Rows}
	for _, v := range r.Vars {
		var ranges []engine.MissingRange
		for _, val := range v.MissingValues {
			ranges = append(ranges, engine.MissingRange{Lo: val, Hi: val})
		}
		if v.MissingRange != nil {
			ranges = append(ranges, engine.MissingRange{Lo: v.MissingRange[0], Hi: v.MissingRange[1]})
		}
		var setName string
		if v.LabelSet != nil {
			setName = v.LabelSet.Name
			for val, label := range v.LabelSet.Floats {
				src.ValueLabels = append(src.ValueLabels, ValueLabel{
					Set:   setName,
					Value: engine.Float64(val),
					Label: label,
				})
			}
			for val, label := range v.LabelSet.Strings {
				src.ValueLabels = append(src.ValueLabels, ValueLabel{
					Set:   setName,
					Value: engine.String(val),
					Label: label,
				})
			}
		}
		src.Vars = append(src.Vars, Var{
			Variable: engine.Variable{
				Name:          v.Name,
				Class:         v.Class,
				Label:         v.Label,
				Format:        v.Format,
				MissingRanges: ranges,
			},
			LabelSet: setName,
		})
	}
	return src
}

type varHandle struct {
	v *RecordedVar
}

func (h varHandle) SetLabel(label string)   { h.v.Label = label }
func (h varHandle) SetFormat(format string) { h.v.Format = format }

func (h varHandle) AddMissingValue(v float64) {
	h.v.MissingValues = append(h.v.MissingValues, v)
}

func (h varHandle) AddMissingRange(lo, hi float64) {
	h.v.MissingRange = &[2]float64{lo, hi}
}

func (h varHandle) AddMissingString(s string) {
	h.v.MissingStrings = append(h.v.MissingStrings, s)
}

func (h varHandle) AttachLabelSet(ls engine.LabelSetHandle) {
	if set, ok := ls.(*RecordedLabelSet); ok {
		h.v.LabelSet = set
	}
}
