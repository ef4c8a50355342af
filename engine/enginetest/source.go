// Package enginetest provides an in-memory scripted engine for exercising
// the statio adapter without a real statistical-file engine behind it.
package enginetest

import "github.com/svyio/statio/engine"

// Var couples a variable declaration with the label-set name the engine
// would deliver alongside it.
type Var struct {
	engine.Variable
	LabelSet string
}

// ValueLabel is one scripted value-label event.
type ValueLabel struct {
	Set   string
	Value engine.Value
	Label string
}

// Source replays a scripted parse traversal in engine order: file metadata,
// variable declarations, value labels, notes, then row values.  The zero
// value is an empty, successful parse.
type Source struct {
	FileLabel   string
	Vars        []Var
	Rows        [][]engine.Value
	Notes       []string
	ValueLabels []ValueLabel

	// ErrMessage, when set, is delivered through the error handler before
	// FailCode is returned.
	ErrMessage string
	// FailCode, when nonzero, is returned from Parse after the traversal.
	FailCode engine.Code
}

func (s *Source) Parse(h engine.Handlers) engine.Code {
	if h.Metadata != nil {
		m := engine.Metadata{
			FileLabel:   s.FileLabel,
			RowCount:    len(s.Rows),
			ColumnCount: len(s.Vars),
		}
		if h.Metadata(m) == engine.Abort {
			return engine.UserAbort
		}
	}
	if h.Variable != nil {
		for i := range s.Vars {
			v := s.Vars[i].Variable
			v.Index = i
			if h.Variable(i, &v, s.Vars[i].LabelSet) == engine.Abort {
				return engine.UserAbort
			}
		}
	}
	if h.ValueLabel != nil {
		for _, vl := range s.ValueLabels {
			if h.ValueLabel(vl.Set, vl.Value, vl.Label) == engine.Abort {
				return engine.UserAbort
			}
		}
	}
	if h.Note != nil {
		for i, note := range s.Notes {
			if h.Note(i, note) == engine.Abort {
				return engine.UserAbort
			}
		}
	}
	if h.Value != nil {
		for row, cells := range s.Rows {
			for j, cell := range cells {
				if j >= len(s.Vars) {
					break
				}
				v := s.Vars[j].Variable
				v.Index = j
				if h.Value(row, &v, cell) == engine.Abort {
					return engine.UserAbort
				}
			}
		}
	}
	if s.FailCode != engine.OK {
		if s.ErrMessage != "" && h.Error != nil {
			h.Error(s.ErrMessage)
		}
		return s.FailCode
	}
	return engine.OK
}
