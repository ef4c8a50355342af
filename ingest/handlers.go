package ingest

import (
	"fmt"
	"math"
	"strings"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// defaultLabelSet names value labels the engine delivers without a set name.
const defaultLabelSet = "__default__"

// rangeEpsilon decides when a missing range's endpoints are close enough to
// count as one discrete value.
const rangeEpsilon = 1e-10

// Handlers returns the event handler set for one traversal over c.  Every
// handler tolerates malformed input by ignoring it and continuing.
func (c *Context) Handlers() engine.Handlers {
	return engine.Handlers{
		Error:      c.onError,
		Metadata:   c.onMetadata,
		Variable:   c.onVariable,
		Value:      c.onValue,
		Note:       c.onNote,
		ValueLabel: c.onValueLabel,
	}
}

func (c *Context) onError(message string) {
	if message == "" {
		return
	}
	// Last message wins; it becomes the cause if the engine later reports
	// failure for the whole call.
	c.lastErr = message
}

func (c *Context) onMetadata(m engine.Metadata) engine.Action {
	c.fileLabel = strings.TrimSpace(m.FileLabel)
	return engine.Continue
}

func (c *Context) onVariable(index int, v *engine.Variable, labelSet string) engine.Action {
	if v == nil {
		return engine.Continue
	}
	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = fmt.Sprintf("V%d", index)
	}
	if _, ok := c.skip[name]; ok {
		// Placeholder column so later value events still align by name.
		c.register(newColumn(name, statio.KindText))
		return engine.Continue
	}
	kind := statio.KindNumeric
	if v.Class == engine.ClassString {
		kind = statio.KindText
	}
	col := newColumn(name, kind)
	col.label = strings.TrimSpace(v.Label)
	col.format = strings.TrimSpace(v.Format)
	col.labelSet = strings.TrimSpace(labelSet)
	col.missing = userMissing(kind, v.MissingRanges)
	c.register(col)
	return engine.Continue
}

// userMissing extracts the variable's user-missing rule.  String-typed rules
// are unsupported and dropped without error.  When several true ranges are
// declared only the last one survives; callers depend on that exact
// behavior.
func userMissing(kind statio.Kind, ranges []engine.MissingRange) *statio.UserMissing {
	if kind == statio.KindText || len(ranges) == 0 {
		return nil
	}
	var um statio.UserMissing
	for _, r := range ranges {
		if math.IsNaN(r.Lo) || math.IsNaN(r.Hi) {
			continue
		}
		if math.Abs(r.Lo-r.Hi) < rangeEpsilon {
			um.Values = append(um.Values, r.Lo)
		} else {
			um.Range = &statio.Range{Lo: r.Lo, Hi: r.Hi}
		}
	}
	if len(um.Values) == 0 && um.Range == nil {
		return nil
	}
	return &um
}

func (c *Context) onValue(row int, v *engine.Variable, val engine.Value) engine.Action {
	if v == nil {
		return engine.Continue
	}
	if row+1 > c.rowsSeen {
		c.rowsSeen = row + 1
	}
	if row < c.rowsSkip {
		return engine.Continue
	}
	if c.maxRows > 0 && row > c.rowsSkip+c.maxRows-1 {
		// Cap satisfied; ask the engine to stop the traversal.
		return engine.Abort
	}
	name := strings.TrimSpace(v.Name)
	if name == "" {
		return engine.Continue
	}
	if _, ok := c.skip[name]; ok {
		return engine.Continue
	}
	idx, ok := c.byName[name]
	if !ok {
		return engine.Continue
	}
	col := c.cols[idx]
	switch {
	case c.format.DetectTagged() && val.IsTaggedMissing():
		c.recordTag(name, row, val.Tag())
		col.pushMissing()
	case val.IsSystemMissing():
		col.pushMissing()
	case val.Class() == engine.ClassString:
		if s, ok := val.Text(); ok {
			col.pushText(s)
		} else {
			col.pushMissing()
		}
	default:
		col.pushFloat(val.Float())
	}
	if idx == 0 {
		// Row counting keys off the first declared column.
		c.rowsEmitted++
	}
	return engine.Continue
}

func (c *Context) recordTag(name string, row int, tag byte) {
	t, ok := c.tagged[name]
	if !ok {
		t = &statio.TaggedMissing{Column: name}
		c.tagged[name] = t
	}
	t.Rows = append(t.Rows, row)
	t.Tags = append(t.Tags, string(tag))
}

func (c *Context) onNote(index int, note string) engine.Action {
	if note == "" {
		return engine.Continue
	}
	c.notes = append(c.notes, note)
	return engine.Continue
}

func (c *Context) onValueLabel(set string, val engine.Value, label string) engine.Action {
	set = strings.TrimSpace(set)
	if set == "" {
		set = defaultLabelSet
	}
	var key string
	switch {
	case val.IsSystemMissing():
		key = ""
	case val.Class() == engine.ClassString:
		key, _ = val.Text()
	default:
		key = formatFloat(val.Float())
	}
	m, ok := c.labelSets[set]
	if !ok {
		m = make(map[string]string)
		c.labelSets[set] = m
	}
	m[key] = label
	return engine.Continue
}
