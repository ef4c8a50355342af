package engine

import "math"

type valueKind int

const (
	valueFloat64 valueKind = iota
	valueString
	valueNullString
	valueSystemMissing
	valueTaggedMissing
)

// Value is one cell as delivered by the engine: a float64, a string, a
// string whose payload the engine reported as absent, a system-missing
// marker, or a tagged-missing marker carrying a one-byte diagnostic tag.
// The zero Value is the number zero.
type Value struct {
	kind valueKind
	f    float64
	s    string
	tag  byte
}

func Float64(f float64) Value { return Value{kind: valueFloat64, f: f} }

func String(s string) Value { return Value{kind: valueString, s: s} }

// NullString is a string-class cell with no payload.
func NullString() Value { return Value{kind: valueNullString} }

// SystemMissing is the format's own "no data" marker, distinct from any
// user-defined missing rule.
func SystemMissing() Value { return Value{kind: valueSystemMissing} }

// TaggedMissing is a missing cell that also carries a single diagnostic
// character (a format-specific extension).
func TaggedMissing(tag byte) Value { return Value{kind: valueTaggedMissing, tag: tag} }

// IsSystemMissing reports a cell with no data.  A tagged-missing cell is
// also system-missing; the tag is extra diagnostic information.
func (v Value) IsSystemMissing() bool {
	return v.kind == valueSystemMissing || v.kind == valueTaggedMissing
}

func (v Value) IsTaggedMissing() bool { return v.kind == valueTaggedMissing }

// Tag is the diagnostic character of a tagged-missing value, zero otherwise.
func (v Value) Tag() byte { return v.tag }

// Class is the cell's declared type class.  Missing markers classify as
// numeric.
func (v Value) Class() TypeClass {
	if v.kind == valueString || v.kind == valueNullString {
		return ClassString
	}
	return ClassNumeric
}

// Text returns the string payload; ok is false when the payload is absent or
// the value is not string-class.
func (v Value) Text() (string, bool) {
	return v.s, v.kind == valueString
}

// Float returns the numeric payload, NaN for anything that is not a plain
// number.
func (v Value) Float() float64 {
	if v.kind != valueFloat64 {
		return math.NaN()
	}
	return v.f
}
