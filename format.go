package statio

import "fmt"

// Format identifies a target file format profile.  The profile fixes every
// behavior that varies by format: tagged-missing detection, text width
// limits, temporal display formats, and the epoch of temporal values.
type Format int

const (
	SPSS         Format = iota // .sav
	SPSSPortable               // .por
	Stata                      // .dta
	SAS                        // .sas7bdat
	SASTransport               // .xpt
)

func (f Format) String() string {
	switch f {
	case SPSS:
		return "spss"
	case SPSSPortable:
		return "spss-portable"
	case Stata:
		return "stata"
	case SAS:
		return "sas"
	case SASTransport:
		return "sas-transport"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DetectTagged reports whether the format carries Stata-style tagged missing
// values (a missing cell with a one-character diagnostic tag).
func (f Format) DetectTagged() bool {
	return f == Stata
}

// MaxTextWidth is the widest declared width a text column may take; observed
// widths beyond it are clamped.
func (f Format) MaxTextWidth() int {
	switch f {
	case Stata:
		return 2045
	case SASTransport:
		return 200
	default:
		return 2000
	}
}

// TextWidthCeiling is the hard limit beyond which a text column cannot be
// written at all: the overflow representation (Stata strL and friends) is
// not supported.  Zero means no hard ceiling and the width clamps silently.
func (f Format) TextWidthCeiling() int {
	switch f {
	case Stata:
		return 2045
	case SASTransport:
		return 200
	default:
		return 0
	}
}

// EpochOffsetDays is the day count from the format's epoch to the Unix
// epoch: SPSS counts from 1582-10-14, SAS and Stata from 1960-01-01.
func (f Format) EpochOffsetDays() int64 {
	switch f {
	case SPSS, SPSSPortable:
		return 141_428
	default:
		return 3_653
	}
}

// DateFormat is the display format applied to date-like columns on write.
func (f Format) DateFormat() string {
	switch f {
	case Stata:
		return "%td"
	case SAS, SASTransport:
		return "DATE9."
	default:
		return "DATE10"
	}
}

// DatetimeFormat is the display format applied to timestamp-like columns on
// write.
func (f Format) DatetimeFormat() string {
	switch f {
	case Stata:
		return "%tc"
	case SAS, SASTransport:
		return "DATETIME20."
	default:
		return "DATETIME20"
	}
}

// TimeFormat is the display format applied to duration-like columns on
// write.
func (f Format) TimeFormat() string {
	switch f {
	case Stata:
		return "%tcHH:MM:SS"
	case SAS, SASTransport:
		return "TIME8."
	default:
		return "TIME11.2"
	}
}
