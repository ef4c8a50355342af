package egress

import (
	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"

	"github.com/svyio/statio"
)

// Epoch and unit constants for temporal re-encoding.  The day offsets are
// fixed calendar facts and are never recomputed at run time.
const (
	secondsPerDay = 86_400
	msPerSecond   = 1_000
	usPerSecond   = 1_000_000
	nsPerSecond   = 1_000_000_000

	// spssEpochOffsetDays is the day count from the SPSS epoch (1582-10-14)
	// to the Unix epoch.
	spssEpochOffsetDays    = 141_428
	spssEpochOffsetSeconds = float64(spssEpochOffsetDays) * secondsPerDay

	// sasEpochOffsetDays is the day count from the SAS and Stata epoch
	// (1960-01-01) to the Unix epoch.
	sasEpochOffsetDays    = 3_653
	sasEpochOffsetSeconds = float64(sasEpochOffsetDays) * secondsPerDay
)

// encodeDate converts days since the Unix epoch into the target format's
// native date representation: day counts for SAS and Stata, seconds for
// SPSS.
func encodeDate(f statio.Format, days float64) float64 {
	switch f {
	case statio.Stata, statio.SAS, statio.SASTransport:
		return days + sasEpochOffsetDays
	default:
		return days*secondsPerDay + spssEpochOffsetSeconds
	}
}

// encodeInstant converts seconds since the Unix epoch into the target
// format's native timestamp representation: milliseconds since 1960 for
// Stata, seconds since the format epoch otherwise.
func encodeInstant(f statio.Format, seconds float64) float64 {
	switch f {
	case statio.Stata:
		return (seconds + sasEpochOffsetSeconds) * msPerSecond
	case statio.SAS, statio.SASTransport:
		return seconds + sasEpochOffsetSeconds
	default:
		return seconds + spssEpochOffsetSeconds
	}
}

// encodeElapsed converts a duration in seconds into the target format's
// native duration unit.  Durations take no epoch shift.
func encodeElapsed(f statio.Format, seconds float64) float64 {
	if f == statio.Stata {
		return seconds * msPerSecond
	}
	return seconds
}

// temporalFloat re-encodes the temporal cell at row into the target format's
// epoch and unit system.  ok is false when the cell is absent or the column
// is not temporal.
func temporalFloat(f statio.Format, a arrow.Array, row int) (float64, bool) {
	if a.IsNull(row) {
		return 0, false
	}
	switch a := a.(type) {
	case *array.Date32:
		return encodeDate(f, float64(a.Value(row))), true
	case *array.Date64:
		// Milliseconds since the Unix epoch.
		return encodeDate(f, float64(a.Value(row))/(msPerSecond*secondsPerDay)), true
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return encodeInstant(f, float64(a.Value(row))/unitsPerSecond(unit)), true
	case *array.Duration:
		unit := a.DataType().(*arrow.DurationType).Unit
		return encodeElapsed(f, float64(a.Value(row))/unitsPerSecond(unit)), true
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		return encodeElapsed(f, float64(a.Value(row))/unitsPerSecond(unit)), true
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		return encodeElapsed(f, float64(a.Value(row))/unitsPerSecond(unit)), true
	}
	return 0, false
}

func unitsPerSecond(u arrow.TimeUnit) float64 {
	switch u {
	case arrow.Second:
		return 1
	case arrow.Millisecond:
		return msPerSecond
	case arrow.Microsecond:
		return usPerSecond
	default:
		return nsPerSecond
	}
}
