package statio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTagged(t *testing.T) {
	for _, f := range []Format{SPSS, SPSSPortable, SAS, SASTransport} {
		assert.False(t, f.DetectTagged(), "%s", f)
	}
	assert.True(t, Stata.DetectTagged())
}

func TestTextWidthLimits(t *testing.T) {
	cases := []struct {
		format  Format
		max     int
		ceiling int
	}{
		{SPSS, 2000, 0},
		{SPSSPortable, 2000, 0},
		{Stata, 2045, 2045},
		{SAS, 2000, 0},
		{SASTransport, 200, 200},
	}
	for _, c := range cases {
		assert.Equal(t, c.max, c.format.MaxTextWidth(), "%s", c.format)
		assert.Equal(t, c.ceiling, c.format.TextWidthCeiling(), "%s", c.format)
	}
}

func TestEpochOffsetDays(t *testing.T) {
	assert.Equal(t, int64(141_428), SPSS.EpochOffsetDays())
	assert.Equal(t, int64(141_428), SPSSPortable.EpochOffsetDays())
	assert.Equal(t, int64(3_653), Stata.EpochOffsetDays())
	assert.Equal(t, int64(3_653), SAS.EpochOffsetDays())
	assert.Equal(t, int64(3_653), SASTransport.EpochOffsetDays())
}

func TestTemporalDisplayFormats(t *testing.T) {
	assert.Equal(t, "%td", Stata.DateFormat())
	assert.Equal(t, "%tc", Stata.DatetimeFormat())
	assert.Equal(t, "%tcHH:MM:SS", Stata.TimeFormat())

	assert.Equal(t, "DATE9.", SAS.DateFormat())
	assert.Equal(t, "DATETIME20.", SASTransport.DatetimeFormat())
	assert.Equal(t, "TIME8.", SAS.TimeFormat())

	assert.Equal(t, "DATE10", SPSS.DateFormat())
	assert.Equal(t, "DATETIME20", SPSS.DatetimeFormat())
	assert.Equal(t, "TIME11.2", SPSS.TimeFormat())
}
