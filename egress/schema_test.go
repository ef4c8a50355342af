package egress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/ipc"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// makeRecord builds one record batch for test input; build appends the cell
// values through the record builder's field builders.
func makeRecord(t *testing.T, fields []arrow.Field, build func(*array.RecordBuilder)) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema(fields, nil)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()
	build(b)
	rec := b.NewRecord()
	t.Cleanup(rec.Release)
	return rec
}

func encodePayload(t *testing.T, rec arrow.Record) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(rec.Schema()))
	require.NoError(t, w.Write(rec))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func textField(name string) arrow.Field {
	return arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
}

func numField(name string) arrow.Field {
	return arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true}
}

func TestDeriveSchemaTextWidth(t *testing.T) {
	rec := makeRecord(t, []arrow.Field{textField("name")}, func(b *array.RecordBuilder) {
		sb := b.Field(0).(*array.StringBuilder)
		sb.Append("a")
		sb.Append("abcd")
		sb.AppendNull()
	})

	cols, err := DeriveSchema([]arrow.Record{rec}, statio.SPSS)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, engine.ClassString, cols[0].Class)
	assert.Equal(t, 4, cols[0].Width)
}

func TestDeriveSchemaWidthFloor(t *testing.T) {
	// All-empty text still declares a one-byte column.
	rec := makeRecord(t, []arrow.Field{textField("name")}, func(b *array.RecordBuilder) {
		sb := b.Field(0).(*array.StringBuilder)
		sb.Append("")
		sb.AppendNull()
	})

	cols, err := DeriveSchema([]arrow.Record{rec}, statio.SPSS)
	require.NoError(t, err)
	assert.Equal(t, 1, cols[0].Width)
}

func TestDeriveSchemaWidthCeiling(t *testing.T) {
	long := strings.Repeat("x", 3000)
	rec := makeRecord(t, []arrow.Field{textField("essay")}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.StringBuilder).Append(long)
	})

	_, err := DeriveSchema([]arrow.Record{rec}, statio.Stata)
	var uerr *statio.UnsupportedFeatureError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "essay", uerr.Column)
	assert.Equal(t, 3000, uerr.Width)
	assert.Equal(t, 2045, uerr.Ceiling)

	// Formats without a hard ceiling clamp silently.
	cols, err := DeriveSchema([]arrow.Record{rec}, statio.SPSS)
	require.NoError(t, err)
	assert.Equal(t, 2000, cols[0].Width)
}

func TestDeriveSchemaTemporalFormats(t *testing.T) {
	fields := []arrow.Field{
		{Name: "d", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
		{Name: "ts", Type: &arrow.TimestampType{Unit: arrow.Millisecond}, Nullable: true},
		{Name: "dur", Type: &arrow.DurationType{Unit: arrow.Second}, Nullable: true},
		{
			Name:     "custom",
			Type:     arrow.FixedWidthTypes.Date32,
			Nullable: true,
			Metadata: arrow.MetadataFrom(map[string]string{"format": "MMDDYY10"}),
		},
	}
	rec := makeRecord(t, fields, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Date32Builder).Append(0)
		b.Field(1).(*array.TimestampBuilder).Append(0)
		b.Field(2).(*array.DurationBuilder).Append(0)
		b.Field(3).(*array.Date32Builder).Append(0)
	})

	cols, err := DeriveSchema([]arrow.Record{rec}, statio.SPSS)
	require.NoError(t, err)
	assert.Equal(t, "DATE10", cols[0].Format)
	assert.Equal(t, "DATETIME20", cols[1].Format)
	assert.Equal(t, "TIME11.2", cols[2].Format)
	assert.Equal(t, "MMDDYY10", cols[3].Format)

	cols, err = DeriveSchema([]arrow.Record{rec}, statio.Stata)
	require.NoError(t, err)
	assert.Equal(t, "%td", cols[0].Format)
	assert.Equal(t, "%tc", cols[1].Format)
	assert.Equal(t, "%tcHH:MM:SS", cols[2].Format)
}

func TestDeriveSchemaCarriesFieldMetadata(t *testing.T) {
	field := numField("region")
	field.Metadata = arrow.MetadataFrom(map[string]string{
		"label":     "Region of residence",
		"label_set": "regions",
		"format":    "F2.0",
	})
	rec := makeRecord(t, []arrow.Field{field}, func(b *array.RecordBuilder) {
		b.Field(0).(*array.Float64Builder).Append(1)
	})

	cols, err := DeriveSchema([]arrow.Record{rec}, statio.SPSS)
	require.NoError(t, err)
	assert.Equal(t, "Region of residence", cols[0].Label)
	assert.Equal(t, "regions", cols[0].LabelSet)
	assert.Equal(t, "F2.0", cols[0].Format)
	assert.Equal(t, engine.ClassNumeric, cols[0].Class)
}

func TestDeriveSchemaEmpty(t *testing.T) {
	cols, err := DeriveSchema(nil, statio.SPSS)
	require.NoError(t, err)
	assert.Nil(t, cols)
}
