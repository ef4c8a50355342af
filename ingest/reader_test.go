package ingest

import (
	"testing"

	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
	"github.com/svyio/statio/engine/enginetest"
)

func numericVar(name string) enginetest.Var {
	return enginetest.Var{Variable: engine.Variable{Name: name, Class: engine.ClassNumeric}}
}

func textVar(name string) enginetest.Var {
	return enginetest.Var{Variable: engine.Variable{Name: name, Class: engine.ClassString}}
}

func TestRead(t *testing.T) {
	src := &enginetest.Source{
		FileLabel: "demo",
		Vars:      []enginetest.Var{numericVar("id"), textVar("name")},
		Rows: [][]engine.Value{
			{engine.Float64(1), engine.String("a")},
			{engine.Float64(2), engine.String("b")},
			{engine.Float64(3), engine.NullString()},
		},
	}

	payload, meta, err := Read(src, statio.SPSS, Options{RowsSkip: 1})
	require.NoError(t, err)
	assert.Equal(t, "demo", meta.FileLabel)
	assert.Equal(t, 2, meta.Rows)

	rec := decodeRecord(t, payload)
	require.EqualValues(t, 2, rec.NumRows())
	ids := rec.Column(0).(*array.Float64)
	names := rec.Column(1).(*array.String)
	assert.Equal(t, 2.0, ids.Value(0))
	assert.Equal(t, "b", names.Value(0))
	assert.Equal(t, 3.0, ids.Value(1))
	assert.True(t, names.IsNull(1))
}

func TestReadRowCapAbortsTraversal(t *testing.T) {
	src := &enginetest.Source{
		Vars: []enginetest.Var{numericVar("x")},
		Rows: [][]engine.Value{
			{engine.Float64(0)},
			{engine.Float64(1)},
			{engine.Float64(2)},
			{engine.Float64(3)},
			{engine.Float64(4)},
		},
	}

	payload, meta, err := Read(src, statio.SPSS, Options{RowsSkip: 1, MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Rows)

	rec := decodeRecord(t, payload)
	xs := rec.Column(0).(*array.Float64)
	require.EqualValues(t, 2, rec.NumRows())
	assert.Equal(t, 1.0, xs.Value(0))
	assert.Equal(t, 2.0, xs.Value(1))
}

func TestReadSkipPastEnd(t *testing.T) {
	src := &enginetest.Source{
		Vars: []enginetest.Var{numericVar("x")},
		Rows: [][]engine.Value{{engine.Float64(1)}, {engine.Float64(2)}},
	}

	payload, meta, err := Read(src, statio.SPSS, Options{RowsSkip: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Rows)

	rec := decodeRecord(t, payload)
	assert.EqualValues(t, 0, rec.NumRows())
}

func TestReadParseError(t *testing.T) {
	src := &enginetest.Source{
		Vars:       []enginetest.Var{numericVar("x")},
		ErrMessage: "bad header",
		FailCode:   engine.Code(5),
	}

	_, _, err := Read(src, statio.SPSS, Options{})
	var perr *statio.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, engine.Code(5), perr.Code)
	assert.Contains(t, perr.Error(), "bad header")

	// Without an error event the code stands in for the message.
	src = &enginetest.Source{FailCode: engine.Code(5)}
	_, _, err = Read(src, statio.SPSS, Options{})
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "code 5")
}

func TestReadCapSatisfiedDespiteFailure(t *testing.T) {
	// The engine reports failure after the cap was already filled; the rows
	// in hand are good, so the read succeeds.
	src := &enginetest.Source{
		Vars: []enginetest.Var{numericVar("x")},
		Rows: [][]engine.Value{
			{engine.Float64(1)},
			{engine.Float64(2)},
		},
		FailCode: engine.Code(5),
	}

	_, meta, err := Read(src, statio.SPSS, Options{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, meta.Rows)
}

func TestReadNilParser(t *testing.T) {
	_, _, err := Read(nil, statio.SPSS, Options{})
	require.ErrorIs(t, err, statio.ErrEngineInit)

	_, _, err = ReadWithCatalog(nil, &enginetest.Source{}, statio.SAS, Options{})
	require.ErrorIs(t, err, statio.ErrEngineInit)
}

func TestReadWithCatalog(t *testing.T) {
	data := &enginetest.Source{
		Vars: []enginetest.Var{{
			Variable: engine.Variable{Name: "region", Class: engine.ClassNumeric},
			LabelSet: "regions",
		}},
		Rows: [][]engine.Value{{engine.Float64(1)}},
	}
	catalog := &enginetest.Source{
		ValueLabels: []enginetest.ValueLabel{
			{Set: "regions", Value: engine.Float64(1), Label: "North"},
			{Set: "regions", Value: engine.Float64(2), Label: "South"},
		},
	}

	_, meta, err := ReadWithCatalog(data, catalog, statio.SAS, Options{})
	require.NoError(t, err)
	require.Len(t, meta.LabelSets, 1)
	assert.Equal(t, "regions", meta.LabelSets[0].Name)
	assert.Equal(t, map[string]string{"1": "North", "2": "South"}, meta.LabelSets[0].Mapping)
}

func TestReadWithCatalogFailureIsLogged(t *testing.T) {
	data := &enginetest.Source{
		Vars: []enginetest.Var{numericVar("x")},
		Rows: [][]engine.Value{{engine.Float64(1)}},
	}
	catalog := &enginetest.Source{FailCode: engine.Code(3)}

	core, logs := observer.New(zap.WarnLevel)
	_, meta, err := ReadWithCatalog(data, catalog, statio.SAS, Options{Logger: zap.New(core)})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Rows)
	assert.Empty(t, meta.LabelSets)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "catalog parse failed")
}
