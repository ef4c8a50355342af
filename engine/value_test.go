package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueClassification(t *testing.T) {
	v := Float64(3.5)
	assert.Equal(t, ClassNumeric, v.Class())
	assert.False(t, v.IsSystemMissing())
	assert.Equal(t, 3.5, v.Float())

	v = String("x")
	assert.Equal(t, ClassString, v.Class())
	s, ok := v.Text()
	assert.True(t, ok)
	assert.Equal(t, "x", s)
	assert.True(t, math.IsNaN(v.Float()))

	v = NullString()
	assert.Equal(t, ClassString, v.Class())
	_, ok = v.Text()
	assert.False(t, ok)

	v = SystemMissing()
	assert.True(t, v.IsSystemMissing())
	assert.False(t, v.IsTaggedMissing())
	assert.True(t, math.IsNaN(v.Float()))
}

func TestTaggedMissingIsSystemMissing(t *testing.T) {
	v := TaggedMissing('a')
	assert.True(t, v.IsTaggedMissing())
	assert.True(t, v.IsSystemMissing())
	assert.Equal(t, byte('a'), v.Tag())
	assert.Equal(t, ClassNumeric, v.Class())
}
