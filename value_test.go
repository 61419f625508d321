package guardedgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueTagDisjointness(t *testing.T) {
	vals := []V{NullV(), IntV(0), IntV(7), IntV(-3), PtrV(1), PtrV(42)}
	for _, v := range vals {
		count := 0
		if v.IsInt() {
			count++
		}
		if v.IsPtr() {
			count++
		}
		if v.IsNull() {
			count++
		}
		assert.Equal(t, 1, count, "value %v must satisfy exactly one predicate", v)
	}
}

func TestValueEncoding(t *testing.T) {
	assert.Equal(t, V(0), NullV())
	assert.True(t, NullV().IsNull())

	assert.Equal(t, V(15), IntV(7))
	assert.True(t, IntV(7).IsInt())
	assert.Equal(t, int64(7), IntV(7).IntValue())

	assert.Equal(t, V(2), PtrV(1))
	assert.True(t, PtrV(1).IsPtr())
	assert.Equal(t, int64(1), PtrV(1).PtrAddr())
}

func TestValueNegativeInt(t *testing.T) {
	v := IntV(-5)
	assert.True(t, v.IsInt())
	assert.Equal(t, int64(-5), v.IntValue())
}

func TestValueStringer(t *testing.T) {
	assert.Equal(t, "null", NullV().String())
	assert.Equal(t, "7", IntV(7).String())
	assert.Equal(t, "Ptr(3)", PtrV(3).String())
}

func TestValueProjectionPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() { NullV().IntValue() })
	assert.Panics(t, func() { IntV(1).PtrAddr() })
	assert.Panics(t, func() { PtrV(1).IntValue() })
}

func TestValueEquality(t *testing.T) {
	assert.Equal(t, PtrV(1), PtrV(1))
	assert.NotEqual(t, PtrV(1), PtrV(2))
	assert.NotEqual(t, IntV(0), NullV())
}
