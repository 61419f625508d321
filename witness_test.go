package guardedgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWitnessAgreesOnMatchingResults(t *testing.T) {
	w := NewWitness("add_two", Env{P: IntV(1), Q: IntV(2)}, NewHeap(1), OkEval(IntV(3)), OkEval(IntV(3)))
	assert.True(t, w.Agrees())
}

func TestWitnessDisagreesOnMismatch(t *testing.T) {
	w := NewWitness("add_two", Env{}, NewHeap(1), OkEval(IntV(3)), ErrEval(ErrType))
	assert.False(t, w.Agrees())
}

func TestWitnessHeapFieldKeysAreDecimalStrings(t *testing.T) {
	h := NewHeap(2)
	h.GetObj(1).SetField(FieldDeref, PtrV(2))
	h.GetObj(2).SetField(FieldF, IntV(9))

	w := NewWitness("k", Env{}, h, OkEval(NullV()), OkEval(NullV()))
	data, err := json.Marshal(w)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	heap := decoded["heap"].(map[string]any)
	objs := heap["objs"].(map[string]any)
	obj1 := objs["1"].(map[string]any)
	assert.Contains(t, obj1, "0")
}

func TestWitnessOmitsEmptyObjsWhenHeapIsEmpty(t *testing.T) {
	w := NewWitness("k", Env{}, NewHeap(0), OkEval(NullV()), OkEval(NullV()))
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"objs"`)
}

func TestParseHeapRoundTripsWitnessHeap(t *testing.T) {
	h := NewHeap(2)
	h.GetObj(1).SetField(FieldDeref, PtrV(2))
	h.GetObj(2).SetField(FieldF, IntV(9))

	data, err := json.Marshal(toHeapWire(h))
	require.NoError(t, err)

	got, err := ParseHeap(data)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumObjs())
	v, present := got.GetObj(1).GetField(FieldDeref)
	require.True(t, present)
	assert.Equal(t, PtrV(2), v)
}

func TestParseEnv(t *testing.T) {
	data := []byte(`{"p":3,"q":0}`)
	env, err := ParseEnv(data)
	require.NoError(t, err)
	assert.Equal(t, V(3), env.P)
	assert.Equal(t, V(0), env.Q)
}

func TestWitnessErrResultOmitsValue(t *testing.T) {
	w := NewWitness("k", Env{}, NewHeap(1), ErrEval(ErrNull), ErrEval(ErrNull))
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"err":"null"`)
	assert.NotContains(t, string(data), `"value"`)
}
