package guardedgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalGraphMissingOutput(t *testing.T) {
	g := NewGraph("f")
	assert.Equal(t, ErrEval(ErrInvalid), EvalGraph(g, NewHeap(1), Env{}))
}

func TestEvalGraphOutOfRangeID(t *testing.T) {
	g := NewGraph("f")
	g.Output = 5
	assert.Equal(t, ErrEval(ErrInvalid), EvalGraph(g, NewHeap(1), Env{}))
}

func TestEvalGraphUnknownKind(t *testing.T) {
	g := NewGraph("f")
	g.Nodes[1] = &Node{ID: 1, Kind: "bogus"}
	g.Output = 1
	assert.Equal(t, ErrEval(ErrInvalid), EvalGraph(g, NewHeap(1), Env{}))
}

func TestEvalGraphConstAndAdd(t *testing.T) {
	g := NewGraph("f")
	g.Nodes[1] = &Node{ID: 1, Kind: KindConstInt, Value: 3}
	g.Nodes[2] = &Node{ID: 2, Kind: KindConstInt, Value: 4}
	g.Nodes[3] = &Node{ID: 3, Kind: KindAdd, X: 1, Y: 2}
	g.Output = 3
	assert.Equal(t, OkEval(IntV(7)), EvalGraph(g, NewHeap(1), Env{}))
}

// TestEvalGraphMemoizationSharedSubexpression builds a graph where node
// 1 (an input read) is referenced from both operands of an add node,
// and checks that sharing it doesn't change the (well-defined) result
// a second, independent evaluation of the same node would give.
func TestEvalGraphMemoizationSharedSubexpression(t *testing.T) {
	shared := NewGraph("shared")
	shared.Nodes[1] = &Node{ID: 1, Kind: KindInput, Name: "p"}
	shared.Nodes[2] = &Node{ID: 2, Kind: KindAdd, X: 1, Y: 1}
	shared.Output = 2

	unshared := NewGraph("unshared")
	unshared.Nodes[1] = &Node{ID: 1, Kind: KindInput, Name: "p"}
	unshared.Nodes[2] = &Node{ID: 2, Kind: KindInput, Name: "p"}
	unshared.Nodes[3] = &Node{ID: 3, Kind: KindAdd, X: 1, Y: 2}
	unshared.Output = 3

	env := Env{P: IntV(5)}
	got := EvalGraph(shared, NewHeap(1), env)
	want := EvalGraph(unshared, NewHeap(1), env)
	assert.Equal(t, want, got)
	assert.Equal(t, OkEval(IntV(10)), got)
}

func TestEvalGraphCycleIsDefensiveNotDivergent(t *testing.T) {
	g := NewGraph("cyclic")
	g.Nodes[1] = &Node{ID: 1, Kind: KindAdd, X: 2, Y: 2}
	g.Nodes[2] = &Node{ID: 2, Kind: KindAdd, X: 1, Y: 1}
	g.Output = 1

	// must terminate; exact value is unspecified for a malformed
	// (non-acyclic) graph, but it must not hang or panic.
	assert.NotPanics(t, func() { EvalGraph(g, NewHeap(1), Env{}) })
}

// TestEvalGraphScenarios exercises the concrete scenarios from §8.
func TestEvalGraphScenarios(t *testing.T) {
	t.Run("triple deref all valid", func(t *testing.T) {
		h := NewHeap(4)
		h.GetObj(1).SetField(FieldDeref, PtrV(2))
		h.GetObj(2).SetField(FieldDeref, PtrV(3))
		h.GetObj(3).SetField(FieldDeref, PtrV(4))
		h.GetObj(4).SetField(FieldDeref, IntV(7))

		g := liftFixture(t, TripleDeref)
		got := EvalGraph(g, h, Env{P: PtrV(1), Q: NullV()})
		assert.Equal(t, OkEval(IntV(7)), got)
		assert.Equal(t, V(15), got.Value)
	})

	t.Run("triple deref second hop null", func(t *testing.T) {
		h := NewHeap(4)
		h.GetObj(1).SetField(FieldDeref, PtrV(2))
		h.GetObj(2).SetField(FieldDeref, NullV())

		g := liftFixture(t, TripleDeref)
		got := EvalGraph(g, h, Env{P: PtrV(1), Q: NullV()})
		assert.Equal(t, ErrEval(ErrNull), got)
	})

	t.Run("guarded chain null input", func(t *testing.T) {
		h := NewHeap(2)
		g := liftFixture(t, GuardedChain)
		got := EvalGraph(g, h, Env{P: NullV()})
		assert.Equal(t, OkEval(IntV(0)), got)
		assert.Equal(t, V(1), got.Value)
	})

	t.Run("alias branch", func(t *testing.T) {
		h := NewHeap(1)
		h.GetObj(1).SetField(FieldDeref, IntV(5))
		g := liftFixture(t, AliasBranch)
		got := EvalGraph(g, h, Env{P: PtrV(1), Q: PtrV(1)})
		assert.Equal(t, OkEval(IntV(5)), got)
		assert.Equal(t, V(11), got.Value)
	})

	t.Run("add two", func(t *testing.T) {
		h := NewHeap(2)
		h.GetObj(1).SetField(FieldDeref, IntV(3))
		h.GetObj(2).SetField(FieldDeref, IntV(4))
		g := liftFixture(t, AddTwo)
		got := EvalGraph(g, h, Env{P: PtrV(1), Q: PtrV(2)})
		assert.Equal(t, OkEval(IntV(7)), got)
		assert.Equal(t, V(15), got.Value)
	})

	t.Run("type error", func(t *testing.T) {
		h := NewHeap(1)
		g := liftFixture(t, TripleDeref)
		got := EvalGraph(g, h, Env{P: IntV(2)})
		assert.Equal(t, ErrEval(ErrType), got)
	})
}

func liftFixture(t *testing.T, k Kernel) *Graph {
	t.Helper()
	g, err := Lift("fixture", k)
	if err != nil {
		t.Fatalf("lift: %v", err)
	}
	return g
}
