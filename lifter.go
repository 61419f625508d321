package guardedgraph

// Lifter builds a Graph by running a Kernel once against it; its
// Handle values are always graph node ids (int).
type Lifter struct {
	graph    *Graph
	nextID   int
	inputIDs map[string]int
}

// Lift compiles k into a Graph named function by interpreting it
// through a Lifter instead of an execCtx. Because Kernel is written
// purely against the Ctx interface, the lifted graph and the direct
// checked-runtime execution can never structurally diverge — there is
// only one definition of each kernel.
func Lift(function string, k Kernel) (*Graph, error) {
	l := &Lifter{
		graph:    NewGraph(function),
		nextID:   1,
		inputIDs: map[string]int{},
	}
	out := k(l)
	l.graph.Output = out.(int)
	if err := l.graph.Validate(); err != nil {
		return nil, err
	}
	return l.graph, nil
}

func (l *Lifter) addNode(n *Node) int {
	id := l.nextID
	l.nextID++
	n.ID = id
	l.graph.Nodes[id] = n
	return id
}

func asID(h Handle) int { return h.(int) }

// Input emits at most one input node per distinct name: lifting the
// same kernel twice, or a kernel that reads the same name more than
// once, always yields the same node id for that name. Without this the
// graph would grow an input node per read and two differently-shaped
// but semantically identical graphs could disagree about node count.
func (l *Lifter) Input(name string) Handle {
	if id, ok := l.inputIDs[name]; ok {
		return id
	}
	id := l.addNode(&Node{Kind: KindInput, Name: name})
	l.inputIDs[name] = id
	return id
}

func (l *Lifter) ConstInt(n int64) Handle { return l.addNode(&Node{Kind: KindConstInt, Value: n}) }
func (l *Lifter) ConstNull() Handle       { return l.addNode(&Node{Kind: KindConstNull}) }

func (l *Lifter) GuardNonnull(v Handle) Handle {
	return l.addNode(&Node{Kind: KindIsNonnull, X: asID(v)})
}

func (l *Lifter) GuardEq(a, b Handle) Handle {
	return l.addNode(&Node{Kind: KindGuardEq, X: asID(a), Y: asID(b)})
}

func (l *Lifter) Select(cond, then, els Handle) Handle {
	return l.addNode(&Node{Kind: KindSelect, Cond: asID(cond), Then: asID(then), Else: asID(els)})
}

func (l *Lifter) Add(a, b Handle) Handle {
	return l.addNode(&Node{Kind: KindAdd, X: asID(a), Y: asID(b)})
}

// guardedLoad emits a fresh guard_ptr, guard_nonnull pair ahead of
// every load — never shared or deduplicated, even for two loads of the
// same pointer value, since each load site is an independent point
// where the original pointer-chasing code would trap. mk builds the
// load node itself, wired to read from the guarded handle.
func (l *Lifter) guardedLoad(v Handle, mk func(x int) *Node) int {
	gp := l.addNode(&Node{Kind: KindGuardPtr, X: asID(v)})
	gn := l.addNode(&Node{Kind: KindGuardNonnull, X: gp})
	return l.addNode(mk(gn))
}

func (l *Lifter) LoadPtr(v Handle) Handle {
	return l.guardedLoad(v, func(x int) *Node { return &Node{Kind: KindLoadPtr, X: x} })
}

func (l *Lifter) LoadInt(v Handle) Handle {
	return l.guardedLoad(v, func(x int) *Node { return &Node{Kind: KindLoadInt, X: x} })
}

func (l *Lifter) GetField(v Handle, field int) Handle {
	return l.guardedLoad(v, func(x int) *Node { return &Node{Kind: KindGetField, X: x, Field: field} })
}

func (l *Lifter) GetFieldInt(v Handle, field int) Handle {
	return l.guardedLoad(v, func(x int) *Node { return &Node{Kind: KindGetFieldInt, X: x, Field: field} })
}
