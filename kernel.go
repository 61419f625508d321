package guardedgraph

// Handle is an opaque result of a Ctx operation: an Eval when a kernel
// is run directly against a Heap+Env, or a graph node id when a kernel
// is being lifted. A kernel body never inspects a Handle's concrete
// type; it only ever threads handles between Ctx calls, which is what
// lets the same Go function serve as both the checked-runtime
// execution and the graph lifter (see SPEC_FULL.md §2).
type Handle any

// Ctx is the set of checked-pointer primitives a kernel is written
// against. Two independent implementations exist: execCtx (checked.go
// primitives against a live Heap+Env) and Lifter (lifter.go, building a
// Graph). A kernel that only calls these methods is, by construction,
// agnostic to which backend is interpreting it.
type Ctx interface {
	Input(name string) Handle
	ConstInt(n int64) Handle
	ConstNull() Handle
	GuardNonnull(v Handle) Handle
	GuardEq(a, b Handle) Handle
	Select(cond, then, els Handle) Handle
	Add(a, b Handle) Handle
	LoadPtr(v Handle) Handle
	LoadInt(v Handle) Handle
	GetField(v Handle, field int) Handle
	GetFieldInt(v Handle, field int) Handle
}

// Kernel is a small function expressed purely in terms of a Ctx's
// checked-pointer primitives — the unit of differential testing.
type Kernel func(c Ctx) Handle

// execCtx runs a Kernel eagerly against a live Heap+Env; its Handle is
// always an Eval.
type execCtx struct {
	heap *Heap
	env  Env
}

// RunKernel executes k directly through the checked runtime, without
// ever building a graph.
func RunKernel(k Kernel, heap *Heap, env Env) Eval {
	c := &execCtx{heap: heap, env: env}
	return asEval(k(c))
}

func asEval(h Handle) Eval { return h.(Eval) }

func (c *execCtx) Input(name string) Handle { return Input(name, c.env.Lookup(name)) }
func (c *execCtx) ConstInt(n int64) Handle  { return ConstInt(n) }
func (c *execCtx) ConstNull() Handle        { return ConstNull() }

func (c *execCtx) GuardNonnull(v Handle) Handle { return GuardNonnull(asEval(v)) }
func (c *execCtx) GuardEq(a, b Handle) Handle   { return GuardEq(asEval(a), asEval(b)) }

func (c *execCtx) Select(cond, then, els Handle) Handle {
	return Select(asEval(cond), asEval(then), asEval(els))
}

func (c *execCtx) Add(a, b Handle) Handle { return Add(asEval(a), asEval(b)) }

func (c *execCtx) LoadPtr(v Handle) Handle { return LoadPtr(c.heap, asEval(v)) }
func (c *execCtx) LoadInt(v Handle) Handle { return LoadInt(c.heap, asEval(v)) }

func (c *execCtx) GetField(v Handle, field int) Handle {
	return GetField(c.heap, asEval(v), field)
}

func (c *execCtx) GetFieldInt(v Handle, field int) Handle {
	return GetFieldInt(c.heap, asEval(v), field)
}

// --- Kernels ---
//
// These six mirror original_source/programs/kernels.c one-to-one.
// FieldChain and MixedFields were dropped by spec.md's distillation but
// are restored here (SPEC_FULL.md §4.5) since they are the only
// kernels exercising getfield/getfield_int and a guarded field-to-field
// chain.

// TripleDeref dereferences p three times through FIELD_DEREF.
func TripleDeref(c Ctx) Handle {
	vp := c.Input("p")
	v1 := c.LoadPtr(vp)
	v2 := c.LoadPtr(v1)
	v3 := c.LoadPtr(v2)
	return v3
}

// FieldChain reads p.FIELD_F, then the result's FIELD_G.
func FieldChain(c Ctx) Handle {
	vp := c.Input("p")
	v1 := c.GetField(vp, FieldF)
	v2 := c.GetField(v1, FieldG)
	return v2
}

// GuardedChain returns p->FIELD_DEREF->FIELD_DEREF when p is non-null,
// else 0.
func GuardedChain(c Ctx) Handle {
	vp := c.Input("p")
	cond := c.GuardNonnull(vp)
	thenV := c.LoadPtr(c.LoadPtr(vp))
	elseV := c.ConstInt(0)
	return c.Select(cond, thenV, elseV)
}

// AliasBranch loads through p if p == q, otherwise through q.
func AliasBranch(c Ctx) Handle {
	vp := c.Input("p")
	vq := c.Input("q")
	cond := c.GuardEq(vp, vq)
	thenV := c.LoadPtr(vp)
	elseV := c.LoadPtr(vq)
	return c.Select(cond, thenV, elseV)
}

// MixedFields reads p.FIELD_F; if that is non-null, reads its FIELD_G,
// else returns 0.
func MixedFields(c Ctx) Handle {
	vp := c.Input("p")
	pf := c.GetField(vp, FieldF)
	cond := c.GuardNonnull(pf)
	thenV := c.GetField(pf, FieldG)
	elseV := c.ConstInt(0)
	return c.Select(cond, thenV, elseV)
}

// AddTwo adds *p and *q.
func AddTwo(c Ctx) Handle {
	vp := c.Input("p")
	vq := c.Input("q")
	lp := c.LoadPtr(vp)
	lq := c.LoadPtr(vq)
	return c.Add(lp, lq)
}

// KernelSpec names a kernel together with the heap fields and env
// names it exercises, so the differential harness knows how to
// synthesize heaps/environments for it (mirrors original_source's
// driver/main.c Kernel table).
type KernelSpec struct {
	Name     string
	Fn       Kernel
	Fields   []int
	UseP     bool
	UseQ     bool
}

// Kernels is the full registry run by the differential harness.
var Kernels = []KernelSpec{
	{Name: "triple_deref", Fn: TripleDeref, Fields: []int{FieldDeref}, UseP: true, UseQ: false},
	{Name: "field_chain", Fn: FieldChain, Fields: []int{FieldF, FieldG, FieldDeref}, UseP: true, UseQ: false},
	{Name: "guarded_chain", Fn: GuardedChain, Fields: []int{FieldDeref}, UseP: true, UseQ: false},
	{Name: "alias_branch", Fn: AliasBranch, Fields: []int{FieldDeref}, UseP: true, UseQ: true},
	{Name: "mixed_fields", Fn: MixedFields, Fields: []int{FieldF, FieldG, FieldDeref}, UseP: true, UseQ: false},
	{Name: "add_two", Fn: AddTwo, Fields: []int{FieldDeref}, UseP: true, UseQ: true},
}
