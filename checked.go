package guardedgraph

// ErrKind is the closed set of error kinds a checked-runtime primitive
// or graph node can produce.
type ErrKind int

const (
	ErrNone ErrKind = iota
	ErrNull
	ErrInvalid
	ErrType
	ErrMissingField
)

func (e ErrKind) String() string {
	return map[ErrKind]string{
		ErrNone:         "none",
		ErrNull:         "null",
		ErrInvalid:      "invalid",
		ErrType:         "type",
		ErrMissingField: "missing_field",
	}[e]
}

// Eval is the universal result of every checked-runtime primitive and
// every graph node: either an ok tagged value, or a typed error. It
// carries no execution context and never traps.
type Eval struct {
	Ok    bool
	Err   ErrKind
	Value V
}

// OkEval wraps v as a successful result.
func OkEval(v V) Eval { return Eval{Ok: true, Value: v} }

// ErrEval constructs a failed result carrying err.
func ErrEval(err ErrKind) Eval { return Eval{Ok: false, Err: err} }

// String renders an Eval for logs and CLI output: either the wrapped
// value's own String(), or "err(<kind>)".
func (e Eval) String() string {
	if e.Ok {
		return e.Value.String()
	}
	return "err(" + e.Err.String() + ")"
}

// Input returns the tagged value already resolved for name. The name
// is informational only (it does not affect the result), matching the
// runtime's treatment of ck_input in the original system.
func Input(name string, tagged V) Eval { return OkEval(tagged) }

// ConstInt returns a constant integer value.
func ConstInt(n int64) Eval { return OkEval(IntV(n)) }

// ConstNull returns the null value.
func ConstNull() Eval { return OkEval(NullV()) }

// GuardNonnull is the kernel-level boolean guard: errors propagate
// first, then an Int operand is a type error, otherwise it returns
// Int(1) for a non-null pointer and Int(0) for Null. This is distinct
// from the graph's pointer-valued guard_nonnull node — see lifter.go.
func GuardNonnull(v Eval) Eval {
	if !v.Ok {
		return v
	}
	if v.Value.IsInt() {
		return ErrEval(ErrType)
	}
	if v.Value.IsNull() {
		return OkEval(IntV(0))
	}
	return OkEval(IntV(1))
}

// GuardEq compares two operands for bit-identical tagged-word equality.
func GuardEq(a, b Eval) Eval {
	if !a.Ok {
		return a
	}
	if !b.Ok {
		return b
	}
	if a.Value == b.Value {
		return OkEval(IntV(1))
	}
	return OkEval(IntV(0))
}

// Select is strict: the caller must have already evaluated then and
// els before calling Select (both must be fully computed Eval values);
// only cond's error, or a non-boolean cond, short-circuits here.
func Select(cond, then, els Eval) Eval {
	if !cond.Ok {
		return cond
	}
	if !cond.Value.IsInt() {
		return ErrEval(ErrType)
	}
	switch cond.Value.IntValue() {
	case 1:
		return then
	case 0:
		return els
	default:
		return ErrEval(ErrType)
	}
}

// Add requires both operands to be integers; overflow wraps silently
// via Go's two's-complement int64 arithmetic.
func Add(a, b Eval) Eval {
	if !a.Ok {
		return a
	}
	if !b.Ok {
		return b
	}
	if !a.Value.IsInt() || !b.Value.IsInt() {
		return ErrEval(ErrType)
	}
	return OkEval(IntV(a.Value.IntValue() + b.Value.IntValue()))
}

// loadField is the shared implementation behind LoadPtr, LoadInt,
// GetField and GetFieldInt: it enforces the error priority upstream
// error, Type (integer operand), Null, Invalid (address out of
// range), MissingField (absent slot), in that order.
func loadField(h *Heap, ptr Eval, field int, requireInt bool) Eval {
	if !ptr.Ok {
		return ptr
	}
	if ptr.Value.IsInt() {
		return ErrEval(ErrType)
	}
	if ptr.Value.IsNull() {
		return ErrEval(ErrNull)
	}
	obj := h.GetObj(ptr.Value.PtrAddr())
	if obj == nil {
		return ErrEval(ErrInvalid)
	}
	value, present := obj.GetField(field)
	if !present {
		return ErrEval(ErrMissingField)
	}
	if requireInt && !value.IsInt() {
		return ErrEval(ErrType)
	}
	return OkEval(value)
}

// LoadPtr dereferences ptr, reading the FIELD_DEREF slot.
func LoadPtr(h *Heap, ptr Eval) Eval { return loadField(h, ptr, FieldDeref, false) }

// LoadInt is LoadPtr plus a further requirement that the loaded word
// is an integer.
func LoadInt(h *Heap, ptr Eval) Eval { return loadField(h, ptr, FieldDeref, true) }

// GetField dereferences ptr at an explicit field index.
func GetField(h *Heap, ptr Eval, field int) Eval { return loadField(h, ptr, field, false) }

// GetFieldInt is GetField plus a requirement that the loaded word is
// an integer.
func GetFieldInt(h *Heap, ptr Eval, field int) Eval { return loadField(h, ptr, field, true) }
