package guardedgraph

import "fmt"

// V is a tagged value: a single signed machine word representing one
// of Int, Ptr or Null. The encoding is part of the wire contract (see
// graph_wire.go and witness.go) and must stay bit-exact between the
// checked runtime and the graph evaluator: low bit 1 means the
// remaining bits (shifted right by one) are an integer payload; low
// bit 0 and nonzero means the remaining bits are a heap address; zero
// is Null.
type V int64

// NullV is the unique zero value.
func NullV() V { return V(0) }

// IntV tags n as an integer.
func IntV(n int64) V { return V((n << 1) | 1) }

// PtrV tags addr (a heap address, addr >= 1) as a pointer.
func PtrV(addr int64) V { return V(addr << 1) }

// IsInt reports whether v carries an integer payload.
func (v V) IsInt() bool { return v&1 != 0 }

// IsPtr reports whether v is a non-null pointer.
func (v V) IsPtr() bool { return v != 0 && v&1 == 0 }

// IsNull reports whether v is the null value.
func (v V) IsNull() bool { return v == 0 }

// IntValue returns the integer payload of v. Only valid when IsInt(v)
// holds; misuse is a programming error in the caller, not a value-level
// error, so it panics rather than returning an Eval.
func (v V) IntValue() int64 {
	if !v.IsInt() {
		panic(fmt.Sprintf("IntValue: %v is not an Int", v))
	}
	return int64(v) >> 1
}

// PtrAddr returns the heap address of v. Only valid when IsPtr(v) holds.
func (v V) PtrAddr() int64 {
	if !v.IsPtr() {
		panic(fmt.Sprintf("PtrAddr: %v is not a Ptr", v))
	}
	return int64(v) >> 1
}

// String renders v for logs and witness summaries: "null", a decimal
// integer, or "Ptr(addr)". Grounded on the original driver's
// format_value helper.
func (v V) String() string {
	switch {
	case v.IsNull():
		return "null"
	case v.IsInt():
		return fmt.Sprintf("%d", v.IntValue())
	default:
		return fmt.Sprintf("Ptr(%d)", v.PtrAddr())
	}
}
