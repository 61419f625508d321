package guardedgraph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// evalWire is the JSON shape of an Eval inside a witness: either
// {"ok": true, "value": N} or {"ok": false, "err": "..."}.
type evalWire struct {
	Ok    bool   `json:"ok"`
	Err   string `json:"err,omitempty"`
	Value int64  `json:"value,omitempty"`
}

func toEvalWire(e Eval) evalWire {
	if e.Ok {
		return evalWire{Ok: true, Value: int64(e.Value)}
	}
	return evalWire{Ok: false, Err: e.Err.String()}
}

// envWire mirrors Env's two named slots.
type envWire struct {
	P int64 `json:"p"`
	Q int64 `json:"q"`
}

// heapWire writes each object's present fields keyed by decimal field
// index, matching original_source/runtime/heap_gen.c's write_obj_json.
// Objs itself is keyed by decimal address rather than written as a
// position-ordered array the way heap_write_json emits it; the
// address-keyed shape round-trips the same information and tolerates a
// sparse heap without padding, at the cost of no longer being a
// byte-for-byte match of the original wire format (see SPEC_FULL.md
// §6.3).
type heapWire struct {
	NumObjs int                         `json:"num_objs"`
	Objs    map[string]map[string]int64 `json:"objs,omitempty"`
}

func toHeapWire(h *Heap) heapWire {
	w := heapWire{NumObjs: h.NumObjs()}
	if w.NumObjs == 0 {
		return w
	}
	w.Objs = make(map[string]map[string]int64, w.NumObjs)
	for addr := int64(1); addr <= int64(w.NumObjs); addr++ {
		obj := h.GetObj(addr)
		fields := map[string]int64{}
		for field := 0; field < MaxFields; field++ {
			if v, present := obj.GetField(field); present {
				fields[fmt.Sprintf("%d", field)] = int64(v)
			}
		}
		if len(fields) > 0 {
			w.Objs[fmt.Sprintf("%d", addr)] = fields
		}
	}
	return w
}

// Witness is one differential-testing trial's complete record: the
// inputs synthesized for a kernel, and the result of running it through
// both the checked runtime directly and through the lifted graph.
type Witness struct {
	Kernel string   `json:"kernel_name"`
	Env    envWire  `json:"env"`
	Heap   heapWire `json:"heap"`
	Direct evalWire `json:"kernel"`
	Graph  evalWire `json:"graph"`
}

// NewWitness builds a Witness from a trial's inputs and both results.
func NewWitness(kernelName string, env Env, heap *Heap, direct, graph Eval) Witness {
	return Witness{
		Kernel: kernelName,
		Env:    envWire{P: int64(env.P), Q: int64(env.Q)},
		Heap:   toHeapWire(heap),
		Direct: toEvalWire(direct),
		Graph:  toEvalWire(graph),
	}
}

// Agrees reports whether the direct and graph results are bit-for-bit
// identical, the differential harness's pass condition.
func (w Witness) Agrees() bool {
	return w.Direct == w.Graph
}

// ParseHeap reads a heap document in the witness format (§6.3) —
// {"num_objs": N, "objs": {"1": {"0": 5}}} — into a live Heap.
func ParseHeap(data []byte) (*Heap, error) {
	var w heapWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("parse heap: %w", err)
	}
	h := NewHeap(w.NumObjs)
	for addrStr, fields := range w.Objs {
		addr, err := strconv.ParseInt(addrStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse heap: bad object address %q: %w", addrStr, err)
		}
		obj := h.GetObj(addr)
		if obj == nil {
			return nil, fmt.Errorf("parse heap: object %d out of range for num_objs=%d", addr, w.NumObjs)
		}
		for fieldStr, raw := range fields {
			field, err := strconv.Atoi(fieldStr)
			if err != nil {
				return nil, fmt.Errorf("parse heap: bad field index %q: %w", fieldStr, err)
			}
			obj.SetField(field, V(raw))
		}
	}
	return h, nil
}

// ParseEnv reads an env document in the witness format — {"p": N, "q": M}.
func ParseEnv(data []byte) (Env, error) {
	var w envWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return Env{P: V(w.P), Q: V(w.Q)}, nil
}
