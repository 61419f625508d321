package guardedgraph

// Rng is a deterministic xorshift32 generator used to synthesize heaps
// and environments for differential trials. It is intentionally not
// cryptographically secure or even statistically strong: reproducible
// trials from a seed matter far more here than distribution quality.
// Grounded on the original system's runtime/heap_gen.c rng_* helpers.
type Rng struct {
	state uint32
}

// NewRng seeds a generator. A zero seed is remapped to 1, matching the
// original generator (an all-zero xorshift state never advances).
func NewRng(seed uint32) *Rng {
	if seed == 0 {
		seed = 1
	}
	return &Rng{state: seed}
}

// Next advances the generator and returns the next word.
func (r *Rng) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Range returns a uniformly-ish distributed integer in [lo, hi].
func (r *Rng) Range(lo, hi int) int {
	span := hi - lo + 1
	return lo + int(r.Next()%uint32(span))
}

// Chance reports true with roughly the given percent probability.
func (r *Rng) Chance(percent int) bool {
	return int(r.Next()%100) < percent
}

// RandomizeHeap fills every object's given fields with random tagged
// values: a FIELD_DEREF slot is a pointer 70% of the time (10% of those
// null), any other field 50% of the time (same null chance); otherwise
// a small non-negative integer.
func RandomizeHeap(h *Heap, fields []int, rng *Rng) {
	for i := 0; i < h.NumObjs(); i++ {
		obj := &h.objs[i]
		for _, field := range fields {
			ptrChance := 50
			if field == FieldDeref {
				ptrChance = 70
			}
			var v V
			if rng.Chance(ptrChance) {
				if rng.Chance(10) {
					v = NullV()
				} else {
					v = PtrV(int64(rng.Range(1, h.NumObjs())))
				}
			} else {
				v = IntV(int64(rng.Range(0, 9)))
			}
			obj.SetField(field, v)
		}
	}
}

// RandomizeEnv fills an Env's used names with random pointers (10%
// chance of null); unused names are left Null.
func RandomizeEnv(numObjs int, rng *Rng, useP, useQ bool) Env {
	pick := func(use bool) V {
		if !use {
			return NullV()
		}
		if rng.Chance(10) {
			return NullV()
		}
		return PtrV(int64(rng.Range(1, numObjs)))
	}
	return Env{P: pick(useP), Q: pick(useQ)}
}
