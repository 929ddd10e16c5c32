package particles

import "fmt"

// Pool is fixed-capacity contiguous particle storage partitioned into a
// dense alive prefix and a free suffix. All storage is reserved up front;
// no operation allocates after construction.
//
// Release swaps the released slot with the last alive one to keep the alive
// region dense. That reorders the alive sequence, so consumers must not
// assume particle index stability across frames. Particles are visually
// interchangeable, which makes the reorder acceptable.
type Pool struct {
	slots []Particle
	alive int
}

// NewPool returns a pool with the given fixed capacity.
func NewPool(capacity int) (*Pool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Pool{slots: make([]Particle, capacity)}, nil
}

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int { return len(p.slots) }

// Alive returns the current alive-particle count.
func (p *Pool) Alive() int { return p.alive }

// Acquire returns a free slot, or false when the pool is exhausted.
// Exhaustion is not an error: the caller drops the spawn.
// The returned slot still holds the previous occupant's fields; the caller
// fully initializes it.
func (p *Pool) Acquire() (*Particle, bool) {
	if p.alive >= len(p.slots) {
		return nil, false
	}
	pt := &p.slots[p.alive]
	p.alive++
	return pt, true
}

// Release returns the alive slot at index i to the free set by swapping it
// with the last alive slot. O(1).
func (p *Pool) Release(i int) {
	if i < 0 || i >= p.alive {
		return
	}
	p.alive--
	p.slots[i] = p.slots[p.alive]
}

// At returns the alive particle at index i. Valid for i < Alive().
func (p *Pool) At(i int) *Particle { return &p.slots[i] }

// ForEachAlive runs fn over every alive particle in a single deterministic
// pass. The order is insertion/swap order, not spawn order. fn must not
// release slots; retirement uses indexed iteration instead.
func (p *Pool) ForEachAlive(fn func(pt *Particle)) {
	for i := 0; i < p.alive; i++ {
		fn(&p.slots[i])
	}
}

// Reset returns every slot to the free set.
func (p *Pool) Reset() { p.alive = 0 }
