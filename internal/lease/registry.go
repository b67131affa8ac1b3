package lease

import "sync"

// registry owns all mutable lease state. Every read that participates in an
// admission decision and every write must hold mu; Acquire, Release and Reap
// all serialize against each other through it.
type registry struct {
	mu         sync.RWMutex
	leases     map[string]*Lease
	usedMB     int64
	capacityMB int64 // fixed at construction, never recomputed
}

func newRegistry(capacityMB int64) *registry {
	return &registry{
		leases:     make(map[string]*Lease),
		capacityMB: capacityMB,
	}
}

// withLock runs fn with exclusive ownership of the registry state.
func (r *registry) withLock(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// insert registers l and charges its VRAM against usedMB. Caller holds mu.
func (r *registry) insert(l *Lease) {
	r.leases[l.ID] = l
	r.usedMB += l.VRAMMB
}

// remove deletes the lease with the given id and refunds its VRAM.
// Caller holds mu. Unknown ids return (nil, false) with no state change.
func (r *registry) remove(id string) (*Lease, bool) {
	l, ok := r.leases[id]
	if !ok {
		return nil, false
	}
	delete(r.leases, id)
	r.usedMB -= l.VRAMMB
	if r.usedMB < 0 {
		r.usedMB = 0
	}
	return l, true
}

// Snapshot is a copy-out view of the registry counters. Callers may hold it
// for any duration; it does not reference live state.
type Snapshot struct {
	UsedMB       int64
	CapacityMB   int64
	ActiveLeases int
}

func (r *registry) snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		UsedMB:       r.usedMB,
		CapacityMB:   r.capacityMB,
		ActiveLeases: len(r.leases),
	}
}

// audit recomputes usedMB from the live leases and reports whether the
// running counter agrees. Divergence indicates a locking bug; tests assert
// on it after every mutation sequence.
func (r *registry) audit() (sum int64, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.leases {
		sum += l.VRAMMB
	}
	return sum, sum == r.usedMB
}
