package lease

import "testing"

func TestRegistryInsertRemoveAccounting(t *testing.T) {
	r := newRegistry(1000)
	l1 := &Lease{ID: "a", VRAMMB: 400}
	l2 := &Lease{ID: "b", VRAMMB: 250}
	r.withLock(func() {
		r.insert(l1)
		r.insert(l2)
	})
	if s := r.snapshot(); s.UsedMB != 650 || s.ActiveLeases != 2 || s.CapacityMB != 1000 {
		t.Fatalf("unexpected snapshot: %+v", s)
	}
	var got *Lease
	var ok bool
	r.withLock(func() { got, ok = r.remove("a") })
	if !ok || got != l1 {
		t.Fatalf("remove returned (%v, %v)", got, ok)
	}
	if s := r.snapshot(); s.UsedMB != 250 || s.ActiveLeases != 1 {
		t.Fatalf("unexpected snapshot after remove: %+v", s)
	}
	if sum, ok := r.audit(); !ok {
		t.Fatalf("accounting drift: sum=%d used=%d", sum, r.snapshot().UsedMB)
	}
}

func TestRegistryRemoveUnknownIsNoop(t *testing.T) {
	r := newRegistry(1000)
	r.withLock(func() { r.insert(&Lease{ID: "a", VRAMMB: 100}) })
	var ok bool
	r.withLock(func() { _, ok = r.remove("missing") })
	if ok {
		t.Fatalf("expected remove of unknown id to report false")
	}
	if s := r.snapshot(); s.UsedMB != 100 || s.ActiveLeases != 1 {
		t.Fatalf("unknown remove mutated state: %+v", s)
	}
}

func TestSnapshotIsCopyOut(t *testing.T) {
	r := newRegistry(1000)
	r.withLock(func() { r.insert(&Lease{ID: "a", VRAMMB: 100}) })
	s := r.snapshot()
	r.withLock(func() { r.remove("a") })
	// The earlier snapshot is unaffected by later mutation.
	if s.UsedMB != 100 || s.ActiveLeases != 1 {
		t.Fatalf("snapshot not a copy: %+v", s)
	}
}

func TestLeaseExpiredBoundary(t *testing.T) {
	l := &Lease{ID: "a", CreatedMS: 1000, ExpiresMS: 2000}
	if l.Expired(1999) {
		t.Fatalf("lease expired before its deadline")
	}
	if !l.Expired(2000) {
		t.Fatalf("lease not expired at its deadline")
	}
	if !l.Expired(5000) {
		t.Fatalf("lease not expired past its deadline")
	}
}
