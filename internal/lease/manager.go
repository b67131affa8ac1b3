package lease

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Manager is the admission controller over a fixed VRAM capacity. It is
// constructed once by the coordinator and injected into each transport
// front-end; all front-ends share the same instance.
type Manager struct {
	reg        *registry
	defaultTTL int32
	startTime  time.Time
	log        zerolog.Logger

	// Reaper lifecycle
	reapEvery   time.Duration
	stopTimeout time.Duration
	runMu       sync.Mutex
	runState    reaperState
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// Grant is the structured outcome of an Acquire. Denial is a normal result
// under load, not an error.
type Grant struct {
	Granted        bool
	LeaseID        string
	VRAMReservedMB int64
	Reason         string
	RetryAfterMS   int32
}

// ReleaseResult is the structured outcome of a Release. Success is always
// true; the field exists for wire symmetry with Grant.
type ReleaseResult struct {
	Success bool
}

// Acquire decides admission for a new lease. Negative VRAM estimates are
// clamped to zero and non-positive TTLs fall back to the default; neither is
// an error. The capacity check and the reservation are one critical section,
// so concurrent acquires can never oversubscribe the budget. The call never
// waits for capacity to free up.
func (m *Manager) Acquire(client, model string, vramEstimateMB int64, priority int32, ttlSeconds int32) Grant {
	want := vramEstimateMB
	if want < 0 {
		want = 0
	}
	ttl := ttlSeconds
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	var g Grant
	m.reg.withLock(func() {
		if m.reg.usedMB+want > m.reg.capacityMB {
			g = Grant{Reason: denyReason, RetryAfterMS: denyRetryAfterMS}
			return
		}
		now := nowMS()
		l := &Lease{
			ID:        newLeaseID(),
			Client:    client,
			Model:     model,
			VRAMMB:    want,
			Priority:  priority,
			CreatedMS: now,
			ExpiresMS: now + int64(ttl)*1000,
		}
		m.reg.insert(l)
		g = Grant{Granted: true, LeaseID: l.ID, VRAMReservedMB: want}
	})

	if g.Granted {
		grantsTotal.Inc()
		m.log.Debug().Str("lease_id", g.LeaseID).Str("client", client).Str("model", model).
			Int64("vram_mb", g.VRAMReservedMB).Int32("ttl_s", ttl).Msg("lease granted")
	} else {
		denialsTotal.Inc()
		m.log.Debug().Str("client", client).Str("model", model).
			Int64("vram_mb", want).Msg("lease denied: insufficient VRAM")
	}
	m.observe()
	return g
}

// Release removes the lease with the given id and refunds its VRAM. Unknown
// ids (already released, expired, or never valid) are a harmless no-op still
// reported as success, so callers can retry without tracking outcomes.
func (m *Manager) Release(leaseID string) ReleaseResult {
	var freed *Lease
	m.reg.withLock(func() {
		freed, _ = m.reg.remove(leaseID)
	})
	if freed != nil {
		releasesTotal.Inc()
		m.log.Debug().Str("lease_id", freed.ID).Str("client", freed.Client).
			Int64("vram_mb", freed.VRAMMB).Msg("lease released")
		m.observe()
	}
	return ReleaseResult{Success: true}
}

// Snapshot returns a copy-out view of the accounting counters.
func (m *Manager) Snapshot() Snapshot {
	return m.reg.snapshot()
}

// observe pushes current counters to the lease gauges.
func (m *Manager) observe() {
	s := m.reg.snapshot()
	vramUsedMB.Set(float64(s.UsedMB))
	activeLeases.Set(float64(s.ActiveLeases))
}
