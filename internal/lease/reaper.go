package lease

import (
	"errors"
	"time"
)

// reaperState tracks the background reaper lifecycle:
// stopped -> running -> stopping -> stopped.
type reaperState int

const (
	reaperStopped reaperState = iota
	reaperRunning
	reaperStopping
)

// ErrAlreadyRunning is returned by Start when the reaper is not stopped.
var ErrAlreadyRunning = errors.New("lease reaper already running")

// Start launches the background expiry reaper. A failure to start is the
// coordinator's problem to surface at startup; it is never swallowed here.
func (m *Manager) Start() error {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.runState != reaperStopped {
		return ErrAlreadyRunning
	}
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	m.runState = reaperRunning
	go m.reapLoop(m.stopCh, m.doneCh)
	m.log.Info().Dur("every", m.reapEvery).Msg("lease reaper started")
	return nil
}

// Stop signals the reap loop to exit and waits, bounded by the configured
// stop timeout, for it to terminate. Safe to call when already stopped.
// After Stop returns no background work remains.
func (m *Manager) Stop() {
	m.runMu.Lock()
	if m.runState != reaperRunning {
		m.runMu.Unlock()
		return
	}
	m.runState = reaperStopping
	close(m.stopCh)
	done := m.doneCh
	m.runMu.Unlock()

	select {
	case <-done:
	case <-time.After(m.stopTimeout):
		m.log.Warn().Msg("lease reaper did not stop within timeout")
	}

	m.runMu.Lock()
	m.runState = reaperStopped
	m.runMu.Unlock()
	m.log.Info().Msg("lease reaper stopped")
}

// Running reports whether the reaper loop is active.
func (m *Manager) Running() bool {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	return m.runState == reaperRunning
}

func (m *Manager) reapLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(m.reapEvery)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			m.Reap(nowMS())
		}
	}
}

// Reap removes every lease whose TTL has elapsed at now and refunds its
// VRAM. One pass is one critical section under the registry lock, so it is
// safe to run concurrently with Acquire/Release. Returns the number of
// leases reclaimed.
func (m *Manager) Reap(now int64) int {
	var reaped []*Lease
	m.reg.withLock(func() {
		for id, l := range m.reg.leases {
			if l.Expired(now) {
				delete(m.reg.leases, id)
				m.reg.usedMB -= l.VRAMMB
				reaped = append(reaped, l)
			}
		}
		if m.reg.usedMB < 0 {
			m.reg.usedMB = 0
		}
	})
	if len(reaped) == 0 {
		return 0
	}
	reapedTotal.Add(float64(len(reaped)))
	for _, l := range reaped {
		m.log.Debug().Str("lease_id", l.ID).Str("client", l.Client).
			Int64("vram_mb", l.VRAMMB).Msg("lease expired, reclaimed")
	}
	m.observe()
	return len(reaped)
}
