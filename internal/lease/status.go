package lease

import (
	"sort"
	"time"

	"modelopsd/pkg/types"
)

// Status builds the accounting summary for /status.
func (m *Manager) Status() types.StatusResponse {
	s := m.reg.snapshot()
	state := "stopped"
	if m.Running() {
		state = "running"
	}
	return types.StatusResponse{
		UsedMB:       s.UsedMB,
		CapacityMB:   s.CapacityMB,
		ActiveLeases: s.ActiveLeases,
		Reaper:       state,
		UptimeS:      int64(time.Since(m.startTime).Seconds()),
	}
}

// Leases returns a copy of the active lease set for operator listings,
// sorted by creation time. The copies do not alias registry state.
func (m *Manager) Leases() []types.LeaseInfo {
	var out []types.LeaseInfo
	m.reg.mu.RLock()
	out = make([]types.LeaseInfo, 0, len(m.reg.leases))
	for _, l := range m.reg.leases {
		out = append(out, types.LeaseInfo{
			LeaseID:   l.ID,
			Client:    l.Client,
			Model:     l.Model,
			VRAMMB:    l.VRAMMB,
			Priority:  l.Priority,
			CreatedMS: l.CreatedMS,
			ExpiresMS: l.ExpiresMS,
		})
	}
	m.reg.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedMS != out[j].CreatedMS {
			return out[i].CreatedMS < out[j].CreatedMS
		}
		return out[i].LeaseID < out[j].LeaseID
	})
	return out
}

// Ready reports whether the manager can serve traffic: the reaper must be
// running so expired leases are actually reclaimed.
func (m *Manager) Ready() bool {
	return m.Running()
}
