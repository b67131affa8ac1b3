// Package lease implements admission control over a fixed VRAM budget for
// model-loading work. It is structured into small files by concern:
//
//   - lease.go: the Lease record, id generation, expiry predicate.
//   - registry.go: the mutable state owner (leases map, usedMB, capacityMB)
//     and its single lock; copy-out snapshots.
//   - config.go: Config and package defaults; New applies defaults.
//   - manager.go: Manager construction plus Acquire/Release admission logic.
//   - reaper.go: the background expiry reaper and its start/stop lifecycle.
//   - status.go: Status/Leases reporting helpers.
//   - metrics.go: Prometheus gauges and counters for lease accounting.
//
// The manager never blocks waiting for capacity: Acquire returns an
// immediate grant or a structured denial with a retry hint, and Release is
// an idempotent no-op for unknown ids. The only background activity is the
// reaper, which must be started by the owning process and joined during
// shutdown via Stop.
//
// External packages should treat this package as the accounting core and
// use public methods only (New, Acquire, Release, Reap, Start, Stop,
// Snapshot, Status, Leases). Internal types are subject to change.
package lease
