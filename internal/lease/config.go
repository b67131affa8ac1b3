package lease

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultTTLSeconds  = 30
	defaultReapEvery   = 1 * time.Second
	defaultStopTimeout = 5 * time.Second

	// 90% of the soft VRAM limit is made available for leasing; the
	// remainder stays as headroom for the runtime itself. Integer math so
	// the floor is exact.
	capacityNum = 9
	capacityDen = 10

	denyReason       = "Insufficient VRAM"
	denyRetryAfterMS = 250
)

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// SoftLimitMB is the configured VRAM soft limit. The leasable capacity
	// is floor(0.9 * SoftLimitMB), fixed for the manager's lifetime.
	SoftLimitMB int64
	// DefaultTTLSeconds is applied when an acquire omits ttl_seconds or
	// passes a non-positive value. Zero means the package default of 30.
	DefaultTTLSeconds int32
	// ReapEvery is the reaper tick interval. Expired leases are reclaimed
	// within one interval of their expiry. Zero means the package default.
	ReapEvery time.Duration
	// StopTimeout bounds how long Stop waits for the reap loop to exit.
	StopTimeout time.Duration
	// Logger receives grant/deny/release/reap events. Defaults to a no-op.
	Logger *zerolog.Logger
}

// New constructs a Manager from Config, applying package defaults for any
// unset field.
func New(cfg Config) *Manager {
	soft := cfg.SoftLimitMB
	if soft < 0 {
		soft = 0
	}
	m := &Manager{
		reg:       newRegistry(soft * capacityNum / capacityDen),
		startTime: time.Now(),
		log:       zerolog.Nop(),
	}
	if cfg.DefaultTTLSeconds <= 0 {
		m.defaultTTL = defaultTTLSeconds
	} else {
		m.defaultTTL = cfg.DefaultTTLSeconds
	}
	if cfg.ReapEvery <= 0 {
		m.reapEvery = defaultReapEvery
	} else {
		m.reapEvery = cfg.ReapEvery
	}
	if cfg.StopTimeout <= 0 {
		m.stopTimeout = defaultStopTimeout
	} else {
		m.stopTimeout = cfg.StopTimeout
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	}
	vramCapacityMB.Set(float64(m.reg.capacityMB))
	return m
}
