package lease

import "github.com/prometheus/client_golang/prometheus"

var (
	vramUsedMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "vram_used_mb",
		Help:      "VRAM currently reserved by active leases, in MB",
	})

	vramCapacityMB = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "vram_capacity_mb",
		Help:      "Fixed leasable VRAM capacity, in MB",
	})

	activeLeases = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "active",
		Help:      "Number of currently active leases",
	})

	grantsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "grants_total",
		Help:      "Total leases granted",
	})

	denialsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "denials_total",
		Help:      "Total acquires denied for insufficient VRAM",
	})

	releasesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "releases_total",
		Help:      "Total explicit releases of live leases",
	})

	reapedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "modelops",
		Subsystem: "lease",
		Name:      "reaped_total",
		Help:      "Total leases reclaimed by the expiry reaper",
	})
)

func init() {
	prometheus.MustRegister(
		vramUsedMB, vramCapacityMB, activeLeases,
		grantsTotal, denialsTotal, releasesTotal, reapedTotal,
	)
}
