package types

// AcquireRequest is the payload for POST /v1/leases.
type AcquireRequest struct {
	// Identifier of the requesting service. Informational only.
	Client string `json:"client"`
	// Name of the model/workload the VRAM is for. Informational only.
	Model string `json:"model,omitempty"`
	// Estimated VRAM needed in MB. Negative values are clamped to zero.
	VRAMEstimateMB int64 `json:"vram_estimate_mb"`
	// Recorded as metadata; never used for preemption or ordering.
	Priority int32 `json:"priority,omitempty"`
	// Lease time-to-live in seconds. Omitted or non-positive uses the
	// server default.
	TTLSeconds int32 `json:"ttl_seconds,omitempty"`
}

// AcquireResponse is the structured outcome of an acquire. A denial is a
// normal response, not an HTTP error.
type AcquireResponse struct {
	// Whether the lease was granted.
	Granted bool `json:"granted"`
	// Opaque lease identifier, present only when granted.
	LeaseID string `json:"lease_id,omitempty"`
	// VRAM actually reserved in MB (the sanitized estimate).
	VRAMReservedMB int64 `json:"vram_reserved_mb,omitempty"`
	// Denial reason, present only when denied.
	Reason string `json:"reason,omitempty"`
	// Advisory backoff before retrying, in milliseconds.
	RetryAfterMS int32 `json:"retry_after_ms,omitempty"`
}

// ReleaseResponse is returned by DELETE /v1/leases/{id}. Release is
// idempotent: unknown ids still report success.
type ReleaseResponse struct {
	Success bool `json:"success"`
}

// LeaseInfo summarizes one active lease for GET /v1/leases.
type LeaseInfo struct {
	LeaseID   string `json:"lease_id"`
	Client    string `json:"client"`
	Model     string `json:"model,omitempty"`
	VRAMMB    int64  `json:"vram_mb"`
	Priority  int32  `json:"priority"`
	CreatedMS int64  `json:"created_ms"`
	ExpiresMS int64  `json:"expires_ms"`
}

// LeasesResponse wraps the active lease listing.
type LeasesResponse struct {
	Leases []LeaseInfo `json:"leases"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// VRAM currently reserved by active leases, in MB.
	UsedMB int64 `json:"used_mb"`
	// Fixed leasable capacity in MB (90% of the configured soft limit).
	CapacityMB int64 `json:"capacity_mb"`
	// Number of currently active leases.
	ActiveLeases int `json:"active_leases"`
	// Reaper state: "running" or "stopped".
	Reaper string `json:"reaper"`
	// Seconds since the manager was constructed.
	UptimeS int64 `json:"uptime_s"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	Error string `json:"error"`
	// HTTP status code.
	Code int `json:"code"`
}
