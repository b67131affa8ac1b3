package lease

import (
	"time"

	"github.com/google/uuid"
)

// Lease is one outstanding VRAM reservation. Immutable after creation; the
// registry is the sole owner and hands out copies only.
type Lease struct {
	ID        string
	Client    string
	Model     string
	VRAMMB    int64
	Priority  int32 // recorded for observability; never used to evict or reorder
	CreatedMS int64
	ExpiresMS int64
}

// Expired reports whether the lease TTL has elapsed at nowMS.
func (l *Lease) Expired(nowMS int64) bool {
	return l.ExpiresMS <= nowMS
}

func newLeaseID() string {
	return uuid.NewString()
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}
