package identity

import "time"

// Owner is the internal identity behind an external customer identifier.
type Owner struct {
	ID          string
	CustomerXID string
	CreatedAt   time.Time
}
