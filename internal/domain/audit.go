package domain

import "time"

// Activity types recorded in the audit trail.
const (
	ActivityTransfer   = "TRANSFER"
	ActivityDeposit    = "DEPOSIT"
	ActivityWithdrawal = "WITHDRAWAL"
)

// Caller carries the request principal and its origin metadata.
//
// It is supplied explicitly by the delivery layer on every call;
// the core keeps no ambient request state.
type Caller struct {
	PrincipalID int64
	IP          string
	UserAgent   string
}

// AuditEvent describes one completed or failed operation for the audit trail.
type AuditEvent struct {
	ID           int64     `json:"id,omitempty"`
	ActorID      int64     `json:"actor_id"`
	ActivityType string    `json:"activity_type"`
	Description  string    `json:"description"`
	IPAddress    string    `json:"ip_address,omitempty"`
	UserAgent    string    `json:"user_agent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
