package storage

import (
	"time"

	"github.com/google/uuid"
)

// CommandAudit is one dispatched command as persisted for traceability.
type CommandAudit struct {
	ID        uuid.UUID `json:"id"`
	Seq       uint32    `json:"seq"`
	Kind      string    `json:"kind"`
	Result    string    `json:"result"`
	Operator  string    `json:"operator,omitempty"`
	Payload   []byte    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DiagnosticRecord is a persisted controller diagnostic message.
type DiagnosticRecord struct {
	ID         uuid.UUID `json:"id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProfileSnapshot is a stored copy of the active machine profile, taken
// whenever the axis configuration changes.
type ProfileSnapshot struct {
	ID         uuid.UUID `json:"id"`
	Profile    string    `json:"profile"`
	Generation int       `json:"generation"`
	Config     []byte    `json:"config"`
	CreatedAt  time.Time `json:"created_at"`
}
