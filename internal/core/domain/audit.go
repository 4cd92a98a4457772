package domain

import "time"

// AuditAction names a state transition recorded in the audit trail.
type AuditAction string

const (
	AuditCreated     AuditAction = "created"
	AuditUpdated     AuditAction = "updated"
	AuditDeleted     AuditAction = "deleted"
	AuditActivated   AuditAction = "activated"
	AuditDeactivated AuditAction = "deactivated"
	AuditVerified    AuditAction = "verified"
	AuditCompleted   AuditAction = "completed"
	AuditRepriced    AuditAction = "repriced"
)

// AuditEntry records who changed which entity and how.
type AuditEntry struct {
	Entity    string
	Key       string
	Action    AuditAction
	Actor     string
	Timestamp time.Time
	Fields    []string // changed logical field names, optional
}
