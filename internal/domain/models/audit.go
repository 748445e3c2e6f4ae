package models

import (
	"fmt"
	"time"
)

// AuditAction identifies the kind of state change an audit entry records.
type AuditAction string

const (
	ActionCreated   AuditAction = "created"
	ActionUpdated   AuditAction = "updated"
	ActionDeleted   AuditAction = "deleted"
	ActionViewed    AuditAction = "viewed"
	ActionCommented AuditAction = "commented"
)

// ParseAuditAction validates an action string.
func ParseAuditAction(s string) (AuditAction, error) {
	switch AuditAction(s) {
	case ActionCreated, ActionUpdated, ActionDeleted, ActionViewed, ActionCommented:
		return AuditAction(s), nil
	default:
		return "", fmt.Errorf("unknown audit action %q", s)
	}
}

// AuditEntry records who did what, when. Entries are strictly append-only:
// no code path updates or deletes one. DocumentID is nullable so that
// non-document actions can be recorded, and entries outlive the documents
// they reference.
type AuditEntry struct {
	ID         string      `json:"id" db:"id"`
	DocumentID *string     `json:"documentId" db:"document_id"`
	UserID     string      `json:"userId" db:"user_id"`
	UserName   string      `json:"userName" db:"user_name"`
	Action     AuditAction `json:"action" db:"action"`
	Details    string      `json:"details" db:"details"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}
