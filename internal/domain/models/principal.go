package models

import "fmt"

// Role is the single authorization axis. There are no per-document ACLs;
// everything a principal may do follows from its role plus authorship.
type Role string

const (
	RoleReader Role = "reader"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

// ParseRole validates a role string coming from a token claim.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleReader, RoleEditor, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Principal is the authenticated actor performing an operation.
// It is resolved once per request by the auth middleware and is immutable
// for the lifetime of that request. Name is the display name carried by the
// token; it is denormalized into authorName/userName fields at write time.
type Principal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
