// Package policy contains the access decisions for the whole application.
// Every function is a pure predicate over (principal, document): no I/O, no
// mutation, no errors. Callers translate a false result into an authorization
// failure at their own boundary.
package policy

import (
	"vellum/internal/domain/models"
	"vellum/internal/roles"
)

// Policy evaluates access decisions against the role capability registry.
type Policy struct {
	registry *roles.Registry
}

// New creates a policy backed by the given registry.
func New(registry *roles.Registry) *Policy {
	return &Policy{registry: registry}
}

// CanViewDocument reports whether the principal may read the document:
// admins see everything, authors see their own work, and published documents
// are visible to every authenticated principal. A nil principal never sees
// anything; unauthenticated access must be rejected upstream, never defaulted
// to a role.
func (p *Policy) CanViewDocument(principal *models.Principal, doc *models.Document) bool {
	if principal == nil || doc == nil {
		return false
	}
	if p.registry.Get(principal.Role).ViewAll {
		return true
	}
	if doc.AuthorID == principal.ID {
		return true
	}
	return doc.Status == models.StatusPublished
}

// FilterVisible returns the subset of docs the principal may view, preserving
// order. Principals that may view everything short-circuit to the input.
func (p *Policy) FilterVisible(principal *models.Principal, docs []models.Document) []models.Document {
	if principal == nil {
		return nil
	}
	if p.registry.Get(principal.Role).ViewAll {
		return docs
	}

	visible := make([]models.Document, 0, len(docs))
	for i := range docs {
		if p.CanViewDocument(principal, &docs[i]) {
			visible = append(visible, docs[i])
		}
	}
	return visible
}

// CanCreateOrEdit reports whether the principal may create documents or edit
// ones it can see.
func (p *Policy) CanCreateOrEdit(principal *models.Principal) bool {
	if principal == nil {
		return false
	}
	return p.registry.Get(principal.Role).EditDocuments
}

// CanDelete reports whether the principal may delete documents. Deletion is
// strictly more privileged than editing: edits are versioned and recoverable,
// deletion is not.
func (p *Policy) CanDelete(principal *models.Principal) bool {
	if principal == nil {
		return false
	}
	return p.registry.Get(principal.Role).DeleteDocuments
}

// CanManageUsers reports whether the principal may administer user accounts.
func (p *Policy) CanManageUsers(principal *models.Principal) bool {
	if principal == nil {
		return false
	}
	return p.registry.Get(principal.Role).ManageUsers
}

// CanViewAudit reports whether the principal may read the audit log.
func (p *Policy) CanViewAudit(principal *models.Principal) bool {
	if principal == nil {
		return false
	}
	return p.registry.Get(principal.Role).ViewAudit
}
