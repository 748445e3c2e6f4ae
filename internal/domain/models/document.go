package models

import (
	"fmt"
	"time"
)

// DocumentStatus is the publication state of a document. There is no enforced
// transition graph: an editor may set any status from any other status.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusPublished DocumentStatus = "published"
	StatusArchived  DocumentStatus = "archived"
)

// ParseDocumentStatus validates a status string from request input.
func ParseDocumentStatus(s string) (DocumentStatus, error) {
	switch DocumentStatus(s) {
	case StatusDraft, StatusPublished, StatusArchived:
		return DocumentStatus(s), nil
	default:
		return "", fmt.Errorf("unknown document status %q", s)
	}
}

// Document is the primary content entity. AuthorID and AuthorName are stamped
// from the principal at creation and never reassigned afterwards; AuthorName
// is a denormalized snapshot of the author at write time.
type Document struct {
	ID         string         `json:"id" db:"id"`
	Title      string         `json:"title" db:"title"`
	Content    string         `json:"content" db:"content"` // serialized rich-text markup
	Category   string         `json:"category" db:"category"`
	Status     DocumentStatus `json:"status" db:"status"`
	AuthorID   string         `json:"authorId" db:"author_id"`
	AuthorName string         `json:"authorName" db:"author_name"`
	Company    string         `json:"company" db:"company"` // client tag
	CreatedAt  time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time      `json:"updatedAt" db:"updated_at"`
}
