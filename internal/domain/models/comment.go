package models

import "time"

// Comment is an annotation on a document, optionally anchored to a section.
// Only the Resolved flag is mutable after creation.
type Comment struct {
	ID          string    `json:"id" db:"id"`
	DocumentID  string    `json:"documentId" db:"document_id"`
	AuthorID    string    `json:"authorId" db:"author_id"`
	AuthorName  string    `json:"authorName" db:"author_name"`
	Content     string    `json:"content" db:"content"`
	SectionID   *string   `json:"sectionId" db:"section_id"`     // anchor into the document
	SectionText *string   `json:"sectionText" db:"section_text"` // quoted excerpt
	Resolved    bool      `json:"resolved" db:"resolved"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
