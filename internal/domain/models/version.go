package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InitialVersionNumber is the number assigned to the version created
// atomically with its document.
const InitialVersionNumber = "1.0"

// InitialChangeDescription is the change description of that first version.
const InitialChangeDescription = "Initial version"

// Version is an immutable snapshot of a document's content. Versions are
// append-only: they are never updated, and only deleted as part of the
// cascade when the owning document is deleted.
type Version struct {
	ID                string    `json:"id" db:"id"`
	DocumentID        string    `json:"documentId" db:"document_id"`
	VersionNumber     string    `json:"versionNumber" db:"version_number"` // "major.minor"
	Content           string    `json:"content" db:"content"`
	AuthorID          string    `json:"authorId" db:"author_id"`
	AuthorName        string    `json:"authorName" db:"author_name"`
	ChangeDescription *string   `json:"changeDescription" db:"change_description"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

// ParseVersionNumber splits a "major.minor" string into its components.
// Malformed stored values are out of contract but must not fail a request,
// so anything unparseable degrades to 1.0.
func ParseVersionNumber(s string) (major, minor int) {
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return 1, 0
	}
	major, errMajor := strconv.Atoi(parts[0])
	minor, errMinor := strconv.Atoi(parts[1])
	if errMajor != nil || errMinor != nil || major < 1 || minor < 0 {
		return 1, 0
	}
	return major, minor
}

// NextVersionNumber derives the number for the version that follows prev.
// Only the minor component advances; the major component is constant.
func NextVersionNumber(prev string) string {
	major, minor := ParseVersionNumber(prev)
	return fmt.Sprintf("%d.%d", major, minor+1)
}
