// Package entry defines the research log entry domain types shared by the
// store, the correlation engine and the HTTP layer.
package entry

import "time"

// Category is the fixed classification set for logged entries.
type Category string

const (
	CategoryTerminology  Category = "Terminology"
	CategoryEvent        Category = "Event"
	CategoryLawPolicy    Category = "Law/Policy"
	CategoryTechResearch Category = "Tech Research"
	CategoryOther        Category = "Other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTerminology, CategoryEvent, CategoryLawPolicy, CategoryTechResearch, CategoryOther:
		return true
	}
	return false
}

// Entry is a single logged item: a deepfake-related event, a term, a policy
// document, or a piece of research. ID and TimeAdded are assigned once by the
// store and never mutated afterwards.
type Entry struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Category       Category  `json:"category"`
	Tags           []string  `json:"tags"`
	Comments       string    `json:"comments"`
	AttachmentURL  string    `json:"attachmentURL"`
	AttachmentFile string    `json:"attachmentFile"`
	ThumbnailURL   string    `json:"thumbnailURL"`
	TimeAdded      time.Time `json:"timeAdded"`
	TimeOccurred   time.Time `json:"timeOccurred"`
	SubmittedBy    string    `json:"submittedBy"`

	// RelatedIDs holds ids the author manually declared as connected.
	// Entries may reference ids that no longer exist in the working set.
	RelatedIDs []string `json:"relatedEntries"`
}

// CreateInput carries the fields accepted when logging a new entry.
type CreateInput struct {
	Title          string    `json:"title"`
	Category       Category  `json:"category" binding:"required"`
	Tags           []string  `json:"tags"`
	Comments       string    `json:"comments"`
	AttachmentURL  string    `json:"attachmentURL"`
	AttachmentFile string    `json:"attachmentFile"`
	ThumbnailURL   string    `json:"thumbnailURL"`
	TimeOccurred   time.Time `json:"timeOccurred"`
	SubmittedBy    string    `json:"-"`
	RelatedIDs     []string  `json:"relatedEntries"`
}

// UpdateInput carries a partial edit. Nil fields are left untouched;
// ID and TimeAdded are immutable and have no counterpart here.
type UpdateInput struct {
	Title          *string    `json:"title"`
	Category       *Category  `json:"category"`
	Tags           *[]string  `json:"tags"`
	Comments       *string    `json:"comments"`
	AttachmentURL  *string    `json:"attachmentURL"`
	AttachmentFile *string    `json:"attachmentFile"`
	ThumbnailURL   *string    `json:"thumbnailURL"`
	TimeOccurred   *time.Time `json:"timeOccurred"`
	RelatedIDs     *[]string  `json:"relatedEntries"`
}
