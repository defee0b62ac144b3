package entity

import (
	"time"
)

// Evidence is an owner-submitted supporting record for one value,
// appended to a sub-collection scoped to the restaurant. Submission never
// changes certification tiers; verification is an administrative action.
type Evidence struct {
	ID          string    `json:"id" firestore:"id"`
	Slug        string    `json:"slug" firestore:"slug"`
	FileURLs    []string  `json:"file_urls" firestore:"fileURLs"`
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	SubmittedBy string    `json:"submitted_by" firestore:"submittedBy"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
}
