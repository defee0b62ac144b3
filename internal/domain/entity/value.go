package entity

import (
	"time"
)

// Value is one entry of the externally owned value catalog. The document
// id doubles as the slug.
type Value struct {
	Slug        string `json:"slug" firestore:"slug"`
	Label       string `json:"label" firestore:"label"`
	Description string `json:"description,omitempty" firestore:"description,omitempty"`
	Icon        string `json:"icon,omitempty" firestore:"icon,omitempty"`
	Category    string `json:"category" firestore:"category"`
	Active      bool   `json:"active" firestore:"active"`
	SortOrder   int    `json:"sort_order" firestore:"sortOrder"`

	// RestaurantCount is a best-effort denormalized counter bumped on
	// restaurant creation; it is never read back for business decisions.
	RestaurantCount int `json:"restaurant_count" firestore:"restaurantCount"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
