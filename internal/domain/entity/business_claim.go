package entity

import (
	"time"
)

const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// BusinessClaim is a user's assertion of ownership over a restaurant
// listing. At most one pending claim exists per (restaurant, user) pair.
type BusinessClaim struct {
	ID                  string    `json:"id" firestore:"id"`
	RestaurantID        string    `json:"restaurant_id" firestore:"restaurantId"`
	RestaurantName      string    `json:"restaurant_name" firestore:"restaurantName"`
	UserID              string    `json:"user_id" firestore:"userId"`
	UserEmail           string    `json:"user_email" firestore:"userEmail"`
	OwnerName           string    `json:"owner_name" firestore:"ownerName"`
	Role                string    `json:"role" firestore:"role"`
	Phone               string    `json:"phone" firestore:"phone"`
	Email               string    `json:"email" firestore:"email"`
	EvidenceDescription string    `json:"evidence_description,omitempty" firestore:"evidenceDescription,omitempty"`
	EvidenceFileURLs    []string  `json:"evidence_file_urls" firestore:"evidenceFileURLs"`
	Status              string    `json:"status" firestore:"status"`
	CreatedAt           time.Time `json:"created_at" firestore:"createdAt"`
}
