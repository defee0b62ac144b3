package entity

import (
	"time"
)

const (
	UserTypeUser     = "user"
	UserTypeBusiness = "business"
	UserTypeAdmin    = "admin"
)

// User is created lazily on the first authenticated profile fetch, seeded
// from the verified identity claims.
type User struct {
	ID               string   `json:"uid" firestore:"uid"`
	Email            string   `json:"email" firestore:"email"`
	DisplayName      string   `json:"display_name,omitempty" firestore:"displayName"`
	PhotoURL         string   `json:"photo_url,omitempty" firestore:"photoURL"`
	UserType         string   `json:"user_type" firestore:"userType"`
	ValuePreferences []string `json:"value_preferences" firestore:"valuePreferences"`

	// ClaimedRestaurantID gates ownership-protected writes; empty means
	// the user holds no restaurant.
	ClaimedRestaurantID string `json:"claimed_restaurant_id,omitempty" firestore:"claimedRestaurantId"`

	ReportCount int       `json:"report_count" firestore:"reportCount"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Favorite is a bookmark in the user's favorites sub-collection, keyed by
// restaurant id with a denormalized snapshot for list rendering.
type Favorite struct {
	RestaurantID   string    `json:"restaurant_id" firestore:"restaurantId"`
	RestaurantName string    `json:"restaurant_name" firestore:"restaurantName"`
	RestaurantCity string    `json:"restaurant_city" firestore:"restaurantCity"`
	AddedAt        time.Time `json:"added_at" firestore:"addedAt"`
}
