package entity

import (
	"time"
)

const (
	ReportStatusActive    = "active"
	ReportStatusWithdrawn = "withdrawn"
)

// ReportCooldown is the rolling window during which a user may file at
// most one active report per restaurant.
const ReportCooldown = 30 * 24 * time.Hour

type Report struct {
	ID             string    `json:"id" firestore:"id"`
	RestaurantID   string    `json:"restaurant_id" firestore:"restaurantId"`
	RestaurantName string    `json:"restaurant_name" firestore:"restaurantName"`
	UserID         string    `json:"user_id" firestore:"userId"`
	Values         []string  `json:"values" firestore:"values"`
	Comment        string    `json:"comment,omitempty" firestore:"comment,omitempty"`
	Status         string    `json:"status" firestore:"status"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updated_at" firestore:"updatedAt"`
}

// NextAllowedAt is the instant at which the author may report the same
// restaurant again.
func (r *Report) NextAllowedAt() time.Time {
	return r.CreatedAt.Add(ReportCooldown)
}
