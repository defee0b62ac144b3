package repository

import (
	"context"
	"time"

	"neighbo/internal/domain/entity"
)

type ReportRepository interface {
	// GetActiveSince returns the caller's most recent active report for
	// the restaurant created at or after the given instant, or nil when
	// there is none.
	GetActiveSince(ctx context.Context, userID, restaurantID string, since time.Time) (*entity.Report, error)

	// SubmitWithAggregates creates the report and applies every dependent
	// aggregate update (per-value report counts and tier promotion, the
	// restaurant's total, the author's counter) in a single transaction.
	// The report's id, name snapshot and creation time are assigned
	// inside; the updated restaurant is returned.
	SubmitWithAggregates(ctx context.Context, report *entity.Report) (*entity.Restaurant, error)

	// ListActiveByRestaurant returns every active report for a
	// restaurant. Unpaginated by design; callers aggregate the full set.
	ListActiveByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Report, error)

	// ListByUser returns the author's reports newest first, keyset
	// paginated.
	ListByUser(ctx context.Context, userID, lastDocID string, limit int) ([]*entity.Report, bool, error)
}
