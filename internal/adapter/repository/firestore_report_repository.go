package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type firestoreReportRepository struct {
	client *firestore.Client
}

func NewFirestoreReportRepository(client *firestore.Client) repository.ReportRepository {
	return &firestoreReportRepository{
		client: client,
	}
}

func (r *firestoreReportRepository) GetActiveSince(ctx context.Context, userID, restaurantID string, since time.Time) (*entity.Report, error) {
	iter := r.client.Collection("reports").
		Where("userId", "==", userID).
		Where("restaurantId", "==", restaurantID).
		Where("status", "==", entity.ReportStatusActive).
		Where("createdAt", ">=", since).
		OrderBy("createdAt", firestore.Desc).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Internal("Failed to query active report", err)
	}

	var report entity.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, errors.Internal("Failed to parse report data", err)
	}

	return &report, nil
}

// SubmitWithAggregates serializes every concurrent submission touching the
// same restaurant document through the store's transaction retry. The
// cooldown window itself is checked by the caller before entering; a true
// same-user race can still slip through that advisory check.
func (r *firestoreReportRepository) SubmitWithAggregates(ctx context.Context, report *entity.Report) (*entity.Restaurant, error) {
	restaurantRef := r.client.Collection("restaurants").Doc(report.RestaurantID)
	userRef := r.client.Collection("users").Doc(report.UserID)
	reportRef := r.client.Collection("reports").NewDoc()

	var updated entity.Restaurant
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(restaurantRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Restaurant", err)
			}
			return err
		}

		var restaurant entity.Restaurant
		if err := doc.DataTo(&restaurant); err != nil {
			return err
		}
		if restaurant.IsDeleted() {
			return errors.NotFound("Restaurant", nil)
		}

		// All reads must happen before the first write.
		userDoc, err := tx.Get(userRef)
		userExists := err == nil
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		now := time.Now()

		restaurant.ApplyReports(report.Values)
		restaurant.TotalReportCount++
		restaurant.UpdatedAt = now

		report.ID = reportRef.ID
		report.RestaurantName = restaurant.Name
		report.Status = entity.ReportStatusActive
		report.CreatedAt = now
		report.UpdatedAt = now

		if err := tx.Set(reportRef, report); err != nil {
			return err
		}
		if err := tx.Set(restaurantRef, &restaurant); err != nil {
			return err
		}

		if userExists {
			var user entity.User
			if err := userDoc.DataTo(&user); err != nil {
				return err
			}
			user.ReportCount++
			user.UpdatedAt = now
			if err := tx.Set(userRef, &user); err != nil {
				return err
			}
		}

		updated = restaurant
		return nil
	})
	if err != nil {
		if appErr := appError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.Internal("Failed to submit report", err)
	}

	return &updated, nil
}

func (r *firestoreReportRepository) ListActiveByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Report, error) {
	iter := r.client.Collection("reports").
		Where("restaurantId", "==", restaurantID).
		Where("status", "==", entity.ReportStatusActive).
		Documents(ctx)

	var reports []*entity.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate reports", err)
		}

		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, errors.Internal("Failed to parse report data", err)
		}
		reports = append(reports, &report)
	}

	return reports, nil
}

func (r *firestoreReportRepository) ListByUser(ctx context.Context, userID, lastDocID string, limit int) ([]*entity.Report, bool, error) {
	query := r.client.Collection("reports").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)

	if lastDocID != "" {
		lastDoc, err := r.client.Collection("reports").Doc(lastDocID).Get(ctx)
		if err == nil && lastDoc.Exists() {
			query = query.StartAfter(lastDoc.Data()["createdAt"], lastDocID)
		}
	}

	docs, err := query.Limit(limit + 1).Documents(ctx).GetAll()
	if err != nil {
		return nil, false, errors.Internal("Failed to list user reports", err)
	}

	hasMore := len(docs) > limit
	if hasMore {
		docs = docs[:limit]
	}

	reports := make([]*entity.Report, 0, len(docs))
	for _, doc := range docs {
		var report entity.Report
		if err := doc.DataTo(&report); err != nil {
			return nil, false, errors.Internal("Failed to parse report data", err)
		}
		reports = append(reports, &report)
	}

	return reports, hasMore, nil
}
