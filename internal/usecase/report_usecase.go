package usecase

import (
	"context"
	"time"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type ReportUseCase struct {
	reportRepo     repository.ReportRepository
	restaurantRepo repository.RestaurantRepository
}

func NewReportUseCase(
	reportRepo repository.ReportRepository,
	restaurantRepo repository.RestaurantRepository,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:     reportRepo,
		restaurantRepo: restaurantRepo,
	}
}

// UserReportCheck tells a user where they stand in the per-restaurant
// reporting cooldown.
type UserReportCheck struct {
	HasActiveReport     bool       `json:"has_active_report"`
	ReportedValues      []string   `json:"reported_values"`
	NextReportAllowedAt *time.Time `json:"next_report_allowed_at"`
}

type SubmitReportResult struct {
	Report              *entity.Report `json:"report"`
	NextReportAllowedAt time.Time      `json:"next_report_allowed_at"`
}

// ReportAggregate is the read-only tally of all active reports for one
// restaurant.
type ReportAggregate struct {
	ValueCounts  map[string]int `json:"value_counts"`
	TotalReports int            `json:"total_reports"`
}

func (uc *ReportUseCase) CheckMine(ctx context.Context, uid, restaurantID string) (*UserReportCheck, error) {
	since := time.Now().Add(-entity.ReportCooldown)
	active, err := uc.reportRepo.GetActiveSince(ctx, uid, restaurantID, since)
	if err != nil {
		return nil, err
	}

	if active == nil {
		return &UserReportCheck{
			HasActiveReport: false,
			ReportedValues:  []string{},
		}, nil
	}

	next := active.NextAllowedAt()
	return &UserReportCheck{
		HasActiveReport:     true,
		ReportedValues:      active.Values,
		NextReportAllowedAt: &next,
	}, nil
}

func (uc *ReportUseCase) Submit(ctx context.Context, uid, restaurantID string, values []string, comment string) (*SubmitReportResult, error) {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	// Advisory cooldown check for a friendly rejection before entering
	// the transaction. Two truly simultaneous submissions from one user
	// can both pass it; the transaction still serializes the aggregate
	// updates.
	since := time.Now().Add(-entity.ReportCooldown)
	active, err := uc.reportRepo.GetActiveSince(ctx, uid, restaurantID, since)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, errors.TooManyRequests(
			"You have already reported this restaurant in the last 30 days",
			active.NextAllowedAt(),
		)
	}

	report := &entity.Report{
		RestaurantID: restaurantID,
		UserID:       uid,
		Values:       values,
		Comment:      comment,
	}

	if _, err := uc.reportRepo.SubmitWithAggregates(ctx, report); err != nil {
		return nil, err
	}

	return &SubmitReportResult{
		Report:              report,
		NextReportAllowedAt: report.NextAllowedAt(),
	}, nil
}

// Aggregate scans every active report for the restaurant. Unpaginated;
// cost grows with report volume, acceptable at this system's scale.
func (uc *ReportUseCase) Aggregate(ctx context.Context, restaurantID string) (*ReportAggregate, error) {
	reports, err := uc.reportRepo.ListActiveByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	aggregate := &ReportAggregate{
		ValueCounts:  make(map[string]int),
		TotalReports: len(reports),
	}
	for _, report := range reports {
		for _, slug := range report.Values {
			aggregate.ValueCounts[slug]++
		}
	}

	return aggregate, nil
}
