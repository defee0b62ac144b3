package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

type CertificationUseCase struct {
	restaurantRepo repository.RestaurantRepository
	valueRepo      repository.ValueRepository
}

func NewCertificationUseCase(
	restaurantRepo repository.RestaurantRepository,
	valueRepo repository.ValueRepository,
) *CertificationUseCase {
	return &CertificationUseCase{
		restaurantRepo: restaurantRepo,
		valueRepo:      valueRepo,
	}
}

// Certification is the per-restaurant read model of the ledger.
type Certification struct {
	RestaurantID     string                  `json:"restaurant_id"`
	Values           []entity.ValueAssertion `json:"values"`
	CertTierMax      int                     `json:"cert_tier_max"`
	TotalReportCount int                     `json:"total_report_count"`
}

func (uc *CertificationUseCase) Get(ctx context.Context, restaurantID string) (*Certification, error) {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	if err := uc.resolveLabels(ctx, restaurant); err != nil {
		return nil, err
	}

	return uc.certificationView(restaurant), nil
}

func (uc *CertificationUseCase) SelfAttest(ctx context.Context, restaurantID string, slugs []string) (*Certification, error) {
	for _, slug := range slugs {
		if _, err := uc.valueRepo.GetBySlug(ctx, slug); err != nil {
			if errors.Is(err, "NOT_FOUND") {
				return nil, errors.BadRequest(fmt.Sprintf("Value slug %q does not exist", slug), nil)
			}
			return nil, err
		}
	}

	restaurant, err := uc.restaurantRepo.SelfAttest(ctx, restaurantID, slugs)
	if err != nil {
		return nil, err
	}

	if err := uc.resolveLabels(ctx, restaurant); err != nil {
		return nil, err
	}

	return uc.certificationView(restaurant), nil
}

// SubmitEvidence appends a supporting record; it never touches tiers.
// Verified-tier promotion happens through a separate administrative
// workflow.
func (uc *CertificationUseCase) SubmitEvidence(ctx context.Context, restaurantID, uid, slug string, fileURLs []string, description string) error {
	restaurant, err := uc.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if restaurant.IsDeleted() {
		return errors.NotFound("Restaurant", nil)
	}

	if _, err := uc.valueRepo.GetBySlug(ctx, slug); err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.BadRequest(fmt.Sprintf("Value slug %q does not exist", slug), nil)
		}
		return err
	}

	evidence := &entity.Evidence{
		ID:          uuid.New().String(),
		Slug:        slug,
		FileURLs:    fileURLs,
		Description: description,
		SubmittedBy: uid,
		CreatedAt:   time.Now(),
	}

	return uc.restaurantRepo.AddEvidence(ctx, restaurantID, evidence)
}

// certificationView recomputes the max tier from the live assertion list
// with a floor of the self-attested tier, guarding against stored-field
// drift from out-of-band mutations.
func (uc *CertificationUseCase) certificationView(restaurant *entity.Restaurant) *Certification {
	max := entity.CertTierSelfAttested
	for _, v := range restaurant.Values {
		if v.CertTier > max {
			max = v.CertTier
		}
	}

	values := restaurant.Values
	if values == nil {
		values = []entity.ValueAssertion{}
	}

	return &Certification{
		RestaurantID:     restaurant.ID,
		Values:           values,
		CertTierMax:      max,
		TotalReportCount: restaurant.TotalReportCount,
	}
}

func (uc *CertificationUseCase) resolveLabels(ctx context.Context, restaurant *entity.Restaurant) error {
	if len(restaurant.ValueSlugs) == 0 {
		return nil
	}

	values, err := uc.valueRepo.GetBySlugs(ctx, restaurant.ValueSlugs)
	if err != nil {
		return err
	}

	for i := range restaurant.Values {
		if value, ok := values[restaurant.Values[i].Slug]; ok {
			restaurant.Values[i].Label = value.Label
		} else {
			restaurant.Values[i].Label = restaurant.Values[i].Slug
		}
	}

	return nil
}
