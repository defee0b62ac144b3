package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"neighbo/internal/domain/entity"
	"neighbo/internal/domain/repository"
	"neighbo/pkg/errors"
)

// In-memory repository fakes mirroring the Firestore adapters' observable
// behavior, including transactional aggregate updates.

type fakeRestaurantRepo struct {
	restaurants map[string]*entity.Restaurant
	evidence    map[string][]*entity.Evidence
	nextID      int
}

func newFakeRestaurantRepo() *fakeRestaurantRepo {
	return &fakeRestaurantRepo{
		restaurants: make(map[string]*entity.Restaurant),
		evidence:    make(map[string][]*entity.Evidence),
	}
}

func (f *fakeRestaurantRepo) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	f.nextID++
	restaurant.ID = fmt.Sprintf("rest-%03d", f.nextID)
	restaurant.CreatedAt = time.Now()
	restaurant.UpdatedAt = restaurant.CreatedAt
	f.restaurants[restaurant.ID] = restaurant
	return nil
}

func (f *fakeRestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, errors.NotFound("Restaurant", nil)
	}
	copied := *restaurant
	return &copied, nil
}

func (f *fakeRestaurantRepo) GetByExternalPlaceID(ctx context.Context, placeID string) (*entity.Restaurant, error) {
	for _, restaurant := range f.restaurants {
		if restaurant.ExternalPlaceID == placeID && !restaurant.IsDeleted() {
			copied := *restaurant
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Restaurant", nil)
}

func (f *fakeRestaurantRepo) List(ctx context.Context, filter repository.RestaurantListFilter, lastDocID string, limit int) ([]*entity.Restaurant, bool, error) {
	var matched []*entity.Restaurant
	for _, restaurant := range f.restaurants {
		if restaurant.IsDeleted() {
			continue
		}
		if filter.City != "" && restaurant.City != filter.City {
			continue
		}
		if restaurant.CertTierMax < filter.MinCertTier {
			continue
		}
		if !hasAllSlugs(restaurant, filter.ValueSlugs) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(restaurant.Name), strings.ToLower(filter.Query)) {
			continue
		}
		copied := *restaurant
		matched = append(matched, &copied)
	}

	sort.Slice(matched, func(i, j int) bool {
		switch filter.Sort {
		case "name":
			if matched[i].Name != matched[j].Name {
				return matched[i].Name < matched[j].Name
			}
		case "certTier":
			if matched[i].CertTierMax != matched[j].CertTierMax {
				return matched[i].CertTierMax > matched[j].CertTierMax
			}
		}
		return matched[i].ID < matched[j].ID
	})

	start := 0
	if lastDocID != "" {
		for i, restaurant := range matched {
			if restaurant.ID == lastDocID {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[:limit]
	}
	return matched, hasMore, nil
}

func (f *fakeRestaurantRepo) GeohashRange(ctx context.Context, start, end string) ([]*entity.Restaurant, error) {
	var results []*entity.Restaurant
	for _, restaurant := range f.restaurants {
		if restaurant.IsDeleted() {
			continue
		}
		if restaurant.Geohash >= start && restaurant.Geohash <= end {
			copied := *restaurant
			results = append(results, &copied)
		}
	}
	return results, nil
}

func (f *fakeRestaurantRepo) Update(ctx context.Context, restaurant *entity.Restaurant) error {
	if _, ok := f.restaurants[restaurant.ID]; !ok {
		return errors.NotFound("Restaurant", nil)
	}
	restaurant.UpdatedAt = time.Now()
	copied := *restaurant
	f.restaurants[restaurant.ID] = &copied
	return nil
}

func (f *fakeRestaurantRepo) SoftDelete(ctx context.Context, id string) error {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return errors.NotFound("Restaurant", nil)
	}
	now := time.Now()
	restaurant.DeletedAt = &now
	return nil
}

func (f *fakeRestaurantRepo) SelfAttest(ctx context.Context, id string, slugs []string) (*entity.Restaurant, error) {
	restaurant, ok := f.restaurants[id]
	if !ok {
		return nil, errors.NotFound("Restaurant", nil)
	}
	if restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}
	restaurant.ApplySelfAttest(slugs)
	restaurant.UpdatedAt = time.Now()
	copied := *restaurant
	return &copied, nil
}

func (f *fakeRestaurantRepo) AddEvidence(ctx context.Context, restaurantID string, evidence *entity.Evidence) error {
	if _, ok := f.restaurants[restaurantID]; !ok {
		return errors.NotFound("Restaurant", nil)
	}
	f.evidence[restaurantID] = append(f.evidence[restaurantID], evidence)
	return nil
}

type fakeValueRepo struct {
	values map[string]*entity.Value
	counts map[string]int
}

func newFakeValueRepo(slugs ...string) *fakeValueRepo {
	f := &fakeValueRepo{
		values: make(map[string]*entity.Value),
		counts: make(map[string]int),
	}
	for i, slug := range slugs {
		f.values[slug] = &entity.Value{
			Slug:      slug,
			Label:     strings.ToUpper(slug[:1]) + strings.ReplaceAll(slug[1:], "-", " "),
			Active:    true,
			SortOrder: i,
		}
	}
	return f
}

func (f *fakeValueRepo) GetBySlug(ctx context.Context, slug string) (*entity.Value, error) {
	value, ok := f.values[slug]
	if !ok {
		return nil, errors.NotFound("Value", nil)
	}
	return value, nil
}

func (f *fakeValueRepo) GetBySlugs(ctx context.Context, slugs []string) (map[string]*entity.Value, error) {
	results := make(map[string]*entity.Value)
	for _, slug := range slugs {
		if value, ok := f.values[slug]; ok {
			results[slug] = value
		}
	}
	return results, nil
}

func (f *fakeValueRepo) ListActive(ctx context.Context) ([]*entity.Value, error) {
	var results []*entity.Value
	for _, value := range f.values {
		if value.Active {
			results = append(results, value)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].SortOrder < results[j].SortOrder })
	return results, nil
}

func (f *fakeValueRepo) IncrementRestaurantCounts(ctx context.Context, slugs []string) error {
	for _, slug := range slugs {
		f.counts[slug]++
	}
	return nil
}

type fakeReportRepo struct {
	reports     []*entity.Report
	restaurants *fakeRestaurantRepo
	users       *fakeUserRepo
	now         func() time.Time
	nextID      int
}

func newFakeReportRepo(restaurants *fakeRestaurantRepo, users *fakeUserRepo) *fakeReportRepo {
	return &fakeReportRepo{
		restaurants: restaurants,
		users:       users,
		now:         time.Now,
	}
}

func (f *fakeReportRepo) GetActiveSince(ctx context.Context, userID, restaurantID string, since time.Time) (*entity.Report, error) {
	var latest *entity.Report
	for _, report := range f.reports {
		if report.UserID != userID || report.RestaurantID != restaurantID {
			continue
		}
		if report.Status != entity.ReportStatusActive || report.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || report.CreatedAt.After(latest.CreatedAt) {
			latest = report
		}
	}
	return latest, nil
}

func (f *fakeReportRepo) SubmitWithAggregates(ctx context.Context, report *entity.Report) (*entity.Restaurant, error) {
	restaurant, ok := f.restaurants.restaurants[report.RestaurantID]
	if !ok || restaurant.IsDeleted() {
		return nil, errors.NotFound("Restaurant", nil)
	}

	f.nextID++
	report.ID = fmt.Sprintf("report-%03d", f.nextID)
	report.RestaurantName = restaurant.Name
	report.Status = entity.ReportStatusActive
	report.CreatedAt = f.now()
	report.UpdatedAt = report.CreatedAt
	f.reports = append(f.reports, report)

	restaurant.ApplyReports(report.Values)
	restaurant.TotalReportCount++
	restaurant.UpdatedAt = report.CreatedAt

	if f.users != nil {
		if user, ok := f.users.users[report.UserID]; ok {
			user.ReportCount++
		}
	}

	copied := *restaurant
	return &copied, nil
}

func (f *fakeReportRepo) ListActiveByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Report, error) {
	var results []*entity.Report
	for _, report := range f.reports {
		if report.RestaurantID == restaurantID && report.Status == entity.ReportStatusActive {
			results = append(results, report)
		}
	}
	return results, nil
}

func (f *fakeReportRepo) ListByUser(ctx context.Context, userID, lastDocID string, limit int) ([]*entity.Report, bool, error) {
	var matched []*entity.Report
	for _, report := range f.reports {
		if report.UserID == userID {
			matched = append(matched, report)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	start := 0
	if lastDocID != "" {
		for i, report := range matched {
			if report.ID == lastDocID {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[:limit]
	}
	return matched, hasMore, nil
}

type fakeClaimRepo struct {
	claims      []*entity.BusinessClaim
	restaurants *fakeRestaurantRepo
	users       *fakeUserRepo
	nextID      int
}

func newFakeClaimRepo(restaurants *fakeRestaurantRepo, users *fakeUserRepo) *fakeClaimRepo {
	return &fakeClaimRepo{restaurants: restaurants, users: users}
}

func (f *fakeClaimRepo) GetPending(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error) {
	for _, claim := range f.claims {
		if claim.RestaurantID == restaurantID && claim.UserID == userID &&
			claim.Status == entity.ClaimStatusPending {
			return claim, nil
		}
	}
	return nil, nil
}

func (f *fakeClaimRepo) GetLatest(ctx context.Context, restaurantID, userID string) (*entity.BusinessClaim, error) {
	var latest *entity.BusinessClaim
	for _, claim := range f.claims {
		if claim.RestaurantID != restaurantID || claim.UserID != userID {
			continue
		}
		if latest == nil || claim.CreatedAt.After(latest.CreatedAt) {
			latest = claim
		}
	}
	if latest == nil {
		return nil, errors.NotFound("Claim", nil)
	}
	return latest, nil
}

func (f *fakeClaimRepo) CreateWithRestaurant(ctx context.Context, claim *entity.BusinessClaim) error {
	restaurant, ok := f.restaurants.restaurants[claim.RestaurantID]
	if !ok || restaurant.IsDeleted() {
		return errors.NotFound("Restaurant", nil)
	}
	if restaurant.ClaimStatus == entity.ClaimStatusApproved {
		return errors.Conflict("Restaurant is already claimed")
	}
	if restaurant.ClaimStatus == entity.ClaimStatusPending && restaurant.ClaimedByUserID != claim.UserID {
		return errors.Conflict("A claim for this restaurant is already pending")
	}

	f.nextID++
	claim.ID = fmt.Sprintf("claim-%03d", f.nextID)
	claim.RestaurantName = restaurant.Name
	claim.Status = entity.ClaimStatusPending
	claim.CreatedAt = time.Now()
	if claim.EvidenceFileURLs == nil {
		claim.EvidenceFileURLs = []string{}
	}
	f.claims = append(f.claims, claim)

	restaurant.ClaimedByUserID = claim.UserID
	restaurant.ClaimStatus = entity.ClaimStatusPending

	if f.users != nil {
		if user, ok := f.users.users[claim.UserID]; ok {
			user.ClaimedRestaurantID = claim.RestaurantID
		}
	}

	return nil
}

type fakeUserRepo struct {
	users     map[string]*entity.User
	favorites map[string][]*entity.Favorite
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{
		users:     make(map[string]*entity.User),
		favorites: make(map[string][]*entity.Favorite),
	}
	for _, user := range users {
		f.users[user.ID] = user
	}
	return f
}

func (f *fakeUserRepo) GetByID(ctx context.Context, uid string) (*entity.User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) AddFavorite(ctx context.Context, uid string, favorite *entity.Favorite) error {
	favorite.AddedAt = time.Now()
	for i, existing := range f.favorites[uid] {
		if existing.RestaurantID == favorite.RestaurantID {
			f.favorites[uid][i] = favorite
			return nil
		}
	}
	f.favorites[uid] = append(f.favorites[uid], favorite)
	return nil
}

func (f *fakeUserRepo) RemoveFavorite(ctx context.Context, uid, restaurantID string) error {
	favorites := f.favorites[uid]
	for i, favorite := range favorites {
		if favorite.RestaurantID == restaurantID {
			f.favorites[uid] = append(favorites[:i], favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeUserRepo) ListFavorites(ctx context.Context, uid, lastDocID string, limit int) ([]*entity.Favorite, bool, error) {
	matched := append([]*entity.Favorite(nil), f.favorites[uid]...)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].AddedAt.Equal(matched[j].AddedAt) {
			return matched[i].AddedAt.After(matched[j].AddedAt)
		}
		return matched[i].RestaurantID < matched[j].RestaurantID
	})

	start := 0
	if lastDocID != "" {
		for i, favorite := range matched {
			if favorite.RestaurantID == lastDocID {
				start = i + 1
				break
			}
		}
	}
	matched = matched[start:]

	hasMore := len(matched) > limit
	if hasMore {
		matched = matched[:limit]
	}
	return matched, hasMore, nil
}
