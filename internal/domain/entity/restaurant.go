package entity

import (
	"time"
)

// Certification tiers for a restaurant's relationship with a value.
const (
	CertTierNone            = 0
	CertTierSelfAttested    = 1
	CertTierCommunityVetted = 2
	CertTierVerified        = 3
)

// CommunityReportThreshold is the report count at which a value is
// promoted to the community-vetted tier.
const CommunityReportThreshold = 3

type Location struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// ValueAssertion is the restaurant's relationship with one value slug.
// The label is never persisted here; it is resolved from the value
// catalog at read time so label edits propagate automatically.
type ValueAssertion struct {
	Slug         string     `json:"slug" firestore:"slug"`
	Label        string     `json:"label,omitempty" firestore:"-"`
	CertTier     int        `json:"cert_tier" firestore:"certTier"`
	SelfAttested bool       `json:"self_attested" firestore:"selfAttested"`
	ReportCount  int        `json:"report_count" firestore:"reportCount"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty" firestore:"verifiedAt,omitempty"`
}

type Restaurant struct {
	ID              string           `json:"id" firestore:"id"`
	ExternalPlaceID string           `json:"external_place_id" firestore:"externalPlaceId"`
	Name            string           `json:"name" firestore:"name"`
	City            string           `json:"city" firestore:"city"`
	Location        Location         `json:"location" firestore:"location"`
	Geohash         string           `json:"-" firestore:"geohash"`
	Values          []ValueAssertion `json:"values" firestore:"values"`

	// ValueSlugs mirrors Values for single-field containment queries.
	ValueSlugs []string `json:"value_slugs" firestore:"valueSlugs"`

	CertTierMax      int    `json:"cert_tier_max" firestore:"certTierMax"`
	TotalReportCount int    `json:"total_report_count" firestore:"totalReportCount"`
	ClaimedByUserID  string `json:"claimed_by_user_id,omitempty" firestore:"claimedByUserId"`
	ClaimStatus      string `json:"claim_status,omitempty" firestore:"claimStatus"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}

func (r *Restaurant) IsDeleted() bool {
	return r.DeletedAt != nil
}

func (r *Restaurant) Assertion(slug string) *ValueAssertion {
	for i := range r.Values {
		if r.Values[i].Slug == slug {
			return &r.Values[i]
		}
	}
	return nil
}

// ApplySelfAttest marks each slug as self-attested and raises its tier to
// at least the self-attested tier. Tiers are never lowered, so re-attesting
// is a no-op beyond the caller's timestamp refresh.
func (r *Restaurant) ApplySelfAttest(slugs []string) {
	for _, slug := range slugs {
		if a := r.Assertion(slug); a != nil {
			a.SelfAttested = true
			if a.CertTier < CertTierSelfAttested {
				a.CertTier = CertTierSelfAttested
			}
			continue
		}
		r.Values = append(r.Values, ValueAssertion{
			Slug:         slug,
			CertTier:     CertTierSelfAttested,
			SelfAttested: true,
			ReportCount:  0,
		})
	}
	r.SyncValueSlugs()
	r.RecomputeCertTierMax(CertTierNone)
}

// ApplyReports increments the report count for every assertion whose slug
// is in the submitted set, promoting the assertion to community-vetted
// once the count reaches the threshold. Tiers never regress.
func (r *Restaurant) ApplyReports(slugs []string) {
	reported := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		reported[slug] = true
	}

	for i := range r.Values {
		if !reported[r.Values[i].Slug] {
			continue
		}
		r.Values[i].ReportCount++
		if r.Values[i].ReportCount >= CommunityReportThreshold &&
			r.Values[i].CertTier < CertTierCommunityVetted {
			r.Values[i].CertTier = CertTierCommunityVetted
		}
	}
	r.RecomputeCertTierMax(CertTierNone)
}

// ReplaceValues swaps the value-slug set. State for retained slugs carries
// over; new slugs start at zero state; dropped slugs are discarded.
func (r *Restaurant) ReplaceValues(slugs []string) {
	next := make([]ValueAssertion, 0, len(slugs))
	for _, slug := range slugs {
		if existing := r.Assertion(slug); existing != nil {
			next = append(next, *existing)
			continue
		}
		next = append(next, ValueAssertion{Slug: slug})
	}
	r.Values = next
	r.SyncValueSlugs()
	r.RecomputeCertTierMax(CertTierNone)
}

func (r *Restaurant) SyncValueSlugs() {
	slugs := make([]string, len(r.Values))
	for i, v := range r.Values {
		slugs[i] = v.Slug
	}
	r.ValueSlugs = slugs
}

// RecomputeCertTierMax sets CertTierMax to the max tier across the current
// assertion list, floored at the given tier.
func (r *Restaurant) RecomputeCertTierMax(floor int) {
	max := floor
	for _, v := range r.Values {
		if v.CertTier > max {
			max = v.CertTier
		}
	}
	r.CertTierMax = max
}
