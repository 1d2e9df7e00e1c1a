package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/mindease/internal/persistence"
)

// CounsellorRepository implements persistence.CounsellorRepository over a
// seeded in-memory table. The directory is read-only: no create, update, or
// delete is exposed.
type CounsellorRepository struct {
	mu          sync.RWMutex
	counsellors []persistence.Counsellor
	latency     time.Duration
}

// NewCounsellorRepository constructs the directory from the provided seed.
func NewCounsellorRepository(seed []persistence.Counsellor, latency time.Duration) *CounsellorRepository {
	counsellors := make([]persistence.Counsellor, 0, len(seed))
	for _, c := range seed {
		counsellors = append(counsellors, cloneCounsellor(c))
	}
	return &CounsellorRepository{counsellors: counsellors, latency: latency}
}

// ListCounsellors returns profiles matching every populated filter field,
// preserving seed order. An empty filter returns the full directory.
func (r *CounsellorRepository) ListCounsellors(ctx context.Context, filter persistence.CounsellorFilter) ([]persistence.Counsellor, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]persistence.Counsellor, 0, len(r.counsellors))
	for _, c := range r.counsellors {
		if filter.Specialization != "" && !containsFold(c.Specializations, filter.Specialization) {
			continue
		}
		if filter.AgeGroup != "" && !containsFold(c.AgeGroups, filter.AgeGroup) {
			continue
		}
		if filter.MaxPrice != nil && c.PricePerSession > *filter.MaxPrice {
			continue
		}
		matched = append(matched, cloneCounsellor(c))
	}
	return matched, nil
}

// GetCounsellor returns the profile with the given id or ErrNotFound.
func (r *CounsellorRepository) GetCounsellor(ctx context.Context, id string) (persistence.Counsellor, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.Counsellor{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.counsellors {
		if c.ID == id {
			return cloneCounsellor(c), nil
		}
	}
	return persistence.Counsellor{}, persistence.ErrNotFound
}

// containsFold reports whether any tag contains needle, case-insensitively.
func containsFold(tags []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func cloneCounsellor(c persistence.Counsellor) persistence.Counsellor {
	c.Specializations = cloneStrings(c.Specializations)
	c.AgeGroups = cloneStrings(c.AgeGroups)
	c.Availability = cloneStrings(c.Availability)
	return c
}
