package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/mindease/internal/persistence"
)

// ResourceRepository implements persistence.ResourceRepository over a seeded
// in-memory table. The library is read-only.
type ResourceRepository struct {
	mu        sync.RWMutex
	resources []persistence.Resource
	latency   time.Duration
}

// NewResourceRepository constructs the library from the provided seed.
func NewResourceRepository(seed []persistence.Resource, latency time.Duration) *ResourceRepository {
	resources := make([]persistence.Resource, 0, len(seed))
	for _, res := range seed {
		resources = append(resources, cloneResource(res))
	}
	return &ResourceRepository{resources: resources, latency: latency}
}

// ListResources returns items matching every populated filter field in seed
// order. Category is a case-insensitive substring match; type and difficulty
// match exactly.
func (r *ResourceRepository) ListResources(ctx context.Context, filter persistence.ResourceFilter) ([]persistence.Resource, error) {
	if err := wait(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]persistence.Resource, 0, len(r.resources))
	for _, res := range r.resources {
		if filter.Category != "" && !strings.Contains(strings.ToLower(res.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.Type != "" && res.Type != filter.Type {
			continue
		}
		if filter.Difficulty != "" && res.Difficulty != filter.Difficulty {
			continue
		}
		matched = append(matched, cloneResource(res))
	}
	return matched, nil
}

// GetResource returns the item with the given id or ErrNotFound.
func (r *ResourceRepository) GetResource(ctx context.Context, id string) (persistence.Resource, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.Resource{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.resources {
		if res.ID == id {
			return cloneResource(res), nil
		}
	}
	return persistence.Resource{}, persistence.ErrNotFound
}

func cloneResource(res persistence.Resource) persistence.Resource {
	res.DurationMinutes = cloneIntPtr(res.DurationMinutes)
	res.ReadTimeMinutes = cloneIntPtr(res.ReadTimeMinutes)
	res.Content = cloneStringPtr(res.Content)
	res.URL = cloneStringPtr(res.URL)
	res.Tags = cloneStrings(res.Tags)
	return res
}
