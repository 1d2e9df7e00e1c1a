package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/example/mindease/internal/persistence"
)

// CredentialRepository implements persistence.CredentialRepository over the
// seeded account table. Signup never writes here, so the table is read-only
// after construction.
type CredentialRepository struct {
	mu          sync.RWMutex
	credentials []persistence.Credential
	latency     time.Duration
}

// NewCredentialRepository constructs the account table from the provided seed.
func NewCredentialRepository(seed []persistence.Credential, latency time.Duration) *CredentialRepository {
	credentials := make([]persistence.Credential, 0, len(seed))
	credentials = append(credentials, seed...)
	return &CredentialRepository{credentials: credentials, latency: latency}
}

// GetCredentialByEmail returns the seeded account for the email, matched
// case-insensitively, or ErrNotFound.
func (r *CredentialRepository) GetCredentialByEmail(ctx context.Context, email string) (persistence.Credential, error) {
	if err := wait(ctx, r.latency); err != nil {
		return persistence.Credential{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.credentials {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return persistence.Credential{}, persistence.ErrNotFound
}
