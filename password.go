package learnhub

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
}

// bcryptHasher runs bcrypt with at most a fixed number of hashes in flight so
// that a burst of registrations cannot starve the rest of the server of CPU.
type bcryptHasher struct {
	cost  int
	slots *semaphore.Weighted
}

// NewPasswordHasher returns a bcrypt backed PasswordHasher. A concurrency of
// zero or less defaults to the number of CPUs.
func NewPasswordHasher(cost, concurrency int) PasswordHasher {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &bcryptHasher{cost: cost, slots: semaphore.NewWeighted(int64(concurrency))}
}

func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("waiting to hash password: %w", err)
	}
	defer h.slots.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Verify(ctx context.Context, password, hash string) bool {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.slots.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
