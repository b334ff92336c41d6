package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"vgauth/internal/common"
	"vgauth/internal/metrics"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// PasswordService hashes and verifies passwords.
type PasswordService interface {
	// Hash rejects a nil password. An empty string is hashed like any other.
	Hash(ctx context.Context, password *string) (string, error)
	// Verify reports whether password matches hashedPassword. Any failure,
	// including a malformed hash or a cancelled context, reports false.
	Verify(ctx context.Context, password, hashedPassword string) bool
}

type passwordService struct {
	cost    int
	slots   *semaphore.Weighted
	metrics *metrics.Metrics
}

// NewPasswordService creates a bcrypt backed PasswordService. Costs outside
// bcrypt's range fall back to bcrypt.DefaultCost. maxConcurrent bounds how
// many hashes run at once; zero or less means GOMAXPROCS.
func NewPasswordService(cost int, maxConcurrent int, m *metrics.Metrics) PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}
	return &passwordService{
		cost:    cost,
		slots:   semaphore.NewWeighted(int64(maxConcurrent)),
		metrics: m,
	}
}

func (s *passwordService) Hash(ctx context.Context, password *string) (string, error) {
	if password == nil {
		return "", common.Validation("password is required")
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("wait for hashing slot: %w", err)
	}
	defer s.slots.Release(1)

	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), s.cost)
	s.metrics.ObservePasswordOperation("hash", time.Since(start))
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", common.Validation("password must be at most 72 bytes")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *passwordService) Verify(ctx context.Context, password, hashedPassword string) bool {
	if hashedPassword == "" {
		return false
	}

	if err := s.slots.Acquire(ctx, 1); err != nil {
		return false
	}
	defer s.slots.Release(1)

	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	s.metrics.ObservePasswordOperation("verify", time.Since(start))
	return err == nil
}
