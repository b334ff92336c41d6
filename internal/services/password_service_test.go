package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"vgauth/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func stringPtr(s string) *string {
	return &s
}

func newTestPasswordService() PasswordService {
	return NewPasswordService(bcrypt.MinCost, 0, nil)
}

func TestPasswordService_HashAndVerify(t *testing.T) {
	ctx := context.Background()
	svc := newTestPasswordService()

	for _, password := range []string{"foobar123!", "123456", "correct horse battery staple", "pässwörd"} {
		hash, err := svc.Hash(ctx, stringPtr(password))
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, svc.Verify(ctx, password, hash), "password %q should verify", password)
		assert.False(t, svc.Verify(ctx, password+"x", hash))
	}
}

func TestPasswordService_HashIsSalted(t *testing.T) {
	ctx := context.Background()
	svc := newTestPasswordService()

	first, err := svc.Hash(ctx, stringPtr("foobar123!"))
	require.NoError(t, err)
	second, err := svc.Hash(ctx, stringPtr("foobar123!"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.Verify(ctx, "foobar123!", first))
	assert.True(t, svc.Verify(ctx, "foobar123!", second))
}

func TestPasswordService_HashRejectsMissingPassword(t *testing.T) {
	_, err := newTestPasswordService().Hash(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPasswordService_HashAcceptsEmptyString(t *testing.T) {
	ctx := context.Background()
	svc := newTestPasswordService()

	hash, err := svc.Hash(ctx, stringPtr(""))
	require.NoError(t, err)
	assert.True(t, svc.Verify(ctx, "", hash))
}

func TestPasswordService_HashRejectsOverlongPassword(t *testing.T) {
	_, err := newTestPasswordService().Hash(context.Background(), stringPtr(strings.Repeat("a", 73)))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestPasswordService_VerifyFailsClosed(t *testing.T) {
	ctx := context.Background()
	svc := newTestPasswordService()

	assert.False(t, svc.Verify(ctx, "foobar123!", ""))
	assert.False(t, svc.Verify(ctx, "foobar123!", "not-a-bcrypt-hash"))
	assert.False(t, svc.Verify(ctx, "foobar123!", "$2a$04$tooshort"))
}

func TestPasswordService_CancelledContext(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost, 1, nil)
	hash, err := svc.Hash(context.Background(), stringPtr("foobar123!"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Acquire fails fast on a cancelled context even with a free slot.
	assert.False(t, svc.Verify(ctx, "foobar123!", hash))
	_, err = svc.Hash(ctx, stringPtr("foobar123!"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPasswordService_ConcurrentUse(t *testing.T) {
	ctx := context.Background()
	svc := NewPasswordService(bcrypt.MinCost, 2, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := svc.Hash(ctx, stringPtr("foobar123!"))
			if err != nil {
				errs <- err
				return
			}
			if !svc.Verify(ctx, "foobar123!", hash) {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent hash failed: %v", err)
	}
}

func TestNewPasswordService_InvalidCostFallsBack(t *testing.T) {
	svc := NewPasswordService(1, 0, nil).(*passwordService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)

	svc = NewPasswordService(bcrypt.MaxCost+1, 0, nil).(*passwordService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
