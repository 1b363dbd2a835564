package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/skillsverse/internal/testutil"
	"github.com/Goodnessmbakara/skillsverse/pkg/apperror"
	"github.com/Goodnessmbakara/skillsverse/pkg/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	rdb, mr := testutil.NewRedis(t)
	l := ratelimit.New(rdb)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, 1, "create_match", 2*time.Second))

	err := l.Allow(ctx, 1, "create_match", 2*time.Second)
	var limitErr *ratelimit.LimitError
	require.True(t, errors.As(err, &limitErr))
	assert.ErrorIs(t, err, apperror.ErrRateLimitExceeded)
	assert.Greater(t, limitErr.RetryAfter, time.Duration(0))

	// other users and actions have their own windows
	assert.NoError(t, l.Allow(ctx, 2, "create_match", 2*time.Second))
	assert.NoError(t, l.Allow(ctx, 1, "other", 2*time.Second))

	mr.FastForward(3 * time.Second)
	assert.NoError(t, l.Allow(ctx, 1, "create_match", 2*time.Second))
}

func TestLimiter_Reset(t *testing.T) {
	rdb, _ := testutil.NewRedis(t)
	l := ratelimit.New(rdb)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, 1, "create_match", time.Minute))
	require.NoError(t, l.Reset(ctx, 1, "create_match"))
	assert.NoError(t, l.Allow(ctx, 1, "create_match", time.Minute))
}

func TestLimiter_NilRedisAllowsEverything(t *testing.T) {
	l := ratelimit.New(nil)
	for i := 0; i < 3; i++ {
		assert.NoError(t, l.Allow(context.Background(), 1, "create_match", time.Minute))
	}

	var nilLimiter *ratelimit.Limiter
	assert.NoError(t, nilLimiter.Allow(context.Background(), 1, "x", time.Minute))
}
