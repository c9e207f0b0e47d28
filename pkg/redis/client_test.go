package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useClient(t *testing.T, c *goredis.Client) {
	t.Helper()
	orig := client
	SetClient(c)
	t.Cleanup(func() { client = orig })
}

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestInit_WithMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	orig := client
	t.Cleanup(func() { client = orig })

	require.NoError(t, Init("redis://"+mr.Addr(), ""))
	require.NotNil(t, GetClient())

	ctx := context.Background()
	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	got, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestInit_PasswordOverrideAndPingFailure(t *testing.T) {
	orig := client
	origPing := pingClient
	t.Cleanup(func() {
		client = orig
		pingClient = origPing
	})

	var seen string
	pingClient = func(_ context.Context, c *goredis.Client) error {
		seen = c.Options().Password
		return errors.New("ping failed")
	}

	err := Init("redis://localhost:6379", "s3cret")
	assert.Error(t, err)
	assert.Equal(t, "s3cret", seen)
}

func TestSetClientAndBasicOpsWithUnreachableRedis(t *testing.T) {
	cli := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0", // invalid/unreachable
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	useClient(t, cli)
	assert.NotNil(t, GetClient())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, Del(ctx, "k"))
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.Error(t, err)
}
