package redis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse-api/internal/domain/entity"
	"echoverse-api/internal/domain/repository"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return Wrap(rdb), mr
}

func TestHealthCheck(t *testing.T) {
	client, mr := newTestClient(t)
	require.NoError(t, client.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, client.HealthCheck(context.Background()))
}

func TestCacheGetOrLoadBytes(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewCache(client)
	ctx := context.Background()

	var loads int32
	loader := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return []byte{0xFF, 0xFB, 0x90}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, loaded, err := cache.GetOrLoadBytes(ctx, "tts:k", time.Minute, loader)
			assert.NoError(t, err)
			assert.True(t, loaded)
			assert.Equal(t, []byte{0xFF, 0xFB, 0x90}, raw)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	stored, err := mr.Get("tts:k")
	require.NoError(t, err)
	assert.Equal(t, string([]byte{0xFF, 0xFB, 0x90}), stored)
	assert.Greater(t, mr.TTL("tts:k"), time.Duration(0))

	// 命中后不再加载
	_, loaded, err := cache.GetOrLoadBytes(ctx, "tts:k", time.Minute, loader)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestCacheGetOrLoadBytesLoaderError(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewCache(client)

	boom := errors.New("boom")
	_, loaded, err := cache.GetOrLoadBytes(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, loaded)
	assert.False(t, mr.Exists("k"))
}

func TestCacheGetOrLoadBytesRedisDown(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewCache(client)
	mr.Close()

	_, loaded, err := cache.GetOrLoadBytes(context.Background(), "k", time.Minute, func(context.Context) ([]byte, error) {
		t.Fatal("loader must not run when redis is unreachable")
		return nil, nil
	})
	assert.Error(t, err)
	assert.False(t, loaded)
}

func TestAudiobookRepository(t *testing.T) {
	client, mr := newTestClient(t)
	repo := NewAudiobookRepository(NewCache(client), "test")
	ctx := context.Background()

	book := &entity.Audiobook{
		ID:            "ab-1",
		OriginalText:  "The sun rose over the hill.",
		RewrittenText: "Golden light spilled across the hill.",
		Tone:          entity.ToneInspiring,
		Voice:         entity.VoiceLisa,
		AudioKey:      entity.AudioKeyFor("ab-1"),
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, book, time.Hour))
	assert.True(t, mr.Exists("test:audiobook:ab-1"))

	got, err := repo.GetByID(ctx, "ab-1")
	require.NoError(t, err)
	assert.Equal(t, book, got)

	mr.FastForward(2 * time.Hour)
	_, err = repo.GetByID(ctx, "ab-1")
	assert.True(t, repository.IsNotFound(err))
}

func TestAudiobookRepositoryRejectsMissingID(t *testing.T) {
	client, _ := newTestClient(t)
	repo := NewAudiobookRepository(NewCache(client), "")
	assert.Error(t, repo.Save(context.Background(), &entity.Audiobook{}, time.Hour))
}

func TestRateLimiterAllow(t *testing.T) {
	client, _ := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()
	key := BuildRateLimitKey("10.0.0.1", "/v1/audiobooks")

	for i := 0; i < 3; i++ {
		ok, remaining, err := limiter.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2-i, remaining)
	}

	ok, remaining, err := limiter.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, remaining)

	other, _, err := limiter.Allow(ctx, BuildRateLimitKey("10.0.0.2", "/v1/audiobooks"), 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, other)
}
