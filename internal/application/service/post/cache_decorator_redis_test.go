package post_service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "kaizen-board/internal/domain/models"
	post_port "kaizen-board/internal/domain/ports/input/post"
	"kaizen-board/internal/infrastructure/config"
	"kaizen-board/internal/infrastructure/logger"
	redis_cache "kaizen-board/internal/infrastructure/outbound/cache/redis"
	"kaizen-board/internal/infrastructure/outbound/metrics/prometheus"
)

// pausingService holds its first ListPosts after the store read until released.
type pausingService struct {
	post_port.Service
	once    sync.Once
	fetched chan struct{}
	release chan struct{}
}

func (p *pausingService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	posts, err := p.Service.ListPosts(ctx, filters)
	p.once.Do(func() {
		close(p.fetched)
		<-p.release
	})
	return posts, err
}

func newRedisBoardCache(t *testing.T) *redis_cache.BoardCache {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	log := logger.New("test")
	client, err := redis_cache.NewClient(config.Redis{Address: mr.Host(), Port: port, PoolSize: 4}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return redis_cache.NewBoardCache(client, log, time.Minute)
}

func TestPostServiceCacheDecorator_ReadOverlappingLikeIsNotServedAfterIt(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryService(t)
	post := createWithLikes(t, svc, "chairs", 0)

	inner := &pausingService{Service: svc, fetched: make(chan struct{}), release: make(chan struct{})}
	d := NewPostServiceCacheDecorator(inner, newRedisBoardCache(t), logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	readDone := make(chan error, 1)
	go func() {
		_, err := d.ListPosts(ctx, nil)
		readDone <- err
	}()

	<-inner.fetched
	liked, err := d.AddLike(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, int32(1), liked.Likes)

	close(inner.release)
	require.NoError(t, <-readDone)

	posts, err := d.ListPosts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int32(1), posts[0].Likes)

	// the fresh board is cached and served from then on
	posts, err = d.ListPosts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), posts[0].Likes)
}

func TestPostServiceCacheDecorator_MutationsAreVisibleThroughRedis(t *testing.T) {
	ctx := context.Background()
	d := NewPostServiceCacheDecorator(newMemoryService(t), newRedisBoardCache(t), logger.New("test"), prometheus.NewPrometheusMetricsProvider())

	posts, err := d.ListPosts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, posts)

	created, err := d.CreatePost(ctx, &model.CreatePostDTO{Title: "quieter printer"})
	require.NoError(t, err)

	posts, err = d.ListPosts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	_, err = d.MarkAsDone(ctx, created.ID)
	require.NoError(t, err)

	posts, err = d.ListPosts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusDone, posts[0].Status)
}
