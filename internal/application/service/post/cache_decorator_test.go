package post_service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	post_service "kaizen-board/internal/domain/ports/input/post"
	"kaizen-board/internal/infrastructure/logger"
	"kaizen-board/internal/infrastructure/outbound/metrics/prometheus"
	cache_mock "kaizen-board/mocks/cache"
	post_service_mock "kaizen-board/mocks/post"
)

func newTestDecorator(t *testing.T) (post_service.Service, *post_service_mock.Service, *cache_mock.BoardCache) {
	inner := post_service_mock.NewService(t)
	boardCache := cache_mock.NewBoardCache(t)
	d := NewPostServiceCacheDecorator(inner, boardCache, logger.New("test"), prometheus.NewPrometheusMetricsProvider())
	return d, inner, boardCache
}

func TestPostServiceCacheDecorator_ListPosts(t *testing.T) {
	posts := []*model.Post{{ID: 1, Title: "a", Likes: 2}}

	t.Run("cache hit skips service", func(t *testing.T) {
		d, inner, boardCache := newTestDecorator(t)
		boardCache.On("GetBoard", mock.Anything, model.OrderByLikes).Return(posts, int64(0), nil)

		got, err := d.ListPosts(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, posts, got)
		inner.AssertNotCalled(t, "ListPosts", mock.Anything, mock.Anything)
	})

	t.Run("cache miss fills cache", func(t *testing.T) {
		d, inner, boardCache := newTestDecorator(t)
		boardCache.On("GetBoard", mock.Anything, model.OrderByCreatedAt).Return(nil, int64(3), custom_errors.ErrCacheMiss)
		inner.On("ListPosts", mock.Anything, &model.PostFilters{Order: model.OrderByCreatedAt}).Return(posts, nil)
		boardCache.On("SetBoard", mock.Anything, model.OrderByCreatedAt, int64(3), posts).Return(nil)

		got, err := d.ListPosts(context.Background(), &model.PostFilters{Order: model.OrderByCreatedAt})

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("cache read error falls through without storing", func(t *testing.T) {
		d, inner, boardCache := newTestDecorator(t)
		boardCache.On("GetBoard", mock.Anything, model.OrderByLikes).Return(nil, int64(0), errors.New("redis down"))
		inner.On("ListPosts", mock.Anything, &model.PostFilters{Order: model.OrderByLikes}).Return(posts, nil)

		got, err := d.ListPosts(context.Background(), &model.PostFilters{Order: model.OrderByLikes})

		require.NoError(t, err)
		assert.Equal(t, posts, got)
		boardCache.AssertNotCalled(t, "SetBoard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache write error is not fatal", func(t *testing.T) {
		d, inner, boardCache := newTestDecorator(t)
		boardCache.On("GetBoard", mock.Anything, model.OrderByLikes).Return(nil, int64(1), custom_errors.ErrCacheMiss)
		inner.On("ListPosts", mock.Anything, &model.PostFilters{Order: model.OrderByLikes}).Return(posts, nil)
		boardCache.On("SetBoard", mock.Anything, model.OrderByLikes, int64(1), posts).Return(errors.New("redis down"))

		got, err := d.ListPosts(context.Background(), &model.PostFilters{Order: model.OrderByLikes})

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("service error is not cached", func(t *testing.T) {
		d, inner, boardCache := newTestDecorator(t)
		boardCache.On("GetBoard", mock.Anything, model.OrderByLikes).Return(nil, int64(0), custom_errors.ErrCacheMiss)
		inner.On("ListPosts", mock.Anything, mock.Anything).Return(nil, custom_errors.ErrDatabaseQuery)

		got, err := d.ListPosts(context.Background(), nil)

		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Nil(t, got)
		boardCache.AssertNotCalled(t, "SetBoard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("status filter bypasses cache", func(t *testing.T) {
		d, inner, _ := newTestDecorator(t)
		done := model.PostStatusDone
		filters := &model.PostFilters{Order: model.OrderByLikes, Status: &done}
		inner.On("ListPosts", mock.Anything, filters).Return(posts, nil)

		got, err := d.ListPosts(context.Background(), filters)

		require.NoError(t, err)
		assert.Equal(t, posts, got)
	})

	t.Run("invalid order", func(t *testing.T) {
		d, _, _ := newTestDecorator(t)

		_, err := d.ListPosts(context.Background(), &model.PostFilters{Order: "title"})

		assert.ErrorIs(t, err, custom_errors.ErrInvalidOrder)
	})
}

func TestPostServiceCacheDecorator_MutationsInvalidate(t *testing.T) {
	post := &model.Post{ID: 1, Title: "a"}

	tests := []struct {
		name string
		call func(d post_service.Service) (*model.Post, error)
		mock func(inner *post_service_mock.Service, err error)
	}{
		{
			name: "create",
			call: func(d post_service.Service) (*model.Post, error) {
				return d.CreatePost(context.Background(), &model.CreatePostDTO{Title: "a"})
			},
			mock: func(inner *post_service_mock.Service, err error) {
				inner.On("CreatePost", mock.Anything, &model.CreatePostDTO{Title: "a"}).Return(resultFor(post, err), err)
			},
		},
		{
			name: "like",
			call: func(d post_service.Service) (*model.Post, error) {
				return d.AddLike(context.Background(), 1)
			},
			mock: func(inner *post_service_mock.Service, err error) {
				inner.On("AddLike", mock.Anything, int64(1)).Return(resultFor(post, err), err)
			},
		},
		{
			name: "resolve",
			call: func(d post_service.Service) (*model.Post, error) {
				return d.MarkAsDone(context.Background(), 1)
			},
			mock: func(inner *post_service_mock.Service, err error) {
				inner.On("MarkAsDone", mock.Anything, int64(1)).Return(resultFor(post, err), err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" success invalidates", func(t *testing.T) {
			d, inner, boardCache := newTestDecorator(t)
			tt.mock(inner, nil)
			boardCache.On("InvalidateBoard", mock.Anything).Return(nil).Once()

			got, err := tt.call(d)

			require.NoError(t, err)
			assert.Equal(t, post, got)
		})

		t.Run(tt.name+" invalidation failure is not fatal", func(t *testing.T) {
			d, inner, boardCache := newTestDecorator(t)
			tt.mock(inner, nil)
			boardCache.On("InvalidateBoard", mock.Anything).Return(errors.New("redis down")).Once()

			got, err := tt.call(d)

			require.NoError(t, err)
			assert.Equal(t, post, got)
		})

		t.Run(tt.name+" failure keeps cache", func(t *testing.T) {
			d, inner, boardCache := newTestDecorator(t)
			tt.mock(inner, custom_errors.ErrPostNotFound)

			got, err := tt.call(d)

			assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
			assert.Nil(t, got)
			boardCache.AssertNotCalled(t, "InvalidateBoard", mock.Anything)
		})
	}
}

func resultFor(post *model.Post, err error) any {
	if err != nil {
		return nil
	}
	return post
}
