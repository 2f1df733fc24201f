package post_repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	post_repository "kaizen-board/internal/domain/ports/output/post"
	"kaizen-board/internal/infrastructure/logger"
	"kaizen-board/internal/infrastructure/outbound/repository/post/memory"
)

func setupPostTest(t *testing.T) (post_repository.Repository, func()) {
	log := logger.New("test")
	repo := memory.NewPostRepository(log)
	return repo, func() {}
}

func int32Ptr(v int32) *int32 { return &v }

func statusPtr(s model.PostStatus) *model.PostStatus { return &s }

func TestPostRepository_Create(t *testing.T) {
	repo, cleanup := setupPostTest(t)
	defer cleanup()

	before := time.Now()
	got, err := repo.Create(context.Background(), &model.Post{Title: "Fix the chairs"})

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Fix the chairs", got.Title)
	assert.Equal(t, int32(0), got.Likes)
	assert.Equal(t, model.PostStatusOpen, got.Status)
	assert.True(t, got.CreatedAt.Valid)
	assert.False(t, got.CreatedAt.Time.Before(before))

	second, err := repo.Create(context.Background(), &model.Post{Title: "Second"})
	require.NoError(t, err)
	assert.NotEqual(t, got.ID, second.ID)
}

func TestPostRepository_GetByID(t *testing.T) {
	repo, cleanup := setupPostTest(t)
	defer cleanup()

	created, err := repo.Create(context.Background(), &model.Post{Title: "Test Post"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      int64
		want    *model.Post
		wantErr error
	}{
		{
			name: "successful get",
			id:   created.ID,
			want: created,
		},
		{
			name:    "post not found",
			id:      999,
			wantErr: custom_errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByID(context.Background(), tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostRepository_Update(t *testing.T) {
	repo, cleanup := setupPostTest(t)
	defer cleanup()

	created, err := repo.Create(context.Background(), &model.Post{Title: "Test Post"})
	require.NoError(t, err)

	t.Run("likes only", func(t *testing.T) {
		got, err := repo.Update(context.Background(), created.ID, &model.UpdatePostDTO{Likes: int32Ptr(4)})
		require.NoError(t, err)
		assert.Equal(t, int32(4), got.Likes)
		assert.Equal(t, model.PostStatusOpen, got.Status)
	})

	t.Run("status only", func(t *testing.T) {
		got, err := repo.Update(context.Background(), created.ID, &model.UpdatePostDTO{Status: statusPtr(model.PostStatusDone)})
		require.NoError(t, err)
		assert.Equal(t, int32(4), got.Likes)
		assert.Equal(t, model.PostStatusDone, got.Status)
	})

	t.Run("nothing to update", func(t *testing.T) {
		got, err := repo.Update(context.Background(), created.ID, &model.UpdatePostDTO{})
		assert.ErrorIs(t, err, custom_errors.ErrNoUpdateRows)
		assert.Nil(t, got)
	})

	t.Run("missing post", func(t *testing.T) {
		got, err := repo.Update(context.Background(), 999, &model.UpdatePostDTO{Likes: int32Ptr(1)})
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
		assert.Nil(t, got)
	})

	t.Run("returned copy is detached", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		got.Likes = 100

		again, err := repo.GetByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, int32(4), again.Likes)
	})
}

func TestPostRepository_List(t *testing.T) {
	repo, cleanup := setupPostTest(t)
	defer cleanup()
	ctx := context.Background()

	var ids []int64
	for i, likes := range []int32{1, 5, 3} {
		p, err := repo.Create(ctx, &model.Post{Title: "post"})
		require.NoError(t, err)
		ids = append(ids, p.ID)
		if likes > 0 {
			_, err = repo.Update(ctx, p.ID, &model.UpdatePostDTO{Likes: int32Ptr(likes)})
			require.NoError(t, err)
		}
		if i == 2 {
			_, err = repo.Update(ctx, p.ID, &model.UpdatePostDTO{Status: statusPtr(model.PostStatusDone)})
			require.NoError(t, err)
		}
	}

	t.Run("likes descending", func(t *testing.T) {
		posts, err := repo.List(ctx, model.PostFilters{Order: model.OrderByLikes})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, []int32{5, 3, 1}, []int32{posts[0].Likes, posts[1].Likes, posts[2].Likes})
	})

	t.Run("newest first", func(t *testing.T) {
		posts, err := repo.List(ctx, model.PostFilters{Order: model.OrderByCreatedAt})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, []int64{ids[2], ids[1], ids[0]}, []int64{posts[0].ID, posts[1].ID, posts[2].ID})
	})

	t.Run("status filter", func(t *testing.T) {
		posts, err := repo.List(ctx, model.PostFilters{Order: model.OrderByLikes, Status: statusPtr(model.PostStatusDone)})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, ids[2], posts[0].ID)
	})

	t.Run("empty repository", func(t *testing.T) {
		empty, cleanup := setupPostTest(t)
		defer cleanup()

		posts, err := empty.List(ctx, model.PostFilters{})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestUnitOfWork_SerialisesTransactions(t *testing.T) {
	repo := memory.NewPostRepository(logger.New("test"))
	uow := memory.NewUnitOfWork(repo)
	ctx := context.Background()

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)

	started := make(chan struct{})
	acquired := make(chan struct{})
	go func() {
		close(started)
		second, err := uow.Begin(ctx)
		if err == nil {
			_ = second.Commit(ctx)
		}
		close(acquired)
	}()

	<-started
	select {
	case <-acquired:
		t.Fatal("second transaction started while the first was open")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second transaction never started")
	}
}
