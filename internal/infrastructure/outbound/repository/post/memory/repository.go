package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

type PostRepository struct {
	log    ports.Logger
	mu     sync.RWMutex
	posts  map[int64]*model.Post
	nextID int64
}

func NewPostRepository(log ports.Logger) *PostRepository {
	return &PostRepository{
		log:    log,
		posts:  make(map[int64]*model.Post),
		nextID: 1,
	}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.String("title", post.Title))

	p.mu.Lock()
	defer p.mu.Unlock()

	newPost := &model.Post{
		ID:        p.nextID,
		Title:     post.Title,
		Likes:     0,
		Status:    model.PostStatusOpen,
		CreatedAt: pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	p.nextID++

	p.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID))
	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}

	result := *post
	return &result, nil
}

// GetByIDForUpdate is GetByID; row locking comes from UnitOfWork serialising transactions.
func (p *PostRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Post, error) {
	return p.GetByID(ctx, id)
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	if update.Likes == nil && update.Status == nil {
		return nil, custom_errors.ErrNoUpdateRows
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	if update.Likes != nil {
		post.Likes = *update.Likes
	}
	if update.Status != nil {
		post.Status = *update.Status
	}

	result := *post
	return &result, nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	p.log.Debug("Listing posts (memory impl)", slog.String("order", string(filters.Order)))

	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*model.Post, 0, len(p.posts))
	for _, post := range p.posts {
		if filters.Status != nil && post.Status != *filters.Status {
			continue
		}
		postCopy := *post
		result = append(result, &postCopy)
	}

	newerFirst := func(a, b *model.Post) bool {
		if !a.CreatedAt.Time.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.Time.After(b.CreatedAt.Time)
		}
		return a.ID > b.ID
	}

	if filters.Order == model.OrderByCreatedAt {
		sort.Slice(result, func(i, j int) bool {
			return newerFirst(result[i], result[j])
		})
	} else {
		sort.Slice(result, func(i, j int) bool {
			if result[i].Likes != result[j].Likes {
				return result[i].Likes > result[j].Likes
			}
			return newerFirst(result[i], result[j])
		})
	}

	return result, nil
}
