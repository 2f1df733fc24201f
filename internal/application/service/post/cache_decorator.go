package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	post_service "kaizen-board/internal/domain/ports/input/post"
	output "kaizen-board/internal/domain/ports/output"
	"kaizen-board/internal/domain/ports/output/cache"
)

// PostServiceCacheDecorator serves board reads from cache and drops every cached
// board after a successful mutation, before the mutation returns.
type PostServiceCacheDecorator struct {
	service    post_service.Service
	boardCache cache.BoardCache
	log        output.Logger
	metrics    output.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	boardCache cache.BoardCache,
	log output.Logger,
	metrics output.MetricsProvider,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:    service,
		boardCache: boardCache,
		log:        log,
		metrics:    metrics,
	}
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	// Filtered reads bypass the cache; only whole boards are stored.
	if filters != nil && filters.Status != nil {
		return d.service.ListPosts(ctx, filters)
	}

	order := model.OrderByLikes
	if filters != nil {
		parsed, err := model.ParseListOrder(string(filters.Order))
		if err != nil {
			return nil, err
		}
		order = parsed
	}

	cacheStart := time.Now()
	cached, gen, err := d.boardCache.GetBoard(ctx, order)
	d.metrics.RecordCacheOperationDuration("board_get", time.Since(cacheStart))
	if err == nil {
		d.log.Debug("Board found in cache", slog.String("order", string(order)))
		d.metrics.IncrementCacheHits()
		return cached, nil
	}

	// Only a clean miss carries a generation to store under.
	cacheable := errors.Is(err, custom_errors.ErrCacheMiss)
	if cacheable {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get board from cache",
			slog.String("order", string(order)),
			slog.String("error", err.Error()))
	}

	posts, err := d.service.ListPosts(ctx, &model.PostFilters{Order: order})
	if err != nil {
		return nil, err
	}

	if cacheable {
		setStart := time.Now()
		if err := d.boardCache.SetBoard(ctx, order, gen, posts); err != nil {
			d.log.Warn("Failed to cache board",
				slog.String("order", string(order)),
				slog.String("error", err.Error()))
		}
		d.metrics.RecordCacheOperationDuration("board_set", time.Since(setStart))
	}

	return posts, nil
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	created, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, "create")
	return created, nil
}

func (d *PostServiceCacheDecorator) AddLike(ctx context.Context, id int64) (*model.Post, error) {
	updated, err := d.service.AddLike(ctx, id)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, "add_like")
	return updated, nil
}

func (d *PostServiceCacheDecorator) MarkAsDone(ctx context.Context, id int64) (*model.Post, error) {
	updated, err := d.service.MarkAsDone(ctx, id)
	if err != nil {
		return nil, err
	}
	d.invalidate(ctx, "mark_done")
	return updated, nil
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, operation string) {
	start := time.Now()
	if err := d.boardCache.InvalidateBoard(ctx); err != nil {
		d.log.Warn("Failed to invalidate board cache",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("board_invalidate", time.Since(start))
}
