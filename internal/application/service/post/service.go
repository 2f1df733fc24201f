package post_service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	post_service "kaizen-board/internal/domain/ports/input/post"
	ports "kaizen-board/internal/domain/ports/output"
	post_repository "kaizen-board/internal/domain/ports/output/post"
)

type PostService struct {
	postRepo post_repository.Repository
	uow      ports.UnitOfWork
	log      ports.Logger
	metrics  ports.MetricsProvider
}

var _ post_service.Service = (*PostService)(nil)

func NewPostService(
	postRepo post_repository.Repository,
	uow ports.UnitOfWork,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		uow:      uow,
		log:      log,
		metrics:  metrics,
	}
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error) {
	f := model.PostFilters{Order: model.OrderByLikes}
	if filters != nil {
		f = *filters
	}

	order, err := model.ParseListOrder(string(f.Order))
	if err != nil {
		s.log.Debug("Invalid list order", slog.String("order", string(f.Order)))
		s.metrics.IncrementPostOperations("list", false)
		return nil, err
	}
	f.Order = order

	posts, err := s.postRepo.List(ctx, f)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("list", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.metrics.IncrementPostOperations("list", true)
	return posts, nil
}

// CreatePost stores a post with the trimmed title. Blank titles are rejected
// with ErrPostValidation and nothing is written.
func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error) {
	title := ""
	if post != nil {
		title = strings.TrimSpace(post.Title)
	}
	if title == "" {
		s.log.Debug("Ignoring post with blank title")
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrPostValidation
	}

	created, err := s.postRepo.Create(ctx, &model.Post{Title: title})
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		s.metrics.IncrementPostOperations("create", false)
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("Post created", slog.Int64("post_id", created.ID))
	s.metrics.IncrementPostOperations("create", true)
	return created, nil
}

// AddLike reads the current count under a row lock and writes count+1.
// Resolved posts are not liked, and the count never wraps past MaxInt32.
func (s *PostService) AddLike(ctx context.Context, id int64) (result *model.Post, err error) {
	defer func() {
		s.metrics.IncrementPostOperations("add_like", err == nil)
	}()

	if id <= 0 {
		return nil, custom_errors.ErrPostValidation
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Rollback after failed like", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	post, err := postRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Like on missing post", slog.Int64("post_id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to read post for like", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if post.Status.IsDone() {
		s.log.Debug("Like on resolved post", slog.Int64("post_id", id))
		return nil, custom_errors.ErrPostResolved
	}

	if post.Likes == math.MaxInt32 {
		s.log.Warn("Like count at maximum", slog.Int64("post_id", id))
		return nil, custom_errors.ErrLikesLimit
	}

	likes := post.Likes + 1
	updated, err := postRepo.Update(ctx, id, &model.UpdatePostDTO{Likes: &likes})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to write like", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit like", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	s.log.Debug("Post liked", slog.Int64("post_id", id), slog.Int("likes", int(updated.Likes)))
	return updated, nil
}

// MarkAsDone sets status to done without looking at the current status.
func (s *PostService) MarkAsDone(ctx context.Context, id int64) (*model.Post, error) {
	if id <= 0 {
		s.metrics.IncrementPostOperations("mark_done", false)
		return nil, custom_errors.ErrPostValidation
	}

	status := model.PostStatusDone
	updated, err := s.postRepo.Update(ctx, id, &model.UpdatePostDTO{Status: &status})
	if err != nil {
		s.metrics.IncrementPostOperations("mark_done", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Resolve on missing post", slog.Int64("post_id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to resolve post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("Post resolved", slog.Int64("post_id", id))
	s.metrics.IncrementPostOperations("mark_done", true)
	return updated, nil
}
