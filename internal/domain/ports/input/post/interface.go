package post_service

import (
	"context"

	model "kaizen-board/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/post --outpkg mocks --filename Service.go
type Service interface {
	ListPosts(ctx context.Context, filters *model.PostFilters) ([]*model.Post, error)
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.Post, error)
	AddLike(ctx context.Context, id int64) (*model.Post, error)
	MarkAsDone(ctx context.Context, id int64) (*model.Post, error)
}
