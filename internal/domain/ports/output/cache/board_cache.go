package cache

import (
	"context"

	model "kaizen-board/internal/domain/models"
)

// BoardCache keys boards by a generation that InvalidateBoard advances.
// GetBoard returns the generation it looked under, also on a miss; SetBoard
// must be given that generation so a board read before an invalidation
// cannot be served after it.
//
//go:generate mockery --name BoardCache --dir . --output ../../../../../mocks/cache --outpkg mocks --filename BoardCache.go
type BoardCache interface {
	GetBoard(ctx context.Context, order model.ListOrder) ([]*model.Post, int64, error)
	SetBoard(ctx context.Context, order model.ListOrder, gen int64, posts []*model.Post) error
	InvalidateBoard(ctx context.Context) error
}
