package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
)

const (
	boardGenerationKey = "board:gen"
	boardViewKeyPrefix = "board:view:"
	defaultBoardTTL    = 30 * time.Second
)

// BoardCache stores boards under the current generation. InvalidateBoard bumps
// the generation, so a board computed before the bump is never served after it.
type BoardCache struct {
	client *Client
	log    ports.Logger
	ttl    time.Duration
}

func NewBoardCache(client *Client, log ports.Logger, ttl time.Duration) *BoardCache {
	if ttl <= 0 {
		ttl = defaultBoardTTL
	}
	return &BoardCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (b *BoardCache) GetBoard(ctx context.Context, order model.ListOrder) ([]*model.Post, int64, error) {
	gen, err := b.client.GetInt64(ctx, boardGenerationKey)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read board generation: %w", err)
	}

	var posts []*model.Post
	if err := b.client.Get(ctx, b.getBoardKey(gen, order), &posts); err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, gen, custom_errors.ErrCacheMiss
		}
		return nil, gen, fmt.Errorf("failed to get board from cache: %w", err)
	}

	b.log.Debug("Board cache hit",
		slog.String("order", string(order)),
		slog.Int64("generation", gen),
		slog.Int("count", len(posts)))
	return posts, gen, nil
}

func (b *BoardCache) SetBoard(ctx context.Context, order model.ListOrder, gen int64, posts []*model.Post) error {
	if posts == nil {
		posts = []*model.Post{}
	}

	if err := b.client.Set(ctx, b.getBoardKey(gen, order), posts, b.ttl); err != nil {
		return fmt.Errorf("failed to set board cache: %w", err)
	}

	b.log.Debug("Board cached successfully",
		slog.String("order", string(order)),
		slog.Int64("generation", gen),
		slog.Duration("ttl", b.ttl))
	return nil
}

func (b *BoardCache) InvalidateBoard(ctx context.Context) error {
	gen, incrErr := b.client.Incr(ctx, boardGenerationKey)
	if incrErr != nil {
		incrErr = fmt.Errorf("failed to bump board generation: %w", incrErr)
	}

	// old generations are unreachable once the counter moved; this only frees memory
	if err := b.client.DeletePattern(ctx, boardViewKeyPrefix+"*"); err != nil {
		return errors.Join(incrErr, fmt.Errorf("failed to invalidate board cache: %w", err))
	}
	if incrErr != nil {
		return incrErr
	}

	b.log.Debug("Board cache invalidated", slog.Int64("generation", gen))
	return nil
}

func (b *BoardCache) getBoardKey(gen int64, order model.ListOrder) string {
	return boardViewKeyPrefix + strconv.FormatInt(gen, 10) + ":" + string(order)
}
