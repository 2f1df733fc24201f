package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"kaizen-board/internal/custom_errors"
	model "kaizen-board/internal/domain/models"
	ports "kaizen-board/internal/domain/ports/output"
	"kaizen-board/internal/infrastructure/outbound/repository/postgres/db"
)

const postColumns = "id, title, likes, status, created_at"

var orderClauses = map[model.ListOrder]string{
	model.OrderByLikes:     " ORDER BY likes DESC, created_at DESC, id DESC",
	model.OrderByCreatedAt: " ORDER BY created_at DESC, id DESC",
}

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var (
		post   model.Post
		status string
	)
	if err := row.Scan(&post.ID, &post.Title, &post.Likes, &status, &post.CreatedAt); err != nil {
		return nil, err
	}
	post.Status = model.PostStatus(status)
	return &post, nil
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.String("title", post.Title))

	args := pgx.NamedArgs{"title": post.Title}
	query := `INSERT INTO posts (title) VALUES (@title) RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	return p.getByID(ctx, id, "post_get_by_id", "")
}

func (p *PostRepository) GetByIDForUpdate(ctx context.Context, id int64) (*model.Post, error) {
	return p.getByID(ctx, id, "post_get_for_update", " FOR UPDATE")
}

func (p *PostRepository) getByID(ctx context.Context, id int64, queryType, suffix string) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id), slog.String("query_type", queryType))

	args := pgx.NamedArgs{"id": id}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = @id` + suffix

	post, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe(queryType, start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe(queryType, start, true)
	return post, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", id), slog.Any("update_fields", map[string]bool{
		"likes":  update.Likes != nil,
		"status": update.Status != nil,
	}))

	setClauses := []string{}
	args := pgx.NamedArgs{"id": id}

	if update.Likes != nil {
		setClauses = append(setClauses, "likes = @likes")
		args["likes"] = *update.Likes
	}
	if update.Status != nil {
		setClauses = append(setClauses, "status = @status")
		args["status"] = string(*update.Status)
	}

	if len(setClauses) == 0 {
		p.observe("post_update", start, false)
		p.log.Debug("No fields to update", slog.Int64("id", id))
		return nil, custom_errors.ErrNoUpdateRows
	}

	query := "UPDATE posts SET " + strings.Join(setClauses, ", ") + " WHERE id = @id RETURNING " + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updatedPost.ID),
		slog.Int("likes", int(updatedPost.Likes)), slog.String("status", string(updatedPost.Status)))
	return updatedPost, nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.Post, error) {
	start := time.Now()
	p.log.Debug("Listing posts", slog.String("order", string(filters.Order)), slog.Any("status", filters.Status))

	orderClause, ok := orderClauses[filters.Order]
	if !ok {
		orderClause = orderClauses[model.OrderByLikes]
	}

	args := pgx.NamedArgs{}
	query := `SELECT ` + postColumns + ` FROM posts`
	if filters.Status != nil {
		query += " WHERE status = @status"
		args["status"] = string(*filters.Status)
	}
	query += orderClause

	rows, err := p.db.Query(ctx, query, args)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			p.observe("post_list", start, false)
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		posts = append(posts, post)
	}

	if err = rows.Err(); err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_list", start, true)
	p.log.Debug("Successfully listed posts", slog.Int("count", len(posts)))
	return posts, nil
}
