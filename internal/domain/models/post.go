package model

import "github.com/jackc/pgx/v5/pgtype"

type PostStatus string

const (
	PostStatusOpen PostStatus = "open"
	PostStatusDone PostStatus = "done"
)

func (s PostStatus) IsDone() bool {
	return s == PostStatusDone
}

type Post struct {
	ID        int64              `json:"id"`
	Title     string             `json:"title"`
	Likes     int32              `json:"likes"`
	Status    PostStatus         `json:"status"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
