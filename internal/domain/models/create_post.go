package model

type CreatePostDTO struct {
	Title string `json:"title"`
}
