package model

import (
	"strings"

	"kaizen-board/internal/custom_errors"
)

type ListOrder string

const (
	// OrderByLikes surfaces popular suggestions first, newest first among ties.
	OrderByLikes ListOrder = "likes"
	// OrderByCreatedAt lists newest first.
	OrderByCreatedAt ListOrder = "created_at"
)

func ParseListOrder(s string) (ListOrder, error) {
	switch ListOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderByLikes:
		return OrderByLikes, nil
	case OrderByCreatedAt:
		return OrderByCreatedAt, nil
	default:
		return "", custom_errors.ErrInvalidOrder
	}
}

type PostFilters struct {
	Order  ListOrder
	Status *PostStatus
}
